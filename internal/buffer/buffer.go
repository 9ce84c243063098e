// Copyright 2017 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package buffer provides a staging buffer for writers that accumulate
// small writes before handing them to an underlying sink.
package buffer

import "io"

// Buffer accumulates appended bytes until they are flushed to a sink.
//
// Must be created with New. The zero value behaves like a buffer with a
// zero threshold.
type Buffer struct {
	slice     []byte
	threshold int
}

// Create a buffer that reports itself full once it holds at least threshold
// bytes.
func New(threshold int) Buffer {
	return Buffer{
		slice:     make([]byte, 0, threshold),
		threshold: threshold,
	}
}

// Append the supplied bytes to the buffer.
func (b *Buffer) Append(p []byte) {
	b.slice = append(b.slice, p...)
}

// Return the number of buffered bytes.
func (b *Buffer) Len() int {
	return len(b.slice)
}

// Does the buffer hold at least its threshold?
func (b *Buffer) Full() bool {
	return len(b.slice) >= b.threshold
}

// Write the buffered bytes to w and empty the buffer. The buffer is left
// unchanged if the write fails.
func (b *Buffer) Flush(w io.Writer) error {
	if len(b.slice) == 0 {
		return nil
	}

	if _, err := w.Write(b.slice); err != nil {
		return err
	}

	b.slice = b.slice[:0]
	return nil
}
