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

package durablefs

import (
	"fmt"

	"github.com/jacobsa/durablefs/internal/buffer"
	"github.com/jacobsa/syncutil"
)

// Stage writes this large before pushing them to the backing file.
const stagingBufferThreshold = 4096

// A buffered write sink that stages bytes in a temporary file and, on
// Commit, syncs the file and atomically renames it into place. The target
// file is observably created only by that rename, so an external observer
// sees the target either in its previous state or containing the complete
// bytes buffered prior to commit.
//
// Closing without committing aborts: the target is untouched and the
// temporary file is deleted best-effort. Not safe for concurrent use by
// multiple goroutines.
type AtomicDurableOutputStream struct {
	/////////////////////////
	// Constant data
	/////////////////////////

	fs     FileSystem
	target Path
	temp   Path

	/////////////////////////
	// Mutable state
	/////////////////////////

	mu syncutil.InvariantMutex

	// The handle on the temporary file.
	//
	// INVARIANT: (committed || closed) == (file == nil)
	file FileHandle // GUARDED_BY(mu)

	// Bytes accepted by Write but not yet handed to file.
	//
	// INVARIANT: If committed, buf.Len() == 0
	buf buffer.Buffer // GUARDED_BY(mu)

	committed bool // GUARDED_BY(mu)
	closed    bool // GUARDED_BY(mu)
}

// Create a stream whose Commit atomically and durably materializes the
// supplied target path. The staging file is allocated from the file system's
// temp area and must share a file system with the target for Commit to
// succeed.
//
// While the stream is open the target path is not modified.
func (o *DurableOps) CreateOutputStream(target string) (*AtomicDurableOutputStream, error) {
	p, err := MakePath(target)
	if err != nil {
		return nil, err
	}

	if _, ok := p.Parent(); !ok {
		return nil, fmt.Errorf("%q has no parent: %w", p, EINVAL)
	}

	if _, ok := p.FileName(); !ok {
		return nil, fmt.Errorf("%q has no file name: %w", p, EINVAL)
	}

	temp, err := o.fs.CreateTempFile()
	if err != nil {
		return nil, fmt.Errorf("CreateTempFile: %w", err)
	}

	f, err := o.fs.OpenFile(temp)
	if err != nil {
		// Don't leak the staging file.
		_ = o.fs.DeleteIfExists(temp)
		return nil, fmt.Errorf("OpenFile: %w", err)
	}

	s := &AtomicDurableOutputStream{
		fs:     o.fs,
		target: p,
		temp:   temp,
		file:   f,
		buf:    buffer.New(stagingBufferThreshold),
	}

	s.mu = syncutil.NewInvariantMutex(s.checkInvariants)
	return s, nil
}

func (s *AtomicDurableOutputStream) checkInvariants() {
	if (s.committed || s.closed) != (s.file == nil) {
		panic(fmt.Sprintf(
			"file handle state inconsistent: committed=%v closed=%v file=%v",
			s.committed, s.closed, s.file))
	}

	if s.committed && s.buf.Len() != 0 {
		panic(fmt.Sprintf("%d bytes buffered after commit", s.buf.Len()))
	}
}

// Return the path the stream will materialize on commit.
func (s *AtomicDurableOutputStream) Target() Path {
	return s.target
}

// Return the path of the staging file, for diagnostics. The file exists
// only while the stream is open; a commit consumes it and an abort deletes
// it best-effort.
func (s *AtomicDurableOutputStream) StagingPath() Path {
	return s.temp
}

// Buffered write into the staging file. Illegal after Commit or Close.
func (s *AtomicDurableOutputStream) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return 0, err
	}

	s.buf.Append(p)
	if s.buf.Full() {
		if err := s.buf.Flush(s.file); err != nil {
			return 0, fmt.Errorf("Flush: %w", err)
		}
	}

	return len(p), nil
}

// Reserve space in the staging file for a write of known total size. A
// no-op when the backing file handle offers no preallocation. Illegal after
// Commit or Close.
func (s *AtomicDurableOutputStream) Preallocate(n int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}

	if p, ok := s.file.(Preallocater); ok {
		if err := p.Preallocate(n); err != nil {
			return fmt.Errorf("Preallocate: %w", err)
		}
	}

	return nil
}

// Flush all buffered bytes, sync the staging file, and atomically rename it
// onto the target path. On return the target durably contains exactly the
// bytes written before the call. May be called at most once; writes are
// illegal afterward.
//
// The target's parent directory must already exist durably; DurableOps
// write helpers arrange this. Only the rename into the target directory is
// made durable, since the staging file's deletion from the temp area is not
// meaningful.
func (s *AtomicDurableOutputStream) Commit() (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}

	if err := s.buf.Flush(s.file); err != nil {
		return fmt.Errorf("Flush: %w", err)
	}

	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("Sync: %w", err)
	}

	if err := s.file.Close(); err != nil {
		return fmt.Errorf("Close: %w", err)
	}

	s.file = nil

	if err := moveDurably(s.fs, s.temp, s.target, false); err != nil {
		// The stream aborts: reclaim the staging file now, since Close would
		// see a closed stream and do nothing.
		s.closed = true
		_ = s.fs.DeleteIfExists(s.temp)
		return fmt.Errorf("moving into place: %w", err)
	}

	s.committed = true
	return nil
}

// Release the file handle if still open and, unless a commit consumed it,
// delete the temporary file best-effort. Errors closing the handle
// propagate; temp deletion errors do not. Safe to call more than once and
// after Commit.
func (s *AtomicDurableOutputStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed && s.file == nil {
		return nil
	}

	var closeErr error
	if s.file != nil {
		closeErr = s.file.Close()
		s.file = nil
	}

	s.closed = true

	if !s.committed {
		_ = s.fs.DeleteIfExists(s.temp)
	}

	return closeErr
}

func (s *AtomicDurableOutputStream) checkOpen() error {
	if s.committed {
		return fmt.Errorf("stream already committed: %w", EINVAL)
	}

	if s.closed {
		return fmt.Errorf("stream is closed: %w", EINVAL)
	}

	return nil
}
