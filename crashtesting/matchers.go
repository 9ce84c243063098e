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

package crashtesting

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/jacobsa/durablefs"
	"github.com/jacobsa/durablefs/modelfs"
	"github.com/jacobsa/oglematchers"
)

// Match *modelfs.Snapshot values in which the supplied path durably
// contains exactly the supplied bytes.
func DurablyContains(path string, contents []byte) oglematchers.Matcher {
	return oglematchers.NewMatcher(
		func(c interface{}) error { return durablyContains(c, path, contents) },
		fmt.Sprintf("durably contains %q with %d bytes", path, len(contents)))
}

func durablyContains(c interface{}, path string, contents []byte) error {
	s, ok := c.(*modelfs.Snapshot)
	if !ok {
		return fmt.Errorf("which is of type %v", reflect.TypeOf(c))
	}

	p, err := durablefs.MakePath(path)
	if err != nil {
		return err
	}

	actual, err := s.ReadFile(p)
	if err != nil {
		return fmt.Errorf("which fails to read %q: %v", path, err)
	}

	if !bytes.Equal(actual, contents) {
		return fmt.Errorf("which holds %d other bytes at %q", len(actual), path)
	}

	return nil
}

// Match *modelfs.Snapshot values in which the supplied path does not exist
// durably.
func DurablyAbsent(path string) oglematchers.Matcher {
	return oglematchers.NewMatcher(
		func(c interface{}) error { return durablyAbsent(c, path) },
		fmt.Sprintf("durably lacks %q", path))
}

func durablyAbsent(c interface{}, path string) error {
	s, ok := c.(*modelfs.Snapshot)
	if !ok {
		return fmt.Errorf("which is of type %v", reflect.TypeOf(c))
	}

	p, err := durablefs.MakePath(path)
	if err != nil {
		return err
	}

	if s.Exists(p) {
		return fmt.Errorf("which durably contains %q", path)
	}

	return nil
}

// Match *modelfs.Snapshot values in which the supplied path durably names a
// directory.
func DurablyADirectory(path string) oglematchers.Matcher {
	return oglematchers.NewMatcher(
		func(c interface{}) error { return durablyADirectory(c, path) },
		fmt.Sprintf("durably has directory %q", path))
}

func durablyADirectory(c interface{}, path string) error {
	s, ok := c.(*modelfs.Snapshot)
	if !ok {
		return fmt.Errorf("which is of type %v", reflect.TypeOf(c))
	}

	p, err := durablefs.MakePath(path)
	if err != nil {
		return err
	}

	if !s.IsDir(p) {
		return fmt.Errorf("which durably lacks a directory at %q", path)
	}

	return nil
}
