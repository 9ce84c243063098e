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
	"sync"
)

// A scoped resource that pins a handle to a directory so that later commits
// cover intervening modifications. Because the handle is opened at
// construction, Commit guarantees durability only for modifications made
// after construction; open the scope before modifying.
//
// Safe for concurrent use.
type DirModificationScope struct {
	mu sync.Mutex

	// Set to nil when the scope is closed.
	d DirHandle // GUARDED_BY(mu)
}

// Open a modification scope on the supplied directory. The returned scope
// must be closed.
func (o *DurableOps) OpenDirModificationScope(dir string) (*DirModificationScope, error) {
	p, err := MakePath(dir)
	if err != nil {
		return nil, err
	}

	d, err := o.fs.OpenDirectory(p)
	if err != nil {
		return nil, fmt.Errorf("OpenDirectory: %w", err)
	}

	return &DirModificationScope{d: d}, nil
}

// Make durable all changes to the directory's contents since the scope was
// opened, including changes performed by other operations. Fails with
// ErrScopeClosed after Close.
func (s *DirModificationScope) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.d == nil {
		return ErrScopeClosed
	}

	if err := s.d.Sync(); err != nil {
		return fmt.Errorf("Sync: %w", err)
	}

	return nil
}

// Release the directory handle. Idempotent.
func (s *DirModificationScope) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.d == nil {
		return nil
	}

	d := s.d
	s.d = nil
	return d.Close()
}
