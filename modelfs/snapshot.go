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

package modelfs

import (
	"os"
	"sort"
	"time"

	"github.com/jacobsa/durablefs"
	"github.com/kylelemons/godebug/pretty"
)

// A read-only projection of the durable state of a ModelFileSystem: the
// contents the file system would have after a crash. Snapshots alias live
// structures and are valid only until the next file system operation; they
// are intended for use inside step callbacks and immediately after an
// operation returns.
type Snapshot struct {
	root *inode
}

// Resolve the path through the durable shadow.
func (s *Snapshot) lookup(p durablefs.Path) (*inode, bool) {
	in := s.root
	for _, name := range p.NameComponents() {
		if !in.dir {
			return nil, false
		}

		child, ok := in.durableEntries[name]
		if !ok {
			return nil, false
		}

		in = child
	}

	return in, true
}

// Does the path exist durably?
func (s *Snapshot) Exists(p durablefs.Path) bool {
	_, ok := s.lookup(p)
	return ok
}

// Does the path durably name a directory?
func (s *Snapshot) IsDir(p durablefs.Path) bool {
	in, ok := s.lookup(p)
	return ok && in.dir
}

// Return the durable contents of the file at the supplied path.
func (s *Snapshot) ReadFile(p durablefs.Path) ([]byte, error) {
	in, ok := s.lookup(p)
	if !ok {
		return nil, &os.PathError{Op: "read", Path: p.String(), Err: durablefs.ENOENT}
	}

	if in.dir {
		return nil, &os.PathError{Op: "read", Path: p.String(), Err: durablefs.EISDIR}
	}

	return append([]byte(nil), in.durableContents...), nil
}

// Return the sorted names durably present in the directory at the supplied
// path.
func (s *Snapshot) List(p durablefs.Path) ([]string, error) {
	in, ok := s.lookup(p)
	if !ok {
		return nil, &os.PathError{Op: "list", Path: p.String(), Err: durablefs.ENOENT}
	}

	if !in.dir {
		return nil, &os.PathError{Op: "list", Path: p.String(), Err: durablefs.ENOTDIR}
	}

	names := make([]string, 0, len(in.durableEntries))
	for name := range in.durableEntries {
		names = append(names, name)
	}

	sort.Strings(names)
	return names, nil
}

// Return the durable modification time of the entry at the supplied path.
func (s *Snapshot) Mtime(p durablefs.Path) (time.Time, bool) {
	in, ok := s.lookup(p)
	if !ok {
		return time.Time{}, false
	}

	return in.durableMtime, true
}

// Render the durable tree for failure messages.
func (s *Snapshot) Dump() string {
	return pretty.Sprint(dumpInode(s.root))
}

func dumpInode(in *inode) interface{} {
	if !in.dir {
		return string(in.durableContents)
	}

	m := make(map[string]interface{}, len(in.durableEntries))
	for name, child := range in.durableEntries {
		m[name] = dumpInode(child)
	}

	return m
}
