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

import "time"

// A file or directory with independent durable and volatile shadows. All
// mutating operations touch only the volatile shadow; sync promotes pending
// differences to the durable shadow, and a crash discards the volatile
// shadow in favor of the durable one.
type inode struct {
	/////////////////////////
	// Constant data
	/////////////////////////

	id  uint64
	dir bool

	// The device the inode lives on. Renames across devices fail with
	// EXDEV.
	device int

	/////////////////////////
	// Mutable state, guarded by the file system mutex
	/////////////////////////

	// For files: the two content shadows.
	//
	// INVARIANT: If dir, both are nil
	durableContents  []byte
	volatileContents []byte

	// For directories: the two entry shadows.
	//
	// INVARIANT: If dir, both are non-nil
	// INVARIANT: If !dir, both are nil
	durableEntries  map[string]*inode
	volatileEntries map[string]*inode

	// Incremented on every volatile mutation of the directory's entries.
	version uint64

	// For each name, the version at which its volatile mapping last
	// changed. Directory handles use this to honor the handle-before-modify
	// contract: a sync through a handle promotes only names modified after
	// the handle was opened.
	nameVersions map[string]uint64

	durableMtime  time.Time
	volatileMtime time.Time
}

// Does the name's volatile mapping differ from its durable mapping?
func (in *inode) entryDirty(name string) bool {
	v, vok := in.volatileEntries[name]
	d, dok := in.durableEntries[name]
	if vok != dok {
		return true
	}

	return vok && v != d
}

// Promote the name's volatile mapping to the durable shadow.
func (in *inode) promoteEntry(name string) {
	if child, ok := in.volatileEntries[name]; ok {
		in.durableEntries[name] = child
	} else {
		delete(in.durableEntries, name)
	}
}

// Mark a volatile mutation of the named entry.
func (in *inode) bump(name string, now time.Time) {
	in.version++
	in.nameVersions[name] = in.version
	in.volatileMtime = now
}
