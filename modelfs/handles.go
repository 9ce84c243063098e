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
	"fmt"
	"os"
	"sort"

	"github.com/jacobsa/durablefs"
)

// A directory handle bound to an inode. The handle records the directory's
// version at open time; its sync promotes only entries modified afterward,
// mirroring the handle-before-modify contract of real directory fsync.
type modelDirHandle struct {
	fs   *ModelFileSystem
	in   *inode
	name string

	openVersion uint64

	closed bool // GUARDED_BY(fs.mu)
}

func (h *modelDirHandle) Sync() error {
	h.fs.mu.Lock()
	defer h.fs.mu.Unlock()

	if h.closed {
		return &os.PathError{Op: "fsync", Path: h.name, Err: durablefs.EINVAL}
	}

	// Promote one pending difference at a time, in an order chosen by the
	// seeded RNG, until the shadows agree for every entry this handle
	// covers. The step callback fires between promotions so harnesses can
	// observe every partially synced state.
	for {
		var pending []string
		for name, v := range h.in.nameVersions {
			if v > h.openVersion && h.in.entryDirty(name) {
				pending = append(pending, name)
			}
		}

		if len(pending) == 0 {
			break
		}

		sort.Strings(pending)
		name := pending[h.fs.rng.Intn(len(pending))]
		h.in.promoteEntry(name)
		h.fs.step(fmt.Sprintf("promote entry %q in %q", name, h.name))
	}

	h.in.durableMtime = h.in.volatileMtime
	return nil
}

func (h *modelDirHandle) Close() error {
	h.fs.mu.Lock()
	defer h.fs.mu.Unlock()

	h.closed = true
	return nil
}

// A write handle bound to a file inode. Writes append to the volatile
// shadow; sync promotes the contents to the durable shadow.
type modelFileHandle struct {
	fs   *ModelFileSystem
	in   *inode
	name string

	closed bool // GUARDED_BY(fs.mu)
}

func (h *modelFileHandle) Write(p []byte) (int, error) {
	h.fs.mu.Lock()
	defer h.fs.mu.Unlock()

	if h.closed {
		return 0, &os.PathError{Op: "write", Path: h.name, Err: durablefs.EINVAL}
	}

	h.in.volatileContents = append(h.in.volatileContents, p...)
	h.in.volatileMtime = h.fs.clock.Now()

	h.fs.step(fmt.Sprintf("write %d bytes to %q", len(p), h.name))
	return len(p), nil
}

func (h *modelFileHandle) Sync() error {
	h.fs.mu.Lock()
	defer h.fs.mu.Unlock()

	if h.closed {
		return &os.PathError{Op: "fsync", Path: h.name, Err: durablefs.EINVAL}
	}

	h.in.durableContents = append([]byte(nil), h.in.volatileContents...)
	h.in.durableMtime = h.in.volatileMtime

	h.fs.step(fmt.Sprintf("promote contents of %q", h.name))
	return nil
}

func (h *modelFileHandle) Close() error {
	h.fs.mu.Lock()
	defer h.fs.mu.Unlock()

	h.closed = true
	return nil
}
