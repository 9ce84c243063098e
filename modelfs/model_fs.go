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

// Package modelfs implements the durablefs file system capability entirely
// in memory, simulating the independent durable and volatile state of every
// inode so that tests can inject every legal crash ordering.
//
// All mutating operations update only the volatile shadow. Syncing a
// directory handle promotes pending differences to the durable shadow one
// at a time, in an order chosen by a seeded RNG so that failures are
// reproducible. Crash discards every inode's volatile shadow.
package modelfs

import (
	"fmt"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jacobsa/durablefs"
	"github.com/jacobsa/syncutil"
	"github.com/jacobsa/timeutil"
)

// An in-memory file system modeling crash behavior. Create with
// NewModelFileSystem.
//
// Safe for concurrent use, though the step callback is invoked with the
// internal lock held and must not call back into the file system.
type ModelFileSystem struct {
	/////////////////////////
	// Dependencies
	/////////////////////////

	clock timeutil.Clock

	/////////////////////////
	// Mutable state
	/////////////////////////

	mu syncutil.InvariantMutex

	rng *rand.Rand // GUARDED_BY(mu)

	// The root directory, device 1.
	//
	// INVARIANT: root.dir
	root *inode // GUARDED_BY(mu)

	nextID uint64 // GUARDED_BY(mu)

	// Invoked after every atomic state change, including each individual
	// promotion performed by a sync. See SetStepCallback.
	stepCallback func(desc string) // GUARDED_BY(mu)

	// When set, temp paths live on a distinct device, so that staging
	// renames fail with EXDEV the way they do when the system temp area is
	// a separate file system. Set before first use.
	separateTempDevice bool
}

// Create a model file system whose sync nondeterminism is driven by the
// supplied seed and whose modification times come from the supplied clock.
func NewModelFileSystem(seed int64, clock timeutil.Clock) *ModelFileSystem {
	fs := &ModelFileSystem{
		clock:  clock,
		rng:    rand.New(rand.NewSource(seed)),
		nextID: 1,
	}

	fs.root = fs.newInode(true, 1)
	fs.mu = syncutil.NewInvariantMutex(fs.checkInvariants)
	return fs
}

// Make temp paths live on their own device, so that atomic moves into or
// out of the temp area fail with EXDEV. Call before using the file system.
func (fs *ModelFileSystem) SetSeparateTempDevice() {
	fs.separateTempDevice = true
}

// Register a callback invoked after every atomic state change: each
// mutating operation and each individual promotion performed by a sync.
// Test harnesses use this to check registered invariants at every step. The
// callback runs with the file system lock held; it may inspect snapshots
// but must not call file system methods.
func (fs *ModelFileSystem) SetStepCallback(f func(desc string)) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.stepCallback = f
}

func (fs *ModelFileSystem) newInode(dir bool, device int) *inode {
	in := &inode{
		id:     fs.nextID,
		dir:    dir,
		device: device,
	}

	fs.nextID++
	if dir {
		in.durableEntries = make(map[string]*inode)
		in.volatileEntries = make(map[string]*inode)
		in.nameVersions = make(map[string]uint64)
	}

	return in
}

func (fs *ModelFileSystem) step(desc string) {
	if fs.stepCallback != nil {
		fs.stepCallback(desc)
	}
}

func (fs *ModelFileSystem) checkInvariants() {
	var visit func(in *inode)
	seen := make(map[*inode]bool)

	visit = func(in *inode) {
		if seen[in] {
			return
		}
		seen[in] = true

		if in.dir != (in.volatileEntries != nil) ||
			in.dir != (in.durableEntries != nil) {
			panic(fmt.Sprintf("inode %d: entry shadows inconsistent with kind", in.id))
		}

		if in.dir && in.volatileContents != nil {
			panic(fmt.Sprintf("inode %d: directory with contents", in.id))
		}

		for _, child := range in.volatileEntries {
			visit(child)
		}
		for _, child := range in.durableEntries {
			visit(child)
		}
	}

	visit(fs.root)
}

////////////////////////////////////////////////////////////////////////
// Resolution
////////////////////////////////////////////////////////////////////////

// Resolve the path through the volatile shadow.
//
// LOCKS_REQUIRED(fs.mu)
func (fs *ModelFileSystem) resolve(p durablefs.Path) (*inode, error) {
	in := fs.root
	for _, name := range p.NameComponents() {
		if !in.dir {
			return nil, &os.PathError{Op: "lookup", Path: p.String(), Err: durablefs.ENOTDIR}
		}

		child, ok := in.volatileEntries[name]
		if !ok {
			return nil, &os.PathError{Op: "lookup", Path: p.String(), Err: durablefs.ENOENT}
		}

		in = child
	}

	return in, nil
}

// Ensure that the supplied ambient directory exists identically in both
// shadows, for infrastructure like the temp area that is not subject to
// crash invariants.
//
// LOCKS_REQUIRED(fs.mu)
func (fs *ModelFileSystem) ensureAmbientDir(parent *inode, name string, device int) *inode {
	if child, ok := parent.volatileEntries[name]; ok {
		return child
	}

	child := fs.newInode(true, device)
	parent.volatileEntries[name] = child
	parent.durableEntries[name] = child
	return child
}

////////////////////////////////////////////////////////////////////////
// FileSystem methods
////////////////////////////////////////////////////////////////////////

func (fs *ModelFileSystem) CreateTempDir() (durablefs.Path, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	device := 1
	if fs.separateTempDevice {
		device = 2
	}

	tmp := fs.ensureAmbientDir(fs.root, "tmp", device)
	name := "durablefs-" + uuid.New().String()

	child := fs.newInode(true, device)
	tmp.volatileEntries[name] = child
	tmp.durableEntries[name] = child

	p, err := durablefs.MakePath("/tmp/" + name)
	if err != nil {
		return durablefs.Path{}, err
	}

	return p, nil
}

func (fs *ModelFileSystem) CreateTempFile() (durablefs.Path, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	device := 1
	if fs.separateTempDevice {
		device = 2
	}

	tmp := fs.ensureAmbientDir(fs.root, "tmp", device)
	name := "durablefs-" + uuid.New().String()

	child := fs.newInode(false, device)
	tmp.volatileEntries[name] = child
	tmp.durableEntries[name] = child

	p, err := durablefs.MakePath("/tmp/" + name)
	if err != nil {
		return durablefs.Path{}, err
	}

	return p, nil
}

func (fs *ModelFileSystem) OpenDirectory(p durablefs.Path) (durablefs.DirHandle, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	in, err := fs.resolve(p)
	if err != nil {
		return nil, err
	}

	if !in.dir {
		return nil, &os.PathError{Op: "open", Path: p.String(), Err: durablefs.ENOTDIR}
	}

	return &modelDirHandle{
		fs:          fs,
		in:          in,
		name:        p.String(),
		openVersion: in.version,
	}, nil
}

func (fs *ModelFileSystem) OpenFile(p durablefs.Path) (durablefs.FileHandle, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	parentPath, ok := p.Parent()
	name, _ := p.FileName()
	if !ok {
		return nil, &os.PathError{Op: "open", Path: p.String(), Err: durablefs.EINVAL}
	}

	parent, err := fs.resolve(parentPath)
	if err != nil {
		return nil, err
	}

	if !parent.dir {
		return nil, &os.PathError{Op: "open", Path: p.String(), Err: durablefs.ENOTDIR}
	}

	in, ok := parent.volatileEntries[name]
	if ok {
		if in.dir {
			return nil, &os.PathError{Op: "open", Path: p.String(), Err: durablefs.EISDIR}
		}

		// Opened for truncation.
		in.volatileContents = nil
		in.volatileMtime = fs.clock.Now()
		fs.step(fmt.Sprintf("truncate %q", p))
	} else {
		in = fs.newInode(false, parent.device)
		in.volatileMtime = fs.clock.Now()
		parent.volatileEntries[name] = in
		parent.bump(name, fs.clock.Now())
		fs.step(fmt.Sprintf("create %q", p))
	}

	return &modelFileHandle{fs: fs, in: in, name: p.String()}, nil
}

func (fs *ModelFileSystem) List(p durablefs.Path) ([]string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	in, err := fs.resolve(p)
	if err != nil {
		return nil, err
	}

	if !in.dir {
		return nil, &os.PathError{Op: "list", Path: p.String(), Err: durablefs.ENOTDIR}
	}

	names := make([]string, 0, len(in.volatileEntries))
	for name := range in.volatileEntries {
		names = append(names, name)
	}

	sort.Strings(names)
	return names, nil
}

func (fs *ModelFileSystem) IsReadableDirectory(
	d durablefs.DirHandle,
	name string) (bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	dh := d.(*modelDirHandle)
	child, ok := dh.in.volatileEntries[name]
	return ok && child.dir, nil
}

func (fs *ModelFileSystem) Mkdir(d durablefs.DirHandle, name string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	dh := d.(*modelDirHandle)
	if _, ok := dh.in.volatileEntries[name]; ok {
		return &os.PathError{Op: "mkdir", Path: name, Err: durablefs.EEXIST}
	}

	child := fs.newInode(true, dh.in.device)
	child.volatileMtime = fs.clock.Now()
	dh.in.volatileEntries[name] = child
	dh.in.bump(name, fs.clock.Now())

	fs.step(fmt.Sprintf("mkdir %q in %q", name, dh.name))
	return nil
}

func (fs *ModelFileSystem) Unlink(d durablefs.DirHandle, name string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	dh := d.(*modelDirHandle)
	child, ok := dh.in.volatileEntries[name]
	if !ok {
		return &os.PathError{Op: "unlink", Path: name, Err: durablefs.ENOENT}
	}

	if child.dir && len(child.volatileEntries) > 0 {
		return &os.PathError{Op: "unlink", Path: name, Err: durablefs.ENOTEMPTY}
	}

	delete(dh.in.volatileEntries, name)
	dh.in.bump(name, fs.clock.Now())

	fs.step(fmt.Sprintf("unlink %q in %q", name, dh.name))
	return nil
}

func (fs *ModelFileSystem) Rename(
	srcDir durablefs.DirHandle,
	srcName string,
	tgtDir durablefs.DirHandle,
	tgtName string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	sd := srcDir.(*modelDirHandle)
	td := tgtDir.(*modelDirHandle)

	src, ok := sd.in.volatileEntries[srcName]
	if !ok {
		return &os.LinkError{Op: "rename", Old: srcName, New: tgtName, Err: durablefs.ENOENT}
	}

	if tgt, ok := td.in.volatileEntries[tgtName]; ok && tgt.dir {
		return &os.LinkError{Op: "rename", Old: srcName, New: tgtName, Err: durablefs.EISDIR}
	}

	if sd.in.device != td.in.device {
		return &os.LinkError{Op: "rename", Old: srcName, New: tgtName, Err: durablefs.EXDEV}
	}

	// A single atomic step: the entry leaves the source and appears at the
	// target together.
	td.in.volatileEntries[tgtName] = src
	td.in.bump(tgtName, fs.clock.Now())
	delete(sd.in.volatileEntries, srcName)
	sd.in.bump(srcName, fs.clock.Now())

	fs.step(fmt.Sprintf("rename %q in %q -> %q in %q", srcName, sd.name, tgtName, td.name))
	return nil
}

func (fs *ModelFileSystem) DeleteIfExists(p durablefs.Path) error {
	return durablefs.DefaultDeleteIfExists(fs, p)
}

func (fs *ModelFileSystem) MoveAtomically(src durablefs.Path, tgt durablefs.Path) error {
	return durablefs.DefaultMoveAtomically(fs, src, tgt)
}

////////////////////////////////////////////////////////////////////////
// Model-only operations
////////////////////////////////////////////////////////////////////////

// Discard every inode's volatile shadow in favor of its durable shadow, as
// a power loss would. Handles open at the time of the crash are dead;
// continue with fresh operations.
func (fs *ModelFileSystem) Crash() {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	seen := make(map[*inode]bool)
	var visit func(in *inode)
	visit = func(in *inode) {
		if seen[in] {
			return
		}
		seen[in] = true

		if in.dir {
			in.volatileEntries = make(map[string]*inode, len(in.durableEntries))
			for name, child := range in.durableEntries {
				in.volatileEntries[name] = child
			}
			in.nameVersions = make(map[string]uint64)

			for _, child := range in.durableEntries {
				visit(child)
			}
		} else {
			in.volatileContents = append([]byte(nil), in.durableContents...)
		}

		in.volatileMtime = in.durableMtime
	}

	// Walk the durable closure, then fix up inodes only reachable through
	// volatile entries before those entries are discarded.
	volatileOnly := fs.collectVolatileClosure()
	visit(fs.root)
	for _, in := range volatileOnly {
		if !seen[in] {
			visit(in)
		}
	}
}

// LOCKS_REQUIRED(fs.mu)
func (fs *ModelFileSystem) collectVolatileClosure() []*inode {
	var all []*inode
	seen := make(map[*inode]bool)
	var visit func(in *inode)
	visit = func(in *inode) {
		if seen[in] {
			return
		}
		seen[in] = true
		all = append(all, in)

		for _, child := range in.volatileEntries {
			visit(child)
		}
		for _, child := range in.durableEntries {
			visit(child)
		}
	}

	visit(fs.root)
	return all
}

// Return a read-only projection of the durable state: what the file system
// would contain after a crash at this instant. The snapshot aliases live
// structures and is valid only until the next operation.
func (fs *ModelFileSystem) DurableState() *Snapshot {
	return &Snapshot{root: fs.root}
}

// Read the volatile contents of the file at the supplied path.
func (fs *ModelFileSystem) ReadFile(p durablefs.Path) ([]byte, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	in, err := fs.resolve(p)
	if err != nil {
		return nil, err
	}

	if in.dir {
		return nil, &os.PathError{Op: "read", Path: p.String(), Err: durablefs.EISDIR}
	}

	return append([]byte(nil), in.volatileContents...), nil
}

// Report whether the path exists in the volatile state and whether it is a
// directory.
func (fs *ModelFileSystem) Lookup(p durablefs.Path) (exists bool, isDir bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	in, err := fs.resolve(p)
	if err != nil {
		return false, false
	}

	return true, in.dir
}

// Return the volatile modification time of the entry at the supplied path.
func (fs *ModelFileSystem) Mtime(p durablefs.Path) (time.Time, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	in, err := fs.resolve(p)
	if err != nil {
		return time.Time{}, err
	}

	return in.volatileMtime, nil
}
