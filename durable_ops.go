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
	"bytes"
	"errors"
	"fmt"
	"io"
)

// When streaming into a file, read input in chunks of this size.
const streamChunkSize = 8192

// A stateless façade offering crash-safe compound operations over a
// FileSystem. Safe for concurrent use.
//
// Each operation accepts path strings, promotes them to absolute form, and
// fails with EINVAL where the promoted path lacks a required parent or file
// name.
type DurableOps struct {
	fs FileSystem
}

func New(fs FileSystem) *DurableOps {
	return &DurableOps{fs: fs}
}

////////////////////////////////////////////////////////////////////////
// CreateDirectories
////////////////////////////////////////////////////////////////////////

// Create every missing component of the supplied path, making each new
// component durable before proceeding to the next.
//
// On return every component exists as a directory. A failure part way
// through may leave a prefix of the components created, but each created
// prefix is individually durable. An existing directory at any component is
// acceptable; an existing non-directory surfaces as an error.
//
// Applying the operation twice has the same effect as applying it once.
func (o *DurableOps) CreateDirectories(path string) error {
	p, err := MakePath(path)
	if err != nil {
		return err
	}

	debugLogf("CreateDirectories(%q)", p)

	current := p.Root()
	for _, name := range p.NameComponents() {
		if err := o.createOneComponent(current, name); err != nil {
			return fmt.Errorf("creating %q in %q: %w", name, current, err)
		}

		current = current.Resolve(name)
	}

	return nil
}

// Ensure that name exists as a directory within parent, durably.
//
// The parent handle is opened before the modification so that its sync
// covers the mkdir.
func (o *DurableOps) createOneComponent(parent Path, name string) (err error) {
	d, err := o.fs.OpenDirectory(parent)
	if err != nil {
		return fmt.Errorf("OpenDirectory: %w", err)
	}

	defer func() {
		closeErr := d.Close()
		if err == nil {
			err = closeErr
		}
	}()

	readable, err := o.fs.IsReadableDirectory(d, name)
	if err != nil {
		return fmt.Errorf("IsReadableDirectory: %w", err)
	}

	if !readable {
		err = o.fs.Mkdir(d, name)

		// A concurrent creator may have won the race. That is benign if what
		// it created is a directory.
		if errors.Is(err, EEXIST) {
			var nowReadable bool
			nowReadable, err = o.fs.IsReadableDirectory(d, name)
			if err == nil && !nowReadable {
				err = fmt.Errorf("%q exists and is not a directory: %w", name, EEXIST)
			}
		}

		if err != nil {
			return fmt.Errorf("Mkdir: %w", err)
		}
	}

	if err := d.Sync(); err != nil {
		return fmt.Errorf("Sync: %w", err)
	}

	return nil
}

////////////////////////////////////////////////////////////////////////
// Move
////////////////////////////////////////////////////////////////////////

// Atomically and durably rename src to tgt.
//
// After success the target has the original source contents and the source
// no longer exists; both facts are durable. Moves across file systems fail
// with EXDEV. A target that is a directory, empty or not, fails with EISDIR.
func (o *DurableOps) Move(src string, tgt string) error {
	debugLogf("Move(%q, %q)", src, tgt)
	return o.move(src, tgt, true)
}

// As in Move, but only the target directory's change is made durable. Useful
// when the source is a temporary file whose durable deletion is not
// meaningful, as in AtomicDurableOutputStream.Commit.
func (o *DurableOps) MoveWithoutPromisingSourceDeletion(src string, tgt string) error {
	debugLogf("MoveWithoutPromisingSourceDeletion(%q, %q)", src, tgt)
	return o.move(src, tgt, false)
}

func (o *DurableOps) move(src string, tgt string, syncSource bool) error {
	srcPath, err := MakePath(src)
	if err != nil {
		return err
	}

	tgtPath, err := MakePath(tgt)
	if err != nil {
		return err
	}

	return moveDurably(o.fs, srcPath, tgtPath, syncSource)
}

// The common implementation of the two durable move variants. Both parent
// handles are opened before the rename so that the sync contract applies to
// the rename itself; when the parents coincide, the handles simply refer to
// the same inode and both syncs remain well-defined.
func moveDurably(fs FileSystem, src Path, tgt Path, syncSource bool) (err error) {
	srcParent, srcOK := src.Parent()
	srcName, _ := src.FileName()
	tgtParent, tgtOK := tgt.Parent()
	tgtName, _ := tgt.FileName()

	if !srcOK {
		return fmt.Errorf("%q has no parent: %w", src, EINVAL)
	}

	if !tgtOK {
		return fmt.Errorf("%q has no parent: %w", tgt, EINVAL)
	}

	sd, err := fs.OpenDirectory(srcParent)
	if err != nil {
		return fmt.Errorf("OpenDirectory(source parent): %w", err)
	}

	defer func() {
		closeErr := sd.Close()
		if err == nil {
			err = closeErr
		}
	}()

	td, err := fs.OpenDirectory(tgtParent)
	if err != nil {
		return fmt.Errorf("OpenDirectory(target parent): %w", err)
	}

	defer func() {
		closeErr := td.Close()
		if err == nil {
			err = closeErr
		}
	}()

	if err := fs.Rename(sd, srcName, td, tgtName); err != nil {
		return fmt.Errorf("Rename: %w", err)
	}

	if err := td.Sync(); err != nil {
		return fmt.Errorf("Sync(target parent): %w", err)
	}

	if syncSource {
		if err := sd.Sync(); err != nil {
			return fmt.Errorf("Sync(source parent): %w", err)
		}
	}

	return nil
}

////////////////////////////////////////////////////////////////////////
// AtomicallyDelete
////////////////////////////////////////////////////////////////////////

// Atomically and durably delete the entry at the supplied path, along with
// everything below it.
//
// From the perspective of the entry's parent, the entry either durably
// existed before the call or durably does not exist after it; no partially
// deleted subtree is ever observable at the path. Non-empty subtrees are
// renamed into a temporary directory in a single atomic step and then
// reclaimed best-effort; leftover junk in the temp area is acceptable.
//
// The staging rename may cross file systems when the temp area lives on a
// different device, in which case the operation fails with EXDEV. Supply a
// FileSystem whose CreateTempDir stages nearby to avoid this.
func (o *DurableOps) AtomicallyDelete(path string) (err error) {
	p, err := MakePath(path)
	if err != nil {
		return err
	}

	debugLogf("AtomicallyDelete(%q)", p)

	parent, ok := p.Parent()
	name, _ := p.FileName()
	if !ok {
		return fmt.Errorf("%q has no parent: %w", p, EINVAL)
	}

	d, err := o.fs.OpenDirectory(parent)
	if err != nil {
		return fmt.Errorf("OpenDirectory: %w", err)
	}

	// Close is idempotent; this covers the error paths before the explicit
	// close below.
	defer d.Close()

	// Unlink handles files and empty directories. A non-empty directory is
	// renamed out of the parent in one atomic step instead.
	var staging Path
	var staged bool

	err = o.fs.Unlink(d, name)
	if errors.Is(err, ENOTEMPTY) {
		staging, err = o.fs.CreateTempDir()
		if err != nil {
			return fmt.Errorf("CreateTempDir: %w", err)
		}

		if err := o.fs.MoveAtomically(p, staging.Resolve("thingToDelete")); err != nil {
			return fmt.Errorf("MoveAtomically: %w", err)
		}

		staged = true
	} else if err != nil {
		return fmt.Errorf("Unlink: %w", err)
	}

	if err := d.Sync(); err != nil {
		return fmt.Errorf("Sync: %w", err)
	}

	if err := d.Close(); err != nil {
		return fmt.Errorf("Close: %w", err)
	}

	// The entry's absence is durable at this point, so a crash below cannot
	// revive it. Reclaim the staged subtree without making any promises.
	if staged {
		o.deleteBestEffort(staging)
	}

	return nil
}

// Recursively delete the subtree rooted at the supplied path, ignoring all
// errors. Offers no crash guarantees.
func (o *DurableOps) deleteBestEffort(root Path) {
	gaveUp := make(map[string]bool)
	stack := []Path{root}
	for len(stack) > 0 {
		p := stack[len(stack)-1]

		err := o.fs.DeleteIfExists(p)
		if err == nil {
			stack = stack[:len(stack)-1]
			continue
		}

		if errors.Is(err, ENOTEMPTY) {
			names, listErr := o.fs.List(p)
			pushed := false
			if listErr == nil {
				for _, n := range names {
					child := p.Resolve(n)
					if !gaveUp[child.String()] {
						stack = append(stack, child)
						pushed = true
					}
				}
			}

			if pushed {
				continue
			}
		}

		// Give up on this entry so an undeletable child can't make its
		// ancestors spin.
		gaveUp[p.String()] = true
		stack = stack[:len(stack)-1]
	}
}

////////////////////////////////////////////////////////////////////////
// WriteFile
////////////////////////////////////////////////////////////////////////

// Write the supplied bytes to the path atomically and durably, creating
// intermediate directories if absent. An external observer sees the target
// either in its previous state or containing exactly the supplied bytes.
//
// The intermediate directories are not created atomically as a group; each
// is individually durable as in CreateDirectories.
func (o *DurableOps) WriteFile(path string, p []byte) error {
	return o.WriteFrom(path, bytes.NewReader(p))
}

// As in WriteFile, reading the contents from the supplied reader in
// fixed-size chunks. A reader that implements io.WriterTo writes its
// contents to the stream itself instead.
func (o *DurableOps) WriteFrom(path string, r io.Reader) (err error) {
	p, err := MakePath(path)
	if err != nil {
		return err
	}

	debugLogf("WriteFrom(%q)", p)

	parent, ok := p.Parent()
	if !ok {
		return fmt.Errorf("%q has no parent: %w", p, EINVAL)
	}

	s, err := o.CreateOutputStream(path)
	if err != nil {
		return fmt.Errorf("CreateOutputStream: %w", err)
	}

	// If commit below doesn't run, closing aborts: the target is untouched
	// and the staging file is deleted best-effort.
	defer func() {
		closeErr := s.Close()
		if err == nil {
			err = closeErr
		}
	}()

	// Readers with a known remaining size let us reserve space up front.
	if lr, ok := r.(interface{ Len() int }); ok {
		if err := s.Preallocate(int64(lr.Len())); err != nil {
			return fmt.Errorf("Preallocate: %w", err)
		}
	}

	buf := make([]byte, streamChunkSize)
	if _, err := io.CopyBuffer(s, r, buf); err != nil {
		return fmt.Errorf("copying contents: %w", err)
	}

	// Write the body first, then ensure the destination's parent exists
	// durably, then commit. This ordering guarantees that the commit's
	// rename lands in a durable parent.
	if err := o.CreateDirectories(parent.String()); err != nil {
		return fmt.Errorf("CreateDirectories: %w", err)
	}

	if err := s.Commit(); err != nil {
		return fmt.Errorf("Commit: %w", err)
	}

	return nil
}
