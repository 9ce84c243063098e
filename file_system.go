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
	"errors"
	"fmt"
	"io"
)

// An open reference to a directory. The handle is bound to the inode, not
// the path: if the directory is replaced on disk between open and sync, sync
// affects the inode that was opened.
//
// Handles are owned by the scope that opened them and must be released on
// every exit path. Close is idempotent on the implementations provided by
// this module.
type DirHandle interface {
	// Make durable all changes to the directory's contents that occurred
	// after the handle was opened. Changes made before the handle was opened
	// are not covered; algorithms that depend on directory durability must
	// open the handle first, then modify, then sync.
	Sync() error

	Close() error
}

// An open reference to a regular file opened for writing. Write appends to
// the file.
type FileHandle interface {
	io.Writer

	// Make durable all bytes written through the handle.
	Sync() error

	Close() error
}

// Implemented by file handles that can reserve space ahead of a write of
// known size. Callers treat absence of the interface as a no-op.
type Preallocater interface {
	Preallocate(n int64) error
}

// A uniform capability set over low-level file system operations. No
// operation in this interface provides any durability on its own; durability
// is composed by the layer above, which sequences these operations around
// handle syncs.
//
// Implementations must be safe for concurrent use. They report failures
// using the error kinds in errors.go, in a form recognized by errors.Is.
//
// Every operation is synchronous and blocking. None takes a context.Context;
// cancellation is not supported.
//
// The interface is abstract by intent: package osfs supplies the physical
// implementation, and package modelfs supplies one that simulates
// independent durable and volatile state for every inode along with
// arbitrary crash outcomes.
type FileSystem interface {
	// Create a new empty directory in the system temp area, returning its
	// path. Reimplement this to co-locate staging directories with the data
	// they stage when the temp area lives on a different file system.
	CreateTempDir() (Path, error)

	// Create a new empty regular file in the system temp area, returning its
	// path.
	CreateTempFile() (Path, error)

	// Open a directory for syncing. Fails if the path does not name a
	// readable directory.
	OpenDirectory(p Path) (DirHandle, error)

	// Open a regular file for writing, creating or truncating it.
	OpenFile(p Path) (FileHandle, error)

	// Return the names of the entries in the supplied directory.
	List(p Path) ([]string, error)

	// Does name refer to a readable directory within d?
	IsReadableDirectory(d DirHandle, name string) (bool, error)

	// Create a directory entry called name within d. Fails with EEXIST if
	// the name is taken.
	Mkdir(d DirHandle, name string) error

	// Remove the entry called name within d. Fails with ENOTEMPTY if the
	// name refers to a non-empty directory.
	Unlink(d DirHandle, name string) error

	// Atomically rename the entry srcName within srcDir to tgtName within
	// tgtDir, replacing a regular file at the target atomically. Fails with
	// EXDEV across file systems and with EISDIR if the target is a
	// directory.
	Rename(srcDir DirHandle, srcName string, tgtDir DirHandle, tgtName string) error

	// Remove the entry named by the path if it exists. Implementations may
	// delegate to DefaultDeleteIfExists.
	DeleteIfExists(p Path) error

	// Atomically rename src to tgt. Implementations may delegate to
	// DefaultMoveAtomically.
	MoveAtomically(src Path, tgt Path) error
}

// The default implementation of FileSystem.DeleteIfExists: open the parent
// directory, unlink the entry, tolerate its absence.
func DefaultDeleteIfExists(fs FileSystem, p Path) (err error) {
	parent, ok := p.Parent()
	name, _ := p.FileName()
	if !ok {
		return fmt.Errorf("%q has no parent: %w", p, EINVAL)
	}

	d, err := fs.OpenDirectory(parent)
	if err != nil {
		return fmt.Errorf("OpenDirectory: %w", err)
	}

	defer func() {
		closeErr := d.Close()
		if err == nil {
			err = closeErr
		}
	}()

	if err := fs.Unlink(d, name); err != nil && !errors.Is(err, ENOENT) {
		return fmt.Errorf("Unlink: %w", err)
	}

	return nil
}

// The default implementation of FileSystem.MoveAtomically: open both parent
// directories, rename. No durability is promised; see DurableOps.Move for
// the durable variant.
func DefaultMoveAtomically(fs FileSystem, src Path, tgt Path) (err error) {
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

	return nil
}
