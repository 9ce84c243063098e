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

// Package osfs implements the durablefs file system capability on top of
// the host operating system.
//
// Directory handles are file descriptors opened with O_DIRECTORY, so
// renames, links, and unlinks performed relative to them can be made
// durable by syncing the descriptor. Platforms that reject fsync on a
// directory descriptor degrade to best-effort durability for directory
// changes.
package osfs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/detailyang/go-fallocate"
	"github.com/jacobsa/durablefs"
	"golang.org/x/sys/unix"
)

// Create a FileSystem backed by the host operating system. Temporary files
// and directories come from the system's default temp area.
func New() durablefs.FileSystem {
	return &osFileSystem{}
}

type osFileSystem struct {
}

func (fs *osFileSystem) CreateTempDir() (durablefs.Path, error) {
	dir, err := os.MkdirTemp("", "durablefs")
	if err != nil {
		return durablefs.Path{}, fmt.Errorf("MkdirTemp: %w", err)
	}

	return durablefs.MakePath(dir)
}

func (fs *osFileSystem) CreateTempFile() (durablefs.Path, error) {
	f, err := os.CreateTemp("", "durablefs")
	if err != nil {
		return durablefs.Path{}, fmt.Errorf("CreateTemp: %w", err)
	}

	name := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return durablefs.Path{}, fmt.Errorf("Close: %w", err)
	}

	return durablefs.MakePath(name)
}

func (fs *osFileSystem) OpenDirectory(p durablefs.Path) (durablefs.DirHandle, error) {
	fd, err := unix.Open(p.String(), unix.O_RDONLY|unix.O_DIRECTORY, 0)
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: p.String(), Err: err}
	}

	return &dirHandle{fd: fd, name: p.String()}, nil
}

func (fs *osFileSystem) OpenFile(p durablefs.Path) (durablefs.FileHandle, error) {
	f, err := os.OpenFile(p.String(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return nil, err
	}

	return &fileHandle{f: f}, nil
}

func (fs *osFileSystem) List(p durablefs.Path) ([]string, error) {
	entries, err := os.ReadDir(p.String())
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}

	return names, nil
}

func (fs *osFileSystem) IsReadableDirectory(
	d durablefs.DirHandle,
	name string) (bool, error) {
	dh := d.(*dirHandle)

	fd, err := unix.Openat(dh.fd, name, unix.O_RDONLY|unix.O_DIRECTORY, 0)
	switch {
	case err == nil:
		_ = unix.Close(fd)
		return true, nil

	case errors.Is(err, unix.ENOENT),
		errors.Is(err, unix.ENOTDIR),
		errors.Is(err, unix.EACCES):
		return false, nil

	default:
		return false, &os.PathError{Op: "openat", Path: name, Err: err}
	}
}

func (fs *osFileSystem) Mkdir(d durablefs.DirHandle, name string) error {
	dh := d.(*dirHandle)

	if err := unix.Mkdirat(dh.fd, name, 0777); err != nil {
		return &os.PathError{Op: "mkdirat", Path: name, Err: err}
	}

	return nil
}

func (fs *osFileSystem) Unlink(d durablefs.DirHandle, name string) error {
	dh := d.(*dirHandle)

	err := unix.Unlinkat(dh.fd, name, 0)

	// unlink(2) refuses directories with EISDIR on Linux and EPERM on
	// Darwin. Retry as a directory removal, which distinguishes non-empty
	// directories with ENOTEMPTY.
	if errors.Is(err, unix.EISDIR) || errors.Is(err, unix.EPERM) {
		err = unix.Unlinkat(dh.fd, name, unix.AT_REMOVEDIR)
	}

	if err != nil {
		return &os.PathError{Op: "unlinkat", Path: name, Err: err}
	}

	return nil
}

func (fs *osFileSystem) Rename(
	srcDir durablefs.DirHandle,
	srcName string,
	tgtDir durablefs.DirHandle,
	tgtName string) error {
	sd := srcDir.(*dirHandle)
	td := tgtDir.(*dirHandle)

	// rename(2) is willing to replace an empty directory when the source is
	// also a directory; our contract refuses any directory target.
	var st unix.Stat_t
	statErr := unix.Fstatat(td.fd, tgtName, &st, unix.AT_SYMLINK_NOFOLLOW)
	if statErr == nil && st.Mode&unix.S_IFMT == unix.S_IFDIR {
		return &os.LinkError{
			Op:  "renameat",
			Old: srcName,
			New: tgtName,
			Err: unix.EISDIR,
		}
	}

	if err := unix.Renameat(sd.fd, srcName, td.fd, tgtName); err != nil {
		return &os.LinkError{Op: "renameat", Old: srcName, New: tgtName, Err: err}
	}

	return nil
}

func (fs *osFileSystem) DeleteIfExists(p durablefs.Path) error {
	return durablefs.DefaultDeleteIfExists(fs, p)
}

func (fs *osFileSystem) MoveAtomically(src durablefs.Path, tgt durablefs.Path) error {
	return durablefs.DefaultMoveAtomically(fs, src, tgt)
}

////////////////////////////////////////////////////////////////////////
// Handles
////////////////////////////////////////////////////////////////////////

type dirHandle struct {
	name string

	mu     sync.Mutex
	fd     int  // GUARDED_BY(mu)
	closed bool // GUARDED_BY(mu)
}

func (h *dirHandle) Sync() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return &os.PathError{Op: "fsync", Path: h.name, Err: unix.EBADF}
	}

	err := fullSync(h.fd)

	// Some file systems refuse fsync on a directory descriptor; degrade to
	// best-effort durability for directory changes.
	if errors.Is(err, unix.EINVAL) || errors.Is(err, unix.ENOTSUP) {
		err = nil
	}

	if err != nil {
		return &os.PathError{Op: "fsync", Path: h.name, Err: err}
	}

	return nil
}

func (h *dirHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}

	h.closed = true
	if err := unix.Close(h.fd); err != nil {
		return &os.PathError{Op: "close", Path: h.name, Err: err}
	}

	return nil
}

type fileHandle struct {
	mu     sync.Mutex
	f      *os.File
	closed bool // GUARDED_BY(mu)
}

func (h *fileHandle) Write(p []byte) (int, error) {
	return h.f.Write(p)
}

func (h *fileHandle) Sync() error {
	// Preallocation may have extended the file past the bytes written
	// through the handle. Trim it to the write offset so that the file holds
	// exactly those bytes.
	off, err := h.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("Seek: %w", err)
	}

	if err := h.f.Truncate(off); err != nil {
		return fmt.Errorf("Truncate: %w", err)
	}

	if err := fullSync(int(h.f.Fd())); err != nil {
		return &os.PathError{Op: "fsync", Path: h.f.Name(), Err: err}
	}

	return nil
}

func (h *fileHandle) Preallocate(n int64) error {
	if n <= 0 {
		return nil
	}

	return fallocate.Fallocate(h.f, 0, n)
}

func (h *fileHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}

	h.closed = true
	return h.f.Close()
}
