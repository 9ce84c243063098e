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

package durablefs_test

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/jacobsa/durablefs"
	"github.com/jacobsa/durablefs/crashtesting"
	"github.com/jacobsa/durablefs/mock_durablefs"
	"github.com/jacobsa/durablefs/modelfs"
	. "github.com/jacobsa/oglematchers"
	. "github.com/jacobsa/oglemock"
	. "github.com/jacobsa/ogletest"
	"github.com/jacobsa/timeutil"
)

func TestDurableOps(t *testing.T) { RunTests(t) }

////////////////////////////////////////////////////////////////////////
// Helpers
////////////////////////////////////////////////////////////////////////

func makePath(s string) durablefs.Path {
	p, err := durablefs.MakePath(s)
	AssertEq(nil, err)
	return p
}

// A file system wrapper that records open, mkdir, unlink, rename, sync, and
// close calls, for verifying the ordering discipline of the durable
// operations.
type recordingFs struct {
	wrapped durablefs.FileSystem
	trace   []string
}

func (fs *recordingFs) record(format string, args ...interface{}) {
	fs.trace = append(fs.trace, fmt.Sprintf(format, args...))
}

func unwrapDir(d durablefs.DirHandle) durablefs.DirHandle {
	if r, ok := d.(*recDirHandle); ok {
		return r.wrapped
	}
	return d
}

func (fs *recordingFs) CreateTempDir() (durablefs.Path, error) {
	return fs.wrapped.CreateTempDir()
}

func (fs *recordingFs) CreateTempFile() (durablefs.Path, error) {
	return fs.wrapped.CreateTempFile()
}

func (fs *recordingFs) OpenDirectory(p durablefs.Path) (durablefs.DirHandle, error) {
	d, err := fs.wrapped.OpenDirectory(p)
	if err != nil {
		return nil, err
	}

	fs.record("OpenDirectory(%s)", p)
	return &recDirHandle{fs: fs, wrapped: d, name: p.String()}, nil
}

func (fs *recordingFs) OpenFile(p durablefs.Path) (durablefs.FileHandle, error) {
	return fs.wrapped.OpenFile(p)
}

func (fs *recordingFs) List(p durablefs.Path) ([]string, error) {
	return fs.wrapped.List(p)
}

func (fs *recordingFs) IsReadableDirectory(d durablefs.DirHandle, name string) (bool, error) {
	return fs.wrapped.IsReadableDirectory(unwrapDir(d), name)
}

func (fs *recordingFs) Mkdir(d durablefs.DirHandle, name string) error {
	err := fs.wrapped.Mkdir(unwrapDir(d), name)
	if err == nil {
		fs.record("Mkdir(%s)", name)
	}
	return err
}

func (fs *recordingFs) Unlink(d durablefs.DirHandle, name string) error {
	err := fs.wrapped.Unlink(unwrapDir(d), name)
	if err == nil {
		fs.record("Unlink(%s)", name)
	}
	return err
}

func (fs *recordingFs) Rename(
	srcDir durablefs.DirHandle,
	srcName string,
	tgtDir durablefs.DirHandle,
	tgtName string) error {
	err := fs.wrapped.Rename(unwrapDir(srcDir), srcName, unwrapDir(tgtDir), tgtName)
	if err == nil {
		fs.record("Rename(%s -> %s)", srcName, tgtName)
	}
	return err
}

func (fs *recordingFs) DeleteIfExists(p durablefs.Path) error {
	return durablefs.DefaultDeleteIfExists(fs, p)
}

func (fs *recordingFs) MoveAtomically(src durablefs.Path, tgt durablefs.Path) error {
	return durablefs.DefaultMoveAtomically(fs, src, tgt)
}

type recDirHandle struct {
	fs      *recordingFs
	wrapped durablefs.DirHandle
	name    string
	closed  bool
}

func (h *recDirHandle) Sync() error {
	err := h.wrapped.Sync()
	if err == nil {
		h.fs.record("Sync(%s)", h.name)
	}
	return err
}

func (h *recDirHandle) Close() error {
	if !h.closed {
		h.fs.record("Close(%s)", h.name)
		h.closed = true
	}
	return h.wrapped.Close()
}

////////////////////////////////////////////////////////////////////////
// Boilerplate
////////////////////////////////////////////////////////////////////////

type opsTest struct {
	clock timeutil.SimulatedClock
	fs    *modelfs.ModelFileSystem
	ops   *durablefs.DurableOps
}

func (t *opsTest) SetUp(ti *TestInfo) {
	t.clock.SetTime(time.Date(2017, 3, 4, 5, 6, 7, 0, time.UTC))
	t.fs = modelfs.NewModelFileSystem(17, &t.clock)
	t.ops = durablefs.New(t.fs)
}

func (t *opsTest) mustWrite(path string, contents string) {
	AssertEq(nil, t.ops.WriteFile(path, []byte(contents)))
}

func (t *opsTest) readVolatile(path string) string {
	contents, err := t.fs.ReadFile(makePath(path))
	AssertEq(nil, err)
	return string(contents)
}

////////////////////////////////////////////////////////////////////////
// CreateDirectories
////////////////////////////////////////////////////////////////////////

type CreateDirectoriesTest struct {
	opsTest
}

func init() { RegisterTestSuite(&CreateDirectoriesTest{}) }

func (t *CreateDirectoriesTest) CreatesAllComponents() {
	AssertEq(nil, t.ops.CreateDirectories("/r/a/b/c"))

	for _, p := range []string{"/r", "/r/a", "/r/a/b", "/r/a/b/c"} {
		exists, isDir := t.fs.Lookup(makePath(p))
		ExpectTrue(exists, "path: %s", p)
		ExpectTrue(isDir, "path: %s", p)
	}
}

func (t *CreateDirectoriesTest) EachComponentIsDurable() {
	AssertEq(nil, t.ops.CreateDirectories("/r/a/b"))

	snap := t.fs.DurableState()
	ExpectThat(snap, crashtesting.DurablyADirectory("/r"))
	ExpectThat(snap, crashtesting.DurablyADirectory("/r/a"))
	ExpectThat(snap, crashtesting.DurablyADirectory("/r/a/b"))
}

func (t *CreateDirectoriesTest) SurvivesCrash() {
	AssertEq(nil, t.ops.CreateDirectories("/r/a"))

	t.fs.Crash()

	exists, isDir := t.fs.Lookup(makePath("/r/a"))
	ExpectTrue(exists)
	ExpectTrue(isDir)
}

func (t *CreateDirectoriesTest) Idempotent() {
	AssertEq(nil, t.ops.CreateDirectories("/r/a/b"))
	before := t.fs.DurableState().Dump()

	AssertEq(nil, t.ops.CreateDirectories("/r/a/b"))
	ExpectEq(before, t.fs.DurableState().Dump())
}

func (t *CreateDirectoriesTest) ExistingDirectoriesAreAcceptable() {
	AssertEq(nil, t.ops.CreateDirectories("/r/a"))
	AssertEq(nil, t.ops.CreateDirectories("/r/a/b/c"))

	exists, isDir := t.fs.Lookup(makePath("/r/a/b/c"))
	ExpectTrue(exists)
	ExpectTrue(isDir)
}

func (t *CreateDirectoriesTest) ExistingNonDirectoryComponent() {
	t.mustWrite("/r/x", "taco")

	err := t.ops.CreateDirectories("/r/x/y")
	ExpectTrue(errors.Is(err, durablefs.EEXIST), "err: %v", err)

	// The file is untouched.
	ExpectEq("taco", t.readVolatile("/r/x"))
}

func (t *CreateDirectoriesTest) Ordering() {
	AssertEq(nil, t.ops.CreateDirectories("/r"))

	rec := &recordingFs{wrapped: t.fs}
	ops := durablefs.New(rec)
	AssertEq(nil, ops.CreateDirectories("/r/a"))

	// The handle must be open before the mkdir so that the sync covers it.
	ExpectThat(
		rec.trace,
		ElementsAre(
			"OpenDirectory(/)",
			"Sync(/)",
			"Close(/)",
			"OpenDirectory(/r)",
			"Mkdir(a)",
			"Sync(/r)",
			"Close(/r)"))
}

////////////////////////////////////////////////////////////////////////
// Move
////////////////////////////////////////////////////////////////////////

type MoveTest struct {
	opsTest
}

func init() { RegisterTestSuite(&MoveTest{}) }

func (t *MoveTest) ReplacesTargetDurably() {
	t.mustWrite("/r/child", "hello")
	t.mustWrite("/r/target", "goodbye")

	AssertEq(nil, t.ops.Move("/r/child", "/r/target"))

	ExpectEq("hello", t.readVolatile("/r/target"))

	exists, _ := t.fs.Lookup(makePath("/r/child"))
	ExpectFalse(exists)

	snap := t.fs.DurableState()
	ExpectThat(snap, crashtesting.DurablyContains("/r/target", []byte("hello")))
	ExpectThat(snap, crashtesting.DurablyAbsent("/r/child"))
}

func (t *MoveTest) AcrossDirectories() {
	AssertEq(nil, t.ops.CreateDirectories("/r/a"))
	AssertEq(nil, t.ops.CreateDirectories("/r/b"))
	t.mustWrite("/r/a/f", "taco")

	AssertEq(nil, t.ops.Move("/r/a/f", "/r/b/g"))

	ExpectEq("taco", t.readVolatile("/r/b/g"))
	ExpectThat(t.fs.DurableState(), crashtesting.DurablyContains("/r/b/g", []byte("taco")))
}

func (t *MoveTest) TargetIsDirectory() {
	t.mustWrite("/r/child", "hello")
	AssertEq(nil, t.ops.CreateDirectories("/r/target"))

	err := t.ops.Move("/r/child", "/r/target")
	ExpectTrue(errors.Is(err, durablefs.EISDIR), "err: %v", err)

	// Nothing changed.
	ExpectEq("hello", t.readVolatile("/r/child"))

	_, isDir := t.fs.Lookup(makePath("/r/target"))
	ExpectTrue(isDir)
}

func (t *MoveTest) MissingSource() {
	AssertEq(nil, t.ops.CreateDirectories("/r"))

	err := t.ops.Move("/r/nope", "/r/target")
	ExpectTrue(errors.Is(err, durablefs.ENOENT), "err: %v", err)
}

func (t *MoveTest) AcrossDevices() {
	fs := modelfs.NewModelFileSystem(17, &t.clock)
	fs.SetSeparateTempDevice()
	ops := durablefs.New(fs)

	// Create the file directly: with the temp area on its own device,
	// WriteFile's staging rename would itself fail with EXDEV.
	AssertEq(nil, ops.CreateDirectories("/r"))
	f, err := fs.OpenFile(makePath("/r/f"))
	AssertEq(nil, err)
	_, err = f.Write([]byte("taco"))
	AssertEq(nil, err)
	AssertEq(nil, f.Close())

	tmp, err := fs.CreateTempDir()
	AssertEq(nil, err)

	err = ops.Move("/r/f", tmp.Resolve("g").String())
	ExpectTrue(errors.Is(err, durablefs.EXDEV), "err: %v", err)
}

func (t *MoveTest) Ordering() {
	AssertEq(nil, t.ops.CreateDirectories("/r/a"))
	AssertEq(nil, t.ops.CreateDirectories("/r/b"))
	t.mustWrite("/r/a/f", "taco")

	rec := &recordingFs{wrapped: t.fs}
	ops := durablefs.New(rec)
	AssertEq(nil, ops.Move("/r/a/f", "/r/b/g"))

	// Both handles open before the rename; target parent synced first;
	// nothing synced after close.
	ExpectThat(
		rec.trace,
		ElementsAre(
			"OpenDirectory(/r/a)",
			"OpenDirectory(/r/b)",
			"Rename(f -> g)",
			"Sync(/r/b)",
			"Sync(/r/a)",
			"Close(/r/b)",
			"Close(/r/a)"))
}

func (t *MoveTest) WithoutPromisingSourceDeletionSkipsSourceSync() {
	AssertEq(nil, t.ops.CreateDirectories("/r/a"))
	AssertEq(nil, t.ops.CreateDirectories("/r/b"))
	t.mustWrite("/r/a/f", "taco")

	rec := &recordingFs{wrapped: t.fs}
	ops := durablefs.New(rec)
	AssertEq(nil, ops.MoveWithoutPromisingSourceDeletion("/r/a/f", "/r/b/g"))

	ExpectThat(
		rec.trace,
		ElementsAre(
			"OpenDirectory(/r/a)",
			"OpenDirectory(/r/b)",
			"Rename(f -> g)",
			"Sync(/r/b)",
			"Close(/r/b)",
			"Close(/r/a)"))
}

////////////////////////////////////////////////////////////////////////
// AtomicallyDelete
////////////////////////////////////////////////////////////////////////

type AtomicallyDeleteTest struct {
	opsTest
}

func init() { RegisterTestSuite(&AtomicallyDeleteTest{}) }

func (t *AtomicallyDeleteTest) File() {
	t.mustWrite("/r/f", "taco")

	AssertEq(nil, t.ops.AtomicallyDelete("/r/f"))

	exists, _ := t.fs.Lookup(makePath("/r/f"))
	ExpectFalse(exists)
	ExpectThat(t.fs.DurableState(), crashtesting.DurablyAbsent("/r/f"))
}

func (t *AtomicallyDeleteTest) EmptyDirectory() {
	AssertEq(nil, t.ops.CreateDirectories("/r/d"))

	AssertEq(nil, t.ops.AtomicallyDelete("/r/d"))

	exists, _ := t.fs.Lookup(makePath("/r/d"))
	ExpectFalse(exists)
	ExpectThat(t.fs.DurableState(), crashtesting.DurablyAbsent("/r/d"))
}

func (t *AtomicallyDeleteTest) NonEmptySubtree() {
	AssertEq(nil, t.ops.CreateDirectories("/r/subfolder"))
	t.mustWrite("/r/subfolder/subchild", "a")
	t.mustWrite("/r/child", "b")

	AssertEq(nil, t.ops.AtomicallyDelete("/r"))

	exists, _ := t.fs.Lookup(makePath("/r"))
	ExpectFalse(exists)
	ExpectThat(t.fs.DurableState(), crashtesting.DurablyAbsent("/r"))
}

func (t *AtomicallyDeleteTest) SurvivesCrash() {
	t.mustWrite("/r/d/f", "taco")

	AssertEq(nil, t.ops.AtomicallyDelete("/r/d"))

	t.fs.Crash()

	exists, _ := t.fs.Lookup(makePath("/r/d"))
	ExpectFalse(exists)
}

func (t *AtomicallyDeleteTest) MissingEntry() {
	AssertEq(nil, t.ops.CreateDirectories("/r"))

	err := t.ops.AtomicallyDelete("/r/nope")
	ExpectTrue(errors.Is(err, durablefs.ENOENT), "err: %v", err)
}

func (t *AtomicallyDeleteTest) TempAreaOnSeparateDevice() {
	fs := modelfs.NewModelFileSystem(17, &t.clock)
	fs.SetSeparateTempDevice()
	ops := durablefs.New(fs)

	AssertEq(nil, ops.CreateDirectories("/r/d"))

	// Create the file directly: with the temp area on its own device,
	// WriteFile's staging rename would itself fail with EXDEV.
	f, err := fs.OpenFile(makePath("/r/d/f"))
	AssertEq(nil, err)
	_, err = f.Write([]byte("taco"))
	AssertEq(nil, err)
	AssertEq(nil, f.Close())

	// The staging rename cannot cross devices.
	err = ops.AtomicallyDelete("/r/d")
	ExpectTrue(errors.Is(err, durablefs.EXDEV), "err: %v", err)

	// The subtree is intact.
	contents, readErr := fs.ReadFile(makePath("/r/d/f"))
	AssertEq(nil, readErr)
	ExpectEq("taco", string(contents))
}

func (t *AtomicallyDeleteTest) FileOrdering() {
	t.mustWrite("/r/f", "taco")

	rec := &recordingFs{wrapped: t.fs}
	ops := durablefs.New(rec)
	AssertEq(nil, ops.AtomicallyDelete("/r/f"))

	ExpectThat(
		rec.trace,
		ElementsAre(
			"OpenDirectory(/r)",
			"Unlink(f)",
			"Sync(/r)",
			"Close(/r)"))
}

func (t *AtomicallyDeleteTest) SubtreeCleanupRunsAfterDurabilitySync() {
	AssertEq(nil, t.ops.CreateDirectories("/r/d/sub"))

	rec := &recordingFs{wrapped: t.fs}
	ops := durablefs.New(rec)
	AssertEq(nil, ops.AtomicallyDelete("/r/d"))

	// Find the key events. The staging move opens and closes its own handle
	// on the parent, so take the last close.
	lastIdx := func(s string) int {
		found := -1
		for i, e := range rec.trace {
			if e == s {
				found = i
			}
		}
		if found == -1 {
			AddFailure("trace lacks %q: %v", s, rec.trace)
		}
		return found
	}

	renameIdx := -1
	for i, e := range rec.trace {
		if strings.HasPrefix(e, "Rename(d -> ") {
			renameIdx = i
		}
	}
	AssertNe(-1, renameIdx, "trace: %v", rec.trace)

	syncIdx := lastIdx("Sync(/r)")
	closeIdx := lastIdx("Close(/r)")

	ExpectLt(renameIdx, syncIdx)
	ExpectLt(syncIdx, closeIdx)

	// Best-effort unlinks of the staged subtree happen only after the
	// parent's durability sync.
	for i, e := range rec.trace {
		if strings.HasPrefix(e, "Unlink(") {
			ExpectLt(syncIdx, i, "event: %s", e)
		}
	}
}

////////////////////////////////////////////////////////////////////////
// Write
////////////////////////////////////////////////////////////////////////

type WriteTest struct {
	opsTest
}

func init() { RegisterTestSuite(&WriteTest{}) }

func (t *WriteTest) RoundTrip() {
	AssertEq(nil, t.ops.WriteFile("/r/f", []byte("taco")))

	ExpectEq("taco", t.readVolatile("/r/f"))
	ExpectThat(t.fs.DurableState(), crashtesting.DurablyContains("/r/f", []byte("taco")))
}

func (t *WriteTest) SurvivesCrash() {
	AssertEq(nil, t.ops.WriteFile("/r/f", []byte("taco")))

	t.fs.Crash()
	ExpectEq("taco", t.readVolatile("/r/f"))
}

func (t *WriteTest) CreatesIntermediateDirectories() {
	AssertEq(nil, t.ops.WriteFile("/r/a/b/c", []byte("my data")))

	ExpectEq("my data", t.readVolatile("/r/a/b/c"))

	snap := t.fs.DurableState()
	ExpectThat(snap, crashtesting.DurablyADirectory("/r/a/b"))
	ExpectThat(snap, crashtesting.DurablyContains("/r/a/b/c", []byte("my data")))
}

func (t *WriteTest) OverwritesExisting() {
	AssertEq(nil, t.ops.WriteFile("/r/f", []byte("taco")))
	AssertEq(nil, t.ops.WriteFile("/r/f", []byte("burrito")))

	ExpectEq("burrito", t.readVolatile("/r/f"))
	ExpectThat(t.fs.DurableState(), crashtesting.DurablyContains("/r/f", []byte("burrito")))
}

func (t *WriteTest) StreamingVariant() {
	contents := strings.Repeat("0123456789", 3000)

	// Hide the reader's size so the copy runs chunk by chunk.
	var r io.Reader = &io.LimitedReader{
		R: strings.NewReader(contents),
		N: int64(len(contents)),
	}

	AssertEq(nil, t.ops.WriteFrom("/r/f", r))
	ExpectEq(contents, t.readVolatile("/r/f"))
	ExpectThat(t.fs.DurableState(), crashtesting.DurablyContains("/r/f", []byte(contents)))
}

func (t *WriteTest) EmptyContents() {
	AssertEq(nil, t.ops.WriteFile("/r/f", nil))

	ExpectEq("", t.readVolatile("/r/f"))
	ExpectThat(t.fs.DurableState(), crashtesting.DurablyContains("/r/f", nil))
}

func (t *WriteTest) NoParent() {
	err := t.ops.WriteFile("/", []byte("taco"))
	ExpectTrue(errors.Is(err, durablefs.EINVAL), "err: %v", err)
}

////////////////////////////////////////////////////////////////////////
// Error injection
////////////////////////////////////////////////////////////////////////

type OpsFailureTest struct {
	fs  mock_durablefs.MockFileSystem
	sd  mock_durablefs.MockDirHandle
	td  mock_durablefs.MockDirHandle
	ops *durablefs.DurableOps
}

func init() { RegisterTestSuite(&OpsFailureTest{}) }

func (t *OpsFailureTest) SetUp(ti *TestInfo) {
	t.fs = mock_durablefs.NewMockFileSystem(ti.MockController, "fs")
	t.sd = mock_durablefs.NewMockDirHandle(ti.MockController, "sd")
	t.td = mock_durablefs.NewMockDirHandle(ti.MockController, "td")
	t.ops = durablefs.New(t.fs)
}

func (t *OpsFailureTest) Move_RenameFails() {
	ExpectCall(t.fs, "OpenDirectory")(Any()).
		WillOnce(Return(t.sd, nil)).
		WillOnce(Return(t.td, nil))

	ExpectCall(t.fs, "Rename")(Any(), Any(), Any(), Any()).
		WillOnce(Return(errors.New("taco")))

	// No sync may happen, but both handles must be released.
	ExpectCall(t.td, "Close")().WillOnce(Return(nil))
	ExpectCall(t.sd, "Close")().WillOnce(Return(nil))

	err := t.ops.Move("/a/f", "/b/g")
	ExpectThat(err, Error(HasSubstr("Rename")))
	ExpectThat(err, Error(HasSubstr("taco")))
}

func (t *OpsFailureTest) Move_TargetSyncFails() {
	ExpectCall(t.fs, "OpenDirectory")(Any()).
		WillOnce(Return(t.sd, nil)).
		WillOnce(Return(t.td, nil))

	ExpectCall(t.fs, "Rename")(Any(), Any(), Any(), Any()).
		WillOnce(Return(nil))

	// The source sync must be skipped when the target sync fails.
	ExpectCall(t.td, "Sync")().WillOnce(Return(errors.New("taco")))
	ExpectCall(t.td, "Close")().WillOnce(Return(nil))
	ExpectCall(t.sd, "Close")().WillOnce(Return(nil))

	err := t.ops.Move("/a/f", "/b/g")
	ExpectThat(err, Error(HasSubstr("taco")))
}

func (t *OpsFailureTest) Move_TargetParentOpenFails() {
	ExpectCall(t.fs, "OpenDirectory")(Any()).
		WillOnce(Return(t.sd, nil)).
		WillOnce(Return(nil, errors.New("taco")))

	ExpectCall(t.sd, "Close")().WillOnce(Return(nil))

	err := t.ops.Move("/a/f", "/b/g")
	ExpectThat(err, Error(HasSubstr("taco")))
}

func (t *OpsFailureTest) CreateDirectories_LostRaceToADirectory() {
	ExpectCall(t.fs, "OpenDirectory")(Any()).
		WillOnce(Return(t.sd, nil))

	ExpectCall(t.fs, "IsReadableDirectory")(Any(), Any()).
		WillOnce(Return(false, nil)).
		WillOnce(Return(true, nil))

	ExpectCall(t.fs, "Mkdir")(Any(), Any()).
		WillOnce(Return(&os.PathError{Op: "mkdir", Path: "a", Err: syscall.EEXIST}))

	ExpectCall(t.sd, "Sync")().WillOnce(Return(nil))
	ExpectCall(t.sd, "Close")().WillOnce(Return(nil))

	ExpectEq(nil, t.ops.CreateDirectories("/a"))
}

func (t *OpsFailureTest) CreateDirectories_LostRaceToANonDirectory() {
	ExpectCall(t.fs, "OpenDirectory")(Any()).
		WillOnce(Return(t.sd, nil))

	ExpectCall(t.fs, "IsReadableDirectory")(Any(), Any()).
		WillOnce(Return(false, nil)).
		WillOnce(Return(false, nil))

	ExpectCall(t.fs, "Mkdir")(Any(), Any()).
		WillOnce(Return(&os.PathError{Op: "mkdir", Path: "a", Err: syscall.EEXIST}))

	ExpectCall(t.sd, "Close")().WillOnce(Return(nil))

	err := t.ops.CreateDirectories("/a")
	ExpectTrue(errors.Is(err, durablefs.EEXIST), "err: %v", err)
}
