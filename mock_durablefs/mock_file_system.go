// This file was auto-generated using createmock. See the following page for
// more information:
//
//     https://github.com/jacobsa/oglemock
//

package mock_durablefs

import (
	fmt "fmt"
	runtime "runtime"
	unsafe "unsafe"

	durablefs "github.com/jacobsa/durablefs"
	oglemock "github.com/jacobsa/oglemock"
)

type MockFileSystem interface {
	durablefs.FileSystem
	oglemock.MockObject
}

type mockFileSystem struct {
	controller  oglemock.Controller
	description string
}

func NewMockFileSystem(
	c oglemock.Controller,
	desc string) MockFileSystem {
	return &mockFileSystem{
		controller:  c,
		description: desc,
	}
}

func (m *mockFileSystem) Oglemock_Id() uintptr {
	return uintptr(unsafe.Pointer(m))
}

func (m *mockFileSystem) Oglemock_Description() string {
	return m.description
}

func (m *mockFileSystem) CreateTempDir() (o0 durablefs.Path, o1 error) {
	// Get a file name and line number for the caller.
	_, file, line, _ := runtime.Caller(1)

	// Hand the call off to the controller, which does most of the work.
	retVals := m.controller.HandleMethodCall(
		m,
		"CreateTempDir",
		file,
		line,
		[]interface{}{})

	if len(retVals) != 2 {
		panic(fmt.Sprintf("mockFileSystem.CreateTempDir: invalid return values: %v", retVals))
	}

	// o0 durablefs.Path
	if retVals[0] != nil {
		o0 = retVals[0].(durablefs.Path)
	}

	// o1 error
	if retVals[1] != nil {
		o1 = retVals[1].(error)
	}

	return
}

func (m *mockFileSystem) CreateTempFile() (o0 durablefs.Path, o1 error) {
	// Get a file name and line number for the caller.
	_, file, line, _ := runtime.Caller(1)

	// Hand the call off to the controller, which does most of the work.
	retVals := m.controller.HandleMethodCall(
		m,
		"CreateTempFile",
		file,
		line,
		[]interface{}{})

	if len(retVals) != 2 {
		panic(fmt.Sprintf("mockFileSystem.CreateTempFile: invalid return values: %v", retVals))
	}

	// o0 durablefs.Path
	if retVals[0] != nil {
		o0 = retVals[0].(durablefs.Path)
	}

	// o1 error
	if retVals[1] != nil {
		o1 = retVals[1].(error)
	}

	return
}

func (m *mockFileSystem) OpenDirectory(p0 durablefs.Path) (o0 durablefs.DirHandle, o1 error) {
	// Get a file name and line number for the caller.
	_, file, line, _ := runtime.Caller(1)

	// Hand the call off to the controller, which does most of the work.
	retVals := m.controller.HandleMethodCall(
		m,
		"OpenDirectory",
		file,
		line,
		[]interface{}{p0})

	if len(retVals) != 2 {
		panic(fmt.Sprintf("mockFileSystem.OpenDirectory: invalid return values: %v", retVals))
	}

	// o0 durablefs.DirHandle
	if retVals[0] != nil {
		o0 = retVals[0].(durablefs.DirHandle)
	}

	// o1 error
	if retVals[1] != nil {
		o1 = retVals[1].(error)
	}

	return
}

func (m *mockFileSystem) OpenFile(p0 durablefs.Path) (o0 durablefs.FileHandle, o1 error) {
	// Get a file name and line number for the caller.
	_, file, line, _ := runtime.Caller(1)

	// Hand the call off to the controller, which does most of the work.
	retVals := m.controller.HandleMethodCall(
		m,
		"OpenFile",
		file,
		line,
		[]interface{}{p0})

	if len(retVals) != 2 {
		panic(fmt.Sprintf("mockFileSystem.OpenFile: invalid return values: %v", retVals))
	}

	// o0 durablefs.FileHandle
	if retVals[0] != nil {
		o0 = retVals[0].(durablefs.FileHandle)
	}

	// o1 error
	if retVals[1] != nil {
		o1 = retVals[1].(error)
	}

	return
}

func (m *mockFileSystem) List(p0 durablefs.Path) (o0 []string, o1 error) {
	// Get a file name and line number for the caller.
	_, file, line, _ := runtime.Caller(1)

	// Hand the call off to the controller, which does most of the work.
	retVals := m.controller.HandleMethodCall(
		m,
		"List",
		file,
		line,
		[]interface{}{p0})

	if len(retVals) != 2 {
		panic(fmt.Sprintf("mockFileSystem.List: invalid return values: %v", retVals))
	}

	// o0 []string
	if retVals[0] != nil {
		o0 = retVals[0].([]string)
	}

	// o1 error
	if retVals[1] != nil {
		o1 = retVals[1].(error)
	}

	return
}

func (m *mockFileSystem) IsReadableDirectory(p0 durablefs.DirHandle, p1 string) (o0 bool, o1 error) {
	// Get a file name and line number for the caller.
	_, file, line, _ := runtime.Caller(1)

	// Hand the call off to the controller, which does most of the work.
	retVals := m.controller.HandleMethodCall(
		m,
		"IsReadableDirectory",
		file,
		line,
		[]interface{}{p0, p1})

	if len(retVals) != 2 {
		panic(fmt.Sprintf("mockFileSystem.IsReadableDirectory: invalid return values: %v", retVals))
	}

	// o0 bool
	if retVals[0] != nil {
		o0 = retVals[0].(bool)
	}

	// o1 error
	if retVals[1] != nil {
		o1 = retVals[1].(error)
	}

	return
}

func (m *mockFileSystem) Mkdir(p0 durablefs.DirHandle, p1 string) (o0 error) {
	// Get a file name and line number for the caller.
	_, file, line, _ := runtime.Caller(1)

	// Hand the call off to the controller, which does most of the work.
	retVals := m.controller.HandleMethodCall(
		m,
		"Mkdir",
		file,
		line,
		[]interface{}{p0, p1})

	if len(retVals) != 1 {
		panic(fmt.Sprintf("mockFileSystem.Mkdir: invalid return values: %v", retVals))
	}

	// o0 error
	if retVals[0] != nil {
		o0 = retVals[0].(error)
	}

	return
}

func (m *mockFileSystem) Unlink(p0 durablefs.DirHandle, p1 string) (o0 error) {
	// Get a file name and line number for the caller.
	_, file, line, _ := runtime.Caller(1)

	// Hand the call off to the controller, which does most of the work.
	retVals := m.controller.HandleMethodCall(
		m,
		"Unlink",
		file,
		line,
		[]interface{}{p0, p1})

	if len(retVals) != 1 {
		panic(fmt.Sprintf("mockFileSystem.Unlink: invalid return values: %v", retVals))
	}

	// o0 error
	if retVals[0] != nil {
		o0 = retVals[0].(error)
	}

	return
}

func (m *mockFileSystem) Rename(p0 durablefs.DirHandle, p1 string, p2 durablefs.DirHandle, p3 string) (o0 error) {
	// Get a file name and line number for the caller.
	_, file, line, _ := runtime.Caller(1)

	// Hand the call off to the controller, which does most of the work.
	retVals := m.controller.HandleMethodCall(
		m,
		"Rename",
		file,
		line,
		[]interface{}{p0, p1, p2, p3})

	if len(retVals) != 1 {
		panic(fmt.Sprintf("mockFileSystem.Rename: invalid return values: %v", retVals))
	}

	// o0 error
	if retVals[0] != nil {
		o0 = retVals[0].(error)
	}

	return
}

func (m *mockFileSystem) DeleteIfExists(p0 durablefs.Path) (o0 error) {
	// Get a file name and line number for the caller.
	_, file, line, _ := runtime.Caller(1)

	// Hand the call off to the controller, which does most of the work.
	retVals := m.controller.HandleMethodCall(
		m,
		"DeleteIfExists",
		file,
		line,
		[]interface{}{p0})

	if len(retVals) != 1 {
		panic(fmt.Sprintf("mockFileSystem.DeleteIfExists: invalid return values: %v", retVals))
	}

	// o0 error
	if retVals[0] != nil {
		o0 = retVals[0].(error)
	}

	return
}

func (m *mockFileSystem) MoveAtomically(p0 durablefs.Path, p1 durablefs.Path) (o0 error) {
	// Get a file name and line number for the caller.
	_, file, line, _ := runtime.Caller(1)

	// Hand the call off to the controller, which does most of the work.
	retVals := m.controller.HandleMethodCall(
		m,
		"MoveAtomically",
		file,
		line,
		[]interface{}{p0, p1})

	if len(retVals) != 1 {
		panic(fmt.Sprintf("mockFileSystem.MoveAtomically: invalid return values: %v", retVals))
	}

	// o0 error
	if retVals[0] != nil {
		o0 = retVals[0].(error)
	}

	return
}

type MockDirHandle interface {
	durablefs.DirHandle
	oglemock.MockObject
}

type mockDirHandle struct {
	controller  oglemock.Controller
	description string
}

func NewMockDirHandle(
	c oglemock.Controller,
	desc string) MockDirHandle {
	return &mockDirHandle{
		controller:  c,
		description: desc,
	}
}

func (m *mockDirHandle) Oglemock_Id() uintptr {
	return uintptr(unsafe.Pointer(m))
}

func (m *mockDirHandle) Oglemock_Description() string {
	return m.description
}

func (m *mockDirHandle) Sync() (o0 error) {
	// Get a file name and line number for the caller.
	_, file, line, _ := runtime.Caller(1)

	// Hand the call off to the controller, which does most of the work.
	retVals := m.controller.HandleMethodCall(
		m,
		"Sync",
		file,
		line,
		[]interface{}{})

	if len(retVals) != 1 {
		panic(fmt.Sprintf("mockDirHandle.Sync: invalid return values: %v", retVals))
	}

	// o0 error
	if retVals[0] != nil {
		o0 = retVals[0].(error)
	}

	return
}

func (m *mockDirHandle) Close() (o0 error) {
	// Get a file name and line number for the caller.
	_, file, line, _ := runtime.Caller(1)

	// Hand the call off to the controller, which does most of the work.
	retVals := m.controller.HandleMethodCall(
		m,
		"Close",
		file,
		line,
		[]interface{}{})

	if len(retVals) != 1 {
		panic(fmt.Sprintf("mockDirHandle.Close: invalid return values: %v", retVals))
	}

	// o0 error
	if retVals[0] != nil {
		o0 = retVals[0].(error)
	}

	return
}

type MockFileHandle interface {
	durablefs.FileHandle
	oglemock.MockObject
}

type mockFileHandle struct {
	controller  oglemock.Controller
	description string
}

func NewMockFileHandle(
	c oglemock.Controller,
	desc string) MockFileHandle {
	return &mockFileHandle{
		controller:  c,
		description: desc,
	}
}

func (m *mockFileHandle) Oglemock_Id() uintptr {
	return uintptr(unsafe.Pointer(m))
}

func (m *mockFileHandle) Oglemock_Description() string {
	return m.description
}

func (m *mockFileHandle) Write(p0 []byte) (o0 int, o1 error) {
	// Get a file name and line number for the caller.
	_, file, line, _ := runtime.Caller(1)

	// Hand the call off to the controller, which does most of the work.
	retVals := m.controller.HandleMethodCall(
		m,
		"Write",
		file,
		line,
		[]interface{}{p0})

	if len(retVals) != 2 {
		panic(fmt.Sprintf("mockFileHandle.Write: invalid return values: %v", retVals))
	}

	// o0 int
	if retVals[0] != nil {
		o0 = retVals[0].(int)
	}

	// o1 error
	if retVals[1] != nil {
		o1 = retVals[1].(error)
	}

	return
}

func (m *mockFileHandle) Sync() (o0 error) {
	// Get a file name and line number for the caller.
	_, file, line, _ := runtime.Caller(1)

	// Hand the call off to the controller, which does most of the work.
	retVals := m.controller.HandleMethodCall(
		m,
		"Sync",
		file,
		line,
		[]interface{}{})

	if len(retVals) != 1 {
		panic(fmt.Sprintf("mockFileHandle.Sync: invalid return values: %v", retVals))
	}

	// o0 error
	if retVals[0] != nil {
		o0 = retVals[0].(error)
	}

	return
}

func (m *mockFileHandle) Close() (o0 error) {
	// Get a file name and line number for the caller.
	_, file, line, _ := runtime.Caller(1)

	// Hand the call off to the controller, which does most of the work.
	retVals := m.controller.HandleMethodCall(
		m,
		"Close",
		file,
		line,
		[]interface{}{})

	if len(retVals) != 1 {
		panic(fmt.Sprintf("mockFileHandle.Close: invalid return values: %v", retVals))
	}

	// o0 error
	if retVals[0] != nil {
		o0 = retVals[0].(error)
	}

	return
}
