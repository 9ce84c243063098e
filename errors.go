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
	"syscall"
)

const (
	// Errors corresponding to system error numbers. FileSystem
	// implementations report failures using these kinds, wrapped so that
	// errors.Is recognizes them.
	EEXIST    = syscall.EEXIST
	EINVAL    = syscall.EINVAL
	EISDIR    = syscall.EISDIR
	ENOENT    = syscall.ENOENT
	ENOTDIR   = syscall.ENOTDIR
	ENOTEMPTY = syscall.ENOTEMPTY
	ENOTSUP   = syscall.ENOTSUP
	EXDEV     = syscall.EXDEV
)

// Returned by DirModificationScope.Commit after the scope has been closed.
var ErrScopeClosed = errors.New("modification scope is closed")
