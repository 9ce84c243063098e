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
	"fmt"
	"path/filepath"
	"strings"
)

// An absolute, cleaned file system path. The zero value is not a legal path;
// use MakePath.
type Path struct {
	abs string
}

// Create a path from the supplied string, promoting relative paths to
// absolute form using the process's working directory.
func MakePath(s string) (Path, error) {
	if s == "" {
		return Path{}, fmt.Errorf("empty path: %w", EINVAL)
	}

	abs, err := filepath.Abs(s)
	if err != nil {
		return Path{}, fmt.Errorf("filepath.Abs(%q): %w", s, err)
	}

	return Path{abs: abs}, nil
}

func (p Path) String() string {
	return p.abs
}

// Return the parent directory of the path. ok is false for the file system
// root, which has no parent.
func (p Path) Parent() (parent Path, ok bool) {
	dir := filepath.Dir(p.abs)
	if dir == p.abs {
		return Path{}, false
	}

	return Path{abs: dir}, true
}

// Return the last name component of the path. ok is false for the file
// system root, which has no name.
func (p Path) FileName() (name string, ok bool) {
	if _, hasParent := p.Parent(); !hasParent {
		return "", false
	}

	return filepath.Base(p.abs), true
}

// Return the path naming the entry called name within the directory p.
func (p Path) Resolve(name string) Path {
	return Path{abs: filepath.Join(p.abs, name)}
}

// Return the root of the file system containing the path.
func (p Path) Root() Path {
	cur := p
	for {
		parent, ok := cur.Parent()
		if !ok {
			return cur
		}
		cur = parent
	}
}

// Return the ordered name components of the path, from the root (exclusive)
// to the leaf (inclusive). Empty for the root itself.
func (p Path) NameComponents() []string {
	root := p.Root().abs
	rel := strings.TrimPrefix(p.abs, root)

	var components []string
	for _, c := range strings.Split(rel, string(filepath.Separator)) {
		if c != "" {
			components = append(components, c)
		}
	}

	return components
}
