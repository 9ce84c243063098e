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

// Package durablefs provides crash-safe file system primitives with strong
// atomicity and durability guarantees on top of a POSIX-style file system:
// atomic durable file writes, atomic durable renames, atomic durable subtree
// deletion, durable recursive directory creation, and an output stream whose
// target file appears only on an explicit commit.
//
// The primitives are expressed against the FileSystem capability defined in
// this package, so the same algorithms run against the physical file system
// (package osfs) and against a model file system that simulates arbitrary
// crash outcomes (package modelfs).
//
// All operations are synchronous and blocking. The file system is not a
// synchronization primitive: a caller that observes the effect of another
// caller's operation via listing or stat cannot conclude that the effect is
// durable. Only the return of the mutating call itself conveys that
// guarantee.
//
// Durability guarantees require a local file system supporting atomic rename
// and fsync on both regular files and directories. Where the platform rejects
// directory fsync, directory changes degrade to best-effort durability.
package durablefs
