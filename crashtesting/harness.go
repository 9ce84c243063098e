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

// Package crashtesting provides a harness for checking crash-safety
// invariants against a model file system, plus matchers for use with
// ogletest.
//
// Register invariants of the form "in every reachable post-crash state,
// property P holds of the durable tree". The harness re-checks every
// registered invariant after each atomic step the model performs, including
// each individual promotion within a sync, so a violated invariant pins the
// exact step at which the reachable crash state went bad.
package crashtesting

import (
	"bytes"
	"fmt"

	"github.com/jacobsa/durablefs"
	"github.com/jacobsa/durablefs/modelfs"
)

type invariant struct {
	desc string
	f    func(*modelfs.Snapshot) error
}

// A harness wired to a model file system via its step callback. Not safe
// for concurrent use.
type Harness struct {
	fs         *modelfs.ModelFileSystem
	invariants []invariant
	violations []error
}

// Create a harness observing the supplied file system. Replaces the file
// system's step callback.
func NewHarness(fs *modelfs.ModelFileSystem) *Harness {
	h := &Harness{fs: fs}
	fs.SetStepCallback(h.checkAfterStep)
	return h
}

// Register an invariant to be checked after every subsequent step. The
// function receives the durable projection of the file system and returns
// an error describing the violation, if any.
func (h *Harness) RegisterInvariant(desc string, f func(*modelfs.Snapshot) error) {
	h.invariants = append(h.invariants, invariant{desc: desc, f: f})
}

// Drop all registered invariants, keeping recorded violations.
func (h *Harness) ClearInvariants() {
	h.invariants = nil
}

// Check all registered invariants immediately.
func (h *Harness) Check() {
	h.check("explicit check")
}

// Return the violations recorded so far.
func (h *Harness) Violations() []error {
	return h.violations
}

func (h *Harness) checkAfterStep(step string) {
	h.check(step)
}

func (h *Harness) check(step string) {
	snap := h.fs.DurableState()
	for _, inv := range h.invariants {
		if err := inv.f(snap); err != nil {
			h.violations = append(
				h.violations,
				fmt.Errorf("after step %q: %s: %w\ndurable state: %s",
					step, inv.desc, err, snap.Dump()))
		}
	}
}

////////////////////////////////////////////////////////////////////////
// Common invariants
////////////////////////////////////////////////////////////////////////

// The canonical atomic-write invariant: in every reachable post-crash
// state, the path either does not exist or contains exactly the expected
// contents.
func AbsentOrContains(path string, contents []byte) func(*modelfs.Snapshot) error {
	return func(s *modelfs.Snapshot) error {
		p, err := durablefs.MakePath(path)
		if err != nil {
			return err
		}

		if !s.Exists(p) {
			return nil
		}

		actual, err := s.ReadFile(p)
		if err != nil {
			return fmt.Errorf("ReadFile: %w", err)
		}

		if !bytes.Equal(actual, contents) {
			return fmt.Errorf(
				"contents mismatch: got %d bytes, want %d bytes",
				len(actual), len(contents))
		}

		return nil
	}
}

// The atomic-delete invariant: in every reachable post-crash state, the
// path either does not exist or the whole expected subtree is intact
// beneath it, meaning every file in files (keyed by slash-separated path
// relative to path) durably holds exactly its contents. Pass nil files to
// accept any existing state (pure existence dichotomy is then checked by
// the caller after the operation returns).
func AbsentOrSubtreeIntact(path string, files map[string][]byte) func(*modelfs.Snapshot) error {
	return func(s *modelfs.Snapshot) error {
		p, err := durablefs.MakePath(path)
		if err != nil {
			return err
		}

		if !s.Exists(p) {
			return nil
		}

		for rel, contents := range files {
			fp := p
			for _, c := range splitComponents(rel) {
				fp = fp.Resolve(c)
			}

			actual, err := s.ReadFile(fp)
			if err != nil {
				return fmt.Errorf("%q present but %q unreadable: %w", path, rel, err)
			}

			if !bytes.Equal(actual, contents) {
				return fmt.Errorf("%q present but %q has wrong contents", path, rel)
			}
		}

		return nil
	}
}

// The atomic-move invariant: in every reachable post-crash state, the
// target contains either its original contents (or is absent, if it did not
// exist) or the moved contents.
func MovedOrUnmoved(tgt string, original []byte, hadOriginal bool, moved []byte) func(*modelfs.Snapshot) error {
	return func(s *modelfs.Snapshot) error {
		p, err := durablefs.MakePath(tgt)
		if err != nil {
			return err
		}

		if !s.Exists(p) {
			if hadOriginal {
				return fmt.Errorf("%q vanished", tgt)
			}
			return nil
		}

		actual, err := s.ReadFile(p)
		if err != nil {
			return fmt.Errorf("ReadFile: %w", err)
		}

		if bytes.Equal(actual, moved) {
			return nil
		}

		if hadOriginal && bytes.Equal(actual, original) {
			return nil
		}

		return fmt.Errorf("%q holds neither the original nor the moved contents", tgt)
	}
}

func splitComponents(rel string) []string {
	var out []string
	cur := ""
	for _, r := range rel {
		if r == '/' {
			if cur != "" {
				out = append(out, cur)
				cur = ""
			}
			continue
		}
		cur += string(r)
	}

	if cur != "" {
		out = append(out, cur)
	}

	return out
}
