/*
 * Copyright 2022 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package errs holds the three error kinds spec.md §7 names, shared by
// every internal package and re-exported verbatim by the root chaitin
// package (mirroring the teacher's errors.go: exported struct types with
// an Error() string method, no bare errors.New string soup).
package errs

import (
    `fmt`
)

// InvalidInput occurs when the caller's program, frequency map or k is
// malformed: negative frequency, k < 1, a duplicate definition within one
// instruction, or an empty program.
type InvalidInput struct {
    Reason string
}

func (self InvalidInput) Error() string {
    return fmt.Sprintf("chaitin: invalid input: %s", self.Reason)
}

// UnallocatableProgram occurs when the AllocationDriver's safety bound on
// spill rounds is exceeded. It carries the spill set accumulated so far,
// per spec.md §7's "reported ... with the current accumulated spill set
// for diagnosis".
type UnallocatableProgram struct {
    Rounds  int
    Spilled map[string]struct{}
}

func (self UnallocatableProgram) Error() string {
    return fmt.Sprintf(
        "chaitin: unallocatable program: exceeded %d spill rounds, %d symbols spilled so far",
        self.Rounds, len(self.Spilled),
    )
}

// InternalInvariantViolation indicates a bug in the allocator itself:
// graph asymmetry, a degree mismatch, or a Select-phase node with no free
// color. It is raised with panic() at the point of detection and recovered
// at the AllocationDriver/chaitin.Allocate boundary, mirroring the
// teacher's use of panic() for "should never happen" invariants (e.g.
// internal/atm/ssa/pass_regalloc.go's "panic(\"regalloc: definitions
// within terminators\")").
type InternalInvariantViolation struct {
    Note string
}

func (self InternalInvariantViolation) Error() string {
    return fmt.Sprintf("chaitin: internal invariant violated: %s", self.Note)
}
