/*
 * Copyright 2022 ByteDance Inc.
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

package chaitin

import (
    `github.com/frugalloc/chaitin/internal/errs`
)

// InvalidInput occurs when the caller's instructions, frequency map or k are
// malformed: negative frequency, k < 1, a duplicate definition within one
// instruction, an empty program, or a copy instruction without exactly one
// def and one use.
type InvalidInput = errs.InvalidInput

// UnallocatableProgram occurs when the AllocationDriver's safety bound on
// spill rounds is exceeded. It carries the spill set accumulated so far.
type UnallocatableProgram = errs.UnallocatableProgram

// InternalInvariantViolation indicates a bug in the allocator itself: graph
// asymmetry, a degree mismatch, or a Select-phase node with no free color.
type InternalInvariantViolation = errs.InternalInvariantViolation
