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
    `fmt`

    `github.com/frugalloc/chaitin/internal/config`
)

// Option is the property setter function for config.Options.
type Option func(*config.Options)

// WithMaxSpillRounds overrides the AllocationDriver's safety bound on spill
// rounds. The default, 0, computes the bound from the program's own symbol
// count, per spec.md §4.7.
//
// This value can also be configured with the CHAITIN_MAX_SPILL_ROUNDS
// environment variable.
func WithMaxSpillRounds(n int) Option {
    if n < 0 {
        panic(fmt.Sprintf("chaitin: invalid max spill rounds: %d", n))
    } else {
        return func(o *config.Options) { o.MaxSpillRounds = n }
    }
}

// WithDebugDump enables a deterministic spew dump of the final
// (interference graph, coloring) snapshot, gated behind this explicit
// opt-in so it never runs on the hot path by default.
//
// This value can also be configured with the CHAITIN_DEBUG_DUMP environment
// variable.
func WithDebugDump(v bool) Option {
    return func(o *config.Options) { o.DebugDump = v }
}
