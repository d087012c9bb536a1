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

// Package config holds the allocator's tunables, mirroring the teacher's
// internal/opts: package-level defaults overridable by environment
// variables, plus an Options struct that the root package's functional
// Options mutate.
package config

import (
    `os`
    `strconv`
)

const (
    // _DefaultMaxSpillRounds is the sentinel meaning "compute the safety
    // bound from the program's own symbol count", per spec.md §4.7's
    // "a bound of O(|symbols|) rounds is sufficient".
    _DefaultMaxSpillRounds = 0
)

var (
    MaxSpillRounds = parseOrDefault("CHAITIN_MAX_SPILL_ROUNDS", _DefaultMaxSpillRounds, -1)
    DebugDump      = parseBoolOrDefault("CHAITIN_DEBUG_DUMP", false)
)

func parseOrDefault(key string, def int, min int) int {
    if env := os.Getenv(key); env == "" {
        return def
    } else if val, err := strconv.ParseUint(env, 0, 64); err != nil {
        panic("chaitin: invalid value for " + key)
    } else if ret := int(val); ret <= min {
        panic("chaitin: value too small for " + key)
    } else {
        return ret
    }
}

func parseBoolOrDefault(key string, def bool) bool {
    if env := os.Getenv(key); env == "" {
        return def
    } else if val, err := strconv.ParseBool(env); err != nil {
        panic("chaitin: invalid value for " + key)
    } else {
        return val
    }
}

// Options is the mutable tunable set threaded through from the root
// package's functional Option values into the AllocationDriver.
type Options struct {
    MaxSpillRounds int
    DebugDump      bool
}

// GetDefaultOptions returns the package-level defaults, which may have been
// overridden by environment variables at process start.
func GetDefaultOptions() Options {
    return Options{
        MaxSpillRounds: MaxSpillRounds,
        DebugDump:      DebugDump,
    }
}
