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

package ir

import (
    `fmt`

    `github.com/frugalloc/chaitin/internal/errs`
)

const (
    // DefaultFrequency is used for any block_id absent from a Program's
    // frequency map.
    DefaultFrequency = 1.0
)

// Program is the mutable sequence of Instructions with def/use metadata,
// the substrate every other component reads and rewrites. It is rebuilt
// (not mutated in place) by the spill rewriter between driver iterations.
type Program struct {
    Ins  []*Instruction
    Freq map[int]float64
}

// NewProgram builds a Program, defaulting any block missing from freq to
// DefaultFrequency.
func NewProgram(ins []*Instruction, freq map[int]float64) *Program {
    if freq == nil {
        freq = make(map[int]float64)
    }

    return &Program{Ins: ins, Freq: freq}
}

// BlockFreq returns the execution frequency of block id, defaulting to
// DefaultFrequency when unspecified.
func (self *Program) BlockFreq(id int) float64 {
    if f, ok := self.Freq[id]; ok {
        return f
    }

    return DefaultFrequency
}

// Symbols returns every symbol appearing in any def or use, lexicographically
// sorted.
func (self *Program) Symbols() []Symbol {
    seen := make(SymbolSet)

    for _, v := range self.Ins {
        for _, d := range v.Defs {
            seen.Add(d.Sym)
        }

        for _, u := range v.Uses {
            seen.Add(u.Sym)
        }
    }

    return seen.ToSlice()
}

// Clone returns a deep-enough copy of self: a fresh Ins slice of fresh
// Instruction values, so that callers may rewrite the copy without
// disturbing self. Defs/Uses slices are copied as well.
func (self *Program) Clone() *Program {
    ins := make([]*Instruction, len(self.Ins))

    for i, v := range self.Ins {
        nv := *v
        nv.Defs = append([]DefSite(nil), v.Defs...)
        nv.Uses = append([]UseSite(nil), v.Uses...)
        ins[i] = &nv
    }

    freq := make(map[int]float64, len(self.Freq))

    for k, v := range self.Freq {
        freq[k] = v
    }

    return &Program{Ins: ins, Freq: freq}
}

// Validate checks the InvalidInput conditions spec.md §7 names that are
// local to the program: empty program, a negative block frequency, and
// duplicate definitions within one instruction. k < 1 is checked by the
// caller, which owns that input directly.
func (self *Program) Validate() error {
    if len(self.Ins) == 0 {
        return errs.InvalidInput{Reason: "empty program"}
    }

    for f, freq := range self.Freq {
        if freq < 0 {
            return errs.InvalidInput{Reason: fmt.Sprintf("negative frequency %g for block %d", freq, f)}
        }
    }

    for i, v := range self.Ins {
        seen := make(SymbolSet, len(v.Defs))

        for _, d := range v.Defs {
            if seen.Has(d.Sym) {
                return errs.InvalidInput{Reason: fmt.Sprintf("instruction %d defines %q more than once", i, d.Sym)}
            }

            seen.Add(d.Sym)
        }
    }

    return nil
}
