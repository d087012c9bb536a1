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

// Package live implements the LivenessAnalyzer: a single backward pass
// over an ir.Program that computes, for each instruction, the set of
// symbols live immediately before it and immediately after it.
package live

import (
    `github.com/frugalloc/chaitin/internal/ir`
)

// Result holds the live-in and live-out sets of every instruction in the
// Program the Analyzer ran over, indexed by instruction position.
type Result struct {
    LiveIn  []ir.SymbolSet
    LiveOut []ir.SymbolSet
}

// Analyzer runs the backward liveness scan of spec.md §4.1.
type Analyzer struct{}

// Analyze scans prog.Ins from last to first maintaining a running live set L.
// At each instruction i: live_out(i) := L; defs at i are removed from L;
// uses at i are added to L; live_in(i) := L. A use that references a symbol
// with no prior definition is treated as a live-on-entry formal parameter,
// never an error.
func (Analyzer) Analyze(prog *ir.Program) Result {
    n := len(prog.Ins)

    res := Result{
        LiveIn  : make([]ir.SymbolSet, n),
        LiveOut : make([]ir.SymbolSet, n),
    }

    l := make(ir.SymbolSet)

    for i := n - 1; i >= 0; i-- {
        v := prog.Ins[i]
        res.LiveOut[i] = l.Clone()

        for _, d := range v.Defs {
            l.Remove(d.Sym)
        }

        for _, u := range v.Uses {
            l.Add(u.Sym)
        }

        res.LiveIn[i] = l.Clone()
    }

    return res
}
