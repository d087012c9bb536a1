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

package igraph

import (
    `github.com/frugalloc/chaitin/internal/ir`
    `github.com/frugalloc/chaitin/internal/live`
)

// Build constructs the InterferenceGraph of spec.md §4.2: every symbol
// appearing in any def or use becomes a node; for each instruction, every
// symbol defined there gets an edge to every symbol in that instruction's
// live-out set (excluding itself). Copy instructions `x := y` never gain
// the edge (x, y) directly between their own source and destination, which
// is what makes them coalescing candidates.
func Build(prog *ir.Program, lr live.Result) *Graph {
    g := New()

    for _, s := range prog.Symbols() {
        g.EnsureSymbol(s)
    }

    for i, v := range prog.Ins {
        var copyDst, copySrc ir.Symbol
        isCopy := v.Kind == ir.Copy

        if isCopy {
            copyDst, copySrc = v.CopyEndpoints()
        }

        for _, d := range v.Defs {
            for t := range lr.LiveOut[i] {
                if t == d.Sym {
                    continue
                }

                if isCopy && d.Sym == copyDst && t == copySrc {
                    continue
                }

                g.AddEdge(d.Sym, t)
            }
        }
    }

    return g
}
