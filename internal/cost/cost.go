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

// Package cost implements the SpillCostEstimator of spec.md §4.4.
package cost

import (
    `github.com/frugalloc/chaitin/internal/ir`
)

// Estimate returns, for every symbol appearing in prog, the sum over every
// instruction that defines or uses it of that instruction's block
// frequency. A symbol with no occurrences never appears in the result,
// which callers treat as a cost of 0.
func Estimate(prog *ir.Program) map[ir.Symbol]float64 {
    out := make(map[ir.Symbol]float64)

    for _, v := range prog.Ins {
        f := prog.BlockFreq(v.Block)

        for _, d := range v.Defs {
            out[d.Sym] += f
        }

        for _, u := range v.Uses {
            out[u.Sym] += f
        }
    }

    return out
}
