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

// Package debugdump formats a (graph, coloring) snapshot for diagnosis,
// gated behind an explicit opt-in and never on the hot path. It follows the
// teacher's own ad hoc diagnostic shape: pass_regalloc.go's
// "spew.Config.SortKeys = true; spew.Config.DisablePointerMethods = true;
// spew.Dump(regs)" triplet, the only diagnostic surface the teacher has,
// since frugal never imports a logging library.
package debugdump

import (
    `github.com/davecgh/go-spew/spew`

    `github.com/frugalloc/chaitin/internal/igraph`
    `github.com/frugalloc/chaitin/internal/ir`
)

type snapshot struct {
    Graph    *igraph.Graph
    Coloring map[ir.Symbol]int
}

// Dump renders g and coloring as a deterministic, sorted-key dump, matching
// spew.Config.SortKeys/DisablePointerMethods so the output is stable across
// runs despite Go's randomized map iteration.
func Dump(g *igraph.Graph, coloring map[ir.Symbol]int) string {
    spew.Config.SortKeys = true
    spew.Config.DisablePointerMethods = true
    return spew.Sdump(snapshot{Graph: g, Coloring: coloring})
}
