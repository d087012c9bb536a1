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

// Package driver implements the AllocationDriver: it runs Liveness ->
// BuildGraph -> Coalesce -> Cost -> Color to fixpoint, per spec.md §4.7,
// following the same "for next { ... }" retry-to-fixpoint shape as the
// teacher's RegAlloc.Apply (internal/atm/ssa/pass_regalloc.go) and the
// optimizeSSAGraph pass list (internal/atm/ssa/optimize.go).
package driver

import (
    `fmt`

    `github.com/frugalloc/chaitin/internal/coalesce`
    `github.com/frugalloc/chaitin/internal/color`
    `github.com/frugalloc/chaitin/internal/cost`
    `github.com/frugalloc/chaitin/internal/errs`
    `github.com/frugalloc/chaitin/internal/igraph`
    `github.com/frugalloc/chaitin/internal/ir`
    `github.com/frugalloc/chaitin/internal/live`
    `github.com/frugalloc/chaitin/internal/spillrw`
)

// Result is the outcome of a successful allocation: a complete coloring, the
// accumulated set of symbols spilled across every round, and the final
// rewritten program (if no spills were needed, the input program minus the
// copies removed by coalescing).
type Result struct {
    Coloring ir.Coloring
    Spilled  ir.SymbolSet
    Program  *ir.Program

    graph *igraph.Graph
}

// Snapshot exposes the same (graph, coloring) data the visualization
// collaborator consumes, per spec.md §6, without rendering anything itself.
func (self *Result) Snapshot() (*igraph.Graph, ir.Coloring) {
    return self.graph, self.Coloring
}

// Driver runs the AllocationDriver loop. MaxRounds is a safety bound on
// spill rounds; zero means "compute from the program's own symbol count",
// per spec.md §4.7's "a bound of O(|symbols|) rounds is sufficient".
type Driver struct {
    MaxRounds int
}

// Allocate runs the pipeline to fixpoint on prog with k physical registers.
// Any internal invariant violation raised as a panic elsewhere in the
// pipeline is recovered here and returned as an error, per spec.md §7's
// "surfaces as a hard failure ... no partial results are returned on error".
func (self Driver) Allocate(prog *ir.Program, k int) (res *Result, err error) {
    defer func() {
        if r := recover(); r != nil {
            if iv, ok := r.(errs.InternalInvariantViolation); ok {
                res, err = nil, iv
                return
            }

            panic(r)
        }
    }()

    if k < 1 {
        return nil, errs.InvalidInput{Reason: fmt.Sprintf("k must be >= 1, got %d", k)}
    }

    if verr := prog.Validate(); verr != nil {
        return nil, verr
    }

    maxRounds := self.MaxRounds

    if maxRounds == 0 {
        maxRounds = len(prog.Symbols()) + 1
    }

    cur := prog
    spilled := make(ir.SymbolSet)

    for round := 0; ; round++ {
        if round > maxRounds {
            return nil, errs.UnallocatableProgram{Rounds: round, Spilled: spilledNames(spilled)}
        }

        lr := live.Analyzer{}.Analyze(cur)
        g := igraph.Build(cur, lr)
        g.MustValidate()

        cur = coalesce.Coalesce(cur, g)
        g.MustValidate()

        costs := cost.Estimate(cur)
        cr := color.Color(g, k, costs)

        if len(cr.Spilled) == 0 {
            return &Result{Coloring: cr.Coloring, Spilled: spilled, Program: cur, graph: g}, nil
        }

        spilled.Union(cr.Spilled)
        cur = spillrw.Rewrite(cur, cr.Spilled)
    }
}

func spilledNames(ss ir.SymbolSet) map[string]struct{} {
    out := make(map[string]struct{}, len(ss))

    for s := range ss {
        out[string(s)] = struct{}{}
    }

    return out
}
