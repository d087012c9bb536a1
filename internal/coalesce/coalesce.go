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

// Package coalesce implements the Coalescer: repeatedly merges the two
// endpoints of a copy instruction when they do not interfere, removing the
// copy. It follows the same scan/alias/replace shape as the teacher's
// CopyElim pass (internal/atm/ssa/pass_copyelim.go): find candidates, build
// an alias table, then rewrite every remaining reference through it.
package coalesce

import (
    `github.com/frugalloc/chaitin/internal/igraph`
    `github.com/frugalloc/chaitin/internal/ir`
)

// Coalesce scans prog's instructions in program order. For each copy
// `x := y` whose endpoints are distinct nodes in g with no edge between
// them, it merges the nodes in g and removes the copy; a copy whose
// endpoints already share a node is removed as redundant; a copy whose
// endpoints interfere is left in place. It repeats full scans until one
// produces no new merges, per spec.md §4.3's "iterate until a full scan
// produces no new merges" with program-order, first-occurrence tie-break.
// g is mutated in place; prog is never mutated. When a scan removes a copy
// the returned Program is a new value; when the first scan finds nothing to
// remove, prog itself is returned.
func Coalesce(prog *ir.Program, g *igraph.Graph) *ir.Program {
    cur := prog

    for {
        alias := make(map[ir.Symbol]ir.Symbol)
        removed := make([]bool, len(cur.Ins))
        changed := false

        resolve := func(s ir.Symbol) ir.Symbol {
            for {
                p, ok := alias[s]

                if !ok {
                    return s
                }

                s = p
            }
        }

        for i, v := range cur.Ins {
            if v.Kind != ir.Copy {
                continue
            }

            dst := resolve(v.Defs[0].Sym)
            src := resolve(v.Uses[0].Sym)

            switch {
                case dst == src:
                    removed[i] = true
                    changed = true

                case !g.HasEdge(dst, src):
                    g.Merge(dst, src)
                    alias[src] = dst
                    removed[i] = true
                    changed = true
            }
        }

        if !changed {
            return cur
        }

        cur = rewrite(cur, removed, resolve)
    }
}

func rewrite(prog *ir.Program, removed []bool, resolve func(ir.Symbol) ir.Symbol) *ir.Program {
    ins := make([]*ir.Instruction, 0, len(prog.Ins))

    for i, v := range prog.Ins {
        if removed[i] {
            continue
        }

        nv := *v
        nv.Defs = make([]ir.DefSite, len(v.Defs))
        nv.Uses = make([]ir.UseSite, len(v.Uses))

        for j, d := range v.Defs {
            nv.Defs[j] = ir.DefSite{Sym: resolve(d.Sym), IsDeadDef: d.IsDeadDef}
        }

        for j, u := range v.Uses {
            nv.Uses[j] = ir.UseSite{Sym: resolve(u.Sym), IsLastUse: u.IsLastUse}
        }

        ins = append(ins, &nv)
    }

    return ir.NewProgram(ins, prog.Freq)
}
