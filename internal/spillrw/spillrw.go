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

// Package spillrw implements the SpillRewriter of spec.md §4.6: it
// materializes every spilled symbol in memory, inserting a reload before
// each use and a store after each def. Fresh spill symbols follow the
// teacher's %-prefixed scratch-register naming discipline visible in
// internal/atm/ssa/ir.go's Reg.String() (e.g. "%tr0", "%p0.0").
package spillrw

import (
    `fmt`

    `github.com/frugalloc/chaitin/internal/ir`
)

// Rewrite returns a new Program in which every symbol in spilled lives in
// memory: each use of s is preceded by a Reload defining a fresh symbol
// that replaces s at that use site (marked last-use), and each def of s is
// renamed to a fresh symbol immediately followed by a Store of it to s's
// memory slot. Fresh symbols are unique per instruction and appear nowhere
// else, so their live ranges are trivially short.
func Rewrite(prog *ir.Program, spilled ir.SymbolSet) *ir.Program {
    ins := make([]*ir.Instruction, 0, len(prog.Ins))
    n := 0

    for _, v := range prog.Ins {
        nv := *v
        nv.Defs = append([]ir.DefSite(nil), v.Defs...)
        nv.Uses = append([]ir.UseSite(nil), v.Uses...)

        for j, u := range nv.Uses {
            if !spilled.Has(u.Sym) {
                continue
            }

            n++
            fresh := reloadName(u.Sym, n)

            ins = append(ins, &ir.Instruction{
                Text  : fmt.Sprintf("reload %s <- %s", fresh, u.Sym),
                Kind  : ir.Reload,
                Defs  : []ir.DefSite{{Sym: fresh}},
                Block : v.Block,
            })

            nv.Uses[j] = ir.UseSite{Sym: fresh, IsLastUse: true}
        }

        ins = append(ins, &nv)

        for j, d := range nv.Defs {
            if !spilled.Has(d.Sym) {
                continue
            }

            orig := d.Sym
            n++
            fresh := storeName(orig, n)
            nv.Defs[j] = ir.DefSite{Sym: fresh, IsDeadDef: d.IsDeadDef}

            ins = append(ins, &ir.Instruction{
                Text  : fmt.Sprintf("store %s -> %s", fresh, orig),
                Kind  : ir.Store,
                Uses  : []ir.UseSite{{Sym: fresh, IsLastUse: true}},
                Block : v.Block,
            })
        }
    }

    return ir.NewProgram(ins, prog.Freq)
}

func reloadName(s ir.Symbol, n int) ir.Symbol {
    return ir.Symbol(fmt.Sprintf("%%%s.ld%d", s, n))
}

func storeName(s ir.Symbol, n int) ir.Symbol {
    return ir.Symbol(fmt.Sprintf("%%%s.st%d", s, n))
}
