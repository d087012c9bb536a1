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

// Package chaitin implements Chaitin's register-allocation-by-graph-coloring
// algorithm: liveness analysis, interference graph construction, copy
// coalescing, spill-cost estimation, simplify/select coloring, spill
// rewriting, and iteration to fixpoint. It is a pure function of its inputs
// up to the deterministic tie-breaks documented on each internal package.
//
// The parser/frontend that produces the instruction stream, the
// visualization layer, and machine-code emission are all out of scope; they
// are external collaborators that consume or produce the data structures
// this package exposes.
package chaitin

import (
    `fmt`

    `github.com/frugalloc/chaitin/internal/config`
    `github.com/frugalloc/chaitin/internal/debugdump`
    `github.com/frugalloc/chaitin/internal/driver`
    `github.com/frugalloc/chaitin/internal/errs`
    `github.com/frugalloc/chaitin/internal/igraph`
    `github.com/frugalloc/chaitin/internal/ir`
)

// DefInput describes one definition site within an InstructionInput.
type DefInput struct {
    Name   string
    IsDead bool
}

// UseInput describes one use site within an InstructionInput.
type UseInput struct {
    Name      string
    IsLastUse bool
}

// InstructionInput is the caller-facing description of one instruction, per
// spec.md §6's input surface.
type InstructionInput struct {
    Text   string
    Block  int
    IsCopy bool
    Defs   []DefInput
    Uses   []UseInput
}

// Result is the output surface of spec.md §6.
type Result struct {
    // Coloring maps every symbol appearing in the final program that is not
    // in Spilled to a color index in [0, k).
    Coloring map[string]int

    // Spilled is the set of original symbols demoted to memory.
    Spilled map[string]struct{}

    // Program is the final rewritten instruction sequence. If no spills
    // were required it is the input minus the copies removed by coalescing.
    Program []InstructionInput

    // Debug holds a deterministic dump of the final (graph, coloring)
    // snapshot when WithDebugDump is set; empty otherwise.
    Debug string

    driverResult *driver.Result
}

// Snapshot exposes the same (interference graph, coloring) data structures
// the out-of-scope visualization collaborator would consume, per spec.md §6.
func (self *Result) Snapshot() (*igraph.Graph, map[string]int) {
    g, coloring := self.driverResult.Snapshot()
    out := make(map[string]int, len(coloring))

    for s, c := range coloring {
        out[string(s)] = c
    }

    return g, out
}

// Allocate runs the full allocation pipeline over instrs with k physical
// registers, given per-block execution frequencies (missing entries default
// to 1.0). It is a pure function of its arguments up to the deterministic
// tie-breaks documented on each internal package.
func Allocate(instrs []InstructionInput, freq map[int]float64, k int, opts ...Option) (*Result, error) {
    o := config.GetDefaultOptions()

    for _, opt := range opts {
        opt(&o)
    }

    prog, err := toProgram(instrs, freq)

    if err != nil {
        return nil, err
    }

    dr, err := (driver.Driver{MaxRounds: o.MaxSpillRounds}).Allocate(prog, k)

    if err != nil {
        return nil, err
    }

    res := fromResult(dr)

    if o.DebugDump {
        g, coloring := dr.Snapshot()
        res.Debug = debugdump.Dump(g, coloring)
    }

    return res, nil
}

// Unit is one independently-allocated IntermediateProgram, for callers with
// multiple functions/units to allocate. No state is shared across units.
type Unit struct {
    Name         string
    Instructions []InstructionInput
    Freq         map[int]float64
}

// AllocateAll runs Allocate once per unit, in order, and aggregates results.
// It stops at the first failing unit.
func AllocateAll(units []Unit, k int, opts ...Option) ([]*Result, error) {
    out := make([]*Result, len(units))

    for i, u := range units {
        res, err := Allocate(u.Instructions, u.Freq, k, opts...)

        if err != nil {
            return nil, fmt.Errorf("chaitin: unit %q: %w", u.Name, err)
        }

        out[i] = res
    }

    return out, nil
}

func toProgram(instrs []InstructionInput, freq map[int]float64) (*ir.Program, error) {
    ins := make([]*ir.Instruction, len(instrs))

    for i, v := range instrs {
        kind := ir.Ordinary

        if v.IsCopy {
            kind = ir.Copy
        }

        defs := make([]ir.DefSite, len(v.Defs))

        for j, d := range v.Defs {
            defs[j] = ir.DefSite{Sym: ir.Symbol(d.Name), IsDeadDef: d.IsDead}
        }

        uses := make([]ir.UseSite, len(v.Uses))

        for j, u := range v.Uses {
            uses[j] = ir.UseSite{Sym: ir.Symbol(u.Name), IsLastUse: u.IsLastUse}
        }

        if kind == ir.Copy && (len(defs) != 1 || len(uses) != 1) {
            return nil, errs.InvalidInput{
                Reason: fmt.Sprintf("instruction %d marked as copy must have exactly one def and one use", i),
            }
        }

        ins[i] = &ir.Instruction{Text: v.Text, Kind: kind, Defs: defs, Uses: uses, Block: v.Block}
    }

    prog := ir.NewProgram(ins, freq)

    if err := prog.Validate(); err != nil {
        return nil, err
    }

    return prog, nil
}

func fromResult(dr *driver.Result) *Result {
    coloring := make(map[string]int, len(dr.Coloring))

    for s, c := range dr.Coloring {
        coloring[string(s)] = c
    }

    spilled := make(map[string]struct{}, len(dr.Spilled))

    for s := range dr.Spilled {
        spilled[string(s)] = struct{}{}
    }

    prog := make([]InstructionInput, len(dr.Program.Ins))

    for i, v := range dr.Program.Ins {
        defs := make([]DefInput, len(v.Defs))

        for j, d := range v.Defs {
            defs[j] = DefInput{Name: string(d.Sym), IsDead: d.IsDeadDef}
        }

        uses := make([]UseInput, len(v.Uses))

        for j, u := range v.Uses {
            uses[j] = UseInput{Name: string(u.Sym), IsLastUse: u.IsLastUse}
        }

        prog[i] = InstructionInput{
            Text   : v.Text,
            Block  : v.Block,
            IsCopy : v.Kind == ir.Copy,
            Defs   : defs,
            Uses   : uses,
        }
    }

    return &Result{
        Coloring     : coloring,
        Spilled      : spilled,
        Program      : prog,
        driverResult : dr,
    }
}
