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

package color

import (
    `testing`

    `github.com/stretchr/testify/require`

    `github.com/frugalloc/chaitin/internal/cost`
    `github.com/frugalloc/chaitin/internal/igraph`
    `github.com/frugalloc/chaitin/internal/ir`
    `github.com/frugalloc/chaitin/internal/live`
)

// s1 is spec.md's S1 scenario: b := a+2; c := b*b; b := c+1; return b*a; k=2.
func s1() *ir.Program {
    return ir.NewProgram([]*ir.Instruction{
        {Text: "b := a + 2", Defs: []ir.DefSite{{Sym: "b"}}, Uses: []ir.UseSite{{Sym: "a"}}, Block: 0},
        {Text: "c := b * b", Defs: []ir.DefSite{{Sym: "c"}}, Uses: []ir.UseSite{{Sym: "b", IsLastUse: true}}, Block: 0},
        {Text: "b := c + 1", Defs: []ir.DefSite{{Sym: "b"}}, Uses: []ir.UseSite{{Sym: "c", IsLastUse: true}}, Block: 0},
        {Text: "return b * a", Uses: []ir.UseSite{{Sym: "b", IsLastUse: true}, {Sym: "a", IsLastUse: true}}, Block: 0},
    }, nil)
}

func buildGraph(prog *ir.Program) *igraph.Graph {
    return igraph.Build(prog, live.Analyzer{}.Analyze(prog))
}

func requireProperColoring(t *testing.T, g *igraph.Graph, coloring map[ir.Symbol]int, k int) {
    for _, n := range g.Nodes() {
        for m := range n.Members {
            c, ok := coloring[m]
            require.True(t, ok, "symbol %s has no color", m)
            require.GreaterOrEqual(t, c, 0)
            require.Less(t, c, k)
        }
    }

    for _, n := range g.Nodes() {
        for nb := range g.Neighbors(n.Members.Min()) {
            for m := range n.Members {
                require.NotEqual(t, coloring[m], coloring[nb], "adjacent symbols %s and %s share a color", m, nb)
            }
        }
    }
}

func TestColor_S1_NoSpillTwoColors(t *testing.T) {
    prog := s1()
    g := buildGraph(prog)
    costs := cost.Estimate(prog)

    res := Color(g, 2, costs)
    require.Empty(t, res.Spilled)
    requireProperColoring(t, g, res.Coloring, 2)

    // Deterministic exact outcome for this fixed input and tie-break rule.
    require.Equal(t, 1, res.Coloring["a"])
    require.Equal(t, 0, res.Coloring["b"])
    require.Equal(t, 0, res.Coloring["c"])
}

// clique4 builds a := ...; b := ...; c := ...; d := ...; use a,b,c,d, a
// program whose interference graph is the complete graph K4: each def is
// live-out with every previously defined, not-yet-used symbol.
func clique4(dBlock int, freq map[int]float64) *ir.Program {
    return ir.NewProgram([]*ir.Instruction{
        {Text: "a := 1", Defs: []ir.DefSite{{Sym: "a"}}, Block: 0},
        {Text: "b := 2", Defs: []ir.DefSite{{Sym: "b"}}, Block: 0},
        {Text: "c := 3", Defs: []ir.DefSite{{Sym: "c"}}, Block: 0},
        {Text: "d := 4", Defs: []ir.DefSite{{Sym: "d"}}, Block: dBlock},
        {
            Text: "use a, b, c, d",
            Uses: []ir.UseSite{
                {Sym: "a", IsLastUse: true},
                {Sym: "b", IsLastUse: true},
                {Sym: "c", IsLastUse: true},
                {Sym: "d", IsLastUse: true},
            },
            Block: 0,
        },
    }, freq)
}

func TestColor_CliqueOverK_SpillsCheapestNode(t *testing.T) {
    prog := clique4(1, map[int]float64{0: 1.0, 1: 0.1})
    g := buildGraph(prog)
    costs := cost.Estimate(prog)

    require.InDelta(t, 1.1, costs["d"], 1e-9)
    require.InDelta(t, 2.0, costs["a"], 1e-9)

    res := Color(g, 3, costs)
    require.Equal(t, ir.NewSymbolSet("d"), res.Spilled)
    require.Nil(t, res.Coloring)
}

func TestColor_CliqueOverK_TiedCostSpillsLexicographicallyLowest(t *testing.T) {
    prog := clique4(0, nil)
    g := buildGraph(prog)
    costs := cost.Estimate(prog)

    res := Color(g, 3, costs)
    require.Equal(t, ir.NewSymbolSet("a"), res.Spilled)
}

func TestColor_K1_EverySymbolSpilledUnlessIsolated(t *testing.T) {
    prog := ir.NewProgram([]*ir.Instruction{
        {Text: "a := 1", Defs: []ir.DefSite{{Sym: "a"}}, Block: 0},
        {Text: "b := 2", Defs: []ir.DefSite{{Sym: "b"}}, Uses: []ir.UseSite{{Sym: "a", IsLastUse: true}}, Block: 0},
        {Text: "use b", Uses: []ir.UseSite{{Sym: "b", IsLastUse: true}}, Block: 0},
    }, nil)

    g := buildGraph(prog)
    costs := cost.Estimate(prog)

    res := Color(g, 1, costs)
    require.Empty(t, res.Spilled, "a and b never interfere so k=1 still colors both with color 0")
    requireProperColoring(t, g, res.Coloring, 1)
}
