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

package live

import (
    `testing`

    `github.com/stretchr/testify/require`

    `github.com/frugalloc/chaitin/internal/ir`
)

// s1 is the program from spec.md's S1 scenario:
//   b := a+2; c := b*b; b := c+1; return b*a
func s1() *ir.Program {
    return ir.NewProgram([]*ir.Instruction{
        {Text: "b := a + 2", Defs: []ir.DefSite{{Sym: "b"}}, Uses: []ir.UseSite{{Sym: "a"}}, Block: 0},
        {Text: "c := b * b", Defs: []ir.DefSite{{Sym: "c"}}, Uses: []ir.UseSite{{Sym: "b", IsLastUse: true}}, Block: 0},
        {Text: "b := c + 1", Defs: []ir.DefSite{{Sym: "b"}}, Uses: []ir.UseSite{{Sym: "c", IsLastUse: true}}, Block: 0},
        {Text: "return b * a", Uses: []ir.UseSite{{Sym: "b", IsLastUse: true}, {Sym: "a", IsLastUse: true}}, Block: 0},
    }, nil)
}

func TestAnalyze_S1(t *testing.T) {
    r := Analyzer{}.Analyze(s1())

    require.Equal(t, ir.NewSymbolSet("a"), r.LiveIn[0])
    require.Equal(t, ir.NewSymbolSet("a", "b"), r.LiveOut[0])

    require.Equal(t, ir.NewSymbolSet("a", "b"), r.LiveIn[1])
    require.Equal(t, ir.NewSymbolSet("a", "c"), r.LiveOut[1])

    require.Equal(t, ir.NewSymbolSet("a", "c"), r.LiveIn[2])
    require.Equal(t, ir.NewSymbolSet("a", "b"), r.LiveOut[2])

    require.Equal(t, ir.NewSymbolSet("a", "b"), r.LiveIn[3])
    require.Equal(t, ir.NewSymbolSet(), r.LiveOut[3])
}

func TestAnalyze_UndefinedUseIsLiveOnEntry(t *testing.T) {
    prog := ir.NewProgram([]*ir.Instruction{
        {Text: "use p", Uses: []ir.UseSite{{Sym: "p", IsLastUse: true}}, Block: 0},
    }, nil)

    r := Analyzer{}.Analyze(prog)
    require.True(t, r.LiveIn[0].Has("p"))
}

func TestAnalyze_DeadDefRemovedImmediately(t *testing.T) {
    prog := ir.NewProgram([]*ir.Instruction{
        {Text: "d := 1", Defs: []ir.DefSite{{Sym: "d", IsDeadDef: true}}, Block: 0},
        {Text: "nop", Block: 0},
    }, nil)

    r := Analyzer{}.Analyze(prog)
    require.False(t, r.LiveOut[0].Has("d"))
    require.False(t, r.LiveIn[0].Has("d"))
}
