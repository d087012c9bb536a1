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

package ir

import (
    `testing`

    `github.com/stretchr/testify/require`

    `github.com/frugalloc/chaitin/internal/errs`
)

func s1() *Program {
    return NewProgram([]*Instruction{
        {Text: "b := a + 2", Defs: []DefSite{{Sym: "b"}}, Uses: []UseSite{{Sym: "a"}}, Block: 0},
        {Text: "c := b * b", Defs: []DefSite{{Sym: "c"}}, Uses: []UseSite{{Sym: "b", IsLastUse: true}}, Block: 0},
        {Text: "b := c + 1", Defs: []DefSite{{Sym: "b"}}, Uses: []UseSite{{Sym: "c", IsLastUse: true}}, Block: 0},
        {Text: "return b * a", Uses: []UseSite{{Sym: "b", IsLastUse: true}, {Sym: "a", IsLastUse: true}}, Block: 0},
    }, nil)
}

func TestProgram_BlockFreqDefault(t *testing.T) {
    p := s1()
    require.Equal(t, DefaultFrequency, p.BlockFreq(0))
    require.Equal(t, DefaultFrequency, p.BlockFreq(99))
}

func TestProgram_Symbols(t *testing.T) {
    p := s1()
    require.Equal(t, []Symbol{"a", "b", "c"}, p.Symbols())
}

func TestProgram_Clone_Independent(t *testing.T) {
    p := s1()
    q := p.Clone()

    q.Ins[0].Text = "mutated"
    q.Ins[0].Defs[0].Sym = "z"

    require.Equal(t, "b := a + 2", p.Ins[0].Text)
    require.Equal(t, Symbol("b"), p.Ins[0].Defs[0].Sym)
}

func TestProgram_Validate_EmptyProgram(t *testing.T) {
    p := NewProgram(nil, nil)
    err := p.Validate()
    require.Error(t, err)
    require.IsType(t, errs.InvalidInput{}, err)
}

func TestProgram_Validate_NegativeFrequency(t *testing.T) {
    p := NewProgram([]*Instruction{
        {Text: "x", Defs: []DefSite{{Sym: "x"}}, Block: 0},
    }, map[int]float64{0: -1})

    require.Error(t, p.Validate())
}

func TestProgram_Validate_DuplicateDef(t *testing.T) {
    p := NewProgram([]*Instruction{
        {Text: "x", Defs: []DefSite{{Sym: "x"}, {Sym: "x"}}, Block: 0},
    }, nil)

    require.Error(t, p.Validate())
}

func TestProgram_Validate_OK(t *testing.T) {
    require.NoError(t, s1().Validate())
}
