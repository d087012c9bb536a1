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
    `fmt`
    `strings`
)

// InstrKind is the closed set of instruction shapes the allocator cares
// about. Ordinary and Copy come from the input program; Reload and Store
// are inserted by the spill rewriter.
type InstrKind uint8

const (
    Ordinary InstrKind = iota
    Copy
    Reload
    Store
)

func (self InstrKind) String() string {
    switch self {
        case Ordinary : return "ordinary"
        case Copy     : return "copy"
        case Reload   : return "reload"
        case Store    : return "store"
        default       : panic("ir: invalid instruction kind")
    }
}

// UseSite is one reference to a symbol within an instruction.
type UseSite struct {
    Sym       Symbol
    IsLastUse bool
}

// DefSite is one definition of a symbol within an instruction.
type DefSite struct {
    Sym      Symbol
    IsDeadDef bool
}

// Instruction is one step of the IntermediateProgram. Copy instructions
// have exactly one def and one use and no other side effect; only they are
// considered by the Coalescer.
type Instruction struct {
    Text  string
    Kind  InstrKind
    Defs  []DefSite
    Uses  []UseSite
    Block int
}

// CopyEndpoints returns the (dst, src) pair of a Copy instruction. It
// panics if self is not a Copy, mirroring the teacher's convention of
// panicking on a violated closed-case invariant rather than silently
// returning a zero value.
func (self *Instruction) CopyEndpoints() (dst Symbol, src Symbol) {
    if self.Kind != Copy {
        panic("ir: CopyEndpoints called on a non-copy instruction")
    }

    if len(self.Defs) != 1 || len(self.Uses) != 1 {
        panic("ir: malformed copy instruction")
    }

    return self.Defs[0].Sym, self.Uses[0].Sym
}

// DefSyms returns the defined symbols in instruction order.
func (self *Instruction) DefSyms() []Symbol {
    ss := make([]Symbol, len(self.Defs))

    for i, d := range self.Defs {
        ss[i] = d.Sym
    }

    return ss
}

// UseSyms returns the used symbols in instruction order.
func (self *Instruction) UseSyms() []Symbol {
    ss := make([]Symbol, len(self.Uses))

    for i, u := range self.Uses {
        ss[i] = u.Sym
    }

    return ss
}

func (self *Instruction) String() string {
    var defs []string
    var uses []string

    for _, d := range self.Defs {
        defs = append(defs, string(d.Sym))
    }

    for _, u := range self.Uses {
        uses = append(uses, string(u.Sym))
    }

    return fmt.Sprintf(
        "bb_%d: [%s] <- %s %s  # %s",
        self.Block,
        strings.Join(defs, ", "),
        self.Kind,
        strings.Join(uses, ", "),
        self.Text,
    )
}
