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

// Package color implements the Colorer: Chaitin's simplify/select
// procedure of spec.md §4.5. The simplify worklist is a literal LIFO
// stack, github.com/oleiade/lane.Stack, the same package the teacher uses
// for its BFS worklists in internal/atm/cfg.go and
// internal/atm/ssa/blockiter.go (there a Queue, here the Stack spec.md
// §4.5 names directly: "push it onto the stack" / "pop ... in LIFO order").
package color

import (
    `github.com/oleiade/lane`

    `github.com/frugalloc/chaitin/internal/errs`
    `github.com/frugalloc/chaitin/internal/igraph`
    `github.com/frugalloc/chaitin/internal/ir`
)

// Result is either a complete Coloring (Spilled empty) or a non-empty
// SpillSet (Coloring nil), per spec.md §4.5's "if SpillSet is empty,
// return the coloring. Otherwise return the SpillSet".
type Result struct {
    Coloring map[ir.Symbol]int
    Spilled  ir.SymbolSet
}

type frame struct {
    node      *igraph.Node
    neighbors ir.SymbolSet
}

// Color runs simplify/select on a private clone of g, so the canonical
// graph built for coalescing is never mutated, per spec.md §5.
func Color(g *igraph.Graph, k int, cost map[ir.Symbol]float64) Result {
    work := g.Clone()
    stack := lane.NewStack()
    spilled := make(ir.SymbolSet)

    for len(work.Nodes()) > 0 {
        if n := pickSimplifiable(work, k); n != nil {
            stack.Push(frame{node: n, neighbors: work.Neighbors(n.Members.Min())})
            work.RemoveNode(n.ID())
            continue
        }

        n := pickSpillCandidate(work, cost)
        spilled.Union(n.Members)
        work.RemoveNode(n.ID())
    }

    if len(spilled) > 0 {
        return Result{Spilled: spilled}
    }

    return Result{Coloring: selectColors(stack, k)}
}

// pickSimplifiable returns the node with degree < k whose lowest member
// name is lexicographically smallest among qualifying nodes, or nil if
// none qualifies.
func pickSimplifiable(work *igraph.Graph, k int) *igraph.Node {
    var best *igraph.Node
    var bestKey ir.Symbol

    for _, n := range work.Nodes() {
        if work.Degree(n.Members.Min()) >= k {
            continue
        }

        key := n.Members.Min()

        if best == nil || key < bestKey {
            best, bestKey = n, key
        }
    }

    return best
}

// pickSpillCandidate returns the node of minimum total cost among the
// remaining nodes, tie-broken lexicographically on the node's lowest
// member name, per spec.md §4.5 step 2.
func pickSpillCandidate(work *igraph.Graph, cost map[ir.Symbol]float64) *igraph.Node {
    var best *igraph.Node
    var bestCost float64
    var bestKey ir.Symbol

    for _, n := range work.Nodes() {
        c := nodeCost(n, cost)
        key := n.Members.Min()

        if best == nil || c < bestCost || (c == bestCost && key < bestKey) {
            best, bestCost, bestKey = n, c, key
        }
    }

    return best
}

func nodeCost(n *igraph.Node, cost map[ir.Symbol]float64) float64 {
    var total float64

    for s := range n.Members {
        total += cost[s]
    }

    return total
}

// selectColors pops the stack in LIFO order, assigning each node the
// smallest color index not used by any neighbor colored so far. Such a
// color is guaranteed to exist because the node had degree < k when it was
// pushed; a panic here means the simplify phase's bookkeeping is broken.
func selectColors(stack *lane.Stack, k int) map[ir.Symbol]int {
    coloring := make(map[ir.Symbol]int)

    for !stack.Empty() {
        fr := stack.Pop().(frame)
        used := make(map[int]bool, len(fr.neighbors))

        for nb := range fr.neighbors {
            if c, ok := coloring[nb]; ok {
                used[c] = true
            }
        }

        c := freeColor(used, k)

        if c < 0 {
            panic(errs.InternalInvariantViolation{
                Note: "select phase found no free color for node " + fr.node.Members.String(),
            })
        }

        for m := range fr.node.Members {
            coloring[m] = c
        }
    }

    return coloring
}

func freeColor(used map[int]bool, k int) int {
    for c := 0; c < k; c++ {
        if !used[c] {
            return c
        }
    }

    return -1
}
