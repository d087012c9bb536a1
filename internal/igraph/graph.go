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

// Package igraph implements the InterferenceGraph: an undirected graph of
// symbols whose edges are interferences, built on top of
// gonum.org/v1/gonum/graph/simple so that adjacency, symmetric-edge
// bookkeeping and degree queries are served by a real graph library
// instead of a hand-rolled adjacency map.
package igraph

import (
    `fmt`

    `github.com/frugalloc/chaitin/internal/errs`
    `github.com/frugalloc/chaitin/internal/ir`
    `gonum.org/v1/gonum/graph`
    `gonum.org/v1/gonum/graph/simple`
)

// Node wraps one or more coalesced symbols under a stable node id. Symbol
// identity across coalescing is tracked by the owning Graph's symbol
// map, never by pointer identity of the Node itself.
type Node struct {
    id      int64
    Members ir.SymbolSet
}

func (self *Node) ID() int64 {
    return self.id
}

func (self *Node) String() string {
    return self.Members.String()
}

// Graph is the InterferenceGraph of spec.md §3/§4.2: nodes are symbols
// (possibly coalesced), edges are undirected interferences. No self-loops;
// a node's degree equals the count of distinct neighbors.
type Graph struct {
    g      *simple.UndirectedGraph
    nodeOf map[ir.Symbol]int64
    nodes  map[int64]*Node
    next   int64
}

// New returns an empty InterferenceGraph.
func New() *Graph {
    return &Graph{
        g      : simple.NewUndirectedGraph(),
        nodeOf : make(map[ir.Symbol]int64),
        nodes  : make(map[int64]*Node),
    }
}

// EnsureSymbol creates a singleton node for s if one does not already exist
// and returns its node id.
func (self *Graph) EnsureSymbol(s ir.Symbol) int64 {
    if id, ok := self.nodeOf[s]; ok {
        return id
    }

    id := self.next
    self.next++

    n := &Node{id: id, Members: ir.NewSymbolSet(s)}
    self.nodes[id] = n
    self.nodeOf[s] = id
    self.g.AddNode(n)
    return id
}

// NodeOf returns the node currently representing s, or nil if s is unknown.
func (self *Graph) NodeOf(s ir.Symbol) *Node {
    id, ok := self.nodeOf[s]

    if !ok {
        return nil
    }

    return self.nodes[id]
}

// AddEdge records that a and b interfere. A self-interference (a and b
// already share a node) is a no-op, preserving the no-self-loops invariant.
func (self *Graph) AddEdge(a ir.Symbol, b ir.Symbol) {
    na := self.NodeOf(a)
    nb := self.NodeOf(b)

    if na == nil || nb == nil {
        panic(fmt.Sprintf("igraph: AddEdge on unknown symbol %q/%q", a, b))
    }

    if na.id == nb.id {
        return
    }

    self.g.SetEdge(simple.Edge{F: na, T: nb})
}

// HasEdge reports whether a and b interfere.
func (self *Graph) HasEdge(a ir.Symbol, b ir.Symbol) bool {
    na := self.NodeOf(a)
    nb := self.NodeOf(b)

    if na == nil || nb == nil {
        return false
    }

    return self.g.HasEdgeBetween(na.id, nb.id)
}

// Degree returns the count of distinct neighbors of the node representing s.
func (self *Graph) Degree(s ir.Symbol) int {
    n := self.NodeOf(s)

    if n == nil {
        return 0
    }

    return self.g.From(n.id).Len()
}

// Neighbors returns every member symbol of every node adjacent to the node
// representing s (all members of a coalesced neighbor, not just one).
func (self *Graph) Neighbors(s ir.Symbol) ir.SymbolSet {
    out := make(ir.SymbolSet)
    n := self.NodeOf(s)

    if n == nil {
        return out
    }

    it := self.g.From(n.id)

    for it.Next() {
        nb := it.Node().(*Node)
        out.Union(nb.Members)
    }

    return out
}

// Nodes returns every node currently in the graph.
func (self *Graph) Nodes() []*Node {
    ns := make([]*Node, 0, len(self.nodes))

    for _, n := range self.nodes {
        ns = append(ns, n)
    }

    return ns
}

// RemoveNode deletes n from the graph, lowering the degree of every former
// neighbor accordingly. Used by the Colorer's private working copy during
// the simplify phase; the canonical Graph used for coalescing is never
// mutated this way.
func (self *Graph) RemoveNode(id int64) {
    n, ok := self.nodes[id]

    if !ok {
        return
    }

    for s := range n.Members {
        delete(self.nodeOf, s)
    }

    delete(self.nodes, id)
    self.g.RemoveNode(id)
}

// Clone returns a deep copy: a private working graph the Colorer may
// simplify destructively without disturbing self.
func (self *Graph) Clone() *Graph {
    out := New()
    out.next = self.next

    for id, n := range self.nodes {
        nn := &Node{id: id, Members: n.Members.Clone()}
        out.nodes[id] = nn
        out.g.AddNode(nn)

        for s := range nn.Members {
            out.nodeOf[s] = id
        }
    }

    edges := self.g.Edges()

    for edges.Next() {
        e := edges.Edge()
        out.g.SetEdge(simple.Edge{F: out.nodes[e.From().ID()], T: out.nodes[e.To().ID()]})
    }

    return out
}

// Merge folds the nodes representing a and b into a single node, unioning
// their member symbols and their neighbor sets (minus each other), per
// spec.md §3's coalescing invariant. It returns the id of the surviving
// node. If a and b already share a node, Merge changes nothing and returns
// that node's id.
func (self *Graph) Merge(a ir.Symbol, b ir.Symbol) int64 {
    na := self.NodeOf(a)
    nb := self.NodeOf(b)

    if na == nil || nb == nil {
        panic(fmt.Sprintf("igraph: Merge on unknown symbol %q/%q", a, b))
    }

    if na.id == nb.id {
        return na.id
    }

    merged := &Node{id: na.id, Members: na.Members.Clone()}
    merged.Members.Union(nb.Members)

    neigh := make(map[int64]*Node)
    it := self.g.From(na.id)

    for it.Next() {
        nn := it.Node().(*Node)

        if nn.id != nb.id {
            neigh[nn.id] = nn
        }
    }

    it = self.g.From(nb.id)

    for it.Next() {
        nn := it.Node().(*Node)

        if nn.id != na.id {
            neigh[nn.id] = nn
        }
    }

    self.g.RemoveNode(na.id)
    self.g.RemoveNode(nb.id)
    self.g.AddNode(merged)

    for _, nn := range neigh {
        self.g.SetEdge(simple.Edge{F: merged, T: nn})
    }

    self.nodes[merged.id] = merged
    delete(self.nodes, nb.id)

    for s := range merged.Members {
        self.nodeOf[s] = merged.id
    }

    return merged.id
}

// MustValidate checks the invariants spec.md §3 names for InterferenceGraph:
// no self-loops, symmetric edges, and degree equal to the count of distinct
// neighbors. A violation panics with errs.InternalInvariantViolation, which
// the AllocationDriver recovers at its boundary; a correct build never
// triggers this, so this is a defensive assertion, not a validation of
// caller input.
func (self *Graph) MustValidate() {
    for id, n := range self.nodes {
        seen := make(map[int64]bool)
        it := self.g.From(id)

        for it.Next() {
            nb := it.Node().(*Node)

            if nb.id == id {
                panic(errs.InternalInvariantViolation{
                    Note: fmt.Sprintf("igraph: self-loop on node %s", n.Members),
                })
            }

            if !self.g.HasEdgeBetween(id, nb.id) {
                panic(errs.InternalInvariantViolation{
                    Note: fmt.Sprintf("igraph: asymmetric edge between %s and %s", n.Members, nb.Members),
                })
            }

            seen[nb.id] = true
        }

        if deg := self.g.From(id).Len(); deg != len(seen) {
            panic(errs.InternalInvariantViolation{
                Note: fmt.Sprintf("igraph: degree mismatch on node %s: reported %d, counted %d", n.Members, deg, len(seen)),
            })
        }
    }
}

var _ graph.Node = (*Node)(nil)
