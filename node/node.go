// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package node implements the scene's graph.
package node

import (
	"iter"

	"github.com/gviegas/krystall/internal/bitvec"
	"github.com/gviegas/krystall/linear"
	"github.com/gviegas/krystall/render"
	"github.com/pkg/errors"
)

var (
	// ErrDoubleOwnership means that a node that already
	// has a parent was given to Graph.AddChild.
	ErrDoubleOwnership = errors.New("node: node already has a parent")

	// ErrCycle means that Graph.AddChild would make a node
	// a descendant of itself.
	ErrCycle = errors.New("node: node would become its own descendant")

	// ErrInvalidNode means that a Node does not identify
	// a live node in the Graph.
	ErrInvalidNode = errors.New("node: invalid node")
)

// Node identifies a node in a Graph.
type Node int

// Nil represents an invalid Node.
const Nil Node = 0

// nodeMapNBit is the granularity of Graph.nodeMap.
const nodeMapNBit = 32

type node struct {
	parent Node
	// First and last immediate descendants.
	sub  Node
	last Node
	// Siblings, in insertion order.
	next Node
	prev Node

	local linear.M4
	draw  render.Drawable
}

// Graph is a node graph.
// It owns every node created through it. A node owns
// its subtree: destroying a node destroys all of its
// descendants. Drawables are only referenced.
//
// The zero value for Graph is an empty graph ready
// to use.
type Graph struct {
	nodes   []node
	nodeMap bitvec.V[uint32]
}

// New creates a new node that has no parent.
// A nil local means the identity transform.
// d may be nil, in which case the node only groups
// its descendants.
func (g *Graph) New(local *linear.M4, d render.Drawable) Node {
	idx, ok := g.nodeMap.Search()
	if !ok {
		idx = g.nodeMap.Grow(1)
		g.nodes = append(g.nodes, make([]node, nodeMapNBit)...)
	}
	g.nodeMap.Set(idx)
	nd := &g.nodes[idx]
	*nd = node{draw: d}
	if local != nil {
		nd.local = *local
	} else {
		nd.local.I()
	}
	return Node(idx + 1)
}

// Valid reports whether n identifies a live node.
// Note that handles of destroyed nodes may be reused
// by subsequent calls to New.
func (g *Graph) Valid(n Node) bool { return g.nodeMap.IsSet(int(n) - 1) }

// Len returns the number of live nodes.
func (g *Graph) Len() int { return g.nodeMap.Len() - g.nodeMap.Rem() }

// at returns the node identified by n.
// It panics if n is not valid.
func (g *Graph) at(n Node) *node {
	if !g.Valid(n) {
		panic(ErrInvalidNode)
	}
	return &g.nodes[n-1]
}

// AddChild appends child to the immediate descendants
// of parent, transferring ownership of child (and its
// subtree) to parent.
// child must not have a parent already, and it must
// not be parent itself nor one of parent's ancestors.
func (g *Graph) AddChild(parent, child Node) error {
	switch {
	case !g.Valid(parent):
		return errors.Wrapf(ErrInvalidNode, "parent %d", parent)
	case !g.Valid(child):
		return errors.Wrapf(ErrInvalidNode, "child %d", child)
	}
	c := &g.nodes[child-1]
	if c.parent != Nil {
		return errors.Wrapf(ErrDoubleOwnership, "child %d owned by %d", child, c.parent)
	}
	for x := parent; x != Nil; x = g.nodes[x-1].parent {
		if x == child {
			return errors.Wrapf(ErrCycle, "child %d, parent %d", child, parent)
		}
	}
	p := &g.nodes[parent-1]
	c.parent = parent
	c.prev = p.last
	c.next = Nil
	if p.last != Nil {
		g.nodes[p.last-1].next = child
	} else {
		p.sub = child
	}
	p.last = child
	return nil
}

// Destroy removes n from its parent and destroys n
// and all of its descendants.
func (g *Graph) Destroy(n Node) error {
	if !g.Valid(n) {
		return errors.Wrapf(ErrInvalidNode, "node %d", n)
	}
	g.detach(n)
	que := []Node{n}
	for len(que) > 0 {
		x := que[len(que)-1]
		que = que[:len(que)-1]
		for s := g.nodes[x-1].sub; s != Nil; s = g.nodes[s-1].next {
			que = append(que, s)
		}
		g.nodes[x-1] = node{}
		g.nodeMap.Unset(int(x) - 1)
	}
	return nil
}

// detach unlinks n from its parent, if any.
func (g *Graph) detach(n Node) {
	nd := &g.nodes[n-1]
	if nd.parent == Nil {
		return
	}
	p := &g.nodes[nd.parent-1]
	if nd.prev != Nil {
		g.nodes[nd.prev-1].next = nd.next
	} else {
		p.sub = nd.next
	}
	if nd.next != Nil {
		g.nodes[nd.next-1].prev = nd.prev
	} else {
		p.last = nd.prev
	}
	nd.parent, nd.next, nd.prev = Nil, Nil, Nil
}

// Parent returns the immediate ancestor of n, or Nil
// if n has none.
// n must be valid.
func (g *Graph) Parent(n Node) Node { return g.at(n).parent }

// Children returns an iterator over the immediate
// descendants of n, in the order they were added.
// n must be valid.
func (g *Graph) Children(n Node) iter.Seq[Node] {
	sub := g.at(n).sub
	return func(yield func(Node) bool) {
		for x := sub; x != Nil; x = g.nodes[x-1].next {
			if !yield(x) {
				return
			}
		}
	}
}

// Local returns the local transform of n.
// n must be valid.
func (g *Graph) Local(n Node) linear.M4 { return g.at(n).local }

// SetLocal sets the local transform of n.
// n must be valid.
func (g *Graph) SetLocal(n Node, local *linear.M4) { g.at(n).local = *local }

// Drawable returns the drawable referenced by n.
// n must be valid.
func (g *Graph) Drawable(n Node) render.Drawable { return g.at(n).draw }

// SetDrawable sets the drawable referenced by n.
// n must be valid.
func (g *Graph) SetDrawable(n Node, d render.Drawable) { g.at(n).draw = d }

// World returns the world transform of n, which is
// the product of the local transforms from the root
// of n's tree down to n.
// n must be valid.
func (g *Graph) World(n Node) linear.M4 {
	nd := g.at(n)
	w := nd.local
	for x := nd.parent; x != Nil; x = g.nodes[x-1].parent {
		w.Mul(&g.nodes[x-1].local, &w)
	}
	return w
}

// Draw traverses the tree rooted at root, depth-first
// and ancestors first, calling r.Draw for every node
// that references a drawable.
// The world transform of each node is its parent's
// world transform times its local transform; parent
// is used as the world transform of root's ancestors
// (nil means identity).
// Descendants are visited in the order they were
// added. The graph must not be changed until Draw
// returns. The first error aborts the traversal.
func (g *Graph) Draw(r render.Renderer, root Node, parent, view, proj *linear.M4, light *render.Light) error {
	if !r.Initialized() {
		return render.ErrNotInitialized
	}
	if !g.Valid(root) {
		return errors.Wrapf(ErrInvalidNode, "root %d", root)
	}
	var id linear.M4
	if parent == nil {
		id.I()
		parent = &id
	}
	return g.draw(r, root, parent, view, proj, light)
}

func (g *Graph) draw(r render.Renderer, n Node, parent, view, proj *linear.M4, light *render.Light) error {
	nd := &g.nodes[n-1]
	var world linear.M4
	world.Mul(parent, &nd.local)
	if nd.draw != nil {
		if err := r.Draw(nd.draw, &world, view, proj, light); err != nil {
			return errors.Wrapf(err, "node: draw %d", n)
		}
	}
	for x := nd.sub; x != Nil; x = g.nodes[x-1].next {
		if err := g.draw(r, x, &world, view, proj, light); err != nil {
			return err
		}
	}
	return nil
}

// Colliding reports whether the translations of the
// world transforms wa and wb are no farther apart than
// threshold.
func Colliding(wa, wb *linear.M4, threshold float32) bool {
	ta := wa.Translation()
	tb := wb.Translation()
	var d linear.V3
	d.Sub(&ta, &tb)
	return d.Len() <= threshold
}

// Colliding calls the Colliding function with the
// world transforms of a and b.
// a and b must be valid.
func (g *Graph) Colliding(a, b Node, threshold float32) bool {
	wa := g.World(a)
	wb := g.World(b)
	return Colliding(&wa, &wb, threshold)
}
