package morph

import (
	"math"
)

// Point is a position in micrometers.
type Point struct {
	X, Y, Z float64
}

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y, p.Z + q.Z} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y, p.Z - q.Z} }

// Scale returns p * s.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s, p.Z * s} }

// Len returns the Euclidean norm of p.
func (p Point) Len() float64 { return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z) }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return p.Sub(q).Len() }

// Node is a sample point of the reconstruction.
type Node struct {
	ID int
	Point
	Radius   float64
	Section  string // hoc section name or swc structure type
	Soma     bool   // part of the cell body
	Parent   *Node
	Children []*Node
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Segment is the neurite piece between a node and its parent.
type Segment struct {
	ID    int
	Start *Node
	End   *Node
}

// Length returns the Euclidean length of the segment.
func (s *Segment) Length() float64 { return s.Start.Dist(s.End.Point) }

// Branch is an unbranched run of nodes. Nodes[0] is the branch point the run
// starts from (the root for the first branch).
type Branch struct {
	ID     int
	Parent int // parent branch ID, -1 for the root branch
	Nodes  []*Node
	Length float64
}

// Tip reports whether the branch ends at a leaf.
func (b *Branch) Tip() bool { return b.Nodes[len(b.Nodes)-1].IsLeaf() }

// End returns the last node of the branch.
func (b *Branch) End() *Node { return b.Nodes[len(b.Nodes)-1] }

// Geometry is a loaded reconstruction.
type Geometry struct {
	// Name identifies the source, usually the file name without extension.
	Name string

	// Nodes in construction order. Nodes[i].ID == i and Nodes[0] is the root.
	Nodes []*Node

	// Segments in construction order. Segments[i].ID == i.
	Segments []*Segment

	// Detached lists sections or samples that could not be connected to the
	// soma and were left out.
	Detached []string

	segByEnd map[*Node]*Segment
}

// Root returns the root node (inside the soma when one is present).
func (g *Geometry) Root() *Node {
	if len(g.Nodes) == 0 {
		return nil
	}
	return g.Nodes[0]
}

// SomaCenter returns the centroid of the soma nodes, or the root position
// when no node is flagged as soma.
func (g *Geometry) SomaCenter() Point {
	var sum Point
	n := 0
	for _, nd := range g.Nodes {
		if nd.Soma {
			sum = sum.Add(nd.Point)
			n++
		}
	}
	if n == 0 {
		if r := g.Root(); r != nil {
			return r.Point
		}
		return Point{}
	}
	return sum.Scale(1 / float64(n))
}

// SegmentTo returns the segment ending at n, or nil for the root.
func (g *Geometry) SegmentTo(n *Node) *Segment {
	return g.segByEnd[n]
}

// Tips returns the segments ending at leaf nodes, in node order.
// Leaves inside the soma are not tips.
func (g *Geometry) Tips() []*Segment {
	var tips []*Segment
	for _, s := range g.Segments {
		if s.End.IsLeaf() && !s.End.Soma {
			tips = append(tips, s)
		}
	}
	return tips
}

// Bounds returns the component-wise minimum and maximum over all nodes.
func (g *Geometry) Bounds() (lo, hi Point) {
	if len(g.Nodes) == 0 {
		return Point{}, Point{}
	}
	lo, hi = g.Nodes[0].Point, g.Nodes[0].Point
	for _, n := range g.Nodes[1:] {
		lo = Point{math.Min(lo.X, n.X), math.Min(lo.Y, n.Y), math.Min(lo.Z, n.Z)}
		hi = Point{math.Max(hi.X, n.X), math.Max(hi.Y, n.Y), math.Max(hi.Z, n.Z)}
	}
	return lo, hi
}

// Branches splits the tree into unbranched runs, depth first.
func (g *Geometry) Branches() []*Branch {
	root := g.Root()
	if root == nil {
		return nil
	}

	type start struct {
		nodes  []*Node
		parent int
	}
	var out []*Branch
	stack := []start{{nodes: []*Node{root}, parent: -1}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		nodes := s.nodes
		cur := nodes[len(nodes)-1]
		for len(cur.Children) == 1 {
			cur = cur.Children[0]
			nodes = append(nodes, cur)
		}

		b := &Branch{ID: len(out), Parent: s.parent, Nodes: nodes}
		for i := 1; i < len(nodes); i++ {
			b.Length += nodes[i-1].Dist(nodes[i].Point)
		}
		out = append(out, b)

		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, start{nodes: []*Node{cur, cur.Children[i]}, parent: b.ID})
		}
	}
	return out
}

// builder assembles a Geometry node by node.
type builder struct {
	geo *Geometry
}

func newBuilder(name string) *builder {
	return &builder{geo: &Geometry{Name: name, segByEnd: make(map[*Node]*Segment)}}
}

// add appends a node below parent (nil for the root).
func (b *builder) add(p Point, radius float64, section string, soma bool, parent *Node) *Node {
	n := &Node{
		ID:      len(b.geo.Nodes),
		Point:   p,
		Radius:  radius,
		Section: section,
		Soma:    soma,
		Parent:  parent,
	}
	b.geo.Nodes = append(b.geo.Nodes, n)
	if parent != nil {
		parent.Children = append(parent.Children, n)
		s := &Segment{ID: len(b.geo.Segments), Start: parent, End: n}
		b.geo.Segments = append(b.geo.Segments, s)
		b.geo.segByEnd[n] = s
	}
	return n
}

func (b *builder) detach(what string) {
	b.geo.Detached = append(b.geo.Detached, what)
}
