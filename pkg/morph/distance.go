package morph

import (
	"slices"
)

// PathDistanceFinder answers path distance queries measured from the soma.
// Distances are computed once at construction.
type PathDistanceFinder struct {
	geo  *Geometry
	dist []float64 // by node ID
}

// NewPathDistanceFinder computes the path distance of every node in g.
func NewPathDistanceFinder(g *Geometry) *PathDistanceFinder {
	f := &PathDistanceFinder{geo: g, dist: make([]float64, len(g.Nodes))}
	root := g.Root()
	if root == nil {
		return f
	}

	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range n.Children {
			d := f.dist[n.ID]
			if !(c.Soma && n.Soma) {
				d += n.Dist(c.Point)
			}
			f.dist[c.ID] = d
			stack = append(stack, c)
		}
	}
	return f
}

// NodeDistance returns the path distance from the soma to n.
func (f *PathDistanceFinder) NodeDistance(n *Node) float64 {
	return f.dist[n.ID]
}

// DistanceTo returns the path distance from the soma to the far end of s.
func (f *PathDistanceFinder) DistanceTo(s *Segment) float64 {
	return f.dist[s.End.ID]
}

// PathTo returns the segments from the soma out to s, inclusive, ordered
// proximal to distal.
func (f *PathDistanceFinder) PathTo(s *Segment) []*Segment {
	var path []*Segment
	for seg := s; seg != nil; seg = f.geo.SegmentTo(seg.Start) {
		path = append(path, seg)
	}
	slices.Reverse(path)
	return path
}

// TipDistances returns the tips of the geometry and the path distance of each.
func (f *PathDistanceFinder) TipDistances() ([]*Segment, []float64) {
	tips := f.geo.Tips()
	dists := make([]float64, len(tips))
	for i, t := range tips {
		dists[i] = f.DistanceTo(t)
	}
	return tips, dists
}
