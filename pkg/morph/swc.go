package morph

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/arborheat/pkg/errors"
)

// SWC structure identifiers.
const (
	swcSoma   = 1
	swcAxon   = 2
	swcBasal  = 3
	swcApical = 4
)

type swcSample struct {
	id       int
	typ      int
	p        Point
	radius   float64
	parent   int
	children []int
}

// ReadSwc parses the seven column SWC format. Samples may appear in any
// order. The first sample without a parent becomes the root; further roots and
// anything below them are reported in Geometry.Detached.
func ReadSwc(r io.Reader, name string) (*Geometry, error) {
	samples := make(map[int]*swcSample)
	var order []int

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		s, err := parseSwcLine(fields)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGeometry, err, "%s: line %d", name, line)
		}
		if _, dup := samples[s.id]; dup {
			return nil, errors.New(errors.ErrCodeInvalidGeometry, "%s: line %d: duplicate sample id %d", name, line, s.id)
		}
		samples[s.id] = s
		order = append(order, s.id)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGeometry, err, "read %s", name)
	}

	var roots []int
	for _, id := range order {
		s := samples[id]
		if s.parent < 0 {
			roots = append(roots, id)
			continue
		}
		parent, ok := samples[s.parent]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidGeometry, "%s: sample %d references missing parent %d", name, id, s.parent)
		}
		parent.children = append(parent.children, id)
	}
	if len(roots) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidGeometry, "%s: no root sample", name)
	}

	b := newBuilder(name)
	type item struct {
		id     int
		parent *Node
	}
	seen := make(map[int]bool, len(samples))
	stack := []item{{id: roots[0]}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[it.id] {
			return nil, errors.New(errors.ErrCodeInvalidGeometry, "%s: cycle at sample %d", name, it.id)
		}
		seen[it.id] = true

		s := samples[it.id]
		n := b.add(s.p, s.radius, swcTypeName(s.typ), s.typ == swcSoma, it.parent)
		for i := len(s.children) - 1; i >= 0; i-- {
			stack = append(stack, item{id: s.children[i], parent: n})
		}
	}

	for _, id := range order {
		if !seen[id] {
			b.detach("sample " + strconv.Itoa(id))
		}
	}
	return b.geo, nil
}

func parseSwcLine(fields []string) (*swcSample, error) {
	if len(fields) < 7 {
		return nil, errors.New(errors.ErrCodeInvalidGeometry, "expected 7 columns, got %d", len(fields))
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGeometry, err, "sample id %q", fields[0])
	}
	typ, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGeometry, err, "structure type %q", fields[1])
	}
	var v [4]float64
	for i := range v {
		x, err := strconv.ParseFloat(fields[2+i], 64)
		if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, errors.New(errors.ErrCodeInvalidGeometry, "column %d: invalid number %q", 3+i, fields[2+i])
		}
		v[i] = x
	}
	parent, err := strconv.Atoi(fields[6])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGeometry, err, "parent id %q", fields[6])
	}
	if parent == id {
		return nil, errors.New(errors.ErrCodeInvalidGeometry, "sample %d is its own parent", id)
	}
	return &swcSample{id: id, typ: typ, p: Point{v[0], v[1], v[2]}, radius: v[3], parent: parent}, nil
}

func swcTypeName(t int) string {
	switch t {
	case swcSoma:
		return "soma"
	case swcAxon:
		return "axon"
	case swcBasal:
		return "dend"
	case swcApical:
		return "apic"
	default:
		return "type" + strconv.Itoa(t)
	}
}
