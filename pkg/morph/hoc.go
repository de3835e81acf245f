package morph

import (
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/arborheat/pkg/errors"
)

const (
	hocName = `[A-Za-z_]\w*(?:\[\d+\])?(?:\.\w+)?`
	hocNum  = `[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`
)

// Statement alternatives, tried leftmost first. Group numbers are referenced
// by the hocGroup* constants below.
var hocStatement = regexp.MustCompile(
	`\bcreate\s+([^\n{}]+)` + // 1: declarations
		`|\bconnect\s+(` + hocName + `)\s*\(\s*(` + hocNum + `)\s*\)\s*,\s*(?:(` + hocName + `)\s*\(\s*(` + hocNum + `)\s*\)|(` + hocNum + `))` + // 2..6
		`|\bpt3dadd\s*\(([^)]*)\)` + // 7: point arguments
		`|\b(pt3dclear)\s*\([^)]*\)` + // 8
		`|(` + hocName + `)[ \t]+(pt3dadd|pt3dclear|connect)\b` + // 9: section prefix, 10: keyword
		`|(` + hocName + `)\s*\{` + // 11: section block
		`|(\{)` + // 12
		`|(\})`, // 13
)

const (
	hocGroupCreate      = 1
	hocGroupChild       = 2
	hocGroupChildX      = 3
	hocGroupParent      = 4
	hocGroupParentX     = 5
	hocGroupImplicitX   = 6
	hocGroupPt3dadd     = 7
	hocGroupPt3dclear   = 8
	hocGroupPrefix      = 9
	hocGroupPrefixStart = 10
	hocGroupBlock       = 11
	hocGroupOpen        = 12
	hocGroupClose       = 13
)

var (
	hocBlockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	hocArraySize    = regexp.MustCompile(`^(\w+)\s*\[\s*(\d+)\s*\]$`)
)

type hocPoint struct {
	p    Point
	diam float64
}

type hocSection struct {
	name    string
	points  []hocPoint
	parent  string
	parentX float64
	childX  float64
	nodes   []*Node
}

// hocParser accumulates sections while scanning.
type hocParser struct {
	src      string
	order    []string
	sections map[string]*hocSection
	stack    []string // enclosing section per open brace, "" for plain blocks
	pending  string   // section named by a prefix statement
}

// ReadHoc parses the hoc subset described in the package documentation.
func ReadHoc(r io.Reader, name string) (*Geometry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGeometry, err, "read %s", name)
	}

	p := &hocParser{
		src:      stripHocComments(string(data)),
		sections: make(map[string]*hocSection),
	}
	if err := p.scan(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGeometry, err, "parse %s", name)
	}
	return p.build(name)
}

// stripHocComments blanks out comments while keeping newlines so that
// reported line numbers stay accurate.
func stripHocComments(src string) string {
	src = hocBlockComment.ReplaceAllStringFunc(src, func(c string) string {
		return strings.Repeat("\n", strings.Count(c, "\n"))
	})
	lines := strings.Split(src, "\n")
	for i, l := range lines {
		if j := strings.Index(l, "//"); j >= 0 {
			lines[i] = l[:j]
		}
	}
	return strings.Join(lines, "\n")
}

func (p *hocParser) lineAt(pos int) int {
	return strings.Count(p.src[:pos], "\n") + 1
}

func (p *hocParser) scan() error {
	pos := 0
	for pos < len(p.src) {
		loc := hocStatement.FindStringSubmatchIndex(p.src[pos:])
		if loc == nil {
			return nil
		}
		group := func(i int) (string, bool) {
			if loc[2*i] < 0 {
				return "", false
			}
			return p.src[pos+loc[2*i] : pos+loc[2*i+1]], true
		}
		start := pos + loc[0]
		next := pos + loc[1]

		switch {
		case loc[2*hocGroupCreate] >= 0:
			decl, _ := group(hocGroupCreate)
			if err := p.declare(decl); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidGeometry, err, "line %d", p.lineAt(start))
			}

		case loc[2*hocGroupChild] >= 0:
			if err := p.connect(group); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidGeometry, err, "line %d", p.lineAt(start))
			}
			p.pending = ""

		case loc[2*hocGroupPt3dadd] >= 0:
			args, _ := group(hocGroupPt3dadd)
			if err := p.pt3dadd(args); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidGeometry, err, "line %d", p.lineAt(start))
			}
			p.pending = ""

		case loc[2*hocGroupPt3dclear] >= 0:
			if sec := p.current(); sec != nil {
				sec.points = nil
			}
			p.pending = ""

		case loc[2*hocGroupPrefix] >= 0:
			name, _ := group(hocGroupPrefix)
			p.pending = name
			// Resume at the keyword so it is matched as its own statement.
			next = pos + loc[2*hocGroupPrefixStart]

		case loc[2*hocGroupBlock] >= 0:
			name, _ := group(hocGroupBlock)
			if _, ok := p.sections[name]; ok {
				p.stack = append(p.stack, name)
			} else {
				p.stack = append(p.stack, "")
			}

		case loc[2*hocGroupOpen] >= 0:
			p.stack = append(p.stack, "")

		case loc[2*hocGroupClose] >= 0:
			if len(p.stack) == 0 {
				return errors.New(errors.ErrCodeInvalidGeometry, "line %d: unbalanced '}'", p.lineAt(start))
			}
			p.stack = p.stack[:len(p.stack)-1]
		}
		pos = next
	}
	return nil
}

// declare handles the argument list of a create statement.
func (p *hocParser) declare(decl string) error {
	for _, raw := range strings.Split(decl, ",") {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if m := hocArraySize.FindStringSubmatch(name); m != nil {
			n, err := strconv.Atoi(m[2])
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidGeometry, err, "array size in %q", name)
			}
			for i := 0; i < n; i++ {
				p.section(m[1] + "[" + strconv.Itoa(i) + "]")
			}
			continue
		}
		if strings.ContainsAny(name, " \t()=") {
			return errors.New(errors.ErrCodeInvalidGeometry, "bad section name %q", name)
		}
		p.section(name)
	}
	return nil
}

// section returns the named section, declaring it on first use.
func (p *hocParser) section(name string) *hocSection {
	if s, ok := p.sections[name]; ok {
		return s
	}
	s := &hocSection{name: name, parentX: 1}
	p.sections[name] = s
	p.order = append(p.order, name)
	return s
}

// current returns the section a statement applies to, or nil outside any
// section context.
func (p *hocParser) current() *hocSection {
	if p.pending != "" {
		return p.section(p.pending)
	}
	for i := len(p.stack) - 1; i >= 0; i-- {
		if p.stack[i] != "" {
			return p.sections[p.stack[i]]
		}
	}
	return nil
}

func (p *hocParser) pt3dadd(args string) error {
	sec := p.current()
	if sec == nil {
		return errors.New(errors.ErrCodeInvalidGeometry, "pt3dadd outside a section")
	}
	fields := strings.Split(args, ",")
	if len(fields) != 4 {
		return errors.New(errors.ErrCodeInvalidGeometry, "pt3dadd needs 4 arguments, got %d", len(fields))
	}
	var v [4]float64
	for i, f := range fields {
		x, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
			return errors.New(errors.ErrCodeInvalidGeometry, "pt3dadd argument %d: invalid number %q", i+1, strings.TrimSpace(f))
		}
		v[i] = x
	}
	sec.points = append(sec.points, hocPoint{p: Point{v[0], v[1], v[2]}, diam: v[3]})
	return nil
}

func (p *hocParser) connect(group func(int) (string, bool)) error {
	childName, _ := group(hocGroupChild)
	childX, err := parseFraction(group(hocGroupChildX))
	if err != nil {
		return err
	}

	var parentName string
	var parentX float64
	if name, ok := group(hocGroupParent); ok {
		parentName = name
		if parentX, err = parseFraction(group(hocGroupParentX)); err != nil {
			return err
		}
	} else {
		// "parent connect child(0), x" form.
		sec := p.current()
		if sec == nil {
			return errors.New(errors.ErrCodeInvalidGeometry, "connect %s without a parent section", childName)
		}
		parentName = sec.name
		if parentX, err = parseFraction(group(hocGroupImplicitX)); err != nil {
			return err
		}
	}

	if parentName == childName {
		return errors.New(errors.ErrCodeInvalidGeometry, "section %s connected to itself", childName)
	}
	child := p.section(childName)
	p.section(parentName)
	child.parent = parentName
	child.parentX = parentX
	child.childX = childX
	return nil
}

func parseFraction(s string, _ bool) (float64, error) {
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidGeometry, err, "invalid position %q", s)
	}
	if x < 0 || x > 1 {
		return 0, errors.New(errors.ErrCodeInvalidGeometry, "position %g outside [0, 1]", x)
	}
	return x, nil
}

// rootSection picks the soma: the first section named soma*, else the first
// unconnected section that has points.
func (p *hocParser) rootSection() *hocSection {
	for _, name := range p.order {
		if strings.HasPrefix(name, "soma") && len(p.sections[name].points) > 0 {
			return p.sections[name]
		}
	}
	for _, name := range p.order {
		s := p.sections[name]
		if s.parent == "" && len(s.points) > 0 {
			return s
		}
	}
	return nil
}

func (p *hocParser) build(name string) (*Geometry, error) {
	root := p.rootSection()
	if root == nil {
		return nil, errors.New(errors.ErrCodeInvalidGeometry, "%s: no section with 3D points", name)
	}

	children := make(map[string][]*hocSection)
	for _, n := range p.order {
		s := p.sections[n]
		if s.parent != "" && s != root {
			children[s.parent] = append(children[s.parent], s)
		}
	}

	b := newBuilder(name)
	soma := strings.HasPrefix(root.name, "soma")
	var prev *Node
	for _, pt := range root.points {
		prev = b.add(pt.p, pt.diam/2, root.name, soma, prev)
		root.nodes = append(root.nodes, prev)
	}

	visited := map[string]bool{root.name: true}
	queue := []*hocSection{root}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]
		for _, child := range children[parent.name] {
			if visited[child.name] {
				continue
			}
			visited[child.name] = true

			attach := parent.attachNode(child.parentX)
			child.nodes = nil
			// A point-less section passes its attachment through to its own children.
			if len(child.points) == 0 {
				if attach != nil {
					child.nodes = []*Node{attach}
				}
				queue = append(queue, child)
				continue
			}

			pts := child.points
			if child.childX >= 0.5 {
				pts = reversed(pts)
			}
			prev := attach
			for _, pt := range pts {
				prev = b.add(pt.p, pt.diam/2, child.name, strings.HasPrefix(child.name, "soma"), prev)
				child.nodes = append(child.nodes, prev)
			}
			queue = append(queue, child)
		}
	}

	for _, n := range p.order {
		if !visited[n] && len(p.sections[n].points) > 0 {
			b.detach(n)
		}
	}
	return b.geo, nil
}

// attachNode returns the node closest to arc-length fraction x of the section.
func (s *hocSection) attachNode(x float64) *Node {
	if len(s.nodes) == 0 {
		return nil
	}
	if len(s.nodes) == 1 || x <= 0 {
		return s.nodes[0]
	}
	total := 0.0
	cum := make([]float64, len(s.nodes))
	for i := 1; i < len(s.nodes); i++ {
		total += s.nodes[i-1].Dist(s.nodes[i].Point)
		cum[i] = total
	}
	if total == 0 || x >= 1 {
		return s.nodes[len(s.nodes)-1]
	}
	target := x * total
	best := 0
	for i, c := range cum {
		if math.Abs(c-target) < math.Abs(cum[best]-target) {
			best = i
		}
	}
	return s.nodes[best]
}

func reversed(pts []hocPoint) []hocPoint {
	out := make([]hocPoint, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
