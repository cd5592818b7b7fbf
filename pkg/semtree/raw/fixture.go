package raw

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFixtureText is returned by Place when a leaf's text does not occur in
// the remaining source.
var ErrFixtureText = errors.New("fixture leaf text not found in source")

// Fixture is a hand-built syntax tree used to drive the construction engine
// without a parser. Leaves carry their text; Place derives positions from
// where that text occurs in the source.
type Fixture struct {
	kind     string
	field    string
	text     string
	named    bool
	start    Point
	end      Point
	children []*Fixture
}

// Tok creates an anonymous token whose kind is its text.
func Tok(text string) *Fixture {
	return &Fixture{kind: text, text: text}
}

// Leaf creates a named leaf.
func Leaf(kind, text string) *Fixture {
	return &Fixture{kind: kind, text: text, named: true}
}

// Tree creates a named interior node.
func Tree(kind string, children ...*Fixture) *Fixture {
	return &Fixture{kind: kind, named: true, children: children}
}

// As assigns the grammar field of f.
func (f *Fixture) As(field string) *Fixture {
	f.field = field

	return f
}

// Kind implements Node.
func (f *Fixture) Kind() string { return f.kind }

// IsNamed implements Node.
func (f *Fixture) IsNamed() bool { return f.named }

// Field implements Node.
func (f *Fixture) Field() string { return f.field }

// Start implements Node.
func (f *Fixture) Start() Point { return f.start }

// End implements Node.
func (f *Fixture) End() Point { return f.end }

// Children implements Node.
func (f *Fixture) Children() []Node {
	out := make([]Node, len(f.children))
	for i, c := range f.children {
		out[i] = c
	}

	return out
}

// Place assigns positions to every node of root by locating each leaf's
// text in source, left to right. The root spans the whole source, the way
// parsers report the top-level node.
func Place(source string, root *Fixture) (*Fixture, error) {
	p := placer{source: source, lines: lineStarts(source)}

	if err := p.place(root); err != nil {
		return nil, err
	}

	root.start = p.point(0)
	root.end = p.point(uint(len(source)))

	return root, nil
}

// MustPlace is Place for test tables; it panics on error.
func MustPlace(source string, root *Fixture) *Fixture {
	f, err := Place(source, root)
	if err != nil {
		panic(err)
	}

	return f
}

type placer struct {
	source string
	lines  []uint
	cursor uint
}

func (p *placer) place(f *Fixture) error {
	if len(f.children) == 0 {
		idx := strings.Index(p.source[p.cursor:], f.text)
		if idx < 0 {
			return fmt.Errorf("%w: %q after offset %d", ErrFixtureText, f.text, p.cursor)
		}

		start := p.cursor + uint(idx)
		p.cursor = start + uint(len(f.text))
		f.start = p.point(start)
		f.end = p.point(p.cursor)

		return nil
	}

	for _, c := range f.children {
		if err := p.place(c); err != nil {
			return err
		}
	}

	f.start = f.children[0].start
	f.end = f.children[len(f.children)-1].end

	return nil
}

func (p *placer) point(offset uint) Point {
	row := uint(0)

	for i, start := range p.lines {
		if start > offset {
			break
		}

		row = uint(i)
	}

	return Point{Row: row, Column: offset - p.lines[row], Offset: offset}
}

func lineStarts(source string) []uint {
	starts := []uint{0}

	for i := range len(source) {
		if source[i] == '\n' {
			starts = append(starts, uint(i+1))
		}
	}

	return starts
}
