package grammar

import (
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/Sumatoshi-tech/semtree/pkg/semtree/raw"
)

// cstNode adapts a tree-sitter node to raw.Node. The grammar field is not
// stored on tree-sitter nodes, so it is captured from the parent's cursor
// when the child is produced.
type cstNode struct {
	n     sitter.Node
	field string
}

func wrap(n sitter.Node, field string) cstNode {
	return cstNode{n: n, field: field}
}

// Kind implements raw.Node.
func (c cstNode) Kind() string { return c.n.Type() }

// IsNamed implements raw.Node.
func (c cstNode) IsNamed() bool { return c.n.IsNamed() }

// Field implements raw.Node.
func (c cstNode) Field() string { return c.field }

// Start implements raw.Node.
func (c cstNode) Start() raw.Point {
	p := c.n.StartPoint()

	return raw.Point{Row: uint(p.Row), Column: uint(p.Column), Offset: uint(c.n.StartByte())}
}

// End implements raw.Node.
func (c cstNode) End() raw.Point {
	p := c.n.EndPoint()

	return raw.Point{Row: uint(p.Row), Column: uint(p.Column), Offset: uint(c.n.EndByte())}
}

// Children implements raw.Node.
func (c cstNode) Children() []raw.Node {
	cursor := sitter.NewTreeCursor(c.n)
	if !cursor.GoToFirstChild() {
		return nil
	}

	var out []raw.Node

	for {
		out = append(out, wrap(cursor.CurrentNode(), cursor.CurrentFieldName()))

		if !cursor.GoToNextSibling() {
			break
		}
	}

	return out
}
