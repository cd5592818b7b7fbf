// Package raw defines the read-only concrete syntax tree the construction
// engine consumes, independent of the parser that produced it.
package raw

// ErrorKind is the kind parsers give to unparseable input.
const ErrorKind = "ERROR"

// Point is a position in the source. Row and Column are zero-based, Column
// counts bytes, Offset is the byte offset from the start of the source.
type Point struct {
	Row    uint
	Column uint
	Offset uint
}

// Node is one node of a concrete syntax tree.
type Node interface {
	// Kind is the grammar's label for the node. For anonymous tokens it is
	// the token text.
	Kind() string
	// IsNamed distinguishes semantic constructs from punctuation and
	// keywords.
	IsNamed() bool
	// Field is the grammar field the node occupies in its parent, or "".
	Field() string
	Start() Point
	End() Point
	Children() []Node
}

// Text returns the source slice covered by n.
func Text(n Node, source []byte) string {
	start, end := n.Start().Offset, n.End().Offset
	if end > uint(len(source)) || start > end {
		return ""
	}

	return string(source[start:end])
}

// Empty reports whether n covers no source bytes.
func Empty(n Node) bool {
	return n.End().Offset <= n.Start().Offset
}
