package grammar

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Sumatoshi-tech/semtree/pkg/semtree/raw"
)

// Position is a 1-indexed line and column in a dump.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}

// DumpNode is the JSON form of one concrete syntax tree node.
type DumpNode struct {
	Kind     string      `json:"kind"`
	Field    string      `json:"field,omitempty"`
	Named    bool        `json:"named"`
	Start    Position    `json:"start"`
	End      Position    `json:"end"`
	Text     string      `json:"text,omitempty"`
	Children []*DumpNode `json:"children,omitempty"`
}

// Dump converts the tree rooted at n. Leaves carry their source text. With
// namedOnly, anonymous tokens are left out.
func Dump(n raw.Node, source []byte, namedOnly bool) *DumpNode {
	out := &DumpNode{
		Kind:  n.Kind(),
		Field: n.Field(),
		Named: n.IsNamed(),
		Start: position(n.Start()),
		End:   position(n.End()),
	}

	kids := n.Children()
	if len(kids) == 0 {
		out.Text = raw.Text(n, source)

		return out
	}

	for _, c := range kids {
		if namedOnly && !c.IsNamed() {
			continue
		}

		out.Children = append(out.Children, Dump(c, source, namedOnly))
	}

	return out
}

// WriteDump writes the dump of n as indented JSON.
func WriteDump(w io.Writer, n raw.Node, source []byte, namedOnly bool) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(Dump(n, source, namedOnly)); err != nil {
		return fmt.Errorf("encode dump: %w", err)
	}

	return nil
}

func position(p raw.Point) Position {
	return Position{
		Line:   int(p.Row) + 1,    //nolint:gosec // tree-sitter points are uint32.
		Column: int(p.Column) + 1, //nolint:gosec // tree-sitter points are uint32.
		Offset: int(p.Offset),     //nolint:gosec // tree-sitter points are uint32.
	}
}
