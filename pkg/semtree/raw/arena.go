package raw

import "github.com/Sumatoshi-tech/semtree/pkg/semtree/node"

// Attributes carried by mirrored raw nodes.
const (
	attrField     = "field"
	attrAnonymous = "anonymous"
)

// Mirror copies the syntax tree rooted at n into doc, one element per raw
// node named after its kind, and returns the detached copy. Every mirrored
// element keeps the exact span of its raw node, so the copy (and any Clone
// of it) can be walked again through View with unchanged positions.
func Mirror(doc *node.Document, n Node) node.ID {
	el := doc.NewElement(n.Kind())

	if f := n.Field(); f != "" {
		doc.SetAttr(el, attrField, f)
	}

	if !n.IsNamed() {
		doc.SetAttr(el, attrAnonymous, "true")
	}

	start, end := n.Start(), n.End()
	doc.SetSpan(el, node.NewPositions(
		start.Row+1, start.Column+1, start.Offset,
		end.Row+1, end.Column+1, end.Offset,
	))

	for _, c := range n.Children() {
		doc.Append(el, Mirror(doc, c))
	}

	return el
}

// View exposes a mirrored subtree of a document as a raw syntax tree.
type View struct {
	doc *node.Document
	id  node.ID
}

// NewView wraps the mirrored element id.
func NewView(doc *node.Document, id node.ID) View {
	return View{doc: doc, id: id}
}

// ID returns the arena address of the viewed element.
func (v View) ID() node.ID { return v.id }

// Kind implements Node.
func (v View) Kind() string { return v.doc.Name(v.id) }

// IsNamed implements Node.
func (v View) IsNamed() bool {
	_, anon := v.doc.Attr(v.id, attrAnonymous)

	return !anon
}

// Field implements Node.
func (v View) Field() string {
	f, _ := v.doc.Attr(v.id, attrField)

	return f
}

// Start implements Node.
func (v View) Start() Point {
	span := v.doc.Span(v.id)
	if span == nil {
		return Point{}
	}

	return Point{Row: span.StartLine - 1, Column: span.StartCol - 1, Offset: span.StartOffset}
}

// End implements Node.
func (v View) End() Point {
	span := v.doc.Span(v.id)
	if span == nil {
		return Point{}
	}

	return Point{Row: span.EndLine - 1, Column: span.EndCol - 1, Offset: span.EndOffset}
}

// Children implements Node.
func (v View) Children() []Node {
	kids := v.doc.Children(v.id)
	out := make([]Node, 0, len(kids))

	for _, c := range kids {
		if !v.doc.IsText(c) {
			out = append(out, View{doc: v.doc, id: c})
		}
	}

	return out
}
