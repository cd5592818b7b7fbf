// Package query evaluates XPath 1.0 expressions directly against semantic
// trees.
package query

import (
	"github.com/antchfx/xpath"

	"github.com/Sumatoshi-tech/semtree/pkg/semtree/node"
)

// noAttr marks a navigator positioned on a node rather than an attribute.
const noAttr = -1

// Navigator implements xpath.NodeNavigator over a node.Document. Above the
// document root element sits a virtual document node. Every element with a
// resolvable span exposes start and end as attributes after its own.
type Navigator struct {
	doc  *node.Document
	top  node.ID
	cur  node.ID
	attr int
}

var _ xpath.NodeNavigator = (*Navigator)(nil)

// NewNavigator creates a navigator over the tree rooted at top, positioned
// on the virtual document node.
func NewNavigator(doc *node.Document, top node.ID) *Navigator {
	return &Navigator{doc: doc, top: top, cur: node.None, attr: noAttr}
}

// Current returns the node the navigator is on; None on the document node.
func (n *Navigator) Current() node.ID { return n.cur }

// Attribute returns the attribute the navigator is on, if any.
func (n *Navigator) Attribute() (node.Attr, bool) {
	if n.attr == noAttr {
		return node.Attr{}, false
	}

	return n.attrAt(n.attr)
}

// NodeType implements xpath.NodeNavigator.
func (n *Navigator) NodeType() xpath.NodeType {
	switch {
	case n.cur == node.None:
		return xpath.RootNode
	case n.attr != noAttr:
		return xpath.AttributeNode
	case n.doc.IsText(n.cur):
		return xpath.TextNode
	default:
		return xpath.ElementNode
	}
}

// LocalName implements xpath.NodeNavigator.
func (n *Navigator) LocalName() string {
	if n.attr != noAttr {
		a, _ := n.attrAt(n.attr)

		return a.Name
	}

	if n.cur == node.None || n.doc.IsText(n.cur) {
		return ""
	}

	return n.doc.Name(n.cur)
}

// Prefix implements xpath.NodeNavigator. Semantic trees carry no namespaces.
func (n *Navigator) Prefix() string { return "" }

// Value implements xpath.NodeNavigator.
func (n *Navigator) Value() string {
	switch {
	case n.cur == node.None:
		return n.doc.StringValue(n.top)
	case n.attr != noAttr:
		a, _ := n.attrAt(n.attr)

		return a.Value
	default:
		return n.doc.StringValue(n.cur)
	}
}

// Copy implements xpath.NodeNavigator.
func (n *Navigator) Copy() xpath.NodeNavigator {
	dup := *n

	return &dup
}

// MoveToRoot implements xpath.NodeNavigator.
func (n *Navigator) MoveToRoot() {
	n.cur = node.None
	n.attr = noAttr
}

// MoveToParent implements xpath.NodeNavigator.
func (n *Navigator) MoveToParent() bool {
	switch {
	case n.attr != noAttr:
		n.attr = noAttr

		return true
	case n.cur == node.None:
		return false
	case n.cur == n.top:
		n.cur = node.None

		return true
	}

	n.cur = n.doc.Parent(n.cur)

	return true
}

// MoveToNextAttribute implements xpath.NodeNavigator.
func (n *Navigator) MoveToNextAttribute() bool {
	if n.cur == node.None || n.doc.IsText(n.cur) {
		return false
	}

	next := n.attr + 1
	if _, ok := n.attrAt(next); !ok {
		return false
	}

	n.attr = next

	return true
}

// MoveToChild implements xpath.NodeNavigator.
func (n *Navigator) MoveToChild() bool {
	if n.attr != noAttr {
		return false
	}

	if n.cur == node.None {
		n.cur = n.top

		return true
	}

	if n.doc.IsText(n.cur) {
		return false
	}

	kids := n.doc.Children(n.cur)
	if len(kids) == 0 {
		return false
	}

	n.cur = kids[0]

	return true
}

// MoveToFirst implements xpath.NodeNavigator.
func (n *Navigator) MoveToFirst() bool {
	siblings, _, ok := n.siblings()
	if !ok {
		return false
	}

	n.cur = siblings[0]

	return true
}

// MoveToNext implements xpath.NodeNavigator.
func (n *Navigator) MoveToNext() bool {
	siblings, idx, ok := n.siblings()
	if !ok || idx+1 >= len(siblings) {
		return false
	}

	n.cur = siblings[idx+1]

	return true
}

// MoveToPrevious implements xpath.NodeNavigator.
func (n *Navigator) MoveToPrevious() bool {
	siblings, idx, ok := n.siblings()
	if !ok || idx == 0 {
		return false
	}

	n.cur = siblings[idx-1]

	return true
}

// MoveTo implements xpath.NodeNavigator.
func (n *Navigator) MoveTo(other xpath.NodeNavigator) bool {
	o, ok := other.(*Navigator)
	if !ok || o.doc != n.doc || o.top != n.top {
		return false
	}

	n.cur = o.cur
	n.attr = o.attr

	return true
}

// siblings returns the children of the current node's parent and the
// current node's index among them. The top element has no siblings.
func (n *Navigator) siblings() ([]node.ID, int, bool) {
	if n.attr != noAttr || n.cur == node.None || n.cur == n.top {
		return nil, 0, false
	}

	parent := n.doc.Parent(n.cur)
	if parent == node.None {
		return nil, 0, false
	}

	kids := n.doc.Children(parent)
	for i, c := range kids {
		if c == n.cur {
			return kids, i, true
		}
	}

	return nil, 0, false
}

// attrAt returns the i-th attribute of the current element, counting the
// span attributes after the element's own.
func (n *Navigator) attrAt(i int) (node.Attr, bool) {
	if i < 0 {
		return node.Attr{}, false
	}

	attrs := n.doc.Attrs(n.cur)
	if i < len(attrs) {
		return attrs[i], true
	}

	if _, own := n.doc.Attr(n.cur, node.AttrStart); own {
		return node.Attr{}, false
	}

	span := n.doc.ResolveSpan(n.cur)
	if span == nil {
		return node.Attr{}, false
	}

	switch i - len(attrs) {
	case 0:
		return node.Attr{Name: node.AttrStart, Value: span.Start()}, true
	case 1:
		return node.Attr{Name: node.AttrEnd, Value: span.End()}, true
	default:
		return node.Attr{}, false
	}
}
