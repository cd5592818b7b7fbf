// Package build turns a raw syntax tree into a semantic tree. One walk
// applies a language's rule table node by node and emits elements straight
// into the document arena; configuration formats additionally get a
// value-oriented projection next to the structural tree.
package build

import (
	"strings"

	"github.com/Sumatoshi-tech/semtree/pkg/semtree/node"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/raw"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/rules"
)

// maxInternLen is the maximum leaf length eligible for per-build interning.
// Longer texts are unlikely to repeat within a file.
const maxInternLen = 32

// action is what the default path does with a named node.
type action uint8

const (
	actElement action = iota
	actAtomic
	actType
	actIdentifier
	actExtract
)

type decision struct {
	action action
	name   string
	shape  rules.Shape
}

type walker struct {
	doc   *node.Document
	src   []byte
	table *rules.Table
	texts map[string]string
}

func newWalker(doc *node.Document, source []byte, table *rules.Table) *walker {
	return &walker{
		doc:   doc,
		src:   source,
		table: table,
		texts: make(map[string]string, 128), //nolint:mnd // initial capacity for per-build interner.
	}
}

// Build rewrites the tree rooted at root and returns the detached root of
// the semantic tree. When the root rewrites to anything other than a single
// element (it is flattened, or yields text), the output is wrapped in an
// element named after the root kind.
func Build(doc *node.Document, root raw.Node, source []byte, table *rules.Table) node.ID {
	holder := doc.NewElement(node.Names.Lookup(table.ElementFor(root.Kind())))

	Into(doc, root, source, table, holder)

	if kids := doc.Children(holder); len(kids) == 1 && !doc.IsText(kids[0]) {
		only := kids[0]
		doc.Detach(only)

		return only
	}

	doc.SetSpan(holder, spanOf(root))

	return holder
}

// Into rewrites the tree rooted at root and appends the output to parent.
func Into(doc *node.Document, root raw.Node, source []byte, table *rules.Table, parent node.ID) {
	newWalker(doc, source, table).emit(root, root.Field(), parent, nil)
}

// emit applies the rule priority to one raw node. field is the slot n
// occupies, from the grammar or the table's positional fields; chain holds
// the raw ancestors of n.
func (w *walker) emit(n raw.Node, field string, parent node.ID, chain rules.Chain) {
	kind := n.Kind()
	t := w.table

	if raw.Empty(n) && len(n.Children()) == 0 {
		return
	}

	switch {
	case kind == raw.ErrorKind:
		w.emitError(n, parent)

		return
	case t.Skip.Has(kind):
		return
	case t.Flatten.Has(kind):
		w.flatten(n, field, parent, chain)

		return
	case !n.IsNamed() && t.IsOperator(kind, chain.Parent()):
		w.doc.AppendAttr(parent, rules.AttrOp, w.text(n))

		return
	case t.ModifierWrappers.Has(kind):
		w.children(n, field, parent, chain, true)

		return
	case t.ModifierKinds.Has(kind), !n.IsNamed() && t.Modifiers.Has(kind):
		w.marker(n, parent)

		return
	case !n.IsNamed():
		w.doc.AppendText(parent, w.text(n))

		return
	}

	d := w.decide(n, field, chain)

	if t.Wraps(field) && d.name != field && !w.folds(parent, d) {
		parent = w.doc.AppendElement(parent, node.Names.Lookup(field))
	}

	w.apply(n, field, parent, chain, d)
}

// flatten splices the output of n's children into parent. A flattened node
// in a wrapped field still gets its field wrapper, which is dropped again
// when nothing was emitted into it.
func (w *walker) flatten(n raw.Node, field string, parent node.ID, chain rules.Chain) {
	if !w.table.Wraps(field) {
		w.children(n, field, parent, chain, false)

		return
	}

	wrapper := w.doc.AppendElement(parent, node.Names.Lookup(field))
	w.children(n, field, wrapper, chain, false)

	if w.doc.ChildCount(wrapper) == 0 {
		w.doc.Detach(wrapper)
	}
}

// folds reports whether d becomes the text of parent rather than a child
// element: an identifier inside an element of its own role.
func (w *walker) folds(parent node.ID, d decision) bool {
	return (d.action == actIdentifier || d.action == actExtract) && w.doc.Name(parent) == d.name
}

// decide picks the representation of a named node past the structural
// rules: extract-name, identifier, type or plain element.
func (w *walker) decide(n raw.Node, field string, chain rules.Chain) decision {
	kind := n.Kind()
	t := w.table

	switch {
	case t.ExtractName.Has(kind):
		role := t.Role(rules.Identifier{Kind: kind, Field: field, Text: w.leafText(n)}, chain)

		return decision{action: actExtract, name: role.Element()}
	case t.Identifiers.Has(kind), t.TypeIdentifiers.Has(kind):
		role := t.Role(rules.Identifier{Kind: kind, Field: field, Text: raw.Text(n, w.src)}, chain)

		return decision{action: actIdentifier, name: role.Element()}
	}

	if shape, ok := t.Types[kind]; ok {
		if shape == rules.ShapeSimple && w.hasArguments(n) {
			shape = rules.ShapeGeneric
		}

		return decision{action: actType, name: rules.ElementType, shape: shape}
	}

	name := node.Names.Lookup(t.ElementFor(kind))

	if t.Atomic.Has(kind) {
		return decision{action: actAtomic, name: name}
	}

	return decision{action: actElement, name: name}
}

func (w *walker) apply(n raw.Node, field string, parent node.ID, chain rules.Chain, d decision) {
	switch d.action {
	case actExtract, actIdentifier:
		text := w.text(n)
		if d.action == actExtract {
			text = w.leafText(n)
		}

		if w.folds(parent, d) {
			w.doc.AppendText(parent, text)

			return
		}

		el := w.element(parent, d.name, n)
		w.doc.AppendText(el, text)
	case actAtomic:
		el := w.element(parent, d.name, n)
		w.doc.AppendText(el, w.text(n))
	case actType:
		w.emitType(n, field, parent, chain, d.shape)
	default:
		el := w.element(parent, d.name, n)
		w.children(n, field, el, chain, false)

		if !w.doc.HasElementChildren(el) {
			w.doc.ReplaceChildren(el, w.text(n))
		}
	}
}

// emitType writes a type construct as a type element with a shape marker.
// A simple type directly inside another type element is folded into it,
// and a simple type around a single shaped type yields only the inner one.
func (w *walker) emitType(n raw.Node, field string, parent node.ID, chain rules.Chain, shape rules.Shape) {
	if shape == rules.ShapeSimple && (w.doc.Name(parent) == rules.ElementType || w.wrapsType(n)) {
		if len(n.Children()) == 0 {
			w.doc.AppendText(parent, w.text(n))

			return
		}

		w.children(n, field, parent, chain, false)

		return
	}

	el := w.element(parent, rules.ElementType, n)

	if marker := shape.Marker(); marker != "" {
		w.doc.AppendElement(el, node.Names.Lookup(marker))
	}

	w.children(n, field, el, chain, false)

	if !w.doc.HasElementChildren(el) {
		w.doc.ReplaceChildren(el, w.text(n))
	}
}

// hasArguments reports whether n carries a type argument list, which makes
// a simple type generic.
func (w *walker) hasArguments(n raw.Node) bool {
	for _, c := range n.Children() {
		if c.IsNamed() && w.table.ElementFor(c.Kind()) == rules.ElementArguments {
			return true
		}
	}

	return false
}

// wrapsType reports whether the only named child of n is a type construct.
func (w *walker) wrapsType(n raw.Node) bool {
	var only raw.Node

	for _, c := range n.Children() {
		if !c.IsNamed() {
			continue
		}

		if only != nil {
			return false
		}

		only = c
	}

	if only == nil {
		return false
	}

	_, ok := w.table.Types[only.Kind()]

	return ok
}

// children emits the raw children of n into parent, keeping a single space
// wherever the source separated two pieces of emitted content. In wrapper
// mode anonymous children and modifier kinds become markers. Named
// children without a grammar field take the table's positional field for
// their slot.
func (w *walker) children(n raw.Node, field string, parent node.ID, chain rules.Chain, wrapper bool) {
	self := chain.Push(rules.Frame{Kind: n.Kind(), Field: field})
	slots := w.table.PositionalFields[n.Kind()]
	consumed := n.Start().Offset
	gap := false
	named := 0

	for _, c := range n.Children() {
		cf := c.Field()
		if c.IsNamed() {
			if cf == "" && named < len(slots) {
				cf = slots[named]
			}

			named++
		}

		start := c.Start().Offset
		if start > consumed && hasSpace(w.src[consumed:start]) {
			gap = true
		}

		mark := w.doc.ChildCount(parent)

		if wrapper && (!c.IsNamed() || w.table.ModifierKinds.Has(c.Kind())) {
			w.marker(c, parent)
		} else {
			w.emit(c, cf, parent, self)
		}

		if end := c.End().Offset; end > consumed {
			consumed = end
		}

		if !w.emittedText(parent, mark) {
			// Dropped or lifted source still separates its neighbours.
			if w.doc.ChildCount(parent) == mark && !raw.Empty(c) {
				gap = true
			}

			continue
		}

		if gap && w.textBefore(parent, mark) {
			w.doc.InsertAt(parent, mark, w.doc.NewText(" "))
		}

		gap = false
	}
}

// emittedText reports whether the children of parent from index mark on
// carry any text.
func (w *walker) emittedText(parent node.ID, mark int) bool {
	kids := w.doc.Children(parent)

	for i := mark; i < len(kids); i++ {
		if w.doc.HasText(kids[i]) {
			return true
		}
	}

	return false
}

// textBefore reports whether content before index mark carries text that
// does not already end in whitespace.
func (w *walker) textBefore(parent node.ID, mark int) bool {
	kids := w.doc.Children(parent)

	for i := mark - 1; i >= 0; i-- {
		if !w.doc.HasText(kids[i]) {
			continue
		}

		s := w.doc.StringValue(kids[i])

		return !endsWithSpace(s)
	}

	return false
}

func (w *walker) marker(n raw.Node, parent node.ID) {
	name := rules.SanitizeName(strings.ToLower(firstLeaf(n, w.src)))
	el := w.doc.AppendElement(parent, node.Names.Lookup(name))
	w.doc.SetSpan(el, spanOf(n))
}

func (w *walker) emitError(n raw.Node, parent node.ID) {
	el := w.element(parent, rules.ElementError, n)
	w.doc.AppendText(el, w.text(n))
}

func (w *walker) element(parent node.ID, name string, n raw.Node) node.ID {
	el := w.doc.AppendElement(parent, name)
	w.doc.SetSpan(el, spanOf(n))

	return el
}

// text returns the verbatim source of n, interning short values.
func (w *walker) text(n raw.Node) string {
	s := raw.Text(n, w.src)
	if len(s) > maxInternLen {
		return s
	}

	if interned, ok := w.texts[s]; ok {
		return interned
	}

	w.texts[s] = s

	return s
}

// leafText concatenates the texts of the leaves under n, dropping the
// whitespace between them.
func (w *walker) leafText(n raw.Node) string {
	kids := n.Children()
	if len(kids) == 0 {
		return w.text(n)
	}

	var sb strings.Builder

	for _, c := range kids {
		sb.WriteString(w.leafText(c))
	}

	return sb.String()
}

func firstLeaf(n raw.Node, src []byte) string {
	for {
		kids := n.Children()
		if len(kids) == 0 {
			break
		}

		n = kids[0]
	}

	if s := strings.TrimSpace(raw.Text(n, src)); s != "" {
		return s
	}

	return n.Kind()
}

func spanOf(n raw.Node) *node.Positions {
	start, end := n.Start(), n.End()

	return node.NewPositions(
		start.Row+1,
		start.Column+1,
		start.Offset,
		end.Row+1,
		end.Column+1,
		end.Offset,
	)
}

func hasSpace(b []byte) bool {
	for _, c := range b {
		switch c {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			return true
		}
	}

	return false
}

func endsWithSpace(s string) bool {
	if s == "" {
		return false
	}

	return hasSpace([]byte{s[len(s)-1]})
}
