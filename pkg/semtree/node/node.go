// Package node provides the semantic tree: an arena of elements and text
// leaves addressed by index, with ordered attributes, source spans, and the
// traversal, cloning and rendering operations the construction engine and
// the query layer share.
package node

import (
	"errors"
	"strconv"
	"strings"
)

// ID addresses a node inside a Document arena.
type ID int32

// None is the zero address: no node.
const None ID = -1

// Kind distinguishes elements from text leaves.
type Kind uint8

// Node kinds.
const (
	KindElement Kind = iota
	KindText
)

// Attr is one attribute of an element.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Positions is a source span. Lines and columns are 1-based; offsets are
// byte offsets into the source.
type Positions struct {
	StartLine   uint `json:"start_line,omitempty"`
	StartCol    uint `json:"start_col,omitempty"`
	StartOffset uint `json:"start_offset,omitempty"`
	EndLine     uint `json:"end_line,omitempty"`
	EndCol      uint `json:"end_col,omitempty"`
	EndOffset   uint `json:"end_offset,omitempty"`
}

// NewPositions creates a Positions value.
func NewPositions(startLine, startCol, startOffset, endLine, endCol, endOffset uint) *Positions {
	return &Positions{
		StartLine:   startLine,
		StartCol:    startCol,
		StartOffset: startOffset,
		EndLine:     endLine,
		EndCol:      endCol,
		EndOffset:   endOffset,
	}
}

// Start renders the start position as "line:col".
func (p *Positions) Start() string {
	return formatPoint(p.StartLine, p.StartCol)
}

// End renders the end position as "line:col".
func (p *Positions) End() string {
	return formatPoint(p.EndLine, p.EndCol)
}

func formatPoint(line, col uint) string {
	var sb strings.Builder

	sb.Grow(8) //nolint:mnd // typical "ddd:dd" width.
	sb.WriteString(strconv.FormatUint(uint64(line), 10))
	sb.WriteByte(':')
	sb.WriteString(strconv.FormatUint(uint64(col), 10))

	return sb.String()
}

// ErrBadPoint is returned by ParsePoint for malformed "line:col" values.
var ErrBadPoint = errors.New("malformed line:col position")

// ParsePoint parses a "line:col" position.
func ParsePoint(s string) (line, col uint, err error) {
	l, c, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, ErrBadPoint
	}

	ln, err := strconv.ParseUint(l, 10, 32)
	if err != nil {
		return 0, 0, ErrBadPoint
	}

	cl, err := strconv.ParseUint(c, 10, 32)
	if err != nil {
		return 0, 0, ErrBadPoint
	}

	return uint(ln), uint(cl), nil
}

// record is the arena slot of one node.
type record struct {
	kind     Kind
	name     string
	text     string
	attrs    []Attr
	children []ID
	parent   ID
	span     *Positions
}

// Document is an arena holding one or more semantic trees. A Document is
// owned by a single goroutine while it is being built and is read-only once
// handed to the query layer.
type Document struct {
	nodes []record
	root  ID
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		nodes: make([]record, 0, 256), //nolint:mnd // small files fit without regrowth.
		root:  None,
	}
}

// Len returns the number of allocated nodes, reachable or not.
func (d *Document) Len() int {
	return len(d.nodes)
}

// Root returns the document element, or None.
func (d *Document) Root() ID {
	return d.root
}

// SetRoot makes id the document element.
func (d *Document) SetRoot(id ID) {
	d.root = id
}

// NewElement allocates a detached element.
func (d *Document) NewElement(name string) ID {
	d.nodes = append(d.nodes, record{kind: KindElement, name: name, parent: None})

	return ID(len(d.nodes) - 1)
}

// NewText allocates a detached text leaf.
func (d *Document) NewText(text string) ID {
	d.nodes = append(d.nodes, record{kind: KindText, text: text, parent: None})

	return ID(len(d.nodes) - 1)
}

// Valid reports whether id addresses a node of this document.
func (d *Document) Valid(id ID) bool {
	return id >= 0 && int(id) < len(d.nodes)
}

// Append adds child as the last child of parent.
func (d *Document) Append(parent, child ID) {
	d.nodes[child].parent = parent
	d.nodes[parent].children = append(d.nodes[parent].children, child)
}

// AppendText adds a text leaf to parent and returns it.
func (d *Document) AppendText(parent ID, text string) ID {
	id := d.NewText(text)
	d.Append(parent, id)

	return id
}

// AppendElement adds a new element to parent and returns it.
func (d *Document) AppendElement(parent ID, name string) ID {
	id := d.NewElement(name)
	d.Append(parent, id)

	return id
}

// InsertAt inserts child at position index of parent's children.
func (d *Document) InsertAt(parent ID, index int, child ID) {
	kids := d.nodes[parent].children
	if index >= len(kids) {
		d.Append(parent, child)

		return
	}

	kids = append(kids, None)
	copy(kids[index+1:], kids[index:])
	kids[index] = child

	d.nodes[parent].children = kids
	d.nodes[child].parent = parent
}

// Detach removes id from its parent's children.
func (d *Document) Detach(id ID) {
	parent := d.nodes[id].parent
	if parent == None {
		return
	}

	kids := d.nodes[parent].children
	for i, c := range kids {
		if c == id {
			d.nodes[parent].children = append(kids[:i], kids[i+1:]...)

			break
		}
	}

	d.nodes[id].parent = None
}

// Kind returns the node kind.
func (d *Document) Kind(id ID) Kind {
	return d.nodes[id].kind
}

// IsText reports whether id is a text leaf.
func (d *Document) IsText(id ID) bool {
	return d.nodes[id].kind == KindText
}

// Name returns the element name; empty for text leaves.
func (d *Document) Name(id ID) string {
	return d.nodes[id].name
}

// Rename changes an element name.
func (d *Document) Rename(id ID, name string) {
	d.nodes[id].name = name
}

// Text returns the text of a leaf; empty for elements.
func (d *Document) Text(id ID) string {
	return d.nodes[id].text
}

// Parent returns the parent of id, or None.
func (d *Document) Parent(id ID) ID {
	return d.nodes[id].parent
}

// Children returns the ordered children of id. The slice must not be
// modified by the caller.
func (d *Document) Children(id ID) []ID {
	return d.nodes[id].children
}

// ChildCount returns the number of children of id.
func (d *Document) ChildCount(id ID) int {
	return len(d.nodes[id].children)
}

// ElementChildren returns the element children of id.
func (d *Document) ElementChildren(id ID) []ID {
	var out []ID

	for _, c := range d.nodes[id].children {
		if d.nodes[c].kind == KindElement {
			out = append(out, c)
		}
	}

	return out
}

// HasElementChildren reports whether id has at least one element child.
func (d *Document) HasElementChildren(id ID) bool {
	for _, c := range d.nodes[id].children {
		if d.nodes[c].kind == KindElement {
			return true
		}
	}

	return false
}

// ReplaceChildren drops all children of id and appends text as its only
// content.
func (d *Document) ReplaceChildren(id ID, text string) {
	for _, c := range d.nodes[id].children {
		d.nodes[c].parent = None
	}

	d.nodes[id].children = d.nodes[id].children[:0]

	if text != "" {
		d.AppendText(id, text)
	}
}

// SetAttr sets an attribute. An existing attribute keeps its position.
func (d *Document) SetAttr(id ID, name, value string) {
	rec := &d.nodes[id]

	for i := range rec.attrs {
		if rec.attrs[i].Name == name {
			rec.attrs[i].Value = value

			return
		}
	}

	rec.attrs = append(rec.attrs, Attr{Name: name, Value: value})
}

// AppendAttr appends value to an attribute, space separated, creating it
// when absent.
func (d *Document) AppendAttr(id ID, name, value string) {
	rec := &d.nodes[id]

	for i := range rec.attrs {
		if rec.attrs[i].Name == name {
			if rec.attrs[i].Value == "" {
				rec.attrs[i].Value = value
			} else {
				rec.attrs[i].Value += " " + value
			}

			return
		}
	}

	rec.attrs = append(rec.attrs, Attr{Name: name, Value: value})
}

// Attr returns an attribute value.
func (d *Document) Attr(id ID, name string) (string, bool) {
	for _, a := range d.nodes[id].attrs {
		if a.Name == name {
			return a.Value, true
		}
	}

	return "", false
}

// Attrs returns the ordered attributes of id. The slice must not be
// modified by the caller.
func (d *Document) Attrs(id ID) []Attr {
	return d.nodes[id].attrs
}

// SetSpan records the source span of id.
func (d *Document) SetSpan(id ID, span *Positions) {
	d.nodes[id].span = span
}

// Span returns the own span of id, or nil.
func (d *Document) Span(id ID) *Positions {
	return d.nodes[id].span
}

// ResolveSpan returns the span of id, falling back to the first spanned
// descendant in document order and then to the nearest spanned ancestor.
func (d *Document) ResolveSpan(id ID) *Positions {
	if span := d.nodes[id].span; span != nil {
		return span
	}

	var found *Positions

	d.Walk(id, func(n ID) bool {
		if found != nil {
			return false
		}

		if span := d.nodes[n].span; span != nil {
			found = span

			return false
		}

		return true
	})

	if found != nil {
		return found
	}

	for p := d.nodes[id].parent; p != None; p = d.nodes[p].parent {
		if span := d.nodes[p].span; span != nil {
			return span
		}
	}

	return nil
}

// StringValue returns the concatenated text of all text leaves under id.
func (d *Document) StringValue(id ID) string {
	if d.nodes[id].kind == KindText {
		return d.nodes[id].text
	}

	var sb strings.Builder

	d.writeText(&sb, id)

	return sb.String()
}

func (d *Document) writeText(sb *strings.Builder, id ID) {
	for _, c := range d.nodes[id].children {
		if d.nodes[c].kind == KindText {
			sb.WriteString(d.nodes[c].text)

			continue
		}

		d.writeText(sb, c)
	}
}

// HasText reports whether any text leaf under id is non-empty.
func (d *Document) HasText(id ID) bool {
	if d.nodes[id].kind == KindText {
		return d.nodes[id].text != ""
	}

	for _, c := range d.nodes[id].children {
		if d.HasText(c) {
			return true
		}
	}

	return false
}

// Walk visits id and its descendants in document order. Returning false
// from fn skips the children of the visited node.
func (d *Document) Walk(id ID, fn func(ID) bool) {
	stack := []ID{id}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !fn(cur) {
			continue
		}

		kids := d.nodes[cur].children
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
}

// Find returns all nodes under id (inclusive) matching predicate, in
// document order.
func (d *Document) Find(id ID, predicate func(ID) bool) []ID {
	var out []ID

	d.Walk(id, func(n ID) bool {
		if predicate(n) {
			out = append(out, n)
		}

		return true
	})

	return out
}

// FindElements returns all elements named name under id (inclusive).
func (d *Document) FindElements(id ID, name string) []ID {
	return d.Find(id, func(n ID) bool {
		return d.nodes[n].kind == KindElement && d.nodes[n].name == name
	})
}

// ChildElement returns the first element child of id named name, or None.
func (d *Document) ChildElement(id ID, name string) ID {
	for _, c := range d.nodes[id].children {
		if d.nodes[c].kind == KindElement && d.nodes[c].name == name {
			return c
		}
	}

	return None
}

// Clone deep-copies the subtree at id inside the same arena. The copy is
// detached and shares no node with the original; spans are carried over
// unchanged.
func (d *Document) Clone(id ID) ID {
	src := d.nodes[id]

	var dup ID
	if src.kind == KindText {
		dup = d.NewText(src.text)
	} else {
		dup = d.NewElement(src.name)
	}

	if len(src.attrs) > 0 {
		d.nodes[dup].attrs = append([]Attr(nil), src.attrs...)
	}

	if src.span != nil {
		span := *src.span
		d.nodes[dup].span = &span
	}

	for _, c := range src.children {
		d.Append(dup, d.Clone(c))
	}

	return dup
}

// Compact rebuilds the arena with only the nodes reachable from the root,
// in document order, and drops everything else (detached scratch trees,
// nodes left behind by Detach). IDs obtained before the call are invalid
// afterwards; the new root is returned and also available from Root.
func (d *Document) Compact() ID {
	if d.root == None {
		d.nodes = d.nodes[:0]

		return None
	}

	nodes := make([]record, 0, d.reachable(d.root))
	d.root = compactInto(d, &nodes, d.root, None)
	d.nodes = nodes

	return d.root
}

func (d *Document) reachable(id ID) int {
	n := 1
	for _, c := range d.nodes[id].children {
		n += d.reachable(c)
	}

	return n
}

func compactInto(d *Document, nodes *[]record, id, parent ID) ID {
	rec := d.nodes[id]
	kids := rec.children

	next := ID(len(*nodes))
	rec.parent = parent
	rec.children = nil
	*nodes = append(*nodes, rec)

	if len(kids) > 0 {
		children := make([]ID, 0, len(kids))
		for _, c := range kids {
			children = append(children, compactInto(d, nodes, c, next))
		}

		(*nodes)[next].children = children
	}

	return next
}
