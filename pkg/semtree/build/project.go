package build

import (
	"strconv"
	"strings"

	"github.com/Sumatoshi-tech/semtree/pkg/semtree/node"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/raw"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/rules"
)

// key is a mapping key as written in the source.
type key struct {
	text string
	set  bool
}

func keyOf(text string) key { return key{text: text, set: true} }

type projector struct {
	doc   *node.Document
	src   []byte
	table *rules.DataTable
}

// Project writes the value-oriented view of a configuration document into
// parent: mapping keys become element names, scalars become element text,
// and sequences follow the array policy (a sequence under a key repeats
// the key element, any other sequence wraps its entries in item).
func Project(doc *node.Document, root raw.Node, source []byte, table *rules.DataTable, parent node.ID) {
	p := &projector{doc: doc, src: source, table: table}
	p.value(root, parent, key{}, false)
}

// value projects n into parent under k. inSeq marks values that are
// entries of a sequence.
func (p *projector) value(n raw.Node, parent node.ID, k key, inSeq bool) {
	kind := n.Kind()
	t := p.table

	switch {
	case t.Ignore.Has(kind), raw.Empty(n) && len(n.Children()) == 0:
		return
	case kind == raw.ErrorKind:
		el := p.doc.AppendElement(parent, rules.ElementError)
		p.doc.SetSpan(el, spanOf(n))
		p.doc.AppendText(el, raw.Text(n, p.src))
	case t.Transparent.Has(kind):
		for _, c := range p.named(n) {
			p.value(c, parent, k, inSeq)
		}
	case t.Mappings.Has(kind):
		target := parent
		if k.set {
			target = p.element(parent, k, n)
		}

		p.members(n, target)
	case t.Sequences.Has(kind):
		p.sequence(n, parent, k, inSeq)
	case t.Nulls.Has(kind):
		if k.set {
			p.element(parent, k, n)
		}
	default:
		if q, ok := t.Scalars[kind]; ok {
			p.scalar(n, parent, k, unquote(raw.Text(n, p.src), q))

			return
		}

		// Unknown kinds with structure are looked through; anything else
		// is kept as verbatim text.
		if kids := p.named(n); len(kids) > 0 {
			for _, c := range kids {
				p.value(c, parent, k, inSeq)
			}

			return
		}

		p.scalar(n, parent, k, strings.TrimSpace(raw.Text(n, p.src)))
	}
}

func (p *projector) scalar(n raw.Node, parent node.ID, k key, text string) {
	if !k.set {
		p.doc.AppendText(parent, text)

		return
	}

	el := p.element(parent, k, n)
	if text != "" {
		p.doc.AppendText(el, text)
	}
}

func (p *projector) sequence(n raw.Node, parent node.ID, k key, inSeq bool) {
	entries := p.named(n)

	if k.set && !inSeq {
		for _, e := range entries {
			p.value(e, parent, k, true)
		}

		return
	}

	container := parent
	if k.set {
		container = p.element(parent, k, n)
	}

	for _, e := range entries {
		p.value(e, container, keyOf(rules.ElementItem), true)
	}
}

// members projects the pairs and sections of a mapping into target.
func (p *projector) members(n raw.Node, target node.ID) {
	t := p.table

	for _, c := range p.named(n) {
		kind := c.Kind()

		switch {
		case t.Ignore.Has(kind):
		case t.Transparent.Has(kind):
			p.members(c, target)
		default:
			if rule, ok := t.Pairs[kind]; ok {
				p.pair(c, target, rule)

				continue
			}

			if sec, ok := t.Sections[kind]; ok {
				p.section(c, target, sec)

				continue
			}

			p.value(c, target, key{}, false)
		}
	}
}

func (p *projector) pair(n raw.Node, target node.ID, rule rules.Pair) {
	keyNode, valueNode := p.splitPair(n, rule)
	if keyNode == nil {
		return
	}

	path := p.keyPath(keyNode)
	if len(path) == 0 {
		return
	}

	for _, part := range path[:len(path)-1] {
		target = p.findOrCreate(target, part)
	}

	last := keyOf(path[len(path)-1])

	if valueNode == nil {
		p.element(target, last, n)

		return
	}

	p.value(valueNode, target, last, false)
}

func (p *projector) section(n raw.Node, target node.ID, sec rules.Section) {
	var header raw.Node

	kids := p.named(n)
	for i, c := range kids {
		if p.table.KeyKinds.Has(c.Kind()) || p.table.DottedKeys.Has(c.Kind()) {
			header = c
			kids = kids[i+1:]

			break
		}
	}

	if header == nil {
		return
	}

	path := p.keyPath(header)
	if len(path) == 0 {
		return
	}

	for _, part := range path[:len(path)-1] {
		target = p.findOrCreate(target, part)
	}

	last := keyOf(path[len(path)-1])

	var el node.ID
	if sec.Repeat {
		el = p.element(target, last, n)
	} else {
		el = p.findOrCreate(target, last.text)
		if p.doc.Span(el) == nil {
			p.doc.SetSpan(el, spanOf(n))
		}
	}

	for _, c := range kids {
		if rule, ok := p.table.Pairs[c.Kind()]; ok {
			p.pair(c, el, rule)
		}
	}
}

// splitPair finds the key and value of a pair.
func (p *projector) splitPair(n raw.Node, rule rules.Pair) (raw.Node, raw.Node) {
	kids := p.named(n)

	var k, v raw.Node

	if rule.KeyField != "" {
		for _, c := range n.Children() {
			switch c.Field() {
			case rule.KeyField:
				k = c
			case rule.ValueField:
				v = c
			}
		}

		return k, v
	}

	for i, c := range kids {
		if p.table.KeyKinds.Has(c.Kind()) || p.table.DottedKeys.Has(c.Kind()) {
			k = c

			if i+1 < len(kids) {
				v = kids[i+1]
			}

			break
		}
	}

	return k, v
}

// keyPath returns the key parts of a key node: one part for a plain key,
// several for a dotted key.
func (p *projector) keyPath(n raw.Node) []string {
	t := p.table

	if t.DottedKeys.Has(n.Kind()) {
		var parts []string

		for _, c := range p.named(n) {
			parts = append(parts, p.keyPath(c)...)
		}

		return parts
	}

	for t.Transparent.Has(n.Kind()) {
		kids := p.named(n)
		if len(kids) == 0 {
			break
		}

		n = kids[0]
	}

	text := raw.Text(n, p.src)
	if q, ok := t.Scalars[n.Kind()]; ok {
		text = unquote(text, q)
	} else {
		text = strings.TrimSpace(strings.Trim(strings.TrimSpace(text), "[]"))
	}

	return []string{text}
}

// element appends an element named after k, keeping the original key in
// the key attribute when it had to be sanitized.
func (p *projector) element(parent node.ID, k key, n raw.Node) node.ID {
	name := rules.SanitizeName(k.text)
	el := p.doc.AppendElement(parent, node.Names.Lookup(name))

	if name != k.text {
		p.doc.SetAttr(el, rules.AttrKey, k.text)
	}

	p.doc.SetSpan(el, spanOf(n))

	return el
}

func (p *projector) findOrCreate(parent node.ID, text string) node.ID {
	name := rules.SanitizeName(text)

	kids := p.doc.Children(parent)
	for i := len(kids) - 1; i >= 0; i-- {
		c := kids[i]
		if p.doc.IsText(c) || p.doc.Name(c) != name {
			continue
		}

		if orig, ok := p.doc.Attr(c, rules.AttrKey); ok && orig != text {
			continue
		}

		return c
	}

	el := p.doc.AppendElement(parent, node.Names.Lookup(name))
	if name != text {
		p.doc.SetAttr(el, rules.AttrKey, text)
	}

	return el
}

// named returns the named children of n that are not ignored.
func (p *projector) named(n raw.Node) []raw.Node {
	kids := n.Children()
	out := make([]raw.Node, 0, len(kids))

	for _, c := range kids {
		if c.IsNamed() && !p.table.Ignore.Has(c.Kind()) {
			out = append(out, c)
		}
	}

	return out
}

// unquote turns the source form of a scalar into its value.
func unquote(s string, q rules.Quote) string {
	switch q {
	case rules.QuoteDouble:
		return unquoteDouble(s)
	case rules.QuoteSingle:
		if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
			return strings.ReplaceAll(s[1:len(s)-1], "''", "'")
		}

		return s
	case rules.QuoteAuto:
		return unquoteAuto(s)
	case rules.QuoteBlock:
		return unblock(s)
	default:
		return strings.TrimSpace(s)
	}
}

func unquoteDouble(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}

	inner := s[1 : len(s)-1]
	if !strings.Contains(inner, `\`) {
		return inner
	}

	// JSON allows an escaped solidus Go does not know.
	if v, err := strconv.Unquote(`"` + strings.ReplaceAll(inner, `\/`, `/`) + `"`); err == nil {
		return v
	}

	return inner
}

func unquoteAuto(s string) string {
	switch {
	case strings.HasPrefix(s, `"""`) && strings.HasSuffix(s, `"""`) && len(s) >= 6:
		inner := trimFirstNewline(s[3 : len(s)-3])

		return unquoteDouble(`"` + strings.ReplaceAll(inner, "\n", `\n`) + `"`)
	case strings.HasPrefix(s, `'''`) && strings.HasSuffix(s, `'''`) && len(s) >= 6:
		return trimFirstNewline(s[3 : len(s)-3])
	case strings.HasPrefix(s, `"`):
		return unquoteDouble(s)
	case len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'':
		return s[1 : len(s)-1]
	default:
		return strings.TrimSpace(s)
	}
}

func trimFirstNewline(s string) string {
	if rest, ok := strings.CutPrefix(s, "\r\n"); ok {
		return rest
	}

	return strings.TrimPrefix(s, "\n")
}

// unblock returns the content of a block scalar: the indicator line is
// dropped, the common indentation removed, and folded (>) blocks joined
// with spaces.
func unblock(s string) string {
	header, body, ok := strings.Cut(s, "\n")
	if !ok {
		return ""
	}

	lines := strings.Split(strings.TrimRight(body, " \t\r\n"), "\n")
	indent := -1

	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}

		n := len(l) - len(strings.TrimLeft(l, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}

	for i, l := range lines {
		if len(l) >= indent && indent > 0 {
			lines[i] = l[indent:]
		} else {
			lines[i] = strings.TrimLeft(l, " \t")
		}
	}

	sep := "\n"
	if strings.HasPrefix(strings.TrimSpace(header), ">") {
		sep = " "
	}

	return strings.Join(lines, sep)
}
