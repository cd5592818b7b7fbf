package node

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Span attribute names exposed by serializers and the query layer.
const (
	AttrStart = "start"
	AttrEnd   = "end"
)

// XMLOptions controls XML rendering.
type XMLOptions struct {
	// Indent pretty-prints element-only content. Mixed content is always
	// written inline so indentation never lands next to real text.
	Indent string
	// Spans adds start/end attributes to spanned elements.
	Spans bool
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\"", "&quot;", "\n", "&#xA;", "\t", "&#x9;")
)

// WriteXML renders the subtree at id.
func (d *Document) WriteXML(w io.Writer, id ID, opts XMLOptions) error {
	bw := bufio.NewWriter(w)

	d.writeXML(bw, id, opts, 0)

	if opts.Indent != "" {
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

// XMLString renders the subtree at id as a string.
func (d *Document) XMLString(id ID, opts XMLOptions) string {
	var sb strings.Builder

	_ = d.WriteXML(&sb, id, opts) //nolint:errcheck // strings.Builder never fails.

	return sb.String()
}

func (d *Document) writeXML(w *bufio.Writer, id ID, opts XMLOptions, depth int) {
	rec := &d.nodes[id]

	if rec.kind == KindText {
		textEscaper.WriteString(w, rec.text) //nolint:errcheck // surfaced by Flush.

		return
	}

	w.WriteByte('<')
	w.WriteString(rec.name)

	for _, a := range rec.attrs {
		writeAttr(w, a.Name, a.Value)
	}

	if opts.Spans && rec.span != nil {
		writeAttr(w, AttrStart, rec.span.Start())
		writeAttr(w, AttrEnd, rec.span.End())
	}

	if len(rec.children) == 0 {
		w.WriteString("/>")

		return
	}

	w.WriteByte('>')

	pretty := opts.Indent != "" && !d.hasTextChild(id)

	for _, c := range rec.children {
		if pretty {
			w.WriteByte('\n')
			w.WriteString(strings.Repeat(opts.Indent, depth+1))
		}

		d.writeXML(w, c, opts, depth+1)
	}

	if pretty {
		w.WriteByte('\n')
		w.WriteString(strings.Repeat(opts.Indent, depth))
	}

	w.WriteString("</")
	w.WriteString(rec.name)
	w.WriteByte('>')
}

func writeAttr(w *bufio.Writer, name, value string) {
	w.WriteByte(' ')
	w.WriteString(name)
	w.WriteString(`="`)
	attrEscaper.WriteString(w, value) //nolint:errcheck // surfaced by Flush.
	w.WriteByte('"')
}

func (d *Document) hasTextChild(id ID) bool {
	for _, c := range d.nodes[id].children {
		if d.nodes[c].kind == KindText {
			return true
		}
	}

	return false
}

// ErrEmptyXML is returned by ReadXML when the input holds no element.
var ErrEmptyXML = errors.New("xml input has no root element")

// ReadXML parses XML written by WriteXML back into a new document. When
// spans were written, start/end attributes are turned back into spans
// (offsets are not serialized and stay zero). Indentation produced by a
// pretty-printed WriteXML is dropped: whitespace-only text that starts with
// a newline inside element-only content is not kept.
func ReadXML(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	doc := NewDocument()

	var stack []ID

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := doc.NewElement(t.Name.Local)
			readAttrs(doc, el, t.Attr)

			if len(stack) == 0 {
				doc.SetRoot(el)
			} else {
				doc.Append(stack[len(stack)-1], el)
			}

			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) > 0 {
				doc.dropIndent(stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				doc.AppendText(stack[len(stack)-1], string(t))
			}
		}
	}

	if doc.root == None {
		return nil, ErrEmptyXML
	}

	return doc, nil
}

func readAttrs(doc *Document, el ID, attrs []xml.Attr) {
	var start, end string

	for _, a := range attrs {
		switch a.Name.Local {
		case AttrStart:
			start = a.Value
		case AttrEnd:
			end = a.Value
		default:
			doc.SetAttr(el, a.Name.Local, a.Value)
		}
	}

	if start == "" || end == "" {
		return
	}

	sl, sc, err1 := ParsePoint(start)
	el2, ec, err2 := ParsePoint(end)

	if err1 == nil && err2 == nil {
		doc.SetSpan(el, NewPositions(sl, sc, 0, el2, ec, 0))
	}
}

// dropIndent removes indentation text from element-only content.
func (d *Document) dropIndent(id ID) {
	kids := d.nodes[id].children
	if !d.HasElementChildren(id) {
		return
	}

	for _, c := range kids {
		if d.nodes[c].kind == KindText && !isIndent(d.nodes[c].text) {
			return
		}
	}

	kept := kids[:0]

	for _, c := range kids {
		if d.nodes[c].kind == KindText {
			d.nodes[c].parent = None

			continue
		}

		kept = append(kept, c)
	}

	d.nodes[id].children = kept
}

func isIndent(s string) bool {
	return strings.HasPrefix(s, "\n") && strings.TrimSpace(s) == ""
}
