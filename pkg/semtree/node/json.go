package node

import (
	"encoding/json"
	"io"
)

// ToMap converts the subtree at id into a JSON-ready map. Elements become
// {"name", "attrs", "start", "end", "children"} with attrs kept in order;
// text leaves become plain strings inside "children".
func (d *Document) ToMap(id ID, withSpans bool) map[string]any {
	rec := &d.nodes[id]

	result := map[string]any{"name": rec.name}

	if len(rec.attrs) > 0 {
		result["attrs"] = append([]Attr(nil), rec.attrs...)
	}

	if withSpans && rec.span != nil {
		result[AttrStart] = rec.span.Start()
		result[AttrEnd] = rec.span.End()
	}

	if len(rec.children) > 0 {
		children := make([]any, 0, len(rec.children))

		for _, c := range rec.children {
			if d.nodes[c].kind == KindText {
				children = append(children, d.nodes[c].text)

				continue
			}

			children = append(children, d.ToMap(c, withSpans))
		}

		result["children"] = children
	}

	return result
}

// WriteJSON renders the subtree at id as indented JSON.
func (d *Document) WriteJSON(w io.Writer, id ID, withSpans bool) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(d.ToMap(id, withSpans))
}
