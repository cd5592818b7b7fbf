package node

import (
	"slices"
	"strconv"
)

// ChangeType classifies a structural difference.
type ChangeType string

// Change types.
const (
	ChangeAdded    ChangeType = "added"
	ChangeRemoved  ChangeType = "removed"
	ChangeModified ChangeType = "modified"
)

// Change is one difference between two semantic trees. Path addresses the
// node in the before tree (or the after tree for additions) as
// /name[i]/name[j], with 1-based positions among same-named siblings and
// text() steps for leaves.
type Change struct {
	Type   ChangeType `json:"type"`
	Path   string     `json:"path"`
	Before string     `json:"before,omitempty"`
	After  string     `json:"after,omitempty"`
}

// DiffOptions controls Diff.
type DiffOptions struct {
	// IgnoreSpans compares structure and text only.
	IgnoreSpans bool
	// IgnoreAttrs names attributes left out of the comparison, such as the
	// path of the file root.
	IgnoreAttrs []string
}

// Diff compares the subtree a of before with the subtree b of after.
// Children are matched positionally.
func Diff(before *Document, a ID, after *Document, b ID, opts DiffOptions) []Change {
	var changes []Change

	diffNodes(before, a, after, b, "/"+stepName(before, a, 1), opts, &changes)

	return changes
}

// Equal reports whether two subtrees have identical names, attributes,
// text and spans.
func Equal(before *Document, a ID, after *Document, b ID) bool {
	return len(Diff(before, a, after, b, DiffOptions{})) == 0
}

func diffNodes(before *Document, a ID, after *Document, b ID, path string, opts DiffOptions, out *[]Change) {
	ra, rb := &before.nodes[a], &after.nodes[b]

	if ra.kind != rb.kind || ra.name != rb.name {
		*out = append(*out, Change{Type: ChangeModified, Path: path, Before: describe(before, a), After: describe(after, b)})

		return
	}

	if ra.kind == KindText {
		if ra.text != rb.text {
			*out = append(*out, Change{Type: ChangeModified, Path: path, Before: ra.text, After: rb.text})
		}

		return
	}

	if aa, ab := opts.attrs(ra.attrs), opts.attrs(rb.attrs); !slices.Equal(aa, ab) {
		*out = append(*out, Change{Type: ChangeModified, Path: path + "/@", Before: attrString(aa), After: attrString(ab)})
	}

	if !opts.IgnoreSpans && !sameSpan(ra.span, rb.span) {
		*out = append(*out, Change{Type: ChangeModified, Path: path + "/@span", Before: spanString(ra.span), After: spanString(rb.span)})
	}

	diffChildren(before, a, after, b, path, opts, out)
}

func (o DiffOptions) attrs(attrs []Attr) []Attr {
	if len(o.IgnoreAttrs) == 0 {
		return attrs
	}

	return slices.DeleteFunc(slices.Clone(attrs), func(a Attr) bool {
		return slices.Contains(o.IgnoreAttrs, a.Name)
	})
}

func diffChildren(before *Document, a ID, after *Document, b ID, path string, opts DiffOptions, out *[]Change) {
	ka, kb := before.nodes[a].children, after.nodes[b].children
	seenA, seenB := map[string]int{}, map[string]int{}

	for i := range max(len(ka), len(kb)) {
		switch {
		case i >= len(ka):
			step := nextStep(after, kb[i], seenB)
			*out = append(*out, Change{Type: ChangeAdded, Path: path + "/" + step, After: describe(after, kb[i])})
		case i >= len(kb):
			step := nextStep(before, ka[i], seenA)
			*out = append(*out, Change{Type: ChangeRemoved, Path: path + "/" + step, Before: describe(before, ka[i])})
		default:
			step := nextStep(before, ka[i], seenA)
			nextStep(after, kb[i], seenB)
			diffNodes(before, ka[i], after, kb[i], path+"/"+step, opts, out)
		}
	}
}

func nextStep(d *Document, id ID, seen map[string]int) string {
	key := d.nodes[id].name
	if d.nodes[id].kind == KindText {
		key = "text()"
	}

	seen[key]++

	return stepName(d, id, seen[key])
}

func stepName(d *Document, id ID, pos int) string {
	name := d.nodes[id].name
	if d.nodes[id].kind == KindText {
		name = "text()"
	}

	return name + "[" + strconv.Itoa(pos) + "]"
}

func describe(d *Document, id ID) string {
	if d.nodes[id].kind == KindText {
		return d.nodes[id].text
	}

	return "<" + d.nodes[id].name + ">"
}

func attrString(attrs []Attr) string {
	s := ""

	for i, a := range attrs {
		if i > 0 {
			s += " "
		}

		s += a.Name + "=" + strconv.Quote(a.Value)
	}

	return s
}

func sameSpan(a, b *Positions) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}

func spanString(p *Positions) string {
	if p == nil {
		return ""
	}

	return p.Start() + "-" + p.End()
}
