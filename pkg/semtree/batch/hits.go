package batch

import "github.com/Sumatoshi-tech/semtree/pkg/semtree/query"

// Hit is a query match flattened for output.
type Hit struct {
	Path  string `json:"path"`
	Name  string `json:"name"`
	Attr  string `json:"attr,omitempty"`
	Value string `json:"value"`
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// Summary is the outcome of a query run in output form.
type Summary struct {
	Files  int            `json:"files"`
	Hits   []Hit          `json:"hits"`
	Values map[string]any `json:"values,omitempty"`
	Errors []string       `json:"errors,omitempty"`
}

// Summary flattens the report for rendering.
func (r *Report) Summary() *Summary {
	s := &Summary{Files: r.Files, Hits: r.Hits()}

	if values := r.Values(); len(values) > 0 {
		s.Values = values
	}

	for _, fe := range r.Errors {
		s.Errors = append(s.Errors, fe.Error())
	}

	return s
}

// Hits returns every match of the report in input order.
func (r *Report) Hits() []Hit {
	hits := make([]Hit, 0, r.Matches)

	for i := range r.Results {
		res := &r.Results[i]
		for _, m := range res.Matches {
			hits = append(hits, NewHit(res.Path, m))
		}
	}

	return hits
}

// Values returns the scalar results of a query keyed by path. Files whose
// result is a node set are omitted.
func (r *Report) Values() map[string]any {
	values := make(map[string]any)

	for i := range r.Results {
		res := &r.Results[i]
		if res.Err == nil && res.Value != nil {
			values[res.Path] = res.Value
		}
	}

	return values
}

// NewHit flattens m, found in the file at path.
func NewHit(path string, m query.Match) Hit {
	h := Hit{Path: path, Name: m.Name, Attr: m.Attr, Value: m.Value}
	if m.Span != nil {
		h.Start = m.Span.Start()
		h.End = m.Span.End()
	}

	return h
}
