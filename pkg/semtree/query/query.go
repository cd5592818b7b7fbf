package query

import (
	"errors"
	"fmt"
	"sync"

	"github.com/antchfx/xpath"

	"github.com/Sumatoshi-tech/semtree/pkg/semtree/node"
)

// ErrInvalidExpression wraps XPath compilation errors.
var ErrInvalidExpression = errors.New("invalid xpath expression")

// Match is one node selected by a query.
type Match struct {
	// ID is the matched node, or the element owning a matched attribute.
	ID   node.ID
	Name string
	// Attr is set when the match is an attribute.
	Attr  string
	Value string
	// Span is the resolved span of the matched node; nil when no node in
	// the tree carries one.
	Span *node.Positions
}

// Expr is a compiled, reusable query. It is safe for concurrent use:
// compiled xpath expressions keep evaluation state, so each evaluation
// borrows its own copy from a pool.
type Expr struct {
	source string
	pool   sync.Pool
}

func newExpr(source string, compiled *xpath.Expr) *Expr {
	e := &Expr{source: source}
	e.pool.New = func() any { return xpath.MustCompile(source) }
	e.pool.Put(compiled)

	return e
}

func (e *Expr) borrow() *xpath.Expr {
	if x, ok := e.pool.Get().(*xpath.Expr); ok {
		return x
	}

	return xpath.MustCompile(e.source)
}

// String returns the expression text.
func (e *Expr) String() string { return e.source }

var (
	cacheMu sync.RWMutex
	cache   = make(map[string]*Expr) //nolint:gochecknoglobals // process-wide compiled expression cache.
)

// Compile compiles expr, reusing an earlier compilation of the same text.
func Compile(expr string) (*Expr, error) {
	cacheMu.RLock()
	e, ok := cache[expr]
	cacheMu.RUnlock()

	if ok {
		return e, nil
	}

	compiled, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidExpression, expr, err)
	}

	e = newExpr(expr, compiled)

	cacheMu.Lock()
	cache[expr] = e
	cacheMu.Unlock()

	return e, nil
}

// MustCompile is Compile for expressions known to be valid.
func MustCompile(expr string) *Expr {
	e, err := Compile(expr)
	if err != nil {
		panic(err)
	}

	return e
}

// Select returns the nodes expr selects in the tree rooted at top, in
// document order. Expressions yielding a scalar select nothing.
func (e *Expr) Select(doc *node.Document, top node.ID) []Match {
	x := e.borrow()
	defer e.pool.Put(x)

	var out []Match

	iter := x.Select(NewNavigator(doc, top))
	for iter.MoveNext() {
		nav, ok := iter.Current().(*Navigator)
		if !ok {
			continue
		}

		out = append(out, matchAt(nav))
	}

	return out
}

// Evaluate returns the value of expr: float64, string or bool for scalar
// expressions, []Match for node sets.
func (e *Expr) Evaluate(doc *node.Document, top node.ID) any {
	x := e.borrow()
	defer e.pool.Put(x)

	switch v := x.Evaluate(NewNavigator(doc, top)).(type) {
	case *xpath.NodeIterator:
		var out []Match

		for v.MoveNext() {
			if nav, ok := v.Current().(*Navigator); ok {
				out = append(out, matchAt(nav))
			}
		}

		return out
	default:
		return v
	}
}

// Count returns the number of matches of a node-set expression, or the
// numeric value of a count() expression.
func (e *Expr) Count(doc *node.Document, top node.ID) int {
	switch v := e.Evaluate(doc, top).(type) {
	case []Match:
		return len(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// Select compiles and runs expr in one call.
func Select(doc *node.Document, top node.ID, expr string) ([]Match, error) {
	e, err := Compile(expr)
	if err != nil {
		return nil, err
	}

	return e.Select(doc, top), nil
}

// Evaluate compiles and evaluates expr in one call.
func Evaluate(doc *node.Document, top node.ID, expr string) (any, error) {
	e, err := Compile(expr)
	if err != nil {
		return nil, err
	}

	return e.Evaluate(doc, top), nil
}

func matchAt(nav *Navigator) Match {
	m := Match{ID: nav.Current()}

	if m.ID == node.None {
		m.Value = nav.Value()

		return m
	}

	m.Span = nav.doc.ResolveSpan(m.ID)

	if a, ok := nav.Attribute(); ok {
		m.Name = nav.doc.Name(m.ID)
		m.Attr = a.Name
		m.Value = a.Value

		return m
	}

	if !nav.doc.IsText(m.ID) {
		m.Name = nav.doc.Name(m.ID)
	}

	m.Value = nav.Value()

	return m
}
