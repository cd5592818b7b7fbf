package query_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/semtree/pkg/semtree"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/node"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/query"
)

func parse(t *testing.T, filename, src string) *semtree.File {
	t.Helper()

	p, err := semtree.NewParser()
	require.NoError(t, err)

	f, err := p.Parse(context.Background(), filename, []byte(src))
	require.NoError(t, err)

	return f
}

func values(matches []query.Match) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Value)
	}

	return out
}

func TestMethodScenario(t *testing.T) {
	t.Parallel()

	f := parse(t, "Calc.cs", "class Calc\n{\n    public static int Add(int a, int b)\n    {\n        return a + b;\n    }\n}\n")

	tests := []struct {
		expr string
		want []string
	}{
		{"//method[public][static]/name", []string{"Add"}},
		{"//method[type='int']/name", []string{"Add"}},
		{"//method/parameters/parameter/name", []string{"a", "b"}},
		{"//binary[@op='+']", []string{"a b"}},
		{"//method/name/@start", []string{"3:23"}},
	}

	for _, tt := range tests {
		matches, err := query.Select(f.Doc, f.Root, tt.expr)
		require.NoError(t, err, tt.expr)
		assert.Equal(t, tt.want, values(matches), tt.expr)
	}

	count, err := query.Evaluate(f.Doc, f.Root, "count(//method/parameters/parameter[type='int'])")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, count, 0)
}

func TestDataArrayScenario(t *testing.T) {
	t.Parallel()

	f := parse(t, "a.json", `{"a": [1, 2]}`)

	count, err := query.Evaluate(f.Doc, f.Root, "count(//data/a)")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, count, 0)

	matches, err := query.Select(f.Doc, f.Root, "//data/a")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, values(matches))

	ast, err := query.Select(f.Doc, f.Root, "//ast//number")
	require.NoError(t, err)
	require.Len(t, ast, 2)
	assert.Equal(t, ast[1].Span.Start(), matches[1].Span.Start())
}

func TestWhitespaceIndependence(t *testing.T) {
	t.Parallel()

	f := parse(t, "Calc.cs", "class Calc { int Add(int a,int b){return a+b;} }")

	var compact, pretty bytes.Buffer
	require.NoError(t, f.WriteXML(&compact, node.XMLOptions{Spans: true}))
	require.NoError(t, f.WriteXML(&pretty, node.XMLOptions{Indent: "  ", Spans: true}))

	a, err := node.ReadXML(&compact)
	require.NoError(t, err)

	b, err := node.ReadXML(&pretty)
	require.NoError(t, err)

	assert.Equal(t, f.Doc.StringValue(f.Root), a.StringValue(a.Root()))
	assert.Equal(t, a.StringValue(a.Root()), b.StringValue(b.Root()))

	for _, expr := range []string{"//method", "//name", "//binary", "//*[@start='1:18']"} {
		fromCompact, err := query.Select(a, a.Root(), expr)
		require.NoError(t, err)

		fromPretty, err := query.Select(b, b.Root(), expr)
		require.NoError(t, err)

		assert.Equal(t, values(fromCompact), values(fromPretty), expr)
		assert.NotEmpty(t, fromCompact, expr)
	}
}
