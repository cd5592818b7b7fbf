package semtree

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/semtree/pkg/semtree/node"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/rules"
)

func newParser(t *testing.T, opts ...Option) *Parser {
	t.Helper()

	p, err := NewParser(opts...)
	require.NoError(t, err)

	return p
}

func TestIsSupported(t *testing.T) {
	t.Parallel()

	p := newParser(t)

	tests := []struct {
		name string
		want bool
	}{
		{"Program.cs", true},
		{"main.GO", true},
		{"config.yml", true},
		{"README", false},
		{"image.png", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, p.IsSupported(tt.name), tt.name)
	}
}

func TestLanguageDetection(t *testing.T) {
	t.Parallel()

	p := newParser(t, WithExtensions(map[string]string{".tpl": "yaml"}))

	assert.Equal(t, "csharp", p.Language("a.cs", nil))
	assert.Equal(t, "yaml", p.Language("values.tpl", nil))
	assert.Equal(t, "bash", p.Language("run", []byte("#!/bin/bash\necho hi\n")))
	assert.Empty(t, p.Language("notes", nil))
}

func TestParseUnsupported(t *testing.T) {
	t.Parallel()

	p := newParser(t)

	_, err := p.Parse(context.Background(), "image.png", nil)
	require.ErrorIs(t, err, ErrUnsupported)

	_, err = p.ParseAs(context.Background(), "cobol", "a.cbl", nil)
	require.ErrorIs(t, err, ErrUnknownLanguage)
}

func TestParseCSharpMethod(t *testing.T) {
	t.Parallel()

	p := newParser(t)
	src := "public class Calc { public static int Add(int a, int b) { return a + b; } }\n"

	f, err := p.Parse(context.Background(), "Calc.cs", []byte(src))
	require.NoError(t, err)
	assert.False(t, f.Partial)
	assert.Equal(t, "csharp", f.Language)
	assert.Empty(t, f.Format)

	doc := f.Doc
	assert.Equal(t, rules.ElementFile, doc.Name(f.Root))

	path, _ := doc.Attr(f.Root, rules.AttrPath)
	assert.Equal(t, "Calc.cs", path)

	methods := doc.FindElements(f.Root, "method")
	require.Len(t, methods, 1)

	method := methods[0]
	assert.Equal(t, "Add", doc.StringValue(doc.ChildElement(method, "name")))
	assert.NotEqual(t, node.None, doc.ChildElement(method, "public"))
	assert.NotEqual(t, node.None, doc.ChildElement(method, "static"))
	assert.Equal(t, "int", doc.StringValue(doc.ChildElement(method, "type")))

	params := doc.FindElements(method, "parameter")
	require.Len(t, params, 2)
	assert.Equal(t, "b", doc.StringValue(doc.ChildElement(params[1], "name")))

	span := doc.ResolveSpan(method)
	require.NotNil(t, span)
	assert.Equal(t, "1:21", span.Start())
}

func TestParseJSONDual(t *testing.T) {
	t.Parallel()

	p := newParser(t)

	f, err := p.Parse(context.Background(), "a.json", []byte(`{"a": [1, 2]}`))
	require.NoError(t, err)
	assert.Equal(t, "json", f.Format)

	format, _ := f.Doc.Attr(f.Root, rules.AttrFormat)
	assert.Equal(t, "json", format)

	data := f.Doc.ChildElement(f.Root, rules.ElementData)
	require.NotEqual(t, node.None, data)
	assert.Equal(t, "<data><a>1</a><a>2</a></data>", f.Doc.XMLString(data, node.XMLOptions{}))

	ast := f.Doc.ChildElement(f.Root, rules.ElementAST)
	numbers := f.Doc.FindElements(ast, "number")
	require.Len(t, numbers, 2)

	second := f.Doc.FindElements(data, "a")[1]
	assert.Equal(t, f.Doc.ResolveSpan(numbers[1]).Start(), f.Doc.ResolveSpan(second).Start())
}

func TestParsePartial(t *testing.T) {
	t.Parallel()

	p := newParser(t)

	f, err := p.Parse(context.Background(), "broken.cs", []byte("class A { void f( }"))
	require.NoError(t, err)
	assert.True(t, f.Partial)
}

func TestWithTables(t *testing.T) {
	t.Parallel()

	custom := &rules.Table{
		Language:    "gomod",
		Grammar:     "go",
		Extensions:  []string{".gox"},
		Rename:      map[string]string{"source_file": "unit", "function_declaration": "function"},
		Identifiers: rules.NewSet("identifier"),
	}

	p := newParser(t, WithTables(custom))

	f, err := p.Parse(context.Background(), "main.gox", []byte("package main\nfunc f() {}\n"))
	require.NoError(t, err)
	assert.Equal(t, "gomod", f.Language)
	assert.Len(t, f.Doc.FindElements(f.Root, "function"), 1)

	_, err = NewParser(WithTables(&rules.Table{Language: "bad", Skip: rules.NewSet("x"), Flatten: rules.NewSet("x")}))
	require.Error(t, err)
}

func TestRaw(t *testing.T) {
	t.Parallel()

	p := newParser(t)

	dump, err := p.Raw(context.Background(), "", "a.json", []byte(`[1]`), true)
	require.NoError(t, err)
	assert.Equal(t, "document", dump.Kind)

	dump, err = p.Raw(context.Background(), "json", "stdin", []byte(`{}`), false)
	require.NoError(t, err)
	assert.Equal(t, "document", dump.Kind)

	_, err = p.Raw(context.Background(), "", "README", []byte("x"), false)
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestCheckGrammars(t *testing.T) {
	t.Parallel()

	p := newParser(t)
	require.NoError(t, p.Loader().CheckGrammars(context.Background()))

	broken := &rules.Table{Language: "broken", Grammar: "no-such-grammar", Extensions: []string{".broken"}}
	p = newParser(t, WithTables(broken))

	err := p.Loader().CheckGrammars(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}
