package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainPushDoesNotAlias(t *testing.T) {
	t.Parallel()

	base := make(Chain, 0, 8)
	base = base.Push(Frame{Kind: "class"})

	a := base.Push(Frame{Kind: "method"})
	b := base.Push(Frame{Kind: "field"})

	assert.Equal(t, "method", a.Parent().Kind)
	assert.Equal(t, "field", b.Parent().Kind)
	assert.Len(t, base, 1)

	assert.True(t, a.Within(NewSet("class")))
	assert.False(t, a.Within(NewSet("namespace")))
	assert.Equal(t, 1, a.Nearest(NewSet("method", "class")))
	assert.Equal(t, -1, a.Nearest(NewSet("namespace")))
	assert.Equal(t, Frame{}, Chain(nil).Parent())
}

func TestShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		shape  Shape
		marker string
	}{
		{"simple", ShapeSimple, ""},
		{"nullable", ShapeNullable, "nullable"},
		{"array", ShapeArray, "array"},
		{"generic", ShapeGeneric, "generic"},
		{"pointer", ShapePointer, "pointer"},
		{"reference", ShapeReference, "reference"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.marker, tt.shape.Marker())

			parsed, ok := ParseShape(tt.name)
			assert.True(t, ok)
			assert.Equal(t, tt.shape, parsed)
		})
	}

	_, ok := ParseShape("tuple")
	assert.False(t, ok)
}

func TestTableDecisions(t *testing.T) {
	t.Parallel()

	table := &Table{
		Language:        "test",
		Operators:       NewSet("+", "-"),
		OperatorParents: NewSet("binary_expression"),
		TypeIdentifiers: NewSet("type_identifier"),
		TypeFields:      NewSet("type"),
		Rename:          map[string]string{"method_declaration": "method"},
	}

	assert.True(t, table.Wraps("name"))
	assert.True(t, table.Wraps("value"))
	assert.False(t, table.Wraps("body"))
	assert.False(t, table.Wraps(""))

	assert.True(t, table.IsOperator("+", Frame{Kind: "binary_expression"}))
	assert.False(t, table.IsOperator("-", Frame{Kind: "unary_expression"}))
	assert.False(t, table.IsOperator("*", Frame{Kind: "binary_expression"}))

	assert.Equal(t, RoleType, table.Role(Identifier{Kind: "type_identifier"}, nil))
	assert.Equal(t, RoleType, table.Role(Identifier{Kind: "identifier", Field: "type"}, nil))
	assert.Equal(t, RoleName, table.Role(Identifier{Kind: "identifier", Field: "name"}, nil))
	assert.Equal(t, RoleName, table.Role(Identifier{Kind: "type_identifier", Field: "name"}, nil))

	// Inside a type construct even the name slot refers to a type.
	table.Types = map[string]Shape{"generic_type": ShapeGeneric}
	assert.Equal(t, RoleType, table.Role(Identifier{Kind: "type_identifier", Field: "name"}, Chain{{Kind: "generic_type"}}))

	assert.Equal(t, "method", table.ElementFor("method_declaration"))
	assert.Equal(t, "if_statement", table.ElementFor("If_Statement"))

	custom := &Table{WrappedFields: NewSet("body")}
	assert.True(t, custom.Wraps("body"))
	assert.False(t, custom.Wraps("name"))
}

func TestIdentifierContext(t *testing.T) {
	t.Parallel()

	namespaces := NewSet("namespace_declaration", "using_directive")

	table := &Table{
		ExtractName: NewSet("qualified_name"),
		IdentifierContext: func(chain Chain) bool {
			return chain.Within(namespaces)
		},
	}

	qn := Identifier{Kind: "qualified_name"}

	assert.Equal(t, RoleName, table.Role(qn, Chain{{Kind: "using_directive"}}))
	assert.Equal(t, RoleType, table.Role(qn, Chain{{Kind: "variable_declaration"}}))

	table.ClassifyIdentifier = func(Identifier, Chain) Role { return RoleType }
	assert.Equal(t, RoleType, table.Role(qn, Chain{{Kind: "using_directive"}}))
}

func TestSanitizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"name", "name"},
		{"my key", "my_key"},
		{"1abc", "_1abc"},
		{"$ref", "_ref"},
		{"-flag", "_-flag"},
		{"a.b-c", "a.b-c"},
		{"", "_"},
		{"ключ", "ключ"},
		{"a/b:c", "a_b_c"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got := SanitizeName(tt.in)
			assert.Equal(t, tt.want, got)
			assert.True(t, IsValidName(got))
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	good := &Table{Language: "x", Grammar: "x", Rename: map[string]string{"a": "b"}}
	require.NoError(t, Validate(good))

	tests := []struct {
		name  string
		table *Table
		want  error
	}{
		{"no language", &Table{Grammar: "x"}, ErrNoLanguage},
		{"no grammar", &Table{Language: "x"}, ErrNoGrammar},
		{"operator renamed", &Table{Language: "x", Grammar: "x", Operators: NewSet("+"), Rename: map[string]string{"+": "plus"}}, ErrOperatorRenamed},
		{"skip and flatten", &Table{Language: "x", Grammar: "x", Skip: NewSet("a"), Flatten: NewSet("a")}, ErrSkipAndFlatten},
		{"bad rename", &Table{Language: "x", Grammar: "x", Rename: map[string]string{"a": "1 b"}}, ErrInvalidElement},
		{"bad field", &Table{Language: "x", Grammar: "x", WrappedFields: NewSet("a b")}, ErrInvalidElement},
		{"bad positional field", &Table{Language: "x", Grammar: "x", PositionalFields: map[string][]string{"pair": {"key", "a b"}}}, ErrInvalidElement},
		{"data without format", &Table{Language: "x", Grammar: "x", Data: &DataTable{}}, ErrDataWithoutFmt},
		{"format without data", &Table{Language: "x", Grammar: "x", Format: "json"}, ErrFormatWithoutDat},
		{"pair is mapping", &Table{Language: "x", Grammar: "x", Format: "f", Data: &DataTable{
			Mappings: NewSet("pair"), Pairs: map[string]Pair{"pair": {}},
		}}, ErrPairConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.ErrorIs(t, Validate(tt.table), tt.want)
		})
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()

	require.NoError(t, reg.Add(&Table{Language: "csharp", Grammar: "c_sharp", Extensions: []string{".cs"}, Aliases: []string{"C#"}}))
	require.NoError(t, reg.Add(&Table{Language: "json", Grammar: "json", Extensions: []string{".JSON"}}))
	require.Error(t, reg.Add(&Table{Language: "broken"}))

	tbl, ok := reg.Extension(".CS")
	require.True(t, ok)
	assert.Equal(t, "csharp", tbl.Language)

	tbl, ok = reg.Extension(".json")
	require.True(t, ok)
	assert.Equal(t, "json", tbl.Language)

	tbl, ok = reg.Alias("c#")
	require.True(t, ok)
	assert.Equal(t, "csharp", tbl.Language)

	_, ok = reg.Language("broken")
	assert.False(t, ok)

	all := reg.All()
	require.Len(t, all, 2)
	assert.Equal(t, "csharp", all[0].Language)

	dup := reg.Clone()
	require.NoError(t, dup.Add(&Table{Language: "ini", Grammar: "ini"}))
	assert.Len(t, dup.All(), 3)
	assert.Len(t, reg.All(), 2)
}

const hclTable = `
language: hcl
grammar: hcl
extensions: [.hcl, .tf]
rename:
  block: block
  attribute: property
skip: [comment]
flatten: [body]
operators: ["+", "-"]
identifiers: [identifier]
atomic: [string_lit]
types:
  tuple: array
positional_fields:
  attribute: [key, value]
`

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	table, err := LoadYAML(strings.NewReader(hclTable))
	require.NoError(t, err)

	assert.Equal(t, "hcl", table.Language)
	assert.Equal(t, []string{".hcl", ".tf"}, table.Extensions)
	assert.Equal(t, "property", table.Rename["attribute"])
	assert.True(t, table.Skip.Has("comment"))
	assert.True(t, table.Flatten.Has("body"))
	assert.True(t, table.Operators.Has("+"))
	assert.True(t, table.Atomic.Has("string_lit"))
	assert.Equal(t, ShapeArray, table.Types["tuple"])
	assert.Nil(t, table.WrappedFields)
	assert.True(t, table.Wraps("name"))
	assert.Equal(t, []string{"key", "value"}, table.PositionalFields["attribute"])
}

func TestLoadYAMLRejectsSchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{"missing grammar", "language: x\nextensions: [.x]\n"},
		{"bad extension", "language: x\ngrammar: x\nextensions: [x]\n"},
		{"unknown key", "language: x\ngrammar: x\nextensions: [.x]\nrenames: {}\n"},
		{"bad shape", "language: x\ngrammar: x\nextensions: [.x]\ntypes: {a: tuple}\n"},
		{"bad element name", "language: x\ngrammar: x\nextensions: [.x]\nrename: {a: '1x'}\n"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadYAML(strings.NewReader(tt.doc))
			require.ErrorIs(t, err, ErrSchema)

			var se *SchemaError
			require.ErrorAs(t, err, &se)
			assert.NotEmpty(t, se.Problems)
		})
	}
}

func TestLoadYAMLRejectsConflicts(t *testing.T) {
	t.Parallel()

	doc := "language: x\ngrammar: x\nextensions: [.x]\nskip: [a]\nflatten: [a]\n"

	_, err := LoadYAML(strings.NewReader(doc))
	require.ErrorIs(t, err, ErrSkipAndFlatten)
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadFile(t.TempDir() + "/missing.yaml")
	require.Error(t, err)
}
