package languages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/semtree/pkg/semtree/build"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/node"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/query"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/raw"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/rules"
)

func TestBuiltinTablesAreValid(t *testing.T) {
	t.Parallel()

	all := rules.Builtin().All()
	require.Len(t, all, 21)

	for _, table := range all {
		assert.NoError(t, rules.Validate(table), table.Language)
		assert.NotEmpty(t, table.Extensions, table.Language)
	}
}

func TestBuiltinLookups(t *testing.T) {
	t.Parallel()

	reg := rules.Builtin()

	tests := []struct {
		ext      string
		language string
	}{
		{".cs", "csharp"},
		{".java", "java"},
		{".ts", "typescript"},
		{".tsx", "tsx"},
		{".mjs", "javascript"},
		{".py", "python"},
		{".go", "go"},
		{".rs", "rust"},
		{".rb", "ruby"},
		{".php", "php"},
		{".h", "c"},
		{".HPP", "cpp"},
		{".kt", "kotlin"},
		{".swift", "swift"},
		{".scala", "scala"},
		{".lua", "lua"},
		{".sh", "bash"},
		{".json", "json"},
		{".yml", "yaml"},
		{".toml", "toml"},
		{".ini", "ini"},
	}

	for _, tt := range tests {
		table, ok := reg.Extension(tt.ext)
		require.True(t, ok, tt.ext)
		assert.Equal(t, tt.language, table.Language, tt.ext)
	}

	for alias, language := range map[string]string{"C#": "csharp", "c++": "cpp", "Shell": "bash", "golang": "go"} {
		table, ok := reg.Alias(alias)
		require.True(t, ok, alias)
		assert.Equal(t, language, table.Language)
	}
}

func TestConfigFormatsAreDual(t *testing.T) {
	t.Parallel()

	for _, language := range []string{"json", "yaml", "toml", "ini"} {
		table, ok := rules.Lookup(language)
		require.True(t, ok)
		assert.True(t, table.Dual(), language)
		assert.Equal(t, language, table.Format)
	}

	table, ok := rules.Lookup("csharp")
	require.True(t, ok)
	assert.False(t, table.Dual())
}

// The fixtures below follow the shape tree-sitter grammars produce so the
// tables can be checked without a parser.

func TestCSharpTable(t *testing.T) {
	t.Parallel()

	table, ok := rules.Lookup("csharp")
	require.True(t, ok)

	src := "namespace App.Core { public class Calc : Base { public static int? Add(List<int> xs, int b) { return a + b; } } }"
	fixture := raw.Tree("compilation_unit",
		raw.Tree("namespace_declaration",
			raw.Tok("namespace"),
			raw.Tree("qualified_name", raw.Leaf("identifier", "App"), raw.Tok("."), raw.Leaf("identifier", "Core")).As("name"),
			raw.Tree("declaration_list",
				raw.Tok("{"),
				raw.Tree("class_declaration",
					raw.Tree("modifier", raw.Tok("public")),
					raw.Tok("class"),
					raw.Leaf("identifier", "Calc").As("name"),
					raw.Tree("base_list", raw.Tok(":"), raw.Leaf("identifier", "Base")),
					raw.Tree("declaration_list",
						raw.Tok("{"),
						raw.Tree("method_declaration",
							raw.Tree("modifier", raw.Tok("public")),
							raw.Tree("modifier", raw.Tok("static")),
							raw.Tree("nullable_type", raw.Leaf("predefined_type", "int"), raw.Tok("?")).As("returns"),
							raw.Leaf("identifier", "Add").As("name"),
							raw.Tree("parameter_list",
								raw.Tok("("),
								raw.Tree("parameter",
									raw.Tree("generic_name",
										raw.Leaf("identifier", "List"),
										raw.Tree("type_argument_list", raw.Tok("<"), raw.Leaf("predefined_type", "int"), raw.Tok(">")),
									).As("type"),
									raw.Leaf("identifier", "xs").As("name"),
								),
								raw.Tok(","),
								raw.Tree("parameter",
									raw.Leaf("predefined_type", "int").As("type"),
									raw.Leaf("identifier", "b").As("name"),
								),
								raw.Tok(")"),
							).As("parameters"),
							raw.Tree("block",
								raw.Tok("{"),
								raw.Tree("return_statement",
									raw.Tok("return"),
									raw.Tree("binary_expression",
										raw.Leaf("identifier", "a").As("left"),
										raw.Tok("+"),
										raw.Leaf("identifier", "b").As("right"),
									),
									raw.Tok(";"),
								),
								raw.Tok("}"),
							).As("body"),
						),
						raw.Tok("}"),
					).As("body"),
				),
				raw.Tok("}"),
			).As("body"),
		),
	)

	root := raw.MustPlace(src, fixture)
	doc := node.NewDocument()
	unit := build.Build(doc, root, []byte(src), table)

	require.Equal(t, "unit", doc.Name(unit))

	ns := doc.ChildElement(unit, "namespace")
	require.NotEqual(t, node.None, ns)
	assert.Equal(t, "App.Core", doc.StringValue(doc.ChildElement(ns, "name")))

	class := doc.ChildElement(ns, "class")
	require.NotEqual(t, node.None, class)
	assert.NotEqual(t, node.None, doc.ChildElement(class, "public"))
	assert.Equal(t, "Base", doc.StringValue(doc.ChildElement(doc.ChildElement(class, "extends"), "type")))

	method := doc.ChildElement(class, "method")
	require.NotEqual(t, node.None, method)
	assert.NotEqual(t, node.None, doc.ChildElement(method, "static"))

	returns := doc.ChildElement(method, "type")
	assert.NotEqual(t, node.None, doc.ChildElement(returns, "nullable"))
	assert.Equal(t, "int?", doc.StringValue(returns))

	params := doc.FindElements(method, "parameter")
	require.Len(t, params, 2)

	generic := doc.ChildElement(params[0], "type")
	assert.NotEqual(t, node.None, doc.ChildElement(generic, "generic"))
	assert.Equal(t, "List<int>", doc.StringValue(generic))

	binary := doc.FindElements(method, "binary")
	require.Len(t, binary, 1)
	op, _ := doc.Attr(binary[0], rules.AttrOp)
	assert.Equal(t, "+", op)
	assert.Equal(t, "a b", doc.StringValue(binary[0]))
}

func TestJSONTableDual(t *testing.T) {
	t.Parallel()

	table, ok := rules.Lookup("json")
	require.True(t, ok)

	src := `{"name": "x", "tags": ["a", "b"]}`
	str := func(s string) *raw.Fixture {
		return raw.Tree("string", raw.Tok(`"`), raw.Leaf("string_content", s), raw.Tok(`"`))
	}
	fixture := raw.Tree("document",
		raw.Tree("object",
			raw.Tok("{"),
			raw.Tree("pair", str("name").As("key"), raw.Tok(":"), str("x").As("value")),
			raw.Tok(","),
			raw.Tree("pair", str("tags").As("key"), raw.Tok(":"),
				raw.Tree("array", raw.Tok("["), str("a"), raw.Tok(","), str("b"), raw.Tok("]")).As("value")),
			raw.Tok("}"),
		),
	)

	root := raw.MustPlace(src, fixture)
	doc := node.NewDocument()
	file := build.File(doc, "a.json", root, []byte(src), table)

	data := doc.ChildElement(file, rules.ElementData)
	assert.Equal(t, "<data><name>x</name><tags>a</tags><tags>b</tags></data>", doc.XMLString(data, node.XMLOptions{}))

	ast := doc.ChildElement(file, rules.ElementAST)
	assert.Len(t, doc.FindElements(ast, "property"), 2)
	assert.Len(t, doc.FindElements(ast, "string"), 5)
}

func TestINITableData(t *testing.T) {
	t.Parallel()

	table, ok := rules.Lookup("ini")
	require.True(t, ok)

	src := "root = 1\n[server]\nhost = example.org\n; note\nport = 80\n"
	setting := func(k, v string) *raw.Fixture {
		return raw.Tree("setting", raw.Leaf("setting_name", k), raw.Tok("="), raw.Leaf("setting_value", v))
	}
	fixture := raw.Tree("document",
		setting("root", "1"),
		raw.Tree("section",
			raw.Tree("section_name", raw.Tok("["), raw.Leaf("text", "server"), raw.Tok("]")),
			setting("host", "example.org"),
			raw.Leaf("comment", "; note"),
			setting("port", "80"),
		),
	)

	root := raw.MustPlace(src, fixture)
	doc := node.NewDocument()
	_, data := build.BuildDual(doc, root, []byte(src), table, table.Data)

	assert.Equal(t, "<data><root>1</root><server><host>example.org</host><port>80</port></server></data>",
		doc.XMLString(data, node.XMLOptions{}))
}

var (
	tok  = raw.Tok
	leaf = raw.Leaf
	tree = raw.Tree
)

func buildFile(t *testing.T, language, src string, fixture *raw.Fixture) (*node.Document, node.ID) {
	t.Helper()

	table, ok := rules.Lookup(language)
	require.True(t, ok, language)

	root, err := raw.Place(src, fixture)
	require.NoError(t, err)

	doc := node.NewDocument()

	return doc, build.File(doc, "fixture", root, []byte(src), table)
}

func stringAt(t *testing.T, doc *node.Document, root node.ID, expr string) string {
	t.Helper()

	v, err := query.Evaluate(doc, root, "string("+expr+")")
	require.NoError(t, err)

	s, ok := v.(string)
	require.True(t, ok, expr)

	return s
}

func TestLanguageFixtures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		language string
		src      string
		tree     *raw.Fixture
		counts   map[string]int
		texts    map[string]string
	}{
		{
			language: "go",
			src:      "package p\n\ntype Foo struct {\n\tItems []Bar\n\tNext *Foo\n}\n\nfunc Get(xs List[int]) *Foo {\n\treturn nil\n}\n",
			tree: tree("source_file",
				tree("package_clause", tok("package"), leaf("package_identifier", "p")),
				tree("type_declaration",
					tok("type"),
					tree("type_spec",
						leaf("type_identifier", "Foo").As("name"),
						tree("struct_type",
							tok("struct"),
							tree("field_declaration_list",
								tok("{"),
								tree("field_declaration",
									leaf("field_identifier", "Items").As("name"),
									tree("slice_type", tok("["), tok("]"), leaf("type_identifier", "Bar").As("element")).As("type"),
								),
								tree("field_declaration",
									leaf("field_identifier", "Next").As("name"),
									tree("pointer_type", tok("*"), leaf("type_identifier", "Foo")).As("type"),
								),
								tok("}"),
							),
						).As("type"),
					),
				),
				tree("function_declaration",
					tok("func"),
					leaf("identifier", "Get").As("name"),
					tree("parameter_list",
						tok("("),
						tree("parameter_declaration",
							leaf("identifier", "xs").As("name"),
							tree("generic_type",
								leaf("type_identifier", "List").As("type"),
								tree("type_arguments", tok("["), tree("type_elem", leaf("type_identifier", "int")), tok("]")).As("type_arguments"),
							).As("type"),
						),
						tok(")"),
					).As("parameters"),
					tree("pointer_type", tok("*"), leaf("type_identifier", "Foo")).As("result"),
					tree("block", tok("{"), tree("return_statement", tok("return"), tree("expression_list", leaf("nil", "nil"))), tok("}")).As("body"),
				),
			),
			counts: map[string]int{
				"//type":                         5,
				"//type[generic]":                1,
				"//type[pointer]":                2,
				"//type[array]":                  1,
				"//type[generic]/arguments/type": 1,
				"//name/type":                    0,
			},
			texts: map[string]string{
				"//typespec/name":            "Foo",
				"//function/name":            "Get",
				"//type[generic]":            "List[int]",
				"//field[name='Items']/type": "[]Bar",
			},
		},
		{
			language: "rust",
			src:      "pub struct Point {\n    pub x: Vec<i32>,\n    y: &i32,\n}\n",
			tree: tree("source_file",
				tree("struct_item",
					tree("visibility_modifier", tok("pub")),
					tok("struct"),
					leaf("type_identifier", "Point").As("name"),
					tree("field_declaration_list",
						tok("{"),
						tree("field_declaration",
							tree("visibility_modifier", tok("pub")),
							leaf("field_identifier", "x").As("name"),
							tok(":"),
							tree("generic_type",
								leaf("type_identifier", "Vec").As("type"),
								tree("type_arguments", tok("<"), leaf("primitive_type", "i32"), tok(">")).As("type_arguments"),
							).As("type"),
						),
						tok(","),
						tree("field_declaration",
							leaf("field_identifier", "y").As("name"),
							tok(":"),
							tree("reference_type", tok("&"), leaf("primitive_type", "i32").As("type")).As("type"),
						),
						tok(","),
						tok("}"),
					).As("body"),
				),
			),
			counts: map[string]int{
				"//type":            3,
				"//type[generic]":   1,
				"//type[reference]": 1,
				"//pub":             2,
				"//struct/pub":      1,
				"//field/pub":       1,
				"//name/type":       0,
			},
			texts: map[string]string{
				"//struct/name":     "Point",
				"//type[generic]":   "Vec<i32>",
				"//type[reference]": "&i32",
			},
		},
		{
			language: "typescript",
			src:      "class Repo {\n  private static items: Array<string>;\n  find(id: number): Item[] {\n    return null;\n  }\n}\n",
			tree: tree("program",
				tree("class_declaration",
					tok("class"),
					leaf("type_identifier", "Repo").As("name"),
					tree("class_body",
						tok("{"),
						tree("public_field_definition",
							tree("accessibility_modifier", tok("private")),
							tok("static"),
							leaf("property_identifier", "items").As("name"),
							tree("type_annotation",
								tok(":"),
								tree("generic_type",
									leaf("type_identifier", "Array").As("name"),
									tree("type_arguments", tok("<"), tree("predefined_type", tok("string")), tok(">")),
								),
							).As("type"),
						),
						tok(";"),
						tree("method_definition",
							leaf("property_identifier", "find").As("name"),
							tree("formal_parameters",
								tok("("),
								tree("required_parameter",
									leaf("identifier", "id").As("pattern"),
									tree("type_annotation", tok(":"), tree("predefined_type", tok("number"))).As("type"),
								),
								tok(")"),
							).As("parameters"),
							tree("type_annotation",
								tok(":"),
								tree("array_type", leaf("type_identifier", "Item"), tok("["), tok("]")),
							).As("return_type"),
							tree("statement_block",
								tok("{"),
								tree("return_statement", tok("return"), leaf("null", "null"), tok(";")),
								tok("}"),
							).As("body"),
						),
						tok("}"),
					).As("body"),
				),
			),
			counts: map[string]int{
				"//type":          4,
				"//type[generic]": 1,
				"//type[array]":   1,
				"//field/private": 1,
				"//field/static":  1,
				"//name/type":     0,
			},
			texts: map[string]string{
				"//class/name":    "Repo",
				"//method/name":   "find",
				"//type[generic]": "Array<string>",
				"//type[array]":   "Item[]",
			},
		},
		{
			language: "python",
			src:      "class Store:\n    async def load(self, path: str) -> List[int]:\n        return None\n",
			tree: tree("module",
				tree("class_definition",
					tok("class"),
					leaf("identifier", "Store").As("name"),
					tok(":"),
					tree("block",
						tree("function_definition",
							tok("async"),
							tok("def"),
							leaf("identifier", "load").As("name"),
							tree("parameters",
								tok("("),
								leaf("identifier", "self"),
								tok(","),
								tree("typed_parameter",
									leaf("identifier", "path"),
									tok(":"),
									tree("type", leaf("identifier", "str")).As("type"),
								),
								tok(")"),
							).As("parameters"),
							tok("->"),
							tree("type",
								tree("generic_type",
									leaf("identifier", "List"),
									tree("type_parameter", tok("["), tree("type", leaf("identifier", "int")), tok("]")),
								),
							).As("return_type"),
							tok(":"),
							tree("block", tree("return_statement", tok("return"), leaf("none", "None"))).As("body"),
						),
					).As("body"),
				),
			),
			counts: map[string]int{
				"//type":                         3,
				"//type[generic]":                1,
				"//type[generic]/arguments/type": 1,
				"//function/async":               1,
				"//name/type":                    0,
			},
			texts: map[string]string{
				"//class/name":     "Store",
				"//function/name":  "load",
				"//parameter/type": "str",
				"//type[generic]":  "List[int]",
			},
		},
		{
			language: "java",
			src:      "public final class Repo {\n    private List<String> items;\n    public int[] sizes() {\n        return null;\n    }\n}\n",
			tree: tree("program",
				tree("class_declaration",
					tree("modifiers", tok("public"), tok("final")),
					tok("class"),
					leaf("identifier", "Repo").As("name"),
					tree("class_body",
						tok("{"),
						tree("field_declaration",
							tree("modifiers", tok("private")),
							tree("generic_type",
								leaf("type_identifier", "List"),
								tree("type_arguments", tok("<"), leaf("type_identifier", "String"), tok(">")),
							).As("type"),
							tree("variable_declarator", leaf("identifier", "items").As("name")).As("declarator"),
							tok(";"),
						),
						tree("method_declaration",
							tree("modifiers", tok("public")),
							tree("array_type",
								tree("integral_type", tok("int")).As("element"),
								tree("dimensions", tok("["), tok("]")).As("dimensions"),
							).As("type"),
							leaf("identifier", "sizes").As("name"),
							tree("formal_parameters", tok("("), tok(")")).As("parameters"),
							tree("block",
								tok("{"),
								tree("return_statement", tok("return"), leaf("null_literal", "null"), tok(";")),
								tok("}"),
							).As("body"),
						),
						tok("}"),
					).As("body"),
				),
			),
			counts: map[string]int{
				"//type":          3,
				"//type[generic]": 1,
				"//type[array]":   1,
				"//class/public":  1,
				"//class/final":   1,
				"//field/private": 1,
				"//method/public": 1,
				"//name/type":     0,
			},
			texts: map[string]string{
				"//class/name":    "Repo",
				"//method/name":   "sizes",
				"//type[generic]": "List<String>",
				"//type[array]":   "int[]",
			},
		},
		{
			language: "kotlin",
			src:      "open class Repo {\n    private val items: List<String>\n    var next: Repo?\n}\n",
			tree: tree("source_file",
				tree("class_declaration",
					tree("modifiers", tree("inheritance_modifier", tok("open"))),
					tok("class"),
					leaf("type_identifier", "Repo"),
					tree("class_body",
						tok("{"),
						tree("property_declaration",
							tree("modifiers", tree("visibility_modifier", tok("private"))),
							tree("binding_pattern_kind", tok("val")),
							tree("variable_declaration",
								leaf("simple_identifier", "items"),
								tok(":"),
								tree("user_type",
									leaf("type_identifier", "List"),
									tree("type_arguments",
										tok("<"),
										tree("type_projection", tree("user_type", leaf("type_identifier", "String"))),
										tok(">"),
									),
								),
							),
						),
						tree("property_declaration",
							tree("binding_pattern_kind", tok("var")),
							tree("variable_declaration",
								leaf("simple_identifier", "next"),
								tok(":"),
								tree("nullable_type", tree("user_type", leaf("type_identifier", "Repo")), tok("?")),
							),
						),
						tok("}"),
					),
				),
			),
			counts: map[string]int{
				"//type":                         3,
				"//type[generic]":                1,
				"//type[generic]/arguments/type": 1,
				"//type[nullable]":               1,
				"//class/open":                   1,
				"//property/private":             1,
				"//name/type":                    0,
			},
			texts: map[string]string{
				"//class/name":     "Repo",
				"//type[generic]":  "List<String>",
				"//type[nullable]": "Repo?",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			t.Parallel()

			doc, file := buildFile(t, tt.language, tt.src, tt.tree)

			for expr, want := range tt.counts {
				assert.Equal(t, want, query.MustCompile(expr).Count(doc, file), expr)
			}

			for expr, want := range tt.texts {
				assert.Equal(t, want, stringAt(t, doc, file, expr), expr)
			}
		})
	}
}

func yamlFixture() (string, *raw.Fixture) {
	scalar := func(s string) *raw.Fixture {
		return tree("flow_node", tree("plain_scalar", leaf("string_scalar", s)))
	}

	src := "name: x\ntags: [a, b]\n"

	return src, tree("stream",
		tree("document",
			tree("block_node",
				tree("block_mapping",
					tree("block_mapping_pair", scalar("name").As("key"), tok(":"), scalar("x").As("value")),
					tree("block_mapping_pair",
						scalar("tags").As("key"),
						tok(":"),
						tree("flow_node",
							tree("flow_sequence", tok("["), scalar("a"), tok(","), scalar("b"), tok("]")),
						).As("value"),
					),
				),
			),
		),
	)
}

func tomlFixture() (string, *raw.Fixture) {
	src := "title = \"demo\"\n\n[server]\nhost = \"example.org\"\nports = [80, 443]\n"

	return src, tree("document",
		tree("pair", leaf("bare_key", "title"), tok("="), leaf("string", `"demo"`)),
		tree("table",
			tok("["),
			leaf("bare_key", "server"),
			tok("]"),
			tree("pair", leaf("bare_key", "host"), tok("="), leaf("string", `"example.org"`)),
			tree("pair",
				leaf("bare_key", "ports"),
				tok("="),
				tree("array", tok("["), leaf("integer", "80"), tok(","), leaf("integer", "443"), tok("]")),
			),
		),
	)
}

func jsonFixture() (string, *raw.Fixture) {
	str := func(s string) *raw.Fixture {
		return tree("string", tok(`"`), leaf("string_content", s), tok(`"`))
	}

	src := `{"name": "x", "port": 80}`

	return src, tree("document",
		tree("object",
			tok("{"),
			tree("pair", str("name").As("key"), tok(":"), str("x").As("value")),
			tok(","),
			tree("pair", str("port").As("key"), tok(":"), leaf("number", "80").As("value")),
			tok("}"),
		),
	)
}

func iniFixture() (string, *raw.Fixture) {
	setting := func(k, v string) *raw.Fixture {
		return tree("setting", leaf("setting_name", k), tok("="), leaf("setting_value", v))
	}

	src := "root = 1\n[server]\nhost = example.org\nport = 80\n"

	return src, tree("document",
		setting("root", "1"),
		tree("section",
			tree("section_name", tok("["), leaf("text", "server"), tok("]")),
			setting("host", "example.org"),
			setting("port", "80"),
		),
	)
}

func TestYAMLTable(t *testing.T) {
	t.Parallel()

	src, fixture := yamlFixture()
	doc, file := buildFile(t, "yaml", src, fixture)

	assert.Equal(t, "<data><name>x</name><tags>a</tags><tags>b</tags></data>",
		doc.XMLString(doc.ChildElement(file, rules.ElementData), node.XMLOptions{}))

	ast := doc.ChildElement(file, rules.ElementAST)
	assert.Equal(t, "<ast><object>"+
		"<property><key><string>name</string></key>: <value><string>x</string></value></property> "+
		"<property><key><string>tags</string></key>: <value><array>[<string>a</string>, <string>b</string>]</array></value></property>"+
		"</object></ast>",
		doc.XMLString(ast, node.XMLOptions{}))
}

func TestTOMLTable(t *testing.T) {
	t.Parallel()

	src, fixture := tomlFixture()
	doc, file := buildFile(t, "toml", src, fixture)

	assert.Equal(t,
		"<data><title>demo</title><server><host>example.org</host><ports>80</ports><ports>443</ports></server></data>",
		doc.XMLString(doc.ChildElement(file, rules.ElementData), node.XMLOptions{}))

	ast := doc.ChildElement(file, rules.ElementAST)
	assert.Equal(t, "server", stringAt(t, doc, ast, "object/section/key"))
	assert.Equal(t, `<property><key>title</key> = <value><string>"demo"</string></value></property>`,
		doc.XMLString(doc.ChildElement(doc.ChildElement(ast, "object"), "property"), node.XMLOptions{}))
	assert.Equal(t, 2, query.MustCompile("//value/array/number").Count(doc, ast))
}

func TestConfigFormatsShareVocabulary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		language   string
		fixture    func() (string, *raw.Fixture)
		properties int
	}{
		{"json", jsonFixture, 2},
		{"yaml", yamlFixture, 2},
		{"toml", tomlFixture, 3},
		{"ini", iniFixture, 3},
	}

	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			t.Parallel()

			src, fixture := tt.fixture()
			doc, file := buildFile(t, tt.language, src, fixture)

			assert.Equal(t, 1, query.MustCompile("ast/object").Count(doc, file))
			assert.Equal(t, tt.properties, query.MustCompile("//ast//property").Count(doc, file))
			assert.Equal(t, tt.properties, query.MustCompile("//ast//property/key").Count(doc, file))
			assert.Equal(t, tt.properties, query.MustCompile("//ast//property/value").Count(doc, file))
		})
	}
}
