package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/semtree/pkg/semtree/batch"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/grammar"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/query"
)

const testConfig = `workers: 2
languages:
  extensions:
    tpl: yaml
`

type runResult struct {
	stdout string
	stderr string
	err    error
}

func write(t *testing.T, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func run(t *testing.T, stdin string, args ...string) runResult {
	t.Helper()

	cfg := write(t, t.TempDir(), "semtree.yaml", testConfig)

	var stdout, stderr bytes.Buffer

	err := Execute(context.Background(), append([]string{"--config", cfg}, args...),
		strings.NewReader(stdin), &stdout, &stderr)

	return runResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestVersion(t *testing.T) {
	t.Parallel()

	res := run(t, "", "version")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "semtree "))
}

func TestParse(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgJSON := write(t, dir, "a.json", `{"port": 80}`)
	tpl := write(t, dir, "values.tpl", "name: web\n")

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  []string
	}{
		{"stdin with language", "port = 80\n", []string{"parse", "-l", "toml"}, []string{"<port>80</port>"}},
		{"json rendering", "", []string{"parse", "-f", "json", cfgJSON}, []string{`"name": "data"`}},
		{"pretty spans", "", []string{"parse", "--pretty", "--spans", cfgJSON}, []string{"\n  <", `start="1:1"`}},
		{"extension override", "", []string{"parse", tpl}, []string{"<name>web</name>"}},
		{"directory", "", []string{"parse", dir}, []string{"<port>80</port>", "<name>web</name>"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := run(t, tt.stdin, tt.args...)
			require.NoError(t, res.err)

			for _, want := range tt.want {
				assert.Contains(t, res.stdout, want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := write(t, dir, "a.json", `{}`)
	unknown := write(t, dir, "notes.txt", "hello")

	res := run(t, "", "parse", "-f", "lines", path)
	require.ErrorIs(t, res.err, ErrUnsupportedFormat)

	res = run(t, "", "parse", path, unknown)
	require.ErrorIs(t, res.err, ErrFilesFailed)
	assert.Contains(t, res.stdout, "<file")
}

func TestQuery(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := write(t, dir, "A.cs", "class A { void F() {} }")
	write(t, dir, "B.cs", "class B { void G() {} void H() {} }")

	res := run(t, "", "query", "//method/name", dir)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, a+":1:16: name F\n")
	assert.Equal(t, 3, strings.Count(res.stdout, ": name "))
	assert.Contains(t, res.stderr, "3 matches in 2 files")

	res = run(t, "", "query", "-q", "-f", "count", "count(//method)", dir)
	require.NoError(t, res.err)
	assert.Equal(t, "3\n", res.stdout)
	assert.Empty(t, res.stderr)

	res = run(t, "", "query", "-f", "json", "//class/name/@start", a)
	require.NoError(t, res.err)

	var summary batch.Summary
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &summary))
	assert.Equal(t, 1, summary.Files)
	require.Len(t, summary.Hits, 1)
	assert.Equal(t, "start", summary.Hits[0].Attr)
	assert.Equal(t, "1:7", summary.Hits[0].Value)

	res = run(t, "", "query", "//[", dir)
	require.ErrorIs(t, res.err, query.ErrInvalidExpression)
}

func TestRaw(t *testing.T) {
	t.Parallel()

	path := write(t, t.TempDir(), "a.json", `{"a": 1}`)

	res := run(t, "", "raw", "--named", path)
	require.NoError(t, res.err)

	var dump grammar.DumpNode
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &dump))
	assert.Equal(t, "document", dump.Kind)
	assert.True(t, dump.Named)
	require.NotEmpty(t, dump.Children)
	assert.Equal(t, "object", dump.Children[0].Kind)

	res = run(t, "", "raw", t.TempDir())
	require.ErrorIs(t, res.err, ErrDirectoryPath)
}

func TestLanguages(t *testing.T) {
	t.Parallel()

	res := run(t, "", "languages")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "csharp")
	assert.Contains(t, res.stdout, ".toml")
	assert.Contains(t, strings.ToLower(res.stdout), "total: 21 languages")
}

func TestRulesValidate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := write(t, dir, "gomod.yaml", "language: gomod\ngrammar: go\nextensions: [.gox]\nflatten: [source_file]\n")
	bad := write(t, dir, "bad.yaml", "language: x\nextensions: [x]\n")
	noGrammar := write(t, dir, "nogrammar.yaml", "language: x\ngrammar: no_such_grammar\nextensions: [.x]\n")

	res := run(t, "", "rules", "validate", good)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "gomod.yaml: ok (gomod, grammar go)")

	res = run(t, "", "rules", "validate", good, bad, noGrammar)
	require.ErrorIs(t, res.err, ErrInvalidRules)
	assert.Contains(t, res.stdout, "bad.yaml: invalid\n  - ")
	assert.Contains(t, res.stdout, "nogrammar.yaml: invalid")

	res = run(t, "", "rules", "schema")
	require.NoError(t, res.err)
	assert.True(t, json.Valid([]byte(res.stdout)))
}

func TestDiff(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := write(t, dir, "a.yaml", "port: 8080\n")
	b := write(t, dir, "b.yaml", "port: 8081\n")
	c := write(t, dir, "c.yaml", "port:   8080\n")

	res := run(t, "", "diff", a, b)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "~ ")
	assert.Contains(t, res.stdout, "808[-0-]{+1+}")
	assert.Contains(t, res.stdout, "changes\n")

	res = run(t, "", "diff", a, c)
	require.NoError(t, res.err)
	assert.Equal(t, "no structural changes\n", res.stdout)

	res = run(t, "", "diff", "-f", "json", a, b)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"type": "modified"`)
}

func TestMCPCommand(t *testing.T) {
	t.Parallel()

	cmd := (&app{}).mcpCommand()
	assert.Equal(t, "mcp", cmd.Use)
	assert.NotEmpty(t, cmd.Long)
	assert.Equal(t, "mcp", cmd.Annotations[annotationMode])

	flag := cmd.Flags().Lookup("metrics-addr")
	require.NotNil(t, flag)
	assert.Empty(t, flag.DefValue)
}

func TestOneLine(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a b c", oneLine("a\nb\tc\x1b"))
	assert.Equal(t, "class A { }", oneLine("  class A {\n\n    }\n"))

	long := oneLine(strings.Repeat("x", maxValueWidth+10))
	assert.Equal(t, strings.Repeat("x", maxValueWidth)+"…", long)
	assert.Equal(t, "2", formatValue(2.0))
	assert.Equal(t, "true", formatValue(true))
}

func TestReadSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	text := filepath.Join(dir, "a.json")
	bin := filepath.Join(dir, "a.bin")
	require.NoError(t, os.WriteFile(text, []byte(`{"a": 1}`), 0o600))
	require.NoError(t, os.WriteFile(bin, []byte{0x00, 0x01, 0x02, 0x00}, 0o600))

	src, err := readSource(text)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(src.path))
	assert.JSONEq(t, `{"a": 1}`, string(src.content))

	tests := []struct {
		path string
		want error
	}{
		{"", ErrEmptyPath},
		{"a\x00b", ErrPathContainsNUL},
		{dir, ErrDirectoryPath},
		{bin, ErrBinarySource},
	}

	for _, tt := range tests {
		_, err := readSource(tt.path)
		require.ErrorIs(t, err, tt.want, tt.path)
	}
}
