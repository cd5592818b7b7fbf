// Package semtree parses source files into uniform semantic trees that XPath
// queries can search across languages.
//
// A Parser detects the language of a file, parses it with the matching
// tree-sitter grammar and rewrites the concrete syntax tree with the
// language's rule table. Configuration formats (JSON, YAML, TOML, INI) get
// two branches: the rewritten syntax under ast and a plain key/value
// projection under data.
package semtree

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/Sumatoshi-tech/semtree/pkg/semtree/build"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/grammar"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/node"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/rules"

	// Built-in rule tables.
	_ "github.com/Sumatoshi-tech/semtree/pkg/semtree/languages"
)

// Sentinel errors for parser operations.
var (
	ErrUnsupported     = errors.New("unsupported file")
	ErrUnknownLanguage = errors.New("unknown language")
)

// File is the semantic tree of one source file.
type File struct {
	Path     string
	Language string
	// Format is set for configuration formats.
	Format string
	Doc    *node.Document
	Root   node.ID
	// Partial reports that the parser recovered from syntax errors; the
	// tree holds error elements where input could not be parsed.
	Partial bool
}

// WriteXML serializes the file tree.
func (f *File) WriteXML(w io.Writer, opts node.XMLOptions) error {
	return f.Doc.WriteXML(w, f.Root, opts)
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) { p.logger = logger }
}

// WithExtensions maps file extensions to language names, overriding the
// extensions declared by the rule tables.
func WithExtensions(overrides map[string]string) Option {
	return func(p *Parser) { p.overrides = overrides }
}

// WithTables registers additional rule tables, replacing built-in tables of
// the same language.
func WithTables(tables ...*rules.Table) Option {
	return func(p *Parser) { p.extra = append(p.extra, tables...) }
}

// Parser is the entry point for building semantic trees. It is safe for
// concurrent use once constructed.
type Parser struct {
	loader    *Loader
	logger    *slog.Logger
	overrides map[string]string
	extra     []*rules.Table
}

// NewParser creates a parser over the built-in rule tables.
func NewParser(opts ...Option) (*Parser, error) {
	p := &Parser{logger: slog.Default()}

	for _, opt := range opts {
		opt(p)
	}

	registry := rules.Builtin()

	for _, t := range p.extra {
		if err := registry.Add(t); err != nil {
			return nil, fmt.Errorf("custom rule table: %w", err)
		}
	}

	p.loader = NewLoader(registry, p.overrides)

	return p, nil
}

// Loader returns the parser's language resolver.
func (p *Parser) Loader() *Loader { return p.loader }

// IsSupported reports whether filename has a registered extension.
func (p *Parser) IsSupported(filename string) bool {
	_, ok := p.loader.ByExtension(filepath.Ext(filename))

	return ok
}

// Language returns the language detected for filename, or "".
func (p *Parser) Language(filename string, content []byte) string {
	t, ok := p.loader.Detect(filename, content)
	if !ok {
		return ""
	}

	return t.Language
}

// Parse builds the semantic tree of filename, detecting its language.
func (p *Parser) Parse(ctx context.Context, filename string, content []byte) (*File, error) {
	t, ok := p.loader.Detect(filename, content)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, filename)
	}

	return p.parse(ctx, filename, content, t)
}

// ParseAs builds the semantic tree of content with the named language.
func (p *Parser) ParseAs(ctx context.Context, language, filename string, content []byte) (*File, error) {
	t, ok := p.loader.ByName(language)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, language)
	}

	return p.parse(ctx, filename, content, t)
}

func (p *Parser) parse(ctx context.Context, filename string, content []byte, t *rules.Table) (*File, error) {
	if err := p.loader.grammar(t).init(); err != nil {
		return nil, fmt.Errorf("%s: %w", t.Language, err)
	}

	tree, err := grammar.Parse(ctx, t.Grammar, content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	defer tree.Close()

	doc := node.NewDocument()
	root := build.File(doc, filename, tree.Root(), content, t)

	f := &File{
		Path:     filename,
		Language: t.Language,
		Format:   t.Format,
		Doc:      doc,
		Root:     root,
		Partial:  tree.HasErrors(),
	}

	if f.Partial {
		p.logger.DebugContext(ctx, "parsed with syntax errors", "path", filename, "language", t.Language)
	}

	return f, nil
}

// Raw parses content with the grammar of language, or with any forest
// grammar when language names no table, and returns the dump of the
// concrete syntax tree.
func (p *Parser) Raw(ctx context.Context, language, filename string, content []byte, namedOnly bool) (*grammar.DumpNode, error) {
	name := language

	switch t, ok := p.lookup(language, filename, content); {
	case ok:
		name = t.Grammar
	case name == "":
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, filename)
	}

	tree, err := grammar.Parse(ctx, name, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	return grammar.Dump(tree.Root(), content, namedOnly), nil
}

func (p *Parser) lookup(language, filename string, content []byte) (*rules.Table, bool) {
	if language != "" {
		return p.loader.ByName(language)
	}

	return p.loader.Detect(filename, content)
}
