package grammar

import (
	"context"
	"errors"
	"fmt"
	"sync"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/Sumatoshi-tech/semtree/pkg/semtree/raw"
)

var (
	errPoolType   = errors.New("grammar: pool returned unexpected type")
	errNoRootNode = errors.New("grammar: parse produced no root node")
)

// pools holds one *sync.Pool of parsers per grammar. Parsers are not safe
// for concurrent use, the pool hands each caller its own.
var pools sync.Map

func pool(name string) (*sync.Pool, error) {
	if p, ok := pools.Load(name); ok {
		if sp, castOK := p.(*sync.Pool); castOK {
			return sp, nil
		}
	}

	lang, err := Language(name)
	if err != nil {
		return nil, err
	}

	p, _ := pools.LoadOrStore(name, &sync.Pool{
		New: func() any {
			parser := sitter.NewParser()
			parser.SetLanguage(lang)

			return parser
		},
	})

	sp, ok := p.(*sync.Pool)
	if !ok {
		return nil, errPoolType
	}

	return sp, nil
}

// Tree is a parsed source file. Close releases the native tree; nodes
// obtained from Root must not be used afterwards.
type Tree struct {
	tree    *sitter.Tree
	source  []byte
	grammar string
}

// Parse parses content with the named grammar.
func Parse(ctx context.Context, name string, content []byte) (*Tree, error) {
	p, err := pool(name)
	if err != nil {
		return nil, err
	}

	parser, ok := p.Get().(*sitter.Parser)
	if !ok {
		return nil, errPoolType
	}

	defer p.Put(parser)

	tree, err := parser.ParseString(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("grammar %s: failed to parse: %w", name, err)
	}

	if tree == nil || tree.RootNode().IsNull() {
		return nil, errNoRootNode
	}

	return &Tree{tree: tree, source: content, grammar: name}, nil
}

// Root returns the root of the concrete syntax tree.
func (t *Tree) Root() raw.Node {
	return wrap(t.tree.RootNode(), "")
}

// Source returns the parsed bytes.
func (t *Tree) Source() []byte { return t.source }

// Grammar returns the grammar name the tree was parsed with.
func (t *Tree) Grammar() string { return t.grammar }

// HasErrors reports whether error recovery inserted ERROR or missing nodes.
func (t *Tree) HasErrors() bool {
	return t.tree.RootNode().HasError()
}

// Close releases the native tree.
func (t *Tree) Close() {
	t.tree.Close()
}
