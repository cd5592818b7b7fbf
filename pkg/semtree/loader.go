package semtree

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/src-d/enry/v2"

	"github.com/Sumatoshi-tech/semtree/pkg/semtree/grammar"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/rules"
)

// bloomSize is the bit-array length for the extension bloom filter.
// About sixty registered extensions with two hash functions stay well under
// a 5% false-positive rate.
const bloomSize = 512

// Loader resolves files to rule tables. Extension lookups go through a
// bloom filter first so walking large trees rejects unknown extensions
// without touching the maps; grammars are only initialized when a table is
// first used.
type Loader struct {
	registry  *rules.Registry
	overrides map[string]string
	grammars  map[string]*lazyGrammar
	mu        sync.Mutex
	extBloom  [bloomSize / 64]uint64
}

// NewLoader creates a loader over registry. overrides maps extensions to
// language names and wins over the tables' own extensions.
func NewLoader(registry *rules.Registry, overrides map[string]string) *Loader {
	l := &Loader{
		registry:  registry,
		overrides: make(map[string]string, len(overrides)),
		grammars:  make(map[string]*lazyGrammar),
	}

	for _, t := range registry.All() {
		for _, ext := range t.Extensions {
			l.bloomAdd(strings.ToLower(ext))
		}
	}

	for ext, language := range overrides {
		lower := strings.ToLower(ext)
		l.overrides[lower] = language
		l.bloomAdd(lower)
	}

	return l
}

// Add registers a table and its extensions.
func (l *Loader) Add(t *rules.Table) error {
	if err := l.registry.Add(t); err != nil {
		return err
	}

	for _, ext := range t.Extensions {
		l.bloomAdd(strings.ToLower(ext))
	}

	return nil
}

// ByExtension returns the table registered for ext.
// A bloom filter provides a fast negative check: if the extension
// is definitely not registered, the map lookup is skipped entirely.
func (l *Loader) ByExtension(ext string) (*rules.Table, bool) {
	ext = strings.ToLower(ext)
	if ext == "" || !l.bloomMayContain(ext) {
		return nil, false
	}

	if language, ok := l.overrides[ext]; ok {
		if t, found := l.registry.Alias(language); found {
			return t, true
		}
	}

	return l.registry.Extension(ext)
}

// ByName returns the table known under a language name or alias.
func (l *Loader) ByName(name string) (*rules.Table, bool) {
	if t, ok := l.registry.Language(name); ok {
		return t, true
	}

	return l.registry.Alias(name)
}

// Detect resolves filename by extension and, failing that, by content.
func (l *Loader) Detect(filename string, content []byte) (*rules.Table, bool) {
	if t, ok := l.ByExtension(filepath.Ext(filename)); ok {
		return t, true
	}

	if content == nil {
		return nil, false
	}

	lang := enry.GetLanguage(filepath.Base(filename), content)
	if lang == "" {
		return nil, false
	}

	return l.registry.Alias(lang)
}

// Tables returns every registered table, sorted by language.
func (l *Loader) Tables() []*rules.Table {
	return l.registry.All()
}

// CheckGrammars initializes the grammar of every registered table and
// reports the ones that fail to load. The MCP server uses it as its
// readiness probe.
func (l *Loader) CheckGrammars(ctx context.Context) error {
	var errs []error

	for _, t := range l.Tables() {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := l.grammar(t).init(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", t.Language, err))
		}
	}

	return errors.Join(errs...)
}

// grammar returns the lazily initialized grammar handle for t.
func (l *Loader) grammar(t *rules.Table) *lazyGrammar {
	l.mu.Lock()
	defer l.mu.Unlock()

	g, ok := l.grammars[t.Grammar]
	if !ok {
		g = &lazyGrammar{name: t.Grammar}
		l.grammars[t.Grammar] = g
	}

	return g
}

func (l *Loader) bloomAdd(ext string) {
	h1, h2 := bloomHashes(ext)
	l.extBloom[h1/64] |= 1 << (h1 % 64)
	l.extBloom[h2/64] |= 1 << (h2 % 64)
}

func (l *Loader) bloomMayContain(ext string) bool {
	h1, h2 := bloomHashes(ext)

	return l.extBloom[h1/64]&(1<<(h1%64)) != 0 &&
		l.extBloom[h2/64]&(1<<(h2%64)) != 0
}

// bloomHashes returns two bit positions from FNV-1a with two offset bases.
func bloomHashes(s string) (uint, uint) {
	const (
		fnvBasis1 uint = 14695981039346656037
		fnvBasis2 uint = 17316225907498340287
		fnvPrime  uint = 1099511628211
	)

	h1, h2 := fnvBasis1, fnvBasis2

	for i := range len(s) {
		h1 ^= uint(s[i])
		h1 *= fnvPrime
		h2 ^= uint(s[i])
		h2 *= fnvPrime
	}

	return h1 % bloomSize, h2 % bloomSize
}

// lazyGrammar defers tree-sitter language initialization until the first
// parse, so languages never seen in a run cost nothing.
type lazyGrammar struct {
	name    string
	once    sync.Once
	initErr error
}

func (g *lazyGrammar) init() error {
	g.once.Do(func() {
		_, g.initErr = grammar.Language(g.name)
	})

	return g.initErr
}
