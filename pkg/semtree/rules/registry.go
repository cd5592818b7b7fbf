package rules

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Sumatoshi-tech/semtree/pkg/semtree/node"
)

// Registry holds rule tables by language name and extension.
type Registry struct {
	mu         sync.RWMutex
	languages  map[string]*Table
	extensions map[string]*Table
	aliases    map[string]*Table
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		languages:  make(map[string]*Table),
		extensions: make(map[string]*Table),
		aliases:    make(map[string]*Table),
	}
}

// Add validates and registers t, replacing any table with the same
// language. Element names of the table are interned up front so builds
// only read the shared name table.
func (r *Registry) Add(t *Table) error {
	if err := Validate(t); err != nil {
		return fmt.Errorf("registering %q: %w", t.Language, err)
	}

	internNames(t)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.languages[t.Language] = t
	r.aliases[strings.ToLower(t.Language)] = t

	for _, ext := range t.Extensions {
		r.extensions[strings.ToLower(ext)] = t
	}

	for _, alias := range t.Aliases {
		r.aliases[strings.ToLower(alias)] = t
	}

	return nil
}

// Language returns the table registered under name.
func (r *Registry) Language(name string) (*Table, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.languages[name]

	return t, ok
}

// Extension returns the table registered for ext (".cs").
func (r *Registry) Extension(ext string) (*Table, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.extensions[strings.ToLower(ext)]

	return t, ok
}

// Alias returns the table known under name, case-insensitively.
func (r *Registry) Alias(name string) (*Table, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.aliases[strings.ToLower(name)]

	return t, ok
}

// All returns every table, sorted by language.
func (r *Registry) All() []*Table {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Table, 0, len(r.languages))
	for _, t := range r.languages {
		out = append(out, t)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Language < out[j].Language })

	return out
}

// Clone returns a registry holding the same tables.
func (r *Registry) Clone() *Registry {
	dup := NewRegistry()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for k, v := range r.languages {
		dup.languages[k] = v
	}

	for k, v := range r.extensions {
		dup.extensions[k] = v
	}

	for k, v := range r.aliases {
		dup.aliases[k] = v
	}

	return dup
}

func internNames(t *Table) {
	for _, name := range t.Rename {
		node.Names.Intern(name)
	}

	for _, name := range []string{ElementName, ElementType, ElementValue, ElementKey, ElementArguments, ElementError} {
		node.Names.Intern(name)
	}

	for field := range t.WrappedFields {
		node.Names.Intern(field)
	}

	for _, fields := range t.PositionalFields {
		for _, field := range fields {
			node.Names.Intern(field)
		}
	}

	for m := range t.Modifiers {
		node.Names.Intern(m)
	}

	for _, shape := range t.Types {
		if m := shape.Marker(); m != "" {
			node.Names.Intern(m)
		}
	}
}

// builtin is the registry language files register into at init.
var builtin = NewRegistry() //nolint:gochecknoglobals // populated by init() in language files.

// Register adds a built-in table. A table that fails validation is a
// programming error and panics at init.
func Register(t *Table) {
	if err := builtin.Add(t); err != nil {
		panic(err)
	}
}

// Builtin returns a copy of the built-in registry.
func Builtin() *Registry {
	return builtin.Clone()
}

// Lookup returns a built-in table by language name.
func Lookup(language string) (*Table, bool) {
	return builtin.Language(language)
}
