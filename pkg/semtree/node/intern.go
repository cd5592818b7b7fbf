package node

import "sync"

// Interner deduplicates element and attribute names shared by every tree
// built for a language. It is filled when rule tables are registered and
// only read during construction.
type Interner struct {
	mu      sync.RWMutex
	strings map[string]string
}

// NewInterner creates an empty interner.
func NewInterner() *Interner {
	return &Interner{strings: make(map[string]string)}
}

// Intern returns the canonical copy of s, storing it on first use.
func (in *Interner) Intern(s string) string {
	in.mu.RLock()
	v, ok := in.strings[s]
	in.mu.RUnlock()

	if ok {
		return v
	}

	in.mu.Lock()
	defer in.mu.Unlock()

	if v, ok = in.strings[s]; ok {
		return v
	}

	in.strings[s] = s

	return s
}

// Lookup returns the canonical copy of s when present, or s itself.
func (in *Interner) Lookup(s string) string {
	in.mu.RLock()
	defer in.mu.RUnlock()

	if v, ok := in.strings[s]; ok {
		return v
	}

	return s
}

// Len returns the number of interned strings.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()

	return len(in.strings)
}

// Names is the process-wide name table.
var Names = NewInterner() //nolint:gochecknoglobals // shared read-mostly table.
