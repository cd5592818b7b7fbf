// Package cache keeps recently built semantic trees so that repeated
// queries over unchanged files skip parsing. Entries are keyed by path,
// requested language and content digest; a changed file never hits.
package cache

import (
	"sync"
	"sync/atomic"

	"github.com/Sumatoshi-tech/semtree/pkg/semtree"
)

// DefaultSize is the default budget of a tree cache (64 MB of source).
const DefaultSize = 64 << 20

// treeOverhead estimates node storage per source byte; the budget is
// charged for the tree, not for the text it came from.
const treeOverhead = 8

// evictionSample is how many entries near the tail compete for eviction.
const evictionSample = 5

// Key identifies a tree.
type Key struct {
	Path string
	// Language is the forced language, or empty when it was detected.
	Language string
	Digest   uint64
}

// Trees is a size-bounded LRU of parsed files. Cached files are shared
// between callers and must be treated as read-only.
type Trees struct {
	mu      sync.Mutex
	entries map[Key]*entry
	head    *entry
	tail    *entry
	maxSize int64
	size    int64

	hits   atomic.Int64
	misses atomic.Int64
}

type entry struct {
	key  Key
	file *semtree.File
	size int64
	uses int64
	prev *entry
	next *entry
}

// cost is lower for entries worth less: large trees that are rarely used.
func (e *entry) cost() float64 {
	kb := float64(e.size) / 1024
	if kb < 1 {
		kb = 1
	}

	return float64(e.uses) / kb
}

// New creates a cache holding at most maxSize bytes of estimated tree
// storage. A non-positive maxSize selects DefaultSize.
func New(maxSize int64) *Trees {
	if maxSize <= 0 {
		maxSize = DefaultSize
	}

	return &Trees{entries: make(map[Key]*entry), maxSize: maxSize}
}

// Get returns the cached file for key.
func (c *Trees) Get(key Key) (*semtree.File, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)

		return nil, false
	}

	c.hits.Add(1)

	e.uses++
	c.touch(e)

	return e.file, true
}

// Put stores f, built from sourceSize bytes, under key. Trees larger than
// the whole budget are not stored.
func (c *Trees) Put(key Key, f *semtree.File, sourceSize int) {
	size := int64(sourceSize) * treeOverhead
	if f == nil || size > c.maxSize {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.uses++
		c.touch(e)

		return
	}

	for c.size+size > c.maxSize && c.tail != nil {
		c.evict()
	}

	e := &entry{key: key, file: f, size: size, uses: 1}
	c.entries[key] = e
	c.size += size
	c.pushFront(e)
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits    int64
	Misses  int64
	Entries int
	Size    int64
	MaxSize int64
}

// HitRate returns hits over lookups, or 0 before the first lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}

	return float64(s.Hits) / float64(total)
}

// Stats returns the current counters.
func (c *Trees) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: len(c.entries),
		Size:    c.size,
		MaxSize: c.maxSize,
	}
}

// Clear drops every entry. Counters are kept.
func (c *Trees) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[Key]*entry)
	c.head, c.tail = nil, nil
	c.size = 0
}

func (c *Trees) touch(e *entry) {
	if e == c.head {
		return
	}

	c.unlink(e)
	c.pushFront(e)
}

func (c *Trees) pushFront(e *entry) {
	e.prev = nil
	e.next = c.head

	if c.head != nil {
		c.head.prev = e
	}

	c.head = e

	if c.tail == nil {
		c.tail = e
	}
}

func (c *Trees) unlink(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}

	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}

	e.prev, e.next = nil, nil
}

// evict removes the cheapest of the least recently used entries.
func (c *Trees) evict() {
	victim := c.tail

	n := 1
	for e := c.tail.prev; e != nil && n < evictionSample; e = e.prev {
		if e.cost() < victim.cost() {
			victim = e
		}

		n++
	}

	c.unlink(victim)
	delete(c.entries, victim.key)
	c.size -= victim.size
}
