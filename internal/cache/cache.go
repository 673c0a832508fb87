// Package cache stores parsed ExpectedSets on disk so repeated checks of an
// unchanged annotated source skip parsing.
//
// Entries are keyed by the SHA-256 of the source content together with the
// marker pair, and encoded with msgpack. Unreadable, stale or corrupt entries
// are treated as misses. Parse errors are never cached.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"fixcheck/internal/annot"
)

// Current schema version - increment when payload format changes.
const schemaVersion uint16 = 1

// Key identifies one cache entry.
type Key [32]byte

// NewKey derives the key for source content hash and markers.
func NewKey(contentHash [32]byte, m annot.Markers) Key {
	h := sha256.New()
	h.Write(contentHash[:])
	h.Write([]byte{0})
	h.Write([]byte(m.Primary))
	h.Write([]byte{0})
	h.Write([]byte(m.Next))
	var k Key
	copy(k[:], h.Sum(nil))
	return k
}

func (k Key) String() string { return hex.EncodeToString(k[:]) }

type payload struct {
	Schema  uint16
	Entries []payloadEntry
}

type payloadEntry struct {
	Lines       []string
	Count       int
	SourceLines []int
}

// Cache is a directory of msgpack-encoded ExpectedSets.
// Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open creates dir if needed and returns a cache rooted there.
func Open(dir string) (*Cache, error) {
	if dir == "" {
		return nil, errors.New("cache: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string { return c.dir }

func (c *Cache) path(k Key) string {
	s := k.String()
	return filepath.Join(c.dir, s[:2], s+".mp")
}

// Get returns the cached set for k. The second result is false on any miss.
func (c *Cache) Get(k Key) (*annot.ExpectedSet, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	data, err := os.ReadFile(c.path(k))
	c.mu.RUnlock()
	if err != nil {
		return nil, false
	}

	var p payload
	if err := msgpack.Unmarshal(data, &p); err != nil || p.Schema != schemaVersion {
		return nil, false
	}
	entries := make([]annot.Entry, 0, len(p.Entries))
	for _, e := range p.Entries {
		entries = append(entries, annot.Entry{
			Fragment:    annot.NewFragment(e.Lines...),
			Count:       e.Count,
			SourceLines: e.SourceLines,
		})
	}
	set, err := annot.FromEntries(entries)
	if err != nil {
		return nil, false
	}
	return set, true
}

// Put stores set under k, replacing any previous entry atomically.
func (c *Cache) Put(k Key, set *annot.ExpectedSet) error {
	if c == nil || set == nil {
		return nil
	}
	p := payload{Schema: schemaVersion, Entries: make([]payloadEntry, 0, set.Len())}
	for _, e := range set.Entries() {
		p.Entries = append(p.Entries, payloadEntry{
			Lines:       e.Fragment.Lines(),
			Count:       e.Count,
			SourceLines: e.SourceLines,
		})
	}
	data, err := msgpack.Marshal(&p)
	if err != nil {
		return fmt.Errorf("cache: encode: %w", err)
	}

	target := c.path(k)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(target), ".tmp-*")
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("cache: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cache: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cache: rename: %w", err)
	}
	return nil
}

// Clear removes every cached entry.
func (c *Cache) Clear() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("cache: %w", err)
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(c.dir, e.Name())); err != nil {
			return fmt.Errorf("cache: %w", err)
		}
	}
	return nil
}
