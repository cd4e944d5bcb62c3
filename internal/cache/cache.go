// Package cache memoizes computed results under a key derived from the data
// they were computed from. Every cached value can be recomputed, so a cache
// may drop entries at any time.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

var ErrMiss = errors.New("cache miss")

// Cache stores opaque values by key. Get returns an error wrapping ErrMiss
// when the key is absent.
type Cache interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// Key hashes the identity of the source data together with the parameters of
// a computation.
func Key(source string, params ...any) string {
	hasher := sha256.New()
	hasher.Write([]byte(source))
	for _, p := range params {
		fmt.Fprintf(hasher, "\x1f%T=%v", p, p)
	}
	return hex.EncodeToString(hasher.Sum(nil))
}

// Fetch returns the cached value for key, computing and storing it on a miss.
// A failed Set does not fail the call since the value is already in hand.
func Fetch(c Cache, key string, compute func() ([]byte, error)) ([]byte, error) {
	value, err := c.Get(key)
	if err == nil {
		return value, nil
	}
	if !errors.Is(err, ErrMiss) {
		return nil, fmt.Errorf("reading cache entry %s: %w", key, err)
	}

	value, err = compute()
	if err != nil {
		return nil, err
	}
	c.Set(key, value)
	return value, nil
}

// DefaultMemoryEntries bounds a Memory built with a non-positive size.
const DefaultMemoryEntries = 1024

// Memory keeps the most recently used entries in process. Once full, Set
// evicts the least recently used entry.
type Memory struct {
	entries *lru.Cache[string, []byte]
}

func NewMemory(size int) *Memory {
	if size <= 0 {
		size = DefaultMemoryEntries
	}
	entries, err := lru.New[string, []byte](size)
	if err != nil {
		panic(err)
	}
	return &Memory{entries: entries}
}

func (m *Memory) Get(key string) ([]byte, error) {
	value, ok := m.entries.Get(key)
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, ErrMiss)
	}
	return append([]byte(nil), value...), nil
}

func (m *Memory) Set(key string, value []byte) error {
	m.entries.Add(key, append([]byte(nil), value...))
	return nil
}

func (m *Memory) Len() int {
	return m.entries.Len()
}

// Nop never holds anything.
type Nop struct{}

func (Nop) Get(key string) ([]byte, error) {
	return nil, fmt.Errorf("%s: %w", key, ErrMiss)
}

func (Nop) Set(string, []byte) error {
	return nil
}
