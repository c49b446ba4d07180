// Package kvstore implements the key-value storages a ledger can be saved to.
//
// All implementations report an absent key with an error wrapping
// fs.ErrNotExist.
package kvstore

import (
	"fmt"
	"io/fs"
	"slices"
	"sort"
)

// Memory is a map backed storage. Its zero value is not ready to use, call NewMemory.
type Memory struct {
	values map[string][]byte
}

// NewMemory creates an empty in-memory storage.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key.
func (m *Memory) Get(key string) ([]byte, error) {
	v, ok := m.values[key]
	if !ok {
		return nil, fmt.Errorf("key %q: %w", key, fs.ErrNotExist)
	}
	return slices.Clone(v), nil
}

// Set stores a copy of value under key.
func (m *Memory) Set(key string, value []byte) error {
	m.values[key] = slices.Clone(value)
	return nil
}

// Keys returns the stored keys in lexical order.
func (m *Memory) Keys() []string {
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
