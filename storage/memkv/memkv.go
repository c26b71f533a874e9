// Package memkv provides a pure in-memory storetypes.KVStore, the test
// double spec.md §9 calls for explicitly ("Design the Backend trait so a
// test double can substitute a pure in-memory map"). It backs every
// package's tests that need a root KVStore without pulling in a concrete
// MKVS backend, which spec.md §1 keeps out of scope.
package memkv

import (
	"bytes"
	"sort"

	storetypes "cosmossdk.io/store/types"
)

// Store is a sorted in-memory map satisfying storetypes.KVStore.
type Store struct {
	data map[string][]byte
}

// New constructs an empty store.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) GetStoreType() storetypes.StoreType {
	return storetypes.StoreTypeMemory
}

func (s *Store) Get(key []byte) []byte {
	v, ok := s.data[string(key)]
	if !ok {
		return nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out
}

func (s *Store) Has(key []byte) bool {
	_, ok := s.data[string(key)]
	return ok
}

func (s *Store) Set(key, value []byte) {
	if value == nil {
		value = []byte{}
	}
	k := make([]byte, len(key))
	copy(k, key)
	v := make([]byte, len(value))
	copy(v, value)
	s.data[string(k)] = v
}

func (s *Store) Delete(key []byte) {
	delete(s.data, string(key))
}

func (s *Store) sortedKeys() []string {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Iterator returns an ascending iterator over [start, end).
func (s *Store) Iterator(start, end []byte) storetypes.Iterator {
	return newIterator(s.sortedKeys(), s.data, start, end, false)
}

// ReverseIterator returns a descending iterator over [start, end).
func (s *Store) ReverseIterator(start, end []byte) storetypes.Iterator {
	return newIterator(s.sortedKeys(), s.data, start, end, true)
}

type iterator struct {
	keys    []string
	data    map[string][]byte
	pos     int
	reverse bool
}

func newIterator(allKeys []string, data map[string][]byte, start, end []byte, reverse bool) *iterator {
	var keys []string
	for _, k := range allKeys {
		kb := []byte(k)
		if start != nil && bytes.Compare(kb, start) < 0 {
			continue
		}
		if end != nil && bytes.Compare(kb, end) >= 0 {
			continue
		}
		keys = append(keys, k)
	}
	if reverse {
		for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
			keys[i], keys[j] = keys[j], keys[i]
		}
	}
	return &iterator{keys: keys, data: data, reverse: reverse}
}

func (it *iterator) Domain() (start, end []byte) { return nil, nil }
func (it *iterator) Valid() bool                 { return it.pos < len(it.keys) }
func (it *iterator) Next()                       { it.pos++ }
func (it *iterator) Key() []byte                 { return []byte(it.keys[it.pos]) }
func (it *iterator) Value() []byte               { return it.data[it.keys[it.pos]] }
func (it *iterator) Error() error                 { return nil }
func (it *iterator) Close() error                 { return nil }
