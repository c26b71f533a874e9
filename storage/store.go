// Package storage implements the typed, prefix-scoped key-value view used
// by every module (spec.md §2 component 2, "Typed store"). The underlying
// MKVS backend is an external collaborator (spec.md §1) referenced only
// through cosmossdk.io/store/types.KVStore, exactly the interface the
// teacher's x/vm/keeper.Keeper is handed at construction time.
package storage

import (
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"

	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
)

// KVStore is the out-of-scope MKVS collaborator's interface.
type KVStore = storetypes.KVStore

// Store is a prefix-scoped, CBOR-typed view over a KVStore.
type Store struct {
	kv KVStore
}

// NewStore wraps a raw KVStore with typed access.
func NewStore(kv KVStore) Store {
	return Store{kv: kv}
}

// KV exposes the underlying untyped store, for callers (e.g. the EVM
// bridge's Backend) that need raw byte access.
func (s Store) KV() KVStore {
	return s.kv
}

// Prefix returns a view scoped under the given byte prefix, the way every
// module in the teacher is handed a prefix.NewStore(storeKey, moduleTag).
func (s Store) Prefix(p []byte) Store {
	return Store{kv: prefix.NewStore(s.kv, p)}
}

// Get decodes the value at key into out, reporting whether the key existed.
func (s Store) Get(key []byte, out interface{}) (bool, error) {
	bz := s.kv.Get(key)
	if bz == nil {
		return false, nil
	}
	if err := runtimetypes.UnmarshalCBOR(bz, out); err != nil {
		return true, err
	}
	return true, nil
}

// Has reports whether key is present.
func (s Store) Has(key []byte) bool {
	return s.kv.Has(key)
}

// Insert CBOR-encodes value and writes it at key.
func (s Store) Insert(key []byte, value interface{}) error {
	bz, err := runtimetypes.MarshalCBOR(value)
	if err != nil {
		return err
	}
	s.kv.Set(key, bz)
	return nil
}

// Delete removes key.
func (s Store) Delete(key []byte) {
	s.kv.Delete(key)
}

// Iterate walks [start, end) in key order, invoking fn with each key and its
// raw, undecoded value bytes. Iteration stops early if fn returns stop=true
// or a non-nil error.
func (s Store) Iterate(start, end []byte, fn func(key, rawValue []byte) (stop bool, err error)) error {
	it := s.kv.Iterator(start, end)
	defer it.Close()
	for ; it.Valid(); it.Next() {
		stop, err := fn(it.Key(), it.Value())
		if err != nil {
			return err
		}
		if stop {
			break
		}
	}
	return it.Error()
}
