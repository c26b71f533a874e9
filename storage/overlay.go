package storage

import (
	"cosmossdk.io/store/cachekv"
	storetypes "cosmossdk.io/store/types"
)

// Overlay is a storage view that records writes privately and either
// commits them into its parent or is discarded (spec.md §3 "Lifecycle",
// GLOSSARY "Overlay store"). It is the same cache-over-KVStore composition
// cosmos-sdk's baseapp uses for transaction-scoped state
// (cosmossdk.io/store/cachekv.Store), reused here directly: the context
// tree's batch/transaction/child nesting (spec.md §2 component 3) is a
// stack of these wrapping one another, each child's parent being the
// previous overlay's cache layer.
type Overlay struct {
	cache storetypes.CacheKVStore
	dirty *bool
}

// NewOverlay wraps parent with a fresh, uncommitted cache layer.
func NewOverlay(parent KVStore) *Overlay {
	dirty := false
	return &Overlay{cache: cachekv.NewStore(parent), dirty: &dirty}
}

// Store returns a typed Store backed by this overlay's cache layer, for use
// while the overlay is open.
func (o *Overlay) Store() Store {
	return NewStore(dirtyTrackingKV{KVStore: o.cache, dirty: o.dirty})
}

// KV exposes the dirty-tracking cache layer, for callers (the EVM bridge's
// Backend in particular) that need raw byte access but must still
// participate in the read-only guard.
func (o *Overlay) KV() KVStore {
	return dirtyTrackingKV{KVStore: o.cache, dirty: o.dirty}
}

// Child opens a nested overlay whose parent is this overlay's cache layer,
// e.g. a transaction's overlay nested under the batch's, or a simulation's
// child context nested under a transaction's (always discarded per
// spec.md §4.4 "Simulation").
func (o *Overlay) Child() *Overlay {
	return NewOverlay(o.KV())
}

// Commit merges this overlay's writes into its parent. Safe to call only
// once; committing after discarding (or vice versa) is a programmer error.
func (o *Overlay) Commit() {
	o.cache.Write()
}

// Discard drops every write recorded by this overlay. Because the overlay
// was never written to its parent, simply not calling Commit has the same
// effect; Discard exists so call sites can make the rollback explicit and
// symmetric with Commit (spec.md §4.1 step 7: "Failure, read-only, or
// check-only → rollback overlay").
func (o *Overlay) Discard() {}

// HasPendingWrites reports whether any write has been recorded in this
// overlay, used by the read-only guard (spec.md §4.1 step 6: "If the call
// was marked read-only and any pending write exists in the overlay, reject
// with ReadOnlyTransaction").
func (o *Overlay) HasPendingWrites() bool {
	return *o.dirty
}

// dirtyTrackingKV wraps a KVStore, flipping a shared dirty flag on any
// mutation observed through it regardless of whether the caller went
// through the typed Store or reached for raw KV access.
type dirtyTrackingKV struct {
	storetypes.KVStore
	dirty *bool
}

func (d dirtyTrackingKV) Set(key, value []byte) {
	*d.dirty = true
	d.KVStore.Set(key, value)
}

func (d dirtyTrackingKV) Delete(key []byte) {
	*d.dirty = true
	d.KVStore.Delete(key)
}
