package dispatcher

import (
	"crypto/sha256"

	lru "github.com/hashicorp/golang-lru"

	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
)

// InfoCacheKey is the key INFO_CACHE is addressed by: a digest of the
// transaction's raw bytes, per spec.md §4.1 "classify each transaction
// using a cached (sender, receiver, is_pure_transfer) tuple ... keyed by
// raw transaction bytes".
type InfoCacheKey [32]byte

// InfoCacheKeyOf digests raw transaction bytes into an InfoCacheKey.
func InfoCacheKeyOf(raw []byte) InfoCacheKey {
	return sha256.Sum256(raw)
}

// TxClassification is one INFO_CACHE entry: the (sender, receiver,
// is_pure_transfer) tuple the check-mode first pass populates and the
// splitter reads back during execution, so a transaction is classified
// exactly once per round (spec.md §4.1, §4.4).
type TxClassification struct {
	Sender         runtimetypes.Address
	Receiver       runtimetypes.Address
	IsPureTransfer bool
}

// InfoCache is the dispatcher's INFO_CACHE: a bounded, mutex-free (the
// underlying hashicorp/golang-lru.Cache is already internally synchronized)
// cache from a transaction's digest to its classification.
type InfoCache struct {
	cache *lru.Cache
}

// NewInfoCache builds an INFO_CACHE holding up to size entries.
func NewInfoCache(size int) *InfoCache {
	c, err := lru.New(size)
	if err != nil {
		// Only returns an error for a non-positive size, which is always a
		// construction-time programming error, not a runtime condition.
		panic(err)
	}
	return &InfoCache{cache: c}
}

// Get looks up a transaction's cached classification.
func (ic *InfoCache) Get(key InfoCacheKey) (TxClassification, bool) {
	v, ok := ic.cache.Get(key)
	if !ok {
		return TxClassification{}, false
	}
	return v.(TxClassification), true
}

// Put stores a transaction's classification, evicting the least-recently
// used entry if the cache is full.
func (ic *InfoCache) Put(key InfoCacheKey, c TxClassification) {
	ic.cache.Add(key, c)
}

// Classify returns raw's cached classification, computing and caching it
// via classify if absent.
func (ic *InfoCache) Classify(raw []byte, classify func([]byte) TxClassification) TxClassification {
	key := InfoCacheKeyOf(raw)
	if c, ok := ic.Get(key); ok {
		return c
	}
	c := classify(raw)
	ic.Put(key, c)
	return c
}
