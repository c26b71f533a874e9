// Package blockhandler implements spec.md §4.5: maintaining a rolling
// window of recent block hashes, invoking end-of-block fee disbursement,
// and demultiplexing the previous round's consensus message results against
// the hooks registered when those messages were emitted.
package blockhandler

import (
	"encoding/binary"
)

// ModuleName is the block handler's storage namespace and error codespace.
const ModuleName = "blockhandler"

// Storage key prefixes, local to this module's namespace.
var (
	prefixBlockHashes  = []byte{0x01}
	prefixMessageHooks = []byte{0x02}
)

// blockHashKey builds the big-endian round-keyed slot a block hash is
// stored under, per spec.md §4.5 ("insert current round's hash under
// big-endian round key").
func blockHashKey(round uint64) []byte {
	key := append([]byte(nil), prefixBlockHashes...)
	var roundBytes [8]byte
	binary.BigEndian.PutUint64(roundBytes[:], round)
	return append(key, roundBytes[:]...)
}

// messageHookKey builds the key a pending MessageHook is stored under,
// indexed by its emission order within the round it was emitted in.
func messageHookKey(index uint32) []byte {
	key := append([]byte(nil), prefixMessageHooks...)
	var indexBytes [4]byte
	binary.BigEndian.PutUint32(indexBytes[:], index)
	return append(key, indexBytes[:]...)
}
