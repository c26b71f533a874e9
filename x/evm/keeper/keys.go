package keeper

import (
	"github.com/ethereum/go-ethereum/common"
)

// Storage key prefixes for the EVM-specific state the accounts module has
// no notion of: contract code and its storage trie. Balance and nonce ride
// on the accounts module's own account record (spec.md §4.4 "native
// accounts bridge": the EVM account and its native counterpart are the
// same account), so they need no prefix of their own here.
var (
	prefixCode    = []byte{0x01}
	prefixStorage = []byte{0x02}
)

func codeKey(addr common.Address) []byte {
	return append(append([]byte(nil), prefixCode...), addr.Bytes()...)
}

func storageKey(addr common.Address, index common.Hash) []byte {
	key := append(append([]byte(nil), prefixStorage...), addr.Bytes()...)
	return append(key, index.Bytes()...)
}

func storagePrefixForAddress(addr common.Address) []byte {
	return append(append([]byte(nil), prefixStorage...), addr.Bytes()...)
}
