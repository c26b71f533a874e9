// Package types holds the accounts module's storage layout, wire messages
// and module-qualified errors. The accounts module also owns the
// governance state machine (spec.md §4.2): both share the PROPOSALS key
// prefix and the module name "accounts", matching spec.md §6's storage
// namespace table.
package types

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
)

// ModuleName is the accounts module's name, used as its error codespace and
// as the module tag on every emitted event/CallFailure.
const ModuleName = "accounts"

// Storage key prefixes, per spec.md §6 "Storage namespace".
var (
	PrefixAccounts     = []byte{0x01}
	PrefixBalances     = []byte{0x02}
	PrefixTotalSupply  = []byte{0x03}
	PrefixRoles        = []byte{0x04}
	PrefixProposals    = []byte{0x05}
)

// LastBlockStatsKey is the literal key the last shard of each round
// overwrites with that round's aggregate fees and gas, backing the
// accounts.LastBlockFees/accounts.LastBlockGas queries (spec.md §6).
var LastBlockStatsKey = []byte("last_block_stats")

// ProposalIDKey is the literal key under which the proposal id counter is
// stored (spec.md §6).
var ProposalIDKey = []byte("proposal_id")

// QuorumKey builds the literal "proposal_<action>_quorum" key for action's
// configured quorum percentage (spec.md §6).
func QuorumKey(action runtimetypes.ProposalAction) []byte {
	return []byte(fmt.Sprintf("proposal_%s_quorum", action.String()))
}

// AccountKey builds the storage key for an account's {nonce, role, init}
// record.
func AccountKey(addr runtimetypes.Address) []byte {
	return append(append([]byte(nil), PrefixAccounts...), addr.Bytes()...)
}

// BalanceKey builds the storage key for a (address, denomination) balance.
func BalanceKey(addr runtimetypes.Address, denom runtimetypes.Denomination) []byte {
	key := append(append([]byte(nil), PrefixBalances...), addr.Bytes()...)
	return append(key, []byte(denom)...)
}

// BalancePrefixForAddress builds the key prefix under which every balance
// of addr (across all denominations) is stored, for range iteration.
func BalancePrefixForAddress(addr runtimetypes.Address) []byte {
	return append(append([]byte(nil), PrefixBalances...), addr.Bytes()...)
}

// TotalSupplyKey builds the storage key for a denomination's total supply.
func TotalSupplyKey(denom runtimetypes.Denomination) []byte {
	return append(append([]byte(nil), PrefixTotalSupply...), []byte(denom)...)
}

// RoleIndexKey builds the reverse-index key for (role, address) → true, so
// "all addresses with role R" enumerates without scanning every account
// (spec.md §3 "RoleIndex").
func RoleIndexKey(role runtimetypes.Role, addr runtimetypes.Address) []byte {
	key := append(append([]byte(nil), PrefixRoles...), byte(role))
	return append(key, addr.Bytes()...)
}

// RoleIndexPrefix builds the key prefix under which every address holding
// role is stored, for enumeration.
func RoleIndexPrefix(role runtimetypes.Role) []byte {
	return append(append([]byte(nil), PrefixRoles...), byte(role))
}

// ProposalKey builds the storage key for a proposal by id, big-endian so
// range iteration is id-ordered.
func ProposalKey(id uint32) []byte {
	key := append([]byte(nil), PrefixProposals...)
	var idBytes [4]byte
	binary.BigEndian.PutUint32(idBytes[:], id)
	return append(key, idBytes[:]...)
}

// AccumulatorAddress is the fixed, module-owned address holding pending
// fees between authentication and end-of-block disbursement (GLOSSARY
// "Accumulator address"). Derived deterministically from a domain-separated
// hash so it can never collide with a user-derived address, the way the
// teacher derives module accounts from their name.
var AccumulatorAddress = deriveModuleAddress("accounts/fee-accumulator")

func deriveModuleAddress(domain string) runtimetypes.Address {
	h := sha256.Sum256([]byte(domain))
	addr, err := runtimetypes.NewAddress(runtimetypes.AddressVersion, h[:20])
	if err != nil {
		panic(err)
	}
	return addr
}
