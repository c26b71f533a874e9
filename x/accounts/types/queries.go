package types

import (
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
)

// AddressQuery is the shared {address} argument of the accounts.Nonce,
// accounts.Role and accounts.Init queries (spec.md §6 "Query methods").
type AddressQuery struct {
	Address runtimetypes.Address `cbor:"address"`
}

// NonceResult is the result of accounts.Nonce.
type NonceResult struct {
	Nonce uint64 `cbor:"nonce"`
}

// RoleResult is the result of accounts.Role.
type RoleResult struct {
	Role runtimetypes.Role `cbor:"role"`
}

// InitResult is the result of accounts.Init.
type InitResult struct {
	Init bool `cbor:"init"`
}

// QuorumQuery is the argument of accounts.Quorum.
type QuorumQuery struct {
	Action runtimetypes.ProposalAction `cbor:"action"`
}

// QuorumResult is the result of accounts.Quorum.
type QuorumResult struct {
	Quorum uint8 `cbor:"quorum"`
}

// RoleAddressesQuery is the argument of accounts.RoleAddresses.
type RoleAddressesQuery struct {
	Role runtimetypes.Role `cbor:"role"`
}

// RoleAddressesResult is the result of accounts.RoleAddresses.
type RoleAddressesResult struct {
	Addresses []runtimetypes.Address `cbor:"addresses"`
}

// ProposalIDResult is the result of accounts.ProposalID: the most recently
// allocated proposal id.
type ProposalIDResult struct {
	ID uint32 `cbor:"id"`
}

// ProposalInfoQuery is the argument of accounts.ProposalInfo.
type ProposalInfoQuery struct {
	ID uint32 `cbor:"id"`
}

// AddressesResult is the result of accounts.Addresses: every address that
// has a stored account record, for introspection/export tooling. An address
// that only holds a balance, with no account record, is not listed.
type AddressesResult struct {
	Addresses []runtimetypes.Address `cbor:"addresses"`
}

// BalancesQuery is the argument of accounts.Balances.
type BalancesQuery struct {
	Address runtimetypes.Address `cbor:"address"`
}

// BalancesResult is the result of accounts.Balances: every denomination
// with a stored balance for addr, including balances that have fallen to
// zero.
type BalancesResult struct {
	Balances []runtimetypes.BaseUnits `cbor:"balances"`
}

// DenominationInfoQuery is the argument of accounts.DenominationInfo.
type DenominationInfoQuery struct {
	Denomination runtimetypes.Denomination `cbor:"denomination"`
}

// DenominationInfoResult is the result of accounts.DenominationInfo.
type DenominationInfoResult struct {
	TotalSupply runtimetypes.Amount128 `cbor:"total_supply"`
}

// LastBlockFeesResult is the result of the supplemental accounts.LastBlockFees
// query, sourced from the original runtime-sdk's accounts module (not named
// in the distilled call-method list but present in the reference
// implementation's query surface).
type LastBlockFeesResult struct {
	Fees []runtimetypes.BaseUnits `cbor:"fees"`
}

// LastBlockGasResult is the result of the supplemental accounts.LastBlockGas
// query.
type LastBlockGasResult struct {
	GasUsed uint64 `cbor:"gas_used"`
}

// LastBlockStats is the persisted record a round's last shard writes under
// LastBlockStatsKey, backing both LastBlockFeesResult and LastBlockGasResult
// for every query against the following round.
type LastBlockStats struct {
	Fees    []runtimetypes.BaseUnits `cbor:"fees"`
	GasUsed uint64                  `cbor:"gas_used"`
}
