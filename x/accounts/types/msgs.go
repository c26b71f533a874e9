package types

import (
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
)

// TransferParams is the argument of accounts.Transfer (spec.md §6).
type TransferParams struct {
	To     runtimetypes.Address   `cbor:"to"`
	Amount runtimetypes.BaseUnits `cbor:"amount"`
}

// ProposeParams is the argument of accounts.Propose: a raw ProposalContent
// (spec.md §4.2 "Submit (Propose)").
type ProposeParams = runtimetypes.ProposalContent

// VoteParams is the argument of accounts.VoteST (spec.md §6).
type VoteParams struct {
	ID     uint32           `cbor:"id"`
	Option runtimetypes.Vote `cbor:"option"`
}

// OwnerRole is one (address, role) pair in an InitOwners bulk assignment.
type OwnerRole struct {
	Address runtimetypes.Address `cbor:"address"`
	Role    runtimetypes.Role    `cbor:"role"`
}

// InitOwnersParams is the argument of accounts.InitOwners (spec.md §4.2
// "Initialization").
type InitOwnersParams struct {
	Owners []OwnerRole `cbor:"owners"`
}

// MintSTParams is the argument of accounts.MintST, the admin-pathway mint
// that bypasses the proposal/vote flow (spec.md §6).
type MintSTParams struct {
	To     runtimetypes.Address   `cbor:"to"`
	Amount runtimetypes.BaseUnits `cbor:"amount"`
}

// BurnSTParams is the argument of accounts.BurnST: burns from the caller's
// own balance (spec.md §6 "accounts.BurnST {amount}").
type BurnSTParams struct {
	Amount runtimetypes.BaseUnits `cbor:"amount"`
}
