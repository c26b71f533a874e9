package types

import (
	errorsmod "cosmossdk.io/errors"
)

// Accounts module error kinds, registered under the "accounts" codespace
// starting at code 1 (spec.md §6 "Error codes": "Each module owns a
// numeric code space starting at 1; codes are part of the ABI and must not
// be reassigned"), following the same errorsmod.Register pattern the
// teacher's cosmos-sdk dependency uses for every module.
var (
	ErrAccountNotFound   = errorsmod.Register(ModuleName, 1, "account not found")
	ErrInsufficientFunds = errorsmod.Register(ModuleName, 2, "insufficient funds")
	ErrInvalidTarget     = errorsmod.Register(ModuleName, 3, "invalid target for proposal action")
	ErrProposalNotFound  = errorsmod.Register(ModuleName, 4, "proposal not found")
	ErrNotActive         = errorsmod.Register(ModuleName, 5, "proposal is not active")
	ErrWrongRole         = errorsmod.Register(ModuleName, 6, "caller does not hold the required role")
	ErrAlreadyVoted      = errorsmod.Register(ModuleName, 7, "address already voted on this proposal")
	ErrInvalidQuorumValue = errorsmod.Register(ModuleName, 8, "quorum percentage must be 0..=100")
	ErrAlreadyInitialized = errorsmod.Register(ModuleName, 9, "chain initiator has already run InitOwners")
	ErrNotChainInitiator  = errorsmod.Register(ModuleName, 10, "caller is not the configured chain initiator")
	ErrSupplyMismatch     = errorsmod.Register(ModuleName, 11, "invariant violation: balances do not sum to total supply")
)
