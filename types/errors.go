package types

import (
	errorsmod "cosmossdk.io/errors"
)

// CoreCodespace is the codespace shared by the types and dispatcher-control
// error kinds that are not owned by any single module (spec.md §7). The
// accounts and evm modules each register their own codespace starting at
// code 1, following the cosmossdk.io/errors convention the teacher uses
// throughout (e.g. cosmos-sdk's own module error registries); codes are
// part of the ABI and must never be reassigned (spec.md §6).
const CoreCodespace = "core"

var (
	// Validation.
	ErrInvalidArgument          = errorsmod.Register(CoreCodespace, 1, "invalid argument")
	ErrMalformedAddress         = errorsmod.Register(CoreCodespace, 2, "malformed address")
	ErrMalformedRole            = errorsmod.Register(CoreCodespace, 3, "malformed role")
	ErrMalformedTransaction     = errorsmod.Register(CoreCodespace, 4, "malformed transaction")
	ErrInvalidSignedSimulateCall = errorsmod.Register(CoreCodespace, 5, "invalid signed simulate call")

	// Authorization.
	ErrForbidden         = errorsmod.Register(CoreCodespace, 6, "forbidden")
	ErrInvalidRole       = errorsmod.Register(CoreCodespace, 7, "invalid role")
	ErrNotAuthenticated  = errorsmod.Register(CoreCodespace, 8, "not authenticated")

	// Concurrency/nonce.
	ErrInvalidNonce = errorsmod.Register(CoreCodespace, 9, "invalid nonce")
	ErrFutureNonce  = errorsmod.Register(CoreCodespace, 10, "future nonce")

	// Resource.
	ErrInsufficientBalance    = errorsmod.Register(CoreCodespace, 11, "insufficient balance")
	ErrInsufficientFeeBalance = errorsmod.Register(CoreCodespace, 12, "insufficient fee balance")
	ErrOutOfMessageSlots      = errorsmod.Register(CoreCodespace, 13, "out of message slots")
	ErrGasLimitTooLow         = errorsmod.Register(CoreCodespace, 14, "gas limit too low")
	ErrBatchOutOfGas          = errorsmod.Register(CoreCodespace, 15, "batch out of gas")
	ErrCounterOverflow        = errorsmod.Register(CoreCodespace, 16, "counter overflow")

	// State.
	ErrInvalidState        = errorsmod.Register(CoreCodespace, 17, "invalid state")
	ErrVoteDup             = errorsmod.Register(CoreCodespace, 18, "duplicate vote")
	ErrInvalidQuorum       = errorsmod.Register(CoreCodespace, 19, "invalid quorum")
	ErrNotFound            = errorsmod.Register(CoreCodespace, 20, "not found")
	ErrReadOnlyTransaction = errorsmod.Register(CoreCodespace, 21, "read-only transaction")

	// EVM.
	ErrFeeOverflow        = errorsmod.Register(CoreCodespace, 22, "fee overflow")
	errExecutionFailedTpl = errorsmod.Register(CoreCodespace, 27, "execution failed")
	errRevertedTpl        = errorsmod.Register(CoreCodespace, 28, "reverted")
	errSimTooExpensiveTpl = errorsmod.Register(CoreCodespace, 29, "simulation too expensive")

	// Dispatch-control.
	ErrAborted           = errorsmod.Register(CoreCodespace, 23, "batch aborted")
	ErrQueryAborted      = errorsmod.Register(CoreCodespace, 24, "query aborted")
	ErrKeyManagerFailure = errorsmod.Register(CoreCodespace, 25, "key manager failure")

	// Dispatch.
	ErrInvalidMethod = errorsmod.Register(CoreCodespace, 26, "invalid method")

	// Block handler.
	ErrMessageHandlerNotInvoked = errorsmod.Register(CoreCodespace, 30, "message handler not invoked")
)

// ExecutionFailed builds the EVM "ExecutionFailed(msg)" error kind.
func ExecutionFailed(msg string) error {
	return errExecutionFailedTpl.Wrap(msg)
}

// Reverted builds the EVM "Reverted(msg)" error kind.
func Reverted(msg string) error {
	return errRevertedTpl.Wrap(msg)
}

// SimulationTooExpensive builds the "SimulationTooExpensive(limit)" error kind.
func SimulationTooExpensive(limit uint64) error {
	return errSimTooExpensiveTpl.Wrapf("limit %d", limit)
}

// Transparent wraps an upstream error so it can surface with its own
// module/code while still satisfying Go's error-unwrapping chain, modeling
// the Design Notes' "Core(CoreError)" transparent-wrapping variant.
type Transparent struct {
	inner error
}

// NewTransparent wraps err so its own module/code survives propagation
// through the dispatcher's CallResult boundary.
func NewTransparent(err error) *Transparent {
	return &Transparent{inner: err}
}

func (t *Transparent) Error() string { return t.inner.Error() }
func (t *Transparent) Unwrap() error { return t.inner }
