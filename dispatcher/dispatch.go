package dispatcher

import (
	"fmt"

	"github.com/HelaNetwork/runtime-sdk-go/feeaccumulator"
	"github.com/HelaNetwork/runtime-sdk-go/runtimectx"
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
	accountskeeper "github.com/HelaNetwork/runtime-sdk-go/x/accounts/keeper"
)

// DispatchTx runs the full per-transaction pipeline of spec.md §4.1: decode
// the raw bytes, authenticate the sender, open a transaction-scoped child
// context, invoke the named handler, and commit or roll back depending on
// the outcome and the handler's read-only status.
//
// gas_used for the refund step is the method's declared GasCost: every
// accounts-module method executes in constant declared gas, and the EVM
// bridge's interpreter-level leftover-gas accounting is out of scope here
// (moduleapi.CallHandler reports success/failure, not a dynamic gas
// counter), so evm.Create/evm.Call are refunded as if they always spend
// their full declared GasCost.
func (d *Dispatcher) DispatchTx(batchCtx *runtimectx.Context, txIndex int, raw []byte, accum *feeaccumulator.Accumulator) (result runtimetypes.CallResult) {
	methodName := "unknown"
	var sender runtimetypes.Address
	var fee runtimetypes.Fee

	defer func() { recordDispatch(methodName, result) }()
	defer func() {
		if err := d.AfterDispatch(batchCtx, sender, fee, result); err != nil {
			d.logger.Error("deferred check-only update failed", "method", methodName, "err", err)
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			result = runtimetypes.NewAbortedResult(fmt.Errorf("panic: %v", r))
		}
	}()

	if err := d.runApproveRawTx(batchCtx, raw); err != nil {
		return runtimetypes.NewFailedResultFromError(err)
	}

	var tx runtimetypes.Transaction
	if err := runtimetypes.UnmarshalCBOR(raw, &tx); err != nil {
		return runtimetypes.NewFailedResultFromError(runtimetypes.ErrMalformedTransaction)
	}
	methodName = tx.Call.Method
	fee = tx.AuthInfo.Fee

	if err := d.runApproveUnverifiedTx(batchCtx, tx); err != nil {
		return runtimetypes.NewFailedResultFromError(err)
	}

	sender, err := d.Authenticate(batchCtx, raw, tx, accum)
	if err != nil {
		return runtimetypes.NewFailedResultFromError(err)
	}

	method, ok := d.methods[tx.Call.Method]
	if !ok {
		return runtimetypes.NewFailedResultFromError(runtimetypes.ErrInvalidMethod)
	}
	if tx.AuthInfo.Fee.GasLimit < method.GasCost {
		return runtimetypes.NewFailedResultFromError(runtimetypes.ErrGasLimitTooLow)
	}

	txCtx := batchCtx.NewTxContext(batchCtx.Mode(), txIndex)
	txCtx.SetValue(accountskeeper.CallerValueKey, sender)

	res, handlerErr := method.Handler(txCtx, tx.Call.Body)
	if handlerErr != nil {
		res = runtimetypes.NewFailedResultFromError(handlerErr)
	}

	// Post-call hook (spec.md §4.1 step 5): consulted unconditionally, even
	// when the handler itself already failed; an error here overrides
	// whatever result the handler produced.
	if err := d.runAfterHandleCall(txCtx); err != nil {
		txCtx.Rollback()
		return runtimetypes.NewFailedResultFromError(err)
	}
	if handlerErr != nil {
		txCtx.Rollback()
		return res
	}

	// Read-only guard (spec.md §4.1 step 6): a method marked read-only must
	// not have written anything.
	if method.ReadOnly && txCtx.Overlay().HasPendingWrites() {
		txCtx.Rollback()
		return runtimetypes.NewFailedResultFromError(runtimetypes.ErrReadOnlyTransaction)
	}

	// Commit/rollback (spec.md §4.1 step 7): success and not read-only and
	// not check-only commits; everything else rolls back.
	if !res.IsSuccess() || method.ReadOnly || txCtx.IsCheckOnly() {
		txCtx.Rollback()
		return res
	}

	if err := d.Refund(txCtx, sender, tx.AuthInfo.Fee, method.GasCost, accum); err != nil {
		txCtx.Rollback()
		return runtimetypes.NewFailedResultFromError(err)
	}

	txCtx.Commit()
	return res
}

// declaredGasCost decodes raw and looks up its declared method gas cost,
// for the round-level gas total RunShard persists via
// accountskeeper.SetLastBlockStats. Mirrors the decode-then-lookup
// Classify already does; returns false for anything that fails to decode
// or names an unregistered method.
func (d *Dispatcher) declaredGasCost(raw []byte) (uint64, bool) {
	var tx runtimetypes.Transaction
	if err := runtimetypes.UnmarshalCBOR(raw, &tx); err != nil {
		return 0, false
	}
	method, ok := d.methods[tx.Call.Method]
	if !ok {
		return 0, false
	}
	return method.GasCost, true
}
