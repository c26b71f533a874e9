package dispatcher

import (
	"errors"

	"github.com/HelaNetwork/runtime-sdk-go/feeaccumulator"
	"github.com/HelaNetwork/runtime-sdk-go/runtimectx"
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
)

// ScheduleConfig bounds one schedule-and-execute pass over a candidate
// batch (spec.md §4.1 "Schedule-and-execute", §5 "batch-level remaining
// gas gates schedule-and-execute loop termination"): the gas budget
// available to the whole pass, the point below which scheduling stops
// even though gas remains (so a transaction that could never fit isn't
// admitted only to starve everything after it), and the maximum number
// of transactions the pass will accept regardless of remaining gas.
type ScheduleConfig struct {
	BatchGasLimit   uint64
	MinRemainingGas uint64
	MaxTxCount      int
}

// ScheduleResult is one schedule-and-execute pass's outcome: the
// real execution results for every admitted candidate, in admission
// order, and the raw-transaction digests rejected outright. Candidates
// neither admitted nor rejected were merely skipped (insufficient
// remaining gas for that one transaction, or a nonce that may become
// valid once an earlier transaction in this batch commits) and remain
// eligible for a later batch.
type ScheduleResult struct {
	AcceptedRaw  [][]byte
	Results      []runtimetypes.CallResult
	RejectHashes []InfoCacheKey
}

// ScheduleAndExecute drains candidates against batchCtx, admitting each
// one only after a disposable check-mode dry run of the full dispatch
// pipeline confirms it would succeed, per spec.md §4.1 "Schedule-and-
// execute". A candidate is:
//
//   - rejected outright when it fails to decode, when its authenticated
//     dry run fails for any reason other than a future nonce, or when the
//     full dry run otherwise fails;
//   - skipped (no reject) when its declared method is unknown, when it
//     needs more gas than currently remains in this pass, or when its dry
//     authentication fails with a future nonce — the original ground
//     truth's rationale applies unchanged: the nonce may become valid
//     once an earlier transaction in the batch has its nonce bump
//     applied, so rejecting it now would be premature;
//   - admitted and actually executed against batchCtx otherwise, which
//     debits real state and, per spec.md §4.1 step 3, may still be
//     check-only if batchCtx itself is.
//
// Scheduling stops once the pass's remaining declared gas would drop
// below cfg.MinRemainingGas, or once cfg.MaxTxCount transactions have
// been admitted, matching spec.md §5's batch-level termination gate.
func (bc *BatchCoordinator) ScheduleAndExecute(batchCtx *runtimectx.Context, candidates [][]byte, cfg ScheduleConfig) ScheduleResult {
	var out ScheduleResult
	remainingGas := cfg.BatchGasLimit

	for _, raw := range candidates {
		if remainingGas < cfg.MinRemainingGas {
			break
		}
		if cfg.MaxTxCount > 0 && len(out.AcceptedRaw) >= cfg.MaxTxCount {
			break
		}

		var tx runtimetypes.Transaction
		if err := runtimetypes.UnmarshalCBOR(raw, &tx); err != nil {
			out.RejectHashes = append(out.RejectHashes, InfoCacheKeyOf(raw))
			continue
		}

		method, ok := bc.d.methods[tx.Call.Method]
		if !ok || tx.AuthInfo.Fee.GasLimit > remainingGas {
			continue
		}

		preCtx := batchCtx.NewChildContext(runtimectx.ModeCheck)
		_, authErr := bc.d.Authenticate(preCtx, raw, tx, feeaccumulator.New())
		preCtx.Rollback()
		if authErr != nil {
			if errors.Is(authErr, runtimetypes.ErrFutureNonce) {
				continue
			}
			out.RejectHashes = append(out.RejectHashes, InfoCacheKeyOf(raw))
			continue
		}

		txIndex := len(out.AcceptedRaw)
		dryCtx := batchCtx.NewChildContext(runtimectx.ModeCheck)
		dryResult := bc.d.DispatchTx(dryCtx, txIndex, raw, feeaccumulator.New())
		dryCtx.Rollback()
		if !dryResult.IsSuccess() {
			out.RejectHashes = append(out.RejectHashes, InfoCacheKeyOf(raw))
			continue
		}

		res := bc.d.DispatchTx(batchCtx, txIndex, raw, feeaccumulator.New())
		out.AcceptedRaw = append(out.AcceptedRaw, raw)
		out.Results = append(out.Results, res)
		remainingGas -= method.GasCost
	}

	return out
}
