package dispatcher

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/HelaNetwork/runtime-sdk-go/feeaccumulator"
	"github.com/HelaNetwork/runtime-sdk-go/runtimectx"
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
	accountskeeper "github.com/HelaNetwork/runtime-sdk-go/x/accounts/keeper"
)

// resolveSender recovers the transaction's authenticated signer, delegating
// to a module-owned scheme when the proof names one (spec.md §4.1 step 1),
// falling back to the built-in ed25519 scheme otherwise.
func (d *Dispatcher) resolveSender(ctx *runtimectx.Context, raw []byte, tx runtimetypes.Transaction) (runtimetypes.Address, error) {
	scheme := tx.AuthInfo.Proof.SchemeName
	if scheme != "" {
		if handler, ok := d.authSchemes[scheme]; ok {
			sender, _, err := handler(ctx, raw)
			return sender, err
		}
		return runtimetypes.Address{}, errorsmod.Wrap(runtimetypes.ErrMalformedTransaction, "unknown auth scheme")
	}
	return tx.VerifyEd25519()
}

// Authenticate runs spec.md §4.1 step 3: resolves and checks the sender,
// validates the nonce, and debits the maximum possible fee
// (gas_limit × gas_price) from the payer into accum. During check-only
// execution the balance is only verified, never debited (spec.md §4.1 step
// 3 "During check-only, balance is only ensured, not debited").
func (d *Dispatcher) Authenticate(ctx *runtimectx.Context, raw []byte, tx runtimetypes.Transaction, accum *feeaccumulator.Accumulator) (runtimetypes.Address, error) {
	sender, err := d.resolveSender(ctx, raw, tx)
	if err != nil {
		return runtimetypes.Address{}, err
	}

	if d.accounts.GetRole(ctx, sender) == runtimetypes.RoleBlacklistedUser {
		return runtimetypes.Address{}, runtimetypes.ErrNotAuthenticated
	}

	accountNonce := d.accounts.GetNonce(ctx, sender)
	switch {
	case tx.AuthInfo.Nonce == accountNonce:
		// ok
	case tx.AuthInfo.Nonce > accountNonce:
		if ctx.Mode() == runtimectx.ModeCheck {
			return runtimetypes.Address{}, runtimetypes.ErrFutureNonce
		}
		return runtimetypes.Address{}, runtimetypes.ErrInvalidNonce
	default:
		return runtimetypes.Address{}, runtimetypes.ErrInvalidNonce
	}

	maxFee := tx.AuthInfo.Fee.MaxAmount()
	if !maxFee.Amount.IsZero() {
		balance := d.accounts.GetBalance(ctx, sender, runtimetypes.NativeDenomination)
		if balance.LT(maxFee.Amount) {
			return runtimetypes.Address{}, runtimetypes.ErrInsufficientFeeBalance
		}
		if ctx.Mode() != runtimectx.ModeCheck {
			// Moves the real balance from payer into the fee-accumulator
			// address (the account disbursement later drains), and records
			// the same amount in this shard's in-memory accumulator for the
			// CTX_FEE_ACCUM cross-shard spillover spec.md §5 describes.
			if err := d.accounts.Transfer(ctx, sender, accountskeeper.FeeAccumulatorAddress(), maxFee); err != nil {
				return runtimetypes.Address{}, err
			}
			accum.Add(runtimetypes.NativeDenomination, maxFee.Amount)
		}
	}

	if ctx.Mode() != runtimectx.ModeCheck {
		if err := d.accounts.IncrementNonce(ctx, sender); err != nil {
			return runtimetypes.Address{}, err
		}
	}
	return sender, nil
}

// AfterDispatch runs the reference dispatcher's after_dispatch_tx: during
// check-only execution, once the call's final result is known to be a
// success, it applies the fee debit and nonce bump that Authenticate
// deliberately deferred (spec.md §4.1 step 3 "During check-only, balance
// is only ensured, not debited"; the original ground truth's
// after_dispatch_tx comment: "only do it after all the other checks have
// already passed, as otherwise retrying the transaction will not be
// possible"). It runs against batchCtx, not the per-transaction overlay,
// so the update survives that overlay's unconditional check-only
// rollback and is visible to later checks against the same signer within
// this batch. Outside check-only, or when the result was not a success,
// it is a no-op: the real debit and nonce increment already happened in
// Authenticate.
func (d *Dispatcher) AfterDispatch(batchCtx *runtimectx.Context, sender runtimetypes.Address, fee runtimetypes.Fee, result runtimetypes.CallResult) error {
	if batchCtx.Mode() != runtimectx.ModeCheck || !result.IsSuccess() {
		return nil
	}

	maxFee := fee.MaxAmount()
	if !maxFee.Amount.IsZero() {
		if err := d.accounts.SubAmount(batchCtx, sender, maxFee); err != nil {
			return err
		}
	}
	return d.accounts.IncrementNonce(batchCtx, sender)
}

// Refund implements spec.md §4.1 step 8: on success, refunds
// (gas_limit − gas_used) × gas_price from the fee-accumulator address back
// to payer, mirroring Authenticate's real balance move.
func (d *Dispatcher) Refund(ctx *runtimectx.Context, payer runtimetypes.Address, fee runtimetypes.Fee, gasUsed uint64, accum *feeaccumulator.Accumulator) error {
	if gasUsed >= fee.GasLimit {
		return nil
	}
	refund := fee.Amount(fee.GasLimit - gasUsed)
	if refund.Amount.IsZero() {
		return nil
	}
	if err := accum.Sub(runtimetypes.NativeDenomination, refund.Amount); err != nil {
		return err
	}
	return d.accounts.Transfer(ctx, accountskeeper.FeeAccumulatorAddress(), payer, refund)
}
