package blockhandler

import (
	"github.com/HelaNetwork/runtime-sdk-go/runtimectx"
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
)

// EndBlock runs the end-of-block sequence of spec.md §4.5: insert the
// current round's block hash into the rolling window, evicting the entry
// that just fell outside it, then invoke §4.3 disbursement with the
// round's reported good-compute entities.
func (k *Keeper) EndBlock(ctx *runtimectx.Context, blockHash []byte, goodComputeEntities []runtimetypes.Address) error {
	store := moduleStore(ctx)
	round := ctx.Round()

	if err := store.Insert(blockHashKey(round), blockHash); err != nil {
		return err
	}
	if round >= k.windowSize {
		store.Delete(blockHashKey(round - k.windowSize))
	}

	return k.accounts.Disburse(ctx, goodComputeEntities)
}

// BlockHash returns the hash stored for round, if still within the window.
func (k *Keeper) BlockHash(ctx *runtimectx.Context, round uint64) ([]byte, bool) {
	var hash []byte
	found, err := moduleStore(ctx).Get(blockHashKey(round), &hash)
	if err != nil || !found {
		return nil, false
	}
	return hash, true
}
