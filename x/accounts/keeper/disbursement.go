package keeper

import (
	"crypto/sha256"

	sdkmath "cosmossdk.io/math"

	"github.com/HelaNetwork/runtime-sdk-go/runtimectx"
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
)

// CommonPoolAddress is the fixed destination for the 10% disbursement
// share, derived the same way as the fee accumulator address (a
// domain-separated hash so it can never collide with a user-derived
// address).
var CommonPoolAddress = deriveAddress("accounts/common-pool")

func deriveAddress(domain string) runtimetypes.Address {
	h := sha256.Sum256([]byte(domain))
	addr, err := runtimetypes.NewAddress(runtimetypes.AddressVersion, h[:20])
	if err != nil {
		panic(err)
	}
	return addr
}

// Disburse drains the fee-accumulator address's native balance F at
// end-of-block: 10% to the common pool, the remainder split evenly among
// the K good-compute entities, any remainder staying with the accumulator
// address, per spec.md §4.3 "End-of-block disbursement".
func (k *Keeper) Disburse(ctx *runtimectx.Context, goodComputeEntities []runtimetypes.Address) error {
	accAddr := FeeAccumulatorAddress()
	f := k.GetBalance(ctx, accAddr, runtimetypes.NativeDenomination)
	if f.IsZero() {
		return nil
	}

	commonPoolShare := f.MulUint64(10).QuoUint64(100)
	remaining := f.Sub(commonPoolShare)

	numEntities := uint64(len(goodComputeEntities))
	perEntity := sdkmath.ZeroUint()
	if numEntities > 0 {
		perEntity = remaining.QuoUint64(numEntities)
	}

	if !commonPoolShare.IsZero() {
		if err := k.moveFromAccumulator(ctx, accAddr, CommonPoolAddress, commonPoolShare); err != nil {
			return err
		}
	}
	if !perEntity.IsZero() {
		for _, entity := range goodComputeEntities {
			if err := k.moveFromAccumulator(ctx, accAddr, entity, perEntity); err != nil {
				return err
			}
		}
	}
	// any rounding residual stays at accAddr
	return nil
}

func (k *Keeper) moveFromAccumulator(ctx *runtimectx.Context, from, to runtimetypes.Address, amount sdkmath.Uint) error {
	base := runtimetypes.NewBaseUnits(0, runtimetypes.NativeDenomination)
	base.Amount = amount
	if err := k.SubAmount(ctx, from, base); err != nil {
		return err
	}
	return k.AddAmount(ctx, to, base)
}
