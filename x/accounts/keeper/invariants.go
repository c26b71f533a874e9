package keeper

import (
	sdkmath "cosmossdk.io/math"

	"github.com/HelaNetwork/runtime-sdk-go/runtimectx"
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
	"github.com/HelaNetwork/runtime-sdk-go/x/accounts/types"
)

// CheckSupplyInvariant enumerates every balance and total supply and
// reports ErrSupplyMismatch on the first denomination whose balances do not
// sum to its recorded total supply, per invariant I1 (spec.md §4.3, §8:
// "The invariant checker enumerates balances and total supplies and
// reports InvariantViolation on mismatch or unexpected denomination").
func (k *Keeper) CheckSupplyInvariant(ctx *runtimectx.Context) error {
	store := moduleStore(ctx)
	sums := make(map[runtimetypes.Denomination]sdkmath.Uint)

	balPrefix := types.PrefixBalances
	err := store.Iterate(balPrefix, prefixRangeEnd(balPrefix), func(key, _ []byte) (bool, error) {
		if len(key) < len(balPrefix)+runtimetypes.AddressSize {
			return false, nil
		}
		denom := runtimetypes.Denomination(key[len(balPrefix)+runtimetypes.AddressSize:])
		var amt runtimetypes.Amount128
		found, err := store.Get(key, &amt)
		if err != nil || !found {
			return false, err
		}
		cur, ok := sums[denom]
		if !ok {
			cur = sdkmath.ZeroUint()
		}
		sums[denom] = cur.Add(amt.Uint)
		return false, nil
	})
	if err != nil {
		return err
	}

	supplyPrefix := types.PrefixTotalSupply
	seen := make(map[runtimetypes.Denomination]bool, len(sums))
	err = store.Iterate(supplyPrefix, prefixRangeEnd(supplyPrefix), func(key, _ []byte) (bool, error) {
		denom := runtimetypes.Denomination(key[len(supplyPrefix):])
		var supply runtimetypes.Amount128
		found, err := store.Get(key, &supply)
		if err != nil || !found {
			return false, err
		}
		seen[denom] = true
		sum, ok := sums[denom]
		if !ok {
			sum = sdkmath.ZeroUint()
		}
		if !sum.Equal(supply.Uint) {
			return false, types.ErrSupplyMismatch
		}
		return false, nil
	})
	if err != nil {
		return err
	}
	for denom, sum := range sums {
		if !seen[denom] && !sum.IsZero() {
			return types.ErrSupplyMismatch
		}
	}
	return nil
}
