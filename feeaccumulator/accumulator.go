// Package feeaccumulator implements the per-context pending fee ledger
// (spec.md §2 component 4, §3 "Fee accumulator"). It is transient: fees
// collected during authentication are drained into the accumulator
// address's balance at end-of-block for disbursement (spec.md §4.3
// "End-of-block disbursement").
package feeaccumulator

import (
	"sort"

	sdkmath "cosmossdk.io/math"

	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
)

// Accumulator is a per-context map<denomination, amount> of pending fees.
type Accumulator struct {
	pending map[runtimetypes.Denomination]sdkmath.Uint
}

// New returns an empty accumulator.
func New() *Accumulator {
	return &Accumulator{pending: make(map[runtimetypes.Denomination]sdkmath.Uint)}
}

// Add credits amount of denom to the pending total.
func (a *Accumulator) Add(denom runtimetypes.Denomination, amount sdkmath.Uint) {
	cur, ok := a.pending[denom]
	if !ok {
		cur = sdkmath.ZeroUint()
	}
	a.pending[denom] = cur.Add(amount)
}

// Sub debits amount of denom from the pending total, e.g. for a refund paid
// back out of the accumulator (spec.md §4.1 step 8 "Refund").
func (a *Accumulator) Sub(denom runtimetypes.Denomination, amount sdkmath.Uint) error {
	cur, ok := a.pending[denom]
	if !ok || cur.LT(amount) {
		return runtimetypes.ErrInsufficientFeeBalance
	}
	a.pending[denom] = cur.Sub(amount)
	return nil
}

// Balance returns the current pending amount for denom.
func (a *Accumulator) Balance(denom runtimetypes.Denomination) sdkmath.Uint {
	cur, ok := a.pending[denom]
	if !ok {
		return sdkmath.ZeroUint()
	}
	return cur
}

// Denominations returns the set of denominations currently tracked, sorted
// for deterministic iteration.
func (a *Accumulator) Denominations() []runtimetypes.Denomination {
	out := make([]runtimetypes.Denomination, 0, len(a.pending))
	for d := range a.pending {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Merge folds other's pending fees into a, used when the last shard folds
// every earlier shard's spillover into the end-of-block accumulator
// (spec.md §4.1 "Batch execution").
func (a *Accumulator) Merge(other *Accumulator) {
	for denom, amount := range other.pending {
		a.Add(denom, amount)
	}
}

// Snapshot returns an immutable copy of the pending map, used when a
// non-final shard publishes its accumulator to CTX_FEE_ACCUM.
func (a *Accumulator) Snapshot() map[runtimetypes.Denomination]sdkmath.Uint {
	out := make(map[runtimetypes.Denomination]sdkmath.Uint, len(a.pending))
	for d, amt := range a.pending {
		out[d] = amt
	}
	return out
}

// FromSnapshot rebuilds an Accumulator from a Snapshot, the shape
// CTX_FEE_ACCUM entries are stored in.
func FromSnapshot(snap map[runtimetypes.Denomination]sdkmath.Uint) *Accumulator {
	a := New()
	for d, amt := range snap {
		a.Add(d, amt)
	}
	return a
}
