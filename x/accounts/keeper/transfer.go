package keeper

import (
	"github.com/HelaNetwork/runtime-sdk-go/runtimectx"
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
	"github.com/HelaNetwork/runtime-sdk-go/x/accounts/types"
)

// Transfer moves amount from `from` to `to`, atomically: sub_amount(from)
// then add_amount(to); emits Transfer. A no-op during check-only, per
// spec.md §4.3 "Transfer".
func (k *Keeper) Transfer(ctx *runtimectx.Context, from, to runtimetypes.Address, amount runtimetypes.BaseUnits) error {
	if ctx.IsCheckOnly() {
		return nil
	}
	if err := k.SubAmount(ctx, from, amount); err != nil {
		return err
	}
	if err := k.AddAmount(ctx, to, amount); err != nil {
		return err
	}
	ev, err := runtimetypes.NewEvent(types.ModuleName, runtimetypes.EventTransfer, runtimetypes.TransferEvent{
		From: from, To: to, Amount: amount,
	})
	if err != nil {
		return err
	}
	ctx.EmitEvent(ev)
	return nil
}

// Mint credits to's balance by amount and increases denom's total supply;
// emits Mint, per spec.md §4.3 "Mint".
func (k *Keeper) Mint(ctx *runtimectx.Context, to runtimetypes.Address, amount runtimetypes.BaseUnits) error {
	if err := k.AddAmount(ctx, to, amount); err != nil {
		return err
	}
	if err := k.IncTotalSupply(ctx, amount); err != nil {
		return err
	}
	ev, err := runtimetypes.NewEvent(types.ModuleName, runtimetypes.EventMint, runtimetypes.MintEvent{
		Owner: to, Amount: amount,
	})
	if err != nil {
		return err
	}
	ctx.EmitEvent(ev)
	return nil
}

// Burn debits from's balance by amount and decreases denom's total supply;
// emits Burn, per spec.md §4.3 "Burn".
func (k *Keeper) Burn(ctx *runtimectx.Context, from runtimetypes.Address, amount runtimetypes.BaseUnits) error {
	if err := k.SubAmount(ctx, from, amount); err != nil {
		return err
	}
	if err := k.DecTotalSupply(ctx, amount); err != nil {
		return err
	}
	ev, err := runtimetypes.NewEvent(types.ModuleName, runtimetypes.EventBurn, runtimetypes.BurnEvent{
		Owner: from, Amount: amount,
	})
	if err != nil {
		return err
	}
	ctx.EmitEvent(ev)
	return nil
}
