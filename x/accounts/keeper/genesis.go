package keeper

import (
	sdkmath "cosmossdk.io/math"

	"github.com/HelaNetwork/runtime-sdk-go/runtimectx"
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
	"github.com/HelaNetwork/runtime-sdk-go/x/accounts/types"
)

// InitGenesis loads gen into storage. Computed total supplies (the sum of
// every seeded balance per denomination) must match the declared
// total_supplies; a mismatch is fatal, per spec.md §6 "Genesis": "On init,
// computed total supplies from balances must match the declared
// total_supplies (assertion failure is fatal)."
func (k *Keeper) InitGenesis(ctx *runtimectx.Context, gen types.Genesis) error {
	for _, qc := range []struct {
		action runtimetypes.ProposalAction
		pct    uint8
	}{
		{runtimetypes.ActionMint, gen.Parameters.MintQuorum},
		{runtimetypes.ActionBurn, gen.Parameters.BurnQuorum},
		{runtimetypes.ActionWhitelist, gen.Parameters.WhitelistQuorum},
		{runtimetypes.ActionBlacklist, gen.Parameters.BlacklistQuorum},
		{runtimetypes.ActionConfig, gen.Parameters.ConfigQuorum},
	} {
		if qc.pct == 0 {
			continue
		}
		if err := k.SetQuorum(ctx, qc.action, qc.pct); err != nil {
			return err
		}
	}

	for _, a := range gen.Accounts {
		if err := k.SetAccount(ctx, a.Address, types.Account{Nonce: a.Nonce, Role: runtimetypes.RoleUser}); err != nil {
			return err
		}
	}

	computed := make(map[runtimetypes.Denomination]sdkmath.Uint)
	for _, b := range gen.Balances {
		if err := k.SetBalance(ctx, b.Address, b.Amount.Denomination, b.Amount.Amount); err != nil {
			return err
		}
		cur, ok := computed[b.Amount.Denomination]
		if !ok {
			cur = sdkmath.ZeroUint()
		}
		computed[b.Amount.Denomination] = cur.Add(b.Amount.Amount)
	}

	for _, ts := range gen.TotalSupplies {
		got, ok := computed[ts.Denomination]
		if !ok {
			got = sdkmath.ZeroUint()
		}
		if !got.Equal(ts.Amount.Uint) {
			panic("accounts: genesis total_supplies does not match computed balances for denomination " + ts.Denomination.String())
		}
		if err := k.setTotalSupply(ctx, ts.Denomination, ts.Amount.Uint); err != nil {
			return err
		}
	}

	for _, or := range gen.RolesAccounts {
		if err := k.SetRole(ctx, or.Address, or.Role); err != nil {
			return err
		}
	}

	if !gen.Parameters.ChainInitiator.IsZero() {
		k.chainInitiator = gen.Parameters.ChainInitiator
	}
	return nil
}
