package keeper

import (
	"github.com/HelaNetwork/runtime-sdk-go/moduleapi"
	"github.com/HelaNetwork/runtime-sdk-go/runtimectx"
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
	"github.com/HelaNetwork/runtime-sdk-go/x/accounts/types"
)

func (k *Keeper) queries() []moduleapi.Query {
	return []moduleapi.Query{
		{Name: "accounts.Nonce", Handler: k.queryNonce},
		{Name: "accounts.Role", Handler: k.queryRole},
		{Name: "accounts.Init", Handler: k.queryInit},
		{Name: "accounts.Quorum", Handler: k.queryQuorum},
		{Name: "accounts.RoleAddresses", Handler: k.queryRoleAddresses, Expensive: true},
		{Name: "accounts.ProposalID", Handler: k.queryProposalID},
		{Name: "accounts.ProposalInfo", Handler: k.queryProposalInfo},
		{Name: "accounts.Addresses", Handler: k.queryAddresses, Expensive: true},
		{Name: "accounts.Balances", Handler: k.queryBalances, Expensive: true},
		{Name: "accounts.DenominationInfo", Handler: k.queryDenominationInfo},
		{Name: "accounts.LastBlockFees", Handler: k.queryLastBlockFees},
		{Name: "accounts.LastBlockGas", Handler: k.queryLastBlockGas},
	}
}

func (k *Keeper) queryNonce(ctx *runtimectx.Context, args []byte) ([]byte, error) {
	var q types.AddressQuery
	if err := runtimetypes.UnmarshalCBOR(args, &q); err != nil {
		return nil, runtimetypes.ErrInvalidArgument
	}
	return runtimetypes.MarshalCBOR(types.NonceResult{Nonce: k.GetNonce(ctx, q.Address)})
}

func (k *Keeper) queryRole(ctx *runtimectx.Context, args []byte) ([]byte, error) {
	var q types.AddressQuery
	if err := runtimetypes.UnmarshalCBOR(args, &q); err != nil {
		return nil, runtimetypes.ErrInvalidArgument
	}
	return runtimetypes.MarshalCBOR(types.RoleResult{Role: k.GetRole(ctx, q.Address)})
}

func (k *Keeper) queryInit(ctx *runtimectx.Context, args []byte) ([]byte, error) {
	var q types.AddressQuery
	if err := runtimetypes.UnmarshalCBOR(args, &q); err != nil {
		return nil, runtimetypes.ErrInvalidArgument
	}
	return runtimetypes.MarshalCBOR(types.InitResult{Init: k.GetAccount(ctx, q.Address).Init})
}

func (k *Keeper) queryQuorum(ctx *runtimectx.Context, args []byte) ([]byte, error) {
	var q types.QuorumQuery
	if err := runtimetypes.UnmarshalCBOR(args, &q); err != nil {
		return nil, runtimetypes.ErrInvalidArgument
	}
	pct, err := k.GetQuorum(ctx, q.Action)
	if err != nil {
		return nil, err
	}
	return runtimetypes.MarshalCBOR(types.QuorumResult{Quorum: pct})
}

func (k *Keeper) queryRoleAddresses(ctx *runtimectx.Context, args []byte) ([]byte, error) {
	var q types.RoleAddressesQuery
	if err := runtimetypes.UnmarshalCBOR(args, &q); err != nil {
		return nil, runtimetypes.ErrInvalidArgument
	}
	addrs, err := k.RoleAddresses(ctx, q.Role)
	if err != nil {
		return nil, err
	}
	return runtimetypes.MarshalCBOR(types.RoleAddressesResult{Addresses: addrs})
}

func (k *Keeper) queryProposalID(ctx *runtimectx.Context, _ []byte) ([]byte, error) {
	var cur uint32
	found, err := moduleStore(ctx).Get(types.ProposalIDKey, &cur)
	if err != nil {
		return nil, err
	}
	if !found {
		cur = 0
	}
	return runtimetypes.MarshalCBOR(types.ProposalIDResult{ID: cur})
}

func (k *Keeper) queryProposalInfo(ctx *runtimectx.Context, args []byte) ([]byte, error) {
	var q types.ProposalInfoQuery
	if err := runtimetypes.UnmarshalCBOR(args, &q); err != nil {
		return nil, runtimetypes.ErrInvalidArgument
	}
	p, err := k.GetProposal(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	return runtimetypes.MarshalCBOR(p)
}

func (k *Keeper) queryAddresses(ctx *runtimectx.Context, _ []byte) ([]byte, error) {
	store := moduleStore(ctx)
	prefix := types.PrefixAccounts
	var addrs []runtimetypes.Address
	err := store.Iterate(prefix, prefixRangeEnd(prefix), func(key, _ []byte) (bool, error) {
		if len(key) < len(prefix)+runtimetypes.AddressSize {
			return false, nil
		}
		var addr runtimetypes.Address
		copy(addr[:], key[len(prefix):len(prefix)+runtimetypes.AddressSize])
		addrs = append(addrs, addr)
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return runtimetypes.MarshalCBOR(types.AddressesResult{Addresses: addrs})
}

func (k *Keeper) queryBalances(ctx *runtimectx.Context, args []byte) ([]byte, error) {
	var q types.BalancesQuery
	if err := runtimetypes.UnmarshalCBOR(args, &q); err != nil {
		return nil, runtimetypes.ErrInvalidArgument
	}
	store := moduleStore(ctx)
	prefix := types.BalancePrefixForAddress(q.Address)
	var balances []runtimetypes.BaseUnits
	err := store.Iterate(prefix, prefixRangeEnd(prefix), func(key, _ []byte) (bool, error) {
		denom := runtimetypes.Denomination(key[len(prefix):])
		var amt runtimetypes.Amount128
		found, err := store.Get(key, &amt)
		if err != nil || !found {
			return false, err
		}
		balances = append(balances, runtimetypes.BaseUnits{Amount: amt.Uint, Denomination: denom})
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return runtimetypes.MarshalCBOR(types.BalancesResult{Balances: balances})
}

func (k *Keeper) queryDenominationInfo(ctx *runtimectx.Context, args []byte) ([]byte, error) {
	var q types.DenominationInfoQuery
	if err := runtimetypes.UnmarshalCBOR(args, &q); err != nil {
		return nil, runtimetypes.ErrInvalidArgument
	}
	supply := k.GetTotalSupply(ctx, q.Denomination)
	return runtimetypes.MarshalCBOR(types.DenominationInfoResult{TotalSupply: runtimetypes.Amount128{Uint: supply}})
}

func (k *Keeper) queryLastBlockFees(ctx *runtimectx.Context, _ []byte) ([]byte, error) {
	stats := k.GetLastBlockStats(ctx)
	return runtimetypes.MarshalCBOR(types.LastBlockFeesResult{Fees: stats.Fees})
}

func (k *Keeper) queryLastBlockGas(ctx *runtimectx.Context, _ []byte) ([]byte, error) {
	stats := k.GetLastBlockStats(ctx)
	return runtimetypes.MarshalCBOR(types.LastBlockGasResult{GasUsed: stats.GasUsed})
}
