// Package keeper implements the accounts module: balances, nonces, roles,
// the governance state machine, and the end-of-block fee disbursement
// (spec.md §4.2, §4.3). It is the single module that owns both the
// "accounts" and "governance" surfaces spec.md groups together, sharing one
// storage namespace (spec.md §6).
package keeper

import (
	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"

	"github.com/HelaNetwork/runtime-sdk-go/feeaccumulator"
	"github.com/HelaNetwork/runtime-sdk-go/runtimectx"
	"github.com/HelaNetwork/runtime-sdk-go/storage"
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
	"github.com/HelaNetwork/runtime-sdk-go/x/accounts/types"
)

// Keeper exposes the accounts module's storage operations. It holds no
// store reference directly (the backing overlay changes with every nested
// context); every method is handed the context it should operate within,
// matching the teacher's keeper-holds-the-key / ctx-carries-the-store split
// (x/vm/keeper.Keeper holding storeKey, not a store).
type Keeper struct {
	logger         log.Logger
	chainInitiator runtimetypes.Address
}

// NewKeeper constructs the accounts keeper.
func NewKeeper(logger log.Logger, chainInitiator runtimetypes.Address) *Keeper {
	return &Keeper{
		logger:         logger.With("module", types.ModuleName),
		chainInitiator: chainInitiator,
	}
}

// ChainInitiator returns the configured chain initiator address (spec.md
// §4.2 "Initialization").
func (k *Keeper) ChainInitiator() runtimetypes.Address {
	return k.chainInitiator
}

// moduleStore scopes ctx's store to this module's namespace, per spec.md
// §6 "Storage namespace" (every key below this point uses the single-byte
// tags 0x01..0x05 local to the accounts module).
func moduleStore(ctx *runtimectx.Context) storage.Store {
	return ctx.Store().Prefix([]byte(types.ModuleName + "/"))
}

// GetAccount returns addr's account record, or the implicit default
// account if addr has never been referenced (spec.md §3 "Created
// implicitly on first reference; default role is User").
func (k *Keeper) GetAccount(ctx *runtimectx.Context, addr runtimetypes.Address) types.Account {
	var acct types.Account
	found, err := moduleStore(ctx).Get(types.AccountKey(addr), &acct)
	if err != nil || !found {
		return types.NewDefaultAccount()
	}
	return acct
}

// SetAccount persists addr's account record.
func (k *Keeper) SetAccount(ctx *runtimectx.Context, addr runtimetypes.Address, acct types.Account) error {
	return moduleStore(ctx).Insert(types.AccountKey(addr), acct)
}

// GetNonce returns addr's current nonce.
func (k *Keeper) GetNonce(ctx *runtimectx.Context, addr runtimetypes.Address) uint64 {
	return k.GetAccount(ctx, addr).Nonce
}

// IncrementNonce advances addr's nonce by one, per spec.md §4.3 "Nonce
// update".
func (k *Keeper) IncrementNonce(ctx *runtimectx.Context, addr runtimetypes.Address) error {
	acct := k.GetAccount(ctx, addr)
	acct.Nonce++
	return k.SetAccount(ctx, addr, acct)
}

// GetRole returns addr's current role (User if the account does not exist).
func (k *Keeper) GetRole(ctx *runtimectx.Context, addr runtimetypes.Address) runtimetypes.Role {
	return k.GetAccount(ctx, addr).Role
}

// SetRole reassigns addr's role, removing the prior role's index entry
// before writing the new one, per invariant I5 ("set_role removes the
// prior role index entries before writing the new one").
func (k *Keeper) SetRole(ctx *runtimectx.Context, addr runtimetypes.Address, role runtimetypes.Role) error {
	acct := k.GetAccount(ctx, addr)
	if acct.Role != role {
		moduleStore(ctx).Delete(types.RoleIndexKey(acct.Role, addr))
	}
	acct.Role = role
	if err := k.SetAccount(ctx, addr, acct); err != nil {
		return err
	}
	return moduleStore(ctx).Insert(types.RoleIndexKey(role, addr), true)
}

// RoleAddresses enumerates every address currently holding role, for vote
// tallying (spec.md §4.2 "Let N = count of addresses currently holding the
// voter role for this action") and the RoleAddresses query.
func (k *Keeper) RoleAddresses(ctx *runtimectx.Context, role runtimetypes.Role) ([]runtimetypes.Address, error) {
	prefix := types.RoleIndexPrefix(role)
	end := prefixRangeEnd(prefix)
	var addrs []runtimetypes.Address
	err := moduleStore(ctx).Iterate(prefix, end, func(key, _ []byte) (bool, error) {
		if len(key) < len(prefix)+runtimetypes.AddressSize {
			return false, nil
		}
		var addr runtimetypes.Address
		copy(addr[:], key[len(prefix):len(prefix)+runtimetypes.AddressSize])
		addrs = append(addrs, addr)
		return false, nil
	})
	return addrs, err
}

// RoleCount returns the number of addresses holding role, used as N in the
// tally threshold computation.
func (k *Keeper) RoleCount(ctx *runtimectx.Context, role runtimetypes.Role) (int, error) {
	addrs, err := k.RoleAddresses(ctx, role)
	if err != nil {
		return 0, err
	}
	return len(addrs), nil
}

// GetBalance returns addr's balance of denom.
func (k *Keeper) GetBalance(ctx *runtimectx.Context, addr runtimetypes.Address, denom runtimetypes.Denomination) sdkmath.Uint {
	var amt runtimetypes.Amount128
	found, err := moduleStore(ctx).Get(types.BalanceKey(addr, denom), &amt)
	if err != nil || !found {
		return sdkmath.ZeroUint()
	}
	return amt.Uint
}

// SetBalance writes addr's balance of denom.
func (k *Keeper) SetBalance(ctx *runtimectx.Context, addr runtimetypes.Address, denom runtimetypes.Denomination, amount sdkmath.Uint) error {
	return moduleStore(ctx).Insert(types.BalanceKey(addr, denom), runtimetypes.Amount128{Uint: amount})
}

// AddAmount credits addr's balance of denom by amount.
func (k *Keeper) AddAmount(ctx *runtimectx.Context, addr runtimetypes.Address, base runtimetypes.BaseUnits) error {
	cur := k.GetBalance(ctx, addr, base.Denomination)
	return k.SetBalance(ctx, addr, base.Denomination, cur.Add(base.Amount))
}

// SubAmount debits addr's balance of denom by amount, failing if the
// balance is insufficient.
func (k *Keeper) SubAmount(ctx *runtimectx.Context, addr runtimetypes.Address, base runtimetypes.BaseUnits) error {
	cur := k.GetBalance(ctx, addr, base.Denomination)
	if cur.LT(base.Amount) {
		return types.ErrInsufficientFunds
	}
	return k.SetBalance(ctx, addr, base.Denomination, cur.Sub(base.Amount))
}

// GetTotalSupply returns the recorded total supply of denom.
func (k *Keeper) GetTotalSupply(ctx *runtimectx.Context, denom runtimetypes.Denomination) sdkmath.Uint {
	var amt runtimetypes.Amount128
	found, err := moduleStore(ctx).Get(types.TotalSupplyKey(denom), &amt)
	if err != nil || !found {
		return sdkmath.ZeroUint()
	}
	return amt.Uint
}

func (k *Keeper) setTotalSupply(ctx *runtimectx.Context, denom runtimetypes.Denomination, amount sdkmath.Uint) error {
	return moduleStore(ctx).Insert(types.TotalSupplyKey(denom), runtimetypes.Amount128{Uint: amount})
}

// IncTotalSupply increases denom's recorded total supply by amount.
func (k *Keeper) IncTotalSupply(ctx *runtimectx.Context, base runtimetypes.BaseUnits) error {
	cur := k.GetTotalSupply(ctx, base.Denomination)
	return k.setTotalSupply(ctx, base.Denomination, cur.Add(base.Amount))
}

// DecTotalSupply decreases denom's recorded total supply by amount.
func (k *Keeper) DecTotalSupply(ctx *runtimectx.Context, base runtimetypes.BaseUnits) error {
	cur := k.GetTotalSupply(ctx, base.Denomination)
	if cur.LT(base.Amount) {
		return types.ErrInsufficientFunds
	}
	return k.setTotalSupply(ctx, base.Denomination, cur.Sub(base.Amount))
}

// SetLastBlockStats overwrites the persisted last-block fee/gas snapshot,
// per spec.md §6. The dispatcher's last shard calls this once per round
// after running every module's EndBlock, matching the way
// blockhandler.Keeper persists its own rolling block-hash window.
func (k *Keeper) SetLastBlockStats(ctx *runtimectx.Context, stats types.LastBlockStats) error {
	return moduleStore(ctx).Insert(types.LastBlockStatsKey, stats)
}

// GetLastBlockStats returns the most recently persisted block's fees and
// gas used, or the zero value if no round has completed yet.
func (k *Keeper) GetLastBlockStats(ctx *runtimectx.Context) types.LastBlockStats {
	var stats types.LastBlockStats
	if found, err := moduleStore(ctx).Get(types.LastBlockStatsKey, &stats); err != nil || !found {
		return types.LastBlockStats{}
	}
	return stats
}

// prefixRangeEnd returns the lexicographically smallest key greater than
// every key with the given prefix, for use as an Iterate end bound.
func prefixRangeEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	// prefix is all 0xff bytes: no finite upper bound needed.
	return nil
}

// FeeAccumulatorAddress exposes the fixed module-owned accumulator address
// for the dispatcher's authentication/refund path (spec.md §4.1).
func FeeAccumulatorAddress() runtimetypes.Address {
	return types.AccumulatorAddress
}

// NewFeeAccumulator returns a fresh per-context pending-fee ledger.
func NewFeeAccumulator() *feeaccumulator.Accumulator {
	return feeaccumulator.New()
}
