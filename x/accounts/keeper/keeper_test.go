package keeper_test

import (
	"testing"

	"cosmossdk.io/log"
	"github.com/stretchr/testify/require"

	"github.com/HelaNetwork/runtime-sdk-go/runtimectx"
	"github.com/HelaNetwork/runtime-sdk-go/storage/memkv"
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
	"github.com/HelaNetwork/runtime-sdk-go/x/accounts/keeper"
	"github.com/HelaNetwork/runtime-sdk-go/x/accounts/types"
)

func newTestContext(t *testing.T) *runtimectx.Context {
	t.Helper()
	return runtimectx.NewBatchContext(memkv.New(), 1, log.NewNopLogger(), 1)
}

func addr(t *testing.T, b byte) runtimetypes.Address {
	t.Helper()
	payload := make([]byte, 20)
	payload[19] = b
	a, err := runtimetypes.NewAddress(runtimetypes.AddressVersion, payload)
	require.NoError(t, err)
	return a
}

// Scenario 1 of spec.md §8: "Mint via proposal." spec.md §8's own boundary
// example pins the ceiling formula's behavior at N=3: Q=67% needs 3 Yes
// votes to pass, Q=66% needs only 2 ("N=3, Q=67% → threshold 3; Q=66% →
// threshold 2"). This scenario exercises the two-Yes-votes-passes case, so
// it uses 66% to stay consistent with that worked boundary example.
func TestMintViaProposal(t *testing.T) {
	ctx := newTestContext(t)
	k := keeper.NewKeeper(log.NewNopLogger(), addr(t, 0xff))

	admin := addr(t, 1)
	proposer := addr(t, 2)
	v1, v2, v3 := addr(t, 3), addr(t, 4), addr(t, 5)
	target := addr(t, 6)

	require.NoError(t, k.SetRole(ctx, admin, runtimetypes.RoleAdmin))
	require.NoError(t, k.SetRole(ctx, proposer, runtimetypes.RoleMintProposer))
	require.NoError(t, k.SetRole(ctx, v1, runtimetypes.RoleMintVoter))
	require.NoError(t, k.SetRole(ctx, v2, runtimetypes.RoleMintVoter))
	require.NoError(t, k.SetRole(ctx, v3, runtimetypes.RoleMintVoter))
	require.NoError(t, k.SetRole(ctx, target, runtimetypes.RoleWhitelistedUser))
	require.NoError(t, k.SetQuorum(ctx, runtimetypes.ActionMint, 66))

	amount := runtimetypes.NewBaseUnits(1000, runtimetypes.NativeDenomination)
	id, err := k.Propose(ctx, proposer, runtimetypes.ProposalContent{
		Action: runtimetypes.ActionMint,
		Data: runtimetypes.ProposalData{
			Address: &target,
			Amount:  &amount,
		},
	})
	require.NoError(t, err)

	require.NoError(t, k.VoteST(ctx, v1, id, runtimetypes.VoteYes))
	p, err := k.GetProposal(ctx, id)
	require.NoError(t, err)
	require.Equal(t, runtimetypes.ProposalActive, p.State)

	require.NoError(t, k.VoteST(ctx, v2, id, runtimetypes.VoteYes))

	p, err = k.GetProposal(ctx, id)
	require.NoError(t, err)
	require.Equal(t, runtimetypes.ProposalPassed, p.State)
	require.Nil(t, p.VoteRecord)

	bal := k.GetBalance(ctx, target, runtimetypes.NativeDenomination)
	require.True(t, bal.Equal(amount.Amount))
	require.True(t, k.GetTotalSupply(ctx, runtimetypes.NativeDenomination).Equal(amount.Amount))
}

// Scenario 2: "Rejected blacklist" — target has role MintVoter, not User.
func TestBlacklistInvalidTarget(t *testing.T) {
	ctx := newTestContext(t)
	k := keeper.NewKeeper(log.NewNopLogger(), addr(t, 0xff))

	proposer := addr(t, 1)
	target := addr(t, 2)
	require.NoError(t, k.SetRole(ctx, proposer, runtimetypes.RoleBlacklistProposer))
	require.NoError(t, k.SetRole(ctx, target, runtimetypes.RoleMintVoter))

	_, err := k.Propose(ctx, proposer, runtimetypes.ProposalContent{
		Action: runtimetypes.ActionBlacklist,
		Data:   runtimetypes.ProposalData{Address: &target},
	})
	require.ErrorIs(t, err, runtimetypes.ErrInvalidArgument)
}

// Scenario 3: "Double vote" — voting Yes twice is rejected and the tally
// does not change.
func TestDoubleVoteRejected(t *testing.T) {
	ctx := newTestContext(t)
	k := keeper.NewKeeper(log.NewNopLogger(), addr(t, 0xff))

	proposer := addr(t, 1)
	v1, v2, v3 := addr(t, 2), addr(t, 4), addr(t, 5)
	target := addr(t, 3)
	require.NoError(t, k.SetRole(ctx, proposer, runtimetypes.RoleMintProposer))
	require.NoError(t, k.SetRole(ctx, v1, runtimetypes.RoleMintVoter))
	require.NoError(t, k.SetRole(ctx, v2, runtimetypes.RoleMintVoter))
	require.NoError(t, k.SetRole(ctx, v3, runtimetypes.RoleMintVoter))
	require.NoError(t, k.SetRole(ctx, target, runtimetypes.RoleWhitelistedUser))
	// Three voters at 67%: one Yes vote neither passes (threshold 3) nor
	// rejects (No threshold 1), so the proposal is still Active for the
	// second vote.
	require.NoError(t, k.SetQuorum(ctx, runtimetypes.ActionMint, 67))

	amount := runtimetypes.NewBaseUnits(1, runtimetypes.NativeDenomination)
	id, err := k.Propose(ctx, proposer, runtimetypes.ProposalContent{
		Action: runtimetypes.ActionMint,
		Data:   runtimetypes.ProposalData{Address: &target, Amount: &amount},
	})
	require.NoError(t, err)

	require.NoError(t, k.VoteST(ctx, v1, id, runtimetypes.VoteYes))
	err = k.VoteST(ctx, v1, id, runtimetypes.VoteYes)
	require.ErrorIs(t, err, runtimetypes.ErrVoteDup)

	p, err := k.GetProposal(ctx, id)
	require.NoError(t, err)
	require.Equal(t, uint16(1), p.Results[runtimetypes.VoteYes])
}

// spec.md §8 "Boundary behaviors": N=3, Q=67% → threshold 3; Q=66% → 2.
func TestCeilDivThresholds(t *testing.T) {
	require.Equal(t, uint64(3), runtimetypes.CeilDiv(3, 67))
	require.Equal(t, uint64(2), runtimetypes.CeilDiv(3, 66))
}

func TestTransferAtomicity(t *testing.T) {
	ctx := newTestContext(t)
	k := keeper.NewKeeper(log.NewNopLogger(), addr(t, 0xff))
	from, to := addr(t, 1), addr(t, 2)

	amount := runtimetypes.NewBaseUnits(500, runtimetypes.NativeDenomination)
	require.NoError(t, k.AddAmount(ctx, from, amount))

	require.NoError(t, k.Transfer(ctx, from, to, amount))
	require.True(t, k.GetBalance(ctx, from, runtimetypes.NativeDenomination).IsZero())
	require.True(t, k.GetBalance(ctx, to, runtimetypes.NativeDenomination).Equal(amount.Amount))

	// insufficient balance rejects cleanly
	err := k.Transfer(ctx, from, to, amount)
	require.ErrorIs(t, err, types.ErrInsufficientFunds)
}

func TestSetRoleMaintainsIndex(t *testing.T) {
	ctx := newTestContext(t)
	k := keeper.NewKeeper(log.NewNopLogger(), addr(t, 0xff))
	a := addr(t, 1)

	require.NoError(t, k.SetRole(ctx, a, runtimetypes.RoleMintVoter))
	addrs, err := k.RoleAddresses(ctx, runtimetypes.RoleMintVoter)
	require.NoError(t, err)
	require.Len(t, addrs, 1)

	require.NoError(t, k.SetRole(ctx, a, runtimetypes.RoleBurnVoter))
	addrs, err = k.RoleAddresses(ctx, runtimetypes.RoleMintVoter)
	require.NoError(t, err)
	require.Empty(t, addrs)

	addrs, err = k.RoleAddresses(ctx, runtimetypes.RoleBurnVoter)
	require.NoError(t, err)
	require.Len(t, addrs, 1)
}

// Scenario 5: "Fee disbursement."
func TestDisburse(t *testing.T) {
	ctx := newTestContext(t)
	k := keeper.NewKeeper(log.NewNopLogger(), addr(t, 0xff))

	acc := keeper.FeeAccumulatorAddress()
	require.NoError(t, k.AddAmount(ctx, acc, runtimetypes.NewBaseUnits(1_000_000, runtimetypes.NativeDenomination)))

	entities := []runtimetypes.Address{addr(t, 1), addr(t, 2), addr(t, 3)}
	require.NoError(t, k.Disburse(ctx, entities))

	pool := k.GetBalance(ctx, keeper.CommonPoolAddress, runtimetypes.NativeDenomination)
	require.Equal(t, uint64(100_000), pool.Uint64())
	for _, e := range entities {
		require.Equal(t, uint64(300_000), k.GetBalance(ctx, e, runtimetypes.NativeDenomination).Uint64())
	}
	require.True(t, k.GetBalance(ctx, acc, runtimetypes.NativeDenomination).IsZero())
}

func TestSupplyInvariant(t *testing.T) {
	ctx := newTestContext(t)
	k := keeper.NewKeeper(log.NewNopLogger(), addr(t, 0xff))
	to := addr(t, 1)

	require.NoError(t, k.Mint(ctx, to, runtimetypes.NewBaseUnits(100, runtimetypes.NativeDenomination)))
	require.NoError(t, k.CheckSupplyInvariant(ctx))
}

func TestInitOwnersOnlyChainInitiatorOnce(t *testing.T) {
	ctx := newTestContext(t)
	initiator := addr(t, 0xff)
	k := keeper.NewKeeper(log.NewNopLogger(), initiator)
	other := addr(t, 1)
	target := addr(t, 2)

	err := k.InitOwners(ctx, other, []types.OwnerRole{{Address: target, Role: runtimetypes.RoleAdmin}})
	require.ErrorIs(t, err, types.ErrNotChainInitiator)

	require.NoError(t, k.InitOwners(ctx, initiator, []types.OwnerRole{{Address: target, Role: runtimetypes.RoleAdmin}}))
	require.Equal(t, runtimetypes.RoleAdmin, k.GetRole(ctx, target))

	err = k.InitOwners(ctx, initiator, []types.OwnerRole{{Address: target, Role: runtimetypes.RoleUser}})
	require.ErrorIs(t, err, types.ErrAlreadyInitialized)
}
