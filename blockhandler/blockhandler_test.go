package blockhandler_test

import (
	"testing"

	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/HelaNetwork/runtime-sdk-go/blockhandler"
	"github.com/HelaNetwork/runtime-sdk-go/runtimectx"
	"github.com/HelaNetwork/runtime-sdk-go/storage/memkv"
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
	accountskeeper "github.com/HelaNetwork/runtime-sdk-go/x/accounts/keeper"
)

func testAddr(t *testing.T, b byte) runtimetypes.Address {
	t.Helper()
	payload := make([]byte, 20)
	payload[19] = b
	a, err := runtimetypes.NewAddress(runtimetypes.AddressVersion, payload)
	require.NoError(t, err)
	return a
}

func newCtx(t *testing.T, round uint64) *runtimectx.Context {
	t.Helper()
	return runtimectx.NewBatchContext(memkv.New(), round, log.NewNopLogger(), 1)
}

func TestEndBlockStoresAndEvictsBlockHashWindow(t *testing.T) {
	accounts := accountskeeper.NewKeeper(log.NewNopLogger(), testAddr(t, 0xaa))
	k := blockhandler.NewKeeper(log.NewNopLogger(), accounts, 3)

	// Rounds 0..3 each insert a hash; round 3's insertion evicts round 0's
	// (window size 3: round 3 - 3 == round 0).
	// All rounds share one backing store; each round's writes are committed
	// so the next round (and the final lookup) sees them.
	kv := memkv.New()
	for round := uint64(0); round <= 3; round++ {
		ctx := runtimectx.NewBatchContext(kv, round, log.NewNopLogger(), 1)
		require.NoError(t, k.EndBlock(ctx, []byte{byte(round)}, nil))
		ctx.Commit()
	}

	ctx := runtimectx.NewBatchContext(kv, 3, log.NewNopLogger(), 1)
	_, found := k.BlockHash(ctx, 0)
	require.False(t, found, "round 0's hash must be evicted once round 3 is inserted")

	hash, found := k.BlockHash(ctx, 3)
	require.True(t, found)
	require.Equal(t, []byte{3}, hash)
}

func TestEndBlockDisbursesFeeAccumulator(t *testing.T) {
	accounts := accountskeeper.NewKeeper(log.NewNopLogger(), testAddr(t, 0xaa))
	k := blockhandler.NewKeeper(log.NewNopLogger(), accounts, 256)
	ctx := newCtx(t, 1)

	accAddr := accountskeeper.FeeAccumulatorAddress()
	require.NoError(t, accounts.SetBalance(ctx, accAddr, runtimetypes.NativeDenomination, sdkmath.NewUint(1000)))

	goodEntity := testAddr(t, 0x10)
	require.NoError(t, k.EndBlock(ctx, []byte("hash"), []runtimetypes.Address{goodEntity}))

	require.False(t, accounts.GetBalance(ctx, accountskeeper.CommonPoolAddress, runtimetypes.NativeDenomination).IsZero())
	require.False(t, accounts.GetBalance(ctx, goodEntity, runtimetypes.NativeDenomination).IsZero())
}

func TestHandleLastRoundMessagesDispatchesAndConsumes(t *testing.T) {
	accounts := accountskeeper.NewKeeper(log.NewNopLogger(), testAddr(t, 0xaa))
	k := blockhandler.NewKeeper(log.NewNopLogger(), accounts, 256)
	ctx := newCtx(t, 1)

	invoked := false
	k.RegisterMessageHandler("withdraw.reserve", func(ctx *runtimectx.Context, payload []byte, event runtimetypes.MessageEvent) error {
		invoked = true
		require.Equal(t, []byte("payload"), payload)
		return nil
	})

	require.NoError(t, k.StashHooks(ctx, []runtimetypes.MessageHook{
		{HookName: "withdraw.reserve", Payload: []byte("payload")},
	}))

	err := k.HandleLastRoundMessages(ctx, []runtimetypes.MessageEvent{{Index: 0, Code: 0}})
	require.NoError(t, err)
	require.True(t, invoked)
}

func TestHandleLastRoundMessagesReportsUnconsumedHooks(t *testing.T) {
	accounts := accountskeeper.NewKeeper(log.NewNopLogger(), testAddr(t, 0xaa))
	k := blockhandler.NewKeeper(log.NewNopLogger(), accounts, 256)
	ctx := newCtx(t, 1)

	require.NoError(t, k.StashHooks(ctx, []runtimetypes.MessageHook{
		{HookName: "withdraw.reserve", Payload: []byte("payload")},
	}))

	// No event reports index 0's result, so the stashed hook is never
	// looked up or removed.
	err := k.HandleLastRoundMessages(ctx, nil)
	require.ErrorIs(t, err, runtimetypes.ErrMessageHandlerNotInvoked)
}
