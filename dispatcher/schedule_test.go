package dispatcher_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/HelaNetwork/runtime-sdk-go/dispatcher"
	"github.com/HelaNetwork/runtime-sdk-go/runtimectx"
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
	accountstypes "github.com/HelaNetwork/runtime-sdk-go/x/accounts/types"
)

func TestScheduleAndExecuteAdmitsValidCandidates(t *testing.T) {
	d, accounts := newDispatcher(t)
	batchCtx := newBatchCtx(t)
	bc := dispatcher.NewBatchCoordinator(d, 64)

	sender := newSigner(t)
	require.NoError(t, accounts.SetBalance(batchCtx, sender.addr, runtimetypes.NativeDenomination, sdkmath.NewUint(1000)))
	recipient := testAddr(t, 0x02)

	raw := transferTx(t, sender, recipient, 10, 0)
	cfg := dispatcher.ScheduleConfig{BatchGasLimit: accountstypes.GasTransfer * 10, MinRemainingGas: 0, MaxTxCount: 10}

	out := bc.ScheduleAndExecute(batchCtx, [][]byte{raw}, cfg)
	require.Len(t, out.AcceptedRaw, 1)
	require.Len(t, out.Results, 1)
	require.True(t, out.Results[0].IsSuccess())
	require.Empty(t, out.RejectHashes)
	require.Equal(t, uint64(1), accounts.GetNonce(batchCtx, sender.addr))
}

func TestScheduleAndExecuteRejectsMalformedCandidate(t *testing.T) {
	d, _ := newDispatcher(t)
	batchCtx := newBatchCtx(t)
	bc := dispatcher.NewBatchCoordinator(d, 64)

	cfg := dispatcher.ScheduleConfig{BatchGasLimit: 1_000_000, MinRemainingGas: 0, MaxTxCount: 10}
	out := bc.ScheduleAndExecute(batchCtx, [][]byte{{0xff, 0xff, 0xff}}, cfg)

	require.Empty(t, out.AcceptedRaw)
	require.Len(t, out.RejectHashes, 1)
	require.Equal(t, dispatcher.InfoCacheKeyOf([]byte{0xff, 0xff, 0xff}), out.RejectHashes[0])
}

func TestScheduleAndExecuteSkipsFutureNonceWithoutRejecting(t *testing.T) {
	d, accounts := newDispatcher(t)
	batchCtx := newBatchCtx(t)
	checkCtx := batchCtx.NewChildContext(runtimectx.ModeCheck)
	bc := dispatcher.NewBatchCoordinator(d, 64)

	sender := newSigner(t)
	require.NoError(t, accounts.SetBalance(checkCtx, sender.addr, runtimetypes.NativeDenomination, sdkmath.NewUint(1000)))
	recipient := testAddr(t, 0x02)

	// Nonce 1 is a future nonce: the account's current nonce is still 0.
	raw := transferTx(t, sender, recipient, 10, 1)
	cfg := dispatcher.ScheduleConfig{BatchGasLimit: accountstypes.GasTransfer * 10, MinRemainingGas: 0, MaxTxCount: 10}

	out := bc.ScheduleAndExecute(checkCtx, [][]byte{raw}, cfg)
	require.Empty(t, out.AcceptedRaw)
	require.Empty(t, out.RejectHashes, "a future nonce must be skipped, not rejected")
}

func TestScheduleAndExecuteStopsAtMaxTxCount(t *testing.T) {
	d, accounts := newDispatcher(t)
	batchCtx := newBatchCtx(t)
	bc := dispatcher.NewBatchCoordinator(d, 64)

	s1, s2 := newSigner(t), newSigner(t)
	require.NoError(t, accounts.SetBalance(batchCtx, s1.addr, runtimetypes.NativeDenomination, sdkmath.NewUint(1000)))
	require.NoError(t, accounts.SetBalance(batchCtx, s2.addr, runtimetypes.NativeDenomination, sdkmath.NewUint(1000)))
	recipient := testAddr(t, 0x02)

	raw1 := transferTx(t, s1, recipient, 10, 0)
	raw2 := transferTx(t, s2, recipient, 10, 0)
	cfg := dispatcher.ScheduleConfig{BatchGasLimit: accountstypes.GasTransfer * 10, MinRemainingGas: 0, MaxTxCount: 1}

	out := bc.ScheduleAndExecute(batchCtx, [][]byte{raw1, raw2}, cfg)
	require.Len(t, out.AcceptedRaw, 1, "scheduling must stop once MaxTxCount candidates are admitted")
}
