package dispatcher_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/HelaNetwork/runtime-sdk-go/dispatcher"
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
	accountskeeper "github.com/HelaNetwork/runtime-sdk-go/x/accounts/keeper"
	accountstypes "github.com/HelaNetwork/runtime-sdk-go/x/accounts/types"
)

func TestBatchCoordinatorRunsShardsAndDisbursesOnLastShard(t *testing.T) {
	d, accounts := newDispatcher(t)
	batchCtx := newBatchCtx(t)
	bc := dispatcher.NewBatchCoordinator(d, 64)

	sender := newSigner(t)
	require.NoError(t, accounts.SetBalance(batchCtx, sender.addr, runtimetypes.NativeDenomination, sdkmath.NewUint(100_000)))
	recipient := testAddr(t, 0x05)

	fee := runtimetypes.Fee{GasPrice: runtimetypes.NewAmount128(1), GasLimit: accountstypes.GasTransfer}
	params := accountstypes.TransferParams{To: recipient, Amount: runtimetypes.NewBaseUnits(10, runtimetypes.NativeDenomination)}
	body, err := runtimetypes.MarshalCBOR(params)
	require.NoError(t, err)
	raw := sender.sign(t, runtimetypes.Call{Method: "accounts.Transfer", Body: body}, 0, fee)

	shards := bc.ClassifyAndSplit(batchCtx, [][]byte{raw}, 2)
	require.Len(t, shards, 2)

	totalResults := 0
	for s, txs := range shards {
		result, err := bc.RunShard(batchCtx, s, 2, txs)
		require.NoError(t, err)
		totalResults += len(result.Results)
	}
	require.Equal(t, 1, totalResults)

	// The fee (GasTransfer units at price 1) was fully spent (gas_used ==
	// GasCost == GasLimit, so no refund) and disbursed at end-of-block: 10%
	// to the common pool, the rest with no good-compute entities stays at
	// the accumulator address.
	accAddr := accountskeeper.FeeAccumulatorAddress()
	remaining := accounts.GetBalance(batchCtx, accAddr, runtimetypes.NativeDenomination)
	commonPool := accounts.GetBalance(batchCtx, accountskeeper.CommonPoolAddress, runtimetypes.NativeDenomination)
	require.False(t, commonPool.IsZero())
	require.Equal(t, sdkmath.NewUint(accountstypes.GasTransfer), remaining.Add(commonPool))
}

func TestBatchCoordinatorClassifyAndSplitGroupsSharedRecipient(t *testing.T) {
	d, accounts := newDispatcher(t)
	batchCtx := newBatchCtx(t)
	bc := dispatcher.NewBatchCoordinator(d, 64)

	s1, s2 := newSigner(t), newSigner(t)
	require.NoError(t, accounts.SetBalance(batchCtx, s1.addr, runtimetypes.NativeDenomination, sdkmath.NewUint(1000)))
	require.NoError(t, accounts.SetBalance(batchCtx, s2.addr, runtimetypes.NativeDenomination, sdkmath.NewUint(1000)))
	shared := testAddr(t, 0x07)

	mkRaw := func(signer testSigner) []byte {
		params := accountstypes.TransferParams{To: shared, Amount: runtimetypes.NewBaseUnits(1, runtimetypes.NativeDenomination)}
		body, err := runtimetypes.MarshalCBOR(params)
		require.NoError(t, err)
		return signer.sign(t, runtimetypes.Call{Method: "accounts.Transfer", Body: body}, 0, noFee())
	}

	rawTxs := [][]byte{mkRaw(s1), mkRaw(s2)}
	shards := bc.ClassifyAndSplit(batchCtx, rawTxs, 4)

	shardOf := make(map[int]int)
	for s, group := range shards {
		for _, tx := range group {
			shardOf[tx.Index] = s
		}
	}
	require.Equal(t, shardOf[0], shardOf[1], "both transactions touch the shared recipient and must land in one shard")
}
