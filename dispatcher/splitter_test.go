package dispatcher_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/HelaNetwork/runtime-sdk-go/dispatcher"
)

func TestSplitKeepsSharedAddressesInOneShard(t *testing.T) {
	a := testAddr(t, 1)
	b := testAddr(t, 2)
	c := testAddr(t, 3)

	// tx0: a->b, tx1: b->c (chained through b), tx2: fully unrelated. All
	// three are transfers, so group 0 is reserved and the dependency graph
	// is built only across the remaining shards.
	classifications := []dispatcher.TxClassification{
		{Sender: a, Receiver: b, IsPureTransfer: true},
		{Sender: b, Receiver: c, IsPureTransfer: true},
		{Sender: testAddr(t, 9), Receiver: testAddr(t, 10), IsPureTransfer: true},
	}

	shards := dispatcher.Split(classifications, 3)

	shardOf := make(map[int]int)
	for s, group := range shards {
		for _, idx := range group {
			shardOf[idx] = s
		}
	}
	require.Equal(t, shardOf[0], shardOf[1], "tx0 and tx1 share address b and must land in the same shard")
	require.NotZero(t, shardOf[0], "transfers must not land in group 0, which is reserved for non-transfers")

	total := 0
	for _, group := range shards {
		total += len(group)
	}
	require.Equal(t, 3, total)
}

func TestSplitRoutesNonTransfersToGroupZero(t *testing.T) {
	a := testAddr(t, 1)
	b := testAddr(t, 2)

	// tx0 is a non-transfer call (e.g. a governance proposal); tx1 and tx2
	// are transfers sharing address b.
	classifications := []dispatcher.TxClassification{
		{Sender: a, IsPureTransfer: false},
		{Sender: a, Receiver: b, IsPureTransfer: true},
		{Sender: b, IsPureTransfer: true},
	}

	shards := dispatcher.Split(classifications, 3)
	require.Contains(t, shards[0], 0, "the non-transfer transaction must land in group 0")
	require.NotContains(t, shards[0], 1, "a transfer must not land in group 0")
	require.NotContains(t, shards[0], 2, "a transfer must not land in group 0")
}

func TestSplitHandlesEmptyBatch(t *testing.T) {
	shards := dispatcher.Split(nil, 3)
	require.Len(t, shards, 3)
	for _, group := range shards {
		require.Empty(t, group)
	}
}

func TestSplitClampsNumShardsToAtLeastOne(t *testing.T) {
	a := testAddr(t, 1)
	// With only one shard available, even a transfer must join group 0:
	// there is no other shard to partition it into.
	shards := dispatcher.Split([]dispatcher.TxClassification{{Sender: a, IsPureTransfer: true}}, 0)
	require.Len(t, shards, 1)
	require.Equal(t, []int{0}, shards[0])
}
