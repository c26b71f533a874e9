package dispatcher_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/HelaNetwork/runtime-sdk-go/dispatcher"
)

func TestInfoCacheClassifyOnlyComputesOnce(t *testing.T) {
	ic := dispatcher.NewInfoCache(8)
	calls := 0
	classify := func(raw []byte) dispatcher.TxClassification {
		calls++
		return dispatcher.TxClassification{Sender: testAddr(t, byte(len(raw)))}
	}

	raw := []byte("same transaction bytes")
	first := ic.Classify(raw, classify)
	second := ic.Classify(raw, classify)

	require.Equal(t, first, second)
	require.Equal(t, 1, calls, "a cached key must not re-invoke the classify function")
}

func TestInfoCacheDistinguishesDifferentTransactions(t *testing.T) {
	ic := dispatcher.NewInfoCache(8)
	classify := func(raw []byte) dispatcher.TxClassification {
		return dispatcher.TxClassification{Sender: testAddr(t, raw[0])}
	}

	a := ic.Classify([]byte{1, 1, 1}, classify)
	b := ic.Classify([]byte{2, 2, 2}, classify)
	require.NotEqual(t, a.Sender, b.Sender)
}

func TestInfoCacheEvictsUnderPressure(t *testing.T) {
	ic := dispatcher.NewInfoCache(1)
	classify := func(raw []byte) dispatcher.TxClassification {
		return dispatcher.TxClassification{Sender: testAddr(t, raw[0])}
	}

	ic.Classify([]byte{1}, classify)
	ic.Classify([]byte{2}, classify) // evicts the entry for {1}

	_, ok := ic.Get(dispatcher.InfoCacheKeyOf([]byte{1}))
	require.False(t, ok)
	_, ok = ic.Get(dispatcher.InfoCacheKeyOf([]byte{2}))
	require.True(t, ok)
}
