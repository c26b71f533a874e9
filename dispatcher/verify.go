package dispatcher

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/HelaNetwork/runtime-sdk-go/runtimectx"
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
)

// classifyAll classifies every raw transaction in the batch. Transactions
// using the built-in ed25519 scheme classify independently of one another
// (decoding and signature verification touch no account state) and run
// concurrently across worker goroutines; a transaction naming a
// module-registered auth scheme falls back to the sequential path below
// it, since a scheme handler is free to read ctx. This mirrors spec.md
// §4.1's "parallel batch splitter" and §4.1's scheduling note that
// independent work may be distributed across OS threads.
func (bc *BatchCoordinator) classifyAll(checkCtx *runtimectx.Context, rawTxs [][]byte) []TxClassification {
	out := make([]TxClassification, len(rawTxs))
	var sequential []int

	g, _ := errgroup.WithContext(context.Background())
	for idx, raw := range rawTxs {
		var tx runtimetypes.Transaction
		if err := runtimetypes.UnmarshalCBOR(raw, &tx); err != nil || tx.AuthInfo.Proof.SchemeName != "" {
			sequential = append(sequential, idx)
			continue
		}
		idx, raw := idx, raw
		g.Go(func() error {
			out[idx] = bc.infoCache.Classify(raw, func(raw []byte) TxClassification {
				return bc.d.Classify(checkCtx, raw)
			})
			return nil
		})
	}
	_ = g.Wait()

	for _, idx := range sequential {
		raw := rawTxs[idx]
		out[idx] = bc.infoCache.Classify(raw, func(raw []byte) TxClassification {
			return bc.d.Classify(checkCtx, raw)
		})
	}
	return out
}
