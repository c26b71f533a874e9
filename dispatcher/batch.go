package dispatcher

import (
	"sync"

	sdkmath "cosmossdk.io/math"

	"github.com/HelaNetwork/runtime-sdk-go/feeaccumulator"
	"github.com/HelaNetwork/runtime-sdk-go/runtimectx"
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
	accountstypes "github.com/HelaNetwork/runtime-sdk-go/x/accounts/types"
)

// BatchCoordinator owns the state shared across a batch's shards: the
// INFO_CACHE classification cache, the CTX_FEE_ACCUM list non-final shards
// publish their pending fees to, and MSG_HANDLERS, the message hooks
// collected across every shard for the next round's result matching
// (spec.md §4.1 "Batch execution"). One BatchCoordinator is built per node
// and reused across rounds; its mutex only guards the fields shards from
// the same round touch concurrently.
type BatchCoordinator struct {
	d *Dispatcher

	infoCache *InfoCache

	mu           sync.Mutex
	feeSnapshots []map[runtimetypes.Denomination]sdkmath.Uint
	gasUsed      []uint64
	msgHandlers  []runtimetypes.MessageHook
}

// NewBatchCoordinator builds a coordinator wrapping d's registered modules,
// with an INFO_CACHE sized for infoCacheSize recently seen transactions.
func NewBatchCoordinator(d *Dispatcher, infoCacheSize int) *BatchCoordinator {
	return &BatchCoordinator{
		d:         d,
		infoCache: NewInfoCache(infoCacheSize),
	}
}

// ShardResult is one shard's outcome: the per-transaction results in
// original batch order, and the shard's own pending fee accumulator.
type ShardResult struct {
	Results []runtimetypes.CallResult
	Accum   *feeaccumulator.Accumulator
}

// RunShard executes one shard's transactions against batchCtx's overlay.
// Shard 0 runs BeginBlock on every module before any transaction; the last
// shard aggregates every shard's published fee snapshot and runs EndBlock
// after its own transactions, per spec.md §4.1 "Batch execution": "Shard 0
// of a distributed execution pass runs begin_block; the last shard runs
// end_block after aggregating fee-accumulator contributions published by
// earlier shards via the shared list CTX_FEE_ACCUM."
//
// txs holds (originalIndex, raw bytes) pairs for this shard, in the order
// the splitter assigned them.
func (bc *BatchCoordinator) RunShard(batchCtx *runtimectx.Context, shardIndex, numShards int, txs []IndexedTx) (ShardResult, error) {
	if shardIndex == 0 {
		for _, m := range bc.d.Modules() {
			if m.BeginBlock != nil {
				if err := m.BeginBlock(batchCtx); err != nil {
					return ShardResult{}, err
				}
			}
		}
	}

	accum := feeaccumulator.New()
	results := make([]runtimetypes.CallResult, len(txs))
	var shardGas uint64
	for i, tx := range txs {
		results[i] = bc.d.DispatchTx(batchCtx, tx.Index, tx.Raw, accum)
		if results[i].IsSuccess() && !batchCtx.IsCheckOnly() {
			if cost, ok := bc.d.declaredGasCost(tx.Raw); ok {
				shardGas += cost
			}
		}
	}

	bc.mu.Lock()
	bc.msgHandlers = append(bc.msgHandlers, batchCtx.MessageHooks()...)
	isLast := shardIndex == numShards-1
	if !isLast {
		bc.feeSnapshots = append(bc.feeSnapshots, accum.Snapshot())
		bc.gasUsed = append(bc.gasUsed, shardGas)
		bc.mu.Unlock()
		return ShardResult{Results: results, Accum: accum}, nil
	}
	snapshots := bc.feeSnapshots
	bc.feeSnapshots = nil
	gasSnapshots := bc.gasUsed
	bc.gasUsed = nil
	bc.mu.Unlock()

	for _, snap := range snapshots {
		accum.Merge(feeaccumulator.FromSnapshot(snap))
	}
	totalGas := shardGas
	for _, g := range gasSnapshots {
		totalGas += g
	}
	for _, m := range bc.d.Modules() {
		if m.EndBlock != nil {
			if err := m.EndBlock(batchCtx); err != nil {
				return ShardResult{}, err
			}
		}
	}

	// Persists this round's aggregate fees and gas for the following
	// round's accounts.LastBlockFees/accounts.LastBlockGas queries, the
	// same way blockhandler.Keeper.EndBlock persists its rolling block-hash
	// window after every round. Skipped for a check-only round: it never
	// reaches a committed block and must not overwrite the real figures
	// from the last one that did.
	if !batchCtx.IsCheckOnly() {
		finalSnapshot := accum.Snapshot()
		fees := make([]runtimetypes.BaseUnits, 0, len(finalSnapshot))
		for denom, amt := range finalSnapshot {
			fees = append(fees, runtimetypes.BaseUnits{Amount: amt, Denomination: denom})
		}
		if err := bc.d.accounts.SetLastBlockStats(batchCtx, accountstypes.LastBlockStats{Fees: fees, GasUsed: totalGas}); err != nil {
			return ShardResult{}, err
		}
	}

	return ShardResult{Results: results, Accum: accum}, nil
}

// IndexedTx pairs a transaction's position in the original batch with its
// raw bytes, the unit the splitter partitions into shards.
type IndexedTx struct {
	Index int
	Raw   []byte
}

// TakeMessageHandlers drains and returns every message hook collected
// across this round's shards, for persistence under the reserved
// last-round-results key (spec.md §4.1 "the last shard ... persists
// MSG_HANDLERS ... for next round's result matching").
func (bc *BatchCoordinator) TakeMessageHandlers() []runtimetypes.MessageHook {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	out := bc.msgHandlers
	bc.msgHandlers = nil
	return out
}

// ClassifyAndSplit classifies every raw transaction against checkCtx
// (caching the result in INFO_CACHE) and partitions the batch into
// numShards groups preserving invariant I2.
func (bc *BatchCoordinator) ClassifyAndSplit(checkCtx *runtimectx.Context, rawTxs [][]byte, numShards int) [][]IndexedTx {
	classifications := bc.classifyAll(checkCtx, rawTxs)
	shards := Split(classifications, numShards)
	out := make([][]IndexedTx, len(shards))
	for s, indices := range shards {
		group := make([]IndexedTx, len(indices))
		for j, idx := range indices {
			group[j] = IndexedTx{Index: idx, Raw: rawTxs[idx]}
		}
		out[s] = group
	}
	return out
}
