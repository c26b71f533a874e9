// Package runtime wires the accounts module, the EVM bridge, the
// dispatcher and the block handler into the one object a host embeds,
// matching the way the teacher's app.go assembles its keepers and modules
// at start-up (spec.md §2: the nine components composed into one runtime).
package runtime

import (
	"cosmossdk.io/log"

	"github.com/HelaNetwork/runtime-sdk-go/blockhandler"
	"github.com/HelaNetwork/runtime-sdk-go/config"
	"github.com/HelaNetwork/runtime-sdk-go/dispatcher"
	"github.com/HelaNetwork/runtime-sdk-go/runtimectx"
	"github.com/HelaNetwork/runtime-sdk-go/storage"
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
	accountskeeper "github.com/HelaNetwork/runtime-sdk-go/x/accounts/keeper"
	accountstypes "github.com/HelaNetwork/runtime-sdk-go/x/accounts/types"
	evmkeeper "github.com/HelaNetwork/runtime-sdk-go/x/evm/keeper"
	evmtypes "github.com/HelaNetwork/runtime-sdk-go/x/evm/types"
)

// BlockHashWindow is the default number of recent rounds' block hashes the
// block handler retains (spec.md §4.5).
const BlockHashWindow = 256

// DefaultInfoCacheSize bounds INFO_CACHE's retained transaction
// classifications (spec.md §5 "a bounded LRU INFO_CACHE").
const DefaultInfoCacheSize = 8192

// DefaultCallGasLimit is the gas limit the EVM bridge hands the interpreter
// for every evm.Create/evm.Call invocation (spec.md §4.4; the interpreter's
// own opcode-level metering is out of scope here, see §1 Non-goals).
const DefaultCallGasLimit = 8_000_000

// Runtime is the fully wired node: every module plus the control-flow
// components that dispatch and batch transactions against them.
type Runtime struct {
	Accounts     *accountskeeper.Keeper
	EVM          *evmkeeper.Keeper
	BlockHandler *blockhandler.Keeper
	Dispatcher   *dispatcher.Dispatcher
	Batch        *dispatcher.BatchCoordinator

	logger log.Logger
}

// New builds a Runtime. executor is the external EVM interpreter
// collaborator (spec.md §1 "the embedded EVM interpreter" is out of
// scope); the host supplies its concrete implementation.
func New(logger log.Logger, cfg config.LocalConfig, chainInitiator runtimetypes.Address, executor evmtypes.Executor) *Runtime {
	accounts := accountskeeper.NewKeeper(logger, chainInitiator)
	evm := evmkeeper.NewKeeper(logger, accounts, executor, cfg.QuerySimulateCallMaxGas, DefaultCallGasLimit)
	blockHandler := blockhandler.NewKeeper(logger, accounts, BlockHashWindow)

	blockHandler.RegisterMessageHandler("withdraw.reserve", func(ctx *runtimectx.Context, payload []byte, event runtimetypes.MessageEvent) error {
		// The withdrawal itself already moved funds into the reserve when
		// withdraw.reserve ran; a later failed event has nothing left to
		// reverse here (no on-runtime compensation is specified), so a
		// successful event is a no-op and a failed one is only logged.
		if !event.Ok() {
			logger.With("module", "runtime").Error("withdraw.reserve message failed", "code", event.Code)
		}
		return nil
	})

	d := dispatcher.New(logger, accounts, cfg, accounts.Module(), evm.Module())

	return &Runtime{
		Accounts:     accounts,
		EVM:          evm,
		BlockHandler: blockHandler,
		Dispatcher:   d,
		Batch:        dispatcher.NewBatchCoordinator(d, DefaultInfoCacheSize),
		logger:       logger.With("component", "runtime"),
	}
}

// InitGenesis loads gen into storage at the beginning of chain life.
func (r *Runtime) InitGenesis(ctx *runtimectx.Context, gen accountstypes.Genesis) error {
	return r.Accounts.InitGenesis(ctx, gen)
}

// NewBatchContext opens the root context a round's transactions execute
// within, over kv at the given round.
func (r *Runtime) NewBatchContext(kv storage.KVStore, round uint64, seed int64) *runtimectx.Context {
	return runtimectx.NewBatchContext(kv, round, r.logger, seed)
}

// ProcessBatch runs a full round: classify and split rawTxs into
// numShards conflict-free groups, run every shard sequentially against
// batchCtx (spec.md §5 "the dispatcher may distribute independent groups
// across OS threads"; sequential execution here is a conservative,
// always-valid schedule of the same dependency partition), then stash the
// round's collected message hooks with the block handler. The reported
// last-round message events are not handled here; FinalizeBlock matches
// them against the stashed hooks.
func (r *Runtime) ProcessBatch(batchCtx *runtimectx.Context, rawTxs [][]byte, numShards int) ([]runtimetypes.CallResult, error) {
	shards := r.Batch.ClassifyAndSplit(batchCtx, rawTxs, numShards)

	results := make([]runtimetypes.CallResult, len(rawTxs))
	for s, txs := range shards {
		shardResult, err := r.Batch.RunShard(batchCtx, s, numShards, txs)
		if err != nil {
			return nil, err
		}
		for i, tx := range txs {
			results[tx.Index] = shardResult.Results[i]
		}
	}

	return results, r.BlockHandler.StashHooks(batchCtx, r.Batch.TakeMessageHandlers())
}

// ScheduleBatch runs the schedule-and-execute admission path (spec.md §4.1
// "Schedule-and-execute"): unlike ProcessBatch, which dispatches an
// already-decided, already-ordered batch, this is for a proposer choosing
// which of a larger candidate pool to admit into the block it is building,
// so it dispatches each admitted candidate directly rather than going
// through the parallel splitter.
func (r *Runtime) ScheduleBatch(batchCtx *runtimectx.Context, candidates [][]byte, cfg dispatcher.ScheduleConfig) dispatcher.ScheduleResult {
	return r.Batch.ScheduleAndExecute(batchCtx, candidates, cfg)
}

// FinalizeBlock runs the block handler's end-of-block sequence: demultiplex
// the previous round's consensus message results against the hooks stashed
// by ProcessBatch, then roll the block-hash window forward and trigger fee
// disbursement (spec.md §4.5).
func (r *Runtime) FinalizeBlock(ctx *runtimectx.Context, lastRoundEvents []runtimetypes.MessageEvent, blockHash []byte, goodComputeEntities []runtimetypes.Address) error {
	if err := r.BlockHandler.HandleLastRoundMessages(ctx, lastRoundEvents); err != nil {
		return err
	}
	return r.BlockHandler.EndBlock(ctx, blockHash, goodComputeEntities)
}
