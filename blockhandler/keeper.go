package blockhandler

import (
	"cosmossdk.io/log"

	"github.com/HelaNetwork/runtime-sdk-go/runtimectx"
	"github.com/HelaNetwork/runtime-sdk-go/storage"
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
	accountskeeper "github.com/HelaNetwork/runtime-sdk-go/x/accounts/keeper"
)

// MessageHandler runs the module-registered side effect of a consensus
// message's reported result, given the payload stashed in its MessageHook
// at emission time (spec.md §4.5 "dispatch to the named handler with the
// stored payload").
type MessageHandler func(ctx *runtimectx.Context, payload []byte, event runtimetypes.MessageEvent) error

// Keeper implements the block handler: the rolling block-hash window, the
// end-of-block disbursement trigger, and last-round message demultiplexing.
// It depends concretely on the accounts keeper because disbursement is an
// accounts-module operation; unlike the dispatcher it does not need to stay
// polymorphic over every module, since only the accounts module currently
// emits consensus messages with registered hooks.
type Keeper struct {
	logger   log.Logger
	accounts *accountskeeper.Keeper

	// windowSize bounds how many recent round's block hashes are retained;
	// inserting round r evicts round r-windowSize (spec.md §4.5).
	windowSize uint64

	handlers map[string]MessageHandler
}

// NewKeeper constructs the block handler keeper.
func NewKeeper(logger log.Logger, accounts *accountskeeper.Keeper, windowSize uint64) *Keeper {
	return &Keeper{
		logger:     logger.With("module", ModuleName),
		accounts:   accounts,
		windowSize: windowSize,
		handlers:   make(map[string]MessageHandler),
	}
}

// RegisterMessageHandler binds hookName (the name a module stamps into a
// MessageHook at emission time) to the handler that runs when the
// consensus layer reports that message's result.
func (k *Keeper) RegisterMessageHandler(hookName string, h MessageHandler) {
	k.handlers[hookName] = h
}

func moduleStore(ctx *runtimectx.Context) storage.Store {
	return ctx.Store().Prefix([]byte(ModuleName + "/"))
}

// StashHooks persists the hooks collected across a round's shards, indexed
// by emission order, so the next round's handle_last_round_messages can
// look each one up by its reported MessageEvent.Index (spec.md §3
// "Message-event hook": "persisted between rounds under a reserved key
// until the consensus layer reports the result").
func (k *Keeper) StashHooks(ctx *runtimectx.Context, hooks []runtimetypes.MessageHook) error {
	store := moduleStore(ctx)
	for i, h := range hooks {
		if err := store.Insert(messageHookKey(uint32(i)), h); err != nil {
			return err
		}
	}
	return nil
}
