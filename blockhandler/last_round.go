package blockhandler

import (
	"github.com/HelaNetwork/runtime-sdk-go/runtimectx"
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
)

// HandleLastRoundMessages implements spec.md §4.5 "handle_last_round_messages":
// for each reported message event, look up the MessageHook stashed under
// its index, dispatch to the named handler with the stored payload, then
// remove the entry. Any hook left unconsumed after every event has been
// processed is reported via ErrMessageHandlerNotInvoked, since a stashed
// hook with no matching event means the round results silently dropped a
// message this runtime is still waiting on.
func (k *Keeper) HandleLastRoundMessages(ctx *runtimectx.Context, events []runtimetypes.MessageEvent) error {
	store := moduleStore(ctx)

	for _, event := range events {
		key := messageHookKey(event.Index)
		var hook runtimetypes.MessageHook
		found, err := store.Get(key, &hook)
		if err != nil {
			return err
		}
		if !found {
			continue
		}
		store.Delete(key)

		handler, ok := k.handlers[hook.HookName]
		if !ok {
			continue
		}
		if err := handler(ctx, hook.Payload, event); err != nil {
			return err
		}
	}

	var unconsumed bool
	if err := store.Iterate(prefixMessageHooks, prefixRangeEnd(prefixMessageHooks), func(key, _ []byte) (bool, error) {
		unconsumed = true
		return true, nil
	}); err != nil {
		return err
	}
	if unconsumed {
		return runtimetypes.ErrMessageHandlerNotInvoked
	}
	return nil
}

// prefixRangeEnd returns the lexicographically smallest key greater than
// every key with the given prefix, for use as an Iterate end bound.
func prefixRangeEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
