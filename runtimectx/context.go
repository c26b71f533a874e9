// Package runtimectx implements the nested execution-context tree (spec.md
// §2 component 3): batch → transaction → child/simulation. Each level
// carries its own storage overlay, event buffer, message buffer and scratch
// values, modeled as an arena-free parent pointer rather than the cyclic
// context-embeds-storage shape the Design Notes warn against (spec.md §9
// "Cyclic/shared state"). Named runtimectx (not context) to avoid shadowing
// the standard library's context package in files that need both.
package runtimectx

import (
	"math/rand"

	"cosmossdk.io/log"

	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
	"github.com/HelaNetwork/runtime-sdk-go/storage"
)

// Context is one node of the execution-context tree.
type Context struct {
	parent *Context
	mode   Mode
	logger log.Logger
	overlay *storage.Overlay

	// round is the consensus round this context executes within; carried
	// down from the batch context to every descendant.
	round uint64

	// txIndex is this transaction's position within the batch, -1 outside a
	// transaction context (spec.md §4.1 "per-transaction index").
	txIndex int

	events              []runtimetypes.Event
	unconditionalEvents []runtimetypes.Event
	messages            []runtimetypes.Message
	messageHooks        []runtimetypes.MessageHook

	maxMessages     uint32
	messagesEmitted uint32

	values map[string]interface{}

	rng *rand.Rand
}

// NewBatchContext constructs the root context for a batch, owning the root
// storage overlay (spec.md §3 "Ownership").
func NewBatchContext(kv storage.KVStore, round uint64, logger log.Logger, seed int64) *Context {
	return &Context{
		mode:        ModeExecute,
		logger:      logger,
		overlay:     storage.NewOverlay(kv),
		round:       round,
		txIndex:     -1,
		maxMessages: DefaultMaxMessages,
		values:      make(map[string]interface{}),
		rng:         rand.New(rand.NewSource(seed)), //nolint:gosec // deterministic per-batch RNG, not used for security decisions
	}
}

// DefaultMaxMessages bounds the number of consensus messages a context may
// emit before OutOfMessageSlots, per spec.md §5 "Message budget".
const DefaultMaxMessages = 32

// NewTxContext opens a transaction-scoped child whose overlay nests under
// the batch's (spec.md §3 "Ownership": "each transaction context owns a
// nested overlay whose parent is the batch's").
func (c *Context) NewTxContext(mode Mode, txIndex int) *Context {
	return &Context{
		parent:      c,
		mode:        mode,
		logger:      c.logger,
		overlay:     c.overlay.Child(),
		round:       c.round,
		txIndex:     txIndex,
		maxMessages: c.maxMessages,
		values:      make(map[string]interface{}),
		rng:         c.rng,
	}
}

// NewChildContext opens a further-nested context (e.g. for simulation or a
// precompile's internal dispatch) whose overlay is always discarded
// (spec.md §3 "Ownership": "child (simulation) contexts own a further
// nested overlay that is always discarded").
func (c *Context) NewChildContext(mode Mode) *Context {
	return &Context{
		parent:      c,
		mode:        mode,
		logger:      c.logger,
		overlay:     c.overlay.Child(),
		round:       c.round,
		txIndex:     c.txIndex,
		maxMessages: c.maxMessages,
		values:      make(map[string]interface{}),
		rng:         c.rng,
	}
}

// Mode reports which of execute/check/simulate this context runs under.
func (c *Context) Mode() Mode { return c.mode }

// IsCheckOnly reports whether this context's mode disallows observable
// state changes.
func (c *Context) IsCheckOnly() bool { return c.mode.IsCheckOnly() }

// Store returns the typed store view scoped to this context's overlay.
func (c *Context) Store() storage.Store { return c.overlay.Store() }

// Overlay exposes the underlying overlay, for commit/discard at the
// dispatcher boundary.
func (c *Context) Overlay() *storage.Overlay { return c.overlay }

// Round returns the consensus round this context executes within.
func (c *Context) Round() uint64 { return c.round }

// TxIndex returns this context's transaction index, or -1 outside a
// transaction context.
func (c *Context) TxIndex() int { return c.txIndex }

// Logger returns a module-scoped child logger.
func (c *Context) Logger() log.Logger { return c.logger }

// WithLogger returns a copy of c that uses the given logger. Child contexts
// copy their parent's logger when they are created, so children created
// from the returned copy inherit the new logger, while c itself and
// children created from c keep the old one.
func (c *Context) WithLogger(logger log.Logger) *Context {
	cp := *c
	cp.logger = logger
	return &cp
}

// RNG returns the batch-seeded deterministic random source.
func (c *Context) RNG() *rand.Rand { return c.rng }

// Value retrieves a per-context scratch value set via SetValue, walking up
// to ancestor contexts if unset locally.
func (c *Context) Value(key string) (interface{}, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if v, ok := cur.values[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// SetValue sets a per-context scratch value visible to this context and its
// descendants.
func (c *Context) SetValue(key string, v interface{}) {
	c.values[key] = v
}

// EmitEvent appends an event to this context's buffer. Unconditional events
// survive rollback (spec.md §4.1 step 7 "unconditional events are
// retained"); ordinary events are discarded along with everything else in
// the overlay if the context is rolled back.
func (c *Context) EmitEvent(e runtimetypes.Event) {
	c.events = append(c.events, e)
}

// EmitUnconditionalEvent appends an event that survives rollback.
func (c *Context) EmitUnconditionalEvent(e runtimetypes.Event) {
	c.unconditionalEvents = append(c.unconditionalEvents, e)
}

// Events returns the events buffered directly on this context (not
// including descendants'; the dispatcher promotes child events up on
// commit).
func (c *Context) Events() []runtimetypes.Event { return c.events }

// UnconditionalEvents returns this context's unconditional events.
func (c *Context) UnconditionalEvents() []runtimetypes.Event { return c.unconditionalEvents }

// EmitMessage appends a consensus message, enforcing the message budget
// (spec.md §5 "Message budget": "Emission beyond the limit →
// OutOfMessageSlots").
func (c *Context) EmitMessage(m runtimetypes.Message) error {
	if c.messagesEmitted >= c.maxMessages {
		return runtimetypes.ErrOutOfMessageSlots
	}
	c.messagesEmitted++
	c.messages = append(c.messages, m)
	return nil
}

// Messages returns the messages buffered directly on this context.
func (c *Context) Messages() []runtimetypes.Message { return c.messages }

// RegisterMessageHook records the hook that will handle this context's
// next emitted message's eventual result (spec.md §3 "Message-event hook").
func (c *Context) RegisterMessageHook(h runtimetypes.MessageHook) {
	c.messageHooks = append(c.messageHooks, h)
}

// MessageHooks returns the hooks registered directly on this context.
func (c *Context) MessageHooks() []runtimetypes.MessageHook { return c.messageHooks }

// LimitMaxMessages tightens (never raises) the message budget, per spec.md
// §5 ("limit_max_messages may only tighten the limit; attempting to raise
// it → OutOfMessageSlots").
func (c *Context) LimitMaxMessages(n uint32) error {
	if n > c.maxMessages {
		return runtimetypes.ErrOutOfMessageSlots
	}
	c.maxMessages = n
	return nil
}

// MaxMessages returns the current message budget.
func (c *Context) MaxMessages() uint32 { return c.maxMessages }

// Commit merges this context's overlay into its parent and promotes its
// events and messages up to the parent, per spec.md §4.1 step 7 ("Success
// and not-read-only → commit overlay, promote collected events and
// messages").
func (c *Context) Commit() {
	c.overlay.Commit()
	if c.parent == nil {
		return
	}
	c.parent.events = append(c.parent.events, c.events...)
	c.parent.unconditionalEvents = append(c.parent.unconditionalEvents, c.unconditionalEvents...)
	c.parent.messages = append(c.parent.messages, c.messages...)
	c.parent.messageHooks = append(c.parent.messageHooks, c.messageHooks...)
}

// Rollback discards this context's overlay. Unconditional events are still
// promoted to the parent, per spec.md §4.1 step 7 ("unconditional events
// are retained") and §7 ("the overlay is rolled back; unconditional events
// survive").
func (c *Context) Rollback() {
	c.overlay.Discard()
	if c.parent == nil {
		return
	}
	c.parent.unconditionalEvents = append(c.parent.unconditionalEvents, c.unconditionalEvents...)
}
