// Package moduleapi defines the capability-set records the dispatcher
// indexes by module and method name (spec.md §9 "Runtime polymorphism":
// "Represent as a record of function pointers / method tables indexed by
// module name, not class inheritance. Dispatch by method string keyed to a
// statically registered table built at start-up."). The accounts and evm
// modules each build one Module value; the dispatcher never imports their
// concrete keeper types.
package moduleapi

import (
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
	"github.com/HelaNetwork/runtime-sdk-go/runtimectx"
)

// CallHandler executes one call-format method inside a transaction-scoped
// context, decoding args itself (the call body is already the method's raw
// CBOR argument bytes).
type CallHandler func(ctx *runtimectx.Context, args []byte) (runtimetypes.CallResult, error)

// QueryHandler executes one read-only query method.
type QueryHandler func(ctx *runtimectx.Context, args []byte) ([]byte, error)

// ClassifyInfo is a method's cheap, signature-free prediction of which
// second-party account (if any) a call will touch, computed from its raw
// argument bytes alone. The batch splitter uses it to build the
// transaction-dependency graph without running the handler (spec.md §4.1
// "classify each transaction using a cached (sender, receiver,
// is_pure_transfer) tuple").
type ClassifyInfo struct {
	Receiver       runtimetypes.Address
	IsPureTransfer bool
}

// Method is one call-format entry in a module's method table.
type Method struct {
	Name     string
	GasCost  uint64
	ReadOnly bool
	Handler  CallHandler

	// Classify extracts this method's ClassifyInfo from its raw argument
	// bytes, for the batch splitter's dependency graph. Nil for methods
	// with no second-party endpoint (e.g. a proposal submission).
	Classify func(args []byte) ClassifyInfo
}

// Query is one query-format entry in a module's query table.
type Query struct {
	Name     string
	Handler  QueryHandler
	Expensive bool
}

// AuthSchemeHandler lets a module own transaction decoding for a named auth
// scheme, per spec.md §4.1 step 1 ("If exactly one auth proof names a
// module-controlled scheme, delegate decoding to that module").
type AuthSchemeHandler func(ctx *runtimectx.Context, raw []byte) (sender runtimetypes.Address, body []byte, err error)

// Module is the capability-set record a module registers with the
// dispatcher at start-up.
type Module struct {
	Name string

	Methods []Method
	Queries []Query

	// AuthSchemes maps a scheme name (as named in the auth proof) to its
	// decoder, for modules that control their own transaction format
	// (e.g. a module-specific signature scheme).
	AuthSchemes map[string]AuthSchemeHandler

	// BeginBlock/EndBlock run once per block on shard 0 / the last shard
	// respectively (spec.md §4.1 "Control flow per batch").
	BeginBlock func(ctx *runtimectx.Context) error
	EndBlock   func(ctx *runtimectx.Context) error

	// ApproveRawTx/ApproveUnverifiedTx are the pre-authentication policy
	// hooks of spec.md §4.1 step 2 ("approve_raw_tx and
	// approve_unverified_tx may reject on policy"), run against every raw
	// transaction before decode and every decoded-but-unauthenticated
	// transaction before signature verification, respectively. Nil for
	// modules with no pre-authentication policy to enforce.
	ApproveRawTx        func(ctx *runtimectx.Context, raw []byte) error
	ApproveUnverifiedTx func(ctx *runtimectx.Context, tx runtimetypes.Transaction) error

	// AfterHandleCall is the post-call hook of spec.md §4.1 step 5, run
	// after the named handler returns and before the read-only guard. An
	// error here overrides the handler's result, mirroring the reference
	// dispatcher's after_handle_call. Nil for modules with nothing to run
	// after every call.
	AfterHandleCall func(ctx *runtimectx.Context) error
}

// MethodTable indexes Methods by name for O(1) dispatch.
func (m Module) MethodTable() map[string]Method {
	out := make(map[string]Method, len(m.Methods))
	for _, meth := range m.Methods {
		out[meth.Name] = meth
	}
	return out
}

// QueryTable indexes Queries by name for O(1) dispatch.
func (m Module) QueryTable() map[string]Query {
	out := make(map[string]Query, len(m.Queries))
	for _, q := range m.Queries {
		out[q.Name] = q
	}
	return out
}
