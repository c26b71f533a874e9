// Package dispatcher implements the per-transaction pipeline and batch
// execution control flow (spec.md §2 component 8, §4.1): decode →
// authenticate → dispatch → commit/rollback, plus the batch splitter and
// query router. It never imports a module's concrete keeper type, only the
// moduleapi.Module capability-set record each one registers, per spec.md
// §9 "Runtime polymorphism".
package dispatcher

import (
	"cosmossdk.io/log"

	"github.com/HelaNetwork/runtime-sdk-go/config"
	"github.com/HelaNetwork/runtime-sdk-go/moduleapi"
	"github.com/HelaNetwork/runtime-sdk-go/runtimectx"
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
	accountskeeper "github.com/HelaNetwork/runtime-sdk-go/x/accounts/keeper"
)

// Dispatcher indexes every registered module's methods, queries and auth
// schemes for O(1) lookup by name, and owns the shared pipeline logic every
// transaction and query runs through.
type Dispatcher struct {
	logger log.Logger

	methods     map[string]moduleapi.Method
	queries     map[string]moduleapi.Query
	authSchemes map[string]moduleapi.AuthSchemeHandler
	modules     []moduleapi.Module

	approveRawTxHooks        []func(ctx *runtimectx.Context, raw []byte) error
	approveUnverifiedTxHooks []func(ctx *runtimectx.Context, tx runtimetypes.Transaction) error
	afterHandleCallHooks     []func(ctx *runtimectx.Context) error

	accounts *accountskeeper.Keeper
	config   config.LocalConfig
}

// New builds a Dispatcher from every module's capability-set record,
// indexing their method/query/auth-scheme tables.
func New(logger log.Logger, accounts *accountskeeper.Keeper, cfg config.LocalConfig, modules ...moduleapi.Module) *Dispatcher {
	d := &Dispatcher{
		logger:      logger.With("component", "dispatcher"),
		methods:     make(map[string]moduleapi.Method),
		queries:     make(map[string]moduleapi.Query),
		authSchemes: make(map[string]moduleapi.AuthSchemeHandler),
		modules:     modules,
		accounts:    accounts,
		config:      cfg,
	}
	for _, m := range modules {
		for name, meth := range m.MethodTable() {
			d.methods[name] = meth
		}
		for name, q := range m.QueryTable() {
			d.queries[name] = q
		}
		for scheme, handler := range m.AuthSchemes {
			d.authSchemes[scheme] = handler
		}
		if m.ApproveRawTx != nil {
			d.approveRawTxHooks = append(d.approveRawTxHooks, m.ApproveRawTx)
		}
		if m.ApproveUnverifiedTx != nil {
			d.approveUnverifiedTxHooks = append(d.approveUnverifiedTxHooks, m.ApproveUnverifiedTx)
		}
		if m.AfterHandleCall != nil {
			d.afterHandleCallHooks = append(d.afterHandleCallHooks, m.AfterHandleCall)
		}
	}
	return d
}

// Modules returns the registered modules, in registration order, for the
// block handler's begin/end-block fan-out.
func (d *Dispatcher) Modules() []moduleapi.Module {
	return d.modules
}
