package keeper

import (
	"github.com/HelaNetwork/runtime-sdk-go/moduleapi"
	"github.com/HelaNetwork/runtime-sdk-go/runtimectx"
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
	"github.com/HelaNetwork/runtime-sdk-go/x/accounts/types"
)

// caller returns the transaction's authenticated sender, set by the
// dispatcher's authentication step before dispatch (spec.md §4.1 step 3).
func caller(ctx *runtimectx.Context) (runtimetypes.Address, error) {
	v, ok := ctx.Value(CallerValueKey)
	if !ok {
		return runtimetypes.Address{}, runtimetypes.ErrNotAuthenticated
	}
	addr, ok := v.(runtimetypes.Address)
	if !ok {
		return runtimetypes.Address{}, runtimetypes.ErrNotAuthenticated
	}
	return addr, nil
}

// CallerValueKey is the context scratch-value key the dispatcher sets to
// the authenticated signer before dispatching a call (spec.md §4.1 step 3
// "payer"/signer identity, carried to the handler).
const CallerValueKey = "accounts.caller"

func handleTransfer(k *Keeper) moduleapi.CallHandler {
	return func(ctx *runtimectx.Context, args []byte) (runtimetypes.CallResult, error) {
		from, err := caller(ctx)
		if err != nil {
			return runtimetypes.CallResult{}, err
		}
		var params types.TransferParams
		if err := runtimetypes.UnmarshalCBOR(args, &params); err != nil {
			return runtimetypes.CallResult{}, runtimetypes.ErrMalformedTransaction
		}
		if err := k.Transfer(ctx, from, params.To, params.Amount); err != nil {
			return runtimetypes.CallResult{}, err
		}
		return runtimetypes.NewOkResult(nil)
	}
}

// classifyTransfer extracts accounts.Transfer's recipient for the batch
// splitter's dependency graph, without touching any account state (spec.md
// §4.1 "classify each transaction using a cached (sender, receiver,
// is_pure_transfer) tuple").
func classifyTransfer(args []byte) moduleapi.ClassifyInfo {
	var params types.TransferParams
	if err := runtimetypes.UnmarshalCBOR(args, &params); err != nil {
		return moduleapi.ClassifyInfo{}
	}
	return moduleapi.ClassifyInfo{Receiver: params.To, IsPureTransfer: true}
}

func handlePropose(k *Keeper) moduleapi.CallHandler {
	return func(ctx *runtimectx.Context, args []byte) (runtimetypes.CallResult, error) {
		submitter, err := caller(ctx)
		if err != nil {
			return runtimetypes.CallResult{}, err
		}
		var content types.ProposeParams
		if err := runtimetypes.UnmarshalCBOR(args, &content); err != nil {
			return runtimetypes.CallResult{}, runtimetypes.ErrMalformedTransaction
		}
		id, err := k.Propose(ctx, submitter, content)
		if err != nil {
			return runtimetypes.CallResult{}, err
		}
		return runtimetypes.NewOkResult(id)
	}
}

func handleVoteST(k *Keeper) moduleapi.CallHandler {
	return func(ctx *runtimectx.Context, args []byte) (runtimetypes.CallResult, error) {
		voter, err := caller(ctx)
		if err != nil {
			return runtimetypes.CallResult{}, err
		}
		var params types.VoteParams
		if err := runtimetypes.UnmarshalCBOR(args, &params); err != nil {
			return runtimetypes.CallResult{}, runtimetypes.ErrMalformedTransaction
		}
		if !params.Option.IsValid() {
			return runtimetypes.CallResult{}, runtimetypes.ErrInvalidArgument
		}
		if err := k.VoteST(ctx, voter, params.ID, params.Option); err != nil {
			return runtimetypes.CallResult{}, err
		}
		return runtimetypes.NewOkResult(nil)
	}
}

func handleInitOwners(k *Keeper) moduleapi.CallHandler {
	return func(ctx *runtimectx.Context, args []byte) (runtimetypes.CallResult, error) {
		initiator, err := caller(ctx)
		if err != nil {
			return runtimetypes.CallResult{}, err
		}
		var params types.InitOwnersParams
		if err := runtimetypes.UnmarshalCBOR(args, &params); err != nil {
			return runtimetypes.CallResult{}, runtimetypes.ErrMalformedTransaction
		}
		if err := k.InitOwners(ctx, initiator, params.Owners); err != nil {
			return runtimetypes.CallResult{}, err
		}
		return runtimetypes.NewOkResult(nil)
	}
}

// handleMintST implements the admin mint pathway. Per spec.md §9 "Open
// questions" ("tx_burnst checks chain_initiator but tx_mintst does not"),
// MintST performs no chain_initiator gate, only a role check.
func handleMintST(k *Keeper) moduleapi.CallHandler {
	return func(ctx *runtimectx.Context, args []byte) (runtimetypes.CallResult, error) {
		from, err := caller(ctx)
		if err != nil {
			return runtimetypes.CallResult{}, err
		}
		if k.GetRole(ctx, from) != runtimetypes.RoleAdmin {
			return runtimetypes.CallResult{}, runtimetypes.ErrInvalidRole
		}
		var params types.MintSTParams
		if err := runtimetypes.UnmarshalCBOR(args, &params); err != nil {
			return runtimetypes.CallResult{}, runtimetypes.ErrMalformedTransaction
		}
		if err := k.Mint(ctx, params.To, params.Amount); err != nil {
			return runtimetypes.CallResult{}, err
		}
		return runtimetypes.NewOkResult(nil)
	}
}

// handleBurnST implements the admin burn pathway, burning from the
// caller's own balance. Unlike MintST, this checks chain_initiator, per
// spec.md §9 "tx_burnst checks chain_initiator".
func handleBurnST(k *Keeper) moduleapi.CallHandler {
	return func(ctx *runtimectx.Context, args []byte) (runtimetypes.CallResult, error) {
		from, err := caller(ctx)
		if err != nil {
			return runtimetypes.CallResult{}, err
		}
		if !from.Equal(k.chainInitiator) {
			return runtimetypes.CallResult{}, types.ErrNotChainInitiator
		}
		var params types.BurnSTParams
		if err := runtimetypes.UnmarshalCBOR(args, &params); err != nil {
			return runtimetypes.CallResult{}, runtimetypes.ErrMalformedTransaction
		}
		if err := k.Burn(ctx, from, params.Amount); err != nil {
			return runtimetypes.CallResult{}, err
		}
		return runtimetypes.NewOkResult(nil)
	}
}

// Module builds this keeper's moduleapi.Module capability-set record,
// registered with the dispatcher at start-up (spec.md §9 "Runtime
// polymorphism").
func (k *Keeper) Module() moduleapi.Module {
	return moduleapi.Module{
		Name: types.ModuleName,
		Methods: []moduleapi.Method{
			{Name: "accounts.Transfer", GasCost: types.GasTransfer, Handler: handleTransfer(k), Classify: classifyTransfer},
			{Name: "accounts.Propose", GasCost: types.GasManageST, Handler: handlePropose(k)},
			{Name: "accounts.VoteST", GasCost: types.GasManageST, Handler: handleVoteST(k)},
			{Name: "accounts.InitOwners", GasCost: types.GasManageST, Handler: handleInitOwners(k)},
			{Name: "accounts.MintST", GasCost: types.GasManageST, Handler: handleMintST(k)},
			{Name: "accounts.BurnST", GasCost: types.GasManageST, Handler: handleBurnST(k)},
		},
		Queries: k.queries(),
		BeginBlock: func(ctx *runtimectx.Context) error {
			return nil
		},
		EndBlock: func(ctx *runtimectx.Context) error {
			entities, _ := ctx.Value(GoodComputeEntitiesValueKey)
			addrs, _ := entities.([]runtimetypes.Address)
			return k.Disburse(ctx, addrs)
		},
	}
}

// GoodComputeEntitiesValueKey is the context scratch-value key the module's
// EndBlock reads the good-compute entity list from (spec.md §4.3
// "End-of-block disbursement"). Nothing in this repository sets it, so that
// EndBlock disburses with no entities; blockhandler.Keeper.EndBlock passes
// the round's entity list to Disburse directly instead.
const GoodComputeEntitiesValueKey = "accounts.good_compute_entities"
