package keeper

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"

	"github.com/HelaNetwork/runtime-sdk-go/moduleapi"
	"github.com/HelaNetwork/runtime-sdk-go/runtimectx"
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
	accountskeeper "github.com/HelaNetwork/runtime-sdk-go/x/accounts/keeper"
	evmtypes "github.com/HelaNetwork/runtime-sdk-go/x/evm/types"
)

// caller returns the transaction's authenticated sender, the same scratch
// value the accounts module's handlers read (spec.md §4.1 step 3); the EVM
// bridge shares one notion of "who signed this" with the rest of the
// runtime rather than keeping its own.
func caller(ctx *runtimectx.Context) (runtimetypes.Address, error) {
	v, ok := ctx.Value(accountskeeper.CallerValueKey)
	if !ok {
		return runtimetypes.Address{}, runtimetypes.ErrNotAuthenticated
	}
	addr, ok := v.(runtimetypes.Address)
	if !ok {
		return runtimetypes.Address{}, runtimetypes.ErrNotAuthenticated
	}
	return addr, nil
}

// toCallResult turns an interpreter outcome into the CallResult wire shape,
// decoding a Solidity revert reason out of ret when the interpreter
// reports ErrExecutionReverted (spec.md §4.4 "Revert decoding").
func toCallResult(ret []byte, err error, ok func() (runtimetypes.CallResult, error)) (runtimetypes.CallResult, error) {
	if err == nil {
		return ok()
	}
	if errors.Is(err, vm.ErrExecutionReverted) {
		if reason, decoded := evmtypes.DecodeRevertReason(ret); decoded {
			return runtimetypes.CallResult{}, runtimetypes.Reverted(reason)
		}
		return runtimetypes.CallResult{}, runtimetypes.Reverted("")
	}
	return runtimetypes.CallResult{}, runtimetypes.ExecutionFailed(err.Error())
}

func handleCreate(k *Keeper) moduleapi.CallHandler {
	return func(ctx *runtimectx.Context, args []byte) (runtimetypes.CallResult, error) {
		from, err := caller(ctx)
		if err != nil {
			return runtimetypes.CallResult{}, err
		}
		var params evmtypes.CreateParams
		if err := runtimetypes.UnmarshalCBOR(args, &params); err != nil {
			return runtimetypes.CallResult{}, runtimetypes.ErrMalformedTransaction
		}
		ethFrom := common.BytesToAddress(from.Payload())
		value := uintToUint256(params.Value.Amount)
		backend := k.newBackend(ctx)
		addr, ret, _, execErr := k.executor.Create(backend, ethFrom, params.InitCode, k.callGasLimit, value)
		return toCallResult(ret, execErr, func() (runtimetypes.CallResult, error) {
			res, err := runtimetypes.NewOkResult(evmtypes.CreateResult{Address: fromEthAddr(addr)})
			return res, err
		})
	}
}

func handleCall(k *Keeper) moduleapi.CallHandler {
	return func(ctx *runtimectx.Context, args []byte) (runtimetypes.CallResult, error) {
		from, err := caller(ctx)
		if err != nil {
			return runtimetypes.CallResult{}, err
		}
		var params evmtypes.CallParams
		if err := runtimetypes.UnmarshalCBOR(args, &params); err != nil {
			return runtimetypes.CallResult{}, runtimetypes.ErrMalformedTransaction
		}
		ethFrom := common.BytesToAddress(from.Payload())
		target := common.BytesToAddress(params.Address[:])
		value := uintToUint256(params.Value.Amount)
		backend := k.newBackend(ctx)

		// An empty-code target with no calldata is a plain value transfer,
		// routed straight through the accounts module rather than invoked
		// as a message call (spec.md §4.4 "Call routing").
		if len(backend.GetCode(target)) == 0 && len(params.Data) == 0 {
			if !value.IsZero() {
				base := runtimetypes.BaseUnits{Amount: uint256ToUint(value), Denomination: runtimetypes.NativeDenomination}
				if err := k.accounts.Transfer(ctx, from, evmtypes.NativeAddress(target), base); err != nil {
					return runtimetypes.CallResult{}, err
				}
			}
			return runtimetypes.NewOkResult(evmtypes.CallResult{ReturnValue: nil})
		}

		ret, _, execErr := k.executor.Call(backend, ethFrom, target, params.Data, k.callGasLimit, value)
		return toCallResult(ret, execErr, func() (runtimetypes.CallResult, error) {
			return runtimetypes.NewOkResult(evmtypes.CallResult{ReturnValue: ret})
		})
	}
}

// classifyCall extracts evm.Call's target for the batch splitter's
// dependency graph (spec.md §4.1, §4.4 "Call routing"); is_pure_transfer
// can't be determined here without reading the target's code (a storage
// read the classifier intentionally avoids), so it conservatively reports
// false.
func classifyCall(args []byte) moduleapi.ClassifyInfo {
	var params evmtypes.CallParams
	if err := runtimetypes.UnmarshalCBOR(args, &params); err != nil {
		return moduleapi.ClassifyInfo{}
	}
	return moduleapi.ClassifyInfo{Receiver: evmtypes.NativeAddress(toEthAddress(params.Address))}
}

// classifyWithdrawReserveParams covers call_sc_mint/call_sc_burn/
// withdraw.reserve, all of which share WithdrawReserveParams{Address, Value}.
func classifyWithdrawReserveParams(args []byte) moduleapi.ClassifyInfo {
	var params evmtypes.WithdrawReserveParams
	if err := runtimetypes.UnmarshalCBOR(args, &params); err != nil {
		return moduleapi.ClassifyInfo{}
	}
	return moduleapi.ClassifyInfo{Receiver: params.Address}
}

func fromEthAddr(a common.Address) [20]byte {
	var out [20]byte
	copy(out[:], a.Bytes())
	return out
}

// handleSCMint implements call_sc_mint, the stable-coin bridge's
// mint-on-deposit leg. Only evmtypes.SystemAddress may invoke it (spec.md
// §4.4 "Stable-coin bridge"). Its arguments are a CBOR-encoded
// WithdrawReserveParams, and the amount is minted to the target directly
// through the accounts keeper; no contract calldata is built and the bridge
// contract is not invoked.
func handleSCMint(k *Keeper) moduleapi.CallHandler {
	return func(ctx *runtimectx.Context, args []byte) (runtimetypes.CallResult, error) {
		from, err := caller(ctx)
		if err != nil {
			return runtimetypes.CallResult{}, err
		}
		if common.BytesToAddress(from.Payload()) != evmtypes.SystemAddress {
			return runtimetypes.CallResult{}, evmtypes.ErrNotSystemCall
		}
		var params evmtypes.WithdrawReserveParams
		if err := runtimetypes.UnmarshalCBOR(args, &params); err != nil {
			return runtimetypes.CallResult{}, runtimetypes.ErrMalformedTransaction
		}
		if err := k.accounts.Mint(ctx, params.Address, params.Value); err != nil {
			return runtimetypes.CallResult{}, err
		}
		return runtimetypes.NewOkResult(nil)
	}
}

// handleSCBurn implements call_sc_burn, the stable-coin bridge's
// burn-on-withdrawal leg. Also gated to evmtypes.SystemAddress.
func handleSCBurn(k *Keeper) moduleapi.CallHandler {
	return func(ctx *runtimectx.Context, args []byte) (runtimetypes.CallResult, error) {
		from, err := caller(ctx)
		if err != nil {
			return runtimetypes.CallResult{}, err
		}
		if common.BytesToAddress(from.Payload()) != evmtypes.SystemAddress {
			return runtimetypes.CallResult{}, evmtypes.ErrNotSystemCall
		}
		var params evmtypes.WithdrawReserveParams
		if err := runtimetypes.UnmarshalCBOR(args, &params); err != nil {
			return runtimetypes.CallResult{}, runtimetypes.ErrMalformedTransaction
		}
		if err := k.accounts.Burn(ctx, params.Address, params.Value); err != nil {
			return runtimetypes.CallResult{}, err
		}
		return runtimetypes.NewOkResult(nil)
	}
}

// handleWithdrawReserve implements withdraw.reserve, the bridge-internal
// call that moves a user's balance into the reserve ahead of an
// off-runtime withdrawal message (spec.md §6).
func handleWithdrawReserve(k *Keeper) moduleapi.CallHandler {
	return func(ctx *runtimectx.Context, args []byte) (runtimetypes.CallResult, error) {
		from, err := caller(ctx)
		if err != nil {
			return runtimetypes.CallResult{}, err
		}
		var params evmtypes.WithdrawReserveParams
		if err := runtimetypes.UnmarshalCBOR(args, &params); err != nil {
			return runtimetypes.CallResult{}, runtimetypes.ErrMalformedTransaction
		}
		if err := k.accounts.Transfer(ctx, from, evmtypes.ContractAddressNative(), params.Value); err != nil {
			return runtimetypes.CallResult{}, err
		}
		msg := runtimetypes.Message{Method: "withdraw.reserve", Data: args}
		if err := ctx.EmitMessage(msg); err != nil {
			return runtimetypes.CallResult{}, err
		}
		return runtimetypes.NewOkResult(nil)
	}
}

// Module builds the EVM bridge's moduleapi.Module capability-set record.
func (k *Keeper) Module() moduleapi.Module {
	return moduleapi.Module{
		Name: evmtypes.ModuleName,
		Methods: []moduleapi.Method{
			{Name: "evm.Create", GasCost: evmtypes.GasCreate, Handler: handleCreate(k)},
			{Name: "evm.Call", GasCost: evmtypes.GasCall, Handler: handleCall(k), Classify: classifyCall},
			{Name: "call_sc_mint", GasCost: evmtypes.GasCall, Handler: handleSCMint(k), Classify: classifyWithdrawReserveParams},
			{Name: "call_sc_burn", GasCost: evmtypes.GasCall, Handler: handleSCBurn(k), Classify: classifyWithdrawReserveParams},
			{Name: "withdraw.reserve", GasCost: evmtypes.GasCall, Handler: handleWithdrawReserve(k), Classify: classifyWithdrawReserveParams},
		},
		Queries: k.queries(),
	}
}
