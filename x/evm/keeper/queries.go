package keeper

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/HelaNetwork/runtime-sdk-go/moduleapi"
	"github.com/HelaNetwork/runtime-sdk-go/runtimectx"
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
	evmtypes "github.com/HelaNetwork/runtime-sdk-go/x/evm/types"
)

func bytes32ToUint256(b [32]byte) *uint256.Int {
	v := new(uint256.Int)
	v.SetBytes32(b[:])
	return v
}

func (k *Keeper) queries() []moduleapi.Query {
	return []moduleapi.Query{
		{Name: "evm.Storage", Handler: k.queryStorage},
		{Name: "evm.Code", Handler: k.queryCode, Expensive: true},
		{Name: "evm.Balance", Handler: k.queryBalance},
		{Name: "evm.SimulateCall", Handler: k.querySimulateCall, Expensive: true},
	}
}

func (k *Keeper) queryStorage(ctx *runtimectx.Context, args []byte) ([]byte, error) {
	var q evmtypes.StorageQuery
	if err := runtimetypes.UnmarshalCBOR(args, &q); err != nil {
		return nil, runtimetypes.ErrInvalidArgument
	}
	backend := k.newBackend(ctx)
	val := backend.GetState(common.BytesToAddress(q.Address[:]), common.BytesToHash(q.Index[:]))
	return runtimetypes.MarshalCBOR(evmtypes.StorageResult{Value: [32]byte(val)})
}

func (k *Keeper) queryCode(ctx *runtimectx.Context, args []byte) ([]byte, error) {
	var q evmtypes.CodeQuery
	if err := runtimetypes.UnmarshalCBOR(args, &q); err != nil {
		return nil, runtimetypes.ErrInvalidArgument
	}
	backend := k.newBackend(ctx)
	return runtimetypes.MarshalCBOR(evmtypes.CodeResult{Code: backend.GetCode(common.BytesToAddress(q.Address[:]))})
}

func (k *Keeper) queryBalance(ctx *runtimectx.Context, args []byte) ([]byte, error) {
	var q evmtypes.BalanceQuery
	if err := runtimetypes.UnmarshalCBOR(args, &q); err != nil {
		return nil, runtimetypes.ErrInvalidArgument
	}
	backend := k.newBackend(ctx)
	bal := backend.GetBalance(common.BytesToAddress(q.Address[:]))
	return runtimetypes.MarshalCBOR(evmtypes.BalanceResult{Balance: bal.Bytes32()})
}

// querySimulateCall runs a Call inside a throwaway child context that is
// always discarded (spec.md §3 "child (simulation) contexts own a further
// nested overlay that is always discarded"), rejecting requests whose
// gas_limit exceeds the configured ceiling (spec.md §4.4
// "SimulationTooExpensive").
func (k *Keeper) querySimulateCall(ctx *runtimectx.Context, args []byte) ([]byte, error) {
	var q evmtypes.SimulateCallQuery
	if err := runtimetypes.UnmarshalCBOR(args, &q); err != nil {
		return nil, runtimetypes.ErrInvalidArgument
	}
	if q.GasLimit > k.simulateCallMaxGas {
		return nil, runtimetypes.SimulationTooExpensive(k.simulateCallMaxGas)
	}

	child := ctx.NewChildContext(runtimectx.ModeSimulate)
	backend := k.newBackend(child)
	simCaller := common.BytesToAddress(q.Caller[:])
	target := common.BytesToAddress(q.Address[:])
	value := bytes32ToUint256(q.Value)

	ret, leftOverGas, err := k.executor.Call(backend, simCaller, target, q.Data, q.GasLimit, value)
	child.Rollback()

	result := evmtypes.SimulateCallResult{GasUsed: q.GasLimit - leftOverGas, ReturnValue: ret}
	if err != nil {
		result.Failed = true
		if reason, decoded := evmtypes.DecodeRevertReason(ret); decoded {
			result.Reason = reason
		} else {
			result.Reason = err.Error()
		}
	}
	return runtimetypes.MarshalCBOR(result)
}
