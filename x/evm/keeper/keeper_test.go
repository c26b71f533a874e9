package keeper_test

import (
	"testing"

	"cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/HelaNetwork/runtime-sdk-go/runtimectx"
	"github.com/HelaNetwork/runtime-sdk-go/storage/memkv"
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
	accountskeeper "github.com/HelaNetwork/runtime-sdk-go/x/accounts/keeper"
	"github.com/HelaNetwork/runtime-sdk-go/x/evm/evmtest"
	"github.com/HelaNetwork/runtime-sdk-go/x/evm/keeper"
	evmtypes "github.com/HelaNetwork/runtime-sdk-go/x/evm/types"
)

func newTestContext(t *testing.T) *runtimectx.Context {
	t.Helper()
	return runtimectx.NewBatchContext(memkv.New(), 1, log.NewNopLogger(), 1)
}

func newTestKeeper(t *testing.T) (*keeper.Keeper, *accountskeeper.Keeper) {
	t.Helper()
	ac := accountskeeper.NewKeeper(log.NewNopLogger(), runtimetypes.Address{})
	k := keeper.NewKeeper(log.NewNopLogger(), ac, evmtest.NewExecutor(), 10_000_000, 1_000_000)
	return k, ac
}

func ethAddr(b byte) common.Address {
	var a common.Address
	a[19] = b
	return a
}

func withCaller(ctx *runtimectx.Context, addr runtimetypes.Address) {
	ctx.SetValue(accountskeeper.CallerValueKey, addr)
}

// evm.Call to an empty-code address with value 0 and empty data succeeds,
// transfers zero, and emits no log events, per spec.md §8.
func TestCallEmptyCodeZeroValueNoOp(t *testing.T) {
	ctx := newTestContext(t)
	k, ac := newTestKeeper(t)

	from := evmtypes.NativeAddress(ethAddr(1))
	to := ethAddr(2)
	withCaller(ctx, from)

	params := evmtypes.CallParams{Address: [20]byte(to), Value: runtimetypes.NewBaseUnits(0, runtimetypes.NativeDenomination)}
	args, err := runtimetypes.MarshalCBOR(params)
	require.NoError(t, err)

	handlers := k.Module().MethodTable()
	res, err := handlers["evm.Call"].Handler(ctx, args)
	require.NoError(t, err)
	require.True(t, res.IsSuccess())
	require.True(t, ac.GetBalance(ctx, evmtypes.NativeAddress(to), runtimetypes.NativeDenomination).IsZero())
}

// A value transfer to an empty-code address routes through the accounts
// module rather than invoking the (absent) interpreter, per spec.md §4.4
// "Call routing".
func TestCallEmptyCodeValueTransferRoutesToAccounts(t *testing.T) {
	ctx := newTestContext(t)
	k, ac := newTestKeeper(t)

	from := evmtypes.NativeAddress(ethAddr(1))
	to := ethAddr(2)
	require.NoError(t, ac.AddAmount(ctx, from, runtimetypes.NewBaseUnits(1000, runtimetypes.NativeDenomination)))
	withCaller(ctx, from)

	params := evmtypes.CallParams{Address: [20]byte(to), Value: runtimetypes.NewBaseUnits(400, runtimetypes.NativeDenomination)}
	args, err := runtimetypes.MarshalCBOR(params)
	require.NoError(t, err)

	handlers := k.Module().MethodTable()
	res, err := handlers["evm.Call"].Handler(ctx, args)
	require.NoError(t, err)
	require.True(t, res.IsSuccess())
	require.Equal(t, uint64(600), ac.GetBalance(ctx, from, runtimetypes.NativeDenomination).Uint64())
	require.Equal(t, uint64(400), ac.GetBalance(ctx, evmtypes.NativeAddress(to), runtimetypes.NativeDenomination).Uint64())
}

// Scenario 6 of spec.md §8: EVM revert decoding recovers a Reverted("hello")
// result from the Solidity Error(string) ABI encoding.
func TestRevertDecoding(t *testing.T) {
	selector := []byte{0x08, 0xc3, 0x79, 0xa0}
	offset := make([]byte, 32)
	offset[31] = 0x20
	length := make([]byte, 32)
	length[31] = 5
	body := make([]byte, 32)
	copy(body, "hello")

	data := append(append(append(selector, offset...), length...), body...)
	reason, ok := evmtypes.DecodeRevertReason(data)
	require.True(t, ok)
	require.Equal(t, "hello", reason)
}

func TestRevertDecodingRejectsShortData(t *testing.T) {
	_, ok := evmtypes.DecodeRevertReason([]byte{0x08, 0xc3, 0x79, 0xa0})
	require.False(t, ok)
}

func TestRevertDecodingRejectsWrongSelector(t *testing.T) {
	data := make([]byte, 68)
	_, ok := evmtypes.DecodeRevertReason(data)
	require.False(t, ok)
}

// Only evmtypes.SystemAddress may invoke call_sc_mint, per spec.md §4.4
// "Stable-coin bridge".
func TestSCMintRejectsNonSystemCaller(t *testing.T) {
	ctx := newTestContext(t)
	k, _ := newTestKeeper(t)

	notSystem := evmtypes.NativeAddress(ethAddr(9))
	withCaller(ctx, notSystem)

	params := evmtypes.WithdrawReserveParams{Address: notSystem, Value: runtimetypes.NewBaseUnits(1, runtimetypes.NativeDenomination)}
	args, err := runtimetypes.MarshalCBOR(params)
	require.NoError(t, err)

	handlers := k.Module().MethodTable()
	_, err = handlers["call_sc_mint"].Handler(ctx, args)
	require.ErrorIs(t, err, evmtypes.ErrNotSystemCall)
}

func TestSCMintCreditsBalanceFromSystemCaller(t *testing.T) {
	ctx := newTestContext(t)
	k, ac := newTestKeeper(t)

	withCaller(ctx, evmtypes.NativeAddress(evmtypes.SystemAddress))

	target := evmtypes.NativeAddress(ethAddr(5))
	params := evmtypes.WithdrawReserveParams{Address: target, Value: runtimetypes.NewBaseUnits(777, runtimetypes.NativeDenomination)}
	args, err := runtimetypes.MarshalCBOR(params)
	require.NoError(t, err)

	handlers := k.Module().MethodTable()
	res, err := handlers["call_sc_mint"].Handler(ctx, args)
	require.NoError(t, err)
	require.True(t, res.IsSuccess())
	require.Equal(t, uint64(777), ac.GetBalance(ctx, target, runtimetypes.NativeDenomination).Uint64())
}

// evm.SimulateCall with gas_limit above the configured ceiling is rejected
// before the interpreter runs, per spec.md §8
// ("SimulationTooExpensive").
func TestSimulateCallRejectsOverLimit(t *testing.T) {
	ctx := newTestContext(t)
	k, _ := newTestKeeper(t)

	q := evmtypes.SimulateCallQuery{GasLimit: 20_000_000}
	args, err := runtimetypes.MarshalCBOR(q)
	require.NoError(t, err)

	queries := k.Module().QueryTable()
	_, err = queries["evm.SimulateCall"].Handler(ctx, args)
	require.Error(t, err)
}

// evm.SimulateCall always discards its child context's overlay, even on a
// successful call, per spec.md §3.
func TestSimulateCallDiscardsOverlay(t *testing.T) {
	ctx := newTestContext(t)
	k, ac := newTestKeeper(t)

	from := ethAddr(1)
	to := ethAddr(2)
	require.NoError(t, ac.AddAmount(ctx, evmtypes.NativeAddress(from), runtimetypes.NewBaseUnits(500, runtimetypes.NativeDenomination)))

	q := evmtypes.SimulateCallQuery{
		GasLimit: 100_000,
		Caller:   [20]byte(from),
		Address:  [20]byte(to),
	}
	args, err := runtimetypes.MarshalCBOR(q)
	require.NoError(t, err)

	queries := k.Module().QueryTable()
	raw, err := queries["evm.SimulateCall"].Handler(ctx, args)
	require.NoError(t, err)

	var res evmtypes.SimulateCallResult
	require.NoError(t, runtimetypes.UnmarshalCBOR(raw, &res))
	require.False(t, res.Failed)

	// the simulation's own Call routes through the Backend (not accounts
	// Transfer, since it never sees empty-code detection), so verify the
	// *committed* balance is untouched by the discarded child overlay.
	require.Equal(t, uint64(500), ac.GetBalance(ctx, evmtypes.NativeAddress(from), runtimetypes.NativeDenomination).Uint64())
}
