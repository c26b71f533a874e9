package dispatcher_test

import (
	"crypto/ed25519"
	"testing"

	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/HelaNetwork/runtime-sdk-go/config"
	"github.com/HelaNetwork/runtime-sdk-go/dispatcher"
	"github.com/HelaNetwork/runtime-sdk-go/feeaccumulator"
	"github.com/HelaNetwork/runtime-sdk-go/runtimectx"
	"github.com/HelaNetwork/runtime-sdk-go/storage/memkv"
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
	accountskeeper "github.com/HelaNetwork/runtime-sdk-go/x/accounts/keeper"
	accountstypes "github.com/HelaNetwork/runtime-sdk-go/x/accounts/types"
)

func newBatchCtx(t *testing.T) *runtimectx.Context {
	t.Helper()
	return runtimectx.NewBatchContext(memkv.New(), 1, log.NewNopLogger(), 1)
}

// testSigner bundles an ed25519 keypair and its derived runtime address, so
// test transactions can be signed against the built-in auth scheme.
type testSigner struct {
	pub  ed25519.PublicKey
	priv ed25519.PrivateKey
	addr runtimetypes.Address
}

func newSigner(t *testing.T) testSigner {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	addr, err := runtimetypes.AddressFromPublicKey(pub)
	require.NoError(t, err)
	return testSigner{pub: pub, priv: priv, addr: addr}
}

func (s testSigner) sign(t *testing.T, call runtimetypes.Call, nonce uint64, fee runtimetypes.Fee) []byte {
	t.Helper()
	tx := runtimetypes.Transaction{
		Call: call,
		AuthInfo: runtimetypes.AuthInfo{
			Nonce: nonce,
			Fee:   fee,
			Proof: runtimetypes.AuthProof{PublicKey: s.pub},
		},
	}
	msg, err := tx.SigningBytes()
	require.NoError(t, err)
	tx.AuthInfo.Proof.Signature = ed25519.Sign(s.priv, msg)
	raw, err := runtimetypes.MarshalCBOR(tx)
	require.NoError(t, err)
	return raw
}

func newDispatcher(t *testing.T) (*dispatcher.Dispatcher, *accountskeeper.Keeper) {
	t.Helper()
	chainInitiator := testAddr(t, 0xaa)
	accounts := accountskeeper.NewKeeper(log.NewNopLogger(), chainInitiator)
	d := dispatcher.New(log.NewNopLogger(), accounts, config.DefaultLocalConfig(), accounts.Module())
	return d, accounts
}

func testAddr(t *testing.T, b byte) runtimetypes.Address {
	t.Helper()
	payload := make([]byte, 20)
	payload[19] = b
	a, err := runtimetypes.NewAddress(runtimetypes.AddressVersion, payload)
	require.NoError(t, err)
	return a
}

func noFee() runtimetypes.Fee {
	return runtimetypes.Fee{GasPrice: runtimetypes.NewAmount128(0), GasLimit: accountstypes.GasTransfer}
}

func TestDispatchTxTransferSuccess(t *testing.T) {
	d, accounts := newDispatcher(t)
	batchCtx := newBatchCtx(t)

	sender := newSigner(t)
	require.NoError(t, accounts.SetBalance(batchCtx, sender.addr, runtimetypes.NativeDenomination, sdkmath.NewUint(1000)))
	recipient := testAddr(t, 0x02)

	params := accountstypes.TransferParams{To: recipient, Amount: runtimetypes.NewBaseUnits(100, runtimetypes.NativeDenomination)}
	body, err := runtimetypes.MarshalCBOR(params)
	require.NoError(t, err)

	raw := sender.sign(t, runtimetypes.Call{Method: "accounts.Transfer", Body: body}, 0, noFee())

	accum := feeaccumulator.New()
	res := d.DispatchTx(batchCtx, 0, raw, accum)
	require.True(t, res.IsSuccess())

	require.Equal(t, sdkmath.NewUint(900), accounts.GetBalance(batchCtx, sender.addr, runtimetypes.NativeDenomination))
	require.Equal(t, sdkmath.NewUint(100), accounts.GetBalance(batchCtx, recipient, runtimetypes.NativeDenomination))
	require.Equal(t, uint64(1), accounts.GetNonce(batchCtx, sender.addr))
}

func TestDispatchTxRejectsReplayedNonce(t *testing.T) {
	d, accounts := newDispatcher(t)
	batchCtx := newBatchCtx(t)

	sender := newSigner(t)
	require.NoError(t, accounts.SetBalance(batchCtx, sender.addr, runtimetypes.NativeDenomination, sdkmath.NewUint(1000)))
	recipient := testAddr(t, 0x02)
	params := accountstypes.TransferParams{To: recipient, Amount: runtimetypes.NewBaseUnits(10, runtimetypes.NativeDenomination)}
	body, err := runtimetypes.MarshalCBOR(params)
	require.NoError(t, err)

	raw := sender.sign(t, runtimetypes.Call{Method: "accounts.Transfer", Body: body}, 0, noFee())
	accum := feeaccumulator.New()
	require.True(t, d.DispatchTx(batchCtx, 0, raw, accum).IsSuccess())

	// Replaying the same nonce-0 transaction must fail now the account's
	// nonce has advanced to 1.
	res := d.DispatchTx(batchCtx, 1, raw, accum)
	require.False(t, res.IsSuccess())
}

func TestDispatchTxUnknownMethod(t *testing.T) {
	d, accounts := newDispatcher(t)
	batchCtx := newBatchCtx(t)
	sender := newSigner(t)
	require.NoError(t, accounts.SetBalance(batchCtx, sender.addr, runtimetypes.NativeDenomination, sdkmath.NewUint(1000)))

	raw := sender.sign(t, runtimetypes.Call{Method: "accounts.DoesNotExist", Body: nil}, 0, noFee())
	accum := feeaccumulator.New()
	res := d.DispatchTx(batchCtx, 0, raw, accum)
	require.False(t, res.IsSuccess())
}

func TestDispatchTxMalformedBytesFails(t *testing.T) {
	d, _ := newDispatcher(t)
	batchCtx := newBatchCtx(t)
	accum := feeaccumulator.New()
	res := d.DispatchTx(batchCtx, 0, []byte{0xff, 0xff, 0xff}, accum)
	require.False(t, res.IsSuccess())
}

func TestAuthenticateMovesFeeToAccumulatorWithoutRefundWhenGasFullyUsed(t *testing.T) {
	d, accounts := newDispatcher(t)
	batchCtx := newBatchCtx(t)

	sender := newSigner(t)
	require.NoError(t, accounts.SetBalance(batchCtx, sender.addr, runtimetypes.NativeDenomination, sdkmath.NewUint(100_000)))

	fee := runtimetypes.Fee{GasPrice: runtimetypes.NewAmount128(2), GasLimit: accountstypes.GasTransfer}
	recipient := testAddr(t, 0x03)
	params := accountstypes.TransferParams{To: recipient, Amount: runtimetypes.NewBaseUnits(50, runtimetypes.NativeDenomination)}
	body, err := runtimetypes.MarshalCBOR(params)
	require.NoError(t, err)
	raw := sender.sign(t, runtimetypes.Call{Method: "accounts.Transfer", Body: body}, 0, fee)

	accum := feeaccumulator.New()
	res := d.DispatchTx(batchCtx, 0, raw, accum)
	require.True(t, res.IsSuccess())

	// gas_used == GasTransfer (the method's declared GasCost) == gas_limit,
	// so the full fee is spent and nothing is refunded: the accumulator
	// address keeps GasTransfer*2 native units, not zero.
	accAddr := accountskeeper.FeeAccumulatorAddress()
	got := accounts.GetBalance(batchCtx, accAddr, runtimetypes.NativeDenomination)
	require.Equal(t, sdkmath.NewUint(accountstypes.GasTransfer*2), got)
}

func TestDispatchTxCheckOnlyDefersNonceAndFeeUpdate(t *testing.T) {
	d, accounts := newDispatcher(t)
	batchCtx := newBatchCtx(t)
	checkCtx := batchCtx.NewChildContext(runtimectx.ModeCheck)

	sender := newSigner(t)
	require.NoError(t, accounts.SetBalance(checkCtx, sender.addr, runtimetypes.NativeDenomination, sdkmath.NewUint(100_000)))
	recipient := testAddr(t, 0x04)

	fee := runtimetypes.Fee{GasPrice: runtimetypes.NewAmount128(1), GasLimit: accountstypes.GasTransfer}
	params := accountstypes.TransferParams{To: recipient, Amount: runtimetypes.NewBaseUnits(10, runtimetypes.NativeDenomination)}
	body, err := runtimetypes.MarshalCBOR(params)
	require.NoError(t, err)
	raw := sender.sign(t, runtimetypes.Call{Method: "accounts.Transfer", Body: body}, 0, fee)

	accum := feeaccumulator.New()
	res := d.DispatchTx(checkCtx, 0, raw, accum)
	require.True(t, res.IsSuccess())

	// A successful check-only dispatch must still advance the nonce and
	// debit the declared fee once the result is known, even though the
	// transfer itself never committed against checkCtx.
	require.Equal(t, uint64(1), accounts.GetNonce(checkCtx, sender.addr))
	require.Equal(t, sdkmath.NewUint(100_000-accountstypes.GasTransfer), accounts.GetBalance(checkCtx, sender.addr, runtimetypes.NativeDenomination))
	require.Equal(t, sdkmath.ZeroUint(), accounts.GetBalance(checkCtx, recipient, runtimetypes.NativeDenomination))

	// Replaying the same nonce against the same check context must now
	// fail, proving the update is visible to later checks in this batch.
	res2 := d.DispatchTx(checkCtx, 1, raw, accum)
	require.False(t, res2.IsSuccess())
}

func TestQueryRejectsUnknownName(t *testing.T) {
	d, _ := newDispatcher(t)
	batchCtx := newBatchCtx(t)
	_, err := d.Query(batchCtx, "accounts.DoesNotExist", nil)
	require.ErrorIs(t, err, runtimetypes.ErrNotFound)
}

func TestQueryNonceSucceeds(t *testing.T) {
	d, accounts := newDispatcher(t)
	batchCtx := newBatchCtx(t)
	sender := newSigner(t)
	require.NoError(t, accounts.SetBalance(batchCtx, sender.addr, runtimetypes.NativeDenomination, sdkmath.NewUint(500)))

	args, err := runtimetypes.MarshalCBOR(accountstypes.AddressQuery{Address: sender.addr})
	require.NoError(t, err)

	out, err := d.Query(batchCtx, "accounts.Nonce", args)
	require.NoError(t, err)
	require.NotNil(t, out)
}
