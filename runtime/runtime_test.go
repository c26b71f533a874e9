package runtime_test

import (
	"crypto/ed25519"
	"testing"

	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/HelaNetwork/runtime-sdk-go/config"
	"github.com/HelaNetwork/runtime-sdk-go/runtime"
	"github.com/HelaNetwork/runtime-sdk-go/storage/memkv"
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
	accountstypes "github.com/HelaNetwork/runtime-sdk-go/x/accounts/types"
	"github.com/HelaNetwork/runtime-sdk-go/x/evm/evmtest"
)

func testAddr(t *testing.T, b byte) runtimetypes.Address {
	t.Helper()
	payload := make([]byte, 20)
	payload[19] = b
	a, err := runtimetypes.NewAddress(runtimetypes.AddressVersion, payload)
	require.NoError(t, err)
	return a
}

// TestRuntimeProcessesABatchAndFinalizesABlock exercises one full round:
// construct a Runtime, seed a sender's balance via genesis, dispatch a
// signed transfer through ProcessBatch, then run FinalizeBlock.
func TestRuntimeProcessesABatchAndFinalizesABlock(t *testing.T) {
	chainInitiator := testAddr(t, 0xaa)
	r := runtime.New(log.NewNopLogger(), config.DefaultLocalConfig(), chainInitiator, evmtest.NewExecutor())

	batchCtx := r.NewBatchContext(memkv.New(), 1, 1)

	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	sender, err := runtimetypes.AddressFromPublicKey(pub)
	require.NoError(t, err)

	require.NoError(t, r.InitGenesis(batchCtx, accountstypes.Genesis{
		Balances: []accountstypes.GenesisBalance{
			{Address: sender, Amount: runtimetypes.NewBaseUnits(1000, runtimetypes.NativeDenomination)},
		},
		TotalSupplies: []accountstypes.GenesisTotalSupply{
			{Denomination: runtimetypes.NativeDenomination, Amount: runtimetypes.NewAmount128(1000)},
		},
	}))

	recipient := testAddr(t, 0x02)
	params := accountstypes.TransferParams{To: recipient, Amount: runtimetypes.NewBaseUnits(100, runtimetypes.NativeDenomination)}
	body, err := runtimetypes.MarshalCBOR(params)
	require.NoError(t, err)

	tx := runtimetypes.Transaction{
		Call: runtimetypes.Call{Method: "accounts.Transfer", Body: body},
		AuthInfo: runtimetypes.AuthInfo{
			Nonce: 0,
			Fee:   runtimetypes.Fee{GasPrice: runtimetypes.NewAmount128(0), GasLimit: accountstypes.GasTransfer},
			Proof: runtimetypes.AuthProof{PublicKey: pub},
		},
	}
	msg, err := tx.SigningBytes()
	require.NoError(t, err)
	tx.AuthInfo.Proof.Signature = ed25519.Sign(priv, msg)
	raw, err := runtimetypes.MarshalCBOR(tx)
	require.NoError(t, err)

	results, err := r.ProcessBatch(batchCtx, [][]byte{raw}, 2)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.True(t, results[0].IsSuccess())

	require.Equal(t, sdkmath.NewUint(900), r.Accounts.GetBalance(batchCtx, sender, runtimetypes.NativeDenomination))
	require.Equal(t, sdkmath.NewUint(100), r.Accounts.GetBalance(batchCtx, recipient, runtimetypes.NativeDenomination))

	require.NoError(t, r.FinalizeBlock(batchCtx, nil, []byte("blockhash-1"), nil))
}
