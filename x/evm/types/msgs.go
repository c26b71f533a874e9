package types

import (
	"github.com/ethereum/go-ethereum/common"

	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
)

// CreateParams is the argument of evm.Create (spec.md §6).
type CreateParams struct {
	Value    runtimetypes.BaseUnits `cbor:"value"`
	InitCode []byte                 `cbor:"init_code"`
}

// CreateResult is the 20-byte created contract address on success.
type CreateResult struct {
	Address [20]byte `cbor:"address"`
}

// CallResult is the successful-call return value of evm.Call.
type CallResult struct {
	ReturnValue []byte `cbor:"return_value"`
}

// CallParams is the argument of evm.Call (spec.md §6).
type CallParams struct {
	Address [20]byte               `cbor:"address"`
	Value   runtimetypes.BaseUnits `cbor:"value"`
	Data    []byte                 `cbor:"data"`
}

// WithdrawReserveParams is the argument of withdraw.reserve, the
// bridge-internal call spec.md §6 lists alongside evm.Create/evm.Call.
type WithdrawReserveParams struct {
	Address runtimetypes.Address   `cbor:"address"`
	Value   runtimetypes.BaseUnits `cbor:"value"`
}

func toEthAddress(a [20]byte) common.Address {
	return common.BytesToAddress(a[:])
}

func fromEthAddress(a common.Address) [20]byte {
	var out [20]byte
	copy(out[:], a.Bytes())
	return out
}
