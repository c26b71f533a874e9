// Package types holds the EVM bridge's wire messages, backend interfaces
// and module-qualified errors (spec.md §4.4, §2 component 7).
package types

import (
	"crypto/sha256"

	"github.com/ethereum/go-ethereum/common"

	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
)

// ModuleName is the EVM bridge module's name, used as its error codespace
// and event/CallFailure module tag.
const ModuleName = "evm"

// SystemAddress is the fixed, compiled-in address S the stable-coin bridge
// invokes the contract from (spec.md §4.4 "Stable-coin bridge": "A fixed
// system address S and fixed contract address C are compiled in"). Derived
// by domain-separated hash, the same construction accounts.AccumulatorAddress
// uses, so it can never collide with a user- or contract-derived address.
var SystemAddress = deriveAddress("evm/stablecoin-bridge-system")

// ContractAddress is the fixed, compiled-in stable-coin bridge contract
// address C.
var ContractAddress = deriveAddress("evm/stablecoin-bridge-contract")

func deriveAddress(domain string) common.Address {
	h := sha256.Sum256([]byte(domain))
	return common.BytesToAddress(h[:20])
}

// ContractAddressNative is ContractAddress rendered as a runtime Address,
// for handlers that move balances through the accounts keeper rather than
// the EVM Backend.
func ContractAddressNative() runtimetypes.Address {
	return NativeAddress(ContractAddress)
}

// NativeAddress maps a 20-byte EVM address onto the runtime's 21-byte
// Address space, the "native accounts bridge" spec.md §4.4 describes: the
// EVM account and its native counterpart are the same account, addressed
// under the one fixed version byte every runtime address uses.
func NativeAddress(addr common.Address) runtimetypes.Address {
	a, err := runtimetypes.NewAddress(runtimetypes.AddressVersion, addr.Bytes())
	if err != nil {
		// addr.Bytes() is always exactly 20 bytes; NewAddress only rejects
		// a mismatched payload length.
		panic(err)
	}
	return a
}
