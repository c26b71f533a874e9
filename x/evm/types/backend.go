package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Backend is the state read/write surface the EVM bridge needs from the
// overlay store, modeled after the go-ethereum core/vm.StateDB interface
// the teacher's x/vm/statedb.StateDB implements, but trimmed to exactly
// what spec.md §9 "EVM integration" calls for: "Backend (state read/write
// over the overlay) ... Design the Backend trait so a test double can
// substitute a pure in-memory map." The embedded EVM interpreter itself is
// an external collaborator (spec.md §1); this interface is the seam
// between it and this module's overlay-backed accounting.
type Backend interface {
	GetBalance(addr common.Address) *uint256.Int
	AddBalance(addr common.Address, amount *uint256.Int)
	SubBalance(addr common.Address, amount *uint256.Int)

	GetNonce(addr common.Address) uint64
	SetNonce(addr common.Address, nonce uint64)

	GetCode(addr common.Address) []byte
	SetCode(addr common.Address, code []byte)
	GetCodeHash(addr common.Address) common.Hash

	GetState(addr common.Address, key common.Hash) common.Hash
	SetState(addr common.Address, key, value common.Hash)

	Exist(addr common.Address) bool
	CreateAccount(addr common.Address)
}

// Executor runs EVM bytecode against a Backend. The actual interpreter is
// out of scope (spec.md §1: "the embedded EVM interpreter (only the bridge
// contract is specified)"); this interface is what a host wires to a real
// implementation (e.g. go-ethereum's core/vm.EVM) — the bridge only ever
// calls through it.
type Executor interface {
	// Create runs init code as a contract-creation message. addr is the
	// deterministic contract address computed from (caller, legacy
	// scheme), per spec.md §4.4 "Create".
	Create(backend Backend, caller common.Address, initCode []byte, gas uint64, value *uint256.Int) (addr common.Address, ret []byte, leftOverGas uint64, err error)

	// Call runs a message call against a deployed contract.
	Call(backend Backend, caller, target common.Address, input []byte, gas uint64, value *uint256.Int) (ret []byte, leftOverGas uint64, err error)
}

// Vicinity carries the block/transaction-scoped parameters the interpreter
// needs beyond the message itself (spec.md §9 "Vicinity (origin,
// gas_price)").
type Vicinity struct {
	Origin   common.Address
	GasPrice *uint256.Int
}
