// Package evmtest provides a pure in-memory Backend and a trivial Executor
// double for tests, the way spec.md §9 calls for: "Design the Backend
// trait so a test double can substitute a pure in-memory map." It never
// interprets bytecode; Call/Create only exercise the value-transfer and
// storage-touching paths a test needs, leaving genuine EVM execution to the
// out-of-scope interpreter a real deployment wires in.
package evmtest

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/HelaNetwork/runtime-sdk-go/x/evm/types"
)

// Backend is a pure in-memory implementation of types.Backend.
type Backend struct {
	balances map[common.Address]*uint256.Int
	nonces   map[common.Address]uint64
	code     map[common.Address][]byte
	storage  map[common.Address]map[common.Hash]common.Hash
}

// NewBackend constructs an empty in-memory backend.
func NewBackend() *Backend {
	return &Backend{
		balances: make(map[common.Address]*uint256.Int),
		nonces:   make(map[common.Address]uint64),
		code:     make(map[common.Address][]byte),
		storage:  make(map[common.Address]map[common.Hash]common.Hash),
	}
}

func (b *Backend) GetBalance(addr common.Address) *uint256.Int {
	if v, ok := b.balances[addr]; ok {
		return v.Clone()
	}
	return uint256.NewInt(0)
}

func (b *Backend) AddBalance(addr common.Address, amount *uint256.Int) {
	cur := b.GetBalance(addr)
	cur.Add(cur, amount)
	b.balances[addr] = cur
}

func (b *Backend) SubBalance(addr common.Address, amount *uint256.Int) {
	cur := b.GetBalance(addr)
	cur.Sub(cur, amount)
	b.balances[addr] = cur
}

func (b *Backend) GetNonce(addr common.Address) uint64 { return b.nonces[addr] }

func (b *Backend) SetNonce(addr common.Address, nonce uint64) { b.nonces[addr] = nonce }

func (b *Backend) GetCode(addr common.Address) []byte { return b.code[addr] }

func (b *Backend) SetCode(addr common.Address, code []byte) { b.code[addr] = code }

func (b *Backend) GetCodeHash(addr common.Address) common.Hash {
	code := b.code[addr]
	if len(code) == 0 {
		return common.Hash{}
	}
	return crypto.Keccak256Hash(code)
}

func (b *Backend) GetState(addr common.Address, key common.Hash) common.Hash {
	slots, ok := b.storage[addr]
	if !ok {
		return common.Hash{}
	}
	return slots[key]
}

func (b *Backend) SetState(addr common.Address, key, value common.Hash) {
	slots, ok := b.storage[addr]
	if !ok {
		slots = make(map[common.Hash]common.Hash)
		b.storage[addr] = slots
	}
	slots[key] = value
}

func (b *Backend) Exist(addr common.Address) bool {
	_, hasCode := b.code[addr]
	_, hasNonce := b.nonces[addr]
	_, hasBalance := b.balances[addr]
	return hasCode || hasNonce || hasBalance
}

func (b *Backend) CreateAccount(addr common.Address) {
	if _, ok := b.balances[addr]; !ok {
		b.balances[addr] = uint256.NewInt(0)
	}
}

// Executor is a minimal types.Executor double: Call moves value and
// otherwise echoes its input as its return value; Create stores initCode
// verbatim as the new contract's code at a counter-derived address. Neither
// runs real bytecode; they exist so callers exercising the bridge's
// plumbing (gas accounting, value routing, revert decoding) don't need a
// real interpreter wired in.
type Executor struct {
	nextCreated uint64
}

// NewExecutor constructs a fresh test double.
func NewExecutor() *Executor { return &Executor{} }

func (e *Executor) Create(backend types.Backend, caller common.Address, initCode []byte, gas uint64, value *uint256.Int) (common.Address, []byte, uint64, error) {
	e.nextCreated++
	var addr common.Address
	addr[19] = byte(e.nextCreated)
	backend.SetCode(addr, initCode)
	if value != nil && !value.IsZero() {
		backend.SubBalance(caller, value)
		backend.AddBalance(addr, value)
	}
	return addr, nil, gas, nil
}

func (e *Executor) Call(backend types.Backend, caller, target common.Address, input []byte, gas uint64, value *uint256.Int) ([]byte, uint64, error) {
	if value != nil && !value.IsZero() {
		backend.SubBalance(caller, value)
		backend.AddBalance(target, value)
	}
	return input, gas, nil
}
