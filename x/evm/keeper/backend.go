package keeper

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/HelaNetwork/runtime-sdk-go/runtimectx"
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
	"github.com/HelaNetwork/runtime-sdk-go/x/evm/types"
)

// contextBackend implements types.Backend over one execution context,
// routing balance and nonce through the shared account record the accounts
// keeper owns, and code/storage through this module's own prefixed store
// (spec.md §4.4 "native accounts bridge").
type contextBackend struct {
	ctx *runtimectx.Context
	k   *Keeper
}

// newBackend builds the state view a Create/Call (or the evmtest double's
// real-interpreter counterpart) reads and writes through.
func (k *Keeper) newBackend(ctx *runtimectx.Context) types.Backend {
	return &contextBackend{ctx: ctx, k: k}
}

func (b *contextBackend) GetBalance(addr common.Address) *uint256.Int {
	amt := b.k.accounts.GetBalance(b.ctx, types.NativeAddress(addr), runtimetypes.NativeDenomination)
	return uintToUint256(amt)
}

func (b *contextBackend) AddBalance(addr common.Address, amount *uint256.Int) {
	base := runtimetypes.BaseUnits{Amount: uint256ToUint(amount), Denomination: runtimetypes.NativeDenomination}
	_ = b.k.accounts.AddAmount(b.ctx, types.NativeAddress(addr), base)
}

func (b *contextBackend) SubBalance(addr common.Address, amount *uint256.Int) {
	base := runtimetypes.BaseUnits{Amount: uint256ToUint(amount), Denomination: runtimetypes.NativeDenomination}
	_ = b.k.accounts.SubAmount(b.ctx, types.NativeAddress(addr), base)
}

func (b *contextBackend) GetNonce(addr common.Address) uint64 {
	return b.k.accounts.GetNonce(b.ctx, types.NativeAddress(addr))
}

func (b *contextBackend) SetNonce(addr common.Address, nonce uint64) {
	native := types.NativeAddress(addr)
	acct := b.k.accounts.GetAccount(b.ctx, native)
	acct.Nonce = nonce
	_ = b.k.accounts.SetAccount(b.ctx, native, acct)
}

func (b *contextBackend) GetCode(addr common.Address) []byte {
	var code []byte
	found, err := moduleStore(b.ctx).Get(codeKey(addr), &code)
	if err != nil || !found {
		return nil
	}
	return code
}

func (b *contextBackend) SetCode(addr common.Address, code []byte) {
	_ = moduleStore(b.ctx).Insert(codeKey(addr), code)
}

func (b *contextBackend) GetCodeHash(addr common.Address) common.Hash {
	code := b.GetCode(addr)
	if len(code) == 0 {
		return common.Hash{}
	}
	return crypto.Keccak256Hash(code)
}

func (b *contextBackend) GetState(addr common.Address, key common.Hash) common.Hash {
	var bz []byte
	found, err := moduleStore(b.ctx).Get(storageKey(addr, key), &bz)
	if err != nil || !found {
		return common.Hash{}
	}
	return common.BytesToHash(bz)
}

func (b *contextBackend) SetState(addr common.Address, key, value common.Hash) {
	if value == (common.Hash{}) {
		moduleStore(b.ctx).Delete(storageKey(addr, key))
		return
	}
	_ = moduleStore(b.ctx).Insert(storageKey(addr, key), value.Bytes())
}

func (b *contextBackend) Exist(addr common.Address) bool {
	native := types.NativeAddress(addr)
	if moduleStore(b.ctx).Has(codeKey(addr)) {
		return true
	}
	acct := b.k.accounts.GetAccount(b.ctx, native)
	return acct.Nonce != 0 || !b.GetBalance(addr).IsZero()
}

// CreateAccount is a no-op: the accounts module already creates the
// implicit default account on first reference (spec.md §3), so there is no
// separate "account exists" flag to set here.
func (b *contextBackend) CreateAccount(addr common.Address) {}
