package types

import (
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
)

// Account is the per-address record keyed by address (spec.md §3).
// Created implicitly on first reference; default role is User.
type Account struct {
	Nonce uint64             `cbor:"nonce"`
	Role  runtimetypes.Role  `cbor:"role"`
	Init  bool               `cbor:"init"`
}

// NewDefaultAccount returns the implicit default account for an
// address seen for the first time (spec.md §3 "default role is User").
func NewDefaultAccount() Account {
	return Account{Role: runtimetypes.RoleUser}
}
