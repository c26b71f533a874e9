package types

import (
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
)

// GenesisAccount seeds one account's starting nonce (spec.md §6 "Genesis").
type GenesisAccount struct {
	Address runtimetypes.Address `cbor:"address"`
	Nonce   uint64               `cbor:"nonce"`
}

// GenesisBalance seeds one (address, denomination) balance.
type GenesisBalance struct {
	Address runtimetypes.Address   `cbor:"address"`
	Amount  runtimetypes.BaseUnits `cbor:"amount"`
}

// GenesisTotalSupply seeds one denomination's declared total supply.
type GenesisTotalSupply struct {
	Denomination runtimetypes.Denomination `cbor:"denomination"`
	Amount       runtimetypes.Amount128    `cbor:"amount"`
}

// GenesisParameters seeds the per-action quorum percentages and the
// chain_initiator address that InitOwners is gated on (spec.md §4.2
// "Initialization").
type GenesisParameters struct {
	ChainInitiator   runtimetypes.Address `cbor:"chain_initiator"`
	MintQuorum       uint8                `cbor:"mint_quorum"`
	BurnQuorum       uint8                `cbor:"burn_quorum"`
	WhitelistQuorum  uint8                `cbor:"whitelist_quorum"`
	BlacklistQuorum  uint8                `cbor:"blacklist_quorum"`
	ConfigQuorum     uint8                `cbor:"config_quorum"`
}

// Genesis is the accounts module's genesis document (spec.md §6:
// "{parameters, accounts, balances, total_supplies, roles_accounts}").
type Genesis struct {
	Parameters    GenesisParameters `cbor:"parameters"`
	Accounts      []GenesisAccount  `cbor:"accounts"`
	Balances      []GenesisBalance  `cbor:"balances"`
	TotalSupplies []GenesisTotalSupply `cbor:"total_supplies"`
	RolesAccounts []OwnerRole       `cbor:"roles_accounts"`
}
