package types

import (
	errorsmod "cosmossdk.io/errors"
)

// Role is a named capability grant attached to an address; at most one role
// per address (spec.md §3, I5). Encoded as a single-byte tag whose numeric
// values are part of the persisted format and must never be reassigned.
type Role byte

const (
	RoleAdmin              Role = 0
	RoleMintProposer       Role = 1
	RoleMintVoter          Role = 2
	RoleBurnProposer       Role = 3
	RoleBurnVoter          Role = 4
	RoleWhitelistProposer  Role = 5
	RoleWhitelistVoter     Role = 6
	RoleBlacklistProposer  Role = 7
	RoleBlacklistVoter     Role = 8
	RoleWhitelistedUser    Role = 9
	RoleBlacklistedUser    Role = 10
	RoleUser               Role = 11
	roleMaxDefined         Role = RoleUser
)

var roleNames = map[Role]string{
	RoleAdmin:             "admin",
	RoleMintProposer:      "mint_proposer",
	RoleMintVoter:         "mint_voter",
	RoleBurnProposer:      "burn_proposer",
	RoleBurnVoter:         "burn_voter",
	RoleWhitelistProposer: "whitelist_proposer",
	RoleWhitelistVoter:    "whitelist_voter",
	RoleBlacklistProposer: "blacklist_proposer",
	RoleBlacklistVoter:    "blacklist_voter",
	RoleWhitelistedUser:   "whitelisted_user",
	RoleBlacklistedUser:   "blacklisted_user",
	RoleUser:              "user",
}

// String renders the role's stable name, or "unknown" for any undefined
// value (which should never reach this codepath once decode validation has
// run).
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// IsValid reports whether r is one of the defined role tags.
func (r Role) IsValid() bool {
	_, ok := roleNames[r]
	return ok
}

// MarshalCBOR encodes the role as a single-byte CBOR byte string, per
// spec.md §6 ("roles as single-byte byte strings with tags fixed per §3").
func (r Role) MarshalCBOR() ([]byte, error) {
	return cborEncMode.Marshal([]byte{byte(r)})
}

// UnmarshalCBOR decodes a single-byte CBOR byte string into a role. A byte
// string of any other length, or a tag 12..=255 (beyond roleMaxDefined),
// is rejected with ErrMalformedRole and leaves r unchanged.
func (r *Role) UnmarshalCBOR(data []byte) error {
	var bz []byte
	if err := cborDecMode.Unmarshal(data, &bz); err != nil {
		return err
	}
	if len(bz) != 1 {
		return errorsmod.Wrapf(ErrMalformedRole, "role must encode to exactly 1 byte, got %d", len(bz))
	}
	role := Role(bz[0])
	if !role.IsValid() {
		return errorsmod.Wrapf(ErrMalformedRole, "undefined role tag %d", bz[0])
	}
	*r = role
	return nil
}
