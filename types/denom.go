package types

import (
	"math/big"

	sdkmath "cosmossdk.io/math"
)

// NativeDenomination is the distinguished denomination naming the native
// token (spec.md §3 "a distinguished value denotes the native token").
const NativeDenomination Denomination = ""

// Denomination is a short byte string naming an asset.
type Denomination string

// IsNative reports whether d names the native token.
func (d Denomination) IsNative() bool {
	return d == NativeDenomination
}

// String implements fmt.Stringer, rendering the native denomination
// distinctly from an empty user-supplied one would otherwise render.
func (d Denomination) String() string {
	if d.IsNative() {
		return "<native>"
	}
	return string(d)
}

// BaseUnits is an (amount, denomination) pair using a 128-bit-range
// unsigned amount, per spec.md §3.
type BaseUnits struct {
	Amount       sdkmath.Uint
	Denomination Denomination
}

// NewBaseUnits constructs a BaseUnits value from a uint64 amount, the common
// case in tests and genesis documents.
func NewBaseUnits(amount uint64, denom Denomination) BaseUnits {
	return BaseUnits{Amount: sdkmath.NewUint(amount), Denomination: denom}
}

// cborBaseUnits is the CBOR wire shape for BaseUnits. sdkmath.Uint wraps an
// unexported *big.Int, so it cannot be (de)serialized by CBOR's default
// struct-reflection path; the amount is carried as its canonical big-endian
// byte string instead, matching spec.md §6 ("Integers are canonical").
type cborBaseUnits struct {
	Amount       []byte `cbor:"amount"`
	Denomination string `cbor:"denomination"`
}

// MarshalCBOR implements the BaseUnits wire format.
func (b BaseUnits) MarshalCBOR() ([]byte, error) {
	amt := b.Amount
	return cborEncMode.Marshal(cborBaseUnits{
		Amount:       amt.BigInt().Bytes(),
		Denomination: string(b.Denomination),
	})
}

// UnmarshalCBOR implements the BaseUnits wire format.
func (b *BaseUnits) UnmarshalCBOR(data []byte) error {
	var w cborBaseUnits
	if err := cborDecMode.Unmarshal(data, &w); err != nil {
		return err
	}
	b.Amount = sdkmath.NewUintFromBigInt(new(big.Int).SetBytes(w.Amount))
	b.Denomination = Denomination(w.Denomination)
	return nil
}

// Amount128 is a bare 128-bit-range unsigned amount with no attached
// denomination (e.g. a genesis total-supply entry whose denomination is
// carried by its containing record). Defined separately from BaseUnits
// rather than duplicating sdkmath.Uint's CBOR workaround at every call
// site.
type Amount128 struct {
	sdkmath.Uint
}

// NewAmount128 wraps a uint64 amount.
func NewAmount128(amount uint64) Amount128 {
	return Amount128{Uint: sdkmath.NewUint(amount)}
}

// MarshalCBOR encodes the amount as its canonical big-endian byte string.
func (a Amount128) MarshalCBOR() ([]byte, error) {
	return cborEncMode.Marshal(a.Uint.BigInt().Bytes())
}

// UnmarshalCBOR decodes a canonical big-endian byte string amount.
func (a *Amount128) UnmarshalCBOR(data []byte) error {
	var bz []byte
	if err := cborDecMode.Unmarshal(data, &bz); err != nil {
		return err
	}
	a.Uint = sdkmath.NewUintFromBigInt(new(big.Int).SetBytes(bz))
	return nil
}
