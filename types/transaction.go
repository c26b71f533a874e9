package types

import (
	"crypto/ed25519"
	"crypto/sha256"

	errorsmod "cosmossdk.io/errors"
)

// Call is the (method, args) pair a transaction asks the dispatcher to
// execute (spec.md §4.1 step 1 "Decode").
type Call struct {
	Method string `cbor:"method"`
	Body   []byte `cbor:"body"`
}

// Fee is the sender-declared gas budget: GasLimit units of native
// denomination at GasPrice each. The dispatcher debits the maximum
// (GasLimit × GasPrice) up front and refunds the unused portion after
// execution (spec.md §4.1 steps 3 and 8).
type Fee struct {
	GasPrice Amount128 `cbor:"gas_price"`
	GasLimit uint64    `cbor:"gas_limit"`
}

// MaxAmount returns the maximum the fee could cost: GasLimit × GasPrice.
func (f Fee) MaxAmount() BaseUnits {
	return BaseUnits{Amount: f.GasPrice.Uint.MulUint64(f.GasLimit), Denomination: NativeDenomination}
}

// Amount returns used × GasPrice, the actual cost once gas_used is known.
func (f Fee) Amount(used uint64) BaseUnits {
	return BaseUnits{Amount: f.GasPrice.Uint.MulUint64(used), Denomination: NativeDenomination}
}

// AuthProof authenticates a transaction's sender. SchemeName is empty for
// the built-in ed25519 signature scheme; a non-empty name is resolved
// against a module's registered moduleapi.AuthSchemeHandler instead
// (spec.md §4.1 step 1 "If exactly one auth proof names a
// module-controlled scheme, delegate decoding to that module").
type AuthProof struct {
	SchemeName string `cbor:"scheme_name,omitempty"`
	PublicKey  []byte `cbor:"public_key,omitempty"`
	Signature  []byte `cbor:"signature,omitempty"`
	Raw        []byte `cbor:"raw,omitempty"`
}

// AuthInfo carries a transaction's nonce, fee and proof of authentication.
type AuthInfo struct {
	Nonce uint64    `cbor:"nonce"`
	Fee   Fee       `cbor:"fee"`
	Proof AuthProof `cbor:"proof"`
}

// Transaction is the complete decoded wire format a dispatcher processes
// (spec.md §4.1, §6).
type Transaction struct {
	Call     Call     `cbor:"call"`
	AuthInfo AuthInfo `cbor:"auth_info"`
}

// signingPayload is the portion of the transaction the ed25519 signature
// covers: everything except the signature itself, so a proof cannot be
// replayed against a different call or fee.
type signingPayload struct {
	Call       Call   `cbor:"call"`
	Nonce      uint64 `cbor:"nonce"`
	Fee        Fee    `cbor:"fee"`
	PublicKey  []byte `cbor:"public_key"`
	SchemeName string `cbor:"scheme_name,omitempty"`
}

// SigningBytes returns the canonical bytes the built-in ed25519 scheme
// signs over.
func (tx Transaction) SigningBytes() ([]byte, error) {
	return MarshalCBOR(signingPayload{
		Call:       tx.Call,
		Nonce:      tx.AuthInfo.Nonce,
		Fee:        tx.AuthInfo.Fee,
		PublicKey:  tx.AuthInfo.Proof.PublicKey,
		SchemeName: tx.AuthInfo.Proof.SchemeName,
	})
}

// AddressFromPublicKey derives the runtime Address controlled by an
// ed25519 public key, the way every module-owned address in this codebase
// is derived: a domain-free SHA-256 digest of the raw key material,
// truncated to the 20-byte payload.
func AddressFromPublicKey(pub ed25519.PublicKey) (Address, error) {
	h := sha256.Sum256(pub)
	return NewAddress(AddressVersion, h[:20])
}

// VerifyEd25519 checks the built-in signature scheme: the proof's public
// key must actually sign tx's SigningBytes, and the recovered address is
// the transaction's sender.
func (tx Transaction) VerifyEd25519() (Address, error) {
	proof := tx.AuthInfo.Proof
	if len(proof.PublicKey) != ed25519.PublicKeySize || len(proof.Signature) != ed25519.SignatureSize {
		return Address{}, errorsmod.Wrap(ErrMalformedTransaction, "malformed ed25519 proof")
	}
	msg, err := tx.SigningBytes()
	if err != nil {
		return Address{}, err
	}
	if !ed25519.Verify(proof.PublicKey, msg, proof.Signature) {
		return Address{}, errorsmod.Wrap(ErrNotAuthenticated, "invalid signature")
	}
	return AddressFromPublicKey(proof.PublicKey)
}

// SignedSimulateCall lets a client request evm.SimulateCall-style gas
// estimation under a specific claimed sender without broadcasting a real
// transaction (spec.md §6 "signed simulate call"): the same ed25519 proof
// shape authenticates the claimed caller, but the call never reaches
// consensus.
type SignedSimulateCall struct {
	Call      Call      `cbor:"call"`
	PublicKey []byte    `cbor:"public_key"`
	Signature []byte    `cbor:"signature"`
}

func (s SignedSimulateCall) signingBytes() ([]byte, error) {
	return MarshalCBOR(struct {
		Call      Call   `cbor:"call"`
		PublicKey []byte `cbor:"public_key"`
	}{Call: s.Call, PublicKey: s.PublicKey})
}

// Verify checks the SignedSimulateCall's signature and returns the claimed
// caller's address.
func (s SignedSimulateCall) Verify() (Address, error) {
	if len(s.PublicKey) != ed25519.PublicKeySize || len(s.Signature) != ed25519.SignatureSize {
		return Address{}, errorsmod.Wrap(ErrInvalidSignedSimulateCall, "malformed proof")
	}
	msg, err := s.signingBytes()
	if err != nil {
		return Address{}, err
	}
	if !ed25519.Verify(s.PublicKey, msg, s.Signature) {
		return Address{}, errorsmod.Wrap(ErrInvalidSignedSimulateCall, "invalid signature")
	}
	return AddressFromPublicKey(s.PublicKey)
}
