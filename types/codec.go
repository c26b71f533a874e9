// Package types holds the shared wire types of the runtime core: addresses,
// roles, denominations, proposals and the module-qualified error kinds every
// component reports through. It mirrors the teacher's top-level x/*/types
// packages but is shared across modules because the accounts and governance
// surfaces are specified as a single family (spec.md §3).
package types

import (
	"github.com/fxamacker/cbor/v2"
)

// cborEncMode is the canonical CBOR encoder shared by every type in this
// package and by the typed store (storage.Store). Canonical mode guarantees
// map keys are sorted and integers use the shortest-possible form, so the
// round-trip property in spec.md §8 ("CBOR: every typed field encodes and
// decodes to an equal value") holds byte-for-byte across re-encodes.
var cborEncMode = func() cbor.EncMode {
	opts := cbor.CanonicalEncOptions()
	m, err := opts.EncMode()
	if err != nil {
		panic(err)
	}
	return m
}()

// cborDecMode is the matching strict decoder: unknown fields in a map are
// rejected rather than silently ignored, since persisted formats are part of
// this module's ABI (spec.md §6).
var cborDecMode = func() cbor.DecMode {
	opts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IntDec:      cbor.IntDecConvertNone,
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}
	m, err := opts.DecMode()
	if err != nil {
		panic(err)
	}
	return m
}()

// MarshalCBOR is the canonical entry point used by the typed store and by
// dispatcher/event code to serialize any value in this module's wire format.
func MarshalCBOR(v interface{}) ([]byte, error) {
	return cborEncMode.Marshal(v)
}

// UnmarshalCBOR is the matching canonical entry point for decoding.
func UnmarshalCBOR(data []byte, v interface{}) error {
	return cborDecMode.Unmarshal(data, v)
}
