package types

// Event is a module-qualified, CBOR-encoded value emitted by a handler.
// Unlike the teacher's cosmos-sdk sdk.Event (a bag of string attributes),
// events here carry their module's own typed payload pre-encoded to CBOR,
// matching the wire-format requirement of spec.md §6 ("All transaction
// bodies, events, genesis, and persisted values are CBOR").
type Event struct {
	Module string `cbor:"module"`
	Kind   string `cbor:"kind"`
	Value  []byte `cbor:"value"`
}

// NewEvent CBOR-encodes value and wraps it as an Event tagged with the
// emitting module and event kind.
func NewEvent(module, kind string, value interface{}) (Event, error) {
	bz, err := MarshalCBOR(value)
	if err != nil {
		return Event{}, err
	}
	return Event{Module: module, Kind: kind, Value: bz}, nil
}

// Accounts module event kinds (spec.md §4.3).
const (
	EventTransfer = "Transfer"
	EventMint     = "Mint"
	EventBurn     = "Burn"
)

// TransferEvent is the payload of an accounts.Transfer event.
type TransferEvent struct {
	From   Address   `cbor:"from"`
	To     Address   `cbor:"to"`
	Amount BaseUnits `cbor:"amount"`
}

// MintEvent is the payload of an accounts.Mint event.
type MintEvent struct {
	Owner  Address   `cbor:"owner"`
	Amount BaseUnits `cbor:"amount"`
}

// BurnEvent is the payload of an accounts.Burn event.
type BurnEvent struct {
	Owner  Address   `cbor:"owner"`
	Amount BaseUnits `cbor:"amount"`
}
