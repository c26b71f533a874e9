package dispatcher

import (
	"github.com/HelaNetwork/runtime-sdk-go/runtimectx"
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
)

// Classify decodes raw into a Transaction and derives its TxClassification
// for the batch splitter, without touching any account state: the sender
// comes from resolveSender's signature verification alone (no nonce or
// balance check, those are Authenticate's job), and the receiver/
// is_pure_transfer come from the named method's registered
// moduleapi.Method.Classify, if any (spec.md §4.1 "classify each
// transaction using a cached (sender, receiver, is_pure_transfer) tuple").
func (d *Dispatcher) Classify(ctx *runtimectx.Context, raw []byte) TxClassification {
	var tx runtimetypes.Transaction
	if err := runtimetypes.UnmarshalCBOR(raw, &tx); err != nil {
		return TxClassification{}
	}

	sender, err := d.resolveSender(ctx, raw, tx)
	if err != nil {
		return TxClassification{}
	}

	method, ok := d.methods[tx.Call.Method]
	if !ok || method.Classify == nil {
		return TxClassification{Sender: sender}
	}
	info := method.Classify(tx.Call.Body)
	return TxClassification{Sender: sender, Receiver: info.Receiver, IsPureTransfer: info.IsPureTransfer}
}
