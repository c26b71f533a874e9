package dispatcher

import (
	"github.com/HelaNetwork/runtime-sdk-go/runtimectx"
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
)

// runApproveRawTx runs spec.md §4.1 step 2's first pre-authentication
// policy hook against raw bytes, before decode. Every registered module's
// ApproveRawTx runs in registration order; the first rejection wins.
func (d *Dispatcher) runApproveRawTx(ctx *runtimectx.Context, raw []byte) error {
	for _, hook := range d.approveRawTxHooks {
		if err := hook(ctx, raw); err != nil {
			return err
		}
	}
	return nil
}

// runApproveUnverifiedTx runs spec.md §4.1 step 2's second
// pre-authentication policy hook against the decoded-but-unauthenticated
// transaction, before signature verification.
func (d *Dispatcher) runApproveUnverifiedTx(ctx *runtimectx.Context, tx runtimetypes.Transaction) error {
	for _, hook := range d.approveUnverifiedTxHooks {
		if err := hook(ctx, tx); err != nil {
			return err
		}
	}
	return nil
}

// runAfterHandleCall runs spec.md §4.1 step 5's post-call hook once the
// named handler has returned. An error from any hook overrides the
// handler's own result, matching the reference dispatcher's
// after_handle_call: it is consulted unconditionally, even when the
// handler itself already failed.
func (d *Dispatcher) runAfterHandleCall(ctx *runtimectx.Context) error {
	for _, hook := range d.afterHandleCallHooks {
		if err := hook(ctx); err != nil {
			return err
		}
	}
	return nil
}
