package types

import (
	errorsmod "cosmossdk.io/errors"
)

// CallResult is the user-visible outcome of a dispatched call (spec.md §7,
// §6 "Error codes"). Exactly one of the three forms below is populated; the
// wire encoding tags accordingly.
type CallResult struct {
	// Ok carries the CBOR-encoded return value on success.
	Ok []byte `cbor:"ok,omitempty"`
	// Failed carries a module-qualified, non-fatal failure.
	Failed *CallFailure `cbor:"failed,omitempty"`
	// Aborted carries a fatal batch-level error.
	Aborted *CallAbort `cbor:"aborted,omitempty"`
}

// CallFailure is the {module, code, message} triple reported for handler
// errors, per spec.md §7 "Failed{module, code, message}".
type CallFailure struct {
	Module  string `cbor:"module"`
	Code    uint32 `cbor:"code"`
	Message string `cbor:"message"`
}

// CallAbort carries the fatal error that aborted the whole batch.
type CallAbort struct {
	Error string `cbor:"error"`
}

// IsSuccess reports whether the call produced a successful result.
func (r CallResult) IsSuccess() bool {
	return r.Failed == nil && r.Aborted == nil
}

// NewOkResult wraps a CBOR-encodable return value as a successful result.
func NewOkResult(v interface{}) (CallResult, error) {
	if v == nil {
		return CallResult{Ok: []byte{}}, nil
	}
	bz, err := MarshalCBOR(v)
	if err != nil {
		return CallResult{}, err
	}
	return CallResult{Ok: bz}, nil
}

// NewFailedResult wraps a module-qualified error as a failed result.
func NewFailedResult(module string, code uint32, message string) CallResult {
	return CallResult{Failed: &CallFailure{Module: module, Code: code, Message: message}}
}

// NewFailedResultFromError extracts the {module, code, message} triple from
// any error registered via cosmossdk.io/errors (or wrapping one), the way
// the teacher's ante handlers let errorsmod-wrapped errors flow straight to
// the ABCI response. Errors not registered through errorsmod surface under
// the core codespace with code 1, matching "InvalidArgument" as the
// catch-all per spec.md §7.
func NewFailedResultFromError(err error) CallResult {
	codespace, code, log := errorsmod.ABCIInfo(err, false)
	if codespace == "" || codespace == errorsmod.UndefinedCodespace {
		codespace, code = CoreCodespace, 1
	}
	return NewFailedResult(codespace, code, log)
}

// NewAbortedResult wraps a fatal error as an aborted result.
func NewAbortedResult(err error) CallResult {
	return CallResult{Aborted: &CallAbort{Error: err.Error()}}
}
