package types

import (
	errorsmod "cosmossdk.io/errors"
)

// EVM module error kinds not already covered by the core codespace's
// generic ones (runtimetypes.ErrGasLimitTooLow, ErrInvalidArgument,
// ExecutionFailed/Reverted/SimulationTooExpensive), registered under the
// "evm" codespace.
var (
	ErrContractNotFound = errorsmod.Register(ModuleName, 1, "contract not found")
	ErrNotSystemCall     = errorsmod.Register(ModuleName, 2, "caller is not the stable-coin bridge system address")
)
