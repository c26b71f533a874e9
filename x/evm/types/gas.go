package types

// Static gas costs declared in the method table, distinct from the dynamic
// gas the EVM interpreter itself consumes while running a Create/Call
// (accounted separately by the interpreter's own leftOverGas return).
const (
	GasCreate uint64 = 53_000
	GasCall   uint64 = 21_000
)
