package types

// Call-method gas costs, per spec.md §6 "Call methods". Values are nominal
// placeholders for a metering scheme outside this module's scope (spec.md
// §1 Non-goals: "gas metering of individual EVM opcodes"); only the
// relative costs named in the spec ("tx_transfer", "tx_managest") matter
// here.
const (
	GasTransfer  uint64 = 21_000
	GasManageST  uint64 = 30_000
)
