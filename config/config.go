// Package config holds the runtime's node-local configuration: knobs a
// node operator sets that never affect consensus (spec.md §9 "Config").
package config

// LocalConfig is the node-local configuration surface, distinct from the
// on-chain governance parameters the accounts module's Config proposal
// action adjusts.
type LocalConfig struct {
	// AllowExpensiveQueries gates queries tagged Expensive in a module's
	// query table (moduleapi.Query.Expensive). Deprecated in favor of the
	// finer-grained AllowedQueries allow-list, but still honored when
	// AllowedQueries is empty, for backward compatibility with existing
	// node configs.
	//
	// Deprecated: set AllowedQueries instead.
	AllowExpensiveQueries bool `mapstructure:"allow_expensive_queries" toml:"allow_expensive_queries"`

	// EstimateGasBySimulatingContracts is the node-local switch for
	// estimating gas by running a contract's code inside a simulate call.
	// It is carried in the configuration only: no query handler in this
	// repository reads it, and no simulate-based gas estimation is
	// implemented.
	EstimateGasBySimulatingContracts bool `mapstructure:"estimate_gas_by_simulating_contracts" toml:"estimate_gas_by_simulating_contracts"`

	// AllowedQueries is the explicit allow-list of query names a node
	// serves. When it is non-empty, a query whose name is absent is rejected
	// before it reaches its handler; when it is empty, every non-expensive
	// query is served and expensive ones are gated by AllowExpensiveQueries
	// (see QueryAllowed).
	AllowedQueries []string `mapstructure:"allowed_queries" toml:"allowed_queries"`

	// QuerySimulateCallMaxGas bounds evm.SimulateCall's gas_limit argument;
	// a request above this ceiling fails fast with SimulationTooExpensive
	// rather than running the interpreter (spec.md §4.4).
	QuerySimulateCallMaxGas uint64 `mapstructure:"query_simulate_call_max_gas" toml:"query_simulate_call_max_gas"`
}

// DefaultLocalConfig returns the configuration a freshly initialized node
// starts with.
func DefaultLocalConfig() LocalConfig {
	return LocalConfig{
		AllowExpensiveQueries:            false,
		EstimateGasBySimulatingContracts: false,
		AllowedQueries:                   nil,
		QuerySimulateCallMaxGas:          10_000_000,
	}
}

// QueryAllowed reports whether name may be served under this configuration,
// per spec.md §4.1 "Query routing": the explicit allow-list wins when
// non-empty; otherwise AllowExpensiveQueries gates Expensive queries and
// every non-expensive query is always allowed.
func (c LocalConfig) QueryAllowed(name string, expensive bool) bool {
	if len(c.AllowedQueries) > 0 {
		for _, allowed := range c.AllowedQueries {
			if allowed == name {
				return true
			}
		}
		return false
	}
	if !expensive {
		return true
	}
	return c.AllowExpensiveQueries
}
