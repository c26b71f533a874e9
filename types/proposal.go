package types

// ProposalAction names the governance action a proposal carries out once
// passed (spec.md §3, §4.2).
type ProposalAction byte

const (
	ActionNoAction   ProposalAction = 0
	ActionSetRoles   ProposalAction = 1
	ActionMint       ProposalAction = 2
	ActionBurn       ProposalAction = 3
	ActionWhitelist  ProposalAction = 4
	ActionBlacklist  ProposalAction = 5
	ActionConfig     ProposalAction = 6
)

func (a ProposalAction) String() string {
	switch a {
	case ActionNoAction:
		return "no_action"
	case ActionSetRoles:
		return "set_roles"
	case ActionMint:
		return "mint"
	case ActionBurn:
		return "burn"
	case ActionWhitelist:
		return "whitelist"
	case ActionBlacklist:
		return "blacklist"
	case ActionConfig:
		return "config"
	default:
		return "unknown"
	}
}

// ProposalState is the lifecycle state of a Proposal (spec.md §3).
type ProposalState byte

const (
	ProposalActive    ProposalState = 0
	ProposalPassed    ProposalState = 1
	ProposalRejected  ProposalState = 2
	ProposalExpired   ProposalState = 3
	ProposalCancelled ProposalState = 4
)

func (s ProposalState) String() string {
	switch s {
	case ProposalActive:
		return "active"
	case ProposalPassed:
		return "passed"
	case ProposalRejected:
		return "rejected"
	case ProposalExpired:
		return "expired"
	case ProposalCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether s is one of Passed/Rejected/Cancelled/Expired,
// none of which may transition back to Active (invariant I6).
func (s ProposalState) IsTerminal() bool {
	return s != ProposalActive
}

// ProposalData carries the optional fields a ProposalContent may set,
// depending on its action (spec.md §3).
type ProposalData struct {
	Address          *Address      `cbor:"address,omitempty"`
	Amount           *BaseUnits    `cbor:"amount,omitempty"`
	Meta             []byte        `cbor:"meta,omitempty"`
	Role             *Role         `cbor:"role,omitempty"`
	MintQuorum       *uint8        `cbor:"mint_quorum,omitempty"`
	BurnQuorum       *uint8        `cbor:"burn_quorum,omitempty"`
	WhitelistQuorum  *uint8        `cbor:"whitelist_quorum,omitempty"`
	BlacklistQuorum  *uint8        `cbor:"blacklist_quorum,omitempty"`
	ConfigQuorum     *uint8        `cbor:"config_quorum,omitempty"`
}

// ProposalContent is the submitted (action, data) pair (spec.md §3).
type ProposalContent struct {
	Action ProposalAction `cbor:"action"`
	Data   ProposalData   `cbor:"data"`
}

// Proposal is the persisted governance proposal record (spec.md §3).
type Proposal struct {
	ID         uint32          `cbor:"id"`
	Submitter  Address         `cbor:"submitter"`
	State      ProposalState   `cbor:"state"`
	Content    ProposalContent `cbor:"content"`
	Results    map[Vote]uint16 `cbor:"results,omitempty"`
	VoteRecord map[Address]Vote `cbor:"vote_record,omitempty"`
}

// ClearVoteRecord drops the per-voter record on a terminal transition, per
// spec.md §3 ("voteRecord cleared on terminal transition to free storage").
func (p *Proposal) ClearVoteRecord() {
	p.VoteRecord = nil
}

// Quorum is a per-action percentage (0..=100), default 100 when unset
// (spec.md §3).
type Quorum = uint8

// DefaultQuorum is the percentage used when no quorum has been configured
// for an action.
const DefaultQuorum Quorum = 100

// CeilDiv computes ceil(p*q/100), the ceiling formula used throughout vote
// tallying (spec.md §4.2: "Ceiling is computed as (p·q + 99)/100").
func CeilDiv(p, q uint64) uint64 {
	return (p*q + 99) / 100
}

// UintPercent applies the same ceiling formula as CeilDiv to a uint64 count
// and a uint8 percentage.
func UintPercent(count uint64, pct uint8) uint64 {
	return CeilDiv(count, uint64(pct))
}
