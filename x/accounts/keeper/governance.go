package keeper

import (
	"github.com/HelaNetwork/runtime-sdk-go/runtimectx"
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
	"github.com/HelaNetwork/runtime-sdk-go/x/accounts/types"
)

// actionRoles is the proposer/voter role matrix of spec.md §4.2.
type actionRoles struct {
	proposer runtimetypes.Role
	voter    runtimetypes.Role
}

var roleMatrix = map[runtimetypes.ProposalAction]actionRoles{
	runtimetypes.ActionMint:      {runtimetypes.RoleMintProposer, runtimetypes.RoleMintVoter},
	runtimetypes.ActionBurn:      {runtimetypes.RoleBurnProposer, runtimetypes.RoleBurnVoter},
	runtimetypes.ActionWhitelist: {runtimetypes.RoleWhitelistProposer, runtimetypes.RoleWhitelistVoter},
	runtimetypes.ActionBlacklist: {runtimetypes.RoleBlacklistProposer, runtimetypes.RoleBlacklistVoter},
	runtimetypes.ActionConfig:    {runtimetypes.RoleAdmin, runtimetypes.RoleAdmin},
	runtimetypes.ActionSetRoles:  {runtimetypes.RoleAdmin, runtimetypes.RoleAdmin},
}

// validateTarget enforces the "Target constraint" column of the
// proposer/voter role matrix (spec.md §4.2 table). SetRoles is
// unconstrained; this is called out explicitly in spec.md §9 "Open
// questions" as intentional, not an oversight.
func (k *Keeper) validateTarget(ctx *runtimectx.Context, content runtimetypes.ProposalContent) error {
	switch content.Action {
	case runtimetypes.ActionMint, runtimetypes.ActionBurn:
		if content.Data.Address == nil {
			return types.ErrInvalidTarget
		}
		if k.GetRole(ctx, *content.Data.Address) != runtimetypes.RoleWhitelistedUser {
			return runtimetypes.ErrInvalidArgument
		}
	case runtimetypes.ActionWhitelist:
		if content.Data.Address == nil {
			return types.ErrInvalidTarget
		}
		if k.GetRole(ctx, *content.Data.Address) == runtimetypes.RoleBlacklistedUser {
			return runtimetypes.ErrInvalidArgument
		}
	case runtimetypes.ActionBlacklist:
		if content.Data.Address == nil {
			return types.ErrInvalidTarget
		}
		if k.GetRole(ctx, *content.Data.Address) != runtimetypes.RoleUser {
			return runtimetypes.ErrInvalidArgument
		}
	case runtimetypes.ActionConfig:
		if !hasAnyQuorumField(content.Data) {
			return runtimetypes.ErrInvalidArgument
		}
		for _, q := range quorumFields(content.Data) {
			if q > 100 {
				return types.ErrInvalidQuorumValue
			}
		}
	case runtimetypes.ActionSetRoles:
		// unrestricted
	default:
		return runtimetypes.ErrInvalidArgument
	}
	return nil
}

func hasAnyQuorumField(d runtimetypes.ProposalData) bool {
	return d.MintQuorum != nil || d.BurnQuorum != nil || d.WhitelistQuorum != nil ||
		d.BlacklistQuorum != nil || d.ConfigQuorum != nil
}

func quorumFields(d runtimetypes.ProposalData) []uint8 {
	var out []uint8
	for _, p := range []*uint8{d.MintQuorum, d.BurnQuorum, d.WhitelistQuorum, d.BlacklistQuorum, d.ConfigQuorum} {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}

// nextProposalID atomically increments and returns the proposal id counter,
// stored under the literal key "proposal_id" (spec.md §6).
func (k *Keeper) nextProposalID(ctx *runtimectx.Context) (uint32, error) {
	store := moduleStore(ctx)
	var cur uint32
	if found, err := store.Get(types.ProposalIDKey, &cur); err != nil {
		return 0, err
	} else if !found {
		cur = 0
	}
	next := cur + 1
	if err := store.Insert(types.ProposalIDKey, next); err != nil {
		return 0, err
	}
	return next, nil
}

// GetProposal returns proposal id, or ErrProposalNotFound.
func (k *Keeper) GetProposal(ctx *runtimectx.Context, id uint32) (runtimetypes.Proposal, error) {
	var p runtimetypes.Proposal
	found, err := moduleStore(ctx).Get(types.ProposalKey(id), &p)
	if err != nil {
		return runtimetypes.Proposal{}, err
	}
	if !found {
		return runtimetypes.Proposal{}, types.ErrProposalNotFound
	}
	return p, nil
}

// SetProposal persists p.
func (k *Keeper) SetProposal(ctx *runtimectx.Context, p runtimetypes.Proposal) error {
	return moduleStore(ctx).Insert(types.ProposalKey(p.ID), p)
}

// GetQuorum returns action's configured quorum percentage, defaulting to
// DefaultQuorum (100) when unset (spec.md §3 "Quorum").
func (k *Keeper) GetQuorum(ctx *runtimectx.Context, action runtimetypes.ProposalAction) (uint8, error) {
	var q uint8
	found, err := moduleStore(ctx).Get(types.QuorumKey(action), &q)
	if err != nil {
		return 0, err
	}
	if !found {
		return runtimetypes.DefaultQuorum, nil
	}
	return q, nil
}

// SetQuorum writes action's configured quorum percentage.
func (k *Keeper) SetQuorum(ctx *runtimectx.Context, action runtimetypes.ProposalAction, pct uint8) error {
	if pct > 100 {
		return types.ErrInvalidQuorumValue
	}
	return moduleStore(ctx).Insert(types.QuorumKey(action), pct)
}

// submitterHoldsMatrixRole reports whether submitter holds either the
// proposer or the voter role of action, per spec.md §4.2 "Submitter must
// be the proposer role or the voter role of the action."
func submitterHoldsMatrixRole(submitterRole runtimetypes.Role, roles actionRoles) bool {
	return submitterRole == roles.proposer || submitterRole == roles.voter
}

// Propose submits a new governance proposal, per spec.md §4.2 "Submit
// (Propose)".
func (k *Keeper) Propose(ctx *runtimectx.Context, submitter runtimetypes.Address, content runtimetypes.ProposalContent) (uint32, error) {
	roles, ok := roleMatrix[content.Action]
	if !ok {
		return 0, runtimetypes.ErrInvalidArgument
	}
	if !submitterHoldsMatrixRole(k.GetRole(ctx, submitter), roles) {
		return 0, types.ErrWrongRole
	}
	if err := k.validateTarget(ctx, content); err != nil {
		return 0, err
	}
	id, err := k.nextProposalID(ctx)
	if err != nil {
		return 0, err
	}
	p := runtimetypes.Proposal{
		ID:        id,
		Submitter: submitter,
		State:     runtimetypes.ProposalActive,
		Content:   content,
	}
	if err := k.SetProposal(ctx, p); err != nil {
		return 0, err
	}
	return id, nil
}

// VoteST records caller's vote on proposal id and runs the tally/transition
// check, per spec.md §4.2 "Vote (VoteST)" and "Tally and transition".
func (k *Keeper) VoteST(ctx *runtimectx.Context, caller runtimetypes.Address, id uint32, option runtimetypes.Vote) error {
	p, err := k.GetProposal(ctx, id)
	if err != nil {
		return err
	}
	if p.State != runtimetypes.ProposalActive {
		return types.ErrNotActive
	}
	roles, ok := roleMatrix[p.Content.Action]
	if !ok {
		return runtimetypes.ErrInvalidArgument
	}
	if k.GetRole(ctx, caller) != roles.voter {
		return runtimetypes.ErrInvalidRole
	}
	if p.VoteRecord == nil {
		p.VoteRecord = make(map[runtimetypes.Address]runtimetypes.Vote)
	}
	if _, voted := p.VoteRecord[caller]; voted {
		return runtimetypes.ErrVoteDup
	}
	p.VoteRecord[caller] = option
	if p.Results == nil {
		p.Results = make(map[runtimetypes.Vote]uint16)
	}
	p.Results[option]++

	if err := k.tallyAndTransition(ctx, &p, roles.voter); err != nil {
		return err
	}
	return k.SetProposal(ctx, p)
}

// tallyAndTransition applies the ceiling-threshold tally of spec.md §4.2
// "Tally and transition", mutating p in place.
func (k *Keeper) tallyAndTransition(ctx *runtimectx.Context, p *runtimetypes.Proposal, voterRole runtimetypes.Role) error {
	n, err := k.RoleCount(ctx, voterRole)
	if err != nil {
		return err
	}
	q, err := k.GetQuorum(ctx, p.Content.Action)
	if err != nil {
		return err
	}
	yes := uint64(p.Results[runtimetypes.VoteYes])
	no := uint64(p.Results[runtimetypes.VoteNo])
	abstain := uint64(p.Results[runtimetypes.VoteAbstain])
	N := uint64(n)

	yesThreshold := runtimetypes.CeilDiv(N, uint64(q))
	if yes >= yesThreshold {
		if err := k.apply(ctx, p.Content); err != nil {
			return err
		}
		p.State = runtimetypes.ProposalPassed
		p.ClearVoteRecord()
		return nil
	}
	noThreshold := runtimetypes.CeilDiv(N, uint64(100-q))
	if no >= noThreshold {
		p.State = runtimetypes.ProposalRejected
		p.ClearVoteRecord()
		return nil
	}
	abstainThreshold := runtimetypes.CeilDiv(N, 50)
	if abstain >= abstainThreshold {
		p.State = runtimetypes.ProposalCancelled
		p.ClearVoteRecord()
		return nil
	}
	return nil
}

// apply carries out the governance action of a passing proposal, per
// spec.md §4.2 "Apply".
func (k *Keeper) apply(ctx *runtimectx.Context, content runtimetypes.ProposalContent) error {
	switch content.Action {
	case runtimetypes.ActionMint:
		return k.Mint(ctx, *content.Data.Address, *content.Data.Amount)
	case runtimetypes.ActionBurn:
		return k.Burn(ctx, *content.Data.Address, *content.Data.Amount)
	case runtimetypes.ActionWhitelist:
		return k.SetRole(ctx, *content.Data.Address, runtimetypes.RoleWhitelistedUser)
	case runtimetypes.ActionBlacklist:
		return k.SetRole(ctx, *content.Data.Address, runtimetypes.RoleBlacklistedUser)
	case runtimetypes.ActionConfig:
		return k.applyConfig(ctx, content.Data)
	case runtimetypes.ActionSetRoles:
		return k.SetRole(ctx, *content.Data.Address, *content.Data.Role)
	default:
		return runtimetypes.ErrInvalidArgument
	}
}

func (k *Keeper) applyConfig(ctx *runtimectx.Context, d runtimetypes.ProposalData) error {
	type fieldQuorum struct {
		action runtimetypes.ProposalAction
		pct    *uint8
	}
	for _, fq := range []fieldQuorum{
		{runtimetypes.ActionMint, d.MintQuorum},
		{runtimetypes.ActionBurn, d.BurnQuorum},
		{runtimetypes.ActionWhitelist, d.WhitelistQuorum},
		{runtimetypes.ActionBlacklist, d.BlacklistQuorum},
		{runtimetypes.ActionConfig, d.ConfigQuorum},
	} {
		if fq.pct == nil {
			continue
		}
		if err := k.SetQuorum(ctx, fq.action, *fq.pct); err != nil {
			return err
		}
	}
	return nil
}

// InitOwners bulk-assigns roles from owners, callable only once by the
// configured chain_initiator, per spec.md §4.2 "Initialization".
func (k *Keeper) InitOwners(ctx *runtimectx.Context, caller runtimetypes.Address, owners []types.OwnerRole) error {
	if !caller.Equal(k.chainInitiator) {
		return types.ErrNotChainInitiator
	}
	initiatorAcct := k.GetAccount(ctx, caller)
	if initiatorAcct.Init {
		return types.ErrAlreadyInitialized
	}
	for _, o := range owners {
		if err := k.SetRole(ctx, o.Address, o.Role); err != nil {
			return err
		}
	}
	initiatorAcct = k.GetAccount(ctx, caller)
	initiatorAcct.Init = true
	return k.SetAccount(ctx, caller, initiatorAcct)
}
