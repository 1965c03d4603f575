package pool

import (
	"fmt"
	"math"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"fundpool/internal/ledger"
	"fundpool/internal/model"
	"fundpool/internal/party"
	"fundpool/internal/token"
	"fundpool/internal/vault"
)

// ClaimBatchLimit caps the number of pool ids one batch claim may touch.
const ClaimBatchLimit = 20

// Deps are the collaborators a Registry operates against.
type Deps struct {
	Bank       token.Bank
	Vaults     *vault.Manager
	Shares     *ledger.Ledger
	Membership party.Membership
	Compliance party.Compliance
	Admins     party.AdminRegistry
	Projects   party.ProjectRegistry
}

// Registry owns every pool and drives the funding lifecycle. Each
// operation runs its guards before any mutation, so a failed operation
// leaves no partial state.
type Registry struct {
	deps   Deps
	logger *zap.Logger
	pools  map[uint64]*Pool
	nextID uint64
}

func NewRegistry(deps Deps, logger *zap.Logger) (*Registry, error) {
	if deps.Bank == nil || deps.Vaults == nil || deps.Shares == nil ||
		deps.Membership == nil || deps.Compliance == nil ||
		deps.Admins == nil || deps.Projects == nil {
		return nil, ErrNotInitialized
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		deps:   deps,
		logger: logger,
		pools:  make(map[uint64]*Pool),
		nextID: 1,
	}, nil
}

// CreatePool opens a pool against an approved project. The project
// supplies the funding target and the borrower.
func (r *Registry) CreatePool(caller common.Address, projectID, rateBps, durationSecs uint64) (uint64, error) {
	if !r.deps.Admins.HasAdminCapability(caller) {
		return 0, ErrNotAuthorized
	}
	if rateBps > maxRateBps {
		return 0, ErrInvalidRate
	}
	project, err := r.deps.Projects.Project(projectID)
	if err != nil {
		return 0, err
	}
	if project.Status != party.ProjectApproved {
		return 0, ErrInvalidStatus
	}

	id := r.nextID
	vaultAddr, err := r.deps.Vaults.Create(id)
	if err != nil {
		return 0, fmt.Errorf("create vault: %w", err)
	}
	r.nextID++
	r.deps.Shares.EnsurePool(id)
	r.pools[id] = newPool(id, projectID, project.TargetAmount, rateBps, durationSecs, project.Proposer, vaultAddr)

	r.logger.Info("pool created",
		zap.Uint64("pool_id", id),
		zap.Uint64("project_id", projectID),
		zap.Uint64("target_amount", project.TargetAmount),
		zap.Uint64("rate_bps", rateBps),
		zap.String("borrower", project.Proposer.Hex()),
		zap.String("vault", vaultAddr.Hex()),
	)
	return id, nil
}

// Join contributes amount to an accepting pool and mints shares 1:1.
// Repeated joins accumulate into one contribution entry.
func (r *Registry) Join(caller common.Address, poolID, amount uint64) error {
	if amount == 0 {
		return ErrZeroAmount
	}
	p, ok := r.pools[poolID]
	if !ok {
		return ErrPoolNotFound
	}
	if !p.Status.Accepting() {
		return ErrInvalidStatus
	}
	if !r.deps.Membership.IsMember(caller) {
		return ErrNotMember
	}
	if !r.deps.Compliance.IsWhitelisted(caller) {
		return ErrNotWhitelisted
	}
	if r.deps.Bank.Balance(caller) < amount {
		return ErrInsufficientFunds
	}
	if p.CurrentTotal > math.MaxUint64-amount {
		return ErrAmountOverflow
	}

	asset, err := r.deps.Bank.Withdraw(caller, amount)
	if err != nil {
		return fmt.Errorf("withdraw contribution: %w", err)
	}
	r.deps.Bank.Deposit(p.VaultAddress, asset)
	p.Contributions[caller] += amount
	p.CurrentTotal += amount
	if err := r.deps.Shares.Mint(poolID, caller, amount); err != nil {
		return fmt.Errorf("mint shares: %w", err)
	}
	p.Status = StatusActive

	r.logger.Info("contribution joined",
		zap.Uint64("pool_id", poolID),
		zap.String("participant", caller.Hex()),
		zap.Uint64("amount", amount),
		zap.Uint64("current_total", p.CurrentTotal),
	)
	return nil
}

// FinalizeFunding releases the pooled funds to the borrower once the
// target is met. Overfunding is forwarded in full.
func (r *Registry) FinalizeFunding(caller common.Address, poolID uint64) error {
	if !r.deps.Admins.HasAdminCapability(caller) {
		return ErrNotAuthorized
	}
	p, ok := r.pools[poolID]
	if !ok {
		return ErrPoolNotFound
	}
	if p.Status != StatusActive {
		return ErrInvalidStatus
	}
	if p.CurrentTotal < p.TargetAmount {
		return ErrGoalNotMet
	}
	if r.deps.Bank.Balance(p.VaultAddress) < p.CurrentTotal {
		return ErrInsufficientFunds
	}

	asset, err := r.deps.Vaults.Withdraw(poolID, p.CurrentTotal)
	if err != nil {
		return fmt.Errorf("withdraw from vault: %w", err)
	}
	r.deps.Bank.Deposit(p.Borrower, asset)
	p.Status = StatusFunded

	r.logger.Info("funding finalized",
		zap.Uint64("pool_id", poolID),
		zap.Uint64("disbursed", p.CurrentTotal),
		zap.String("borrower", p.Borrower.Hex()),
	)
	return nil
}

// RepayLoan settles the loan: the borrower pays principal plus interest
// into the vault and the pool completes.
func (r *Registry) RepayLoan(caller common.Address, poolID uint64) error {
	p, ok := r.pools[poolID]
	if !ok {
		return ErrPoolNotFound
	}
	if p.Status != StatusFunded {
		return ErrInvalidStatus
	}
	if caller != p.Borrower {
		return ErrNotAuthorized
	}
	owed, err := totalOwed(p.CurrentTotal, p.RateBps)
	if err != nil {
		return err
	}
	if r.deps.Bank.Balance(caller) < owed {
		return ErrInsufficientFunds
	}

	asset, err := r.deps.Bank.Withdraw(caller, owed)
	if err != nil {
		return fmt.Errorf("withdraw repayment: %w", err)
	}
	r.deps.Bank.Deposit(p.VaultAddress, asset)
	p.TotalRepayment = owed
	p.Status = StatusCompleted

	r.logger.Info("loan repaid",
		zap.Uint64("pool_id", poolID),
		zap.Uint64("principal", p.CurrentTotal),
		zap.Uint64("total_repayment", owed),
	)
	return nil
}

// ClaimRepayment pays the caller their proportional share of a completed
// pool's repayment, exactly once, and burns the redeemed shares.
func (r *Registry) ClaimRepayment(caller common.Address, poolID uint64) (uint64, error) {
	p, ok := r.pools[poolID]
	if !ok {
		return 0, ErrPoolNotFound
	}
	if p.Status != StatusCompleted {
		return 0, ErrInvalidStatus
	}
	if p.TotalRepayment == 0 {
		return 0, ErrNoRepayment
	}
	contribution, ok := p.Contributions[caller]
	if !ok {
		return 0, ErrNotAuthorized
	}
	if !r.deps.Compliance.IsWhitelisted(caller) {
		return 0, ErrNotWhitelisted
	}
	if p.Claimed[caller] {
		return 0, ErrAlreadyClaimed
	}
	amount := payout(entitlement(contribution, p.TotalRepayment, p.CurrentTotal), p.TotalRepayment, p.TotalClaimed)
	if amount == 0 {
		return 0, ErrDustShare
	}

	asset, err := r.deps.Vaults.Withdraw(poolID, amount)
	if err != nil {
		return 0, fmt.Errorf("withdraw claim: %w", err)
	}
	r.deps.Bank.Deposit(caller, asset)
	p.Claimed[caller] = true
	p.TotalClaimed += amount
	if shares := r.deps.Shares.Shares(poolID, caller); shares > 0 {
		if err := r.deps.Shares.Burn(poolID, caller, shares); err != nil {
			return 0, fmt.Errorf("burn shares: %w", err)
		}
	}

	r.logger.Info("repayment claimed",
		zap.Uint64("pool_id", poolID),
		zap.String("participant", caller.Hex()),
		zap.Uint64("amount", amount),
		zap.Uint64("total_claimed", p.TotalClaimed),
	)
	return amount, nil
}

// ClaimResult is the outcome of one pool id inside a batch claim.
type ClaimResult struct {
	PoolID  uint64
	Amount  uint64
	Skipped bool
	Reason  string
}

// ClaimBatch claims from up to ClaimBatchLimit pools. A guard failure on
// one id is recorded as a skip and never blocks the rest of the batch.
func (r *Registry) ClaimBatch(caller common.Address, poolIDs []uint64) ([]ClaimResult, error) {
	if len(poolIDs) > ClaimBatchLimit {
		return nil, ErrBatchTooLarge
	}
	results := make([]ClaimResult, 0, len(poolIDs))
	for _, id := range poolIDs {
		amount, err := r.ClaimRepayment(caller, id)
		if err != nil {
			r.logger.Warn("batch claim skipped",
				zap.Uint64("pool_id", id),
				zap.String("participant", caller.Hex()),
				zap.String("reason", err.Error()),
			)
			results = append(results, ClaimResult{PoolID: id, Skipped: true, Reason: err.Error()})
			continue
		}
		results = append(results, ClaimResult{PoolID: id, Amount: amount})
	}
	return results, nil
}

// MarkDefaulted moves a non-terminal pool to Defaulted. Terminal pools
// reject the call.
func (r *Registry) MarkDefaulted(caller common.Address, poolID uint64) error {
	if !r.deps.Admins.HasAdminCapability(caller) {
		return ErrNotAuthorized
	}
	p, ok := r.pools[poolID]
	if !ok {
		return ErrPoolNotFound
	}
	if p.Status.Terminal() {
		return ErrInvalidStatus
	}
	p.Status = StatusDefaulted

	r.logger.Warn("pool defaulted", zap.Uint64("pool_id", poolID))
	return nil
}

// SweepDust transfers rounding dust left after every contributor has
// claimed to the operator address.
func (r *Registry) SweepDust(caller common.Address, poolID uint64, operator common.Address) (uint64, error) {
	if !r.deps.Admins.HasAdminCapability(caller) {
		return 0, ErrNotAuthorized
	}
	p, ok := r.pools[poolID]
	if !ok {
		return 0, ErrPoolNotFound
	}
	if p.Status != StatusCompleted {
		return 0, ErrInvalidStatus
	}
	if !p.allClaimed() {
		return 0, ErrInvalidStatus
	}
	if !r.deps.Compliance.IsWhitelisted(operator) {
		return 0, ErrNotWhitelisted
	}
	remaining := p.TotalRepayment - p.TotalClaimed
	if remaining == 0 {
		return 0, ErrNoRepayment
	}

	asset, err := r.deps.Vaults.Withdraw(poolID, remaining)
	if err != nil {
		return 0, fmt.Errorf("withdraw dust: %w", err)
	}
	r.deps.Bank.Deposit(operator, asset)
	p.TotalClaimed = p.TotalRepayment

	r.logger.Info("dust swept",
		zap.Uint64("pool_id", poolID),
		zap.Uint64("amount", remaining),
		zap.String("operator", operator.Hex()),
	)
	return remaining, nil
}

// Get returns a storable snapshot of one pool.
func (r *Registry) Get(poolID uint64) (model.PoolSnapshot, error) {
	p, ok := r.pools[poolID]
	if !ok {
		return model.PoolSnapshot{}, ErrPoolNotFound
	}
	return p.snapshot(), nil
}

// Contribution reports a participant's cumulative stake and claim flag.
func (r *Registry) Contribution(poolID uint64, participant common.Address) (uint64, bool, error) {
	p, ok := r.pools[poolID]
	if !ok {
		return 0, false, ErrPoolNotFound
	}
	return p.Contributions[participant], p.Claimed[participant], nil
}

// PoolCount reports how many pools exist.
func (r *Registry) PoolCount() int {
	return len(r.pools)
}

// Snapshots exports every pool and contribution in pool-id order, for
// flushing to a projection store.
func (r *Registry) Snapshots() ([]model.PoolSnapshot, []model.ContributionRecord) {
	ids := make([]uint64, 0, len(r.pools))
	for id := range r.pools {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	snapshots := make([]model.PoolSnapshot, 0, len(ids))
	var contributions []model.ContributionRecord
	for _, id := range ids {
		p := r.pools[id]
		snapshots = append(snapshots, p.snapshot())
		contributions = append(contributions, p.contributionRecords()...)
	}
	return snapshots, contributions
}
