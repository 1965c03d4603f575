package journal

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"fundpool/internal/model"
	"fundpool/internal/party"
	"fundpool/internal/storage"
)

// ProjectionStore receives pool state flushes during replay.
type ProjectionStore interface {
	UpsertPools(ctx context.Context, pools []model.PoolSnapshot) error
	UpsertContributions(ctx context.Context, contributions []model.ContributionRecord) error
	UpsertClaims(ctx context.Context, claims []model.ClaimRecord) error
}

// Config controls replay behavior.
type Config struct {
	BatchSize  int
	StateStore StateStore
	Projection ProjectionStore
	Results    storage.ResultSink
}

// Replayer applies a JSONL operation journal to an engine world. Guard
// failures are recorded as skips, never aborting the replay; a malformed
// line is counted and logged the same way.
type Replayer struct {
	cfg     Config
	world   *World
	logger  *zap.Logger
	seen    map[string]struct{}
	claims  []model.ClaimRecord
	lastSeq uint64
}

func NewReplayer(cfg Config, world *World, logger *zap.Logger) *Replayer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Replayer{
		cfg:    cfg,
		world:  world,
		logger: logger,
		seen:   make(map[string]struct{}),
	}
}

// Run replays a journal file from the last checkpointed sequence.
func (r *Replayer) Run(ctx context.Context, inputPath string) error {
	if r.world == nil {
		return fmt.Errorf("world is nil")
	}
	if r.cfg.BatchSize <= 0 {
		r.cfg.BatchSize = 500
	}

	startSeq, err := r.loadStartSeq(ctx)
	if err != nil {
		return err
	}
	r.lastSeq = startSeq

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	outcomes := make([]model.OutcomeRecord, 0, r.cfg.BatchSize)
	var total, applied, skipped, failed int

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		total++

		var record model.OperationRecord
		if err := json.Unmarshal(line, &record); err != nil {
			failed++
			r.logger.Warn("decode operation", zap.Error(err))
			continue
		}

		if record.Seq <= startSeq {
			skipped++
			continue
		}
		if r.isDuplicate(record) {
			skipped++
			r.logger.Warn("duplicate operation", zap.String("op_id", record.OpID), zap.Uint64("seq", record.Seq))
			continue
		}

		outcome := r.apply(record)
		if outcome.Status == model.OutcomeApplied {
			applied++
		} else {
			skipped++
			r.logger.Warn("operation skipped",
				zap.String("op", record.Op),
				zap.Uint64("seq", record.Seq),
				zap.String("reason", outcome.Reason),
			)
		}
		if record.Seq > r.lastSeq {
			r.lastSeq = record.Seq
		}
		outcomes = append(outcomes, outcome)

		if len(outcomes) >= r.cfg.BatchSize {
			if err := r.flush(ctx, outcomes); err != nil {
				return err
			}
			outcomes = outcomes[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan journal: %w", err)
	}

	if err := r.flush(ctx, outcomes); err != nil {
		return err
	}

	r.logger.Info("replay complete",
		zap.Int("total", total),
		zap.Int("applied", applied),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed),
		zap.Int("pools", r.world.Registry.PoolCount()),
	)
	return nil
}

func (r *Replayer) loadStartSeq(ctx context.Context) (uint64, error) {
	if r.cfg.StateStore == nil {
		return 0, nil
	}
	last, ok, err := r.cfg.StateStore.Load(ctx)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return last, nil
}

func (r *Replayer) isDuplicate(record model.OperationRecord) bool {
	if record.OpID == "" {
		return false
	}
	if _, ok := r.seen[record.OpID]; ok {
		return true
	}
	r.seen[record.OpID] = struct{}{}
	return false
}

func (r *Replayer) flush(ctx context.Context, outcomes []model.OutcomeRecord) error {
	if r.cfg.Results != nil && len(outcomes) > 0 {
		if err := r.cfg.Results.PutOutcomeBatch(outcomes); err != nil {
			return fmt.Errorf("write outcomes: %w", err)
		}
	}
	if r.cfg.Projection != nil {
		pools, contributions := r.world.Registry.Snapshots()
		if err := r.cfg.Projection.UpsertPools(ctx, pools); err != nil {
			return fmt.Errorf("upsert pools: %w", err)
		}
		if err := r.cfg.Projection.UpsertContributions(ctx, contributions); err != nil {
			return fmt.Errorf("upsert contributions: %w", err)
		}
		if err := r.cfg.Projection.UpsertClaims(ctx, r.claims); err != nil {
			return fmt.Errorf("upsert claims: %w", err)
		}
		r.claims = nil
	}
	if r.cfg.StateStore != nil {
		if err := r.cfg.StateStore.Save(ctx, r.lastSeq); err != nil {
			return fmt.Errorf("save state: %w", err)
		}
	}
	return nil
}

func (r *Replayer) apply(record model.OperationRecord) model.OutcomeRecord {
	outcome := model.OutcomeRecord{
		OpID:   record.OpID,
		Seq:    record.Seq,
		Op:     record.Op,
		PoolID: record.PoolID,
		Status: model.OutcomeApplied,
	}
	if outcome.OpID == "" {
		outcome.OpID = uuid.NewString()
	}

	skip := func(reason string) model.OutcomeRecord {
		outcome.Status = model.OutcomeSkipped
		outcome.Reason = reason
		return outcome
	}

	caller, err := parseAddress(record.Caller)
	if err != nil && record.Op != model.OpAddProject {
		return skip(err.Error())
	}

	switch record.Op {
	case model.OpSeedBalance:
		r.world.Bank.Mint(caller, record.Amount)
		outcome.Amount = record.Amount

	case model.OpRegisterMember:
		r.world.Members.Add(caller)

	case model.OpWhitelist:
		r.world.Whitelist.Add(caller)

	case model.OpGrantAdmin:
		r.world.Admins.Grant(caller)

	case model.OpAddProject:
		proposer, err := parseAddress(record.Proposer)
		if err != nil {
			return skip(err.Error())
		}
		status, err := parseProjectStatus(record.ProjectStatus)
		if err != nil {
			return skip(err.Error())
		}
		r.world.Projects.Put(record.ProjectID, party.Project{
			Proposer:     proposer,
			TargetAmount: record.TargetAmount,
			Status:       status,
		})

	case model.OpCreatePool:
		id, err := r.world.Registry.CreatePool(caller, record.ProjectID, record.RateBps, record.DurationSecs)
		if err != nil {
			return skip(err.Error())
		}
		outcome.PoolID = id

	case model.OpJoin:
		if err := r.world.Registry.Join(caller, record.PoolID, record.Amount); err != nil {
			return skip(err.Error())
		}
		outcome.Amount = record.Amount

	case model.OpFinalize:
		if err := r.world.Registry.FinalizeFunding(caller, record.PoolID); err != nil {
			return skip(err.Error())
		}

	case model.OpRepay:
		if err := r.world.Registry.RepayLoan(caller, record.PoolID); err != nil {
			return skip(err.Error())
		}

	case model.OpClaim:
		amount, err := r.world.Registry.ClaimRepayment(caller, record.PoolID)
		if err != nil {
			return skip(err.Error())
		}
		outcome.Amount = amount
		r.claims = append(r.claims, model.ClaimRecord{
			PoolID:      record.PoolID,
			Participant: caller.Hex(),
			Amount:      amount,
		})

	case model.OpClaimBatch:
		results, err := r.world.Registry.ClaimBatch(caller, record.PoolIDs)
		if err != nil {
			return skip(err.Error())
		}
		var claimed uint64
		var skips int
		for _, res := range results {
			if res.Skipped {
				skips++
				continue
			}
			claimed += res.Amount
			r.claims = append(r.claims, model.ClaimRecord{
				PoolID:      res.PoolID,
				Participant: caller.Hex(),
				Amount:      res.Amount,
			})
		}
		outcome.Amount = claimed
		if skips > 0 {
			outcome.Reason = fmt.Sprintf("%d of %d claims skipped", skips, len(results))
		}

	case model.OpMarkDefaulted:
		if err := r.world.Registry.MarkDefaulted(caller, record.PoolID); err != nil {
			return skip(err.Error())
		}

	case model.OpSweepDust:
		operator, err := parseAddress(record.Operator)
		if err != nil {
			return skip(err.Error())
		}
		amount, err := r.world.Registry.SweepDust(caller, record.PoolID, operator)
		if err != nil {
			return skip(err.Error())
		}
		outcome.Amount = amount

	default:
		return skip(fmt.Sprintf("unknown operation: %s", record.Op))
	}

	return outcome
}

func parseAddress(value string) (common.Address, error) {
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("invalid address: %q", value)
	}
	return common.HexToAddress(value), nil
}

func parseProjectStatus(value string) (party.ProjectStatus, error) {
	switch value {
	case "", "approved":
		return party.ProjectApproved, nil
	case "pending":
		return party.ProjectPending, nil
	case "rejected":
		return party.ProjectRejected, nil
	default:
		return 0, fmt.Errorf("unknown project status: %q", value)
	}
}
