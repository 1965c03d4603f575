package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fundpool/internal/model"
)

// Store provides Postgres persistence for pool projections.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// UpsertPools inserts or updates pool snapshots.
func (s *Store) UpsertPools(ctx context.Context, pools []model.PoolSnapshot) error {
	if len(pools) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, p := range pools {
		batch.Queue(`
			INSERT INTO pools (
				pool_id, project_id, status, target_amount, current_total, rate_bps,
				duration_secs, borrower, vault_address, total_repayment, total_claimed,
				created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,now(),now())
			ON CONFLICT (pool_id)
			DO UPDATE SET
				status = EXCLUDED.status,
				current_total = EXCLUDED.current_total,
				total_repayment = EXCLUDED.total_repayment,
				total_claimed = EXCLUDED.total_claimed,
				updated_at = now()
		`,
			int64(p.PoolID),
			int64(p.ProjectID),
			p.Status,
			int64(p.TargetAmount),
			int64(p.CurrentTotal),
			int64(p.RateBps),
			int64(p.DurationSecs),
			p.Borrower,
			p.VaultAddress,
			int64(p.TotalRepayment),
			int64(p.TotalClaimed),
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range pools {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// UpsertContributions inserts or updates contribution rows.
func (s *Store) UpsertContributions(ctx context.Context, contributions []model.ContributionRecord) error {
	if len(contributions) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, c := range contributions {
		batch.Queue(`
			INSERT INTO pool_contributions (
				pool_id, participant, amount, claimed, created_at, updated_at
			) VALUES ($1,$2,$3,$4,now(),now())
			ON CONFLICT (pool_id, participant)
			DO UPDATE SET
				amount = EXCLUDED.amount,
				claimed = EXCLUDED.claimed,
				updated_at = now()
		`,
			int64(c.PoolID),
			c.Participant,
			int64(c.Amount),
			c.Claimed,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range contributions {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// UpsertClaims inserts settled claim rows.
func (s *Store) UpsertClaims(ctx context.Context, claims []model.ClaimRecord) error {
	if len(claims) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, c := range claims {
		batch.Queue(`
			INSERT INTO pool_claims (pool_id, participant, amount, claimed_at)
			VALUES ($1,$2,$3,now())
			ON CONFLICT (pool_id, participant)
			DO UPDATE SET amount = EXCLUDED.amount, claimed_at = now()
		`,
			int64(c.PoolID),
			c.Participant,
			int64(c.Amount),
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range claims {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// LoadState returns last_applied_seq for a name.
func (s *Store) LoadState(ctx context.Context, name string) (uint64, bool, error) {
	if name == "" {
		return 0, false, fmt.Errorf("state name required")
	}
	var seq uint64
	row := s.pool.QueryRow(ctx, `SELECT last_applied_seq FROM pooler_state WHERE name=$1`, name)
	if err := row.Scan(&seq); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return seq, true, nil
}

// SaveState upserts last_applied_seq for a name.
func (s *Store) SaveState(ctx context.Context, name string, seq uint64) error {
	if name == "" {
		return fmt.Errorf("state name required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO pooler_state (name, last_applied_seq, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET last_applied_seq = EXCLUDED.last_applied_seq, updated_at = now()
	`, name, seq)
	return err
}
