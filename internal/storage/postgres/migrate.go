package postgres

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS pools (
		pool_id BIGINT PRIMARY KEY,
		project_id BIGINT NOT NULL,
		status TEXT NOT NULL,
		target_amount BIGINT NOT NULL,
		current_total BIGINT NOT NULL,
		rate_bps BIGINT NOT NULL,
		duration_secs BIGINT NOT NULL,
		borrower TEXT NOT NULL,
		vault_address TEXT NOT NULL,
		total_repayment BIGINT NOT NULL,
		total_claimed BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS pool_contributions (
		pool_id BIGINT NOT NULL,
		participant TEXT NOT NULL,
		amount BIGINT NOT NULL,
		claimed BOOLEAN NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (pool_id, participant)
	)`,
	`CREATE TABLE IF NOT EXISTS pool_claims (
		pool_id BIGINT NOT NULL,
		participant TEXT NOT NULL,
		amount BIGINT NOT NULL,
		claimed_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (pool_id, participant)
	)`,
	`CREATE TABLE IF NOT EXISTS pooler_state (
		name TEXT PRIMARY KEY,
		last_applied_seq BIGINT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
}

// Migrate applies the projection schema.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return nil
}
