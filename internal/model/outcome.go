package model

// Outcome statuses for replayed operations.
const (
	OutcomeApplied = "applied"
	OutcomeSkipped = "skipped"
)

// OutcomeRecord is the JSONL result line for one replayed operation.
type OutcomeRecord struct {
	OpID   string `json:"op_id"`
	Seq    uint64 `json:"seq"`
	Op     string `json:"op"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
	PoolID uint64 `json:"pool_id,omitempty"`
	Amount uint64 `json:"amount,omitempty"`
}
