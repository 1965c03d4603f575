package model

// Operation names accepted in a journal.
const (
	OpSeedBalance    = "seed_balance"
	OpRegisterMember = "register_member"
	OpWhitelist      = "whitelist"
	OpGrantAdmin     = "grant_admin"
	OpAddProject     = "add_project"
	OpCreatePool     = "create_pool"
	OpJoin           = "join"
	OpFinalize       = "finalize_funding"
	OpRepay          = "repay_loan"
	OpClaim          = "claim_repayment"
	OpClaimBatch     = "claim_batch"
	OpMarkDefaulted  = "mark_defaulted"
	OpSweepDust      = "sweep_dust"
)

// OperationRecord is one journal line: a named engine operation plus the
// fields it needs. Unused fields are omitted per operation.
type OperationRecord struct {
	OpID          string   `json:"op_id"`
	Seq           uint64   `json:"seq"`
	Op            string   `json:"op"`
	Caller        string   `json:"caller,omitempty"`
	ProjectID     uint64   `json:"project_id,omitempty"`
	PoolID        uint64   `json:"pool_id,omitempty"`
	PoolIDs       []uint64 `json:"pool_ids,omitempty"`
	Amount        uint64   `json:"amount,omitempty"`
	RateBps       uint64   `json:"rate_bps,omitempty"`
	DurationSecs  uint64   `json:"duration_secs,omitempty"`
	Operator      string   `json:"operator,omitempty"`
	Proposer      string   `json:"proposer,omitempty"`
	TargetAmount  uint64   `json:"target_amount,omitempty"`
	ProjectStatus string   `json:"project_status,omitempty"`
}
