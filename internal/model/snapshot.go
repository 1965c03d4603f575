package model

// PoolSnapshot is the storable projection of one pool's state.
type PoolSnapshot struct {
	PoolID         uint64 `json:"pool_id"`
	ProjectID      uint64 `json:"project_id"`
	Status         string `json:"status"`
	TargetAmount   uint64 `json:"target_amount"`
	CurrentTotal   uint64 `json:"current_total"`
	RateBps        uint64 `json:"rate_bps"`
	DurationSecs   uint64 `json:"duration_secs"`
	Borrower       string `json:"borrower"`
	VaultAddress   string `json:"vault_address"`
	TotalRepayment uint64 `json:"total_repayment"`
	TotalClaimed   uint64 `json:"total_claimed"`
}

// ContributionRecord is one participant's cumulative stake in one pool.
type ContributionRecord struct {
	PoolID      uint64 `json:"pool_id"`
	Participant string `json:"participant"`
	Amount      uint64 `json:"amount"`
	Claimed     bool   `json:"claimed"`
}

// ClaimRecord is one settled repayment claim.
type ClaimRecord struct {
	PoolID      uint64 `json:"pool_id"`
	Participant string `json:"participant"`
	Amount      uint64 `json:"amount"`
}
