package pool

import (
	"sort"

	"github.com/ethereum/go-ethereum/common"

	"fundpool/internal/model"
)

// Pool is the mutable state of one fundraising pool. It is owned by the
// Registry and mutated in place under the registry's operation guards.
type Pool struct {
	ID             uint64
	ProjectID      uint64
	Status         Status
	TargetAmount   uint64
	CurrentTotal   uint64
	RateBps        uint64
	DurationSecs   uint64
	Borrower       common.Address
	VaultAddress   common.Address
	Contributions  map[common.Address]uint64
	Claimed        map[common.Address]bool
	TotalRepayment uint64
	TotalClaimed   uint64
}

func newPool(id, projectID, target, rateBps, durationSecs uint64, borrower, vaultAddr common.Address) *Pool {
	return &Pool{
		ID:            id,
		ProjectID:     projectID,
		Status:        StatusPending,
		TargetAmount:  target,
		RateBps:       rateBps,
		DurationSecs:  durationSecs,
		Borrower:      borrower,
		VaultAddress:  vaultAddr,
		Contributions: make(map[common.Address]uint64),
		Claimed:       make(map[common.Address]bool),
	}
}

// allClaimed reports whether every contributor has settled their claim.
func (p *Pool) allClaimed() bool {
	for addr := range p.Contributions {
		if !p.Claimed[addr] {
			return false
		}
	}
	return true
}

func (p *Pool) snapshot() model.PoolSnapshot {
	return model.PoolSnapshot{
		PoolID:         p.ID,
		ProjectID:      p.ProjectID,
		Status:         p.Status.String(),
		TargetAmount:   p.TargetAmount,
		CurrentTotal:   p.CurrentTotal,
		RateBps:        p.RateBps,
		DurationSecs:   p.DurationSecs,
		Borrower:       p.Borrower.Hex(),
		VaultAddress:   p.VaultAddress.Hex(),
		TotalRepayment: p.TotalRepayment,
		TotalClaimed:   p.TotalClaimed,
	}
}

func (p *Pool) contributionRecords() []model.ContributionRecord {
	records := make([]model.ContributionRecord, 0, len(p.Contributions))
	for addr, amount := range p.Contributions {
		records = append(records, model.ContributionRecord{
			PoolID:      p.ID,
			Participant: addr.Hex(),
			Amount:      amount,
			Claimed:     p.Claimed[addr],
		})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Participant < records[j].Participant })
	return records
}
