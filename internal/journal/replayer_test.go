package journal

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"fundpool/internal/model"
)

const (
	adminAddr    = "0x00000000000000000000000000000000000000ad"
	borrowerAddr = "0x00000000000000000000000000000000000000bb"
	aliceAddr    = "0x00000000000000000000000000000000000000a1"
	bobAddr      = "0x00000000000000000000000000000000000000b2"
)

type capturingProjection struct {
	pools         []model.PoolSnapshot
	contributions []model.ContributionRecord
	claims        []model.ClaimRecord
}

func (p *capturingProjection) UpsertPools(_ context.Context, pools []model.PoolSnapshot) error {
	p.pools = pools
	return nil
}

func (p *capturingProjection) UpsertContributions(_ context.Context, contributions []model.ContributionRecord) error {
	p.contributions = contributions
	return nil
}

func (p *capturingProjection) UpsertClaims(_ context.Context, claims []model.ClaimRecord) error {
	p.claims = append(p.claims, claims...)
	return nil
}

func writeJournal(t *testing.T, dir string, records []model.OperationRecord, extraLines ...string) string {
	t.Helper()

	path := filepath.Join(dir, "ops.jsonl")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create journal: %v", err)
	}
	defer file.Close()

	for _, rec := range records {
		line, err := json.Marshal(rec)
		if err != nil {
			t.Fatalf("marshal record: %v", err)
		}
		if _, err := file.Write(append(line, '\n')); err != nil {
			t.Fatalf("write record: %v", err)
		}
	}
	for _, line := range extraLines {
		if _, err := file.WriteString(line + "\n"); err != nil {
			t.Fatalf("write line: %v", err)
		}
	}
	return path
}

func baseJournal() []model.OperationRecord {
	return []model.OperationRecord{
		{OpID: "op-1", Seq: 1, Op: model.OpGrantAdmin, Caller: adminAddr},
		{OpID: "op-2", Seq: 2, Op: model.OpRegisterMember, Caller: aliceAddr},
		{OpID: "op-3", Seq: 3, Op: model.OpWhitelist, Caller: aliceAddr},
		{OpID: "op-4", Seq: 4, Op: model.OpRegisterMember, Caller: bobAddr},
		{OpID: "op-5", Seq: 5, Op: model.OpWhitelist, Caller: bobAddr},
		{OpID: "op-6", Seq: 6, Op: model.OpSeedBalance, Caller: aliceAddr, Amount: 5000},
		{OpID: "op-7", Seq: 7, Op: model.OpSeedBalance, Caller: bobAddr, Amount: 5000},
		{OpID: "op-8", Seq: 8, Op: model.OpAddProject, ProjectID: 1, Proposer: borrowerAddr, TargetAmount: 1000, ProjectStatus: "approved"},
		{OpID: "op-9", Seq: 9, Op: model.OpCreatePool, Caller: adminAddr, ProjectID: 1, RateBps: 500, DurationSecs: 86400},
	}
}

func TestReplayLifecycle(t *testing.T) {
	records := append(baseJournal(),
		model.OperationRecord{OpID: "op-10", Seq: 10, Op: model.OpJoin, Caller: aliceAddr, PoolID: 1, Amount: 400},
		model.OperationRecord{OpID: "op-11", Seq: 11, Op: model.OpJoin, Caller: bobAddr, PoolID: 1, Amount: 600},
		model.OperationRecord{OpID: "op-12", Seq: 12, Op: model.OpFinalize, Caller: adminAddr, PoolID: 1},
		model.OperationRecord{OpID: "op-13", Seq: 13, Op: model.OpSeedBalance, Caller: borrowerAddr, Amount: 50},
		model.OperationRecord{OpID: "op-14", Seq: 14, Op: model.OpRepay, Caller: borrowerAddr, PoolID: 1},
		model.OperationRecord{OpID: "op-15", Seq: 15, Op: model.OpClaim, Caller: aliceAddr, PoolID: 1},
		model.OperationRecord{OpID: "op-16", Seq: 16, Op: model.OpClaim, Caller: bobAddr, PoolID: 1},
	)
	path := writeJournal(t, t.TempDir(), records)

	world, err := NewWorld(nil)
	if err != nil {
		t.Fatalf("new world: %v", err)
	}

	projection := &capturingProjection{}
	replayer := NewReplayer(Config{Projection: projection}, world, nil)
	if err := replayer.Run(context.Background(), path); err != nil {
		t.Fatalf("replay failed: %v", err)
	}

	snap, err := world.Registry.Get(1)
	if err != nil {
		t.Fatalf("get pool: %v", err)
	}
	if snap.Status != "completed" {
		t.Fatalf("status = %s, want completed", snap.Status)
	}
	if snap.TotalRepayment != 1050 || snap.TotalClaimed != 1050 {
		t.Fatalf("repayment %d claimed %d, want 1050/1050", snap.TotalRepayment, snap.TotalClaimed)
	}

	if len(projection.pools) != 1 {
		t.Fatalf("projected pools = %d, want 1", len(projection.pools))
	}
	if len(projection.contributions) != 2 {
		t.Fatalf("projected contributions = %d, want 2", len(projection.contributions))
	}
	if len(projection.claims) != 2 {
		t.Fatalf("projected claims = %d, want 2", len(projection.claims))
	}
	var claimed uint64
	for _, c := range projection.claims {
		claimed += c.Amount
	}
	if claimed != 1050 {
		t.Fatalf("projected claim sum = %d, want 1050", claimed)
	}
}

func TestReplaySkipsBadRecords(t *testing.T) {
	records := append(baseJournal(),
		// Guard failure: joining a pool that does not exist.
		model.OperationRecord{OpID: "op-10", Seq: 10, Op: model.OpJoin, Caller: aliceAddr, PoolID: 99, Amount: 100},
		// Invalid caller address.
		model.OperationRecord{OpID: "op-11", Seq: 11, Op: model.OpJoin, Caller: "not-an-address", PoolID: 1, Amount: 100},
		// Unknown operation.
		model.OperationRecord{OpID: "op-12", Seq: 12, Op: "mystery", Caller: aliceAddr},
		// A valid join after all the bad ones.
		model.OperationRecord{OpID: "op-13", Seq: 13, Op: model.OpJoin, Caller: aliceAddr, PoolID: 1, Amount: 400},
	)
	path := writeJournal(t, t.TempDir(), records, "{this is not json}")

	world, err := NewWorld(nil)
	if err != nil {
		t.Fatalf("new world: %v", err)
	}

	replayer := NewReplayer(Config{}, world, nil)
	if err := replayer.Run(context.Background(), path); err != nil {
		t.Fatalf("replay failed: %v", err)
	}

	amount, _, err := world.Registry.Contribution(1, addrOf(t, aliceAddr))
	if err != nil {
		t.Fatalf("contribution read: %v", err)
	}
	if amount != 400 {
		t.Fatalf("bad records blocked the valid join: contribution = %d, want 400", amount)
	}
}

func TestReplayDeduplicatesByOpID(t *testing.T) {
	records := append(baseJournal(),
		model.OperationRecord{OpID: "op-10", Seq: 10, Op: model.OpJoin, Caller: aliceAddr, PoolID: 1, Amount: 400},
		model.OperationRecord{OpID: "op-10", Seq: 11, Op: model.OpJoin, Caller: aliceAddr, PoolID: 1, Amount: 400},
	)
	path := writeJournal(t, t.TempDir(), records)

	world, err := NewWorld(nil)
	if err != nil {
		t.Fatalf("new world: %v", err)
	}

	replayer := NewReplayer(Config{}, world, nil)
	if err := replayer.Run(context.Background(), path); err != nil {
		t.Fatalf("replay failed: %v", err)
	}

	amount, _, err := world.Registry.Contribution(1, addrOf(t, aliceAddr))
	if err != nil {
		t.Fatalf("contribution read: %v", err)
	}
	if amount != 400 {
		t.Fatalf("duplicate op applied twice: contribution = %d, want 400", amount)
	}
}

func TestReplayResumesFromCheckpoint(t *testing.T) {
	dir := t.TempDir()
	statePath := filepath.Join(dir, "state.json")
	state := &FileStateStore{Path: statePath}

	path := writeJournal(t, dir, baseJournal())

	world, err := NewWorld(nil)
	if err != nil {
		t.Fatalf("new world: %v", err)
	}
	replayer := NewReplayer(Config{StateStore: state}, world, nil)
	if err := replayer.Run(context.Background(), path); err != nil {
		t.Fatalf("first replay failed: %v", err)
	}

	last, ok, err := state.Load(context.Background())
	if err != nil || !ok {
		t.Fatalf("checkpoint missing: ok=%v err=%v", ok, err)
	}
	if last != 9 {
		t.Fatalf("checkpoint = %d, want 9", last)
	}

	// A second run over the same file must not re-apply anything: the
	// create_pool at seq 9 would otherwise mint pool 2.
	replayer2 := NewReplayer(Config{StateStore: state}, world, nil)
	if err := replayer2.Run(context.Background(), path); err != nil {
		t.Fatalf("second replay failed: %v", err)
	}
	if got := world.Registry.PoolCount(); got != 1 {
		t.Fatalf("pool count after resume = %d, want 1", got)
	}
}

func addrOf(t *testing.T, value string) common.Address {
	t.Helper()
	parsed, err := parseAddress(value)
	if err != nil {
		t.Fatalf("parse address: %v", err)
	}
	return parsed
}
