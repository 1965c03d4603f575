package ledger

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

var (
	alice = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	bob   = common.HexToAddress("0x00000000000000000000000000000000000000b2")
)

func TestMintAndReads(t *testing.T) {
	l := New()

	if err := l.Mint(1, alice, 100); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if err := l.Mint(1, alice, 50); err != nil {
		t.Fatalf("second mint failed: %v", err)
	}
	if err := l.Mint(1, bob, 25); err != nil {
		t.Fatalf("mint bob failed: %v", err)
	}

	if got := l.Shares(1, alice); got != 150 {
		t.Fatalf("alice shares = %d, want 150", got)
	}
	if got := l.TotalShares(1); got != 175 {
		t.Fatalf("total shares = %d, want 175", got)
	}
}

func TestReadsUnknownPoolAndHolder(t *testing.T) {
	l := New()

	if got := l.Shares(9, alice); got != 0 {
		t.Fatalf("unknown pool shares = %d, want 0", got)
	}
	if got := l.TotalShares(9); got != 0 {
		t.Fatalf("unknown pool total = %d, want 0", got)
	}

	l.EnsurePool(1)
	if got := l.Shares(1, alice); got != 0 {
		t.Fatalf("unknown holder shares = %d, want 0", got)
	}
}

func TestMintZeroRejected(t *testing.T) {
	l := New()
	if err := l.Mint(1, alice, 0); !errors.Is(err, ErrZeroShareAmount) {
		t.Fatalf("expected ErrZeroShareAmount, got %v", err)
	}
}

func TestBurn(t *testing.T) {
	l := New()
	if err := l.Mint(1, alice, 100); err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	if err := l.Burn(1, alice, 40); err != nil {
		t.Fatalf("burn failed: %v", err)
	}
	if got := l.Shares(1, alice); got != 60 {
		t.Fatalf("shares after burn = %d, want 60", got)
	}
	if got := l.TotalShares(1); got != 60 {
		t.Fatalf("total after burn = %d, want 60", got)
	}

	if err := l.Burn(1, alice, 61); !errors.Is(err, ErrInsufficientShares) {
		t.Fatalf("expected ErrInsufficientShares, got %v", err)
	}
	if err := l.Burn(1, bob, 1); !errors.Is(err, ErrInsufficientShares) {
		t.Fatalf("expected ErrInsufficientShares for non-holder, got %v", err)
	}
	if err := l.Burn(2, alice, 1); !errors.Is(err, ErrInsufficientShares) {
		t.Fatalf("expected ErrInsufficientShares for unknown pool, got %v", err)
	}
}

func TestTransfer(t *testing.T) {
	l := New()
	if err := l.Mint(1, alice, 100); err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	if err := l.Transfer(1, alice, bob, 30); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	if got := l.Shares(1, alice); got != 70 {
		t.Fatalf("alice shares = %d, want 70", got)
	}
	if got := l.Shares(1, bob); got != 30 {
		t.Fatalf("bob shares = %d, want 30", got)
	}
	if got := l.TotalShares(1); got != 100 {
		t.Fatalf("total changed by transfer: %d, want 100", got)
	}

	if err := l.Transfer(1, alice, bob, 71); !errors.Is(err, ErrInsufficientShares) {
		t.Fatalf("expected ErrInsufficientShares, got %v", err)
	}
	if got := l.Shares(1, alice); got != 70 {
		t.Fatalf("failed transfer mutated alice: %d, want 70", got)
	}
}

func TestConservation(t *testing.T) {
	l := New()
	holders := []common.Address{alice, bob}
	amounts := []uint64{333, 667}

	for i, h := range holders {
		if err := l.Mint(7, h, amounts[i]); err != nil {
			t.Fatalf("mint failed: %v", err)
		}
	}
	if err := l.Burn(7, bob, 67); err != nil {
		t.Fatalf("burn failed: %v", err)
	}
	if err := l.Transfer(7, alice, bob, 100); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	var sum uint64
	for _, h := range holders {
		sum += l.Shares(7, h)
	}
	if sum != l.TotalShares(7) {
		t.Fatalf("conservation broken: holders sum %d != total %d", sum, l.TotalShares(7))
	}
}

func TestEnsurePoolIdempotent(t *testing.T) {
	l := New()
	l.EnsurePool(1)
	if err := l.Mint(1, alice, 10); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	l.EnsurePool(1)
	if got := l.TotalShares(1); got != 10 {
		t.Fatalf("EnsurePool reset the book: total = %d, want 10", got)
	}
}
