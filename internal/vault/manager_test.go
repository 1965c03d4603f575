package vault

import (
	"errors"
	"testing"

	"fundpool/internal/token"
)

func TestCreateDeterministic(t *testing.T) {
	bank := token.NewMemoryBank()

	first := NewManager(bank)
	second := NewManager(bank)

	addr1, err := first.Create(42)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	addr2, err := second.Create(42)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if addr1 != addr2 {
		t.Fatalf("derivation not deterministic: %s != %s", addr1.Hex(), addr2.Hex())
	}

	other, err := first.Create(43)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if other == addr1 {
		t.Fatalf("distinct pool ids derived the same vault: %s", other.Hex())
	}
}

func TestCreateTwiceRejected(t *testing.T) {
	m := NewManager(token.NewMemoryBank())

	if _, err := m.Create(1); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := m.Create(1); !errors.Is(err, ErrVaultExists) {
		t.Fatalf("expected ErrVaultExists, got %v", err)
	}
}

func TestWithdraw(t *testing.T) {
	bank := token.NewMemoryBank()
	m := NewManager(bank)

	addr, err := m.Create(1)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	bank.Mint(addr, 1000)

	asset, err := m.Withdraw(1, 400)
	if err != nil {
		t.Fatalf("withdraw failed: %v", err)
	}
	if asset.Amount() != 400 {
		t.Fatalf("asset amount = %d, want 400", asset.Amount())
	}

	balance, err := m.Balance(1)
	if err != nil {
		t.Fatalf("balance failed: %v", err)
	}
	if balance != 600 {
		t.Fatalf("vault balance = %d, want 600", balance)
	}
}

func TestWithdrawUnknownVault(t *testing.T) {
	m := NewManager(token.NewMemoryBank())

	if _, err := m.Withdraw(99, 1); !errors.Is(err, ErrVaultNotFound) {
		t.Fatalf("expected ErrVaultNotFound, got %v", err)
	}
	if _, err := m.Address(99); !errors.Is(err, ErrVaultNotFound) {
		t.Fatalf("expected ErrVaultNotFound, got %v", err)
	}
	if _, err := m.Balance(99); !errors.Is(err, ErrVaultNotFound) {
		t.Fatalf("expected ErrVaultNotFound, got %v", err)
	}
}

func TestWithdrawOverdraw(t *testing.T) {
	bank := token.NewMemoryBank()
	m := NewManager(bank)

	addr, err := m.Create(1)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	bank.Mint(addr, 10)

	if _, err := m.Withdraw(1, 11); !errors.Is(err, token.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	balance, err := m.Balance(1)
	if err != nil {
		t.Fatalf("balance failed: %v", err)
	}
	if balance != 10 {
		t.Fatalf("failed withdraw mutated balance: %d, want 10", balance)
	}
}
