package token

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestWithdrawDepositRoundTrip(t *testing.T) {
	bank := NewMemoryBank()
	holder := common.HexToAddress("0x00000000000000000000000000000000000000a1")
	recipient := common.HexToAddress("0x00000000000000000000000000000000000000b2")

	bank.Mint(holder, 500)

	asset, err := bank.Withdraw(holder, 200)
	if err != nil {
		t.Fatalf("withdraw failed: %v", err)
	}
	bank.Deposit(recipient, asset)

	if got := bank.Balance(holder); got != 300 {
		t.Fatalf("holder balance = %d, want 300", got)
	}
	if got := bank.Balance(recipient); got != 200 {
		t.Fatalf("recipient balance = %d, want 200", got)
	}
}

func TestWithdrawOverdraw(t *testing.T) {
	bank := NewMemoryBank()
	holder := common.HexToAddress("0x00000000000000000000000000000000000000a1")
	bank.Mint(holder, 10)

	if _, err := bank.Withdraw(holder, 11); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if got := bank.Balance(holder); got != 10 {
		t.Fatalf("failed withdraw mutated balance: %d, want 10", got)
	}
}

func TestWithdrawZero(t *testing.T) {
	bank := NewMemoryBank()
	holder := common.HexToAddress("0x00000000000000000000000000000000000000a1")

	asset, err := bank.Withdraw(holder, 0)
	if err != nil {
		t.Fatalf("zero withdraw failed: %v", err)
	}
	if asset.Amount() != 0 {
		t.Fatalf("zero withdraw produced %d", asset.Amount())
	}
}
