package token

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

// ErrInsufficientBalance is returned when a withdrawal exceeds the holder balance.
var ErrInsufficientBalance = errors.New("insufficient balance")

// Asset is a quantity of tokens in flight between two accounts. Assets are
// only produced by a Bank withdrawal and consumed by a deposit.
type Asset struct {
	amount uint64
}

// Amount returns the token quantity carried by the asset.
func (a Asset) Amount() uint64 {
	return a.amount
}

// Bank is the token-transfer primitive the engine runs against.
type Bank interface {
	Withdraw(holder common.Address, amount uint64) (Asset, error)
	Deposit(recipient common.Address, asset Asset)
	Balance(addr common.Address) uint64
}

// MemoryBank is a map-backed Bank for tests and journal replay.
type MemoryBank struct {
	balances map[common.Address]uint64
}

func NewMemoryBank() *MemoryBank {
	return &MemoryBank{balances: make(map[common.Address]uint64)}
}

// Mint credits an account out of thin air. Used to seed balances.
func (b *MemoryBank) Mint(addr common.Address, amount uint64) {
	b.balances[addr] += amount
}

// Withdraw debits the holder and returns the amount as an Asset.
func (b *MemoryBank) Withdraw(holder common.Address, amount uint64) (Asset, error) {
	if amount == 0 {
		return Asset{}, nil
	}
	if b.balances[holder] < amount {
		return Asset{}, ErrInsufficientBalance
	}
	b.balances[holder] -= amount
	return Asset{amount: amount}, nil
}

// Deposit credits the recipient with the asset.
func (b *MemoryBank) Deposit(recipient common.Address, asset Asset) {
	if asset.amount == 0 {
		return
	}
	b.balances[recipient] += asset.amount
}

// Balance reports the current balance of an account.
func (b *MemoryBank) Balance(addr common.Address) uint64 {
	return b.balances[addr]
}
