package ledger

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrInsufficientShares is returned when a burn exceeds the holder balance.
	ErrInsufficientShares = errors.New("insufficient shares")
	// ErrZeroShareAmount is returned when a mint, burn, or transfer moves nothing.
	ErrZeroShareAmount = errors.New("share amount must be positive")
)

// book tracks share balances for one pool. The invariant is that total
// always equals the sum of holder balances.
type book struct {
	holders map[common.Address]uint64
	total   uint64
}

// Ledger tracks fractional ownership shares per pool.
type Ledger struct {
	books map[uint64]*book
}

func New() *Ledger {
	return &Ledger{books: make(map[uint64]*book)}
}

// EnsurePool creates the share book for a pool if it does not exist yet.
func (l *Ledger) EnsurePool(poolID uint64) {
	if _, ok := l.books[poolID]; !ok {
		l.books[poolID] = &book{holders: make(map[common.Address]uint64)}
	}
}

// Mint credits shares to a holder, creating the entry if absent.
func (l *Ledger) Mint(poolID uint64, recipient common.Address, amount uint64) error {
	if amount == 0 {
		return ErrZeroShareAmount
	}
	l.EnsurePool(poolID)
	b := l.books[poolID]
	b.holders[recipient] += amount
	b.total += amount
	return nil
}

// Burn debits shares from a holder and the pool total.
func (l *Ledger) Burn(poolID uint64, holder common.Address, amount uint64) error {
	if amount == 0 {
		return ErrZeroShareAmount
	}
	b, ok := l.books[poolID]
	if !ok || b.holders[holder] < amount {
		return ErrInsufficientShares
	}
	b.holders[holder] -= amount
	b.total -= amount
	if b.holders[holder] == 0 {
		delete(b.holders, holder)
	}
	return nil
}

// Transfer moves shares between two holders of the same pool. The burn
// is guarded before any mutation, so a failed transfer changes nothing.
func (l *Ledger) Transfer(poolID uint64, from, to common.Address, amount uint64) error {
	if amount == 0 {
		return ErrZeroShareAmount
	}
	b, ok := l.books[poolID]
	if !ok || b.holders[from] < amount {
		return ErrInsufficientShares
	}
	b.holders[from] -= amount
	if b.holders[from] == 0 {
		delete(b.holders, from)
	}
	b.holders[to] += amount
	return nil
}

// Shares reports the holder balance, 0 for unknown pool or holder.
func (l *Ledger) Shares(poolID uint64, holder common.Address) uint64 {
	b, ok := l.books[poolID]
	if !ok {
		return 0
	}
	return b.holders[holder]
}

// TotalShares reports the pool total, 0 for an unknown pool.
func (l *Ledger) TotalShares(poolID uint64) uint64 {
	b, ok := l.books[poolID]
	if !ok {
		return 0
	}
	return b.total
}
