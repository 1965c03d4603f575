package vault

import (
	"encoding/binary"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"fundpool/internal/token"
)

var (
	// ErrVaultNotFound is returned when no vault exists for a pool id.
	ErrVaultNotFound = errors.New("vault not found")
	// ErrVaultExists is returned when a vault is created twice for one pool id.
	ErrVaultExists = errors.New("vault already exists")
)

var derivationSalt = []byte("fundpool/vault/v1")

// authorization is the sealed capability to move funds out of one vault.
// It never leaves this package.
type authorization struct {
	addr common.Address
}

// Manager owns one escrow subaccount per pool and the sole right to
// withdraw from it.
type Manager struct {
	bank  token.Bank
	auths map[uint64]authorization
}

func NewManager(bank token.Bank) *Manager {
	return &Manager{
		bank:  bank,
		auths: make(map[uint64]authorization),
	}
}

// Create derives the vault subaccount for a pool and stores its
// withdrawal authorization. Pool ids come from a monotonic counter, so
// Create is called exactly once per pool.
func (m *Manager) Create(poolID uint64) (common.Address, error) {
	if _, ok := m.auths[poolID]; ok {
		return common.Address{}, ErrVaultExists
	}
	addr := deriveAddress(poolID)
	m.auths[poolID] = authorization{addr: addr}
	return addr, nil
}

// Withdraw moves exactly amount out of the pool's vault.
func (m *Manager) Withdraw(poolID uint64, amount uint64) (token.Asset, error) {
	auth, ok := m.auths[poolID]
	if !ok {
		return token.Asset{}, ErrVaultNotFound
	}
	return m.bank.Withdraw(auth.addr, amount)
}

// Address returns the vault subaccount for deposits and balance reads.
func (m *Manager) Address(poolID uint64) (common.Address, error) {
	auth, ok := m.auths[poolID]
	if !ok {
		return common.Address{}, ErrVaultNotFound
	}
	return auth.addr, nil
}

// Balance reports the vault's current token balance.
func (m *Manager) Balance(poolID uint64) (uint64, error) {
	auth, ok := m.auths[poolID]
	if !ok {
		return 0, ErrVaultNotFound
	}
	return m.bank.Balance(auth.addr), nil
}

func deriveAddress(poolID uint64) common.Address {
	var id [8]byte
	binary.BigEndian.PutUint64(id[:], poolID)
	hash := crypto.Keccak256(derivationSalt, id[:])
	return common.BytesToAddress(hash[12:])
}
