package journal

import (
	"go.uber.org/zap"

	"fundpool/internal/ledger"
	"fundpool/internal/party"
	"fundpool/internal/pool"
	"fundpool/internal/token"
	"fundpool/internal/vault"
)

// World wires a complete in-memory engine: bank, rosters, vaults, share
// ledger, and the pool registry. Setup operations in a journal mutate the
// rosters and bank; engine operations run against the registry.
type World struct {
	Bank      *token.MemoryBank
	Members   *party.StaticRoster
	Whitelist *party.StaticRoster
	Admins    *party.StaticAdmins
	Projects  *party.StaticProjects
	Vaults    *vault.Manager
	Shares    *ledger.Ledger
	Registry  *pool.Registry
}

func NewWorld(logger *zap.Logger) (*World, error) {
	bank := token.NewMemoryBank()
	members := party.NewStaticRoster()
	whitelist := party.NewStaticRoster()
	admins := party.NewStaticAdmins()
	projects := party.NewStaticProjects()
	vaults := vault.NewManager(bank)
	shares := ledger.New()

	registry, err := pool.NewRegistry(pool.Deps{
		Bank:       bank,
		Vaults:     vaults,
		Shares:     shares,
		Membership: members,
		Compliance: whitelist,
		Admins:     admins,
		Projects:   projects,
	}, logger)
	if err != nil {
		return nil, err
	}

	return &World{
		Bank:      bank,
		Members:   members,
		Whitelist: whitelist,
		Admins:    admins,
		Projects:  projects,
		Vaults:    vaults,
		Shares:    shares,
		Registry:  registry,
	}, nil
}
