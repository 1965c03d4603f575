package party

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

// ErrProjectNotFound is returned when a project id is unknown.
var ErrProjectNotFound = errors.New("project not found")

// ProjectStatus is the review state of a registered project.
type ProjectStatus int

const (
	ProjectPending ProjectStatus = iota
	ProjectApproved
	ProjectRejected
)

func (s ProjectStatus) String() string {
	switch s {
	case ProjectPending:
		return "pending"
	case ProjectApproved:
		return "approved"
	case ProjectRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Project is the registry entry a pool is created against.
type Project struct {
	Proposer     common.Address
	TargetAmount uint64
	Status       ProjectStatus
}

// Membership gates who may join a pool.
type Membership interface {
	IsMember(addr common.Address) bool
}

// Compliance gates who may join a pool and be paid from it.
type Compliance interface {
	IsWhitelisted(addr common.Address) bool
}

// AdminRegistry gates privileged operations.
type AdminRegistry interface {
	HasAdminCapability(addr common.Address) bool
}

// ProjectRegistry resolves project ids to their registry entries.
type ProjectRegistry interface {
	Project(projectID uint64) (Project, error)
}
