package party

import "github.com/ethereum/go-ethereum/common"

// StaticRoster is a fixed address set usable as Membership or Compliance.
type StaticRoster struct {
	members map[common.Address]struct{}
}

func NewStaticRoster() *StaticRoster {
	return &StaticRoster{members: make(map[common.Address]struct{})}
}

func (r *StaticRoster) Add(addr common.Address) {
	r.members[addr] = struct{}{}
}

func (r *StaticRoster) IsMember(addr common.Address) bool {
	_, ok := r.members[addr]
	return ok
}

func (r *StaticRoster) IsWhitelisted(addr common.Address) bool {
	return r.IsMember(addr)
}

// StaticAdmins is a fixed set of addresses holding the admin capability.
type StaticAdmins struct {
	admins map[common.Address]struct{}
}

func NewStaticAdmins() *StaticAdmins {
	return &StaticAdmins{admins: make(map[common.Address]struct{})}
}

func (a *StaticAdmins) Grant(addr common.Address) {
	a.admins[addr] = struct{}{}
}

func (a *StaticAdmins) HasAdminCapability(addr common.Address) bool {
	_, ok := a.admins[addr]
	return ok
}

// StaticProjects is an in-memory ProjectRegistry keyed by project id.
type StaticProjects struct {
	projects map[uint64]Project
}

func NewStaticProjects() *StaticProjects {
	return &StaticProjects{projects: make(map[uint64]Project)}
}

func (p *StaticProjects) Put(projectID uint64, project Project) {
	p.projects[projectID] = project
}

func (p *StaticProjects) Project(projectID uint64) (Project, error) {
	project, ok := p.projects[projectID]
	if !ok {
		return Project{}, ErrProjectNotFound
	}
	return project, nil
}
