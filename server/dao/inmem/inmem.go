// Package inmem provides a dao.Store backed by in-process maps, used as the
// default store for tests and for running the server without a sqlite file
// on disk. It mirrors the teacher's server/dao/inmem package's shape: one
// repository struct per entity, each guarding its own map with a mutex.
package inmem

import "github.com/dekarrin/shrdlite/server/dao"

// NewDatastore returns a dao.Store backed entirely by in-memory maps. Data
// does not survive process restart.
func NewDatastore() dao.Store {
	return &store{
		users:    NewUsersRepository(),
		worlds:   NewWorldsRepository(),
		planRuns: NewPlanRunsRepository(),
	}
}

type store struct {
	users    *UsersRepository
	worlds   *WorldsRepository
	planRuns *PlanRunsRepository
}

func (s *store) Users() dao.UserRepository       { return s.users }
func (s *store) Worlds() dao.WorldRepository     { return s.worlds }
func (s *store) PlanRuns() dao.PlanRunRepository { return s.planRuns }

func (s *store) Close() error {
	return nil
}
