// Package service holds the shrdlite server's business logic, decoupled
// from the HTTP API that calls it. It corresponds to the teacher's
// server/tunas package: a thin layer over server/dao that wires in the
// engine packages (internal/scenario, internal/nlparse,
// internal/interpreter, internal/planner) the teacher's own tunas.Service
// has no equivalent of, since TunaQuest's domain logic lives in
// internal/game rather than behind the server.
package service

import "github.com/dekarrin/shrdlite/server/dao"

// Service is a service for interacting with and modifying the shrdlite
// server backend. It performs the actions requested by the API and makes
// calls to persistence to preserve the backend state.
//
// The zero-value of Service is not ready to be used; assign a valid DAO
// store to DB before attempting to use it.
type Service struct {
	// DB is the persistence store of the service.
	DB dao.Store

	// MaxStates bounds the A* search performed by Plan, per spec §4.6's
	// MAX_STATES ceiling. If zero, DefaultMaxStates is used.
	MaxStates int
}

// DefaultMaxStates is used by Plan when Service.MaxStates is unset.
const DefaultMaxStates = 10000

func (svc Service) maxStates() int {
	if svc.MaxStates > 0 {
		return svc.MaxStates
	}
	return DefaultMaxStates
}
