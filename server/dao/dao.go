// Package dao defines the persistence contract for the shrdlite server:
// operator accounts, stored worlds (a named scenario plus the TOML it was
// loaded from), and the plan-run history recorded each time /plan is
// called against one. Concrete stores (server/dao/inmem,
// server/dao/sqlite) implement Store; callers depend only on this
// package's interfaces, mirroring the teacher's server/dao split.
package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors returned (optionally wrapped with more context via
// server/serr) by Store implementations. Callers should check against
// these with errors.Is rather than comparing implementation-specific
// errors.
var (
	ErrNotFound            = errors.New("the requested entity does not exist")
	ErrConstraintViolation = errors.New("creating/updating the entity would violate a uniqueness constraint")
	ErrDecodingFailure     = errors.New("stored data could not be decoded")
)

// Role is the permission level of a stored operator account.
type Role int

const (
	Guest Role = iota
	Operator
	Admin
)

func (r Role) String() string {
	switch r {
	case Guest:
		return "guest"
	case Operator:
		return "operator"
	case Admin:
		return "admin"
	default:
		return "unknown"
	}
}

// ParseRole parses the output of Role.String back into a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "guest":
		return Guest, nil
	case "operator":
		return Operator, nil
	case "admin":
		return Admin, nil
	default:
		return Guest, errors.New("unknown role: " + s)
	}
}

// User is an operator account authorized to call the HTTP API.
type User struct {
	ID       uuid.UUID
	Username string
	Password string // bcrypt hash, never the plaintext
	Role     Role
	Created  time.Time

	// LastLogin is updated on every successful password login, for
	// auditing; it plays no part in token validity.
	LastLogin time.Time

	// TokenEpoch is folded into the JWT signing key (server/token.go),
	// the way the teacher's LastLogoutTime is: bumping it invalidates
	// every bearer token issued before the bump, without needing a
	// server-side token blacklist.
	TokenEpoch time.Time
}

// World is a stored scenario: the TOML source it was loaded from plus
// enough metadata to list and retrieve it without re-parsing on every
// request. Data is kept around (rather than just the parsed
// scenario.Scene) so a world can be re-validated or re-exported later.
type World struct {
	ID       uuid.UUID
	Name     string
	Data     []byte // the scenario's original SHRDLITE/SCENE TOML source
	Created  time.Time
	Modified time.Time
}

// PlanRun is one recorded invocation of the planner against a World: the
// sentence interpreted, the resulting Goal (rendered via goal.Goal.String,
// kept as text for easy listing) and REZI-encoded form (for exact
// replay/decoding), the emitted transcript, and whether it succeeded.
type PlanRun struct {
	ID          uuid.UUID
	WorldID     uuid.UUID
	Sentence    string
	GoalText    string
	GoalEncoded []byte // REZI-encoded goal.Goal, via internal/rezicodec
	Transcript  []string
	Failed      bool
	FailMessage string
	Created     time.Time
}

// UserRepository stores operator accounts.
type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id uuid.UUID, u User) (User, error)
	Delete(ctx context.Context, id uuid.UUID) (User, error)
	Close() error
}

// WorldRepository stores named scenarios.
type WorldRepository interface {
	Create(ctx context.Context, w World) (World, error)
	GetByID(ctx context.Context, id uuid.UUID) (World, error)
	GetAll(ctx context.Context) ([]World, error)
	Update(ctx context.Context, id uuid.UUID, w World) (World, error)
	Delete(ctx context.Context, id uuid.UUID) (World, error)
	Close() error
}

// PlanRunRepository stores planner invocation history.
type PlanRunRepository interface {
	Create(ctx context.Context, p PlanRun) (PlanRun, error)
	GetByID(ctx context.Context, id uuid.UUID) (PlanRun, error)
	GetAllByWorld(ctx context.Context, worldID uuid.UUID) ([]PlanRun, error)
	Delete(ctx context.Context, id uuid.UUID) (PlanRun, error)
	Close() error
}

// Store aggregates the repositories that make up the server's persisted
// state, the way the teacher's dao.Store aggregates Users/Games/Sessions.
type Store interface {
	Users() UserRepository
	Worlds() WorldRepository
	PlanRuns() PlanRunRepository
	Close() error
}
