// Package sqlite implements dao.Store against a single pure-Go (no cgo)
// SQLite database file via modernc.org/sqlite, mirroring the teacher's
// server/dao/sqlite package's per-repository-struct connection sharing.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dekarrin/shrdlite/server/dao"
	"github.com/google/uuid"
	"modernc.org/sqlite"
)

type store struct {
	dbFilename string
	db         *sql.DB

	users    *UsersDB
	worlds   *WorldsDB
	planRuns *PlanRunsDB
}

// NewDatastore opens (creating if necessary) a "shrdlite.db" file under
// storageDir and returns a dao.Store backed by it.
func NewDatastore(storageDir string) (dao.Store, error) {
	st := &store{dbFilename: "shrdlite.db"}

	fileName := filepath.Join(storageDir, st.dbFilename)
	var err error
	st.db, err = sql.Open("sqlite", fileName)
	if err != nil {
		return nil, wrapDBError(err)
	}

	st.users = &UsersDB{db: st.db}
	if err := st.users.init(); err != nil {
		return nil, err
	}
	st.worlds = &WorldsDB{db: st.db}
	if err := st.worlds.init(); err != nil {
		return nil, err
	}
	st.planRuns = &PlanRunsDB{db: st.db}
	if err := st.planRuns.init(); err != nil {
		return nil, err
	}

	return st, nil
}

func (s *store) Users() dao.UserRepository       { return s.users }
func (s *store) Worlds() dao.WorldRepository     { return s.worlds }
func (s *store) PlanRuns() dao.PlanRunRepository { return s.planRuns }

func (s *store) Close() error {
	return s.db.Close()
}

// convertToDB_UUID converts a uuid.UUID to its storage representation.
func convertToDB_UUID(u uuid.UUID) string {
	return u.String()
}

// convertToDB_Time converts a time.Time to its storage representation.
func convertToDB_Time(t time.Time) int64 {
	return t.Unix()
}

// convertFromDB_UUID parses a stored UUID string. On error the returned
// error wraps dao.ErrDecodingFailure.
func convertFromDB_UUID(s string) (uuid.UUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("stored UUID %q is invalid: %w", s, dao.ErrDecodingFailure)
	}
	return u, nil
}

// convertFromDB_Time converts a stored unix timestamp back to a time.Time.
func convertFromDB_Time(i int64) time.Time {
	return time.Unix(i, 0)
}

func wrapDBError(err error) error {
	if err == nil {
		return nil
	}
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code() == 19 {
			return dao.ErrConstraintViolation
		}
		return fmt.Errorf("%s", sqlite.ErrorCodeString[sqliteErr.Code()])
	} else if errors.Is(err, sql.ErrNoRows) {
		return dao.ErrNotFound
	}
	return err
}
