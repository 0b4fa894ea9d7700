package sqlite

import (
	"context"
	"database/sql"

	"github.com/dekarrin/shrdlite/server/dao"
	"github.com/google/uuid"
)

// WorldsDB is a dao.WorldRepository backed by a "worlds" table in db. The
// scenario's TOML source is stored verbatim in the "data" column and
// re-parsed on load via internal/scenario.ParseScene; this table is the
// only thing SPEC_FULL's DOMAIN STACK commits modernc.org/sqlite to.
type WorldsDB struct {
	db *sql.DB
}

func (repo *WorldsDB) init() error {
	_, err := repo.db.Exec(`CREATE TABLE IF NOT EXISTS worlds (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		data BLOB NOT NULL,
		created INTEGER NOT NULL,
		modified INTEGER NOT NULL
	);`)
	return wrapDBError(err)
}

func (repo *WorldsDB) Create(ctx context.Context, w dao.World) (dao.World, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return dao.World{}, err
	}
	now := w.Created
	if now.IsZero() {
		now = convertFromDB_Time(0)
	}

	_, err = repo.db.ExecContext(ctx,
		`INSERT INTO worlds (id, name, data, created, modified) VALUES (?, ?, ?, ?, ?)`,
		convertToDB_UUID(id), w.Name, w.Data, convertToDB_Time(now), convertToDB_Time(now),
	)
	if err != nil {
		return dao.World{}, wrapDBError(err)
	}
	return repo.GetByID(ctx, id)
}

func (repo *WorldsDB) scanRow(row interface{ Scan(...interface{}) error }) (dao.World, error) {
	var w dao.World
	var idStr string
	var created, modified int64
	err := row.Scan(&idStr, &w.Name, &w.Data, &created, &modified)
	if err != nil {
		return dao.World{}, wrapDBError(err)
	}
	w.ID, err = convertFromDB_UUID(idStr)
	if err != nil {
		return dao.World{}, err
	}
	w.Created = convertFromDB_Time(created)
	w.Modified = convertFromDB_Time(modified)
	return w, nil
}

func (repo *WorldsDB) GetByID(ctx context.Context, id uuid.UUID) (dao.World, error) {
	row := repo.db.QueryRowContext(ctx,
		`SELECT id, name, data, created, modified FROM worlds WHERE id = ?;`, convertToDB_UUID(id))
	return repo.scanRow(row)
}

func (repo *WorldsDB) GetAll(ctx context.Context) ([]dao.World, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, name, data, created, modified FROM worlds ORDER BY name;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.World
	for rows.Next() {
		w, err := repo.scanRow(rows)
		if err != nil {
			return all, err
		}
		all = append(all, w)
	}
	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}
	return all, nil
}

func (repo *WorldsDB) Update(ctx context.Context, id uuid.UUID, w dao.World) (dao.World, error) {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE worlds SET name=?, data=?, modified=? WHERE id=?;`,
		w.Name, w.Data, convertToDB_Time(w.Modified), convertToDB_UUID(id),
	)
	if err != nil {
		return dao.World{}, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return dao.World{}, wrapDBError(err)
	}
	if rowsAff < 1 {
		return dao.World{}, dao.ErrNotFound
	}
	return repo.GetByID(ctx, id)
}

func (repo *WorldsDB) Delete(ctx context.Context, id uuid.UUID) (dao.World, error) {
	cur, err := repo.GetByID(ctx, id)
	if err != nil {
		return dao.World{}, err
	}
	_, err = repo.db.ExecContext(ctx, `DELETE FROM worlds WHERE id = ?;`, convertToDB_UUID(id))
	if err != nil {
		return dao.World{}, wrapDBError(err)
	}
	return cur, nil
}

func (repo *WorldsDB) Close() error {
	return nil
}
