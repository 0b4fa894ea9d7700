package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dekarrin/shrdlite/server/dao"
	"github.com/google/uuid"
)

// UsersDB is a dao.UserRepository backed by a "users" table in db.
type UsersDB struct {
	db *sql.DB
}

func (repo *UsersDB) init() error {
	_, err := repo.db.Exec(`CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		role INTEGER NOT NULL,
		created INTEGER NOT NULL,
		last_login INTEGER NOT NULL,
		token_epoch INTEGER NOT NULL
	);`)
	return wrapDBError(err)
}

func (repo *UsersDB) Create(ctx context.Context, u dao.User) (dao.User, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return dao.User{}, fmt.Errorf("could not generate ID: %w", err)
	}

	_, err = repo.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password, role, created, last_login, token_epoch) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		convertToDB_UUID(id), u.Username, u.Password, int(u.Role), convertToDB_Time(u.Created),
		convertToDB_Time(u.LastLogin), convertToDB_Time(u.TokenEpoch),
	)
	if err != nil {
		return dao.User{}, wrapDBError(err)
	}
	return repo.GetByID(ctx, id)
}

func (repo *UsersDB) scanRow(row interface{ Scan(...interface{}) error }, id *string) (dao.User, error) {
	var u dao.User
	var role int
	var created, lastLogin, tokenEpoch int64
	err := row.Scan(id, &u.Username, &u.Password, &role, &created, &lastLogin, &tokenEpoch)
	if err != nil {
		return dao.User{}, wrapDBError(err)
	}
	u.ID, err = convertFromDB_UUID(*id)
	if err != nil {
		return dao.User{}, err
	}
	u.Role = dao.Role(role)
	u.Created = convertFromDB_Time(created)
	u.LastLogin = convertFromDB_Time(lastLogin)
	u.TokenEpoch = convertFromDB_Time(tokenEpoch)
	return u, nil
}

func (repo *UsersDB) GetByID(ctx context.Context, id uuid.UUID) (dao.User, error) {
	row := repo.db.QueryRowContext(ctx,
		`SELECT id, username, password, role, created, last_login, token_epoch FROM users WHERE id = ?;`, convertToDB_UUID(id))
	var idStr string
	return repo.scanRow(row, &idStr)
}

func (repo *UsersDB) GetByUsername(ctx context.Context, username string) (dao.User, error) {
	row := repo.db.QueryRowContext(ctx,
		`SELECT id, username, password, role, created, last_login, token_epoch FROM users WHERE username = ?;`, username)
	var idStr string
	return repo.scanRow(row, &idStr)
}

func (repo *UsersDB) GetAll(ctx context.Context) ([]dao.User, error) {
	rows, err := repo.db.QueryContext(ctx,
		`SELECT id, username, password, role, created, last_login, token_epoch FROM users ORDER BY username;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.User
	for rows.Next() {
		var idStr string
		u, err := repo.scanRow(rows, &idStr)
		if err != nil {
			return all, err
		}
		all = append(all, u)
	}
	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}
	return all, nil
}

func (repo *UsersDB) Update(ctx context.Context, id uuid.UUID, u dao.User) (dao.User, error) {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE users SET username=?, password=?, role=?, last_login=?, token_epoch=? WHERE id=?;`,
		u.Username, u.Password, int(u.Role), convertToDB_Time(u.LastLogin), convertToDB_Time(u.TokenEpoch), convertToDB_UUID(id),
	)
	if err != nil {
		return dao.User{}, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return dao.User{}, wrapDBError(err)
	}
	if rowsAff < 1 {
		return dao.User{}, dao.ErrNotFound
	}
	return repo.GetByID(ctx, id)
}

func (repo *UsersDB) Delete(ctx context.Context, id uuid.UUID) (dao.User, error) {
	cur, err := repo.GetByID(ctx, id)
	if err != nil {
		return dao.User{}, err
	}
	_, err = repo.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?;`, convertToDB_UUID(id))
	if err != nil {
		return dao.User{}, wrapDBError(err)
	}
	return cur, nil
}

func (repo *UsersDB) Close() error {
	return nil
}
