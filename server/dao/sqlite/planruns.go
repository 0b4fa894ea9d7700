package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dekarrin/shrdlite/server/dao"
	"github.com/google/uuid"
)

// planTranscriptSep joins/splits a PlanRun.Transcript for storage in a
// single TEXT column. A comma is safe: transcript entries are either plan
// messages (never containing the wire action tokens' separator) or the
// single-character action tokens of spec §6 ("l","r","p","d"), and the
// transcript is rejoined by consumers the same way it arrived from
// internal/planner.Plan ("msg1,cmd1,msg2,cmd2,...").
const planTranscriptSep = "\x1f"

// PlanRunsDB is a dao.PlanRunRepository backed by a "plan_runs" table in
// db. GoalEncoded holds the REZI encoding from internal/rezicodec.
type PlanRunsDB struct {
	db *sql.DB
}

func (repo *PlanRunsDB) init() error {
	_, err := repo.db.Exec(`CREATE TABLE IF NOT EXISTS plan_runs (
		id TEXT NOT NULL PRIMARY KEY,
		world_id TEXT NOT NULL,
		sentence TEXT NOT NULL,
		goal_text TEXT NOT NULL,
		goal_encoded BLOB NOT NULL,
		transcript TEXT NOT NULL,
		failed INTEGER NOT NULL,
		fail_message TEXT NOT NULL,
		created INTEGER NOT NULL
	);`)
	if err != nil {
		return wrapDBError(err)
	}
	_, err = repo.db.Exec(`CREATE INDEX IF NOT EXISTS plan_runs_world_id ON plan_runs (world_id);`)
	return wrapDBError(err)
}

func (repo *PlanRunsDB) Create(ctx context.Context, p dao.PlanRun) (dao.PlanRun, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return dao.PlanRun{}, err
	}

	failed := 0
	if p.Failed {
		failed = 1
	}

	_, err = repo.db.ExecContext(ctx,
		`INSERT INTO plan_runs (id, world_id, sentence, goal_text, goal_encoded, transcript, failed, fail_message, created)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		convertToDB_UUID(id), convertToDB_UUID(p.WorldID), p.Sentence, p.GoalText, p.GoalEncoded,
		strings.Join(p.Transcript, planTranscriptSep), failed, p.FailMessage, convertToDB_Time(p.Created),
	)
	if err != nil {
		return dao.PlanRun{}, wrapDBError(err)
	}
	return repo.GetByID(ctx, id)
}

func (repo *PlanRunsDB) scanRow(row interface{ Scan(...interface{}) error }) (dao.PlanRun, error) {
	var p dao.PlanRun
	var idStr, worldIDStr, transcript string
	var failed int
	var created int64
	err := row.Scan(&idStr, &worldIDStr, &p.Sentence, &p.GoalText, &p.GoalEncoded, &transcript, &failed, &p.FailMessage, &created)
	if err != nil {
		return dao.PlanRun{}, wrapDBError(err)
	}
	p.ID, err = convertFromDB_UUID(idStr)
	if err != nil {
		return dao.PlanRun{}, err
	}
	p.WorldID, err = convertFromDB_UUID(worldIDStr)
	if err != nil {
		return dao.PlanRun{}, err
	}
	if transcript != "" {
		p.Transcript = strings.Split(transcript, planTranscriptSep)
	}
	p.Failed = failed != 0
	p.Created = convertFromDB_Time(created)
	return p, nil
}

func (repo *PlanRunsDB) GetByID(ctx context.Context, id uuid.UUID) (dao.PlanRun, error) {
	row := repo.db.QueryRowContext(ctx,
		`SELECT id, world_id, sentence, goal_text, goal_encoded, transcript, failed, fail_message, created
		 FROM plan_runs WHERE id = ?;`, convertToDB_UUID(id))
	return repo.scanRow(row)
}

func (repo *PlanRunsDB) GetAllByWorld(ctx context.Context, worldID uuid.UUID) ([]dao.PlanRun, error) {
	rows, err := repo.db.QueryContext(ctx,
		`SELECT id, world_id, sentence, goal_text, goal_encoded, transcript, failed, fail_message, created
		 FROM plan_runs WHERE world_id = ? ORDER BY created;`, convertToDB_UUID(worldID))
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.PlanRun
	for rows.Next() {
		p, err := repo.scanRow(rows)
		if err != nil {
			return all, err
		}
		all = append(all, p)
	}
	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}
	return all, nil
}

func (repo *PlanRunsDB) Delete(ctx context.Context, id uuid.UUID) (dao.PlanRun, error) {
	cur, err := repo.GetByID(ctx, id)
	if err != nil {
		return dao.PlanRun{}, err
	}
	_, err = repo.db.ExecContext(ctx, `DELETE FROM plan_runs WHERE id = ?;`, convertToDB_UUID(id))
	if err != nil {
		return dao.PlanRun{}, wrapDBError(err)
	}
	return cur, nil
}

func (repo *PlanRunsDB) Close() error {
	return nil
}
