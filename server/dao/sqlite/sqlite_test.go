package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/dekarrin/shrdlite/server/dao"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) dao.Store {
	t.Helper()
	st, err := NewDatastore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestUsersDB_CreateGetByUsername(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	u, err := st.Users().Create(ctx, dao.User{Username: "op", Password: "hash", Role: dao.Operator, LastLogin: time.Now()})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, u.ID)

	got, err := st.Users().GetByUsername(ctx, "op")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, dao.Operator, got.Role)
}

func TestUsersDB_DuplicateUsernameRejected(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	_, err := st.Users().Create(ctx, dao.User{Username: "op", Password: "x"})
	require.NoError(t, err)
	_, err = st.Users().Create(ctx, dao.User{Username: "op", Password: "y"})
	assert.ErrorIs(t, err, dao.ErrConstraintViolation)
}

func TestWorldsDB_CreateGetAllDelete(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	w, err := st.Worlds().Create(ctx, dao.World{Name: "table-scene", Data: []byte("format = \"SHRDLITE\"")})
	require.NoError(t, err)

	all, err := st.Worlds().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, w.Name, all[0].Name)

	_, err = st.Worlds().Delete(ctx, w.ID)
	require.NoError(t, err)
	_, err = st.Worlds().GetByID(ctx, w.ID)
	assert.ErrorIs(t, err, dao.ErrNotFound)
}

func TestPlanRunsDB_CreateAndListByWorld(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	w, err := st.Worlds().Create(ctx, dao.World{Name: "scene", Data: []byte("...")})
	require.NoError(t, err)

	run, err := st.PlanRuns().Create(ctx, dao.PlanRun{
		WorldID:    w.ID,
		Sentence:   "take the ball",
		GoalText:   "Goal\n  holding(ball1)",
		Transcript: []string{"Picking up the ball", "p"},
	})
	require.NoError(t, err)

	runs, err := st.PlanRuns().GetAllByWorld(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
	assert.Equal(t, []string{"Picking up the ball", "p"}, runs[0].Transcript)
}
