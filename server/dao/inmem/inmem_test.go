package inmem

import (
	"context"
	"testing"

	"github.com/dekarrin/shrdlite/server/dao"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsersRepository_CreateGetByUsername(t *testing.T) {
	repo := NewUsersRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, dao.User{Username: "alice", Password: "hash", Role: dao.Operator})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = repo.Create(ctx, dao.User{Username: "alice"})
	assert.ErrorIs(t, err, dao.ErrConstraintViolation)
}

func TestUsersRepository_DeleteNotFound(t *testing.T) {
	repo := NewUsersRepository()
	_, err := repo.Delete(context.Background(), [16]byte{})
	assert.ErrorIs(t, err, dao.ErrNotFound)
}

func TestWorldsRepository_CreateDuplicateName(t *testing.T) {
	repo := NewWorldsRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, dao.World{Name: "table-and-balls", Data: []byte("...")})
	require.NoError(t, err)

	_, err = repo.Create(ctx, dao.World{Name: "table-and-balls", Data: []byte("...")})
	assert.ErrorIs(t, err, dao.ErrConstraintViolation)
}

func TestWorldsRepository_UpdatePreservesCreated(t *testing.T) {
	repo := NewWorldsRepository()
	ctx := context.Background()

	w, err := repo.Create(ctx, dao.World{Name: "start", Data: []byte("a")})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, w.ID, dao.World{Name: "start", Data: []byte("b")})
	require.NoError(t, err)
	assert.Equal(t, w.Created, updated.Created)
	assert.Equal(t, []byte("b"), updated.Data)
}

func TestPlanRunsRepository_GetAllByWorld(t *testing.T) {
	repo := NewPlanRunsRepository()
	ctx := context.Background()

	worldA, _ := repo.Create(ctx, dao.PlanRun{WorldID: uuid.New(), Sentence: "take the ball"})
	_, _ = repo.Create(ctx, dao.PlanRun{WorldID: uuid.New(), Sentence: "take the box"})

	runs, err := repo.GetAllByWorld(ctx, worldA.WorldID)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "take the ball", runs[0].Sentence)
}
