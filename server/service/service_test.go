package service

import (
	"context"
	"testing"

	"github.com/dekarrin/shrdlite/server/dao/inmem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSceneToml = `
format = "SHRDLITE"
type = "SCENE"

[world]
arm = 0

[[object]]
id = "a"
form = "brick"
size = "large"
color = "red"

[[object]]
id = "b"
form = "ball"
size = "small"
color = "white"

[[column]]
stack = ["a"]

[[column]]
stack = []

[[column]]
stack = ["b"]
`

func newTestService(t *testing.T) Service {
	t.Helper()
	return Service{DB: inmem.NewDatastore()}
}

func TestCreateWorld_RejectsInvalidScenario(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateWorld(ctx, "bad", []byte("not valid toml scenario"))
	assert.Error(t, err)
}

func TestCreateWorld_GetWorld_RoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	w, err := svc.CreateWorld(ctx, "small-world", []byte(testSceneToml))
	require.NoError(t, err)
	assert.Equal(t, "small-world", w.Name)

	got, err := svc.GetWorld(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, w.ID, got.ID)
}

func TestCreateWorld_DuplicateNameRejected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateWorld(ctx, "dup", []byte(testSceneToml))
	require.NoError(t, err)

	_, err = svc.CreateWorld(ctx, "dup", []byte(testSceneToml))
	assert.Error(t, err)
}

func TestInterpret_ResolvesUnambiguousSentence(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	w, err := svc.CreateWorld(ctx, "interp-world", []byte(testSceneToml))
	require.NoError(t, err)

	result, err := svc.Interpret(ctx, w.ID, "take the brick")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Goal.String())
}

func TestPlan_RecordsSuccessfulRun(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	w, err := svc.CreateWorld(ctx, "plan-world", []byte(testSceneToml))
	require.NoError(t, err)

	run, err := svc.Plan(ctx, w.ID, "take the brick")
	require.NoError(t, err)
	assert.False(t, run.Failed)
	assert.NotEmpty(t, run.Transcript)
	assert.NotEmpty(t, run.GoalEncoded)

	all, err := svc.GetPlanRunsForWorld(ctx, w.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGetWorld_NotFound(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetWorld(ctx, [16]byte{})
	assert.Error(t, err)
}
