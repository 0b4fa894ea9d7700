package service

import (
	"context"
	"errors"

	"github.com/dekarrin/shrdlite/internal/planner"
	"github.com/dekarrin/shrdlite/internal/rezicodec"
	"github.com/dekarrin/shrdlite/internal/shrdliteerr"
	"github.com/dekarrin/shrdlite/server/dao"
	"github.com/dekarrin/shrdlite/server/serr"
	"github.com/google/uuid"
)

// Plan interprets sentence against the named world and runs the A* planner
// (spec §4.6) on the resulting Goal, bounded by svc.MaxStates. Every
// attempt - successful or not - is recorded as a dao.PlanRun, mirroring
// how the teacher's tunas.Service always writes through to persistence
// rather than returning transient results: a failed search is itself
// useful history, not a discarded error.
//
// A sentence that fails to parse or interpret is not recorded, since no
// Goal exists yet to plan against; only failures of the search itself
// (shrdliteerr.NoPath, .SearchLimitExceeded) are persisted as Failed runs.
func (svc Service) Plan(ctx context.Context, worldID uuid.UUID, sentence string) (dao.PlanRun, error) {
	scene, result, err := svc.interpretInWorld(ctx, worldID, sentence)
	if err != nil {
		return dao.PlanRun{}, err
	}

	run := dao.PlanRun{
		WorldID:  worldID,
		Sentence: sentence,
		GoalText: result.Goal.String(),
	}

	encoded := rezicodec.EncodeGoal(result.Goal)
	run.GoalEncoded = encoded

	transcript, planErr := planner.Plan(scene.Scene, result.Goal, svc.maxStates())
	if planErr != nil {
		var shErr *shrdliteerr.Error
		if !errors.As(planErr, &shErr) {
			return dao.PlanRun{}, serr.New("", planErr, serr.ErrDB)
		}
		run.Failed = true
		run.FailMessage = shErr.GameMessage()
	} else {
		run.Transcript = transcript
	}

	stored, err := svc.DB.PlanRuns().Create(ctx, run)
	if err != nil {
		return dao.PlanRun{}, serr.New("could not record plan run", err, serr.ErrDB)
	}
	return stored, nil
}

// GetPlanRun retrieves a previously recorded plan run by ID.
func (svc Service) GetPlanRun(ctx context.Context, id uuid.UUID) (dao.PlanRun, error) {
	run, err := svc.DB.PlanRuns().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.PlanRun{}, serr.New("", serr.ErrNotFound)
		}
		return dao.PlanRun{}, serr.New("", err, serr.ErrDB)
	}
	return run, nil
}

// GetPlanRunsForWorld retrieves every plan run recorded against worldID, in
// the order they were created.
func (svc Service) GetPlanRunsForWorld(ctx context.Context, worldID uuid.UUID) ([]dao.PlanRun, error) {
	runs, err := svc.DB.PlanRuns().GetAllByWorld(ctx, worldID)
	if err != nil {
		return nil, serr.New("", err, serr.ErrDB)
	}
	return runs, nil
}
