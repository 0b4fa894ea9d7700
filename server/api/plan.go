package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/dekarrin/shrdlite/server/dao"
	"github.com/dekarrin/shrdlite/server/result"
	"github.com/dekarrin/shrdlite/server/serr"
)

func planRunModel(p dao.PlanRun) PlanRunModel {
	return PlanRunModel{
		URI:         PathPrefix + "/plans/" + p.ID.String(),
		ID:          p.ID.String(),
		WorldID:     p.WorldID.String(),
		Sentence:    p.Sentence,
		Goal:        p.GoalText,
		Transcript:  p.Transcript,
		Failed:      p.Failed,
		FailMessage: p.FailMessage,
		Created:     p.Created.Format(time.RFC3339),
	}
}

// HTTPInterpretSentence returns a HandlerFunc that resolves a sentence
// against a world's current state without running the planner, per spec
// §4.1's interpret().
func (api API) HTTPInterpretSentence() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epInterpretSentence)
}

func (api API) epInterpretSentence(req *http.Request) result.Result {
	id := requireIDParam(req)

	var interpReq InterpretRequest
	if err := parseJSON(req, &interpReq); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if interpReq.Sentence == "" {
		return result.BadRequest("sentence: property is empty or missing from request", "empty sentence")
	}

	r, err := api.Backend.Interpret(req.Context(), id, interpReq.Sentence)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	return result.OK(InterpretResponse{Goal: r.Goal.String()}, "interpreted %q against world %s", interpReq.Sentence, id)
}

// HTTPPlanSentence returns a HandlerFunc that interprets a sentence and
// plans a path to satisfy it, per spec §4.6's plan(), recording the
// attempt as a dao.PlanRun.
func (api API) HTTPPlanSentence() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epPlanSentence)
}

func (api API) epPlanSentence(req *http.Request) result.Result {
	id := requireIDParam(req)

	var planReq InterpretRequest
	if err := parseJSON(req, &planReq); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if planReq.Sentence == "" {
		return result.BadRequest("sentence: property is empty or missing from request", "empty sentence")
	}

	run, err := api.Backend.Plan(req.Context(), id, planReq.Sentence)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	return result.Created(planRunModel(run), "planned %q against world %s", planReq.Sentence, id)
}

// HTTPGetPlanRunsForWorld returns a HandlerFunc that lists the plan runs
// recorded against a world.
func (api API) HTTPGetPlanRunsForWorld() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetPlanRunsForWorld)
}

func (api API) epGetPlanRunsForWorld(req *http.Request) result.Result {
	id := requireIDParam(req)

	runs, err := api.Backend.GetPlanRunsForWorld(req.Context(), id)
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	resp := make([]PlanRunModel, len(runs))
	for i := range runs {
		resp[i] = planRunModel(runs[i])
	}
	return result.OK(resp, "got plan runs for world %s", id)
}

// HTTPGetPlanRun returns a HandlerFunc that retrieves a single recorded
// plan run.
func (api API) HTTPGetPlanRun() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetPlanRun)
}

func (api API) epGetPlanRun(req *http.Request) result.Result {
	id := requireIDParam(req)

	run, err := api.Backend.GetPlanRun(req.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}
	return result.OK(planRunModel(run), "got plan run %s", id)
}
