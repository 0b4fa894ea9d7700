package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/dekarrin/shrdlite/server/dao"
	"github.com/dekarrin/shrdlite/server/result"
	"github.com/dekarrin/shrdlite/server/serr"
)

func worldModel(w dao.World) WorldModel {
	return WorldModel{
		URI:      PathPrefix + "/worlds/" + w.ID.String(),
		ID:       w.ID.String(),
		Name:     w.Name,
		Created:  w.Created.Format(time.RFC3339),
		Modified: w.Modified.Format(time.RFC3339),
	}
}

// HTTPCreateWorld returns a HandlerFunc that loads a new named scenario
// into persistence.
func (api API) HTTPCreateWorld() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epCreateWorld)
}

func (api API) epCreateWorld(req *http.Request) result.Result {
	var createReq WorldCreateRequest
	if err := parseJSON(req, &createReq); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if createReq.Name == "" {
		return result.BadRequest("name: property is empty or missing from request", "empty name")
	}
	if createReq.TOML == "" {
		return result.BadRequest("toml: property is empty or missing from request", "empty toml")
	}

	w, err := api.Backend.CreateWorld(req.Context(), createReq.Name, []byte(createReq.TOML))
	if err != nil {
		if errors.Is(err, serr.ErrAlreadyExists) {
			return result.Conflict("a world with that name already exists", err.Error())
		}
		if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	return result.Created(worldModel(w), "world '%s' (%s) created", w.Name, w.ID)
}

// HTTPGetAllWorlds returns a HandlerFunc that lists every stored world.
func (api API) HTTPGetAllWorlds() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetAllWorlds)
}

func (api API) epGetAllWorlds(req *http.Request) result.Result {
	worlds, err := api.Backend.GetAllWorlds(req.Context())
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	resp := make([]WorldModel, len(worlds))
	for i := range worlds {
		resp[i] = worldModel(worlds[i])
	}
	return result.OK(resp, "got all worlds")
}

// HTTPGetWorld returns a HandlerFunc that retrieves a single world.
func (api API) HTTPGetWorld() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetWorld)
}

func (api API) epGetWorld(req *http.Request) result.Result {
	id := requireIDParam(req)

	w, err := api.Backend.GetWorld(req.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}
	return result.OK(worldModel(w), "got world '%s'", w.Name)
}

// HTTPDeleteWorld returns a HandlerFunc that deletes a world.
func (api API) HTTPDeleteWorld() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epDeleteWorld)
}

func (api API) epDeleteWorld(req *http.Request) result.Result {
	id := requireIDParam(req)

	w, err := api.Backend.DeleteWorld(req.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}
	return result.NoContent("world '%s' deleted", w.Name)
}
