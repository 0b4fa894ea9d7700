package service

import (
	"context"
	"errors"

	"github.com/dekarrin/shrdlite/internal/scenario"
	"github.com/dekarrin/shrdlite/server/dao"
	"github.com/dekarrin/shrdlite/server/serr"
	"github.com/google/uuid"
)

// CreateWorld validates tomlData as a scenario (the same validation
// internal/scenario.LoadScene does for a file on disk) and, if valid,
// stores it under name.
func (svc Service) CreateWorld(ctx context.Context, name string, tomlData []byte) (dao.World, error) {
	if name == "" {
		return dao.World{}, serr.New("name must not be empty", serr.ErrBadArgument)
	}

	if _, err := scenario.ParseScene(tomlData); err != nil {
		return dao.World{}, serr.New("invalid scenario: "+err.Error(), err, serr.ErrBadArgument)
	}

	w, err := svc.DB.Worlds().Create(ctx, dao.World{Name: name, Data: tomlData})
	if err != nil {
		if errors.Is(err, dao.ErrConstraintViolation) {
			return dao.World{}, serr.New("a world with that name already exists", err, serr.ErrAlreadyExists)
		}
		return dao.World{}, serr.New("", err, serr.ErrDB)
	}
	return w, nil
}

// GetWorld retrieves a stored world by ID.
func (svc Service) GetWorld(ctx context.Context, id uuid.UUID) (dao.World, error) {
	w, err := svc.DB.Worlds().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.World{}, serr.New("", serr.ErrNotFound)
		}
		return dao.World{}, serr.New("", err, serr.ErrDB)
	}
	return w, nil
}

// GetAllWorlds retrieves every stored world.
func (svc Service) GetAllWorlds(ctx context.Context) ([]dao.World, error) {
	worlds, err := svc.DB.Worlds().GetAll(ctx)
	if err != nil {
		return nil, serr.New("", err, serr.ErrDB)
	}
	return worlds, nil
}

// DeleteWorld removes a stored world, returning the entity that was
// deleted.
func (svc Service) DeleteWorld(ctx context.Context, id uuid.UUID) (dao.World, error) {
	w, err := svc.DB.Worlds().Delete(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.World{}, serr.New("", serr.ErrNotFound)
		}
		return dao.World{}, serr.New("", err, serr.ErrDB)
	}
	return w, nil
}

// loadScene retrieves the named world and reparses its stored TOML into
// the world.Scene the interpreter/planner operate on.
func (svc Service) loadScene(ctx context.Context, worldID uuid.UUID) (scenario.Scene, error) {
	w, err := svc.GetWorld(ctx, worldID)
	if err != nil {
		return scenario.Scene{}, err
	}

	sc, err := scenario.ParseScene(w.Data)
	if err != nil {
		return scenario.Scene{}, serr.New("stored world is no longer valid: "+err.Error(), err, serr.ErrDB)
	}
	return sc, nil
}
