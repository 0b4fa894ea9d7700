package service

import (
	"context"

	"github.com/dekarrin/shrdlite/internal/interpreter"
	"github.com/dekarrin/shrdlite/internal/nlparse"
	"github.com/dekarrin/shrdlite/internal/scenario"
	"github.com/dekarrin/shrdlite/server/serr"
	"github.com/google/uuid"
)

// Interpret parses sentence and resolves it against the named world,
// returning the single resulting interpreter.Result per spec §4.1 (Interpret
// collapses to exactly one valid reading or returns an error describing
// why it couldn't).
func (svc Service) Interpret(ctx context.Context, worldID uuid.UUID, sentence string) (interpreter.Result, error) {
	_, result, err := svc.interpretInWorld(ctx, worldID, sentence)
	return result, err
}

// interpretInWorld is shared by Interpret and Plan so Plan does not need to
// reparse the stored scenario a second time after interpreting.
func (svc Service) interpretInWorld(ctx context.Context, worldID uuid.UUID, sentence string) (scenario.Scene, interpreter.Result, error) {
	scene, err := svc.loadScene(ctx, worldID)
	if err != nil {
		return scenario.Scene{}, interpreter.Result{}, err
	}

	parses, err := nlparse.Parse(sentence)
	if err != nil {
		return scenario.Scene{}, interpreter.Result{}, serr.New("could not parse sentence: "+err.Error(), err, serr.ErrBadArgument)
	}

	results, err := interpreter.Interpret(parses, scene.Scene)
	if err != nil {
		return scenario.Scene{}, interpreter.Result{}, serr.New(err.Error(), err, serr.ErrBadArgument)
	}

	return scene, results[0], nil
}
