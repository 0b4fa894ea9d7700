package scenario

import (
	"fmt"
	"strings"

	"github.com/dekarrin/shrdlite/internal/world"
)

// Scene bundles a parsed scenario file's metadata with the world.Scene it
// produces. Unlike world.Scene, Scene is never mutated by the
// interpreter/planner; callers pull Objects/Start out for that.
type Scene struct {
	world.Scene
}

// parseScene validates ts and constructs the world.Scene it describes: the
// catalogue from its [[object]] tables, and the starting State from its
// [[column]] tables and [world] settings. It mirrors internal/tqw's
// parseWorldData: validate every reference before constructing, then build
// once all references are known-good.
func parseScene(ts topLevelScene) (Scene, error) {
	if len(ts.Objects) < 1 {
		return Scene{}, fmt.Errorf("no object definitions were read")
	}
	if len(ts.Columns) < 1 {
		return Scene{}, fmt.Errorf("no column definitions were read")
	}

	cat := make(world.Catalogue, len(ts.Objects))
	for _, o := range ts.Objects {
		id := strings.TrimSpace(o.ID)
		if id == "" {
			return Scene{}, fmt.Errorf("object with empty id")
		}
		if id == world.FloorID {
			return Scene{}, fmt.Errorf("object id %q is reserved for the floor", world.FloorID)
		}
		if _, dup := cat[id]; dup {
			return Scene{}, fmt.Errorf("object id %q is defined more than once", id)
		}

		form := world.Form(strings.ToLower(strings.TrimSpace(o.Form)))
		if !validForm(form) {
			return Scene{}, fmt.Errorf("object %q: unrecognized form %q", id, o.Form)
		}
		size := world.Size(strings.ToLower(strings.TrimSpace(o.Size)))
		if size != world.SizeSmall && size != world.SizeLarge {
			return Scene{}, fmt.Errorf("object %q: size must be \"small\" or \"large\", got %q", id, o.Size)
		}

		cat[id] = world.ObjectDef{Form: form, Size: size, Color: strings.ToLower(strings.TrimSpace(o.Color))}
	}

	stacks := make([][]string, len(ts.Columns))
	placed := make(map[string]bool, len(cat))
	for i, col := range ts.Columns {
		stack := make([]string, len(col.Stack))
		for h, id := range col.Stack {
			if _, ok := cat[id]; !ok {
				return Scene{}, fmt.Errorf("column %d: object id %q is not defined in [[object]]", i, id)
			}
			if placed[id] {
				return Scene{}, fmt.Errorf("object id %q appears in more than one column", id)
			}
			placed[id] = true
			stack[h] = id
		}
		stacks[i] = stack
	}
	for id := range cat {
		if !placed[id] {
			return Scene{}, fmt.Errorf("object id %q is defined but placed in no column", id)
		}
	}

	if ts.World.Arm < 0 || ts.World.Arm >= len(stacks) {
		return Scene{}, fmt.Errorf("world.arm %d is out of range [0, %d)", ts.World.Arm, len(stacks))
	}

	start := world.State{Stacks: stacks, Arm: ts.World.Arm}
	if err := start.CheckInvariants(cat); err != nil {
		return Scene{}, fmt.Errorf("scene fails invariant check: %w", err)
	}

	return Scene{world.Scene{Objects: cat, Start: start}}, nil
}

func validForm(f world.Form) bool {
	switch f {
	case world.FormBrick, world.FormPlank, world.FormBall, world.FormPyramid, world.FormBox, world.FormTable:
		return true
	default:
		return false
	}
}
