package planner

import (
	"fmt"

	"github.com/dekarrin/shrdlite/internal/physics"
	"github.com/dekarrin/shrdlite/internal/world"
)

// Action is one of the four primitive arm actions of spec §3.
type Action string

// The four primitive actions, named by their single-character wire tokens
// (spec §6: cmd ∈ {"l","r","p","d"}).
const (
	ActionLeft  Action = "l"
	ActionRight Action = "r"
	ActionPick  Action = "p"
	ActionDrop  Action = "d"
)

// Step is one successor of a Successors call: the action taken, the
// resulting state, and a human-readable message describing it.
type Step struct {
	Action  Action
	State   world.State
	Message string
}

// inverseOf returns the action that immediately undoes a, or "" if a is "".
func inverseOf(a Action) Action {
	switch a {
	case ActionLeft:
		return ActionRight
	case ActionRight:
		return ActionLeft
	case ActionPick:
		return ActionDrop
	case ActionDrop:
		return ActionPick
	default:
		return ""
	}
}

// shallowClone copies s's Stacks header only: unmodified columns remain
// shared with s. A caller that replaces Stacks[i] must assign a brand new
// slice there rather than mutating the shared one in place. This is the
// persistent/copy-on-write state representation spec §9 calls for, instead
// of a full per-expansion deep clone.
func shallowClone(s world.State) world.State {
	cp := world.State{
		Stacks:  make([][]string, len(s.Stacks)),
		Holding: s.Holding,
		Arm:     s.Arm,
	}
	copy(cp.Stacks, s.Stacks)
	return cp
}

// Successors implements spec §4.3: the legal primitive actions from s,
// each paired with the state it produces and a message describing it.
// incoming is the action that produced s, used to prune its immediate
// inverse (L<->R, P<->D); pass "" for the start state.
func Successors(s world.State, cat world.Catalogue, incoming Action) []Step {
	var steps []Step
	skip := inverseOf(incoming)

	if skip != ActionLeft && s.Arm > 0 {
		ns := shallowClone(s)
		ns.Arm--
		steps = append(steps, Step{ActionLeft, ns, "Moving the arm left"})
	}
	if skip != ActionRight && s.Arm < s.NumColumns()-1 {
		ns := shallowClone(s)
		ns.Arm++
		steps = append(steps, Step{ActionRight, ns, "Moving the arm right"})
	}
	if skip != ActionPick && s.Holding == "" && len(s.Stacks[s.Arm]) > 0 {
		col := s.Stacks[s.Arm]
		top := col[len(col)-1]

		ns := shallowClone(s)
		ns.Stacks[s.Arm] = append([]string(nil), col[:len(col)-1]...)
		ns.Holding = top

		steps = append(steps, Step{ActionPick, ns, fmt.Sprintf("Picking up the %s", formLabel(cat, top))})
	}
	if skip != ActionDrop && s.Holding != "" {
		col := s.Stacks[s.Arm]
		empty := len(col) == 0
		var onto string
		if !empty {
			onto = col[len(col)-1]
		}
		if empty || physics.CanRestOn(cat, s.Holding, onto) {
			held := s.Holding
			ns := shallowClone(s)
			ns.Stacks[s.Arm] = append(append([]string(nil), col...), held)
			ns.Holding = ""

			var msg string
			if empty {
				msg = fmt.Sprintf("Dropping the %s on the floor", formLabel(cat, held))
			} else {
				msg = fmt.Sprintf("Dropping the %s on the %s", formLabel(cat, held), formLabel(cat, onto))
			}
			steps = append(steps, Step{ActionDrop, ns, msg})
		}
	}

	return steps
}

func formLabel(cat world.Catalogue, id string) string {
	if id == world.FloorID {
		return "floor"
	}
	if def, ok := cat[id]; ok {
		return string(def.Form)
	}
	return id
}
