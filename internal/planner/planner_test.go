package planner

import (
	"testing"

	"github.com/dekarrin/shrdlite/internal/goal"
	"github.com/dekarrin/shrdlite/internal/physics"
	"github.com/dekarrin/shrdlite/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioScene builds the 4-column, 5-object scene from spec §8's worked
// examples: a ball (e) alone on column 2.
func scenarioScene() world.Scene {
	cat := world.Catalogue{
		"a": {Form: world.FormBrick, Size: world.SizeLarge, Color: "red"},
		"b": {Form: world.FormBrick, Size: world.SizeLarge, Color: "blue"},
		"c": {Form: world.FormBox, Size: world.SizeLarge, Color: "green"},
		"d": {Form: world.FormBox, Size: world.SizeLarge, Color: "black"},
		"e": {Form: world.FormBall, Size: world.SizeSmall, Color: "white"},
	}
	start := world.State{
		Stacks: [][]string{
			{"a"},
			{"b"},
			{"e"},
			{"c", "d"},
		},
		Arm: 0,
	}
	return world.Scene{Objects: cat, Start: start}
}

func applyPlan(t *testing.T, s world.State, cat world.Catalogue, actions []string) world.State {
	t.Helper()
	for _, tok := range actions {
		steps := Successors(s, cat, "")
		var found bool
		for _, step := range steps {
			if string(step.Action) == tok {
				s = step.State
				found = true
				break
			}
		}
		require.Truef(t, found, "action %q not legal from state %+v", tok, s)
	}
	return s
}

func TestPlan_TakeTheBall(t *testing.T) {
	scene := scenarioScene()
	g := goal.Leaf(goal.NewLiteral("holding", "e"))

	transcript, err := Plan(scene, g, 0)
	require.NoError(t, err)

	actions := ActionTokens(transcript)
	assert.Equal(t, []string{"r", "r", "p"}, actions)

	final := applyPlan(t, scene.Start, scene.Objects, actions)
	ok, err := g.Eval(final, scene.Objects)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPlan_PutOnFloor(t *testing.T) {
	scene := scenarioScene()
	scene.Start.Holding = "e"
	scene.Start.Stacks[2] = nil

	g := goal.Leaf(goal.NewLiteral("ontop", "e", world.FloorID))
	transcript, err := Plan(scene, g, 0)
	require.NoError(t, err)

	actions := ActionTokens(transcript)
	final := applyPlan(t, scene.Start, scene.Objects, actions)
	ok, err := g.Eval(final, scene.Objects)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPlan_MoveAnyBrickLeftOfAnyPlank(t *testing.T) {
	cat := world.Catalogue{
		"brick1": {Form: world.FormBrick, Size: world.SizeLarge},
		"brick2": {Form: world.FormBrick, Size: world.SizeSmall},
		"brick3": {Form: world.FormBrick, Size: world.SizeSmall},
		"plank1": {Form: world.FormPlank, Size: world.SizeLarge},
		"plank2": {Form: world.FormPlank, Size: world.SizeSmall},
	}
	start := world.State{
		Stacks: [][]string{{"brick1"}, {"brick2"}, {"brick3"}, {"plank1"}, {"plank2"}},
		Arm:    0,
	}
	scene := world.Scene{Objects: cat, Start: start}

	g := goal.OrOf(
		goal.Leaf(goal.NewLiteral("leftof", "brick1", "plank1")),
		goal.Leaf(goal.NewLiteral("leftof", "brick1", "plank2")),
		goal.Leaf(goal.NewLiteral("leftof", "brick2", "plank1")),
		goal.Leaf(goal.NewLiteral("leftof", "brick2", "plank2")),
		goal.Leaf(goal.NewLiteral("leftof", "brick3", "plank1")),
		goal.Leaf(goal.NewLiteral("leftof", "brick3", "plank2")),
	)

	transcript, err := Plan(scene, g, 0)
	require.NoError(t, err)
	actions := ActionTokens(transcript)
	final := applyPlan(t, scene.Start, scene.Objects, actions)
	ok, err := g.Eval(final, scene.Objects)
	require.NoError(t, err)
	assert.True(t, ok)

	// brick1 is already leftof both planks, so a zero-action plan should
	// have been found: a trivial, already-satisfied disjunct.
	assert.Empty(t, actions)
}

func TestPlan_AllBricksLeftOfAnyPlank_ANDofOR(t *testing.T) {
	// "move all bricks left of any plank": makeMovingGoal's all/any cell
	// builds AND_s(OR_o leftof(s,o)), an AND whose own conjuncts are OR
	// nodes rather than leaves. Heuristic (via clauseEstimate) must be
	// able to estimate that shape on the very first state, before any
	// goal test, without panicking.
	cat := world.Catalogue{
		"brick1": {Form: world.FormBrick, Size: world.SizeLarge},
		"brick2": {Form: world.FormBrick, Size: world.SizeSmall},
		"plank1": {Form: world.FormPlank, Size: world.SizeLarge},
		"plank2": {Form: world.FormPlank, Size: world.SizeSmall},
	}
	start := world.State{
		Stacks: [][]string{{"plank1"}, {"plank2"}, {"brick1"}, {"brick2"}},
		Arm:    0,
	}
	scene := world.Scene{Objects: cat, Start: start}

	g := goal.AndOf(
		goal.OrOf(
			goal.Leaf(goal.NewLiteral("leftof", "brick1", "plank1")),
			goal.Leaf(goal.NewLiteral("leftof", "brick1", "plank2")),
		),
		goal.OrOf(
			goal.Leaf(goal.NewLiteral("leftof", "brick2", "plank1")),
			goal.Leaf(goal.NewLiteral("leftof", "brick2", "plank2")),
		),
	)

	h, err := Heuristic(scene.Start, scene.Objects, g)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, h, 0)

	transcript, err := Plan(scene, g, 0)
	require.NoError(t, err)

	actions := ActionTokens(transcript)
	final := applyPlan(t, scene.Start, scene.Objects, actions)
	ok, err := g.Eval(final, scene.Objects)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPlan_NoPath(t *testing.T) {
	cat := world.Catalogue{
		"a": {Form: world.FormBall, Size: world.SizeSmall},
	}
	start := world.State{Stacks: [][]string{{"a"}}, Arm: 0}
	scene := world.Scene{Objects: cat, Start: start}

	// a ball can never rest on another ball and there is no second column
	// or box, so "ontop(a,a)" (nonsensical but well-typed) can never hold
	// and is unreachable regardless of MAX_STATES.
	g := goal.Leaf(goal.NewLiteral("above", "a", world.FloorID))
	// above(a, floor) is immediately true (a resident single-column
	// object), so use a goal that is actually unreachable instead:
	g = goal.Leaf(goal.NewLiteral("ontop", "a", "nonexistent"))

	_, err := Plan(scene, g, 50)
	require.Error(t, err)
}

func TestSuccessors_InverseActionPruned(t *testing.T) {
	cat := world.Catalogue{"a": {Form: world.FormBrick, Size: world.SizeLarge}}
	s := world.State{Stacks: [][]string{{}, {}}, Arm: 0}

	steps := Successors(s, cat, ActionRight)
	for _, step := range steps {
		assert.NotEqual(t, ActionLeft, step.Action, "L should be pruned as the inverse of the incoming R")
	}
}

func TestSuccessors_DropRespectsCanRestOn(t *testing.T) {
	cat := world.Catalogue{
		"ball": {Form: world.FormBall, Size: world.SizeSmall},
		"box":  {Form: world.FormBox, Size: world.SizeLarge},
	}
	s := world.State{Stacks: [][]string{{"box"}}, Holding: "ball", Arm: 0}

	steps := Successors(s, cat, "")
	var sawDrop bool
	for _, step := range steps {
		if step.Action == ActionDrop {
			sawDrop = true
		}
	}
	assert.True(t, sawDrop, "ball should legally drop into a box")
}

func TestHeuristic_AdmissibleOnSatisfiedGoal(t *testing.T) {
	scene := scenarioScene()
	g := goal.Leaf(goal.NewLiteral("leftof", "a", "b"))
	h, err := Heuristic(scene.Start, scene.Objects, g)
	require.NoError(t, err)
	assert.Equal(t, 0, h)
}

func TestHeuristic_NeverExceedsActualPlanLength(t *testing.T) {
	scene := scenarioScene()
	g := goal.Leaf(goal.NewLiteral("holding", "e"))

	h, err := Heuristic(scene.Start, scene.Objects, g)
	require.NoError(t, err)

	transcript, err := Plan(scene, g, 0)
	require.NoError(t, err)
	actualCost := len(ActionTokens(transcript))

	assert.LessOrEqual(t, h, actualCost)
}

func TestRoundTrip_PlanSatisfiesGoalFromInitialState(t *testing.T) {
	scene := scenarioScene()
	g := goal.Leaf(goal.NewLiteral("holding", "e"))
	transcript, err := Plan(scene, g, 0)
	require.NoError(t, err)

	final := applyPlan(t, scene.Start, scene.Objects, ActionTokens(transcript))
	require.NoError(t, final.CheckInvariants(scene.Objects))
	ok, err := g.Eval(final, scene.Objects)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanRestOn_ConsistentWithDropMessages(t *testing.T) {
	cat := world.Catalogue{
		"box":   {Form: world.FormBox, Size: world.SizeLarge},
		"brick": {Form: world.FormBrick, Size: world.SizeLarge},
	}
	s := world.State{Stacks: [][]string{{"box"}}, Holding: "brick", Arm: 0}
	steps := Successors(s, cat, "")
	for _, step := range steps {
		if step.Action != ActionDrop {
			continue
		}
		ok := physics.Ontop(step.State, "brick", "box")
		assert.True(t, ok)
		assert.True(t, physics.CanRestOn(cat, "brick", "box"))
	}
}
