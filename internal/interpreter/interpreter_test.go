package interpreter

import (
	"testing"

	"github.com/dekarrin/shrdlite/internal/goal"
	"github.com/dekarrin/shrdlite/internal/parsetree"
	"github.com/dekarrin/shrdlite/internal/shrdliteerr"
	"github.com/dekarrin/shrdlite/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureScene builds the small scene used throughout spec §8's worked
// examples: two balls, two boxes, a floor-resting brick, nothing held.
func fixtureScene() world.Scene {
	cat := world.Catalogue{
		"ball1":  {Form: world.FormBall, Size: world.SizeSmall, Color: "red"},
		"ball2":  {Form: world.FormBall, Size: world.SizeSmall, Color: "white"},
		"box1":   {Form: world.FormBox, Size: world.SizeLarge, Color: "blue"},
		"box2":   {Form: world.FormBox, Size: world.SizeLarge, Color: "green"},
		"brick1": {Form: world.FormBrick, Size: world.SizeLarge, Color: "black"},
	}
	start := world.State{
		Stacks: [][]string{
			{"brick1", "ball1"},
			{"box1"},
			{"box2"},
			{"ball2"},
		},
		Holding: "",
		Arm:     0,
	}
	return world.Scene{Objects: cat, Start: start}
}

func takeTheBall() parsetree.Parse {
	return parsetree.Parse{
		Command: parsetree.Take(parsetree.Entity{
			Quant: parsetree.The,
			Obj:   parsetree.LeafObj("ball", "red", ""),
		}),
	}
}

func TestInterpretOne_TakeTheBall(t *testing.T) {
	scene := fixtureScene()
	g, err := interpretOne(takeTheBall(), scene)
	require.NoError(t, err)
	assert.Equal(t, goal.KindLeaf, g.Kind())
	assert.Equal(t, "holding(ball1)", g.Serialize())
}

func TestInterpretOne_TakeTheBall_Ambiguous(t *testing.T) {
	scene := fixtureScene()
	p := parsetree.Parse{
		Command: parsetree.Take(parsetree.Entity{
			Quant: parsetree.The,
			Obj:   parsetree.LeafObj("ball", "", ""),
		}),
	}
	_, err := interpretOne(p, scene)
	require.Error(t, err)
	assert.Equal(t, shrdliteerr.KindObjectAmbiguity, shrdliteerr.KindOf(err))
}

func TestInterpretOne_PutOnFloor(t *testing.T) {
	scene := fixtureScene()
	scene.Start.Holding = "ball2"
	scene.Start.Stacks[3] = nil

	p := parsetree.Parse{
		Command: parsetree.Put(parsetree.Loc{
			Rel: "ontop",
			Ent: parsetree.Entity{Quant: parsetree.The, Obj: parsetree.LeafObj("floor", "", "")},
		}),
	}
	g, err := interpretOne(p, scene)
	require.NoError(t, err)
	assert.Equal(t, "ontop(ball2,floor)", g.Serialize())
}

func TestInterpretOne_PutWithEmptyArm(t *testing.T) {
	scene := fixtureScene()
	p := parsetree.Parse{
		Command: parsetree.Put(parsetree.Loc{
			Rel: "ontop",
			Ent: parsetree.Entity{Quant: parsetree.The, Obj: parsetree.LeafObj("floor", "", "")},
		}),
	}
	_, err := interpretOne(p, scene)
	require.Error(t, err)
	assert.Equal(t, shrdliteerr.KindArmEmpty, shrdliteerr.KindOf(err))
}

func TestInterpretOne_TakeBallInBox_ReducesToSingleLiteral(t *testing.T) {
	scene := fixtureScene()
	scene.Start.Stacks = [][]string{
		{"brick1"},
		{"box1", "ball1"},
		{"box2"},
		{"ball2"},
	}

	p := parsetree.Parse{
		Command: parsetree.Take(parsetree.Entity{
			Quant: parsetree.The,
			Obj: parsetree.RelObj(
				parsetree.LeafObj("ball", "", ""),
				parsetree.Loc{Rel: "inside", Ent: parsetree.Entity{Quant: parsetree.The, Obj: parsetree.LeafObj("box", "blue", "")}},
			),
		}),
	}
	g, err := interpretOne(p, scene)
	require.NoError(t, err)
	assert.Equal(t, goal.KindLeaf, g.Kind())
	assert.Equal(t, "holding(ball1)", g.Serialize())
}

func TestInterpretOne_PutAllBallsInAllBoxes_IsConjunctionOfFour(t *testing.T) {
	scene := fixtureScene()
	scene.Start.Holding = "ball1"
	scene.Start.Stacks = [][]string{
		{"brick1"},
		{"box1"},
		{"box2"},
		{"ball2"},
	}

	p := parsetree.Parse{
		Command: parsetree.Move(
			parsetree.Entity{Quant: parsetree.All, Obj: parsetree.LeafObj("ball", "", "")},
			parsetree.Loc{Rel: "inside", Ent: parsetree.Entity{Quant: parsetree.All, Obj: parsetree.LeafObj("box", "", "")}},
		),
	}
	g, err := interpretOne(p, scene)
	require.NoError(t, err)
	require.Equal(t, goal.KindNode, g.Kind())
	op, children := g.AsNode()
	assert.Equal(t, goal.And, op)
	assert.Len(t, children, 2)
	for _, c := range children {
		require.Equal(t, goal.KindNode, c.Kind())
		innerOp, innerChildren := c.AsNode()
		assert.Equal(t, goal.Or, innerOp)
		assert.Len(t, innerChildren, 2)
	}
}

func TestInterpretOne_MoveAnyBrickLeftOfAnyPlank_IsDisjunctionOfSix(t *testing.T) {
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

	p := parsetree.Parse{
		Command: parsetree.Move(
			parsetree.Entity{Quant: parsetree.Any, Obj: parsetree.LeafObj("brick", "", "")},
			parsetree.Loc{Rel: "leftof", Ent: parsetree.Entity{Quant: parsetree.Any, Obj: parsetree.LeafObj("plank", "", "")}},
		),
	}
	g, err := interpretOne(p, scene)
	require.NoError(t, err)
	require.Equal(t, goal.KindNode, g.Kind())
	op, children := g.AsNode()
	assert.Equal(t, goal.Or, op)
	assert.Len(t, children, 6)
}

func TestInterpret_SingleValidInterpretation(t *testing.T) {
	scene := fixtureScene()
	results, err := Interpret([]parsetree.Parse{takeTheBall()}, scene)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "holding(ball1)", results[0].Goal.Serialize())
}

func TestInterpret_AggregatesObjectAmbiguityAcrossParses(t *testing.T) {
	scene := fixtureScene()
	ambiguous := parsetree.Parse{
		Command: parsetree.Take(parsetree.Entity{
			Quant: parsetree.The,
			Obj:   parsetree.LeafObj("ball", "", ""),
		}),
	}
	_, err := Interpret([]parsetree.Parse{ambiguous}, scene)
	require.Error(t, err)
	assert.Equal(t, shrdliteerr.KindObjectAmbiguity, shrdliteerr.KindOf(err))
}

func TestInterpret_NoValidInterpretation(t *testing.T) {
	scene := fixtureScene()
	p := parsetree.Parse{
		Command: parsetree.Take(parsetree.Entity{
			Quant: parsetree.The,
			Obj:   parsetree.LeafObj("pyramid", "", ""),
		}),
	}
	_, err := Interpret([]parsetree.Parse{p}, scene)
	require.Error(t, err)
	assert.Equal(t, shrdliteerr.KindNoValidInterpretation, shrdliteerr.KindOf(err))
}

func TestInterpret_MultipleInterpretations(t *testing.T) {
	scene := fixtureScene()
	// Two distinct phrasings that both resolve to valid, distinct goals
	// against the same scene: a genuine PP-attachment-style ambiguity at
	// the Interpret level.
	takeRed := takeTheBall()
	takeWhite := parsetree.Parse{
		Command: parsetree.Take(parsetree.Entity{
			Quant: parsetree.The,
			Obj:   parsetree.LeafObj("ball", "white", ""),
		}),
	}
	results, err := Interpret([]parsetree.Parse{takeRed, takeWhite}, scene)
	require.Error(t, err)
	assert.Nil(t, results)
	assert.Equal(t, shrdliteerr.KindMultipleInterpretations, shrdliteerr.KindOf(err))
}

func TestInterpret_Idempotent(t *testing.T) {
	scene := fixtureScene()
	r1, err1 := Interpret([]parsetree.Parse{takeTheBall()}, scene)
	r2, err2 := Interpret([]parsetree.Parse{takeTheBall()}, scene)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, r1[0].Goal.Serialize(), r2[0].Goal.Serialize())
}

func TestMakeMovingGoal_QuantifierTable(t *testing.T) {
	lit := func(s, o string) goal.Goal { return goal.Leaf(goal.NewLiteral("ontop", s, o)) }

	testCases := []struct {
		name       string
		subj, obj  candList
		wantKind   goal.Kind
		wantOp     goal.Op
		wantArity  int
	}{
		{
			name: "the/the", subj: candList{ids: []string{"a"}, quant: parsetree.The},
			obj: candList{ids: []string{"x"}, quant: parsetree.The}, wantKind: goal.KindLeaf,
		},
		{
			name: "the/any", subj: candList{ids: []string{"a"}, quant: parsetree.The},
			obj: candList{ids: []string{"x", "y"}, quant: parsetree.Any}, wantKind: goal.KindNode, wantOp: goal.Or, wantArity: 2,
		},
		{
			name: "the/all", subj: candList{ids: []string{"a"}, quant: parsetree.The},
			obj: candList{ids: []string{"x", "y"}, quant: parsetree.All}, wantKind: goal.KindNode, wantOp: goal.And, wantArity: 2,
		},
		{
			name: "any/the", subj: candList{ids: []string{"a", "b"}, quant: parsetree.Any},
			obj: candList{ids: []string{"x"}, quant: parsetree.The}, wantKind: goal.KindNode, wantOp: goal.Or, wantArity: 2,
		},
		{
			name: "any/any", subj: candList{ids: []string{"a", "b"}, quant: parsetree.Any},
			obj: candList{ids: []string{"x", "y"}, quant: parsetree.Any}, wantKind: goal.KindNode, wantOp: goal.Or, wantArity: 4,
		},
		{
			name: "any/all", subj: candList{ids: []string{"a", "b"}, quant: parsetree.Any},
			obj: candList{ids: []string{"x", "y"}, quant: parsetree.All}, wantKind: goal.KindNode, wantOp: goal.Or, wantArity: 2,
		},
		{
			name: "all/the", subj: candList{ids: []string{"a", "b"}, quant: parsetree.All},
			obj: candList{ids: []string{"x"}, quant: parsetree.The}, wantKind: goal.KindNode, wantOp: goal.And, wantArity: 2,
		},
		{
			name: "all/any", subj: candList{ids: []string{"a", "b"}, quant: parsetree.All},
			obj: candList{ids: []string{"x", "y"}, quant: parsetree.Any}, wantKind: goal.KindNode, wantOp: goal.And, wantArity: 2,
		},
		{
			name: "all/all", subj: candList{ids: []string{"a", "b"}, quant: parsetree.All},
			obj: candList{ids: []string{"x", "y"}, quant: parsetree.All}, wantKind: goal.KindNode, wantOp: goal.And, wantArity: 4,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := makeMovingGoal("ontop", tc.subj, tc.obj)
			require.NoError(t, err)
			require.Equal(t, tc.wantKind, g.Kind())
			if tc.wantKind == goal.KindNode {
				op, children := g.AsNode()
				assert.Equal(t, tc.wantOp, op)
				assert.Len(t, children, tc.wantArity)
			}
			_ = lit
		})
	}
}

func TestMakeHoldingGoal(t *testing.T) {
	t.Run("empty is NoMatch", func(t *testing.T) {
		_, err := makeHoldingGoal(candList{quant: parsetree.The})
		require.Error(t, err)
		assert.Equal(t, shrdliteerr.KindNoMatch, shrdliteerr.KindOf(err))
	})

	t.Run("all with many is CannotHoldMany", func(t *testing.T) {
		_, err := makeHoldingGoal(candList{ids: []string{"a", "b"}, quant: parsetree.All})
		require.Error(t, err)
		assert.Equal(t, shrdliteerr.KindCannotHoldMany, shrdliteerr.KindOf(err))
	})

	t.Run("the with many is ObjectAmbiguity", func(t *testing.T) {
		_, err := makeHoldingGoal(candList{ids: []string{"a", "b"}, quant: parsetree.The})
		require.Error(t, err)
		assert.Equal(t, shrdliteerr.KindObjectAmbiguity, shrdliteerr.KindOf(err))
	})

	t.Run("any with many is an OR", func(t *testing.T) {
		g, err := makeHoldingGoal(candList{ids: []string{"a", "b"}, quant: parsetree.Any})
		require.NoError(t, err)
		require.Equal(t, goal.KindNode, g.Kind())
		op, children := g.AsNode()
		assert.Equal(t, goal.Or, op)
		assert.Len(t, children, 2)
	})
}
