package nlparse

import (
	"testing"

	"github.com/dekarrin/shrdlite/internal/parsetree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	words, err := Tokenize("Take the Red Ball.")
	require.NoError(t, err)
	assert.Equal(t, []string{"take", "the", "red", "ball"}, words)
}

func TestParse_TakeTheBall(t *testing.T) {
	parses, err := Parse("take the red ball")
	require.NoError(t, err)
	require.Len(t, parses, 1)

	cmd := parses[0].Command
	assert.Equal(t, "take", cmd.Verb)
	require.NotNil(t, cmd.Ent)
	assert.Equal(t, parsetree.The, cmd.Ent.Quant)
	require.NotNil(t, cmd.Ent.Obj.Leaf)
	assert.Equal(t, "ball", cmd.Ent.Obj.Leaf.Form)
	assert.Equal(t, "red", cmd.Ent.Obj.Leaf.Color)
}

func TestParse_PickUpSynonym(t *testing.T) {
	parses, err := Parse("pick up the ball")
	require.NoError(t, err)
	require.Len(t, parses, 1)
	assert.Equal(t, "take", parses[0].Command.Verb)
}

func TestParse_PutOnFloor(t *testing.T) {
	parses, err := Parse("put it on the floor")
	require.NoError(t, err)
	require.Len(t, parses, 1)

	cmd := parses[0].Command
	assert.Equal(t, "put", cmd.Verb)
	require.NotNil(t, cmd.Loc)
	assert.Equal(t, "ontop", cmd.Loc.Rel)
	assert.Equal(t, "floor", cmd.Loc.Ent.Obj.Leaf.Form)
}

func TestParse_MoveAnyBrickLeftOfAnyPlank(t *testing.T) {
	parses, err := Parse("move any brick left of any plank")
	require.NoError(t, err)
	require.Len(t, parses, 1)

	cmd := parses[0].Command
	assert.Equal(t, "move", cmd.Verb)
	assert.Equal(t, parsetree.Any, cmd.Ent.Quant)
	assert.Equal(t, "brick", cmd.Ent.Obj.Leaf.Form)
	assert.Equal(t, "leftof", cmd.Loc.Rel)
	assert.Equal(t, parsetree.Any, cmd.Loc.Ent.Quant)
	assert.Equal(t, "plank", cmd.Loc.Ent.Obj.Leaf.Form)
}

func TestParse_PutAllBallsInAllBoxes(t *testing.T) {
	parses, err := Parse("move all balls in all boxes")
	require.NoError(t, err)
	require.Len(t, parses, 1)

	cmd := parses[0].Command
	assert.Equal(t, parsetree.All, cmd.Ent.Quant)
	assert.Equal(t, "inside", cmd.Loc.Rel)
	assert.Equal(t, parsetree.All, cmd.Loc.Ent.Quant)
}

// TestParse_AttachmentAmbiguity exercises the one PP-attachment ambiguity
// this grammar recognizes: a chain of two relative clauses off the take
// target's noun phrase can attach to the innermost noun ("the box on the
// table") or lift to cover the whole preceding phrase ("the ball in the
// box", itself on the table).
func TestParse_AttachmentAmbiguity(t *testing.T) {
	parses, err := Parse("take the ball in the box on the table")
	require.NoError(t, err)
	require.Len(t, parses, 2)

	// Reading 1: greedy / innermost attachment - "the box on the table".
	deep := parses[0].Command.Ent.Obj
	require.NotNil(t, deep.Inner)
	require.NotNil(t, deep.Loc)
	assert.Equal(t, "inside", deep.Loc.Rel)
	innerBox := deep.Loc.Ent.Obj
	require.NotNil(t, innerBox.Inner)
	require.NotNil(t, innerBox.Loc)
	assert.Equal(t, "ontop", innerBox.Loc.Rel)

	// Reading 2: lifted attachment - "(the ball in the box) on the table".
	lifted := parses[1].Command.Ent.Obj
	require.NotNil(t, lifted.Loc)
	assert.Equal(t, "ontop", lifted.Loc.Rel)
	require.NotNil(t, lifted.Inner)
	require.NotNil(t, lifted.Inner.Loc)
	assert.Equal(t, "inside", lifted.Inner.Loc.Rel)
}

func TestParse_UnrecognizedVerb(t *testing.T) {
	_, err := Parse("dance the ball")
	assert.Error(t, err)
}

func TestParse_TrailingInputRejected(t *testing.T) {
	_, err := Parse("take the ball quickly now")
	assert.Error(t, err)
}
