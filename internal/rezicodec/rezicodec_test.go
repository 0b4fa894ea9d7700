package rezicodec

import (
	"testing"

	"github.com/dekarrin/shrdlite/internal/goal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeGoal_Leaf(t *testing.T) {
	g := goal.Leaf(goal.NewLiteral("holding", "ball1"))

	data := EncodeGoal(g)
	require.NotEmpty(t, data)

	got, err := DecodeGoal(data)
	require.NoError(t, err)
	assert.Equal(t, g.String(), got.String())
}

func TestEncodeDecodeGoal_Tree(t *testing.T) {
	g := goal.AndOf(
		goal.OrOf(
			goal.Leaf(goal.NewLiteral("ontop", "a", "b")),
			goal.Leaf(goal.NewLiteral("ontop", "a", "c")),
		),
		goal.Leaf(goal.NewLiteral("holding", "d")),
	)

	data := EncodeGoal(g)
	got, err := DecodeGoal(data)
	require.NoError(t, err)
	assert.Equal(t, g.String(), got.String())
}

func TestDecodeGoal_TrailingBytesRejected(t *testing.T) {
	g := goal.Leaf(goal.NewLiteral("holding", "ball1"))
	data := append(EncodeGoal(g), 0xFF)

	_, err := DecodeGoal(data)
	assert.Error(t, err)
}
