package goal

import (
	"testing"

	"github.com/dekarrin/shrdlite/internal/world"
	"github.com/stretchr/testify/assert"
)

func TestLiteral_String(t *testing.T) {
	testCases := []struct {
		name   string
		input  Literal
		expect string
	}{
		{
			name:   "positive unary",
			input:  NewLiteral("holding", "a"),
			expect: "holding(a)",
		},
		{
			name:   "positive binary",
			input:  NewLiteral("ontop", "a", "b"),
			expect: "ontop(a,b)",
		},
		{
			name:   "negated",
			input:  Literal{Polarity: false, Rel: "ontop", Args: []string{"a", "b"}},
			expect: "-ontop(a,b)",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.input.String())
		})
	}
}

func TestAndOf_SingleChildCollapses(t *testing.T) {
	leaf := Leaf(NewLiteral("holding", "a"))
	got := AndOf(leaf)
	assert.Equal(t, KindLeaf, got.Kind())
	assert.Equal(t, leaf.AsLeaf(), got.AsLeaf())
}

func TestOrOf_SingleChildCollapses(t *testing.T) {
	leaf := Leaf(NewLiteral("holding", "a"))
	got := OrOf(leaf)
	assert.Equal(t, KindLeaf, got.Kind())
}

func TestGoal_Serialize(t *testing.T) {
	g := OrOf(
		Leaf(NewLiteral("holding", "a")),
		Leaf(NewLiteral("holding", "b")),
		Leaf(NewLiteral("holding", "c")),
	)
	assert.Equal(t, "(holding(c) | holding(b) | holding(a))", g.Serialize())
}

func TestGoal_Eval(t *testing.T) {
	s := world.State{
		Stacks:  [][]string{{"a"}, {"b"}},
		Holding: "",
		Arm:     0,
	}
	cat := world.Catalogue{
		"a": {Form: world.FormBrick, Size: world.SizeLarge},
		"b": {Form: world.FormBrick, Size: world.SizeLarge},
	}

	testCases := []struct {
		name   string
		g      Goal
		expect bool
	}{
		{
			name:   "satisfied leaf",
			g:      Leaf(NewLiteral("leftof", "a", "b")),
			expect: true,
		},
		{
			name:   "unsatisfied leaf",
			g:      Leaf(NewLiteral("rightof", "a", "b")),
			expect: false,
		},
		{
			name: "and requires both",
			g: AndOf(
				Leaf(NewLiteral("leftof", "a", "b")),
				Leaf(NewLiteral("rightof", "a", "b")),
			),
			expect: false,
		},
		{
			name: "or requires one",
			g: OrOf(
				Leaf(NewLiteral("leftof", "a", "b")),
				Leaf(NewLiteral("rightof", "a", "b")),
			),
			expect: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.g.Eval(s, cat)
			assert.NoError(t, err)
			assert.Equal(t, tc.expect, got)
		})
	}
}

func TestGoal_Disjuncts(t *testing.T) {
	a := Leaf(NewLiteral("holding", "a"))
	b := Leaf(NewLiteral("holding", "b"))

	or := OrOf(a, b)
	assert.Len(t, or.Disjuncts(), 2)

	leaf := a
	assert.Equal(t, []Goal{leaf}, leaf.Disjuncts())
}
