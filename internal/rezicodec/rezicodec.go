// Package rezicodec binary-encodes a goal.Goal for persistence and golden
// test fixtures, via github.com/dekarrin/rezi's EncBinary/DecBinary, the
// same pair server/dao/sqlite uses to round-trip a *game.State. goal.Goal
// itself keeps its fields unexported (see internal/goal's tagged-variant
// doc comment), so encoding goes through encodedGoal, a flat exported-field
// mirror rezi's reflection can walk directly.
package rezicodec

import (
	"fmt"

	"github.com/dekarrin/rezi"
	"github.com/dekarrin/shrdlite/internal/goal"
)

type encodedLiteral struct {
	Polarity bool
	Rel      string
	Args     []string
}

type encodedGoal struct {
	Kind     int
	Leaf     encodedLiteral
	Op       int
	Children []encodedGoal
}

func toEncoded(g goal.Goal) encodedGoal {
	switch g.Kind() {
	case goal.KindLeaf:
		l := g.AsLeaf()
		return encodedGoal{
			Kind: int(goal.KindLeaf),
			Leaf: encodedLiteral{Polarity: l.Polarity, Rel: l.Rel, Args: l.Args},
		}
	case goal.KindNode:
		op, children := g.AsNode()
		enc := make([]encodedGoal, len(children))
		for i, c := range children {
			enc[i] = toEncoded(c)
		}
		return encodedGoal{Kind: int(goal.KindNode), Op: int(op), Children: enc}
	default:
		panic(fmt.Sprintf("rezicodec: unknown goal.Kind %d", g.Kind()))
	}
}

func fromEncoded(eg encodedGoal) (goal.Goal, error) {
	switch goal.Kind(eg.Kind) {
	case goal.KindLeaf:
		lit := goal.Literal{Polarity: eg.Leaf.Polarity, Rel: eg.Leaf.Rel, Args: eg.Leaf.Args}
		return goal.Leaf(lit), nil
	case goal.KindNode:
		children := make([]goal.Goal, len(eg.Children))
		for i, c := range eg.Children {
			child, err := fromEncoded(c)
			if err != nil {
				return goal.Goal{}, err
			}
			children[i] = child
		}
		switch goal.Op(eg.Op) {
		case goal.And:
			return goal.AndOf(children...), nil
		case goal.Or:
			return goal.OrOf(children...), nil
		default:
			return goal.Goal{}, fmt.Errorf("rezicodec: unknown op %d", eg.Op)
		}
	default:
		return goal.Goal{}, fmt.Errorf("rezicodec: unknown encoded kind %d", eg.Kind)
	}
}

// EncodeGoal returns the REZI binary encoding of g.
func EncodeGoal(g goal.Goal) []byte {
	return rezi.EncBinary(toEncoded(g))
}

// DecodeGoal decodes a Goal previously produced by EncodeGoal. It returns an
// error if data is malformed or does not fully decode (trailing bytes).
func DecodeGoal(data []byte) (goal.Goal, error) {
	var eg encodedGoal
	n, err := rezi.DecBinary(data, &eg)
	if err != nil {
		return goal.Goal{}, fmt.Errorf("rezicodec: REZI decode: %w", err)
	}
	if n != len(data) {
		return goal.Goal{}, fmt.Errorf("rezicodec: decoded byte count mismatch; consumed %d/%d bytes", n, len(data))
	}
	return fromEncoded(eg)
}
