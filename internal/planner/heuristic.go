package planner

import (
	"math"

	"github.com/dekarrin/shrdlite/internal/goal"
	"github.com/dekarrin/shrdlite/internal/physics"
	"github.com/dekarrin/shrdlite/internal/shrdliteerr"
	"github.com/dekarrin/shrdlite/internal/world"
)

// Heuristic implements spec §4.5: an admissible estimate of the number of
// primitive actions remaining to satisfy g from s. It is the minimum, over
// g's top-level disjuncts, of that disjunct's (approach + work) estimate.
func Heuristic(s world.State, cat world.Catalogue, g goal.Goal) (int, error) {
	best := math.MaxInt
	for _, d := range g.Disjuncts() {
		approach, work, err := clauseEstimate(s, cat, d)
		if err != nil {
			return 0, err
		}
		if total := approach + work; total < best {
			best = total
		}
	}
	return best, nil
}

// clauseEstimate estimates a single AND-clause: approach is the minimum
// arm-travel across its conjuncts (one arm, reused), work is their sum
// (each conjunct's remaining work is additive). A conjunct need not be a
// leaf - the all/any quantifier cell of makeMovingGoal builds
// AND_s(OR_o rel(s,o)) - so each conjunct is estimated with goalEstimate
// rather than assumed to be a leaf.
func clauseEstimate(s world.State, cat world.Catalogue, clause goal.Goal) (approach, work int, err error) {
	approach = math.MaxInt
	for _, c := range clause.Conjuncts() {
		a, w, err := goalEstimate(s, cat, c)
		if err != nil {
			return 0, 0, err
		}
		if a < approach {
			approach = a
		}
		work += w
	}
	if approach == math.MaxInt {
		approach = 0
	}
	return approach, work, nil
}

// goalEstimate returns the (approach, work) estimate for an arbitrary
// Goal node, recursing through And/Or structure of any depth rather than
// assuming the single level of nesting AndOf/OrOf usually produce. An Or
// node is estimated by taking its cheapest disjunct's own (approach,
// work) pair, mirroring Heuristic's top-level handling of g.Disjuncts().
func goalEstimate(s world.State, cat world.Catalogue, g goal.Goal) (approach, work int, err error) {
	if g.Kind() == goal.KindLeaf {
		return literalEstimate(s, cat, g.AsLeaf())
	}

	op, children := g.AsNode()
	if op == goal.And {
		return clauseEstimate(s, cat, g)
	}

	best := math.MaxInt
	var bestApproach, bestWork int
	for _, child := range children {
		a, w, err := goalEstimate(s, cat, child)
		if err != nil {
			return 0, 0, err
		}
		if total := a + w; total < best {
			best, bestApproach, bestWork = total, a, w
		}
	}
	return bestApproach, bestWork, nil
}

// literalEstimate returns the (approach, work) pair of spec §4.5 for a
// single literal, given it is evaluated against s. Literals the interpreter
// emits are always positive; a negated literal that is not already
// satisfied has no dedicated formula here and falls back to (0, 0) - a
// weak but still admissible lower bound.
func literalEstimate(s world.State, cat world.Catalogue, lit goal.Literal) (approach, work int, err error) {
	satisfied, err := physics.Eval(s, cat, lit.Rel, lit.Args)
	if err != nil {
		return 0, 0, err
	}
	if satisfied == lit.Polarity {
		return 0, 0, nil
	}
	if !lit.Polarity {
		return 0, 0, nil
	}

	switch lit.Rel {
	case "holding":
		return 0, 0, nil
	case "ontop", "inside":
		a, w := onTopLikeEstimate(s, cat, lit.Args[0], lit.Args[1])
		return a, w, nil
	case "above":
		a, w := aboveEstimate(s, cat, lit.Args[0], lit.Args[1])
		return a, w, nil
	case "under":
		a, w := aboveEstimate(s, cat, lit.Args[1], lit.Args[0])
		return a, w, nil
	case "leftof":
		a, w := leftofEstimate(s, cat, lit.Args[0], lit.Args[1])
		return a, w, nil
	case "rightof":
		a, w := leftofEstimate(s, cat, lit.Args[1], lit.Args[0])
		return a, w, nil
	case "beside":
		a, w := besideEstimate(s, cat, lit.Args[0], lit.Args[1])
		return a, w, nil
	default:
		return 0, 0, shrdliteerr.UnsupportedRelation(lit.Rel)
	}
}

func colX(s world.State, id string) int {
	if physics.Holding(s, id) {
		return s.Arm
	}
	col, _, ok := physics.Find(s, id)
	if !ok {
		return s.Arm
	}
	return col
}

// heurFree is the cost of clearing everything above id so it becomes
// graspable: 0 if id is already held, else 4 per blocking object (each
// blocker costs >= 4 primitives: approach, pick, move-aside, drop).
func heurFree(s world.State, id string) int {
	if id == world.FloorID || physics.Holding(s, id) {
		return 0
	}
	col, h, ok := physics.Find(s, id)
	if !ok {
		return 0
	}
	return 4 * (len(s.Stacks[col]) - 1 - h)
}

// findBestFloorSpot returns the column minimising 4*height(i) + |i-topX|,
// the cheapest place to set something down on the floor.
func findBestFloorSpot(s world.State, topX int) (col, freeCost int) {
	best, bestCost := 0, math.MaxInt
	for i := 0; i < s.NumColumns(); i++ {
		c := 4*len(s.Stacks[i]) + absInt(i-topX)
		if c < bestCost {
			best, bestCost = i, c
		}
	}
	return best, 4 * len(s.Stacks[best])
}

func moveObject(currentX, destX int, held bool) int {
	d := absInt(currentX - destX)
	if !held {
		d++
	}
	return d
}

func onTopLikeEstimate(s world.State, cat world.Catalogue, top, bot string) (approach, work int) {
	topX := colX(s, top)
	topHeld := physics.Holding(s, top)
	freeTop := heurFree(s, top)

	var botX, freeBot int
	if bot == world.FloorID {
		botX, freeBot = findBestFloorSpot(s, topX)
	} else {
		botX = colX(s, bot)
		freeBot = heurFree(s, bot)
	}

	moveObj := moveObject(topX, botX, topHeld)
	arm := s.Arm

	switch {
	case freeTop == 0:
		return absInt(arm - topX), freeBot + moveObj
	case freeBot == 0:
		return absInt(arm - botX), freeTop + moveObj
	case botX == topX:
		return absInt(arm - topX), maxInt(freeTop, freeBot)
	default:
		armToFreeBoth := minInt(absInt(arm-topX), absInt(arm-botX)) + absInt(topX-botX) - 1
		return armToFreeBoth, freeTop + freeBot + moveObj
	}
}

func aboveEstimate(s world.State, cat world.Catalogue, top, bot string) (approach, work int) {
	if bot == world.FloorID {
		if physics.Holding(s, top) {
			return 0, 1
		}
		return 0, 0
	}
	topX := colX(s, top)
	botX := colX(s, bot)
	freeTop := heurFree(s, top)
	extra := 0
	if physics.Holding(s, bot) {
		extra = 1
	}
	moveObj := moveObject(topX, botX, physics.Holding(s, top))
	return absInt(s.Arm - topX), freeTop + moveObj + extra
}

// leftofEstimate estimates leftof(a,b): col(a) < col(b). It considers
// moving a just left of b's column, or b just right of a's column, and
// takes whichever is cheaper; the boundary sentinel for a column with no
// room on the required side is n-1, per spec §9's design note (b).
func leftofEstimate(s world.State, cat world.Catalogue, a, b string) (approach, work int) {
	n := s.NumColumns()
	aX, bX := colX(s, a), colX(s, b)
	freeA, freeB := heurFree(s, a), heurFree(s, b)

	targetForA := bX - 1
	if targetForA < 0 {
		targetForA = n - 1
	}
	costA := freeA + moveObject(aX, targetForA, physics.Holding(s, a))

	targetForB := aX + 1
	if targetForB >= n {
		targetForB = n - 1
	}
	costB := freeB + moveObject(bX, targetForB, physics.Holding(s, b))

	if costA <= costB {
		return absInt(s.Arm - aX), costA
	}
	return absInt(s.Arm - bX), costB
}

func besideEstimate(s world.State, cat world.Catalogue, a, b string) (approach, work int) {
	n := s.NumColumns()
	aX, bX := colX(s, a), colX(s, b)
	freeA, freeB := heurFree(s, a), heurFree(s, b)

	bestMoveA := math.MaxInt
	for _, nb := range neighborsOf(bX, n) {
		if c := moveObject(aX, nb, physics.Holding(s, a)); c < bestMoveA {
			bestMoveA = c
		}
	}
	costA := freeA + bestMoveA

	bestMoveB := math.MaxInt
	for _, nb := range neighborsOf(aX, n) {
		if c := moveObject(bX, nb, physics.Holding(s, b)); c < bestMoveB {
			bestMoveB = c
		}
	}
	costB := freeB + bestMoveB

	if costA <= costB {
		return absInt(s.Arm - aX), costA
	}
	return absInt(s.Arm - bX), costB
}

func neighborsOf(x, n int) []int {
	var out []int
	if x-1 >= 0 {
		out = append(out, x-1)
	}
	if x+1 < n {
		out = append(out, x+1)
	}
	if len(out) == 0 {
		out = append(out, x)
	}
	return out
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
