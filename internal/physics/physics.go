// Package physics implements the pure, side-effect-free predicates the
// interpreter and planner both depend on: the seven spatial relations and
// the CanRestOn stacking-legality rule. Nothing here mutates a
// world.State; every function is a query against a snapshot.
package physics

import (
	"github.com/dekarrin/shrdlite/internal/shrdliteerr"
	"github.com/dekarrin/shrdlite/internal/world"
)

// Find returns the column and height (0 = bottom) of id in s. ok is false
// if id is held, is the floor, or is absent from every stack.
func Find(s world.State, id string) (col, height int, ok bool) {
	if id == world.FloorID {
		return 0, 0, false
	}
	return s.Find(id)
}

// isHeld reports whether id is currently grasped by the arm.
func isHeld(s world.State, id string) bool {
	return id != "" && id == s.Holding
}

// Holding reports whether s's arm is currently grasping id.
func Holding(s world.State, id string) bool {
	return isHeld(s, id)
}

// Leftof reports whether a sits in a column strictly to the left of b's
// column. False if either operand is held or is the floor.
func Leftof(s world.State, a, b string) bool {
	aCol, _, aOK := resident(s, a)
	bCol, _, bOK := resident(s, b)
	if !aOK || !bOK {
		return false
	}
	return aCol < bCol
}

// Rightof is the mirror image of Leftof.
func Rightof(s world.State, a, b string) bool {
	return Leftof(s, b, a)
}

// Beside reports whether a and b sit in adjacent columns.
func Beside(s world.State, a, b string) bool {
	aCol, _, aOK := resident(s, a)
	bCol, _, bOK := resident(s, b)
	if !aOK || !bOK {
		return false
	}
	d := aCol - bCol
	if d < 0 {
		d = -d
	}
	return d == 1
}

// Above reports whether a sits higher than b in the same column, or
// whether b is the floor (every stack-resident object is above the floor).
// False if a is held; false regardless of b if a is held, per spec.
func Above(s world.State, a, b string) bool {
	if isHeld(s, a) {
		return false
	}
	if b == world.FloorID {
		_, _, aOK := resident(s, a)
		return aOK
	}
	aCol, aH, aOK := resident(s, a)
	bCol, bH, bOK := resident(s, b)
	if !aOK || !bOK {
		return false
	}
	return aCol == bCol && aH > bH
}

// Under is Above with its arguments swapped.
func Under(s world.State, a, b string) bool {
	return Above(s, b, a)
}

// Ontop reports whether a sits directly on top of b: same column, one
// height level up, or b is the floor and a is at height 0.
func Ontop(s world.State, a, b string) bool {
	if isHeld(s, a) {
		return false
	}
	if b == world.FloorID {
		_, h, aOK := resident(s, a)
		return aOK && h == 0
	}
	aCol, aH, aOK := resident(s, a)
	bCol, bH, bOK := resident(s, b)
	if !aOK || !bOK {
		return false
	}
	return aCol == bCol && aH == bH+1
}

// Inside reports whether a is ontop of b and b is a box.
func Inside(s world.State, cat world.Catalogue, a, b string) bool {
	if !Ontop(s, a, b) {
		return false
	}
	def, ok := cat[b]
	return ok && def.Form == world.FormBox
}

// resident returns a's column/height iff a is present in some stack (not
// held, not the floor).
func resident(s world.State, a string) (col, height int, ok bool) {
	if isHeld(s, a) || a == world.FloorID {
		return 0, 0, false
	}
	return s.Find(a)
}

// Eval evaluates the named relation against the given state and catalogue.
// It returns shrdliteerr.UnsupportedRelation for any relation name outside
// the seven defined by spec §4.2 plus "holding".
func Eval(s world.State, cat world.Catalogue, rel string, args []string) (bool, error) {
	switch rel {
	case "holding":
		if len(args) != 1 {
			return false, shrdliteerr.UnsupportedRelation(rel)
		}
		return Holding(s, args[0]), nil
	case "leftof":
		return binaryOK(args, func(a, b string) bool { return Leftof(s, a, b) })
	case "rightof":
		return binaryOK(args, func(a, b string) bool { return Rightof(s, a, b) })
	case "beside":
		return binaryOK(args, func(a, b string) bool { return Beside(s, a, b) })
	case "above":
		return binaryOK(args, func(a, b string) bool { return Above(s, a, b) })
	case "under":
		return binaryOK(args, func(a, b string) bool { return Under(s, a, b) })
	case "ontop":
		return binaryOK(args, func(a, b string) bool { return Ontop(s, a, b) })
	case "inside":
		return binaryOK(args, func(a, b string) bool { return Inside(s, cat, a, b) })
	default:
		return false, shrdliteerr.UnsupportedRelation(rel)
	}
}

func binaryOK(args []string, f func(a, b string) bool) (bool, error) {
	if len(args) != 2 {
		return false, shrdliteerr.UnsupportedRelation("arity mismatch")
	}
	return f(args[0], args[1]), nil
}

// CanRestOn implements spec §4.2's stacking-legality table: whether object
// a may be placed directly on top of object b. b == world.FloorID is
// always legal.
func CanRestOn(cat world.Catalogue, a, b string) bool {
	if b == world.FloorID {
		return true
	}
	bDef, ok := cat[b]
	if !ok {
		return false
	}
	aDef, ok := cat[a]
	if !ok {
		return false
	}

	if bDef.Form == world.FormBall {
		return false
	}
	if aDef.Form == world.FormBall && bDef.Form != world.FormBox {
		return false
	}
	if bDef.Size == world.SizeSmall && aDef.Size == world.SizeLarge {
		return false
	}
	if bDef.Size == world.SizeLarge && aDef.Size == world.SizeSmall {
		return true
	}

	// from here, a and b are the same size.
	if bDef.Form == world.FormBox {
		if aDef.Form == world.FormPyramid || aDef.Form == world.FormPlank || aDef.Form == world.FormBox {
			return false
		}
		return true
	}
	if aDef.Size == world.SizeSmall && (bDef.Form == world.FormBrick || bDef.Form == world.FormPyramid) {
		if aDef.Form == world.FormBox {
			return false
		}
		return true
	}
	if aDef.Size == world.SizeLarge && aDef.Form == world.FormBox && bDef.Form == world.FormPyramid {
		return false
	}
	return true
}
