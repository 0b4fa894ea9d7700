// Package parsetree holds the data contract between the upstream
// tokenizer/parser and the Interpreter (spec §3, §6). A Parse wraps a
// Command, a recursive description of "do this verb to this entity,
// possibly somewhere". The upstream parser (internal/nlparse in this
// repo, or any other producer) may return several Parses for one
// sentence when a relative clause could attach more than one way; the
// Interpreter's job is to pick the semantically valid ones.
package parsetree

// Quant is one of the three quantifiers a noun phrase may be bound by.
type Quant string

// The three supported quantifiers.
const (
	The Quant = "the"
	Any Quant = "any"
	All Quant = "all"
)

// LeafDesc is a leaf object description: "a small red ball", "the floor".
// Form of "anyform" (or "") means wildcard; Color/Size of "" likewise mean
// "don't care". Form of "floor" refers to the reserved floor identifier.
type LeafDesc struct {
	Form  string
	Color string
	Size  string
}

// Obj is a noun-phrase object description: either a leaf description, or a
// recursive "Inner that stands in Loc" description. Exactly one of (Leaf)
// or (Inner, Loc) is set; a zero-valued Obj is not well-formed.
type Obj struct {
	Leaf *LeafDesc

	Inner *Obj
	Loc   *Loc
}

// LeafObj builds an Obj wrapping a leaf description.
func LeafObj(form, color, size string) Obj {
	return Obj{Leaf: &LeafDesc{Form: form, Color: color, Size: size}}
}

// RelObj builds a recursive Obj: inner standing in the given location.
func RelObj(inner Obj, loc Loc) Obj {
	return Obj{Inner: &inner, Loc: &loc}
}

// Loc is a relative-clause location: a spatial relation and the entity it
// relates to ("on the table", "in any box").
type Loc struct {
	Rel string
	Ent Entity
}

// Entity is a quantified object description: "the ball", "any box", "all
// bricks".
type Entity struct {
	Quant Quant
	Obj   Obj
}

// Command is a single parsed sentence. Verb is one of "take", "put", or
// "move". Ent is set for take/move (the thing being acted on); Loc is set
// for put/move (where it should end up). put presupposes the arm is
// already holding something (spec §3).
type Command struct {
	Verb string
	Ent  *Entity
	Loc  *Loc
}

// Take builds a "take ent" Command.
func Take(ent Entity) Command {
	return Command{Verb: "take", Ent: &ent}
}

// Put builds a "put it loc" Command.
func Put(loc Loc) Command {
	return Command{Verb: "put", Loc: &loc}
}

// Move builds a "move ent loc" Command.
func Move(ent Entity, loc Loc) Command {
	return Command{Verb: "move", Ent: &ent, Loc: &loc}
}

// Parse is one candidate reading of a sentence, as produced by the
// upstream parser. A sentence that is syntactically ambiguous (e.g. PP
// attachment) may yield several Parses for the Interpreter to choose
// among.
type Parse struct {
	Command Command
}
