// Package shrdliteerr holds the typed error vocabulary returned by the
// interpreter and planner. Every error carries a machine-checkable Kind
// plus a human-readable game message, the way internal/tqerrors carries a
// technical message alongside a player-facing one.
package shrdliteerr

import "fmt"

// Kind identifies which of the enumerated failure modes an Error
// represents. Callers that need to branch on failure type should compare
// against a Kind rather than string-matching Error().
type Kind int

const (
	// KindOther is used for errors that don't correspond to one of the
	// specifically enumerated kinds below.
	KindOther Kind = iota

	// KindNoMatch means a candidate list resolved to the empty set.
	KindNoMatch

	// KindObjectAmbiguity means a "the" quantifier bound to more than one
	// candidate at some nesting level.
	KindObjectAmbiguity

	// KindCannotHoldMany means "take all X" matched more than one X.
	KindCannotHoldMany

	// KindArmEmpty means a "put" command was issued while nothing is held.
	KindArmEmpty

	// KindMultipleInterpretations means more than one parse produced a
	// valid goal.
	KindMultipleInterpretations

	// KindNoValidInterpretation means every parse failed, none due to
	// ambiguity.
	KindNoValidInterpretation

	// KindNoPath means A* exhausted the reachable state space without
	// satisfying the goal.
	KindNoPath

	// KindSearchLimitExceeded means more than MaxStates were expanded.
	KindSearchLimitExceeded

	// KindUnsupportedRelation means a Literal named a relation outside the
	// seven defined in the physics oracle.
	KindUnsupportedRelation

	// KindUnsupportedQuantifier means an Entity named a quantifier outside
	// {the, any, all}.
	KindUnsupportedQuantifier
)

func (k Kind) String() string {
	switch k {
	case KindNoMatch:
		return "NoMatch"
	case KindObjectAmbiguity:
		return "ObjectAmbiguity"
	case KindCannotHoldMany:
		return "CannotHoldMany"
	case KindArmEmpty:
		return "ArmEmpty"
	case KindMultipleInterpretations:
		return "MultipleInterpretations"
	case KindNoValidInterpretation:
		return "NoValidInterpretation"
	case KindNoPath:
		return "NoPath"
	case KindSearchLimitExceeded:
		return "SearchLimitExceeded"
	case KindUnsupportedRelation:
		return "UnsupportedRelation"
	case KindUnsupportedQuantifier:
		return "UnsupportedQuantifier"
	default:
		return "Other"
	}
}

// Error is the error type returned throughout this module. It has both a
// message explaining what happened, one suitable for showing to a user
// (GameMessage), and a Kind that lets callers distinguish failure modes
// without string matching.
type Error struct {
	kind       Kind
	msg        string
	human      string
	candidates []string
	wrap       error
}

func (e *Error) Error() string {
	return e.msg
}

// GameMessage shows the message that should be displayed to the user to
// describe the error.
func (e *Error) GameMessage() string {
	return e.human
}

// Kind returns the failure kind this Error represents.
func (e *Error) Kind() Kind {
	return e.kind
}

// Candidates returns the object identifiers that caused a KindObjectAmbiguity
// error, if this is one. Empty for all other kinds.
func (e *Error) Candidates() []string {
	return e.candidates
}

// Unwrap gives the error that this Error wraps, if it wraps one.
func (e *Error) Unwrap() error {
	return e.wrap
}

func newErr(kind Kind, game, technical string) *Error {
	if technical == "" {
		technical = fmt.Sprintf("got %s(%q)", kind, game)
	}
	return &Error{kind: kind, msg: technical, human: game}
}

// New returns a new Error of the given kind with both a player-facing
// message and a technical description. If technical is "", one is
// generated from game and kind.
func New(kind Kind, game, technical string) error {
	return newErr(kind, game, technical)
}

// Newf is like New but the game message is built with fmt.Sprintf.
func Newf(kind Kind, gameFormat string, a ...interface{}) error {
	return newErr(kind, fmt.Sprintf(gameFormat, a...), "")
}

// Wrap is like New but also wraps a causing error, reachable via
// errors.Unwrap.
func Wrap(kind Kind, cause error, game, technical string) error {
	e := newErr(kind, game, technical)
	e.wrap = cause
	return e
}

// NoMatch builds the KindNoMatch error for a failed candidate resolution.
func NoMatch(descr string) error {
	return Newf(KindNoMatch, "I don't see %s here", descr)
}

// ObjectAmbiguity builds the KindObjectAmbiguity error, carrying the
// identifiers that a "the" quantifier bound to more than one of.
func ObjectAmbiguity(candidates []string) error {
	e := newErr(KindObjectAmbiguity, "that's ambiguous", fmt.Sprintf("ObjectAmbiguity(%v)", candidates))
	e.candidates = append([]string(nil), candidates...)
	return e
}

// CannotHoldMany builds the KindCannotHoldMany error.
func CannotHoldMany() error {
	return newErr(KindCannotHoldMany, "I can only hold one object at a time", "")
}

// ArmEmpty builds the KindArmEmpty error.
func ArmEmpty() error {
	return newErr(KindArmEmpty, "I'm not holding anything", "")
}

// MultipleInterpretations builds the KindMultipleInterpretations error.
func MultipleInterpretations(n int) error {
	return newErr(KindMultipleInterpretations,
		fmt.Sprintf("ambiguous command; %d interpretations -- use fewer relative descriptions", n), "")
}

// NoValidInterpretation builds the KindNoValidInterpretation error.
func NoValidInterpretation() error {
	return newErr(KindNoValidInterpretation, "no valid interpretation", "")
}

// NoPath builds the KindNoPath error.
func NoPath() error {
	return newErr(KindNoPath, "that seems to be impossible", "no path to a satisfying state")
}

// SearchLimitExceeded builds the KindSearchLimitExceeded error.
func SearchLimitExceeded(maxStates int) error {
	return newErr(KindSearchLimitExceeded,
		"that's too complicated for me to figure out",
		fmt.Sprintf("search expanded more than MAX_STATES=%d", maxStates))
}

// UnsupportedRelation builds the KindUnsupportedRelation error.
func UnsupportedRelation(rel string) error {
	return newErr(KindUnsupportedRelation, "I don't know what that means", fmt.Sprintf("unsupported relation %q", rel))
}

// UnsupportedQuantifier builds the KindUnsupportedQuantifier error.
func UnsupportedQuantifier(q string) error {
	return newErr(KindUnsupportedQuantifier, "I don't know what that means", fmt.Sprintf("unsupported quantifier %q", q))
}

// GameMessage gets the message to display to the console for the given
// error. If err is one of the types defined in this package, the special
// game message is returned. Otherwise err.Error() is returned.
func GameMessage(err error) string {
	if shErr, ok := err.(*Error); ok {
		return shErr.GameMessage()
	}
	return err.Error()
}

// KindOf returns the Kind of err if it is an *Error, or KindOther otherwise.
func KindOf(err error) Kind {
	if shErr, ok := err.(*Error); ok {
		return shErr.Kind()
	}
	return KindOther
}
