// Package interpreter implements spec §4.1: resolving the noun phrases of
// a Command against a world.Scene and synthesising a goal.Goal. It is
// grounded on internal/game/parser.go's verb-dispatch shape, with errors
// surfaced through internal/shrdliteerr the way that file surfaces them
// through internal/tqerrors.
package interpreter

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/shrdlite/internal/goal"
	"github.com/dekarrin/shrdlite/internal/parsetree"
	"github.com/dekarrin/shrdlite/internal/physics"
	"github.com/dekarrin/shrdlite/internal/shrdliteerr"
	"github.com/dekarrin/shrdlite/internal/util"
	"github.com/dekarrin/shrdlite/internal/world"
)

// Result pairs a Parse with the Goal it was interpreted to, per spec §6's
// Result = Parse ⊕ { intp: Goal }.
type Result struct {
	Parse parsetree.Parse
	Goal  goal.Goal
}

// candList is the interpreter's internal CandList of spec §3: a candidate
// set of identifiers together with the quantifier it was resolved under.
// The quantifier is carried, not collapsed, until makeHoldingGoal or
// makeMovingGoal consumes it.
type candList struct {
	ids   []string
	quant parsetree.Quant
}

// Interpret resolves every parse against scene and returns the filtered
// list of semantically valid interpretations, per spec §4.1's
// post-processing rules:
//
//   - exactly one valid interpretation -> return it
//   - zero valid, at least one ObjectAmbiguity -> aggregate ambiguity error
//   - zero valid, no ambiguity -> NoValidInterpretation
//   - two or more valid -> MultipleInterpretations
//
// Interpretations are processed, and any surviving ones returned, in input
// order (spec §5).
func Interpret(parses []parsetree.Parse, scene world.Scene) ([]Result, error) {
	var results []Result
	ambiguousIDs := map[string]bool{}

	for _, p := range parses {
		g, err := interpretOne(p, scene)
		if err != nil {
			switch shrdliteerr.KindOf(err) {
			case shrdliteerr.KindObjectAmbiguity:
				for _, id := range candidatesOf(err) {
					ambiguousIDs[id] = true
				}
				continue
			case shrdliteerr.KindUnsupportedRelation, shrdliteerr.KindUnsupportedQuantifier:
				// guarded-invariant failures: not a matter of this parse
				// being a bad fit, but of malformed input. Propagate
				// immediately rather than silently skipping the parse.
				return nil, err
			default:
				// NoMatch, CannotHoldMany, ArmEmpty: this parse just isn't
				// a valid reading of the world; try the others.
				continue
			}
		}
		results = append(results, Result{Parse: p, Goal: g})
	}

	switch len(results) {
	case 1:
		return results, nil
	case 0:
		if len(ambiguousIDs) > 0 {
			phrase := describeAmbiguousForms(scene.Objects, ambiguousIDs)
			return nil, shrdliteerr.Newf(shrdliteerr.KindObjectAmbiguity,
				"possibly ambiguous command; I don't know which of %s you mean", phrase)
		}
		return nil, shrdliteerr.NoValidInterpretation()
	default:
		return nil, shrdliteerr.MultipleInterpretations(len(results))
	}
}

func candidatesOf(err error) []string {
	var shErr *shrdliteerr.Error
	if errors.As(err, &shErr) {
		return shErr.Candidates()
	}
	return nil
}

// describeAmbiguousForms groups the ambiguous candidate identifiers by
// form and renders a pluralized, Oxford-commaed count per form, e.g.
// "2 balls and 1 box".
func describeAmbiguousForms(cat world.Catalogue, ids map[string]bool) string {
	counts := map[string]int{}
	for id := range ids {
		if f := formOf(cat, id); f != "" {
			counts[f]++
		}
	}

	var forms []string
	for f := range counts {
		forms = append(forms, f)
	}
	sort.Strings(forms)

	phrases := make([]string, len(forms))
	for i, f := range forms {
		phrases[i] = countedForm(counts[f], f)
	}
	return util.MakeTextList(phrases)
}

func formOf(cat world.Catalogue, id string) string {
	if id == world.FloorID {
		return "floor"
	}
	if def, ok := cat[id]; ok {
		return string(def.Form)
	}
	return ""
}

func interpretOne(p parsetree.Parse, scene world.Scene) (goal.Goal, error) {
	cmd := p.Command
	switch cmd.Verb {
	case "take":
		if cmd.Ent == nil {
			return goal.Goal{}, fmt.Errorf("interpreter: take command missing entity")
		}
		cl, err := resolveEntity(*cmd.Ent, scene.Start, scene.Objects)
		if err != nil {
			return goal.Goal{}, err
		}
		return makeHoldingGoal(cl)

	case "put":
		if scene.Start.Holding == "" {
			return goal.Goal{}, shrdliteerr.ArmEmpty()
		}
		if cmd.Loc == nil {
			return goal.Goal{}, fmt.Errorf("interpreter: put command missing location")
		}
		locCands, err := resolveEntity(cmd.Loc.Ent, scene.Start, scene.Objects)
		if err != nil {
			return goal.Goal{}, err
		}
		subj := candList{ids: []string{scene.Start.Holding}, quant: parsetree.The}
		return makeMovingGoal(cmd.Loc.Rel, subj, locCands)

	case "move":
		if cmd.Ent == nil || cmd.Loc == nil {
			return goal.Goal{}, fmt.Errorf("interpreter: move command missing entity or location")
		}
		subjCands, err := resolveEntity(*cmd.Ent, scene.Start, scene.Objects)
		if err != nil {
			return goal.Goal{}, err
		}
		locCands, err := resolveEntity(cmd.Loc.Ent, scene.Start, scene.Objects)
		if err != nil {
			return goal.Goal{}, err
		}
		return makeMovingGoal(cmd.Loc.Rel, subjCands, locCands)

	default:
		return goal.Goal{}, fmt.Errorf("interpreter: unsupported verb %q", cmd.Verb)
	}
}

// resolveEntity resolves e's Obj to a candidate list, keeping e's
// quantifier attached.
func resolveEntity(e parsetree.Entity, s world.State, cat world.Catalogue) (candList, error) {
	ids, err := resolveObj(e.Obj, s, cat)
	if err != nil {
		return candList{}, err
	}
	return candList{ids: ids, quant: e.Quant}, nil
}

// resolveObj implements spec §4.1's resolveObj: fold a recursive object
// description into the identifiers it matches.
func resolveObj(o parsetree.Obj, s world.State, cat world.Catalogue) ([]string, error) {
	if o.Leaf != nil {
		return resolveLeaf(*o.Leaf, cat), nil
	}
	if o.Inner != nil && o.Loc != nil {
		innerCands, err := resolveObj(*o.Inner, s, cat)
		if err != nil {
			return nil, err
		}
		locCands, err := resolveEntity(o.Loc.Ent, s, cat)
		if err != nil {
			return nil, err
		}

		var out []string
		for _, c := range innerCands {
			ok, err := inLocation(s, cat, c, o.Loc.Rel, locCands)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, c)
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("interpreter: malformed object description (neither leaf nor relative)")
}

// resolveLeaf matches a leaf description against the catalogue. The floor
// is a candidate iff form == "floor"; it never otherwise appears, and (per
// spec §4.1) never participates as the Inner of a recursive description on
// the subject side, since it has no leaf fields worth describing further.
func resolveLeaf(leaf parsetree.LeafDesc, cat world.Catalogue) []string {
	if strings.EqualFold(leaf.Form, "floor") {
		return []string{world.FloorID}
	}

	var out []string
	for id, def := range cat {
		if def.Matches(world.Form(leaf.Form), leaf.Color, world.Size(leaf.Size)) {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// inLocation implements spec §4.1.2: quant "the" is treated identically to
// "any" at this level (succeeds if c stands in rel with *some* member of
// list); "all" requires c to stand in rel with *every* member.
func inLocation(s world.State, cat world.Catalogue, c string, rel string, list candList) (bool, error) {
	switch list.quant {
	case parsetree.The, parsetree.Any:
		for _, x := range list.ids {
			ok, err := physics.Eval(s, cat, rel, []string{c, x})
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	case parsetree.All:
		if len(list.ids) == 0 {
			return false, nil
		}
		for _, x := range list.ids {
			ok, err := physics.Eval(s, cat, rel, []string{c, x})
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	default:
		return false, shrdliteerr.UnsupportedQuantifier(string(list.quant))
	}
}

// makeHoldingGoal implements spec §4.1.4.
func makeHoldingGoal(cl candList) (goal.Goal, error) {
	if len(cl.ids) == 0 {
		return goal.Goal{}, shrdliteerr.NoMatch("that")
	}
	if cl.quant == parsetree.All && len(cl.ids) > 1 {
		return goal.Goal{}, shrdliteerr.CannotHoldMany()
	}
	if cl.quant == parsetree.The && len(cl.ids) > 1 {
		return goal.Goal{}, shrdliteerr.ObjectAmbiguity(cl.ids)
	}

	parts := make([]goal.Goal, len(cl.ids))
	for i, id := range cl.ids {
		parts[i] = goal.Leaf(goal.NewLiteral("holding", id))
	}
	return goal.OrOf(parts...), nil
}

// makeMovingGoal implements spec §4.1.5's 3x3 quantifier cross-product.
func makeMovingGoal(rel string, subj, obj candList) (goal.Goal, error) {
	if len(subj.ids) == 0 || len(obj.ids) == 0 {
		return goal.Goal{}, shrdliteerr.NoMatch("that")
	}
	if subj.quant == parsetree.The && len(subj.ids) > 1 {
		return goal.Goal{}, shrdliteerr.ObjectAmbiguity(subj.ids)
	}
	if obj.quant == parsetree.The && len(obj.ids) > 1 {
		return goal.Goal{}, shrdliteerr.ObjectAmbiguity(obj.ids)
	}

	lit := func(s, o string) goal.Goal {
		return goal.Leaf(goal.NewLiteral(rel, s, o))
	}

	switch subj.quant {
	case parsetree.The:
		s := subj.ids[0]
		switch obj.quant {
		case parsetree.The:
			return lit(s, obj.ids[0]), nil
		case parsetree.Any:
			return goal.OrOf(mapOver(obj.ids, func(o string) goal.Goal { return lit(s, o) })...), nil
		case parsetree.All:
			return goal.AndOf(mapOver(obj.ids, func(o string) goal.Goal { return lit(s, o) })...), nil
		}
	case parsetree.Any:
		switch obj.quant {
		case parsetree.The:
			o := obj.ids[0]
			return goal.OrOf(mapOver(subj.ids, func(s string) goal.Goal { return lit(s, o) })...), nil
		case parsetree.Any:
			var parts []goal.Goal
			for _, s := range subj.ids {
				for _, o := range obj.ids {
					parts = append(parts, lit(s, o))
				}
			}
			return goal.OrOf(parts...), nil
		case parsetree.All:
			parts := make([]goal.Goal, len(subj.ids))
			for i, s := range subj.ids {
				parts[i] = goal.AndOf(mapOver(obj.ids, func(o string) goal.Goal { return lit(s, o) })...)
			}
			return goal.OrOf(parts...), nil
		}
	case parsetree.All:
		switch obj.quant {
		case parsetree.The:
			o := obj.ids[0]
			return goal.AndOf(mapOver(subj.ids, func(s string) goal.Goal { return lit(s, o) })...), nil
		case parsetree.Any:
			parts := make([]goal.Goal, len(subj.ids))
			for i, s := range subj.ids {
				parts[i] = goal.OrOf(mapOver(obj.ids, func(o string) goal.Goal { return lit(s, o) })...)
			}
			return goal.AndOf(parts...), nil
		case parsetree.All:
			var parts []goal.Goal
			for _, s := range subj.ids {
				for _, o := range obj.ids {
					parts = append(parts, lit(s, o))
				}
			}
			return goal.AndOf(parts...), nil
		}
	}

	return goal.Goal{}, shrdliteerr.UnsupportedQuantifier(string(subj.quant) + "/" + string(obj.quant))
}

func mapOver(ids []string, f func(string) goal.Goal) []goal.Goal {
	out := make([]goal.Goal, len(ids))
	for i, id := range ids {
		out[i] = f(id)
	}
	return out
}
