package nlparse

import (
	"fmt"
	"strings"

	"github.com/dekarrin/shrdlite/internal/parsetree"
)

// Parse tokenizes and parses sentence into one or more candidate
// parsetree.Parse values, per spec §1's "upstream tokenizer/parser" data
// contract. More than one Parse is returned exactly when the sentence
// contains a trailing-clause attachment ambiguity this grammar recognizes
// (see alternateAttachment); every other sentence produces exactly one.
func Parse(sentence string) ([]parsetree.Parse, error) {
	words, err := Tokenize(sentence)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("nlparse: empty command")
	}
	p := &parser{toks: words}
	return p.parseCommand()
}

type parser struct {
	toks []string
	pos  int
}

func (p *parser) peek() string {
	if p.pos >= len(p.toks) {
		return ""
	}
	return p.toks[p.pos]
}

func (p *parser) next() string {
	w := p.peek()
	if w != "" {
		p.pos++
	}
	return w
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.toks)
}

func normalizeVerb(w string) string {
	switch w {
	case "take", "pick", "grab":
		return "take"
	case "put", "drop", "place":
		return "put"
	case "move", "shift":
		return "move"
	default:
		return ""
	}
}

func quantOf(w string) (parsetree.Quant, bool) {
	switch w {
	case "the":
		return parsetree.The, true
	case "a", "an", "any", "some":
		return parsetree.Any, true
	case "all", "every", "each":
		return parsetree.All, true
	default:
		return "", false
	}
}

var sizeWords = map[string]bool{"small": true, "large": true}

var formWords = map[string]bool{
	"brick": true, "plank": true, "ball": true, "pyramid": true,
	"box": true, "table": true, "floor": true,
}

var relWords = map[string]bool{
	"on": true, "in": true, "inside": true, "under": true, "beneath": true,
	"below": true, "above": true, "over": true, "beside": true, "next": true,
	"left": true, "right": true,
}

func (p *parser) atRelWord() bool {
	return relWords[p.peek()]
}

// parseRelWord consumes one relation phrase ("on top of", "left of",
// "next to", a bare "under", ...) and returns the physics relation name it
// denotes.
func (p *parser) parseRelWord() (string, error) {
	w := p.next()
	switch w {
	case "on":
		if p.peek() == "top" {
			p.next()
			if p.peek() == "of" {
				p.next()
			}
		}
		return "ontop", nil
	case "in", "inside":
		return "inside", nil
	case "under", "beneath", "below":
		return "under", nil
	case "above", "over":
		return "above", nil
	case "beside":
		if p.peek() == "of" {
			p.next()
		}
		return "beside", nil
	case "next":
		if p.peek() == "to" {
			p.next()
		}
		return "beside", nil
	case "left":
		if p.peek() == "of" {
			p.next()
		}
		return "leftof", nil
	case "right":
		if p.peek() == "of" {
			p.next()
		}
		return "rightof", nil
	default:
		return "", fmt.Errorf("nlparse: expected a location phrase, got %q", w)
	}
}

// parseEntity parses "QUANT obj", allowing obj to carry a trailing relative
// clause ("the ball in the box").
func (p *parser) parseEntity() (parsetree.Entity, error) {
	return p.parseEntityOpt(true)
}

// parseBareEntity parses "QUANT leaf" with no trailing relative clause. It
// is used for the subject of "move SUBJ to LOC", where the clause following
// the subject's noun phrase is the command's destination, not a further
// description of the subject - "move any brick left of any plank" must
// leave "left of any plank" for the command's own Loc, not fold it into
// "any brick"'s description. A subject with its own qualifying clause
// ("move the ball in the box to the table") is outside this grammar's
// scope: only the take and put-location entities support clause chains.
func (p *parser) parseBareEntity() (parsetree.Entity, error) {
	return p.parseEntityOpt(false)
}

func (p *parser) parseEntityOpt(allowRel bool) (parsetree.Entity, error) {
	q := p.next()
	quant, ok := quantOf(q)
	if !ok {
		return parsetree.Entity{}, fmt.Errorf("nlparse: expected a quantifier (the/a/any/all), got %q", q)
	}
	var obj parsetree.Obj
	var err error
	if allowRel {
		obj, err = p.parseObj()
	} else {
		var form, color, size string
		form, color, size, err = p.parseLeaf()
		obj = parsetree.LeafObj(form, color, size)
	}
	if err != nil {
		return parsetree.Entity{}, err
	}
	return parsetree.Entity{Quant: quant, Obj: obj}, nil
}

// parseObj parses a leaf noun description, then greedily attaches a
// trailing relative clause if one follows ("the ball [that is] in the
// box"), recursing so a chain of clauses nests onto the innermost entity.
func (p *parser) parseObj() (parsetree.Obj, error) {
	form, color, size, err := p.parseLeaf()
	if err != nil {
		return parsetree.Obj{}, err
	}
	obj := parsetree.LeafObj(form, color, size)

	if p.peek() == "that" {
		p.next()
		if p.peek() == "is" {
			p.next()
		}
	}

	if p.atRelWord() {
		rel, err := p.parseRelWord()
		if err != nil {
			return parsetree.Obj{}, err
		}
		ent, err := p.parseEntity()
		if err != nil {
			return parsetree.Obj{}, err
		}
		obj = parsetree.RelObj(obj, parsetree.Loc{Rel: rel, Ent: ent})
	}

	return obj, nil
}

// parseLeaf consumes an optional size word, an optional color word, and the
// head noun (a form word, or "floor"). Order follows ordinary English
// adjective order ("the small red ball"); only one color word is accepted.
func (p *parser) parseLeaf() (form, color, size string, err error) {
	for {
		w := p.peek()
		if w == "" {
			break
		}
		if sizeWords[w] {
			size = w
			p.next()
			continue
		}
		if stem, ok := formStemOf(w); ok {
			form = stem
			p.next()
			break
		}
		if relWords[w] || w == "that" || w == "to" || w == "it" {
			break
		}
		if color == "" {
			color = w
			p.next()
			continue
		}
		break
	}
	if form == "" {
		form = string(parsetreeAnyForm)
	}
	return form, color, size, nil
}

// formStemOf reports whether w is a form word or its plain English plural
// ("balls", "boxes"), returning the singular form word itself.
func formStemOf(w string) (string, bool) {
	if formWords[w] {
		return w, true
	}
	if strings.HasSuffix(w, "es") {
		if stem := strings.TrimSuffix(w, "es"); formWords[stem] {
			return stem, true
		}
	}
	if strings.HasSuffix(w, "s") {
		if stem := strings.TrimSuffix(w, "s"); formWords[stem] {
			return stem, true
		}
	}
	return "", false
}

const parsetreeAnyForm = "anyform"

// alternateAttachment recognizes the two-level relative-clause nesting
// this grammar produces ("the X rel1 the Y rel2 the Z") and returns the
// alternate reading where rel2 attaches to the whole "X rel1 Y" phrase
// instead of to Y alone ("the ball in [the box on the table]" vs "[the
// ball in the box] on the table"). Deeper chains are not re-attached; the
// greedy, innermost-first reading is the only one produced for those.
func alternateAttachment(root parsetree.Obj) (parsetree.Obj, bool) {
	if root.Inner == nil || root.Loc == nil {
		return parsetree.Obj{}, false
	}
	nested := root.Loc.Ent.Obj
	if nested.Inner == nil || nested.Loc == nil {
		return parsetree.Obj{}, false
	}

	strippedNested := *nested.Inner
	innerEnt := root.Loc.Ent
	innerEnt.Obj = strippedNested

	newRoot := parsetree.RelObj(*root.Inner, parsetree.Loc{Rel: root.Loc.Rel, Ent: innerEnt})
	lifted := parsetree.RelObj(newRoot, *nested.Loc)
	return lifted, true
}

func expandAmbiguousEntity(e parsetree.Entity) []parsetree.Entity {
	alts := []parsetree.Entity{e}
	if alt, ok := alternateAttachment(e.Obj); ok {
		e2 := e
		e2.Obj = alt
		alts = append(alts, e2)
	}
	return alts
}

func (p *parser) parseCommand() ([]parsetree.Parse, error) {
	verbTok := p.next()
	verb := normalizeVerb(verbTok)
	if verb == "" {
		return nil, fmt.Errorf("nlparse: unrecognized verb %q", verbTok)
	}

	switch verb {
	case "take":
		if verbTok == "pick" && p.peek() == "up" {
			p.next()
		}
		ent, err := p.parseEntity()
		if err != nil {
			return nil, err
		}
		if !p.atEnd() {
			return nil, fmt.Errorf("nlparse: unexpected trailing input near %q", strings.Join(p.toks[p.pos:], " "))
		}
		var parses []parsetree.Parse
		for _, e := range expandAmbiguousEntity(ent) {
			parses = append(parses, parsetree.Parse{Command: parsetree.Take(e)})
		}
		return parses, nil

	case "put":
		if p.peek() == "it" {
			p.next()
		}
		rel, err := p.parseRelWord()
		if err != nil {
			return nil, err
		}
		ent, err := p.parseEntity()
		if err != nil {
			return nil, err
		}
		if !p.atEnd() {
			return nil, fmt.Errorf("nlparse: unexpected trailing input near %q", strings.Join(p.toks[p.pos:], " "))
		}
		var parses []parsetree.Parse
		for _, e := range expandAmbiguousEntity(ent) {
			parses = append(parses, parsetree.Parse{Command: parsetree.Put(parsetree.Loc{Rel: rel, Ent: e})})
		}
		return parses, nil

	case "move":
		subj, err := p.parseBareEntity()
		if err != nil {
			return nil, err
		}
		if p.peek() == "to" {
			p.next()
		}
		rel, err := p.parseRelWord()
		if err != nil {
			return nil, err
		}
		locEnt, err := p.parseEntity()
		if err != nil {
			return nil, err
		}
		if !p.atEnd() {
			return nil, fmt.Errorf("nlparse: unexpected trailing input near %q", strings.Join(p.toks[p.pos:], " "))
		}
		var parses []parsetree.Parse
		for _, s := range expandAmbiguousEntity(subj) {
			for _, l := range expandAmbiguousEntity(locEnt) {
				parses = append(parses, parsetree.Parse{Command: parsetree.Move(s, parsetree.Loc{Rel: rel, Ent: l})})
			}
		}
		return parses, nil

	default:
		return nil, fmt.Errorf("nlparse: unrecognized verb %q", verbTok)
	}
}
