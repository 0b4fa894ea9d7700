// Package goal implements the mixed AND/OR goal tree of spec §3: a finite,
// acyclic, immutable tree whose leaves are positive relational literals and
// whose internal nodes combine children with AND or OR. The tree shape
// mirrors the tagged-variant ASTNode pattern used for TunaScript's AST: a
// Kind() discriminator plus panic-on-mismatch accessors, rather than a
// class hierarchy.
package goal

import (
	"fmt"
	"strings"

	"github.com/dekarrin/shrdlite/internal/physics"
	"github.com/dekarrin/shrdlite/internal/world"
)

// Op is the combinator an internal Goal node applies to its children.
type Op int

const (
	// And requires every child to be satisfied.
	And Op = iota
	// Or requires at least one child to be satisfied.
	Or
)

func (op Op) String() string {
	if op == And {
		return "AND"
	}
	return "OR"
}

func (op Op) symbol() string {
	if op == And {
		return "&"
	}
	return "|"
}

// Literal is a single atomic relational fact: polarity (always true for
// literals the interpreter emits; kept for future extension per spec §3),
// a relation name, and the identifiers it relates.
type Literal struct {
	Polarity bool
	Rel      string
	Args     []string
}

// NewLiteral returns a positive Literal for rel applied to args.
func NewLiteral(rel string, args ...string) Literal {
	return Literal{Polarity: true, Rel: rel, Args: append([]string(nil), args...)}
}

// String renders the literal per spec §6: "-rel(a,b,...)" when negated,
// "rel(a,b,...)" otherwise.
func (l Literal) String() string {
	prefix := ""
	if !l.Polarity {
		prefix = "-"
	}
	return fmt.Sprintf("%s%s(%s)", prefix, l.Rel, strings.Join(l.Args, ","))
}

// Equal reports whether two literals denote the same fact.
func (l Literal) Equal(o Literal) bool {
	if l.Polarity != o.Polarity || l.Rel != o.Rel || len(l.Args) != len(o.Args) {
		return false
	}
	for i := range l.Args {
		if l.Args[i] != o.Args[i] {
			return false
		}
	}
	return true
}

// Kind discriminates the two Goal variants.
type Kind int

const (
	// KindLeaf means the Goal wraps a single Literal.
	KindLeaf Kind = iota
	// KindNode means the Goal combines children with an Op.
	KindNode
)

// Goal is an AND/OR tree of positive relational literals, per spec §3.
// A zero Goal is not valid; construct one with Leaf, AndOf, or OrOf.
type Goal struct {
	kind     Kind
	leaf     Literal
	op       Op
	children []Goal
}

// Leaf wraps a single literal as a Goal.
func Leaf(l Literal) Goal {
	return Goal{kind: KindLeaf, leaf: l}
}

// AndOf combines children with AND. A single child is returned unwrapped,
// matching the way spec §4.1 "reduces to a leaf when there is one
// candidate". AndOf panics if given zero children: a Goal's internal nodes
// always have a non-empty child sequence (spec §3).
func AndOf(children ...Goal) Goal {
	return nodeOf(And, children)
}

// OrOf combines children with OR, with the same single-child collapsing
// rule as AndOf.
func OrOf(children ...Goal) Goal {
	return nodeOf(Or, children)
}

func nodeOf(op Op, children []Goal) Goal {
	if len(children) == 0 {
		panic("goal: node constructed with no children")
	}
	if len(children) == 1 {
		return children[0]
	}
	return Goal{kind: op.kindTag(), op: op, children: append([]Goal(nil), children...)}
}

func (op Op) kindTag() Kind {
	return KindNode
}

// Kind reports whether g is a leaf or an internal node.
func (g Goal) Kind() Kind {
	return g.kind
}

// AsLeaf returns g's Literal. It panics if g.Kind() != KindLeaf.
func (g Goal) AsLeaf() Literal {
	if g.kind != KindLeaf {
		panic("goal: AsLeaf called on a non-leaf Goal")
	}
	return g.leaf
}

// AsNode returns g's Op and children. It panics if g.Kind() != KindNode.
func (g Goal) AsNode() (Op, []Goal) {
	if g.kind != KindNode {
		panic("goal: AsNode called on a non-node Goal")
	}
	return g.op, g.children
}

// Eval evaluates g against the given state and catalogue via the physics
// oracle, recursively combining children with their Op. It implements the
// goal test of spec §4.4.
func (g Goal) Eval(s world.State, cat world.Catalogue) (bool, error) {
	switch g.kind {
	case KindLeaf:
		ok, err := physics.Eval(s, cat, g.leaf.Rel, g.leaf.Args)
		if err != nil {
			return false, err
		}
		if !g.leaf.Polarity {
			ok = !ok
		}
		return ok, nil
	default:
		switch g.op {
		case And:
			for _, c := range g.children {
				ok, err := c.Eval(s, cat)
				if err != nil {
					return false, err
				}
				if !ok {
					return false, nil
				}
			}
			return true, nil
		default: // Or
			for _, c := range g.children {
				ok, err := c.Eval(s, cat)
				if err != nil {
					return false, err
				}
				if ok {
					return true, nil
				}
			}
			return false, nil
		}
	}
}

// Disjuncts flattens g into its top-level OR reading: one child Goal per
// disjunct. If g's root is not an Or node, Disjuncts returns the
// single-element slice {g}.
//
// This is a shallow flattening: it only looks at the root, and the
// children it returns are not guaranteed to be leaves or flat
// AND-of-leaves - the interpreter's all/any quantifier cell builds
// AND_s(OR_o rel(s,o)), so an And's own Conjuncts can themselves be Or
// nodes. Callers that need to walk the full tree must recurse themselves
// (see internal/planner/heuristic.go's goalEstimate).
func (g Goal) Disjuncts() []Goal {
	if g.kind == KindNode && g.op == Or {
		return append([]Goal(nil), g.children...)
	}
	return []Goal{g}
}

// Conjuncts returns g's top-level AND reading: if g is a leaf, {g}; if g
// is an And node, its children (themselves not guaranteed to be leaves,
// see Disjuncts); if g is an Or node, {g} (the caller should not have
// called Conjuncts on a disjunction).
func (g Goal) Conjuncts() []Goal {
	if g.kind == KindNode && g.op == And {
		return append([]Goal(nil), g.children...)
	}
	return []Goal{g}
}

// Serialize renders g per spec §6: "rel(a,b,...)" / "-rel(a,b,...)" for
// leaves, "(g1 & g2 & ... & gn)" for AND and "(g1 | g2 | ... | gn)" for OR,
// with the last child rendered first, matching the source's sum-of-products
// renderer.
func (g Goal) Serialize() string {
	if g.kind == KindLeaf {
		return g.leaf.String()
	}
	parts := make([]string, len(g.children))
	for i, c := range g.children {
		// last child first, per spec §6.
		parts[i] = g.children[len(g.children)-1-i].Serialize()
		_ = c
	}
	return "(" + strings.Join(parts, " "+g.op.symbol()+" ") + ")"
}

// String renders g as an indented multi-line tree, in the style of
// TunaScript's AST.String() (" S: " prefix, one node per line).
func (g Goal) String() string {
	return "Goal\n" + indentTree(g, 1)
}

func indentTree(g Goal, depth int) string {
	indent := strings.Repeat("  ", depth)
	if g.kind == KindLeaf {
		return indent + g.leaf.String()
	}
	lines := make([]string, 0, len(g.children)+1)
	lines = append(lines, indent+g.op.String())
	for _, c := range g.children {
		lines = append(lines, indentTree(c, depth+1))
	}
	return strings.Join(lines, "\n")
}
