// Package gdl implements the Datalog-with-negation reasoner specialized
// for the fixed GGP relations (role, base, input, init, true, does, legal,
// next, goal, terminal, distinct) plus whatever arithmetic-free user
// relations a ruleset introduces.
package gdl

import "github.com/roblaing/ggp-go-player/internal/term"

// LitKind distinguishes the four shapes a body literal can take.
type LitKind int

const (
	// LitPos is a positive relational literal, including the built-in
	// true(p) and does(r,a) forms.
	LitPos LitKind = iota
	// LitNeg is `not L`: negation as failure over a positive literal.
	LitNeg
	// LitDistinct is `distinct(t1,t2)`: ground structural inequality.
	LitDistinct
	// LitOr is `or(L1,...,Lk)`: disjunction over sub-literals.
	LitOr
)

// Literal is one conjunct of a rule body.
type Literal struct {
	Kind LitKind

	// Term holds the literal for LitPos and LitNeg.
	Term term.Term

	// Left and Right hold the two operands for LitDistinct.
	Left, Right term.Term

	// Or holds the disjuncts for LitOr.
	Or []Literal
}

// Pos builds a positive relational literal.
func Pos(t term.Term) Literal { return Literal{Kind: LitPos, Term: t} }

// Neg builds a negation-as-failure literal.
func Neg(t term.Term) Literal { return Literal{Kind: LitNeg, Term: t} }

// Distinct builds a ground-inequality literal.
func Distinct(a, b term.Term) Literal { return Literal{Kind: LitDistinct, Left: a, Right: b} }

// Or builds a disjunction literal.
func Or(lits ...Literal) Literal { return Literal{Kind: LitOr, Or: lits} }

// Clause is either a fact (Body is empty) or a rule `Head :- Body...`.
type Clause struct {
	Head term.Term
	Body []Literal
}

// Fact builds a fact clause.
func Fact(head term.Term) Clause { return Clause{Head: head} }

// Rule builds a rule clause.
func Rule(head term.Term, body ...Literal) Clause { return Clause{Head: head, Body: body} }

// IsFact reports whether c has no body.
func (c Clause) IsFact() bool { return len(c.Body) == 0 }

// HeadSymbol returns the principal relation symbol of the clause's head:
// the head's own symbol for both facts and rules (a head is always a term,
// possibly a compound).
func (c Clause) HeadSymbol() string { return c.Head.Sym }
