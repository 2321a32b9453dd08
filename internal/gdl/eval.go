package gdl

import (
	"github.com/roblaing/ggp-go-player/internal/term"
)

// maxFixpointRounds bounds the naive bottom-up evaluation within a single
// stratum. GDL forbids recursion through negation, so every relation's
// fact set stabilizes within a small number of rounds bounded by the
// longest positive dependency chain inside its own stratum; this cap is
// generous headroom, not a tuned limit.
const maxFixpointRounds = 64

// evaluator answers "what ground atoms of relation R hold" queries against
// a fixed (state, joint move) pair by a straightforward depth-limited,
// memoized bottom-up evaluation of the whole rule database.
type evaluator struct {
	db    *Database
	state term.State
	move  []term.Term // does(role, action) compounds, one per role that moved

	facts map[string][]term.Term
}

func newEvaluator(db *Database, state term.State, move []term.Term) *evaluator {
	return &evaluator{db: db, state: state, move: move}
}

// Ask returns every ground term of relation symbol that holds, computing
// the full fixpoint on first use and caching it for the lifetime of the
// evaluator (i.e. for this one (state, move) query).
func (e *evaluator) Ask(symbol string) []term.Term {
	if symbol == "true" {
		return []term.Term(e.state)
	}
	if symbol == "does" {
		return e.move
	}
	e.ensureFixpoint()
	return e.facts[symbol]
}

// Holds reports whether the ground atom g holds.
func (e *evaluator) Holds(g term.Term) bool {
	if g.Sym == "true" {
		return e.state.Contains(g.Args[0])
	}
	if g.Sym == "does" {
		for _, m := range e.move {
			if term.Equal(m, g) {
				return true
			}
		}
		return false
	}
	for _, t := range e.Ask(g.Sym) {
		if term.Equal(t, g) {
			return true
		}
	}
	return false
}

// ensureFixpoint evaluates the whole rule database one stratum at a
// time, lowest first, fully stabilizing each stratum's fact sets before
// moving to the next. A negated literal always reaches into a strictly
// lower stratum (computeStrata guarantees this), so by the time a rule
// queries `not p`, every fact `p` could ever gain has already been
// derived — the naive single-pass evaluation this replaces could instead
// evaluate `not p` while p's own stratum was still empty, wrongly
// admitting the rule and then never retracting it once p caught up.
func (e *evaluator) ensureFixpoint() {
	if e.facts != nil {
		return
	}
	facts := make(map[string][]term.Term)
	seen := make(map[string]map[string]bool)

	add := func(sym string, t term.Term) bool {
		if seen[sym] == nil {
			seen[sym] = make(map[string]bool)
		}
		k := t.String()
		if seen[sym][k] {
			return false
		}
		seen[sym][k] = true
		facts[sym] = append(facts[sym], t)
		return true
	}

	e.facts = facts // visible to Ask/Holds during evaluation rounds

	order := e.db.StratumOrder() // ascending stratum, alphabetical within one

	for start := 0; start < len(order); {
		stratum := e.db.Stratum(order[start])
		end := start
		for end < len(order) && e.db.Stratum(order[end]) == stratum {
			end++
		}
		group := order[start:end]

		for round := 0; round < maxFixpointRounds; round++ {
			changed := false
			for _, sym := range group {
				if sym == "true" || sym == "does" {
					continue
				}
				for _, c := range e.db.Clauses(sym) {
					if c.IsFact() {
						if add(sym, c.Head) {
							changed = true
						}
						continue
					}
					for _, env := range e.solveBody(c.Body) {
						head := term.Subst(c.Head, env)
						if head.IsGround() {
							if add(sym, head) {
								changed = true
							}
						}
					}
				}
			}
			if !changed {
				break
			}
		}

		start = end
	}
}

// solveBody performs a nested-loop join across the body's positive
// literals to build candidate bindings, then filters by any negative,
// distinct, or disjunctive literals in source order.
func (e *evaluator) solveBody(body []Literal) []term.Binding {
	envs := []term.Binding{{}}
	for _, lit := range body {
		var next []term.Binding
		switch lit.Kind {
		case LitPos:
			for _, env := range envs {
				pattern := term.Subst(lit.Term, env)
				for _, cand := range e.Ask(pattern.Sym) {
					if ext, ok := unify(pattern, cand, env); ok {
						next = append(next, ext)
					}
				}
			}
		default:
			for _, env := range envs {
				if e.holdsLiteral(lit, env) {
					next = append(next, env)
				}
			}
		}
		envs = next
		if len(envs) == 0 {
			return nil
		}
	}
	return envs
}

// holdsLiteral evaluates a single literal (of any kind) under env.
func (e *evaluator) holdsLiteral(lit Literal, env term.Binding) bool {
	switch lit.Kind {
	case LitPos:
		return e.Holds(term.Subst(lit.Term, env))
	case LitNeg:
		return !e.Holds(term.Subst(lit.Term, env))
	case LitDistinct:
		l := term.Subst(lit.Left, env)
		r := term.Subst(lit.Right, env)
		return !term.Equal(l, r)
	case LitOr:
		for _, sub := range lit.Or {
			if e.holdsLiteral(sub, env) {
				return true
			}
		}
		return false
	}
	return false
}

// unify one-directionally matches pattern (which may reference variables,
// some already bound in env) against the fully ground term concrete,
// returning an extended binding on success.
func unify(pattern, concrete term.Term, env term.Binding) (term.Binding, bool) {
	return matchGround(term.Subst(pattern, env), concrete, env)
}

func matchGround(pattern, concrete term.Term, env term.Binding) (term.Binding, bool) {
	if pattern.IsVar() {
		next := cloneBinding(env)
		next[pattern.Sym] = concrete
		return next, true
	}
	if pattern.IsCompound() != concrete.IsCompound() {
		return env, false
	}
	if pattern.Sym != concrete.Sym || len(pattern.Args) != len(concrete.Args) {
		return env, false
	}
	cur := env
	for i := range pattern.Args {
		arg := term.Subst(pattern.Args[i], cur)
		var ok bool
		cur, ok = matchGround(arg, concrete.Args[i], cur)
		if !ok {
			return env, false
		}
	}
	return cur, true
}

func cloneBinding(b term.Binding) term.Binding {
	next := make(term.Binding, len(b)+1)
	for k, v := range b {
		next[k] = v
	}
	return next
}
