package gdl

import (
	"sort"

	"github.com/roblaing/ggp-go-player/internal/term"
)

// Game is the immutable-after-construction descriptor for one match's
// ruleset: the declared role order, the rule database, and the derived
// universes of base propositions and per-role action templates.
type Game struct {
	roles []string
	db    *Database

	base   []term.Term
	inputs []term.Term
}

// NewGame builds a Game descriptor from a flat clause list. Role order is
// the declaration order of `role/1` facts; base and input universes are
// derived eagerly since they depend only on static facts, never on a
// particular state or move.
func NewGame(clauses []Clause) *Game {
	db := NewDatabase(clauses)

	g := &Game{db: db}

	for _, c := range db.Clauses("role") {
		if c.IsFact() && len(c.Head.Args) == 1 {
			g.roles = append(g.roles, c.Head.Args[0].Sym)
		}
	}

	staticEval := newEvaluator(db, nil, nil)
	g.base = staticEval.Ask("base")
	g.inputs = staticEval.Ask("input")

	return g
}

// Roles returns the declared role list, in declaration order.
func (g *Game) Roles() []string {
	out := make([]string, len(g.roles))
	copy(out, g.roles)
	return out
}

// Base returns every ground base proposition the rules declare.
func (g *Game) Base() []term.Term {
	out := make([]term.Term, len(g.base))
	copy(out, g.base)
	return out
}

// Inputs returns every ground `input(role, action)` the rules declare.
func (g *Game) Inputs() []term.Term {
	out := make([]term.Term, len(g.inputs))
	copy(out, g.inputs)
	return out
}

// Init returns the canonicalized initial state: the set of ground p such
// that init(p) holds with no prior state and no joint move.
func (g *Game) Init() term.State {
	ev := newEvaluator(g.db, nil, nil)
	inits := ev.Ask("init")
	props := make([]term.Term, len(inits))
	for i, t := range inits {
		props[i] = t.Args[0]
	}
	return term.NewState(props)
}

// Legal returns the ground (role, action) pairs that hold under state s.
func (g *Game) Legal(s term.State) []term.Move {
	ev := newEvaluator(g.db, s, nil)
	var out []term.Move
	for _, t := range ev.Ask("legal") {
		if len(t.Args) == 2 {
			out = append(out, term.Move{Role: t.Args[0].Sym, Action: t.Args[1]})
		}
	}
	return out
}

// FindMoves returns the Cartesian product over roles of each role's legal
// actions under s, in deterministic order (sorted by each role's action
// set). A role with no satisfied legal atom is filled with noop, matching
// source behavior for turn-taking games where only one role moves. A
// terminal state has no moves: FindMoves returns nil for it.
func (g *Game) FindMoves(s term.State) []term.JointMove {
	ev := newEvaluator(g.db, s, nil)
	if len(ev.Ask("terminal")) > 0 {
		return nil
	}

	perRole := make(map[string][]term.Term, len(g.roles))
	for _, t := range ev.Ask("legal") {
		if len(t.Args) == 2 {
			perRole[t.Args[0].Sym] = append(perRole[t.Args[0].Sym], t.Args[1])
		}
	}

	options := make([][]term.Term, len(g.roles))
	for i, r := range g.roles {
		acts := perRole[r]
		if len(acts) == 0 {
			acts = []term.Term{term.Noop}
		}
		sort.Slice(acts, func(a, b int) bool { return term.Compare(acts[a], acts[b]) < 0 })
		options[i] = dedupTerms(acts)
	}

	return cartesian(options)
}

func dedupTerms(sorted []term.Term) []term.Term {
	out := sorted[:0:0]
	for i, t := range sorted {
		if i == 0 || !term.Equal(t, sorted[i-1]) {
			out = append(out, t)
		}
	}
	return out
}

func cartesian(options [][]term.Term) []term.JointMove {
	if len(options) == 0 {
		return nil
	}
	result := []term.JointMove{{}}
	for _, opt := range options {
		var next []term.JointMove
		for _, partial := range result {
			for _, v := range opt {
				m := make(term.JointMove, len(partial)+1)
				copy(m, partial)
				m[len(partial)] = v
				next = append(next, m)
			}
		}
		result = next
	}
	return result
}

// Next returns the canonicalized successor state after the roles perform
// the given joint move in state s.
func (g *Game) Next(s term.State, m term.JointMove) term.State {
	ev := newEvaluator(g.db, s, g.doesAtoms(m))
	nexts := ev.Ask("next")
	props := make([]term.Term, len(nexts))
	for i, t := range nexts {
		props[i] = t.Args[0]
	}
	return term.NewState(props)
}

func (g *Game) doesAtoms(m term.JointMove) []term.Term {
	atoms := make([]term.Term, 0, len(m))
	for i, a := range m {
		if i >= len(g.roles) {
			break
		}
		atoms = append(atoms, term.Compound("does", term.Atom(g.roles[i]), a))
	}
	return atoms
}

// Goal returns the goal value for role under state s. If multiple
// candidate values appear for the same role under ill-specified rules, the
// recovery policy is: if any candidate is 100, take the max; otherwise
// take the min. This is a documented recovery policy, not a claim about
// official GGP semantics for contradictory rulesets.
func (g *Game) Goal(s term.State, role string) int {
	ev := newEvaluator(g.db, s, nil)
	var candidates []int
	for _, t := range ev.Ask("goal") {
		if len(t.Args) == 2 && t.Args[0].Sym == role {
			if v, ok := atoi(t.Args[1].Sym); ok {
				candidates = append(candidates, v)
			}
		}
	}
	if len(candidates) == 0 {
		return 0
	}
	best := candidates[0]
	hasHundred := false
	for _, v := range candidates {
		if v == 100 {
			hasHundred = true
		}
	}
	for _, v := range candidates {
		if hasHundred {
			if v > best {
				best = v
			}
		} else if v < best {
			best = v
		}
	}
	return best
}

func atoi(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	neg := false
	i := 0
	if s[0] == '-' {
		neg = true
		i = 1
	}
	if i >= len(s) {
		return 0, false
	}
	n := 0
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
		n = n*10 + int(s[i]-'0')
	}
	if neg {
		n = -n
	}
	return n, true
}

// Terminal reports whether some ground terminal atom holds under s.
func (g *Game) Terminal(s term.State) bool {
	ev := newEvaluator(g.db, s, nil)
	return len(ev.Ask("terminal")) > 0
}
