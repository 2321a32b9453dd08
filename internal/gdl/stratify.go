package gdl

import "sort"

// depEdge records that a clause head depends on sym, through negation or
// not, so computeStrata can order relations such that every negated
// reference is evaluated against an already-stabilized fact set.
type depEdge struct {
	sym string
	neg bool
}

// literalDeps collects the relation symbols lit's evaluation depends on,
// recursing into or(...) since any of its disjuncts can supply the
// dependency. true/does are excluded: they're the base facts and the
// current joint move, always available before any rule fires.
func literalDeps(lit Literal, out *[]depEdge) {
	switch lit.Kind {
	case LitPos:
		if sym := lit.Term.Sym; sym != "true" && sym != "does" {
			*out = append(*out, depEdge{sym: sym})
		}
	case LitNeg:
		if sym := lit.Term.Sym; sym != "true" && sym != "does" {
			*out = append(*out, depEdge{sym: sym, neg: true})
		}
	case LitOr:
		for _, sub := range lit.Or {
			literalDeps(sub, out)
		}
	}
}

// computeStrata assigns every relation symbol in db a stratum such that a
// positive dependency never requires a higher stratum than its own and a
// negated dependency always requires a strictly lower one. This is what
// makes negation-as-failure sound under bottom-up evaluation: a symbol is
// never queried through `not` until every stratum it could still gain
// facts in has already reached its fixpoint.
//
// Strata are found by relaxing `stratum[from] >= stratum[to] (+1 if neg)`
// to a fixpoint, Bellman-Ford style. A ruleset with recursion through
// negation has no solution; that's illegal under GDL's stratification
// requirement, so computeStrata panics rather than silently picking an
// arbitrary (and unsound) order.
func computeStrata(db *Database) map[string]int {
	strata := make(map[string]int, len(db.symbols))
	for _, sym := range db.symbols {
		strata[sym] = 0
	}

	type edge struct {
		from, to string
		neg      bool
	}
	var edges []edge
	for _, sym := range db.symbols {
		for _, c := range db.bySymbol[sym] {
			var deps []depEdge
			for _, lit := range c.Body {
				literalDeps(lit, &deps)
			}
			for _, d := range deps {
				edges = append(edges, edge{from: sym, to: d.sym, neg: d.neg})
			}
		}
	}

	for i := 0; i <= len(db.symbols); i++ {
		changed := false
		for _, e := range edges {
			need := strata[e.to]
			if e.neg {
				need++
			}
			if strata[e.from] < need {
				strata[e.from] = need
				changed = true
			}
		}
		if !changed {
			return strata
		}
	}

	panic("gdl: ruleset contains recursion through negation, which GDL's stratification requirement forbids")
}

// StratumOrder returns every relation symbol with at least one clause,
// grouped by ascending stratum and alphabetical within a stratum, for a
// bottom-up evaluator to process one fully-stabilized stratum at a time.
func (db *Database) StratumOrder() []string {
	syms := make([]string, len(db.symbols))
	copy(syms, db.symbols)
	sort.SliceStable(syms, func(i, j int) bool {
		si, sj := db.strata[syms[i]], db.strata[syms[j]]
		if si != sj {
			return si < sj
		}
		return syms[i] < syms[j]
	})
	return syms
}

// Stratum returns the stratum index assigned to symbol.
func (db *Database) Stratum(symbol string) int {
	return db.strata[symbol]
}
