package sexpr

import (
	"fmt"

	"github.com/roblaing/ggp-go-player/internal/gdl"
	"github.com/roblaing/ggp-go-player/internal/term"
)

// ParseRuleset reads a full GDL ruleset: a sequence of top-level terms,
// each either a bare fact or a `(<= head body...)` rule.
func ParseRuleset(s string) ([]gdl.Clause, error) {
	terms, err := ParseTerms(s)
	if err != nil {
		return nil, err
	}
	clauses := make([]gdl.Clause, 0, len(terms))
	for _, t := range terms {
		c, err := toClause(t)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, c)
	}
	return clauses, nil
}

func toClause(t term.Term) (gdl.Clause, error) {
	if t.IsCompound() && t.Sym == "<=" {
		if len(t.Args) < 1 {
			return gdl.Clause{}, fmt.Errorf("sexpr: '<=' rule needs a head")
		}
		body := make([]gdl.Literal, 0, len(t.Args)-1)
		for _, b := range t.Args[1:] {
			lit, err := toLiteral(b)
			if err != nil {
				return gdl.Clause{}, err
			}
			body = append(body, lit)
		}
		return gdl.Rule(t.Args[0], body...), nil
	}
	return gdl.Fact(t), nil
}

func toLiteral(t term.Term) (gdl.Literal, error) {
	if t.IsCompound() {
		switch t.Sym {
		case "not":
			if len(t.Args) != 1 {
				return gdl.Literal{}, fmt.Errorf("sexpr: 'not' takes exactly one argument, got %d", len(t.Args))
			}
			return gdl.Neg(t.Args[0]), nil
		case "distinct":
			if len(t.Args) != 2 {
				return gdl.Literal{}, fmt.Errorf("sexpr: 'distinct' takes exactly two arguments, got %d", len(t.Args))
			}
			return gdl.Distinct(t.Args[0], t.Args[1]), nil
		case "or":
			subs := make([]gdl.Literal, 0, len(t.Args))
			for _, a := range t.Args {
				lit, err := toLiteral(a)
				if err != nil {
					return gdl.Literal{}, err
				}
				subs = append(subs, lit)
			}
			return gdl.Or(subs...), nil
		}
	}
	return gdl.Pos(t), nil
}

// WriteRuleset renders clauses back to GDL surface syntax, one clause per
// line, in the order given.
func WriteRuleset(clauses []gdl.Clause) string {
	var out string
	for _, c := range clauses {
		out += writeClause(c) + "\n"
	}
	return out
}

func writeClause(c gdl.Clause) string {
	if c.IsFact() {
		return c.Head.String()
	}
	s := "(<= " + c.Head.String()
	for _, lit := range c.Body {
		s += " " + writeLiteral(lit)
	}
	return s + ")"
}

func writeLiteral(lit gdl.Literal) string {
	switch lit.Kind {
	case gdl.LitNeg:
		return "(not " + lit.Term.String() + ")"
	case gdl.LitDistinct:
		return "(distinct " + lit.Left.String() + " " + lit.Right.String() + ")"
	case gdl.LitOr:
		s := "(or"
		for _, sub := range lit.Or {
			s += " " + writeLiteral(sub)
		}
		return s + ")"
	default:
		return lit.Term.String()
	}
}
