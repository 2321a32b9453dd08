package sexpr

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/roblaing/ggp-go-player/internal/term"
)

var titleCaser = cases.Title(language.Und)

// ParseTerm reads exactly one term from s: either a bare atom or a fully
// parenthesized compound. Trailing whitespace after the term is allowed;
// any other trailing content is a syntax error.
func ParseTerm(s string) (term.Term, error) {
	p := &parser{tokens: lex(s)}
	t, err := p.readTerm()
	if err != nil {
		return term.Term{}, err
	}
	if p.peek().class != tEOT {
		return term.Term{}, syntaxErrorAt("unexpected trailing input after term", p.peek())
	}
	return t, nil
}

// ParseTerms reads zero or more whitespace-separated top-level terms from
// s, such as the argument list of a wire message.
func ParseTerms(s string) ([]term.Term, error) {
	p := &parser{tokens: lex(s)}
	var out []term.Term
	for p.peek().class != tEOT {
		t, err := p.readTerm()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

type parser struct {
	tokens []token
	cur    int
}

func (p *parser) peek() token {
	return p.tokens[p.cur]
}

func (p *parser) next() token {
	t := p.tokens[p.cur]
	if p.cur < len(p.tokens)-1 {
		p.cur++
	}
	return t
}

func (p *parser) readTerm() (term.Term, error) {
	tok := p.peek()
	switch tok.class {
	case tAtom:
		p.next()
		return atomTerm(tok.text), nil
	case tOpen:
		return p.readCompound()
	case tEOT:
		return term.Term{}, syntaxErrorAt("unexpected end of input, expected a term", tok)
	default:
		return term.Term{}, syntaxErrorAt("unexpected ')'", tok)
	}
}

// readCompound reads a parenthesized application: a leading atom names
// the relation, e.g. `(role white)` or `(<= head body...)`. This is the
// shape of every real GDL term; the protocol's few headless wire-level
// lists (a ruleset, a joint move) are read separately with readTermList,
// since a generic reader cannot tell a list from an application by
// looking at the first element alone once that element may itself be a
// bare atom such as `noop`.
func (p *parser) readCompound() (term.Term, error) {
	p.next() // consume '('

	head := p.peek()
	if head.class != tAtom {
		return term.Term{}, syntaxErrorAt("expected a relation symbol after '('", head)
	}
	headTerm := atomTerm(head.text)
	p.next()

	var args []term.Term
	for p.peek().class != tClose {
		if p.peek().class == tEOT {
			return term.Term{}, syntaxErrorAt("unterminated '(', missing a matching ')'", p.peek())
		}
		arg, err := p.readTerm()
		if err != nil {
			return term.Term{}, err
		}
		args = append(args, arg)
	}
	p.next() // consume ')'

	return term.Compound(headTerm.Sym, args...), nil
}

// readTermList reads a parenthesized, headless sequence of terms: every
// element is read as its own term with no folding of the first element
// into a functor symbol. Used for the two wire-level forms that are
// genuinely lists rather than relation applications: a START message's
// ruleset argument and a PLAY/STOP message's joint move argument.
func (p *parser) readTermList() ([]term.Term, error) {
	if p.peek().class != tOpen {
		return nil, syntaxErrorAt("expected '(' to start a list", p.peek())
	}
	p.next() // consume '('

	var items []term.Term
	for p.peek().class != tClose {
		if p.peek().class == tEOT {
			return nil, syntaxErrorAt("unterminated '(', missing a matching ')'", p.peek())
		}
		item, err := p.readTerm()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	p.next() // consume ')'

	return items, nil
}

// atomTerm builds an atom from raw wire text. A leading '?' marks a
// variable; its name is title-cased so term.Term.IsVar's
// uppercase-first-letter convention recognizes it, matching the rest of
// the GDL token set being lowercased.
func atomTerm(text string) term.Term {
	if strings.HasPrefix(text, "?") {
		name := strings.TrimPrefix(text, "?")
		if name == "" {
			name = "X"
		}
		return term.Atom(titleCaser.String(name))
	}
	return term.Atom(strings.ToLower(text))
}
