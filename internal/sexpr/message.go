package sexpr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roblaing/ggp-go-player/internal/gdl"
	"github.com/roblaing/ggp-go-player/internal/ggperr"
	"github.com/roblaing/ggp-go-player/internal/term"
)

// Verb identifies which of the five GGP wire requests a Message carries.
type Verb string

const (
	VerbInfo  Verb = "info"
	VerbStart Verb = "start"
	VerbPlay  Verb = "play"
	VerbStop  Verb = "stop"
	VerbAbort Verb = "abort"
)

// Message is a decoded incoming wire request. Fields not relevant to Verb
// are left zero.
type Message struct {
	Verb Verb

	MatchID string
	Role    string

	Clauses []gdl.Clause

	StartClockSeconds int
	PlayClockSeconds  int

	// Move is the joint move reported by the server on a PLAY or STOP
	// request; it is nil on a match's first PLAY (the server reports no
	// move before any has been made), matching the "nil"/"undefined"
	// sentinel the protocol uses there.
	Move term.JointMove
}

// ParseMessage decodes one wire request body: a single parenthesized
// S-expression whose head atom names the verb. Unlike a plain GDL term,
// a START message's ruleset and a PLAY/STOP message's joint move are
// headless lists rather than relation applications, so they are read
// positionally with readTermList instead of the general term reader.
func ParseMessage(body string) (Message, error) {
	p := &parser{tokens: lex(body)}

	if p.peek().class != tOpen {
		return Message{}, ggperr.Wrapf(ggperr.ErrBadWireMessage, "message body is not a parenthesized expression: %q", body)
	}
	p.next()

	verbTok := p.peek()
	if verbTok.class != tAtom {
		return Message{}, ggperr.Wrap(ggperr.ErrBadWireMessage, syntaxErrorAt("expected a message verb after '('", verbTok).Error())
	}
	p.next()
	verb := Verb(strings.ToLower(verbTok.text))

	var msg Message
	var err error
	switch verb {
	case VerbInfo:
		msg = Message{Verb: VerbInfo}
	case VerbStart:
		msg, err = p.parseStartArgs()
	case VerbPlay:
		msg, err = p.parsePlayOrStopArgs(VerbPlay)
	case VerbStop:
		msg, err = p.parsePlayOrStopArgs(VerbStop)
	case VerbAbort:
		msg, err = p.parseAbortArgs()
	default:
		return Message{}, ggperr.Wrapf(ggperr.ErrBadWireMessage, "unrecognized message verb %q", verbTok.text)
	}
	if err != nil {
		return Message{}, ggperr.Wrap(ggperr.ErrBadWireMessage, err.Error())
	}

	if p.peek().class != tClose {
		return Message{}, ggperr.Wrap(ggperr.ErrBadWireMessage, syntaxErrorAt("expected ')' to close the message", p.peek()).Error())
	}
	p.next()
	if p.peek().class != tEOT {
		return Message{}, ggperr.Wrap(ggperr.ErrBadWireMessage, syntaxErrorAt("unexpected trailing input after message", p.peek()).Error())
	}

	return msg, nil
}

func (p *parser) parseStartArgs() (Message, error) {
	matchID, err := p.readAtomText()
	if err != nil {
		return Message{}, fmt.Errorf("sexpr: start match id: %w", err)
	}
	role, err := p.readAtomText()
	if err != nil {
		return Message{}, fmt.Errorf("sexpr: start role: %w", err)
	}
	rawClauses, err := p.readTermList()
	if err != nil {
		return Message{}, fmt.Errorf("sexpr: start ruleset: %w", err)
	}
	clauses := make([]gdl.Clause, 0, len(rawClauses))
	for _, c := range rawClauses {
		cl, err := toClause(c)
		if err != nil {
			return Message{}, err
		}
		clauses = append(clauses, cl)
	}
	startClock, err := p.readIntText()
	if err != nil {
		return Message{}, fmt.Errorf("sexpr: start clock: %w", err)
	}
	playClock, err := p.readIntText()
	if err != nil {
		return Message{}, fmt.Errorf("sexpr: play clock: %w", err)
	}
	return Message{
		Verb:              VerbStart,
		MatchID:           matchID,
		Role:              role,
		Clauses:           clauses,
		StartClockSeconds: startClock,
		PlayClockSeconds:  playClock,
	}, nil
}

func (p *parser) parsePlayOrStopArgs(verb Verb) (Message, error) {
	matchID, err := p.readAtomText()
	if err != nil {
		return Message{}, fmt.Errorf("sexpr: %s match id: %w", verb, err)
	}
	msg := Message{Verb: verb, MatchID: matchID}

	if p.peek().class == tAtom && (p.peek().text == "nil" || p.peek().text == "undefined") {
		p.next()
		return msg, nil
	}
	move, err := p.readTermList()
	if err != nil {
		return Message{}, fmt.Errorf("sexpr: %s move list: %w", verb, err)
	}
	msg.Move = term.JointMove(move)
	return msg, nil
}

func (p *parser) parseAbortArgs() (Message, error) {
	matchID, err := p.readAtomText()
	if err != nil {
		return Message{}, fmt.Errorf("sexpr: abort match id: %w", err)
	}
	return Message{Verb: VerbAbort, MatchID: matchID}, nil
}

func (p *parser) readAtomText() (string, error) {
	tok := p.peek()
	if tok.class != tAtom {
		return "", syntaxErrorAt("expected an atom", tok)
	}
	p.next()
	return strings.ToLower(tok.text), nil
}

func (p *parser) readIntText() (int, error) {
	tok := p.peek()
	if tok.class != tAtom {
		return 0, syntaxErrorAt("expected a number", tok)
	}
	p.next()
	return strconv.Atoi(tok.text)
}

// Ready is the literal response body to a START request.
const Ready = "ready"

// Done is the literal response body to a STOP or ABORT request.
const Done = "done"

// InfoResponse is the body returned for an INFO request, naming the
// player and declaring it available for a new match.
func InfoResponse(name string) string {
	return "((name " + strings.ToLower(name) + ") (status available))"
}

// MoveResponse renders a chosen action as the body of a PLAY response:
// an atom unwrapped as-is, a compound unwrapped into a parenthesized
// list of its arguments preceded by the relation symbol.
func MoveResponse(action term.Term) string {
	return action.String()
}
