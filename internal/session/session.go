// Package session drives one match through the GGP state machine (Idle
// -> Started -> Playing -> Stopped) and owns the search tree used to pick
// each move.
package session

import (
	"sync"
	"time"

	"github.com/roblaing/ggp-go-player/internal/gdl"
	"github.com/roblaing/ggp-go-player/internal/ggperr"
	"github.com/roblaing/ggp-go-player/internal/search"
	"github.com/roblaing/ggp-go-player/internal/term"
)

// Phase is one state of the per-match state machine.
type Phase int

const (
	Idle Phase = iota
	Started
	Playing
	Stopped
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Started:
		return "started"
	case Playing:
		return "playing"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Match is the running state for one game: its descriptor, current
// state, phase, and search tree.
type Match struct {
	ID    string
	Role  string
	Phase Phase

	PlayClock time.Duration

	Game  *gdl.Game
	State term.State
	Tree  *search.Tree

	// PlyCount is the number of joint moves applied since Start, used for
	// match history summaries.
	PlyCount int
}

// TimeMargin is the fraction of a clock actually spent searching, the
// rest held back as network round-trip slack.
const TimeMargin = 0.9

// Session is the one process-wide player: at most one match is active at
// a time, and a new START overwrites whatever was running, matching
// spec.md's "at most one active match" contract.
type Session struct {
	mu    sync.Mutex
	match *Match
	clock search.Clock

	playerName string
}

// New creates a session with no active match.
func New(playerName string) *Session {
	return &Session{playerName: playerName, clock: search.NewClock()}
}

// PlayerName returns the configured player name, used for INFO replies.
func (s *Session) PlayerName() string {
	return s.playerName
}

// Current returns the active match, or nil if the session is Idle.
func (s *Session) Current() *Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match
}

// Start builds a new match from a ruleset and warms the search tree
// against the start clock, as spec'd: the first PLAY's root node is
// pre-expanded, and Start returns once bestmove does, which is when the
// start clock (less TimeMargin) runs out, or at once when bestmove takes
// its noop fast path.
func (s *Session) Start(matchID, role string, clauses []gdl.Clause, startClock, playClock time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := gdl.NewGame(clauses)
	initState := g.Init()
	tree := search.NewTree()

	m := &Match{
		ID:        matchID,
		Role:      role,
		Phase:     Started,
		PlayClock: playClock,
		Game:      g,
		State:     initState,
		Tree:      tree,
	}
	s.match = m

	deadline := s.clock.Deadline(marginOf(startClock))
	search.BestMove(g, tree, role, initState, s.clock, deadline)
}

// Play advances the match by the opponents' reported joint move (nil on
// a match's first PLAY) and returns this player's chosen action under
// the play clock.
func (s *Session) Play(matchID string, move term.JointMove) (term.Term, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.match
	if m == nil || m.ID != matchID {
		return term.Term{}, ggperr.Wrapf(ggperr.ErrNoActiveMatch, "play for match %q", matchID)
	}

	if move != nil {
		if len(move) != len(m.Game.Roles()) {
			return term.Term{}, ggperr.Wrapf(ggperr.ErrCorruptMove, "match %q: expected %d actions, got %d", matchID, len(m.Game.Roles()), len(move))
		}
		m.State = m.Game.Next(m.State, move)
		m.PlyCount++
	}
	m.Phase = Playing

	deadline := s.clock.Deadline(marginOf(m.PlayClock))
	action := search.BestMove(m.Game, m.Tree, m.Role, m.State, s.clock, deadline)
	return action, nil
}

// Stop ends the match, recording the final reported move if given.
func (s *Session) Stop(matchID string, move term.JointMove) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.match
	if m == nil || m.ID != matchID {
		return ggperr.Wrapf(ggperr.ErrNoActiveMatch, "stop for match %q", matchID)
	}
	if move != nil && len(move) == len(m.Game.Roles()) {
		m.State = m.Game.Next(m.State, move)
	}
	m.Phase = Stopped
	return nil
}

// Abort ends the match without advancing its state.
func (s *Session) Abort(matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.match
	if m == nil || m.ID != matchID {
		return ggperr.Wrapf(ggperr.ErrNoActiveMatch, "abort for match %q", matchID)
	}
	m.Phase = Stopped
	return nil
}

func marginOf(clock time.Duration) time.Duration {
	return time.Duration(float64(clock) * TimeMargin)
}
