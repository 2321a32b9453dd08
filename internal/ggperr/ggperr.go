// Package ggperr defines the sentinel errors shared across the player's
// session, reasoner, and transport layers, following the wrap-a-sentinel
// convention so callers can branch with errors.Is rather than string
// matching.
package ggperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNoActiveMatch is returned when a PLAY, STOP, or ABORT arrives
	// for a match id the session doesn't recognize as current.
	ErrNoActiveMatch = errors.New("no active match")

	// ErrMatchInProgress is returned by callers that refuse to overwrite
	// a running match; the session itself allows a new START to
	// overwrite per spec, but lower-level code can use this to flag the
	// unusual case explicitly.
	ErrMatchInProgress = errors.New("a match is already in progress")

	// ErrBadWireMessage means a request body parsed but didn't name a
	// known verb or had the wrong shape for the verb it named.
	ErrBadWireMessage = errors.New("malformed wire message")

	// ErrRuleViolation flags a reasoner query that produced no
	// candidates for a mandatory primitive (legal, next, goal) on a
	// non-terminal state, signaling an ill-formed ruleset rather than a
	// transport or session bug.
	ErrRuleViolation = errors.New("game rules produced no candidates for a required query")

	// ErrCorruptMove means the joint move reported in a PLAY or STOP
	// request didn't match the game's expected shape.
	ErrCorruptMove = errors.New("reported move does not match the game's move shape")
)

// Wrap attaches technical context to a sentinel error while keeping it
// discoverable with errors.Is.
func Wrap(sentinel error, context string) error {
	return fmt.Errorf("%s: %w", context, sentinel)
}

// Wrapf is Wrap with a formatted context message.
func Wrapf(sentinel error, format string, a ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, a...), sentinel)
}
