package api

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/roblaing/ggp-go-player/internal/ggperr"
	"github.com/roblaing/ggp-go-player/internal/sexpr"
	"github.com/roblaing/ggp-go-player/internal/session"
	"github.com/roblaing/ggp-go-player/internal/trace"
	"github.com/roblaing/ggp-go-player/server/result"
)

// HTTPWireMessage returns the handler for the GGP wire protocol's single
// endpoint: every INFO/START/PLAY/STOP/ABORT message is POSTed here as
// an S-expression body, dispatched by verb.
func (api API) HTTPWireMessage() http.HandlerFunc {
	// No delay here: UnauthDelay exists to deter admin-secret
	// brute-forcing, and the wire endpoint has no auth to brute-force.
	// Delaying a 500 here would eat into the reporting match's clock.
	return Endpoint(0, api.epWireMessage)
}

func (api API) epWireMessage(req *http.Request) result.Result {
	if req.Method == http.MethodOptions {
		return result.Response(http.StatusOK, "", "preflight")
	}

	body, err := readBody(req)
	if err != nil {
		return result.BadRequest("read request body: %s", err)
	}

	msg, err := sexpr.ParseMessage(body)
	if err != nil {
		return result.BadRequest("parse wire message: %s", err)
	}

	switch msg.Verb {
	case sexpr.VerbInfo:
		return result.OK(sexpr.InfoResponse(api.Session.PlayerName()), "info")
	case sexpr.VerbStart:
		return api.handleStart(msg)
	case sexpr.VerbPlay:
		return api.handlePlay(msg)
	case sexpr.VerbStop:
		return api.handleStop(msg)
	case sexpr.VerbAbort:
		return api.handleAbort(msg)
	default:
		return result.BadRequest("unrecognized verb %q", msg.Verb)
	}
}

func (api API) handleStart(msg sexpr.Message) result.Result {
	api.Session.Start(msg.MatchID, msg.Role, msg.Clauses,
		secondsToDuration(msg.StartClockSeconds), secondsToDuration(msg.PlayClockSeconds))
	return result.OK(sexpr.Ready, "start match %q as %q", msg.MatchID, msg.Role)
}

func (api API) handlePlay(msg sexpr.Message) result.Result {
	action, err := api.Session.Play(msg.MatchID, msg.Move)
	if err != nil {
		return wireError(err, "play match %q", msg.MatchID)
	}
	return result.OK(sexpr.MoveResponse(action), "play match %q -> %s", msg.MatchID, action)
}

func (api API) handleStop(msg sexpr.Message) result.Result {
	match := api.Session.Current()
	err := api.Session.Stop(msg.MatchID, msg.Move)
	if err != nil {
		return wireError(err, "stop match %q", msg.MatchID)
	}
	api.recordHistory(match)
	api.dumpGraphviz(match)
	return result.OK(sexpr.Done, "stop match %q", msg.MatchID)
}

func (api API) handleAbort(msg sexpr.Message) result.Result {
	match := api.Session.Current()
	err := api.Session.Abort(msg.MatchID)
	if err != nil {
		return wireError(err, "abort match %q", msg.MatchID)
	}
	api.recordHistory(match)
	return result.OK(sexpr.Done, "abort match %q", msg.MatchID)
}

func wireError(err error, format string, args ...interface{}) result.Result {
	if errors.Is(err, ggperr.ErrNoActiveMatch) || errors.Is(err, ggperr.ErrCorruptMove) {
		return result.BadRequest(format+": %s", append(args, err)...)
	}
	return result.InternalServerError(format+": %s", append(args, err)...)
}

func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}

// recordHistory appends match's outcome to the history log, if one is
// configured. A nil match (no match was ever started) is silently
// skipped; a match whose state yields no goal for its role is recorded
// with goal 0, the value Game.Goal returns then. History is a
// best-effort convenience log, not part of the wire protocol's contract.
func (api API) recordHistory(match *session.Match) {
	if api.History == nil || match == nil {
		return
	}
	goal := match.Game.Goal(match.State, match.Role)
	// A failed history write must never fail the STOP/ABORT response the
	// controller is waiting on, so the error is discarded here.
	_, _ = api.History.Record(context.Background(), match.ID, match.Role, goal, match.PlyCount)
}

// dumpGraphviz writes the finished match's search tree to GraphvizPath as
// a DOT file, if one is configured. A write failure here is logged and,
// as in recordHistory, never fails the STOP response the controller is
// waiting on.
func (api API) dumpGraphviz(match *session.Match) {
	if api.GraphvizPath == "" || match == nil {
		return
	}
	var b bytes.Buffer
	if err := trace.WriteDOT(&b, match.Tree); err != nil {
		log.Printf("ERROR render search tree for %q: %s", api.GraphvizPath, err)
		return
	}
	if err := os.WriteFile(api.GraphvizPath, b.Bytes(), 0o644); err != nil {
		log.Printf("ERROR write graphviz dump to %q: %s", api.GraphvizPath, err)
	}
}
