// Package api implements the player's HTTP surface: the single GGP wire
// endpoint that handles INFO/START/PLAY/STOP/ABORT messages, and an
// optional admin introspection endpoint for inspecting the current
// match's search tree.
package api

import (
	"io"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/roblaing/ggp-go-player/internal/historydb"
	"github.com/roblaing/ggp-go-player/internal/session"
	"github.com/roblaing/ggp-go-player/server/result"
)

// EndpointFunc handles one already-routed HTTP request and returns the
// Result to write back, rather than writing to the ResponseWriter
// directly; this keeps logging and the response envelope centralized in
// Endpoint.
type EndpointFunc func(req *http.Request) result.Result

// API holds the shared state needed to handle wire messages and admin
// requests.
type API struct {
	// Session is the one process-wide player session.
	Session *session.Session

	// History, if non-nil, is appended to whenever a match ends.
	History *historydb.DB

	// UnauthDelay is how long an admin request is held before a 401/403/500
	// is sent, to deprioritize abusive or misconfigured clients.
	UnauthDelay time.Duration

	// GraphvizPath, if non-empty, is the file a STOP handler dumps the
	// finished match's search tree to as Graphviz DOT.
	GraphvizPath string
}

// Endpoint adapts an EndpointFunc into an http.HandlerFunc: it recovers
// from panics as a 500, applies the unauth delay for error statuses, logs
// the outcome, and writes the GGP wire response envelope.
func Endpoint(unauthDelay time.Duration, ep EndpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer panicTo500(w, req)

		r := ep(req)
		if r.Status == 0 {
			r = result.InternalServerError("endpoint result was never populated")
		}

		if r.Status == http.StatusUnauthorized || r.Status == http.StatusForbidden || r.Status == http.StatusInternalServerError {
			time.Sleep(unauthDelay)
		}

		r.Log(req)
		r.WriteResponse(w)
	}
}

func panicTo500(w http.ResponseWriter, req *http.Request) {
	if panicErr := recover(); panicErr != nil {
		r := result.InternalServerError("panic: %v\nSTACK TRACE: %s", panicErr, string(debug.Stack()))
		r.Log(req)
		r.WriteResponse(w)
	}
}

func readBody(req *http.Request) (string, error) {
	defer req.Body.Close()
	data, err := io.ReadAll(req.Body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
