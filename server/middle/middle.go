// Package middle contains the admin-API authentication middleware and the
// panic-recovery wrapper shared by the player's HTTP handlers.
package middle

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/roblaing/ggp-go-player/server/result"
)

type mwFunc http.HandlerFunc

func (sf mwFunc) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	sf(w, req)
}

// Middleware wraps a handler to add behavior before or after it runs.
type Middleware func(next http.Handler) http.Handler

// RequireAdmin returns middleware that only lets a request through if its
// Authorization header carries a bearer token matching secretHash, a
// bcrypt hash of the configured admin secret. There is no per-request
// user lookup: the admin surface (/debug/match, /debug/graph,
// /debug/history) has exactly one
// principal, the operator holding the configured secret.
func RequireAdmin(secretHash []byte, unauthDelay time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return mwFunc(func(w http.ResponseWriter, req *http.Request) {
			tok, err := bearerToken(req)
			if err == nil {
				err = bcrypt.CompareHashAndPassword(secretHash, []byte(tok))
			}
			if err != nil {
				r := result.Unauthorized("admin auth failed: %s", err)
				time.Sleep(unauthDelay)
				r.WriteResponse(w)
				r.Log(req)
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}

func bearerToken(req *http.Request) (string, error) {
	authHeader := strings.TrimSpace(req.Header.Get("Authorization"))
	if authHeader == "" {
		return "", fmt.Errorf("no authorization header present")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(strings.TrimSpace(parts[0]), "bearer") {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}
	return strings.TrimSpace(parts[1]), nil
}

// DontPanic returns middleware that turns a panic into a 500 response
// and logs the stack trace, rather than crashing the whole process over
// one malformed or unexpected request.
func DontPanic() Middleware {
	return func(next http.Handler) http.Handler {
		return mwFunc(func(w http.ResponseWriter, r *http.Request) {
			defer panicTo500(w, r)
			next.ServeHTTP(w, r)
		})
	}
}

func panicTo500(w http.ResponseWriter, req *http.Request) (panicVal interface{}) {
	if panicErr := recover(); panicErr != nil {
		r := result.InternalServerError("panic: %v\nSTACK TRACE: %s", panicErr, string(debug.Stack()))
		r.WriteResponse(w)
		r.Log(req)
		return true
	}
	return false
}
