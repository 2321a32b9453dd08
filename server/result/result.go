// Package result carries the outcome of one wire-verb handler through to
// the point where it's written out as an HTTP response, so logging and
// the GGP response envelope (text/acl, CORS headers) are applied in
// exactly one place.
package result

import (
	"fmt"
	"log"
	"net/http"
	"strings"
)

// Result is the outcome of handling one GGP wire message.
type Result struct {
	Status      int
	IsErr       bool
	InternalMsg string

	body string
	hdrs [][2]string
}

// OK returns a Result carrying a successful wire reply body.
func OK(body string, internalMsg ...interface{}) Result {
	return Response(http.StatusOK, body, fmtMsg("ok", internalMsg))
}

// Err returns a Result carrying an HTTP error status; body is still sent
// as the response text since GGP clients expect a plain-text payload.
func Err(status int, body, internalMsg string, v ...interface{}) Result {
	return Result{
		Status:      status,
		IsErr:       true,
		InternalMsg: fmt.Sprintf(internalMsg, v...),
		body:        body,
	}
}

// Response returns a non-error Result.
func Response(status int, body, internalMsg string) Result {
	return Result{Status: status, InternalMsg: internalMsg, body: body}
}

// BadRequest is a 400 response for a message that failed to parse.
func BadRequest(internalMsg string, v ...interface{}) Result {
	return Err(http.StatusBadRequest, "malformed request", internalMsg, v...)
}

// Unauthorized is a 401 response for a missing or invalid admin bearer
// token.
func Unauthorized(internalMsg string, v ...interface{}) Result {
	return Err(http.StatusUnauthorized, "unauthorized", internalMsg, v...).
		WithHeader("WWW-Authenticate", `Bearer realm="ggp-go-player admin"`)
}

// InternalServerError is a 500 response for an unexpected failure.
func InternalServerError(internalMsg string, v ...interface{}) Result {
	return Err(http.StatusInternalServerError, "internal server error", internalMsg, v...)
}

func fmtMsg(def string, args []interface{}) string {
	if len(args) == 0 {
		return def
	}
	format, ok := args[0].(string)
	if !ok {
		return def
	}
	return fmt.Sprintf(format, args[1:]...)
}

// WithHeader returns a copy of r with an additional response header set.
func (r Result) WithHeader(name, val string) Result {
	cp := r
	cp.hdrs = append(append([][2]string{}, r.hdrs...), [2]string{name, val})
	return cp
}

// WriteResponse writes r to w using the GGP wire envelope: text/acl
// content type plus permissive CORS headers, matching what every GGP
// game controller expects a player's HTTP server to send back.
func (r Result) WriteResponse(w http.ResponseWriter) {
	if r.Status == 0 {
		panic("result not populated")
	}

	w.Header().Set("Content-Type", "text/acl")
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(r.body)))
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Max-Age", "86400")

	for _, h := range r.hdrs {
		w.Header().Set(h[0], h[1])
	}

	w.WriteHeader(r.Status)
	fmt.Fprint(w, r.body)
}

// Log writes a one-line summary of the result to the standard logger.
func (r Result) Log(req *http.Request) {
	level := "INFO "
	if r.IsErr {
		level = "ERROR"
	}
	remoteIP := strings.SplitN(req.RemoteAddr, ":", 2)[0]
	log.Printf("%s %s %s %s: HTTP-%d %s", level, remoteIP, req.Method, req.URL.Path, r.Status, r.InternalMsg)
}
