package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/roblaing/ggp-go-player/internal/historydb"
	"github.com/roblaing/ggp-go-player/internal/trace"
	"github.com/roblaing/ggp-go-player/server/result"
)

// HTTPDebugMatch returns the admin-gated handler that summarizes the
// currently active match: its id, role, phase, and state size. Mount
// this behind middle.RequireAdmin.
func (api API) HTTPDebugMatch() http.HandlerFunc {
	return Endpoint(api.UnauthDelay, api.epDebugMatch)
}

func (api API) epDebugMatch(req *http.Request) result.Result {
	m := api.Session.Current()
	if m == nil {
		return result.Response(http.StatusOK, "no active match", "debug: no active match")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "match_id: %s\n", m.ID)
	fmt.Fprintf(&b, "role: %s\n", m.Role)
	fmt.Fprintf(&b, "phase: %s\n", m.Phase)
	fmt.Fprintf(&b, "ply_count: %d\n", m.PlyCount)
	fmt.Fprintf(&b, "state_size: %d\n", len(m.State))
	fmt.Fprintf(&b, "memoized_states: %d\n", len(m.Tree.Nodes()))
	return result.Response(http.StatusOK, b.String(), "debug: match %q summary", m.ID)
}

// HTTPDebugGraph returns the admin-gated handler that renders the
// current match's search tree as Graphviz DOT, for feeding into `dot`
// or any other Graphviz consumer.
func (api API) HTTPDebugGraph() http.HandlerFunc {
	return Endpoint(api.UnauthDelay, api.epDebugGraph)
}

func (api API) epDebugGraph(req *http.Request) result.Result {
	m := api.Session.Current()
	if m == nil {
		return result.Response(http.StatusOK, "digraph searchtree {}\n", "debug: no active match")
	}

	var b strings.Builder
	if err := trace.WriteDOT(&b, m.Tree); err != nil {
		return result.InternalServerError("render search tree: %s", err)
	}
	return result.Response(http.StatusOK, b.String(), "debug: match %q graph (%d nodes)", m.ID, len(m.Tree.Nodes()))
}

// HTTPDebugHistory returns the admin-gated handler that lists recently
// finished matches from the history log, or a single match's record
// when a "match_id" query parameter is given. Mount this behind
// middle.RequireAdmin.
func (api API) HTTPDebugHistory() http.HandlerFunc {
	return Endpoint(api.UnauthDelay, api.epDebugHistory)
}

func (api API) epDebugHistory(req *http.Request) result.Result {
	if api.History == nil {
		return result.Response(http.StatusOK, "history logging is disabled\n", "debug: history disabled")
	}

	if matchID := req.URL.Query().Get("match_id"); matchID != "" {
		entry, err := api.History.ByMatchID(req.Context(), matchID)
		if err != nil {
			if errors.Is(err, historydb.ErrNotFound) {
				return result.Response(http.StatusNotFound, "no history for that match id\n", "debug: history %q not found", matchID)
			}
			return result.InternalServerError("look up match history: %s", err)
		}
		return result.Response(http.StatusOK, formatHistoryEntries([]historydb.Entry{entry}), "debug: history for match %q", matchID)
	}

	limit := 20
	if raw := req.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := api.History.Recent(req.Context(), limit)
	if err != nil {
		return result.InternalServerError("list recent match history: %s", err)
	}
	return result.Response(http.StatusOK, formatHistoryEntries(entries), "debug: %d recent history entries", len(entries))
}

func formatHistoryEntries(entries []historydb.Entry) string {
	if len(entries) == 0 {
		return "no history entries\n"
	}
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s  match_id=%s role=%s goal=%d ply_count=%d\n",
			e.Finished.Format("2006-01-02T15:04:05Z07:00"), e.MatchID, e.Role, e.Goal, e.PlyCount)
	}
	return b.String()
}
