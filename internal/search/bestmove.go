package search

import (
	"math/rand"

	"github.com/roblaing/ggp-go-player/internal/gdl"
	"github.com/roblaing/ggp-go-player/internal/term"
)

// BestMove chooses role's next action at state under the wall-clock
// budget ending at deadline (in c's seconds). It enumerates every joint
// move available from state, time-slices the remaining budget evenly
// across them, runs Monte-Carlo accumulation on each slice, and returns
// the role's component of whichever joint move scored highest for role.
func BestMove(g *gdl.Game, tree *Tree, role string, state term.State, c Clock, deadline float64) term.Term {
	roleIdx := roleIndex(g, role)

	if noop, ok := onlyNoopLegal(g, state, role); ok {
		return noop
	}

	actions := g.FindMoves(state)
	n := len(actions)
	if n == 0 {
		return term.Noop
	}

	node := tree.GetOrCreate(state)
	numRoles := len(g.Roles())

	best := actions[rand.Intn(n)]
	bestUtility := 0.0

	perAction := (deadline - c.Now()) / float64(n)
	for i, move := range actions {
		actionDeadline := deadline - perAction*float64(n-1-i)

		next := g.Next(state, move)
		edge := node.WithEdge(move, numRoles)
		for c.Now() < actionDeadline {
			goals := DepthCharge(g, tree, next, c, actionDeadline)
			edge.Accumulate(goals)
		}

		utility := edge.Utility(roleIdx)
		if utility > bestUtility {
			bestUtility = utility
			best = move
		}
	}

	if roleIdx < 0 || roleIdx >= len(best) {
		return term.Noop
	}
	return best[roleIdx]
}

func roleIndex(g *gdl.Game, role string) int {
	for i, r := range g.Roles() {
		if r == role {
			return i
		}
	}
	return -1
}

// onlyNoopLegal reports whether role's only legal action at state is
// noop, in which case best-move selection can skip spending any rollout
// budget: there is nothing to choose between.
func onlyNoopLegal(g *gdl.Game, state term.State, role string) (term.Term, bool) {
	var roleActions []term.Term
	for _, m := range g.Legal(state) {
		if m.Role == role {
			roleActions = append(roleActions, m.Action)
		}
	}
	if len(roleActions) == 1 && term.Equal(roleActions[0], term.Noop) {
		return term.Noop, true
	}
	return term.Term{}, false
}
