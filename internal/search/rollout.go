package search

import (
	"math/rand"

	"github.com/roblaing/ggp-go-player/internal/gdl"
	"github.com/roblaing/ggp-go-player/internal/term"
)

// DepthCharge runs one random rollout from state to a terminal state (or
// until deadline, clocked against c), returning the resulting goal
// vector. It is written as a loop rather than recursion so a long game
// horizon never grows the call stack.
func DepthCharge(g *gdl.Game, tree *Tree, state term.State, c Clock, deadline float64) []int {
	for {
		node := tree.GetOrCreate(state)
		if node.Terminal(g) || c.Now() > deadline {
			return node.Goals(g)
		}
		moves := g.FindMoves(state)
		move := moves[rand.Intn(len(moves))]
		state = g.Next(state, move)
	}
}
