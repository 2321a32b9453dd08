package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roblaing/ggp-go-player/internal/gdl"
	"github.com/roblaing/ggp-go-player/internal/term"
)

// buttonsAndLights mirrors the fixture in internal/gdl's tests: one role,
// one binary light, terminal the instant it's lit, goal 100 when lit.
func buttonsAndLights() *gdl.Game {
	a := term.Atom
	c := term.Compound

	clauses := []gdl.Clause{
		gdl.Fact(c("role", a("robot"))),
		gdl.Fact(c("init", c("light", a("off")))),

		gdl.Rule(c("legal", a("robot"), a("press")), gdl.Pos(c("true", c("light", a("off"))))),
		gdl.Rule(c("legal", a("robot"), a("noop")), gdl.Pos(c("true", c("light", a("on"))))),

		gdl.Rule(c("next", c("light", a("on"))),
			gdl.Pos(c("true", c("light", a("off")))),
			gdl.Pos(c("does", a("robot"), a("press")))),
		gdl.Rule(c("next", c("light", a("off"))),
			gdl.Pos(c("true", c("light", a("off")))),
			gdl.Neg(c("does", a("robot"), a("press")))),
		gdl.Rule(c("next", c("light", a("on"))),
			gdl.Pos(c("true", c("light", a("on"))))),

		gdl.Rule(c("goal", a("robot"), a("100")), gdl.Pos(c("true", c("light", a("on"))))),
		gdl.Rule(c("goal", a("robot"), a("0")), gdl.Pos(c("true", c("light", a("off"))))),

		gdl.Rule(c("terminal"), gdl.Pos(c("true", c("light", a("on"))))),
	}
	return gdl.NewGame(clauses)
}

func Test_DepthCharge_ReachesTerminalAndReportsGoal(t *testing.T) {
	g := buttonsAndLights()
	tree := NewTree()
	clock := NewClock()

	goals := DepthCharge(g, tree, g.Init(), clock, clock.Deadline(time.Second))
	require.Len(t, goals, 1)
	assert.Equal(t, 100, goals[0])
}

func Test_BestMove_FindsWinningPress(t *testing.T) {
	g := buttonsAndLights()
	tree := NewTree()
	clock := NewClock()

	move := BestMove(g, tree, "robot", g.Init(), clock, clock.Deadline(50*time.Millisecond))
	assert.True(t, term.Equal(term.Atom("press"), move))
}

func Test_BestMove_NoopFastPathSkipsRollouts(t *testing.T) {
	g := buttonsAndLights()
	tree := NewTree()
	clock := NewClock()

	lit := term.NewState([]term.Term{term.Compound("light", term.Atom("on"))})

	// deadline already in the past: if the fast path didn't trigger, the
	// search loop would spin with zero rollout budget and still need to
	// terminate cleanly, but here it must not even try.
	move := BestMove(g, tree, "robot", lit, clock, clock.Now()-1)
	assert.True(t, term.Equal(term.Atom("noop"), move))
}

func Test_Edge_UtilitySeedAvoidsDivideByZero(t *testing.T) {
	e := &Edge{ScoreSum: []int{0, 0}, Count: 1}
	assert.Equal(t, 0.0, e.Utility(0))
	e.Accumulate([]int{100, 0})
	assert.Equal(t, 50.0, e.Utility(0)) // (0+100)/2, not 100/1
}

func Test_Tree_GetOrCreate_SameStateSameNode(t *testing.T) {
	tree := NewTree()
	s := term.NewState([]term.Term{term.Atom("a")})
	n1 := tree.GetOrCreate(s)
	n2 := tree.GetOrCreate(s)
	assert.Same(t, n1, n2)
}
