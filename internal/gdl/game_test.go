package gdl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roblaing/ggp-go-player/internal/term"
)

// buttonsAndLights is a minimal single-role, one-step game: pressing the
// button toggles a light, and the game ends (with goal 100) the instant it
// does. It exercises next/goal/terminal without any recursive relations.
func buttonsAndLights() *Game {
	t := term.Atom
	c := term.Compound

	clauses := []Clause{
		Fact(c("role", t("robot"))),
		Fact(c("base", c("light", t("on")))),
		Fact(c("base", c("light", t("off")))),
		Fact(c("input", t("robot"), t("press"))),
		Fact(c("input", t("robot"), t("noop"))),
		Fact(c("init", c("light", t("off")))),

		Rule(c("legal", t("robot"), t("press")), Pos(c("true", c("light", t("off"))))),
		Rule(c("legal", t("robot"), t("noop")), Pos(c("true", c("light", t("on"))))),

		Rule(c("next", c("light", t("on"))),
			Pos(c("true", c("light", t("off")))),
			Pos(c("does", t("robot"), t("press")))),
		Rule(c("next", c("light", t("off"))),
			Pos(c("true", c("light", t("off")))),
			Neg(c("does", t("robot"), t("press")))),
		Rule(c("next", c("light", t("on"))),
			Pos(c("true", c("light", t("on"))))),

		Rule(c("goal", t("robot"), t("100")), Pos(c("true", c("light", t("on"))))),
		Rule(c("goal", t("robot"), t("0")), Pos(c("true", c("light", t("off"))))),

		Rule(c("terminal"), Pos(c("true", c("light", t("on"))))),
	}
	return NewGame(clauses)
}

func Test_ButtonsAndLights_Init(t *testing.T) {
	g := buttonsAndLights()

	assert.Equal(t, []string{"robot"}, g.Roles())
	init := g.Init()
	assert.True(t, init.Contains(term.Compound("light", term.Atom("off"))))
	assert.False(t, g.Terminal(init))
}

func Test_ButtonsAndLights_LegalMovesFromOffState(t *testing.T) {
	g := buttonsAndLights()
	init := g.Init()

	legal := g.Legal(init)
	require.Len(t, legal, 1)
	assert.Equal(t, "robot", legal[0].Role)
	assert.True(t, term.Equal(term.Atom("press"), legal[0].Action))
}

func Test_ButtonsAndLights_PressTurnsLightOnAndEndsGame(t *testing.T) {
	g := buttonsAndLights()
	init := g.Init()

	moves := g.FindMoves(init)
	require.Len(t, moves, 1)

	next := g.Next(init, moves[0])
	assert.True(t, next.Contains(term.Compound("light", term.Atom("on"))))
	assert.True(t, g.Terminal(next))
	assert.Equal(t, 100, g.Goal(next, "robot"))
}

func Test_ButtonsAndLights_NoopOnceLit(t *testing.T) {
	g := buttonsAndLights()
	lit := term.NewState([]term.Term{term.Compound("light", term.Atom("on"))})

	legal := g.Legal(lit)
	require.Len(t, legal, 1)
	assert.True(t, term.Equal(term.Atom("noop"), legal[0].Action))

	next := g.Next(lit, term.JointMove{term.Atom("noop")})
	assert.True(t, next.Equal(lit))
}

// ticTacToeEmptyBoard checks FindMoves produces the full Cartesian product
// with noop filler for the role that isn't on turn, using a two-role game
// with a control marker rather than full win-detection rules.
func ticTacToeEmptyBoard() *Game {
	a := term.Atom
	c := term.Compound

	var clauses []Clause
	clauses = append(clauses,
		Fact(c("role", a("xplayer"))),
		Fact(c("role", a("oplayer"))),
		Fact(c("init", c("control", a("xplayer")))),
	)
	for _, m := range []string{"1", "2", "3"} {
		for _, n := range []string{"1", "2", "3"} {
			clauses = append(clauses, Fact(c("init", c("cell", a(m), a(n), a("b")))))
			clauses = append(clauses,
				Rule(c("legal", a("xplayer"), c("mark", a(m), a(n))),
					Pos(c("true", c("cell", a(m), a(n), a("b")))),
					Pos(c("true", c("control", a("xplayer"))))))
			clauses = append(clauses,
				Rule(c("legal", a("oplayer"), c("mark", a(m), a(n))),
					Pos(c("true", c("cell", a(m), a(n), a("b")))),
					Pos(c("true", c("control", a("oplayer"))))))
		}
	}
	clauses = append(clauses,
		Rule(c("legal", a("xplayer"), a("noop")), Pos(c("true", c("control", a("oplayer"))))),
		Rule(c("legal", a("oplayer"), a("noop")), Pos(c("true", c("control", a("xplayer"))))),
	)
	return NewGame(clauses)
}

func Test_TicTacToe_EmptyBoard_NineMovesForXOnly(t *testing.T) {
	g := ticTacToeEmptyBoard()
	init := g.Init()

	legal := g.Legal(init)
	var xMoves, oMoves int
	for _, m := range legal {
		switch m.Role {
		case "xplayer":
			xMoves++
		case "oplayer":
			oMoves++
		}
	}
	assert.Equal(t, 9, xMoves)
	assert.Equal(t, 1, oMoves) // noop only

	moves := g.FindMoves(init)
	assert.Len(t, moves, 9) // 9 x moves * 1 (noop) o move
}

func Test_AlreadyTerminalState_ReturnsNoMoves(t *testing.T) {
	g := buttonsAndLights()
	lit := term.NewState([]term.Term{term.Compound("light", term.Atom("on"))})

	require.True(t, g.Terminal(lit))
	moves := g.FindMoves(lit)
	// noop is still a satisfied legal atom here, but a terminal state
	// offers no joint moves at all.
	assert.Empty(t, moves)
}

// reachable is a transitive-closure relation over a static successor chain,
// checking that the fixpoint evaluator handles positive recursion.
func Test_PositiveRecursion_TransitiveClosure(t *testing.T) {
	a := term.Atom
	c := term.Compound

	clauses := []Clause{
		Fact(c("role", a("observer"))),
		Fact(c("succ", a("1"), a("2"))),
		Fact(c("succ", a("2"), a("3"))),
		Fact(c("succ", a("3"), a("4"))),
		Fact(c("init", c("at", a("1")))),

		Rule(c("reachable", a("X"), a("Y")), Pos(c("succ", a("X"), a("Y")))),
		Rule(c("reachable", a("X"), a("Z")),
			Pos(c("succ", a("X"), a("Y"))),
			Pos(c("reachable", a("Y"), a("Z")))),

		Rule(c("legal", a("observer"), a("noop")), Pos(c("true", c("at", a("1"))))),
		Rule(c("terminal"), Pos(c("reachable", a("1"), a("4")))),
	}
	g := NewGame(clauses)
	init := g.Init()

	ev := newEvaluator(g.db, init, nil)
	reach := ev.Ask("reachable")
	assert.Len(t, reach, 6) // (1,2)(1,3)(1,4)(2,3)(2,4)(3,4)
	assert.True(t, g.Terminal(init))
}

// Test_StratifiedNegation_DoesNotLeakAcrossRounds is the regression case
// for the alphabetical-order bug: "legal" sorts before "zzz", so a naive
// single-pass, symbol-sorted evaluator would evaluate `not zzz` in round
// 0 while zzz's own fact set was still empty, wrongly derive legal(r,a),
// and never retract it once zzz caught up in a later round. Stratified
// evaluation must place zzz in a lower stratum than legal so legal's
// negation is only ever checked against zzz's fully-stabilized fact set.
func Test_StratifiedNegation_DoesNotLeakAcrossRounds(t *testing.T) {
	a := term.Atom
	c := term.Compound

	clauses := []Clause{
		Fact(c("role", a("r"))),
		Fact(c("base", c("foo"))),
		Fact(c("input", a("r"), a("a"))),
		Fact(c("init", c("foo"))),

		Rule(c("zzz"), Pos(c("true", c("foo")))),
		Rule(c("legal", a("r"), a("a")), Neg(c("zzz"))),

		Rule(c("terminal"), Pos(c("true", c("foo")))),
	}
	g := NewGame(clauses)
	init := g.Init()

	require.True(t, init.Contains(term.Compound("foo")))
	assert.Empty(t, g.Legal(init), "zzz holds in the init state, so legal(r,a) must not be derived")
}
