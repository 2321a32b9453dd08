package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roblaing/ggp-go-player/internal/gdl"
	"github.com/roblaing/ggp-go-player/internal/ggperr"
	"github.com/roblaing/ggp-go-player/internal/term"
)

func buttonsAndLights() []gdl.Clause {
	a := term.Atom
	c := term.Compound
	return []gdl.Clause{
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

		gdl.Rule(c("goal", a("robot"), a("100")), gdl.Pos(c("true", c("light", a("on"))))),
		gdl.Rule(c("goal", a("robot"), a("0")), gdl.Pos(c("true", c("light", a("off"))))),

		gdl.Rule(c("terminal"), gdl.Pos(c("true", c("light", a("on"))))),
	}
}

func Test_Start_WarmsTreeAndEntersStarted(t *testing.T) {
	s := New("roblaing")
	s.Start("m1", "robot", buttonsAndLights(), 10*time.Millisecond, 50*time.Millisecond)

	m := s.Current()
	require.NotNil(t, m)
	assert.Equal(t, Started, m.Phase)
	assert.Equal(t, "robot", m.Role)
}

func Test_Play_NilMoveReturnsChosenAction(t *testing.T) {
	s := New("roblaing")
	s.Start("m1", "robot", buttonsAndLights(), 5*time.Millisecond, 50*time.Millisecond)

	action, err := s.Play("m1", nil)
	require.NoError(t, err)
	assert.True(t, term.Equal(term.Atom("press"), action))
	assert.Equal(t, Playing, s.Current().Phase)
}

func Test_Play_UnknownMatchIsError(t *testing.T) {
	s := New("roblaing")
	_, err := s.Play("nope", nil)
	assert.ErrorIs(t, err, ggperr.ErrNoActiveMatch)
}

func Test_Play_AdvancesStateWithOpponentMove(t *testing.T) {
	s := New("roblaing")
	s.Start("m1", "robot", buttonsAndLights(), 5*time.Millisecond, 50*time.Millisecond)

	action, err := s.Play("m1", term.JointMove{term.Atom("press")})
	require.NoError(t, err)
	// light is now on, the only legal action is noop
	assert.True(t, term.Equal(term.Atom("noop"), action))
}

func Test_Stop_EndsMatch(t *testing.T) {
	s := New("roblaing")
	s.Start("m1", "robot", buttonsAndLights(), 5*time.Millisecond, 50*time.Millisecond)

	err := s.Stop("m1", term.JointMove{term.Atom("press")})
	require.NoError(t, err)
	assert.Equal(t, Stopped, s.Current().Phase)
}

func Test_Abort_UnknownMatchIsError(t *testing.T) {
	s := New("roblaing")
	err := s.Abort("nope")
	assert.ErrorIs(t, err, ggperr.ErrNoActiveMatch)
}

func Test_Start_OverwritesPriorMatch(t *testing.T) {
	s := New("roblaing")
	s.Start("m1", "robot", buttonsAndLights(), 5*time.Millisecond, 50*time.Millisecond)
	s.Start("m2", "robot", buttonsAndLights(), 5*time.Millisecond, 50*time.Millisecond)

	assert.Equal(t, "m2", s.Current().ID)
}
