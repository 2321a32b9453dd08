package sexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roblaing/ggp-go-player/internal/gdl"
	"github.com/roblaing/ggp-go-player/internal/term"
)

func Test_ParseTerm_Atom(t *testing.T) {
	tm, err := ParseTerm("Robot")
	require.NoError(t, err)
	assert.True(t, term.Equal(term.Atom("robot"), tm))
}

func Test_ParseTerm_Compound(t *testing.T) {
	tm, err := ParseTerm("(CELL 1 1 X)")
	require.NoError(t, err)
	assert.True(t, term.Equal(term.Compound("cell", term.Atom("1"), term.Atom("1"), term.Atom("x")), tm))
}

func Test_ParseTerm_Variable(t *testing.T) {
	tm, err := ParseTerm("(cell ?x ?y ?state)")
	require.NoError(t, err)
	want := term.Compound("cell", term.Atom("X"), term.Atom("Y"), term.Atom("State"))
	assert.True(t, term.Equal(want, tm))
	assert.True(t, tm.Args[0].IsVar())
}

func Test_ParseTerm_UnterminatedParen(t *testing.T) {
	_, err := ParseTerm("(cell 1 1")
	assert.Error(t, err)
}

func Test_ParseRuleset_FactsAndRules(t *testing.T) {
	src := `
		(role robot)
		(<= (legal robot press) (true (light off)))
		(<= (next (light on))
			(true (light off))
			(does robot press))
	`
	clauses, err := ParseRuleset(src)
	require.NoError(t, err)
	require.Len(t, clauses, 3)
	assert.True(t, clauses[0].IsFact())
	assert.False(t, clauses[1].IsFact())
	require.Len(t, clauses[2].Body, 2)
}

func Test_ParseRuleset_NotDistinctOr(t *testing.T) {
	src := `(<= (legal robot noop)
		(true (light off))
		(not (true (light on)))
		(distinct a b)
		(or (true x) (true y)))`
	clauses, err := ParseRuleset(src)
	require.NoError(t, err)
	require.Len(t, clauses, 1)
	body := clauses[0].Body
	require.Len(t, body, 4)
	assert.Equal(t, gdl.LitPos, body[0].Kind)
	assert.Equal(t, gdl.LitNeg, body[1].Kind)
	assert.Equal(t, gdl.LitDistinct, body[2].Kind)
	assert.Equal(t, gdl.LitOr, body[3].Kind)
	assert.Len(t, body[3].Or, 2)
}

func Test_ParseMessage_Info(t *testing.T) {
	msg, err := ParseMessage("(info)")
	require.NoError(t, err)
	assert.Equal(t, VerbInfo, msg.Verb)
}

func Test_ParseMessage_Start(t *testing.T) {
	body := `(start match1 robot
		((role robot) (<= (legal robot press) (true (light off))))
		10 5)`
	msg, err := ParseMessage(body)
	require.NoError(t, err)
	assert.Equal(t, VerbStart, msg.Verb)
	assert.Equal(t, "match1", msg.MatchID)
	assert.Equal(t, "robot", msg.Role)
	assert.Equal(t, 10, msg.StartClockSeconds)
	assert.Equal(t, 5, msg.PlayClockSeconds)
	require.Len(t, msg.Clauses, 2)
}

func Test_ParseMessage_PlayWithNilMove(t *testing.T) {
	msg, err := ParseMessage("(play match1 nil)")
	require.NoError(t, err)
	assert.Equal(t, VerbPlay, msg.Verb)
	assert.Nil(t, msg.Move)
}

func Test_ParseMessage_PlayWithHeadlessAtomFirstMove(t *testing.T) {
	// the first role's action is a bare atom ("noop"), which must not be
	// folded into a functor head the way a normal compound would be.
	msg, err := ParseMessage("(play match1 (noop (mark 1 1)))")
	require.NoError(t, err)
	require.Len(t, msg.Move, 2)
	assert.True(t, term.Equal(term.Atom("noop"), msg.Move[0]))
	assert.True(t, term.Equal(term.Compound("mark", term.Atom("1"), term.Atom("1")), msg.Move[1]))
}

func Test_ParseMessage_Abort(t *testing.T) {
	msg, err := ParseMessage("(abort match1)")
	require.NoError(t, err)
	assert.Equal(t, VerbAbort, msg.Verb)
	assert.Equal(t, "match1", msg.MatchID)
}

func Test_InfoResponse(t *testing.T) {
	assert.Equal(t, "((name roblaing) (status available))", InfoResponse("roblaing"))
}

func Test_MoveResponse(t *testing.T) {
	assert.Equal(t, "(mark 1 1)", MoveResponse(term.Compound("mark", term.Atom("1"), term.Atom("1"))))
	assert.Equal(t, "noop", MoveResponse(term.Atom("noop")))
}
