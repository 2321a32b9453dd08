package trace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roblaing/ggp-go-player/internal/search"
	"github.com/roblaing/ggp-go-player/internal/term"
)

func sampleTree() *search.Tree {
	tree := search.NewTree()

	state := term.NewState([]term.Term{term.Compound("light", term.Atom("off"))})
	n := tree.GetOrCreate(state)
	n.WithEdge(term.JointMove{term.Atom("press")}, 1).Accumulate([]int{100})
	n.WithEdge(term.JointMove{term.Atom("noop")}, 1).Accumulate([]int{0})

	return tree
}

func Test_WriteDOT_ProducesWellFormedDigraph(t *testing.T) {
	tree := sampleTree()

	var buf strings.Builder
	err := WriteDOT(&buf, tree)
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "digraph searchtree {\n"))
	assert.True(t, strings.HasSuffix(out, "}\n"))
	assert.Contains(t, out, "press")
	assert.Contains(t, out, "noop")
}

func Test_Capture_RoundTripsThroughMarshalUnmarshal(t *testing.T) {
	tree := sampleTree()

	snap := Capture(tree)
	require.Len(t, snap.Nodes, 1)

	data := Marshal(snap)
	restored, err := Unmarshal(data)
	require.NoError(t, err)
	require.Len(t, restored.Nodes, 1)

	assert.ElementsMatch(t, snap.Nodes[0].State, restored.Nodes[0].State)
	assert.Len(t, restored.Nodes[0].Edges, 2)
}

func Test_Restore_PreservesAccumulatedEdges(t *testing.T) {
	tree := sampleTree()
	snap := Capture(tree)

	restored := Restore(snap)
	nodes := restored.Nodes()
	require.Len(t, nodes, 1)

	for _, n := range nodes {
		edges := n.Edges()
		require.Len(t, edges, 2)
		pressKey := (term.JointMove{term.Atom("press")}).Key()
		e, ok := edges[pressKey]
		require.True(t, ok)
		assert.Equal(t, 50.0, e.Utility(0))
	}
}
