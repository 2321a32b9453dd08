// Package trace exports a search tree for post-mortem analysis: a
// Graphviz DOT rendering for visual inspection, and a binary snapshot
// for saving and reloading a tree between processes.
package trace

import (
	"github.com/dekarrin/rezi"

	"github.com/roblaing/ggp-go-player/internal/search"
	"github.com/roblaing/ggp-go-player/internal/term"
)

// EdgeSnapshot is the persisted form of one search.Edge.
type EdgeSnapshot struct {
	Move     term.JointMove
	ScoreSum []int
	Count    int
}

// NodeSnapshot is the persisted form of one search.Node.
type NodeSnapshot struct {
	State term.State

	TerminalKnown bool
	Terminal      bool

	GoalsKnown bool
	Goals      []int

	Edges []EdgeSnapshot
}

// Snapshot is the persisted form of an entire search.Tree.
type Snapshot struct {
	Nodes []NodeSnapshot
}

// Capture reads every node currently memoized in tree into a Snapshot.
func Capture(tree *search.Tree) Snapshot {
	nodes := tree.Nodes()
	snap := Snapshot{Nodes: make([]NodeSnapshot, 0, len(nodes))}
	for _, n := range nodes {
		terminal, terminalKnown := n.CachedTerminal()
		goals, goalsKnown := n.CachedGoals()

		edges := n.Edges()
		edgeSnaps := make([]EdgeSnapshot, 0, len(edges))
		for _, e := range edges {
			edgeSnaps = append(edgeSnaps, EdgeSnapshot{
				Move:     e.Move,
				ScoreSum: e.ScoreSum,
				Count:    e.Count,
			})
		}

		snap.Nodes = append(snap.Nodes, NodeSnapshot{
			State:         n.State(),
			TerminalKnown: terminalKnown,
			Terminal:      terminal,
			GoalsKnown:    goalsKnown,
			Goals:         goals,
			Edges:         edgeSnaps,
		})
	}
	return snap
}

// Marshal encodes a Snapshot to REZI's binary format.
func Marshal(snap Snapshot) []byte {
	return rezi.EncBinary(snap)
}

// Unmarshal decodes bytes previously produced by Marshal.
func Unmarshal(data []byte) (Snapshot, error) {
	var snap Snapshot
	n, err := rezi.DecBinary(data, &snap)
	if err != nil {
		return Snapshot{}, err
	}
	if n != len(data) {
		return Snapshot{}, ErrTruncatedSnapshot
	}
	return snap, nil
}

// Restore rebuilds a live search.Tree from a Snapshot, preserving every
// node's cached terminal/goal values and accumulated edges so a resumed
// match doesn't re-pay for rollouts already spent in a prior process.
func Restore(snap Snapshot) *search.Tree {
	tree := search.NewTree()
	for _, ns := range snap.Nodes {
		edges := make(map[string]*search.Edge, len(ns.Edges))
		for _, es := range ns.Edges {
			edges[es.Move.Key()] = &search.Edge{
				Move:     es.Move,
				ScoreSum: es.ScoreSum,
				Count:    es.Count,
			}
		}
		n := search.RestoreNode(ns.State, ns.TerminalKnown, ns.Terminal, ns.GoalsKnown, ns.Goals, edges)
		tree.Insert(n)
	}
	return tree
}
