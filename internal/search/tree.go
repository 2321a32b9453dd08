// Package search implements the Monte-Carlo game tree: a state memo plus
// the depth-charge rollout, per-action accumulation, and time-sliced
// best-move selection that together choose a move under a wall-clock
// budget.
package search

import (
	"sync"

	"github.com/roblaing/ggp-go-player/internal/gdl"
	"github.com/roblaing/ggp-go-player/internal/term"
)

// Edge is the Monte-Carlo accumulator for one joint move tried from one
// node: a running elementwise sum of role goal vectors, and the number of
// depth charges folded into it.
type Edge struct {
	Move     term.JointMove
	ScoreSum []int
	Count    int
}

// Accumulate folds one rollout's goal vector into the edge.
func (e *Edge) Accumulate(goals []int) {
	for i, v := range goals {
		if i < len(e.ScoreSum) {
			e.ScoreSum[i] += v
		}
	}
	e.Count++
}

// Utility returns the mean goal value for role index idx seen so far.
// Count is seeded at 1 so this is never a division by zero; the seed
// itself contributes no score, so it never reads as a free win.
func (e *Edge) Utility(idx int) float64 {
	if idx < 0 || idx >= len(e.ScoreSum) || e.Count == 0 {
		return 0
	}
	return float64(e.ScoreSum[idx]) / float64(e.Count)
}

// Node is one state's memo entry: its terminal-ness and goal vector, both
// computed lazily and cached, and the edges explored from it so far.
type Node struct {
	mu sync.Mutex

	state term.State

	terminalKnown bool
	terminal      bool

	goalsKnown bool
	goals      []int

	edges map[string]*Edge
}

func newNode(state term.State) *Node {
	return &Node{state: state, edges: make(map[string]*Edge)}
}

// Terminal reports whether the node's state is terminal, computing and
// caching the answer on first use.
func (n *Node) Terminal(g *gdl.Game) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.terminalKnown {
		n.terminal = g.Terminal(n.state)
		n.terminalKnown = true
	}
	return n.terminal
}

// Goals returns the goal vector (one value per role, in role order) for
// the node's state, computing and caching it on first use.
func (n *Node) Goals(g *gdl.Game) []int {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.goalsKnown {
		roles := g.Roles()
		goals := make([]int, len(roles))
		for i, r := range roles {
			goals[i] = g.Goal(n.state, r)
		}
		n.goals = goals
		n.goalsKnown = true
	}
	return n.goals
}

// WithEdge returns the accumulator for move from this node, seeding it
// with score_count := [0,...,0,1] on first request as spec'd: role slots
// start at zero, the trailing count slot starts at one purely to avoid a
// divide-by-zero on the first Utility call, never as a virtual win.
func (n *Node) WithEdge(move term.JointMove, numRoles int) *Edge {
	n.mu.Lock()
	defer n.mu.Unlock()
	key := move.Key()
	e, ok := n.edges[key]
	if !ok {
		e = &Edge{Move: move, ScoreSum: make([]int, numRoles), Count: 1}
		n.edges[key] = e
	}
	return e
}

// Tree is the unbounded state memo keyed by canonical state. Overflow is
// a deployment concern (bound match length, restart between matches),
// not something the memo itself guards against.
type Tree struct {
	mu    sync.Mutex
	nodes map[string]*Node
}

// NewTree builds an empty state memo.
func NewTree() *Tree {
	return &Tree{nodes: make(map[string]*Node)}
}

// RestoreNode rebuilds a node from previously captured cache contents,
// for use by a snapshot-restoring caller (internal/trace). It does not
// go through the lazy Terminal/Goals computation path.
func RestoreNode(state term.State, terminalKnown, terminal, goalsKnown bool, goals []int, edges map[string]*Edge) *Node {
	if edges == nil {
		edges = make(map[string]*Edge)
	}
	return &Node{
		state:         state,
		terminalKnown: terminalKnown,
		terminal:      terminal,
		goalsKnown:    goalsKnown,
		goals:         goals,
		edges:         edges,
	}
}

// Insert adds a pre-built node to the tree, keyed by its own state. An
// existing entry for the same state is replaced. For use by
// snapshot-restoring callers (internal/trace).
func (t *Tree) Insert(n *Node) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nodes[n.State().Key()] = n
}

// GetOrCreate returns the node for state, creating it if this is the
// first time the tree has seen it.
func (t *Tree) GetOrCreate(state term.State) *Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	key := state.Key()
	n, ok := t.nodes[key]
	if !ok {
		n = newNode(state)
		t.nodes[key] = n
	}
	return n
}

// Nodes returns a snapshot of every node currently memoized, keyed by
// canonical state key. Intended for read-only consumers (DOT export,
// binary snapshotting); callers must not mutate the returned nodes.
func (t *Tree) Nodes() map[string]*Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]*Node, len(t.nodes))
	for k, v := range t.nodes {
		out[k] = v
	}
	return out
}

// State returns the state this node memoizes.
func (n *Node) State() term.State {
	return n.state
}

// CachedGoals returns the node's cached goal vector and whether one has
// been computed yet, without triggering computation.
func (n *Node) CachedGoals() ([]int, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.goals, n.goalsKnown
}

// CachedTerminal returns the node's cached terminal flag and whether it
// has been computed yet, without triggering computation.
func (n *Node) CachedTerminal() (bool, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.terminal, n.terminalKnown
}

// Edges returns a snapshot of the edges explored from this node, keyed
// by joint-move key.
func (n *Node) Edges() map[string]*Edge {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make(map[string]*Edge, len(n.edges))
	for k, v := range n.edges {
		out[k] = v
	}
	return out
}
