package trace

import (
	"fmt"
	"io"
	"sort"

	"github.com/roblaing/ggp-go-player/internal/search"
)

// WriteDOT renders tree as a Graphviz DOT digraph: one node per memoized
// state, and for each joint move tried from it an edge to a leaf labeled
// with the move, its rollout count, and the per-role score sums
// accumulated so far. Output is
// deterministic (nodes and edges sorted by key) so repeated runs over an
// unchanged tree diff cleanly.
func WriteDOT(w io.Writer, tree *search.Tree) error {
	nodes := tree.Nodes()

	keys := make([]string, 0, len(nodes))
	for k := range nodes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if _, err := fmt.Fprintln(w, "digraph searchtree {"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, `  rankdir="LR";`); err != nil {
		return err
	}

	for _, k := range keys {
		n := nodes[k]
		terminal, terminalKnown := n.CachedTerminal()
		shape := "box"
		if terminalKnown && terminal {
			shape = "doublecircle"
		}
		if _, err := fmt.Fprintf(w, "  %q [shape=%s,label=%q];\n", k, shape, nodeLabel(k, n)); err != nil {
			return err
		}
	}

	for _, k := range keys {
		n := nodes[k]
		edges := n.Edges()

		edgeKeys := make([]string, 0, len(edges))
		for ek := range edges {
			edgeKeys = append(edgeKeys, ek)
		}
		sort.Strings(edgeKeys)

		// An edge accumulates rollout statistics for a joint move tried
		// from this node; it does not itself name the resulting child
		// state, so each is rendered as a leaf summarizing that move's
		// statistics rather than a link to another memoized node.
		for _, ek := range edgeKeys {
			e := edges[ek]
			leaf := k + "::" + ek
			if _, err := fmt.Fprintf(w, "  %q [shape=plaintext,label=%q];\n", leaf, edgeLabel(e)); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "  %q -> %q;\n", k, leaf); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}

func edgeLabel(e *search.Edge) string {
	return fmt.Sprintf("%s\\nn=%d sum=%v", e.Move.Key(), e.Count, e.ScoreSum)
}

func nodeLabel(key string, n *search.Node) string {
	goals, goalsKnown := n.CachedGoals()
	if !goalsKnown {
		return key
	}
	return fmt.Sprintf("%s\\ngoals=%v", key, goals)
}
