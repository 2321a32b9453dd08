package term

import "sort"

// State is a canonicalized (sorted, deduplicated) set of ground terms: the
// arguments of the implicit `true/1` facts that hold at some point in the
// game. Two states with the same canonical sequence are equal.
type State []Term

// NewState builds a canonical State from an arbitrary slice of ground
// terms, sorting and removing duplicates.
func NewState(terms []Term) State {
	cp := make([]Term, len(terms))
	copy(cp, terms)
	sort.Slice(cp, func(i, j int) bool { return Compare(cp[i], cp[j]) < 0 })

	out := cp[:0:0]
	for i, t := range cp {
		if i == 0 || !Equal(t, cp[i-1]) {
			out = append(out, t)
		}
	}
	return State(out)
}

// Equal reports whether two canonical states hold the same set of terms.
func (s State) Equal(other State) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if !Equal(s[i], other[i]) {
			return false
		}
	}
	return true
}

// Contains reports whether t is a member of s. s must be canonical.
func (s State) Contains(t Term) bool {
	i := sort.Search(len(s), func(i int) bool { return Compare(s[i], t) >= 0 })
	return i < len(s) && Equal(s[i], t)
}

// Key renders s as a string suitable for use as a map key; canonical states
// always produce the same key.
func (s State) Key() string {
	var parts []byte
	for i, t := range s {
		if i > 0 {
			parts = append(parts, '|')
		}
		parts = append(parts, t.String()...)
	}
	return string(parts)
}

// Move is one role's chosen action.
type Move struct {
	Role   string
	Action Term
}

// JointMove is an ordered tuple of ground actions, one per role, in the
// declared role order. The sentinel action symbol "noop" is a legitimate
// action used verbatim when a role has no effective choice.
type JointMove []Term

// Noop is the conventional filler action for a role with no active choice.
var Noop = Atom("noop")

// Key renders a joint move as a string suitable for use as a map key.
func (m JointMove) Key() string {
	var parts []byte
	for i, t := range m {
		if i > 0 {
			parts = append(parts, '|')
		}
		parts = append(parts, t.String()...)
	}
	return string(parts)
}

// Equal reports whether two joint moves are identical element-wise.
func (m JointMove) Equal(other JointMove) bool {
	if len(m) != len(other) {
		return false
	}
	for i := range m {
		if !Equal(m[i], other[i]) {
			return false
		}
	}
	return true
}
