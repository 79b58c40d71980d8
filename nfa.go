package automata

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// NFA Nondeterministic finite automaton with epsilon transitions. States are
// interned to dense indices at construction time so that closure and subset
// construction can run on bitsets; all exported introspection speaks State.
// An NFA is immutable once built: every transformation returns a fresh
// automaton and leaves its input intact.
type NFA struct {
	states   []State
	index    map[State]int
	alphabet *Alphabet
	start    State
	finals   *bitset.BitSet
	trans    []map[Symbol][]int
}

// NewNFA Builds an NFA and validates its shape: the start state, every
// final state and every state referenced by a transition must belong to
// states, and every transition label must belong to the alphabet.
func NewNFA(states []State, alphabet *Alphabet, start State, finals []State,
	transitions map[State]map[Symbol][]State) (*NFA, error) {

	if len(states) == 0 {
		return nil, fmt.Errorf("%w: empty state set", ErrMalformedDescription)
	}

	n := &NFA{
		states:   make([]State, 0, len(states)),
		index:    make(map[State]int, len(states)),
		alphabet: NewAlphabet(alphabet.symbols...),
		start:    start,
		finals:   bitset.New(uint(len(states))),
		trans:    make([]map[Symbol][]int, len(states)),
	}

	for _, s := range states {
		if _, ok := n.index[s]; ok {
			return nil, fmt.Errorf("%w: duplicate state %q", ErrMalformedDescription, s)
		}
		n.index[s] = len(n.states)
		n.states = append(n.states, s)
	}

	if _, ok := n.index[start]; !ok {
		return nil, fmt.Errorf("%w: start state %q not in state set", ErrMalformedDescription, start)
	}
	for _, f := range finals {
		i, ok := n.index[f]
		if !ok {
			return nil, fmt.Errorf("%w: final state %q not in state set", ErrMalformedDescription, f)
		}
		n.finals.Set(uint(i))
	}

	for src, bySymbol := range transitions {
		i, ok := n.index[src]
		if !ok {
			return nil, fmt.Errorf("%w: transition from unknown state %q", ErrMalformedDescription, src)
		}
		for sym, targets := range bySymbol {
			if !n.alphabet.Contains(sym) {
				return nil, fmt.Errorf("%w: transition on symbol %q outside alphabet", ErrMalformedDescription, sym)
			}
			for _, dst := range targets {
				j, ok := n.index[dst]
				if !ok {
					return nil, fmt.Errorf("%w: transition to unknown state %q", ErrMalformedDescription, dst)
				}
				if n.trans[i] == nil {
					n.trans[i] = make(map[Symbol][]int)
				}
				n.trans[i][sym] = append(n.trans[i][sym], j)
			}
		}
	}

	return n, nil
}

func (n *NFA) States() []State {
	out := make([]State, len(n.states))
	copy(out, n.states)
	return out
}

// Alphabet Returns a copy of the alphabet, Epsilon included if the automaton
// was built with it.
func (n *NFA) Alphabet() *Alphabet {
	return NewAlphabet(n.alphabet.symbols...)
}

func (n *NFA) Start() State {
	return n.start
}

func (n *NFA) Finals() []State {
	out := make([]State, 0, n.finals.Count())
	for i, ok := n.finals.NextSet(0); ok; i, ok = n.finals.NextSet(i + 1) {
		out = append(out, n.states[i])
	}
	return out
}

func (n *NFA) IsFinal(s State) bool {
	i, ok := n.index[s]
	return ok && n.finals.Test(uint(i))
}

// Move Returns the direct (non-closed) targets of s on sym, in insertion
// order. An empty slice means the transition is undefined; that is a normal
// partial-function gap, not an error.
func (n *NFA) Move(s State, sym Symbol) []State {
	i, ok := n.index[s]
	if !ok || n.trans[i] == nil {
		return nil
	}
	targets := n.trans[i][sym]
	out := make([]State, len(targets))
	for k, j := range targets {
		out[k] = n.states[j]
	}
	return out
}

// EpsilonClosure Returns the smallest superset of the given states closed
// under Epsilon transitions. States unknown to the automaton are ignored;
// an empty input yields an empty closure. Output follows state insertion
// order.
func (n *NFA) EpsilonClosure(states []State) []State {
	set := bitset.New(uint(len(n.states)))
	for _, s := range states {
		if i, ok := n.index[s]; ok {
			set.Set(uint(i))
		}
	}
	n.closure(set)

	out := make([]State, 0, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		out = append(out, n.states[i])
	}
	return out
}

// closure Extends set in place with everything reachable over Epsilon.
// Stack-based worklist; a state already in the closure is never re-pushed.
func (n *NFA) closure(set *bitset.BitSet) {
	stack := make([]int, 0, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		stack = append(stack, int(i))
	}

	for len(stack) > 0 {
		state := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.trans[state] == nil {
			continue
		}
		for _, dst := range n.trans[state][Epsilon] {
			if !set.Test(uint(dst)) {
				set.Set(uint(dst))
				stack = append(stack, dst)
			}
		}
	}
}

// moveIdx Accumulates into dst the direct targets on sym over all members
// of src. Index-level counterpart of Move used by subset construction.
func (n *NFA) moveIdx(src *bitset.BitSet, sym Symbol, dst *bitset.BitSet) {
	for i, ok := src.NextSet(0); ok; i, ok = src.NextSet(i + 1) {
		if n.trans[i] == nil {
			continue
		}
		for _, j := range n.trans[i][sym] {
			dst.Set(uint(j))
		}
	}
}
