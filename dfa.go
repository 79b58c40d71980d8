package automata

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// DFA Deterministic finite automaton. The transition relation is a partial
// function: for a fixed (state, symbol) there is at most one target, and a
// missing entry means the transition is undefined. The alphabet never
// contains Epsilon.
type DFA struct {
	states   []State
	index    map[State]int
	alphabet *Alphabet
	start    State
	finals   *bitset.BitSet
	trans    map[State]map[Symbol]State
}

func NewDFA(states []State, alphabet *Alphabet, start State, finals []State,
	transitions map[State]map[Symbol]State) (*DFA, error) {

	if len(states) == 0 {
		return nil, fmt.Errorf("%w: empty state set", ErrMalformedDescription)
	}
	if alphabet.Contains(Epsilon) {
		return nil, fmt.Errorf("%w: DFA alphabet may not contain epsilon", ErrMalformedDescription)
	}

	d := &DFA{
		states:   make([]State, 0, len(states)),
		index:    make(map[State]int, len(states)),
		alphabet: NewAlphabet(alphabet.symbols...),
		start:    start,
		finals:   bitset.New(uint(len(states))),
		trans:    make(map[State]map[Symbol]State, len(transitions)),
	}

	for _, s := range states {
		if _, ok := d.index[s]; ok {
			return nil, fmt.Errorf("%w: duplicate state %q", ErrMalformedDescription, s)
		}
		d.index[s] = len(d.states)
		d.states = append(d.states, s)
	}

	if _, ok := d.index[start]; !ok {
		return nil, fmt.Errorf("%w: start state %q not in state set", ErrMalformedDescription, start)
	}
	for _, f := range finals {
		i, ok := d.index[f]
		if !ok {
			return nil, fmt.Errorf("%w: final state %q not in state set", ErrMalformedDescription, f)
		}
		d.finals.Set(uint(i))
	}

	for src, bySymbol := range transitions {
		if _, ok := d.index[src]; !ok {
			return nil, fmt.Errorf("%w: transition from unknown state %q", ErrMalformedDescription, src)
		}
		row := make(map[Symbol]State, len(bySymbol))
		for sym, dst := range bySymbol {
			if !d.alphabet.Contains(sym) {
				return nil, fmt.Errorf("%w: transition on symbol %q outside alphabet", ErrMalformedDescription, sym)
			}
			if _, ok := d.index[dst]; !ok {
				return nil, fmt.Errorf("%w: transition to unknown state %q", ErrMalformedDescription, dst)
			}
			row[sym] = dst
		}
		d.trans[src] = row
	}

	return d, nil
}

func (d *DFA) States() []State {
	out := make([]State, len(d.states))
	copy(out, d.states)
	return out
}

func (d *DFA) Alphabet() *Alphabet {
	return NewAlphabet(d.alphabet.symbols...)
}

func (d *DFA) Start() State {
	return d.start
}

func (d *DFA) Finals() []State {
	out := make([]State, 0, d.finals.Count())
	for i, ok := d.finals.NextSet(0); ok; i, ok = d.finals.NextSet(i + 1) {
		out = append(out, d.states[i])
	}
	return out
}

func (d *DFA) IsFinal(s State) bool {
	i, ok := d.index[s]
	return ok && d.finals.Test(uint(i))
}

// Step Performs one transition lookup. The second return is false if the
// transition is undefined.
func (d *DFA) Step(s State, sym Symbol) (State, bool) {
	row, ok := d.trans[s]
	if !ok {
		return "", false
	}
	dst, ok := row[sym]
	return dst, ok
}
