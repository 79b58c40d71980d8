package automata

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Element One member of an automaton network: an acceptor with a partial
// deterministic transition function. Alphabets may overlap across members;
// shared symbols synchronize, private symbols stutter the other members.
type Element struct {
	name     string
	states   []State
	index    map[State]int
	alphabet *Alphabet
	start    State
	finals   *bitset.BitSet
	trans    map[State]map[Symbol]State
}

func NewElement(name string, states []State, alphabet *Alphabet, start State,
	finals []State, transitions map[State]map[Symbol]State) (*Element, error) {

	if len(states) == 0 {
		return nil, fmt.Errorf("%w: element %q has no states", ErrMalformedDescription, name)
	}

	e := &Element{
		name:     name,
		states:   make([]State, 0, len(states)),
		index:    make(map[State]int, len(states)),
		alphabet: NewAlphabet(alphabet.symbols...),
		start:    start,
		finals:   bitset.New(uint(len(states))),
		trans:    make(map[State]map[Symbol]State, len(transitions)),
	}

	for _, s := range states {
		if _, ok := e.index[s]; ok {
			return nil, fmt.Errorf("%w: duplicate state %q", ErrMalformedDescription, s)
		}
		e.index[s] = len(e.states)
		e.states = append(e.states, s)
	}
	if _, ok := e.index[start]; !ok {
		return nil, fmt.Errorf("%w: start state %q not in state set", ErrMalformedDescription, start)
	}
	for _, f := range finals {
		i, ok := e.index[f]
		if !ok {
			return nil, fmt.Errorf("%w: final state %q not in state set", ErrMalformedDescription, f)
		}
		e.finals.Set(uint(i))
	}

	for src, bySymbol := range transitions {
		if _, ok := e.index[src]; !ok {
			return nil, fmt.Errorf("%w: transition from unknown state %q", ErrMalformedDescription, src)
		}
		row := make(map[Symbol]State, len(bySymbol))
		for sym, dst := range bySymbol {
			if !e.alphabet.Contains(sym) {
				return nil, fmt.Errorf("%w: transition on symbol %q outside alphabet", ErrMalformedDescription, sym)
			}
			if _, ok := e.index[dst]; !ok {
				return nil, fmt.Errorf("%w: transition to unknown state %q", ErrMalformedDescription, dst)
			}
			row[sym] = dst
		}
		e.trans[src] = row
	}

	return e, nil
}

func (e *Element) Name() string {
	return e.name
}

func (e *Element) States() []State {
	out := make([]State, len(e.states))
	copy(out, e.states)
	return out
}

func (e *Element) Alphabet() *Alphabet {
	return NewAlphabet(e.alphabet.symbols...)
}

func (e *Element) Start() State {
	return e.start
}

func (e *Element) Finals() []State {
	out := make([]State, 0, e.finals.Count())
	for i, ok := e.finals.NextSet(0); ok; i, ok = e.finals.NextSet(i + 1) {
		out = append(out, e.states[i])
	}
	return out
}

func (e *Element) IsFinal(s State) bool {
	i, ok := e.index[s]
	return ok && e.finals.Test(uint(i))
}

func (e *Element) Step(s State, sym Symbol) (State, bool) {
	row, ok := e.trans[s]
	if !ok {
		return "", false
	}
	dst, ok := row[sym]
	return dst, ok
}

// tupleName Canonical joined-string rendering of a member-state tuple.
func tupleName(members []*Element, tuple []int) State {
	parts := make([]string, len(tuple))
	for i, idx := range tuple {
		parts[i] = string(members[i].states[idx])
	}
	return State("(" + strings.Join(parts, ",") + ")")
}

// AsyncProduct Builds the asynchronous (interleaved) product of an automaton
// network over the union of the member alphabets. From a reachable tuple and
// a symbol x, every member that has x in its alphabet must have a defined
// move on x, otherwise the combined transition is entirely absent, while
// members without x keep their component unchanged. A tuple is final iff
// every component is final in its member. Fewer than two members is
// rejected; more reachable tuples than the state limit fails with
// ErrTooComplex.
func AsyncProduct(members []*Element, opts ...Option) (*Element, error) {
	if len(members) < 2 {
		return nil, ErrEmptyNetwork
	}
	o := newOptions(opts...)

	full := NewAlphabet()
	for _, m := range members {
		full = full.Union(m.alphabet)
	}

	start := make([]int, len(members))
	for i, m := range members {
		start[i] = m.index[m.start]
	}

	// Interning table: member-index tuple -> product state number.
	seen := NewHashMap[int](WithCapacity(4))
	intern := func(tuple []int) *FrozenIntSet {
		return NewFrozenIntSet(tuple, hashInts(tuple))
	}

	startKey := intern(start)
	seen.Set(startKey, 0)

	tuples := [][]int{start}
	states := []State{tupleName(members, start)}
	transitions := make(map[State]map[Symbol]State)

	worklist := []int{0}
	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]
		tuple := tuples[cur]

		for _, x := range full.symbols {
			next := make([]int, len(tuple))
			valid := true
			for i, m := range members {
				if !m.alphabet.Contains(x) {
					next[i] = tuple[i]
					continue
				}
				dst, ok := m.Step(m.states[tuple[i]], x)
				if !ok {
					valid = false
					break
				}
				next[i] = m.index[dst]
			}
			if !valid {
				continue
			}

			key := intern(next)
			num, ok := seen.Get(key)
			if !ok {
				num = len(tuples)
				if num >= o.stateLimit {
					return nil, fmt.Errorf("async product: %w (limit %d)", ErrTooComplex, o.stateLimit)
				}
				seen.Set(key, num)
				tuples = append(tuples, next)
				states = append(states, tupleName(members, next))
				worklist = append(worklist, num)
			}

			src := states[cur]
			if transitions[src] == nil {
				transitions[src] = make(map[Symbol]State)
			}
			transitions[src][x] = states[num]
		}
	}

	var finals []State
	for i, tuple := range tuples {
		allFinal := true
		for j, m := range members {
			if !m.finals.Test(uint(tuple[j])) {
				allFinal = false
				break
			}
		}
		if allFinal {
			finals = append(finals, states[i])
		}
	}

	return NewElement("AsyncProduct", states, full, states[0], finals, transitions)
}
