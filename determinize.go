package automata

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Determinize Converts an NFA into a DFA recognizing the same language by
// subset construction. DFA states are epsilon-closed sets of NFA states,
// interned to fresh canonical names in strict discovery order (D0, D1, …)
// so repeated runs produce identical output. A DFA state is final iff its
// underlying set intersects the NFA finals. Worst case the construction
// visits 2^|NFA states| sets; it fails with ErrTooComplex once the
// configured state limit is crossed.
func Determinize(n *NFA, opts ...Option) (*DFA, error) {
	o := newOptions(opts...)

	inputs := n.Alphabet().WithoutEpsilon()
	numNFAStates := len(n.states)

	startSet := bitset.New(uint(numNFAStates))
	startSet.Set(uint(n.index[n.start]))
	n.closure(startSet)

	// Interning table: frozen NFA-state set -> DFA state number.
	newState := NewHashMap[int](WithCapacity(4))
	scratch := NewStateSet()
	for i, ok := startSet.NextSet(0); ok; i, ok = startSet.NextSet(i + 1) {
		scratch.Add(int(i))
	}
	initial := scratch.Freeze()
	newState.Set(initial, 0)

	dfaStates := []State{"D0"}
	var dfaFinals []State
	transitions := make(map[State]map[Symbol]State)

	// FIFO worklist of not-yet-expanded DFA states.
	worklist := []*FrozenIntSet{initial}

	intersectsFinals := func(set *FrozenIntSet) bool {
		for _, i := range set.GetArray() {
			if n.finals.Test(uint(i)) {
				return true
			}
		}
		return false
	}
	if intersectsFinals(initial) {
		dfaFinals = append(dfaFinals, "D0")
	}

	targets := bitset.New(uint(numNFAStates))
	for len(worklist) > 0 {
		current := worklist[0]
		worklist = worklist[1:]

		num, _ := newState.Get(current)
		currentName := dfaStates[num]

		currentSet := bitset.New(uint(numNFAStates))
		for _, i := range current.GetArray() {
			currentSet.Set(uint(i))
		}

		for _, sym := range inputs.symbols {
			targets.ClearAll()
			n.moveIdx(currentSet, sym, targets)
			if targets.Count() == 0 {
				continue
			}
			n.closure(targets)

			scratch.Clear()
			for i, ok := targets.NextSet(0); ok; i, ok = targets.NextSet(i + 1) {
				scratch.Add(int(i))
			}
			next := scratch.Freeze()

			nextNum, seen := newState.Get(next)
			if !seen {
				nextNum = len(dfaStates)
				if nextNum >= o.stateLimit {
					return nil, fmt.Errorf("determinize: %w (limit %d)", ErrTooComplex, o.stateLimit)
				}
				name := State(fmt.Sprintf("D%d", nextNum))
				dfaStates = append(dfaStates, name)
				newState.Set(next, nextNum)
				worklist = append(worklist, next)
				if intersectsFinals(next) {
					dfaFinals = append(dfaFinals, name)
				}
			}

			if transitions[currentName] == nil {
				transitions[currentName] = make(map[Symbol]State)
			}
			transitions[currentName][sym] = dfaStates[nextNum]
		}
	}

	return NewDFA(dfaStates, inputs, "D0", dfaFinals, transitions)
}
