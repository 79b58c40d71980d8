package automata

// Acceptor outputs used when a DFA is rebuilt as a two-output transducer.
const (
	RejectOutput Symbol = "0"
	AcceptOutput Symbol = "1"
)

// ToMealyAcceptor Rebuilds the DFA as a Mealy machine over the output
// alphabet {reject, accept}: a transition outputs accept iff it lands in a
// final state. The initial output is reject.
func (d *DFA) ToMealyAcceptor() *Mealy {
	outputs := NewAlphabet(RejectOutput, AcceptOutput)

	transitions := make(map[State]map[Symbol]MealyTransition, len(d.trans))
	for src, row := range d.trans {
		mrow := make(map[Symbol]MealyTransition, len(row))
		for sym, dst := range row {
			out := RejectOutput
			if d.IsFinal(dst) {
				out = AcceptOutput
			}
			mrow[sym] = MealyTransition{Next: dst, Output: out}
		}
		transitions[src] = mrow
	}

	m, _ := NewMealy(d.States(), d.Alphabet(), outputs, d.start, transitions, RejectOutput)
	return m
}

// ToMooreAcceptor Rebuilds the DFA as a Moore machine: a state is marked
// accept iff it is a DFA final state.
func (d *DFA) ToMooreAcceptor() *Moore {
	outputs := NewAlphabet(RejectOutput, AcceptOutput)

	marking := make(map[State]Symbol, len(d.states))
	for _, s := range d.states {
		if d.IsFinal(s) {
			marking[s] = AcceptOutput
		} else {
			marking[s] = RejectOutput
		}
	}

	transitions := make(map[State]map[Symbol]State, len(d.trans))
	for src, row := range d.trans {
		mrow := make(map[Symbol]State, len(row))
		for sym, dst := range row {
			mrow[sym] = dst
		}
		transitions[src] = mrow
	}

	mr, _ := NewMoore(d.States(), d.Alphabet(), outputs, d.start, transitions, marking)
	return mr
}

// pairState Canonical name of a (state, output) pair in the Mealy-to-Moore
// cross product.
func pairState(a State, y Symbol) State {
	return State(string(a) + "/" + string(y))
}

// MealyToMoore Converts a Mealy machine into an equivalent Moore machine
// over the full cross product A × Y: every (state, output) pair becomes a
// Moore state marked with its output component, whether or not it is
// reachable from the new start state (start, initial output). Dead pairs are
// left for minimization to discard, matching the pre-minimization state
// count callers observe.
func MealyToMoore(m *Mealy) *Moore {
	states := make([]State, 0, len(m.states)*m.outputs.Len())
	marking := make(map[State]Symbol, len(m.states)*m.outputs.Len())
	transitions := make(map[State]map[Symbol]State)

	for _, a := range m.states {
		for _, y := range m.outputs.symbols {
			p := pairState(a, y)
			states = append(states, p)
			marking[p] = y

			var row map[Symbol]State
			for _, x := range m.inputs.symbols {
				tr, ok := m.Step(a, x)
				if !ok {
					continue
				}
				if row == nil {
					row = make(map[Symbol]State)
				}
				row[x] = pairState(tr.Next, tr.Output)
			}
			if row != nil {
				transitions[p] = row
			}
		}
	}

	start := pairState(m.start, m.initialOutput)
	mr, _ := NewMoore(states, m.Inputs(), m.Outputs(), start, transitions, marking)
	return mr
}

// MooreToMealy Converts a Moore machine into an equivalent Mealy machine on
// the same state space: each transition emits the marking of its target.
// The initial output defaults to the first symbol of the output alphabet.
func MooreToMealy(mr *Moore) *Mealy {
	transitions := make(map[State]map[Symbol]MealyTransition, len(mr.trans))
	for _, a := range mr.states {
		var row map[Symbol]MealyTransition
		for _, x := range mr.inputs.symbols {
			dst, ok := mr.Step(a, x)
			if !ok {
				continue
			}
			if row == nil {
				row = make(map[Symbol]MealyTransition)
			}
			row[x] = MealyTransition{Next: dst, Output: mr.marking[dst]}
		}
		if row != nil {
			transitions[a] = row
		}
	}

	m, _ := NewMealy(mr.States(), mr.Inputs(), mr.Outputs(), mr.start, transitions, mr.outputs.symbols[0])
	return m
}
