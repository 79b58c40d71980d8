package automata

import "fmt"

// MealyTransition Target state and the output symbol emitted on the way.
type MealyTransition struct {
	Next   State
	Output Symbol
}

// Mealy Output-producing automaton where output is attached to transitions.
// The machine need not be total: a missing (state, input) entry is an
// undefined transition, not an error.
type Mealy struct {
	states        []State
	index         map[State]int
	inputs        *Alphabet
	outputs       *Alphabet
	start         State
	trans         map[State]map[Symbol]MealyTransition
	initialOutput Symbol
}

func NewMealy(states []State, inputs, outputs *Alphabet, start State,
	transitions map[State]map[Symbol]MealyTransition, initialOutput Symbol) (*Mealy, error) {

	if len(states) == 0 {
		return nil, fmt.Errorf("%w: empty state set", ErrMalformedDescription)
	}
	if outputs.Len() == 0 {
		return nil, fmt.Errorf("%w: empty output alphabet", ErrMalformedDescription)
	}
	if !outputs.Contains(initialOutput) {
		return nil, fmt.Errorf("%w: initial output %q outside output alphabet", ErrMalformedDescription, initialOutput)
	}

	m := &Mealy{
		states:        make([]State, 0, len(states)),
		index:         make(map[State]int, len(states)),
		inputs:        NewAlphabet(inputs.symbols...),
		outputs:       NewAlphabet(outputs.symbols...),
		start:         start,
		trans:         make(map[State]map[Symbol]MealyTransition, len(transitions)),
		initialOutput: initialOutput,
	}

	for _, s := range states {
		if _, ok := m.index[s]; ok {
			return nil, fmt.Errorf("%w: duplicate state %q", ErrMalformedDescription, s)
		}
		m.index[s] = len(m.states)
		m.states = append(m.states, s)
	}
	if _, ok := m.index[start]; !ok {
		return nil, fmt.Errorf("%w: start state %q not in state set", ErrMalformedDescription, start)
	}

	for src, bySymbol := range transitions {
		if _, ok := m.index[src]; !ok {
			return nil, fmt.Errorf("%w: transition from unknown state %q", ErrMalformedDescription, src)
		}
		row := make(map[Symbol]MealyTransition, len(bySymbol))
		for in, tr := range bySymbol {
			if !m.inputs.Contains(in) {
				return nil, fmt.Errorf("%w: transition on input %q outside alphabet", ErrMalformedDescription, in)
			}
			if _, ok := m.index[tr.Next]; !ok {
				return nil, fmt.Errorf("%w: transition to unknown state %q", ErrMalformedDescription, tr.Next)
			}
			if !m.outputs.Contains(tr.Output) {
				return nil, fmt.Errorf("%w: output %q outside output alphabet", ErrMalformedDescription, tr.Output)
			}
			row[in] = tr
		}
		m.trans[src] = row
	}

	return m, nil
}

func (m *Mealy) States() []State {
	out := make([]State, len(m.states))
	copy(out, m.states)
	return out
}

func (m *Mealy) Inputs() *Alphabet {
	return NewAlphabet(m.inputs.symbols...)
}

func (m *Mealy) Outputs() *Alphabet {
	return NewAlphabet(m.outputs.symbols...)
}

func (m *Mealy) Start() State {
	return m.start
}

func (m *Mealy) InitialOutput() Symbol {
	return m.initialOutput
}

// Step One transition lookup; false if undefined.
func (m *Mealy) Step(s State, in Symbol) (MealyTransition, bool) {
	row, ok := m.trans[s]
	if !ok {
		return MealyTransition{}, false
	}
	tr, ok := row[in]
	return tr, ok
}

// Transduce Folds an input sequence from the start state and returns the
// emitted output sequence. If a transition is undefined the outputs produced
// so far are returned with ok = false.
func (m *Mealy) Transduce(inputs []Symbol) ([]Symbol, bool) {
	outputs := make([]Symbol, 0, len(inputs))
	s := m.start
	for _, in := range inputs {
		tr, ok := m.Step(s, in)
		if !ok {
			return outputs, false
		}
		outputs = append(outputs, tr.Output)
		s = tr.Next
	}
	return outputs, true
}
