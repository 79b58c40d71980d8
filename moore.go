package automata

import "fmt"

// Moore Output-producing automaton where output depends only on the current
// state: the marking function assigns every state one output symbol. Like
// the Mealy machine, the transition function may be partial.
type Moore struct {
	states  []State
	index   map[State]int
	inputs  *Alphabet
	outputs *Alphabet
	start   State
	trans   map[State]map[Symbol]State
	marking map[State]Symbol
}

func NewMoore(states []State, inputs, outputs *Alphabet, start State,
	transitions map[State]map[Symbol]State, marking map[State]Symbol) (*Moore, error) {

	if len(states) == 0 {
		return nil, fmt.Errorf("%w: empty state set", ErrMalformedDescription)
	}
	if outputs.Len() == 0 {
		return nil, fmt.Errorf("%w: empty output alphabet", ErrMalformedDescription)
	}

	mr := &Moore{
		states:  make([]State, 0, len(states)),
		index:   make(map[State]int, len(states)),
		inputs:  NewAlphabet(inputs.symbols...),
		outputs: NewAlphabet(outputs.symbols...),
		start:   start,
		trans:   make(map[State]map[Symbol]State, len(transitions)),
		marking: make(map[State]Symbol, len(states)),
	}

	for _, s := range states {
		if _, ok := mr.index[s]; ok {
			return nil, fmt.Errorf("%w: duplicate state %q", ErrMalformedDescription, s)
		}
		mr.index[s] = len(mr.states)
		mr.states = append(mr.states, s)
	}
	if _, ok := mr.index[start]; !ok {
		return nil, fmt.Errorf("%w: start state %q not in state set", ErrMalformedDescription, start)
	}

	for s, y := range marking {
		if _, ok := mr.index[s]; !ok {
			return nil, fmt.Errorf("%w: marking of unknown state %q", ErrMalformedDescription, s)
		}
		if !mr.outputs.Contains(y) {
			return nil, fmt.Errorf("%w: marking %q outside output alphabet", ErrMalformedDescription, y)
		}
		mr.marking[s] = y
	}
	// States without an explicit marking default to the first output symbol.
	for _, s := range mr.states {
		if _, ok := mr.marking[s]; !ok {
			mr.marking[s] = mr.outputs.symbols[0]
		}
	}

	for src, bySymbol := range transitions {
		if _, ok := mr.index[src]; !ok {
			return nil, fmt.Errorf("%w: transition from unknown state %q", ErrMalformedDescription, src)
		}
		row := make(map[Symbol]State, len(bySymbol))
		for in, dst := range bySymbol {
			if !mr.inputs.Contains(in) {
				return nil, fmt.Errorf("%w: transition on input %q outside alphabet", ErrMalformedDescription, in)
			}
			if _, ok := mr.index[dst]; !ok {
				return nil, fmt.Errorf("%w: transition to unknown state %q", ErrMalformedDescription, dst)
			}
			row[in] = dst
		}
		mr.trans[src] = row
	}

	return mr, nil
}

func (mr *Moore) States() []State {
	out := make([]State, len(mr.states))
	copy(out, mr.states)
	return out
}

func (mr *Moore) Inputs() *Alphabet {
	return NewAlphabet(mr.inputs.symbols...)
}

func (mr *Moore) Outputs() *Alphabet {
	return NewAlphabet(mr.outputs.symbols...)
}

func (mr *Moore) Start() State {
	return mr.start
}

// Marking Returns the output symbol assigned to a state.
func (mr *Moore) Marking(s State) Symbol {
	return mr.marking[s]
}

// Step One transition lookup; false if undefined.
func (mr *Moore) Step(s State, in Symbol) (State, bool) {
	row, ok := mr.trans[s]
	if !ok {
		return "", false
	}
	dst, ok := row[in]
	return dst, ok
}

// Transduce Folds an input sequence from the start state and returns the
// markings of the successively entered states, which is the output sequence
// a Mealy-equivalent machine would emit. ok = false if a transition was
// undefined.
func (mr *Moore) Transduce(inputs []Symbol) ([]Symbol, bool) {
	outputs := make([]Symbol, 0, len(inputs))
	s := mr.start
	for _, in := range inputs {
		dst, ok := mr.Step(s, in)
		if !ok {
			return outputs, false
		}
		outputs = append(outputs, mr.marking[dst])
		s = dst
	}
	return outputs, true
}

// Acceptor Adapts the machine to the acceptor shape used by state
// elimination: a state is accepting iff its marking equals accept.
func (mr *Moore) Acceptor(accept Symbol) Acceptor {
	return &mooreAcceptor{mr: mr, accept: accept}
}

type mooreAcceptor struct {
	mr     *Moore
	accept Symbol
}

func (a *mooreAcceptor) States() []State     { return a.mr.States() }
func (a *mooreAcceptor) Alphabet() *Alphabet { return a.mr.Inputs() }
func (a *mooreAcceptor) Start() State        { return a.mr.Start() }
func (a *mooreAcceptor) IsFinal(s State) bool {
	return a.mr.marking[s] == a.accept
}
func (a *mooreAcceptor) Step(s State, in Symbol) (State, bool) {
	return a.mr.Step(s, in)
}
