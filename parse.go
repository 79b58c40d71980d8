package automata

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Textual description parsing for the three machine shapes the toolkit
// consumes. Machine descriptions carry STATES/INPUTS/OUTPUTS/START_STATE
// declarations and a TRANSITIONS block; Moore additionally takes a MARKING
// line (states without one are marked with the first output symbol).
// Network elements use the lower-case states/alphabet/initial/final/
// transitions sections, with values inline after the colon or on the
// following lines. '#' starts a comment; blank lines are skipped.

const (
	secStates      = "STATES:"
	secInputs      = "INPUTS:"
	secOutputs     = "OUTPUTS:"
	secStartState  = "START_STATE:"
	secMarking     = "MARKING:"
	secTransitions = "TRANSITIONS:"
)

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func descriptionLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read description: %w", err)
	}
	return lines, nil
}

type machineHeader struct {
	states  []State
	inputs  *Alphabet
	outputs *Alphabet
	start   State
	marking map[State]Symbol
	// transition lines, in file order
	moves []string
}

func parseMachineHeader(r io.Reader) (*machineHeader, error) {
	lines, err := descriptionLines(r)
	if err != nil {
		return nil, err
	}

	h := &machineHeader{
		inputs:  NewAlphabet(),
		outputs: NewAlphabet(),
		marking: make(map[State]Symbol),
	}

	inTransitions := false
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, secStates):
			inTransitions = false
			for _, s := range splitList(line[len(secStates):]) {
				h.states = append(h.states, State(s))
			}
		case strings.HasPrefix(line, secInputs):
			inTransitions = false
			for _, s := range splitList(line[len(secInputs):]) {
				h.inputs.Add(Symbol(s))
			}
		case strings.HasPrefix(line, secOutputs):
			inTransitions = false
			for _, s := range splitList(line[len(secOutputs):]) {
				h.outputs.Add(Symbol(s))
			}
		case strings.HasPrefix(line, secStartState):
			inTransitions = false
			h.start = State(strings.TrimSpace(line[len(secStartState):]))
		case strings.HasPrefix(line, secMarking):
			inTransitions = false
			for _, pair := range splitList(line[len(secMarking):]) {
				state, output, ok := strings.Cut(pair, ":")
				if !ok {
					return nil, fmt.Errorf("%w: marking entry %q", ErrMalformedDescription, pair)
				}
				h.marking[State(strings.TrimSpace(state))] = Symbol(strings.TrimSpace(output))
			}
		case strings.HasPrefix(line, secTransitions):
			inTransitions = true
		case inTransitions:
			h.moves = append(h.moves, line)
		default:
			return nil, fmt.Errorf("%w: unexpected line %q", ErrMalformedDescription, line)
		}
	}

	if len(h.states) == 0 {
		return nil, fmt.Errorf("%w: missing %s section", ErrMalformedDescription, secStates)
	}
	if h.outputs.Len() == 0 {
		return nil, fmt.Errorf("%w: missing or empty %s section", ErrMalformedDescription, secOutputs)
	}
	return h, nil
}

// parseMoveKey Splits "s_curr, x" off a transition line, returning the
// remainder after the colon.
func parseMoveKey(line string) (State, Symbol, string, error) {
	key, rest, ok := strings.Cut(line, ":")
	if !ok {
		return "", "", "", fmt.Errorf("%w: transition line %q", ErrMalformedDescription, line)
	}
	state, input, ok := strings.Cut(key, ",")
	if !ok {
		return "", "", "", fmt.Errorf("%w: transition key %q", ErrMalformedDescription, key)
	}
	return State(strings.TrimSpace(state)), Symbol(strings.TrimSpace(input)), strings.TrimSpace(rest), nil
}

// ParseMealy Reads a Mealy machine description. Transition lines have the
// form "s_curr, x: s_next/y_out". The initial output symbol is the first
// symbol of the output alphabet.
func ParseMealy(r io.Reader) (*Mealy, error) {
	h, err := parseMachineHeader(r)
	if err != nil {
		return nil, err
	}

	transitions := make(map[State]map[Symbol]MealyTransition)
	for _, line := range h.moves {
		src, input, rest, err := parseMoveKey(line)
		if err != nil {
			return nil, err
		}
		next, output, ok := strings.Cut(rest, "/")
		if !ok {
			return nil, fmt.Errorf("%w: transition result %q", ErrMalformedDescription, rest)
		}
		if transitions[src] == nil {
			transitions[src] = make(map[Symbol]MealyTransition)
		}
		transitions[src][input] = MealyTransition{
			Next:   State(strings.TrimSpace(next)),
			Output: Symbol(strings.TrimSpace(output)),
		}
	}

	return NewMealy(h.states, h.inputs, h.outputs, h.start, transitions, h.outputs.symbols[0])
}

// ParseMoore Reads a Moore machine description. Transition lines have the
// form "s_curr, x: s_next"; the MARKING section is optional.
func ParseMoore(r io.Reader) (*Moore, error) {
	h, err := parseMachineHeader(r)
	if err != nil {
		return nil, err
	}

	transitions := make(map[State]map[Symbol]State)
	for _, line := range h.moves {
		src, input, rest, err := parseMoveKey(line)
		if err != nil {
			return nil, err
		}
		if transitions[src] == nil {
			transitions[src] = make(map[Symbol]State)
		}
		transitions[src][input] = State(rest)
	}

	return NewMoore(h.states, h.inputs, h.outputs, h.start, transitions, h.marking)
}

// ParseElement Reads an automaton-network element description: sections
// states/alphabet/initial/final/transitions, values either inline after the
// colon or on following lines; transitions are "q_current, symbol, q_next".
func ParseElement(name string, r io.Reader) (*Element, error) {
	lines, err := descriptionLines(r)
	if err != nil {
		return nil, err
	}

	var states, finals []State
	var start State
	alphabet := NewAlphabet()
	transitions := make(map[State]map[Symbol]State)

	section := ""
	for _, raw := range lines {
		line := raw
		if key, rest, ok := strings.Cut(raw, ":"); ok {
			section = strings.TrimSpace(key)
			if line = strings.TrimSpace(rest); line == "" {
				continue
			}
		}

		switch section {
		case "states":
			for _, s := range splitList(line) {
				states = append(states, State(s))
			}
		case "alphabet":
			for _, s := range splitList(line) {
				alphabet.Add(Symbol(s))
			}
		case "initial":
			start = State(strings.TrimSpace(line))
		case "final":
			for _, s := range splitList(line) {
				finals = append(finals, State(s))
			}
		case "transitions":
			parts := splitList(line)
			if len(parts) != 3 {
				return nil, fmt.Errorf("%w: transition line %q", ErrMalformedDescription, line)
			}
			src := State(parts[0])
			if transitions[src] == nil {
				transitions[src] = make(map[Symbol]State)
			}
			transitions[src][Symbol(parts[1])] = State(parts[2])
		default:
			return nil, fmt.Errorf("%w: unexpected line %q", ErrMalformedDescription, line)
		}
	}

	return NewElement(name, states, alphabet, start, finals, transitions)
}
