package automata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDFAValidation(t *testing.T) {
	states := []State{"q0", "q1"}
	ab := NewAlphabet("a")

	tests := []struct {
		name  string
		build func() (*DFA, error)
	}{
		{
			name: "emptyStateSet",
			build: func() (*DFA, error) {
				return NewDFA(nil, ab, "q0", nil, nil)
			},
		},
		{
			name: "epsilonInAlphabet",
			build: func() (*DFA, error) {
				return NewDFA(states, NewAlphabet("a", Epsilon), "q0", nil, nil)
			},
		},
		{
			name: "duplicateState",
			build: func() (*DFA, error) {
				return NewDFA([]State{"q0", "q0"}, ab, "q0", nil, nil)
			},
		},
		{
			name: "unknownStartState",
			build: func() (*DFA, error) {
				return NewDFA(states, ab, "q9", nil, nil)
			},
		},
		{
			name: "unknownFinalState",
			build: func() (*DFA, error) {
				return NewDFA(states, ab, "q0", []State{"q9"}, nil)
			},
		},
		{
			name: "transitionOutsideAlphabet",
			build: func() (*DFA, error) {
				return NewDFA(states, ab, "q0", nil, map[State]map[Symbol]State{
					"q0": {"z": "q1"},
				})
			},
		},
		{
			name: "transitionToUnknownState",
			build: func() (*DFA, error) {
				return NewDFA(states, ab, "q0", nil, map[State]map[Symbol]State{
					"q0": {"a": "q9"},
				})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			assert.ErrorIs(t, err, ErrMalformedDescription)
		})
	}
}

func TestDFAPartialStep(t *testing.T) {
	d := endsInA(t)

	dst, ok := d.Step("q0", "a")
	require.True(t, ok)
	assert.Equal(t, State("q1"), dst)

	_, ok = d.Step("q0", "z")
	assert.False(t, ok)
	_, ok = d.Step("missing", "a")
	assert.False(t, ok)
}

func TestDFAAccessorsCopy(t *testing.T) {
	d := endsInA(t)

	got := d.States()
	got[0] = "mutated"
	assert.Equal(t, []State{"q0", "q1"}, d.States())

	ab := d.Alphabet()
	ab.Add("z")
	assert.False(t, d.Alphabet().Contains("z"))
}
