package automata

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleMealy Two-state transducer used throughout the conversion tests.
func sampleMealy(t *testing.T) *Mealy {
	t.Helper()
	m, err := NewMealy(
		[]State{"a0", "a1"},
		NewAlphabet("0", "1"),
		NewAlphabet("y0", "y1"),
		"a0",
		map[State]map[Symbol]MealyTransition{
			"a0": {
				"0": {Next: "a1", Output: "y0"},
				"1": {Next: "a0", Output: "y0"},
			},
			"a1": {
				"0": {Next: "a1", Output: "y1"},
				"1": {Next: "a0", Output: "y0"},
			},
		},
		"y0",
	)
	require.NoError(t, err)
	return m
}

func TestMealyToMoore(t *testing.T) {
	m := sampleMealy(t)
	mr := MealyToMoore(m)

	t.Run("fullCrossProduct", func(t *testing.T) {
		assert.Len(t, mr.States(), 4)
		assert.ElementsMatch(t,
			[]State{"a0/y0", "a0/y1", "a1/y0", "a1/y1"},
			mr.States())
	})

	t.Run("startCarriesInitialOutput", func(t *testing.T) {
		assert.Equal(t, State("a0/y0"), mr.Start())
	})

	t.Run("markingIsOutputComponent", func(t *testing.T) {
		assert.Equal(t, Symbol("y0"), mr.Marking("a0/y0"))
		assert.Equal(t, Symbol("y1"), mr.Marking("a1/y1"))
		assert.Equal(t, Symbol("y1"), mr.Marking("a0/y1"))
	})

	t.Run("sameTransduction", func(t *testing.T) {
		for _, w := range enumWords([]Symbol{"0", "1"}, 4) {
			want, wok := m.Transduce(w)
			got, gok := mr.Transduce(w)
			assert.Equal(t, wok, gok)
			assert.Emptyf(t, cmp.Diff(want, got), "inputs %v", w)
		}
	})
}

func TestMooreToMealy(t *testing.T) {
	mr := MealyToMoore(sampleMealy(t))
	back := MooreToMealy(mr)

	t.Run("sameStateSpace", func(t *testing.T) {
		assert.Equal(t, mr.States(), back.States())
		assert.Equal(t, mr.Start(), back.Start())
	})

	t.Run("outputIsTargetMarking", func(t *testing.T) {
		tr, ok := back.Step("a0/y0", "0")
		require.True(t, ok)
		assert.Equal(t, State("a1/y0"), tr.Next)
		assert.Equal(t, mr.Marking("a1/y0"), tr.Output)
	})

	t.Run("sameTransduction", func(t *testing.T) {
		for _, w := range enumWords([]Symbol{"0", "1"}, 4) {
			want, wok := mr.Transduce(w)
			got, gok := back.Transduce(w)
			assert.Equal(t, wok, gok)
			assert.Emptyf(t, cmp.Diff(want, got), "inputs %v", w)
		}
	})
}

func TestRoundTripKeepsBehavior(t *testing.T) {
	m := sampleMealy(t)

	t.Run("direct", func(t *testing.T) {
		back := MooreToMealy(MealyToMoore(m))
		for _, w := range enumWords([]Symbol{"0", "1"}, 4) {
			want, _ := m.Transduce(w)
			got, _ := back.Transduce(w)
			assert.Emptyf(t, cmp.Diff(want, got), "inputs %v", w)
		}
	})

	t.Run("throughMinimization", func(t *testing.T) {
		back := MooreToMealy(MinimizeMoore(MealyToMoore(m)))
		for _, w := range enumWords([]Symbol{"0", "1"}, 4) {
			want, _ := m.Transduce(w)
			got, _ := back.Transduce(w)
			assert.Emptyf(t, cmp.Diff(want, got), "inputs %v", w)
		}
	})
}

// endsInA DFA over {a, b} accepting every word that ends in a.
func endsInA(t *testing.T) *DFA {
	t.Helper()
	d, err := NewDFA(
		[]State{"q0", "q1"},
		NewAlphabet("a", "b"),
		"q0",
		[]State{"q1"},
		map[State]map[Symbol]State{
			"q0": {"a": "q1", "b": "q0"},
			"q1": {"a": "q1", "b": "q0"},
		},
	)
	require.NoError(t, err)
	return d
}

func TestDFAToMealyAcceptor(t *testing.T) {
	d := endsInA(t)
	m := d.ToMealyAcceptor()

	assert.Equal(t, []Symbol{RejectOutput, AcceptOutput}, m.Outputs().Symbols())
	assert.Equal(t, RejectOutput, m.InitialOutput())

	// The last emitted output is the acceptance verdict of the word read.
	for _, w := range enumWords([]Symbol{"a", "b"}, 5) {
		verdict := m.InitialOutput()
		if out, ok := m.Transduce(w); ok && len(out) > 0 {
			verdict = out[len(out)-1]
		}
		assert.Equalf(t, Accepts(d, w), verdict == AcceptOutput, "word %v", w)
	}
}

func TestDFAToMooreAcceptor(t *testing.T) {
	d := endsInA(t)
	mr := d.ToMooreAcceptor()

	assert.Equal(t, AcceptOutput, mr.Marking("q1"))
	assert.Equal(t, RejectOutput, mr.Marking("q0"))

	acc := mr.Acceptor(AcceptOutput)
	for _, w := range enumWords([]Symbol{"a", "b"}, 5) {
		assert.Equalf(t, Accepts(d, w), Accepts(acc, w), "word %v", w)
	}
}
