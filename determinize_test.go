package automata

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nfaAccepts Reference NFA simulation used to cross-check subset
// construction: track the closed state set symbol by symbol.
func nfaAccepts(n *NFA, word []Symbol) bool {
	current := n.EpsilonClosure([]State{n.Start()})
	for _, sym := range word {
		var moved []State
		for _, s := range current {
			moved = append(moved, n.Move(s, sym)...)
		}
		current = n.EpsilonClosure(moved)
		if len(current) == 0 {
			return false
		}
	}
	for _, s := range current {
		if n.IsFinal(s) {
			return true
		}
	}
	return false
}

// enumWords All words over symbols up to the given length, shortest first.
func enumWords(symbols []Symbol, maxLen int) [][]Symbol {
	words := [][]Symbol{{}}
	frontier := [][]Symbol{{}}
	for l := 0; l < maxLen; l++ {
		var next [][]Symbol
		for _, w := range frontier {
			for _, sym := range symbols {
				ext := append(append([]Symbol{}, w...), sym)
				next = append(next, ext)
				words = append(words, ext)
			}
		}
		frontier = next
	}
	return words
}

func TestDeterminize(t *testing.T) {
	// ab U a*: s0 -a-> s1 -b-> s2(final); s0 -eps-> s3; s3 -a-> s3(final)
	nfa, err := NewNFA(
		[]State{"s0", "s1", "s2", "s3"},
		NewAlphabet("a", "b", Epsilon),
		"s0",
		[]State{"s2", "s3"},
		map[State]map[Symbol][]State{
			"s0": {"a": {"s1"}, Epsilon: {"s3"}},
			"s1": {"b": {"s2"}},
			"s3": {"a": {"s3"}},
		},
	)
	require.NoError(t, err)

	dfa, err := Determinize(nfa)
	require.NoError(t, err)

	t.Run("alphabetDropsEpsilon", func(t *testing.T) {
		assert.Equal(t, []Symbol{"a", "b"}, dfa.Alphabet().Symbols())
	})

	t.Run("namesFollowDiscoveryOrder", func(t *testing.T) {
		assert.Equal(t, State("D0"), dfa.Start())
		for i, s := range dfa.States() {
			assert.Equal(t, State(fmt.Sprintf("D%d", i)), s)
		}
	})

	t.Run("languageMatchesNFA", func(t *testing.T) {
		for _, w := range enumWords([]Symbol{"a", "b"}, 6) {
			assert.Equalf(t, nfaAccepts(nfa, w), Accepts(dfa, w), "word %v", w)
		}
	})

	t.Run("inputLeftIntact", func(t *testing.T) {
		assert.Equal(t, []State{"s0", "s1", "s2", "s3"}, nfa.States())
		assert.Equal(t, []State{"s2", "s3"}, nfa.Finals())
	})

	t.Run("deterministicNaming", func(t *testing.T) {
		again, err := Determinize(nfa)
		require.NoError(t, err)
		assert.Equal(t, dfa.States(), again.States())
		assert.Equal(t, dfa.Finals(), again.Finals())
	})
}

func TestDeterminizeStateLimit(t *testing.T) {
	nfa, err := NewNFA(
		[]State{"s0", "s1", "s2"},
		NewAlphabet("a", "b"),
		"s0",
		[]State{"s2"},
		map[State]map[Symbol][]State{
			"s0": {"a": {"s0", "s1"}, "b": {"s0"}},
			"s1": {"a": {"s2"}, "b": {"s2"}},
		},
	)
	require.NoError(t, err)

	_, err = Determinize(nfa, WithStateLimit(1))
	assert.ErrorIs(t, err, ErrTooComplex)
}
