package automata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// toggle Two-state cycle over one private symbol, final in its start state.
func toggle(t *testing.T, name string, sym Symbol) *Element {
	t.Helper()
	e, err := NewElement(name,
		[]State{State(name + "0"), State(name + "1")},
		NewAlphabet(sym),
		State(name+"0"),
		[]State{State(name + "0")},
		map[State]map[Symbol]State{
			State(name + "0"): {sym: State(name + "1")},
			State(name + "1"): {sym: State(name + "0")},
		},
	)
	require.NoError(t, err)
	return e
}

func TestAsyncProduct(t *testing.T) {
	p := toggle(t, "p", "a")
	q := toggle(t, "q", "b")

	prod, err := AsyncProduct([]*Element{p, q})
	require.NoError(t, err)

	t.Run("shape", func(t *testing.T) {
		assert.Equal(t, "AsyncProduct", prod.Name())
		assert.Equal(t, State("(p0,q0)"), prod.Start())
		assert.Len(t, prod.States(), 4)
		assert.Equal(t, []Symbol{"a", "b"}, prod.Alphabet().Symbols())
	})

	t.Run("privateSymbolsStutterTheOtherMember", func(t *testing.T) {
		dst, ok := prod.Step("(p0,q0)", "a")
		require.True(t, ok)
		assert.Equal(t, State("(p1,q0)"), dst)

		dst, ok = prod.Step("(p1,q0)", "b")
		require.True(t, ok)
		assert.Equal(t, State("(p1,q1)"), dst)
	})

	t.Run("acceptsEvenCountsOfEachSymbol", func(t *testing.T) {
		count := func(w []Symbol, sym Symbol) int {
			n := 0
			for _, x := range w {
				if x == sym {
					n++
				}
			}
			return n
		}
		for _, w := range enumWords([]Symbol{"a", "b"}, 5) {
			want := count(w, "a")%2 == 0 && count(w, "b")%2 == 0
			assert.Equalf(t, want, Accepts(prod, w), "word %v", w)
		}
	})
}

func TestAsyncProductSynchronizesSharedSymbols(t *testing.T) {
	// Both members own "s"; p can move on it from its start, q cannot.
	p, err := NewElement("p",
		[]State{"p0", "p1"},
		NewAlphabet("a", "s"),
		"p0",
		[]State{"p1"},
		map[State]map[Symbol]State{
			"p0": {"a": "p0", "s": "p1"},
		},
	)
	require.NoError(t, err)

	q, err := NewElement("q",
		[]State{"q0", "q1"},
		NewAlphabet("b", "s"),
		"q0",
		[]State{"q1"},
		map[State]map[Symbol]State{
			"q0": {"b": "q1"},
			"q1": {"s": "q1"},
		},
	)
	require.NoError(t, err)

	prod, err := AsyncProduct([]*Element{p, q})
	require.NoError(t, err)

	t.Run("blockedUntilEveryOwnerCanMove", func(t *testing.T) {
		_, ok := prod.Step("(p0,q0)", "s")
		assert.False(t, ok)
	})

	t.Run("jointMoveWhenBothOwnersCan", func(t *testing.T) {
		dst, ok := prod.Step("(p0,q0)", "b")
		require.True(t, ok)
		require.Equal(t, State("(p0,q1)"), dst)

		dst, ok = prod.Step("(p0,q1)", "s")
		require.True(t, ok)
		assert.Equal(t, State("(p1,q1)"), dst)
	})

	t.Run("finalNeedsEveryComponentFinal", func(t *testing.T) {
		assert.False(t, prod.IsFinal("(p0,q1)"))
		assert.True(t, prod.IsFinal("(p1,q1)"))
	})
}

func TestAsyncProductErrors(t *testing.T) {
	p := toggle(t, "p", "a")

	t.Run("tooFewMembers", func(t *testing.T) {
		_, err := AsyncProduct(nil)
		assert.ErrorIs(t, err, ErrEmptyNetwork)

		_, err = AsyncProduct([]*Element{p})
		assert.ErrorIs(t, err, ErrEmptyNetwork)
	})

	t.Run("stateLimit", func(t *testing.T) {
		q := toggle(t, "q", "b")
		_, err := AsyncProduct([]*Element{p, q}, WithStateLimit(2))
		assert.ErrorIs(t, err, ErrTooComplex)
	})
}
