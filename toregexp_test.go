package automata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRegexpChain(t *testing.T) {
	d, err := NewDFA(
		[]State{"q0", "q1", "q2"},
		NewAlphabet("a", "b"),
		"q0",
		[]State{"q2"},
		map[State]map[Symbol]State{
			"q0": {"a": "q1"},
			"q1": {"b": "q2"},
		},
	)
	require.NoError(t, err)

	assert.Equal(t, "ab", ToRegexp(d))
}

func TestToRegexpSelfLoop(t *testing.T) {
	d, err := NewDFA(
		[]State{"q0", "q1"},
		NewAlphabet("a", "b"),
		"q0",
		[]State{"q1"},
		map[State]map[Symbol]State{
			"q0": {"a": "q0", "b": "q1"},
		},
	)
	require.NoError(t, err)

	assert.Equal(t, "a*b", ToRegexp(d))
}

func TestToRegexpEmptyLanguage(t *testing.T) {
	d, err := NewDFA(
		[]State{"q0"},
		NewAlphabet("a"),
		"q0",
		nil,
		map[State]map[Symbol]State{
			"q0": {"a": "q0"},
		},
	)
	require.NoError(t, err)

	assert.Equal(t, EmptyLanguage, ToRegexp(d))
}

func TestToRegexpUnreachableFinal(t *testing.T) {
	d, err := NewDFA(
		[]State{"q0", "q1"},
		NewAlphabet("a"),
		"q0",
		[]State{"q1"},
		map[State]map[Symbol]State{
			"q0": {"a": "q0"},
		},
	)
	require.NoError(t, err)

	assert.Equal(t, EmptyLanguage, ToRegexp(d))
}

// TestToRegexpRoundTrip Extracts a regex from a synthesized DFA and checks
// that re-synthesizing the extracted text yields the same language.
func TestToRegexpRoundTrip(t *testing.T) {
	alphabet := NewAlphabet("a", "b")
	re, err := NewRegExp("(a|b)*ab", alphabet)
	require.NoError(t, err)

	dfa, err := re.ToDFA()
	require.NoError(t, err)

	text := ToRegexp(dfa)
	require.NotEqual(t, EmptyLanguage, text)
	require.False(t, strings.Contains(text, EmptyWord))

	back, err := NewRegExp(text, alphabet)
	require.NoError(t, err)
	backDFA, err := back.ToDFA()
	require.NoError(t, err)

	for _, w := range enumWords([]Symbol{"a", "b"}, 6) {
		assert.Equalf(t, Accepts(dfa, w), Accepts(backDFA, w), "word %v", w)
	}
}

func TestRegexFragmentAlgebra(t *testing.T) {
	t.Run("union", func(t *testing.T) {
		assert.Equal(t, "a", reUnion("", "a"))
		assert.Equal(t, "a", reUnion("a", ""))
		assert.Equal(t, "a", reUnion("a", "a"))
		assert.Equal(t, "a|b", reUnion("a", "b"))
	})

	t.Run("concat", func(t *testing.T) {
		assert.Equal(t, "", reConcat("", "a"))
		assert.Equal(t, "a", reConcat(EmptyWord, "a"))
		assert.Equal(t, "a", reConcat("a", EmptyWord))
		assert.Equal(t, "ab", reConcat("a", "b"))
		assert.Equal(t, "(a|b)c", reConcat("a|b", "c"))
	})

	t.Run("star", func(t *testing.T) {
		assert.Equal(t, EmptyWord, reStar(""))
		assert.Equal(t, EmptyWord, reStar(EmptyWord))
		assert.Equal(t, "a*", reStar("a"))
		assert.Equal(t, "a*", reStar(EmptyWord+"|a"))
		assert.Equal(t, "a*", reStar("a*"))
		assert.Equal(t, "(a|b)*", reStar("a|b"))
	})
}
