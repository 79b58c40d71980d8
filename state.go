package automata

// Symbol is an opaque token drawn from a finite alphabet.
type Symbol string

// Epsilon denotes the empty-string transition label. It may appear in an
// NFA alphabet but is never a member of a "real" alphabet exposed to
// consumers; determinization strips it.
const Epsilon Symbol = "epsilon"

// State is an opaque, comparable state identifier. Identity, not structure,
// defines state equality within one automaton; states are never mutated
// after creation.
type State string

// Alphabet Ordered set of symbols. Iteration follows insertion order so that
// constructions which walk the alphabet (subset construction, minimization
// signatures, asynchronous product) produce reproducible output.
type Alphabet struct {
	symbols []Symbol
	index   map[Symbol]int
}

func NewAlphabet(symbols ...Symbol) *Alphabet {
	ab := &Alphabet{index: make(map[Symbol]int, len(symbols))}
	for _, s := range symbols {
		ab.Add(s)
	}
	return ab
}

// Add Appends a symbol unless it is already present.
func (ab *Alphabet) Add(s Symbol) {
	if _, ok := ab.index[s]; ok {
		return
	}
	ab.index[s] = len(ab.symbols)
	ab.symbols = append(ab.symbols, s)
}

func (ab *Alphabet) Contains(s Symbol) bool {
	_, ok := ab.index[s]
	return ok
}

func (ab *Alphabet) Len() int {
	return len(ab.symbols)
}

// Symbols Returns the symbols in insertion order. The returned slice is a
// copy; callers may not reach the alphabet's internals through it.
func (ab *Alphabet) Symbols() []Symbol {
	out := make([]Symbol, len(ab.symbols))
	copy(out, ab.symbols)
	return out
}

// WithEpsilon Returns a new alphabet holding the same symbols plus Epsilon.
func (ab *Alphabet) WithEpsilon() *Alphabet {
	out := NewAlphabet(ab.symbols...)
	out.Add(Epsilon)
	return out
}

// WithoutEpsilon Returns a new alphabet holding the same symbols minus
// Epsilon. Symbol order is otherwise preserved.
func (ab *Alphabet) WithoutEpsilon() *Alphabet {
	out := NewAlphabet()
	for _, s := range ab.symbols {
		if s != Epsilon {
			out.Add(s)
		}
	}
	return out
}

// Union Returns a new alphabet with all symbols of ab followed by the
// symbols of other that ab lacks.
func (ab *Alphabet) Union(other *Alphabet) *Alphabet {
	out := NewAlphabet(ab.symbols...)
	for _, s := range other.symbols {
		out.Add(s)
	}
	return out
}
