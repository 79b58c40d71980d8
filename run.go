package automata

// Accepts Folds a symbol sequence through the acceptor's transition
// function. False as soon as a transition is undefined.
func Accepts(a Acceptor, word []Symbol) bool {
	state := a.Start()
	for _, sym := range word {
		next, ok := a.Step(state, sym)
		if !ok {
			return false
		}
		state = next
	}
	return a.IsFinal(state)
}

// Run Accepts for single-rune alphabets: each rune of s is one symbol.
func Run(a Acceptor, s string) bool {
	word := make([]Symbol, 0, len(s))
	for _, ch := range s {
		word = append(word, Symbol(string(ch)))
	}
	return Accepts(a, word)
}
