package automata

import "strings"

// Acceptor Capability interface over everything that looks like a
// deterministic, possibly partial acceptor: DFAs, network elements and
// Moore machines (through Moore.Acceptor) all satisfy it. State elimination
// and the asynchronous product depend only on this shape.
type Acceptor interface {
	States() []State
	Alphabet() *Alphabet
	Start() State
	Step(s State, sym Symbol) (State, bool)
	IsFinal(s State) bool
}

var (
	_ Acceptor = (*DFA)(nil)
	_ Acceptor = (*Element)(nil)
)

// EmptyLanguage Regex text for the language with no words.
const EmptyLanguage = "∅"

// EmptyWord Regex text for the empty word. It appears in output only when
// the recognized language contains the empty word itself.
const EmptyWord = "ε"

// Fragment algebra over regex text. The empty string denotes the empty
// language; absorbing identities keep eliminated entries small.

func reUnion(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	case a == b:
		return a
	}
	return a + "|" + b
}

func reConcat(a, b string) string {
	if a == "" || b == "" {
		return ""
	}
	if a == EmptyWord {
		return b
	}
	if b == EmptyWord {
		return a
	}
	return wrapAlt(a) + wrapAlt(b)
}

func reStar(a string) string {
	if a == "" || a == EmptyWord {
		return EmptyWord
	}
	// (ε|x)* = x*
	a = strings.TrimPrefix(a, EmptyWord+"|")
	// x** = x*
	if len(a) > 1 && strings.HasSuffix(a, "*") && (len([]rune(a)) == 2 || isGroup(a[:len(a)-1])) {
		return a
	}
	if len([]rune(a)) == 1 {
		return a + "*"
	}
	return "(" + a + ")*"
}

// wrapAlt Parenthesizes top-level alternations before concatenation.
func wrapAlt(s string) string {
	depth := 0
	for _, ch := range s {
		switch ch {
		case '(':
			depth++
		case ')':
			depth--
		case '|':
			if depth == 0 {
				return "(" + s + ")"
			}
		}
	}
	return s
}

// isGroup Reports whether s is a single parenthesized group.
func isGroup(s string) bool {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return false
	}
	depth := 0
	for i, ch := range s {
		switch ch {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(s)-1 {
				return false
			}
		}
	}
	return depth == 0
}

// ToRegexp Extracts a regular expression for the language of an acceptor by
// state elimination: a dense matrix of regex fragments over all states plus
// a synthetic start and final is reduced one real state at a time with
//
//	R[i][j] := R[i][j] | R[i][k] (R[k][k])* R[k][j]
//
// States are eliminated in acceptor state order, which pins the literal
// output text; any order yields a regex for the same language. If the
// acceptor has no final states the empty-language regex is returned
// immediately.
func ToRegexp(a Acceptor) string {
	states := a.States()
	finals := make([]int, 0)
	for i, s := range states {
		if a.IsFinal(s) {
			finals = append(finals, i)
		}
	}
	if len(finals) == 0 {
		return EmptyLanguage
	}

	index := make(map[State]int, len(states))
	for i, s := range states {
		index[s] = i
	}

	// Real states 0..n-1, synthetic start n, synthetic final n+1.
	n := len(states)
	synStart, synFinal := n, n+1
	R := make([][]string, n+2)
	for i := range R {
		R[i] = make([]string, n+2)
	}

	for i, s := range states {
		R[i][i] = EmptyWord
		for _, sym := range a.Alphabet().symbols {
			if dst, ok := a.Step(s, sym); ok {
				j := index[dst]
				R[i][j] = reUnion(R[i][j], string(sym))
			}
		}
	}
	R[synStart][index[a.Start()]] = EmptyWord
	for _, f := range finals {
		R[f][synFinal] = EmptyWord
	}

	alive := make([]bool, n+2)
	for i := range alive {
		alive[i] = true
	}

	for k := 0; k < n; k++ {
		alive[k] = false
		loop := reStar(R[k][k])
		for i := 0; i < n+2; i++ {
			if !alive[i] || R[i][k] == "" {
				continue
			}
			through := reConcat(R[i][k], loop)
			for j := 0; j < n+2; j++ {
				if !alive[j] || R[k][j] == "" {
					continue
				}
				R[i][j] = reUnion(R[i][j], reConcat(through, R[k][j]))
			}
		}
	}

	if R[synStart][synFinal] == "" {
		return EmptyLanguage
	}
	return R[synStart][synFinal]
}
