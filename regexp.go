package automata

import (
	"fmt"
	"strings"
)

// Regular expression engine: explicit-concatenation preprocessing, infix to
// postfix conversion (shunting-yard), and Thompson construction of an NFA.
// Operators are union '|', concatenation '.' (inserted, never written by
// callers), and Kleene star '*'; precedence star > concat > union.

const (
	opUnion  = '|'
	opConcat = '.'
	opStar   = '*'
)

var precedence = map[rune]int{
	opUnion:  1,
	opConcat: 2,
	opStar:   3,
}

// Preprocess Inserts the explicit concatenation operator between adjacent
// subexpressions: a literal, '*' or ')' followed by anything other than
// '|', '*' or ')' is concatenated with what follows.
func Preprocess(expr string) string {
	var b strings.Builder
	runes := []rune(expr)

	for i, ch := range runes {
		b.WriteRune(ch)
		if i+1 >= len(runes) {
			break
		}
		next := runes[i+1]

		concatAfter := ch != opUnion && ch != opConcat && ch != '('
		concatBefore := next != opUnion && next != opStar && next != ')'
		if concatAfter && concatBefore {
			b.WriteRune(opConcat)
		}
	}
	return b.String()
}

// ToPostfix Converts an infix expression to postfix by operator-precedence
// (shunting-yard) conversion; parentheses group, operators pop while the
// stack top's precedence is not lower.
func ToPostfix(expr string) string {
	var output strings.Builder
	var stack []rune

	for _, ch := range Preprocess(expr) {
		switch {
		case ch == '(':
			stack = append(stack, ch)
		case ch == ')':
			for len(stack) > 0 && stack[len(stack)-1] != '(' {
				output.WriteRune(stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		default:
			prec, isOp := precedence[ch]
			if !isOp {
				output.WriteRune(ch)
				continue
			}
			for len(stack) > 0 && stack[len(stack)-1] != '(' &&
				precedence[stack[len(stack)-1]] >= prec {
				output.WriteRune(stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, ch)
		}
	}

	for len(stack) > 0 {
		output.WriteRune(stack[len(stack)-1])
		stack = stack[:len(stack)-1]
	}
	return output.String()
}

// ThompsonBuilder Builds NFAs from postfix regular expressions by structural
// composition. The builder owns the fresh-state counter, so state names stay
// globally unique across every automaton built by the same instance; nothing
// is shared process-wide.
type ThompsonBuilder struct {
	alphabet    *Alphabet
	nextStateID int
}

func NewThompsonBuilder(alphabet *Alphabet) *ThompsonBuilder {
	return &ThompsonBuilder{alphabet: alphabet.WithoutEpsilon()}
}

// nfaAccum Accumulates states and transitions of one Build call. Fragments
// only carry start/finals; since every state is fresh, one shared table can
// hold all sub-automata.
type nfaAccum struct {
	states []State
	trans  map[State]map[Symbol][]State
}

type nfaFrag struct {
	start  State
	finals []State
}

func (b *ThompsonBuilder) newState(acc *nfaAccum) State {
	s := State(fmt.Sprintf("s%d", b.nextStateID))
	b.nextStateID++
	acc.states = append(acc.states, s)
	return s
}

func (acc *nfaAccum) add(src State, sym Symbol, dst ...State) {
	if acc.trans[src] == nil {
		acc.trans[src] = make(map[Symbol][]State)
	}
	acc.trans[src][sym] = append(acc.trans[src][sym], dst...)
}

func (b *ThompsonBuilder) atom(acc *nfaAccum, sym Symbol) nfaFrag {
	start := b.newState(acc)
	end := b.newState(acc)
	acc.add(start, sym, end)
	return nfaFrag{start: start, finals: []State{end}}
}

func (b *ThompsonBuilder) union(acc *nfaAccum, f1, f2 nfaFrag) nfaFrag {
	start := b.newState(acc)
	end := b.newState(acc)
	acc.add(start, Epsilon, f1.start, f2.start)
	for _, f := range f1.finals {
		acc.add(f, Epsilon, end)
	}
	for _, f := range f2.finals {
		acc.add(f, Epsilon, end)
	}
	return nfaFrag{start: start, finals: []State{end}}
}

func (b *ThompsonBuilder) concat(acc *nfaAccum, f1, f2 nfaFrag) nfaFrag {
	for _, f := range f1.finals {
		acc.add(f, Epsilon, f2.start)
	}
	return nfaFrag{start: f1.start, finals: f2.finals}
}

func (b *ThompsonBuilder) star(acc *nfaAccum, f nfaFrag) nfaFrag {
	start := b.newState(acc)
	end := b.newState(acc)
	acc.add(start, Epsilon, f.start, end)
	for _, fs := range f.finals {
		acc.add(fs, Epsilon, f.start, end)
	}
	return nfaFrag{start: start, finals: []State{end}}
}

// Build Evaluates a postfix token sequence with a fragment stack. An
// operator with missing operands, an unknown token, or leftover operands
// fail with ErrMalformedDescription; no partial automaton is returned.
func (b *ThompsonBuilder) Build(postfix string) (*NFA, error) {
	acc := &nfaAccum{trans: make(map[State]map[Symbol][]State)}
	var stack []nfaFrag

	pop := func() (nfaFrag, bool) {
		if len(stack) == 0 {
			return nfaFrag{}, false
		}
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return f, true
	}

	for _, ch := range postfix {
		switch ch {
		case opUnion, opConcat:
			f2, ok2 := pop()
			f1, ok1 := pop()
			if !ok1 || !ok2 {
				return nil, fmt.Errorf("%w: operator %q missing operand", ErrMalformedDescription, ch)
			}
			if ch == opUnion {
				stack = append(stack, b.union(acc, f1, f2))
			} else {
				stack = append(stack, b.concat(acc, f1, f2))
			}
		case opStar:
			f, ok := pop()
			if !ok {
				return nil, fmt.Errorf("%w: operator %q missing operand", ErrMalformedDescription, ch)
			}
			stack = append(stack, b.star(acc, f))
		default:
			sym := Symbol(string(ch))
			if !b.alphabet.Contains(sym) {
				return nil, fmt.Errorf("%w: symbol %q outside alphabet", ErrMalformedDescription, ch)
			}
			stack = append(stack, b.atom(acc, sym))
		}
	}

	if len(stack) != 1 {
		return nil, fmt.Errorf("%w: expression leaves %d operands", ErrMalformedDescription, len(stack))
	}

	frag := stack[0]
	return NewNFA(acc.states, b.alphabet.WithEpsilon(), frag.start, frag.finals, acc.trans)
}

// RegExp One regular expression over an explicit alphabet, with cached
// synthesis products. Conversions never mutate earlier results: the NFA and
// DFA are built once and shared read-only.
type RegExp struct {
	expr     string
	alphabet *Alphabet
	nfa      *NFA
	dfa      *DFA
}

// NewRegExp Validates that every non-operator token of expr is a single-rune
// member of the alphabet.
func NewRegExp(expr string, alphabet *Alphabet) (*RegExp, error) {
	terminals := alphabet.WithoutEpsilon()
	for _, sym := range terminals.symbols {
		if len([]rune(string(sym))) != 1 {
			return nil, fmt.Errorf("%w: regex alphabet symbol %q is not a single rune", ErrMalformedDescription, sym)
		}
	}
	for _, ch := range expr {
		if _, isOp := precedence[ch]; isOp || ch == '(' || ch == ')' {
			continue
		}
		if !terminals.Contains(Symbol(string(ch))) {
			return nil, fmt.Errorf("%w: symbol %q outside alphabet", ErrMalformedDescription, ch)
		}
	}
	return &RegExp{expr: expr, alphabet: terminals}, nil
}

func (r *RegExp) String() string {
	return r.expr
}

// ToNFA Thompson construction of the expression; cached.
func (r *RegExp) ToNFA() (*NFA, error) {
	if r.nfa != nil {
		return r.nfa, nil
	}
	builder := NewThompsonBuilder(r.alphabet)
	nfa, err := builder.Build(ToPostfix(r.expr))
	if err != nil {
		return nil, err
	}
	r.nfa = nfa
	return nfa, nil
}

// ToDFA Determinized form of the expression; cached.
func (r *RegExp) ToDFA(opts ...Option) (*DFA, error) {
	if r.dfa != nil {
		return r.dfa, nil
	}
	nfa, err := r.ToNFA()
	if err != nil {
		return nil, err
	}
	dfa, err := Determinize(nfa, opts...)
	if err != nil {
		return nil, err
	}
	r.dfa = dfa
	return dfa, nil
}

// ToMealy Synthesizes a Mealy acceptor for the expression.
func (r *RegExp) ToMealy(opts ...Option) (*Mealy, error) {
	dfa, err := r.ToDFA(opts...)
	if err != nil {
		return nil, err
	}
	return dfa.ToMealyAcceptor(), nil
}

// ToMoore Synthesizes a Moore acceptor for the expression.
func (r *RegExp) ToMoore(opts ...Option) (*Moore, error) {
	dfa, err := r.ToDFA(opts...)
	if err != nil {
		return nil, err
	}
	return dfa.ToMooreAcceptor(), nil
}
