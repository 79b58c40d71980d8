package automata

import (
	"fmt"
	"strconv"
	"strings"
)

// Linear-constraint acceptor (APR-DSA): a deterministic acceptor over the
// alphabet of all 2^q bit vectors recognizing exactly the vector sequences
// whose weighted sums solve the linear equation (a, x) = b.

// bitVectorSymbol Renders one input vector as a bit string, coefficient 0
// first.
func bitVectorSymbol(v, q int) Symbol {
	var b strings.Builder
	for j := 0; j < q; j++ {
		if v&(1<<(q-1-j)) != 0 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return Symbol(b.String())
}

// LinearAcceptor Builds an acceptor for the linear integer equation
// a[0]·x0 + … + a[q-1]·x(q-1) = b over bit-vector sequences. States are the
// residual values still owed: the start state is b, the sole final state is
// 0 (if reachable), and from residual s the vector Z leads to (s − a·Z)/2
// iff the numerator is even; otherwise the transition is undefined.
// Termination for arbitrary coefficients is not guaranteed; the reachable
// residual set is bounded by the state limit and the construction fails
// with ErrTooComplex when it is crossed.
func LinearAcceptor(coeffs []int, target int, opts ...Option) (*Element, error) {
	q := len(coeffs)
	if q == 0 {
		return nil, fmt.Errorf("%w: no coefficients", ErrMalformedDescription)
	}
	o := newOptions(opts...)

	alphabet := NewAlphabet()
	vectors := make([][]int, 0, 1<<q)
	for v := 0; v < 1<<q; v++ {
		bits := make([]int, q)
		for j := 0; j < q; j++ {
			bits[j] = (v >> (q - 1 - j)) & 1
		}
		vectors = append(vectors, bits)
		alphabet.Add(bitVectorSymbol(v, q))
	}

	residualName := func(s int) State {
		return State(strconv.Itoa(s))
	}

	residuals := []int{target}
	seen := map[int]int{target: 0}
	states := []State{residualName(target)}
	transitions := make(map[State]map[Symbol]State)

	worklist := []int{0}
	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]
		s := residuals[cur]

		for v, bits := range vectors {
			dot := 0
			for j, c := range coeffs {
				dot += c * bits[j]
			}
			numerator := s - dot
			if numerator%2 != 0 {
				continue
			}
			j := numerator / 2

			num, ok := seen[j]
			if !ok {
				num = len(residuals)
				if num >= o.stateLimit {
					return nil, fmt.Errorf("linear acceptor: %w (limit %d)", ErrTooComplex, o.stateLimit)
				}
				seen[j] = num
				residuals = append(residuals, j)
				states = append(states, residualName(j))
				worklist = append(worklist, num)
			}

			src := states[cur]
			if transitions[src] == nil {
				transitions[src] = make(map[Symbol]State)
			}
			transitions[src][bitVectorSymbol(v, q)] = states[num]
		}
	}

	var finals []State
	if _, ok := seen[0]; ok {
		finals = append(finals, residualName(0))
	}

	return NewElement("APR-DSA", states, alphabet, residualName(target), finals, transitions)
}
