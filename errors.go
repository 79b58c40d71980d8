package automata

import "errors"

var (
	// ErrMalformedDescription reports a structurally invalid automaton or
	// regex input: a missing required section, an unparsable transition
	// line, a start state outside the state set, an operator with missing
	// operands. No partial automaton is ever returned alongside it.
	ErrMalformedDescription = errors.New("malformed description")

	// ErrEmptyNetwork reports an asynchronous product request with fewer
	// than two member automata.
	ErrEmptyNetwork = errors.New("automaton network needs at least two members")

	// ErrTooComplex reports a worklist construction whose state count
	// exceeded the caller-configured limit. See WithStateLimit.
	ErrTooComplex = errors.New("construction exceeded state limit")
)

// DefaultStateLimit bounds worklist constructions (subset construction,
// asynchronous product, linear-constraint synthesis) unless the caller
// overrides it. The theoretical state spaces are exponential or, for the
// constraint acceptor, a-priori unbounded, so every construction carries
// a cap.
const DefaultStateLimit = 1 << 20

type options struct {
	stateLimit int
}

// Option Configures a worklist construction.
type Option func(*options)

// WithStateLimit Caps the number of states a construction may discover
// before it gives up with ErrTooComplex.
func WithStateLimit(n int) Option {
	return func(o *options) {
		o.stateLimit = n
	}
}

func newOptions(opts ...Option) *options {
	o := &options{stateLimit: DefaultStateLimit}
	for _, fn := range opts {
		fn(o)
	}
	return o
}
