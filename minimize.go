package automata

import (
	"strconv"
	"strings"
)

// Partition refinement shared by both machine kinds. Classes and their
// members keep discovery order so representatives (each class's first
// member) are stable across runs.

type stepFunc func(s State, x Symbol) (State, bool)

// splitBySignature Splits every class by the per-input signature produced
// by sig, preserving first-seen order of sub-classes. Returns the new
// partition and whether any class split.
func splitBySignature(classes [][]State, sig func(s State) string) ([][]State, bool) {
	changed := false
	out := make([][]State, 0, len(classes))

	for _, cls := range classes {
		order := make([]string, 0, 1)
		groups := make(map[string][]State, 1)
		for _, s := range cls {
			key := sig(s)
			if _, ok := groups[key]; !ok {
				order = append(order, key)
			}
			groups[key] = append(groups[key], s)
		}
		if len(groups) > 1 {
			changed = true
		}
		for _, key := range order {
			out = append(out, groups[key])
		}
	}
	return out, changed
}

// refine Runs the table-filling fixpoint: repeatedly split classes by the
// classes their transitions target (sentinel for undefined) until no class
// splits in an iteration.
func refine(classes [][]State, inputs []Symbol, next stepFunc) [][]State {
	for {
		classOf := make(map[State]int)
		for id, cls := range classes {
			for _, s := range cls {
				classOf[s] = id
			}
		}

		split, changed := splitBySignature(classes, func(s State) string {
			var b strings.Builder
			for _, x := range inputs {
				if dst, ok := next(s, x); ok {
					b.WriteString(strconv.Itoa(classOf[dst]))
				} else {
					b.WriteByte('-')
				}
				b.WriteByte(',')
			}
			return b.String()
		})

		classes = split
		if !changed {
			return classes
		}
	}
}

// representatives Maps every state to its class's first-discovered member.
func representatives(classes [][]State) map[State]State {
	repr := make(map[State]State)
	for _, cls := range classes {
		for _, s := range cls {
			repr[s] = cls[0]
		}
	}
	return repr
}

// MinimizeMoore Collapses output- and transition-equivalent states of a
// Moore machine by fixpoint partition refinement. The initial partition
// groups states by marking; refinement splits on target classes. The result
// is a fresh machine over one representative per class; the input machine
// is left untouched.
func MinimizeMoore(mr *Moore) *Moore {
	initial, _ := splitBySignature([][]State{mr.States()}, func(s State) string {
		return string(mr.marking[s])
	})
	classes := refine(initial, mr.inputs.symbols, mr.Step)
	repr := representatives(classes)

	states := make([]State, 0, len(classes))
	marking := make(map[State]Symbol, len(classes))
	transitions := make(map[State]map[Symbol]State)
	for _, cls := range classes {
		r := cls[0]
		states = append(states, r)
		marking[r] = mr.marking[r]

		var row map[Symbol]State
		for _, x := range mr.inputs.symbols {
			dst, ok := mr.Step(r, x)
			if !ok {
				continue
			}
			if row == nil {
				row = make(map[Symbol]State)
			}
			row[x] = repr[dst]
		}
		if row != nil {
			transitions[r] = row
		}
	}

	out, _ := NewMoore(states, mr.Inputs(), mr.Outputs(), repr[mr.start], transitions, marking)
	return out
}

// MinimizeMealy Collapses equivalent states of a Mealy machine. The initial
// partition groups states by their per-input output vector (sentinel for
// undefined inputs); refinement then splits on target classes only, since
// outputs inside a class already agree.
func MinimizeMealy(m *Mealy) *Mealy {
	// Signatures join the output-alphabet index, not the symbol text, so a
	// separator inside a symbol cannot make two distinct vectors collide.
	initial, _ := splitBySignature([][]State{m.States()}, func(s State) string {
		var b strings.Builder
		for _, x := range m.inputs.symbols {
			if tr, ok := m.Step(s, x); ok {
				b.WriteString(strconv.Itoa(m.outputs.index[tr.Output]))
			} else {
				b.WriteByte('-')
			}
			b.WriteByte(',')
		}
		return b.String()
	})

	classes := refine(initial, m.inputs.symbols, func(s State, x Symbol) (State, bool) {
		tr, ok := m.Step(s, x)
		return tr.Next, ok
	})
	repr := representatives(classes)

	states := make([]State, 0, len(classes))
	transitions := make(map[State]map[Symbol]MealyTransition)
	for _, cls := range classes {
		r := cls[0]
		states = append(states, r)

		var row map[Symbol]MealyTransition
		for _, x := range m.inputs.symbols {
			tr, ok := m.Step(r, x)
			if !ok {
				continue
			}
			if row == nil {
				row = make(map[Symbol]MealyTransition)
			}
			row[x] = MealyTransition{Next: repr[tr.Next], Output: tr.Output}
		}
		if row != nil {
			transitions[r] = row
		}
	}

	out, _ := NewMealy(states, m.Inputs(), m.Outputs(), repr[m.start], transitions, m.initialOutput)
	return out
}
