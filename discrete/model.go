// Package discrete implements exact inference for hidden Markov models with
// discrete states and a discrete observation alphabet.
package discrete

// Definition is the unvalidated, serializable form of a model.
type Definition struct {
	States       []string    `json:"states" yaml:"states"`
	Observations []string    `json:"observations" yaml:"observations"`
	Initial      []float64   `json:"initial" yaml:"initial"`
	Transition   [][]float64 `json:"transition" yaml:"transition"`
	Emission     [][]float64 `json:"emission" yaml:"emission"`
}

// Build validates the definition and returns the model.
func (d Definition) Build() (*Model, error) {
	return Build(d.States, d.Observations, d.Initial, d.Transition, d.Emission)
}

// Model holds the HMM parameters. It is immutable and safe for concurrent use.
type Model struct {
	states       *alphabet
	observations *alphabet
	initial      []float64   // [N]
	transition   [][]float64 // [N][N] from -> to
	emission     [][]float64 // [N][M] state -> symbol

	// log-space copies, computed once at Build
	logInitial    []float64
	logTransition [][]float64
	logEmission   [][]float64
}

// Build validates the tables against the state set and observation
// alphabet and returns an immutable model. Inputs are copied.
func Build(states, observations []string, initial []float64, transition, emission [][]float64) (*Model, error) {
	N, M := len(states), len(observations)
	if N == 0 {
		return nil, &ShapeError{Table: "states", Row: -1, Want: 1, Got: 0}
	}
	if M == 0 {
		return nil, &ShapeError{Table: "observations", Row: -1, Want: 1, Got: 0}
	}

	sa, err := newAlphabet("states", states)
	if err != nil {
		return nil, err
	}
	oa, err := newAlphabet("observations", observations)
	if err != nil {
		return nil, err
	}

	if len(initial) != N {
		return nil, &ShapeError{Table: "initial", Row: 0, Want: N, Got: len(initial)}
	}
	if err := checkMatrixShape("transition", transition, N, N); err != nil {
		return nil, err
	}
	if err := checkMatrixShape("emission", emission, N, M); err != nil {
		return nil, err
	}

	if err := checkStochastic("initial", 0, initial, Tolerance); err != nil {
		return nil, err
	}
	for i := range N {
		if err := checkStochastic("transition", i, transition[i], Tolerance); err != nil {
			return nil, err
		}
	}
	for i := range N {
		if err := checkStochastic("emission", i, emission[i], Tolerance); err != nil {
			return nil, err
		}
	}

	m := &Model{
		states:       sa,
		observations: oa,
		initial:      clamp(initial),
		transition:   make([][]float64, N),
		emission:     make([][]float64, N),
	}
	for i := range N {
		m.transition[i] = clamp(transition[i])
		m.emission[i] = clamp(emission[i])
	}
	m.logInitial = logRow(m.initial)
	m.logTransition = logTable(m.transition)
	m.logEmission = logTable(m.emission)
	return m, nil
}

func checkMatrixShape(table string, t [][]float64, rows, cols int) error {
	if len(t) != rows {
		return &ShapeError{Table: table, Row: -1, Want: rows, Got: len(t)}
	}
	for i, row := range t {
		if len(row) != cols {
			return &ShapeError{Table: table, Row: i, Want: cols, Got: len(row)}
		}
	}
	return nil
}

// NumStates returns N.
func (m *Model) NumStates() int {
	return m.states.Size()
}

// NumSymbols returns M.
func (m *Model) NumSymbols() int {
	return m.observations.Size()
}

// States returns the state labels in index order.
func (m *Model) States() []string {
	return m.states.Labels()
}

// Observations returns the alphabet symbols in index order.
func (m *Model) Observations() []string {
	return m.observations.Labels()
}

// StateLabel returns the label of state i.
func (m *Model) StateLabel(i int) string {
	return m.states.Label(i)
}

// Initial returns a copy of the initial distribution.
func (m *Model) Initial() []float64 {
	return copyRow(m.initial)
}

// Transition returns a copy of the transition matrix.
func (m *Model) Transition() [][]float64 {
	return copyTable(m.transition)
}

// Emission returns a copy of the emission matrix.
func (m *Model) Emission() [][]float64 {
	return copyTable(m.emission)
}

// Definition returns a serializable copy of the model.
func (m *Model) Definition() Definition {
	return Definition{
		States:       m.States(),
		Observations: m.Observations(),
		Initial:      m.Initial(),
		Transition:   m.Transition(),
		Emission:     m.Emission(),
	}
}

// Encode maps an observation sequence onto alphabet IDs.
func (m *Model) Encode(obs []string) ([]int, error) {
	if len(obs) == 0 {
		return nil, &EmptySequenceError{}
	}
	ids := make([]int, len(obs))
	for t, o := range obs {
		id := m.observations.Get(o)
		if id < 0 {
			return nil, &UnknownObservationError{Symbol: o, Position: t}
		}
		ids[t] = id
	}
	return ids, nil
}

func copyRow(row []float64) []float64 {
	out := make([]float64, len(row))
	copy(out, row)
	return out
}

func copyTable(t [][]float64) [][]float64 {
	out := make([][]float64, len(t))
	for i, row := range t {
		out[i] = copyRow(row)
	}
	return out
}
