package discrete

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Path is the most probable hidden state sequence for an observation sequence.
type Path struct {
	States         []string // [T] state labels
	Indices        []int    // [T] state IDs
	Probability    float64  // joint P(path, obs | model)
	LogProbability float64
	Scale          Scale
}

// Viterbi finds the single most probable state path that produced obs.
//
// Ties between predecessors, and between final states, resolve to the
// lowest state index. When every candidate is impossible index 0 is chosen.
func Viterbi(m *Model, obs []string, cfg Config) (*Path, error) {
	ids, err := m.Encode(obs)
	if err != nil {
		return nil, err
	}

	var delta [][]float64
	var psi [][]int
	p := &Path{Scale: cfg.Scale}
	if cfg.Scale == Linear {
		delta, psi = viterbiLattice(m, ids, m.initial, m.transition, m.emission, mul)
	} else {
		p.Scale = Log
		delta, psi = viterbiLattice(m, ids, m.logInitial, m.logTransition, m.logEmission, add)
	}

	// Find best final state
	T := len(ids)
	last := floats.MaxIdx(delta[T-1])
	best := delta[T-1][last]
	if p.Scale == Linear {
		p.Probability = best
		p.LogProbability = SafeLog(best)
	} else {
		p.LogProbability = best
		p.Probability = math.Exp(best)
	}

	// Backtrack
	p.Indices = make([]int, T)
	p.Indices[T-1] = last
	for t := T - 2; t >= 0; t-- {
		p.Indices[t] = psi[t+1][p.Indices[t+1]]
	}
	p.States = make([]string, T)
	for t, id := range p.Indices {
		p.States[t] = m.states.Label(id)
	}
	return p, nil
}

// Decode returns the most probable state path computed in log space.
func (m *Model) Decode(obs []string) (*Path, error) {
	return Viterbi(m, obs, DefaultConfig())
}

func mul(a, b float64) float64 { return a * b }
func add(a, b float64) float64 { return a + b }

// viterbiLattice fills delta and psi over [T][N]. combine is * for
// probabilities and + for log-probabilities; max is the same in both.
func viterbiLattice(m *Model, ids []int, initial []float64, transition, emission [][]float64, combine func(a, b float64) float64) ([][]float64, [][]int) {
	T := len(ids)
	N := m.NumStates()

	// delta[t][s] = best score of a path ending in s at time t
	delta := make([][]float64, T)
	// psi[t][s] = best previous state for backtracking
	psi := make([][]int, T)

	// t = 0
	delta[0] = make([]float64, N)
	psi[0] = make([]int, N)
	for s := range N {
		delta[0][s] = combine(initial[s], emission[s][ids[0]])
		psi[0][s] = -1
	}

	// t = 1..T-1
	scores := make([]float64, N)
	for t := 1; t < T; t++ {
		delta[t] = make([]float64, N)
		psi[t] = make([]int, N)
		o := ids[t]
		for s := range N {
			for i := range N {
				scores[i] = combine(combine(delta[t-1][i], transition[i][s]), emission[s][o])
			}
			// MaxIdx keeps the first maximum, so ties go to the lowest index
			best := floats.MaxIdx(scores)
			delta[t][s] = scores[best]
			psi[t][s] = best
		}
	}
	return delta, psi
}
