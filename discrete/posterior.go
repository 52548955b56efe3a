package discrete

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// PosteriorResult holds per-step state marginals from forward-backward.
type PosteriorResult struct {
	LogProbability float64     // log P(obs | model)
	Marginals      [][]float64 // [T][N] P(state_t = s | obs)
	states         *alphabet
}

// Posterior runs forward-backward in log space and returns
// P(state_t = s | obs) for every step. If obs is impossible under the model
// the marginals are all zero and LogProbability is -Inf.
func Posterior(m *Model, obs []string) (*PosteriorResult, error) {
	ids, err := m.Encode(obs)
	if err != nil {
		return nil, err
	}
	T := len(ids)
	N := m.NumStates()

	res := &PosteriorResult{
		Marginals: make([][]float64, T),
		states:    m.states,
	}
	for t := range T {
		res.Marginals[t] = make([]float64, N)
	}

	alpha := forwardLog(m, ids)
	res.LogProbability = LogSumExp(alpha[T-1])
	if math.IsInf(res.LogProbability, -1) {
		return res, nil
	}
	beta := backwardLog(m, ids)

	for t := range T {
		for s := range N {
			res.Marginals[t][s] = math.Exp(alpha[t][s] + beta[t][s] - res.LogProbability)
		}
	}
	return res, nil
}

// backwardLog fills beta[t][s] = log P(obs[t+1:] | state_t = s).
func backwardLog(m *Model, ids []int) [][]float64 {
	T := len(ids)
	N := m.NumStates()

	beta := make([][]float64, T)
	beta[T-1] = make([]float64, N) // log 1
	terms := make([]float64, N)

	for t := T - 2; t >= 0; t-- {
		beta[t] = make([]float64, N)
		o := ids[t+1]
		for s := range N {
			for j := range N {
				terms[j] = m.logTransition[s][j] + m.logEmission[j][o] + beta[t+1][j]
			}
			beta[t][s] = LogSumExp(terms)
		}
	}
	return beta
}

// MostLikelyStates returns the individually most probable state at each
// step. Ties resolve to the lowest state index.
func (r *PosteriorResult) MostLikelyStates() []string {
	out := make([]string, len(r.Marginals))
	for t, row := range r.Marginals {
		out[t] = r.states.Label(floats.MaxIdx(row))
	}
	return out
}

// Labels returns per-step marginals keyed by state label.
func (r *PosteriorResult) Labels() []map[string]float64 {
	out := make([]map[string]float64, len(r.Marginals))
	for t, row := range r.Marginals {
		out[t] = make(map[string]float64, len(row))
		for s, p := range row {
			out[t][r.states.Label(s)] = p
		}
	}
	return out
}
