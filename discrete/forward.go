package discrete

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// LikelihoodResult holds the output of the forward algorithm.
type LikelihoodResult struct {
	Probability    float64 // P(obs | model)
	LogProbability float64 // log P(obs | model), -Inf when impossible
	Scale          Scale
	// Alpha is the [T][N] forward lattice in Scale's domain.
	// Only set when Config.KeepLattice is true.
	Alpha [][]float64
}

// Forward computes the total probability of obs under the model,
// summing over every hidden state path.
func Forward(m *Model, obs []string, cfg Config) (*LikelihoodResult, error) {
	ids, err := m.Encode(obs)
	if err != nil {
		return nil, err
	}

	res := &LikelihoodResult{Scale: cfg.Scale}
	var alpha [][]float64
	switch cfg.Scale {
	case Linear:
		alpha = forwardLinear(m, ids)
		res.Probability = floats.Sum(alpha[len(ids)-1])
		res.LogProbability = SafeLog(res.Probability)
	default:
		res.Scale = Log
		alpha = forwardLog(m, ids)
		res.LogProbability = LogSumExp(alpha[len(ids)-1])
		res.Probability = math.Exp(res.LogProbability)
	}
	if cfg.KeepLattice {
		res.Alpha = alpha
	}
	return res, nil
}

// Likelihood returns P(obs | model) computed in log space.
func (m *Model) Likelihood(obs []string) (float64, error) {
	res, err := Forward(m, obs, DefaultConfig())
	if err != nil {
		return 0, err
	}
	return res.Probability, nil
}

func forwardLinear(m *Model, ids []int) [][]float64 {
	T := len(ids)
	N := m.NumStates()

	alpha := make([][]float64, T)

	// t = 0
	alpha[0] = make([]float64, N)
	for s := range N {
		alpha[0][s] = m.initial[s] * m.emission[s][ids[0]]
	}

	// t = 1..T-1
	for t := 1; t < T; t++ {
		alpha[t] = make([]float64, N)
		o := ids[t]
		for s := range N {
			var sum float64
			for i := range N {
				sum += alpha[t-1][i] * m.transition[i][s]
			}
			alpha[t][s] = sum * m.emission[s][o]
		}
	}
	return alpha
}

func forwardLog(m *Model, ids []int) [][]float64 {
	T := len(ids)
	N := m.NumStates()

	alpha := make([][]float64, T)
	terms := make([]float64, N)

	alpha[0] = make([]float64, N)
	for s := range N {
		alpha[0][s] = m.logInitial[s] + m.logEmission[s][ids[0]]
	}

	for t := 1; t < T; t++ {
		alpha[t] = make([]float64, N)
		o := ids[t]
		for s := range N {
			for i := range N {
				terms[i] = alpha[t-1][i] + m.logTransition[i][s]
			}
			alpha[t][s] = LogSumExp(terms) + m.logEmission[s][o]
		}
	}
	return alpha
}
