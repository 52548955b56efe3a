package discrete

import (
	"math"
	"testing"
)

// weatherModel is the classic Rainy/Sunny example.
func weatherModel(t *testing.T) *Model {
	t.Helper()
	m, err := Build(
		[]string{"Rainy", "Sunny"},
		[]string{"Walk", "Shop", "Clean"},
		[]float64{0.6, 0.4},
		[][]float64{
			{0.7, 0.3},
			{0.4, 0.6},
		},
		[][]float64{
			{0.1, 0.4, 0.5},
			{0.6, 0.3, 0.1},
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// allSequences enumerates every sequence of length T over symbols.
func allSequences(symbols []string, T int) [][]string {
	if T == 0 {
		return [][]string{{}}
	}
	var out [][]string
	for _, prefix := range allSequences(symbols, T-1) {
		for _, s := range symbols {
			seq := make([]string, len(prefix), len(prefix)+1)
			copy(seq, prefix)
			out = append(out, append(seq, s))
		}
	}
	return out
}

// bruteForce scores every state path and returns the marginal probability
// and the best joint probability.
func bruteForce(m *Model, obs []string) (float64, float64) {
	ids, _ := m.Encode(obs)
	N := m.NumStates()
	T := len(ids)
	paths := [][]int{{}}
	for range T {
		var next [][]int
		for _, p := range paths {
			for s := range N {
				q := make([]int, len(p), len(p)+1)
				copy(q, p)
				next = append(next, append(q, s))
			}
		}
		paths = next
	}

	total, best := 0.0, 0.0
	for _, p := range paths {
		prob := jointProb(m, ids, p)
		total += prob
		best = math.Max(best, prob)
	}
	return total, best
}

// jointProb returns P(path, obs) for encoded observations.
func jointProb(m *Model, ids, path []int) float64 {
	prob := m.initial[path[0]] * m.emission[path[0]][ids[0]]
	for t := 1; t < len(ids); t++ {
		prob *= m.transition[path[t-1]][path[t]] * m.emission[path[t]][ids[t]]
	}
	return prob
}

func relErr(a, b float64) float64 {
	if a == b {
		return 0
	}
	return math.Abs(a-b) / math.Max(math.Abs(a), math.Abs(b))
}
