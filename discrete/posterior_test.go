package discrete

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPosteriorWeather(t *testing.T) {
	m := weatherModel(t)
	post, err := Posterior(m, []string{"Walk", "Shop", "Clean"})
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(post.LogProbability-math.Log(0.033612)) > 1e-9 {
		t.Errorf("LogProbability = %v, want %v", post.LogProbability, math.Log(0.033612))
	}

	want := [][]float64{
		{0.007788 / 0.033612, 0.025824 / 0.033612},
		{0.020976 / 0.033612, 0.012636 / 0.033612},
		{0.02904 / 0.033612, 0.004572 / 0.033612},
	}
	approx := cmp.Comparer(func(a, b float64) bool { return math.Abs(a-b) < 1e-9 })
	if diff := cmp.Diff(want, post.Marginals, approx); diff != "" {
		t.Errorf("marginals (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"Sunny", "Rainy", "Rainy"}, post.MostLikelyStates()); diff != "" {
		t.Errorf("MostLikelyStates (-want +got):\n%s", diff)
	}

	labels := post.Labels()
	if math.Abs(labels[2]["Rainy"]-want[2][0]) > 1e-9 {
		t.Errorf("Labels()[2][Rainy] = %v, want %v", labels[2]["Rainy"], want[2][0])
	}
}

func TestPosteriorMarginalsSumToOne(t *testing.T) {
	m := weatherModel(t)
	for _, seq := range allSequences(m.Observations(), 4) {
		post, err := Posterior(m, seq)
		if err != nil {
			t.Fatal(err)
		}
		for pos, row := range post.Marginals {
			sum := row[0] + row[1]
			if math.Abs(sum-1.0) > 1e-9 {
				t.Errorf("%v: marginals at pos=%d sum to %v, want 1.0", seq, pos, sum)
			}
		}
	}
}

func TestPosteriorImpossible(t *testing.T) {
	m, err := Build(
		[]string{"A", "B"},
		[]string{"x", "z"},
		[]float64{0.5, 0.5},
		[][]float64{{0.5, 0.5}, {0.5, 0.5}},
		[][]float64{{1, 0}, {1, 0}},
	)
	if err != nil {
		t.Fatal(err)
	}
	post, err := Posterior(m, []string{"x", "z"})
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(post.LogProbability, -1) {
		t.Errorf("LogProbability = %v, want -Inf", post.LogProbability)
	}
	for pos, row := range post.Marginals {
		for s, p := range row {
			if p != 0 {
				t.Errorf("marginal[%d][%d] = %v, want 0", pos, s, p)
			}
		}
	}
}

func TestPosteriorSubnormalLikelihood(t *testing.T) {
	// P(obs) = 1e-320 is subnormal but the sequence is possible.
	m, err := Build(
		[]string{"A", "B"},
		[]string{"x", "y"},
		[]float64{1, 0},
		[][]float64{{1, 1e-160}, {0, 1}},
		[][]float64{{1, 0}, {1, 1e-160}},
	)
	if err != nil {
		t.Fatal(err)
	}
	obs := []string{"x", "y"}

	fwd, err := Forward(m, obs, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	post, err := Posterior(m, obs)
	if err != nil {
		t.Fatal(err)
	}
	if math.IsInf(post.LogProbability, 0) || math.IsNaN(post.LogProbability) {
		t.Fatalf("LogProbability = %v, want finite", post.LogProbability)
	}
	if relErr(post.LogProbability, fwd.LogProbability) > 1e-9 {
		t.Errorf("posterior log P = %v, forward log P = %v", post.LogProbability, fwd.LogProbability)
	}

	want := [][]float64{{1, 0}, {0, 1}}
	approx := cmp.Comparer(func(a, b float64) bool { return math.Abs(a-b) < 1e-9 })
	if diff := cmp.Diff(want, post.Marginals, approx); diff != "" {
		t.Errorf("marginals (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"A", "B"}, post.MostLikelyStates()); diff != "" {
		t.Errorf("MostLikelyStates (-want +got):\n%s", diff)
	}
}

func TestPosteriorErrors(t *testing.T) {
	m := weatherModel(t)
	before := m.Definition()

	obs := []string{"Walk", "Shop", "Fly"}
	_, err := Posterior(m, obs)
	var uoe *UnknownObservationError
	if !errors.As(err, &uoe) {
		t.Fatalf("error = %v, want *UnknownObservationError", err)
	}
	if uoe.Symbol != "Fly" || uoe.Position != 2 {
		t.Errorf("got %q at %d, want Fly at 2", uoe.Symbol, uoe.Position)
	}
	if diff := cmp.Diff([]string{"Walk", "Shop", "Fly"}, obs); diff != "" {
		t.Errorf("observation slice mutated:\n%s", diff)
	}
	if diff := cmp.Diff(before, m.Definition()); diff != "" {
		t.Errorf("model mutated:\n%s", diff)
	}

	_, err = Posterior(m, nil)
	if !errors.Is(err, ErrEmptySequence) {
		t.Errorf("error = %v, want ErrEmptySequence", err)
	}
}
