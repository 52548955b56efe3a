package hmm

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/happyhackingspace/hmm/discrete"
	"github.com/happyhackingspace/hmm/internal/storage"
)

// EvalConfig holds configuration for evaluation.
type EvalConfig struct {
	Scale   discrete.Scale // Viterbi arithmetic; likelihood is always log-space
	Verbose bool
}

// SequenceResult holds the scores of one corpus sequence.
type SequenceResult struct {
	Source         string
	Line           int
	LogLikelihood  float64
	Path           []string
	PathLogProb    float64
	Correct        int // states matching the gold annotation
	Annotated      bool
	SkippedBecause error
}

// EvalResult holds corpus-level scores.
type EvalResult struct {
	Sequences    int // scored sequences
	Skipped      int // sequences with symbols outside the alphabet
	Impossible   int // sequences with zero probability under the model
	Observations int // symbols in scored, possible sequences

	TotalLogLikelihood     float64
	PerSymbolLogLikelihood float64
	Perplexity             float64

	StateAccuracy    float64
	SequenceAccuracy float64
	StateCorrect     int
	StateTotal       int
	SequenceCorrect  int
	SequenceTotal    int

	Results []SequenceResult
}

// Evaluate scores every sequence in the data folder against the folder's
// model: log-likelihood through the forward algorithm, and, for annotated
// sequences, accuracy of the Viterbi path against the gold states.
func Evaluate(dataDir string, config *EvalConfig) (*EvalResult, error) {
	scale := discrete.Log
	verbose := false
	if config != nil {
		scale = config.Scale
		verbose = config.Verbose
	}

	store := storage.NewStorage(dataDir)
	model, err := store.GetModel()
	if err != nil {
		return nil, fmt.Errorf("hmm: %w", err)
	}
	opts := storage.DefaultIterOptions()
	opts.Verbose = verbose
	sequences, err := store.IterSequences(opts)
	if err != nil {
		return nil, fmt.Errorf("hmm: %w", err)
	}
	if len(sequences) == 0 {
		return nil, fmt.Errorf("hmm: no sequences found in %s", dataDir)
	}

	// Likelihood is scored in log space; scale selects the Viterbi arithmetic.
	likelihoodCfg := discrete.DefaultConfig()
	cfg := discrete.Config{Scale: scale}
	result := &EvalResult{}

	for _, seq := range sequences {
		sr := SequenceResult{Source: seq.Source, Line: seq.Line, Annotated: seq.Annotated}

		fwd, err := discrete.Forward(model, seq.Observations, likelihoodCfg)
		if err != nil {
			var uoe *discrete.UnknownObservationError
			if !errors.As(err, &uoe) {
				return nil, fmt.Errorf("hmm: %s:%d: %w", seq.Source, seq.Line, err)
			}
			slog.Warn("Skipping sequence", "source", seq.Source, "line", seq.Line, "error", err)
			sr.SkippedBecause = err
			result.Skipped++
			result.Results = append(result.Results, sr)
			continue
		}
		path, err := discrete.Viterbi(model, seq.Observations, cfg)
		if err != nil {
			return nil, fmt.Errorf("hmm: %s:%d: %w", seq.Source, seq.Line, err)
		}
		sr.LogLikelihood = fwd.LogProbability
		sr.Path = path.States
		sr.PathLogProb = path.LogProbability
		result.Sequences++

		if math.IsInf(fwd.LogProbability, -1) {
			result.Impossible++
		} else {
			result.TotalLogLikelihood += fwd.LogProbability
			result.Observations += len(seq.Observations)
		}

		if seq.Annotated {
			allCorrect := true
			for j, gold := range seq.States {
				if path.States[j] == gold {
					sr.Correct++
					result.StateCorrect++
				} else {
					allCorrect = false
				}
				result.StateTotal++
			}
			if allCorrect {
				result.SequenceCorrect++
			}
			result.SequenceTotal++
		}

		if verbose {
			slog.Debug("Scored sequence", "source", seq.Source, "line", seq.Line,
				"log_likelihood", sr.LogLikelihood, "path", sr.Path)
		}
		result.Results = append(result.Results, sr)
	}

	if result.Observations > 0 {
		result.PerSymbolLogLikelihood = result.TotalLogLikelihood / float64(result.Observations)
		result.Perplexity = math.Exp(-result.PerSymbolLogLikelihood)
	}
	if result.StateTotal > 0 {
		result.StateAccuracy = float64(result.StateCorrect) / float64(result.StateTotal)
	}
	if result.SequenceTotal > 0 {
		result.SequenceAccuracy = float64(result.SequenceCorrect) / float64(result.SequenceTotal)
	}

	return result, nil
}
