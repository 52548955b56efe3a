// Package hmm answers likelihood and decoding queries against a discrete
// hidden Markov model loaded from a model file.
//
//	d, _ := hmm.Load("model.yaml")
//	f, _ := d.Forward([]string{"Walk", "Shop", "Clean"}, discrete.Log)
//	fmt.Println(f.Probability) // 0.033612
//	v, _ := d.Viterbi([]string{"Walk", "Shop", "Clean"}, discrete.Log)
//	fmt.Println(v.Path)        // [Sunny Rainy Rainy]
package hmm

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/happyhackingspace/hmm/discrete"
	"github.com/happyhackingspace/hmm/internal/storage"
)

// Decoder wraps a validated model. It is safe for concurrent use.
type Decoder struct {
	model *discrete.Model
}

// LogProb is a log-probability that encodes -Inf as the JSON string "-Inf".
type LogProb float64

// MarshalJSON implements json.Marshaler.
func (l LogProb) MarshalJSON() ([]byte, error) {
	if math.IsInf(float64(l), -1) {
		return []byte(`"-Inf"`), nil
	}
	return json.Marshal(float64(l))
}

// ForwardResult holds the total probability of an observation sequence.
type ForwardResult struct {
	Probability    float64 `json:"probability"`
	LogProbability LogProb `json:"log_probability"`
	Scale          string  `json:"scale"`
}

// ViterbiResult holds the most probable state path.
type ViterbiResult struct {
	Path           []string `json:"path"`
	Probability    float64  `json:"probability"`
	LogProbability LogProb  `json:"log_probability"`
	Scale          string   `json:"scale"`
}

// PosteriorResult holds per-step state probabilities.
type PosteriorResult struct {
	States         []string             `json:"states"`
	Marginals      []map[string]float64 `json:"marginals"`
	LogProbability LogProb              `json:"log_probability"`
}

// New loads the model from "model.yaml", "model.yml" or "model.json",
// searching the current directory and parent directories up to the module
// root (where go.mod lives).
func New() (*Decoder, error) {
	path, err := findModel(storage.ModelNames)
	if err != nil {
		return nil, fmt.Errorf("hmm: %w", err)
	}
	return Load(path)
}

func findModel(names []string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
		// Stop at module root
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("model file not found")
}

// Load loads and validates a model file.
func Load(path string) (*Decoder, error) {
	m, err := discrete.LoadModel(path)
	if err != nil {
		return nil, fmt.Errorf("hmm: load %s: %w", path, err)
	}
	return &Decoder{model: m}, nil
}

// FromModel wraps an already built model.
func FromModel(m *discrete.Model) *Decoder {
	return &Decoder{model: m}
}

// Model returns the underlying model.
func (d *Decoder) Model() *discrete.Model {
	return d.model
}

// Save writes the model to a file; the extension selects YAML or JSON.
func (d *Decoder) Save(path string) error {
	if d.model == nil {
		return fmt.Errorf("hmm: decoder not initialized")
	}
	if err := discrete.SaveModel(d.model, path); err != nil {
		return fmt.Errorf("hmm: %w", err)
	}
	return nil
}

// Forward returns the probability of obs summed over all state paths.
func (d *Decoder) Forward(obs []string, scale discrete.Scale) (*ForwardResult, error) {
	if d.model == nil {
		return nil, fmt.Errorf("hmm: decoder not initialized")
	}
	res, err := discrete.Forward(d.model, obs, discrete.Config{Scale: scale})
	if err != nil {
		return nil, fmt.Errorf("hmm: %w", err)
	}
	return &ForwardResult{
		Probability:    res.Probability,
		LogProbability: LogProb(res.LogProbability),
		Scale:          res.Scale.String(),
	}, nil
}

// Viterbi returns the most probable state path for obs.
func (d *Decoder) Viterbi(obs []string, scale discrete.Scale) (*ViterbiResult, error) {
	if d.model == nil {
		return nil, fmt.Errorf("hmm: decoder not initialized")
	}
	p, err := discrete.Viterbi(d.model, obs, discrete.Config{Scale: scale})
	if err != nil {
		return nil, fmt.Errorf("hmm: %w", err)
	}
	return &ViterbiResult{
		Path:           p.States,
		Probability:    p.Probability,
		LogProbability: LogProb(p.LogProbability),
		Scale:          p.Scale.String(),
	}, nil
}

// Posterior returns the per-step state marginals for obs.
func (d *Decoder) Posterior(obs []string) (*PosteriorResult, error) {
	if d.model == nil {
		return nil, fmt.Errorf("hmm: decoder not initialized")
	}
	post, err := discrete.Posterior(d.model, obs)
	if err != nil {
		return nil, fmt.Errorf("hmm: %w", err)
	}
	return &PosteriorResult{
		States:         post.MostLikelyStates(),
		Marginals:      post.Labels(),
		LogProbability: LogProb(post.LogProbability),
	}, nil
}
