package discrete

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SaveModel serializes the model to path. Files ending in .yaml or .yml are
// written as YAML, everything else as indented JSON.
func SaveModel(m *Model, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = MarshalModelYAML(m)
	} else {
		data, err = json.MarshalIndent(m.Definition(), "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadModel reads and validates a model file, choosing the format by extension.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if isYAML(path) {
		return UnmarshalModelYAML(data)
	}
	return UnmarshalModel(data)
}

// MarshalModel serializes the model to JSON bytes.
func MarshalModel(m *Model) ([]byte, error) {
	return json.Marshal(m.Definition())
}

// UnmarshalModel deserializes and validates a model from JSON bytes.
func UnmarshalModel(data []byte) (*Model, error) {
	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, err
	}
	return def.Build()
}

// MarshalModelYAML serializes the model to YAML bytes.
func MarshalModelYAML(m *Model) ([]byte, error) {
	return yaml.Marshal(m.Definition())
}

// UnmarshalModelYAML deserializes and validates a model from YAML bytes.
func UnmarshalModelYAML(data []byte) (*Model, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, err
	}
	return def.Build()
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
