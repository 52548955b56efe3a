// Package storage provides access to the model and observation sequences
// kept in a data folder.
//
//	<folder>/model.yaml (or model.yml, model.json)
//	<folder>/sequences/*.txt
package storage

import (
	"bufio"
	"crypto/md5"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/happyhackingspace/hmm/discrete"
)

// ModelNames are the model file names looked up, in order.
var ModelNames = []string{"model.yaml", "model.yml", "model.json"}

// Storage wraps the data folder.
type Storage struct {
	Folder string
}

// NewStorage creates a Storage for the given data folder.
func NewStorage(folder string) *Storage {
	return &Storage{Folder: folder}
}

// ModelPath returns the path of the first model file present in the folder.
func (s *Storage) ModelPath() (string, error) {
	for _, name := range ModelNames {
		path := filepath.Join(s.Folder, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no model file (%s) in %s", strings.Join(ModelNames, ", "), s.Folder)
}

// GetModel loads and validates the folder's model.
func (s *Storage) GetModel() (*discrete.Model, error) {
	path, err := s.ModelPath()
	if err != nil {
		return nil, err
	}
	m, err := discrete.LoadModel(path)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	return m, nil
}

// SequenceFiles returns the sequence files, sorted for deterministic ordering.
func (s *Storage) SequenceFiles() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(s.Folder, "sequences", "*.txt"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// IterSequences reads every sequence in the folder.
func (s *Storage) IterSequences(opts IterOptions) ([]Sequence, error) {
	files, err := s.SequenceFiles()
	if err != nil {
		return nil, fmt.Errorf("list sequences: %w", err)
	}

	seen := make(map[string]bool)
	var sequences []Sequence

	for _, path := range files {
		rel, err := filepath.Rel(s.Folder, path)
		if err != nil {
			rel = path
		}
		f, err := os.Open(path)
		if err != nil {
			slog.Warn("Cannot read sequence file", "path", rel, "error", err)
			continue
		}

		sc := bufio.NewScanner(f)
		sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		lineNo := 0
		for sc.Scan() {
			lineNo++
			seq, ok := ParseLine(sc.Text())
			if !ok {
				continue
			}
			seq.Source = rel
			seq.Line = lineNo

			if opts.AnnotatedOnly && !seq.Annotated {
				if opts.Verbose {
					slog.Debug("Skipping unannotated sequence", "source", rel, "line", lineNo)
				}
				continue
			}

			// Deduplication by observation hash, plus gold states when annotated
			if opts.DropDuplicates {
				hash := sequenceHash(seq)
				if seen[hash] {
					if opts.Verbose {
						slog.Debug("Skipping duplicate sequence", "source", rel, "line", lineNo)
					}
					continue
				}
				seen[hash] = true
			}

			sequences = append(sequences, seq)
		}
		err = sc.Err()
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("read sequences %s: %w", rel, err)
		}
	}

	return sequences, nil
}

// sequenceHash identifies a sequence by its symbols and, for annotated
// lines, its gold states.
func sequenceHash(seq Sequence) string {
	key := strings.Join(seq.Observations, "\x00")
	if seq.Annotated {
		key += "\x01" + strings.Join(seq.States, "\x00")
	}
	return fmt.Sprintf("%x", md5.Sum([]byte(key)))
}

// IterOptions controls sequence iteration behavior.
type IterOptions struct {
	DropDuplicates bool
	AnnotatedOnly  bool
	Verbose        bool
}

// DefaultIterOptions returns the default options for iterating sequences.
func DefaultIterOptions() IterOptions {
	return IterOptions{
		DropDuplicates: true,
	}
}
