package storage

import "strings"

// Sequence is one observation sequence read from a data folder.
type Sequence struct {
	Observations []string
	States       []string // gold states, nil unless Annotated
	Source       string   // file the sequence came from, relative to the folder
	Line         int      // 1-based line number in Source

	// Computed
	Annotated bool
}

// ParseLine parses a whitespace-separated line of "symbol" or
// "symbol/state" tokens. Blank lines and lines starting with '#' yield
// ok == false. A line is annotated only if every token carries a state.
func ParseLine(line string) (seq Sequence, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Sequence{}, false
	}

	tokens := strings.Fields(line)
	seq.Observations = make([]string, len(tokens))
	states := make([]string, len(tokens))
	annotated := true
	for i, tok := range tokens {
		idx := strings.LastIndex(tok, "/")
		if idx <= 0 || idx == len(tok)-1 {
			seq.Observations[i] = tok
			annotated = false
			continue
		}
		seq.Observations[i] = tok[:idx]
		states[i] = tok[idx+1:]
	}
	if annotated {
		seq.States = states
		seq.Annotated = true
	}
	return seq, true
}
