package discrete

import "fmt"

// Scale selects the arithmetic domain of the lattice.
type Scale int

const (
	// Log keeps log-probabilities and does not underflow on long sequences.
	Log Scale = iota
	// Linear multiplies raw probabilities, as in the textbook recursions.
	Linear
)

func (s Scale) String() string {
	switch s {
	case Log:
		return "log"
	case Linear:
		return "linear"
	default:
		return fmt.Sprintf("Scale(%d)", int(s))
	}
}

// ParseScale parses "log" or "linear".
func ParseScale(s string) (Scale, error) {
	switch s {
	case "log", "":
		return Log, nil
	case "linear":
		return Linear, nil
	}
	return Log, fmt.Errorf("discrete: unknown scale %q (want log or linear)", s)
}

// Config holds per-call engine options.
type Config struct {
	Scale Scale
	// KeepLattice returns the forward lattice in the result.
	KeepLattice bool
}

// DefaultConfig returns the log-space configuration.
func DefaultConfig() Config {
	return Config{Scale: Log}
}
