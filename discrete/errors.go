package discrete

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrShape              = errors.New("discrete: shape mismatch")
	ErrNotStochastic      = errors.New("discrete: table is not stochastic")
	ErrUnknownObservation = errors.New("discrete: unknown observation")
	ErrEmptySequence      = errors.New("discrete: empty observation sequence")
	ErrLabel              = errors.New("discrete: invalid label")
)

// ShapeError reports a table whose dimensions disagree with the state or
// observation count. Row is -1 when the row count itself is wrong.
type ShapeError struct {
	Table string
	Row   int
	Want  int
	Got   int
}

func (e *ShapeError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("discrete: %s has %d rows, want %d", e.Table, e.Got, e.Want)
	}
	return fmt.Sprintf("discrete: %s row %d has %d entries, want %d", e.Table, e.Row, e.Got, e.Want)
}

func (e *ShapeError) Is(target error) bool { return target == ErrShape }

// NotStochasticError reports a row with an out-of-range entry or a sum that
// is not 1 within tolerance. Column is -1 for sum violations.
type NotStochasticError struct {
	Table  string
	Row    int
	Column int
	Value  float64
	Sum    float64
}

func (e *NotStochasticError) Error() string {
	if e.Column >= 0 {
		return fmt.Sprintf("discrete: %s row %d column %d: entry %v outside [0,1]", e.Table, e.Row, e.Column, e.Value)
	}
	return fmt.Sprintf("discrete: %s row %d sums to %v, want 1", e.Table, e.Row, e.Sum)
}

func (e *NotStochasticError) Is(target error) bool { return target == ErrNotStochastic }

// UnknownObservationError reports a symbol that is not in the model's alphabet.
type UnknownObservationError struct {
	Symbol   string
	Position int
}

func (e *UnknownObservationError) Error() string {
	return fmt.Sprintf("discrete: unknown observation %q at position %d", e.Symbol, e.Position)
}

func (e *UnknownObservationError) Is(target error) bool { return target == ErrUnknownObservation }

// EmptySequenceError reports a zero-length observation sequence.
type EmptySequenceError struct{}

func (e *EmptySequenceError) Error() string {
	return "discrete: observation sequence is empty"
}

func (e *EmptySequenceError) Is(target error) bool { return target == ErrEmptySequence }

// LabelError reports an empty or duplicated state or observation label.
type LabelError struct {
	Table  string
	Index  int
	Label  string
	Reason string
	Other  int
}

func (e *LabelError) Error() string {
	if e.Reason == "duplicate of index" {
		return fmt.Sprintf("discrete: %s[%d] %q duplicates %s[%d]", e.Table, e.Index, e.Label, e.Table, e.Other)
	}
	return fmt.Sprintf("discrete: %s[%d]: %s", e.Table, e.Index, e.Reason)
}

func (e *LabelError) Is(target error) bool { return target == ErrLabel }
