package discrete

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Tolerance is the slack allowed on row sums and entry bounds at Build.
const Tolerance = 1e-6

// LogSumExp returns log(Σ exp(v)) without underflow.
// An empty slice or one holding only -Inf yields -Inf.
func LogSumExp(values []float64) float64 {
	if len(values) == 0 {
		return math.Inf(-1)
	}
	return floats.LogSumExp(values)
}

// SafeLog is math.Log with log(0) = -Inf made explicit.
func SafeLog(p float64) float64 {
	if p <= 0 {
		return math.Inf(-1)
	}
	return math.Log(p)
}

// logTable returns the element-wise SafeLog of a table.
func logTable(t [][]float64) [][]float64 {
	out := make([][]float64, len(t))
	for i, row := range t {
		out[i] = logRow(row)
	}
	return out
}

func logRow(row []float64) []float64 {
	out := make([]float64, len(row))
	for j, p := range row {
		out[j] = SafeLog(p)
	}
	return out
}

// checkStochastic verifies one probability row.
func checkStochastic(table string, row int, values []float64, tol float64) error {
	for j, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < -tol || v > 1+tol {
			return &NotStochasticError{Table: table, Row: row, Column: j, Value: v}
		}
	}
	sum := floats.Sum(values)
	if math.Abs(sum-1) > tol {
		return &NotStochasticError{Table: table, Row: row, Column: -1, Sum: sum}
	}
	return nil
}

// clamp pulls entries accepted within tolerance back into [0,1].
func clamp(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = math.Min(math.Max(v, 0), 1)
	}
	return out
}
