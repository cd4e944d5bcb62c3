package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ademuri/spotify-eda/internal/table"
)

// Correlation computes the Pearson correlation between every pair of numeric
// columns of t, using the rows where both cells are present.
func Correlation(t *table.Table) Matrix {
	var cols []string
	for _, c := range t.Columns() {
		if t.Kind(c).Numeric() {
			cols = append(cols, c)
		}
	}
	if len(cols) < 2 {
		return Matrix{Columns: []string{}, Values: [][]float64{}}
	}

	data := make([][]any, len(cols))
	for i, c := range cols {
		data[i] = t.Column(c)
	}

	values := make([][]float64, len(cols))
	for i := range values {
		values[i] = make([]float64, len(cols))
	}
	for i := range cols {
		for j := i; j < len(cols); j++ {
			r := pairCorrelation(data[i], data[j])
			values[i][j] = r
			values[j][i] = r
		}
	}
	return Matrix{Columns: cols, Values: values}
}

func pairCorrelation(a, b []any) float64 {
	var x, y []float64
	for k := range a {
		xv, xok := table.ToFloat(a[k])
		yv, yok := table.ToFloat(b[k])
		if xok && yok {
			x = append(x, xv)
			y = append(y, yv)
		}
	}
	if len(x) < 2 {
		return math.NaN()
	}
	r := stat.Correlation(x, y, nil)
	if math.IsInf(r, 0) {
		return math.NaN()
	}
	return r
}
