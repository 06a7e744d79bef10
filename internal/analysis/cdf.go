// Package analysis turns model predictions and raw measurements into
// error-magnitude distributions for plotting.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/user/position_corrector_go/internal/loader"
)

// CalculateCDF sorts the error magnitudes ascending and returns them
// together with the running cumulative sum normalized by the total sum:
// cdf[i] = (e1+...+ei) / (e1+...+en).
//
// Note: this is the cumulative share of total error contributed by errors
// up to each magnitude, not the rank-based i/n empirical distribution
// function. The weighting by error size is kept on purpose; do not
// replace it with the conventional form.
func CalculateCDF(errors []float64) (sorted, cdf []float64, err error) {
	if len(errors) == 0 {
		return nil, nil, fmt.Errorf("no error values to build a distribution from")
	}
	sorted = make([]float64, len(errors))
	copy(sorted, errors)
	sort.Float64s(sorted)

	total := floats.Sum(sorted)
	if total == 0 {
		return nil, nil, fmt.Errorf("total error sum is zero, distribution is undefined")
	}

	cdf = make([]float64, len(sorted))
	floats.CumSum(cdf, sorted)
	floats.Scale(1/total, cdf)
	return sorted, cdf, nil
}

// PredictionErrors returns the absolute per-coordinate differences
// between the model predictions and the dataset's expected columns,
// flattened to one magnitude per (record, coordinate) pair.
func PredictionErrors(predictions *mat.Dense, ds *loader.Dataset) []float64 {
	rows, cols := predictions.Dims()
	out := make([]float64, 0, rows*cols)
	for i := 0; i < rows && i < ds.Len(); i++ {
		r := ds.At(i)
		out = append(out,
			math.Abs(r.ExpectedX-predictions.At(i, 0)),
			math.Abs(r.ExpectedY-predictions.At(i, 1)))
	}
	return out
}

// MeasurementErrors returns the absolute differences between the
// dataset's raw input and expected columns, flattened. This is the
// uncorrected measurement error the models are compared against.
func MeasurementErrors(ds *loader.Dataset) []float64 {
	out := make([]float64, 0, 2*ds.Len())
	for i := 0; i < ds.Len(); i++ {
		r := ds.At(i)
		out = append(out,
			math.Abs(r.ExpectedX-r.InputX),
			math.Abs(r.ExpectedY-r.InputY))
	}
	return out
}
