package analysis

import (
	"math"
	"sort"
	"testing"

	"gonum.org/v1/gonum/mat"
	"gotest.tools/assert"

	"github.com/user/position_corrector_go/internal/loader"
)

func TestCalculateCDFIsShareOfTotal(t *testing.T) {
	sorted, cdf, err := CalculateCDF([]float64{3, 1})
	assert.NilError(t, err)
	assert.DeepEqual(t, sorted, []float64{1, 3})
	assert.DeepEqual(t, cdf, []float64{0.25, 1.0})
}

func TestCalculateCDFMonotoneAndNormalized(t *testing.T) {
	errs := []float64{0.7, 0.1, 2.5, 0.1, 1.2, 0.0, 3.3}
	sorted, cdf, err := CalculateCDF(errs)
	assert.NilError(t, err)
	assert.Equal(t, len(sorted), len(errs))
	assert.Equal(t, len(cdf), len(errs))
	assert.Assert(t, sort.Float64sAreSorted(sorted))
	for i := 1; i < len(cdf); i++ {
		assert.Assert(t, cdf[i] >= cdf[i-1])
	}
	assert.Assert(t, math.Abs(cdf[len(cdf)-1]-1.0) < 1e-12)
}

func TestCalculateCDFDoesNotMutateInput(t *testing.T) {
	errs := []float64{3, 1, 2}
	_, _, err := CalculateCDF(errs)
	assert.NilError(t, err)
	assert.DeepEqual(t, errs, []float64{3, 1, 2})
}

func TestCalculateCDFZeroTotal(t *testing.T) {
	_, _, err := CalculateCDF([]float64{0, 0, 0})
	assert.ErrorContains(t, err, "total error sum is zero")
}

func TestCalculateCDFEmptyInput(t *testing.T) {
	_, _, err := CalculateCDF(nil)
	assert.ErrorContains(t, err, "no error values")
}

func TestPredictionErrorsFlattensPerCoordinate(t *testing.T) {
	ds := loader.NewDataset([]loader.Record{
		{InputX: 0, InputY: 0, ExpectedX: 1, ExpectedY: 2},
		{InputX: 0, InputY: 0, ExpectedX: 3, ExpectedY: 4},
	})
	predictions := mat.NewDense(2, 2, []float64{1.5, 1.5, 2.0, 5.0})

	errs := PredictionErrors(predictions, ds)
	assert.DeepEqual(t, errs, []float64{0.5, 0.5, 1.0, 1.0})
}

func TestMeasurementErrors(t *testing.T) {
	ds := loader.NewDataset([]loader.Record{
		{InputX: 1, InputY: 4, ExpectedX: 3, ExpectedY: 2},
	})
	assert.DeepEqual(t, MeasurementErrors(ds), []float64{2, 2})
}
