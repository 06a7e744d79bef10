package loader

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
)

// Columns is the fixed schema shared by every source file and both datasets.
var Columns = []string{"input_X", "input_Y", "expected_X", "expected_Y"}

// Record is a single position measurement: the raw reading and the
// ground-truth corrected position it should map to.
type Record struct {
	InputX    float64
	InputY    float64
	ExpectedX float64
	ExpectedY float64
}

// HasMissing reports whether any field of the record is NaN.
// NaN is the in-band marker for an empty CSV field.
func (r Record) HasMissing() bool {
	return math.IsNaN(r.InputX) || math.IsNaN(r.InputY) ||
		math.IsNaN(r.ExpectedX) || math.IsNaN(r.ExpectedY)
}

// Dataset is an ordered collection of measurement records. Order follows
// sorted-filename concatenation of the source files.
type Dataset struct {
	records []Record
}

// NewDataset builds a dataset from records, keeping their order.
func NewDataset(records []Record) *Dataset {
	return &Dataset{records: records}
}

func (d *Dataset) Len() int {
	return len(d.records)
}

func (d *Dataset) At(i int) Record {
	return d.records[i]
}

// Inputs returns the raw positional columns as a row-major flat slice,
// Len() rows of two values each.
func (d *Dataset) Inputs() []float64 {
	out := make([]float64, 0, 2*len(d.records))
	for _, r := range d.records {
		out = append(out, r.InputX, r.InputY)
	}
	return out
}

// Expected returns the corrected positional columns as a row-major flat
// slice, Len() rows of two values each.
func (d *Dataset) Expected() []float64 {
	out := make([]float64, 0, 2*len(d.records))
	for _, r := range d.records {
		out = append(out, r.ExpectedX, r.ExpectedY)
	}
	return out
}

// DropMissing returns a new dataset containing only the records with no
// NaN fields, preserving order.
func (d *Dataset) DropMissing() *Dataset {
	kept := make([]Record, 0, len(d.records))
	for _, r := range d.records {
		if !r.HasMissing() {
			kept = append(kept, r)
		}
	}
	return &Dataset{records: kept}
}

// WriteCSV writes the dataset to path with a header row, one record per
// line in the schema column order.
func (d *Dataset) WriteCSV(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(Columns); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", path, err)
	}
	for _, r := range d.records {
		row := []string{
			strconv.FormatFloat(r.InputX, 'g', -1, 64),
			strconv.FormatFloat(r.InputY, 'g', -1, 64),
			strconv.FormatFloat(r.ExpectedX, 'g', -1, 64),
			strconv.FormatFloat(r.ExpectedY, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row to %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}
