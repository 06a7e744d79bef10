package loader

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Config names the measurement source directories and the debug output
// files. Static directories feed the training set, dynamic directories
// the testing set; the i-th static directory is paired with the i-th
// dynamic directory.
type Config struct {
	StaticDirs  []string
	DynamicDirs []string
	TrainingOut string
	TestingOut  string
}

// DefaultConfig reproduces the measurement campaign layout: two rooms
// (f8, f10), each with a static and a dynamic capture directory.
func DefaultConfig() Config {
	return Config{
		StaticDirs:  []string{"./dane/f8/stat", "./dane/f10/stat"},
		DynamicDirs: []string{"./dane/f8/dyn", "./dane/f10/dyn"},
		TrainingOut: "training_data.csv",
		TestingOut:  "testing_data.csv",
	}
}

// LoadData reads every CSV file under the configured directories and
// builds the training dataset (static sources) and the testing dataset
// (dynamic sources). Within each directory files are visited in
// lexicographic filename order and concatenated in encounter order.
// Rows with missing values are dropped after concatenation, and both
// datasets are written out as debug CSVs.
func LoadData(cfg Config) (*Dataset, *Dataset, error) {
	if len(cfg.StaticDirs) != len(cfg.DynamicDirs) {
		return nil, nil, fmt.Errorf("mismatched source directories: %d static vs %d dynamic",
			len(cfg.StaticDirs), len(cfg.DynamicDirs))
	}

	var trainBatches, testBatches [][]Record
	for i := range cfg.StaticDirs {
		batches, err := readDir(cfg.StaticDirs[i])
		if err != nil {
			return nil, nil, err
		}
		trainBatches = append(trainBatches, batches...)

		batches, err = readDir(cfg.DynamicDirs[i])
		if err != nil {
			return nil, nil, err
		}
		testBatches = append(testBatches, batches...)
	}

	training := NewDataset(flatten(trainBatches)).DropMissing()
	testing := NewDataset(flatten(testBatches)).DropMissing()

	if cfg.TrainingOut != "" {
		if err := training.WriteCSV(cfg.TrainingOut); err != nil {
			return nil, nil, err
		}
	}
	if cfg.TestingOut != "" {
		if err := testing.WriteCSV(cfg.TestingOut); err != nil {
			return nil, nil, err
		}
	}
	return training, testing, nil
}

// readDir parses every .csv file in dir, sorted by filename, returning
// one record batch per file.
func readDir(dir string) ([][]Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read source directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	batches := make([][]Record, 0, len(names))
	for _, name := range names {
		batch, err := readFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		batches = append(batches, batch)
	}
	return batches, nil
}

// readFile parses one headerless four-column CSV file. Empty fields
// parse to NaN; any other malformed field or row shape is fatal.
func readFile(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = len(Columns)

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		vals := make([]float64, len(Columns))
		for j, field := range row {
			field = strings.TrimSpace(field)
			if field == "" {
				vals[j] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("failed to parse %s row %d column %s: %w",
					path, i+1, Columns[j], err)
			}
			vals[j] = v
		}
		records = append(records, Record{
			InputX:    vals[0],
			InputY:    vals[1],
			ExpectedX: vals[2],
			ExpectedY: vals[3],
		})
	}
	return records, nil
}

func flatten(batches [][]Record) []Record {
	n := 0
	for _, b := range batches {
		n += len(b)
	}
	out := make([]Record, 0, n)
	for _, b := range batches {
		out = append(out, b...)
	}
	return out
}
