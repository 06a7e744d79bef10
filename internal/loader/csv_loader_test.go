package loader

import (
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/assert"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	assert.NilError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func testConfig(t *testing.T) (Config, string, string) {
	t.Helper()
	static := t.TempDir()
	dynamic := t.TempDir()
	out := t.TempDir()
	cfg := Config{
		StaticDirs:  []string{static},
		DynamicDirs: []string{dynamic},
		TrainingOut: filepath.Join(out, "training_data.csv"),
		TestingOut:  filepath.Join(out, "testing_data.csv"),
	}
	return cfg, static, dynamic
}

func TestLoadDataDropsMissingRows(t *testing.T) {
	cfg, static, dynamic := testConfig(t)
	writeFile(t, static, "a.csv", "1,2,3,4\n5,6,7,\n")
	writeFile(t, dynamic, "a.csv", "1,2,3,4\n")

	training, testing, err := LoadData(cfg)
	assert.NilError(t, err)
	assert.Equal(t, training.Len(), 1)
	assert.Equal(t, testing.Len(), 1)
	assert.Equal(t, training.At(0), Record{InputX: 1, InputY: 2, ExpectedX: 3, ExpectedY: 4})
}

func TestLoadDataConcatenatesFilesInSortedOrder(t *testing.T) {
	cfg, static, dynamic := testConfig(t)
	// b.csv written first; a.csv must still come first in the dataset.
	writeFile(t, static, "b.csv", "40,40,40,40\n50,50,50,50\n")
	writeFile(t, static, "a.csv", "10,10,10,10\n20,20,20,20\n30,30,30,30\n")
	writeFile(t, dynamic, "a.csv", "1,2,3,4\n")

	training, _, err := LoadData(cfg)
	assert.NilError(t, err)
	assert.Equal(t, training.Len(), 5)
	want := []float64{10, 20, 30, 40, 50}
	for i, w := range want {
		assert.Equal(t, training.At(i).InputX, w)
	}
}

func TestLoadDataIgnoresNonCSVFiles(t *testing.T) {
	cfg, static, dynamic := testConfig(t)
	writeFile(t, static, "a.csv", "1,2,3,4\n")
	writeFile(t, static, "notes.txt", "not a measurement\n")
	writeFile(t, dynamic, "a.csv", "1,2,3,4\n")

	training, _, err := LoadData(cfg)
	assert.NilError(t, err)
	assert.Equal(t, training.Len(), 1)
}

func TestLoadDataWritesDebugCSVs(t *testing.T) {
	cfg, static, dynamic := testConfig(t)
	writeFile(t, static, "a.csv", "1,2,3,4\n")
	writeFile(t, dynamic, "a.csv", "5,6,7,8\n")

	_, _, err := LoadData(cfg)
	assert.NilError(t, err)

	data, err := os.ReadFile(cfg.TrainingOut)
	assert.NilError(t, err)
	assert.Equal(t, string(data), "input_X,input_Y,expected_X,expected_Y\n1,2,3,4\n")

	data, err = os.ReadFile(cfg.TestingOut)
	assert.NilError(t, err)
	assert.Equal(t, string(data), "input_X,input_Y,expected_X,expected_Y\n5,6,7,8\n")
}

func TestLoadDataRejectsWrongColumnCount(t *testing.T) {
	cfg, static, dynamic := testConfig(t)
	writeFile(t, static, "a.csv", "1,2,3\n")
	writeFile(t, dynamic, "a.csv", "1,2,3,4\n")

	_, _, err := LoadData(cfg)
	assert.ErrorContains(t, err, "failed to parse")
}

func TestLoadDataRejectsNonNumericField(t *testing.T) {
	cfg, static, dynamic := testConfig(t)
	writeFile(t, static, "a.csv", "1,2,oops,4\n")
	writeFile(t, dynamic, "a.csv", "1,2,3,4\n")

	_, _, err := LoadData(cfg)
	assert.ErrorContains(t, err, "expected_X")
}

func TestLoadDataMissingDirectoryIsFatal(t *testing.T) {
	cfg, _, dynamic := testConfig(t)
	cfg.StaticDirs = []string{filepath.Join(t.TempDir(), "nope")}
	writeFile(t, dynamic, "a.csv", "1,2,3,4\n")

	_, _, err := LoadData(cfg)
	assert.ErrorContains(t, err, "failed to read source directory")
}

func TestLoadDataMismatchedDirectoryPairs(t *testing.T) {
	cfg, _, _ := testConfig(t)
	cfg.DynamicDirs = nil

	_, _, err := LoadData(cfg)
	assert.ErrorContains(t, err, "mismatched source directories")
}

func TestDatasetInputsExpectedLayout(t *testing.T) {
	ds := NewDataset([]Record{
		{InputX: 1, InputY: 2, ExpectedX: 3, ExpectedY: 4},
		{InputX: 5, InputY: 6, ExpectedX: 7, ExpectedY: 8},
	})
	assert.DeepEqual(t, ds.Inputs(), []float64{1, 2, 5, 6})
	assert.DeepEqual(t, ds.Expected(), []float64{3, 4, 7, 8})
}
