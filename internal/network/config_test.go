package network

import (
	"testing"

	"gotest.tools/assert"
)

func TestParseOptimizer(t *testing.T) {
	kind, err := ParseOptimizer("adam")
	assert.NilError(t, err)
	assert.Equal(t, kind, OptimizerAdam)

	kind, err = ParseOptimizer("sgd")
	assert.NilError(t, err)
	assert.Equal(t, kind, OptimizerSGD)
}

func TestNewRejectsUnknownOptimizer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HiddenLayers = []int{8}
	cfg.Optimizer = "rmsprop"

	_, err := New(cfg)
	assert.ErrorContains(t, err, `optimizer must be "adam" or "sgd"`)
}

func TestNewRequiresHiddenLayers(t *testing.T) {
	cfg := DefaultConfig()

	_, err := New(cfg)
	assert.ErrorContains(t, err, "at least one hidden layer")

	cfg.HiddenLayers = []int{16, 0}
	_, err = New(cfg)
	assert.ErrorContains(t, err, "width 0")
}

func TestNewRejectsUnknownActivation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HiddenLayers = []int{8}
	cfg.Activation = "softplus"

	_, err := New(cfg)
	assert.ErrorContains(t, err, "unknown activation")
}

func TestNewRejectsUnknownInitializer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HiddenLayers = []int{8}
	cfg.WeightInit = "orthogonal"

	_, err := New(cfg)
	assert.ErrorContains(t, err, "unknown weight initializer")
}

func TestNewRejectsNonPositiveLearningRate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HiddenLayers = []int{8}
	cfg.LearningRate = 0

	_, err := New(cfg)
	assert.ErrorContains(t, err, "learning rate")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, cfg.Activation, "tanh")
	assert.Equal(t, cfg.OutputActivation, "linear")
	assert.Equal(t, cfg.WeightInit, "glorot_uniform")
	assert.Equal(t, cfg.Inputs, 2)
	assert.Equal(t, cfg.Outputs, 2)
	assert.Equal(t, cfg.Epochs, 100)
	assert.Equal(t, cfg.Optimizer, "adam")
	assert.Equal(t, cfg.Momentum, 0.9)
}
