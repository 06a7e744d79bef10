package network

import (
	"fmt"

	"gorgonia.org/gorgonia"
)

// OptimizerKind is the closed set of supported optimizers. Unknown names
// are rejected when the model is constructed, not when training starts.
type OptimizerKind int

const (
	OptimizerAdam OptimizerKind = iota
	OptimizerSGD
)

func (k OptimizerKind) String() string {
	switch k {
	case OptimizerAdam:
		return "adam"
	case OptimizerSGD:
		return "sgd"
	}
	return fmt.Sprintf("OptimizerKind(%d)", int(k))
}

// ParseOptimizer maps an optimizer name onto the closed enumeration.
func ParseOptimizer(name string) (OptimizerKind, error) {
	switch name {
	case "adam":
		return OptimizerAdam, nil
	case "sgd":
		return OptimizerSGD, nil
	}
	return 0, fmt.Errorf("invalid configuration: optimizer must be \"adam\" or \"sgd\", got %q", name)
}

// Config holds the hyperparameters of one regressor variant. It is read
// once at construction; later mutation has no effect on a built model.
type Config struct {
	HiddenLayers     []int
	Activation       string
	OutputActivation string
	WeightInit       string
	Inputs           int
	Outputs          int
	Epochs           int
	LearningRate     float64
	Optimizer        string
	Momentum         float64
}

// DefaultConfig returns the base variant: tanh hidden layers, linear
// output, Glorot uniform init, 2-D in/out, 100 epochs of adam at 0.01.
// HiddenLayers is left for the caller to set.
func DefaultConfig() Config {
	return Config{
		Activation:       "tanh",
		OutputActivation: "linear",
		WeightInit:       "glorot_uniform",
		Inputs:           2,
		Outputs:          2,
		Epochs:           100,
		LearningRate:     0.01,
		Optimizer:        "adam",
		Momentum:         0.9,
	}
}

type activation func(*gorgonia.Node) (*gorgonia.Node, error)

func resolveActivation(name string) (activation, error) {
	switch name {
	case "tanh":
		return gorgonia.Tanh, nil
	case "sigmoid":
		return gorgonia.Sigmoid, nil
	case "relu":
		return gorgonia.Rectify, nil
	case "linear":
		return func(n *gorgonia.Node) (*gorgonia.Node, error) { return n, nil }, nil
	}
	return nil, fmt.Errorf("invalid configuration: unknown activation %q", name)
}

func resolveInit(name string) (gorgonia.InitWFn, error) {
	switch name {
	case "glorot_uniform":
		return gorgonia.GlorotU(1.0), nil
	case "glorot_normal":
		return gorgonia.GlorotN(1.0), nil
	case "uniform":
		return gorgonia.Uniform(-0.05, 0.05), nil
	case "normal":
		return gorgonia.Gaussian(0, 0.05), nil
	case "zeros":
		return gorgonia.Zeroes(), nil
	}
	return nil, fmt.Errorf("invalid configuration: unknown weight initializer %q", name)
}

func (c Config) validate() error {
	if len(c.HiddenLayers) == 0 {
		return fmt.Errorf("invalid configuration: at least one hidden layer width is required")
	}
	for i, w := range c.HiddenLayers {
		if w <= 0 {
			return fmt.Errorf("invalid configuration: hidden layer %d has width %d", i, w)
		}
	}
	if c.Inputs <= 0 || c.Outputs <= 0 {
		return fmt.Errorf("invalid configuration: input/output dimensions must be positive, got %d/%d",
			c.Inputs, c.Outputs)
	}
	if c.Epochs < 0 {
		return fmt.Errorf("invalid configuration: epochs must be non-negative, got %d", c.Epochs)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("invalid configuration: learning rate must be positive, got %g", c.LearningRate)
	}
	return nil
}
