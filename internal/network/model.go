package network

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gorgonia.org/gorgonia"
	"gorgonia.org/tensor"

	"github.com/user/position_corrector_go/internal/loader"
)

// Model is a dense feed-forward regressor over gorgonia: one hidden layer
// per configured width, each followed by the configured activation, and a
// linear (or otherwise configured) output layer. Lifecycle is
// New -> Train -> Test/Predict.
type Model struct {
	cfg       Config
	optimizer OptimizerKind
	hiddenAct activation
	outputAct activation
	weights   []*tensor.Dense // learned parameters, alternating W then b per layer
}

// New validates cfg and builds an untrained model with freshly
// initialized layer parameters. Invalid optimizer names, activations,
// initializers and layer widths are all rejected here, before any
// training runs.
func New(cfg Config) (*Model, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	opt, err := ParseOptimizer(cfg.Optimizer)
	if err != nil {
		return nil, err
	}
	hiddenAct, err := resolveActivation(cfg.Activation)
	if err != nil {
		return nil, err
	}
	outputAct, err := resolveActivation(cfg.OutputActivation)
	if err != nil {
		return nil, err
	}
	initFn, err := resolveInit(cfg.WeightInit)
	if err != nil {
		return nil, err
	}

	m := &Model{
		cfg:       cfg,
		optimizer: opt,
		hiddenAct: hiddenAct,
		outputAct: outputAct,
	}

	widths := append([]int{cfg.Inputs}, cfg.HiddenLayers...)
	widths = append(widths, cfg.Outputs)
	for i := 1; i < len(widths); i++ {
		in, out := widths[i-1], widths[i]
		backing := initFn(tensor.Float64, in, out)
		w := tensor.New(tensor.WithShape(in, out), tensor.WithBacking(backing))
		b := tensor.New(tensor.WithShape(1, out), tensor.WithBacking(make([]float64, out)))
		m.weights = append(m.weights, w, b)
	}
	return m, nil
}

// Config returns the hyperparameters the model was built with.
func (m *Model) Config() Config {
	return m.cfg
}

// graphParams binds the model's current parameters into g, returning the
// nodes in the same order as m.weights.
func (m *Model) graphParams(g *gorgonia.ExprGraph) gorgonia.Nodes {
	params := make(gorgonia.Nodes, 0, len(m.weights))
	for i, t := range m.weights {
		kind, layer := "w", i/2
		if i%2 == 1 {
			kind = "b"
		}
		params = append(params, gorgonia.NodeFromAny(g, t,
			gorgonia.WithName(fmt.Sprintf("%s%d", kind, layer))))
	}
	return params
}

// forward applies the dense layers in params to x.
func (m *Model) forward(x *gorgonia.Node, params gorgonia.Nodes) (*gorgonia.Node, error) {
	h := x
	layers := len(params) / 2
	for i := 0; i < layers; i++ {
		w, b := params[2*i], params[2*i+1]
		xw, err := gorgonia.Mul(h, w)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		pre, err := gorgonia.BroadcastAdd(xw, b, nil, []byte{0})
		if err != nil {
			return nil, fmt.Errorf("layer %d bias: %w", i, err)
		}
		act := m.hiddenAct
		if i == layers-1 {
			act = m.outputAct
		}
		if h, err = act(pre); err != nil {
			return nil, fmt.Errorf("layer %d activation: %w", i, err)
		}
	}
	return h, nil
}

func mseNode(pred, target *gorgonia.Node) (*gorgonia.Node, error) {
	diff, err := gorgonia.Sub(pred, target)
	if err != nil {
		return nil, err
	}
	sq, err := gorgonia.Square(diff)
	if err != nil {
		return nil, err
	}
	return gorgonia.Mean(sq)
}

func (m *Model) solver() gorgonia.Solver {
	switch m.optimizer {
	case OptimizerSGD:
		return gorgonia.NewMomentum(
			gorgonia.WithLearnRate(m.cfg.LearningRate),
			gorgonia.WithMomentum(m.cfg.Momentum))
	default:
		return gorgonia.NewAdamSolver(gorgonia.WithLearnRate(m.cfg.LearningRate))
	}
}

func inputTensor(ds *loader.Dataset, cols int, vals []float64) *tensor.Dense {
	return tensor.New(tensor.WithShape(ds.Len(), cols), tensor.WithBacking(vals))
}

// Train fits the model against the training dataset for the configured
// number of epochs, evaluating the validation dataset once per epoch
// through a second input head sharing the same weights. It mutates the
// model's parameters and returns the full per-epoch error history.
func (m *Model) Train(training, validation *loader.Dataset) (*History, error) {
	if training.Len() == 0 {
		return nil, fmt.Errorf("training dataset is empty")
	}
	if validation.Len() == 0 {
		return nil, fmt.Errorf("validation dataset is empty")
	}

	history := &History{}
	if m.cfg.Epochs == 0 {
		return history, nil
	}

	g := gorgonia.NewGraph()
	params := m.graphParams(g)

	x := gorgonia.NewMatrix(g, tensor.Float64,
		gorgonia.WithShape(training.Len(), m.cfg.Inputs), gorgonia.WithName("x"))
	y := gorgonia.NewMatrix(g, tensor.Float64,
		gorgonia.WithShape(training.Len(), m.cfg.Outputs), gorgonia.WithName("y"))
	xVal := gorgonia.NewMatrix(g, tensor.Float64,
		gorgonia.WithShape(validation.Len(), m.cfg.Inputs), gorgonia.WithName("xVal"))
	yVal := gorgonia.NewMatrix(g, tensor.Float64,
		gorgonia.WithShape(validation.Len(), m.cfg.Outputs), gorgonia.WithName("yVal"))

	pred, err := m.forward(x, params)
	if err != nil {
		return nil, err
	}
	loss, err := mseNode(pred, y)
	if err != nil {
		return nil, err
	}
	valPred, err := m.forward(xVal, params)
	if err != nil {
		return nil, err
	}
	valLoss, err := mseNode(valPred, yVal)
	if err != nil {
		return nil, err
	}

	var lossVal, valLossVal gorgonia.Value
	gorgonia.Read(loss, &lossVal)
	gorgonia.Read(valLoss, &valLossVal)

	if _, err := gorgonia.Grad(loss, params...); err != nil {
		return nil, fmt.Errorf("failed to build gradient: %w", err)
	}

	vm := gorgonia.NewTapeMachine(g, gorgonia.BindDualValues(params...))
	defer vm.Close()

	if err := gorgonia.Let(x, inputTensor(training, m.cfg.Inputs, training.Inputs())); err != nil {
		return nil, err
	}
	if err := gorgonia.Let(y, inputTensor(training, m.cfg.Outputs, training.Expected())); err != nil {
		return nil, err
	}
	if err := gorgonia.Let(xVal, inputTensor(validation, m.cfg.Inputs, validation.Inputs())); err != nil {
		return nil, err
	}
	if err := gorgonia.Let(yVal, inputTensor(validation, m.cfg.Outputs, validation.Expected())); err != nil {
		return nil, err
	}

	solver := m.solver()
	for epoch := 0; epoch < m.cfg.Epochs; epoch++ {
		if err := vm.RunAll(); err != nil {
			return nil, fmt.Errorf("epoch %d: %w", epoch, err)
		}
		if err := solver.Step(gorgonia.NodesToValueGrads(params)); err != nil {
			return nil, fmt.Errorf("epoch %d optimizer step: %w", epoch, err)
		}
		history.record(lossVal.Data().(float64), valLossVal.Data().(float64))
		vm.Reset()
	}

	for i, p := range params {
		m.weights[i] = p.Value().(*tensor.Dense)
	}
	return history, nil
}

// Predict runs a read-only forward pass over the dataset's input columns
// and returns the predicted corrected positions, one row per record.
func (m *Model) Predict(ds *loader.Dataset) (*mat.Dense, error) {
	if ds.Len() == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}

	g := gorgonia.NewGraph()
	params := m.graphParams(g)
	x := gorgonia.NewMatrix(g, tensor.Float64,
		gorgonia.WithShape(ds.Len(), m.cfg.Inputs), gorgonia.WithName("x"))
	pred, err := m.forward(x, params)
	if err != nil {
		return nil, err
	}

	vm := gorgonia.NewTapeMachine(g)
	defer vm.Close()
	if err := gorgonia.Let(x, inputTensor(ds, m.cfg.Inputs, ds.Inputs())); err != nil {
		return nil, err
	}
	if err := vm.RunAll(); err != nil {
		return nil, fmt.Errorf("prediction failed: %w", err)
	}

	out := pred.Value().Data().([]float64)
	data := make([]float64, ds.Len()*m.cfg.Outputs)
	copy(data, out)
	return mat.NewDense(ds.Len(), m.cfg.Outputs, data), nil
}

// Test evaluates the model against the dataset's expected columns,
// returning the mean-squared error over all predicted coordinates along
// with the predictions themselves. No training occurs.
func (m *Model) Test(ds *loader.Dataset) (float64, *mat.Dense, error) {
	predictions, err := m.Predict(ds)
	if err != nil {
		return 0, nil, err
	}
	expected := ds.Expected()
	diff := make([]float64, len(expected))
	floats.SubTo(diff, predictions.RawMatrix().Data, expected)
	mse := floats.Dot(diff, diff) / float64(len(diff))
	return mse, predictions, nil
}
