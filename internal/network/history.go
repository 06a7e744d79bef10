package network

// History is the per-epoch record of training and validation mean-squared
// error produced by Train. Both series have one entry per epoch.
type History struct {
	train      []float64
	validation []float64
}

// Epochs returns the number of recorded epochs.
func (h *History) Epochs() int {
	return len(h.train)
}

// TrainMSE returns the training-set MSE series, one value per epoch.
func (h *History) TrainMSE() []float64 {
	return h.train
}

// ValidationMSE returns the held-out validation MSE series, one value per
// epoch.
func (h *History) ValidationMSE() []float64 {
	return h.validation
}

func (h *History) record(train, validation float64) {
	h.train = append(h.train, train)
	h.validation = append(h.validation, validation)
}
