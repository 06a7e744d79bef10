package main

import (
	"fmt"
	"log"

	"github.com/user/position_corrector_go/internal/loader"
	"github.com/user/position_corrector_go/internal/network"
	"github.com/user/position_corrector_go/internal/report"
)

// App runs the full offline pipeline: load measurement data, train the
// configured regressor variants, render plots and bundle the PDF report.
type App struct {
	Loader   loader.Config
	Variants []network.Config
	PDFOut   string
	CDFOut   string
}

// NewApp builds the default single-run configuration: the measurement
// campaign directories and three network variants (one- and two-layer
// adam, two-layer sgd with momentum).
func NewApp() *App {
	single := network.DefaultConfig()
	single.HiddenLayers = []int{32}

	double := network.DefaultConfig()
	double.HiddenLayers = []int{32, 16}

	momentum := network.DefaultConfig()
	momentum.HiddenLayers = []int{32, 16}
	momentum.Optimizer = "sgd"

	return &App{
		Loader:   loader.DefaultConfig(),
		Variants: []network.Config{single, double, momentum},
		PDFOut:   "evaluation_report.pdf",
		CDFOut:   "error_cdf.png",
	}
}

// Run executes the pipeline.
func (a *App) Run() error {
	log.Println("Loading measurement data...")
	training, testing, err := loader.LoadData(a.Loader)
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}
	log.Printf("Data loaded: %d training rows, %d testing rows", training.Len(), testing.Len())

	models := make([]*network.Model, 0, len(a.Variants))
	results := make([]report.ModelResult, 0, len(a.Variants))

	for i, cfg := range a.Variants {
		name := fmt.Sprintf("Model %d", i+1)
		log.Printf("%s: building (%v, %s)", name, cfg.HiddenLayers, cfg.Optimizer)
		model, err := network.New(cfg)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		log.Printf("%s: training for %d epochs...", name, cfg.Epochs)
		history, err := model.Train(training, testing)
		if err != nil {
			return fmt.Errorf("%s: training failed: %w", name, err)
		}

		mse, _, err := model.Test(testing)
		if err != nil {
			return fmt.Errorf("%s: evaluation failed: %w", name, err)
		}
		log.Printf("%s: MSE on test data: %g", name, mse)

		historyPlot, err := report.PlotTrainingHistory(history, name+" training history")
		if err != nil {
			return fmt.Errorf("%s: history plot failed: %w", name, err)
		}
		if err := report.SavePNG(fmt.Sprintf("training_history_%d.png", i+1), historyPlot); err != nil {
			return err
		}

		models = append(models, model)
		results = append(results, report.ModelResult{
			Name:        name,
			Config:      cfg,
			TestMSE:     mse,
			HistoryPlot: historyPlot,
		})
	}

	log.Println("Rendering error distribution comparison...")
	cdfPlot, err := report.PlotModelCDF(models, testing)
	if err != nil {
		return fmt.Errorf("failed to plot error distributions: %w", err)
	}
	if err := report.SavePNG(a.CDFOut, cdfPlot); err != nil {
		return err
	}

	log.Printf("Writing report %s...", a.PDFOut)
	if err := report.BuildPDFReport(a.PDFOut, results, cdfPlot); err != nil {
		return err
	}
	log.Println("Done")
	return nil
}
