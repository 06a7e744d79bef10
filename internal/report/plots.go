package report

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/user/position_corrector_go/internal/analysis"
	"github.com/user/position_corrector_go/internal/loader"
	"github.com/user/position_corrector_go/internal/network"
)

var plotColors = []color.Color{
	color.RGBA{B: 255, A: 255},               // Blue
	color.RGBA{R: 255, G: 165, A: 255},       // Orange
	color.RGBA{G: 128, A: 255},               // Green
	color.RGBA{R: 255, A: 255},               // Red
	color.RGBA{R: 128, B: 128, A: 255},       // Purple
	color.RGBA{G: 128, B: 128, A: 255},       // Teal
}

// PlotTrainingHistory renders the per-epoch training and validation MSE
// series of one model as a line plot.
func PlotTrainingHistory(h *network.History, title string) ([]byte, error) {
	if h.Epochs() == 0 {
		return nil, fmt.Errorf("history is empty, nothing to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Epoch"
	p.Y.Label.Text = "MSE"
	p.Add(plotter.NewGrid())

	trainLine, err := plotter.NewLine(seriesPoints(h.TrainMSE()))
	if err != nil {
		return nil, fmt.Errorf("failed to create training line: %v", err)
	}
	trainLine.Color = plotColors[0]
	trainLine.LineStyle.Width = vg.Points(1.5)
	p.Add(trainLine)
	p.Legend.Add("Training MSE", trainLine)

	valLine, err := plotter.NewLine(seriesPoints(h.ValidationMSE()))
	if err != nil {
		return nil, fmt.Errorf("failed to create validation line: %v", err)
	}
	valLine.Color = plotColors[1]
	valLine.LineStyle.Width = vg.Points(1.5)
	p.Add(valLine)
	p.Legend.Add("Validation MSE", valLine)

	p.Legend.Top = true
	return renderPNG(p)
}

// CDFCurve is one cumulative error-share curve to draw.
type CDFCurve struct {
	Label  string
	Errors []float64 // ascending error magnitudes
	CDF    []float64 // cumulative error share per magnitude
	Dashed bool
}

// PlotCDF renders the supplied cumulative error-share curves on a shared
// pair of axes.
func PlotCDF(curves []CDFCurve) ([]byte, error) {
	if len(curves) == 0 {
		return nil, fmt.Errorf("no curves to plot")
	}

	p := plot.New()
	p.Title.Text = "Cumulative error distribution on dynamic measurements"
	p.X.Label.Text = "Absolute error"
	p.Y.Label.Text = "Cumulative error share"
	p.Add(plotter.NewGrid())

	for i, c := range curves {
		pts := make(plotter.XYs, len(c.Errors))
		for j := range c.Errors {
			pts[j] = plotter.XY{X: c.Errors[j], Y: c.CDF[j]}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("failed to create line for %s: %v", c.Label, err)
		}
		line.Color = plotColors[i%len(plotColors)]
		line.LineStyle.Width = vg.Points(1.5)
		if c.Dashed {
			line.Color = color.Gray{Y: 64}
			line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
		}
		p.Add(line)
		p.Legend.Add(c.Label, line)
	}

	p.Legend.Top = true
	p.Legend.Left = true
	return renderPNG(p)
}

// PlotModelCDF evaluates every model against the testing dataset and
// plots each prediction-error distribution next to the dashed baseline
// distribution of the uncorrected measurements.
func PlotModelCDF(models []*network.Model, testing *loader.Dataset) ([]byte, error) {
	curves := make([]CDFCurve, 0, len(models)+1)
	for i, m := range models {
		_, predictions, err := m.Test(testing)
		if err != nil {
			return nil, fmt.Errorf("model %d: %w", i+1, err)
		}
		sorted, cdf, err := analysis.CalculateCDF(analysis.PredictionErrors(predictions, testing))
		if err != nil {
			return nil, fmt.Errorf("model %d: %w", i+1, err)
		}
		curves = append(curves, CDFCurve{
			Label:  fmt.Sprintf("Model %d", i+1),
			Errors: sorted,
			CDF:    cdf,
		})
	}

	sorted, cdf, err := analysis.CalculateCDF(analysis.MeasurementErrors(testing))
	if err != nil {
		return nil, fmt.Errorf("measurement baseline: %w", err)
	}
	curves = append(curves, CDFCurve{
		Label:  "Uncorrected measurements",
		Errors: sorted,
		CDF:    cdf,
		Dashed: true,
	})
	return PlotCDF(curves)
}

func seriesPoints(series []float64) plotter.XYs {
	pts := make(plotter.XYs, len(series))
	for i, v := range series {
		pts[i] = plotter.XY{X: float64(i), Y: v}
	}
	return pts
}

func renderPNG(p *plot.Plot) ([]byte, error) {
	writer, err := p.WriterTo(vg.Points(800), vg.Points(400), "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create plot writer: %v", err)
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to write plot to buffer: %v", err)
	}
	return buf.Bytes(), nil
}
