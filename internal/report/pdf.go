package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/user/position_corrector_go/internal/network"
)

const (
	inchToMm        = 25.4
	pdfPageWidth    = 11 * inchToMm // Letter landscape
	pdfPageHeight   = 8.5 * inchToMm
	pdfMargin       = 0.5 * inchToMm
	pdfContentWidth = pdfPageWidth - (2 * pdfMargin)
	pdfLineHeight   = 6 // mm
)

// ModelResult is one trained variant's contribution to the evaluation
// report.
type ModelResult struct {
	Name        string
	Config      network.Config
	TestMSE     float64
	HistoryPlot []byte // PNG, optional
}

// pdfStyler holds reusable styling and flowing-layout state.
type pdfStyler struct {
	pdf      *gofpdf.Fpdf
	styles   map[string]func()
	currentY float64
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{
		pdf:      pdf,
		styles:   make(map[string]func()),
		currentY: pdfMargin,
	}
	s.styles["h1"] = func() {
		s.pdf.SetFont("Arial", "B", 16)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["h2"] = func() {
		s.pdf.SetFont("Arial", "B", 13)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		s.pdf.SetFont("Arial", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	return s
}

func (s *pdfStyler) applyStyle(name string) {
	if fn, ok := s.styles[name]; ok {
		fn()
	} else {
		s.styles["normal"]()
	}
}

func (s *pdfStyler) checkAddPage(neededHeight float64) {
	if s.currentY+neededHeight > pdfPageHeight-pdfMargin {
		s.pdf.AddPage()
		s.currentY = pdfMargin
	}
}

func (s *pdfStyler) writeParagraph(text, style string) {
	s.applyStyle(style)
	s.checkAddPage(pdfLineHeight)
	s.pdf.SetXY(pdfMargin, s.currentY)
	s.pdf.MultiCell(pdfContentWidth, pdfLineHeight, text, "", "L", false)
	s.currentY = s.pdf.GetY() + 1
}

func (s *pdfStyler) addImage(data []byte, name string, width, height float64) {
	s.pdf.RegisterImageReader(name, "PNG", bytes.NewReader(data))
	s.checkAddPage(height + 2)
	s.pdf.ImageOptions(name, pdfMargin, s.currentY, width, height, false,
		gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	s.currentY += height + 2
}

func describeConfig(cfg network.Config) string {
	widths := make([]string, len(cfg.HiddenLayers))
	for i, w := range cfg.HiddenLayers {
		widths[i] = fmt.Sprintf("%d", w)
	}
	return fmt.Sprintf("hidden layers [%s], %s/%s activation, %s init, %s lr=%g, %d epochs",
		strings.Join(widths, " "), cfg.Activation, cfg.OutputActivation,
		cfg.WeightInit, cfg.Optimizer, cfg.LearningRate, cfg.Epochs)
}

// BuildPDFReport writes an evaluation report to path: one section per
// trained variant (configuration, test MSE, training curve) followed by
// the error-distribution comparison plot.
func BuildPDFReport(path string, results []ModelResult, cdfPlot []byte) error {
	if len(results) == 0 {
		return fmt.Errorf("no model results to report")
	}

	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.AddPage()
	s := newPDFStyler(pdf)

	s.writeParagraph("Position Correction Evaluation Report", "h1")
	s.writeParagraph(fmt.Sprintf("Trained variants: %d", len(results)), "normal")

	plotWidth := pdfContentWidth * 0.75
	plotHeight := plotWidth / 2 // plots render at 2:1

	for _, r := range results {
		s.writeParagraph(r.Name, "h2")
		s.writeParagraph(describeConfig(r.Config), "normal")
		s.writeParagraph(fmt.Sprintf("MSE on dynamic measurements: %.6f", r.TestMSE), "normal")
		if len(r.HistoryPlot) > 0 {
			s.addImage(r.HistoryPlot, "history_"+r.Name, plotWidth, plotHeight)
		}
	}

	if len(cdfPlot) > 0 {
		s.writeParagraph("Error distribution comparison", "h2")
		s.addImage(cdfPlot, "cdf_comparison", plotWidth, plotHeight)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write PDF report %s: %v", path, err)
	}
	return nil
}
