package report

import (
	"bytes"
	"fmt"
	"math"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/user/challenge_data_go/internal/analysis"
)

const (
	inchToMm               = 25.4
	pdfPageWidthLandscape  = 11 * inchToMm // Letter landscape
	pdfPageHeightLandscape = 8.5 * inchToMm
	pdfMargin              = 0.5 * inchToMm
	pdfContentWidth        = pdfPageWidthLandscape - (2 * pdfMargin)
)

// Chart keys understood by BuildPDFReport, in page order.
const (
	ChartTrainingSeries  = "series_training"
	ChartTestingSeries   = "series_testing"
	ChartTargetHist      = "hist_training_outputs"
	ChartPredictionsHist = "hist_predictions"
)

var chartDefs = []struct {
	Key     string
	Title   string
	Caption string
}{
	{ChartTrainingSeries, "Training Data", "Training inputs and outputs by row"},
	{ChartTestingSeries, "Testing Data", "Testing inputs and predictions by row"},
	{ChartTargetHist, "Training Output Distribution", "Histogram of training outputs"},
	{ChartPredictionsHist, "Prediction Distribution", "Histogram of predicted values"},
}

// ReportInput is everything BuildPDFReport puts on the page.
type ReportInput struct {
	Title   string
	Folder  string
	Results *analysis.Results
	Charts  map[string][]byte // PNG bytes by chart key
}

// pdfStyler holds reusable styling and the flowing Y position.
type pdfStyler struct {
	pdf         *gofpdf.Fpdf
	styles      map[string]func()
	lineHeight  float64
	currentY    float64
	pageHeight  float64
	contentTopY float64
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{
		pdf:         pdf,
		styles:      make(map[string]func()),
		lineHeight:  6, // mm
		pageHeight:  pdfPageHeightLandscape - pdfMargin,
		contentTopY: pdfMargin,
	}
	s.currentY = s.contentTopY
	s.defineStyles()
	return s
}

func (s *pdfStyler) defineStyles() {
	s.styles["h1"] = func() {
		s.pdf.SetFont("Arial", "B", 16)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["h2"] = func() {
		s.pdf.SetFont("Arial", "B", 14)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		s.pdf.SetFont("Arial", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableHeader"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetFillColor(200, 200, 200)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableCell"] = func() {
		s.pdf.SetFont("Arial", "", 9)
		s.pdf.SetTextColor(50, 50, 50)
	}
	s.styles["warning"] = func() {
		s.pdf.SetFont("Arial", "I", 10)
		s.pdf.SetTextColor(200, 0, 0)
	}
}

func (s *pdfStyler) applyStyle(styleName string) {
	if fn, ok := s.styles[styleName]; ok {
		fn()
	} else {
		s.styles["normal"]()
	}
}

func (s *pdfStyler) newPage() {
	s.pdf.AddPage()
	s.currentY = s.contentTopY
}

func (s *pdfStyler) checkAddPage(neededHeight float64) {
	if s.currentY+neededHeight > s.pageHeight {
		s.newPage()
	}
}

func (s *pdfStyler) writeParagraph(text string, styleName string, align string) {
	s.applyStyle(styleName)
	lines := s.pdf.SplitLines([]byte(text), pdfContentWidth)
	s.checkAddPage(float64(len(lines)) * s.lineHeight)

	s.pdf.SetXY(pdfMargin, s.currentY)
	s.pdf.MultiCell(pdfContentWidth, s.lineHeight, text, "", align, false)
	s.currentY = s.pdf.GetY() + 1
}

func (s *pdfStyler) addSpacer(height float64) {
	s.checkAddPage(height)
	s.currentY += height
}

func (s *pdfStyler) addImage(imageBytes []byte, imageName string, width, height float64, caption string) {
	s.pdf.RegisterImageOptionsReader(imageName, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(imageBytes))

	if width > pdfContentWidth {
		height *= pdfContentWidth / width
		width = pdfContentWidth
	}
	captionHeight := 0.0
	if caption != "" {
		captionHeight = s.lineHeight + 1
	}
	s.checkAddPage(height + captionHeight)

	s.pdf.ImageOptions(imageName, pdfMargin+(pdfContentWidth-width)/2, s.currentY, width, height, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	s.currentY += height

	if caption != "" {
		s.addSpacer(1)
		s.writeParagraph(caption, "normal", "C")
	}
	s.addSpacer(2)
}

func (s *pdfStyler) writeTable(headers []string, colWidthsRel []float64, rows [][]string) {
	colWidths := make([]float64, len(colWidthsRel))
	for i, rel := range colWidthsRel {
		colWidths[i] = rel * pdfContentWidth
	}

	writeRow := func(cells []string, style string, fill bool) {
		s.checkAddPage(s.lineHeight)
		s.applyStyle(style)
		x := pdfMargin
		for i, cell := range cells {
			s.pdf.SetXY(x, s.currentY)
			s.pdf.CellFormat(colWidths[i], s.lineHeight, cell, "1", 0, "C", fill, 0, "")
			x += colWidths[i]
		}
		s.currentY += s.lineHeight
	}

	s.checkAddPage(s.lineHeight * float64(len(rows)+1))
	writeRow(headers, "tableHeader", true)
	for _, row := range rows {
		writeRow(row, "tableCell", false)
	}
}

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.4g", v)
}

// BuildPDFReport writes a landscape Letter PDF with the summary table of
// in.Results followed by one page per available chart.
func BuildPDFReport(path string, in ReportInput) error {
	if in.Results == nil {
		return errors.New("no results to report")
	}
	title := in.Title
	if title == "" {
		title = "Challenge Data Report"
	}

	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	styler := newPDFStyler(pdf)
	styler.newPage()

	styler.writeParagraph(title, "h1", "C")
	styler.addSpacer(5)
	if in.Folder != "" {
		styler.writeParagraph(fmt.Sprintf("Data folder: %s", in.Folder), "normal", "L")
		styler.addSpacer(3)
	}

	styler.writeParagraph("Summary", "h2", "L")
	rows := make([][]string, 0, 4)
	for _, sum := range in.Results.Summaries() {
		rows = append(rows, []string{
			sum.Name,
			fmt.Sprintf("%d", sum.Count),
			fmt.Sprintf("%d", sum.Missing),
			formatStat(sum.Mean),
			formatStat(sum.StdDev),
			formatStat(sum.Min),
			formatStat(sum.Max),
		})
	}
	styler.writeTable(
		[]string{"Column", "Count", "Missing", "Mean", "Std Dev", "Min", "Max"},
		[]float64{0.34, 0.1, 0.1, 0.115, 0.115, 0.115, 0.115},
		rows,
	)
	styler.addSpacer(5)

	if len(in.Results.Warnings) > 0 {
		styler.writeParagraph("Warnings", "h2", "L")
		for _, w := range in.Results.Warnings {
			styler.writeParagraph("- "+w, "warning", "L")
		}
	}

	imgWidth := pdfContentWidth
	imgHeight := imgWidth * DefaultFigSize.Height / DefaultFigSize.Width

	for _, def := range chartDefs {
		img, ok := in.Charts[def.Key]
		if def.Key == ChartPredictionsHist && in.Results.Predictions == nil && !ok {
			continue
		}
		styler.newPage()
		styler.writeParagraph(def.Title, "h2", "L")
		if ok && len(img) > 0 {
			styler.addImage(img, def.Key, imgWidth, imgHeight, def.Caption)
		} else {
			styler.writeParagraph(fmt.Sprintf("Chart %q not available.", def.Title), "normal", "L")
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return errors.Wrapf(err, "write report %s", path)
	}
	logrus.WithField("path", path).Debug("wrote report")
	return nil
}
