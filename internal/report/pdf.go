package report

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/go-pdf/fpdf"

	"lg/weight-projection-go-api/internal/projection"
)

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight

	chartHeight = 75.0
)

// seriesColors are used in order for the lines of a chart.
var seriesColors = [][3]int{
	{37, 99, 235},
	{234, 88, 12},
	{22, 163, 74},
}

// Meta describes the run a report was generated for.
type Meta struct {
	RunID       string
	GeneratedAt time.Time
	Input       projection.Input
	SessionKcal float64
	Charts      ChartOptions
}

type pdfReport struct {
	pdf     *fpdf.Fpdf
	meta    Meta
	summary projection.Summary
	records []projection.WeeklyRecord
}

// GeneratePDF renders the summary line, both charts and the weekly table.
func GeneratePDF(summary projection.Summary, records []projection.WeeklyRecord, meta Meta) ([]byte, error) {
	r := &pdfReport{
		pdf:     fpdf.New("P", "mm", "A4", ""),
		meta:    meta,
		summary: summary,
		records: records,
	}
	r.pdf.SetMargins(marginLeft, marginTop, marginRight)
	r.pdf.SetAutoPageBreak(true, marginBottom)
	r.pdf.SetTitle("Weight Projection", true)
	r.pdf.SetCreator("weight-projection-go-api", true)

	r.addOverviewPage()
	if len(records) > 0 {
		charts := BuildCharts(records, meta.Charts)
		r.drawLineChart(charts.Weight)
		r.drawLineChart(charts.Energy)
		r.addWeeklyTable()
	}

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *pdfReport) addOverviewPage() {
	r.pdf.AddPage()

	r.pdf.SetFont("Arial", "B", 22)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 12, "Weight Projection", "", 1, "L", false, 0, "")

	r.pdf.SetFont("Arial", "I", 9)
	r.pdf.SetTextColor(100, 100, 100)
	generated := r.meta.GeneratedAt.Format("2 January 2006 15:04")
	if r.meta.RunID != "" {
		generated += "  -  run " + r.meta.RunID
	}
	r.pdf.CellFormat(contentWidth, 5, "Generated: "+generated, "", 1, "L", false, 0, "")
	r.pdf.Ln(4)

	in := r.meta.Input
	r.drawSectionHeader("Inputs")
	rows := [][2]string{
		{"Current weight", fmt.Sprintf("%.1f kg", in.CurrentWeightKg)},
		{"Target weight", fmt.Sprintf("%.1f kg", in.TargetWeightKg)},
		{"Height", fmt.Sprintf("%.0f cm", in.HeightCm)},
		{"Age", fmt.Sprintf("%d years", in.AgeYears)},
		{"Sex", string(in.Sex)},
		{"Activity level", fmt.Sprintf("%s (x%g)", in.ActivityLevel.Label(), in.ActivityLevel.Multiplier())},
		{"Training", fmt.Sprintf("%d days/week, %.0f kcal/session", in.TrainingDaysPerWeek, r.meta.SessionKcal)},
	}
	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(50, 50, 50)
	for _, row := range rows {
		r.pdf.CellFormat(50, 6, row[0], "", 0, "L", false, 0, "")
		r.pdf.CellFormat(contentWidth-50, 6, row[1], "", 1, "L", false, 0, "")
	}
	r.pdf.Ln(4)

	r.drawSectionHeader("Summary")
	r.pdf.SetFont("Arial", "B", 11)
	if r.summary.Reached {
		r.pdf.SetTextColor(22, 163, 74)
	} else {
		r.pdf.SetTextColor(220, 38, 38)
	}
	r.pdf.MultiCell(contentWidth, 6, r.summary.Message, "", "L", false)
	r.pdf.Ln(4)
}

func (r *pdfReport) drawSectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 14)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 8, title, "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(0, 51, 102)
	r.pdf.SetLineWidth(0.3)
	r.pdf.Line(marginLeft, r.pdf.GetY(), marginLeft+contentWidth, r.pdf.GetY())
	r.pdf.Ln(3)
}

// valueRange returns min/max over every series, padded so flat lines still
// get a visible band.
func valueRange(series []Series) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, v := range s.Y {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = math.Max(1, math.Abs(hi)*0.05)
	}
	return lo - pad, hi + pad
}

func (r *pdfReport) drawLineChart(chart Chart) {
	// Keep a chart and its title on one page.
	_, pageHeight := r.pdf.GetPageSize()
	if r.pdf.GetY()+chartHeight+20 > pageHeight-marginBottom {
		r.pdf.AddPage()
	}
	r.drawSectionHeader(chart.Title)

	const axisLeft = 18.0
	x0 := marginLeft + axisLeft
	y0 := r.pdf.GetY() + 2
	w := contentWidth - axisLeft
	h := chartHeight - 12

	lo, hi := valueRange(chart.Series)
	n := len(chart.Series[0].X)
	xAt := func(i int) float64 {
		if n == 1 {
			return x0 + w/2
		}
		return x0 + w*float64(i)/float64(n-1)
	}
	yAt := func(v float64) float64 { return y0 + h - h*(v-lo)/(hi-lo) }

	// Grid and y-axis labels.
	r.pdf.SetFont("Arial", "", 7)
	r.pdf.SetTextColor(100, 100, 100)
	r.pdf.SetLineWidth(0.1)
	r.pdf.SetDrawColor(220, 220, 220)
	const gridLines = 4
	for g := 0; g <= gridLines; g++ {
		v := lo + (hi-lo)*float64(g)/gridLines
		y := yAt(v)
		r.pdf.Line(x0, y, x0+w, y)
		r.pdf.SetXY(marginLeft, y-2)
		r.pdf.CellFormat(axisLeft-2, 4, fmt.Sprintf("%.1f", v), "", 0, "R", false, 0, "")
	}
	r.pdf.SetDrawColor(120, 120, 120)
	r.pdf.Rect(x0, y0, w, h, "D")

	// First, middle and last dates on the x axis.
	for _, i := range []int{0, n / 2, n - 1} {
		label := chart.Series[0].X[i]
		lw := r.pdf.GetStringWidth(label)
		r.pdf.Text(math.Max(x0, math.Min(xAt(i)-lw/2, x0+w-lw)), y0+h+4, label)
	}

	for si, s := range chart.Series {
		c := seriesColors[si%len(seriesColors)]
		r.pdf.SetDrawColor(c[0], c[1], c[2])
		r.pdf.SetFillColor(c[0], c[1], c[2])
		r.pdf.SetLineWidth(0.5)
		for i := range s.Y {
			if i > 0 {
				r.pdf.Line(xAt(i-1), yAt(s.Y[i-1]), xAt(i), yAt(s.Y[i]))
			}
			r.pdf.Circle(xAt(i), yAt(s.Y[i]), 0.7, "F")
		}
	}

	if chart.ShowLegend {
		lx := x0 + 3
		ly := y0 + 3
		r.pdf.SetFont("Arial", "", 8)
		r.pdf.SetTextColor(50, 50, 50)
		for si, s := range chart.Series {
			c := seriesColors[si%len(seriesColors)]
			r.pdf.SetFillColor(c[0], c[1], c[2])
			r.pdf.Rect(lx, ly-2, 4, 2, "F")
			r.pdf.Text(lx+6, ly, s.Name)
			lx += 10 + r.pdf.GetStringWidth(s.Name)
		}
	}

	r.pdf.SetLineWidth(0.2)
	r.pdf.SetXY(marginLeft, y0+h+8)
}

func (r *pdfReport) addWeeklyTable() {
	r.pdf.AddPage()
	r.drawSectionHeader("Week by Week")

	headers := []string{"Week", "Date", "Weight (kg)", "Loss (kg)", "TEE (kcal)", "Diet (kcal)", "Training (kcal)"}
	widths := []float64{15, 30, 25, 22, 28, 28, 32}

	r.pdf.SetFillColor(0, 51, 102)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "B", 9)
	for i, h := range headers {
		r.pdf.CellFormat(widths[i], 6, h, "1", 0, "C", true, 0, "")
	}
	r.pdf.Ln(-1)

	losses := projection.WeeklyLossKg(r.meta.Input, r.records)
	r.pdf.SetFont("Arial", "", 9)
	r.pdf.SetTextColor(50, 50, 50)
	for i, rec := range r.records {
		if i%2 == 0 {
			r.pdf.SetFillColor(250, 250, 250)
		} else {
			r.pdf.SetFillColor(240, 240, 240)
		}
		cells := []string{
			fmt.Sprintf("%d", rec.Week),
			rec.Date.Format(dateLayout),
			fmt.Sprintf("%.1f", rec.WeightKg),
			fmt.Sprintf("%.1f", losses[i]),
			fmt.Sprintf("%d", rec.TEEKcal),
			fmt.Sprintf("%d", rec.DietTargetKcal),
			fmt.Sprintf("%d", rec.TrainingKcal),
		}
		for j, cell := range cells {
			align := "R"
			if j < 2 {
				align = "L"
			}
			r.pdf.CellFormat(widths[j], 5, cell, "1", 0, align, true, 0, "")
		}
		r.pdf.Ln(-1)
	}

	r.pdf.Ln(6)
	r.pdf.SetFont("Arial", "I", 8)
	r.pdf.SetTextColor(120, 120, 120)
	r.pdf.MultiCell(contentWidth, 4,
		"Projection uses a simplified heuristic (Mifflin-St Jeor BMR, fixed 20% diet deficit, "+
			"decaying weekly loss with random variation). It is not medical advice.", "", "L", false)
}
