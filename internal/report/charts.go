// Package report turns a projection run into chart series and a PDF report.
package report

import (
	"lg/weight-projection-go-api/internal/projection"
)

const dateLayout = "2006-01-02"

// Series is one line on a chart. The JSON shape is a Plotly scatter trace.
type Series struct {
	Name string    `json:"name"`
	X    []string  `json:"x"`
	Y    []float64 `json:"y"`
	Type string    `json:"type"`
	Mode string    `json:"mode"`
}

// Chart is a titled set of series sharing the date axis.
type Chart struct {
	Title      string   `json:"title"`
	XTitle     string   `json:"x_title"`
	YTitle     string   `json:"y_title"`
	ShowLegend bool     `json:"show_legend"`
	Series     []Series `json:"series"`
}

// ChartOptions holds display-only settings.
type ChartOptions struct {
	ShowLegend bool
}

// DefaultChartOptions shows legends on both charts.
var DefaultChartOptions = ChartOptions{ShowLegend: true}

// Charts bundles the two charts shown under the summary.
type Charts struct {
	Weight Chart `json:"weight"`
	Energy Chart `json:"energy"`
}

func newSeries(name string, records []projection.WeeklyRecord, value func(projection.WeeklyRecord) float64) Series {
	s := Series{
		Name: name,
		X:    make([]string, len(records)),
		Y:    make([]float64, len(records)),
		Type: "scatter",
		Mode: "lines+markers",
	}
	for i, r := range records {
		s.X[i] = r.Date.Format(dateLayout)
		s.Y[i] = value(r)
	}
	return s
}

// WeightChart plots weight against date.
func WeightChart(records []projection.WeeklyRecord, opts ChartOptions) Chart {
	return Chart{
		Title:      "Weight Projection",
		XTitle:     "Date",
		YTitle:     "Weight (kg)",
		ShowLegend: opts.ShowLegend,
		Series: []Series{
			newSeries("Weight (kg)", records, func(r projection.WeeklyRecord) float64 { return r.WeightKg }),
		},
	}
}

// EnergyChart overlays the diet target and TEE against date.
func EnergyChart(records []projection.WeeklyRecord, opts ChartOptions) Chart {
	return Chart{
		Title:      "Diet vs TEE",
		XTitle:     "Date",
		YTitle:     "kcal",
		ShowLegend: opts.ShowLegend,
		Series: []Series{
			newSeries("Diet (kcal)", records, func(r projection.WeeklyRecord) float64 { return float64(r.DietTargetKcal) }),
			newSeries("TEE (kcal)", records, func(r projection.WeeklyRecord) float64 { return float64(r.TEEKcal) }),
		},
	}
}

// BuildCharts returns both charts for records.
func BuildCharts(records []projection.WeeklyRecord, opts ChartOptions) Charts {
	return Charts{
		Weight: WeightChart(records, opts),
		Energy: EnergyChart(records, opts),
	}
}
