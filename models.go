package main

import (
	"time"

	"lg/weight-projection-go-api/internal/projection"
	"lg/weight-projection-go-api/internal/report"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON. Responses
// only; request dates arrive as strings on scenario.File.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

/* ─── Response shapes ────────────────────────────────────────────────── */

// weekResponse is one row of the weeks array in POST /api/simulate.
type weekResponse struct {
	Week           int      `json:"week"`
	Date           DateOnly `json:"date"`
	WeightKg       float64  `json:"weight_kg"`
	TEEKcal        int      `json:"tee_kcal"`
	DietTargetKcal int      `json:"diet_target_kcal"`
	TrainingKcal   int      `json:"training_kcal"`
	DeficitKcal    int      `json:"deficit_kcal"`
}

// summaryResponse mirrors projection.Summary with a date-only end date.
type summaryResponse struct {
	Reached       bool     `json:"reached"`
	Weeks         int      `json:"weeks"`
	EndDate       DateOnly `json:"end_date"`
	StartWeightKg float64  `json:"start_weight_kg"`
	FinalWeightKg float64  `json:"final_weight_kg"`
	TotalLossKg   float64  `json:"total_loss_kg"`
	Message       string   `json:"message"`
}

// simulateResponse is the response shape for POST /api/simulate.
// Weeks is an empty array (not null) when no simulation was possible.
type simulateResponse struct {
	RunID       string          `json:"run_id"`
	SessionKcal float64         `json:"session_kcal"`
	Summary     summaryResponse `json:"summary"`
	Weeks       []weekResponse  `json:"weeks"`
	Charts      report.Charts   `json:"charts"`
}

func newSimulateResponse(runID string, sessionKcal float64, s projection.Summary, records []projection.WeeklyRecord) simulateResponse {
	weeks := make([]weekResponse, 0, len(records))
	for _, r := range records {
		weeks = append(weeks, weekResponse{
			Week:           r.Week,
			Date:           DateOnly{r.Date},
			WeightKg:       r.WeightKg,
			TEEKcal:        r.TEEKcal,
			DietTargetKcal: r.DietTargetKcal,
			TrainingKcal:   r.TrainingKcal,
			DeficitKcal:    r.DeficitKcal,
		})
	}
	return simulateResponse{
		RunID:       runID,
		SessionKcal: sessionKcal,
		Summary: summaryResponse{
			Reached:       s.Reached,
			Weeks:         s.Weeks,
			EndDate:       DateOnly{s.EndDate},
			StartWeightKg: s.StartWeightKg,
			FinalWeightKg: s.FinalWeightKg,
			TotalLossKg:   s.TotalLossKg,
			Message:       s.Message,
		},
		Weeks:  weeks,
		Charts: report.BuildCharts(records, report.DefaultChartOptions),
	}
}
