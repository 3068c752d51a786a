package projection

import (
	"fmt"
	"math"
	"time"
)

const summaryDateLayout = "2 January 2006"

// Summary condenses a run into the one-line result shown above the charts.
type Summary struct {
	Reached       bool      `json:"reached"`
	Weeks         int       `json:"weeks"`
	EndDate       time.Time `json:"end_date,omitzero"`
	StartWeightKg float64   `json:"start_weight_kg"`
	FinalWeightKg float64   `json:"final_weight_kg"`
	TotalLossKg   float64   `json:"total_loss_kg"`
	Message       string    `json:"message"`
}

// Summarize describes records produced by Simulate(in, ...).
func Summarize(in Input, records []WeeklyRecord) Summary {
	s := Summary{StartWeightKg: in.CurrentWeightKg, FinalWeightKg: in.CurrentWeightKg}
	if len(records) == 0 {
		s.Message = "Simulation not possible. Check the input data."
		return s
	}

	last := records[len(records)-1]
	s.Weeks = len(records)
	s.EndDate = last.Date
	s.FinalWeightKg = last.WeightKg
	s.TotalLossKg = roundTo(in.CurrentWeightKg-last.WeightKg, 1)
	// Only the clamp stops the loop early, so a run that used every week
	// without clamping ended above the target whatever the rounding shows.
	s.Reached = last.AtTarget

	if s.Reached {
		s.Message = fmt.Sprintf("Target weight reached in approximately %d weeks, around %s.",
			s.Weeks, s.EndDate.Format(summaryDateLayout))
	} else {
		s.Message = fmt.Sprintf("Target not reached within %d weeks; projected %.1f kg by %s.",
			s.Weeks, s.FinalWeightKg, s.EndDate.Format(summaryDateLayout))
	}
	return s
}

// WeeklyLossKg returns the loss in each week, derived from the rounded weights.
func WeeklyLossKg(in Input, records []WeeklyRecord) []float64 {
	out := make([]float64, len(records))
	prev := in.CurrentWeightKg
	for i, r := range records {
		out[i] = math.Max(0, roundTo(prev-r.WeightKg, 1))
		prev = r.WeightKg
	}
	return out
}
