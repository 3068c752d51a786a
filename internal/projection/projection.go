// Package projection estimates a week-by-week weight trajectory from body
// metrics, activity level and training habits.
//
// The model is a heuristic: a loss of 2·e^(-0.1·week) kg per week with ±5%
// noise, clamped at the target weight, for at most MaxWeeks weeks. Energy
// figures (BMR, TEE, diet target, training burn) are computed each week for
// display alongside the weight curve.
package projection

import (
	"math"
	"time"
)

const (
	// MaxWeeks bounds the simulation horizon.
	MaxWeeks = 52

	// DietFactor is the fraction of TEE used as the daily diet target (a fixed 20% deficit).
	DietFactor = 0.8

	BaseWeeklyLossKg = 2.0
	LossDecayRate    = 0.1

	// FluctuationSpread is the half-width of the uniform weekly noise.
	FluctuationSpread = 0.05

	// DefaultSessionKcal is the per-session training burn used when the input
	// leaves it unset.
	DefaultSessionKcal = 350.0
)

// Input is a validated simulation request. See Validate.
type Input struct {
	CurrentWeightKg     float64
	TargetWeightKg      float64
	HeightCm            float64
	AgeYears            int
	Sex                 Sex
	ActivityLevel       ActivityLevel
	TrainingDaysPerWeek int
	// CaloriesPerSession is the kcal burned per training session. nil means
	// Options.SessionKcal.
	CaloriesPerSession *float64
}

// WeeklyRecord is one simulated week.
type WeeklyRecord struct {
	Week           int       `json:"week"`
	Date           time.Time `json:"date"`
	WeightKg       float64   `json:"weight_kg"`
	TEEKcal        int       `json:"tee_kcal"`
	DietTargetKcal int       `json:"diet_target_kcal"`
	TrainingKcal   int       `json:"training_kcal"`
	DeficitKcal    int       `json:"deficit_kcal"`
	// AtTarget is set on the week the loss was clamped to the target weight.
	AtTarget bool `json:"at_target"`
}

// Options supplies the time and randomness capabilities of a run. Zero values
// select the wall clock, time-seeded uniform noise and DefaultSessionKcal.
type Options struct {
	Clock       Clock
	Fluctuation Fluctuation
	// DefaultSessionKcal applies when the input has no CaloriesPerSession.
	// nil selects the package DefaultSessionKcal; zero is a valid burn.
	DefaultSessionKcal *float64
}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = SystemClock{}
	}
	if o.Fluctuation == nil {
		o.Fluctuation = NewSeededFluctuation(time.Now().UnixNano())
	}
	return o
}

// SessionKcal returns the per-session training burn for in under opts.
func (o Options) SessionKcal(in Input) float64 {
	if in.CaloriesPerSession != nil {
		return *in.CaloriesPerSession
	}
	if o.DefaultSessionKcal == nil {
		return DefaultSessionKcal
	}
	return *o.DefaultSessionKcal
}

// Simulate projects weekly weight until the target is reached or MaxWeeks
// weeks have passed. The result is empty when the current weight is already at
// or below the target. Weights never increase and never fall below the target;
// WeightKg is rounded to 0.1 kg but held at the target when rounding would
// take it below.
func Simulate(in Input, opts Options) []WeeklyRecord {
	opts = opts.withDefaults()

	start := opts.Clock.Now()
	session := opts.SessionKcal(in)
	initial := in.CurrentWeightKg
	current := initial

	var records []WeeklyRecord
	for week := 1; current > in.TargetWeightKg && week <= MaxWeeks; week++ {
		tee := BMR(current, in.HeightCm, in.AgeYears, in.Sex) * in.ActivityLevel.Multiplier()

		// Training burn shrinks with the fraction of body mass already lost.
		training := float64(in.TrainingDaysPerWeek) * session * (1 - (initial-current)/initial)
		diet := tee * DietFactor

		loss := BaseWeeklyLossKg * math.Exp(-LossDecayRate*float64(week)) * opts.Fluctuation.Factor()
		atTarget := false
		if remaining := current - in.TargetWeightKg; loss >= remaining {
			current = in.TargetWeightKg
			atTarget = true
		} else {
			current -= loss
		}

		records = append(records, WeeklyRecord{
			Week:           week,
			Date:           start.AddDate(0, 0, week*7),
			WeightKg:       math.Max(roundTo(current, 1), in.TargetWeightKg),
			TEEKcal:        int(math.Round(tee)),
			DietTargetKcal: int(math.Round(diet)),
			TrainingKcal:   int(math.Round(training)),
			DeficitKcal:    int(math.Round(tee - diet + training)),
			AtTarget:       atTarget,
		})
	}
	return records
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
