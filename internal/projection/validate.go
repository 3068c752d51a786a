package projection

import (
	"fmt"
	"math"
)

// FieldError reports an input field that failed validation. Field uses the
// snake_case name of the JSON/YAML input record.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid field %s: %s", e.Field, e.Reason)
}

const maxAgeYears = 130

// Validate checks that in is inside the engine's domain and returns a
// *FieldError for the first field that is not. A target at or above the
// current weight is valid; Simulate returns an empty run for it.
func (in Input) Validate() error {
	if err := positive("current_weight_kg", in.CurrentWeightKg); err != nil {
		return err
	}
	if err := positive("target_weight_kg", in.TargetWeightKg); err != nil {
		return err
	}
	if err := positive("height_cm", in.HeightCm); err != nil {
		return err
	}
	// Guard against implausible ages, same bound as the profile TDEE check.
	if in.AgeYears <= 0 || in.AgeYears > maxAgeYears {
		return &FieldError{Field: "age_years", Reason: fmt.Sprintf("must be between 1 and %d", maxAgeYears)}
	}
	if !in.Sex.Valid() {
		return &FieldError{Field: "sex", Reason: "must be male or female"}
	}
	if !in.ActivityLevel.Valid() {
		return &FieldError{Field: "activity_level", Reason: "must be one of sedentary, lightly_active, moderately_active, very_active, extremely_active"}
	}
	if in.TrainingDaysPerWeek < 0 || in.TrainingDaysPerWeek > 7 {
		return &FieldError{Field: "training_days_per_week", Reason: "must be between 0 and 7"}
	}
	if in.CaloriesPerSession != nil {
		v := *in.CaloriesPerSession
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return &FieldError{Field: "calories_per_session", Reason: "must be a non-negative number"}
		}
	}
	return nil
}

func positive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return &FieldError{Field: field, Reason: "must be a positive number"}
	}
	return nil
}
