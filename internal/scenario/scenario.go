// Package scenario decodes a simulation input record from the calculator form
// (JSON) or a scenario file (YAML) and turns it into a validated projection.Input.
package scenario

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"lg/weight-projection-go-api/internal/projection"
)

const dateLayout = "2006-01-02"

// File is the input record as typed by a user. All fields are pointers so a
// missing value can be told apart from zero and reported by name.
type File struct {
	Name                *string  `yaml:"name,omitempty" json:"name,omitempty"`
	CurrentWeightKg     *float64 `yaml:"current_weight_kg" json:"current_weight_kg"`
	TargetWeightKg      *float64 `yaml:"target_weight_kg" json:"target_weight_kg"`
	HeightCm            *float64 `yaml:"height_cm" json:"height_cm"`
	AgeYears            *int     `yaml:"age_years" json:"age_years"`
	Sex                 *string  `yaml:"sex" json:"sex"`
	ActivityLevel       *string  `yaml:"activity_level" json:"activity_level"`
	TrainingDaysPerWeek *int     `yaml:"training_days_per_week" json:"training_days_per_week"`
	CaloriesPerSession  *float64 `yaml:"calories_per_session,omitempty" json:"calories_per_session,omitempty"` // kcal per session; omitted = server default
	StartDate           *string  `yaml:"start_date,omitempty" json:"start_date,omitempty"`                     // YYYY-MM-DD; omitted = today
}

func required(field string) error {
	return &projection.FieldError{Field: field, Reason: "is required"}
}

// Input converts f into a validated projection.Input. The returned error is a
// *projection.FieldError naming the first missing or invalid field.
func (f File) Input() (projection.Input, error) {
	var in projection.Input

	switch {
	case f.CurrentWeightKg == nil:
		return in, required("current_weight_kg")
	case f.TargetWeightKg == nil:
		return in, required("target_weight_kg")
	case f.HeightCm == nil:
		return in, required("height_cm")
	case f.AgeYears == nil:
		return in, required("age_years")
	case f.Sex == nil:
		return in, required("sex")
	case f.ActivityLevel == nil:
		return in, required("activity_level")
	case f.TrainingDaysPerWeek == nil:
		return in, required("training_days_per_week")
	}

	sex, err := projection.ParseSex(*f.Sex)
	if err != nil {
		return in, &projection.FieldError{Field: "sex", Reason: "must be male or female"}
	}
	level, err := projection.ParseActivityLevel(*f.ActivityLevel)
	if err != nil {
		return in, &projection.FieldError{Field: "activity_level", Reason: err.Error()}
	}

	in = projection.Input{
		CurrentWeightKg:     *f.CurrentWeightKg,
		TargetWeightKg:      *f.TargetWeightKg,
		HeightCm:            *f.HeightCm,
		AgeYears:            *f.AgeYears,
		Sex:                 sex,
		ActivityLevel:       level,
		TrainingDaysPerWeek: *f.TrainingDaysPerWeek,
	}
	if f.CaloriesPerSession != nil {
		kcal := *f.CaloriesPerSession
		in.CaloriesPerSession = &kcal
	}
	if err := in.Validate(); err != nil {
		return projection.Input{}, err
	}
	return in, nil
}

// Anchor returns the parsed start_date, ok=false when none was given.
func (f File) Anchor() (t time.Time, ok bool, err error) {
	if f.StartDate == nil || *f.StartDate == "" {
		return time.Time{}, false, nil
	}
	t, err = time.Parse(dateLayout, *f.StartDate)
	if err != nil {
		return time.Time{}, false, &projection.FieldError{Field: "start_date", Reason: "expected YYYY-MM-DD"}
	}
	return t, true, nil
}

// Clock returns a fixed clock at start_date, or fallback when none was given.
func (f File) Clock(fallback projection.Clock) (projection.Clock, error) {
	t, ok, err := f.Anchor()
	if err != nil {
		return nil, err
	}
	if !ok {
		return fallback, nil
	}
	return projection.FixedClock(t), nil
}

// Parse decodes a YAML scenario.
func Parse(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse scenario: %w", err)
	}
	return f, nil
}

// Load reads and decodes a YAML scenario file.
func Load(filename string) (File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return File{}, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

// Save writes f as YAML with a short header comment.
func Save(filename string, f File) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal scenario: %w", err)
	}

	header := []byte(`# Weight projection scenario
# sex: male | female
# activity_level: sedentary | lightly_active | moderately_active | very_active | extremely_active
# calories_per_session may be omitted to use the default (350 kcal)

`)
	if err := os.WriteFile(filename, append(header, data...), 0o644); err != nil {
		return fmt.Errorf("write scenario: %w", err)
	}
	return nil
}

// Example is the sample scenario written by `simulate -init`.
func Example() File {
	name := "example"
	current, target, height := 90.0, 85.0, 170.0
	age, days := 25, 3
	sex, level := string(projection.SexMale), string(projection.Sedentary)
	session := 300.0
	return File{
		Name:                &name,
		CurrentWeightKg:     &current,
		TargetWeightKg:      &target,
		HeightCm:            &height,
		AgeYears:            &age,
		Sex:                 &sex,
		ActivityLevel:       &level,
		TrainingDaysPerWeek: &days,
		CaloriesPerSession:  &session,
	}
}
