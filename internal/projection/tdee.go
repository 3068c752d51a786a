package projection

import (
	"fmt"
	"strings"
)

// Sex selects the Mifflin-St Jeor constant.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ActivityLevel is one of the five fixed activity categories.
type ActivityLevel string

const (
	Sedentary        ActivityLevel = "sedentary"
	LightlyActive    ActivityLevel = "lightly_active"
	ModeratelyActive ActivityLevel = "moderately_active"
	VeryActive       ActivityLevel = "very_active"
	ExtremelyActive  ActivityLevel = "extremely_active"
)

// defaultMultiplier is used for any level outside the table.
const defaultMultiplier = 1.2

// activityMultipliers maps each activity level to its TDEE multiplier.
// This is the single source of truth for valid activity levels; ParseActivityLevel
// and the /api/activity-levels listing both read from it.
var activityMultipliers = map[ActivityLevel]float64{
	Sedentary:        1.2,
	LightlyActive:    1.375,
	ModeratelyActive: 1.55,
	VeryActive:       1.725,
	ExtremelyActive:  1.9,
}

// activityOrder is the display order, least to most active.
var activityOrder = []ActivityLevel{Sedentary, LightlyActive, ModeratelyActive, VeryActive, ExtremelyActive}

var activityLabels = map[ActivityLevel]string{
	Sedentary:        "Sedentary",
	LightlyActive:    "Lightly active",
	ModeratelyActive: "Moderately active",
	VeryActive:       "Very active",
	ExtremelyActive:  "Extremely active",
}

// activityAliases accepts the Portuguese form labels.
var activityAliases = map[string]ActivityLevel{
	"sedentario":          Sedentary,
	"sedentário":          Sedentary,
	"levemente ativo":     LightlyActive,
	"moderadamente ativo": ModeratelyActive,
	"muito ativo":         VeryActive,
	"extremamente ativo":  ExtremelyActive,
}

var sexAliases = map[string]Sex{
	"male":      SexMale,
	"m":         SexMale,
	"masculino": SexMale,
	"female":    SexFemale,
	"f":         SexFemale,
	"feminino":  SexFemale,
}

// BMR computes basal metabolic rate (kcal/day) via Mifflin-St Jeor.
// Any sex other than SexMale takes the female constant.
func BMR(weightKg, heightCm float64, ageYears int, sex Sex) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(ageYears)
	if sex == SexMale {
		return bmr + 5
	}
	return bmr - 161
}

// Multiplier returns the TDEE multiplier for the level, 1.2 if the level is not
// one of the five known values.
func (a ActivityLevel) Multiplier() float64 {
	if m, ok := activityMultipliers[a]; ok {
		return m
	}
	return defaultMultiplier
}

// Label is the human-readable form used on the calculator page.
func (a ActivityLevel) Label() string {
	if l, ok := activityLabels[a]; ok {
		return l
	}
	return string(a)
}

// Valid reports whether a is one of the five known levels.
func (a ActivityLevel) Valid() bool {
	_, ok := activityMultipliers[a]
	return ok
}

// Valid reports whether s is SexMale or SexFemale.
func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}

// MultiplierFor looks up a free-form label case-insensitively and falls back to
// the sedentary multiplier when nothing matches.
func MultiplierFor(label string) float64 {
	level, err := ParseActivityLevel(label)
	if err != nil {
		return defaultMultiplier
	}
	return level.Multiplier()
}

// normalizeLabel lowercases and maps spaces and hyphens onto the snake_case form.
func normalizeLabel(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	s = strings.ReplaceAll(s, "-", "_")
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "_", " ")), "_")
}

// ParseActivityLevel resolves a label to an ActivityLevel. Canonical names,
// their spaced or hyphenated spellings and the Portuguese form labels are accepted.
func ParseActivityLevel(label string) (ActivityLevel, error) {
	key := normalizeLabel(label)
	if level := ActivityLevel(key); level.Valid() {
		return level, nil
	}
	if level, ok := activityAliases[strings.ReplaceAll(key, "_", " ")]; ok {
		return level, nil
	}
	return "", fmt.Errorf("unknown activity level %q", label)
}

// ParseSex resolves a label to a Sex.
func ParseSex(label string) (Sex, error) {
	if s, ok := sexAliases[normalizeLabel(label)]; ok {
		return s, nil
	}
	return "", fmt.Errorf("unknown sex %q", label)
}

// ActivityLevelInfo describes one selectable activity level.
type ActivityLevelInfo struct {
	Value      ActivityLevel `json:"value"`
	Label      string        `json:"label"`
	Multiplier float64       `json:"multiplier"`
}

// ActivityLevels lists the known levels in display order.
func ActivityLevels() []ActivityLevelInfo {
	out := make([]ActivityLevelInfo, 0, len(activityOrder))
	for _, a := range activityOrder {
		out = append(out, ActivityLevelInfo{Value: a, Label: a.Label(), Multiplier: a.Multiplier()})
	}
	return out
}
