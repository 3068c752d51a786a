package projection

import (
	"math"
	"reflect"
	"testing"
	"time"
)

var anchor = time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC)

// referenceInput is the 90kg → 85kg scenario with 3 sessions of 300 kcal.
func referenceInput() Input {
	session := 300.0
	return Input{
		CurrentWeightKg:     90,
		TargetWeightKg:      85,
		HeightCm:            170,
		AgeYears:            25,
		Sex:                 SexMale,
		ActivityLevel:       Sedentary,
		TrainingDaysPerWeek: 3,
		CaloriesPerSession:  &session,
	}
}

// noNoise fixes the clock and disables the weekly fluctuation.
func noNoise() Options {
	return Options{Clock: FixedClock(anchor), Fluctuation: FixedFluctuation(1)}
}

// countingFluctuation records how many factors were drawn.
type countingFluctuation struct {
	calls int
}

func (c *countingFluctuation) Factor() float64 {
	c.calls++
	return 1
}

/* ─── Deterministic trajectory ───────────────────────────────────────── */

// TestSimulate_ReferenceTrajectory checks the noise-free trajectory week by week.
// Week 1 loses 2·e^-0.1 ≈ 1.8097kg (90 → 88.19), week 2 2·e^-0.2 ≈ 1.6375kg,
// week 3 2·e^-0.3 ≈ 1.4816kg, and week 4 is clamped at the target.
func TestSimulate_ReferenceTrajectory(t *testing.T) {
	records := Simulate(referenceInput(), noNoise())

	wantWeights := []float64{88.2, 86.6, 85.1, 85.0}
	if len(records) != len(wantWeights) {
		t.Fatalf("expected %d weeks, got %d: %+v", len(wantWeights), len(records), records)
	}
	for i, want := range wantWeights {
		if records[i].WeightKg != want {
			t.Errorf("week %d weight = %v, want %v", i+1, records[i].WeightKg, want)
		}
	}

	// Week 1 energy: BMR(90) = 900 + 1062.5 - 125 + 5 = 1842.5, TEE = 2211, diet = 1768.8
	first := records[0]
	if first.TEEKcal != 2211 {
		t.Errorf("week 1 TEE = %d, want 2211", first.TEEKcal)
	}
	if first.DietTargetKcal != 1769 {
		t.Errorf("week 1 diet target = %d, want 1769", first.DietTargetKcal)
	}
	if first.TrainingKcal != 900 {
		t.Errorf("week 1 training = %d, want 900", first.TrainingKcal)
	}
	// Deficit = (2211 - 1768.8) + 900 = 1342.2
	if first.DeficitKcal != 1342 {
		t.Errorf("week 1 deficit = %d, want 1342", first.DeficitKcal)
	}

	// Week 2 uses the post-week-1 weight 88.1903...: BMR 1824.40, TEE 2189.28
	if records[1].TEEKcal != 2189 {
		t.Errorf("week 2 TEE = %d, want 2189", records[1].TEEKcal)
	}
	if records[1].TrainingKcal != 882 {
		t.Errorf("week 2 training = %d, want 882", records[1].TrainingKcal)
	}
}

func TestSimulate_FirstWeekLoss(t *testing.T) {
	records := Simulate(referenceInput(), noNoise())
	loss := 90 - 2*math.Exp(-0.1)
	if math.Abs(loss-88.1903) > 1e-4 {
		t.Fatalf("sanity: expected 88.1903, got %f", loss)
	}
	if records[0].WeightKg != 88.2 {
		t.Errorf("week 1 weight = %v, want 88.2", records[0].WeightKg)
	}
}

/* ─── Termination and bounds ─────────────────────────────────────────── */

func TestSimulate_TargetAtOrAboveCurrent(t *testing.T) {
	for _, target := range []float64{90, 95} {
		in := referenceInput()
		in.TargetWeightKg = target
		if records := Simulate(in, noNoise()); len(records) != 0 {
			t.Errorf("target %v: expected empty run, got %d weeks", target, len(records))
		}
	}
}

// TestSimulate_HorizonCap verifies a large goal stops at 52 weeks. The decaying
// loss sums to under 20kg, so 150 → 60 can never be reached.
func TestSimulate_HorizonCap(t *testing.T) {
	in := referenceInput()
	in.CurrentWeightKg = 150
	in.TargetWeightKg = 60
	records := Simulate(in, noNoise())
	if len(records) != MaxWeeks {
		t.Fatalf("expected %d weeks, got %d", MaxWeeks, len(records))
	}
	if records[len(records)-1].WeightKg <= 60 {
		t.Errorf("expected final weight above target, got %v", records[len(records)-1].WeightKg)
	}
}

// TestSimulate_Invariants runs many noisy inputs and checks the structural
// guarantees of every run.
func TestSimulate_Invariants(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		in := referenceInput()
		in.CurrentWeightKg = 60 + float64(seed)
		in.TargetWeightKg = in.CurrentWeightKg - float64(seed%17) - 0.5
		in.Sex = []Sex{SexMale, SexFemale}[seed%2]
		in.ActivityLevel = activityOrder[seed%5]

		records := Simulate(in, Options{Clock: FixedClock(anchor), Fluctuation: NewSeededFluctuation(seed)})
		if len(records) == 0 || len(records) > MaxWeeks {
			t.Fatalf("seed %d: run length %d out of range", seed, len(records))
		}

		prev := in.CurrentWeightKg
		for i, r := range records {
			if r.Week != i+1 {
				t.Errorf("seed %d: record %d has week %d", seed, i, r.Week)
			}
			if r.WeightKg > prev {
				t.Errorf("seed %d: weight increased at week %d: %v > %v", seed, r.Week, r.WeightKg, prev)
			}
			if r.WeightKg < in.TargetWeightKg {
				t.Errorf("seed %d: weight %v below target %v at week %d", seed, r.WeightKg, in.TargetWeightKg, r.Week)
			}
			if want := anchor.AddDate(0, 0, 7*r.Week); !r.Date.Equal(want) {
				t.Errorf("seed %d: week %d date = %v, want %v", seed, r.Week, r.Date, want)
			}
			prev = r.WeightKg
		}
	}
}

// TestSimulate_ClockReadOnce verifies dates come from one anchor even when the
// clock would move between reads.
func TestSimulate_ClockReadOnce(t *testing.T) {
	clock := &steppingClock{t: anchor}
	records := Simulate(referenceInput(), Options{Clock: clock, Fluctuation: FixedFluctuation(1)})
	if clock.reads != 1 {
		t.Errorf("clock read %d times, want 1", clock.reads)
	}
	for _, r := range records {
		if want := anchor.AddDate(0, 0, 7*r.Week); !r.Date.Equal(want) {
			t.Errorf("week %d date = %v, want %v", r.Week, r.Date, want)
		}
	}
}

type steppingClock struct {
	t     time.Time
	reads int
}

func (c *steppingClock) Now() time.Time {
	c.reads++
	now := c.t
	c.t = c.t.Add(time.Hour)
	return now
}

func TestSimulate_OneFactorPerWeek(t *testing.T) {
	f := &countingFluctuation{}
	records := Simulate(referenceInput(), Options{Clock: FixedClock(anchor), Fluctuation: f})
	if f.calls != len(records) {
		t.Errorf("drew %d factors for %d weeks", f.calls, len(records))
	}
}

/* ─── Randomness ─────────────────────────────────────────────────────── */

// TestSimulate_SeededIsIdempotent verifies identical seeds give identical runs.
func TestSimulate_SeededIsIdempotent(t *testing.T) {
	in := referenceInput()
	in.TargetWeightKg = 75
	a := Simulate(in, Options{Clock: FixedClock(anchor), Fluctuation: NewSeededFluctuation(42)})
	b := Simulate(in, Options{Clock: FixedClock(anchor), Fluctuation: NewSeededFluctuation(42)})
	if !reflect.DeepEqual(a, b) {
		t.Error("expected identical runs for identical seeds")
	}
}

func TestUniformFluctuation_Range(t *testing.T) {
	f := NewSeededFluctuation(7)
	for i := 0; i < 10000; i++ {
		v := f.Factor()
		if v < 0.95 || v > 1.05 {
			t.Fatalf("factor %v outside [0.95, 1.05]", v)
		}
	}
}

/* ─── Training session default ───────────────────────────────────────── */

func TestSimulate_DefaultSessionKcal(t *testing.T) {
	in := referenceInput()
	in.CaloriesPerSession = nil

	records := Simulate(in, noNoise())
	if records[0].TrainingKcal != 3*350 {
		t.Errorf("default training = %d, want %d", records[0].TrainingKcal, 3*350)
	}

	opts := noNoise()
	configured := 200.0
	opts.DefaultSessionKcal = &configured
	records = Simulate(in, opts)
	if records[0].TrainingKcal != 600 {
		t.Errorf("configured training = %d, want 600", records[0].TrainingKcal)
	}

	zero := 0.0
	opts.DefaultSessionKcal = &zero
	records = Simulate(in, opts)
	if records[0].TrainingKcal != 0 {
		t.Errorf("zero default training = %d, want 0", records[0].TrainingKcal)
	}
	if got := opts.SessionKcal(in); got != 0 {
		t.Errorf("SessionKcal = %v, want 0", got)
	}
}

// TestSimulate_RoundedWeightHeldAtTarget uses a two-decimal target that plain
// rounding would undershoot (85.04 rounds to 85.0).
func TestSimulate_RoundedWeightHeldAtTarget(t *testing.T) {
	in := referenceInput()
	in.TargetWeightKg = 85.04
	records := Simulate(in, noNoise())
	last := records[len(records)-1]
	if !last.AtTarget {
		t.Fatalf("expected last week clamped, got %+v", last)
	}
	for _, r := range records {
		if r.WeightKg < in.TargetWeightKg {
			t.Errorf("week %d weight %v below target %v", r.Week, r.WeightKg, in.TargetWeightKg)
		}
	}
	if last.WeightKg != 85.04 {
		t.Errorf("final weight = %v, want 85.04", last.WeightKg)
	}
}

// TestSimulate_TrainingDoesNotChangeWeight verifies training burn is display-only.
func TestSimulate_TrainingDoesNotChangeWeight(t *testing.T) {
	in := referenceInput()
	withTraining := Simulate(in, noNoise())
	in.TrainingDaysPerWeek = 0
	without := Simulate(in, noNoise())
	for i := range withTraining {
		if withTraining[i].WeightKg != without[i].WeightKg {
			t.Errorf("week %d weight differs: %v vs %v", i+1, withTraining[i].WeightKg, without[i].WeightKg)
		}
	}
}
