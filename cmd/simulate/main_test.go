package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeScenario writes an example scenario with a fixed start date.
func writeScenario(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "scenario.yaml")
	var out bytes.Buffer
	if err := run(options{initPath: path}, &out); err != nil {
		t.Fatalf("init: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read scenario: %v", err)
	}
	data = append(data, []byte("start_date: \"2026-01-05\"\n")...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	return path
}

func TestRun_Table(t *testing.T) {
	path := writeScenario(t, t.TempDir())
	var out bytes.Buffer
	if err := run(options{scenarioPath: path, noNoise: true, sessionKcal: 350}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	if !strings.HasPrefix(got, "Target weight reached in approximately 4 weeks, around 2 February 2026.") {
		t.Errorf("unexpected summary line: %q", got)
	}
	if !strings.Contains(got, "2026-01-12") || !strings.Contains(got, "88.2") {
		t.Errorf("expected week 1 row in table:\n%s", got)
	}
}

func TestRun_JSONAndPDF(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir)
	pdfPath := filepath.Join(dir, "report.pdf")

	var out bytes.Buffer
	if err := run(options{scenarioPath: path, asJSON: true, pdfPath: pdfPath, seed: 3, sessionKcal: 350}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	var resp struct {
		Summary struct {
			Reached bool `json:"reached"`
		} `json:"summary"`
		Weeks []struct {
			Week int `json:"week"`
		} `json:"weeks"`
	}
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json output: %v", err)
	}
	if !resp.Summary.Reached || len(resp.Weeks) == 0 {
		t.Errorf("unexpected output: %+v", resp)
	}

	data, err := os.ReadFile(pdfPath)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("report is not a PDF")
	}
}

func TestRun_ZeroSessionKcal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	// A scenario without calories_per_session falls back to -session-kcal.
	data := "current_weight_kg: 90\ntarget_weight_kg: 85\nheight_cm: 170\nage_years: 25\n" +
		"sex: male\nactivity_level: sedentary\ntraining_days_per_week: 3\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}

	var out bytes.Buffer
	if err := run(options{scenarioPath: path, asJSON: true, noNoise: true}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	var resp struct {
		Weeks []struct {
			TrainingKcal int `json:"training_kcal"`
		} `json:"weeks"`
	}
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json output: %v", err)
	}
	if len(resp.Weeks) == 0 || resp.Weeks[0].TrainingKcal != 0 {
		t.Errorf("expected zero training kcal, got %+v", resp.Weeks)
	}

	if err := run(options{scenarioPath: path, sessionKcal: -1}, &bytes.Buffer{}); err == nil {
		t.Error("expected error for negative -session-kcal")
	}
}

func TestEnvNumbers(t *testing.T) {
	t.Setenv("SIM_SEED", "")
	t.Setenv("SIM_DEFAULT_SESSION_KCAL", "")
	if seed, err := envInt64("SIM_SEED", 0); err != nil || seed != 0 {
		t.Errorf("unset seed: got %d, %v", seed, err)
	}
	if kcal, err := envFloat("SIM_DEFAULT_SESSION_KCAL", 350); err != nil || kcal != 350 {
		t.Errorf("unset session kcal: got %v, %v", kcal, err)
	}

	t.Setenv("SIM_SEED", "42")
	t.Setenv("SIM_DEFAULT_SESSION_KCAL", "0")
	if seed, err := envInt64("SIM_SEED", 0); err != nil || seed != 42 {
		t.Errorf("seed: got %d, %v", seed, err)
	}
	if kcal, err := envFloat("SIM_DEFAULT_SESSION_KCAL", 350); err != nil || kcal != 0 {
		t.Errorf("zero session kcal: got %v, %v", kcal, err)
	}

	t.Setenv("SIM_SEED", "abc")
	t.Setenv("SIM_DEFAULT_SESSION_KCAL", "lots")
	if _, err := envInt64("SIM_SEED", 0); err == nil || !strings.Contains(err.Error(), "SIM_SEED") {
		t.Errorf("expected SIM_SEED error, got %v", err)
	}
	if _, err := envFloat("SIM_DEFAULT_SESSION_KCAL", 350); err == nil {
		t.Error("expected SIM_DEFAULT_SESSION_KCAL error")
	}
}

func TestRun_Errors(t *testing.T) {
	if err := run(options{}, &bytes.Buffer{}); err == nil {
		t.Error("expected error without -scenario")
	}

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("current_weight_kg: 90\n"), 0o644)
	err := run(options{scenarioPath: bad}, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "target_weight_kg") {
		t.Errorf("expected missing target_weight_kg error, got %v", err)
	}
}
