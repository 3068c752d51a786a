// CLI tool to run a weight projection from a YAML scenario file.
// Prints the summary line and a week-by-week table; optionally writes the
// PDF report and/or the weeks as JSON.
// Usage: go run ./cmd/simulate -scenario scenario.yaml [-pdf out.pdf] [-json] [-seed N]
//
//	go run ./cmd/simulate -init scenario.yaml   (writes an example scenario)
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"lg/weight-projection-go-api/internal/projection"
	"lg/weight-projection-go-api/internal/report"
	"lg/weight-projection-go-api/internal/scenario"
)

type options struct {
	scenarioPath string
	initPath     string
	pdfPath      string
	asJSON       bool
	seed         int64
	sessionKcal  float64
	noNoise      bool
}

func main() {
	// .env is optional for the CLI.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		os.Exit(1)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	seed, err := envInt64("SIM_SEED", 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	sessionKcal, err := envFloat("SIM_DEFAULT_SESSION_KCAL", projection.DefaultSessionKcal)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var opts options
	flag.StringVar(&opts.scenarioPath, "scenario", "", "YAML scenario file to simulate")
	flag.StringVar(&opts.initPath, "init", "", "write an example scenario to this path and exit")
	flag.StringVar(&opts.pdfPath, "pdf", "", "write the PDF report to this path")
	flag.BoolVar(&opts.asJSON, "json", false, "print the weeks as JSON instead of a table")
	flag.Int64Var(&opts.seed, "seed", seed, "random seed (0 = seed from clock)")
	flag.Float64Var(&opts.sessionKcal, "session-kcal", sessionKcal,
		"kcal per training session when the scenario omits calories_per_session")
	flag.BoolVar(&opts.noNoise, "no-noise", false, "disable the weekly ±5% variation")
	flag.Parse()

	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options, out io.Writer) error {
	if opts.initPath != "" {
		if err := scenario.Save(opts.initPath, scenario.Example()); err != nil {
			return err
		}
		fmt.Fprintf(out, "Example scenario written to %s\n", opts.initPath)
		return nil
	}
	if opts.scenarioPath == "" {
		return errors.New("-scenario is required (or -init to create one)")
	}
	if opts.sessionKcal < 0 || math.IsNaN(opts.sessionKcal) || math.IsInf(opts.sessionKcal, 0) {
		return fmt.Errorf("-session-kcal must be a non-negative number, got %v", opts.sessionKcal)
	}

	f, err := scenario.Load(opts.scenarioPath)
	if err != nil {
		return err
	}
	in, err := f.Input()
	if err != nil {
		return err
	}
	clock, err := f.Clock(projection.SystemClock{})
	if err != nil {
		return err
	}

	simOpts := projection.Options{Clock: clock, DefaultSessionKcal: &opts.sessionKcal}
	switch {
	case opts.noNoise:
		simOpts.Fluctuation = projection.FixedFluctuation(1)
	case opts.seed != 0:
		simOpts.Fluctuation = projection.NewSeededFluctuation(opts.seed)
	}

	records := projection.Simulate(in, simOpts)
	summary := projection.Summarize(in, records)
	log.Debug().Str("scenario", opts.scenarioPath).Int("weeks", len(records)).Msg("simulation complete")

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(struct {
			Summary projection.Summary        `json:"summary"`
			Weeks   []projection.WeeklyRecord `json:"weeks"`
		}{summary, records}); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	} else {
		fmt.Fprintln(out, summary.Message)
		if len(records) > 0 {
			printTable(out, records)
		}
	}

	if opts.pdfPath != "" {
		data, err := report.GeneratePDF(summary, records, report.Meta{
			RunID:       uuid.New().String(),
			GeneratedAt: time.Now(),
			Input:       in,
			SessionKcal: simOpts.SessionKcal(in),
			Charts:      report.DefaultChartOptions,
		})
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.pdfPath, data, 0o644); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
		log.Info().Str("path", opts.pdfPath).Msg("report written")
	}
	return nil
}

func printTable(out io.Writer, records []projection.WeeklyRecord) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Week\tDate\tWeight (kg)\tTEE (kcal)\tDiet (kcal)\tTraining (kcal)\t")
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%s\t%.1f\t%d\t%d\t%d\t\n",
			r.Week, r.Date.Format("2006-01-02"), r.WeightKg, r.TEEKcal, r.DietTargetKcal, r.TrainingKcal)
	}
	tw.Flush()
}

// envInt64 and envFloat read optional numeric settings; unset means def,
// anything unparsable is an error as it is for the server.
func envInt64(key string, def int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}
