package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"lg/weight-projection-go-api/internal/projection"
	"lg/weight-projection-go-api/internal/report"
	"lg/weight-projection-go-api/internal/scenario"
)

// run is one simulation built from a request body.
type run struct {
	id      string
	input   projection.Input
	opts    projection.Options
	records []projection.WeeklyRecord
	summary projection.Summary
}

// runFromRequest binds and validates the body and runs the simulation.
// On failure it has already written the error response and returns ok=false.
func (h *Handler) runFromRequest(c *gin.Context) (run, bool) {
	var body scenario.File
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return run{}, false
	}

	in, err := body.Input()
	var clock projection.Clock
	if err == nil {
		clock, err = body.Clock(h.clock)
	}
	if err != nil {
		var fe *projection.FieldError
		if errors.As(err, &fe) {
			apiError(c, http.StatusBadRequest, fe.Error())
		} else {
			apiError(c, http.StatusBadRequest, "invalid request body")
		}
		return run{}, false
	}

	r := run{
		id:    h.newRunID(),
		input: in,
		opts: projection.Options{
			Clock:              clock,
			Fluctuation:        h.newFluctuation(),
			DefaultSessionKcal: &h.cfg.DefaultSessionKcal,
		},
	}
	r.records = projection.Simulate(r.input, r.opts)
	r.summary = projection.Summarize(r.input, r.records)
	return r, true
}

// simulate runs a projection and returns the weeks, summary and chart series.
// POST /api/simulate. Body: scenario.File JSON. An unreachable target is not an
// error: the response carries an empty weeks array and the "not possible" summary.
func (h *Handler) simulate(c *gin.Context) {
	r, ok := h.runFromRequest(c)
	if !ok {
		return
	}

	log.Debug().Str("handler", "simulate").Str("run_id", r.id).
		Int("weeks", r.summary.Weeks).Bool("reached", r.summary.Reached).Msg("simulation complete")

	c.JSON(http.StatusOK, newSimulateResponse(r.id, r.opts.SessionKcal(r.input), r.summary, r.records))
}

// simulateReport runs a projection and returns it as a PDF attachment.
// POST /api/simulate/report. Same body as /api/simulate.
func (h *Handler) simulateReport(c *gin.Context) {
	r, ok := h.runFromRequest(c)
	if !ok {
		return
	}

	data, err := report.GeneratePDF(r.summary, r.records, report.Meta{
		RunID:       r.id,
		GeneratedAt: h.clock.Now(),
		Input:       r.input,
		SessionKcal: r.opts.SessionKcal(r.input),
		Charts:      report.DefaultChartOptions,
	})
	if err != nil {
		log.Error().Err(err).Str("handler", "simulateReport").Str("run_id", r.id).Msg("pdf generation failed")
		apiError(c, http.StatusInternalServerError, "failed to generate report")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="weight-projection-`+r.id+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// getActivityLevels lists the selectable activity levels with their multipliers.
// GET /api/activity-levels.
func (h *Handler) getActivityLevels(c *gin.Context) {
	c.JSON(http.StatusOK, projection.ActivityLevels())
}
