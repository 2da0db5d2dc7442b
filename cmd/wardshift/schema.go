package main

import (
	"fmt"

	"github.com/nextmv-io/sdk/run/statistics"
	"github.com/shopspring/decimal"

	"example.com/your_project/wardshift"
	"example.com/your_project/wardshift/internal/timegrid"
)

// input is the top-level JSON document this template reads (spec.md §6's
// two tables, plus runtime options via the teacher's struct-tag options
// convention).
type input struct {
	Shifts []shiftRow `json:"shifts"`
	Tasks  []taskRow  `json:"tasks"`
}

// shiftRow mirrors wardshift.ShiftRow at the JSON boundary, with weight
// carried as a string so it round-trips through decimal.Decimal without
// float drift (spec.md §9's exact-integer-objective invariant).
type shiftRow struct {
	Name          string `json:"name"`
	Start         string `json:"start"`
	End           string `json:"end"`
	Break         string `json:"break"`
	BreakDuration int    `json:"break_duration"`
	MaxNurses     int    `json:"max_nurses"`
	Weight        string `json:"weight"`
	Monday        bool   `json:"monday"`
	Tuesday       bool   `json:"tuesday"`
	Wednesday     bool   `json:"wednesday"`
	Thursday      bool   `json:"thursday"`
	Friday        bool   `json:"friday"`
	Saturday      bool   `json:"saturday"`
	Sunday        bool   `json:"sunday"`
}

func (r shiftRow) days() [7]bool {
	return [7]bool{r.Monday, r.Tuesday, r.Wednesday, r.Thursday, r.Friday, r.Saturday, r.Sunday}
}

func (r shiftRow) toRow() (wardshift.ShiftRow, error) {
	weight, err := decimal.NewFromString(r.Weight)
	if err != nil {
		return wardshift.ShiftRow{}, fmt.Errorf("shift %q: weight %q: %w", r.Name, r.Weight, err)
	}
	return wardshift.ShiftRow{
		Name:          r.Name,
		Start:         r.Start,
		End:           r.End,
		Break:         r.Break,
		BreakDuration: r.BreakDuration,
		MaxNurses:     r.MaxNurses,
		Weight:        weight,
		Days:          r.days(),
	}, nil
}

// taskRow mirrors wardshift.TaskRow at the JSON boundary.
type taskRow struct {
	Task           string `json:"task"`
	Start          string `json:"start"`
	End            string `json:"end"`
	DurationMin    int    `json:"duration_min"`
	NursesRequired int    `json:"nurses_required"`
	Monday         bool   `json:"monday"`
	Tuesday        bool   `json:"tuesday"`
	Wednesday      bool   `json:"wednesday"`
	Thursday       bool   `json:"thursday"`
	Friday         bool   `json:"friday"`
	Saturday       bool   `json:"saturday"`
	Sunday         bool   `json:"sunday"`
}

func (r taskRow) days() [7]bool {
	return [7]bool{r.Monday, r.Tuesday, r.Wednesday, r.Thursday, r.Friday, r.Saturday, r.Sunday}
}

func (r taskRow) toRow() wardshift.TaskRow {
	return wardshift.TaskRow{
		Task:           r.Task,
		Start:          r.Start,
		End:            r.End,
		DurationMin:    r.DurationMin,
		NursesRequired: r.NursesRequired,
		Days:           r.days(),
	}
}

// options holds the runtime configuration of spec.md §6, exposed through
// the teacher's usage/default struct-tag convention for run.CLI's flag
// filler and JSON-schema generator.
type options struct {
	MinAlwaysPresent int     `json:"min_always_present" usage:"ward-wide floor on supply - startsAt - H" default:"0"`
	MaxSolveSeconds  float64 `json:"max_solve_seconds" usage:"deadline passed to the backend, in seconds" default:"30"`
	Workers          int     `json:"workers" usage:"backend parallelism hint" default:"1"`
}

func (o options) toConfig() wardshift.Config {
	return wardshift.Config{
		MinAlwaysPresent: o.MinAlwaysPresent,
		MaxSolveSeconds:  o.MaxSolveSeconds,
		Workers:          o.Workers,
	}
}

type shiftUsageOut struct {
	Name      string `json:"name"`
	Usage     int    `json:"usage"`
	MaxNurses int    `json:"max_nurses"`
}

type taskSolutionOut struct {
	OriginalTaskIndex int    `json:"original_task_index"`
	DayIndex          int    `json:"day_index"`
	TaskName          string `json:"task_name"`
	WindowStart       string `json:"window_start"`
	WindowEnd         string `json:"window_end"`
	SolutionStart     string `json:"solution_start"`
	DurationMinutes   int    `json:"duration_minutes"`
	RequiredWorkers   int    `json:"required_workers"`
}

type incumbentOut struct {
	Cost             float64 `json:"cost"`
	WallClockSeconds float64 `json:"wall_clock_seconds"`
}

// validationOut summarizes the independent validator's report (spec.md
// §4.6): a single boolean plus a violation count per check, so the solver
// run and its self-check travel together in one output document.
type validationOut struct {
	Valid              bool `json:"valid"`
	CoverageViolations int  `json:"coverage_violations"`
	WindowViolations   int  `json:"window_violations"`
	CapViolations      int  `json:"cap_violations"`
	PresenceViolations int  `json:"presence_violations"`
}

type output struct {
	RunID      string                 `json:"run_id"`
	Shifts     []shiftUsageOut        `json:"shifts"`
	Tasks      []taskSolutionOut      `json:"tasks"`
	TotalCost  float64                `json:"total_cost"`
	Incumbents []incumbentOut         `json:"incumbents"`
	Validation validationOut          `json:"validation"`
	Statistics *statistics.Statistics `json:"statistics"`
}

func formatTimeOfDay(t timegrid.TimeOfDay) string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}
