// Package main holds the implementation of the ward-shift template.
package main

import (
	"context"
	"log"

	"github.com/nextmv-io/sdk/run"
	"github.com/nextmv-io/sdk/run/statistics"

	"example.com/your_project/wardshift"
)

// This template demonstrates how to solve a minimum-cost weekly nursing-ward
// staffing problem: an integer number of assignees per shift template, plus
// a chosen start time per task instance, subject to per-block coverage.
func main() {
	err := run.CLI(solver).Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}
}

// solver is the entrypoint run.CLI invokes with the decoded input and
// options; it delegates the whole pipeline (C1-C7) to wardshift.Run and
// formats the result into this template's output document.
func solver(_ context.Context, in input, opts options) (output, error) {
	shiftRows := make([]wardshift.ShiftRow, len(in.Shifts))
	for i, s := range in.Shifts {
		row, err := s.toRow()
		if err != nil {
			return output{}, err
		}
		shiftRows[i] = row
	}

	taskRows := make([]wardshift.TaskRow, len(in.Tasks))
	for i, t := range in.Tasks {
		taskRows[i] = t.toRow()
	}

	result, err := wardshift.Run(shiftRows, taskRows, opts.toConfig())
	if err != nil {
		return output{}, err
	}

	return format(result), nil
}

func format(result wardshift.Result) output {
	out := output{
		RunID:     result.RunID,
		TotalCost: result.Solution.TotalCost,
		Shifts:    make([]shiftUsageOut, len(result.Solution.Shifts)),
		Tasks:     make([]taskSolutionOut, len(result.Solution.Tasks)),
	}

	for i, s := range result.Solution.Shifts {
		out.Shifts[i] = shiftUsageOut{Name: s.Name, Usage: s.Usage, MaxNurses: s.MaxAssignees}
	}

	for i, t := range result.Solution.Tasks {
		out.Tasks[i] = taskSolutionOut{
			OriginalTaskIndex: t.OriginalTaskIndex,
			DayIndex:          t.DayIndex,
			TaskName:          t.TaskName,
			WindowStart:       formatTimeOfDay(t.WindowStart),
			WindowEnd:         formatTimeOfDay(t.WindowEnd),
			SolutionStart:     formatTimeOfDay(t.ChosenStart),
			DurationMinutes:   t.DurationMinutes,
			RequiredWorkers:   t.RequiredWorkers,
		}
	}

	for _, inc := range result.Solution.Incumbents {
		out.Incumbents = append(out.Incumbents, incumbentOut{
			Cost:             inc.Cost,
			WallClockSeconds: inc.WallClockSeconds,
		})
	}

	out.Validation = validationOut{
		Valid:              result.Validation.Valid(),
		CoverageViolations: len(result.Validation.CoverageViolations),
		WindowViolations:   len(result.Validation.WindowViolations),
		CapViolations:      len(result.Validation.CapViolations),
		PresenceViolations: len(result.Validation.PresenceViolations),
	}

	stats := statistics.NewStatistics()
	stats.Result = &statistics.Result{}
	value := statistics.Float64(out.TotalCost)
	stats.Result.Value = &value
	stats.Result.Custom = map[string]any{
		"run_id":            out.RunID,
		"shifts_used":       countUsedShifts(out.Shifts),
		"validation_passed": out.Validation.Valid,
	}
	out.Statistics = stats

	return out
}

func countUsedShifts(shifts []shiftUsageOut) int {
	n := 0
	for _, s := range shifts {
		if s.Usage > 0 {
			n++
		}
	}
	return n
}
