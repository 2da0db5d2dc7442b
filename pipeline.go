// Package wardshift orchestrates the full minimum-cost weekly nursing-ward
// staffing pipeline: row decoding, coverage compilation (C2), task expansion
// (C3), model construction (C4) against a backend (C5), solution assembly
// (C6), and independent validation (C7).
package wardshift

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"example.com/your_project/wardshift/internal/assemble"
	"example.com/your_project/wardshift/internal/backend"
	"example.com/your_project/wardshift/internal/coverage"
	"example.com/your_project/wardshift/internal/model"
	"example.com/your_project/wardshift/internal/tasks"
	"example.com/your_project/wardshift/internal/validate"
)

// Result bundles the assembled solution with its independent validation
// report, so callers never see one without the other.
type Result struct {
	RunID      string
	Solution   assemble.Output
	Validation validate.Report
}

// Run executes the full pipeline over the given rows under cfg. It returns a
// *Error with the relevant Kind (spec.md §7) on any core failure; the
// backend itself is constructed fresh per call and released on return
// (spec.md §9's "no global state").
func Run(shiftRows []ShiftRow, taskRows []TaskRow, cfg Config) (Result, error) {
	runID := uuid.NewString()
	log := NewLogger(runID)

	shiftTemplates := make([]coverage.Template, len(shiftRows))
	for i, row := range shiftRows {
		tpl, err := row.ToTemplate()
		if err != nil {
			return Result{RunID: runID}, err
		}
		shiftTemplates[i] = tpl
	}

	taskTemplates := make([]tasks.Template, len(taskRows))
	for i, row := range taskRows {
		tpl, err := row.ToTemplate()
		if err != nil {
			return Result{RunID: runID}, err
		}
		taskTemplates[i] = tpl
	}

	log.Info("compiling coverage", "shifts", len(shiftTemplates))
	compiled, err := coverage.Compile(shiftTemplates)
	if err != nil {
		return Result{RunID: runID}, wrapError(KindEmptyActiveDays, "compile coverage", err)
	}
	for _, w := range compiled.Warnings {
		log.Warn("break outside shift, proceeding with empty break",
			"template", w.TemplateName, "message", w.Message)
	}

	log.Info("expanding tasks", "tasks", len(taskTemplates))
	instances, err := tasks.Expand(taskTemplates)
	if err != nil {
		switch {
		case errors.Is(err, tasks.ErrNonAlignedDuration):
			return Result{RunID: runID}, wrapError(KindNonAlignedDuration, "expand tasks", err)
		case errors.Is(err, tasks.ErrEmptyActiveDays):
			return Result{RunID: runID}, wrapError(KindEmptyActiveDays, "expand tasks", err)
		default:
			return Result{RunID: runID}, wrapError(KindBackendFault, "expand tasks", err)
		}
	}

	b := backend.NewHIGHSBackend()

	log.Info("building model", "shifts", len(compiled.Shifts), "instances", len(instances))
	built, err := model.Build(b, compiled.Shifts, instances, cfg.MinAlwaysPresent)
	if err != nil {
		var capErr *model.CapacityInfeasibleError
		if errors.As(err, &capErr) {
			return Result{RunID: runID}, newBlockError(KindCapacityInfeasible, capErr.Error(), capErr.Block)
		}
		return Result{RunID: runID}, wrapError(KindBackendFault, "build model", err)
	}

	stream := assemble.NewIncumbentStream(weightScale)
	log.Info("solving", "deadline_seconds", cfg.MaxSolveSeconds, "workers", cfg.Workers)
	sol, err := b.Optimize(context.Background(), cfg.Deadline(), cfg.Workers, func(inc backend.Incumbent) {
		stream.Push(inc)
		log.Info("incumbent", "objective", inc.Objective, "elapsed", inc.Elapsed)
	})
	if err != nil {
		return Result{RunID: runID}, wrapError(KindBackendFault, "optimize", err)
	}
	if sol == nil || !sol.IsFeasible() {
		return Result{RunID: runID}, newError(KindNoSolution, "backend returned neither optimal nor feasible before the deadline")
	}

	out := assemble.Assemble(sol, built, compiled.Shifts, instances, weightScale)
	out.Incumbents = stream.Records()

	log.Info("validating", "shifts", len(out.Shifts), "tasks", len(out.Tasks))
	shiftInputs := make([]validate.ShiftInput, len(shiftTemplates))
	for i, tpl := range shiftTemplates {
		shiftInputs[i] = validate.ShiftInput{Template: tpl, Usage: out.Shifts[i].Usage}
	}
	report := validate.Validate(shiftInputs, out.Tasks, cfg.MinAlwaysPresent)

	return Result{RunID: runID, Solution: out, Validation: report}, nil
}
