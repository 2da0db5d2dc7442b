// Package assemble implements the C6 solution assembler: it translates a
// solved model back into shift usage counts and per-instance start times,
// and tracks the improving-solution stream for diagnostics (spec.md §4.5).
package assemble

import (
	"example.com/your_project/wardshift/internal/backend"
	"example.com/your_project/wardshift/internal/coverage"
	"example.com/your_project/wardshift/internal/model"
	"example.com/your_project/wardshift/internal/tasks"
	"example.com/your_project/wardshift/internal/timegrid"
)

// ShiftUsage is the usage column appended to the original shift table.
type ShiftUsage struct {
	TemplateIndex int
	Name          string
	Usage         int
	MaxAssignees  int
}

// TaskSolution is one row of the task-solution table (spec.md §6).
type TaskSolution struct {
	OriginalTaskIndex int
	DayIndex          int
	TaskName          string
	WindowStart       timegrid.TimeOfDay
	WindowEnd         timegrid.TimeOfDay
	ChosenStart       timegrid.TimeOfDay
	// ChosenStartBlock is the raw S[i] mod BlocksPerWeek value the solver
	// chose. ChosenStart (a bare time-of-day) loses which calendar day a
	// wrapped start lands on; the validator needs this absolute block to
	// place demand correctly, so both are carried.
	ChosenStartBlock int
	DurationMinutes  int
	RequiredWorkers  int
}

// Incumbent is one (cost, wallClockSeconds) record of the improving-solution
// stream, in the externally reported (already-unscaled) cost units.
type Incumbent struct {
	Cost           float64
	WallClockSeconds float64
}

// Output is the full result of assembly (spec.md §4.5/§6).
type Output struct {
	Shifts      []ShiftUsage
	Tasks       []TaskSolution
	TotalCost   float64
	Incumbents  []Incumbent
}

// Assemble reads every variable from sol and formats the two output tables
// plus total cost, on OPTIMAL or FEASIBLE. weightScale is the integer
// objective's scale factor (100, spec.md §3/§9): totalCost = objective /
// weightScale.
func Assemble(
	sol backend.Solution,
	built model.Built,
	shifts []coverage.Compiled,
	instances []tasks.Instance,
	weightScale float64,
) Output {
	out := Output{
		Shifts: make([]ShiftUsage, len(shifts)),
		Tasks:  make([]TaskSolution, len(instances)),
	}

	for i, sh := range shifts {
		out.Shifts[i] = ShiftUsage{
			TemplateIndex: i,
			Name:          sh.Name,
			Usage:         int(sol.ValueOf(built.Usage[i]) + 0.5),
			MaxAssignees:  sh.MaxAssignees,
		}
	}

	for i, inst := range instances {
		startBlock := int(sol.ValueOf(built.Start[i])+0.5) % timegrid.BlocksPerWeek
		out.Tasks[i] = TaskSolution{
			OriginalTaskIndex: inst.TaskIndex,
			DayIndex:          inst.DayIndex,
			TaskName:          inst.Name,
			WindowStart:       inst.WindowStart,
			WindowEnd:         inst.WindowEnd,
			ChosenStart:       timegrid.BlockToTimeOfDay(startBlock),
			ChosenStartBlock:  startBlock,
			DurationMinutes:   inst.DurationBlocks * timegrid.BlockMinutes,
			RequiredWorkers:   inst.RequiredWorkers,
		}
	}

	out.TotalCost = sol.ObjectiveValue() / weightScale
	return out
}

// IncumbentStream accumulates backend.Incumbent records pushed across the
// Optimize suspension boundary into assemble.Incumbent records, performing
// the scaled-to-reported cost conversion once per record (spec.md §4.5,
// §5's "single producer, single consumer" ordering guarantee).
type IncumbentStream struct {
	weightScale float64
	records     []Incumbent
}

// NewIncumbentStream constructs a stream that converts scaled objective
// values to reported cost using weightScale.
func NewIncumbentStream(weightScale float64) *IncumbentStream {
	return &IncumbentStream{weightScale: weightScale}
}

// Push is the callback passed to backend.Backend.Optimize as onImprovement,
// so it runs while Optimize is in progress. It is not safe for concurrent
// use: calls must come from one goroutine at a time (the go-highs backend
// calls it once, on the goroutine that called Optimize).
func (s *IncumbentStream) Push(inc backend.Incumbent) {
	s.records = append(s.records, Incumbent{
		Cost:             inc.Objective / s.weightScale,
		WallClockSeconds: inc.Elapsed.Seconds(),
	})
}

// Records returns the accumulated stream in non-decreasing arrival order
// (spec.md §5: "non-increasing objective order" as the solver improves).
func (s *IncumbentStream) Records() []Incumbent {
	return append([]Incumbent(nil), s.records...)
}
