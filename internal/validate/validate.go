// Package validate implements the C7 independent validator: it recomputes
// supply and demand vectors directly from the two output tables (shift usage,
// task solution) and checks the four invariants of spec.md §4.6, without
// calling into internal/model or internal/backend. It exists to catch a
// defect in the constraint model itself, so it must not share the model's
// code path (spec.md §9).
package validate

import (
	"example.com/your_project/wardshift/internal/assemble"
	"example.com/your_project/wardshift/internal/coverage"
	"example.com/your_project/wardshift/internal/timegrid"
)

// CoverageViolation reports a block where recomputed demand exceeds
// recomputed supply.
type CoverageViolation struct {
	Block   int
	Supply  int
	Demand  int
	Missing int
}

// WindowViolation reports a task instance whose chosen start time-of-day
// falls outside its allowable window.
type WindowViolation struct {
	OriginalTaskIndex int
	DayIndex          int
	TaskName          string
	WindowStart       timegrid.TimeOfDay
	WindowEnd         timegrid.TimeOfDay
	ChosenStart       timegrid.TimeOfDay
}

// CapViolation reports a shift template whose assigned usage exceeds its
// declared maximum.
type CapViolation struct {
	TemplateIndex int
	Name          string
	Usage         int
	MaxAssignees  int
}

// PresenceViolation reports a block with zero recomputed shift supply,
// independent of task demand.
type PresenceViolation struct {
	Block int
}

// Report is the full result of an independent validation pass.
type Report struct {
	CoverageViolations []CoverageViolation
	WindowViolations   []WindowViolation
	CapViolations      []CapViolation
	PresenceViolations []PresenceViolation
}

// Valid reports whether every check passed.
func (r Report) Valid() bool {
	return len(r.CoverageViolations) == 0 &&
		len(r.WindowViolations) == 0 &&
		len(r.CapViolations) == 0 &&
		len(r.PresenceViolations) == 0
}

// ShiftInput pairs an original shift template with the usage count the
// solver assigned to it.
type ShiftInput struct {
	Template coverage.Template
	Usage    int
}

// Validate recomputes supply/demand independently of C4/C5 and checks
// coverage, window, cap, and non-empty-presence (spec.md §4.6). floor is the
// ward-wide minimum headcount every block must satisfy regardless of task
// demand (the same value passed to model.Build as minAlwaysPresent); pass 0
// to disable that check, or 1 to match the reference "always one nurse
// available" rule.
func Validate(shifts []ShiftInput, tasks []assemble.TaskSolution, floor int) Report {
	supply, briefingBlocks := computeSupply(shifts)
	demand := computeDemand(tasks, briefingBlocks)

	var report Report

	for b := 0; b < timegrid.BlocksPerWeek; b++ {
		need := demand[b]
		if floor > need {
			need = floor
		}
		if supply[b] < need {
			report.CoverageViolations = append(report.CoverageViolations, CoverageViolation{
				Block:   b,
				Supply:  supply[b],
				Demand:  need,
				Missing: need - supply[b],
			})
		}
		if supply[b] == 0 {
			report.PresenceViolations = append(report.PresenceViolations, PresenceViolation{Block: b})
		}
	}

	for _, t := range tasks {
		if !inWindow(t.WindowStart, t.WindowEnd, t.ChosenStart) {
			report.WindowViolations = append(report.WindowViolations, WindowViolation{
				OriginalTaskIndex: t.OriginalTaskIndex,
				DayIndex:          t.DayIndex,
				TaskName:          t.TaskName,
				WindowStart:       t.WindowStart,
				WindowEnd:         t.WindowEnd,
				ChosenStart:       t.ChosenStart,
			})
		}
	}

	for i, in := range shifts {
		if in.Usage > in.Template.MaxAssignees {
			report.CapViolations = append(report.CapViolations, CapViolation{
				TemplateIndex: i,
				Name:          in.Template.Name,
				Usage:         in.Usage,
				MaxAssignees:  in.Template.MaxAssignees,
			})
		}
	}

	return report
}

// briefingKey identifies one (day, time-of-day) start combination, shared by
// however many templates happen to start there — the reference validator
// counts the handover/briefing nurse once per unique combination, not once
// per template (it de-duplicates (day, start) pairs before counting).
type briefingKey struct {
	day   int
	block int
}

// computeSupply walks every used template's active days directly from its
// start/end/break fields (not coverage.Compile's bitmap), building a
// per-block headcount with the handover block excluded from supply — the
// validator's side of the same convention the model builder expresses by
// subtracting StartsAt[b] and H[b] from supply (spec.md §9). It also collects the set of
// unique (day, start-block) combinations, needed to add the briefing nurse to
// demand exactly once per combination.
func computeSupply(shifts []ShiftInput) ([timegrid.BlocksPerWeek]int, map[briefingKey]bool) {
	var supply [timegrid.BlocksPerWeek]int
	briefing := map[briefingKey]bool{}

	for _, in := range shifts {
		if in.Usage <= 0 {
			continue
		}
		tpl := in.Template

		startMin := tpl.Start.Minutes()
		endMin := tpl.End.Minutes()
		if endMin <= startMin {
			endMin += timegrid.MinutesPerWeek / 7
		}

		breakStartMin, breakEndMin := startMin, startMin
		if tpl.BreakDuration > 0 {
			breakStartMin = tpl.BreakStart.Minutes()
			if breakStartMin < startMin {
				breakStartMin += timegrid.MinutesPerWeek / 7
			}
			breakEndMin = breakStartMin + tpl.BreakDuration
			if breakEndMin > endMin {
				breakEndMin = endMin
			}
			if breakEndMin < breakStartMin {
				breakEndMin = breakStartMin
			}
		}

		for day := 0; day < 7; day++ {
			if !tpl.ActiveDays[day] {
				continue
			}
			dayOffset := day * (timegrid.MinutesPerWeek / 7)

			startBlock := timegrid.MinuteToBlock(dayOffset + startMin)
			workStartBlock := startBlock + 1 // skip the handover/briefing block
			breakStartBlock := timegrid.MinuteToBlock(dayOffset + breakStartMin)
			breakEndBlock := timegrid.MinuteToBlock(dayOffset + breakEndMin)
			endBlockExcl := timegrid.MinuteToBlock(dayOffset + endMin)

			// breakStartBlock/breakEndBlock equal startBlock when there's no
			// break (breakStartMin == breakEndMin == startMin), so both range
			// starts must be floored at workStartBlock or the handover block
			// gets its usage added back into supply.
			if breakStartBlock < workStartBlock {
				breakStartBlock = workStartBlock
			}
			if breakEndBlock < workStartBlock {
				breakEndBlock = workStartBlock
			}

			addBlockRange(&supply, workStartBlock, breakStartBlock, in.Usage)
			addBlockRange(&supply, breakEndBlock, endBlockExcl, in.Usage)

			briefing[briefingKey{day: day, block: mod(startBlock, timegrid.BlocksPerWeek)}] = true
		}
	}

	return supply, briefing
}

// computeDemand sums each task instance's chosen interval plus one briefing
// nurse per unique (day, start) combination recorded by computeSupply.
func computeDemand(tasks []assemble.TaskSolution, briefing map[briefingKey]bool) [timegrid.BlocksPerWeek]int {
	var demand [timegrid.BlocksPerWeek]int

	for _, t := range tasks {
		durationBlocks := t.DurationMinutes / timegrid.BlockMinutes
		addBlockRange(&demand, t.ChosenStartBlock, t.ChosenStartBlock+durationBlocks, t.RequiredWorkers)
	}

	for key := range briefing {
		demand[key.block]++
	}

	return demand
}

// addBlockRange adds amount to every block in [start, endExclusive), wrapping
// through the week boundary as many times as the range's length requires.
func addBlockRange(arr *[timegrid.BlocksPerWeek]int, start, endExclusive, amount int) {
	for b := start; b < endExclusive; b++ {
		arr[mod(b, timegrid.BlocksPerWeek)] += amount
	}
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// inWindow reports whether chosen's time-of-day falls within [start,end],
// treating start>end as a window that crosses midnight (spec.md §4.6,
// mirroring the reference validator's task_in_window).
func inWindow(start, end, chosen timegrid.TimeOfDay) bool {
	s, e, c := start.Minutes(), end.Minutes(), chosen.Minutes()
	if s <= e {
		return s <= c && c <= e
	}
	return c >= s || c <= e
}
