// Package coverage implements the C2 coverage compiler: it lowers shift
// templates into per-block "worker active here" bitmaps, handling
// day-of-week recurrence, midnight crossings, and break removal.
package coverage

import (
	"errors"
	"fmt"

	"example.com/your_project/wardshift/internal/timegrid"
)

// Template is an immutable shift template, the input to the compiler.
type Template struct {
	Name          string
	Start, End    timegrid.TimeOfDay
	BreakStart    timegrid.TimeOfDay
	BreakDuration int // minutes
	ActiveDays    [7]bool
	MaxAssignees  int
	WeightScaled  int // round(weight * 100), computed by the caller
}

// Compiled is the output of the compiler for one Template (spec.md §3).
type Compiled struct {
	Name         string
	Coverage     timegrid.Bitmap
	StartBlocks  []int // one entry per active day, may repeat across days
	LengthBlocks int
	WeightScaled int
	MaxAssignees int
}

// Warning is a non-fatal downgrade recorded while compiling (spec.md §7's
// BreakOutsideShift).
type Warning struct {
	TemplateIndex int
	TemplateName  string
	Message       string
}

// Result is the full output of Compile: one Compiled per input template,
// a global index of start blocks to the templates that start there, and any
// downgrade warnings. internal/model does not read StartBlockIndex; it
// rebuilds the same index from each Compiled's StartBlocks.
type Result struct {
	Shifts          []Compiled
	StartBlockIndex map[int][]int // block -> template indices starting there
	Warnings        []Warning
}

// Compile lowers every template into a Compiled coverage bitmap. It returns
// an error wrapping ErrEmptyActiveDays if any template has no active day.
func Compile(templates []Template) (Result, error) {
	result := Result{
		Shifts:          make([]Compiled, len(templates)),
		StartBlockIndex: map[int][]int{},
	}

	for idx, tpl := range templates {
		if !anyActive(tpl.ActiveDays) {
			return Result{}, fmt.Errorf("shift %q: %w", tpl.Name, ErrEmptyActiveDays)
		}

		var bitmap timegrid.Bitmap
		startBlocks := make([]int, 0, 7)

		for day := 0; day < 7; day++ {
			if !tpl.ActiveDays[day] {
				continue
			}
			dayOffset := timegrid.DayOffsetMinutes(day)

			startMin := dayOffset + tpl.Start.Minutes()
			endMin := dayOffset + tpl.End.Minutes()
			if endMin <= startMin {
				// shift crosses midnight into the next day
				endMin += 24 * 60
			}

			breakStart := dayOffset + tpl.BreakStart.Minutes()
			if breakStart < startMin {
				breakStart += 24 * 60
			}
			breakEnd := breakStart + tpl.BreakDuration

			// clamp the break to [startMin, endMin]
			if breakEnd > endMin {
				breakEnd = endMin
			}
			if breakEnd < breakStart {
				breakEnd = breakStart
			}
			breakWasClamped := tpl.BreakDuration > 0 && breakEnd <= breakStart
			if breakWasClamped {
				result.Warnings = append(result.Warnings, Warning{
					TemplateIndex: idx,
					TemplateName:  tpl.Name,
					Message:       "break outside shift after clamping; proceeding with no break removed",
				})
			}

			bitmap.SetRange(startMin, endMin)
			if breakEnd > breakStart {
				bitmap.ClearRange(breakStart, breakEnd)
			}

			startBlock := timegrid.MinuteToBlock(startMin) % timegrid.BlocksPerWeek
			startBlocks = append(startBlocks, startBlock)
			result.StartBlockIndex[startBlock] = append(result.StartBlockIndex[startBlock], idx)
		}

		result.Shifts[idx] = Compiled{
			Name:         tpl.Name,
			Coverage:     bitmap,
			StartBlocks:  startBlocks,
			LengthBlocks: bitmap.Popcount(),
			WeightScaled: tpl.WeightScaled,
			MaxAssignees: tpl.MaxAssignees,
		}
	}

	return result, nil
}

func anyActive(days [7]bool) bool {
	for _, d := range days {
		if d {
			return true
		}
	}
	return false
}

// ErrEmptyActiveDays is wrapped (not a *wardshift.Error directly) to keep
// this leaf package free of a dependency on the root package; callers at
// the pipeline boundary translate it into a *wardshift.Error of
// KindEmptyActiveDays.
var ErrEmptyActiveDays = errors.New("template has zero active days")

// IsEmptyActiveDays reports whether err originates from an empty active-day
// set, for callers that want to branch on it without importing the
// internal sentinel.
func IsEmptyActiveDays(err error) bool {
	return errors.Is(err, ErrEmptyActiveDays)
}
