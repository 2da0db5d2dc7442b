// Package tasks implements the C3 task expander: it turns each task
// template into one day-specific instance per active weekday, with a
// feasible start-block range and a fixed duration in blocks.
package tasks

import (
	"errors"
	"fmt"

	"example.com/your_project/wardshift/internal/timegrid"
)

// Sentinel errors identifying the two failure kinds the expander can
// surface (spec.md §7); callers at the pipeline boundary wrap these into
// *wardshift.Error with the matching Kind.
var (
	ErrNonAlignedDuration = errors.New("duration is not a multiple of BlockMinutes")
	ErrEmptyActiveDays    = errors.New("template has zero active days")
)

// Template is an immutable task template, the input to the expander.
type Template struct {
	Name            string
	WindowStart     timegrid.TimeOfDay
	WindowEnd       timegrid.TimeOfDay
	DurationMinutes int
	RequiredWorkers int
	ActiveDays      [7]bool
}

// Instance is one (task, active day) pair (spec.md §3). LatestBlockExt may
// exceed BlocksPerWeek-1 when the task's window wraps from Sunday into
// Monday; it is kept unreduced so the model can treat the feasible start
// range as a single linear interval (spec.md §4.3). Every consumer that
// needs a concrete block in [0, BlocksPerWeek) must reduce it with % first.
type Instance struct {
	TaskIndex       int
	DayIndex        int
	Name            string
	WindowStart     timegrid.TimeOfDay
	WindowEnd       timegrid.TimeOfDay
	EarliestBlock   int
	LatestBlockExt  int
	DurationBlocks  int
	RequiredWorkers int
}

// Expand lowers every template into its per-day instances. It returns
// ErrNonAlignedDuration if a duration is not a multiple of BlockMinutes, and
// ErrEmptyActiveDays if a template has no active day.
func Expand(templates []Template) ([]Instance, error) {
	instances := make([]Instance, 0, len(templates)*7)

	for taskIdx, tpl := range templates {
		if !anyActive(tpl.ActiveDays) {
			return nil, fmt.Errorf("task %q: %w", tpl.Name, ErrEmptyActiveDays)
		}
		if tpl.DurationMinutes%timegrid.BlockMinutes != 0 {
			return nil, fmt.Errorf("task %q: duration %dm: %w", tpl.Name, tpl.DurationMinutes, ErrNonAlignedDuration)
		}
		durationBlocks := tpl.DurationMinutes / timegrid.BlockMinutes

		for day := 0; day < 7; day++ {
			if !tpl.ActiveDays[day] {
				continue
			}
			dayOffset := timegrid.DayOffsetMinutes(day)
			earliestMin := dayOffset + tpl.WindowStart.Minutes()
			latestMin := dayOffset + tpl.WindowEnd.Minutes()
			if latestMin < earliestMin {
				latestMin += 24 * 60
			}

			earliestBlock := timegrid.MinuteToBlock(earliestMin)
			latestBlock := timegrid.MinuteToBlock(latestMin)

			// The raw latestBlock may exceed BlocksPerWeek-1 when the
			// window wraps Sunday->Monday (day==6 and latestMin pushed
			// past the week boundary); the model keeps the range linear
			// by re-extending it past BlocksPerWeek instead of reducing
			// it mod BlocksPerWeek (spec.md §4.3).
			latestBlockExt := latestBlock
			if latestBlockExt >= timegrid.BlocksPerWeek {
				latestBlockExt -= timegrid.BlocksPerWeek
			}
			if latestBlockExt < earliestBlock%timegrid.BlocksPerWeek {
				latestBlockExt += timegrid.BlocksPerWeek
			}

			instances = append(instances, Instance{
				TaskIndex:       taskIdx,
				DayIndex:        day,
				Name:            tpl.Name,
				WindowStart:     tpl.WindowStart,
				WindowEnd:       tpl.WindowEnd,
				EarliestBlock:   earliestBlock % timegrid.BlocksPerWeek,
				LatestBlockExt:  latestBlockExt,
				DurationBlocks:  durationBlocks,
				RequiredWorkers: tpl.RequiredWorkers,
			})
		}
	}

	return instances, nil
}

func anyActive(days [7]bool) bool {
	for _, d := range days {
		if d {
			return true
		}
	}
	return false
}
