package wardshift

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"example.com/your_project/wardshift/internal/coverage"
	"example.com/your_project/wardshift/internal/tasks"
	"example.com/your_project/wardshift/internal/timegrid"
)

// ShiftRow is one input row of the shift table (spec.md §6's logical
// fields). Column names at the parser boundary are not this core's
// contract; callers populate this struct however their tabular source
// presents it.
type ShiftRow struct {
	Name          string
	Start         string // "HH:MM"
	End           string // "HH:MM"
	Break         string // "HH:MM"
	BreakDuration int    // minutes
	MaxNurses     int
	Weight        decimal.Decimal
	Days          [7]bool // Monday=0 ... Sunday=6
}

// TaskRow is one input row of the task table (spec.md §6's logical fields).
type TaskRow struct {
	Task           string
	Start          string // "HH:MM" window start
	End            string // "HH:MM" window end
	DurationMin    int
	NursesRequired int
	Days           [7]bool
}

// parseTimeOfDay parses "HH:MM" under spec.md §7's MalformedTime rule:
// 0<=hh<=24, 0<=mm<60, mm mod 15 = 0.
func parseTimeOfDay(s string) (timegrid.TimeOfDay, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return timegrid.TimeOfDay{}, wrapError(KindMalformedTime, fmt.Sprintf("%q is not HH:MM", s), nil)
	}
	hh, errH := strconv.Atoi(parts[0])
	mm, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil {
		return timegrid.TimeOfDay{}, wrapError(KindMalformedTime, fmt.Sprintf("%q is not HH:MM", s), nil)
	}
	if hh < 0 || hh > 24 || mm < 0 || mm >= 60 || mm%timegrid.BlockMinutes != 0 {
		return timegrid.TimeOfDay{}, wrapError(KindMalformedTime, fmt.Sprintf("%q is out of range", s), nil)
	}
	if hh == 24 && mm != 0 {
		return timegrid.TimeOfDay{}, wrapError(KindMalformedTime, fmt.Sprintf("%q: 24:mm only valid as 24:00", s), nil)
	}
	return timegrid.TimeOfDay{Hour: hh, Minute: mm}, nil
}

// weightScale is §3/§9's fixed integer scale factor: weightScaled =
// round(weight * 100), performed once, here, at the input boundary.
const weightScale = 100

func scaleWeight(w decimal.Decimal) int {
	return int(w.Mul(decimal.NewFromInt(weightScale)).Round(0).IntPart())
}

// ToTemplate converts the row into a coverage.Template (spec.md §3's
// ShiftTemplate), resolving all three HH:MM fields and the weight scale.
func (r ShiftRow) ToTemplate() (coverage.Template, error) {
	start, err := parseTimeOfDay(r.Start)
	if err != nil {
		return coverage.Template{}, err
	}
	end, err := parseTimeOfDay(r.End)
	if err != nil {
		return coverage.Template{}, err
	}
	breakStart, err := parseTimeOfDay(r.Break)
	if err != nil {
		return coverage.Template{}, err
	}

	return coverage.Template{
		Name:          r.Name,
		Start:         start,
		End:           end,
		BreakStart:    breakStart,
		BreakDuration: r.BreakDuration,
		ActiveDays:    r.Days,
		MaxAssignees:  r.MaxNurses,
		WeightScaled:  scaleWeight(r.Weight),
	}, nil
}

// ToTemplate converts the row into a tasks.Template (spec.md §3's
// TaskTemplate).
func (r TaskRow) ToTemplate() (tasks.Template, error) {
	start, err := parseTimeOfDay(r.Start)
	if err != nil {
		return tasks.Template{}, err
	}
	end, err := parseTimeOfDay(r.End)
	if err != nil {
		return tasks.Template{}, err
	}

	return tasks.Template{
		Name:            r.Task,
		WindowStart:     start,
		WindowEnd:       end,
		DurationMinutes: r.DurationMin,
		RequiredWorkers: r.NursesRequired,
		ActiveDays:      r.Days,
	}, nil
}
