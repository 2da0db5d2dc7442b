package main

import (
	"fmt"

	"github.com/shopspring/decimal"

	"example.com/your_project/wardshift"
)

// document is the same two-table input shape wardshift's CLI reads (spec.md
// §6), repeated here so this binary has no import-time dependency on the
// other cmd package.
type document struct {
	Shifts []shiftRow `json:"shifts"`
	Tasks  []taskRow  `json:"tasks"`
}

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

func (d document) toRows() ([]wardshift.ShiftRow, []wardshift.TaskRow, error) {
	shiftRows := make([]wardshift.ShiftRow, len(d.Shifts))
	for i, s := range d.Shifts {
		row, err := s.toRow()
		if err != nil {
			return nil, nil, err
		}
		shiftRows[i] = row
	}

	taskRows := make([]wardshift.TaskRow, len(d.Tasks))
	for i, t := range d.Tasks {
		taskRows[i] = t.toRow()
	}

	return shiftRows, taskRows, nil
}
