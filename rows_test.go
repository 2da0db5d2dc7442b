package wardshift

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"example.com/your_project/wardshift/internal/timegrid"
)

func TestShiftRowToTemplateParsesTimesAndScalesWeight(t *testing.T) {
	row := ShiftRow{
		Name:          "D",
		Start:         "08:00",
		End:           "16:00",
		Break:         "12:00",
		BreakDuration: 30,
		MaxNurses:     5,
		Weight:        decimal.NewFromFloat(1.00),
		Days:          [7]bool{true},
	}

	tpl, err := row.ToTemplate()
	require.NoError(t, err)
	require.Equal(t, timegrid.TimeOfDay{Hour: 8}, tpl.Start)
	require.Equal(t, timegrid.TimeOfDay{Hour: 16}, tpl.End)
	require.Equal(t, 100, tpl.WeightScaled)
	require.Equal(t, 5, tpl.MaxAssignees)
}

func TestShiftRowToTemplateRejectsMalformedTime(t *testing.T) {
	row := ShiftRow{Name: "D", Start: "8am", End: "16:00", Break: "12:00"}

	_, err := row.ToTemplate()
	require.Error(t, err)
	var wsErr *Error
	require.ErrorAs(t, err, &wsErr)
	require.Equal(t, KindMalformedTime, wsErr.Kind)
}

func TestShiftRowToTemplateRejectsMinuteNotOnBlockBoundary(t *testing.T) {
	row := ShiftRow{Name: "D", Start: "08:07", End: "16:00", Break: "12:00"}

	_, err := row.ToTemplate()
	require.Error(t, err)
	var wsErr *Error
	require.ErrorAs(t, err, &wsErr)
	require.Equal(t, KindMalformedTime, wsErr.Kind)
}

func TestShiftRowToTemplateAcceptsEndOfDaySentinel(t *testing.T) {
	row := ShiftRow{Name: "D", Start: "00:00", End: "24:00", Break: "00:00"}

	tpl, err := row.ToTemplate()
	require.NoError(t, err)
	require.Equal(t, timegrid.TimeOfDay{Hour: 24}, tpl.End)
}

func TestTaskRowToTemplateParsesWindow(t *testing.T) {
	row := TaskRow{
		Task:           "round",
		Start:          "09:00",
		End:            "11:00",
		DurationMin:    60,
		NursesRequired: 2,
		Days:           [7]bool{true},
	}

	tpl, err := row.ToTemplate()
	require.NoError(t, err)
	require.Equal(t, "round", tpl.Name)
	require.Equal(t, 60, tpl.DurationMinutes)
	require.Equal(t, 2, tpl.RequiredWorkers)
}
