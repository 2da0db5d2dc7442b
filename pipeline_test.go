package wardshift

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// These tests exercise the error-wiring paths of Run that are reached before
// the backend is ever invoked (row decoding, coverage compilation, task
// expansion, and the model builder's capacity pre-check), so they need no
// real MIP solve.

func TestRunSurfacesMalformedTimeBeforeSolving(t *testing.T) {
	shiftRows := []ShiftRow{{
		Name: "D", Start: "not-a-time", End: "16:00", Break: "12:00",
		MaxNurses: 5, Weight: decimal.NewFromInt(1), Days: [7]bool{true},
	}}

	_, err := Run(shiftRows, nil, DefaultConfig())
	require.Error(t, err)
	var wsErr *Error
	require.ErrorAs(t, err, &wsErr)
	require.Equal(t, KindMalformedTime, wsErr.Kind)
}

func TestRunSurfacesEmptyActiveDays(t *testing.T) {
	shiftRows := []ShiftRow{{
		Name: "D", Start: "08:00", End: "16:00", Break: "12:00",
		MaxNurses: 5, Weight: decimal.NewFromInt(1), // Days left all-false
	}}

	_, err := Run(shiftRows, nil, DefaultConfig())
	require.Error(t, err)
	var wsErr *Error
	require.ErrorAs(t, err, &wsErr)
	require.Equal(t, KindEmptyActiveDays, wsErr.Kind)
}

func TestRunSurfacesCapacityInfeasibleBeforeSolving(t *testing.T) {
	// One nurse's worth of capacity, but a mandatory task demand of 5: the
	// window (45 min) is narrower than the duration (60 min), so part of
	// the placement range is mandatory regardless of the chosen start.
	shiftRows := []ShiftRow{{
		Name: "D", Start: "08:00", End: "16:00", Break: "00:00",
		MaxNurses: 1, Weight: decimal.NewFromInt(1), Days: [7]bool{true},
	}}
	taskRows := []TaskRow{{
		Task: "round", Start: "09:00", End: "09:45",
		DurationMin: 60, NursesRequired: 5, Days: [7]bool{true},
	}}

	_, err := Run(shiftRows, taskRows, DefaultConfig())
	require.Error(t, err)
	var wsErr *Error
	require.ErrorAs(t, err, &wsErr)
	require.Equal(t, KindCapacityInfeasible, wsErr.Kind)
}

func TestRunSurfacesNonAlignedDuration(t *testing.T) {
	shiftRows := []ShiftRow{{
		Name: "D", Start: "08:00", End: "16:00", Break: "00:00",
		MaxNurses: 5, Weight: decimal.NewFromInt(1), Days: [7]bool{true},
	}}
	taskRows := []TaskRow{{
		Task: "round", Start: "09:00", End: "10:00",
		DurationMin: 7, NursesRequired: 1, Days: [7]bool{true},
	}}

	_, err := Run(shiftRows, taskRows, DefaultConfig())
	require.Error(t, err)
	var wsErr *Error
	require.ErrorAs(t, err, &wsErr)
	require.Equal(t, KindNonAlignedDuration, wsErr.Kind)
}
