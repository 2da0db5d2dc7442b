package coverage_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/your_project/wardshift/internal/coverage"
	"example.com/your_project/wardshift/internal/timegrid"
)

func tod(h, m int) timegrid.TimeOfDay { return timegrid.TimeOfDay{Hour: h, Minute: m} }

func TestCompileSimpleDayShiftWithBreak(t *testing.T) {
	tpl := coverage.Template{
		Name:          "D",
		Start:         tod(8, 0),
		End:           tod(16, 0),
		BreakStart:    tod(12, 0),
		BreakDuration: 30,
		MaxAssignees:  5,
		WeightScaled:  100,
	}
	tpl.ActiveDays[0] = true // Monday

	result, err := coverage.Compile([]coverage.Template{tpl})
	require.NoError(t, err)
	require.Len(t, result.Shifts, 1)

	shift := result.Shifts[0]
	// 8 hours = 32 blocks, minus 2 break blocks (30 min).
	require.Equal(t, 30, shift.LengthBlocks)
	require.Equal(t, shift.LengthBlocks, shift.Coverage.Popcount())
	require.Equal(t, []int{32}, shift.StartBlocks) // 08:00 = block 32

	// break blocks (12:00-12:30 => blocks 48,49) must be clear.
	require.False(t, shift.Coverage[48])
	require.False(t, shift.Coverage[49])
	require.True(t, shift.Coverage[47])
	require.True(t, shift.Coverage[50])
}

// TestCompileMidnightWrap is spec.md §8 property 6 / scenario E2's template.
func TestCompileMidnightWrap(t *testing.T) {
	tpl := coverage.Template{
		Name:         "N",
		Start:        tod(23, 0),
		End:          tod(7, 0),
		MaxAssignees: 2,
		WeightScaled: 150,
	}
	tpl.ActiveDays[0] = true // Monday 23:00 -> Tuesday 07:00

	result, err := coverage.Compile([]coverage.Template{tpl})
	require.NoError(t, err)

	shift := result.Shifts[0]
	require.Equal(t, 32, shift.LengthBlocks) // 8 hours, no break
	// Monday 23:00 = block 92, Tuesday 07:00 = block 96+28 = 124 (exclusive).
	for b := 92; b < 124; b++ {
		require.True(t, shift.Coverage[b], "block %d", b)
	}
	require.False(t, shift.Coverage[91])
	require.False(t, shift.Coverage[124])
}

func TestCompileEmptyActiveDaysFails(t *testing.T) {
	tpl := coverage.Template{Name: "ghost", Start: tod(8, 0), End: tod(16, 0)}
	_, err := coverage.Compile([]coverage.Template{tpl})
	require.Error(t, err)
	require.True(t, coverage.IsEmptyActiveDays(err))
}

func TestCompileZeroLengthBreakLeavesCoverageUntouched(t *testing.T) {
	tpl := coverage.Template{
		Name:          "D",
		Start:         tod(8, 0),
		End:           tod(16, 0),
		BreakStart:    tod(12, 0),
		BreakDuration: 0,
		MaxAssignees:  1,
	}
	tpl.ActiveDays[0] = true

	result, err := coverage.Compile([]coverage.Template{tpl})
	require.NoError(t, err)
	require.Equal(t, 32, result.Shifts[0].LengthBlocks)
}

func TestCompileEndOfDaySentinelDoesNotWrap(t *testing.T) {
	tpl := coverage.Template{
		Name:         "late",
		Start:        tod(16, 0),
		End:          tod(24, 0),
		MaxAssignees: 1,
	}
	tpl.ActiveDays[0] = true

	result, err := coverage.Compile([]coverage.Template{tpl})
	require.NoError(t, err)
	shift := result.Shifts[0]
	require.Equal(t, 32, shift.LengthBlocks)
	require.True(t, shift.Coverage[95])
	require.False(t, shift.Coverage[96])
}

func TestCompileSharedStartBlockRecordsBothTemplates(t *testing.T) {
	a := coverage.Template{Name: "A", Start: tod(8, 0), End: tod(16, 0), MaxAssignees: 3}
	a.ActiveDays[0] = true
	b := coverage.Template{Name: "B", Start: tod(8, 0), End: tod(12, 0), MaxAssignees: 2}
	b.ActiveDays[0] = true

	result, err := coverage.Compile([]coverage.Template{a, b})
	require.NoError(t, err)
	require.ElementsMatch(t, []int{0, 1}, result.StartBlockIndex[32])
}
