package assemble_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/your_project/wardshift/internal/assemble"
	"example.com/your_project/wardshift/internal/backend"
	"example.com/your_project/wardshift/internal/coverage"
	"example.com/your_project/wardshift/internal/model"
	"example.com/your_project/wardshift/internal/tasks"
	"example.com/your_project/wardshift/internal/timegrid"
)

type fixedSolution struct {
	values    map[int]float64
	objective float64
}

func (f fixedSolution) IsOptimal() bool  { return true }
func (f fixedSolution) IsFeasible() bool { return true }
func (f fixedSolution) ValueOf(v backend.Var) float64 {
	return f.values[varID(v)]
}
func (f fixedSolution) ObjectiveValue() float64 { return f.objective }

func varID(v backend.Var) int {
	switch vv := v.(type) {
	case backend.IntVar:
		return vv.VarID
	case backend.BoolVar:
		return vv.VarID
	}
	return -1
}

func TestAssembleProducesUsageAndTaskRows(t *testing.T) {
	usageVar := backend.IntVar{VarID: 1, Lo: 0, Hi: 5}
	startVar := backend.IntVar{VarID: 2, Lo: 36, Hi: 44}

	sol := fixedSolution{
		values:    map[int]float64{1: 3, 2: 37},
		objective: 9300, // scaled cost: 3 * 31 * 100
	}

	shifts := []coverage.Compiled{{Name: "D", MaxAssignees: 5, LengthBlocks: 31, WeightScaled: 100}}
	instances := []tasks.Instance{{
		TaskIndex: 0, DayIndex: 0, Name: "round",
		WindowStart: timegrid.TimeOfDay{Hour: 9}, WindowEnd: timegrid.TimeOfDay{Hour: 11},
		EarliestBlock: 36, LatestBlockExt: 44, DurationBlocks: 4, RequiredWorkers: 2,
	}}
	built := model.Built{Usage: []backend.IntVar{usageVar}, Start: []backend.IntVar{startVar}}

	out := assemble.Assemble(sol, built, shifts, instances, 100)

	require.Len(t, out.Shifts, 1)
	require.Equal(t, 3, out.Shifts[0].Usage)
	require.Equal(t, "D", out.Shifts[0].Name)

	require.Len(t, out.Tasks, 1)
	require.Equal(t, timegrid.TimeOfDay{Hour: 9, Minute: 15}, out.Tasks[0].ChosenStart)
	require.Equal(t, 60, out.Tasks[0].DurationMinutes)

	require.InDelta(t, 93.0, out.TotalCost, 1e-9)
}

func TestIncumbentStreamConvertsScaledCost(t *testing.T) {
	s := assemble.NewIncumbentStream(100)
	s.Push(backend.Incumbent{Objective: 9300, Elapsed: 2 * time.Second})
	s.Push(backend.Incumbent{Objective: 9000, Elapsed: 5 * time.Second})

	records := s.Records()
	require.Len(t, records, 2)
	require.InDelta(t, 93.0, records[0].Cost, 1e-9)
	require.InDelta(t, 90.0, records[1].Cost, 1e-9)
	require.InDelta(t, 5.0, records[1].WallClockSeconds, 1e-9)
}
