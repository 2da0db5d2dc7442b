package model_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/your_project/wardshift/internal/backend"
	"example.com/your_project/wardshift/internal/coverage"
	"example.com/your_project/wardshift/internal/model"
	"example.com/your_project/wardshift/internal/tasks"
	"example.com/your_project/wardshift/internal/timegrid"
)

// countingBackend is a structural fake: it accepts every call the model
// builder makes and counts variables/constraints, without solving anything.
// It lets the builder's wiring (variable counts, no panics, capacity
// pre-check) be tested without a real MIP solver.
type countingBackend struct {
	nextID           int
	intVars          int
	boolVars         int
	leCalls, geCalls, eqCalls int
	condLE, condGE   int
	andReifies       int
	orReifies        int
	objectiveTerms   int
}

func (c *countingBackend) NewIntVar(lo, hi int) backend.IntVar {
	c.nextID++
	c.intVars++
	return backend.IntVar{VarID: c.nextID, Lo: lo, Hi: hi}
}

func (c *countingBackend) NewBoolVar() backend.BoolVar {
	c.nextID++
	c.boolVars++
	return backend.BoolVar{VarID: c.nextID}
}

func (c *countingBackend) LinearLE(terms []backend.Term, rhs float64) { c.leCalls++ }
func (c *countingBackend) LinearGE(terms []backend.Term, rhs float64) { c.geCalls++ }
func (c *countingBackend) LinearEQ(terms []backend.Term, rhs float64) { c.eqCalls++ }
func (c *countingBackend) ConditionalLE(under backend.BoolVar, terms []backend.Term, rhs float64) {
	c.condLE++
}
func (c *countingBackend) ConditionalGE(under backend.BoolVar, terms []backend.Term, rhs float64) {
	c.condGE++
}
func (c *countingBackend) AndReify(lhs backend.BoolVar, operands []backend.BoolVar) { c.andReifies++ }
func (c *countingBackend) OrReify(lhs backend.BoolVar, operands []backend.BoolVar)  { c.orReifies++ }
func (c *countingBackend) Minimize(terms []backend.Term)                           { c.objectiveTerms += len(terms) }
func (c *countingBackend) Optimize(ctx context.Context, deadline time.Duration, workers int, onImprovement func(backend.Incumbent)) (backend.Solution, error) {
	return nil, nil
}

func singleShift(name string, maxAssignees int, weightScaled int, start, end timegrid.TimeOfDay) coverage.Template {
	tpl := coverage.Template{Name: name, Start: start, End: end, MaxAssignees: maxAssignees, WeightScaled: weightScaled}
	tpl.ActiveDays[0] = true
	return tpl
}

func TestBuildWiresOneUsageAndStartVarPerInput(t *testing.T) {
	shiftTpl := singleShift("D", 5, 100, timegrid.TimeOfDay{Hour: 8}, timegrid.TimeOfDay{Hour: 16})
	compiled, err := coverage.Compile([]coverage.Template{shiftTpl})
	require.NoError(t, err)

	taskTpl := tasks.Template{
		Name:            "round",
		WindowStart:     timegrid.TimeOfDay{Hour: 9},
		WindowEnd:       timegrid.TimeOfDay{Hour: 11},
		DurationMinutes: 60,
		RequiredWorkers: 2,
	}
	taskTpl.ActiveDays[0] = true
	instances, err := tasks.Expand([]tasks.Template{taskTpl})
	require.NoError(t, err)

	cb := &countingBackend{}
	built, err := model.Build(cb, compiled.Shifts, instances, 0)
	require.NoError(t, err)

	require.Len(t, built.Usage, 1)
	require.Len(t, built.Start, 1)
	// one H[b] bool per block, plus per-instance aux1/aux2/A[i,b] booleans.
	require.Equal(t, timegrid.BlocksPerWeek, cb.boolVars-countTaskBools(instances))
	require.Greater(t, cb.objectiveTerms, 0)
}

func countTaskBools(instances []tasks.Instance) int {
	n := 0
	for _, inst := range instances {
		extRange := inst.LatestBlockExt + inst.DurationBlocks - inst.EarliestBlock
		// aux1 + notAux1 + aux2 + notAux2 per extended block, plus one A
		// var per unique block mod BlocksPerWeek (<= extRange, and equal to
		// it whenever the extended range never wraps back over itself).
		n += extRange*4 + extRange
	}
	return n
}

func TestBuildDetectsCapacityInfeasible(t *testing.T) {
	shiftTpl := singleShift("D", 1, 100, timegrid.TimeOfDay{Hour: 8}, timegrid.TimeOfDay{Hour: 16})
	compiled, err := coverage.Compile([]coverage.Template{shiftTpl})
	require.NoError(t, err)

	// Window narrower than duration (45 min window for a 60 min task): slack
	// = 3 blocks < 4 block duration, so a non-empty mandatory core exists
	// (block 39) whose demand exceeds the single available assignee.
	taskTpl := tasks.Template{
		Name:            "round",
		WindowStart:     timegrid.TimeOfDay{Hour: 9},
		WindowEnd:       timegrid.TimeOfDay{Hour: 9, Minute: 45},
		DurationMinutes: 60,
		RequiredWorkers: 5,
	}
	taskTpl.ActiveDays[0] = true
	instances, err := tasks.Expand([]tasks.Template{taskTpl})
	require.NoError(t, err)

	cb := &countingBackend{}
	_, err = model.Build(cb, compiled.Shifts, instances, 0)
	require.Error(t, err)
	var capErr *model.CapacityInfeasibleError
	require.ErrorAs(t, err, &capErr)
}

func TestBuildAppliesGlobalFloor(t *testing.T) {
	shiftTpl := singleShift("D", 1, 100, timegrid.TimeOfDay{Hour: 0}, timegrid.TimeOfDay{Hour: 24})
	for d := 0; d < 7; d++ {
		shiftTpl.ActiveDays[d] = true
	}
	compiled, err := coverage.Compile([]coverage.Template{shiftTpl})
	require.NoError(t, err)

	cb := &countingBackend{}
	_, err = model.Build(cb, compiled.Shifts, nil, 1)
	require.NoError(t, err)
	// one GE call per block for coverage, plus one more per block for the
	// minAlwaysPresent floor, plus one handover StartsAt>=H constraint for
	// each of the 7 daily start blocks.
	require.Equal(t, 2*timegrid.BlocksPerWeek+7, cb.geCalls)
}
