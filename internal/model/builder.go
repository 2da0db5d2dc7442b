// Package model implements the C4 constraint model builder: it assembles
// integer usage variables, task start variables, reified block-occupancy
// booleans, handover logic, per-block coverage constraints, and the cost
// objective, against the abstract backend.Backend contract (spec.md §4.4).
package model

import (
	"fmt"

	"example.com/your_project/wardshift/internal/backend"
	"example.com/your_project/wardshift/internal/coverage"
	"example.com/your_project/wardshift/internal/tasks"
	"example.com/your_project/wardshift/internal/timegrid"
)

// Built holds the variable handles the caller needs after Optimize returns
// to extract a solution (spec.md §4.5): one usage var per shift template,
// one start var per task instance.
type Built struct {
	Usage []backend.IntVar // indexed like the input []coverage.Compiled
	Start []backend.IntVar // indexed like the input []tasks.Instance
}

// CapacityInfeasibleError reports the block at which the sum of
// maxAssignees across shifts covering it falls below the demand that is
// mandatory there regardless of how tasks are scheduled (spec.md §7's
// CapacityInfeasible, detected before the solver runs).
type CapacityInfeasibleError struct {
	Block   int
	Have    int
	Need    int
}

func (e *CapacityInfeasibleError) Error() string {
	return fmt.Sprintf("block %d: capacity %d below mandatory demand %d", e.Block, e.Have, e.Need)
}

// Build constructs the full model described in spec.md §4.4 against b and
// returns the variable handles needed to extract a solution. minAlwaysPresent
// is the ward-wide floor (§6's runtime configuration).
func Build(b backend.Backend, shifts []coverage.Compiled, instances []tasks.Instance, minAlwaysPresent int) (Built, error) {
	if err := checkCapacity(shifts, instances); err != nil {
		return Built{}, err
	}

	usage := make([]backend.IntVar, len(shifts))
	for i, sh := range shifts {
		usage[i] = b.NewIntVar(0, sh.MaxAssignees)
	}

	start := make([]backend.IntVar, len(instances))
	active := make([]map[int]backend.BoolVar, len(instances)) // block mod 672 -> A[i,b]

	for i, inst := range instances {
		start[i] = b.NewIntVar(inst.EarliestBlock, inst.LatestBlockExt)
		active[i] = reifyActiveBlocks(b, start[i], inst)
	}

	startBlockIndex := shiftStartBlockIndex(shifts)
	handover := buildHandover(b, shifts, usage, startBlockIndex)
	postCoverage(b, shifts, usage, instances, active, handover, minAlwaysPresent)
	postObjective(b, shifts, usage)

	return Built{Usage: usage, Start: start}, nil
}

// reifyActiveBlocks creates A[i,b] for every block b in the instance's
// extended active range [earliestBlock, latestBlockExt+duration), keyed by
// b mod BlocksPerWeek, and reifies each against the start variable:
//
//	A[i,b] <=> (S[i] <= b) AND (b < S[i] + duration)
//
// realized with two auxiliary booleans per block, each reified in both
// directions via ConditionalLE/GE (spec.md §4.4).
func reifyActiveBlocks(b backend.Backend, startVar backend.IntVar, inst tasks.Instance) map[int]backend.BoolVar {
	active := map[int]backend.BoolVar{}
	for ext := inst.EarliestBlock; ext < inst.LatestBlockExt+inst.DurationBlocks; ext++ {
		bMod := ext % timegrid.BlocksPerWeek

		aux1 := b.NewBoolVar() // S[i] <= ext
		notAux1 := backend.Not(b, aux1)
		b.ConditionalLE(aux1, []backend.Term{backend.Sum(startVar)}, float64(ext))
		b.ConditionalGE(notAux1, []backend.Term{backend.Sum(startVar)}, float64(ext+1))

		aux2 := b.NewBoolVar() // ext < S[i] + duration  <=>  S[i] >= ext - duration + 1
		notAux2 := backend.Not(b, aux2)
		b.ConditionalGE(aux2, []backend.Term{backend.Sum(startVar)}, float64(ext-inst.DurationBlocks+1))
		b.ConditionalLE(notAux2, []backend.Term{backend.Sum(startVar)}, float64(ext-inst.DurationBlocks))

		a, ok := active[bMod]
		if !ok {
			a = b.NewBoolVar()
			active[bMod] = a
		}
		b.AndReify(a, []backend.BoolVar{aux1, aux2})
	}
	return active
}

func shiftStartBlockIndex(shifts []coverage.Compiled) map[int][]int {
	idx := map[int][]int{}
	for s, sh := range shifts {
		for _, block := range sh.StartBlocks {
			idx[block] = append(idx[block], s)
		}
	}
	return idx
}

// buildHandover creates H[b] for every block, reified so H[b]=1 iff at
// least one assignee begins a shift there (spec.md §4.4's StartsAt/H[b]
// logic).
func buildHandover(b backend.Backend, shifts []coverage.Compiled, usage []backend.IntVar, startBlockIndex map[int][]int) []backend.BoolVar {
	h := make([]backend.BoolVar, timegrid.BlocksPerWeek)
	for block := 0; block < timegrid.BlocksPerWeek; block++ {
		h[block] = b.NewBoolVar()
		shiftIdxs := startBlockIndex[block]

		maxAtBlock := 0
		for _, s := range shiftIdxs {
			maxAtBlock += shifts[s].MaxAssignees
		}
		if maxAtBlock == 0 {
			b.LinearEQ([]backend.Term{backend.Sum(h[block])}, 0)
			continue
		}

		startsAtTerms := make([]backend.Term, 0, len(shiftIdxs))
		for _, s := range shiftIdxs {
			startsAtTerms = append(startsAtTerms, backend.Sum(usage[s]))
		}

		// StartsAt[b] <= M_b * H[b]
		leTerms := append(append([]backend.Term{}, startsAtTerms...), backend.Term{Coef: -float64(maxAtBlock), Var: h[block]})
		b.LinearLE(leTerms, 0)

		// StartsAt[b] >= H[b]
		geTerms := append(append([]backend.Term{}, startsAtTerms...), backend.Term{Coef: -1, Var: h[block]})
		b.LinearGE(geTerms, 0)
	}
	return h
}

// postCoverage posts, for every block, the per-block coverage inequality of
// spec.md §4.4:
//
//	sum(coverage[t,b]*U[t]) - StartsAt[b] - H[b] >= sum(demand[i]*A[i,b])
//	sum(coverage[t,b]*U[t]) - StartsAt[b] - H[b] >= minAlwaysPresent
func postCoverage(
	b backend.Backend,
	shifts []coverage.Compiled,
	usage []backend.IntVar,
	instances []tasks.Instance,
	active []map[int]backend.BoolVar,
	handover []backend.BoolVar,
	minAlwaysPresent int,
) {
	startBlockIndex := shiftStartBlockIndex(shifts)

	for block := 0; block < timegrid.BlocksPerWeek; block++ {
		supplyTerms := make([]backend.Term, 0, len(shifts))
		for s, sh := range shifts {
			if sh.Coverage[block] {
				supplyTerms = append(supplyTerms, backend.Sum(usage[s]))
			}
		}

		for _, s := range startBlockIndex[block] {
			supplyTerms = append(supplyTerms, backend.Term{Coef: -1, Var: usage[s]})
		}
		supplyTerms = append(supplyTerms, backend.Term{Coef: -1, Var: handover[block]})

		demandTerms := make([]backend.Term, 0)
		for i, inst := range instances {
			if a, ok := active[i][block]; ok {
				demandTerms = append(demandTerms, backend.Term{Coef: -float64(inst.RequiredWorkers), Var: a})
			}
		}

		b.LinearGE(append(append([]backend.Term{}, supplyTerms...), demandTerms...), 0)

		if minAlwaysPresent > 0 {
			b.LinearGE(supplyTerms, float64(minAlwaysPresent))
		}
	}
}

// postObjective minimizes sum(U[t] * lengthBlocks[t] * weightScaled[t])
// (spec.md §4.4). The reported cost is this objective divided by 100 at
// assembly time (spec.md §4.5, §9).
func postObjective(b backend.Backend, shifts []coverage.Compiled, usage []backend.IntVar) {
	terms := make([]backend.Term, 0, len(shifts))
	for s, sh := range shifts {
		coef := float64(sh.LengthBlocks * sh.WeightScaled)
		if coef == 0 {
			continue
		}
		terms = append(terms, backend.Term{Coef: coef, Var: usage[s]})
	}
	b.Minimize(terms)
}

// checkCapacity implements spec.md §7's CapacityInfeasible pre-check: for
// every block, it computes the demand that is mandatory there regardless of
// how each instance's start time is chosen (the "core" overlap of every
// feasible placement, non-empty only when an instance's window is tighter
// than its duration) and compares it against the summed maxAssignees of
// shifts covering that block.
func checkCapacity(shifts []coverage.Compiled, instances []tasks.Instance) error {
	capAt := make([]int, timegrid.BlocksPerWeek)
	for _, sh := range shifts {
		for block := 0; block < timegrid.BlocksPerWeek; block++ {
			if sh.Coverage[block] {
				capAt[block] += sh.MaxAssignees
			}
		}
	}

	demandAt := make([]int, timegrid.BlocksPerWeek)
	for _, inst := range instances {
		slack := inst.LatestBlockExt - inst.EarliestBlock
		if slack >= inst.DurationBlocks {
			continue // no block is mandatorily active
		}
		coreStart := inst.LatestBlockExt
		coreEnd := inst.EarliestBlock + inst.DurationBlocks
		for ext := coreStart; ext < coreEnd; ext++ {
			demandAt[ext%timegrid.BlocksPerWeek] += inst.RequiredWorkers
		}
	}

	for block := 0; block < timegrid.BlocksPerWeek; block++ {
		if capAt[block] < demandAt[block] {
			return &CapacityInfeasibleError{Block: block, Have: capAt[block], Need: demandAt[block]}
		}
	}
	return nil
}
