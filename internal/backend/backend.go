// Package backend defines the abstract solver contract of spec.md §4.4 and
// an implementation over github.com/nextmv-io/go-mip and
// github.com/nextmv-io/go-highs, reference backend (b): a branch-and-bound
// MIP solver realizing reification via big-M linearization.
//
// The model builder (internal/model) talks only to the Backend interface;
// it never imports go-mip or go-highs directly, so swapping in a
// lazy-clause CP backend (reference backend (a), which would realize
// AndReify/OrReify/ConditionalLE/ConditionalGE with native indicator
// constraints instead of big-M) requires no change above this package.
package backend

import (
	"context"
	"time"
)

// Var is an opaque handle to a decision variable. The two concrete kinds
// are IntVar and BoolVar, both returned only by a Backend implementation.
type Var interface {
	id() int
}

// IntVar is an integer decision variable with declared bounds.
type IntVar struct {
	VarID int
	Lo    int
	Hi    int
}

func (v IntVar) id() int { return v.VarID }

// BoolVar is a 0/1 decision variable.
type BoolVar struct {
	VarID int
}

func (v BoolVar) id() int { return v.VarID }

// Term is one coefficient*variable addend of a linear expression.
type Term struct {
	Coef float64
	Var  Var
}

// Sum is a convenience constructor for a single-variable term with
// coefficient 1.
func Sum(v Var) Term { return Term{Coef: 1, Var: v} }

// Incumbent is one improving-solution record (spec.md §4.5/§5): the
// callback boundary MUST only push immutable records like this one onto a
// queue consumed after Optimize returns.
type Incumbent struct {
	Objective float64
	Elapsed   time.Duration
}

// Solution is the outcome of Optimize.
type Solution interface {
	IsOptimal() bool
	IsFeasible() bool
	ValueOf(v Var) float64
	ObjectiveValue() float64
}

// Backend is the contract every solver adapter must satisfy (spec.md §4.4).
// Implementations own all translation to their native solver's variable and
// constraint types; the model builder never depends on a specific backend.
type Backend interface {
	// NewIntVar declares an integer variable with inclusive bounds [lo, hi].
	NewIntVar(lo, hi int) IntVar
	// NewBoolVar declares a 0/1 variable.
	NewBoolVar() BoolVar

	// LinearLE posts sum(terms) <= rhs unconditionally.
	LinearLE(terms []Term, rhs float64)
	// LinearGE posts sum(terms) >= rhs unconditionally.
	LinearGE(terms []Term, rhs float64)
	// LinearEQ posts sum(terms) == rhs unconditionally.
	LinearEQ(terms []Term, rhs float64)

	// ConditionalLE posts sum(terms) <= rhs, enforced only when under is 1.
	ConditionalLE(under BoolVar, terms []Term, rhs float64)
	// ConditionalGE posts sum(terms) >= rhs, enforced only when under is 1.
	ConditionalGE(under BoolVar, terms []Term, rhs float64)

	// AndReify posts lhs <=> AND(operands).
	AndReify(lhs BoolVar, operands []BoolVar)
	// OrReify posts lhs <=> OR(operands).
	OrReify(lhs BoolVar, operands []BoolVar)

	// Minimize sets the objective to minimize sum(terms).
	Minimize(terms []Term)

	// Optimize hands control to the backend until deadline elapses or
	// optimality is proven. onImprovement fires, in non-increasing
	// objective order, possibly on the backend's own goroutine(s); the sole
	// suspension point of the pipeline (spec.md §5).
	Optimize(ctx context.Context, deadline time.Duration, workers int, onImprovement func(Incumbent)) (Solution, error)
}

// Not returns a derived boolean var wired to (1 - v) via LinearEQ, so the
// model builder can express the negative direction of a reification using
// only the contract's named primitives (spec.md §4.4's "four implications
// per auxiliary").
func Not(b Backend, v BoolVar) BoolVar {
	n := b.NewBoolVar()
	b.LinearEQ([]Term{{Coef: 1, Var: n}, {Coef: 1, Var: v}}, 1)
	return n
}
