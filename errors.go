package wardshift

import "fmt"

// Kind enumerates the error kinds surfaced by the core (spec.md §7).
type Kind string

const (
	// KindMalformedTime: a time field is not "HH:MM" with 0<=hh<=24,
	// 0<=mm<60, mm%15==0. Fails in the time grid / row decoding stage,
	// before any model is built.
	KindMalformedTime Kind = "malformed_time"
	// KindNonAlignedDuration: a duration is not a multiple of BlockMinutes.
	// Fails in the task expander.
	KindNonAlignedDuration Kind = "non_aligned_duration"
	// KindEmptyActiveDays: a shift or task is active on zero days. Fails in
	// the coverage compiler / task expander.
	KindEmptyActiveDays Kind = "empty_active_days"
	// KindBreakOutsideShift: after clamping, a break is empty or lies
	// outside the shift. This is a downgrade, not a hard failure: the
	// pipeline proceeds with an empty break and logs a warning.
	KindBreakOutsideShift Kind = "break_outside_shift"
	// KindCapacityInfeasible: summed maxAssignees across templates
	// covering some block b is less than demand at b, detected before the
	// solver is invoked.
	KindCapacityInfeasible Kind = "capacity_infeasible"
	// KindNoSolution: the backend returned neither optimal nor feasible
	// before the deadline elapsed.
	KindNoSolution Kind = "no_solution"
	// KindBackendFault: the backend contract was violated, e.g. a solved
	// variable fell outside its declared bounds. Unrecoverable.
	KindBackendFault Kind = "backend_fault"
)

// Error is the wardshift error type. All errors the core deliberately
// surfaces carry a Kind so callers can branch with errors.As.
type Error struct {
	Kind    Kind
	Message string
	Block   int // meaningful for KindCapacityInfeasible; -1 otherwise
	Err     error
}

func (e *Error) Error() string {
	if e.Block >= 0 {
		return fmt.Sprintf("%s: %s (block %d)", e.Kind, e.Message, e.Block)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Block: -1}
}

func newBlockError(kind Kind, message string, block int) *Error {
	return &Error{Kind: kind, Message: message, Block: block}
}

func wrapError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Block: -1, Err: err}
}
