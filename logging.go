package wardshift

import (
	"os"

	"github.com/hashicorp/go-hclog"
)

// NewLogger builds the structured logger the pipeline logs through: one
// named, leveled line per stage (compile, expand, build, solve, validate),
// with a run ID attached so concurrent invocations stay distinguishable in
// aggregated logs.
func NewLogger(runID string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "wardshift",
		Level:  hclog.Info,
		Output: os.Stderr,
	}).With("run_id", runID)
}
