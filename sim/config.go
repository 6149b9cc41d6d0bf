package sim

import (
	"math/rand"

	"github.com/sirupsen/logrus"
)

// AnnealerConfig groups the annealer model parameters.
type AnnealerConfig struct {
	Rows        int   // resource grid rows (0 = DefaultGridRows)
	Cols        int   // resource grid cols (0 = DefaultGridCols)
	ProgramTime int64 // per-instruction programming latency in model-time units
	Logger      logrus.FieldLogger
}

// DefaultAnnealerConfig returns the stock Chimera model: a 16x16 grid with the
// default programming latency.
func DefaultAnnealerConfig() AnnealerConfig {
	return AnnealerConfig{
		Rows:        DefaultGridRows,
		Cols:        DefaultGridCols,
		ProgramTime: DefaultProgramTime,
	}
}

// SchedulerConfig groups scheduler construction parameters. Only the fields a
// given variant consumes matter; the rest are ignored.
type SchedulerConfig struct {
	// NSamples caps the sample batch issued per instruction by the dynamic
	// scheduler. 0 means no cap: the batch runs the smallest member budget.
	NSamples int
	// RNG drives the dynamic scheduler's weighted-random packing. Callers pin
	// the seed for reproducible runs.
	RNG *rand.Rand
}

// SimulatorConfig groups simulator construction parameters.
type SimulatorConfig struct {
	// StaticScheduling overrides every task's arrival time to 0 before the
	// arrival events are seeded.
	StaticScheduling bool
	Logger           logrus.FieldLogger
}
