// Package sim provides the core discrete-event simulation engine for the QAMT
// (quantum-annealing multi-task) environment: a single annealing processor
// with a 2D resource grid executing batches of sampling tasks.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - task.go: Task lifecycle (queue → ready → running → complete) and sample accounting
//   - event.go: Event kinds that drive the simulation (TASK_READY, INST_COMP, ...)
//   - simulator.go: The event loop and the dispatch coupling of scheduler and annealer
//
// # Architecture
//
// The geometric core is layered leaves-first:
//   - grid.go: integer occupancy bitmaps (gonum mat.Dense underneath)
//   - placement.go: best-scoring placement of a demand bitmap under the
//     symmetries of the square
//   - packing.go: first-fit / next-fit / weighted-random-fit bin-packers
//
// Scheduling policies (scheduler.go) turn the ready-task list into fused
// quantum-machine instructions (instruction.go); the annealer (annealer.go)
// executes one instruction at a time, deriving finish times from the
// sample-count equation and writing per-task activity logs that metrics.go
// aggregates.
//
// Sub-packages:
//   - sim/workload/: task-set synthesis and YAML task-spec loading
//   - sim/trace/: pure data records of a finished run for external tooling
//
// # Key Interfaces
//
// The extension points are small interfaces, each with stock implementations:
//   - Scheduler: map ready tasks to instructions (toy, static, naive, preempt, dynamic)
//   - Annealer: execute instructions against the resource grid (Chimera)
//
// Randomness is always injected (math/rand sources derived from a RunSeed)
// and logging goes through a logrus.FieldLogger sink, so runs are reproducible
// and quiet by configuration.
package sim
