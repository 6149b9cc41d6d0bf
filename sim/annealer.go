// Defines the Annealer interface and the Chimera annealer model. The annealer
// owns the processor's resource grid and executes one instruction at a time,
// deriving finish times from the sample-count equation and writing each task's
// activity log.

package sim

import (
	"github.com/sirupsen/logrus"
)

// DefaultProgramTime is the per-instruction programming latency of the Chimera
// model, in model-time units.
const DefaultProgramTime = 12000

// Annealer is the executor abstraction the simulator drives. At most one
// instruction is in flight per annealer; the busy/idle flag is manipulated by
// the simulator around Execute.
type Annealer interface {
	// Execute runs inst starting at now and returns the finish time. It logs
	// per-task activity and advances each task's sample count. Execute never
	// fails; feasibility is the scheduler's responsibility.
	Execute(inst *Instruction, now int64) int64

	IsIdle() bool
	SetBusy()
	SetIdle()

	// Resources returns a copy of the processor's resource grid. Schedulers
	// pack onto the copy; the annealer's own grid is never mutated by them.
	Resources() *Grid

	// ProgramTime returns the one-shot setup latency charged before sampling.
	ProgramTime(inst *Instruction) int64
}

// Chimera models a single annealing processor with a fixed rectangular
// resource grid and a constant programming latency.
type Chimera struct {
	res         *Grid
	idle        bool
	lastInst    *Instruction
	programTime int64
	log         logrus.FieldLogger
}

// NewChimera creates an idle annealer from config. Zero-valued dimensions fall
// back to the 16x16 default; the program time is taken as given (see
// DefaultAnnealerConfig for the stock model).
func NewChimera(cfg AnnealerConfig) *Chimera {
	rows, cols := cfg.Rows, cfg.Cols
	if rows == 0 {
		rows = DefaultGridRows
	}
	if cols == 0 {
		cols = DefaultGridCols
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Chimera{
		res:         NewGrid(rows, cols),
		idle:        true,
		programTime: cfg.ProgramTime,
		log:         log,
	}
}

// Resources returns a copy of the resource grid.
func (c *Chimera) Resources() *Grid {
	return c.res.Clone()
}

// ProgramTime returns the configured programming latency.
func (c *Chimera) ProgramTime(_ *Instruction) int64 {
	return c.programTime
}

// LastInstruction returns the most recently executed instruction, or nil.
func (c *Chimera) LastInstruction() *Instruction {
	return c.lastInst
}

func (c *Chimera) IsIdle() bool { return c.idle }
func (c *Chimera) SetBusy()     { c.idle = false }
func (c *Chimera) SetIdle()     { c.idle = true }

// Execute runs inst starting at now. With n = inst.NumReads(),
// a = inst.AnnealTime() and p the programming latency, the run spans
// p + a*n time units: one programming phase followed by n back-to-back
// samples shared by every task in the batch.
func (c *Chimera) Execute(inst *Instruction, now int64) int64 {
	n := inst.NumReads()
	p := c.ProgramTime(inst)
	a := inst.AnnealTime()
	sample := a * int64(n)
	elapsed := p + sample

	// a scheduler violating the batch contract may list a task twice; the
	// run still samples it only once
	for _, task := range uniqueTasks(inst.Tasks()) {
		if p > 0 {
			task.Log("program", now, now+p, 1)
			task.Log("sample", now+p, now+p+a, n)
		} else {
			task.Log("sample", now, now+a, n)
		}
		task.SamplePlus(n)
	}

	inst.StampTime(now, now+elapsed, p, sample)
	c.lastInst = inst

	c.log.WithField("t", now).Infof("executed %s: %d reads x %d anneal, finish at %d",
		inst, n, a, now+elapsed)

	return now + elapsed
}
