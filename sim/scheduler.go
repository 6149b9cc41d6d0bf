// Defines the Scheduler interface and the scheduling policies that map the
// ready-task list to quantum-machine instructions.

package sim

import (
	"fmt"
	"sort"
)

// Scheduler maps the ready-task list to a (possibly empty) list of
// instructions to issue now. The returned instructions must reference tasks
// from ready, with pairwise-disjoint allocations that avoid the annealer's
// occupied cells. The simulator dispatches only the first instruction per
// tick.
type Scheduler interface {
	Schedule(ready []*Task, annealer Annealer) ([]*Instruction, error)
}

// ToyScheduler wraps the first ready task into a one-task instruction whose
// allocation is the task's bounding box placed at the grid origin.
type ToyScheduler struct{}

func (ToyScheduler) Schedule(ready []*Task, annealer Annealer) ([]*Instruction, error) {
	if len(ready) == 0 {
		return nil, nil
	}

	t := ready[0]
	req := t.Req()

	res := annealer.Resources()
	rr, rc := res.Dims()
	dr, dc := req.Demand.Dims()
	if dr > rr || dc > rc {
		return nil, &InfeasibleError{Tasks: []*Task{t}}
	}
	for i := 0; i < dr; i++ {
		for j := 0; j < dc; j++ {
			res.Set(i, j, 1)
		}
	}

	inst := NewInstructionFromSchedule(Schedule{{Task: t, Alloc: res, Duration: req.Duration}})
	inst.SetNumReads(t.NumReads)
	return []*Instruction{inst}, nil
}

// StaticScheduler assumes all tasks are available at time 0 and maximises
// resource utilisation: requests sorted largest-demand-first (longest duration
// as tiebreaker) are packed with next-fit, and the first resulting schedule
// becomes the instruction.
type StaticScheduler struct{}

func (StaticScheduler) Schedule(ready []*Task, annealer Annealer) ([]*Instruction, error) {
	if len(ready) == 0 {
		return nil, nil
	}

	reqs := make([]Request, len(ready))
	for i, t := range ready {
		reqs[i] = t.Req()
	}
	sort.SliceStable(reqs, func(i, j int) bool {
		si, sj := reqs[i].Demand.Sum(), reqs[j].Demand.Sum()
		if si != sj {
			return si > sj
		}
		return reqs[i].Duration > reqs[j].Duration
	})

	scheds, err := NextFit(reqs, annealer.Resources(), 0)
	if err != nil {
		return nil, err
	}
	if len(scheds) == 0 || len(scheds[0]) == 0 {
		return nil, nil
	}
	return []*Instruction{NewInstructionFromSchedule(scheds[0])}, nil
}

// NaiveScheduler dispatches only the first ready task, allocated as its
// bounding box at the grid origin, with the sample batch capped by
// batchNumReads.
type NaiveScheduler struct{}

func (NaiveScheduler) Schedule(ready []*Task, annealer Annealer) ([]*Instruction, error) {
	if len(ready) == 0 {
		return nil, nil
	}

	t := ready[0]
	req := t.Req()

	res := annealer.Resources()
	rr, rc := res.Dims()
	dr, dc := req.Demand.Dims()
	if dr > rr || dc > rc {
		return nil, &InfeasibleError{Tasks: []*Task{t}}
	}
	for i := 0; i < dr; i++ {
		for j := 0; j < dc; j++ {
			res.Set(i, j, 1)
		}
	}

	inst := NewInstructionFromSchedule(Schedule{{Task: t, Alloc: res, Duration: req.Duration}})
	inst.SetNumReads(batchNumReads(inst))
	return []*Instruction{inst}, nil
}

// NextFitPreemption repeatedly next-fits the ready tasks onto the current grid
// without resetting it, fusing everything that fits into one instruction. A
// partially-sampled task is simply re-enqueued when the instruction retires,
// so the cap on the batch's sample count acts as the preemption quantum.
type NextFitPreemption struct{}

func (NextFitPreemption) Schedule(ready []*Task, annealer Annealer) ([]*Instruction, error) {
	if len(ready) == 0 {
		return nil, nil
	}

	remaining := make([]Request, len(ready))
	for i, t := range ready {
		remaining[i] = t.Req()
	}

	res := annealer.Resources()
	var sched Schedule
	for len(remaining) > 0 {
		scheds, err := NextFit(remaining, res, 1)
		if err != nil || len(scheds[0]) == 0 {
			break
		}
		sched = append(sched, scheds[0]...)

		// placed tasks leave the pool so later rounds only offer the rest
		placed := make(map[*Task]bool, len(scheds[0]))
		for _, p := range scheds[0] {
			res.Add(p.Alloc)
			placed[p.Task] = true
		}
		kept := remaining[:0]
		for _, req := range remaining {
			if !placed[req.Task] {
				kept = append(kept, req)
			}
		}
		remaining = kept
	}
	if len(sched) == 0 {
		// the first round ran against the annealer's own grid, so nothing
		// fitting there means nothing fits at all
		return nil, &InfeasibleError{Tasks: ready}
	}

	inst := NewInstructionFromSchedule(sched)
	inst.SetNumReads(batchNumReads(inst))
	return []*Instruction{inst}, nil
}

// DynamicScheduler packs the ready tasks with weighted-random-fit and caps the
// sample batch at NSamples, so every instruction only runs for a bounded
// interval before its tasks return to the ready list.
type DynamicScheduler struct {
	cfg SchedulerConfig
	// Weights returns a task's selection weight; nil means equal weights.
	Weights func(*Task) float64
}

// NewDynamicScheduler builds a dynamic scheduler from config. The config's
// RNG must be set; pin its seed for reproducible runs.
func NewDynamicScheduler(cfg SchedulerConfig) *DynamicScheduler {
	if cfg.RNG == nil {
		panic("dynamic scheduler requires a random source")
	}
	return &DynamicScheduler{cfg: cfg}
}

func (d *DynamicScheduler) Schedule(ready []*Task, annealer Annealer) ([]*Instruction, error) {
	if len(ready) == 0 {
		return nil, nil
	}

	reqs := make([]Request, len(ready))
	for i, t := range ready {
		reqs[i] = t.Req()
	}
	var weights []float64
	if d.Weights != nil {
		weights = make([]float64, len(ready))
		for i, t := range ready {
			weights[i] = d.Weights(t)
		}
	}

	sched := WeightedRandomFit(reqs, annealer.Resources(), weights, d.cfg.RNG)
	if len(sched) == 0 {
		return nil, nil
	}

	inst := NewInstructionFromSchedule(sched)
	if d.cfg.NSamples > 0 {
		inst.SetNumReads(d.cfg.NSamples)
	} else {
		minReads := 0
		for i, t := range inst.Tasks() {
			if i == 0 || t.NumReads < minReads {
				minReads = t.NumReads
			}
		}
		inst.SetNumReads(minReads)
	}
	return []*Instruction{inst}, nil
}

// batchNumReads picks a batch's sample count from the member with the largest
// embedding area, breaking ties by the smallest sample budget.
func batchNumReads(inst *Instruction) int {
	type sizeSample struct {
		size, samples int
	}
	pairs := make([]sizeSample, 0, len(inst.Tasks()))
	for _, t := range inst.Tasks() {
		pairs = append(pairs, sizeSample{size: t.Embedding.Size(), samples: t.NumReads})
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].size != pairs[j].size {
			return pairs[i].size > pairs[j].size
		}
		return pairs[i].samples < pairs[j].samples
	})
	return pairs[0].samples
}

// DefaultDynamicSamples is the stock per-instruction sample cap of the dynamic
// scheduler.
const DefaultDynamicSamples = 500

// NewSchedulerByName creates a scheduler by policy name. Valid names: "toy",
// "static", "naive", "preempt", "dynamic". Panics on unrecognized names.
func NewSchedulerByName(name string, cfg SchedulerConfig) Scheduler {
	switch name {
	case "toy":
		return ToyScheduler{}
	case "static":
		return StaticScheduler{}
	case "naive":
		return NaiveScheduler{}
	case "preempt":
		return NextFitPreemption{}
	case "dynamic":
		return NewDynamicScheduler(cfg)
	default:
		panic(fmt.Sprintf("unknown scheduler %q", name))
	}
}
