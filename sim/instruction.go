// Defines the Instruction (QMI) struct: a fused batch of tasks sharing one
// annealing run, together with their allocations and timing stamps.

package sim

import "fmt"

// Instruction is a quantum-machine instruction: the set of tasks co-executing
// in one annealing run, one allocation bitmap per task, the sample count
// actually run this time and the anneal time shared by the batch. Timing
// stamps are set exactly once, by the annealer.
type Instruction struct {
	tasks  []*Task
	allocs []*Grid

	numReads   int
	annealTime int64

	timeStart   int64
	timeEnd     int64
	timeProgram int64
	timeSample  int64
	stamped     bool
}

// NewInstructionFromTask fuses a single task into an instruction, using the
// task's own embedding as its allocation and its full sample budget.
func NewInstructionFromTask(t *Task) *Instruction {
	return &Instruction{
		tasks:      []*Task{t},
		allocs:     []*Grid{t.Embedding},
		numReads:   t.NumReads,
		annealTime: t.AnnealTime,
	}
}

// NewInstructionFromSchedule fuses a packed schedule into an instruction.
// Task and allocation order are preserved; the sample count is the longest
// placement duration; the anneal time is the first task's. All batch members
// must share one anneal time — a schedule builder that mixes them is broken,
// so this panics.
func NewInstructionFromSchedule(sched Schedule) *Instruction {
	if len(sched) == 0 {
		panic("cannot build an instruction from an empty schedule")
	}
	tasks := make([]*Task, len(sched))
	allocs := make([]*Grid, len(sched))
	numReads := 0
	annealTime := sched[0].Task.AnnealTime
	for i, p := range sched {
		if p.Task.AnnealTime != annealTime {
			panic(fmt.Sprintf("schedule mixes anneal times: task %s has %d, want %d",
				p.Task.Name, p.Task.AnnealTime, annealTime))
		}
		tasks[i] = p.Task
		allocs[i] = p.Alloc
		if p.Duration > numReads {
			numReads = p.Duration
		}
	}
	return &Instruction{
		tasks:      tasks,
		allocs:     allocs,
		numReads:   numReads,
		annealTime: annealTime,
	}
}

// Tasks returns the batch members in order.
func (q *Instruction) Tasks() []*Task {
	out := make([]*Task, len(q.tasks))
	copy(out, q.tasks)
	return out
}

// Allocs returns the allocation bitmaps, one per task, in task order.
func (q *Instruction) Allocs() []*Grid {
	out := make([]*Grid, len(q.allocs))
	copy(out, q.allocs)
	return out
}

// DeviceCapacity returns the total cell count of the device the allocations
// were computed for.
func (q *Instruction) DeviceCapacity() int {
	return q.allocs[0].Size()
}

// SetNumReads caps or overrides the sample count to run. This is the one
// post-construction mutator, used by schedulers to bound sample batches.
func (q *Instruction) SetNumReads(n int) {
	q.numReads = n
}

// NumReads returns the sample count this instruction runs.
func (q *Instruction) NumReads() int {
	return q.numReads
}

// AnnealTime returns the batch's shared anneal time.
func (q *Instruction) AnnealTime() int64 {
	return q.annealTime
}

// StampTime records the instruction's execution window. Stamping twice is a
// programmer error: instructions run exactly once.
func (q *Instruction) StampTime(start, end, program, sample int64) {
	if q.stamped {
		panic("instruction timing already stamped")
	}
	q.timeStart, q.timeEnd, q.timeProgram, q.timeSample = start, end, program, sample
	q.stamped = true
}

// Timing returns the stamped execution window (start, end, program, sample).
// Valid only after the annealer has executed the instruction.
func (q *Instruction) Timing() (start, end, program, sample int64) {
	return q.timeStart, q.timeEnd, q.timeProgram, q.timeSample
}

func (q *Instruction) String() string {
	names := make([]string, len(q.tasks))
	for i, t := range q.tasks {
		names[i] = t.Name
	}
	return fmt.Sprintf("QMI%v", names)
}
