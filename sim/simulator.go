// The simulation kernel: an event heap drained in time order, four task
// lifecycle lists, and the dispatch loop that couples the scheduler to the
// annealer.

package sim

import (
	"container/heap"
	"fmt"

	"github.com/sirupsen/logrus"
)

// eventQueue implements heap.Interface, ordering events by timestamp and, for
// equal timestamps, by insertion order.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type eventQueue []*Event

func (eq eventQueue) Len() int { return len(eq) }
func (eq eventQueue) Less(i, j int) bool {
	if eq[i].Time != eq[j].Time {
		return eq[i].Time < eq[j].Time
	}
	return eq[i].seq < eq[j].seq
}
func (eq eventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *eventQueue) Push(x any) {
	*eq = append(*eq, x.(*Event))
}

func (eq *eventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// Simulator is the core object that holds simulation time, the event queue,
// and the task/instruction lifecycle lists.
type Simulator struct {
	Clock  int64
	events eventQueue
	seq    int64

	// task lifecycle: queue -> ready -> running -> ready (looped while samples
	// remain) -> complete
	TaskQueue    []*Task
	TaskReady    []*Task
	TaskRunning  []*Task
	TaskComplete []*Task

	// instructions are created by the scheduler, run exactly once, then
	// archived
	InstQueue    []*Instruction
	InstComplete []*Instruction

	annealer  Annealer
	scheduler Scheduler
	log       logrus.FieldLogger
}

// NewSimulator wires tasks, an annealer and a scheduler into a simulator and
// seeds a TASK_READY event per task at its arrival time. With static
// scheduling every arrival is overridden to 0 first.
func NewSimulator(tasks []*Task, annealer Annealer, scheduler Scheduler, cfg SimulatorConfig) *Simulator {
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Simulator{
		events:    make(eventQueue, 0, len(tasks)),
		annealer:  annealer,
		scheduler: scheduler,
		log:       log,
	}
	if cfg.StaticScheduling {
		for _, t := range tasks {
			t.ArriveTime = 0
		}
	}
	for _, t := range tasks {
		s.Schedule(NewTaskReadyEvent(t))
		s.TaskQueue = append(s.TaskQueue, t)
	}
	return s
}

// Schedule pushes an event into the simulator's event queue. Every event
// carries its own time; for events that happen now, the caller passes the
// current clock to the event's constructor.
func (s *Simulator) Schedule(ev *Event) {
	ev.seq = s.seq
	s.seq++
	heap.Push(&s.events, ev)
}

// dequeueBatch pops every event sharing the earliest pending timestamp, in
// insertion order.
func (s *Simulator) dequeueBatch() (int64, []*Event) {
	t := s.events[0].Time
	var batch []*Event
	for len(s.events) > 0 && s.events[0].Time == t {
		batch = append(batch, heap.Pop(&s.events).(*Event))
	}
	return t, batch
}

// IsComplete reports whether the event queue has drained.
func (s *Simulator) IsComplete() bool {
	return len(s.events) == 0
}

// Run drains the event queue. Within one tick all task events are handled
// before any instruction event, and at most one instruction is dispatched:
// the first one the scheduler returns. Returns the first scheduling error.
func (s *Simulator) Run() error {
	for !s.IsComplete() {
		now, batch := s.dequeueBatch()
		s.Clock = now

		var instEvents []*Event
		for _, e := range batch {
			if e.IsTaskEvent() {
				s.handleTaskEvent(e)
			} else {
				instEvents = append(instEvents, e)
			}
		}

		// generate and issue an instruction if the annealer is idle
		dispatched, err := s.dispatch(now, &instEvents)
		if err != nil {
			return err
		}

		for _, e := range instEvents {
			s.handleInstEvent(e)
		}

		// an instruction retiring into an empty queue leaves its unfinished
		// tasks ready with nothing left to trigger the next dispatch; issue
		// it now (still the only dispatch this tick)
		if !dispatched && s.IsComplete() {
			var tail []*Event
			if _, err := s.dispatch(now, &tail); err != nil {
				return err
			}
			for _, e := range tail {
				s.handleInstEvent(e)
			}
		}
	}
	s.log.WithField("t", s.Clock).Info("simulation ended")
	return nil
}

// dispatch consults the scheduler when tasks are ready and the annealer is
// idle, appending an INST_READY event for the first returned instruction.
func (s *Simulator) dispatch(now int64, instEvents *[]*Event) (bool, error) {
	if len(s.TaskReady) == 0 || !s.annealer.IsIdle() {
		return false, nil
	}
	insts, err := s.scheduler.Schedule(s.TaskReady, s.annealer)
	if err != nil {
		return false, fmt.Errorf("scheduling at t=%d: %w", now, err)
	}
	if len(insts) == 0 {
		return false, nil
	}
	s.InstQueue = append(s.InstQueue, insts...)
	*instEvents = append(*instEvents, NewInstReadyEvent(s.dequeueInstruction(), now))
	return true, nil
}

// dequeueInstruction pops the head of the instruction queue.
func (s *Simulator) dequeueInstruction() *Instruction {
	inst := s.InstQueue[0]
	s.InstQueue = s.InstQueue[1:]
	return inst
}

func (s *Simulator) handleTaskEvent(e *Event) {
	switch e.Kind {
	case TaskReady:
		s.TaskQueue = removeTask(s.TaskQueue, e.Task)
		s.TaskReady = append(s.TaskReady, e.Task)
		s.log.WithField("t", s.Clock).Infof("%s is ready", e.Task)
	case TaskRun:
		// transition is implied by INST_READY
	case TaskComp:
		s.TaskReady = removeTask(s.TaskReady, e.Task)
		s.TaskComplete = append(s.TaskComplete, e.Task)
		s.log.WithField("t", s.Clock).Infof("%s is complete", e.Task)
	}
}

func (s *Simulator) handleInstEvent(e *Event) {
	switch e.Kind {
	case InstReady:
		inst := e.Inst
		for _, t := range uniqueTasks(inst.Tasks()) {
			s.TaskReady = removeTask(s.TaskReady, t)
			s.TaskRunning = append(s.TaskRunning, t)
		}
		s.log.WithField("t", s.Clock).Infof("execute %s", inst)
		finish := s.annealer.Execute(inst, s.Clock)
		s.annealer.SetBusy()
		s.Schedule(NewInstCompEvent(inst, finish))
	case InstRun:
		// transition is implied by INST_READY
	case InstComp:
		inst := e.Inst
		s.InstComplete = append(s.InstComplete, inst)
		for _, t := range uniqueTasks(inst.Tasks()) {
			s.TaskRunning = removeTask(s.TaskRunning, t)
			s.TaskReady = append(s.TaskReady, t)
		}
		s.log.WithField("t", s.Clock).Infof("retire %s", inst)
		s.annealer.SetIdle()
		for _, t := range s.TaskReady {
			if t.IsComplete() {
				s.Schedule(NewTaskCompEvent(t, s.Clock))
			}
		}
	}
}

// CompletedInstructions returns the archive of executed instructions.
func (s *Simulator) CompletedInstructions() []*Instruction {
	out := make([]*Instruction, len(s.InstComplete))
	copy(out, s.InstComplete)
	return out
}

// removeTask deletes the first identity match of t from list, preserving
// order.
func removeTask(list []*Task, t *Task) []*Task {
	for i, x := range list {
		if x == t {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// uniqueTasks dedups by identity, preserving first occurrence. The stock
// schedulers never batch a task twice, but the plug-in contract cannot
// guarantee that for external ones.
func uniqueTasks(tasks []*Task) []*Task {
	seen := make(map[*Task]bool, len(tasks))
	var out []*Task
	for _, t := range tasks {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
