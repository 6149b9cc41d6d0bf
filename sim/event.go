// Defines the Event type that drives the simulation: task and instruction
// lifecycle transitions keyed by model time.

package sim

// EventKind discriminates the lifecycle transition an event carries.
type EventKind int

const (
	TaskReady EventKind = iota + 1
	TaskRun
	TaskComp

	InstReady
	InstRun
	InstComp
)

func (k EventKind) String() string {
	switch k {
	case TaskReady:
		return "TASK_READY"
	case TaskRun:
		return "TASK_RUN"
	case TaskComp:
		return "TASK_COMP"
	case InstReady:
		return "INST_READY"
	case InstRun:
		return "INST_RUN"
	case InstComp:
		return "INST_COMP"
	}
	return "UNKNOWN"
}

// Event is immutable once enqueued. Task events carry a task, instruction
// events an instruction. seq preserves insertion order among equal timestamps.
type Event struct {
	Time int64
	Kind EventKind

	Task *Task
	Inst *Instruction

	seq int64
}

// IsTaskEvent reports whether the event is a task lifecycle transition.
func (e *Event) IsTaskEvent() bool {
	return e.Kind == TaskReady || e.Kind == TaskRun || e.Kind == TaskComp
}

// IsInstEvent reports whether the event is an instruction lifecycle transition.
func (e *Event) IsInstEvent() bool {
	return e.Kind == InstReady || e.Kind == InstRun || e.Kind == InstComp
}

// NewTaskReadyEvent marks a task becoming ready at its arrival time.
func NewTaskReadyEvent(t *Task) *Event {
	return &Event{Time: t.ArriveTime, Kind: TaskReady, Task: t}
}

// NewTaskCompEvent marks a task's sample budget being satisfied at time.
func NewTaskCompEvent(t *Task, time int64) *Event {
	return &Event{Time: time, Kind: TaskComp, Task: t}
}

// NewInstReadyEvent marks an instruction ready to execute at time.
func NewInstReadyEvent(inst *Instruction, time int64) *Event {
	return &Event{Time: time, Kind: InstReady, Inst: inst}
}

// NewInstCompEvent marks an instruction finishing at time.
func NewInstCompEvent(inst *Instruction, time int64) *Event {
	return &Event{Time: time, Kind: InstComp, Inst: inst}
}
