// Defines the Task struct that models an individual sampling task in the
// simulation. Tracks the embedding footprint, sample budget, arrival time and
// the per-task activity log written by the annealer.

package sim

// Activity is one entry of a task's activity log: a phase executed over
// [Start, End), repeated Repeat times back to back.
type Activity struct {
	Phase  string // "program" or "sample"
	Start  int64
	End    int64
	Repeat int
}

// Task models a single sampling task's lifecycle in the simulation.
// Each task has:
// - an embedding (2D demand bitmap, immutable once constructed)
// - a total sample budget and a count of samples already taken
// - an arrival time
// - an append-only activity log filled in by the annealer
type Task struct {
	Name       string
	Embedding  *Grid
	NumReads   int   // total samples requested
	AnnealTime int64 // model-time units per sample
	ArriveTime int64

	samplesComplete int
	activity        []Activity
}

// NewTask constructs a task. Input validation happens at load time in the
// workload package, not here.
func NewTask(name string, embedding *Grid, numReads int, annealTime, arriveTime int64) *Task {
	return &Task{
		Name:       name,
		Embedding:  embedding,
		NumReads:   numReads,
		AnnealTime: annealTime,
		ArriveTime: arriveTime,
	}
}

// Req returns the task's resource request: the task itself, its demand bitmap
// and the samples still outstanding (the request's duration).
func (t *Task) Req() Request {
	return Request{Task: t, Demand: t.Embedding, Duration: t.SamplesRemaining()}
}

// SamplesComplete returns the number of samples taken so far.
func (t *Task) SamplesComplete() int {
	return t.samplesComplete
}

// SamplesRemaining returns how many samples are still outstanding.
func (t *Task) SamplesRemaining() int {
	if r := t.NumReads - t.samplesComplete; r > 0 {
		return r
	}
	return 0
}

// SamplePlus records k further samples. If the task is complete afterwards it
// returns the remainder that was outstanding before this call and true;
// otherwise 0 and false.
func (t *Task) SamplePlus(k int) (int, bool) {
	remain := t.SamplesRemaining()
	t.samplesComplete += k
	if remain > k {
		return 0, false
	}
	return remain, true
}

// IsComplete reports whether the sample budget is satisfied.
func (t *Task) IsComplete() bool {
	return t.SamplesRemaining() == 0
}

// Log appends an activity entry. Entries arrive in non-decreasing start order
// because the annealer executes instructions serially.
func (t *Task) Log(phase string, start, end int64, repeat int) {
	t.activity = append(t.activity, Activity{Phase: phase, Start: start, End: end, Repeat: repeat})
}

// Activities returns a copy of the activity log.
func (t *Task) Activities() []Activity {
	out := make([]Activity, len(t.activity))
	copy(out, t.activity)
	return out
}

// LogStartTime returns the start of the first activity entry. The second
// return is false when the log is empty.
func (t *Task) LogStartTime() (int64, bool) {
	if len(t.activity) == 0 {
		return 0, false
	}
	return t.activity[0].Start, true
}

// LogEndTime returns the finish time implied by the last activity entry:
// its start plus its span times its repeat count.
func (t *Task) LogEndTime() (int64, bool) {
	if len(t.activity) == 0 {
		return 0, false
	}
	last := t.activity[len(t.activity)-1]
	return last.Start + (last.End-last.Start)*int64(last.Repeat), true
}

func (t *Task) String() string {
	return t.Name
}
