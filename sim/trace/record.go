// Package trace provides flat records of a finished simulation run for
// external tooling (plotting, schedule inspection, regression diffing).
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// ActivityRecord captures one phase of one task's activity log.
type ActivityRecord struct {
	Task   string
	Phase  string // "program" or "sample"
	Start  int64
	End    int64
	Repeat int
}

// Span returns the total model time the record covers.
func (r ActivityRecord) Span() int64 {
	return (r.End - r.Start) * int64(r.Repeat)
}

// InstructionRecord captures one executed quantum-machine instruction.
type InstructionRecord struct {
	Tasks    []string
	Start    int64
	End      int64
	Program  int64
	Sample   int64
	NumReads int
}

// TaskRecord captures a task's overall timeline.
type TaskRecord struct {
	Name       string
	ArriveTime int64
	FirstStart int64
	LastEnd    int64
	NumReads   int
	Activity   []ActivityRecord
}
