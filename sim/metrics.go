// Aggregates per-task timing metrics and device utilisation from a finished
// simulation: execution times, response times and initial waiting times, each
// as mean and worst case, plus the resource-utilisation ratio.

package sim

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// TaskTiming computes timing metrics over a set of completed tasks, derived
// from their activity logs and arrival times.
type TaskTiming struct {
	tasks []*Task
}

// NewTaskTiming wraps tasks for metric extraction. Tasks with an empty
// activity log never ran and are skipped by the per-metric extractors.
func NewTaskTiming(tasks []*Task) *TaskTiming {
	return &TaskTiming{tasks: tasks}
}

func (tt *TaskTiming) execTimes() []float64 {
	var out []float64
	for _, t := range tt.tasks {
		start, ok := t.LogStartTime()
		if !ok {
			continue
		}
		end, _ := t.LogEndTime()
		out = append(out, float64(end-start))
	}
	return out
}

func (tt *TaskTiming) responseTimes() []float64 {
	var out []float64
	for _, t := range tt.tasks {
		if _, ok := t.LogStartTime(); !ok {
			continue
		}
		end, _ := t.LogEndTime()
		out = append(out, float64(end-t.ArriveTime))
	}
	return out
}

func (tt *TaskTiming) initialWaits() []float64 {
	var out []float64
	for _, t := range tt.tasks {
		start, ok := t.LogStartTime()
		if !ok {
			continue
		}
		out = append(out, float64(start-t.ArriveTime))
	}
	return out
}

// ACET is the average-case execution time: mean of log end minus log start.
func (tt *TaskTiming) ACET() float64 { return stat.Mean(tt.execTimes(), nil) }

// WCET is the worst-case execution time.
func (tt *TaskTiming) WCET() float64 { return floats.Max(tt.execTimes()) }

// ACRT is the average-case response time: mean of log end minus arrival.
func (tt *TaskTiming) ACRT() float64 { return stat.Mean(tt.responseTimes(), nil) }

// WCRT is the worst-case response time.
func (tt *TaskTiming) WCRT() float64 { return floats.Max(tt.responseTimes()) }

// ACIWT is the average-case initial waiting time: mean of log start minus
// arrival.
func (tt *TaskTiming) ACIWT() float64 { return stat.Mean(tt.initialWaits(), nil) }

// WCIWT is the worst-case initial waiting time.
func (tt *TaskTiming) WCIWT() float64 { return floats.Max(tt.initialWaits()) }

// ResourceUtilisation is the fraction of the device-time capacity spanned by
// the completed instructions that the tasks' sampling demand actually used:
// sum over tasks of embedding cells x samples x anneal time, divided by device
// capacity x the span from the first instruction start to the last end.
func ResourceUtilisation(insts []*Instruction) float64 {
	if len(insts) == 0 {
		return 0
	}

	seen := make(map[*Task]bool)
	totalDemand := 0.0
	for _, inst := range insts {
		for _, t := range inst.Tasks() {
			if seen[t] {
				continue
			}
			seen[t] = true
			totalDemand += float64(t.Embedding.Sum() * t.NumReads * int(t.AnnealTime))
		}
	}

	minStart, _, _, _ := insts[0].Timing()
	maxEnd := int64(0)
	for _, inst := range insts {
		start, end, _, _ := inst.Timing()
		if start < minStart {
			minStart = start
		}
		if end > maxEnd {
			maxEnd = end
		}
	}

	capacity := float64(insts[0].DeviceCapacity()) * float64(maxEnd-minStart)
	if capacity == 0 {
		return 0
	}
	return totalDemand / capacity
}

// Report bundles the headline numbers of a finished run.
type Report struct {
	CompletedTasks        int
	CompletedInstructions int
	Makespan              int64

	ACET, WCET   float64
	ACRT, WCRT   float64
	ACIWT, WCIWT float64

	Utilisation float64
}

// BuildReport derives a Report from a drained simulator.
func BuildReport(s *Simulator) Report {
	r := Report{
		CompletedTasks:        len(s.TaskComplete),
		CompletedInstructions: len(s.InstComplete),
		Makespan:              s.Clock,
		Utilisation:           ResourceUtilisation(s.InstComplete),
	}
	if len(s.TaskComplete) > 0 {
		tt := NewTaskTiming(s.TaskComplete)
		r.ACET, r.WCET = tt.ACET(), tt.WCET()
		r.ACRT, r.WCRT = tt.ACRT(), tt.WCRT()
		r.ACIWT, r.WCIWT = tt.ACIWT(), tt.WCIWT()
	}
	return r
}

// Print displays the report at the end of the simulation.
func (r Report) Print() {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Completed Tasks        : %d\n", r.CompletedTasks)
	fmt.Printf("Completed Instructions : %d\n", r.CompletedInstructions)
	fmt.Printf("Makespan               : %d ticks\n", r.Makespan)
	if r.CompletedTasks > 0 {
		fmt.Printf("ACET / WCET            : %.2f / %.2f ticks\n", r.ACET, r.WCET)
		fmt.Printf("ACRT / WCRT            : %.2f / %.2f ticks\n", r.ACRT, r.WCRT)
		fmt.Printf("ACIWT / WCIWT          : %.2f / %.2f ticks\n", r.ACIWT, r.WCIWT)
		fmt.Printf("Resource Utilisation   : %.4f\n", r.Utilisation)
	}
}
