// Bridges the simulator's internal state to the flat record types in
// sim/trace, which external tooling consumes.

package sim

import "github.com/ianmalcolm/QAMTSimulator/sim/trace"

// CollectTrace flattens a drained simulator into trace records: one
// InstructionRecord per completed instruction and one TaskRecord per completed
// task, activity logs included.
func CollectTrace(s *Simulator) ([]trace.InstructionRecord, []trace.TaskRecord) {
	insts := make([]trace.InstructionRecord, 0, len(s.InstComplete))
	for _, inst := range s.InstComplete {
		start, end, program, sample := inst.Timing()
		names := make([]string, 0, len(inst.Tasks()))
		for _, t := range uniqueTasks(inst.Tasks()) {
			names = append(names, t.Name)
		}
		insts = append(insts, trace.InstructionRecord{
			Tasks:    names,
			Start:    start,
			End:      end,
			Program:  program,
			Sample:   sample,
			NumReads: inst.NumReads(),
		})
	}

	tasks := make([]trace.TaskRecord, 0, len(s.TaskComplete))
	for _, t := range s.TaskComplete {
		rec := trace.TaskRecord{
			Name:       t.Name,
			ArriveTime: t.ArriveTime,
			NumReads:   t.NumReads,
		}
		if start, ok := t.LogStartTime(); ok {
			rec.FirstStart = start
			rec.LastEnd, _ = t.LogEndTime()
		}
		for _, a := range t.Activities() {
			rec.Activity = append(rec.Activity, trace.ActivityRecord{
				Task:   t.Name,
				Phase:  a.Phase,
				Start:  a.Start,
				End:    a.End,
				Repeat: a.Repeat,
			})
		}
		tasks = append(tasks, rec)
	}

	return insts, tasks
}
