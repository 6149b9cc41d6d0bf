package trace

// Summary condenses a run's records into headline counts.
type Summary struct {
	Instructions int
	Tasks        int
	// Makespan spans the first instruction start to the last instruction end.
	Makespan int64
	// TotalSamples sums each instruction's sample count.
	TotalSamples int
}

// Summarize folds instruction records into a Summary. Task identity is by
// name; an instruction listing a task twice counts it once.
func Summarize(insts []InstructionRecord) Summary {
	var s Summary
	s.Instructions = len(insts)
	if len(insts) == 0 {
		return s
	}

	names := make(map[string]bool)
	minStart, maxEnd := insts[0].Start, insts[0].End
	for _, inst := range insts {
		for _, n := range inst.Tasks {
			names[n] = true
		}
		if inst.Start < minStart {
			minStart = inst.Start
		}
		if inst.End > maxEnd {
			maxEnd = inst.End
		}
		s.TotalSamples += inst.NumReads
	}
	s.Tasks = len(names)
	s.Makespan = maxEnd - minStart
	return s
}
