package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	insts := []InstructionRecord{
		{Tasks: []string{"a", "b"}, Start: 0, End: 3000, NumReads: 100},
		{Tasks: []string{"a"}, Start: 3000, End: 5000, NumReads: 50},
		{Tasks: []string{"c"}, Start: 5000, End: 9000, NumReads: 200},
	}

	s := Summarize(insts)
	assert.Equal(t, 3, s.Instructions)
	assert.Equal(t, 3, s.Tasks, "task a counted once")
	assert.Equal(t, int64(9000), s.Makespan)
	assert.Equal(t, 350, s.TotalSamples)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Instructions)
	assert.Zero(t, s.Tasks)
	assert.Zero(t, s.Makespan)
}

func TestActivityRecordSpan(t *testing.T) {
	r := ActivityRecord{Phase: "sample", Start: 1000, End: 1020, Repeat: 5}
	assert.Equal(t, int64(100), r.Span())
}
