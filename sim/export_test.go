package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectTrace(t *testing.T) {
	task := NewTask("t0", SolidGrid(2, 2), 5, 20, 0)
	annealer := NewChimera(AnnealerConfig{Rows: 4, Cols: 4, ProgramTime: 1000})

	s := NewSimulator([]*Task{task}, annealer, ToyScheduler{}, SimulatorConfig{})
	require.NoError(t, s.Run())

	insts, tasks := CollectTrace(s)

	require.Len(t, insts, 1)
	assert.Equal(t, []string{"t0"}, insts[0].Tasks)
	assert.Equal(t, int64(0), insts[0].Start)
	assert.Equal(t, int64(1100), insts[0].End)
	assert.Equal(t, int64(1000), insts[0].Program)
	assert.Equal(t, int64(100), insts[0].Sample)
	assert.Equal(t, 5, insts[0].NumReads)

	require.Len(t, tasks, 1)
	rec := tasks[0]
	assert.Equal(t, "t0", rec.Name)
	assert.Equal(t, int64(0), rec.FirstStart)
	assert.Equal(t, int64(1100), rec.LastEnd)
	require.Len(t, rec.Activity, 2)
	assert.Equal(t, "program", rec.Activity[0].Phase)
	assert.Equal(t, "sample", rec.Activity[1].Phase)
}
