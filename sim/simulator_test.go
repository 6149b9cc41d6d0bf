package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulator_SingleTaskLifecycle(t *testing.T) {
	task := NewTask("t0", SolidGrid(2, 2), 5, 20, 0)
	annealer := NewChimera(AnnealerConfig{Rows: 4, Cols: 4, ProgramTime: 1000})

	s := NewSimulator([]*Task{task}, annealer, ToyScheduler{}, SimulatorConfig{})
	require.NoError(t, s.Run())

	assert.True(t, s.IsComplete())
	assert.True(t, task.IsComplete())
	assert.Equal(t, 5, task.SamplesComplete())

	require.Len(t, s.TaskComplete, 1)
	assert.Empty(t, s.TaskQueue)
	assert.Empty(t, s.TaskReady)
	assert.Empty(t, s.TaskRunning)

	require.Len(t, s.InstComplete, 1)
	start, end, program, sample := s.InstComplete[0].Timing()
	assert.Equal(t, int64(0), start)
	assert.Equal(t, int64(1100), end)
	assert.Equal(t, end-start, program+sample)
	assert.True(t, annealer.IsIdle())
}

func TestSimulator_EndToEndToy(t *testing.T) {
	// four tasks with staggered arrivals all run to completion under the toy
	// scheduler, one instruction per task
	rng := rand.New(rand.NewSource(0))
	var tasks []*Task
	arrive := int64(0)
	for i := 0; i < 4; i++ {
		reads := (rng.Intn(10) + 1) * 100
		tasks = append(tasks, NewTask(
			taskName(i), SolidGrid(rng.Intn(12)+1, rng.Intn(12)+1), reads, 100, arrive))
		arrive += int64(rng.Intn(5)) * 10000
	}

	annealer := NewChimera(DefaultAnnealerConfig())
	s := NewSimulator(tasks, annealer, ToyScheduler{}, SimulatorConfig{})
	require.NoError(t, s.Run())

	assert.True(t, s.IsComplete())
	require.Len(t, s.TaskComplete, 4)
	assert.Len(t, s.InstComplete, 4)
	for _, task := range tasks {
		assert.True(t, task.IsComplete(), "task %s", task)
		assert.Equal(t, task.NumReads, task.SamplesComplete(), "task %s", task)
	}

	// instruction windows never overlap: one annealer, one in-flight run
	for i := 1; i < len(s.InstComplete); i++ {
		_, prevEnd, _, _ := s.InstComplete[i-1].Timing()
		start, _, _, _ := s.InstComplete[i].Timing()
		assert.GreaterOrEqual(t, start, prevEnd)
	}
}

func TestSimulator_ClockNonDecreasing(t *testing.T) {
	tasks := []*Task{
		NewTask("a", SolidGrid(2, 2), 100, 20, 5000),
		NewTask("b", SolidGrid(2, 2), 200, 20, 0),
		NewTask("c", SolidGrid(3, 3), 300, 20, 2500),
	}
	annealer := NewChimera(AnnealerConfig{Rows: 4, Cols: 4, ProgramTime: 1000})

	s := NewSimulator(tasks, annealer, ToyScheduler{}, SimulatorConfig{})
	require.NoError(t, s.Run())

	var prevStart int64
	for _, inst := range s.InstComplete {
		start, end, program, sample := inst.Timing()
		assert.GreaterOrEqual(t, start, prevStart)
		assert.Equal(t, end-start, program+sample)
		prevStart = start
	}
	require.Len(t, s.TaskComplete, 3)
}

func TestSimulator_PreemptionLoopsPartialTasks(t *testing.T) {
	// a 1000-read task under a 300-sample cap needs four instructions
	task := NewTask("t0", SolidGrid(2, 2), 1000, 20, 0)
	annealer := NewChimera(AnnealerConfig{Rows: 4, Cols: 4, ProgramTime: 100})
	sched := NewDynamicScheduler(SchedulerConfig{
		NSamples: 300,
		RNG:      rand.New(rand.NewSource(1)),
	})

	s := NewSimulator([]*Task{task}, annealer, sched, SimulatorConfig{})
	require.NoError(t, s.Run())

	assert.True(t, task.IsComplete())
	assert.Len(t, s.InstComplete, 4)
	assert.Equal(t, 1200, task.SamplesComplete(), "three full batches plus one overshooting batch")

	// the activity log alternates program and sample phases in time order
	logs := task.Activities()
	require.Len(t, logs, 8)
	for i := 1; i < len(logs); i++ {
		assert.GreaterOrEqual(t, logs[i].Start, logs[i-1].Start)
	}
}

func TestSimulator_StaticSchedulingZeroesArrivals(t *testing.T) {
	tasks := []*Task{
		NewTask("a", SolidGrid(2, 4), 100, 20, 7000),
		NewTask("b", SolidGrid(2, 4), 200, 20, 9000),
	}
	annealer := NewChimera(AnnealerConfig{Rows: 4, Cols: 4, ProgramTime: 1000})

	s := NewSimulator(tasks, annealer, StaticScheduler{}, SimulatorConfig{StaticScheduling: true})
	require.NoError(t, s.Run())

	require.Len(t, s.TaskComplete, 2)
	for _, task := range tasks {
		assert.Equal(t, int64(0), task.ArriveTime)
		start, ok := task.LogStartTime()
		require.True(t, ok)
		assert.Equal(t, int64(0), start)
	}
	// both fit one grid, so the first instruction batches them together
	first := s.InstComplete[0]
	assert.Len(t, first.Tasks(), 2)
}

func TestSimulator_EmptyTaskList(t *testing.T) {
	annealer := NewChimera(DefaultAnnealerConfig())
	s := NewSimulator(nil, annealer, ToyScheduler{}, SimulatorConfig{})
	require.NoError(t, s.Run())
	assert.True(t, s.IsComplete())
	assert.Empty(t, s.InstComplete)
	assert.Empty(t, s.TaskComplete)
}

func TestSimulator_SchedulerErrorSurfaces(t *testing.T) {
	huge := NewTask("huge", SolidGrid(20, 20), 100, 20, 0)
	annealer := NewChimera(DefaultAnnealerConfig())

	s := NewSimulator([]*Task{huge}, annealer, ToyScheduler{}, SimulatorConfig{})
	err := s.Run()
	require.Error(t, err)
	var infeasible *InfeasibleError
	assert.ErrorAs(t, err, &infeasible)
}

func TestSimulator_LateArrivalJoinsLaterDispatch(t *testing.T) {
	// b arrives while a's first instruction is in flight and is picked up at
	// the dispatch that follows the instruction's completion
	a := NewTask("a", SolidGrid(2, 4), 300, 20, 0)
	b := NewTask("b", SolidGrid(2, 4), 300, 20, 1)
	annealer := NewChimera(AnnealerConfig{Rows: 4, Cols: 4, ProgramTime: 100})
	sched := NewDynamicScheduler(SchedulerConfig{
		NSamples: 100,
		RNG:      rand.New(rand.NewSource(5)),
	})

	s := NewSimulator([]*Task{a, b}, annealer, sched, SimulatorConfig{})
	require.NoError(t, s.Run())

	require.True(t, a.IsComplete())
	require.True(t, b.IsComplete())
	// after the first single-task batch, a and b co-execute
	assert.Greater(t, len(s.InstComplete), 1)
	second := s.InstComplete[1]
	assert.Len(t, second.Tasks(), 2)
}

func taskName(i int) string {
	return string(rune('a' + i))
}
