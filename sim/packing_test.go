package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidTask(name string, rows, cols, reads int) *Task {
	return NewTask(name, SolidGrid(rows, cols), reads, 20, 0)
}

func reqsOf(tasks ...*Task) []Request {
	out := make([]Request, len(tasks))
	for i, t := range tasks {
		out[i] = t.Req()
	}
	return out
}

func scheduleNames(s Schedule) []string {
	names := make([]string, len(s))
	for i, p := range s {
		names[i] = p.Task.Name
	}
	return names
}

func assertDisjoint(t *testing.T, s Schedule) {
	t.Helper()
	for i := 0; i < len(s); i++ {
		for j := i + 1; j < len(s); j++ {
			assert.False(t, s[i].Alloc.Overlaps(s[j].Alloc),
				"allocations of %s and %s overlap", s[i].Task, s[j].Task)
		}
	}
}

func TestNextFit_TwoSchedules(t *testing.T) {
	// two half-grid demands fill the grid; the third opens a second schedule
	a := solidTask("A", 2, 4, 100)
	b := solidTask("B", 2, 4, 200)
	c := solidTask("C", 2, 4, 300)

	scheds, err := NextFit(reqsOf(a, b, c), NewGrid(4, 4), 0)
	require.NoError(t, err)
	require.Len(t, scheds, 2)
	assert.Equal(t, []string{"A", "B"}, scheduleNames(scheds[0]))
	assert.Equal(t, []string{"C"}, scheduleNames(scheds[1]))
	assertDisjoint(t, scheds[0])
}

func TestNextFit_SingleSchedule(t *testing.T) {
	// four quarter-grid demands pack into one schedule
	tasks := []*Task{
		solidTask("A", 2, 2, 1),
		solidTask("B", 2, 2, 1),
		solidTask("C", 2, 2, 1),
		solidTask("D", 2, 2, 1),
	}
	scheds, err := NextFit(reqsOf(tasks...), NewGrid(4, 4), 0)
	require.NoError(t, err)
	require.Len(t, scheds, 1)
	assert.Len(t, scheds[0], 4)
	assertDisjoint(t, scheds[0])
}

func TestNextFit_SkipsToFittingTask(t *testing.T) {
	// when the big task no longer fits, the packer commits the next remaining
	// task that does
	big := solidTask("big", 4, 3, 1)
	wide := solidTask("wide", 4, 2, 1)
	small := solidTask("small", 1, 1, 1)

	scheds, err := NextFit(reqsOf(big, wide, small), NewGrid(4, 4), 0)
	require.NoError(t, err)
	require.Len(t, scheds, 2)
	assert.Equal(t, []string{"big", "small"}, scheduleNames(scheds[0]))
	assert.Equal(t, []string{"wide"}, scheduleNames(scheds[1]))
}

func TestNextFit_CapStopsPacking(t *testing.T) {
	a := solidTask("A", 4, 4, 1)
	b := solidTask("B", 4, 4, 1)

	scheds, err := NextFit(reqsOf(a, b), NewGrid(4, 4), 1)
	require.NoError(t, err)
	require.Len(t, scheds, 1)
	assert.Equal(t, []string{"A"}, scheduleNames(scheds[0]))
}

func TestNextFit_InfeasibleTask(t *testing.T) {
	small := solidTask("small", 2, 2, 1)
	huge := solidTask("huge", 5, 5, 1)

	_, err := NextFit(reqsOf(small, huge), NewGrid(4, 4), 0)
	require.Error(t, err)
	var infeasible *InfeasibleError
	require.ErrorAs(t, err, &infeasible)
	assert.Equal(t, []*Task{huge}, infeasible.Tasks)
}

func TestFirstFit_BacktracksToOpenSchedules(t *testing.T) {
	// first-fit revisits earlier schedules; next-fit never does
	a := solidTask("A", 4, 3, 1)
	b := solidTask("B", 4, 2, 1)
	c := solidTask("C", 4, 1, 1)

	scheds, err := FirstFit(reqsOf(a, b, c), NewGrid(4, 4))
	require.NoError(t, err)
	require.Len(t, scheds, 2)
	assert.Equal(t, []string{"A", "C"}, scheduleNames(scheds[0]))
	assert.Equal(t, []string{"B"}, scheduleNames(scheds[1]))
	assertDisjoint(t, scheds[0])
}

func TestFirstFit_InfeasibleTask(t *testing.T) {
	huge := solidTask("huge", 17, 17, 1)
	_, err := FirstFit(reqsOf(huge), NewGrid(16, 16))
	var infeasible *InfeasibleError
	require.ErrorAs(t, err, &infeasible)
	assert.Equal(t, []*Task{huge}, infeasible.Tasks)
}

func TestWeightedRandomFit_Deterministic(t *testing.T) {
	tasks := []*Task{
		solidTask("A", 2, 2, 10),
		solidTask("B", 2, 2, 20),
		solidTask("C", 2, 2, 30),
		solidTask("D", 2, 2, 40),
	}

	s1 := WeightedRandomFit(reqsOf(tasks...), NewGrid(4, 4), nil, rand.New(rand.NewSource(7)))
	s2 := WeightedRandomFit(reqsOf(tasks...), NewGrid(4, 4), nil, rand.New(rand.NewSource(7)))

	require.Equal(t, scheduleNames(s1), scheduleNames(s2))
	assert.Len(t, s1, 4)
	assertDisjoint(t, s1)
}

func TestWeightedRandomFit_DropsUnfittable(t *testing.T) {
	// the oversized task is dropped from the pool, not fatal
	tasks := []*Task{
		solidTask("fits", 2, 2, 10),
		solidTask("huge", 5, 5, 10),
	}

	sched := WeightedRandomFit(reqsOf(tasks...), NewGrid(4, 4), nil, rand.New(rand.NewSource(1)))
	assert.Equal(t, []string{"fits"}, scheduleNames(sched))
}

func TestWeightedRandomFit_WeightsBiasSelection(t *testing.T) {
	// only one task can fit; an overwhelming weight on task B makes it the
	// near-certain first draw
	tasks := []*Task{
		solidTask("A", 4, 4, 10),
		solidTask("B", 4, 4, 10),
	}
	weights := []float64{0.0001, 1000}

	sched := WeightedRandomFit(reqsOf(tasks...), NewGrid(4, 4), weights, rand.New(rand.NewSource(3)))
	require.Len(t, sched, 1)
	assert.Equal(t, "B", sched[0].Task.Name)
}

func TestWeightedRandomFit_EmptyPool(t *testing.T) {
	sched := WeightedRandomFit(nil, NewGrid(4, 4), nil, rand.New(rand.NewSource(1)))
	assert.Empty(t, sched)
}
