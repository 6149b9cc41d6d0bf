package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianmalcolm/QAMTSimulator/sim"
	"github.com/ianmalcolm/QAMTSimulator/sim/workload"
)

// End-to-end: a synthesised workload runs to completion on the stock annealer
// under every scheduling policy.
func TestMain_SynthesisedWorkload(t *testing.T) {
	for _, name := range []string{"toy", "static", "naive", "preempt", "dynamic"} {
		t.Run(name, func(t *testing.T) {
			seed := sim.NewRunSeed(0)

			specs := workload.RandomTasks(4, 12, 12, 100,
				workload.DefaultSampleRange(), seed.WorkloadRNG())
			tasks, err := workload.BuildTasks(specs)
			require.NoError(t, err)

			annealer := sim.NewChimera(sim.DefaultAnnealerConfig())
			scheduler := sim.NewSchedulerByName(name, sim.SchedulerConfig{
				NSamples: sim.DefaultDynamicSamples,
				RNG:      seed.PackerRNG(),
			})

			s := sim.NewSimulator(tasks, annealer, scheduler, sim.SimulatorConfig{})
			require.NoError(t, s.Run())

			assert.True(t, s.IsComplete(), "event queue drains")
			require.Len(t, s.TaskComplete, len(tasks))
			for _, task := range tasks {
				assert.True(t, task.IsComplete(), "task %s", task)
				assert.GreaterOrEqual(t, task.SamplesComplete(), task.NumReads)
			}

			// every executed instruction is archived with a consistent window
			assert.NotEmpty(t, s.InstComplete)
			for _, inst := range s.CompletedInstructions() {
				start, end, program, sample := inst.Timing()
				assert.Equal(t, end-start, program+sample)
				assert.Equal(t, sample, inst.AnnealTime()*int64(inst.NumReads()))
			}

			report := sim.BuildReport(s)
			assert.Equal(t, len(tasks), report.CompletedTasks)
			assert.Greater(t, report.Utilisation, 0.0)
		})
	}
}

// Two runs from the same seed produce identical instruction end times.
func TestMain_DeterministicAcrossRuns(t *testing.T) {
	run := func() []int64 {
		seed := sim.NewRunSeed(9)
		specs := workload.RandomTasks(6, 10, 10, 200,
			workload.DefaultSampleRange(), seed.WorkloadRNG())
		tasks, err := workload.BuildTasks(specs)
		require.NoError(t, err)

		annealer := sim.NewChimera(sim.DefaultAnnealerConfig())
		scheduler := sim.NewSchedulerByName("dynamic", sim.SchedulerConfig{
			NSamples: sim.DefaultDynamicSamples,
			RNG:      seed.PackerRNG(),
		})

		s := sim.NewSimulator(tasks, annealer, scheduler, sim.SimulatorConfig{})
		require.NoError(t, s.Run())

		var ends []int64
		for _, inst := range s.CompletedInstructions() {
			_, end, _, _ := inst.Timing()
			ends = append(ends, end)
		}
		return ends
	}

	assert.Equal(t, run(), run())
}
