// cmd/root.go
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/ianmalcolm/QAMTSimulator/sim"
	"github.com/ianmalcolm/QAMTSimulator/sim/workload"
)

var (
	tasksFile   string
	numTasks    int
	annealTime  int64
	schedName   string
	gridRows    int
	gridCols    int
	programTime int64
	samplesCap  int
	seed        int64
	staticMode  bool
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "qamts",
	Short: "Discrete-event simulator for quantum-annealing multi-task scheduling",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the QAMT simulation",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		runSeed := sim.NewRunSeed(seed)

		var specs []workload.TaskSpec
		if tasksFile != "" {
			specs, err = workload.Load(tasksFile)
			if err != nil {
				logrus.Fatalf("Loading tasks: %v", err)
			}
		} else {
			specs = workload.RandomTasks(numTasks, gridRows, gridCols, annealTime,
				workload.DefaultSampleRange(), runSeed.WorkloadRNG())
		}
		tasks, err := workload.BuildTasks(specs)
		if err != nil {
			logrus.Fatalf("Building tasks: %v", err)
		}

		logrus.Infof("Starting simulation: %d tasks, %dx%d grid, scheduler=%s, program_time=%d",
			len(tasks), gridRows, gridCols, schedName, programTime)

		annealer := sim.NewChimera(sim.AnnealerConfig{
			Rows:        gridRows,
			Cols:        gridCols,
			ProgramTime: programTime,
		})
		scheduler := sim.NewSchedulerByName(schedName, sim.SchedulerConfig{
			NSamples: samplesCap,
			RNG:      runSeed.PackerRNG(),
		})

		s := sim.NewSimulator(tasks, annealer, scheduler, sim.SimulatorConfig{
			StaticScheduling: staticMode,
		})
		if err := s.Run(); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		sim.BuildReport(s).Print()
		logrus.Info("Simulation complete.")
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	runCmd.Flags().StringVar(&tasksFile, "tasks", "", "Task-set YAML file (omit to synthesise a workload)")
	runCmd.Flags().IntVar(&numTasks, "num", 4, "Number of tasks to synthesise when --tasks is omitted")
	runCmd.Flags().Int64Var(&annealTime, "anneal-time", workload.DefaultAnnealTime, "Per-sample anneal time of synthesised tasks")
	runCmd.Flags().StringVar(&schedName, "scheduler", "dynamic", "Scheduling policy (toy, static, naive, preempt, dynamic)")
	runCmd.Flags().IntVar(&gridRows, "rows", sim.DefaultGridRows, "Resource grid rows")
	runCmd.Flags().IntVar(&gridCols, "cols", sim.DefaultGridCols, "Resource grid cols")
	runCmd.Flags().Int64Var(&programTime, "program-time", sim.DefaultProgramTime, "Per-instruction programming latency")
	runCmd.Flags().IntVar(&samplesCap, "samples-cap", sim.DefaultDynamicSamples, "Sample batch cap of the dynamic scheduler (0 = uncapped)")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "Master seed for workload synthesis and packing draws")
	runCmd.Flags().BoolVar(&staticMode, "static", false, "Static scheduling: override all arrival times to 0")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(runCmd)
}
