// cmd/generate.go
package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/ianmalcolm/QAMTSimulator/sim"
	"github.com/ianmalcolm/QAMTSimulator/sim/workload"
)

var (
	genNum        int
	genAnnealTime int64
	genSeed       int64
	genRows       int
	genCols       int
	genOut        string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a random task-set YAML file",
	Run: func(cmd *cobra.Command, args []string) {
		specs := workload.RandomTasks(genNum, genRows, genCols, genAnnealTime,
			workload.DefaultSampleRange(), sim.NewRunSeed(genSeed).WorkloadRNG())
		if err := workload.Save(genOut, specs); err != nil {
			logrus.Fatalf("Writing task set: %v", err)
		}
		logrus.Infof("Wrote %d tasks to %s", len(specs), genOut)
	},
}

func init() {
	generateCmd.Flags().IntVar(&genNum, "num", 4, "Number of tasks to generate")
	generateCmd.Flags().Int64Var(&genAnnealTime, "anneal-time", workload.DefaultAnnealTime, "Per-sample anneal time")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "Workload seed")
	generateCmd.Flags().IntVar(&genRows, "rows", 12, "Maximum embedding rows")
	generateCmd.Flags().IntVar(&genCols, "cols", 12, "Maximum embedding cols")
	generateCmd.Flags().StringVar(&genOut, "out", "tasks.yaml", "Output file")
	rootCmd.AddCommand(generateCmd)
}
