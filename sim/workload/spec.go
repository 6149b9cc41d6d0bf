// Package workload generates and loads task sets for the QAMT simulator.
// Task-set files are YAML (JSON parses through the same path); embeddings are
// structured 0/1 bitmaps — the loader never evaluates expressions.
package workload

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ianmalcolm/QAMTSimulator/sim"
)

// TaskSpec is one task record of a task-set file.
type TaskSpec struct {
	Name       string  `yaml:"name"`
	Embd       [][]int `yaml:"embd"`
	NumReads   int     `yaml:"num_reads"`
	AnnealTime int64   `yaml:"anneal_time"`
	TArrive    int64   `yaml:"t_arrive"`
	// AnnealSchedule is accepted for compatibility with existing task files
	// and carried through unused: the annealer models a sample purely as
	// elapsed time.
	AnnealSchedule []float64 `yaml:"anneal_schedule,omitempty"`
}

// Validate rejects malformed task records at load time, before the core ever
// sees them.
func (ts TaskSpec) Validate() error {
	if ts.Name == "" {
		return fmt.Errorf("task has no name")
	}
	if len(ts.Embd) == 0 || len(ts.Embd[0]) == 0 {
		return fmt.Errorf("task %s: embedding is empty", ts.Name)
	}
	cols := len(ts.Embd[0])
	occupied := 0
	for i, row := range ts.Embd {
		if len(row) != cols {
			return fmt.Errorf("task %s: embedding row %d has %d cells, want %d", ts.Name, i, len(row), cols)
		}
		for j, v := range row {
			if v != 0 && v != 1 {
				return fmt.Errorf("task %s: embedding cell (%d,%d) is %d, want 0 or 1", ts.Name, i, j, v)
			}
			occupied += v
		}
	}
	if occupied == 0 {
		return fmt.Errorf("task %s: embedding occupies no cells", ts.Name)
	}
	if ts.NumReads < 1 {
		return fmt.Errorf("task %s: num_reads must be >= 1, got %d", ts.Name, ts.NumReads)
	}
	if ts.AnnealTime < 1 {
		return fmt.Errorf("task %s: anneal_time must be >= 1, got %d", ts.Name, ts.AnnealTime)
	}
	if ts.TArrive < 0 {
		return fmt.Errorf("task %s: t_arrive must be >= 0, got %d", ts.Name, ts.TArrive)
	}
	return nil
}

// Load reads and validates a task-set file.
func Load(path string) ([]TaskSpec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading task set: %w", err)
	}
	var specs []TaskSpec
	if err := yaml.Unmarshal(raw, &specs); err != nil {
		return nil, fmt.Errorf("parsing task set %s: %w", path, err)
	}
	if err := validateAll(specs); err != nil {
		return nil, err
	}
	logrus.Debugf("loaded %d tasks from %s", len(specs), path)
	return specs, nil
}

// Save writes a task set to path as YAML.
func Save(path string, specs []TaskSpec) error {
	raw, err := yaml.Marshal(specs)
	if err != nil {
		return fmt.Errorf("encoding task set: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing task set: %w", err)
	}
	return nil
}

// BuildTasks validates specs and bridges them to simulator tasks.
func BuildTasks(specs []TaskSpec) ([]*sim.Task, error) {
	if err := validateAll(specs); err != nil {
		return nil, err
	}
	tasks := make([]*sim.Task, len(specs))
	for i, ts := range specs {
		embd, err := sim.GridFromBitmap(ts.Embd)
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", ts.Name, err)
		}
		tasks[i] = sim.NewTask(ts.Name, embd, ts.NumReads, ts.AnnealTime, ts.TArrive)
	}
	return tasks, nil
}

func validateAll(specs []TaskSpec) error {
	seen := make(map[string]bool, len(specs))
	for _, ts := range specs {
		if err := ts.Validate(); err != nil {
			return err
		}
		if seen[ts.Name] {
			return fmt.Errorf("duplicate task name %q", ts.Name)
		}
		seen[ts.Name] = true
	}
	return nil
}
