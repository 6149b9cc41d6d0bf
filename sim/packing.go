// Implements the bin-packing strategies that assign task resource requests to
// packed schedules: first-fit, next-fit and weighted-random-fit. All three are
// built on the placement engine and operate on copies of the processor's
// resource grid.

package sim

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// Request is a task's resource request as consumed by the packers: the demand
// bitmap and the duration (samples outstanding) the placement will last for.
type Request struct {
	Task     *Task
	Demand   *Grid
	Duration int
}

// Placement is a committed request: the task, its allocation on the schedule's
// grid and its duration.
type Placement struct {
	Task     *Task
	Alloc    *Grid
	Duration int
}

// Schedule is a set of placements that all run in parallel on one grid.
type Schedule []Placement

// Tasks returns the scheduled tasks in placement order.
func (s Schedule) Tasks() []*Task {
	out := make([]*Task, len(s))
	for i, p := range s {
		out[i] = p.Task
	}
	return out
}

// InfeasibleError reports tasks that cannot be placed even on an empty grid.
type InfeasibleError struct {
	Tasks []*Task
}

func (e *InfeasibleError) Error() string {
	names := make([]string, len(e.Tasks))
	for i, t := range e.Tasks {
		names[i] = t.Name
	}
	return fmt.Sprintf("failed to fit tasks [%s] on an empty grid", strings.Join(names, " "))
}

// FirstFit iterates the requests once in input order. Each request goes into
// the first open schedule where the placement engine finds a fit; if none
// fits, a new schedule is opened on a fresh copy of resources. A request that
// does not fit even on the fresh grid is infeasible.
func FirstFit(reqs []Request, resources *Grid) ([]Schedule, error) {
	type openSchedule struct {
		res    *Grid
		subset Schedule
	}
	schedules := []*openSchedule{{res: resources.Clone()}}

	for _, req := range reqs {
		placed := false
		for _, s := range schedules {
			if alloc, ok := FitDemandRotateFlip(s.res, req.Demand); ok {
				s.res.Add(alloc)
				s.subset = append(s.subset, Placement{Task: req.Task, Alloc: alloc, Duration: req.Duration})
				placed = true
				break
			}
		}
		if placed {
			continue
		}
		fresh := &openSchedule{res: resources.Clone()}
		alloc, ok := FitDemandRotateFlip(fresh.res, req.Demand)
		if !ok {
			return nil, &InfeasibleError{Tasks: []*Task{req.Task}}
		}
		fresh.res.Add(alloc)
		fresh.subset = append(fresh.subset, Placement{Task: req.Task, Alloc: alloc, Duration: req.Duration})
		schedules = append(schedules, fresh)
	}

	out := make([]Schedule, len(schedules))
	for i, s := range schedules {
		out[i] = s.subset
	}
	return out, nil
}

// NextFit maintains a single current schedule. Each round it commits the first
// remaining request that fits on the current schedule's grid; when none fits,
// it opens a new schedule on a fresh copy of resources, unless nSchedules > 0
// schedules already exist. If a freshly opened schedule still cannot fit any
// remaining request, the remainder is infeasible.
func NextFit(reqs []Request, resources *Grid, nSchedules int) ([]Schedule, error) {
	remaining := make([]Request, len(reqs))
	copy(remaining, reqs)

	type openSchedule struct {
		res    *Grid
		subset Schedule
	}
	schedules := []*openSchedule{{res: resources.Clone()}}

	for len(remaining) > 0 {
		cur := schedules[len(schedules)-1]

		placedIdx := -1
		var placement Placement
		for i, req := range remaining {
			if alloc, ok := FitDemandRotateFlip(cur.res, req.Demand); ok {
				placedIdx = i
				placement = Placement{Task: req.Task, Alloc: alloc, Duration: req.Duration}
				break
			}
		}

		if placedIdx >= 0 {
			cur.res.Add(placement.Alloc)
			cur.subset = append(cur.subset, placement)
			remaining = append(remaining[:placedIdx], remaining[placedIdx+1:]...)
			continue
		}

		if nSchedules > 0 && len(schedules) >= nSchedules {
			break
		}
		if len(cur.subset) == 0 {
			// a fresh grid cannot fit any remaining request
			tasks := make([]*Task, len(remaining))
			for i, req := range remaining {
				tasks[i] = req.Task
			}
			return nil, &InfeasibleError{Tasks: tasks}
		}
		schedules = append(schedules, &openSchedule{res: resources.Clone()})
	}

	out := make([]Schedule, len(schedules))
	for i, s := range schedules {
		out[i] = s.subset
	}
	return out, nil
}

// WeightedRandomFit packs requests into a single schedule, drawing the next
// candidate by inverse-CDF sampling over the given weights (nil means equal
// weights). A draw that fits is committed and removed from the pool; a draw
// that does not fit is dropped from the pool. Either way the CDF is rebuilt
// over the survivors. The pool always empties, so this never fails.
//
// The random source is injected so callers control determinism.
func WeightedRandomFit(reqs []Request, resources *Grid, weights []float64, rng *rand.Rand) Schedule {
	pool := make([]Request, len(reqs))
	copy(pool, reqs)

	w := make([]float64, len(reqs))
	if weights == nil {
		for i := range w {
			w[i] = 1
		}
	} else {
		copy(w, weights)
	}

	cdf := buildCDF(w)
	res := resources.Clone()
	var sched Schedule

	for len(pool) > 0 {
		i := sort.SearchFloat64s(cdf, rng.Float64())
		if i >= len(pool) {
			i = len(pool) - 1
		}

		if alloc, ok := FitDemandRotateFlip(res, pool[i].Demand); ok {
			res.Add(alloc)
			sched = append(sched, Placement{Task: pool[i].Task, Alloc: alloc, Duration: pool[i].Duration})
		}
		// committed or unfittable, the pick leaves the pool
		pool = append(pool[:i], pool[i+1:]...)
		w = append(w[:i], w[i+1:]...)
		cdf = buildCDF(w)
	}

	return sched
}

// buildCDF normalises weights into a cumulative distribution whose last entry
// is 1. SearchFloat64s over the result inverts a uniform draw into an index.
func buildCDF(weights []float64) []float64 {
	cdf := make([]float64, len(weights))
	total := 0.0
	for i, w := range weights {
		total += w
		cdf[i] = total
	}
	for i := range cdf {
		cdf[i] /= total
	}
	return cdf
}
