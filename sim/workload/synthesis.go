// Synthesises random task sets: solid rectangular embeddings with correlated
// side lengths, sample budgets drawn from a discrete range, and arrivals
// spread over a window proportional to the expected total sampling load.

package workload

import (
	"fmt"
	"math/rand"
)

// DefaultAnnealTime is the per-sample anneal time of synthesised tasks.
const DefaultAnnealTime = 2000

// DefaultSampleRange returns the stock sample budgets: 100..1000 step 100.
func DefaultSampleRange() []int {
	out := make([]int, 0, 10)
	for r := 100; r <= 1000; r += 100 {
		out = append(out, r)
	}
	return out
}

// RandomTasks generates num task specs. Embeddings are solid r x c rectangles
// with r drawn from [1, maxRows] and c = r plus a jitter of [-2, 2], clamped
// to [1, maxCols]. Arrival times are spread linearly over a window scaled by
// the mean sample budget, each quantised down to a multiple of annealTime.
// The random source is injected so callers control determinism.
func RandomTasks(num, maxRows, maxCols int, annealTime int64, sampleRange []int, rng *rand.Rand) []TaskSpec {
	if len(sampleRange) == 0 {
		sampleRange = DefaultSampleRange()
	}

	meanSamples := 0.0
	for _, r := range sampleRange {
		meanSamples += float64(r)
	}
	meanSamples /= float64(len(sampleRange))

	window := float64(num) / 4 * meanSamples * float64(annealTime)

	width := len(fmt.Sprintf("%d", num))
	specs := make([]TaskSpec, num)
	for i := 0; i < num; i++ {
		rows := rng.Intn(maxRows) + 1
		cols := rows + rng.Intn(5) - 2
		if cols < 1 {
			cols = 1
		}
		if cols > maxCols {
			cols = maxCols
		}

		arrive := int64(0)
		if num > 1 {
			arrive = int64(window * float64(i) / float64(num-1))
			arrive -= arrive % annealTime
		}

		specs[i] = TaskSpec{
			Name:       fmt.Sprintf("t%0*d", width, i),
			Embd:       solidBitmap(rows, cols),
			NumReads:   sampleRange[rng.Intn(len(sampleRange))],
			AnnealTime: annealTime,
			TArrive:    arrive,
		}
	}
	return specs
}

func solidBitmap(rows, cols int) [][]int {
	out := make([][]int, rows)
	for i := range out {
		out[i] = make([]int, cols)
		for j := range out[i] {
			out[i][j] = 1
		}
	}
	return out
}
