// Implements the placement engine: given the processor's resource bitmap and a
// task's demand bitmap, find the best-scoring non-overlapping position for the
// demand, searching over the symmetries of the square.

package sim

// edge-preference kernel: 4-connectivity cross
var crossKernel = [3][3]int{
	{0, 1, 0},
	{1, 1, 1},
	{0, 1, 0},
}

// fitDemand places dmd onto res without rotation. It returns the allocation
// bitmap (same shape as res), the placement score (higher is better) and
// whether a feasible placement exists.
//
// Feasibility is the cross-correlation of occupancy(res) with dmd in valid
// mode: a zero at (i,j) means the demand placed with its top-left corner at
// (i,j) overlaps no occupied cell. The score convolves the feasibility map,
// padded with a one-cell border of 1s, with a 4-connectivity cross, rewarding
// placements adjacent to occupied cells or the grid boundary. Among equal
// scores the first position in row-major order wins.
func fitDemand(res, dmd *Grid) (*Grid, int, bool) {
	rr, rc := res.Dims()
	dr, dc := dmd.Dims()
	if dr > rr || dc > rc {
		return nil, 0, false
	}

	occ := res.Occupancy()

	// feasibility map, valid mode: (rr-dr+1) x (rc-dc+1)
	fr, fc := rr-dr+1, rc-dc+1
	feasible := make([][]int, fr)
	for i := 0; i < fr; i++ {
		feasible[i] = make([]int, fc)
		for j := 0; j < fc; j++ {
			s := 0
			for u := 0; u < dr; u++ {
				for v := 0; v < dc; v++ {
					s += occ.At(i+u, j+v) * dmd.At(u, v)
				}
			}
			feasible[i][j] = s
		}
	}

	// padF reads the feasibility map as if padded with a border of 1s.
	padF := func(i, j int) int {
		if i < 0 || j < 0 || i >= fr || j >= fc {
			return 1
		}
		return feasible[i][j]
	}

	bestScore, bestI, bestJ := 0, -1, -1
	for i := 0; i < fr; i++ {
		for j := 0; j < fc; j++ {
			if feasible[i][j] != 0 {
				continue
			}
			score := 0
			for u := -1; u <= 1; u++ {
				for v := -1; v <= 1; v++ {
					if crossKernel[u+1][v+1] == 1 {
						score += padF(i+u, j+v)
					}
				}
			}
			if score > bestScore {
				bestScore, bestI, bestJ = score, i, j
			}
		}
	}

	if bestScore == 0 {
		return nil, 0, false
	}

	alloc := NewGrid(rr, rc)
	for u := 0; u < dr; u++ {
		for v := 0; v < dc; v++ {
			alloc.Set(bestI+u, bestJ+v, dmd.At(u, v))
		}
	}
	return alloc, bestScore, true
}

// FitDemand exposes the no-rotation placement for callers that manage
// transforms themselves.
func FitDemand(res, dmd *Grid) (*Grid, int, bool) {
	return fitDemand(res, dmd)
}

// FitDemandRotateFlip places dmd onto res trying the symmetries of the square.
// A fully solid (rectangular) demand only needs the 0 and 90 degree rotations;
// an irregular shape is tried under all four rotations, each mirrored and
// plain. The highest-scoring allocation wins; the first transform to reach the
// best score is kept. Returns nil, false when no transform fits.
func FitDemandRotateFlip(res, dmd *Grid) (*Grid, bool) {
	var best *Grid
	bestScore := 0

	try := func(d *Grid) {
		alloc, score, ok := fitDemand(res, d)
		if ok && score > bestScore {
			best, bestScore = alloc, score
		}
	}

	if dmd.AllOnes() {
		d := dmd
		for k := 0; k < 2; k++ {
			try(d)
			d = d.Rot90()
		}
	} else {
		d := dmd
		for k := 0; k < 4; k++ {
			try(d.FlipLR())
			try(d)
			d = d.Rot90()
		}
	}

	if best == nil {
		return nil, false
	}
	return best, true
}
