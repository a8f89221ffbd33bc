package garden

import (
	"math"
	"sort"
	"sync"
)

// CareRegime is a fixed pattern of care re-applied after every stage.
type CareRegime struct {
	Name       string
	Watered    bool
	Fertilized bool
}

// CareRegimes lists the regimes the tuner reports on.
var CareRegimes = []CareRegime{
	{Name: "untended"},
	{Name: "watered", Watered: true},
	{Name: "fertilized", Fertilized: true},
	{Name: "both", Watered: true, Fertilized: true},
}

// SweepResult is the untended time to maturity for one growth speed.
type SweepResult struct {
	Speed float64
	Ticks int // -1 when the tree did not mature within the limit
	Miss  int // distance from the target in ticks
}

// SpeedCandidates spreads n growth speeds evenly over [lo, hi].
func SpeedCandidates(lo, hi float64, n int) []float64 {
	if n <= 1 || hi <= lo {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	return out
}

// GrowthSweep measures how long an untended tree takes to mature at each
// candidate speed and orders the results by distance from target. Candidates
// are evaluated on workers goroutines.
func GrowthSweep(p Params, candidates []float64, target, limit, workers int) []SweepResult {
	if workers <= 0 {
		workers = 1
	}
	jobs := make(chan float64)
	results := make(chan SweepResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for speed := range jobs {
				params := p
				params.GrowthSpeed = speed
				ticks := TicksToStage(params, MaxStage, false, false, limit)
				miss := math.MaxInt32
				if ticks >= 0 {
					miss = ticks - target
					if miss < 0 {
						miss = -miss
					}
				}
				results <- SweepResult{Speed: speed, Ticks: ticks, Miss: miss}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, speed := range candidates {
			jobs <- speed
		}
		close(jobs)
	}()

	all := make([]SweepResult, 0, len(candidates))
	for res := range results {
		all = append(all, res)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Miss != all[j].Miss {
			return all[i].Miss < all[j].Miss
		}
		return all[i].Speed < all[j].Speed
	})
	return all
}
