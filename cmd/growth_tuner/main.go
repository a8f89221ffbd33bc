package main

import (
	"flag"
	"fmt"
	"runtime"
	"strings"
	"time"

	"grove/internal/sims/garden"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	target := flag.Duration("target", 2*time.Minute, "desired untended time from seed to mature tree")
	tps := flag.Int("tps", 60, "ticks per second used to convert durations")
	lo := flag.Float64("min", 0.01, "smallest growth speed to try")
	hi := flag.Float64("max", 1, "largest growth speed to try")
	samples := flag.Int("samples", 100, "number of growth speeds to try")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel candidate evaluations")
	limit := flag.Int("limit", 1_000_000, "give up on a candidate after this many ticks")
	manualOnly := flag.Bool("manual", false, "skip sweeping and only evaluate provided overrides")
	var overrides kvList
	flag.Var(&overrides, "set", "parameter override in key=value form (repeatable)")
	flag.Parse()

	set := make(map[string]string, len(overrides))
	for _, kv := range overrides {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		set[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	cfg := garden.FromMap(set)
	if *tps <= 0 {
		*tps = 60
	}

	fmt.Printf("Baseline: growth_speed=%.4f water=%.2fx fertilize=%.2fx\n",
		cfg.Params.GrowthSpeed, cfg.Params.WaterMultiplier, cfg.Params.FertilizeMultiplier)
	printRegimes(cfg.Params, *tps, *limit)

	if *manualOnly {
		fmt.Println("Manual evaluation requested; skipping sweep.")
		return
	}

	targetTicks := int(target.Seconds() * float64(*tps))
	candidates := garden.SpeedCandidates(*lo, *hi, *samples)
	fmt.Printf("\nSweeping %d growth speeds for %s (%d ticks, %d workers)\n", len(candidates), *target, targetTicks, *workers)

	start := time.Now()
	results := garden.GrowthSweep(cfg.Params, candidates, targetTicks, *limit, *workers)
	elapsed := time.Since(start)
	if len(results) == 0 {
		fmt.Println("No candidates evaluated.")
		return
	}

	fmt.Printf("\nTop 5 results (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i := 0; i < len(results) && i < 5; i++ {
		res := results[i]
		fmt.Printf("%2d) growth_speed=%.4f ticks=%d (%s) miss=%d\n",
			i+1, res.Speed, res.Ticks, ticksDuration(res.Ticks, *tps), res.Miss)
	}

	best := cfg.Params
	best.GrowthSpeed = results[0].Speed
	fmt.Printf("\nBest found: growth_speed=%.4f\n", best.GrowthSpeed)
	printRegimes(best, *tps, *limit)
}

func printRegimes(p garden.Params, tps, limit int) {
	for _, r := range garden.CareRegimes {
		ticks := garden.TicksToStage(p, garden.MaxStage, r.Watered, r.Fertilized, limit)
		fmt.Printf("  %-10s ticks=%d (%s)\n", r.Name, ticks, ticksDuration(ticks, tps))
	}
}

func ticksDuration(ticks, tps int) string {
	if ticks < 0 {
		return "never"
	}
	d := time.Duration(ticks) * time.Second / time.Duration(tps)
	return d.Round(time.Millisecond).String()
}
