package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"sandfall/internal/material"
	"sandfall/internal/sims/sandfall"
	"sandfall/internal/sweepdb"
)

type job struct {
	scenario scenario
	seed     int64
}

type scenarioResult struct {
	scenario   string
	seed       int64
	frames     int
	updated    int64
	peakAwake  int
	finalAwake int
	settled    int
	counts     map[string]int
	elapsed    time.Duration
}

func (r scenarioResult) String() string {
	settled := "never"
	if r.settled >= 0 {
		settled = fmt.Sprintf("frame %d", r.settled)
	}
	return fmt.Sprintf("%-10s seed=%-4d updated=%-8d awake peak=%-3d final=%-3d settled=%s",
		r.scenario, r.seed, r.updated, r.peakAwake, r.finalAwake, settled)
}

func main() {
	frames := flag.Int("frames", 600, "frames to simulate per run")
	seeds := flag.Int("seeds", 4, "number of seeds per scenario, starting at -seed")
	firstSeed := flag.Int64("seed", 1, "first seed")
	size := flag.Int("size", 128, "world side length")
	only := flag.String("scenario", "", "comma-separated scenario names (default all)")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	dbPath := flag.String("db", "", "optional sqlite index to record runs into")
	flag.Parse()

	selected, err := selectScenarios(*only)
	if err != nil {
		log.Fatal(err)
	}

	base := sandfall.DefaultConfig()
	base.Size = *size

	var index *sweepdb.DB
	if *dbPath != "" {
		index, err = sweepdb.Open(*dbPath)
		if err != nil {
			log.Fatal(err)
		}
		defer index.Close()
	}

	var jobsList []job
	for _, s := range selected {
		for i := 0; i < *seeds; i++ {
			jobsList = append(jobsList, job{scenario: s, seed: *firstSeed + int64(i)})
		}
	}

	*workers = max(*workers, 1)
	fmt.Printf("Sweeping %d runs (%d workers, %d frames, size %d)\n", len(jobsList), *workers, *frames, base.Normalize().Size)

	results := runAll(base, jobsList, *frames, *workers)

	sweep := time.Now().UTC().Format("20060102T150405")
	start := time.Now()
	var all []scenarioResult
	for res := range results {
		all = append(all, res)
		if index != nil {
			if _, err := index.Record(context.Background(), toRun(sweep, res)); err != nil {
				log.Printf("record %s seed %d: %v", res.scenario, res.seed, err)
			}
		}
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].scenario != all[j].scenario {
			return all[i].scenario < all[j].scenario
		}
		return all[i].seed < all[j].seed
	})
	elapsed := time.Since(start)

	fmt.Printf("\nResults (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for _, res := range all {
		fmt.Println(res)
		fmt.Printf("           %s\n", formatCounts(res.counts))
	}
}

// runAll fans jobs out to a pool of workers and streams results back. The
// channel closes once every job has finished. At least one worker runs.
func runAll(base sandfall.Config, jobsList []job, frames, workers int) <-chan scenarioResult {
	workers = max(workers, 1)
	jobs := make(chan job)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				res, err := runScenario(base, j, frames)
				if err != nil {
					log.Printf("%s seed %d: %v", j.scenario.name, j.seed, err)
					continue
				}
				results <- res
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, j := range jobsList {
			jobs <- j
		}
		close(jobs)
	}()
	return results
}

func selectScenarios(only string) ([]scenario, error) {
	if only == "" {
		return scenarios, nil
	}
	var out []scenario
	for _, name := range strings.Split(only, ",") {
		s, ok := scenarioByName(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("unknown scenario %q", name)
		}
		out = append(out, s)
	}
	return out, nil
}

func runScenario(base sandfall.Config, j job, frames int) (scenarioResult, error) {
	cfg := base
	cfg.Seed = j.seed
	world, err := sandfall.NewWithConfig(cfg)
	if err != nil {
		return scenarioResult{}, err
	}
	j.scenario.setup(world)

	res := scenarioResult{scenario: j.scenario.name, seed: j.seed, frames: frames, settled: -1}
	start := time.Now()
	for f := 0; f < frames; f++ {
		world.Step()
		stats := world.Stats()
		res.updated += int64(stats.Updated)
		if stats.AwakeChunks > res.peakAwake {
			res.peakAwake = stats.AwakeChunks
		}
		if stats.AwakeChunks == 0 && res.settled < 0 {
			res.settled = f + 1
		}
		res.finalAwake = stats.AwakeChunks
	}
	res.elapsed = time.Since(start)
	res.counts = countMaterials(world)
	return res, nil
}

func countMaterials(w *sandfall.World) map[string]int {
	counts := make(map[string]int)
	for _, px := range w.Grid().Pixels() {
		if px.Material == material.Empty {
			continue
		}
		counts[px.Material.String()]++
	}
	return counts
}

func formatCounts(counts map[string]int) string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%d", name, counts[name]))
	}
	return strings.Join(parts, " ")
}

func toRun(sweep string, res scenarioResult) sweepdb.Run {
	return sweepdb.Run{
		Sweep:      sweep,
		Scenario:   res.scenario,
		Seed:       res.seed,
		Frames:     res.frames,
		Updated:    res.updated,
		PeakAwake:  res.peakAwake,
		FinalAwake: res.finalAwake,
		Settled:    res.settled,
		Counts:     res.counts,
		Elapsed:    res.elapsed,
	}
}
