package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"unsafe"

	"github.com/cloudfoundry/gosigar"
	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	s "github.com/bnclabs/gosettings"
	"github.com/bnclabs/uxmalloc/arena"
)

var benchOpts struct {
	iterations int
	minSize    int
	maxSize    int
	seed       int64
	budgetPct  int
}

func init() {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run a synthetic allocate/release/resize workload",
		RunE:  runBench,
	}
	cmd.Flags().IntVar(&benchOpts.iterations, "iterations", 10000, "number of operations to perform")
	cmd.Flags().IntVar(&benchOpts.minSize, "min-size", 16, "minimum payload size in bytes")
	cmd.Flags().IntVar(&benchOpts.maxSize, "max-size", 1<<20, "maximum payload size in bytes")
	cmd.Flags().Int64Var(&benchOpts.seed, "seed", 1, "PRNG seed")
	cmd.Flags().IntVar(&benchOpts.budgetPct, "budget-pct", 10, "cap live bytes at this percent of free system memory")
	rootCmd.AddCommand(cmd)
}

// memoryBudget queries free system memory via gosigar and returns the
// byte budget at which the workload stops making new allocations, so a
// large --iterations run on a small machine does not page.
func memoryBudget(pct int) (int64, error) {
	mem := sigar.Mem{}
	if err := mem.Get(); err != nil {
		return 0, fmt.Errorf("query system memory: %w", err)
	}
	return int64(mem.Free) * int64(pct) / 100, nil
}

type benchResult struct {
	Iterations  int   `json:"iterations"`
	HeapBytes   int64 `json:"heap_bytes"`
	MappedBytes int64 `json:"mapped_bytes"`
	Allocated   int64 `json:"allocated"`
	Budget      int64 `json:"budget"`
}

func runBench(cmd *cobra.Command, args []string) error {
	budget, err := memoryBudget(benchOpts.budgetPct)
	if err != nil {
		return err
	}
	printVerbose("memory budget: %s\n", humanize.Bytes(uint64(budget)))

	rng := rand.New(rand.NewSource(benchOpts.seed))
	a := arena.NewArena(s.Settings{})

	live := make([]unsafe.Pointer, 0, benchOpts.iterations)
	sizes := make([]int64, 0, benchOpts.iterations)
	var liveBytes int64

	randSize := func() int {
		span := benchOpts.maxSize - benchOpts.minSize
		if span <= 0 {
			return benchOpts.minSize
		}
		return benchOpts.minSize + rng.Intn(span)
	}

	for i := 0; i < benchOpts.iterations; i++ {
		switch {
		case len(live) == 0 || (rng.Intn(3) == 0 && liveBytes < budget):
			n := randSize()
			p := a.Allocate(n)
			if p != nil {
				live = append(live, p)
				sizes = append(sizes, int64(n))
				liveBytes += int64(n)
			}

		case rng.Intn(4) == 0:
			idx := rng.Intn(len(live))
			n := randSize()
			q := a.Resize(live[idx], n)
			live[idx] = q
			liveBytes += int64(n) - sizes[idx]
			sizes[idx] = int64(n)

		default:
			idx := rng.Intn(len(live))
			a.Release(live[idx])
			liveBytes -= sizes[idx]
			live[idx] = live[len(live)-1]
			live = live[:len(live)-1]
			sizes[idx] = sizes[len(sizes)-1]
			sizes = sizes[:len(sizes)-1]
		}

		if verbose && i%1000 == 0 {
			heapBytes, mappedBytes, allocated := a.Stats()
			printVerbose("iter %d: heap=%s mapped=%s allocated=%s\n",
				i, humanize.Bytes(uint64(heapBytes)), humanize.Bytes(uint64(mappedBytes)), humanize.Bytes(uint64(allocated)))
		}
	}

	for _, p := range live {
		a.Release(p)
	}

	heapBytes, mappedBytes, allocated := a.Stats()
	result := benchResult{
		Iterations:  benchOpts.iterations,
		HeapBytes:   heapBytes,
		MappedBytes: mappedBytes,
		Allocated:   allocated,
		Budget:      budget,
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Printf("iterations:    %d\n", result.Iterations)
	fmt.Printf("heap bytes:    %s\n", humanize.Bytes(uint64(result.HeapBytes)))
	fmt.Printf("mapped bytes:  %s\n", humanize.Bytes(uint64(result.MappedBytes)))
	fmt.Printf("allocated:     %s\n", humanize.Bytes(uint64(result.Allocated)))
	return nil
}
