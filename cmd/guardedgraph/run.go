package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	gg "github.com/ptrchase/guardedgraph"
	"github.com/ptrchase/guardedgraph/ascii"
)

func newRunCmd() *cobra.Command {
	// NewConfig's own defaults are always valid (positive trial count,
	// non-empty heap), so an error here means NewConfig itself regressed.
	base, err := gg.NewConfig().RunConfig()
	if err != nil {
		panic(err)
	}

	var (
		trials         = base.Trials
		seed           uint32
		heapLen        = base.HeapLen
		kernel         string
		outDir         = base.OutDirSet
		stopOnMismatch = base.StopOnMismatch
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the differential harness across all (or one) kernel",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := gg.RunConfig{
				Trials:         trials,
				Seed:           seed,
				HeapLen:        heapLen,
				OutDirSet:      outDir,
				StopOnMismatch: stopOnMismatch,
			}

			var results []gg.RunResult
			if kernel == "" {
				var err error
				results, err = gg.RunAll(cfg)
				if err != nil {
					return err
				}
			} else {
				ks, err := findKernel(kernel)
				if err != nil {
					return err
				}
				r, err := gg.Run(ks, cfg)
				if err != nil {
					return err
				}
				results = []gg.RunResult{r}
			}

			printSummary(results)
			printMismatches(results)
			return nil
		},
	}

	cmd.Flags().IntVar(&trials, "trials", trials, "trials to run per kernel")
	cmd.Flags().Uint32Var(&seed, "seed", 1, "PRNG seed for heap/env synthesis")
	cmd.Flags().IntVar(&heapLen, "heap-size", heapLen, "number of heap objects to synthesize")
	cmd.Flags().StringVar(&kernel, "kernel", "", "run only this kernel (default: all)")
	cmd.Flags().StringVar(&outDir, "out-dir", outDir, "directory for witness files (default: $GUARDEDGRAPH_OUT_DIR or .)")
	cmd.Flags().BoolVar(&stopOnMismatch, "stop-on-first-mismatch", stopOnMismatch, "stop a kernel's trials as soon as one mismatch is found")
	return cmd
}

func findKernel(name string) (gg.KernelSpec, error) {
	for _, ks := range gg.Kernels {
		if ks.Name == name {
			return ks, nil
		}
	}
	return gg.KernelSpec{}, fmt.Errorf("unknown kernel %q", name)
}

func printSummary(results []gg.RunResult) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Kernel", "Trials", "OK", "Mismatches"})
	for _, r := range results {
		t.AppendRow(table.Row{r.Kernel, r.Trials, r.Ok, r.Mismatches})
	}
	t.Render()
}

// printMismatches prints one colorized line per disagreeing trial,
// coloring each side's error kind with the theme's Severity mapping so
// a "null" mismatch reads differently from a "type" one at a glance.
func printMismatches(results []gg.RunResult) {
	theme := ascii.DefaultTheme
	for _, r := range results {
		for _, w := range r.Witnesses {
			kernelErr := ascii.Color(theme.Severity(w.Direct.Err), "%s", w.Direct.Err)
			graphErr := ascii.Color(theme.Severity(w.Graph.Err), "%s", w.Graph.Err)
			fmt.Printf("  %s mismatch: kernel=%s graph=%s\n", r.Kernel, kernelErr, graphErr)
		}
	}
}
