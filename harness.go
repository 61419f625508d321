package guardedgraph

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// OutDirEnvVar overrides where witnesses and lifted graphs are written.
const OutDirEnvVar = "GUARDEDGRAPH_OUT_DIR"

// RunResult tallies one kernel's trials.
type RunResult struct {
	Kernel     string
	Trials     int
	Ok         int
	Mismatches int
	Witnesses  []Witness
}

// RunConfig drives Run/RunAll: how many trials per kernel, the PRNG
// seed, the heap size to synthesize, and where to write witnesses.
type RunConfig struct {
	Trials         int
	Seed           uint32
	HeapLen        int
	OutDirSet      string
	StopOnMismatch bool
}

// resolveOutDir picks the effective output directory: an explicit
// RunConfig.OutDirSet wins, then GUARDEDGRAPH_OUT_DIR, then the current
// directory.
func (c RunConfig) resolveOutDir() string {
	if c.OutDirSet != "" {
		return c.OutDirSet
	}
	if v := os.Getenv(OutDirEnvVar); v != "" {
		return v
	}
	return "."
}

// Run executes RunConfig.Trials randomized trials of one kernel,
// comparing its direct (checked-runtime) result against its lifted
// graph's result on identical synthesized heap/env inputs, logging and
// collecting a Witness for every trial that disagrees.
func Run(ks KernelSpec, cfg RunConfig) (RunResult, error) {
	graph, err := Lift(ks.Name, ks.Fn)
	if err != nil {
		return RunResult{}, fmt.Errorf("lift %s: %w", ks.Name, err)
	}

	rng := NewRng(cfg.Seed)
	result := RunResult{Kernel: ks.Name, Trials: cfg.Trials}

	for i := 0; i < cfg.Trials; i++ {
		heap := NewHeap(cfg.HeapLen)
		RandomizeHeap(heap, ks.Fields, rng)
		env := RandomizeEnv(cfg.HeapLen, rng, ks.UseP, ks.UseQ)

		direct := RunKernel(ks.Fn, heap, env)
		graphResult := EvalGraph(graph, heap, env)

		trialID := xid.New()
		w := NewWitness(ks.Name, env, heap, direct, graphResult)

		if w.Agrees() {
			result.Ok++
			log.Debug().Str("kernel", ks.Name).Str("trial", trialID.String()).Msg("agreement")
			continue
		}

		result.Mismatches++
		result.Witnesses = append(result.Witnesses, w)
		log.Warn().
			Str("kernel", ks.Name).
			Str("trial", trialID.String()).
			Interface("direct", direct).
			Interface("graph", graphResult).
			Msg("mismatch between checked runtime and graph evaluator")

		if err := writeWitness(cfg.resolveOutDir(), ks.Name, trialID, w); err != nil {
			return result, fmt.Errorf("write witness for %s/%s: %w", ks.Name, trialID, err)
		}

		if cfg.StopOnMismatch {
			break
		}
	}

	return result, nil
}

// RunAll runs every registered kernel, returning one RunResult per
// kernel in Kernels order.
func RunAll(cfg RunConfig) ([]RunResult, error) {
	results := make([]RunResult, 0, len(Kernels))
	for _, ks := range Kernels {
		r, err := Run(ks, cfg)
		if err != nil {
			return results, err
		}
		results = append(results, r)
	}
	return results, nil
}

func writeWitness(dir, kernelName string, id xid.ID, w Witness) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(dir, fmt.Sprintf("witness-%s-%s.json", kernelName, id.String()))
	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ConfigureLogging sets zerolog's global level and console writer, used
// by the CLI entrypoint.
func ConfigureLogging(debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}
