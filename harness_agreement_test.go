package guardedgraph_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	gg "github.com/ptrchase/guardedgraph"
)

// Agreement is a cross-cutting property that no single package-local
// unit test checks on its own: across hundreds of randomized trials,
// every kernel's direct (checked-runtime) result and its lifted graph's
// result must be bit-for-bit identical, including the Err value when
// both sides fail.
var _ = Describe("Agreement between the checked runtime and the graph evaluator", func() {
	var outDir string

	BeforeEach(func() {
		var err error
		outDir, err = os.MkdirTemp("", "guardedgraph-agreement-*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { os.RemoveAll(outDir) })
	})

	for _, ks := range gg.Kernels {
		ks := ks

		Describe(ks.Name, func() {
			It("produces identical results on a large batch of random trials", func() {
				cfg := gg.RunConfig{Trials: 500, Seed: 42, HeapLen: 8, OutDirSet: outDir}
				result, err := gg.Run(ks, cfg)
				Expect(err).NotTo(HaveOccurred())
				Expect(result.Trials).To(Equal(500))
				Expect(result.Mismatches).To(Equal(0), "witness files explain any disagreement: %v", result.Witnesses)
			})

			It("writes a witness file for every mismatch it finds", func() {
				cfg := gg.RunConfig{Trials: 50, Seed: 1, HeapLen: 8, OutDirSet: outDir}
				result, err := gg.Run(ks, cfg)
				Expect(err).NotTo(HaveOccurred())

				entries, err := os.ReadDir(outDir)
				Expect(err).NotTo(HaveOccurred())

				var witnessFiles int
				for _, e := range entries {
					if filepath.Ext(e.Name()) == ".json" {
						witnessFiles++
					}
				}
				Expect(witnessFiles).To(Equal(result.Mismatches))
			})
		})
	}
})
