// Command guardedgraph is the differential-testing driver: it runs
// checked-pointer kernels directly and through their lifted dataflow
// graphs and reports whether the two agree.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool

	root := &cobra.Command{
		Use:   "guardedgraph",
		Short: "Differentially test checked-pointer kernels against their lifted graphs",
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		configureLogging(debug)
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newLiftCmd())
	root.AddCommand(newEvalCmd())
	return root
}
