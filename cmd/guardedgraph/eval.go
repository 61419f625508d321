package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	gg "github.com/ptrchase/guardedgraph"
)

func newEvalCmd() *cobra.Command {
	var graphPath, heapPath, envPath string

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a serialized graph against a heap/env pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			graphData, err := os.ReadFile(graphPath)
			if err != nil {
				return fmt.Errorf("read graph: %w", err)
			}
			var graph gg.Graph
			if err := json.Unmarshal(graphData, &graph); err != nil {
				return fmt.Errorf("parse graph: %w", err)
			}
			if err := graph.Validate(); err != nil {
				return fmt.Errorf("invalid graph: %w", err)
			}

			heapData, err := os.ReadFile(heapPath)
			if err != nil {
				return fmt.Errorf("read heap: %w", err)
			}
			heap, err := gg.ParseHeap(heapData)
			if err != nil {
				return err
			}

			envData, err := os.ReadFile(envPath)
			if err != nil {
				return fmt.Errorf("read env: %w", err)
			}
			env, err := gg.ParseEnv(envData)
			if err != nil {
				return err
			}

			result := gg.EvalGraph(&graph, heap, env)
			fmt.Println(result.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&graphPath, "graph", "", "path to a lifted graph JSON file (required)")
	cmd.Flags().StringVar(&heapPath, "heap", "", "path to a heap JSON file (required)")
	cmd.Flags().StringVar(&envPath, "env", "", "path to an env JSON file (required)")
	cmd.MarkFlagRequired("graph")
	cmd.MarkFlagRequired("heap")
	cmd.MarkFlagRequired("env")
	return cmd
}
