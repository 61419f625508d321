package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	gg "github.com/ptrchase/guardedgraph"
	"github.com/ptrchase/guardedgraph/ascii"
)

func newLiftCmd() *cobra.Command {
	var kernel string
	var pretty bool

	cmd := &cobra.Command{
		Use:   "lift",
		Short: "Lift one kernel and print its graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := findKernel(kernel)
			if err != nil {
				return err
			}
			graph, err := gg.Lift(ks.Name, ks.Fn)
			if err != nil {
				return fmt.Errorf("lift %s: %w", ks.Name, err)
			}

			if pretty {
				printGraphColored(graph)
				return nil
			}

			data, err := json.MarshalIndent(graph, "", "  ")
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(append(data, '\n'))
			return err
		},
	}

	cmd.Flags().StringVar(&kernel, "kernel", "", "kernel to lift (required)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "print a colorized node listing instead of JSON")
	cmd.MarkFlagRequired("kernel")
	return cmd
}

// printGraphColored renders a graph as a colorized, id-ordered node
// listing: node kind in the theme's Operator color, an input's name in
// Operand, its referenced node ids in Span, and literal attributes
// (field index, constant value) in Literal. Grounded on the teacher's ascii.Theme, previously
// used only for diagnostics; here it colors graph structure instead.
func printGraphColored(g *gg.Graph) {
	theme := ascii.DefaultTheme
	ids := make([]int, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	fmt.Println(ascii.Color(theme.Accent, "%s", g.Function))
	for _, id := range ids {
		n := g.Nodes[id]
		kind := ascii.Color(theme.Operator, "%s", n.Kind)
		line := fmt.Sprintf("  %s%d%s: %s", ascii.Gray, id, ascii.Reset, kind)

		switch {
		case n.Name != "":
			line += " " + ascii.Color(theme.Operand, "%s", n.Name)
		case n.Value != 0 || n.Kind == "const_int":
			line += " " + ascii.Color(theme.Literal, "%d", n.Value)
		}
		if n.Kind == "getfield" || n.Kind == "getfield_int" {
			line += " " + ascii.Color(theme.Literal, "field=%d", n.Field)
		}
		for _, ref := range []int{n.X, n.Y, n.Cond, n.Then, n.Else} {
			if ref != 0 {
				line += " " + ascii.Color(theme.Span, "#%d", ref)
			}
		}
		if id == g.Output {
			line += " " + ascii.Color(theme.Success, "(output)")
		}
		fmt.Println(line)
	}
}
