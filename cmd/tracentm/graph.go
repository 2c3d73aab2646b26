package main

import (
	"fmt"
	"os"

	"github.com/aretw0/tracentm"
	"github.com/aretw0/tracentm/internal/cli"
	"github.com/aretw0/tracentm/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <machine>",
	Short: "Export the machine as a Mermaid state diagram",
	Long: `Outputs a Mermaid stateDiagram-v2 of the transition relation.
With --input the states on the accepting path are highlighted when the input is accepted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := runOptions(cmd, []string{args[0], ""})
		if err != nil {
			return err
		}
		engine, err := cli.NewEngine(opts)
		if err != nil {
			return err
		}

		var overlay *graph.PathOverlay
		if cmd.Flags().Changed("input") {
			input, _ := cmd.Flags().GetString("input")
			depth, _ := cmd.Flags().GetInt("depth")
			overlay = graph.OverlayFromReport(engine.Trace(cmd.Context(), input, depth))
		}

		fmt.Fprint(os.Stdout, graph.GenerateMermaid(engine.Machine(), overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("input", "", "Trace this input and highlight its path")
	graphCmd.Flags().Int("depth", tracentm.DefaultMaxDepth, "Depth bound used with --input")
	graphCmd.Flags().String("loader", "", "Machine loader for --dir: 'file' or 'loam' (detected when empty)")
}
