package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/aretw0/tracentm"
	"github.com/aretw0/tracentm/internal/cli"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <machine> <input> [depth]",
	Short: "Trace one input on a machine",
	Long: `Explores the machine breadth-first on the input and prints the verdict, the accepting
path when there is one, and the exploration statistics.

<machine> is either a machine file (.csv, .yaml, .yml, .json) or the ID of a machine
inside --dir. [depth] defaults to 10.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := runOptions(cmd, args)
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		if watch, _ := cmd.Flags().GetBool("watch"); watch {
			return cli.RunWatch(ctx, opts, os.Stdout)
		}
		_, err = cli.Execute(ctx, opts, os.Stdout)
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	addRunFlags(runCmd)
	runCmd.Flags().BoolP("watch", "w", false, "Trace again whenever the machine changes")
	runCmd.Flags().Bool("save", false, "Save the report to --store-path")
	runCmd.Flags().String("store-path", "", "Directory for saved reports (default .tracentm/reports)")
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Print the report as JSON")
	cmd.Flags().Bool("rich", false, "Render the report for the terminal (default when stdout is a TTY)")
	cmd.Flags().String("loader", "", "Machine loader for --dir: 'file' or 'loam' (detected when empty)")
}

// runOptions maps positional arguments and flags onto cli.RunOptions.
func runOptions(cmd *cobra.Command, args []string) (cli.RunOptions, error) {
	dir, _ := cmd.Flags().GetString("dir")
	debug, _ := cmd.Flags().GetBool("debug")
	jsonMode, _ := cmd.Flags().GetBool("json")
	rich, _ := cmd.Flags().GetBool("rich")
	loader, _ := cmd.Flags().GetString("loader")

	if !cmd.Flags().Changed("rich") && !jsonMode {
		rich = cli.RichDefault()
	}

	opts := cli.RunOptions{
		Path:   dir,
		Loader: loader,
		Input:  args[1],
		Depth:  tracentm.DefaultMaxDepth,
		JSON:   jsonMode,
		Rich:   rich,
		Debug:  debug,
	}

	if info, err := os.Stat(args[0]); err == nil && !info.IsDir() {
		opts.Path = args[0]
	} else {
		opts.MachineID = args[0]
	}

	if len(args) == 3 {
		depth, err := strconv.Atoi(args[2])
		if err != nil {
			return opts, fmt.Errorf("depth must be an integer: %w", err)
		}
		opts.Depth = depth
	}

	if cmd.Flags().Lookup("save") != nil {
		opts.Save, _ = cmd.Flags().GetBool("save")
		opts.StorePath, _ = cmd.Flags().GetString("store-path")
	}
	return opts, nil
}
