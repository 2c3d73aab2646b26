package main

import (
	"os"

	"github.com/aretw0/tracentm/internal/cli"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <machine> <input> [depth]",
	Short: "Trace an input again every time the machine changes",
	Long:  `Same as 'run --watch': keeps tracing the input while you edit the machine file.`,
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := runOptions(cmd, args)
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		return cli.RunWatch(ctx, opts, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addRunFlags(watchCmd)
}
