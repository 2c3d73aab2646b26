package main

import (
	"fmt"
	"os"

	"github.com/aretw0/tracentm/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check machine descriptions for consistency",
	Long: `Compiles every machine in the directory (or the single file given) and reports
undeclared states, symbols outside the tape alphabet, bad moves and missing fields.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("dir")
		if !cmd.Flags().Changed("dir") && len(args) > 0 {
			path = args[0]
		}
		kind, _ := cmd.Flags().GetString("loader")

		loader, err := cli.OpenLoader(kind, path)
		if err != nil {
			return err
		}
		if err := cli.ValidateAll(loader, os.Stdout); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Println("All machines are valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().String("loader", "", "Machine loader: 'file' or 'loam' (detected when empty)")
}
