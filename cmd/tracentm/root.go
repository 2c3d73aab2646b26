package main

import (
	"fmt"
	"os"

	"github.com/aretw0/tracentm/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tracentm",
	Short: "tracentm traces non-deterministic Turing machines",
	Long: `tracentm explores every branch of a non-deterministic Turing machine breadth-first,
up to a depth bound, and reports whether the input is accepted, rejected, or whether
the exploration stopped at the bound.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing machine descriptions")
	rootCmd.PersistentFlags().String("config", "", "Path to a tracentm YAML config file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
}

// loadConfig reads --config and lets an explicit --dir win over the file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("dir") {
		cfg.Machines.Path, _ = cmd.Flags().GetString("dir")
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}
