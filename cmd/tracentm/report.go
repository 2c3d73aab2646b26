package main

import (
	"fmt"
	"os"

	"github.com/aretw0/tracentm/internal/cli"
	"github.com/aretw0/tracentm/internal/config"
	"github.com/aretw0/tracentm/pkg/ports"
	"github.com/aretw0/tracentm/pkg/report"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Manage saved reports",
	Long:  `Lists, prints and deletes reports kept in the configured store (file or redis).`,
}

var reportLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List saved report IDs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(store ports.ReportStore) error {
			ids, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				fmt.Println("No reports found.")
				return nil
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		})
	},
}

var reportInspectCmd = &cobra.Command{
	Use:   "inspect <id>",
	Short: "Print a saved report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonMode, _ := cmd.Flags().GetBool("json")
		return withStore(cmd, func(store ports.ReportStore) error {
			rep, err := store.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonMode {
				return report.WriteJSON(os.Stdout, rep)
			}
			return report.WriteText(os.Stdout, rep)
		})
	},
}

var reportRmCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Delete saved reports",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(store ports.ReportStore) error {
			for _, id := range args {
				if err := store.Delete(cmd.Context(), id); err != nil {
					return fmt.Errorf("failed to delete %s: %w", id, err)
				}
				fmt.Printf("Deleted %s\n", id)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportLsCmd, reportInspectCmd, reportRmCmd)

	reportCmd.PersistentFlags().String("store", "", "Store backend: 'file' or 'redis' (config value when empty)")
	reportCmd.PersistentFlags().String("store-path", "", "Report directory for the file store")
	reportInspectCmd.Flags().Bool("json", false, "Print the report as JSON")
}

// withStore opens the configured store for the duration of fn.
func withStore(cmd *cobra.Command, fn func(ports.ReportStore) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if backend, _ := cmd.Flags().GetString("store"); backend != "" {
		cfg.Store.Backend = backend
	}
	if path, _ := cmd.Flags().GetString("store-path"); path != "" {
		cfg.Store.Path = path
	}
	// A process-local store has nothing to show; 'run --save' writes files.
	if cfg.Store.Backend == config.StoreMemory {
		cfg.Store.Backend = config.StoreFile
	}

	store, closeStore, err := cli.OpenStore(cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore()
	if store == nil {
		return fmt.Errorf("no report store configured")
	}
	return fn(store)
}
