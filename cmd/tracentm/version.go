package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/tracentm"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tracentm",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tracentm version %s\n", strings.TrimSpace(tracentm.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
