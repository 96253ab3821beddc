package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/unitconv"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of unitconv",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "unitconv version %s\n", strings.TrimSpace(unitconv.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
