package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/supraja777/multiagent"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of multiagent",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "multiagent version %s\n", strings.TrimSpace(multiagent.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
