package main

import (
	"github.com/spf13/cobra"

	"github.com/supraja777/multiagent/internal/cli"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the routing graph visualization",
	Long: `Outputs a Mermaid diagram (graph TD) of the agents and their routes.
With --run, the path taken by an archived run is highlighted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		runID, _ := cmd.Flags().GetString("run")
		return cli.RenderGraph(cmd.Context(), configPath, runID, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("run", "", "Highlight the path of this archived run")
}
