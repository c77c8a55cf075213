package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/supraja777/multiagent/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [request]",
	Short: "Answer a request, or start an interactive session",
	Long: `Runs a request through the agents and prints every turn followed by the answer.
Without a request it reads one request per line until EOF or "exit".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		debug, _ := cmd.Flags().GetBool("debug")
		jsonMode, _ := cmd.Flags().GetBool("json")
		maxCycles, _ := cmd.Flags().GetInt("max-cycles")

		// Interrupts are handled per run by the session.
		return cli.RunSession(cmd.Context(), cli.RunOptions{
			ConfigPath: configPath,
			Request:    strings.Join(args, " "),
			JSON:       jsonMode,
			Debug:      debug,
			MaxCycles:  maxCycles,
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
	runCmd.Flags().Int("max-cycles", 0, "Override orchestrator.max_cycles")

	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
