package main

import (
	"github.com/spf13/cobra"

	"github.com/supraja777/multiagent/internal/cli"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Exposes the agents over a JSON API, with run archive access and Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		debug, _ := cmd.Flags().GetBool("debug")
		addr, _ := cmd.Flags().GetString("addr")

		ctx, stop := signalContext(cmd)
		defer stop()

		return cli.Serve(ctx, cli.ServeOptions{
			ConfigPath: configPath,
			Debug:      debug,
			Addr:       addr,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on (overrides server.addr)")
}
