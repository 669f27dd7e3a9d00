package main

import (
	"github.com/aretw0/tendril/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve [dir]",
	Short: "Start the HTTP server",
	Long: `Serves the engine as a JSON API over HTTP, with Prometheus metrics on /metrics
and the OpenAPI document on /openapi.yaml. With --redis-addr sessions are shared
between replicas.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetInt("port")
		timeout, _ := cmd.Flags().GetDuration("shutdown-timeout")
		return cli.Serve(cli.ServeOptions{
			EngineOptions:   engineOptions(cmd, args),
			StoreOptions:    storeOptions(cmd),
			Port:            port,
			ShutdownTimeout: timeout,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().Duration("shutdown-timeout", cli.DefaultShutdownTimeout, "Grace period for in-flight requests")
	addStoreFlags(serveCmd)
}
