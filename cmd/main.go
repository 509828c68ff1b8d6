package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adanyl0v/go-task-manager/internal/app"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "task-manager",
	Short: "Multi-user task tracking server",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server with the background overdue sweeper",
	Run: func(cmd *cobra.Command, args []string) {
		bootstrap()
		defer app.DisconnectPostgres()

		app.MustListenAndServeHTTP()
	},
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run a single overdue sweep and exit",
	Run: func(cmd *cobra.Command, args []string) {
		bootstrap()
		defer app.DisconnectPostgres()

		app.MustSweepOverdueOnce()
	},
}

func bootstrap() {
	app.InitDefaultLogger()
	app.MustReadConfig(configPath)
	app.MustInitApplicationLogger()
	app.MustConnectPostgres()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"path to a config file (defaults to environment variables)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sweepCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
