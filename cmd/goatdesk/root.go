package main

import (
	"github.com/spf13/cobra"
)

// version is overridden at build time via -ldflags.
var version = "dev"

// Global flag values.
var (
	flagConfigDir string
	flagAddr      string
)

var rootCmd = &cobra.Command{
	Use:   "goatdesk",
	Short: "goatdesk is a support-ticket REST API server",
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the goatdesk version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("goatdesk %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "directory containing goatdesk.yaml (default: working directory)")
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (overrides config)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
}
