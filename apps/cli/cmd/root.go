package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "verihttp",
	Short: "Fluent HTTP API checks from the command line.",
	Long: `verihttp issues HTTP requests and verifies the responses:
status codes, header values, JSON body paths and response time.
Failures print self-sufficient diagnostics and set the exit code.`,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}
