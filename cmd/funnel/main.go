// Package main is the entry point for the funnel CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/speakergym/funnel-tracker/internal/config"
	"github.com/speakergym/funnel-tracker/internal/services"
	"github.com/speakergym/funnel-tracker/internal/store"
)

// Version is set at build time via ldflags.
var Version = "dev"

// @title       Funnel Tracker API
// @version     1.0
// @description Contact list API with spreadsheet import/export for the funnel tracker web UI.
// @BasePath    /api
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "funnel",
	Short: "Track your speaker gym funnel",
	Long: `funnel tracks people through the speaker gym pipeline: first contact,
joining the community, taking the 7-day challenge, and submitting contact
details for the 90-day program.

Contacts live in a JSON file under the data directory. The serve subcommand
additionally runs the JSON API backing the companion web UI.`,
	Version: Version,
	// Show help when no subcommand is provided
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.SetVersionTemplate("funnel version {{.Version}}\n")
}

// funnelService builds the CLI contact service against the configured data
// directory.
func funnelService() (*services.FunnelService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return services.NewFunnelService(store.NewFunnelStore(cfg.FunnelPath())), nil
}
