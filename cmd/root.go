package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "eventbrite-mcp",
	Short: "MCP server exposing Eventbrite event discovery to AI assistants",
	Long: `eventbrite-mcp is a Model Context Protocol server backed by the Eventbrite API.
It exposes tools for searching events, fetching event and venue details and
listing event categories, plus an eventbrite://events/{eventId} resource, so
AI assistants can query the Eventbrite marketplace.`,
	// SilenceUsage prevents printing the usage message on errors we handle
	// ourselves (e.g. missing credentials, failed API calls)
	SilenceUsage: true,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "eventbrite-mcp version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
