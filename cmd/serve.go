package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"eventbrite-mcp/internal/config"
	"eventbrite-mcp/internal/eventbrite"
	"eventbrite-mcp/internal/mcpserver"
	"eventbrite-mcp/pkg/logging"

	"github.com/spf13/cobra"
)

var (
	// serveSSE switches from the default stdio transport to HTTP/SSE.
	serveSSE bool

	// serveHost and servePort override the SSE listen address from the
	// config file.
	serveHost string
	servePort int

	// serveDebug enables verbose logging across the application.
	serveDebug bool
)

// serveCmd starts the MCP server. Stdio is the default transport because AI
// assistants launch the server as a child process and speak MCP over its
// stdin/stdout.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Eventbrite MCP server",
	Long: `Starts the Eventbrite MCP server.

By default the server speaks MCP over stdio, which is how AI assistants
(Claude Desktop, Cursor, ...) launch it. With --sse it instead listens on an
HTTP endpoint using the SSE transport.

Configuration:
  The Eventbrite API token is read from the EVENTBRITE_API_KEY environment
  variable (legacy alias: EVENTBRITE_TOKEN) or from the apiKey field of
  .eventbrite-mcp/config.yaml. The server refuses to start without a token.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

// runServe is the main entry point for the serve command
func runServe(cmd *cobra.Command, args []string) error {
	level := logging.LevelInfo
	if serveDebug {
		level = logging.LevelDebug
	}
	// Stdout carries the MCP transport; all diagnostics go to stderr.
	logging.Init(level, os.Stderr)

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if serveHost != "" {
		cfg.SSE.Host = serveHost
	}
	if servePort != 0 {
		cfg.SSE.Port = servePort
	}

	// Fail fast before serving anything when no credential is configured.
	if err := cfg.Validate(); err != nil {
		return err
	}

	client, err := eventbrite.NewClient(cfg.APIKey, eventbrite.WithCacheTTL(cfg.CacheTTL))
	if err != nil {
		return err
	}

	srv := mcpserver.New(client, cfg.SSE, rootCmd.Version)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Handle interrupts gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if serveSSE {
		if err := srv.StartSSE(ctx); err != nil {
			return err
		}
		logging.Info("Serve", "MCP endpoint ready at %s", srv.Endpoint())
		<-ctx.Done()
		return srv.Stop(context.Background())
	}

	if err := srv.ServeStdio(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// init registers the serve command and its flags with the root command.
func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&serveSSE, "sse", false, "Serve MCP over HTTP/SSE instead of stdio")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind the SSE endpoint to (overrides config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port for the SSE endpoint (overrides config)")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable general debug logging")
}
