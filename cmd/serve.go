package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/giantswarm/mcp-oauth/storage/memory"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/teemow/gestureslides/internal/google"
	"github.com/teemow/gestureslides/internal/instrumentation"
	"github.com/teemow/gestureslides/internal/logging"
	"github.com/teemow/gestureslides/internal/resources"
	"github.com/teemow/gestureslides/internal/server"
	"github.com/teemow/gestureslides/internal/slides"
	"github.com/teemow/gestureslides/internal/tools/google_tools"
	"github.com/teemow/gestureslides/internal/tools/navigation_tools"
)

const (
	defaultHTTPAddr    = ":3000"
	defaultMetricsAddr = ":9090"
	readHeaderTimeout  = 10 * time.Second
)

// ServeConfig holds the resolved configuration of the serve command
type ServeConfig struct {
	HTTPAddr string

	Google google.Config

	// MetricsEnabled starts the Prometheus endpoint on MetricsAddr
	MetricsEnabled bool
	MetricsAddr    string

	// MCPEnabled mounts the MCP streamable HTTP endpoint at /mcp
	MCPEnabled bool

	// MCPReadOnly registers only the tools that do not change the session
	MCPReadOnly bool

	Debug     bool
	LogFormat string
}

func newServeCmd() *cobra.Command {
	var config ServeConfig

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the gesture navigation server",
		Long: `Start the HTTP server that turns gestures into slide navigation.

Endpoints:
  - /auth/google, /auth/callback: authorize Google Slides access
  - /presentation/*: load, inspect and reset the presentation
  - /gesture/*: send gestures, or stream them over /gesture/stream
  - /health, /healthz, /readyz: health checks
  - /mcp: MCP streamable HTTP endpoint (with --mcp)

Google OAuth Configuration (required):
  --google-client-id, --google-client-secret and --google-redirect-uri flags
  OR GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET and GOOGLE_REDIRECT_URI env vars.
  Variables are also read from a .env file in the working directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadDotEnv(".env"); err != nil {
				return err
			}
			loadServeEnvVars(cmd, &config)

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return runServe(ctx, config)
		},
	}

	cmd.Flags().StringVar(&config.HTTPAddr, "http-addr", defaultHTTPAddr, "HTTP server address. Can also use PORT env var.")
	cmd.Flags().StringVar(&config.Google.ClientID, "google-client-id", "", "Google OAuth Client ID. Can also use GOOGLE_CLIENT_ID env var.")
	cmd.Flags().StringVar(&config.Google.ClientSecret, "google-client-secret", "", "Google OAuth Client Secret. Can also use GOOGLE_CLIENT_SECRET env var.")
	cmd.Flags().StringVar(&config.Google.RedirectURL, "google-redirect-uri", "", "OAuth redirect URI, ending in /auth/callback. Can also use GOOGLE_REDIRECT_URI env var.")
	cmd.Flags().BoolVar(&config.MetricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&config.MetricsAddr, "metrics-addr", defaultMetricsAddr, "Metrics server address. Can also use METRICS_ADDR env var.")
	cmd.Flags().BoolVar(&config.MCPEnabled, "mcp", false, "Serve MCP tools at /mcp. Can also use MCP_ENABLED env var.")
	cmd.Flags().BoolVar(&config.MCPReadOnly, "mcp-read-only", false, "Only register MCP tools that do not navigate or load presentations.")
	cmd.Flags().BoolVar(&config.Debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&config.LogFormat, "log-format", "text", "Log format: text or json. Can also use LOG_FORMAT env var.")

	return cmd
}

// loadDotEnv loads variables from path without overriding the environment.
// A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// loadServeEnvVars fills in configuration from environment variables.
// Environment variables only override flag values when the flag was not explicitly set.
func loadServeEnvVars(cmd *cobra.Command, config *ServeConfig) {
	if !cmd.Flags().Changed("http-addr") {
		if port := os.Getenv("PORT"); port != "" {
			config.HTTPAddr = addrFromPort(port)
		}
	}

	if !cmd.Flags().Changed("google-client-id") {
		config.Google.ClientID = envOr("GOOGLE_CLIENT_ID", config.Google.ClientID)
	}
	if !cmd.Flags().Changed("google-client-secret") {
		config.Google.ClientSecret = envOr("GOOGLE_CLIENT_SECRET", config.Google.ClientSecret)
	}
	if !cmd.Flags().Changed("google-redirect-uri") {
		config.Google.RedirectURL = envOr("GOOGLE_REDIRECT_URI", config.Google.RedirectURL)
	}

	if !cmd.Flags().Changed("metrics-enabled") {
		config.MetricsEnabled = envBool("METRICS_ENABLED", config.MetricsEnabled)
	}
	if !cmd.Flags().Changed("metrics-addr") {
		config.MetricsAddr = envOr("METRICS_ADDR", config.MetricsAddr)
	}
	if !cmd.Flags().Changed("mcp") {
		config.MCPEnabled = envBool("MCP_ENABLED", config.MCPEnabled)
	}
	if !cmd.Flags().Changed("log-format") {
		config.LogFormat = envOr("LOG_FORMAT", config.LogFormat)
	}
}

// addrFromPort accepts either a bare port number or a full listen address
func addrFromPort(port string) string {
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("ignoring invalid boolean environment variable", "key", key, "value", v)
		return fallback
	}
	return parsed
}

func runServe(ctx context.Context, config ServeConfig) error {
	logger := slog.New(logging.NewHandler(os.Stderr, config.LogFormat, config.Debug))
	slog.SetDefault(logger)

	if err := config.Google.Validate(); err != nil {
		return fmt.Errorf("invalid Google OAuth configuration: %w", err)
	}

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Warn("error during instrumentation shutdown", logging.Err(err))
		}
	}()

	var metricsServer *server.MetricsServer
	if config.MetricsEnabled && provider.Gatherer() != nil {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    config.MetricsAddr,
			InstrumentationProvider: provider,
			Logger:                  logger,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		go func() {
			if err := metricsServer.Start(); err != nil {
				logger.Error("metrics server stopped", logging.Err(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logger.Warn("error during metrics server shutdown", logging.Err(err))
			}
		}()
	}

	// Tokens live in memory only; a restart requires a new consent
	store := memory.New()
	defer store.Stop()

	authenticator, err := google.NewAuthenticator(config.Google, google.NewTokenProvider(store))
	if err != nil {
		return fmt.Errorf("failed to create Google authenticator: %w", err)
	}

	serverContext, err := server.NewServerContext(ctx, server.Options{
		Provider:      slides.NewClient(authenticator, provider.Metrics()),
		Authenticator: authenticator,
		Metrics:       provider.Metrics(),
		Audit:         instrumentation.NewAuditLoggerWithConfig(logger, instrConfig.AuditLogging),
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			logger.Warn("error during server context shutdown", logging.Err(err))
		}
	}()

	routerOpts := server.RouterOptions{Health: server.NewHealthChecker(serverContext)}
	if config.MCPEnabled {
		mcpSrv, err := newMCPServer(serverContext, config.MCPReadOnly)
		if err != nil {
			return err
		}
		routerOpts.MCP = mcpserver.NewStreamableHTTPServer(mcpSrv, mcpserver.WithEndpointPath("/mcp"))
	}

	httpServer := &http.Server{
		Addr:              config.HTTPAddr,
		Handler:           server.NewRouter(serverContext, routerOpts),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return serveUntilDone(ctx, httpServer, routerOpts.Health, logger, config)
}

// serveUntilDone runs the HTTP server until ctx is cancelled, then drains it
func serveUntilDone(ctx context.Context, httpServer *http.Server, health *server.HealthChecker, logger *slog.Logger, config ServeConfig) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverDone <- err
		}
	}()

	logger.Info("gesture server started",
		slog.String("addr", config.HTTPAddr),
		slog.Bool("mcp", config.MCPEnabled),
		slog.Bool("metrics", config.MetricsEnabled),
		slog.String("redirect_uri", config.Google.RedirectURL))

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		health.SetReady(false)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down HTTP server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("HTTP server stopped with error: %w", err)
		}
	}

	logger.Info("HTTP server gracefully stopped")
	return nil
}

// newMCPServer creates the MCP server with all tool groups registered
func newMCPServer(sc *server.ServerContext, readOnly bool) (*mcpserver.MCPServer, error) {
	mcpSrv := mcpserver.NewMCPServer("gestureslides", version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false), // Subscribe and listChanged
	)

	if err := registerAllTools(mcpSrv, sc, readOnly); err != nil {
		return nil, err
	}
	return mcpSrv, nil
}

func registerAllTools(mcpSrv *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	type toolRegistration struct {
		name     string
		register func() error
	}

	registrations := []toolRegistration{
		{
			name: "Navigation tools",
			register: func() error {
				return navigation_tools.RegisterNavigationTools(mcpSrv, sc, readOnly)
			},
		},
		{
			name: "Google tools",
			register: func() error {
				return google_tools.RegisterGoogleTools(mcpSrv, sc)
			},
		},
		{
			name: "Session Resources",
			register: func() error {
				return resources.RegisterSessionResources(mcpSrv, sc)
			},
		},
	}

	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return fmt.Errorf("failed to register %s: %w", reg.name, err)
		}
	}

	return nil
}
