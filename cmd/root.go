package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/dnburn/config"
	"github.com/s0up4200/dnburn/dnb"
)

// resolver is everything the commands need from the URN service
type resolver interface {
	dnb.API
	dnb.BatchChecker
}

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  resolver

	// Global flags
	username     string
	password     string
	apiURL       string
	outputFormat string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dnburn",
	Short: "Manage URNs and their URLs at the DNB resolver",
	Long: `dnburn is a CLI for the URN resolving service of the German National Library.

It looks up namespaces and URNs, registers new URNs and maintains the URLs
a URN resolves to. Read operations work anonymously; changes need the
credentials of the namespace owner.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, dnb.ErrorMessage(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&username, "username", "u", "", "API username (overrides dnb.username)")
	rootCmd.PersistentFlags().StringVarP(&password, "password", "p", "", "API password (overrides dnb.password)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "API base URL (overrides dnb.api_url)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format (text/json)")
}

// initializeApp initializes the configuration and client
func initializeApp(cmd *cobra.Command, args []string) error {
	if outputFormat != "text" && outputFormat != "json" {
		return fmt.Errorf("invalid output format: %s (must be 'text' or 'json')", outputFormat)
	}

	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Command line overrides
	if cmd.Flags().Changed("username") {
		cfg.DNB.Username = username
	}
	if cmd.Flags().Changed("password") {
		cfg.DNB.Password = password
	}
	if cmd.Flags().Changed("api-url") {
		cfg.DNB.URL = apiURL
	}

	c, err := dnb.NewClient(cfg.DNB.URL, cfg.DNB.Username, cfg.DNB.Password, logger,
		dnb.WithTimeout(cfg.DNB.Timeout),
		dnb.WithTracing(cfg.DNB.Tracing),
		dnb.WithConcurrency(cfg.Batch.Concurrency),
		dnb.WithUserAgent("dnburn/"+appVersion),
	)
	if err != nil {
		return fmt.Errorf("failed to create DNB client: %w", err)
	}
	client = c

	logger.Debug().
		Str("api_url", c.BaseURL()).
		Bool("authenticated", cfg.DNB.Username != "").
		Msg("Client initialized")

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format, colours only on a terminal
	fd := os.Stderr.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !tty,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// newPrinter returns a printer writing to the command's output
func newPrinter(cmd *cobra.Command) *printer {
	return &printer{w: cmd.OutOrStdout(), json: outputFormat == "json"}
}
