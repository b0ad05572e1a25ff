package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/okian/dss/internal/config"
	"github.com/okian/dss/internal/report"
	"github.com/okian/dss/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "dss",
	Short: "Compare digital connectivity across countries",
	Long: `dss ranks countries on internet usage, fixed broadband and international
bandwidth. It scores uploaded CSV/JSON files locally, fetches World Bank
indicators, and checks a running dss server.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(checkCmd)

	// Global flags
	rootCmd.PersistentFlags().String("format", "table", "output format (table|csv|json)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level written to stderr")
	rootCmd.PersistentFlags().String("year", "", "preferred data year (YYYY)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		_, _ = color.New(color.FgRed).Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

// setup initializes logging and colour handling for every subcommand.
func setup(cmd *cobra.Command, _ []string) error {
	if err := logger.Init(logger.WithOutput(os.Stderr)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	level, _ := cmd.Flags().GetString("log-level")
	if err := logger.SetLevelString(level); err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	colorFlag, _ := cmd.Flags().GetString("color")
	switch colorFlag {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
	default:
		return fmt.Errorf("invalid --color %q (want auto, on or off)", colorFlag)
	}
	return nil
}

// outputFormat reads the global --format flag.
func outputFormat(cmd *cobra.Command) (report.Format, error) {
	s, err := cmd.Flags().GetString("format")
	if err != nil {
		return "", fmt.Errorf("failed to get format flag: %w", err)
	}
	return report.ParseFormat(s)
}

func yearFlag(cmd *cobra.Command) string {
	y, _ := cmd.Flags().GetString("year")
	return y
}

// loadConfig reads the layered server configuration (DSS_CONFIG, DSS_*).
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
