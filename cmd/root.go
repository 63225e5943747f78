package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"cinema-booking-cli/config"
	"cinema-booking-cli/notify"
	"cinema-booking-cli/service"
	"cinema-booking-cli/tui"
)

const appName = "cinema-booking-cli"

// NewRootCmd builds the command tree. The bare command runs the interactive
// box office; serve exposes the same engine over HTTP.
func NewRootCmd(version, commit string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           appName,
		Short:         "GIC Cinemas seat booking",
		Long:          `Configure a show, book seats and check bookings from the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runInteractive(cmd, cfg)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.Int("max-rows", 0, "maximum rows per hall (1-26)")
	flags.Int("max-seats-per-row", 0, "maximum seats per row")
	flags.String("show", "", `show to configure on start, e.g. "Inception 8 10"`)
	flags.String("log-file", "", "write logs to this file")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("amqp-url", "", "RabbitMQ URL for booking confirmations")

	rootCmd.AddCommand(newServeCmd(), newVersionCmd(version, commit))
	return rootCmd
}

func Execute(version, commit string) {
	if err := NewRootCmd(version, commit).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd(version, commit string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of " + appName,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s", appName, version)
			if commit != "none" && commit != "" {
				fmt.Fprintf(out, " (%s)", commit)
			}
			fmt.Fprintln(out)
		},
	}
}

func runInteractive(cmd *cobra.Command, cfg *config.Config) error {
	// The terminal belongs to the TUI, so logs only go to a file.
	logger, closeLog, err := newLogger(cfg.LogLevel, cfg.LogFile, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	box := newBoxOffice(cfg, logger)
	final, err := tea.NewProgram(tui.New(box, cfg.Show), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if msg, ok := tui.Farewell(final); ok {
		fmt.Fprintln(cmd.OutOrStdout(), msg)
	}
	return nil
}

// loadConfig reads the environment and applies any flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Load()
	flags := cmd.Flags()

	if flags.Changed("max-rows") {
		v, err := flags.GetInt("max-rows")
		if err != nil {
			return nil, err
		}
		cfg.MaxRows = v
	}
	if flags.Changed("max-seats-per-row") {
		v, err := flags.GetInt("max-seats-per-row")
		if err != nil {
			return nil, err
		}
		cfg.MaxSeatsPerRow = v
	}
	for name, target := range map[string]*string{
		"show":      &cfg.Show,
		"log-file":  &cfg.LogFile,
		"log-level": &cfg.LogLevel,
		"amqp-url":  &cfg.AMQPURL,
	} {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return nil, err
		}
		*target = strings.TrimSpace(v)
	}
	cfg.Clamp()
	return cfg, nil
}

// newLogger builds a logger writing to logFile when set, else to fallback.
// The returned func closes the log file.
func newLogger(level, logFile string, fallback io.Writer) (*logrus.Logger, func(), error) {
	logger := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger.SetLevel(lvl)

	if logFile == "" {
		logger.SetOutput(fallback)
		return logger, func() {}, nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)
	logger.SetFormatter(&logrus.JSONFormatter{})
	return logger, func() { _ = f.Close() }, nil
}

func newPublisher(cfg *config.Config, logger *logrus.Logger) notify.Publisher {
	if cfg.AMQPURL != "" {
		return notify.NewAMQPPublisher(cfg.AMQPURL)
	}
	return notify.NewLogPublisher(logger)
}

func newBoxOffice(cfg *config.Config, logger *logrus.Logger) *service.BoxOffice {
	catalog := service.NewCatalog(cfg.Limits(), cfg.HallName)
	return service.NewBoxOffice(catalog,
		service.WithLogger(logger),
		service.WithPublisher(newPublisher(cfg, logger)),
		service.WithOrderPrefix(cfg.OrderPrefix),
	)
}
