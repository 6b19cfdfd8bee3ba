package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/guzus/garage/internal/config"
)

var (
	cfgFile string
	cfg     config.Config
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:   "garage",
	Short: "Browse, add and delete cars in a local JSON database",
	Long: `garage is a terminal UI over a flat JSON file of car records.

Run without a subcommand to open the interactive UI. The cars subcommands
edit the same file from scripts.

Examples:
  garage                          # open the UI on ./data/db.json
  garage --db ~/cars.json         # use another database
  garage cars add --count 5       # append five generated cars
  garage cars remove 2            # delete the third car
  garage status                   # count cars per category`,
	RunE:              runTUI,
	SilenceUsage:      true,
	SilenceErrors:     true,
	Args:              cobra.NoArgs,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file")
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddGroup(
		&cobra.Group{ID: "garage", Title: "Commands:"},
	)
}

// setup resolves configuration and installs the process-wide logger and
// color profile before any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	v, err := config.New(cmd.Flags(), cfgFile)
	if err != nil {
		return err
	}
	cfg, err = config.Load(v)
	if err != nil {
		return err
	}

	var dest io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logFile = f
		dest = f
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(dest, &slog.HandlerOptions{Level: level})))

	if cfg.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	slog.Debug("config loaded", "db", cfg.DBPath, "tick", cfg.Tick, "theme", cfg.Theme)
	return nil
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
