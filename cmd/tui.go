package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/guzus/garage/internal/events"
	"github.com/guzus/garage/internal/state"
	"github.com/guzus/garage/internal/store"
	"github.com/guzus/garage/tui"
)

var tuiCmd = &cobra.Command{
	Use:     "tui",
	Short:   "Launch the interactive terminal UI",
	Long:    "Start garage's full-screen interface for browsing, adding and deleting cars. This is also what garage runs with no subcommand.",
	GroupID: "garage",
	Args:    cobra.NoArgs,
	RunE:    runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// newGenerator seeds the record generator. A zero seed uses the clock.
func newGenerator(seed int64) *store.Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return store.NewGenerator(rand.New(rand.NewSource(seed)))
}

// initialTab returns the tab saved by the previous session, or home.
func initialTab(st *state.Session) tui.Tab {
	if st == nil || st.LastTab == "" {
		return tui.TabHome
	}
	t, ok := tui.ParseTab(st.LastTab)
	if !ok {
		slog.Warn("ignoring unknown saved tab", "tab", st.LastTab)
	}
	return t
}

func runTUI(cmd *cobra.Command, args []string) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("garage needs an interactive terminal; use the cars subcommands from scripts")
	}

	saved, err := state.LoadPath(cfg.StatePath)
	if err != nil {
		slog.Warn("loading UI state", "err", err)
		saved = nil
	}

	old, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enabling raw mode: %w", err)
	}
	defer func() {
		if err := term.Restore(fd, old); err != nil {
			slog.Error("restoring terminal", "err", err)
		}
	}()

	poller, err := events.NewTerminalPoller(os.Stdin)
	if err != nil {
		return err
	}
	defer poller.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	src := events.NewSource(poller, cfg.Tick)
	g.Go(func() error {
		return src.Run(ctx)
	})

	st := store.NewFileStore(cfg.DBPath)
	m := tui.NewMainModel(st, newGenerator(cfg.Seed), src.Events(),
		tui.WithTab(initialTab(saved)),
		tui.WithDBPath(st.Path()),
		tui.WithTheme(cfg.Theme),
	)
	slog.Info("starting ui", "db", st.Path(), "tick", cfg.Tick)

	p := tea.NewProgram(m, tea.WithInput(nil), tea.WithAltScreen(), tea.WithContext(ctx))
	final, runErr := p.Run()

	cancel()
	poller.Close()
	srcErr := g.Wait()

	if fm, ok := final.(tui.MainModel); ok && saved != nil {
		if err := saved.Remember(fm.Tab().String(), time.Now()); err != nil {
			slog.Warn("saving UI state", "err", err)
		}
	}

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", runErr)
	}
	if srcErr != nil {
		return srcErr
	}
	return nil
}
