package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasklist/internal/config"
	"github.com/sandeepkv93/tasklist/internal/itemstore"
	"github.com/sandeepkv93/tasklist/internal/logging"
	"github.com/sandeepkv93/tasklist/internal/storage"
	"github.com/sandeepkv93/tasklist/internal/update"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	ConfigPath string
	Backend    string
	Path       string
	Slot       string

	// runProgram is swapped in tests so the root command does not grab the terminal.
	runProgram func(tea.Model) error
}

// session is one opened store plus the resources that must be released with it.
type session struct {
	cfg    config.Config
	slots  storage.SlotStore
	store  *itemstore.Store
	logger *zap.Logger
	close  func()
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{runProgram: runProgram})
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tasklist",
		Short:         "Local todo list with a terminal UI",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  tasklist

  # Scriptable commands
  tasklist add Buy milk
  tasklist toggle 1
  tasklist mv 1 3
  tasklist list
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", "", "Storage backend (sqlite|file|memory)")
	cmd.PersistentFlags().StringVar(&app.Path, "path", "", "SQLite database file or file-backend directory")
	cmd.PersistentFlags().StringVar(&app.Slot, "slot", "", "Storage slot key holding the list")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newToggleCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newMoveCmd(app))
	cmd.AddCommand(newClearCmd(app))

	return cmd
}

func runProgram(m tea.Model) error {
	_, err := tea.NewProgram(m).Run()
	return err
}

func runTUI(cmd *cobra.Command, app *App) error {
	s, err := openSession(cmd.Context(), app, false)
	if err != nil {
		return err
	}
	defer s.close()

	s.logger.Info("starting tui", zap.String("backend", s.cfg.Store.Backend), zap.String("slot", s.cfg.Store.Slot))
	return app.runProgram(update.NewModel(s.store, update.RuntimeConfigFrom(s.cfg)))
}

// resolveConfig layers explicitly set flags over the file and environment.
func resolveConfig(app *App) (config.Config, error) {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	if v := strings.TrimSpace(app.Backend); v != "" {
		cfg.Store.Backend = strings.ToLower(v)
	}
	if v := strings.TrimSpace(app.Path); v != "" {
		cfg.Store.Path = v
	}
	if v := strings.TrimSpace(app.Slot); v != "" {
		cfg.Store.Slot = v
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openSession wires config, logging and storage into an Item Store.
// With load set the persisted list is read before returning.
func openSession(ctx context.Context, app *App, load bool) (*session, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := resolveConfig(app)
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, File: cfg.Log.File})
	if err != nil {
		return nil, err
	}

	slots, err := storage.Open(storage.OpenOptions{Backend: storage.Backend(cfg.Store.Backend), Path: cfg.Store.Path})
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}

	store := itemstore.New(slots,
		itemstore.WithKey(cfg.Store.Slot),
		itemstore.WithIDGenerator(itemstore.GeneratorFor(cfg.IDs.Strategy)),
		itemstore.WithLogger(logger),
	)
	s := &session{
		cfg:    cfg,
		slots:  slots,
		store:  store,
		logger: logger,
		close: func() {
			if err := slots.Close(); err != nil {
				logger.Warn("close store", zap.Error(err))
			}
			closeLog()
		},
	}

	if load {
		if _, err := store.Load(ctx); err != nil {
			s.close()
			return nil, err
		}
	}
	return s, nil
}
