// Package ui implements the ponto command line.
package ui

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/ponto/internal/config"
	"github.com/javiermolinar/ponto/internal/debuglog"
	"github.com/javiermolinar/ponto/internal/notify"
	"github.com/javiermolinar/ponto/internal/punch"
	"github.com/javiermolinar/ponto/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config   *config.Config
	root     *cobra.Command
	debug    bool // Enable debug logging
	openRepo func() (punch.Repository, error)
	now      func() time.Time
	reminder *notify.Reminder
}

// Option configures an App.
type Option func(*App)

// WithRepoOpener sets how the draft store is opened.
func WithRepoOpener(open func() (punch.Repository, error)) Option {
	return func(a *App) {
		a.openRepo = open
	}
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

// WithReminder sets the reminder used by the remind command.
func WithReminder(r *notify.Reminder) Option {
	return func(a *App) {
		a.reminder = r
	}
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config, opts ...Option) *App {
	a := &App{
		config:   cfg,
		now:      time.Now,
		reminder: notify.NewReminder(),
	}
	a.openRepo = func() (punch.Repository, error) {
		return openRepo(a.config.Storage.DBPath)
	}
	for _, opt := range opts {
		opt(a)
	}

	a.root = &cobra.Command{
		Use:   "ponto",
		Short: "Clock-out calculator for split shifts",
		Long: `Ponto tells you when to clock out on a split-shift day.

Give it the time you started, went to lunch and came back, and it predicts
the earliest acceptable clock-out, the full-shift clock-out, your worked
time, overtime, and whether your break meets the minimum.

Run without a subcommand to open the interactive form.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return debuglog.Init(a.debug, debuglog.DefaultPath)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			repo, err := a.openRepo()
			if err != nil {
				return err
			}
			defer func() { _ = repo.Close() }()
			return tui.Run(repo, a.config)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (writes "+debuglog.DefaultPath+")")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.calcCmd())
	a.root.AddCommand(a.checkCmd())
	a.root.AddCommand(a.punchCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.clearCmd())
	a.root.AddCommand(a.remindCmd())
	a.root.AddCommand(a.schemaCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ponto %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	defer debuglog.Close()
	return a.root.Execute()
}
