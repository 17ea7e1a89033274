package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/codelog/internal/resolver"
	"github.com/alexanderramin/codelog/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Sessions  service.SessionService
	Items     service.ItemService
	Languages service.LanguageService
	Config    service.ConfigService
	Status    service.StatusService

	// Now defaults to the local system clock. It must be the clock the
	// services run on, or "today" may land on different days.
	Now func() time.Time
	// RecentDays is the default window for status and session list.
	RecentDays int
	// IsInteractive reports whether prompts may be shown.
	IsInteractive func() bool
	// Pick chooses among suggested items. The returned id is empty when the
	// user asked for a new item. Defaults to a huh select.
	Pick func(ctx context.Context, name string, candidates []resolver.Candidate) (string, error)
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) recentDays() int {
	if a.RecentDays > 0 {
		return a.RecentDays
	}
	return 7
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) pick(ctx context.Context, name string, candidates []resolver.Candidate) (string, error) {
	if a.Pick != nil {
		return a.Pick(ctx, name, candidates)
	}
	return pickSuggestion(ctx, name, candidates)
}

// GlobalFlags defines the flags that feed internal/config. main parses them
// ahead of cobra to build the App; the root command registers the same set
// so they are accepted anywhere on the command line.
func GlobalFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("codelog", pflag.ContinueOnError)
	fs.String("db", "", "SQLite database path (default ~/.codelog/codelog.db)")
	fs.String("langpacks", "", "Directory of <language>.yaml language packs")
	fs.String("log-file", "", "Rotating JSON log file")
	fs.String("log-level", "", "Log level: debug, info, warn, error")
	fs.String("metrics-file", "", "Write Prometheus metrics to this file on exit")
	fs.BoolP("verbose", "v", false, "Also log to stderr")
	return fs
}

// NewRootCmd creates the top-level "codelog" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "codelog",
		Short:         "Log coding practice and track progress per exercise and project",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().AddFlagSet(GlobalFlags())

	root.AddCommand(
		newSessionCmd(app),
		newItemCmd(app),
		newLanguageCmd(app),
		newConfigCmd(app),
		newStatusCmd(app),
	)

	return root
}
