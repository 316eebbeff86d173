package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/schemewatch/internal/cli"
	"github.com/bnema/schemewatch/internal/cli/model"
	"github.com/bnema/schemewatch/internal/logging"
	"github.com/bnema/schemewatch/pkg/colorscheme"
)

var (
	watchPlain bool
	watchJSON  bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the preferred color scheme live",
	Long: `Display the preferred color scheme and re-render whenever it changes.

By default this opens a full-screen view; logs go to the state log file.
With --plain one line is printed per change, suitable for scripts.

Examples:
  schemewatch watch
  schemewatch watch --plain
  schemewatch watch --plain --json | jq .scheme`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVar(&watchPlain, "plain", false, "print one line per change instead of the TUI")
	watchCmd.Flags().BoolVar(&watchJSON, "json", false, "with --plain, print JSON lines")
}

func logsToFile(cmd *cobra.Command) bool {
	return cmd == watchCmd && !watchPlain
}

func runWatch(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	if watchJSON && !watchPlain {
		return fmt.Errorf("--json requires --plain")
	}

	ctx, stop := signal.NotifyContext(app.Ctx(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	log := logging.FromContext(ctx)

	app.Config.Watch(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Monitor.Run(logging.WithComponent(gctx, "monitor"))
	})

	g.Go(func() error {
		defer stop()
		if watchPlain {
			r := model.NewStreamRenderer(colorscheme.Use, app.Host, cmd.OutOrStdout(), watchJSON)
			return r.Run(gctx)
		}
		return runWatchTUI(gctx, app)
	})

	err := g.Wait()
	log.Debug().Err(err).Msg("watch finished")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runWatchTUI(ctx context.Context, app *cli.App) error {
	scheduler := model.NewScheduler()
	m := model.NewWatchModel(colorscheme.Use, app.Host, scheduler, app.Resolver)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	scheduler.Bind(p)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run watch view: %w", err)
	}
	return nil
}
