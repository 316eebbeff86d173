// Package cmd provides Cobra CLI commands for schemewatch.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/schemewatch/internal/cli"
	"github.com/bnema/schemewatch/internal/domain/build"
)

var (
	app       *cli.App
	buildInfo build.Info
	rootCmd   = &cobra.Command{
		Use:   "schemewatch",
		Short: "Report and follow the preferred color scheme",
		Long: `schemewatch reads the user's preferred color scheme (dark or light)
and keeps it current as the desktop preference changes.

Sources, highest priority first:
  - config override (appearance.color_scheme)
  - XDG Desktop Portal (org.freedesktop.appearance color-scheme)
  - GTK_THEME environment variable
  - gsettings (org.gnome.desktop.interface color-scheme)

Use 'schemewatch get' for a one-shot read, or 'schemewatch watch' to
follow changes live.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			if !needsApp(cmd) {
				return nil
			}

			var err error
			app, err = cli.NewApp(cli.Options{LogToFile: logsToFile(cmd)})
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			// Set build info from main.go
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

func needsApp(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "completion", "version", "schemewatch":
		return false
	}
	if parent := cmd.Parent(); parent != nil && parent.Name() == configCmd.Name() {
		return false
	}
	return true
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}
