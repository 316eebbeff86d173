package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/schemewatch/internal/cli"
	"github.com/bnema/schemewatch/internal/cli/styles"
	infracs "github.com/bnema/schemewatch/internal/infrastructure/colorscheme"
	"github.com/bnema/schemewatch/pkg/colorscheme"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Show which color scheme sources are available",
	Long: `Doctor lists every detector and watcher, whether it can be used on
this system, and what each detector currently reports. A detector turned
off in the config is listed as unavailable.

Examples:
  schemewatch doctor`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	report := buildDoctorReport(app)
	renderer := styles.NewDoctorRenderer(app.Theme)
	fmt.Fprintln(cmd.OutOrStdout(), renderer.Render(report))

	if report.Scheme.IsUnavailable() {
		return fmt.Errorf("color scheme unavailable: %s", report.Scheme.Reason())
	}
	return nil
}

func buildDoctorReport(app *cli.App) styles.DoctorReport {
	cfg := app.Config.Get()
	pref := app.Resolver.Current()

	report := styles.DoctorReport{
		Scheme:         colorscheme.Use(app.Host, nil),
		Source:         pref.Source,
		Display:        infracs.HasGraphicalSession(),
		RequireDisplay: cfg.Detection.RequireDisplay,
		Override:       cfg.Appearance.ColorScheme,
		ConfigFile:     app.Config.ConfigFile(),
	}

	for _, d := range app.Resolver.Detectors() {
		row := styles.DoctorSource{
			Name:      d.Name(),
			Priority:  d.Priority(),
			Available: d.Available(),
		}
		if row.Available {
			if dark, ok := d.Detect(); ok {
				row.Result = colorscheme.FromMatches(dark).String()
			} else {
				row.Result = "no answer"
			}
		}
		report.Detectors = append(report.Detectors, row)
	}

	for _, w := range app.Monitor.Watchers() {
		report.Watchers = append(report.Watchers, styles.DoctorSource{
			Name:      w.Name(),
			Available: w.Available(),
		})
	}
	return report
}
