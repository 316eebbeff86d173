package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/schemewatch/pkg/colorscheme"
)

const (
	statusYes = "Yes"
	statusNo  = "No"
)

// DoctorRenderer renders the detection diagnostics.
type DoctorRenderer struct {
	theme *Theme
}

func NewDoctorRenderer(theme *Theme) *DoctorRenderer {
	return &DoctorRenderer{theme: theme}
}

type DoctorReport struct {
	Scheme         colorscheme.Scheme
	Source         string
	Display        bool
	RequireDisplay bool
	Override       string
	ConfigFile     string
	Detectors      []DoctorSource
	Watchers       []DoctorSource
}

// DoctorSource is one detector or watcher row.
type DoctorSource struct {
	Name      string
	Priority  int
	Available bool
	Result    string
}

func (r *DoctorRenderer) Render(report DoctorReport) string {
	t := r.theme

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		t.Title.Render("Color scheme "),
		t.SchemeBadge(report.Scheme),
		t.Subtle.Render("  via "+report.Source),
	)

	general := []string{
		r.kv("Config", report.ConfigFile),
		r.kv("Override", report.Override),
		r.kv("Graphical session", r.yesNo(report.Display)),
		r.kv("Display required", r.yesNo(report.RequireDisplay)),
	}

	sections := []string{
		header,
		strings.Join(general, "\n"),
		r.renderSources("Detectors", report.Detectors, true),
		r.renderSources("Watchers", report.Watchers, false),
	}
	return strings.Join(sections, "\n\n")
}

func (r *DoctorRenderer) renderSources(title string, sources []DoctorSource, withPriority bool) string {
	t := r.theme
	lines := []string{t.Title.Render(title)}
	if len(sources) == 0 {
		lines = append(lines, t.Subtle.Render("  (none enabled)"))
	}
	for _, s := range sources {
		status := t.SuccessStyle.Render("●")
		if !s.Available {
			status = t.ErrorStyle.Render("○")
		}
		line := fmt.Sprintf("  %s %-10s", status, s.Name)
		if withPriority {
			line += t.Subtle.Render(fmt.Sprintf(" priority %3d", s.Priority))
		}
		line += "  " + r.yesNo(s.Available)
		if s.Result != "" {
			line += t.Subtle.Render("  " + s.Result)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (r *DoctorRenderer) kv(k, v string) string {
	return fmt.Sprintf("%s %s", r.theme.Subtle.Render(fmt.Sprintf("%-18s", k)), r.theme.Highlight.Render(v))
}

func (r *DoctorRenderer) yesNo(ok bool) string {
	if ok {
		return r.theme.SuccessStyle.Render(statusYes)
	}
	return r.theme.ErrorStyle.Render(statusNo)
}
