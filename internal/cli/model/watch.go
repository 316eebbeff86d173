package model

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/schemewatch/internal/application/port"
	"github.com/bnema/schemewatch/internal/cli/styles"
	"github.com/bnema/schemewatch/pkg/colorscheme"
)

// WatchModel displays the preferred color scheme and re-renders whenever
// the host reports a change.
type WatchModel struct {
	read      ReadFunc
	host      colorscheme.Host
	scheduler *Scheduler
	resolver  port.ColorSchemeResolver

	dark  *styles.Theme
	light *styles.Theme
	keys  styles.WatchKeyMap
	help  help.Model

	changes    int
	lastChange time.Time
	source     string
	width      int
	height     int
	now        func() time.Time
}

// NewWatchModel creates a watch model. resolver may be nil, in which case
// the re-detect key is a no-op.
func NewWatchModel(read ReadFunc, host colorscheme.Host, scheduler *Scheduler, resolver port.ColorSchemeResolver) WatchModel {
	dark := styles.NewThemeFromPalette(styles.DefaultDarkPalette())
	m := WatchModel{
		read:      read,
		host:      host,
		scheduler: scheduler,
		resolver:  resolver,
		dark:      dark,
		light:     styles.NewThemeFromPalette(styles.DefaultLightPalette()),
		keys:      styles.DefaultWatchKeyMap(),
		help:      styles.NewHelp(dark),
		width:     80,
		height:    24,
		now:       time.Now,
	}
	if resolver != nil {
		m.source = resolver.Current().Source
	}
	return m
}

// refreshedMsg is sent after a manual re-detect.
type refreshedMsg struct {
	pref port.ColorSchemePreference
}

// Init implements tea.Model.
func (m WatchModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Refresh):
			return m, m.refresh
		}

	case RerenderMsg:
		m.changes++
		m.lastChange = m.now()
		if m.resolver != nil {
			m.source = m.resolver.Current().Source
		}

	case refreshedMsg:
		m.source = msg.pref.Source
	}

	return m, nil
}

func (m WatchModel) refresh() tea.Msg {
	if m.resolver == nil {
		return nil
	}
	return refreshedMsg{pref: m.resolver.Refresh()}
}

// View implements tea.Model.
func (m WatchModel) View() string {
	scheme := m.read(m.host, m.scheduler.Schedule)
	t := m.themeFor(scheme)
	m.help.Styles.ShortKey = t.HelpKey
	m.help.Styles.ShortDesc = t.HelpDesc

	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Center,
			t.Title.Render("Preferred color scheme "),
			t.SchemeBadge(scheme),
		),
		"",
	}

	if scheme.IsUnavailable() {
		lines = append(lines, t.WarningStyle.Render(scheme.Reason()))
	} else if m.source != "" {
		lines = append(lines, t.Subtle.Render("source: ")+t.Highlight.Render(m.source))
	}

	changes := t.Subtle.Render(fmt.Sprintf("changes: %d", m.changes))
	if !m.lastChange.IsZero() {
		changes += t.Subtle.Render(" (last at " + m.lastChange.Format("15:04:05") + ")")
	}
	lines = append(lines, changes, "", m.help.View(m.keys))

	return t.Box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m WatchModel) themeFor(scheme colorscheme.Scheme) *styles.Theme {
	if scheme.IsLight() {
		return m.light
	}
	return m.dark
}

// Changes returns how many change notifications the model has handled.
func (m WatchModel) Changes() int {
	return m.changes
}
