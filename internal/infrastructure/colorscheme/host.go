package colorscheme

import (
	"sync"

	"github.com/bnema/schemewatch/internal/application/port"
	"github.com/bnema/schemewatch/pkg/colorscheme"
)

// Compile-time interface checks.
var (
	_ colorscheme.Host           = (*DesktopHost)(nil)
	_ colorscheme.Window         = (*desktopWindow)(nil)
	_ colorscheme.MediaQueryList = (*mediaQueryList)(nil)
)

// DesktopHost provides prefers-color-scheme media queries on a desktop
// session, backed by a resolver that watchers keep up to date.
type DesktopHost struct {
	resolver       port.ColorSchemeResolver
	requireDisplay func() bool
	hasDisplay     func() bool
}

// NewDesktopHost creates a host over resolver. When requireDisplay is set,
// Window reports no window outside a graphical session.
func NewDesktopHost(resolver port.ColorSchemeResolver, requireDisplay bool) *DesktopHost {
	return NewDesktopHostFunc(resolver, func() bool { return requireDisplay })
}

// NewDesktopHostFunc is like NewDesktopHost but consults requireDisplay on
// every Window call. requireDisplay runs on the render path and must only
// read memory.
func NewDesktopHostFunc(resolver port.ColorSchemeResolver, requireDisplay func() bool) *DesktopHost {
	return &DesktopHost{
		resolver:       resolver,
		requireDisplay: requireDisplay,
		hasDisplay:     HasGraphicalSession,
	}
}

// Window implements colorscheme.Host.
func (h *DesktopHost) Window() (colorscheme.Window, bool) {
	if h.requireDisplay() && !h.hasDisplay() {
		return nil, false
	}
	return &desktopWindow{resolver: h.resolver}, true
}

type desktopWindow struct {
	resolver port.ColorSchemeResolver
}

// MatchMedia implements colorscheme.Window.
func (w *desktopWindow) MatchMedia(query string) (colorscheme.MediaQueryList, error) {
	q, err := parseMediaQuery(query)
	if err != nil {
		return nil, err
	}
	if !w.resolver.Available() {
		return nil, nil
	}
	return &mediaQueryList{resolver: w.resolver, query: q}, nil
}

// mediaQueryList is a live view of one media query over the resolver's
// cached preference. Like the DOM onchange property, it holds one callback.
type mediaQueryList struct {
	resolver port.ColorSchemeResolver
	query    mediaQuery

	mu         sync.Mutex
	unregister func()
}

// Matches implements colorscheme.MediaQueryList.
func (l *mediaQueryList) Matches() bool {
	return l.resolver.Current().PrefersDark == l.query.dark
}

// SetOnChange implements colorscheme.MediaQueryList.
func (l *mediaQueryList) SetOnChange(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.unregister != nil {
		l.unregister()
		l.unregister = nil
	}
	if fn == nil {
		return
	}
	l.unregister = l.resolver.OnChange(func(port.ColorSchemePreference) {
		fn()
	})
}
