package colorscheme

import (
	"sync/atomic"
)

// DarkQuery is the media query whose live value is "dark appearance preferred".
const DarkQuery = "(prefers-color-scheme: dark)"

// Host is the environment the preference is read from.
type Host interface {
	// Window returns the graphical context, or false when there is none.
	Window() (Window, bool)
}

// Window evaluates live boolean media conditions.
type Window interface {
	// MatchMedia returns a live handle for query. A rejected query returns an
	// error. A nil list with a nil error means the query was accepted but the
	// environment produced no handle.
	MatchMedia(query string) (MediaQueryList, error)
}

// MediaQueryList is a live boolean condition.
type MediaQueryList interface {
	// Matches returns the current value of the condition.
	Matches() bool
	// SetOnChange sets the single change callback, replacing any previous one.
	// The environment may invoke it at any time after this call returns.
	SetOnChange(fn func())
}

// retention keeps the change handler and the handle it is attached to
// reachable for the rest of the process.
type retention struct {
	handler func()
	list    MediaQueryList
}

// Hook reads the preferred color scheme and attaches at most one change
// listener over its whole lifetime. The zero value is ready to use.
// A Hook must not be copied after first use.
type Hook struct {
	attached atomic.Bool
	retained atomic.Pointer[retention]
}

// Read returns the current preferred scheme from host. On the first
// successful read it attaches a listener that calls scheduleUpdate each time
// the preference changes. Read never blocks and never attaches twice, even
// under concurrent calls: callers that lose the race skip attachment and read
// the current value directly.
func (h *Hook) Read(host Host, scheduleUpdate func()) Scheme {
	if host == nil {
		return Unavailable(ReasonNoWindow)
	}
	window, ok := host.Window()
	if !ok || window == nil {
		return Unavailable(ReasonNoWindow)
	}

	list, err := window.MatchMedia(DarkQuery)
	if err != nil {
		if msg := err.Error(); msg != "" {
			return Unavailable(msg)
		}
		return Unavailable(ReasonUnknownError)
	}
	if list == nil {
		return Unavailable(ReasonNoQueryList)
	}

	if h.attached.CompareAndSwap(false, true) {
		h.attach(list, scheduleUpdate)
	}

	return FromMatches(list.Matches())
}

// Attached reports whether the change listener has been attached.
func (h *Hook) Attached() bool {
	return h.attached.Load()
}

func (h *Hook) attach(list MediaQueryList, scheduleUpdate func()) {
	handler := func() {
		if scheduleUpdate != nil {
			scheduleUpdate()
		}
	}

	// The host may fire handler at any point until the process exits, so it
	// is stored here and never released or detached.
	h.retained.Store(&retention{handler: handler, list: list})

	list.SetOnChange(handler)
}

// defaultHook guards the process-wide listener. It is never reset; its
// lifetime is the lifetime of the process.
var defaultHook Hook

// Use reads the preferred color scheme through the process-wide Hook.
// Call it once per render pass that needs the value, passing the UI runtime's
// re-render trigger. Only the first successful call attaches a listener.
func Use(host Host, scheduleUpdate func()) Scheme {
	return defaultHook.Read(host, scheduleUpdate)
}
