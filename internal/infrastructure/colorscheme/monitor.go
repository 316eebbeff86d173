package colorscheme

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/schemewatch/internal/application/port"
	"github.com/bnema/schemewatch/internal/logging"
)

// Monitor runs color scheme watchers and refreshes the resolver whenever
// one of them reports a change.
type Monitor struct {
	resolver port.ColorSchemeResolver
	watchers []port.ColorSchemeWatcher
}

// NewMonitor creates a monitor feeding the given resolver.
func NewMonitor(resolver port.ColorSchemeResolver, watchers ...port.ColorSchemeWatcher) *Monitor {
	return &Monitor{resolver: resolver, watchers: watchers}
}

// Watchers returns the watchers known to the monitor.
func (m *Monitor) Watchers() []port.ColorSchemeWatcher {
	out := make([]port.ColorSchemeWatcher, len(m.watchers))
	copy(out, m.watchers)
	return out
}

// Run starts every available watcher and blocks until ctx is done.
// A watcher that fails is logged and dropped; the others keep running.
func (m *Monitor) Run(ctx context.Context) error {
	log := logging.FromContext(ctx)
	g, gctx := errgroup.WithContext(ctx)

	started := 0
	for _, w := range m.watchers {
		if !w.Available() {
			log.Debug().Str("watcher", w.Name()).Msg("color scheme watcher unavailable")
			continue
		}
		started++
		w := w
		g.Go(func() error {
			wctx := logging.WithComponent(gctx, "watcher:"+w.Name())
			if err := w.Watch(wctx, m.onChange(wctx, w.Name())); err != nil {
				log.Warn().Err(err).Str("watcher", w.Name()).Msg("color scheme watcher stopped")
			}
			return nil
		})
	}

	log.Debug().Int("watchers", started).Msg("color scheme monitor started")

	g.Go(func() error {
		<-gctx.Done()
		return nil
	})

	return g.Wait()
}

func (m *Monitor) onChange(ctx context.Context, name string) func() {
	log := logging.FromContext(ctx)
	return func() {
		pref := m.resolver.Refresh()
		log.Debug().
			Str("watcher", name).
			Bool("prefers_dark", pref.PrefersDark).
			Str("source", pref.Source).
			Msg("color scheme refreshed")
	}
}
