package colorscheme

import (
	"context"
	"fmt"

	"github.com/bnema/schemewatch/internal/application/port"
	"github.com/bnema/schemewatch/internal/logging"
	"github.com/godbus/dbus/v5"
)

const watcherNamePortal = "portal"

// Compile-time interface check.
var _ port.ColorSchemeWatcher = (*PortalWatcher)(nil)

// PortalWatcher reports color-scheme changes announced by the portal's
// SettingChanged signal.
type PortalWatcher struct {
	source    signalSource
	available func() bool
}

// NewPortalWatcher creates a watcher on the given portal connection.
func NewPortalWatcher(portal *Portal) *PortalWatcher {
	return &PortalWatcher{
		source:    portal,
		available: portal.Supported,
	}
}

// Name implements port.ColorSchemeWatcher.
func (*PortalWatcher) Name() string {
	return watcherNamePortal
}

// Available implements port.ColorSchemeWatcher.
func (w *PortalWatcher) Available() bool {
	return w.available()
}

// Watch implements port.ColorSchemeWatcher.
func (w *PortalWatcher) Watch(ctx context.Context, onChange func()) error {
	log := logging.FromContext(ctx)

	rule := fmt.Sprintf(
		"type='signal',interface='%s',member='SettingChanged',path='%s'",
		settingsInterface, portalPath,
	)

	signals, cancel, err := w.source.Subscribe(rule)
	if err != nil {
		return fmt.Errorf("subscribe to portal settings: %w", err)
	}
	defer cancel()

	log.Debug().Msg("color scheme portal: watching SettingChanged")

	for {
		select {
		case sig, ok := <-signals:
			if !ok || sig == nil {
				return fmt.Errorf("portal signal channel closed")
			}
			if isColorSchemeSignal(sig) {
				log.Debug().Msg("color scheme portal: color-scheme changed")
				onChange()
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// isColorSchemeSignal reports whether sig is SettingChanged for
// org.freedesktop.appearance color-scheme.
func isColorSchemeSignal(sig *dbus.Signal) bool {
	if sig.Name != settingChanged || len(sig.Body) < 2 {
		return false
	}
	namespace, ok := sig.Body[0].(string)
	if !ok || namespace != appearanceNamespace {
		return false
	}
	key, ok := sig.Body[1].(string)
	return ok && key == colorSchemeKey
}
