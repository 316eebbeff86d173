package colorscheme

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/schemewatch/internal/logging"
	"github.com/godbus/dbus/v5"
)

const (
	portalDest        = "org.freedesktop.portal.Desktop"
	portalPath        = "/org/freedesktop/portal/desktop"
	settingsInterface = "org.freedesktop.portal.Settings"
	settingChanged    = settingsInterface + ".SettingChanged"

	appearanceNamespace = "org.freedesktop.appearance"
	colorSchemeKey      = "color-scheme"

	// Values of org.freedesktop.appearance color-scheme.
	portalNoPreference = 0
	portalPreferDark   = 1
	portalPreferLight  = 2
)

// settingsReader reads a single portal setting.
type settingsReader interface {
	ReadSetting(namespace, key string) (dbus.Variant, error)
}

// signalSource delivers D-Bus signals matching a rule.
type signalSource interface {
	Subscribe(rule string) (<-chan *dbus.Signal, func(), error)
}

// Portal is a session bus connection to the XDG Desktop Portal Settings
// interface. It degrades gracefully when D-Bus or the portal is missing.
type Portal struct {
	conn      *dbus.Conn
	version   uint32
	supported bool
	mu        sync.Mutex
}

// ConnectPortal connects to the session bus and checks that the Settings portal answers.
// It always returns a usable Portal; check Supported before relying on it.
func ConnectPortal(ctx context.Context) *Portal {
	log := logging.FromContext(ctx)

	p := &Portal{}

	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		log.Debug().Err(err).Msg("color scheme portal: cannot connect to D-Bus session bus")
		return p
	}
	p.conn = conn

	obj := conn.Object(portalDest, portalPath)
	var version uint32
	err = obj.Call("org.freedesktop.DBus.Properties.Get", 0,
		settingsInterface, "version").Store(&version)
	if err != nil {
		log.Debug().Err(err).Msg("color scheme portal: settings portal not available")
		return p
	}

	p.version = version
	p.supported = true
	log.Debug().Uint32("version", version).Msg("color scheme portal: available")

	return p
}

// Supported reports whether the Settings portal answered the version query.
func (p *Portal) Supported() bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.supported && p.conn != nil
}

// ReadSetting implements settingsReader.
// ReadOne is used first; portals older than version 2 only offer Read,
// which wraps the value in an extra variant.
func (p *Portal) ReadSetting(namespace, key string) (dbus.Variant, error) {
	p.mu.Lock()
	conn, version := p.conn, p.version
	p.mu.Unlock()

	if conn == nil {
		return dbus.Variant{}, fmt.Errorf("portal: not connected")
	}

	obj := conn.Object(portalDest, portalPath)
	var value dbus.Variant

	if version >= 2 {
		err := obj.Call(settingsInterface+".ReadOne", 0, namespace, key).Store(&value)
		if err == nil {
			return value, nil
		}
	}

	if err := obj.Call(settingsInterface+".Read", 0, namespace, key).Store(&value); err != nil {
		return dbus.Variant{}, fmt.Errorf("portal read %s %s: %w", namespace, key, err)
	}
	return value, nil
}

// Subscribe implements signalSource. The returned cancel function removes
// the match rule and stops delivery.
func (p *Portal) Subscribe(rule string) (<-chan *dbus.Signal, func(), error) {
	p.mu.Lock()
	conn := p.conn
	p.mu.Unlock()

	if conn == nil {
		return nil, nil, fmt.Errorf("portal: not connected")
	}

	if err := conn.BusObject().Call("org.freedesktop.DBus.AddMatch", 0, rule).Err; err != nil {
		return nil, nil, fmt.Errorf("portal add match: %w", err)
	}

	signals := make(chan *dbus.Signal, 8)
	conn.Signal(signals)

	cancel := func() {
		conn.RemoveSignal(signals)
		_ = conn.BusObject().Call("org.freedesktop.DBus.RemoveMatch", 0, rule).Err
	}
	return signals, cancel, nil
}

// Close releases the D-Bus connection.
func (p *Portal) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.supported = false
	if p.conn != nil {
		err := p.conn.Close()
		p.conn = nil
		return err
	}
	return nil
}

// unwrapVariant strips nested variants, as returned by the legacy Read call.
func unwrapVariant(v dbus.Variant) any {
	value := v.Value()
	for {
		inner, ok := value.(dbus.Variant)
		if !ok {
			return value
		}
		value = inner.Value()
	}
}

// colorSchemeFromVariant maps the portal color-scheme value.
func colorSchemeFromVariant(v dbus.Variant) (prefersDark, ok bool) {
	var scheme uint32
	switch value := unwrapVariant(v).(type) {
	case uint32:
		scheme = value
	case int32:
		scheme = uint32(value)
	default:
		return false, false
	}

	switch scheme {
	case portalPreferDark:
		return true, true
	case portalPreferLight:
		return false, true
	case portalNoPreference:
		return false, false
	default:
		return false, false
	}
}
