package colorscheme

import (
	"sort"
	"strings"
	"sync"

	"github.com/bnema/schemewatch/internal/application/port"
)

const (
	// sourceFallback indicates no detector provided the preference.
	sourceFallback = "fallback"
	// sourceConfig indicates the preference came from user config.
	sourceConfig = "config"
)

// Compile-time interface check.
var _ port.ColorSchemeResolver = (*Resolver)(nil)

// ConfigProvider provides access to the color scheme configuration.
type ConfigProvider interface {
	// GetColorScheme returns the configured color scheme preference.
	// Expected values: "default", "prefer-dark", "prefer-light", "dark", "light"
	GetColorScheme() string
}

// callbackWrapper wraps a callback function to enable pointer comparison for removal.
type callbackWrapper struct {
	fn func(port.ColorSchemePreference)
}

// Resolver implements port.ColorSchemeResolver.
// It manages multiple detectors and respects config overrides.
// Detection runs without mu held, so Current and Available never wait on
// detector I/O.
type Resolver struct {
	// refreshMu serializes Refresh so results are published in order.
	refreshMu sync.Mutex

	mu        sync.RWMutex
	config    ConfigProvider
	detectors []port.ColorSchemeDetector
	current   port.ColorSchemePreference
	available bool // some detector was available at the last Refresh
	callbacks []*callbackWrapper
}

// NewResolver creates a new color scheme resolver.
// The config provider is used to check for explicit user preferences.
func NewResolver(config ConfigProvider) *Resolver {
	return &Resolver{
		config:    config,
		detectors: make([]port.ColorSchemeDetector, 0),
		current: port.ColorSchemePreference{
			PrefersDark: true, // Default to dark until first Refresh()
			Source:      sourceFallback,
		},
	}
}

// Resolve implements port.ColorSchemeResolver.
func (r *Resolver) Resolve() port.ColorSchemePreference {
	pref, _ := r.resolve(r.sortedDetectors())
	return pref
}

// Current implements port.ColorSchemeResolver.
func (r *Resolver) Current() port.ColorSchemePreference {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Available implements port.ColorSchemeResolver.
// Detector availability is the value cached by the last Refresh.
func (r *Resolver) Available() bool {
	if _, ok := r.configOverride(); ok {
		return true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.available
}

// configOverride returns the explicit preference set in config, if any.
func (r *Resolver) configOverride() (prefersDark, ok bool) {
	if r.config == nil {
		return false, false
	}
	switch strings.ToLower(r.config.GetColorScheme()) {
	case "prefer-dark", "dark":
		return true, true
	case "prefer-light", "light":
		return false, true
	default:
		// "default" or empty falls through to detector chain
		return false, false
	}
}

// sortedDetectors returns a snapshot of the detectors, highest priority first.
func (r *Resolver) sortedDetectors() []port.ColorSchemeDetector {
	r.mu.RLock()
	sorted := make([]port.ColorSchemeDetector, len(r.detectors))
	copy(sorted, r.detectors)
	r.mu.RUnlock()

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() > sorted[j].Priority()
	})
	return sorted
}

// resolve computes the preference from a detector snapshot. It also reports
// whether any detector is available. Must be called without mu held.
func (r *Resolver) resolve(detectors []port.ColorSchemeDetector) (port.ColorSchemePreference, bool) {
	available := false
	for _, detector := range detectors {
		if detector.Available() {
			available = true
			break
		}
	}

	if prefersDark, ok := r.configOverride(); ok {
		return port.ColorSchemePreference{
			PrefersDark: prefersDark,
			Source:      sourceConfig,
		}, available
	}

	for _, detector := range detectors {
		if !detector.Available() {
			continue
		}
		if prefersDark, ok := detector.Detect(); ok {
			return port.ColorSchemePreference{
				PrefersDark: prefersDark,
				Source:      detector.Name(),
			}, available
		}
	}

	// Fallback to dark mode if all detectors fail
	return port.ColorSchemePreference{
		PrefersDark: true,
		Source:      sourceFallback,
	}, available
}

// RegisterDetector implements port.ColorSchemeResolver.
func (r *Resolver) RegisterDetector(detector port.ColorSchemeDetector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detectors = append(r.detectors, detector)
}

// Detectors returns the registered detectors in registration order.
func (r *Resolver) Detectors() []port.ColorSchemeDetector {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]port.ColorSchemeDetector, len(r.detectors))
	copy(out, r.detectors)
	return out
}

// Refresh implements port.ColorSchemeResolver.
// Refreshes are serialized and callbacks run in order; a callback must not
// call Refresh synchronously.
func (r *Resolver) Refresh() port.ColorSchemePreference {
	r.refreshMu.Lock()
	defer r.refreshMu.Unlock()

	newPref, available := r.resolve(r.sortedDetectors())

	r.mu.Lock()
	r.available = available
	changed := newPref.PrefersDark != r.current.PrefersDark
	r.current = newPref

	if !changed {
		r.mu.Unlock()
		return newPref
	}

	// Copy callbacks to avoid holding lock during callback invocation
	callbacks := make([]*callbackWrapper, len(r.callbacks))
	copy(callbacks, r.callbacks)
	r.mu.Unlock()

	for _, cb := range callbacks {
		cb.fn(newPref)
	}
	return newPref
}

// OnChange implements port.ColorSchemeResolver.
func (r *Resolver) OnChange(callback func(port.ColorSchemePreference)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Wrap callback to enable pointer comparison for removal
	wrapper := &callbackWrapper{fn: callback}
	r.callbacks = append(r.callbacks, wrapper)

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()

			for i, cb := range r.callbacks {
				if cb == wrapper {
					r.callbacks = append(r.callbacks[:i], r.callbacks[i+1:]...)
					return
				}
			}
		})
	}
}
