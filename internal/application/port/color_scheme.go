package port

import "context"

// ColorSchemePreference represents the resolved color scheme preference.
type ColorSchemePreference struct {
	// PrefersDark indicates whether dark mode is preferred.
	PrefersDark bool

	// Source identifies which detector provided this preference.
	Source string
}

// ColorSchemeDetector detects the system's color scheme preference.
// Multiple detectors can be registered with different priorities.
type ColorSchemeDetector interface {
	// Name returns a human-readable name for this detector.
	Name() string

	// Priority returns the detector's priority.
	// Higher values = higher priority (checked first).
	// Recommended ranges:
	//   - 100+: Desktop portal
	//   -  20+: Environment overrides
	//   -  10+: Fallback detectors (gsettings)
	Priority() int

	// Available returns true if this detector can be used.
	Available() bool

	// Detect returns the detected preference and whether detection succeeded.
	// Returns (preference, true) on success, (_, false) if unavailable or detection failed.
	Detect() (prefersDark bool, ok bool)
}

// ColorSchemeResolver resolves the effective color scheme preference.
// It manages multiple detectors and respects config overrides.
type ColorSchemeResolver interface {
	// Resolve computes the color scheme preference from scratch.
	// It checks config for explicit overrides, then queries detectors by priority.
	// If all detectors fail, defaults to dark mode.
	Resolve() ColorSchemePreference

	// Current returns the preference cached by the last Refresh without
	// querying any detector. It never waits on a Refresh in progress.
	Current() ColorSchemePreference

	// Available reports whether a config override or at least one available
	// detector can produce a preference. Detector availability is the value
	// cached by the last Refresh, so Available never queries the system.
	Available() bool

	// RegisterDetector adds a detector to the resolver.
	// Safe to call at any time; the resolver re-evaluates on next Refresh().
	RegisterDetector(detector ColorSchemeDetector)

	// Refresh re-evaluates the color scheme and caches the result.
	// Call this after registering new detectors or when system preferences change.
	// Returns the new preference.
	Refresh() ColorSchemePreference

	// OnChange registers a callback for color scheme changes.
	// The callback is invoked when Refresh() results in a different preference.
	// Returns a function to unregister the callback.
	OnChange(callback func(ColorSchemePreference)) func()
}

// ColorSchemeWatcher observes a system source of the color scheme preference
// and reports that it may have changed.
type ColorSchemeWatcher interface {
	// Name returns a human-readable name for this watcher.
	Name() string

	// Available returns true if the underlying source can be watched.
	Available() bool

	// Watch blocks until ctx is done or the source fails, calling onChange
	// each time the source reports a change.
	Watch(ctx context.Context, onChange func()) error
}
