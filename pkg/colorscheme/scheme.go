// Package colorscheme exposes the user's preferred color scheme (dark or light)
// as a value that UI components read once per render, and keeps it live by
// asking the UI runtime to re-render whenever the host preference changes.
package colorscheme

import (
	"encoding/json"
)

// Reasons reported by Unavailable schemes.
const (
	ReasonNoWindow     = "not running in a graphical/browser context: window doesn't exist"
	ReasonNoQueryList  = "failed to determine preferred scheme"
	ReasonUnknownError = "failed to determine preferred scheme and couldn't retrieve error"
)

// Kind identifies which variant a Scheme holds.
type Kind uint8

const (
	KindLight Kind = iota
	KindDark
	KindUnavailable
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindLight:
		return "light"
	case KindDark:
		return "dark"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Scheme is the preferred color scheme as observed at the time of a read.
// It is a value type: a new one is produced on every read and never mutated.
type Scheme struct {
	kind   Kind
	reason string
}

// Light returns the light scheme.
func Light() Scheme {
	return Scheme{kind: KindLight}
}

// Dark returns the dark scheme.
func Dark() Scheme {
	return Scheme{kind: KindDark}
}

// Unavailable returns a scheme describing why no preference could be read.
func Unavailable(reason string) Scheme {
	return Scheme{kind: KindUnavailable, reason: reason}
}

// FromMatches maps the "dark preferred" condition to a scheme.
func FromMatches(matches bool) Scheme {
	if matches {
		return Dark()
	}
	return Light()
}

// Kind returns the variant held by s.
func (s Scheme) Kind() Kind { return s.kind }

// Reason returns why the scheme is unavailable, or "" for Light and Dark.
func (s Scheme) Reason() string { return s.reason }

// IsDark reports whether s is Dark.
func (s Scheme) IsDark() bool { return s.kind == KindDark }

// IsLight reports whether s is Light.
func (s Scheme) IsLight() bool { return s.kind == KindLight }

// IsUnavailable reports whether s is Unavailable.
func (s Scheme) IsUnavailable() bool { return s.kind == KindUnavailable }

func (s Scheme) String() string {
	if s.kind == KindUnavailable {
		return "unavailable: " + s.reason
	}
	return s.kind.String()
}

type schemeJSON struct {
	Scheme string `json:"scheme"`
	Reason string `json:"reason,omitempty"`
}

// MarshalJSON encodes s as {"scheme":"dark"} or
// {"scheme":"unavailable","reason":"..."}.
func (s Scheme) MarshalJSON() ([]byte, error) {
	return json.Marshal(schemeJSON{Scheme: s.kind.String(), Reason: s.reason})
}
