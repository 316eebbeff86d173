package colorscheme

import (
	"fmt"
	"strings"
)

const featurePrefersColorScheme = "prefers-color-scheme"

// MediaQueryError is returned when a media query cannot be evaluated.
type MediaQueryError struct {
	Query  string
	Reason string
}

func (e *MediaQueryError) Error() string {
	return fmt.Sprintf("SyntaxError: %s: %q", e.Reason, e.Query)
}

// mediaQuery is a parsed "(prefers-color-scheme: <value>)" query.
type mediaQuery struct {
	raw  string
	dark bool
}

// parseMediaQuery accepts a single parenthesized prefers-color-scheme
// feature with value dark or light. Matching is case-insensitive and
// tolerates surrounding whitespace.
func parseMediaQuery(query string) (mediaQuery, error) {
	s := strings.TrimSpace(query)
	if s == "" {
		return mediaQuery{}, &MediaQueryError{Query: query, Reason: "empty media query"}
	}
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return mediaQuery{}, &MediaQueryError{Query: query, Reason: "expected a parenthesized media feature"}
	}

	inner := strings.TrimSpace(s[1 : len(s)-1])
	feature, value, found := strings.Cut(inner, ":")
	if !found {
		return mediaQuery{}, &MediaQueryError{Query: query, Reason: "expected feature: value"}
	}

	feature = strings.ToLower(strings.TrimSpace(feature))
	value = strings.ToLower(strings.TrimSpace(value))

	if feature != featurePrefersColorScheme {
		return mediaQuery{}, &MediaQueryError{Query: query, Reason: "unsupported media feature " + feature}
	}

	switch value {
	case "dark":
		return mediaQuery{raw: s, dark: true}, nil
	case "light":
		return mediaQuery{raw: s, dark: false}, nil
	default:
		return mediaQuery{}, &MediaQueryError{Query: query, Reason: "unsupported prefers-color-scheme value " + value}
	}
}
