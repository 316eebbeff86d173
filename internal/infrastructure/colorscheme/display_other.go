//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package colorscheme

import "os"

// HasGraphicalSession reports whether a graphical session is present.
// Outside X11/Wayland platforms the desktop is always assumed.
func HasGraphicalSession() bool {
	return hasGraphicalSession(os.Getenv)
}

func hasGraphicalSession(func(string) string) bool {
	return true
}
