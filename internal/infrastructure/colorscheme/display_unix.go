//go:build linux || freebsd || openbsd || netbsd || dragonfly

package colorscheme

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// HasGraphicalSession reports whether a Wayland or X11 display is reachable.
// A Wayland display counts only if its socket is accessible.
func HasGraphicalSession() bool {
	return hasGraphicalSession(os.Getenv)
}

func hasGraphicalSession(getenv func(string) string) bool {
	if display := getenv("WAYLAND_DISPLAY"); display != "" {
		socket := display
		if !filepath.IsAbs(socket) {
			socket = filepath.Join(getenv("XDG_RUNTIME_DIR"), display)
		}
		if unix.Access(socket, unix.R_OK|unix.W_OK) == nil {
			return true
		}
	}
	return getenv("DISPLAY") != ""
}
