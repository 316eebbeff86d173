package colorscheme

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"

	"github.com/bnema/schemewatch/internal/application/port"
	"github.com/bnema/schemewatch/internal/logging"
)

const watcherNameGsettings = "gsettings"

// Compile-time interface check.
var _ port.ColorSchemeWatcher = (*GsettingsWatcher)(nil)

// GsettingsWatcher follows `gsettings monitor` for the GNOME color-scheme key.
type GsettingsWatcher struct {
	lookPath func(string) (string, error)
	command  func(ctx context.Context) *exec.Cmd
}

// NewGsettingsWatcher creates a new gsettings-based watcher.
func NewGsettingsWatcher() *GsettingsWatcher {
	return &GsettingsWatcher{
		lookPath: exec.LookPath,
		command: func(ctx context.Context) *exec.Cmd {
			return exec.CommandContext(ctx, "gsettings", "monitor", gsettingsSchema, gsettingsKey)
		},
	}
}

// Name implements port.ColorSchemeWatcher.
func (*GsettingsWatcher) Name() string {
	return watcherNameGsettings
}

// Available implements port.ColorSchemeWatcher.
func (w *GsettingsWatcher) Available() bool {
	_, err := w.lookPath("gsettings")
	return err == nil
}

// Watch implements port.ColorSchemeWatcher.
// Every line printed by the monitor is a change of the key.
func (w *GsettingsWatcher) Watch(ctx context.Context, onChange func()) error {
	log := logging.FromContext(ctx)

	cmd := w.command(ctx)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("gsettings monitor pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start gsettings monitor: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		log.Debug().Str("line", scanner.Text()).Msg("gsettings monitor: change")
		onChange()
	}

	waitErr := cmd.Wait()
	if ctx.Err() != nil {
		return nil
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read gsettings monitor: %w", err)
	}
	if waitErr != nil {
		return fmt.Errorf("gsettings monitor exited: %w", waitErr)
	}
	return nil
}
