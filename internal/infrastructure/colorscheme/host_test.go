package colorscheme

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/schemewatch/pkg/colorscheme"
)

func newTestHost(t *testing.T, requireDisplay, hasDisplay bool) (*DesktopHost, *Resolver, *mockDetector) {
	t.Helper()
	resolver := NewResolver(nil)
	detector := newMockDetector("test", 50, true, true, true)
	resolver.RegisterDetector(detector)
	resolver.Refresh()

	host := NewDesktopHost(resolver, requireDisplay)
	host.hasDisplay = func() bool { return hasDisplay }
	return host, resolver, detector
}

func TestParseMediaQuery(t *testing.T) {
	tests := []struct {
		query    string
		wantDark bool
		wantErr  bool
	}{
		{query: "(prefers-color-scheme: dark)", wantDark: true},
		{query: "(prefers-color-scheme: light)", wantDark: false},
		{query: "  ( PREFERS-COLOR-SCHEME :Dark )  ", wantDark: true},
		{query: "(prefers-color-scheme:light)", wantDark: false},
		{query: "", wantErr: true},
		{query: "prefers-color-scheme: dark", wantErr: true},
		{query: "(prefers-color-scheme)", wantErr: true},
		{query: "(prefers-contrast: more)", wantErr: true},
		{query: "(prefers-color-scheme: sepia)", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			q, err := parseMediaQuery(tt.query)
			if tt.wantErr {
				require.Error(t, err)
				var mqErr *MediaQueryError
				require.True(t, errors.As(err, &mqErr))
				assert.Equal(t, tt.query, mqErr.Query)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDark, q.dark)
		})
	}
}

func TestDesktopHost_NoDisplay(t *testing.T) {
	host, _, _ := newTestHost(t, true, false)

	window, ok := host.Window()
	assert.False(t, ok)
	assert.Nil(t, window)

	var hook colorscheme.Hook
	got := hook.Read(host, func() {})
	assert.Equal(t, colorscheme.Unavailable(colorscheme.ReasonNoWindow), got)
	assert.False(t, hook.Attached())
}

func TestDesktopHost_DisplayNotRequired(t *testing.T) {
	host, _, _ := newTestHost(t, false, false)

	_, ok := host.Window()
	assert.True(t, ok)
}

func TestDesktopWindow_RejectsQuery(t *testing.T) {
	host, _, _ := newTestHost(t, true, true)
	window, ok := host.Window()
	require.True(t, ok)

	list, err := window.MatchMedia("(hover: hover)")
	assert.Nil(t, list)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported media feature hover")
}

func TestDesktopWindow_NoSourceYieldsNilList(t *testing.T) {
	resolver := NewResolver(nil)
	resolver.RegisterDetector(newMockDetector("off", 10, false, false, true))
	resolver.Refresh()
	host := NewDesktopHost(resolver, false)

	window, ok := host.Window()
	require.True(t, ok)
	list, err := window.MatchMedia(colorscheme.DarkQuery)
	require.NoError(t, err)
	assert.Nil(t, list)

	var hook colorscheme.Hook
	assert.Equal(t, colorscheme.Unavailable(colorscheme.ReasonNoQueryList), hook.Read(host, nil))
}

func TestMediaQueryList_MatchesFollowsResolver(t *testing.T) {
	host, resolver, detector := newTestHost(t, true, true)
	window, _ := host.Window()

	darkList, err := window.MatchMedia("(prefers-color-scheme: dark)")
	require.NoError(t, err)
	lightList, err := window.MatchMedia("(prefers-color-scheme: light)")
	require.NoError(t, err)

	assert.True(t, darkList.Matches())
	assert.False(t, lightList.Matches())

	detector.prefersDark.Store(false)
	resolver.Refresh()

	assert.False(t, darkList.Matches())
	assert.True(t, lightList.Matches())
}

func TestMediaQueryList_SetOnChangeReplaces(t *testing.T) {
	host, resolver, detector := newTestHost(t, true, true)
	window, _ := host.Window()
	list, err := window.MatchMedia(colorscheme.DarkQuery)
	require.NoError(t, err)

	var first, second atomic.Int32
	list.SetOnChange(func() { first.Add(1) })
	list.SetOnChange(func() { second.Add(1) })

	detector.prefersDark.Store(false)
	resolver.Refresh()

	assert.Equal(t, int32(0), first.Load())
	assert.Equal(t, int32(1), second.Load())

	list.SetOnChange(nil)
	detector.prefersDark.Store(true)
	resolver.Refresh()
	assert.Equal(t, int32(1), second.Load())
}

func TestDesktopHost_HookEndToEnd(t *testing.T) {
	host, resolver, detector := newTestHost(t, true, true)

	var hook colorscheme.Hook
	var renders atomic.Int32
	schedule := func() { renders.Add(1) }

	require.Equal(t, colorscheme.Dark(), hook.Read(host, schedule))
	for i := 0; i < 10; i++ {
		hook.Read(host, schedule)
	}

	detector.prefersDark.Store(false)
	resolver.Refresh()

	assert.Equal(t, int32(1), renders.Load(), "exactly one listener is attached")
	assert.Equal(t, colorscheme.Light(), hook.Read(host, schedule))
}

// blockingDetector blocks in Detect until released, standing in for a
// gsettings call or a D-Bus round trip that is slow to answer.
type blockingDetector struct {
	started chan struct{}
	release chan struct{}
	avail   atomic.Int32
}

func (*blockingDetector) Name() string  { return "blocking" }
func (*blockingDetector) Priority() int { return 100 }
func (d *blockingDetector) Available() bool {
	d.avail.Add(1)
	return true
}
func (d *blockingDetector) Detect() (prefersDark, ok bool) {
	d.started <- struct{}{}
	<-d.release
	return true, true
}

func TestDesktopHost_ReadDoesNotWaitForRefresh(t *testing.T) {
	host, resolver, _ := newTestHost(t, false, true)
	slow := &blockingDetector{started: make(chan struct{}, 1), release: make(chan struct{})}
	resolver.RegisterDetector(slow)

	done := make(chan struct{})
	go func() {
		resolver.Refresh()
		close(done)
	}()
	<-slow.started

	var hook colorscheme.Hook
	availBefore := slow.avail.Load()
	begin := time.Now()
	scheme := hook.Read(host, func() {})
	elapsed := time.Since(begin)

	assert.Less(t, elapsed, 50*time.Millisecond, "Read must not wait on detection")
	assert.Equal(t, colorscheme.Dark(), scheme)
	assert.Equal(t, availBefore, slow.avail.Load(), "Read must not query detector availability")
	assert.True(t, resolver.Available())
	assert.Equal(t, "test", resolver.Current().Source)

	close(slow.release)
	<-done
	assert.Equal(t, "blocking", resolver.Current().Source)
}

func TestHasGraphicalSession(t *testing.T) {
	env := map[string]string{}
	getenv := func(k string) string { return env[k] }

	env["DISPLAY"] = ":0"
	assert.True(t, hasGraphicalSession(getenv))
}
