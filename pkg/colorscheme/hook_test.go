package colorscheme

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockWindow struct {
	mock.Mock
}

func (m *mockWindow) MatchMedia(query string) (MediaQueryList, error) {
	args := m.Called(query)
	list, _ := args.Get(0).(MediaQueryList)
	return list, args.Error(1)
}

type fakeHost struct {
	window Window
	ok     bool
}

func (h *fakeHost) Window() (Window, bool) { return h.window, h.ok }

// fakeList is a live condition whose value and callback the test controls.
type fakeList struct {
	matches  atomic.Bool
	mu       sync.Mutex
	onChange func()
	setCalls atomic.Int32
}

func (l *fakeList) Matches() bool { return l.matches.Load() }

func (l *fakeList) SetOnChange(fn func()) {
	l.setCalls.Add(1)
	l.mu.Lock()
	l.onChange = fn
	l.mu.Unlock()
}

func (l *fakeList) flip(v bool) {
	l.matches.Store(v)
	l.mu.Lock()
	fn := l.onChange
	l.mu.Unlock()
	if fn != nil {
		fn()
	}
}

type staticWindow struct {
	list *fakeList
}

func (w *staticWindow) MatchMedia(string) (MediaQueryList, error) { return w.list, nil }

func TestFromMatches(t *testing.T) {
	assert.Equal(t, Dark(), FromMatches(true))
	assert.Equal(t, Light(), FromMatches(false))
	assert.True(t, FromMatches(true).IsDark())
	assert.True(t, FromMatches(false).IsLight())
	assert.False(t, FromMatches(true).IsUnavailable())
	assert.False(t, FromMatches(false).IsUnavailable())
}

func TestHook_NoWindow(t *testing.T) {
	var h Hook
	window := &mockWindow{}

	got := h.Read(&fakeHost{window: window, ok: false}, func() {})

	assert.True(t, got.IsUnavailable())
	assert.Equal(t, ReasonNoWindow, got.Reason())
	assert.False(t, h.Attached())
	window.AssertNotCalled(t, "MatchMedia", mock.Anything)
}

func TestHook_NilHost(t *testing.T) {
	var h Hook

	got := h.Read(nil, nil)

	assert.Equal(t, Unavailable(ReasonNoWindow), got)
	assert.False(t, h.Attached())
}

func TestHook_QueryErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantReason string
	}{
		{name: "error text is kept", err: errors.New("bad expression"), wantReason: "bad expression"},
		{name: "empty error text falls back", err: errors.New(""), wantReason: ReasonUnknownError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h Hook
			window := &mockWindow{}
			window.On("MatchMedia", DarkQuery).Return(nil, tt.err).Once()

			got := h.Read(&fakeHost{window: window, ok: true}, func() {})

			assert.Equal(t, Unavailable(tt.wantReason), got)
			assert.False(t, h.Attached())
			window.AssertExpectations(t)
		})
	}
}

func TestHook_NilQueryList(t *testing.T) {
	var h Hook
	window := &mockWindow{}
	window.On("MatchMedia", DarkQuery).Return(nil, nil).Once()

	got := h.Read(&fakeHost{window: window, ok: true}, func() {})

	assert.Equal(t, Unavailable(ReasonNoQueryList), got)
	assert.False(t, h.Attached())
	window.AssertExpectations(t)
}

func TestHook_AttachesOnce(t *testing.T) {
	var h Hook
	list := &fakeList{}
	host := &fakeHost{window: &staticWindow{list: list}, ok: true}

	for i := 0; i < 50; i++ {
		assert.Equal(t, Light(), h.Read(host, func() {}))
	}

	assert.True(t, h.Attached())
	assert.Equal(t, int32(1), list.setCalls.Load())
}

func TestHook_AttachesOnceConcurrently(t *testing.T) {
	var h Hook
	list := &fakeList{}
	list.matches.Store(true)
	host := &fakeHost{window: &staticWindow{list: list}, ok: true}

	var wg sync.WaitGroup
	const goroutines = 32
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				assert.True(t, h.Read(host, func() {}).IsDark())
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), list.setCalls.Load())
}

func TestHook_ChangeSchedulesRerender(t *testing.T) {
	var h Hook
	list := &fakeList{}
	list.matches.Store(true)
	host := &fakeHost{window: &staticWindow{list: list}, ok: true}

	var renders atomic.Int32
	schedule := func() { renders.Add(1) }

	require.Equal(t, Dark(), h.Read(host, schedule))
	assert.Equal(t, int32(0), renders.Load())

	list.flip(false)
	assert.Equal(t, int32(1), renders.Load())
	assert.Equal(t, Light(), h.Read(host, schedule))

	list.flip(true)
	assert.Equal(t, int32(2), renders.Load())
	assert.Equal(t, Dark(), h.Read(host, schedule))
	assert.Equal(t, int32(1), list.setCalls.Load())
}

func TestHook_FailedReadsDoNotLatch(t *testing.T) {
	var h Hook
	list := &fakeList{}
	window := &mockWindow{}
	window.On("MatchMedia", DarkQuery).Return(nil, errors.New("transient")).Once()
	window.On("MatchMedia", DarkQuery).Return(list, nil)
	host := &fakeHost{window: window, ok: true}

	assert.Equal(t, Unavailable("transient"), h.Read(host, nil))
	assert.False(t, h.Attached())

	assert.Equal(t, Light(), h.Read(host, nil))
	assert.True(t, h.Attached())
	assert.Equal(t, int32(1), list.setCalls.Load())

	// A nil scheduler is tolerated when the host fires the callback.
	list.flip(true)
	assert.Equal(t, Dark(), h.Read(host, nil))
}

func TestUse_ProcessWideHook(t *testing.T) {
	list := &fakeList{}
	host := &fakeHost{window: &staticWindow{list: list}, ok: true}

	Use(host, func() {})
	Use(host, func() {})

	assert.True(t, defaultHook.Attached())
	assert.Equal(t, int32(1), list.setCalls.Load())
}

func TestScheme_String(t *testing.T) {
	assert.Equal(t, "dark", Dark().String())
	assert.Equal(t, "light", Light().String())
	assert.Equal(t, "unavailable: nope", Unavailable("nope").String())
}

func TestScheme_MarshalJSON(t *testing.T) {
	b, err := Dark().MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"scheme":"dark"}`, string(b))

	b, err = Unavailable(ReasonNoQueryList).MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"scheme":"unavailable","reason":"failed to determine preferred scheme"}`, string(b))
}
