//go:build js && wasm

// Package browser provides the colorscheme host for WebAssembly builds
// running in a browser, backed by window.matchMedia.
package browser

import (
	"errors"
	"fmt"
	"syscall/js"

	"github.com/bnema/schemewatch/pkg/colorscheme"
)

// Compile-time interface checks.
var (
	_ colorscheme.Host           = Host{}
	_ colorscheme.Window         = window{}
	_ colorscheme.MediaQueryList = mediaQueryList{}
)

// Host reads the global window object.
type Host struct{}

// Window implements colorscheme.Host.
func (Host) Window() (colorscheme.Window, bool) {
	w := js.Global().Get("window")
	if !present(w) {
		return nil, false
	}
	return window{v: w}, true
}

type window struct {
	v js.Value
}

// MatchMedia implements colorscheme.Window. Exceptions thrown by the browser
// are returned as errors carrying the exception message; a null result is
// reported as (nil, nil).
func (w window) MatchMedia(query string) (list colorscheme.MediaQueryList, err error) {
	defer func() {
		if r := recover(); r != nil {
			list, err = nil, exceptionError(r)
		}
	}()

	fn := w.v.Get("matchMedia")
	if fn.Type() != js.TypeFunction {
		return nil, nil
	}
	res := w.v.Call("matchMedia", query)
	if !present(res) {
		return nil, nil
	}
	return mediaQueryList{v: res}, nil
}

type mediaQueryList struct {
	v js.Value
}

// Matches implements colorscheme.MediaQueryList.
func (l mediaQueryList) Matches() bool {
	m := l.v.Get("matches")
	return m.Type() == js.TypeBoolean && m.Bool()
}

// SetOnChange implements colorscheme.MediaQueryList. The js.Func backing the
// handler is never released: the browser may invoke it until the page unloads.
func (l mediaQueryList) SetOnChange(fn func()) {
	if fn == nil {
		l.v.Set("onchange", js.Null())
		return
	}
	cb := js.FuncOf(func(js.Value, []js.Value) any {
		fn()
		return nil
	})
	l.v.Set("onchange", cb)
}

func present(v js.Value) bool {
	return !v.IsUndefined() && !v.IsNull()
}

// exceptionError converts a recovered JS exception into an error. String
// exceptions and objects with a string message are used verbatim; anything
// else yields an empty message.
func exceptionError(r any) error {
	jsErr, ok := r.(js.Error)
	if !ok {
		if err, isErr := r.(error); isErr {
			return err
		}
		return errors.New(fmt.Sprint(r))
	}
	return errors.New(exceptionMessage(jsErr.Value))
}

func exceptionMessage(v js.Value) string {
	switch v.Type() {
	case js.TypeString:
		return v.String()
	case js.TypeObject:
		if msg := v.Get("message"); msg.Type() == js.TypeString {
			return msg.String()
		}
	}
	return ""
}
