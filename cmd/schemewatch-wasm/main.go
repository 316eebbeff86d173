//go:build js && wasm

// Command schemewatch-wasm renders the preferred color scheme into the page
// and re-renders whenever the browser reports a change.
package main

import (
	"syscall/js"

	"github.com/bnema/schemewatch/internal/infrastructure/browser"
	"github.com/bnema/schemewatch/pkg/colorscheme"
)

const targetID = "schemewatch"

func main() {
	updates := make(chan struct{}, 1)
	schedule := func() {
		select {
		case updates <- struct{}{}:
		default:
		}
	}

	host := browser.Host{}
	render(colorscheme.Use(host, schedule))
	for range updates {
		render(colorscheme.Use(host, schedule))
	}
}

func render(scheme colorscheme.Scheme) {
	doc := js.Global().Get("document")
	if doc.IsUndefined() || doc.IsNull() {
		return
	}

	root := doc.Get("documentElement")
	root.Call("setAttribute", "data-color-scheme", scheme.Kind().String())

	el := doc.Call("getElementById", targetID)
	if el.IsNull() {
		el = doc.Call("createElement", "pre")
		el.Set("id", targetID)
		doc.Get("body").Call("appendChild", el)
	}
	el.Set("textContent", scheme.String())
}
