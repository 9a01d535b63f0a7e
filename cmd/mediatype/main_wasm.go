//go:build js && wasm
// +build js,wasm

package main

import (
	"syscall/js"

	"github.com/esdeno/mediatype/pkg/api"
)

// Exposes "fromSpecifier(url: string): string" on the global object. An
// invalid specifier returns an "Error" instance instead of a string because a
// Go callback can't throw. The JavaScript wrapper rethrows it.
func runHostBridge() bool {
	js.Global().Set("fromSpecifier", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) < 1 || args[0].Type() != js.TypeString {
			return js.Global().Get("TypeError").New("fromSpecifier expects a string")
		}
		mediaType, err := api.FromSpecifier(args[0].String())
		if err != nil {
			return js.Global().Get("Error").New(err.Error())
		}
		return mediaType
	}))

	// Keep the Go runtime alive so the exported function stays callable
	select {}
}
