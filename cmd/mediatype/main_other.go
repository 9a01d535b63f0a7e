//go:build !js || !wasm
// +build !js !wasm

package main

func runHostBridge() bool {
	return false
}
