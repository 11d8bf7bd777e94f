//go:build !windows

package main

import (
	"context"
	"math"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// queryAppWindow has no native answer here; the adapter falls back to the
// state it last applied.
func queryAppWindow(title string) (visible, minimized, ok bool) {
	return false, false, false
}

// focusAppWindow un-minimises and re-shows the window, which makes it key on
// macOS and raises it on GTK.
func focusAppWindow(ctx context.Context, title string) error {
	wailsRuntime.WindowUnminimise(ctx)
	wailsRuntime.WindowShow(ctx)
	return nil
}

// toWindowUnits converts physical pixels to the logical points Cocoa and GTK
// position windows in.
func toWindowUnits(x, y int, scale float64) (int, int) {
	if scale <= 0 {
		scale = 1.0
	}
	return int(math.Round(float64(x) / scale)), int(math.Round(float64(y) / scale))
}
