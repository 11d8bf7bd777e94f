//go:build !windows

package tray

// subclassSystray is a no-op: these trays open the menu on click and do not
// report icon clicks to the application.
func subclassSystray(fn func(Event)) {}
