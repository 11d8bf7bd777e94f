//go:build !stub

package tray

import "github.com/ra1phdd/systray-on-wails"

type systrayHost struct{}

// NewSystrayHost returns the tray host backed by systray-on-wails, which runs
// inside the Wails main loop instead of owning its own.
func NewSystrayHost() Host {
	return systrayHost{}
}

func (systrayHost) Register(onReady func()) {
	systray.Register(onReady, nil)
}

func (systrayHost) SetIcon(png []byte) {
	systray.SetIcon(platformIcon(png))
}

func (systrayHost) SetTooltip(tooltip string) {
	systray.SetTooltip(tooltip)
}

func (systrayHost) AddItem(label, hint string) <-chan struct{} {
	return systray.AddMenuItem(label, hint).ClickedCh
}

func (systrayHost) AddSeparator() {
	systray.AddSeparator()
}

func (systrayHost) WatchClicks(fn func(Event)) {
	subclassSystray(fn)
}

func (systrayHost) Quit() {
	systray.Quit()
}
