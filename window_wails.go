package main

import (
	"context"
	"fmt"
	"sync/atomic"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"closechat/internal/window"
)

const (
	visibilityUnknown int32 = iota
	visibilityHidden
	visibilityShown
)

// wailsWindow adapts the Wails runtime to the controller and placement.
// Wails v2 has no visibility query, so the native one is used where the
// platform offers it and the last applied state otherwise.
type wailsWindow struct {
	ctx     context.Context
	title   string
	applied atomic.Int32
	scale   atomic.Value // float64 from the last monitor query
}

func newWailsWindow(ctx context.Context, title string) *wailsWindow {
	w := &wailsWindow{ctx: ctx, title: title}
	w.scale.Store(1.0)
	return w
}

func (w *wailsWindow) Show() error {
	wailsRuntime.WindowShow(w.ctx)
	w.applied.Store(visibilityShown)
	return nil
}

func (w *wailsWindow) Hide() error {
	wailsRuntime.WindowHide(w.ctx)
	w.applied.Store(visibilityHidden)
	return nil
}

func (w *wailsWindow) Focus() error {
	return focusAppWindow(w.ctx, w.title)
}

// IsVisible treats a minimized window as hidden so a toggle restores it.
func (w *wailsWindow) IsVisible() (bool, error) {
	if visible, minimized, ok := queryAppWindow(w.title); ok {
		return visible && !minimized, nil
	}
	switch w.applied.Load() {
	case visibilityShown:
		return !wailsRuntime.WindowIsMinimised(w.ctx), nil
	case visibilityHidden:
		return false, nil
	}
	return false, window.ErrVisibilityUnknown
}

// CurrentMonitor reports the screen Wails marks as current. Wails positions
// windows relative to that screen, so its origin is (0, 0).
func (w *wailsWindow) CurrentMonitor() (window.Monitor, error) {
	screens, err := wailsRuntime.ScreenGetAll(w.ctx)
	if err != nil {
		return window.Monitor{}, fmt.Errorf("%w: %v", window.ErrNoMonitor, err)
	}
	for _, s := range screens {
		if !s.IsCurrent {
			continue
		}
		m := monitorFromScreen(s)
		if m.ScaleFactor > 0 {
			w.scale.Store(m.ScaleFactor)
		}
		return m, nil
	}
	return window.Monitor{}, window.ErrNoMonitor
}

// SetPosition takes physical pixels and converts them to the units
// WindowSetPosition expects on this platform.
func (w *wailsWindow) SetPosition(x, y int) error {
	wx, wy := toWindowUnits(x, y, w.scale.Load().(float64))
	wailsRuntime.WindowSetPosition(w.ctx, wx, wy)
	return nil
}

func monitorFromScreen(s wailsRuntime.Screen) window.Monitor {
	m := window.Monitor{
		Width:  s.PhysicalSize.Width,
		Height: s.PhysicalSize.Height,
	}
	if m.Width == 0 || m.Height == 0 {
		m.Width, m.Height = s.Size.Width, s.Size.Height
	}
	if m.Width == 0 || m.Height == 0 {
		m.Width, m.Height = s.Width, s.Height
	}
	if s.Size.Width > 0 && s.PhysicalSize.Width > 0 {
		m.ScaleFactor = float64(s.PhysicalSize.Width) / float64(s.Size.Width)
	}
	return m
}
