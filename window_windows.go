//go:build windows

package main

import (
	"context"
	"errors"
	"unsafe"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
	"golang.org/x/sys/windows"
)

var (
	user32dll            = windows.NewLazySystemDLL("User32.dll")
	pFindWindowW         = user32dll.NewProc("FindWindowW")
	pIsWindowVisible     = user32dll.NewProc("IsWindowVisible")
	pIsIconic            = user32dll.NewProc("IsIconic")
	pShowWindow          = user32dll.NewProc("ShowWindow")
	pSetForegroundWindow = user32dll.NewProc("SetForegroundWindow")
)

const swRestore = 9

func findAppWindow(title string) uintptr {
	t, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return 0
	}
	hwnd, _, _ := pFindWindowW.Call(0, uintptr(unsafe.Pointer(t)))
	return hwnd
}

// queryAppWindow asks Win32 for the real window state, which also covers
// hides done by the OS or the webview itself.
func queryAppWindow(title string) (visible, minimized, ok bool) {
	hwnd := findAppWindow(title)
	if hwnd == 0 {
		return false, false, false
	}
	v, _, _ := pIsWindowVisible.Call(hwnd)
	m, _, _ := pIsIconic.Call(hwnd)
	return v != 0, m != 0, true
}

// focusAppWindow restores the window and brings it to the foreground; a plain
// show can leave it behind the active window.
func focusAppWindow(ctx context.Context, title string) error {
	hwnd := findAppWindow(title)
	if hwnd == 0 {
		wailsRuntime.WindowUnminimise(ctx)
		return errors.New("main window not found")
	}
	pShowWindow.Call(hwnd, swRestore)
	if ok, _, _ := pSetForegroundWindow.Call(hwnd); ok == 0 {
		return errors.New("SetForegroundWindow refused")
	}
	return nil
}

// toWindowUnits is the identity: the Windows frontend hands positions to
// SetWindowPos unscaled, so they are already physical pixels.
func toWindowUnits(x, y int, scale float64) (int, int) {
	return x, y
}
