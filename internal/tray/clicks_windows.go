//go:build windows

package tray

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32dll          = windows.NewLazySystemDLL("User32.dll")
	pFindWindowW       = user32dll.NewProc("FindWindowW")
	pCallWindowProcW   = user32dll.NewProc("CallWindowProcW")
	pSetWindowLongPtrW = user32dll.NewProc("SetWindowLongPtrW") // 64-bit
	pSetWindowLongW    = user32dll.NewProc("SetWindowLongW")    // 32-bit fallback
)

const (
	wmUser       = 0x0400
	wmSystrayMsg = wmUser + 1 // callback message registered by systray-on-wails

	wmMouseMove     = 0x0200
	wmLButtonDown   = 0x0201
	wmLButtonUp     = 0x0202
	wmLButtonDblClk = 0x0203
	wmRButtonDown   = 0x0204
	wmRButtonUp     = 0x0205
	wmRButtonDblClk = 0x0206
	wmMButtonDown   = 0x0207
	wmMButtonUp     = 0x0208
	wmMButtonDblClk = 0x0209
)

var (
	origWndProc uintptr
	onTrayEvent func(Event)
)

// eventFromMessage decodes the lParam of a tray callback message.
func eventFromMessage(lParam uintptr) (Event, bool) {
	switch lParam {
	case wmMouseMove:
		return Event{Kind: KindMove}, true
	case wmLButtonDown:
		return Event{Kind: KindClick, Button: ButtonLeft, State: StateDown}, true
	case wmLButtonUp:
		return Event{Kind: KindClick, Button: ButtonLeft, State: StateUp}, true
	case wmLButtonDblClk:
		return Event{Kind: KindDoubleClick, Button: ButtonLeft}, true
	case wmRButtonDown:
		return Event{Kind: KindClick, Button: ButtonRight, State: StateDown}, true
	case wmRButtonUp:
		return Event{Kind: KindClick, Button: ButtonRight, State: StateUp}, true
	case wmRButtonDblClk:
		return Event{Kind: KindDoubleClick, Button: ButtonRight}, true
	case wmMButtonDown:
		return Event{Kind: KindClick, Button: ButtonMiddle, State: StateDown}, true
	case wmMButtonUp:
		return Event{Kind: KindClick, Button: ButtonMiddle, State: StateUp}, true
	case wmMButtonDblClk:
		return Event{Kind: KindDoubleClick, Button: ButtonMiddle}, true
	}
	return Event{}, false
}

// traySubclassProc replaces the window procedure of the hidden systray window.
// Left-button messages are reported and swallowed so the menu only opens on
// right click; everything else reaches the previous window procedure.
func traySubclassProc(hWnd uintptr, msg uint32, wParam, lParam uintptr) uintptr {
	if msg == wmSystrayMsg {
		if ev, ok := eventFromMessage(lParam); ok {
			if onTrayEvent != nil {
				go onTrayEvent(ev)
			}
			if ev.Button == ButtonLeft {
				return 0
			}
		}
	}
	ret, _, _ := pCallWindowProcW.Call(origWndProc, hWnd, uintptr(msg), wParam, lParam)
	return ret
}

// subclassSystray hooks the "SystrayClass" window created by systray-on-wails.
// It must run from the tray's ready callback, after that window exists.
func subclassSystray(fn func(Event)) {
	onTrayEvent = fn

	className, _ := windows.UTF16PtrFromString("SystrayClass")
	hwnd, _, _ := pFindWindowW.Call(uintptr(unsafe.Pointer(className)), 0)
	if hwnd == 0 {
		return
	}

	cb := syscall.NewCallback(traySubclassProc)
	// GWLP_WNDPROC = -4
	origWndProc = callSetWindowLongPtr(hwnd, ^uintptr(3), cb)
}

// callSetWindowLongPtr calls SetWindowLongPtrW, which only exists in 64-bit
// user32.dll, or SetWindowLongW on 32-bit systems.
func callSetWindowLongPtr(hwnd, index, newLong uintptr) uintptr {
	if pSetWindowLongPtrW.Find() == nil {
		ret, _, _ := pSetWindowLongPtrW.Call(hwnd, index, newLong)
		return ret
	}
	ret, _, _ := pSetWindowLongW.Call(hwnd, index, newLong)
	return ret
}
