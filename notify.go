package main

import (
	"github.com/gen2brain/beeep"

	"closechat/internal/hotkey"
)

const hideNotice = appName + " is still running in the tray. Press " + hotkey.Label + " or click the tray icon to open it."

// notifyDesktop shows a system notification under beeep.AppName.
func notifyDesktop(title, message string) error {
	return beeep.Notify(title, message, "")
}
