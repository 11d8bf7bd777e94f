//go:build darwin && !stub

package hotkey

import "golang.design/x/hotkey"

// kVK_ANSI_Backslash
const keyBackslash = hotkey.Key(0x2A)
