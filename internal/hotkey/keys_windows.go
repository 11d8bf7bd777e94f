//go:build windows && !stub

package hotkey

import "golang.design/x/hotkey"

// VK_OEM_5, the \| key on US layouts.
const keyBackslash = hotkey.Key(0xDC)
