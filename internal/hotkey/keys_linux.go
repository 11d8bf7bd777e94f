//go:build linux && !stub

package hotkey

import "golang.design/x/hotkey"

// XK_backslash keysym.
const keyBackslash = hotkey.Key(0x5C)
