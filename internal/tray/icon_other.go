//go:build !windows

package tray

// platformIcon returns the PNG unchanged; macOS and Linux trays take PNG.
func platformIcon(png []byte) []byte {
	return png
}
