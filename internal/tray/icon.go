package tray

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"os"
)

// IconPath is the on-disk tray icon, relative to the working directory.
const IconPath = "icons/32x32.png"

// ErrInvalidIcon is returned when no usable PNG icon is available.
var ErrInvalidIcon = errors.New("invalid tray icon")

// LoadIcon returns the PNG at path if it is readable and decodes, and the
// embedded copy otherwise. Only a broken embedded copy is an error.
func LoadIcon(path string, embedded []byte, logger *slog.Logger) ([]byte, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if data, err := os.ReadFile(path); err != nil {
		logger.Info("tray icon file unavailable, using embedded icon", "path", path, "error", err)
	} else if err := validatePNG(data); err != nil {
		logger.Warn("tray icon file is not a valid PNG, using embedded icon", "path", path, "error", err)
	} else {
		return data, nil
	}

	if err := validatePNG(embedded); err != nil {
		return nil, fmt.Errorf("embedded tray icon: %w: %v", ErrInvalidIcon, err)
	}
	return embedded, nil
}

func validatePNG(data []byte) error {
	if len(data) == 0 {
		return errors.New("empty image")
	}
	_, err := png.Decode(bytes.NewReader(data))
	return err
}
