package window

import "errors"

// Visibility is the controller's view of the managed window.
type Visibility int

const (
	Hidden Visibility = iota
	Shown
)

func (v Visibility) String() string {
	if v == Shown {
		return "shown"
	}
	return "hidden"
}

// Intent is a normalized user action delivered by one of the input surfaces.
type Intent int

const (
	ToggleRequested Intent = iota + 1
	QuitRequested
	CloseRequested
	// ShowRequested summons the window without toggling (second instance launch).
	ShowRequested
)

func (i Intent) String() string {
	switch i {
	case ToggleRequested:
		return "ToggleRequested"
	case QuitRequested:
		return "QuitRequested"
	case CloseRequested:
		return "CloseRequested"
	case ShowRequested:
		return "ShowRequested"
	default:
		return "Unknown"
	}
}

// ErrVisibilityUnknown is returned by a Window that cannot tell whether it is shown.
var ErrVisibilityUnknown = errors.New("window visibility unknown")

// Window is the part of the host toolkit the controller drives.
// Implementations hold a non-owning reference to the single managed window.
type Window interface {
	Show() error
	Hide() error
	Focus() error
	IsVisible() (bool, error)
}

// CloseEvent is a pending close request from the window manager.
type CloseEvent interface {
	PreventDefault()
}

// Transition describes a handled visibility change.
type Transition struct {
	From  Visibility
	To    Visibility
	Cause Intent
}
