// Package tray owns the notification-area icon, its tooltip and context menu,
// and turns raw tray events into window intents.
package tray

import (
	"log/slog"
	"sync"

	"closechat/internal/window"
)

// Tooltip is shown when hovering the tray icon.
const Tooltip = "Close Chat"

// MenuItemID identifies a context menu entry.
type MenuItemID string

const (
	ItemShowHide MenuItemID = "show_hide"
	ItemQuit     MenuItemID = "quit"
)

// MenuItem is one labeled context menu entry.
type MenuItem struct {
	ID    MenuItemID
	Label string
	Hint  string
}

// Menu lists the context menu entries in order; a separator sits between them.
var Menu = []MenuItem{
	{ID: ItemShowHide, Label: "Show / Hide", Hint: "Show or hide the chat window"},
	{ID: ItemQuit, Label: "Quit", Hint: "Quit Close Chat"},
}

// MouseButton is the button involved in a tray icon event.
type MouseButton int

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

// ButtonState is the phase of a button event.
type ButtonState int

const (
	StateNone ButtonState = iota
	StateDown
	StateUp
)

// EventKind separates clicks from the other notifications a tray icon gets.
type EventKind int

const (
	KindClick EventKind = iota
	KindDoubleClick
	KindMove
)

// Event is a raw tray icon event as reported by the platform.
type Event struct {
	Kind   EventKind
	Button MouseButton
	State  ButtonState
}

// Translate maps a raw icon event to an intent. Only a left click firing on
// button release toggles the window; every other event is ignored.
func Translate(ev Event) (window.Intent, bool) {
	if ev.Kind == KindClick && ev.Button == ButtonLeft && ev.State == StateUp {
		return window.ToggleRequested, true
	}
	return 0, false
}

// TranslateMenu maps a menu selection to an intent.
func TranslateMenu(id MenuItemID) (window.Intent, bool) {
	switch id {
	case ItemShowHide:
		return window.ToggleRequested, true
	case ItemQuit:
		return window.QuitRequested, true
	}
	return 0, false
}

// Host is the platform tray facility.
type Host interface {
	// Register installs the tray and calls onReady once it can be populated.
	Register(onReady func())
	SetIcon(png []byte)
	SetTooltip(tooltip string)
	AddItem(label, hint string) <-chan struct{}
	AddSeparator()
	// WatchClicks reports raw icon clicks where the platform delivers them.
	WatchClicks(fn func(Event))
	Quit()
}

// Surface is the live tray icon. It must stay referenced for the lifetime of
// the process; dropping the host removes the icon on several platforms.
type Surface struct {
	host   Host
	emit   func(window.Intent)
	logger *slog.Logger

	stopCh chan struct{}
	once   sync.Once
	ready  chan struct{}
}

// New returns a tray surface that hands intents to emit.
func New(host Host, emit func(window.Intent), logger *slog.Logger) *Surface {
	if logger == nil {
		logger = slog.Default()
	}
	return &Surface{
		host:   host,
		emit:   emit,
		logger: logger,
		stopCh: make(chan struct{}),
		ready:  make(chan struct{}),
	}
}

// Start installs the icon, tooltip and menu. icon must already be validated
// with LoadIcon.
func (s *Surface) Start(icon []byte) error {
	if len(icon) == 0 {
		return ErrInvalidIcon
	}
	s.host.Register(func() {
		s.host.SetIcon(icon)
		s.host.SetTooltip(Tooltip)

		clicks := make([]<-chan struct{}, len(Menu))
		for i, item := range Menu {
			if i > 0 {
				s.host.AddSeparator()
			}
			clicks[i] = s.host.AddItem(item.Label, item.Hint)
		}
		s.host.WatchClicks(s.HandleClick)

		go s.menuLoop(clicks[0], clicks[1])
		close(s.ready)
		s.logger.Info("tray ready")
	})
	return nil
}

// Ready is closed once the tray has been populated.
func (s *Surface) Ready() <-chan struct{} {
	return s.ready
}

func (s *Surface) menuLoop(showHide, quit <-chan struct{}) {
	for {
		select {
		case <-s.stopCh:
			return
		case <-showHide:
			s.HandleMenu(ItemShowHide)
		case <-quit:
			s.HandleMenu(ItemQuit)
		}
	}
}

// HandleMenu forwards a menu selection.
func (s *Surface) HandleMenu(id MenuItemID) {
	in, ok := TranslateMenu(id)
	if !ok {
		s.logger.Debug("unknown tray menu item", "id", id)
		return
	}
	s.logger.Debug("tray menu selected", "id", id, "intent", in)
	s.emit(in)
}

// HandleClick forwards a raw icon event if it carries an intent.
func (s *Surface) HandleClick(ev Event) {
	if in, ok := Translate(ev); ok {
		s.logger.Debug("tray icon clicked", "intent", in)
		s.emit(in)
	}
}

// Stop ends menu dispatch and removes the icon.
func (s *Surface) Stop() {
	s.once.Do(func() {
		close(s.stopCh)
		s.host.Quit()
	})
}
