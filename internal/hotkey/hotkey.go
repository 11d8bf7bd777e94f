// Package hotkey registers the global Control+Backslash shortcut that toggles
// the chat window.
package hotkey

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"closechat/internal/window"
)

// Label is the human readable form of the toggle shortcut.
const Label = "Ctrl+\\"

// ErrRegister wraps registration failures; startup aborts on it.
var ErrRegister = errors.New("register global hotkey")

// Event is one press of a binding.
type Event struct{}

// Binding is one global shortcut registration.
type Binding interface {
	Register() error
	Unregister() error
	Keydown() <-chan Event
}

// Surface dispatches every press of its binding as a toggle request.
type Surface struct {
	binding Binding
	emit    func(window.Intent)
	logger  *slog.Logger

	mu      sync.Mutex
	started bool
	done    chan struct{}
	stop    sync.Once
}

// New returns a hotkey surface for b. emit must be safe to call from the
// listener goroutine; the window controller's Submit is.
func New(b Binding, emit func(window.Intent), logger *slog.Logger) *Surface {
	if logger == nil {
		logger = slog.Default()
	}
	return &Surface{
		binding: b,
		emit:    emit,
		logger:  logger,
		done:    make(chan struct{}),
	}
}

// Start registers the shortcut and begins listening. It may only succeed once.
func (s *Surface) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return fmt.Errorf("%w: already registered", ErrRegister)
	}
	if err := s.binding.Register(); err != nil {
		return fmt.Errorf("%w %s: %v", ErrRegister, Label, err)
	}
	s.started = true
	s.logger.Info("global hotkey registered", "hotkey", Label)

	go s.listen(s.binding.Keydown())
	return nil
}

func (s *Surface) listen(keydown <-chan Event) {
	for {
		select {
		case <-s.done:
			return
		case _, ok := <-keydown:
			if !ok {
				return
			}
			s.logger.Debug("hotkey pressed", "hotkey", Label)
			s.emit(window.ToggleRequested)
		}
	}
}

// Stop unregisters the shortcut. It is safe to call more than once.
func (s *Surface) Stop() {
	s.stop.Do(func() {
		close(s.done)
		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.started {
			return
		}
		if err := s.binding.Unregister(); err != nil {
			s.logger.Warn("unregister global hotkey failed", "error", err)
		}
	})
}
