//go:build !stub

package hotkey

import (
	"sync"

	"golang.design/x/hotkey"
)

// xBinding adapts golang.design/x/hotkey to Binding.
type xBinding struct {
	hk      *hotkey.Hotkey
	keydown chan Event

	mu   sync.Mutex
	stop chan struct{}
}

// NewToggleBinding returns the Control+Backslash binding.
func NewToggleBinding() Binding {
	return &xBinding{
		hk:      hotkey.New([]hotkey.Modifier{hotkey.ModCtrl}, keyBackslash),
		keydown: make(chan Event),
	}
}

func (b *xBinding) Register() error {
	if err := b.hk.Register(); err != nil {
		return err
	}
	b.mu.Lock()
	b.stop = make(chan struct{})
	stop := b.stop
	b.mu.Unlock()

	go b.forward(b.hk.Keydown(), stop)
	return nil
}

func (b *xBinding) Unregister() error {
	b.mu.Lock()
	if b.stop != nil {
		close(b.stop)
		b.stop = nil
	}
	b.mu.Unlock()
	return b.hk.Unregister()
}

func (b *xBinding) Keydown() <-chan Event {
	return b.keydown
}

func (b *xBinding) forward(src <-chan hotkey.Event, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case _, ok := <-src:
			if !ok {
				return
			}
			select {
			case b.keydown <- Event{}:
			case <-stop:
				return
			}
		}
	}
}
