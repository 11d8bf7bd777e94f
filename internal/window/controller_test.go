package window

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindow records toolkit calls and tracks visibility like a real window.
type fakeWindow struct {
	mu        sync.Mutex
	visible   bool
	unknown   bool
	failShow  bool
	failHide  bool
	calls     []string
	prevented int
	exitCodes []int
}

func (w *fakeWindow) Show() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, "show")
	if w.failShow {
		return errors.New("show failed")
	}
	w.visible = true
	w.unknown = false
	return nil
}

func (w *fakeWindow) Hide() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, "hide")
	if w.failHide {
		return errors.New("hide failed")
	}
	w.visible = false
	w.unknown = false
	return nil
}

func (w *fakeWindow) Focus() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, "focus")
	return nil
}

func (w *fakeWindow) IsVisible() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.unknown {
		return false, ErrVisibilityUnknown
	}
	return w.visible, nil
}

func (w *fakeWindow) PreventDefault() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.prevented++
	w.calls = append(w.calls, "prevent_default")
}

func (w *fakeWindow) exit(code int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.exitCodes = append(w.exitCodes, code)
	w.calls = append(w.calls, "exit")
}

func (w *fakeWindow) snapshot() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.calls...)
}

func (w *fakeWindow) reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = nil
}

func (w *fakeWindow) state() Visibility {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.visible {
		return Shown
	}
	return Hidden
}

// started mirrors application startup: the window is shown once after placement.
func started(t *testing.T) (*fakeWindow, *Controller) {
	t.Helper()
	w := &fakeWindow{}
	c := NewController(w, w.exit)
	require.NoError(t, w.Show())
	return w, c
}

func TestToggleIsSelfInverse(t *testing.T) {
	for _, initial := range []Visibility{Shown, Hidden} {
		t.Run(initial.String(), func(t *testing.T) {
			w := &fakeWindow{visible: initial == Shown}
			c := NewController(w, w.exit)

			c.Handle(ToggleRequested)
			assert.NotEqual(t, initial, w.state())
			c.Handle(ToggleRequested)
			assert.Equal(t, initial, w.state())
			assert.Empty(t, w.exitCodes)
		})
	}
}

func TestSummonFocusesAfterShow(t *testing.T) {
	w := &fakeWindow{}
	c := NewController(w, w.exit)

	for i := 0; i < 3; i++ {
		w.reset()
		c.Handle(ToggleRequested)
		assert.Equal(t, []string{"show", "focus"}, w.snapshot())
		c.Handle(ToggleRequested)
	}
}

func TestFocusFollowsShowEvenWhenShowFails(t *testing.T) {
	w := &fakeWindow{failShow: true}
	c := NewController(w, w.exit)

	c.Handle(ToggleRequested)

	assert.Equal(t, []string{"show", "focus"}, w.snapshot())
	assert.Equal(t, Hidden, w.state())
}

func TestCloseNeverExits(t *testing.T) {
	w, c := started(t)
	w.reset()

	for i := 0; i < 5; i++ {
		c.RequestClose(w)
		c.Handle(<-c.intents)
	}

	assert.Empty(t, w.exitCodes)
	assert.Equal(t, 5, w.prevented)
	hides := 0
	for _, call := range w.snapshot() {
		if call == "hide" {
			hides++
		}
	}
	assert.Equal(t, 5, hides)
	assert.Equal(t, Hidden, w.state())
}

func TestQuitIsTheOnlyExit(t *testing.T) {
	sequences := map[string][]Intent{
		"toggles":          {ToggleRequested, ToggleRequested, ToggleRequested},
		"closes":           {CloseRequested, CloseRequested},
		"mixed":            {ToggleRequested, CloseRequested, ShowRequested, ToggleRequested},
		"quit":             {QuitRequested},
		"quit after other": {ToggleRequested, CloseRequested, QuitRequested},
	}
	for name, seq := range sequences {
		t.Run(name, func(t *testing.T) {
			w, c := started(t)
			quit := false
			for _, in := range seq {
				quit = quit || in == QuitRequested
				c.Handle(in)
			}
			if quit {
				assert.Equal(t, []int{0}, w.exitCodes)
			} else {
				assert.Empty(t, w.exitCodes)
			}
		})
	}
}

func TestIntentsAfterQuitAreIgnored(t *testing.T) {
	w, c := started(t)
	w.reset()

	c.Handle(QuitRequested)
	c.Handle(ToggleRequested)
	c.Handle(QuitRequested)

	assert.Equal(t, []string{"exit"}, w.snapshot())
	assert.Equal(t, []int{0}, w.exitCodes)
}

func TestUnknownVisibilitySummons(t *testing.T) {
	w := &fakeWindow{visible: true, unknown: true}
	c := NewController(w, w.exit)

	c.Handle(ToggleRequested)

	assert.Equal(t, []string{"show", "focus"}, w.snapshot())
}

func TestFailedHideKeepsReadingRealState(t *testing.T) {
	w, c := started(t)
	w.failHide = true

	c.Handle(ToggleRequested)
	assert.Equal(t, Shown, w.state())

	w.failHide = false
	w.reset()
	c.Handle(ToggleRequested)
	assert.Equal(t, []string{"hide"}, w.snapshot())
	assert.Equal(t, Hidden, w.state())
}

func TestShowRequestedOnShownWindowOnlyFocuses(t *testing.T) {
	w, c := started(t)
	w.reset()

	c.Handle(ShowRequested)

	assert.Equal(t, []string{"focus"}, w.snapshot())
	assert.Equal(t, Shown, w.state())
}

func TestObserverSeesTransitions(t *testing.T) {
	w := &fakeWindow{visible: true}
	var got []Transition
	c := NewController(w, w.exit, WithObserver(func(tr Transition) { got = append(got, tr) }))

	c.Handle(ToggleRequested)
	c.Handle(ToggleRequested)
	c.Handle(CloseRequested)

	assert.Equal(t, []Transition{
		{From: Shown, To: Hidden, Cause: ToggleRequested},
		{From: Hidden, To: Shown, Cause: ToggleRequested},
		{From: Shown, To: Hidden, Cause: CloseRequested},
	}, got)
}

func TestIntentSequences(t *testing.T) {
	tests := []struct {
		name     string
		intents  []Intent
		closes   int
		want     []string
		terminal Visibility
	}{
		{
			name:     "toggle twice",
			intents:  []Intent{ToggleRequested, ToggleRequested},
			want:     []string{"show", "hide", "show", "focus"},
			terminal: Shown,
		},
		{
			name:     "close hides",
			closes:   1,
			want:     []string{"show", "prevent_default", "hide"},
			terminal: Hidden,
		},
		{
			name:     "close then toggle",
			closes:   1,
			intents:  []Intent{ToggleRequested},
			want:     []string{"show", "prevent_default", "hide", "show", "focus"},
			terminal: Shown,
		},
		{
			name:     "toggle then quit",
			intents:  []Intent{ToggleRequested, QuitRequested},
			want:     []string{"show", "hide", "exit"},
			terminal: Hidden,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, c := started(t)
			for i := 0; i < tt.closes; i++ {
				c.RequestClose(w)
				c.Handle(<-c.intents)
			}
			for _, in := range tt.intents {
				c.Handle(in)
			}
			assert.Equal(t, tt.want, w.snapshot())
			assert.Equal(t, tt.terminal, w.state())
		})
	}
}

func TestRunServicesIntentsInOrder(t *testing.T) {
	w, c := started(t)
	w.reset()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	c.Submit(ToggleRequested)
	c.Submit(ToggleRequested)
	c.RequestClose(w)

	require.Eventually(t, func() bool { return len(w.snapshot()) == 5 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"hide", "show", "focus", "prevent_default", "hide"}, w.snapshot())

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestConcurrentSubmitIsSerialized(t *testing.T) {
	w := &fakeWindow{visible: true}
	c := NewController(w, w.exit, WithQueueSize(1))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	const producers, perProducer = 4, 25
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				c.Submit(ToggleRequested)
			}
		}()
	}
	wg.Wait()

	// An even number of toggles brings the window back to where it started.
	require.Eventually(t, func() bool {
		n := 0
		for _, call := range w.snapshot() {
			if call == "hide" || call == "show" {
				n++
			}
		}
		return n == producers*perProducer
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, Shown, w.state())
}

func TestSubmitAfterStopDoesNotBlock(t *testing.T) {
	w := &fakeWindow{}
	c := NewController(w, w.exit, WithQueueSize(1))
	c.Stop()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			c.Submit(ToggleRequested)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Submit blocked on a stopped controller")
	}
}
