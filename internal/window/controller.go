package window

import (
	"context"
	"log/slog"
	"sync"
)

const defaultQueueSize = 16

// Controller owns the visibility policy of the managed window. Every intent is
// handled to completion before the next one starts, whatever goroutine it
// was produced on.
type Controller struct {
	window   Window
	exit     func(code int)
	logger   *slog.Logger
	observer func(Transition)

	mu       sync.Mutex
	quitting bool

	intents chan Intent
	stopped chan struct{}
	stop    sync.Once
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for toolkit failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver registers fn to be called after each visibility change.
func WithObserver(fn func(Transition)) Option {
	return func(c *Controller) { c.observer = fn }
}

// WithQueueSize sets how many intents may wait for the dispatch loop.
func WithQueueSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.intents = make(chan Intent, n)
		}
	}
}

// NewController returns a controller for w. exit is invoked with 0 on QuitRequested
// and is the only way the controller ends the process.
func NewController(w Window, exit func(code int), opts ...Option) *Controller {
	c := &Controller{
		window:  w,
		exit:    exit,
		logger:  slog.Default(),
		intents: make(chan Intent, defaultQueueSize),
		stopped: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit queues an intent for the dispatch loop. It is safe to call from any
// goroutine. It blocks while the queue is full and drops the intent once the
// controller has stopped.
func (c *Controller) Submit(in Intent) {
	select {
	case <-c.stopped:
		c.logger.Debug("controller stopped, intent dropped", "intent", in)
	case c.intents <- in:
	}
}

// RequestClose suppresses the default close action before returning and queues
// the hide for the dispatch loop.
func (c *Controller) RequestClose(ev CloseEvent) {
	ev.PreventDefault()
	c.Submit(CloseRequested)
}

// Run services queued intents in arrival order until ctx is done or Stop is called.
func (c *Controller) Run(ctx context.Context) {
	defer c.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.stopped:
			return
		case in := <-c.intents:
			c.Handle(in)
		}
	}
}

// Stop ends Run and makes further Submit calls no-ops.
func (c *Controller) Stop() {
	c.stop.Do(func() { close(c.stopped) })
}

// Handle applies one intent synchronously.
func (c *Controller) Handle(in Intent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.quitting {
		c.logger.Debug("quit in progress, intent ignored", "intent", in)
		return
	}

	switch in {
	case QuitRequested:
		c.quitting = true
		c.logger.Info("quit requested")
		c.exit(0)
	case ToggleRequested:
		if from := c.visibility(); from == Shown {
			c.hide(from, in)
		} else {
			c.show(from, in)
		}
	case CloseRequested:
		c.hide(c.visibility(), in)
	case ShowRequested:
		if from := c.visibility(); from == Shown {
			c.focus()
		} else {
			c.show(from, in)
		}
	default:
		c.logger.Warn("unknown intent", "intent", int(in))
	}
}

// visibility reads the window state at handling time. Unknown counts as Hidden
// so an uncertain toggle summons the window.
func (c *Controller) visibility() Visibility {
	visible, err := c.window.IsVisible()
	if err != nil {
		c.logger.Debug("visibility query failed, assuming hidden", "error", err)
		return Hidden
	}
	if visible {
		return Shown
	}
	return Hidden
}

func (c *Controller) show(from Visibility, cause Intent) {
	if err := c.window.Show(); err != nil {
		c.logger.Error("show window failed", "intent", cause, "error", err)
	}
	c.focus()
	c.notify(Transition{From: from, To: Shown, Cause: cause})
}

func (c *Controller) hide(from Visibility, cause Intent) {
	if err := c.window.Hide(); err != nil {
		c.logger.Error("hide window failed", "intent", cause, "error", err)
	}
	c.notify(Transition{From: from, To: Hidden, Cause: cause})
}

func (c *Controller) focus() {
	if err := c.window.Focus(); err != nil {
		c.logger.Error("focus window failed", "error", err)
	}
}

func (c *Controller) notify(t Transition) {
	c.logger.Debug("window transition", "from", t.From, "to", t.To, "intent", t.Cause)
	if c.observer != nil {
		c.observer(t)
	}
}
