package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gen2brain/beeep"
	"github.com/wailsapp/wails/v2/pkg/options"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"closechat/config"
	"closechat/internal/hotkey"
	"closechat/internal/logging"
	"closechat/internal/tray"
	"closechat/internal/window"
)

//go:embed icons/32x32.png
var embeddedTrayIcon []byte

// appWindow is everything the shell needs from the main window.
type appWindow interface {
	window.Window
	window.Placer
}

// surfaces are the toolkit facilities boot drives. startup fills them from
// Wails; tests pass fakes.
type surfaces struct {
	window appWindow
	tray   tray.Host
	hotkey hotkey.Binding
	emit   func(event string, data ...interface{})
	notify func(title, message string) error
	quit   func()
}

// DesktopApp is the Wails application binding struct.
// Methods on this struct are exposed to the frontend via window.go.main.DesktopApp.
type DesktopApp struct {
	ctx    context.Context
	cfg    atomic.Pointer[config.AppConfig]
	logger *slog.Logger

	controller atomic.Pointer[window.Controller]
	tray       *tray.Surface // kept for the process lifetime
	hotkey     *hotkey.Surface
	watcher    *config.Watcher
	stopLoop   context.CancelFunc

	emit    func(event string, data ...interface{})
	notify  func(title, message string) error
	quitApp func()

	quitting   atomic.Bool
	exitCode   atomic.Int32
	hideNotice sync.Once
}

// NewDesktopApp creates a new DesktopApp instance.
func NewDesktopApp(cfg *config.AppConfig, logger *slog.Logger) *DesktopApp {
	if logger == nil {
		logger = slog.Default()
	}
	a := &DesktopApp{logger: logger}
	a.cfg.Store(cfg)
	return a
}

// closeRequest is the close event handed to the controller from OnBeforeClose.
type closeRequest struct {
	prevented bool
}

func (r *closeRequest) PreventDefault() { r.prevented = true }

// startup is called when the Wails app starts.
func (a *DesktopApp) startup(ctx context.Context) {
	a.ctx = ctx
	beeep.AppName = appName

	s := surfaces{
		window: newWailsWindow(ctx, appName),
		tray:   tray.NewSystrayHost(),
		hotkey: hotkey.NewToggleBinding(),
		emit: func(event string, data ...interface{}) {
			wailsRuntime.EventsEmit(ctx, event, data...)
		},
		notify: notifyDesktop,
		quit:   func() { wailsRuntime.Quit(ctx) },
	}
	if err := a.boot(ctx, s); err != nil {
		a.fail(err)
	}
}

// boot runs the startup sequence: placement, initial show, tray, hotkey.
// Any error is fatal for the process.
func (a *DesktopApp) boot(ctx context.Context, s surfaces) error {
	a.emit = s.emit
	a.notify = s.notify
	a.quitApp = s.quit

	cfg := a.cfg.Load()
	window.PlaceBottomRight(s.window, cfg.Window.Width, cfg.Window.Height, a.logger)

	c := window.NewController(s.window, a.quit,
		window.WithLogger(a.logger),
		window.WithObserver(a.onTransition))

	if err := s.window.Show(); err != nil {
		a.logger.Error("initial show failed", "error", err)
	}

	loopCtx, cancel := context.WithCancel(ctx)
	a.stopLoop = cancel
	go c.Run(loopCtx)
	a.controller.Store(c)

	icon, err := tray.LoadIcon(tray.IconPath, embeddedTrayIcon, a.logger)
	if err != nil {
		return fmt.Errorf("tray: %w", err)
	}
	a.tray = tray.New(s.tray, c.Submit, a.logger)
	if err := a.tray.Start(icon); err != nil {
		return fmt.Errorf("tray: %w", err)
	}

	a.hotkey = hotkey.New(s.hotkey, c.Submit, a.logger)
	if err := a.hotkey.Start(); err != nil {
		return err
	}

	a.logger.Info("shell ready", "hotkey", hotkey.Label)
	return nil
}

// onDomReady is called when the frontend DOM is fully loaded.
func (a *DesktopApp) onDomReady(ctx context.Context) {
	a.logger.Debug("dom ready")
}

// beforeClose turns a window close into a hide. Only a close issued by quit
// is let through.
func (a *DesktopApp) beforeClose(ctx context.Context) bool {
	if a.quitting.Load() {
		return false
	}
	c := a.controller.Load()
	if c == nil {
		// Not booted yet; keep the window until the tray exists.
		return true
	}
	req := &closeRequest{}
	c.RequestClose(req)
	return req.prevented
}

// quit ends the process with code. Only the first call decides the exit
// code. Quit may call back into OnBeforeClose synchronously, so it is never
// invoked on the caller's goroutine.
func (a *DesktopApp) quit(code int) {
	if !a.quitting.CompareAndSwap(false, true) {
		return
	}
	a.exitCode.Store(int32(code))
	a.logger.Info("quitting", "code", code)
	if a.quitApp != nil {
		go a.quitApp()
	}
}

func (a *DesktopApp) fail(err error) {
	a.logger.Error("startup failed", "error", err)
	if errors.Is(err, hotkey.ErrRegister) {
		a.logger.Error("another program may already own the shortcut", "hotkey", hotkey.Label)
	}
	a.quit(1)
}

// ExitCode is the status main should exit with once Wails returns.
func (a *DesktopApp) ExitCode() int {
	return int(a.exitCode.Load())
}

// shutdown is called when the Wails app is closing.
func (a *DesktopApp) shutdown(ctx context.Context) {
	if a.hotkey != nil {
		a.hotkey.Stop()
	}
	if a.tray != nil {
		a.tray.Stop()
	}
	if c := a.controller.Load(); c != nil {
		c.Stop()
	}
	if a.stopLoop != nil {
		a.stopLoop()
	}
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.logger.Warn("close config watcher failed", "error", err)
		}
	}
	a.logger.Info("shutdown complete", "code", a.ExitCode())
}

// onSecondInstanceLaunch summons the running window instead of starting a
// second shell.
func (a *DesktopApp) onSecondInstanceLaunch(data options.SecondInstanceData) {
	a.logger.Info("second instance launched", "args", data.Args, "dir", data.WorkingDirectory)
	if c := a.controller.Load(); c != nil {
		go c.Submit(window.ShowRequested)
	}
}

// watchConfig applies reloaded settings. The log level follows the file
// unless it was pinned on the command line.
func (a *DesktopApp) watchConfig(w *config.Watcher, followLevel bool) {
	a.watcher = w
	w.OnReload(func(cfg *config.AppConfig) {
		a.cfg.Store(cfg)
		if followLevel {
			logging.SetLevel(cfg.Logging.Level)
		}
	})
}

func (a *DesktopApp) onTransition(t window.Transition) {
	if a.emit != nil {
		a.emit(EventWindowVisibility, t.To.String())
	}
	if t.Cause != window.CloseRequested || t.To != window.Hidden {
		return
	}
	if !a.cfg.Load().IsNotifyOnHide() || a.notify == nil {
		return
	}
	a.hideNotice.Do(func() {
		go func() {
			if err := a.notify(appName, hideNotice); err != nil {
				a.logger.Warn("hide notice failed", "error", err)
			}
		}()
	})
}

// GetAppInfo returns application info for the frontend.
func (a *DesktopApp) GetAppInfo() map[string]interface{} {
	return map[string]interface{}{
		"name":    appName,
		"version": Version,
		"hotkey":  hotkey.Label,
	}
}
