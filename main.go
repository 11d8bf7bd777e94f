package main

import (
	"embed"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
	"github.com/wailsapp/wails/v2/pkg/options/windows"

	"closechat/config"
	"closechat/internal/logging"
)

const (
	appName = "Close Chat"
	// instanceID identifies the single-instance lock.
	instanceID = "closechat-4d1b7a52-9a0e-4f3c-8e61-2c5f0b7d9e18"
)

// Build information, set with -ldflags.
var (
	Version   = "0.1.0"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var (
	configPath  = flag.String("config", "", "config file path (default <data dir>/config.yaml)")
	logLevel    = flag.String("log-level", "", "log level override: debug, info, warn, error")
	showVersion = flag.Bool("version", false, "print version information")
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s\n", appName)
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Commit: %s\n", Commit)
		fmt.Printf("Built: %s\n", BuildTime)
		return 0
	}

	path := *configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	level := cfg.Logging.Level
	if *logLevel != "" {
		if !logging.ValidLevel(*logLevel) {
			fmt.Fprintf(os.Stderr, "Error: unknown log level %q\n", *logLevel)
			return 1
		}
		level = *logLevel
	}

	logger, logFile, err := logging.Init(config.DataPath("logs"), level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
		logger = logging.New(os.Stderr)
	} else {
		defer logFile.Close()
	}
	slog.SetDefault(logger)
	logger.Info("starting", "version", Version, "config", path, "level", level, "os", runtime.GOOS)

	app := NewDesktopApp(cfg, logger)
	if w, err := config.NewWatcher(path, logger); err != nil {
		logger.Debug("config hot reload disabled", "path", path, "error", err)
	} else {
		app.watchConfig(w, *logLevel == "")
	}

	err = wails.Run(&options.App{
		Title:       appName,
		Width:       cfg.Window.Width,
		Height:      cfg.Window.Height,
		StartHidden: true,

		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 255, G: 255, B: 255, A: 1},

		OnStartup:     app.startup,
		OnDomReady:    app.onDomReady,
		OnBeforeClose: app.beforeClose,
		OnShutdown:    app.shutdown,

		SingleInstanceLock: &options.SingleInstanceLock{
			UniqueId:               instanceID,
			OnSecondInstanceLaunch: app.onSecondInstanceLaunch,
		},

		Bind: []interface{}{
			app,
		},

		Mac: &mac.Options{
			About: &mac.AboutInfo{
				Title:   appName,
				Message: fmt.Sprintf("Version %s", Version),
				Icon:    embeddedTrayIcon,
			},
		},
		Windows: &windows.Options{
			WebviewIsTransparent: false,
			WindowIsTranslucent:  false,
			DisableWindowIcon:    false,
		},
		Linux: &linux.Options{
			Icon:        embeddedTrayIcon,
			ProgramName: "closechat",
		},
	})
	if err != nil {
		logger.Error("wails run failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return app.ExitCode()
}
