// Package cli provides CLI commands using Bubble Tea TUI.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/bnema/schemewatch/internal/bootstrap"
	"github.com/bnema/schemewatch/internal/cli/styles"
	"github.com/bnema/schemewatch/internal/domain/build"
	"github.com/bnema/schemewatch/internal/infrastructure/colorscheme"
	"github.com/bnema/schemewatch/internal/infrastructure/config"
	"github.com/bnema/schemewatch/internal/logging"
	pkgcs "github.com/bnema/schemewatch/pkg/colorscheme"
)

// Options control how NewApp sets up logging.
type Options struct {
	// LogToFile sends logs to the XDG state log file instead of stderr.
	// Used by full-screen commands so log lines do not corrupt the TUI.
	LogToFile bool
}

// App holds CLI dependencies.
type App struct {
	Config    *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info

	Resolver *colorscheme.Resolver
	Host     *colorscheme.DesktopHost
	Monitor  *colorscheme.Monitor

	stack      bootstrap.ColorSchemeStack
	ctx        context.Context
	logCleanup func()
}

// NewApp creates a new CLI application with all dependencies.
func NewApp(opts Options) (*App, error) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("create config manager: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	logCfg := logging.Config{
		Level:      logging.ParseLevel(cfg.Logging.Level),
		Format:     cfg.Logging.Format,
		TimeFormat: "15:04:05",
	}
	logger, logCleanup, err := newLogger(logCfg, opts)
	if err != nil {
		return nil, err
	}
	ctx := logging.WithContext(context.Background(), logger)

	stack := bootstrap.BuildColorSchemeStack(bootstrap.ColorSchemeStackInput{
		Ctx:     ctx,
		Manager: mgr,
	})

	return &App{
		Config:     mgr,
		Theme:      styles.ThemeFor(schemeOf(stack)),
		Resolver:   stack.Resolver,
		Host:       stack.Host,
		Monitor:    stack.Monitor,
		stack:      stack,
		ctx:        ctx,
		logCleanup: logCleanup,
	}, nil
}

func newLogger(cfg logging.Config, opts Options) (zerolog.Logger, func(), error) {
	if !opts.LogToFile {
		return logging.NewWithWriter(cfg, os.Stderr), func() {}, nil
	}

	path, err := config.GetLogFile()
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("resolve log file: %w", err)
	}
	cfg.Format = "json"
	logger, cleanup, err := logging.NewWithFile(cfg, path)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	return logger, cleanup, nil
}

// schemeOf reads the resolved preference without going through a Hook.
func schemeOf(stack bootstrap.ColorSchemeStack) pkgcs.Scheme {
	return pkgcs.FromMatches(stack.Resolver.Current().PrefersDark)
}

// Close releases all resources.
func (a *App) Close() error {
	err := a.stack.Close()
	if a.logCleanup != nil {
		a.logCleanup()
	}
	return err
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}
