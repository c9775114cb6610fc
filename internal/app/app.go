// Package app wires the backend together: configuration, logging, the
// workspace store, the execution runner, and the API server.
package app

import (
	"context"
	"fmt"

	"github.com/codepadhq/codepad/internal/config"
	"github.com/codepadhq/codepad/internal/runner"
	"github.com/codepadhq/codepad/internal/server"
	"github.com/codepadhq/codepad/internal/workspace"
)

// Options are the command-line level settings.
type Options struct {
	// ConfigPath is the TOML config file. Empty means defaults plus
	// environment.
	ConfigPath string

	// WatchConfig enables live reload of the config file.
	WatchConfig bool
}

// App is the assembled backend.
type App struct {
	cfg     config.Config
	log     *Logger
	server  *server.Server
	watcher *config.Watcher
	opts    Options
}

// New loads configuration and assembles the application.
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	log := NewLogger(nil, ParseLogLevel(cfg.LogLevel))

	files, err := workspace.NewStore(cfg.Workspace)
	if err != nil {
		return nil, fmt.Errorf("opening workspace: %w", err)
	}

	run := runner.New(
		runner.WithTimeout(cfg.ExecTimeout()),
		runner.WithLogger(log.WithComponent("runner")),
	)

	srv := server.New(files, run,
		server.WithLogger(log.WithComponent("server")),
		server.WithCSRFToken(cfg.CSRFToken),
	)

	return &App{
		cfg:    cfg,
		log:    log,
		server: srv,
		opts:   opts,
	}, nil
}

// Config returns the loaded configuration.
func (a *App) Config() config.Config {
	return a.cfg
}

// Logger returns the application logger.
func (a *App) Logger() *Logger {
	return a.log
}

// Run serves the API until the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a.opts.WatchConfig && a.opts.ConfigPath != "" {
		w, err := config.NewWatcher(a.opts.ConfigPath,
			func(cfg config.Config) {
				// Only the log level can change without a restart.
				a.log.SetLevel(ParseLogLevel(cfg.LogLevel))
				a.log.Info("configuration reloaded")
			},
			func(err error) {
				a.log.Warn("config reload: %v", err)
			},
		)
		if err != nil {
			a.log.Warn("config watcher unavailable: %v", err)
		} else {
			a.watcher = w
			defer a.watcher.Close()
		}
	}

	a.log.Info("workspace: %s", a.cfg.Workspace)
	return a.server.ListenAndServe(ctx, a.cfg.Listen)
}
