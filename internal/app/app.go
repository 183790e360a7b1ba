package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/five82/crumb/internal/config"
	"github.com/five82/crumb/internal/logging"
	"github.com/five82/crumb/internal/mealdb"
	"github.com/five82/crumb/internal/prefs"
	"github.com/five82/crumb/internal/ui"
)

// Options configure the crumb application. Non-empty overrides take
// precedence over the config file and environment.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/crumb/prefs.toml
	Category   string
	BaseURL    string
	LogStderr  bool // one-shot CLI modes log to stderr, never to the log file
}

// Env is the set of dependencies shared by every mode.
type Env struct {
	Config config.Config
	Client *mealdb.Client
	Log    *logrus.Logger
	close  func() error
}

// Close flushes and releases the log file.
func (e *Env) Close() error {
	if e == nil || e.close == nil {
		return nil
	}
	return e.close()
}

// Setup loads configuration, applies overrides and builds the logger and
// API client.
func Setup(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.Category); v != "" {
		cfg.Category = v
	}
	if v := strings.TrimSpace(opts.BaseURL); v != "" {
		cfg.BaseURL = v
	}
	if opts.LogStderr {
		cfg.LogFile = config.StderrLogFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	client, err := mealdb.NewClient(cfg.BaseURL,
		mealdb.WithTimeout(cfg.RequestTimeout),
		mealdb.WithLogger(logger),
	)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("init recipe client: %w", err)
	}

	return &Env{Config: cfg, Client: client, Log: logger, close: closeLog}, nil
}

// Run boots the crumb TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Setup(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		env.Log.WithError(err).Warn("load preferences failed, using defaults")
	}

	env.Log.WithFields(logrus.Fields{
		"base_url": env.Client.BaseURL(),
		"category": env.Config.Category,
		"theme":    userPrefs.Theme,
	}).Info("starting browser")

	err = ui.Run(ui.Options{
		Context:   ctx,
		Source:    env.Client,
		Category:  env.Config.Category,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
		LogPath:   env.Config.LogFile,
		Logger:    env.Log,
	})
	if err != nil {
		env.Log.WithError(err).Error("browser exited with error")
		return fmt.Errorf("run ui: %w", err)
	}
	env.Log.Info("browser closed")
	return nil
}
