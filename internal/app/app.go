package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/five82/piecebook/internal/config"
	"github.com/five82/piecebook/internal/locale"
	"github.com/five82/piecebook/internal/logging"
	"github.com/five82/piecebook/internal/pieces"
	"github.com/five82/piecebook/internal/prefs"
	"github.com/five82/piecebook/internal/ui"
)

// Options configure a piecebook session. Empty fields fall back to the
// config file, then to defaults.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses ~/.config/piecebook/prefs.toml
	Locale     string
	Theme      string
}

// Session holds the wired dependencies shared by the TUI and the headless
// commands.
type Session struct {
	Config  config.Config
	Logger  *slog.Logger
	Catalog *pieces.API
	Locale  locale.Locale

	closer io.Closer
}

// Setup loads configuration, opens the log file, and builds the API client.
func Setup(opts Options) (*Session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, closer, err := logging.New(logging.Options{Path: cfg.LogFile})
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	client, err := pieces.NewClient(cfg.BaseURL, cfg.RequestTimeout)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("init pieces client: %w", err)
	}

	lang := cfg.Locale
	if v := strings.TrimSpace(opts.Locale); v != "" {
		lang = v
	}

	logger.Info("session started",
		slog.String("base_url", client.BaseURL()),
		slog.String("locale", lang),
	)

	return &Session{
		Config:  cfg,
		Logger:  logger,
		Catalog: pieces.NewAPI(client, logger),
		Locale:  locale.New(lang),
		closer:  closer,
	}, nil
}

// Close flushes and closes the log file.
func (s *Session) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Run boots the TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	session, err := Setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = session.Close() }()

	userPrefs, _ := prefs.Load(opts.PrefsPath)
	theme := userPrefs.Theme
	if v := strings.TrimSpace(opts.Theme); v != "" {
		theme = v
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return ui.Run(ui.Options{
		Context:   ctx,
		Catalog:   session.Catalog,
		Locale:    session.Locale,
		ThemeName: theme,
		PrefsPath: prefsPath,
		Logger:    session.Logger,
	})
}
