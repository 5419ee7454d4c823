package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/piecebook/internal/fsutil"
)

// Config captures everything piecebook needs to reach the pieces API.
type Config struct {
	BaseURL        string
	Locale         string
	LogFile        string
	RequestTimeout time.Duration
}

const (
	defaultConfigPath = "~/.config/piecebook/config.toml"
	defaultLogFile    = "~/.local/share/piecebook/piecebook.log"
	defaultBaseURL    = "https://piecesapi-e6ceaydmdfd0hghx.canadacentral-01.azurewebsites.net"
	defaultLocale     = "fr"
	defaultDotenv     = ".env"

	envBaseURL = "PIECEBOOK_BASE_URL"
	envLocale  = "PIECEBOOK_LOCALE"
)

// Defaults returns the configuration used when no file is present.
func Defaults() Config {
	return Config{
		BaseURL: defaultBaseURL,
		Locale:  defaultLocale,
		LogFile: fsutil.MustExpand(defaultLogFile),
	}
}

// Load locates and parses the piecebook config, falling back to defaults when
// missing. Values from a .env file in the working directory and from the
// environment override the file.
func Load(path string) (Config, error) {
	return load(path, defaultDotenv)
}

func load(path, dotenvPath string) (Config, error) {
	resolved, err := fsutil.ResolvePath(path, defaultConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg, err := readFile(resolved)
	if err != nil {
		return Config{}, err
	}
	if err := applyEnv(&cfg, dotenvPath); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(path string) (Config, error) {
	cfg := Defaults()

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL        string `toml:"base_url"`
		Locale         string `toml:"locale"`
		LogFile        string `toml:"log_file"`
		RequestTimeout string `toml:"request_timeout"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.BaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(raw.Locale); v != "" {
		cfg.Locale = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = fsutil.MustExpand(v)
	}
	if v := strings.TrimSpace(raw.RequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse request_timeout: %w", err)
		}
		if d < 0 {
			return Config{}, fmt.Errorf("request_timeout must not be negative")
		}
		cfg.RequestTimeout = d
	}
	return cfg, nil
}

// applyEnv overlays .env values, then process environment values.
func applyEnv(cfg *Config, dotenvPath string) error {
	values := map[string]string{}
	if strings.TrimSpace(dotenvPath) != "" {
		fileValues, err := godotenv.Read(dotenvPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("read %s: %w", dotenvPath, err)
		}
		for k, v := range fileValues {
			values[k] = v
		}
	}
	for _, k := range []string{envBaseURL, envLocale} {
		if v, ok := os.LookupEnv(k); ok {
			values[k] = v
		}
	}

	if v := strings.TrimSpace(values[envBaseURL]); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(values[envLocale]); v != "" {
		cfg.Locale = strings.ToLower(v)
	}
	return nil
}
