package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Loader reads and writes the persisted configuration. It is the
// engine's configuration adapter: Load may fail (the engine then uses
// built-in defaults) and Save is best-effort (failures are logged by
// the caller, never retried).
type Loader struct {
	// path is the explicit config file path. Empty means discover via
	// FindConfigFile on every Load.
	path string

	logger *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithPath pins the loader to an explicit config file path, skipping
// discovery.
func WithPath(path string) LoaderOption {
	return func(l *Loader) {
		l.path = path
	}
}

// WithLoaderLogger sets the logger used for load/save diagnostics.
func WithLoaderLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a Loader with the given options.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	return l
}

// Load resolves the configuration: it locates the config file, merges
// its contents over the built-in defaults, and validates the result.
// Returns ErrConfigNotFound when no file exists; callers should fall
// back to Default() for that case and for any other error.
func (l *Loader) Load(ctx context.Context) (*RuleConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := FindConfigFile(l.path)
	if path == "" {
		return nil, ErrConfigNotFound
	}

	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		return nil, err
	}

	cfg, err := Merge(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l.logger.Debug("configuration loaded", "path", path)
	return cfg, nil
}

// Save writes the configuration to the loader's path, or to the XDG
// config dir when no path was set. Parent directories are created as
// needed. Save is best-effort; the engine logs failures and moves on.
func (l *Loader) Save(ctx context.Context, cfg *RuleConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := l.path
	if path == "" {
		path = filepath.Join(XDGConfigDir(), DefaultConfigFile)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}

	l.logger.Debug("configuration saved", "path", path)
	return nil
}

// FindConfigFile searches for the configuration file in the following
// order:
//  1. If configPath is specified, use it directly
//  2. Look for .a11yscan.yml in the current directory
//  3. Look for it in the XDG config directory
//
// Returns the path if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	xdgConfig := filepath.Join(XDGConfigDir(), DefaultConfigFile)
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	return ""
}
