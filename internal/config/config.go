// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/gedforge/gedforge/internal/issue"
	"github.com/gedforge/gedforge/pkg/cueutil"
)

const (
	// AppName is the application name.
	AppName = "gedforge"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment overrides, e.g. GEDFORGE_LOG_LEVEL.
	EnvPrefix = "GEDFORGE"
)

//go:embed config_schema.cue
var configSchema string

var compiledSchema = sync.OnceValues(func() (*cueutil.Schema, error) {
	return cueutil.Compile(configSchema, "#Config")
})

// ConfigDir returns the gedforge configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// ConfigPath returns the path of the config file inside dir, or inside
// ConfigDir when dir is empty.
func ConfigPath(dir string) (string, error) {
	cfgDir, err := configDirWithOverride(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state. It returns the path of the file that was read, or ""
// when only defaults and environment overrides apply.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	if err := opts.Validate(); err != nil {
		return nil, "", err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultConfig()
	v.SetDefault("default_calendar", defaults.DefaultCalendar)
	v.SetDefault("show_calendar", defaults.ShowCalendar)
	v.SetDefault("language", defaults.Language)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("strict", defaults.Strict)
	v.SetDefault("xref_initial", defaults.XrefInitial)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	resolvedPath, err := resolveConfigFile(opts)
	if err != nil {
		return nil, "", err
	}
	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			ctx := issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				Wrap(err)
			var se *cueutil.SchemaError
			if errors.As(err, &se) && len(se.Paths()) > 0 {
				ctx.WithSuggestion("Fix or remove: " + strings.Join(se.Paths(), ", "))
			} else {
				ctx.WithSuggestion("Check that the file contains valid CUE syntax")
			}
			ctx.WithSuggestion("Run 'gedforge config dump' to see every key with its default")
			return nil, "", ctx.BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	// Environment overrides bypass the CUE schema, so check the result again.
	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithSuggestion("Check GEDFORGE_* environment variables").
			WithSuggestion("Run 'gedforge config show' to see the effective values").
			Wrap(fmt.Errorf("%w: %v", errs[0], fieldErrors(errs[0]))).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// resolveConfigFile picks the file to read: the explicit path, else the
// config directory, else the current directory. A missing explicit path is
// an error; the other locations are optional.
func resolveConfigFile(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				WithSuggestion("Use 'gedforge config show' to see default configuration").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		return opts.ConfigFilePath, nil
	}

	cuePath, err := ConfigPath(opts.ConfigDirPath)
	if err != nil {
		return "", err
	}
	if fileExists(cuePath) {
		return cuePath, nil
	}

	localCuePath := filepath.Join(opts.BaseDir, ConfigFileName+"."+ConfigFileExt)
	if fileExists(localCuePath) {
		return localCuePath, nil
	}
	return "", nil
}

func fieldErrors(err error) string {
	if ce, ok := err.(*InvalidConfigError); ok {
		msgs := make([]string, len(ce.FieldErrors))
		for i, fe := range ce.FieldErrors {
			msgs[i] = fe.Error()
		}
		return strings.Join(msgs, "; ")
	}
	return err.Error()
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper validates a CUE file against the #Config schema and
// merges its contents into Viper. Fields are optional, so values need not be
// concrete after unification.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("internal error: %w", err)
	}
	values, err := cueutil.Decode[map[string]any](schema, data,
		cueutil.WithFilename(path),
		cueutil.WithConcrete(false),
	)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(values); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes a default config file into dir (or ConfigDir
// when dir is empty) unless one exists. It returns the file path.
func CreateDefaultConfig(dir string) (string, error) {
	cfgPath, err := ConfigPath(dir)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(cfgPath); err == nil {
		return cfgPath, nil
	}

	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return cfgPath, nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// gedforge configuration file\n\n")

	fmt.Fprintf(&sb, "default_calendar: %q\n", cfg.DefaultCalendar)
	fmt.Fprintf(&sb, "show_calendar:    %v\n", cfg.ShowCalendar)
	fmt.Fprintf(&sb, "language:         %q\n", cfg.Language)
	fmt.Fprintf(&sb, "log_level:        %q\n", cfg.LogLevel)
	fmt.Fprintf(&sb, "strict:           %v\n", cfg.Strict)
	if cfg.XrefInitial != "" {
		fmt.Fprintf(&sb, "xref_initial:     %q\n", cfg.XrefInitial)
	}

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose:      %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	return sb.String()
}

// GenerateTOML renders the configuration as TOML.
func GenerateTOML(cfg *Config) (string, error) {
	out, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode config as TOML: %w", err)
	}
	return string(out), nil
}
