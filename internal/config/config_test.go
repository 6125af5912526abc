// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"github.com/gedforge/gedforge/internal/issue"
	"github.com/gedforge/gedforge/pkg/cueutil"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// isolated returns options that only look inside fresh temporary directories.
func isolated(t *testing.T) LoadOptions {
	t.Helper()
	return LoadOptions{ConfigDirPath: t.TempDir(), BaseDir: t.TempDir()}
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.DefaultCalendar != "GREGORIAN" {
		t.Errorf("DefaultCalendar = %q, want GREGORIAN", cfg.DefaultCalendar)
	}
	if cfg.Language != "en" || cfg.LogLevel != LogLevelInfo {
		t.Errorf("Language/LogLevel = %q/%q", cfg.Language, cfg.LogLevel)
	}
	if cfg.Strict || cfg.ShowCalendar || cfg.UI.Verbose {
		t.Error("boolean options should default to false")
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("ColorScheme = %q, want auto", cfg.UI.ColorScheme)
	}
	if valid, errs := cfg.IsValid(); !valid {
		t.Errorf("default config invalid: %v", errs)
	}
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	t.Parallel()

	cfg, path, err := loadWithOptions(context.Background(), isolated(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want none", path)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", *cfg)
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	t.Parallel()

	opts := isolated(t)
	want := writeConfig(t, opts.ConfigDirPath, `
default_calendar: "JULIAN"
log_level:        "debug"
xref_initial:     "I"
strict:           true
ui: color_scheme: "dark"
`)

	cfg, path, err := loadWithOptions(context.Background(), opts)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	if cfg.DefaultCalendar != "JULIAN" || cfg.LogLevel != LogLevelDebug || cfg.XrefInitial != "I" || !cfg.Strict {
		t.Errorf("unexpected values: %+v", *cfg)
	}
	if cfg.UI.ColorScheme != ColorSchemeDark {
		t.Errorf("ColorScheme = %q, want dark", cfg.UI.ColorScheme)
	}
	if cfg.Language != "en" {
		t.Errorf("unset Language should keep its default, got %q", cfg.Language)
	}
}

func TestLoad_BaseDirFallback(t *testing.T) {
	t.Parallel()

	opts := isolated(t)
	want := writeConfig(t, opts.BaseDir, `language: "fr"`)

	p := NewProvider()
	path, err := p.Path(opts)
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if path != want {
		t.Errorf("Path = %q, want %q", path, want)
	}

	cfg, err := p.Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Language.Tag() != language.French {
		t.Errorf("Language = %q, want fr", cfg.Language)
	}
}

func TestLoad_SchemaViolationNamesField(t *testing.T) {
	t.Parallel()

	opts := isolated(t)
	writeConfig(t, opts.ConfigDirPath, `log_level: "loud"`)

	_, _, err := loadWithOptions(context.Background(), opts)
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("error should be actionable, got %T %v", err, err)
	}
	if ae.Suggestions[0] != "Fix or remove: log_level" {
		t.Errorf("first suggestion = %q", ae.Suggestions[0])
	}
	var se *cueutil.SchemaError
	if !errors.As(err, &se) {
		t.Error("the CUE violations should stay reachable")
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "bad enum", content: `log_level: "loud"`, want: "log_level"},
		{name: "unknown calendar", content: `default_calendar: "MAYAN"`, want: "default_calendar"},
		{name: "unknown field", content: `colour: "red"`, want: "colour"},
		{name: "bad type", content: `strict: "yes"`, want: "strict"},
		{name: "at sign in initial", content: `xref_initial: "@I"`, want: "xref_initial"},
		{name: "syntax error", content: `ui: {`, want: "config.cue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := isolated(t)
			writeConfig(t, opts.ConfigDirPath, tt.content)

			_, _, err := loadWithOptions(context.Background(), opts)
			if err == nil {
				t.Fatal("expected an error")
			}
			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("error should be actionable, got %T", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
			if len(ae.Suggestions) < 2 {
				t.Errorf("Suggestions = %v, want a fix hint and the dump hint", ae.Suggestions)
			}
		})
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	t.Parallel()

	opts := isolated(t)
	opts.ConfigFilePath = filepath.Join(opts.BaseDir, "missing.cue")
	_, _, err := loadWithOptions(context.Background(), opts)
	if err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Fatalf("err = %v, want config file not found", err)
	}
}

func TestLoad_ExplicitFileWins(t *testing.T) {
	t.Parallel()

	opts := isolated(t)
	writeConfig(t, opts.ConfigDirPath, `language: "de"`)
	explicit := filepath.Join(t.TempDir(), "other.cue")
	if err := os.WriteFile(explicit, []byte(`language: "fr"`), 0o644); err != nil {
		t.Fatal(err)
	}
	opts.ConfigFilePath = explicit

	cfg, path, err := loadWithOptions(context.Background(), opts)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if path != explicit || cfg.Language != "fr" {
		t.Errorf("path/language = %q/%q", path, cfg.Language)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := loadWithOptions(ctx, isolated(t)); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("GEDFORGE_LOG_LEVEL", "warn")
	t.Setenv("GEDFORGE_UI_VERBOSE", "true")

	opts := isolated(t)
	writeConfig(t, opts.ConfigDirPath, `log_level: "debug"`)

	cfg, _, err := loadWithOptions(context.Background(), opts)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != LogLevelWarn {
		t.Errorf("LogLevel = %q, want warn from the environment", cfg.LogLevel)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose should come from the environment")
	}
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	t.Setenv("GEDFORGE_DEFAULT_CALENDAR", "MAYAN")

	_, _, err := loadWithOptions(context.Background(), isolated(t))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
	if !strings.Contains(err.Error(), "MAYAN") {
		t.Errorf("error should name the value: %v", err)
	}
}

func TestGenerateCUE_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.DefaultCalendar = "HEBREW"
	cfg.ShowCalendar = true
	cfg.Language = "fr"
	cfg.XrefInitial = "P"
	cfg.UI.ColorScheme = ColorSchemeLight

	opts := isolated(t)
	writeConfig(t, opts.ConfigDirPath, GenerateCUE(cfg))

	got, _, err := loadWithOptions(context.Background(), opts)
	if err != nil {
		t.Fatalf("load generated config: %v", err)
	}
	if *got != *cfg {
		t.Errorf("round trip = %+v, want %+v", *got, *cfg)
	}
}

func TestGenerateTOML(t *testing.T) {
	t.Parallel()

	out, err := GenerateTOML(DefaultConfig())
	if err != nil {
		t.Fatalf("GenerateTOML: %v", err)
	}
	for _, want := range []string{"default_calendar", "GREGORIAN", "[ui]", "color_scheme"} {
		if !strings.Contains(out, want) {
			t.Errorf("TOML output lacks %q:\n%s", want, out)
		}
	}

	var back Config
	if err := toml.Unmarshal([]byte(out), &back); err != nil {
		t.Fatalf("decode TOML: %v", err)
	}
	if back != *DefaultConfig() {
		t.Errorf("TOML round trip = %+v", back)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested")
	path, err := CreateDefaultConfig(dir)
	if err != nil {
		t.Fatalf("CreateDefaultConfig: %v", err)
	}
	if path != filepath.Join(dir, "config.cue") {
		t.Errorf("path = %q", path)
	}

	if err := os.WriteFile(path, []byte(`strict: true`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := CreateDefaultConfig(dir); err != nil {
		t.Fatalf("second CreateDefaultConfig: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "strict: true" {
		t.Error("CreateDefaultConfig must not overwrite an existing file")
	}
}

func TestLoadOptions_Validate(t *testing.T) {
	t.Parallel()

	if err := (LoadOptions{}).Validate(); err != nil {
		t.Errorf("empty options should be valid: %v", err)
	}
	err := LoadOptions{ConfigFilePath: "  ", BaseDir: "\t"}.Validate()
	if !errors.Is(err, ErrInvalidLoadOptions) {
		t.Fatalf("err = %v, want ErrInvalidLoadOptions", err)
	}
	var le *InvalidLoadOptionsError
	if !errors.As(err, &le) || len(le.FieldErrors) != 2 {
		t.Errorf("want 2 field errors, got %v", err)
	}
}

func TestTypes_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		check func() (bool, []error)
		want  error
	}{
		{"calendar", CalendarName("FRENCH_R").IsValid, nil},
		{"calendar lowercase", CalendarName("julian").IsValid, nil},
		{"calendar unknown", CalendarName("MAYAN").IsValid, ErrInvalidCalendarName},
		{"language", LanguageTag("de-CH").IsValid, nil},
		{"language bad", LanguageTag("not a tag").IsValid, ErrInvalidLanguageTag},
		{"log level", LogLevelError.IsValid, nil},
		{"log level bad", LogLevel("trace").IsValid, ErrInvalidLogLevel},
		{"color scheme bad", ColorScheme("neon").IsValid, ErrInvalidColorScheme},
		{"initial empty", XrefInitial("").IsValid, nil},
		{"initial space", XrefInitial("A B").IsValid, ErrInvalidXrefInitial},
		{"ui", UIConfig{ColorScheme: "neon"}.IsValid, ErrInvalidUIConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			valid, errs := tt.check()
			if tt.want == nil {
				if !valid || len(errs) != 0 {
					t.Errorf("want valid, got %v", errs)
				}
				return
			}
			if valid || len(errs) != 1 || !errors.Is(errs[0], tt.want) {
				t.Errorf("want %v, got valid=%v errs=%v", tt.want, valid, errs)
			}
		})
	}
}

func TestLogLevel_Level(t *testing.T) {
	t.Parallel()

	if LogLevelDebug.Level() != log.DebugLevel {
		t.Error("debug should map to log.DebugLevel")
	}
	if LogLevelWarn.Level() != log.WarnLevel {
		t.Error("warn should map to log.WarnLevel")
	}
	if LogLevel("bogus").Level() != log.InfoLevel {
		t.Error("invalid levels fall back to info")
	}
	if LanguageTag("!!").Tag() != language.English {
		t.Error("invalid language falls back to English")
	}
}
