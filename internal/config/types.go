// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"

	"github.com/gedforge/gedforge/pkg/calendar"
)

const (
	// LogLevelDebug logs staging, minting and rendering steps.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo logs progress messages.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs only warnings and errors.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs only errors.
	LogLevelError LogLevel = "error"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidCalendarName is returned when a CalendarName is not registered.
	ErrInvalidCalendarName = errors.New("invalid calendar name")
	// ErrInvalidLanguageTag is returned when a LanguageTag is not BCP 47.
	ErrInvalidLanguageTag = errors.New("invalid language tag")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidXrefInitial is returned when an XrefInitial holds characters an
	// identifier cannot.
	ErrInvalidXrefInitial = errors.New("invalid xref initial")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// CalendarName names the calendar dates are written in when none is given.
	CalendarName string

	// InvalidCalendarNameError is returned when a CalendarName is not registered.
	// It wraps ErrInvalidCalendarName for errors.Is() compatibility.
	InvalidCalendarNameError struct {
		Value CalendarName
	}

	// LanguageTag is the BCP 47 tag messages are printed in.
	LanguageTag string

	// InvalidLanguageTagError is returned when a LanguageTag does not parse.
	InvalidLanguageTagError struct {
		Value LanguageTag
		Err   error
	}

	// LogLevel is the minimum level the CLI logger writes.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	// It wraps ErrInvalidLogLevel for errors.Is() compatibility.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// XrefInitial prefixes automatically numbered identifiers, e.g. "I" for @I1@.
	// The zero value numbers identifiers without a prefix.
	XrefInitial string

	// InvalidXrefInitialError is returned when an XrefInitial contains "@" or
	// whitespace.
	InvalidXrefInitialError struct {
		Value XrefInitial
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// DefaultCalendar is used by date commands when the payload names none.
		DefaultCalendar CalendarName `json:"default_calendar" mapstructure:"default_calendar" toml:"default_calendar"`
		// ShowCalendar writes the calendar name even for the Gregorian calendar.
		ShowCalendar bool `json:"show_calendar" mapstructure:"show_calendar" toml:"show_calendar"`
		// Language selects the message catalog.
		Language LanguageTag `json:"language" mapstructure:"language" toml:"language"`
		// LogLevel sets the CLI logger level.
		LogLevel LogLevel `json:"log_level" mapstructure:"log_level" toml:"log_level"`
		// Strict reports every violation instead of stopping at the first.
		Strict bool `json:"strict" mapstructure:"strict" toml:"strict"`
		// XrefInitial prefixes identifiers minted by init and the genealogy builder.
		XrefInitial XrefInitial `json:"xref_initial" mapstructure:"xref_initial" toml:"xref_initial"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui" toml:"ui"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme" toml:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose" toml:"verbose"`
	}
)

// String returns the string representation of the CalendarName.
func (c CalendarName) String() string { return string(c) }

// IsValid returns whether the CalendarName is registered in the calendar catalog.
func (c CalendarName) IsValid() (bool, []error) {
	if !calendar.IsCalendar(string(c)) {
		return false, []error{&InvalidCalendarNameError{Value: c}}
	}
	return true, nil
}

// Error implements the error interface for InvalidCalendarNameError.
func (e *InvalidCalendarNameError) Error() string {
	return fmt.Sprintf("invalid calendar %q (valid: %s)", e.Value, strings.Join(calendar.Names(), ", "))
}

// Unwrap returns ErrInvalidCalendarName for errors.Is() compatibility.
func (e *InvalidCalendarNameError) Unwrap() error { return ErrInvalidCalendarName }

// String returns the string representation of the LanguageTag.
func (l LanguageTag) String() string { return string(l) }

// Tag parses the language tag, falling back to English when it is invalid.
func (l LanguageTag) Tag() language.Tag {
	tag, err := language.Parse(string(l))
	if err != nil {
		return language.English
	}
	return tag
}

// IsValid returns whether the LanguageTag parses as BCP 47.
func (l LanguageTag) IsValid() (bool, []error) {
	if _, err := language.Parse(string(l)); err != nil {
		return false, []error{&InvalidLanguageTagError{Value: l, Err: err}}
	}
	return true, nil
}

// Error implements the error interface for InvalidLanguageTagError.
func (e *InvalidLanguageTagError) Error() string {
	return fmt.Sprintf("invalid language tag %q: %v", e.Value, e.Err)
}

// Unwrap returns ErrInvalidLanguageTag for errors.Is() compatibility.
func (e *InvalidLanguageTagError) Unwrap() error { return ErrInvalidLanguageTag }

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is one of the defined levels.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// Level converts to the logger's level. Invalid values map to info.
func (l LogLevel) Level() log.Level {
	if ok, _ := l.IsValid(); !ok {
		return log.InfoLevel
	}
	level, err := log.ParseLevel(string(l))
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Error implements the error interface for InvalidLogLevelError.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// String returns the string representation of the XrefInitial.
func (x XrefInitial) String() string { return string(x) }

// IsValid returns whether the XrefInitial can start an identifier.
func (x XrefInitial) IsValid() (bool, []error) {
	if strings.ContainsAny(string(x), "@ \t\n") {
		return false, []error{&InvalidXrefInitialError{Value: x}}
	}
	return true, nil
}

// Error implements the error interface for InvalidXrefInitialError.
func (e *InvalidXrefInitialError) Error() string {
	return fmt.Sprintf("invalid xref initial %q: must not contain '@' or whitespace", e.Value)
}

// Unwrap returns ErrInvalidXrefInitial for errors.Is() compatibility.
func (e *InvalidXrefInitialError) Unwrap() error { return ErrInvalidXrefInitial }

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// IsValid returns whether the UIConfig has valid fields.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the Config has valid fields. Bool fields need no
// validation.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	for _, check := range []func() (bool, []error){
		c.DefaultCalendar.IsValid,
		c.Language.IsValid,
		c.LogLevel.IsValid,
		c.XrefInitial.IsValid,
		c.UI.IsValid,
	} {
		if valid, fieldErrs := check(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		DefaultCalendar: calendar.GregorianName,
		ShowCalendar:    false,
		Language:        "en",
		LogLevel:        LogLevelInfo,
		Strict:          false,
		XrefInitial:     "",
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
