// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
	"golang.org/x/exp/slices"
)

// ErrTooLarge is wrapped by CheckFileSize failures.
var ErrTooLarge = errors.New("file too large")

type (
	// FieldError is one CUE violation. Path is in JSON-path notation, e.g.
	// "ui.color_scheme" or "records[0].tag", and empty for document-level
	// errors such as syntax errors.
	FieldError struct {
		Path    string
		Message string
	}

	// SchemaError collects the violations CUE reported for one file.
	SchemaError struct {
		File   string
		Fields []FieldError
		cause  error
	}
)

func (f FieldError) String() string {
	if f.Path == "" {
		return f.Message
	}
	return f.Path + ": " + f.Message
}

// Error prints a single violation on one line and several as an indented
// list under "validation failed".
func (e *SchemaError) Error() string {
	if len(e.Fields) == 1 {
		return e.File + ": " + e.Fields[0].String()
	}
	lines := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		lines[i] = f.String()
	}
	return fmt.Sprintf("%s: validation failed:\n  %s", e.File, strings.Join(lines, "\n  "))
}

func (e *SchemaError) Unwrap() error { return e.cause }

// Paths returns the distinct JSON paths of the violations in report order.
// Document-level errors have no path and are skipped.
func (e *SchemaError) Paths() []string {
	out := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Path != "" && !slices.Contains(out, f.Path) {
			out = append(out, f.Path)
		}
	}
	return out
}

// FormatError turns a CUE error into a *SchemaError for file. Other errors
// are wrapped with the file name.
func FormatError(err error, file string) error {
	if err == nil {
		return nil
	}

	list := cueerrors.Errors(err)
	if len(list) == 0 {
		return fmt.Errorf("%s: %w", file, err)
	}

	se := &SchemaError{File: file, Fields: make([]FieldError, 0, len(list)), cause: err}
	for _, e := range list {
		path := formatPath(cueerrors.Path(e))
		msg := e.Error()
		// CUE may repeat the path at the start of the message.
		if path != "" {
			if rest, ok := strings.CutPrefix(msg, path); ok {
				msg = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
			}
		}
		se.Fields = append(se.Fields, FieldError{Path: path, Message: msg})
	}
	return se
}

// formatPath joins CUE path selectors, writing list indexes in brackets:
// ["records", "0", "tag"] becomes "records[0].tag". A leading definition
// selector such as "#Config" is dropped so paths match the user's file.
func formatPath(path []string) string {
	if len(path) > 1 && strings.HasPrefix(path[0], "#") {
		path = path[1:]
	}
	var b strings.Builder
	for i, sel := range path {
		switch {
		case i == 0:
			b.WriteString(sel)
		case isIndex(sel):
			b.WriteString("[" + sel + "]")
		default:
			b.WriteString("." + sel)
		}
	}
	return b.String()
}

func isIndex(s string) bool {
	return s != "" && strings.Trim(s, "0123456789") == ""
}

// CheckFileSize fails with ErrTooLarge when data exceeds maxSize bytes.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if n := int64(len(data)); n > maxSize {
		return fmt.Errorf("%s: %w: size %d bytes exceeds maximum %d bytes", filename, ErrTooLarge, n, maxSize)
	}
	return nil
}
