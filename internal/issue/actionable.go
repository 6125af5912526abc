// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/gedforge/gedforge/pkg/gederr"
)

type (
	// ActionableError is a user-facing failure: what gedforge was doing,
	// which file or payload it was working on, and what the user can try.
	//
	//	err := issue.NewErrorContext().
	//		WithOperation("read document").
	//		WithResource("./family.ged").
	//		WithSuggestion("Run 'gedforge init family.ged' to create one").
	//		Wrap(cause).
	//		Build()
	ActionableError struct {
		// Operation is a verb phrase, e.g. "validate document".
		Operation string
		// Resource is the document path or payload involved, if any.
		Resource string
		// Suggestions are shown as a bullet list under the message.
		Suggestions []string
		// Cause is the underlying error.
		Cause error
	}

	// ErrorContext builds an ActionableError step by step.
	ErrorContext struct {
		operation   string
		resource    string
		suggestions []string
		cause       error
	}
)

// NewErrorContext returns an empty builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// ForDocumentError wraps a failure from reading or checking a document. When
// err carries a gederr.Kind, the kind's remedies become the suggestions,
// followed by a pointer to the explain command.
func ForDocumentError(err error, operation, resource string) *ActionableError {
	if err == nil {
		return nil
	}
	ctx := NewErrorContext().WithOperation(operation).WithResource(resource).Wrap(err)
	if kind := gederr.KindOf(err); kind != 0 {
		if doc, ok := kindDocs[kind]; ok {
			ctx.WithSuggestions(doc.fixes...)
		}
		ctx.WithSuggestion("Run 'gedforge explain " + kind.String() + "' for details")
	}
	return ctx.Build()
}

// ForFileError wraps an I/O failure on a document file. Missing files and
// permission problems get a hint.
func ForFileError(err error, operation, path string) *ActionableError {
	if err == nil {
		return nil
	}
	ctx := NewErrorContext().WithOperation(operation).WithResource(path).Wrap(err)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		ctx.WithSuggestion("Verify the file path is correct")
		ctx.WithSuggestion("Run 'gedforge init " + path + "' to create a starter document")
	case errors.Is(err, fs.ErrPermission):
		ctx.WithSuggestion("Check the file permissions")
	case errors.Is(err, fs.ErrExist):
		ctx.WithSuggestion("Use --force to overwrite the existing file")
	}
	return ctx.Build()
}

// Error returns "failed to <operation>: <resource>: <cause>", omitting the
// parts that are empty.
func (e *ActionableError) Error() string {
	parts := make([]string, 0, 3)
	parts = append(parts, "failed to "+e.Operation)
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format renders the message with its suggestions as a bullet list. Verbose
// output appends the numbered chain of wrapped errors.
func (e *ActionableError) Format(verbose bool) string {
	var b strings.Builder
	b.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		b.WriteString("\n")
		for _, s := range e.Suggestions {
			b.WriteString("\n  • " + s)
		}
	}

	if verbose && e.Cause != nil {
		b.WriteString("\n\nError chain:")
		for depth, err := 1, e.Cause; err != nil; depth, err = depth+1, errors.Unwrap(err) {
			fmt.Fprintf(&b, "\n  %d. %s", depth, err.Error())
		}
	}

	return b.String()
}

func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.operation = op
	return c
}

func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.resource = res
	return c
}

// WithSuggestion appends one suggestion; it may be called repeatedly.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.suggestions = append(c.suggestions, sug)
	return c
}

func (c *ErrorContext) WithSuggestions(sugs ...string) *ErrorContext {
	c.suggestions = append(c.suggestions, sugs...)
	return c
}

func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.cause = err
	return c
}

// Build returns nil when no operation was set.
func (c *ErrorContext) Build() *ActionableError {
	if c.operation == "" {
		return nil
	}
	return &ActionableError{
		Operation:   c.operation,
		Resource:    c.resource,
		Suggestions: c.suggestions,
		Cause:       c.cause,
	}
}

// BuildError is Build for return statements typed as error, so that a nil
// result stays a nil interface.
func (c *ErrorContext) BuildError() error {
	if ae := c.Build(); ae != nil {
		return ae
	}
	return nil
}
