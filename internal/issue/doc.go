// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// It defines error types that carry remediation steps, plus Markdown guidance
// for the CLI failures and for every gederr.Kind, rendered with glamour by
// the explain command.
package issue
