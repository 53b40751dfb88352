// SPDX-License-Identifier: AGPL-3.0-or-later

// Package clierr carries process exit codes through ordinary error returns.
package clierr

import (
	"errors"
	"fmt"
)

// Exit codes used by the lifecycle CLI.
const (
	// CodeFailure covers runtime failures such as an unwritable output path.
	CodeFailure = 1
	// CodeUsage covers bad or missing command-line input.
	CodeUsage = 2
)

type ExitCoder interface {
	error
	ExitCode() int
}

// ExitError is an error that carries an explicit process exit code.
// It unwraps to its cause so errors.Is/As see through it.
type ExitError struct {
	code  int
	msg   string
	cause error
}

func (e *ExitError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

func (e *ExitError) ExitCode() int { return e.code }

func (e *ExitError) Unwrap() error { return e.cause }

// New creates an ExitError with a message.
func New(code int, msg string) error {
	return &ExitError{code: normalize(code), msg: msg}
}

// Wrap creates an ExitError around cause. A nil cause behaves like New.
func Wrap(code int, msg string, cause error) error {
	if cause == nil {
		return New(code, msg)
	}
	return &ExitError{code: normalize(code), msg: msg, cause: cause}
}

// Usage wraps cause as a usage error.
func Usage(msg string, cause error) error { return Wrap(CodeUsage, msg, cause) }

// Failure wraps cause as a runtime failure.
func Failure(msg string, cause error) error { return Wrap(CodeFailure, msg, cause) }

// ExitCodeOf extracts an exit code from any error, defaulting to 1.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return CodeFailure
}

// Exit code 0 means success; errors never carry it.
func normalize(code int) int {
	if code <= 0 {
		return CodeFailure
	}
	return code
}
