// Package domain contains domain errors used throughout the application.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common error conditions.
var (
	ErrNotGitRepo      = errors.New("not a git repository")
	ErrPathOutsideRepo = errors.New("path is outside repository")
	ErrCallbackNil     = errors.New("callback must not be nil")
)

// GitError represents a failed git subprocess invocation.
type GitError struct {
	Op     string // Operation that failed
	Stderr string // Captured stderr, if any
	Err    error  // Underlying error
}

func (e *GitError) Error() string {
	if s := strings.TrimSpace(e.Stderr); s != "" {
		return fmt.Sprintf("git %s: %v: %s", e.Op, e.Err, s)
	}
	return fmt.Sprintf("git %s: %v", e.Op, e.Err)
}

func (e *GitError) Unwrap() error {
	return e.Err
}

// NewGitError creates a new GitError.
func NewGitError(op, stderr string, err error) *GitError {
	return &GitError{
		Op:     op,
		Stderr: stderr,
		Err:    err,
	}
}

// ParseError represents git output that does not match the expected grammar.
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed diff record %q: %s", e.Line, e.Reason)
}

// NewParseError creates a new ParseError.
func NewParseError(line, reason string) *ParseError {
	return &ParseError{
		Line:   line,
		Reason: reason,
	}
}

// CallbackError wraps a failure raised by a user-supplied callback.
type CallbackError struct {
	Path string // Repo-relative path being processed
	Err  error
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("callback failed for %s: %v", e.Path, e.Err)
}

func (e *CallbackError) Unwrap() error {
	return e.Err
}

// NewCallbackError creates a new CallbackError.
func NewCallbackError(path string, err error) *CallbackError {
	return &CallbackError{
		Path: path,
		Err:  err,
	}
}
