// Package errors provides sentinel errors and custom error types for the repomate application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrConfig indicates that the configuration file is missing or malformed
	ErrConfig = errors.New("invalid configuration")

	// ErrNoRepository indicates that an operation requires a checkout that is absent
	ErrNoRepository = errors.New("no repository")

	// ErrClone indicates that cloning the repository failed
	ErrClone = errors.New("clone failed")

	// ErrCommit indicates that committing changes failed
	ErrCommit = errors.New("commit failed")

	// ErrPush indicates that pushing to the remote failed
	ErrPush = errors.New("push failed")

	// ErrPull indicates that pulling from the remote failed
	ErrPull = errors.New("pull failed")
)

// ConfigError represents a missing or malformed configuration file
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid configuration %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("invalid configuration %s", e.Path)
}

// Is returns true if the target error is ErrConfig
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(path string, err error) *ConfigError {
	return &ConfigError{Path: path, Err: err}
}

// NoRepositoryError represents an operation attempted against an absent checkout
type NoRepositoryError struct {
	Dir string
}

func (e *NoRepositoryError) Error() string {
	return fmt.Sprintf("no git repository at %s, clone it first", e.Dir)
}

// Is returns true if the target error is ErrNoRepository
func (e *NoRepositoryError) Is(target error) bool {
	return target == ErrNoRepository
}

// NewNoRepositoryError creates a new NoRepositoryError
func NewNoRepositoryError(dir string) *NoRepositoryError {
	return &NoRepositoryError{Dir: dir}
}

// CloneError represents a failed clone operation
type CloneError struct {
	Dir string
	Err error
}

func (e *CloneError) Error() string {
	return fmt.Sprintf("failed to clone into %s: %v", e.Dir, e.Err)
}

// Is returns true if the target error is ErrClone
func (e *CloneError) Is(target error) bool {
	return target == ErrClone
}

func (e *CloneError) Unwrap() error {
	return e.Err
}

// NewCloneError creates a new CloneError
func NewCloneError(dir string, err error) *CloneError {
	return &CloneError{Dir: dir, Err: err}
}

// CommitError represents a failed commit operation
type CommitError struct {
	Err error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("failed to commit changes: %v", e.Err)
}

// Is returns true if the target error is ErrCommit
func (e *CommitError) Is(target error) bool {
	return target == ErrCommit
}

func (e *CommitError) Unwrap() error {
	return e.Err
}

// NewCommitError creates a new CommitError
func NewCommitError(err error) *CommitError {
	return &CommitError{Err: err}
}

// PushError represents a rejected or failed push
type PushError struct {
	Remote string
	Branch string
	Err    error
}

func (e *PushError) Error() string {
	return fmt.Sprintf("failed to push %s to %s: %v", e.Branch, e.Remote, e.Err)
}

// Is returns true if the target error is ErrPush
func (e *PushError) Is(target error) bool {
	return target == ErrPush
}

func (e *PushError) Unwrap() error {
	return e.Err
}

// NewPushError creates a new PushError
func NewPushError(remote, branch string, err error) *PushError {
	return &PushError{Remote: remote, Branch: branch, Err: err}
}

// PullError represents a conflicting or failed pull
type PullError struct {
	Remote string
	Branch string
	Err    error
}

func (e *PullError) Error() string {
	return fmt.Sprintf("failed to pull %s from %s: %v", e.Branch, e.Remote, e.Err)
}

// Is returns true if the target error is ErrPull
func (e *PullError) Is(target error) bool {
	return target == ErrPull
}

func (e *PullError) Unwrap() error {
	return e.Err
}

// NewPullError creates a new PullError
func NewPullError(remote, branch string, err error) *PullError {
	return &PullError{Remote: remote, Branch: branch, Err: err}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
