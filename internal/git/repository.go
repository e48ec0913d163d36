package git

import (
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
)

// Repository wraps a go-git repository and its checkout path
type Repository struct {
	*gogit.Repository
	path string
}

// Open opens the git repository at the given path. The path itself must be
// the root of a checkout; parent directories are not searched.
func Open(path string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := gogit.PlainOpen(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	return &Repository{
		Repository: repo,
		path:       absPath,
	}, nil
}

// IsRepository reports whether path is the root of a valid checkout
func IsRepository(path string) bool {
	_, err := gogit.PlainOpen(path)
	return err == nil
}

// Root returns the root directory of the checkout
func (r *Repository) Root() string {
	return r.path
}

// CurrentBranch returns the current branch name
func (r *Repository) CurrentBranch() (string, error) {
	head, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}

	if !head.Name().IsBranch() {
		return "", fmt.Errorf("HEAD is not on a branch")
	}

	return head.Name().Short(), nil
}

// HeadHash returns the commit hash HEAD points at
func (r *Repository) HeadHash() (string, error) {
	head, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	return head.Hash().String(), nil
}
