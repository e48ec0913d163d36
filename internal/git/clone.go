package git

import (
	"context"
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// CloneOptions describes a clone request
type CloneOptions struct {
	// URL is the remote URL, already authenticated if credentials apply
	URL string
	// Directory is the target checkout path
	Directory string
	// Branch to check out after cloning; empty means the remote default
	Branch string
}

// Clone clones a repository into the target directory and returns the
// opened checkout
func Clone(ctx context.Context, opts CloneOptions) (*Repository, error) {
	cloneOptions := &gogit.CloneOptions{
		URL: opts.URL,
	}
	if opts.Branch != "" {
		cloneOptions.ReferenceName = plumbing.NewBranchReferenceName(opts.Branch)
	}

	repo, err := gogit.PlainCloneContext(ctx, opts.Directory, false, cloneOptions)
	if err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(opts.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	return &Repository{
		Repository: repo,
		path:       absPath,
	}, nil
}
