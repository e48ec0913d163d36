package git

import (
	"context"
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// Pull fast-forwards the checkout from the named remote. An already
// up-to-date checkout is not an error; a conflicting or non-fast-forward
// pull is.
func (r *Repository) Pull(ctx context.Context, remote, branch string, auth transport.AuthMethod) error {
	worktree, err := r.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	pullOptions := &gogit.PullOptions{
		RemoteName: remote,
		Auth:       auth,
	}
	if branch != "" {
		pullOptions.ReferenceName = plumbing.NewBranchReferenceName(branch)
	}

	err = worktree.PullContext(ctx, pullOptions)
	if err != nil && !errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to pull %s from %s: %w", branch, remote, err)
	}

	return nil
}
