package git

import (
	"context"
	"fmt"
)

// Commit creates a commit from the staged changes with the given message
func (r *CommandRunner) Commit(ctx context.Context, message string) error {
	_, err := r.Run(ctx, "commit", "-m", message)
	if err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// HeadShortSHA returns the abbreviated SHA of the last commit
func (r *CommandRunner) HeadShortSHA(ctx context.Context) (string, error) {
	sha, err := r.Run(ctx, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	return sha, nil
}
