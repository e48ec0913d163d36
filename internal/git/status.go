package git

import (
	"context"
	"fmt"
)

// StatusText returns the human-readable working tree status, the same text
// `git status` prints.
func (r *CommandRunner) StatusText(ctx context.Context) (string, error) {
	output, err := r.RunRaw(ctx, "status")
	if err != nil {
		return "", fmt.Errorf("failed to get status: %w", err)
	}
	return output, nil
}
