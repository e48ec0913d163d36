package git

import (
	"context"
	"fmt"
)

// SetUser writes the commit author identity into the checkout's local config.
// Empty values leave the corresponding key untouched.
func (r *CommandRunner) SetUser(ctx context.Context, name, email string) error {
	if name != "" {
		if _, err := r.Run(ctx, "config", "user.name", name); err != nil {
			return fmt.Errorf("failed to set git user name: %w", err)
		}
	}
	if email != "" {
		if _, err := r.Run(ctx, "config", "user.email", email); err != nil {
			return fmt.Errorf("failed to set git user email: %w", err)
		}
	}
	return nil
}
