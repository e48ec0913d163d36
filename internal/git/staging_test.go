package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"repomate.dev/repomate/internal/git"
)

func TestStageAll(t *testing.T) {
	t.Run("stages modified and untracked files", func(t *testing.T) {
		repo := newTestRepo(t)
		require.NoError(t, repo.CreateChangeAndCommit("test.txt", "initial"))
		runner := git.NewCommandRunner(repo.Dir)

		require.NoError(t, repo.CreateChange("test.txt", "modified"))
		require.NoError(t, repo.CreateChange("new.txt", "untracked"))

		hasStaged, err := runner.HasStagedChanges(context.Background())
		require.NoError(t, err)
		require.False(t, hasStaged)

		require.NoError(t, runner.StageAll(context.Background()))

		hasStaged, err = runner.HasStagedChanges(context.Background())
		require.NoError(t, err)
		require.True(t, hasStaged)
	})
}

func TestHasChanges(t *testing.T) {
	t.Run("returns false on a clean working tree", func(t *testing.T) {
		repo := newTestRepo(t)
		require.NoError(t, repo.CreateChangeAndCommit("test.txt", "initial"))
		runner := git.NewCommandRunner(repo.Dir)

		hasChanges, err := runner.HasChanges(context.Background())
		require.NoError(t, err)
		require.False(t, hasChanges)
	})

	t.Run("returns true for untracked files", func(t *testing.T) {
		repo := newTestRepo(t)
		require.NoError(t, repo.CreateChangeAndCommit("test.txt", "initial"))
		runner := git.NewCommandRunner(repo.Dir)

		require.NoError(t, repo.CreateChange("new.txt", "untracked"))

		hasChanges, err := runner.HasChanges(context.Background())
		require.NoError(t, err)
		require.True(t, hasChanges)
	})
}

func TestCommit(t *testing.T) {
	t.Run("commits staged changes with the given message", func(t *testing.T) {
		repo := newTestRepo(t)
		require.NoError(t, repo.CreateChangeAndCommit("test.txt", "initial"))
		runner := git.NewCommandRunner(repo.Dir)

		require.NoError(t, repo.CreateChange("test.txt", "modified"))
		require.NoError(t, runner.StageAll(context.Background()))
		require.NoError(t, runner.Commit(context.Background(), "update test file"))

		message, err := repo.RunGitCommandAndGetOutput("log", "-1", "--format=%s")
		require.NoError(t, err)
		require.Equal(t, "update test file", message)
	})
}

func TestSetUser(t *testing.T) {
	t.Run("writes the identity into local config", func(t *testing.T) {
		repo := newTestRepo(t)
		runner := git.NewCommandRunner(repo.Dir)

		require.NoError(t, runner.SetUser(context.Background(), "Repo Bot", "bot@example.com"))

		name, err := repo.RunGitCommandAndGetOutput("config", "user.name")
		require.NoError(t, err)
		require.Equal(t, "Repo Bot", name)

		email, err := repo.RunGitCommandAndGetOutput("config", "user.email")
		require.NoError(t, err)
		require.Equal(t, "bot@example.com", email)
	})
}
