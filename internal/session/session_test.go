package session_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"repomate.dev/repomate/internal/config"
	repomateerrors "repomate.dev/repomate/internal/errors"
	"repomate.dev/repomate/internal/session"
	"repomate.dev/repomate/testhelpers"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testConfig(remoteURL, targetDir string) config.Config {
	return config.Config{
		Repository: config.Repository{
			URL:             remoteURL,
			TargetDirectory: targetDir,
			Branch:          "main",
		},
		GitUser: config.GitUser{
			Name:  "Repo Bot",
			Email: "bot@example.com",
		},
	}
}

// newClonedSession sets up a seeded bare remote and a session whose target
// directory already holds a clone of it.
func newClonedSession(t *testing.T) (*session.Session, string, string) {
	t.Helper()

	remote, err := testhelpers.NewSeededBareRemote(t.TempDir())
	require.NoError(t, err)

	target := filepath.Join(t.TempDir(), "checkout")
	sess := session.New(testConfig(remote, target), testLogger())
	require.NoError(t, sess.Clone(context.Background(), false))

	return sess, remote, target
}

func TestClone(t *testing.T) {
	t.Run("clones into the target directory at the configured branch", func(t *testing.T) {
		_, _, target := newClonedSession(t)

		repo := &testhelpers.GitRepo{Dir: target}
		branch, err := repo.CurrentBranchName()
		require.NoError(t, err)
		require.Equal(t, "main", branch)

		_, err = os.Stat(filepath.Join(target, "README.md"))
		require.NoError(t, err)
	})

	t.Run("is a no-op on an existing valid checkout", func(t *testing.T) {
		sess, _, target := newClonedSession(t)

		marker := filepath.Join(target, "marker.txt")
		require.NoError(t, os.WriteFile(marker, []byte("keep me"), 0600))

		require.NoError(t, sess.Clone(context.Background(), false))

		_, err := os.Stat(marker)
		require.NoError(t, err)
	})

	t.Run("force removes the checkout and clones fresh", func(t *testing.T) {
		sess, _, target := newClonedSession(t)

		marker := filepath.Join(target, "marker.txt")
		require.NoError(t, os.WriteFile(marker, []byte("discard me"), 0600))

		require.NoError(t, sess.Clone(context.Background(), true))

		_, err := os.Stat(marker)
		require.True(t, os.IsNotExist(err))

		repo := &testhelpers.GitRepo{Dir: target}
		branch, err := repo.CurrentBranchName()
		require.NoError(t, err)
		require.Equal(t, "main", branch)
	})

	t.Run("fails when the target exists but is not a repository", func(t *testing.T) {
		remote, err := testhelpers.NewSeededBareRemote(t.TempDir())
		require.NoError(t, err)

		target := t.TempDir() // exists, not a checkout
		sess := session.New(testConfig(remote, target), testLogger())

		err = sess.Clone(context.Background(), false)
		require.Error(t, err)
		require.True(t, errors.Is(err, repomateerrors.ErrClone))
	})

	t.Run("fails on an invalid remote", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "checkout")
		sess := session.New(testConfig(filepath.Join(t.TempDir(), "nonexistent"), target), testLogger())

		err := sess.Clone(context.Background(), false)
		require.Error(t, err)
		require.True(t, errors.Is(err, repomateerrors.ErrClone))
	})
}

func TestCommit(t *testing.T) {
	t.Run("requires an existing checkout", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "absent")
		sess := session.New(testConfig("unused", target), testLogger())

		err := sess.Commit(context.Background(), "message", nil)
		require.Error(t, err)
		require.True(t, errors.Is(err, repomateerrors.ErrNoRepository))
	})

	t.Run("is a no-op when there is nothing to commit", func(t *testing.T) {
		sess, _, target := newClonedSession(t)
		repo := &testhelpers.GitRepo{Dir: target}

		before, err := repo.GetRevision("HEAD")
		require.NoError(t, err)

		require.NoError(t, sess.Commit(context.Background(), "nothing here", nil))

		after, err := repo.GetRevision("HEAD")
		require.NoError(t, err)
		require.Equal(t, before, after)
	})

	t.Run("stages everything and commits with the configured author", func(t *testing.T) {
		sess, _, target := newClonedSession(t)
		repo := &testhelpers.GitRepo{Dir: target}

		require.NoError(t, repo.CreateChange("notes.txt", "new content"))
		require.NoError(t, sess.Commit(context.Background(), "add notes", nil))

		message, err := repo.RunGitCommandAndGetOutput("log", "-1", "--format=%s")
		require.NoError(t, err)
		require.Equal(t, "add notes", message)

		author, err := repo.RunGitCommandAndGetOutput("log", "-1", "--format=%an <%ae>")
		require.NoError(t, err)
		require.Equal(t, "Repo Bot <bot@example.com>", author)
	})

	t.Run("leaves unstaged changes alone when addAll is false", func(t *testing.T) {
		sess, _, target := newClonedSession(t)
		repo := &testhelpers.GitRepo{Dir: target}

		before, err := repo.GetRevision("HEAD")
		require.NoError(t, err)

		require.NoError(t, repo.CreateChange("notes.txt", "unstaged content"))

		addAll := false
		require.NoError(t, sess.Commit(context.Background(), "should not commit", &addAll))

		after, err := repo.GetRevision("HEAD")
		require.NoError(t, err)
		require.Equal(t, before, after)
	})

	t.Run("falls back to the configured default message", func(t *testing.T) {
		remote, err := testhelpers.NewSeededBareRemote(t.TempDir())
		require.NoError(t, err)

		target := filepath.Join(t.TempDir(), "checkout")
		cfg := testConfig(remote, target)
		cfg.CommitSettings.DefaultCommitMessage = "Automated update"

		sess := session.New(cfg, testLogger())
		require.NoError(t, sess.Clone(context.Background(), false))

		repo := &testhelpers.GitRepo{Dir: target}
		require.NoError(t, repo.CreateChange("notes.txt", "content"))
		require.NoError(t, sess.Commit(context.Background(), "", nil))

		message, err := repo.RunGitCommandAndGetOutput("log", "-1", "--format=%s")
		require.NoError(t, err)
		require.Equal(t, "Automated update", message)
	})
}

func TestPush(t *testing.T) {
	t.Run("requires an existing checkout", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "absent")
		sess := session.New(testConfig("unused", target), testLogger())

		err := sess.Push(context.Background(), "", "")
		require.Error(t, err)
		require.True(t, errors.Is(err, repomateerrors.ErrNoRepository))
	})

	t.Run("commit then push leaves the remote tip equal to the local tip", func(t *testing.T) {
		sess, remote, target := newClonedSession(t)
		repo := &testhelpers.GitRepo{Dir: target}

		require.NoError(t, repo.CreateChange("notes.txt", "pushed content"))
		require.NoError(t, sess.Commit(context.Background(), "add notes", nil))
		require.NoError(t, sess.Push(context.Background(), "", ""))

		localTip, err := repo.GetRevision("HEAD")
		require.NoError(t, err)

		remoteTip, err := testhelpers.RevisionOf(remote, "refs/heads/main")
		require.NoError(t, err)
		require.Equal(t, localTip, remoteTip)
	})

	t.Run("pushing an up-to-date branch succeeds", func(t *testing.T) {
		sess, _, _ := newClonedSession(t)
		require.NoError(t, sess.Push(context.Background(), "", ""))
	})

	t.Run("rejected non-fast-forward push fails", func(t *testing.T) {
		sess, remote, target := newClonedSession(t)
		repo := &testhelpers.GitRepo{Dir: target}

		// Move the remote ahead behind this checkout's back
		otherTarget := filepath.Join(t.TempDir(), "other")
		other := session.New(testConfig(remote, otherTarget), testLogger())
		require.NoError(t, other.Clone(context.Background(), false))
		otherRepo := &testhelpers.GitRepo{Dir: otherTarget}
		require.NoError(t, otherRepo.CreateChange("theirs.txt", "their content"))
		require.NoError(t, other.Commit(context.Background(), "their change", nil))
		require.NoError(t, other.Push(context.Background(), "", ""))

		// Local diverging commit
		require.NoError(t, repo.CreateChange("ours.txt", "our content"))
		require.NoError(t, sess.Commit(context.Background(), "our change", nil))

		err := sess.Push(context.Background(), "", "")
		require.Error(t, err)
		require.True(t, errors.Is(err, repomateerrors.ErrPush))
	})
}

func TestPull(t *testing.T) {
	t.Run("requires an existing checkout", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "absent")
		sess := session.New(testConfig("unused", target), testLogger())

		err := sess.Pull(context.Background(), "", "")
		require.Error(t, err)
		require.True(t, errors.Is(err, repomateerrors.ErrNoRepository))
	})

	t.Run("fast-forwards to the remote tip", func(t *testing.T) {
		sess, remote, target := newClonedSession(t)

		// Push a new commit from a second checkout
		otherTarget := filepath.Join(t.TempDir(), "other")
		other := session.New(testConfig(remote, otherTarget), testLogger())
		require.NoError(t, other.Clone(context.Background(), false))
		otherRepo := &testhelpers.GitRepo{Dir: otherTarget}
		require.NoError(t, otherRepo.CreateChange("update.txt", "fresh content"))
		require.NoError(t, other.Commit(context.Background(), "fresh change", nil))
		require.NoError(t, other.Push(context.Background(), "", ""))

		require.NoError(t, sess.Pull(context.Background(), "", ""))

		repo := &testhelpers.GitRepo{Dir: target}
		localTip, err := repo.GetRevision("HEAD")
		require.NoError(t, err)

		remoteTip, err := testhelpers.RevisionOf(remote, "refs/heads/main")
		require.NoError(t, err)
		require.Equal(t, localTip, remoteTip)
	})

	t.Run("pulling an up-to-date checkout succeeds", func(t *testing.T) {
		sess, _, _ := newClonedSession(t)
		require.NoError(t, sess.Pull(context.Background(), "", ""))
	})

	t.Run("diverged history fails", func(t *testing.T) {
		sess, remote, target := newClonedSession(t)
		repo := &testhelpers.GitRepo{Dir: target}

		otherTarget := filepath.Join(t.TempDir(), "other")
		other := session.New(testConfig(remote, otherTarget), testLogger())
		require.NoError(t, other.Clone(context.Background(), false))
		otherRepo := &testhelpers.GitRepo{Dir: otherTarget}
		require.NoError(t, otherRepo.CreateChange("theirs.txt", "their content"))
		require.NoError(t, other.Commit(context.Background(), "their change", nil))
		require.NoError(t, other.Push(context.Background(), "", ""))

		require.NoError(t, repo.CreateChange("ours.txt", "our content"))
		require.NoError(t, sess.Commit(context.Background(), "our change", nil))

		err := sess.Pull(context.Background(), "", "")
		require.Error(t, err)
		require.True(t, errors.Is(err, repomateerrors.ErrPull))
	})
}

func TestStatus(t *testing.T) {
	t.Run("returns absent for a missing checkout", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "absent")
		sess := session.New(testConfig("unused", target), testLogger())

		text, ok := sess.Status(context.Background())
		require.False(t, ok)
		require.Empty(t, text)
	})

	t.Run("reports the working tree state", func(t *testing.T) {
		sess, _, target := newClonedSession(t)
		repo := &testhelpers.GitRepo{Dir: target}
		require.NoError(t, repo.CreateChange("untracked.txt", "content"))

		text, ok := sess.Status(context.Background())
		require.True(t, ok)
		require.Contains(t, text, "main")
		require.Contains(t, text, "untracked.txt")
	})
}
