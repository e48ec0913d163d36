// Package session implements the repository session: it validates
// preconditions, delegates to the git engine, and translates engine
// failures into typed errors.
package session

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"repomate.dev/repomate/internal/config"
	repomateerrors "repomate.dev/repomate/internal/errors"
	"repomate.dev/repomate/internal/git"
)

// DefaultRemote is used when no remote name is given
const DefaultRemote = "origin"

// Session operates on the single repository described by the configuration.
// The checkout handle stays nil until Clone succeeds or an existing checkout
// is detected at the target directory.
type Session struct {
	cfg    config.Config
	log    *logrus.Logger
	runner *git.CommandRunner
	repo   *git.Repository
}

// New creates a session from an immutable configuration value
func New(cfg config.Config, logger *logrus.Logger) *Session {
	return &Session{
		cfg:    cfg,
		log:    logger,
		runner: git.NewCommandRunner(cfg.Repository.TargetDirectory),
	}
}

// TargetDirectory returns the configured checkout path
func (s *Session) TargetDirectory() string {
	return s.cfg.Repository.TargetDirectory
}

// Clone clones the configured repository into the target directory. An
// existing valid checkout is a no-op unless force is set, in which case the
// directory is removed and cloned fresh.
func (s *Session) Clone(ctx context.Context, force bool) error {
	dir := s.cfg.Repository.TargetDirectory

	if _, err := os.Stat(dir); err == nil {
		if force {
			s.log.Warnf("removing existing directory %s", dir)
			if err := os.RemoveAll(dir); err != nil {
				err = repomateerrors.NewCloneError(dir, fmt.Errorf("failed to remove existing directory: %w", err))
				s.log.Error(err)
				return err
			}
			s.repo = nil
		} else {
			if repo, err := git.Open(dir); err == nil {
				s.repo = repo
				s.log.Infof("repository already exists at %s", dir)
				return nil
			}
			err := repomateerrors.NewCloneError(dir, fmt.Errorf("directory exists but is not a git repository, use force to remove and re-clone"))
			s.log.Error(err)
			return err
		}
	}

	s.log.WithFields(logrus.Fields{
		"url":    git.RedactURL(s.cfg.Repository.URL),
		"branch": s.cfg.Repository.Branch,
	}).Info("cloning repository")

	repo, err := git.Clone(ctx, git.CloneOptions{
		URL:       git.AuthenticatedURL(s.cfg.Repository.URL, s.cfg.Credentials.Username, s.cfg.Credentials.Password),
		Directory: dir,
		Branch:    s.cfg.Repository.Branch,
	})
	if err != nil {
		cloneErr := repomateerrors.NewCloneError(dir, err)
		s.log.Error(cloneErr)
		return cloneErr
	}
	s.repo = repo

	if err := s.configureGitUser(ctx); err != nil {
		s.log.Warnf("failed to configure git user: %v", err)
	}

	s.log.Infof("repository cloned successfully to %s", dir)
	return nil
}

// Commit stages and commits changes in the checkout. addAll overrides the
// configured auto_add_all default when non-nil. A clean staging area is a
// no-op, not an error.
func (s *Session) Commit(ctx context.Context, message string, addAll *bool) error {
	if err := s.ensureRepo(ctx); err != nil {
		return err
	}

	stageAll := s.cfg.CommitSettings.AddAllByDefault()
	if addAll != nil {
		stageAll = *addAll
	}

	if message == "" {
		message = s.cfg.CommitSettings.DefaultCommitMessage
	}
	if message == "" {
		err := repomateerrors.NewCommitError(fmt.Errorf("no commit message given and no default configured"))
		s.log.Error(err)
		return err
	}

	if stageAll {
		if err := s.runner.StageAll(ctx); err != nil {
			commitErr := repomateerrors.NewCommitError(err)
			s.log.Error(commitErr)
			return commitErr
		}
		s.log.Debug("staged all changes")
	}

	staged, err := s.runner.HasStagedChanges(ctx)
	if err != nil {
		commitErr := repomateerrors.NewCommitError(err)
		s.log.Error(commitErr)
		return commitErr
	}
	if !staged {
		s.log.Warn("no changes to commit")
		return nil
	}

	if err := s.configureGitUser(ctx); err != nil {
		commitErr := repomateerrors.NewCommitError(err)
		s.log.Error(commitErr)
		return commitErr
	}

	if err := s.runner.Commit(ctx, message); err != nil {
		commitErr := repomateerrors.NewCommitError(err)
		s.log.Error(commitErr)
		return commitErr
	}

	if sha, err := s.runner.HeadShortSHA(ctx); err == nil {
		s.log.Infof("changes committed successfully: %s - %s", sha, message)
	} else {
		s.log.Infof("changes committed successfully: %s", message)
	}
	return nil
}

// Push pushes the branch to the remote. Remote defaults to origin, branch
// to the current branch. Pushing an up-to-date branch is a no-op.
func (s *Session) Push(ctx context.Context, remote, branch string) error {
	if err := s.ensureRepo(ctx); err != nil {
		return err
	}

	remote, branch, err := s.resolveRemoteAndBranch(remote, branch)
	if err != nil {
		pushErr := repomateerrors.NewPushError(remote, branch, err)
		s.log.Error(pushErr)
		return pushErr
	}

	s.log.Infof("pushing changes to %s/%s", remote, branch)
	auth := git.BasicAuth(s.cfg.Credentials.Username, s.cfg.Credentials.Password)
	if err := s.repo.Push(ctx, remote, branch, auth); err != nil {
		pushErr := repomateerrors.NewPushError(remote, branch, err)
		s.log.Error(pushErr)
		return pushErr
	}

	s.log.Info("changes pushed successfully")
	return nil
}

// Pull fast-forwards the checkout from the remote. Remote defaults to
// origin, branch to the current branch.
func (s *Session) Pull(ctx context.Context, remote, branch string) error {
	if err := s.ensureRepo(ctx); err != nil {
		return err
	}

	remote, branch, err := s.resolveRemoteAndBranch(remote, branch)
	if err != nil {
		pullErr := repomateerrors.NewPullError(remote, branch, err)
		s.log.Error(pullErr)
		return pullErr
	}

	s.log.Infof("pulling changes from %s/%s", remote, branch)
	auth := git.BasicAuth(s.cfg.Credentials.Username, s.cfg.Credentials.Password)
	if err := s.repo.Pull(ctx, remote, branch, auth); err != nil {
		pullErr := repomateerrors.NewPullError(remote, branch, err)
		s.log.Error(pullErr)
		return pullErr
	}

	s.log.Info("changes pulled successfully")
	return nil
}

// Status returns the working tree status text. The second return value is
// false when no checkout exists or the status could not be read; a missing
// checkout is never an error.
func (s *Session) Status(ctx context.Context) (string, bool) {
	if err := s.ensureRepo(ctx); err != nil {
		s.log.Debugf("status unavailable: %v", err)
		return "", false
	}

	text, err := s.runner.StatusText(ctx)
	if err != nil {
		s.log.Errorf("failed to get status: %v", err)
		return "", false
	}
	return text, true
}

// ensureRepo lazily opens an existing checkout at the target directory
func (s *Session) ensureRepo(ctx context.Context) error {
	if s.repo != nil {
		return nil
	}

	repo, err := git.Open(s.cfg.Repository.TargetDirectory)
	if err != nil {
		noRepoErr := repomateerrors.NewNoRepositoryError(s.cfg.Repository.TargetDirectory)
		s.log.Error(noRepoErr)
		return noRepoErr
	}
	s.repo = repo

	if err := s.configureGitUser(ctx); err != nil {
		s.log.Warnf("failed to configure git user: %v", err)
	}
	return nil
}

func (s *Session) configureGitUser(ctx context.Context) error {
	return s.runner.SetUser(ctx, s.cfg.GitUser.Name, s.cfg.GitUser.Email)
}

func (s *Session) resolveRemoteAndBranch(remote, branch string) (string, string, error) {
	if remote == "" {
		remote = DefaultRemote
	}
	if branch == "" {
		current, err := s.repo.CurrentBranch()
		if err != nil {
			return remote, branch, err
		}
		branch = current
	}
	return remote, branch, nil
}
