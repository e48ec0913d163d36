// Package cli wires the repomate command line: flag parsing, configuration
// loading, and sequencing of the requested repository operations.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"repomate.dev/repomate/internal/config"
	"repomate.dev/repomate/internal/logging"
	"repomate.dev/repomate/internal/session"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	var (
		configPath string
		clone      bool
		forceClone bool
		commitMsg  string
		addAll     bool
		noAddAll   bool
		push       bool
		pull       bool
		status     bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "repomate",
		Short: "Repomate automates clone, commit, push and pull for a configured repository",
		Long: `Repomate is a thin wrapper around routine git operations for a single
repository described by a YAML configuration file. Operation flags are
combinable and always run in the order clone, pull, commit, push, status.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			commitRequested := cmd.Flags().Changed("commit")
			if !clone && !forceClone && !commitRequested && !push && !pull && !status {
				return cmd.Help()
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			logger := logging.NewLogger(cfg.Logging, verbose)
			logger.Debugf("configuration loaded from %s", configPath)

			sess := session.New(*cfg, logger)
			ctx := cmd.Context()

			if clone || forceClone {
				if err := sess.Clone(ctx, forceClone); err != nil {
					return err
				}
			}

			if pull {
				if err := sess.Pull(ctx, "", ""); err != nil {
					return err
				}
			}

			if commitRequested {
				var addAllOverride *bool
				if cmd.Flags().Changed("add-all") {
					addAllOverride = &addAll
				}
				if noAddAll {
					f := false
					addAllOverride = &f
				}
				if err := sess.Commit(ctx, commitMsg, addAllOverride); err != nil {
					return err
				}
			}

			if push {
				if err := sess.Push(ctx, "", ""); err != nil {
					return err
				}
			}

			if status {
				text, ok := sess.Status(ctx)
				if ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Repository status:")
					fmt.Fprintln(cmd.OutOrStdout(), text)
				} else {
					logger.Warnf("no repository at %s, nothing to report", sess.TargetDirectory())
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", config.DefaultPath, "Path to the configuration file")
	cmd.Flags().BoolVar(&clone, "clone", false, "Clone the repository")
	cmd.Flags().BoolVar(&forceClone, "force-clone", false, "Remove any existing checkout before cloning")
	cmd.Flags().StringVar(&commitMsg, "commit", "", "Commit changes with the given message")
	cmd.Flags().BoolVar(&addAll, "add-all", false, "Stage all changes before committing")
	cmd.Flags().BoolVar(&noAddAll, "no-add-all", false, "Only commit what is already staged")
	cmd.Flags().BoolVar(&push, "push", false, "Push changes to the remote")
	cmd.Flags().BoolVar(&pull, "pull", false, "Pull changes from the remote")
	cmd.Flags().BoolVar(&status, "status", false, "Print the repository status")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}
