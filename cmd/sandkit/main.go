// Command sandkit exposes the workspace tools on the command line: list the
// tool declarations, call a tool with JSON arguments, or snapshot the
// workspace.
package main

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jmallory/sandkit/internal/config"
	"github.com/jmallory/sandkit/internal/registry"
	"github.com/jmallory/sandkit/internal/sandbox"
	"github.com/jmallory/sandkit/internal/sandbox/gitrepo"
	"github.com/jmallory/sandkit/internal/sandbox/local"
)

func main() {
	if err := newApp().Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func newApp() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sandkit",
		Short:         "Workspace file, folder and git tools for sandboxed agents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Missing .env is fine; explicit values stay untouched.
			_ = godotenv.Load()

			level, err := cmd.Flags().GetString("log-level")
			if err != nil {
				return err
			}
			lvl, err := logrus.ParseLevel(level)
			if err != nil {
				return err
			}
			logrus.SetLevel(lvl)
			return nil
		},
	}

	rootCmd.PersistentFlags().String("workspace", "", "Workspace root directory (default from config)")
	rootCmd.PersistentFlags().String("log-level", "warning", "Log level (debug, info, warning, error)")

	rootCmd.AddCommand(
		newToolsCommand(),
		newCallCommand(),
		newSnapshotCommand(),
	)
	return rootCmd
}

// buildRegistry loads the configuration and wires the tool registry over a
// local sandbox.
func buildRegistry(cmd *cobra.Command) (*registry.Registry, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	root, err := cmd.Flags().GetString("workspace")
	if err != nil {
		return nil, err
	}
	if root == "" {
		root = cfg.Workspace.Root
	}

	conn := sandbox.Connected(
		local.NewFileSystem(cfg.Workspace.MaxFileSize),
		gitrepo.NewService(cfg.Git.AuthorName, cfg.Git.AuthorEmail),
	)
	return registry.Default(conn, root), nil
}
