package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/jmallory/sandkit/internal/config"
	"github.com/jmallory/sandkit/internal/sandbox/local"
	"github.com/jmallory/sandkit/internal/workspace/snapshot"
)

func newSnapshotCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Print the contents of all visible text files in the workspace",
		Args:  cobra.NoArgs,
		RunE:  snapshotAction,
	}
}

func snapshotAction(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	root, err := cmd.Flags().GetString("workspace")
	if err != nil {
		return err
	}
	if root == "" {
		root = cfg.Workspace.Root
	}

	fs := local.NewFileSystem(cfg.Workspace.MaxFileSize)
	state, err := snapshot.NewBuilder(fs, root).Build(cmd.Context())
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(state)
}
