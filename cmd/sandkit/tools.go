package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newToolsCommand() *cobra.Command {
	toolsCommand := &cobra.Command{
		Use:   "tools",
		Short: "List the available tool declarations",
		Args:  cobra.NoArgs,
		RunE:  toolsAction,
	}

	toolsCommand.Flags().BoolP("quiet", "q", false, "Only show tool names")

	return toolsCommand
}

func toolsAction(cmd *cobra.Command, _ []string) error {
	reg, err := buildRegistry(cmd)
	if err != nil {
		return err
	}

	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return err
	}
	if quiet {
		for _, name := range reg.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(reg.Declarations())
}
