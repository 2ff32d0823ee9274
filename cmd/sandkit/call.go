package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newCallCommand() *cobra.Command {
	callCommand := &cobra.Command{
		Use:   "call TOOL",
		Short: "Execute a tool with JSON arguments",
		Args:  cobra.ExactArgs(1),
		RunE:  callAction,
	}

	callCommand.Flags().StringP("args", "a", "{}", "Tool arguments as a JSON object")

	return callCommand
}

func callAction(cmd *cobra.Command, args []string) error {
	reg, err := buildRegistry(cmd)
	if err != nil {
		return err
	}

	rawArgs, err := cmd.Flags().GetString("args")
	if err != nil {
		return err
	}

	toolArgs := map[string]any{}
	if err := json.Unmarshal([]byte(rawArgs), &toolArgs); err != nil {
		return fmt.Errorf("parsing --args: %w", err)
	}

	res := reg.Execute(cmd.Context(), args[0], toolArgs)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return err
	}

	if !res.Success {
		return fmt.Errorf("%s failed", args[0])
	}
	return nil
}
