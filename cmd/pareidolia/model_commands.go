package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pareidolia/internal/ipc"
)

func newModelCommand(ctx *commandContext) *cobra.Command {
	modelCmd := &cobra.Command{
		Use:   "model",
		Short: "Manage model projects",
	}

	var listJSON bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List model projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.ModelList()
				if err != nil {
					return err
				}
				if listJSON {
					return writeJSON(cmd, resp.Models)
				}
				return printProjects(cmd, "model", resp.Models)
			})
		},
	}
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")

	createCmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a model project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.ModelCreate(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created model %s at %s\n", args[0], resp.Path)
				return nil
			})
		},
	}

	modelCmd.AddCommand(listCmd)
	modelCmd.AddCommand(createCmd)
	return modelCmd
}
