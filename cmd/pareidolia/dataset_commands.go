package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pareidolia/internal/ipc"
	"pareidolia/internal/textutil"
)

func newDatasetCommand(ctx *commandContext) *cobra.Command {
	datasetCmd := &cobra.Command{
		Use:   "dataset",
		Short: "Manage dataset projects",
	}

	var listJSON bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List dataset projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.DatasetList()
				if err != nil {
					return err
				}
				if listJSON {
					return writeJSON(cmd, resp.Datasets)
				}
				return printProjects(cmd, "dataset", resp.Datasets)
			})
		},
	}
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")

	createCmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a dataset project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.DatasetCreate(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created dataset %s at %s\n", args[0], resp.Path)
				return nil
			})
		},
	}

	var imagesJSON bool
	imagesCmd := &cobra.Command{
		Use:   "images <path>",
		Short: "List the images directly under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.ImageList(args[0])
				if err != nil {
					return err
				}
				if imagesJSON {
					return writeJSON(cmd, resp.Images)
				}
				stdout := cmd.OutOrStdout()
				if len(resp.Images) == 0 {
					fmt.Fprintln(stdout, "No images found")
					return nil
				}
				for _, image := range resp.Images {
					fmt.Fprintln(stdout, image.Name)
				}
				return nil
			})
		},
	}
	imagesCmd.Flags().BoolVar(&imagesJSON, "json", false, "Output as JSON")

	datasetCmd.AddCommand(listCmd)
	datasetCmd.AddCommand(createCmd)
	datasetCmd.AddCommand(imagesCmd)
	return datasetCmd
}

func printProjects(cmd *cobra.Command, kind string, projects []ipc.Project) error {
	stdout := cmd.OutOrStdout()
	if len(projects) == 0 {
		fmt.Fprintf(stdout, "No %s projects found\n", kind)
		return nil
	}
	rows := make([][]string, 0, len(projects))
	for _, project := range projects {
		rows = append(rows, []string{project.Name, textutil.DisplayLabel(project.Name), project.Path})
	}
	fmt.Fprintln(stdout, renderTable([]tableColumn{
		{Header: "Name"},
		{Header: "Label"},
		{Header: "Path", MaxWidth: 60},
	}, rows))
	return nil
}
