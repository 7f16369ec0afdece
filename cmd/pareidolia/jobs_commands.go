package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pareidolia/internal/ipc"
)

func newJobsCommand(ctx *commandContext) *cobra.Command {
	jobsCmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect external job history",
	}

	var limit int
	var listJSON bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent jobs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.JobList(limit)
				if err != nil {
					return err
				}
				if listJSON {
					return writeJSON(cmd, resp.Jobs)
				}
				stdout := cmd.OutOrStdout()
				if len(resp.Jobs) == 0 {
					fmt.Fprintln(stdout, "No jobs recorded")
					return nil
				}
				rows := make([][]string, 0, len(resp.Jobs))
				for _, job := range resp.Jobs {
					outcome := "ok"
					if !job.Success {
						outcome = "failed"
					}
					rows = append(rows, []string{
						shortID(job.ID),
						job.Kind,
						outcome,
						job.Started.Local().Format(time.DateTime),
						formatSeconds(job.Duration),
					})
				}
				fmt.Fprintln(stdout, renderTable([]tableColumn{
					{Header: "ID"},
					{Header: "Kind"},
					{Header: "Outcome"},
					{Header: "Started"},
					{Header: "Duration", Align: alignRight},
				}, rows))
				return nil
			})
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of jobs to show")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one job in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.JobDescribe(args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd, resp.Job)
			})
		},
	}

	jobsCmd.AddCommand(listCmd)
	jobsCmd.AddCommand(showCmd)
	return jobsCmd
}
