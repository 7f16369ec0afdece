package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pareidolia/internal/config"
	"pareidolia/internal/ipc"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <video> <dataset>",
		Short: "Extract frame images from a video into a dataset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoPath, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve video path: %w", err)
			}
			if _, err := os.Stat(videoPath); err != nil {
				return fmt.Errorf("inspect video %q: %w", videoPath, err)
			}

			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.VideoConvert(videoPath, args[1])
				if err != nil {
					return err
				}
				printJobResult(cmd, resp.Result)
				if !resp.Result.Success {
					return fmt.Errorf("conversion failed")
				}
				return nil
			})
		},
	}
}

func printJobResult(cmd *cobra.Command, result ipc.JobResult) {
	stdout := cmd.OutOrStdout()
	colorize := shouldColorize(stdout)
	detail := result.Output
	if !result.Success {
		detail = result.Error
	}
	fmt.Fprintln(stdout, renderStatusLine("Result", resultKind(result.Success), truncate(detail, 200), colorize))
	fmt.Fprintln(stdout, renderStatusLine("Elapsed", statusInfo, formatSeconds(result.ExecutionTime), colorize))
}
