package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pareidolia/internal/ipc"
)

func newTrainCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "train <model> <dataset>",
		Short: "Train a model against a dataset",
		Long: "Runs the training script with the dataset's positives and negatives " +
			"directories and exports the mobile artifact into the model's output " +
			"directory. Epoch count comes from the model's settings record.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				fmt.Fprintf(cmd.OutOrStdout(), "Training %s against %s...\n", args[0], args[1])
				resp, err := client.Train(args[0], args[1])
				if err != nil {
					return err
				}
				printJobResult(cmd, resp.Result)
				if !resp.Result.Success {
					return fmt.Errorf("training failed")
				}
				return nil
			})
		},
	}
}
