package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pareidolia/internal/ipc"
)

func newAddressCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Show the URL the mobile app should pair with",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.NetworkAddress()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), resp.Address)
				return nil
			})
		},
	}
}
