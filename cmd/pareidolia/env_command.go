package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pareidolia/internal/ipc"
)

func newEnvCommand(ctx *commandContext) *cobra.Command {
	envCmd := &cobra.Command{
		Use:   "env",
		Short: "Manage the Python execution environment",
	}

	provisionCmd := &cobra.Command{
		Use:   "provision",
		Short: "Create the environment if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				stdout := cmd.OutOrStdout()
				fmt.Fprintln(stdout, "Provisioning environment (this can take a while on first run)...")
				resp, err := client.EnvProvision()
				if err != nil {
					return err
				}
				if !resp.Success {
					return fmt.Errorf("environment provisioning failed: %s", resp.Error)
				}
				if resp.Reused {
					fmt.Fprintf(stdout, "Environment already provisioned at %s\n", resp.Path)
				} else {
					fmt.Fprintf(stdout, "Environment created at %s\n", resp.Path)
				}
				fmt.Fprintf(stdout, "Interpreter: %s\n", resp.Interpreter)
				return nil
			})
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show environment readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Status()
				if err != nil {
					return err
				}
				stdout := cmd.OutOrStdout()
				fmt.Fprintf(stdout, "Provisioned: %s\n", yesNo(resp.EnvReady))
				return nil
			})
		},
	}

	envCmd.AddCommand(provisionCmd)
	envCmd.AddCommand(statusCmd)
	return envCmd
}
