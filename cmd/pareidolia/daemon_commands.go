package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"pareidolia/internal/daemonctl"
	"pareidolia/internal/deps"
	"pareidolia/internal/ipc"
)

func newDaemonCommands(ctx *commandContext) []*cobra.Command {
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start the pareidolia daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			exe, err := daemonctl.ResolveDaemonExecutable()
			if err != nil {
				return err
			}

			result, err := daemonctl.EnsureStarted(
				ctx.socketPath(),
				exe,
				daemonLaunchOptions(ctx),
				10*time.Second,
			)
			if err != nil {
				return err
			}

			if result.Launched {
				fmt.Fprintln(stdout, "Daemon not running, launching...")
			}

			switch result.State {
			case daemonctl.StartStateStarted:
				fmt.Fprintln(stdout, "Daemon started")
			case daemonctl.StartStateAlreadyRunning:
				fmt.Fprintln(stdout, "Daemon already running")
			case daemonctl.StartStateRequested:
				if strings.TrimSpace(result.Message) != "" {
					fmt.Fprintln(stdout, result.Message)
					return nil
				}
				fmt.Fprintln(stdout, "Start request sent")
			}
			return nil
		},
	}

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the pareidolia daemon (completely terminates the process)",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			result, err := daemonctl.StopAndTerminate(ctx.socketPath(), ctx.configValue(), 5*time.Second)
			if errors.Is(err, daemonctl.ErrDaemonNotRunning) {
				fmt.Fprintln(stdout, "Daemon is not running")
				return nil
			}
			if err != nil {
				return err
			}
			if !result.StopAcknowledged {
				fmt.Fprintln(stdout, "Stop request sent")
			}
			if result.ForcedKill && result.PID > 0 {
				fmt.Fprintf(stdout, "Stopping daemon process (pid %d)...\n", result.PID)
			}
			fmt.Fprintln(stdout, "Daemon stopped")
			return nil
		},
	}

	restartCmd := &cobra.Command{
		Use:   "restart",
		Short: "Restart the pareidolia daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			exe, err := daemonctl.ResolveDaemonExecutable()
			if err != nil {
				return err
			}

			result, err := daemonctl.Restart(
				ctx.socketPath(),
				ctx.configValue(),
				exe,
				daemonLaunchOptions(ctx),
				5*time.Second,
				10*time.Second,
			)
			if err != nil {
				return err
			}

			if result.WasRunning {
				if result.Stop.ForcedKill && result.Stop.PID > 0 {
					fmt.Fprintf(stdout, "Stopping daemon process (pid %d)...\n", result.Stop.PID)
				}
				fmt.Fprintln(stdout, "Daemon stopped")
			}

			switch result.Start.State {
			case daemonctl.StartStateStarted, daemonctl.StartStateAlreadyRunning:
				fmt.Fprintln(stdout, "Daemon restarted")
			case daemonctl.StartStateRequested:
				if strings.TrimSpace(result.Start.Message) != "" {
					fmt.Fprintln(stdout, result.Start.Message)
					return nil
				}
				fmt.Fprintln(stdout, "Start request sent")
			}
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon and storage status",
		RunE: func(cmd *cobra.Command, args []string) error {
			status := buildStatusSnapshot(ctx)
			stdout := cmd.OutOrStdout()
			colorize := shouldColorize(stdout)

			for _, line := range renderSectionHeader("Daemon", colorize) {
				fmt.Fprintln(stdout, line)
			}
			runningKind := statusError
			runningDetail := "Not running"
			if status.Running {
				runningKind = statusOK
				runningDetail = fmt.Sprintf("Running (pid %d)", status.PID)
			}
			fmt.Fprintln(stdout, renderStatusLine("Pareidolia", runningKind, runningDetail, colorize))
			if status.IngestAddr != "" {
				fmt.Fprintln(stdout, renderStatusLine("Ingest", statusOK, status.IngestAddr, colorize))
			}
			envKind := statusWarn
			envDetail := "Not provisioned (run `pareidolia env provision`)"
			if status.EnvReady {
				envKind = statusOK
				envDetail = "Provisioned"
			}
			fmt.Fprintln(stdout, renderStatusLine("Environment", envKind, envDetail, colorize))
			fmt.Fprintln(stdout)

			for _, line := range renderSectionHeader("Dependencies", colorize) {
				fmt.Fprintln(stdout, line)
			}
			for _, line := range dependencyLines(status.Dependencies, colorize) {
				fmt.Fprintln(stdout, line)
			}
			fmt.Fprintln(stdout)

			for _, line := range renderSectionHeader("Storage", colorize) {
				fmt.Fprintln(stdout, line)
			}
			if status.DataRoot != "" {
				fmt.Fprintln(stdout, renderStatusLine("Data root", statusInfo, status.DataRoot, colorize))
			}
			if status.HistoryDBPath != "" {
				fmt.Fprintln(stdout, renderStatusLine("Job history", statusInfo, status.HistoryDBPath, colorize))
			}
			fmt.Fprintln(stdout)

			for _, line := range renderSectionHeader("Jobs", colorize) {
				fmt.Fprintln(stdout, line)
			}
			if status.Jobs.Total == 0 {
				fmt.Fprintln(stdout, "No jobs recorded")
				return nil
			}
			rows := [][]string{
				{"Total", strconv.FormatInt(status.Jobs.Total, 10)},
				{"Succeeded", strconv.FormatInt(status.Jobs.Succeeded, 10)},
				{"Failed", strconv.FormatInt(status.Jobs.Failed, 10)},
			}
			fmt.Fprintln(stdout, renderTable([]tableColumn{
				{Header: "Outcome"},
				{Header: "Count", Align: alignRight},
			}, rows))
			return nil
		},
	}

	return []*cobra.Command{startCmd, stopCmd, restartCmd, statusCmd}
}

// buildStatusSnapshot collects daemon status, falling back to local dependency
// checks when the daemon is offline.
func buildStatusSnapshot(ctx *commandContext) *ipc.StatusResponse {
	status := &ipc.StatusResponse{}

	if client, err := ctx.dialClient(); err == nil {
		if resp, statusErr := client.Status(); statusErr == nil && resp != nil {
			status = resp
		}
		_ = client.Close()
	}

	cfg := ctx.configValue()
	if status.DataRoot == "" && cfg != nil {
		status.DataRoot = cfg.Paths.DataRoot
	}
	if len(status.Dependencies) == 0 {
		for _, dep := range deps.CheckBinaries(deps.Default(cfg)) {
			status.Dependencies = append(status.Dependencies, ipc.DependencyStatus{
				Name:        dep.Name,
				Command:     dep.Command,
				Description: dep.Description,
				Optional:    dep.Optional,
				Available:   dep.Available,
				Detail:      dep.Detail,
			})
		}
	}
	return status
}

func dependencyLines(deps []ipc.DependencyStatus, colorize bool) []string {
	lines := make([]string, 0, len(deps)+1)
	missing := make([]string, 0)
	for _, dep := range deps {
		if dep.Available {
			message := "Ready"
			if dep.Command != "" {
				message = fmt.Sprintf("Ready (command: %s)", dep.Command)
			}
			lines = append(lines, renderStatusLine(dep.Name, statusOK, message, colorize))
			continue
		}

		detail := strings.TrimSpace(dep.Detail)
		if detail == "" {
			detail = "not available"
		}
		kind := statusError
		if dep.Optional {
			kind = statusWarn
		}
		lines = append(lines, renderStatusLine(dep.Name, kind, detail, colorize))
		missing = append(missing, dep.Name)
	}
	if len(missing) > 0 {
		lines = append(lines, renderStatusLine("Missing", statusWarn, strings.Join(missing, ", "), colorize))
	}
	return lines
}

func daemonLaunchOptions(ctx *commandContext) daemonctl.LaunchOptions {
	opts := daemonctl.LaunchOptions{}
	if ctx.configFlag != nil {
		if config := strings.TrimSpace(*ctx.configFlag); config != "" {
			opts.ConfigPath = config
		}
	}
	return opts
}
