package executor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
)

var commandContext = exec.CommandContext

// ShellRunner returns the default process-backed command runner.
func ShellRunner() CommandRunner { return shellRunner{} }

// shellRunner executes real processes, streaming stdout and stderr lines to
// the provided callbacks as they arrive.
type shellRunner struct{}

func (shellRunner) Run(ctx context.Context, binary string, args []string, onStdout, onStderr func(string)) error {
	cmd := commandContext(ctx, binary, args...) //nolint:gosec

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return err
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		streamLines(stdout, onStdout)
	}()
	go func() {
		defer wg.Done()
		streamLines(stderr, onStderr)
	}()

	wg.Wait()
	return cmd.Wait()
}

// streamLines delivers each line of r to emit and always drains r to EOF so
// the child process never blocks on a full pipe. Lines may be arbitrarily
// long, and bare carriage returns split into separate lines because progress
// renderers rewrite a line in place without ever emitting a newline.
func streamLines(r io.Reader, emit func(string)) {
	if emit == nil {
		io.Copy(io.Discard, r) //nolint:errcheck
		return
	}
	reader := bufio.NewReader(r)
	for {
		raw, err := reader.ReadString('\n')
		line := strings.TrimRight(raw, "\r\n")
		if line != "" || err == nil {
			for _, piece := range strings.Split(line, "\r") {
				emit(piece)
			}
		}
		if err != nil {
			return
		}
	}
}

var _ CommandRunner = shellRunner{}
