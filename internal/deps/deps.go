// Package deps reports availability of the external binaries Pareidolia
// shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"pareidolia/internal/config"
)

// Requirement defines an external dependency the daemon relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Default returns the requirements for a configured daemon.
func Default(cfg *config.Config) []Requirement {
	interpreter := "python3"
	if cfg != nil && strings.TrimSpace(cfg.Python.Interpreter) != "" {
		interpreter = cfg.Python.Interpreter
	}
	return []Requirement{
		{
			Name:        "Python",
			Command:     interpreter,
			Description: "Bootstraps the managed environment and runs scripts when no environment exists",
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
