package pipeline

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Runner executes an external bundler command in a working directory.
// The orchestrator only ever sees the exit status; output handling is the
// runner's concern.
type Runner interface {
	Run(command, dir string) error
}

// ShellRunner runs commands through sh -c. When Quiet is set the output is
// captured and only surfaced inside the error on a nonzero exit.
type ShellRunner struct {
	Quiet bool
}

func (r ShellRunner) Run(command, dir string) error {
	cmd := exec.Command("sh", "-c", command)
	cmd.Dir = dir

	if !r.Quiet {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr

		if err := cmd.Run(); err != nil {
			return fmt.Errorf("command failed: %s: %w", command, err)
		}
		return nil
	}

	var output strings.Builder
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		if out := strings.TrimSpace(output.String()); out != "" {
			return fmt.Errorf("command failed: %s: %w\n%s", command, err, out)
		}
		return fmt.Errorf("command failed: %s: %w", command, err)
	}
	return nil
}
