package animate

import (
	"bytes"
	"context"
	"os/exec"
)

// CommandRunner finds and runs external programs. Tests substitute a fake.
type CommandRunner interface {
	LookPath(file string) (string, error)

	// Run executes name with args and returns its captured stderr.
	Run(ctx context.Context, name string, args []string) (stderr string, err error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// LookPath implements CommandRunner.
func (ExecRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run implements CommandRunner.
func (ExecRunner) Run(ctx context.Context, name string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.String(), err
}
