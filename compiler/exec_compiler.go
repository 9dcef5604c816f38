package compiler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/meysamhadeli/jjgen/generator/contracts"
)

// DefaultCommand runs the javacc launcher found on PATH.
var DefaultCommand = []string{"javacc"}

// ExecCompiler runs the grammar compiler as a child process. The argument
// vector is appended to Command.
type ExecCompiler struct {
	Command []string
	Dir     string
	Stdout  io.Writer
	Stderr  io.Writer
}

var _ contracts.ICompiler = (*ExecCompiler)(nil)

// NewExecCompiler creates a compiler for the given command, falling back to
// DefaultCommand when it is empty.
func NewExecCompiler(command []string) *ExecCompiler {
	if len(command) == 0 {
		command = DefaultCommand
	}
	return &ExecCompiler{
		Command: append([]string(nil), command...),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// CommandLine returns the full command that Compile would run.
func (c *ExecCompiler) CommandLine(args []string) []string {
	line := make([]string, 0, len(c.Command)+len(args))
	line = append(line, c.Command...)
	return append(line, args...)
}

// Compile runs the compiler and waits for it. A non-zero exit status is an error.
func (c *ExecCompiler) Compile(ctx context.Context, args []string) error {
	if len(c.Command) == 0 {
		return fmt.Errorf("empty compiler command")
	}

	line := c.CommandLine(args)
	cmd := exec.CommandContext(ctx, line[0], line[1:]...)
	cmd.Dir = c.Dir
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%s exited with status %d: %w", line[0], exitErr.ExitCode(), err)
		}
		return fmt.Errorf("failed to run %s: %w", line[0], err)
	}
	return nil
}

// Func adapts an in-process compiler entry point.
type Func func(ctx context.Context, args []string) error

var _ contracts.ICompiler = Func(nil)

func (f Func) Compile(ctx context.Context, args []string) error {
	return f(ctx, args)
}
