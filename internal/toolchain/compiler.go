package toolchain

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/toyz/implgen/internal/errors"
)

// DefaultCompileCommand is used when no compiler command is configured
const DefaultCompileCommand = "javac -encoding UTF-8"

// Compiler turns source files into class files next to them
type Compiler interface {
	Compile(ctx context.Context, sources []string) error
}

// JavacCompiler runs an external javac-compatible command
type JavacCompiler struct {
	Command   string // shell-quoted command line, sources are appended
	Classpath string // passed with -cp when set
	Dir       string // working directory, the current one when empty
}

// NewJavacCompiler creates a compiler for command, falling back to the default command
func NewJavacCompiler(command, classpath string) *JavacCompiler {
	if strings.TrimSpace(command) == "" {
		command = DefaultCompileCommand
	}
	return &JavacCompiler{
		Command:   command,
		Classpath: classpath,
	}
}

// Args returns the full argument vector for compiling sources
func (c *JavacCompiler) Args(sources []string) ([]string, error) {
	args, err := shellquote.Split(c.Command)
	if err != nil {
		return nil, fmt.Errorf("invalid compiler command %q: %w", c.Command, err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("empty compiler command")
	}
	if c.Classpath != "" {
		args = append(args, "-cp", c.Classpath)
	}
	return append(args, sources...), nil
}

// Compile runs the command once. A non-zero exit is a Compile error that
// carries the command output.
func (c *JavacCompiler) Compile(ctx context.Context, sources []string) error {
	args, err := c.Args(sources)
	if err != nil {
		return errors.WrapCompileError(sources, err)
	}

	var output bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = c.Dir
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		compileErr := errors.WrapCompileError(sources, err)
		compileErr.WithContext("command", shellquote.Join(args...))
		if out := strings.TrimSpace(output.String()); out != "" {
			compileErr.WithContext("output", out)
		}
		return compileErr
	}
	return nil
}
