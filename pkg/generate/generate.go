// Package generate runs the external "netplan generate" step that turns the
// YAML config set into backend configuration.
package generate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/yaobinwen/netplan/pkg/nperrors"
)

const (
	// DefaultCommand is used when neither the configuration nor the
	// environment name a command.
	DefaultCommand = "netplan"
	// EnvCommand overrides the configured command.
	EnvCommand = "NETPLAN_GENERATE_CMD"
)

// ExecFunc runs name with args and returns its standard error output.
type ExecFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Runner invokes "<command> generate --root-dir <root>". Command is split
// with shell quoting rules, so it may carry its own arguments.
type Runner struct {
	Command string
	Exec    ExecFunc
}

// NewRunner returns a Runner for command. The NETPLAN_GENERATE_CMD
// environment variable takes precedence, and DefaultCommand is used when
// both are empty.
func NewRunner(command string) *Runner {
	if env := strings.TrimSpace(os.Getenv(EnvCommand)); env != "" {
		command = env
	}
	if strings.TrimSpace(command) == "" {
		command = DefaultCommand
	}
	return &Runner{Command: command, Exec: execCommand}
}

// Argv returns the full argument vector for root.
func (r *Runner) Argv(root string) ([]string, error) {
	words, err := shellquote.Split(r.Command)
	if err != nil {
		return nil, nperrors.New(nperrors.KindMalformedInput, fmt.Errorf("parse generate command %q: %w", r.Command, err))
	}
	if len(words) == 0 {
		return nil, nperrors.New(nperrors.KindMalformedInput, errors.New("generate command is empty"))
	}
	if root == "" {
		root = "/"
	}
	return append(words, "generate", "--root-dir", root), nil
}

// Run executes the generate step and waits for it to finish.
func (r *Runner) Run(ctx context.Context, root string) error {
	argv, err := r.Argv(root)
	if err != nil {
		return err
	}
	run := r.Exec
	if run == nil {
		run = execCommand
	}

	slog.Debug("running generate", "command", shellquote.Join(argv...))
	stderr, err := run(ctx, argv[0], argv[1:]...)
	if err != nil {
		msg := strings.TrimSpace(string(stderr))
		if msg != "" {
			return nperrors.New(nperrors.KindIO, fmt.Errorf("%s failed: %s: %w", shellquote.Join(argv...), msg, err))
		}
		return nperrors.New(nperrors.KindIO, fmt.Errorf("%s failed: %w", shellquote.Join(argv...), err))
	}
	return nil
}

func execCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.Bytes(), err
}
