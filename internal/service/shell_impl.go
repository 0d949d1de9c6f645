package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/compozy/releasetag/internal/domain"
)

// shellService is the implementation of the ShellService interface.
type shellService struct {
	workDir string
	shell   string
}

// NewShellService creates a new ShellService bound to workDir, which must exist.
func NewShellService(workDir string) (ShellService, error) {
	if workDir == "" {
		return nil, fmt.Errorf("working directory cannot be empty")
	}
	info, err := os.Stat(workDir)
	if err != nil {
		return nil, fmt.Errorf("failed to access working directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("working directory %s is not a directory", workDir)
	}
	return &shellService{workDir: workDir, shell: DefaultShell}, nil
}

// WorkDir returns the directory commands run in.
func (s *shellService) WorkDir() string {
	return s.workDir
}

// Execute runs the command line and delivers its combined output once.
func (s *shellService) Execute(ctx context.Context, commandLine string, onOutput func([]string)) error {
	lines, err := s.run(ctx, commandLine)
	if err != nil {
		return err
	}
	if onOutput != nil {
		onOutput(lines)
	}
	return nil
}

// Run runs the command line and returns its combined output.
func (s *shellService) Run(ctx context.Context, commandLine string) ([]string, error) {
	return s.run(ctx, commandLine)
}

func (s *shellService) run(ctx context.Context, commandLine string) ([]string, error) {
	cmd := exec.CommandContext(ctx, s.shell, DefaultShellFlag, commandLine)
	cmd.Dir = s.workDir
	// A single buffer keeps stdout and stderr in emission order.
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output
	err := cmd.Run()
	lines := splitLines(output.String())
	if err != nil {
		failure := &domain.CommandFailure{
			CommandLine: commandLine,
			ExitCode:    -1,
			Output:      lines,
			Err:         err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			failure.ExitCode = exitErr.ExitCode()
		}
		return nil, failure
	}
	return lines, nil
}

// splitLines splits command output into lines, dropping the trailing newline.
func splitLines(output string) []string {
	output = strings.TrimRight(output, "\r\n")
	if output == "" {
		return []string{}
	}
	lines := strings.Split(output, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
