package service

import (
	"context"
	"sync"
)

// DryRunShellService records command lines instead of executing them. Each
// command "succeeds" with a single "Executed: <command>" output line.
type DryRunShellService struct {
	workDir  string
	mu       sync.Mutex
	commands []string
}

// NewDryRunShellService creates a new DryRunShellService
func NewDryRunShellService(workDir string) *DryRunShellService {
	return &DryRunShellService{workDir: workDir}
}

func (s *DryRunShellService) WorkDir() string {
	return s.workDir
}

func (s *DryRunShellService) Execute(_ context.Context, commandLine string, onOutput func([]string)) error {
	s.mu.Lock()
	s.commands = append(s.commands, commandLine)
	s.mu.Unlock()
	if onOutput != nil {
		onOutput([]string{DryRunOutputPrefix + commandLine})
	}
	return nil
}

func (s *DryRunShellService) Run(ctx context.Context, commandLine string) ([]string, error) {
	var lines []string
	err := s.Execute(ctx, commandLine, func(out []string) { lines = out })
	return lines, err
}

// Commands returns the recorded command lines in execution order
func (s *DryRunShellService) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...)
}
