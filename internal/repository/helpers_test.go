package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/compozy/releasetag/internal/domain"
	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// setupTestRepo creates a repository with one commit on branch and returns
// the working tree, the repository and the session pointing at HEAD.
func setupTestRepo(t *testing.T, branch string) (string, *git.Repository, domain.Session) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.txt"), []byte("hello git!"), 0644))
	_, err = wt.Add("hello.txt")
	require.NoError(t, err)
	hash, err := wt.Commit("init", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test User",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)
	branchRef := plumbing.NewBranchReferenceName(branch)
	require.NoError(t, repo.Storer.SetReference(plumbing.NewHashReference(branchRef, hash)))
	require.NoError(t, repo.Storer.SetReference(plumbing.NewSymbolicReference(plumbing.HEAD, branchRef)))
	return dir, repo, domain.Session{Branch: branch, Commit: hash.String()}
}

// addBareRemote creates a bare repository and registers it as a remote.
func addBareRemote(t *testing.T, repo *git.Repository, name string) *git.Repository {
	t.Helper()
	dir := t.TempDir()
	bare, err := git.PlainInit(dir, true)
	require.NoError(t, err)
	_, err = repo.CreateRemote(&gitconfig.RemoteConfig{Name: name, URLs: []string{dir}})
	require.NoError(t, err)
	return bare
}

// recordingShell is a ShellService stub that records command lines and fails
// the commands listed in failOn.
type recordingShell struct {
	commands []string
	failOn   map[string]int
	output   map[string][]string
}

func newRecordingShell() *recordingShell {
	return &recordingShell{failOn: map[string]int{}, output: map[string][]string{}}
}

func (s *recordingShell) Execute(_ context.Context, commandLine string, onOutput func([]string)) error {
	s.commands = append(s.commands, commandLine)
	if code, ok := s.failOn[commandLine]; ok {
		return &domain.CommandFailure{CommandLine: commandLine, ExitCode: code}
	}
	if onOutput != nil {
		lines, ok := s.output[commandLine]
		if !ok {
			lines = []string{"Executed: " + commandLine}
		}
		onOutput(lines)
	}
	return nil
}

func (s *recordingShell) Run(ctx context.Context, commandLine string) ([]string, error) {
	var lines []string
	err := s.Execute(ctx, commandLine, func(out []string) { lines = out })
	return lines, err
}

func (s *recordingShell) WorkDir() string {
	return "/repo"
}

func (s *recordingShell) countPrefix(prefix string) int {
	n := 0
	for _, c := range s.commands {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}
