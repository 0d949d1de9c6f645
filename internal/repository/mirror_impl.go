package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/compozy/releasetag/internal/config"
	"github.com/google/go-github/v74/github"
	"golang.org/x/oauth2"
)

// ErrMirrorNotConfigured is returned by the noop mirror when no GitHub token is set.
var ErrMirrorNotConfigured = errors.New("public mirror verification is not configured")

// githubMirrorRepository is the go-github implementation of MirrorRepository.
type githubMirrorRepository struct {
	client *github.Client
	owner  string
	repo   string
}

// NewMirrorRepository creates a MirrorRepository for owner/repo with validation.
func NewMirrorRepository(token, owner, repo string) (MirrorRepository, error) {
	if err := config.ValidateGitHubToken(token); err != nil {
		return nil, fmt.Errorf("invalid GitHub token: %w", err)
	}
	if err := config.ValidateGitHubOwnerRepo(owner, repo); err != nil {
		return nil, fmt.Errorf("invalid repository configuration: %w", err)
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: strings.TrimSpace(token)},
	)
	tc := oauth2.NewClient(context.Background(), ts)
	return newGithubMirrorRepository(github.NewClient(tc), owner, repo), nil
}

func newGithubMirrorRepository(client *github.Client, owner, repo string) *githubMirrorRepository {
	return &githubMirrorRepository{client: client, owner: owner, repo: repo}
}

// TagExists reports whether refs/tags/<tag> exists on the mirror.
func (r *githubMirrorRepository) TagExists(ctx context.Context, tag string) (bool, error) {
	_, resp, err := r.client.Git.GetRef(ctx, r.owner, r.repo, "tags/"+tag)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to get tag %s from %s: %w", tag, r.Slug(), err)
	}
	return true, nil
}

// Slug returns owner/repo.
func (r *githubMirrorRepository) Slug() string {
	return r.owner + "/" + r.repo
}

// githubNoopMirrorRepository is used when no GitHub token is configured.
type githubNoopMirrorRepository struct {
	owner string
	repo  string
}

// NewNoopMirrorRepository creates a MirrorRepository that refuses every check.
func NewNoopMirrorRepository(owner, repo string) MirrorRepository {
	return &githubNoopMirrorRepository{owner: owner, repo: repo}
}

func (r *githubNoopMirrorRepository) TagExists(_ context.Context, tag string) (bool, error) {
	return false, fmt.Errorf("cannot check tag %s on %s: %w", tag, r.Slug(), ErrMirrorNotConfigured)
}

func (r *githubNoopMirrorRepository) Slug() string {
	return r.owner + "/" + r.repo
}
