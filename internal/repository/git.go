package repository

import "context"

// GitRepository defines the read-only Git queries used to capture a release session.

type GitRepository interface {
	GetCurrentBranch(ctx context.Context) (string, error)
	GetHeadCommit(ctx context.Context) (string, error)
	TagExists(ctx context.Context, tag string) (bool, error)
	TagsAt(ctx context.Context, rev string) ([]string, error)
	RemoteNames(ctx context.Context) ([]string, error)
}
