package repository

import "context"

// TagRepository applies the release tag naming and push policy on top of a
// shell bound to the repository's working tree.

type TagRepository interface {
	TagReleaseVersion(ctx context.Context) error
	TagBomVersion(ctx context.Context, version string) error
	TagProductVersion(ctx context.Context, product, version string) error
	PushCreatedTags(ctx context.Context) error
	PushTags(ctx context.Context, remote string) error
	TagsAt(ctx context.Context, rev string) ([]string, error)
	Remotes() []string
}
