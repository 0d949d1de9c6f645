package repository

import "context"

// MirrorRepository defines the interface for checking tags on the public GitHub mirror.

type MirrorRepository interface {
	TagExists(ctx context.Context, tag string) (bool, error)
	Slug() string
}
