package orchestrator

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Mock for GitRepository
type mockGitRepository struct{ mock.Mock }

func (m *mockGitRepository) GetCurrentBranch(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
func (m *mockGitRepository) GetHeadCommit(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
func (m *mockGitRepository) TagExists(ctx context.Context, tag string) (bool, error) {
	args := m.Called(ctx, tag)
	return args.Bool(0), args.Error(1)
}
func (m *mockGitRepository) TagsAt(ctx context.Context, rev string) ([]string, error) {
	args := m.Called(ctx, rev)
	if tags := args.Get(0); tags != nil {
		return tags.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockGitRepository) RemoteNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if names := args.Get(0); names != nil {
		return names.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

// Mock for TagRepository
type mockTagRepository struct{ mock.Mock }

func (m *mockTagRepository) TagReleaseVersion(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
func (m *mockTagRepository) TagBomVersion(ctx context.Context, version string) error {
	return m.Called(ctx, version).Error(0)
}
func (m *mockTagRepository) TagProductVersion(ctx context.Context, product, version string) error {
	return m.Called(ctx, product, version).Error(0)
}
func (m *mockTagRepository) PushCreatedTags(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
func (m *mockTagRepository) PushTags(ctx context.Context, remote string) error {
	return m.Called(ctx, remote).Error(0)
}
func (m *mockTagRepository) TagsAt(ctx context.Context, rev string) ([]string, error) {
	args := m.Called(ctx, rev)
	if tags := args.Get(0); tags != nil {
		return tags.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockTagRepository) Remotes() []string {
	return []string{"origin", "public"}
}

// Mock for MirrorRepository
type mockMirrorRepository struct{ mock.Mock }

func (m *mockMirrorRepository) TagExists(ctx context.Context, tag string) (bool, error) {
	args := m.Called(ctx, tag)
	return args.Bool(0), args.Error(1)
}
func (m *mockMirrorRepository) Slug() string {
	return "firebase/firebase-android-sdk"
}
