package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type mockGitRepository struct {
	mock.Mock
}

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

type mockTagRepository struct {
	mock.Mock
}

func (m *mockTagRepository) TagReleaseVersion(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockTagRepository) TagBomVersion(ctx context.Context, version string) error {
	args := m.Called(ctx, version)
	return args.Error(0)
}

func (m *mockTagRepository) TagProductVersion(ctx context.Context, product, version string) error {
	args := m.Called(ctx, product, version)
	return args.Error(0)
}

func (m *mockTagRepository) PushCreatedTags(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockTagRepository) PushTags(ctx context.Context, remote string) error {
	args := m.Called(ctx, remote)
	return args.Error(0)
}

func (m *mockTagRepository) TagsAt(ctx context.Context, rev string) ([]string, error) {
	args := m.Called(ctx, rev)
	if tags := args.Get(0); tags != nil {
		return tags.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTagRepository) Remotes() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

type mockMirrorRepository struct {
	mock.Mock
}

func (m *mockMirrorRepository) TagExists(ctx context.Context, tag string) (bool, error) {
	args := m.Called(ctx, tag)
	return args.Bool(0), args.Error(1)
}

func (m *mockMirrorRepository) Slug() string {
	return m.Called().String(0)
}
