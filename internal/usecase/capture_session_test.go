package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/compozy/releasetag/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureSessionUseCase_Execute(t *testing.T) {
	t.Run("Should capture branch and commit", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		uc := &CaptureSessionUseCase{GitRepo: gitRepo}
		ctx := context.Background()
		gitRepo.On("GetCurrentBranch", ctx).Return("release-1.2", nil)
		gitRepo.On("GetHeadCommit", ctx).Return("abc123", nil)
		session, err := uc.Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.Session{Branch: "release-1.2", Commit: "abc123"}, session)
		gitRepo.AssertExpectations(t)
	})
	t.Run("Should handle error when reading the branch", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		uc := &CaptureSessionUseCase{GitRepo: gitRepo}
		ctx := context.Background()
		gitRepo.On("GetCurrentBranch", ctx).Return("", errors.New("HEAD is detached"))
		_, err := uc.Execute(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get current branch")
		gitRepo.AssertNotCalled(t, "GetHeadCommit", ctx)
	})
	t.Run("Should handle error when reading the commit", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		uc := &CaptureSessionUseCase{GitRepo: gitRepo}
		ctx := context.Background()
		gitRepo.On("GetCurrentBranch", ctx).Return("main", nil)
		gitRepo.On("GetHeadCommit", ctx).Return("", errors.New("no commits"))
		_, err := uc.Execute(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get head commit")
	})
}
