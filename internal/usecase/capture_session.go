package usecase

import (
	"context"
	"fmt"

	"github.com/compozy/releasetag/internal/domain"
	"github.com/compozy/releasetag/internal/logger"
	"github.com/compozy/releasetag/internal/repository"
	"go.uber.org/zap"
)

// CaptureSessionUseCase reads the branch and commit HEAD points at, once per session.

type CaptureSessionUseCase struct {
	GitRepo repository.GitRepository
}

// Execute runs the use case.
func (uc *CaptureSessionUseCase) Execute(ctx context.Context) (domain.Session, error) {
	branch, err := uc.GitRepo.GetCurrentBranch(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("failed to get current branch: %w", err)
	}
	commit, err := uc.GitRepo.GetHeadCommit(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("failed to get head commit: %w", err)
	}
	session := domain.Session{Branch: branch, Commit: commit}
	logger.FromContext(ctx).Debug("captured session", zap.String("session", session.String()))
	return session, nil
}
