package usecase

import (
	"context"
	"fmt"

	"github.com/compozy/releasetag/internal/domain"
	"github.com/compozy/releasetag/internal/logger"
	"github.com/compozy/releasetag/internal/repository"
	"go.uber.org/zap"
)

// TagReleaseUseCase creates the release, BOM and product tags of a manifest.

type TagReleaseUseCase struct {
	TagRepo repository.TagRepository
	// OnTag is called with each tag name right after it was created.
	OnTag func(name string)
}

// Execute creates the tags in order and stops at the first failure.
func (uc *TagReleaseUseCase) Execute(ctx context.Context, session domain.Session, m *domain.Manifest) error {
	log := logger.FromContext(ctx).With(zap.String("commit", session.ShortCommit()))
	if err := uc.TagRepo.TagReleaseVersion(ctx); err != nil {
		return fmt.Errorf("failed to tag release version: %w", err)
	}
	uc.created(log, domain.ReleaseTagName(session.Branch))
	if m.Bom != "" {
		if err := uc.TagRepo.TagBomVersion(ctx, m.Bom); err != nil {
			return fmt.Errorf("failed to tag bom version: %w", err)
		}
		uc.created(log, domain.BomTagName(m.Bom))
	}
	for _, p := range m.Products {
		if err := uc.TagRepo.TagProductVersion(ctx, p.Name, p.Version); err != nil {
			return fmt.Errorf("failed to tag %s: %w", p.Name, err)
		}
		uc.created(log, p.TagName())
	}
	return nil
}

func (uc *TagReleaseUseCase) created(log *zap.Logger, name string) {
	log.Debug("created tag", zap.String("tag", name))
	if uc.OnTag != nil {
		uc.OnTag(name)
	}
}
