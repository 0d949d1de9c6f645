package usecase

import (
	"context"
	"fmt"

	"github.com/compozy/releasetag/internal/logger"
	"github.com/compozy/releasetag/internal/repository"
	"go.uber.org/zap"
)

// VerifyTagsUseCase checks which tags are not yet visible on the public mirror.

type VerifyTagsUseCase struct {
	Mirror repository.MirrorRepository
}

// Execute returns the tags missing from the mirror, in input order.
func (uc *VerifyTagsUseCase) Execute(ctx context.Context, tags []string) ([]string, error) {
	log := logger.FromContext(ctx)
	var missing []string
	for _, tag := range tags {
		exists, err := uc.Mirror.TagExists(ctx, tag)
		if err != nil {
			return nil, fmt.Errorf("failed to verify tag %s: %w", tag, err)
		}
		log.Debug("checked mirror tag", zap.String("tag", tag), zap.Bool("exists", exists))
		if !exists {
			missing = append(missing, tag)
		}
	}
	return missing, nil
}
