package ports

import (
	"context"

	"github.com/nathantilsley/chart-release/internal/release/domain"
)

// UpdateUseCase is the driving port for applying a release tag to chart metadata.
type UpdateUseCase interface {
	Execute(ctx context.Context, req domain.UpdateRequest) (domain.UpdateReport, error)
}
