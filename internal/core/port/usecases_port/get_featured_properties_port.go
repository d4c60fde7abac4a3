package usecases_port

import (
	"context"

	"github.com/keertiraj-bot/realstate/internal/core/domain"
)

type GetFeaturedPropertiesUseCase interface {
	Execute(ctx context.Context) ([]domain.Property, error)
}
