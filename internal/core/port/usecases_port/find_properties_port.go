package usecases_port

import (
	"context"

	"github.com/keertiraj-bot/realstate/internal/core/domain"
)

type FindPropertiesUseCase interface {
	Execute(ctx context.Context, filters domain.PropertyFilters) (*domain.ListingResult, error)
}
