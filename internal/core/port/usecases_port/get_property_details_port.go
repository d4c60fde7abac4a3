package usecases_port

import (
	"context"

	"github.com/keertiraj-bot/realstate/internal/core/domain"
)

// GetPropertyDetailsUseCase resolves a slug or an id.
type GetPropertyDetailsUseCase interface {
	Execute(ctx context.Context, ref string) (*domain.Property, error)
}
