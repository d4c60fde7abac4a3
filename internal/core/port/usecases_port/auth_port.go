package usecases_port

import (
	"context"

	"github.com/keertiraj-bot/realstate/internal/core/domain"
)

type LoginUseCase interface {
	Execute(ctx context.Context, email, password string) (string, error)
}

type ValidateTokenUseCase interface {
	Execute(ctx context.Context, token string) (*domain.Claims, error)
}

type EnsureAdminUseCase interface {
	Execute(ctx context.Context, email, password string) error
}
