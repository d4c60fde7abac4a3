package port

import (
	"context"

	"github.com/keertiraj-bot/realstate/internal/core/domain"
)

type UserRepositoryPort interface {
	// Create returns domain.ErrEmailInUse when the email is taken.
	Create(ctx context.Context, user *domain.User) error
	// FindByEmail returns nil, nil when no user matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
