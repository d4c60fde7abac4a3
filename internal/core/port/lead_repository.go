package port

import (
	"context"
	"time"

	"github.com/keertiraj-bot/realstate/internal/core/domain"

	"github.com/google/uuid"
)

type LeadRepositoryPort interface {
	// FindLatest returns the newest lead with the same key, or nil, nil.
	FindLatest(ctx context.Context, key domain.DuplicateKey) (*domain.Lead, error)
	// Create returns domain.ErrDuplicateRecent when the store rejects the row as a duplicate.
	Create(ctx context.Context, lead *domain.Lead) error
	List(ctx context.Context, query domain.LeadQuery) ([]domain.Lead, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.LeadStatus) error
	Stats(ctx context.Context, since time.Time) (*domain.LeadStats, error)
}
