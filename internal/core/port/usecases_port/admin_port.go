package usecases_port

import (
	"context"

	"github.com/keertiraj-bot/realstate/internal/core/domain"

	"github.com/google/uuid"
)

type GetDashboardUseCase interface {
	Execute(ctx context.Context) (*domain.DashboardStats, error)
}

type ManagePropertiesUseCase interface {
	List(ctx context.Context, query domain.AdminPropertyQuery) ([]domain.Property, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Property, error)
	Create(ctx context.Context, draft domain.PropertyDraft) (*domain.Property, error)
	Update(ctx context.Context, id uuid.UUID, draft domain.PropertyDraft) (*domain.Property, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ListLeadsUseCase interface {
	Execute(ctx context.Context, query domain.LeadQuery) ([]domain.Lead, error)
}

type UpdateLeadStatusUseCase interface {
	Execute(ctx context.Context, id uuid.UUID, status string) error
}
