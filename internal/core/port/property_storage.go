package port

import (
	"context"

	"github.com/keertiraj-bot/realstate/internal/core/domain"

	"github.com/google/uuid"
)

// PropertyCatalogPort serves the public catalog. Lookups return nil, nil on a miss.
type PropertyCatalogPort interface {
	FindAvailable(ctx context.Context, filters domain.PropertyFilters) ([]domain.Property, error)
	FindFeatured(ctx context.Context, limit int) ([]domain.Property, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Property, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error)
}

// PropertyStoragePort adds the admin operations on top of the catalog.
type PropertyStoragePort interface {
	PropertyCatalogPort

	List(ctx context.Context, query domain.AdminPropertyQuery) ([]domain.Property, error)
	// SlugExists ignores the property with excludeID when it is set.
	SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
	// Create and Update return domain.ErrSlugConflict when the slug is taken.
	Create(ctx context.Context, property *domain.Property) error
	Update(ctx context.Context, property *domain.Property) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (total int, available int, err error)
}
