package port

import (
	"context"

	"github.com/keertiraj-bot/realstate/internal/core/domain"
)

// ListingCachePort caches store results of catalog queries.
type ListingCachePort interface {
	Get(ctx context.Context, filters domain.PropertyFilters) ([]domain.Property, bool, error)
	Set(ctx context.Context, filters domain.PropertyFilters, properties []domain.Property) error
	// Invalidate drops every cached listing.
	Invalidate(ctx context.Context) error
}
