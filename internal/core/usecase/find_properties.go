package usecase

import (
	"context"

	"github.com/keertiraj-bot/realstate/internal/contextkeys"
	"github.com/keertiraj-bot/realstate/internal/core/domain"
	"github.com/keertiraj-bot/realstate/internal/core/port"
)

type FindPropertiesUseCase struct {
	catalog        port.PropertyCatalogPort
	cache          port.ListingCachePort
	sampleFallback bool
}

// NewFindPropertiesUseCase builds the catalog search. cache may be nil.
func NewFindPropertiesUseCase(catalog port.PropertyCatalogPort, cache port.ListingCachePort, sampleFallback bool) *FindPropertiesUseCase {
	return &FindPropertiesUseCase{catalog: catalog, cache: cache, sampleFallback: sampleFallback}
}

// Execute never fails on store errors: they are logged and yield an empty result.
// The sample catalog only stands in for a store that answered with no rows.
func (uc *FindPropertiesUseCase) Execute(ctx context.Context, filters domain.PropertyFilters) (*domain.ListingResult, error) {
	filters.SortBy = domain.ParseSortOrder(string(filters.SortBy))

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "FindProperties",
		"filters":  filters,
	})

	ucLogger.Info("Use case started", nil)

	result := &domain.ListingResult{
		Properties: []domain.Property{},
		HasFilters: filters.HasFilters(),
		Source:     domain.ListingSourceStore,
	}

	if uc.cache != nil {
		cached, hit, err := uc.cache.Get(ctx, filters)
		if err != nil {
			ucLogger.Warn("Listing cache read failed, querying store", port.Fields{"error": err.Error()})
		} else if hit {
			result.Properties = cached
			result.Total = len(cached)
			result.Source = domain.ListingSourceCache
			ucLogger.Info("Use case finished successfully", port.Fields{"total_found": result.Total, "source": result.Source})
			return result, nil
		}
	}

	properties, err := uc.catalog.FindAvailable(ctx, filters)
	if err != nil {
		ucLogger.Error("Catalog query failed, continuing with an empty result", err, nil)
		properties = nil
	}

	switch {
	case len(properties) > 0:
		result.Properties = properties
		if uc.cache != nil && err == nil {
			if cacheErr := uc.cache.Set(ctx, filters, properties); cacheErr != nil {
				ucLogger.Warn("Failed to cache listing result", port.Fields{"error": cacheErr.Error()})
			}
		}
	case uc.sampleFallback && err == nil:
		result.Properties = domain.ApplyFilters(domain.SampleCatalog(), filters)
		result.Source = domain.ListingSourceSample
		ucLogger.Info("Store returned no properties, serving the sample catalog", nil)
	}

	result.Total = len(result.Properties)
	ucLogger.Info("Use case finished successfully", port.Fields{
		"total_found": result.Total,
		"source":      result.Source,
	})

	return result, nil
}
