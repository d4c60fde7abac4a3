package usecase

import (
	"context"

	"github.com/keertiraj-bot/realstate/internal/constants"
	"github.com/keertiraj-bot/realstate/internal/contextkeys"
	"github.com/keertiraj-bot/realstate/internal/core/domain"
	"github.com/keertiraj-bot/realstate/internal/core/port"
)

type GetFeaturedPropertiesUseCase struct {
	catalog        port.PropertyCatalogPort
	sampleFallback bool
}

func NewGetFeaturedPropertiesUseCase(catalog port.PropertyCatalogPort, sampleFallback bool) *GetFeaturedPropertiesUseCase {
	return &GetFeaturedPropertiesUseCase{catalog: catalog, sampleFallback: sampleFallback}
}

// Execute returns the newest available listings for the home page.
func (uc *GetFeaturedPropertiesUseCase) Execute(ctx context.Context) ([]domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetFeaturedProperties",
		"limit":    constants.FeaturedPropertiesLimit,
	})

	ucLogger.Info("Use case started", nil)

	properties, err := uc.catalog.FindFeatured(ctx, constants.FeaturedPropertiesLimit)
	if err != nil {
		ucLogger.Error("Catalog query failed, continuing with an empty result", err, nil)
		properties = nil
	}

	if len(properties) == 0 {
		properties = []domain.Property{}
		if uc.sampleFallback && err == nil {
			properties = domain.ApplyFilters(domain.SampleCatalog(), domain.PropertyFilters{SortBy: domain.SortNewest})
			if len(properties) > constants.FeaturedPropertiesLimit {
				properties = properties[:constants.FeaturedPropertiesLimit]
			}
		}
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"total_found": len(properties)})
	return properties, nil
}
