package usecase

import (
	"context"
	"fmt"

	"github.com/keertiraj-bot/realstate/internal/contextkeys"
	"github.com/keertiraj-bot/realstate/internal/core/domain"
	"github.com/keertiraj-bot/realstate/internal/core/port"

	"github.com/google/uuid"
)

type GetPropertyDetailsUseCase struct {
	catalog        port.PropertyCatalogPort
	sampleFallback bool
}

func NewGetPropertyDetailsUseCase(catalog port.PropertyCatalogPort, sampleFallback bool) *GetPropertyDetailsUseCase {
	return &GetPropertyDetailsUseCase{catalog: catalog, sampleFallback: sampleFallback}
}

// Execute looks a property up by id when ref parses as a UUID, otherwise by slug.
// The sample catalog is consulted only when the store errors or misses.
func (uc *GetPropertyDetailsUseCase) Execute(ctx context.Context, ref string) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":     "GetPropertyDetails",
		"property_ref": ref,
	})

	ucLogger.Info("Use case started", nil)

	var (
		property *domain.Property
		err      error
	)
	id, parseErr := uuid.Parse(ref)
	if parseErr == nil {
		property, err = uc.catalog.GetByID(ctx, id)
	} else {
		property, err = uc.catalog.GetBySlug(ctx, ref)
	}

	if err == nil && property != nil {
		ucLogger.Info("Use case finished successfully", port.Fields{"property_id": property.ID.String()})
		return property, nil
	}

	if err != nil {
		ucLogger.Error("Catalog lookup failed", err, nil)
	}

	if uc.sampleFallback {
		for _, sample := range domain.SampleCatalog() {
			if sample.Slug == ref || (parseErr == nil && sample.ID == id) {
				ucLogger.Info("Serving property from the sample catalog", nil)
				return &sample, nil
			}
		}
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistenceUnavailable, err)
	}

	ucLogger.Warn("Property not found", nil)
	return nil, domain.ErrPropertyNotFound
}
