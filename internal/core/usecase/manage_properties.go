package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/keertiraj-bot/realstate/internal/contextkeys"
	"github.com/keertiraj-bot/realstate/internal/core/domain"
	"github.com/keertiraj-bot/realstate/internal/core/port"

	"github.com/google/uuid"
)

const DefaultSlugAttempts = 50

type ManagePropertiesUseCase struct {
	storage         port.PropertyStoragePort
	cache           port.ListingCachePort
	maxSlugAttempts int
	now             func() time.Time
}

// NewManagePropertiesUseCase builds the admin property operations. cache may be nil.
func NewManagePropertiesUseCase(storage port.PropertyStoragePort, cache port.ListingCachePort, maxSlugAttempts int) *ManagePropertiesUseCase {
	if maxSlugAttempts <= 0 {
		maxSlugAttempts = DefaultSlugAttempts
	}
	return &ManagePropertiesUseCase{
		storage:         storage,
		cache:           cache,
		maxSlugAttempts: maxSlugAttempts,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (uc *ManagePropertiesUseCase) List(ctx context.Context, query domain.AdminPropertyQuery) ([]domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "ListAdminProperties",
		"search":   query.Search,
	})

	ucLogger.Info("Use case started", nil)

	properties, err := uc.storage.List(ctx, query)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"total_found": len(properties)})
	return properties, nil
}

func (uc *ManagePropertiesUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "GetAdminProperty",
		"property_id": id.String(),
	})

	property, err := uc.storage.GetByID(ctx, id)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}
	if property == nil {
		return nil, domain.ErrPropertyNotFound
	}
	return property, nil
}

func (uc *ManagePropertiesUseCase) Create(ctx context.Context, draft domain.PropertyDraft) (*domain.Property, error) {
	draft.Normalize()

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "CreateProperty",
		"title":    draft.Title,
	})

	ucLogger.Info("Use case started", nil)

	if err := draft.Validate(); err != nil {
		ucLogger.Warn("Property form failed validation", port.Fields{"error": err.Error()})
		return nil, err
	}

	slug, err := uc.uniqueSlug(ctx, draft.Title, nil)
	if err != nil {
		ucLogger.Error("Could not derive a unique slug", err, nil)
		return nil, err
	}

	property := &domain.Property{Slug: slug, CreatedAt: uc.now()}
	draft.ApplyTo(property)

	if err := uc.storage.Create(ctx, property); err != nil {
		ucLogger.Error("Failed to create property", err, nil)
		return nil, err
	}

	uc.invalidateListings(ctx, ucLogger)

	ucLogger.Info("Use case finished successfully", port.Fields{"property_id": property.ID.String(), "slug": property.Slug})
	return property, nil
}

// Update re-derives the slug when the title changes, skipping the property's own slug.
func (uc *ManagePropertiesUseCase) Update(ctx context.Context, id uuid.UUID, draft domain.PropertyDraft) (*domain.Property, error) {
	draft.Normalize()

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "UpdateProperty",
		"property_id": id.String(),
	})

	ucLogger.Info("Use case started", nil)

	if err := draft.Validate(); err != nil {
		ucLogger.Warn("Property form failed validation", port.Fields{"error": err.Error()})
		return nil, err
	}

	property, err := uc.storage.GetByID(ctx, id)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}
	if property == nil {
		ucLogger.Warn("Property not found", nil)
		return nil, domain.ErrPropertyNotFound
	}

	if domain.GenerateSlug(draft.Title) != domain.GenerateSlug(property.Title) {
		slug, err := uc.uniqueSlug(ctx, draft.Title, &id)
		if err != nil {
			ucLogger.Error("Could not derive a unique slug", err, nil)
			return nil, err
		}
		ucLogger.Info("Title changed, slug re-derived", port.Fields{"old_slug": property.Slug, "new_slug": slug})
		property.Slug = slug
	}

	draft.ApplyTo(property)

	if err := uc.storage.Update(ctx, property); err != nil {
		ucLogger.Error("Failed to update property", err, nil)
		return nil, err
	}

	uc.invalidateListings(ctx, ucLogger)

	ucLogger.Info("Use case finished successfully", port.Fields{"slug": property.Slug})
	return property, nil
}

func (uc *ManagePropertiesUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "DeleteProperty",
		"property_id": id.String(),
	})

	ucLogger.Info("Use case started", nil)

	if err := uc.storage.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrPropertyNotFound) {
			ucLogger.Warn("Property not found", nil)
		} else {
			ucLogger.Error("Failed to delete property", err, nil)
		}
		return err
	}

	uc.invalidateListings(ctx, ucLogger)

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}

// uniqueSlug tries base, base-1, base-2 and so on, giving up after maxSlugAttempts.
func (uc *ManagePropertiesUseCase) uniqueSlug(ctx context.Context, title string, excludeID *uuid.UUID) (string, error) {
	base := domain.GenerateSlug(title)

	for attempt := 0; attempt < uc.maxSlugAttempts; attempt++ {
		candidate := domain.SlugCandidate(base, attempt)
		exists, err := uc.storage.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("failed to check slug %q: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %q after %d attempts", domain.ErrSlugExhausted, base, uc.maxSlugAttempts)
}

func (uc *ManagePropertiesUseCase) invalidateListings(ctx context.Context, ucLogger port.LoggerPort) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx); err != nil {
		ucLogger.Warn("Failed to invalidate listing cache", port.Fields{"error": err.Error()})
	}
}
