package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/keertiraj-bot/realstate/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeCatalog() []domain.Property {
	at := time.Date(2025, time.April, 1, 10, 0, 0, 0, time.UTC)
	return []domain.Property{
		{ID: uuid.New(), Slug: "garden-villa", Title: "Garden Villa", PropertyType: domain.PropertyTypeVilla,
			Status: domain.PropertyStatusAvailable, City: "Pune", Price: 25000000, CreatedAt: at},
		{ID: uuid.New(), Slug: "city-apartment", Title: "City Apartment", PropertyType: domain.PropertyTypeApartment,
			Status: domain.PropertyStatusAvailable, City: "Pune", Price: 30000000, CreatedAt: at.Add(time.Hour)},
		{ID: uuid.New(), Slug: "sold-house", Title: "Sold House", PropertyType: domain.PropertyTypeHouse,
			Status: domain.PropertyStatusSold, City: "Pune", Price: 12000000, CreatedAt: at.Add(2 * time.Hour)},
	}
}

func TestFindProperties_FromStore(t *testing.T) {
	cache := newFakeCache()
	uc := NewFindPropertiesUseCase(&fakePropertyStorage{properties: storeCatalog()}, cache, true)

	res, err := uc.Execute(context.Background(), domain.PropertyFilters{SortBy: "bogus"})

	require.NoError(t, err)
	assert.Equal(t, domain.ListingSourceStore, res.Source)
	assert.False(t, res.HasFilters)
	require.Equal(t, 2, res.Total)
	assert.Equal(t, "City Apartment", res.Properties[0].Title)
	assert.Equal(t, 1, cache.sets)

	again, err := uc.Execute(context.Background(), domain.PropertyFilters{SortBy: domain.SortNewest})
	require.NoError(t, err)
	assert.Equal(t, domain.ListingSourceCache, again.Source)
	assert.Equal(t, res.Properties, again.Properties)
}

func TestFindProperties_EmptyStoreFallsBackToSample(t *testing.T) {
	minPrice := int64(20000000)
	uc := NewFindPropertiesUseCase(&fakePropertyStorage{}, nil, true)

	res, err := uc.Execute(context.Background(), domain.PropertyFilters{Type: domain.PropertyTypeVilla, MinPrice: &minPrice})

	require.NoError(t, err)
	assert.Equal(t, domain.ListingSourceSample, res.Source)
	assert.True(t, res.HasFilters)
	require.Len(t, res.Properties, 1)
	assert.Equal(t, "luxury-villa-garden", res.Properties[0].Slug)
}

func TestFindProperties_StoreErrorYieldsEmptyResult(t *testing.T) {
	uc := NewFindPropertiesUseCase(&fakePropertyStorage{err: errors.New("dial tcp: refused")}, newFakeCache(), false)

	res, err := uc.Execute(context.Background(), domain.PropertyFilters{Location: "Pune"})

	require.NoError(t, err)
	assert.NotNil(t, res.Properties)
	assert.Empty(t, res.Properties)
	assert.True(t, res.HasFilters)
}

func TestFindProperties_StoreErrorSkipsSampleFallback(t *testing.T) {
	uc := NewFindPropertiesUseCase(&fakePropertyStorage{err: errors.New("dial tcp: refused")}, nil, true)

	res, err := uc.Execute(context.Background(), domain.PropertyFilters{})

	require.NoError(t, err)
	assert.Empty(t, res.Properties)
	assert.Zero(t, res.Total)
	assert.False(t, res.HasFilters)
	assert.Equal(t, domain.ListingSourceStore, res.Source)
}

func TestFindProperties_NoMatchWithoutFallback(t *testing.T) {
	uc := NewFindPropertiesUseCase(&fakePropertyStorage{properties: storeCatalog()}, nil, false)

	res, err := uc.Execute(context.Background(), domain.PropertyFilters{Type: domain.PropertyTypeLand})

	require.NoError(t, err)
	assert.Zero(t, res.Total)
	assert.Equal(t, domain.ListingSourceStore, res.Source)
}

func TestGetFeaturedProperties(t *testing.T) {
	uc := NewGetFeaturedPropertiesUseCase(&fakePropertyStorage{properties: storeCatalog()}, true)
	featured, err := uc.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, featured, 2)
	assert.Equal(t, "city-apartment", featured[0].Slug)

	empty := NewGetFeaturedPropertiesUseCase(&fakePropertyStorage{}, true)
	featured, err = empty.Execute(context.Background())
	require.NoError(t, err)
	assert.Len(t, featured, 3)

	broken := NewGetFeaturedPropertiesUseCase(&fakePropertyStorage{err: errors.New("dial tcp: refused")}, true)
	featured, err = broken.Execute(context.Background())
	require.NoError(t, err)
	assert.Empty(t, featured)
}

func TestGetPropertyDetails(t *testing.T) {
	sample := domain.SampleCatalog()[0]
	override := sample
	override.Title = "Store Version"
	store := &fakePropertyStorage{properties: []domain.Property{override}}

	uc := NewGetPropertyDetailsUseCase(store, true)

	got, err := uc.Execute(context.Background(), sample.Slug)
	require.NoError(t, err)
	assert.Equal(t, "Store Version", got.Title, "a store hit is never replaced by the sample")

	got, err = uc.Execute(context.Background(), override.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Store Version", got.Title)

	got, err = uc.Execute(context.Background(), "commercial-office-space")
	require.NoError(t, err)
	assert.Equal(t, "Commercial Office Space", got.Title)

	_, err = uc.Execute(context.Background(), "no-such-listing")
	assert.ErrorIs(t, err, domain.ErrPropertyNotFound)
}

func TestGetPropertyDetails_WithoutFallback(t *testing.T) {
	missing := NewGetPropertyDetailsUseCase(&fakePropertyStorage{}, false)
	_, err := missing.Execute(context.Background(), "modern-3bhk-apartment")
	assert.ErrorIs(t, err, domain.ErrPropertyNotFound)

	failing := NewGetPropertyDetailsUseCase(&fakePropertyStorage{err: errors.New("timeout")}, false)
	_, err = failing.Execute(context.Background(), "modern-3bhk-apartment")
	assert.ErrorIs(t, err, domain.ErrPersistenceUnavailable)

	recovering := NewGetPropertyDetailsUseCase(&fakePropertyStorage{err: errors.New("timeout")}, true)
	got, err := recovering.Execute(context.Background(), "modern-3bhk-apartment")
	require.NoError(t, err)
	assert.Equal(t, "Modern 3BHK Apartment", got.Title)
}
