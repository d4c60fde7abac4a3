package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }

func testCatalog() []Property {
	base := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	return []Property{
		{ID: uuid.New(), Title: "Garden Villa", PropertyType: PropertyTypeVilla, Status: PropertyStatusAvailable,
			Location: "DLF Phase 4", City: "Gurgaon", Price: 25000000, Bedrooms: 5, CreatedAt: base.Add(-time.Hour)},
		{ID: uuid.New(), Title: "Tower Apartment", PropertyType: PropertyTypeApartment, Status: PropertyStatusAvailable,
			Location: "Sector 62", City: "Noida", Price: 30000000, Bedrooms: 3, CreatedAt: base},
		{ID: uuid.New(), Title: "Sold Villa", PropertyType: PropertyTypeVilla, Status: PropertyStatusSold,
			Location: "Golf Course Road", City: "Gurgaon", Price: 40000000, Bedrooms: 6, CreatedAt: base.Add(time.Hour)},
		{ID: uuid.New(), Title: "Rented Condo", PropertyType: PropertyTypeCondo, Status: PropertyStatusRented,
			Location: "Bandra", City: "Mumbai", Price: 9000000, Bedrooms: 2, CreatedAt: base.Add(2 * time.Hour)},
		{ID: uuid.New(), Title: "Budget Flat", PropertyType: PropertyTypeApartment, Status: PropertyStatusAvailable,
			Location: "Indirapuram", City: "Ghaziabad", Price: 4500000, Bedrooms: 2, CreatedAt: base.Add(-2 * time.Hour)},
	}
}

func TestApplyFilters_VillaScenario(t *testing.T) {
	catalog := []Property{
		{ID: uuid.New(), PropertyType: PropertyTypeVilla, Status: PropertyStatusAvailable, Price: 25000000},
		{ID: uuid.New(), PropertyType: PropertyTypeApartment, Status: PropertyStatusAvailable, Price: 30000000},
	}

	got := ApplyFilters(catalog, PropertyFilters{Type: PropertyTypeVilla, MinPrice: int64Ptr(20000000)})

	require.Len(t, got, 1)
	assert.Equal(t, PropertyTypeVilla, got[0].PropertyType)
	assert.Equal(t, int64(25000000), got[0].Price)
}

func TestApplyFilters_NeverReturnsUnavailable(t *testing.T) {
	filterSets := []PropertyFilters{
		{},
		{Type: PropertyTypeVilla},
		{Location: "gurgaon"},
		{MinBedrooms: intPtr(2)},
		{MinPrice: int64Ptr(1), MaxPrice: int64Ptr(100000000), SortBy: SortPriceHigh},
	}

	for _, f := range filterSets {
		for _, p := range ApplyFilters(testCatalog(), f) {
			assert.Equal(t, PropertyStatusAvailable, p.Status, "filters %+v returned %s", f, p.Title)
		}
	}
}

func TestApplyFilters_LocationMatchesLocationOrCity(t *testing.T) {
	byCity := ApplyFilters(testCatalog(), PropertyFilters{Location: "NOIDA"})
	require.Len(t, byCity, 1)
	assert.Equal(t, "Tower Apartment", byCity[0].Title)

	byLocation := ApplyFilters(testCatalog(), PropertyFilters{Location: "phase 4"})
	require.Len(t, byLocation, 1)
	assert.Equal(t, "Garden Villa", byLocation[0].Title)

	assert.Empty(t, ApplyFilters(testCatalog(), PropertyFilters{Location: "Chennai"}))
}

func TestApplyFilters_PriceRangeIsInclusive(t *testing.T) {
	got := ApplyFilters(testCatalog(), PropertyFilters{MinPrice: int64Ptr(4500000), MaxPrice: int64Ptr(25000000)})

	titles := make([]string, 0, len(got))
	for _, p := range got {
		titles = append(titles, p.Title)
	}
	assert.ElementsMatch(t, []string{"Garden Villa", "Budget Flat"}, titles)
}

func TestApplyFilters_MinBedrooms(t *testing.T) {
	got := ApplyFilters(testCatalog(), PropertyFilters{MinBedrooms: intPtr(3)})

	require.Len(t, got, 2)
	for _, p := range got {
		assert.GreaterOrEqual(t, p.Bedrooms, 3)
	}
}

func TestSortProperties_Orders(t *testing.T) {
	low := ApplyFilters(testCatalog(), PropertyFilters{SortBy: SortPriceLow})
	for i := 1; i < len(low); i++ {
		assert.LessOrEqual(t, low[i-1].Price, low[i].Price)
	}

	high := ApplyFilters(testCatalog(), PropertyFilters{SortBy: SortPriceHigh})
	for i := 1; i < len(high); i++ {
		assert.GreaterOrEqual(t, high[i-1].Price, high[i].Price)
	}

	for _, order := range []SortOrder{SortNewest, "", "cheapest_first"} {
		newest := ApplyFilters(testCatalog(), PropertyFilters{SortBy: order})
		for i := 1; i < len(newest); i++ {
			assert.False(t, newest[i].CreatedAt.After(newest[i-1].CreatedAt), "order %q", order)
		}
	}
}

func TestApplyFilters_Idempotent(t *testing.T) {
	catalog := testCatalog()
	f := PropertyFilters{Location: "g", SortBy: SortPriceLow}

	first := ApplyFilters(catalog, f)
	second := ApplyFilters(catalog, f)

	assert.Equal(t, first, second)
}

func TestSortProperties_TiesAreDeterministic(t *testing.T) {
	at := time.Date(2025, time.May, 5, 0, 0, 0, 0, time.UTC)
	a := Property{ID: uuid.MustParse("00000000-0000-0000-0000-00000000000a"), Price: 100, CreatedAt: at}
	b := Property{ID: uuid.MustParse("00000000-0000-0000-0000-00000000000b"), Price: 100, CreatedAt: at}

	ps := []Property{b, a}
	SortProperties(ps, SortPriceLow)

	assert.Equal(t, a.ID, ps[0].ID)
	assert.Equal(t, b.ID, ps[1].ID)
}

func TestHasFilters(t *testing.T) {
	assert.False(t, PropertyFilters{}.HasFilters())
	assert.False(t, PropertyFilters{SortBy: SortPriceHigh}.HasFilters())
	assert.False(t, PropertyFilters{Location: "   "}.HasFilters())
	assert.True(t, PropertyFilters{Location: "Noida"}.HasFilters())
	assert.True(t, PropertyFilters{MinBedrooms: intPtr(0)}.HasFilters())
}

func TestParseSortOrder(t *testing.T) {
	assert.Equal(t, SortPriceLow, ParseSortOrder("price_low"))
	assert.Equal(t, SortPriceHigh, ParseSortOrder("price_high"))
	assert.Equal(t, SortNewest, ParseSortOrder("newest"))
	assert.Equal(t, SortNewest, ParseSortOrder(""))
	assert.Equal(t, SortNewest, ParseSortOrder("PRICE_LOW"))
}

func TestSampleCatalog_IsAvailableAndUnique(t *testing.T) {
	catalog := SampleCatalog()
	require.Len(t, catalog, 3)

	slugs := map[string]bool{}
	for _, p := range catalog {
		assert.Equal(t, PropertyStatusAvailable, p.Status)
		assert.Equal(t, GenerateSlug(p.Slug), p.Slug)
		assert.False(t, slugs[p.Slug], "duplicate slug %s", p.Slug)
		slugs[p.Slug] = true
	}

	catalog[0].Title = "changed"
	assert.Equal(t, "Modern 3BHK Apartment", SampleCatalog()[0].Title)
}
