package redis

import (
	"testing"

	"github.com/keertiraj-bot/realstate/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingCacheKey_Normalized(t *testing.T) {
	minPrice := int64(5000000)
	a := domain.PropertyFilters{Location: " Gurgaon ", MinPrice: &minPrice}
	b := domain.PropertyFilters{Location: "gurgaon", MinPrice: &minPrice, SortBy: "bogus"}

	assert.Equal(t, listingCacheKey("listings", 0, a), listingCacheKey("listings", 0, b))
}

func TestListingCacheKey_DistinguishesQueries(t *testing.T) {
	two, three := 2, 3
	a := domain.PropertyFilters{MinBedrooms: &two}
	b := domain.PropertyFilters{MinBedrooms: &three}
	c := domain.PropertyFilters{MinBedrooms: &two, SortBy: domain.SortPriceLow}

	assert.NotEqual(t, listingCacheKey("listings", 0, a), listingCacheKey("listings", 0, b))
	assert.NotEqual(t, listingCacheKey("listings", 0, a), listingCacheKey("listings", 0, c))
}

func TestListingCacheKey_GenerationChangesKey(t *testing.T) {
	f := domain.PropertyFilters{Type: domain.PropertyTypeVilla}
	assert.NotEqual(t, listingCacheKey("listings", 1, f), listingCacheKey("listings", 2, f))
	assert.Contains(t, listingCacheKey("listings", 7, f), "listings:7:")
}

func TestNewListingCache_RequiresClientAndTTL(t *testing.T) {
	_, err := NewListingCache(nil, 0)
	require.Error(t, err)

	client := goredis.NewClient(&goredis.Options{Addr: "localhost:0"})
	defer client.Close()
	_, err = NewListingCache(client, 0)
	require.Error(t, err)
}
