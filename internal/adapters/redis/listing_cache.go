package redis

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/keertiraj-bot/realstate/internal/contextkeys"
	"github.com/keertiraj-bot/realstate/internal/core/domain"
	"github.com/keertiraj-bot/realstate/internal/core/port"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "listings"

// ListingCache stores catalog query results in Redis. Invalidate bumps a generation
// counter that is part of every key, so stale entries are never read again and
// simply expire.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewListingCache(client *redis.Client, ttl time.Duration) (*ListingCache, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive")
	}
	return &ListingCache{client: client, ttl: ttl, prefix: defaultKeyPrefix}, nil
}

func (c *ListingCache) generationKey() string {
	return c.prefix + ":generation"
}

func (c *ListingCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, c.generationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *ListingCache) Get(ctx context.Context, filters domain.PropertyFilters) ([]domain.Property, bool, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache generation: %w", err)
	}

	key := listingCacheKey(c.prefix, gen, filters)
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached listing: %w", err)
	}

	var properties []domain.Property
	if err := json.Unmarshal(data, &properties); err != nil {
		contextkeys.LoggerFromContext(ctx).Warn("Dropping undecodable cache entry", port.Fields{
			"component": "ListingCache",
			"key":       key,
			"error":     err.Error(),
		})
		return nil, false, nil
	}
	return properties, true, nil
}

func (c *ListingCache) Set(ctx context.Context, filters domain.PropertyFilters, properties []domain.Property) error {
	gen, err := c.generation(ctx)
	if err != nil {
		return fmt.Errorf("failed to read cache generation: %w", err)
	}

	data, err := json.Marshal(properties)
	if err != nil {
		return fmt.Errorf("failed to encode listing: %w", err)
	}
	return c.client.Set(ctx, listingCacheKey(c.prefix, gen, filters), data, c.ttl).Err()
}

func (c *ListingCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.generationKey()).Err(); err != nil {
		return fmt.Errorf("failed to invalidate listing cache: %w", err)
	}
	return nil
}

// listingCacheKey hashes the normalized query parameters so equal queries share a key.
func listingCacheKey(prefix string, generation int64, f domain.PropertyFilters) string {
	params := map[string]string{
		"location": strings.ToLower(strings.TrimSpace(f.Location)),
		"type":     string(f.Type),
		"sort":     string(domain.ParseSortOrder(string(f.SortBy))),
	}
	if f.MinPrice != nil {
		params["min_price"] = strconv.FormatInt(*f.MinPrice, 10)
	}
	if f.MaxPrice != nil {
		params["max_price"] = strconv.FormatInt(*f.MaxPrice, 10)
	}
	if f.MinBedrooms != nil {
		params["min_bedrooms"] = strconv.Itoa(*f.MinBedrooms)
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for i, k := range keys {
		if i > 0 {
			builder.WriteString(":")
		}
		builder.WriteString(k)
		builder.WriteString("=")
		builder.WriteString(params[k])
	}

	hash := md5.Sum([]byte(builder.String()))
	return fmt.Sprintf("%s:%d:%s", prefix, generation, hex.EncodeToString(hash[:]))
}
