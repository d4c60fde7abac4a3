package domain

import (
	"sort"
	"strings"
)

type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortPriceLow  SortOrder = "price_low"
	SortPriceHigh SortOrder = "price_high"
)

// ParseSortOrder maps unknown or empty values to SortNewest.
func ParseSortOrder(s string) SortOrder {
	switch o := SortOrder(s); o {
	case SortPriceLow, SortPriceHigh:
		return o
	default:
		return SortNewest
	}
}

// PropertyFilters is the public catalog query. Nil or empty fields do not constrain.
type PropertyFilters struct {
	Location    string
	Type        PropertyType
	MinPrice    *int64
	MaxPrice    *int64
	MinBedrooms *int
	SortBy      SortOrder
}

// HasFilters reports whether any predicate is set. Sort order alone does not count.
func (f PropertyFilters) HasFilters() bool {
	return strings.TrimSpace(f.Location) != "" ||
		f.Type != "" ||
		f.MinPrice != nil ||
		f.MaxPrice != nil ||
		f.MinBedrooms != nil
}

// Matches applies the catalog predicate to p in memory. It agrees with the SQL
// the postgres adapter builds from the same filters.
func (f PropertyFilters) Matches(p Property) bool {
	if p.Status != PropertyStatusAvailable {
		return false
	}
	if q := strings.TrimSpace(f.Location); q != "" {
		q = strings.ToLower(q)
		if !strings.Contains(strings.ToLower(p.Location), q) &&
			!strings.Contains(strings.ToLower(p.City), q) {
			return false
		}
	}
	if f.Type != "" && p.PropertyType != f.Type {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.MinBedrooms != nil && p.Bedrooms < *f.MinBedrooms {
		return false
	}
	return true
}

// ApplyFilters returns the matching subset of catalog in the requested order.
// The input slice is not modified.
func ApplyFilters(catalog []Property, f PropertyFilters) []Property {
	out := make([]Property, 0, len(catalog))
	for _, p := range catalog {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	SortProperties(out, f.SortBy)
	return out
}

// SortProperties orders ps in place. Ties fall back to newest first, then id,
// so the order is total.
func SortProperties(ps []Property, order SortOrder) {
	newestFirst := func(a, b Property) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	}

	var less func(a, b Property) bool
	switch ParseSortOrder(string(order)) {
	case SortPriceLow:
		less = func(a, b Property) bool {
			if a.Price != b.Price {
				return a.Price < b.Price
			}
			return newestFirst(a, b)
		}
	case SortPriceHigh:
		less = func(a, b Property) bool {
			if a.Price != b.Price {
				return a.Price > b.Price
			}
			return newestFirst(a, b)
		}
	default:
		less = newestFirst
	}

	sort.SliceStable(ps, func(i, j int) bool { return less(ps[i], ps[j]) })
}

// ListingSource tells where a listing result came from.
type ListingSource string

const (
	ListingSourceStore  ListingSource = "store"
	ListingSourceSample ListingSource = "sample"
	ListingSourceCache  ListingSource = "cache"
)

// ListingResult is the full materialized answer to a catalog query.
type ListingResult struct {
	Properties []Property
	Total      int
	HasFilters bool
	Source     ListingSource
}
