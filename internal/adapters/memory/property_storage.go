package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/keertiraj-bot/realstate/internal/core/domain"

	"github.com/google/uuid"
)

// PropertyStorage keeps properties in process memory. It backs demo mode and tests.
type PropertyStorage struct {
	mu         sync.RWMutex
	properties map[uuid.UUID]domain.Property
}

func NewPropertyStorage(seed []domain.Property) *PropertyStorage {
	s := &PropertyStorage{properties: make(map[uuid.UUID]domain.Property, len(seed))}
	for _, p := range seed {
		s.properties[p.ID] = p
	}
	return s
}

func (s *PropertyStorage) snapshot() []domain.Property {
	all := make([]domain.Property, 0, len(s.properties))
	for _, p := range s.properties {
		all = append(all, p)
	}
	return all
}

func (s *PropertyStorage) FindAvailable(_ context.Context, filters domain.PropertyFilters) ([]domain.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.ApplyFilters(s.snapshot(), filters), nil
}

func (s *PropertyStorage) FindFeatured(_ context.Context, limit int) ([]domain.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := domain.ApplyFilters(s.snapshot(), domain.PropertyFilters{})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *PropertyStorage) GetBySlug(_ context.Context, slug string) (*domain.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.properties {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, nil
}

func (s *PropertyStorage) GetByID(_ context.Context, id uuid.UUID) (*domain.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.properties[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (s *PropertyStorage) List(_ context.Context, q domain.AdminPropertyQuery) ([]domain.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(q.Search))
	result := make([]domain.Property, 0, len(s.properties))
	for _, p := range s.properties {
		if search == "" || containsAny(search, p.Title, p.Location, p.City) {
			result = append(result, p)
		}
	}
	domain.SortProperties(result, domain.SortNewest)
	return result, nil
}

func (s *PropertyStorage) SlugExists(_ context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slugTaken(slug, excludeID), nil
}

func (s *PropertyStorage) slugTaken(slug string, excludeID *uuid.UUID) bool {
	for id, p := range s.properties {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if p.Slug == slug {
			return true
		}
	}
	return false
}

func (s *PropertyStorage) Create(_ context.Context, p *domain.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.slugTaken(p.Slug, nil) {
		return domain.ErrSlugConflict
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	s.properties[p.ID] = *p
	return nil
}

func (s *PropertyStorage) Update(_ context.Context, p *domain.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.properties[p.ID]
	if !ok {
		return domain.ErrPropertyNotFound
	}
	if s.slugTaken(p.Slug, &p.ID) {
		return domain.ErrSlugConflict
	}
	p.CreatedAt = existing.CreatedAt
	s.properties[p.ID] = *p
	return nil
}

func (s *PropertyStorage) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.properties[id]; !ok {
		return domain.ErrPropertyNotFound
	}
	delete(s.properties, id)
	return nil
}

func (s *PropertyStorage) Count(_ context.Context) (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	available := 0
	for _, p := range s.properties {
		if p.Status == domain.PropertyStatusAvailable {
			available++
		}
	}
	return len(s.properties), available, nil
}

func containsAny(needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func sortLeadsNewestFirst(leads []domain.Lead) {
	sort.SliceStable(leads, func(i, j int) bool {
		if !leads[i].CreatedAt.Equal(leads[j].CreatedAt) {
			return leads[i].CreatedAt.After(leads[j].CreatedAt)
		}
		return leads[i].ID.String() < leads[j].ID.String()
	})
}
