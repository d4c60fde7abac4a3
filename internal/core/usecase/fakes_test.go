package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/keertiraj-bot/realstate/internal/core/domain"

	"github.com/google/uuid"
)

type fakeLeadRepo struct {
	mu    sync.Mutex
	leads []domain.Lead
	calls int

	findErr   error
	createErr error
	// knownProperties, when set, makes Create reject leads linked to any other id.
	knownProperties map[uuid.UUID]bool
}

func (r *fakeLeadRepo) FindLatest(ctx context.Context, key domain.DuplicateKey) (*domain.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.findErr != nil {
		return nil, r.findErr
	}
	var latest *domain.Lead
	for i := range r.leads {
		l := r.leads[i]
		if l.DuplicateKey() != key {
			continue
		}
		if latest == nil || l.CreatedAt.After(latest.CreatedAt) {
			latest = &l
		}
	}
	return latest, nil
}

func (r *fakeLeadRepo) Create(ctx context.Context, lead *domain.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.createErr != nil {
		return r.createErr
	}
	if r.knownProperties != nil && lead.PropertyID != nil && !r.knownProperties[*lead.PropertyID] {
		return errors.New("insert or update on table \"leads\" violates foreign key constraint")
	}
	lead.ID = uuid.New()
	r.leads = append(r.leads, *lead)
	return nil
}

func (r *fakeLeadRepo) List(ctx context.Context, query domain.LeadQuery) ([]domain.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	out := append([]domain.Lead(nil), r.leads...)
	if query.Limit > 0 && len(out) > query.Limit {
		out = out[:query.Limit]
	}
	return out, nil
}

func (r *fakeLeadRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.LeadStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	for i := range r.leads {
		if r.leads[i].ID == id {
			r.leads[i].Status = status
			return nil
		}
	}
	return domain.ErrLeadNotFound
}

func (r *fakeLeadRepo) Stats(ctx context.Context, since time.Time) (*domain.LeadStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	stats := &domain.LeadStats{Total: len(r.leads)}
	var sum, n int64
	for _, l := range r.leads {
		if l.Status == domain.LeadStatusNew {
			stats.New++
		}
		if !l.CreatedAt.Before(since) {
			stats.Since++
		}
		if l.Budget > 0 {
			sum += l.Budget
			n++
		}
	}
	if n > 0 {
		stats.AverageBudget = sum / n
	}
	return stats, nil
}

func (r *fakeLeadRepo) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

type fakePropertyStorage struct {
	properties []domain.Property
	err        error
	created    []domain.Property
	updated    []domain.Property
	slugChecks int
}

func (s *fakePropertyStorage) FindAvailable(ctx context.Context, filters domain.PropertyFilters) ([]domain.Property, error) {
	if s.err != nil {
		return nil, s.err
	}
	return domain.ApplyFilters(s.properties, filters), nil
}

func (s *fakePropertyStorage) FindFeatured(ctx context.Context, limit int) ([]domain.Property, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := domain.ApplyFilters(s.properties, domain.PropertyFilters{})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakePropertyStorage) GetBySlug(ctx context.Context, slug string) (*domain.Property, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, p := range s.properties {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, nil
}

func (s *fakePropertyStorage) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, p := range s.properties {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (s *fakePropertyStorage) List(ctx context.Context, query domain.AdminPropertyQuery) ([]domain.Property, error) {
	var out []domain.Property
	for _, p := range s.properties {
		if strings.Contains(strings.ToLower(p.Title), strings.ToLower(query.Search)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakePropertyStorage) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	s.slugChecks++
	for _, p := range s.properties {
		if excludeID != nil && p.ID == *excludeID {
			continue
		}
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakePropertyStorage) Create(ctx context.Context, property *domain.Property) error {
	property.ID = uuid.New()
	s.properties = append(s.properties, *property)
	s.created = append(s.created, *property)
	return nil
}

func (s *fakePropertyStorage) Update(ctx context.Context, property *domain.Property) error {
	for i := range s.properties {
		if s.properties[i].ID == property.ID {
			s.properties[i] = *property
			s.updated = append(s.updated, *property)
			return nil
		}
	}
	return domain.ErrPropertyNotFound
}

func (s *fakePropertyStorage) Delete(ctx context.Context, id uuid.UUID) error {
	for i := range s.properties {
		if s.properties[i].ID == id {
			s.properties = append(s.properties[:i], s.properties[i+1:]...)
			return nil
		}
	}
	return domain.ErrPropertyNotFound
}

func (s *fakePropertyStorage) Count(ctx context.Context) (int, int, error) {
	available := 0
	for _, p := range s.properties {
		if p.Status == domain.PropertyStatusAvailable {
			available++
		}
	}
	return len(s.properties), available, nil
}

type fakeCache struct {
	entries     map[domain.PropertyFilters][]domain.Property
	sets        int
	invalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[domain.PropertyFilters][]domain.Property{}}
}

func (c *fakeCache) Get(ctx context.Context, filters domain.PropertyFilters) ([]domain.Property, bool, error) {
	p, ok := c.entries[filters]
	return p, ok, nil
}

func (c *fakeCache) Set(ctx context.Context, filters domain.PropertyFilters, properties []domain.Property) error {
	c.sets++
	c.entries[filters] = properties
	return nil
}

func (c *fakeCache) Invalidate(ctx context.Context) error {
	c.invalidated++
	c.entries = map[domain.PropertyFilters][]domain.Property{}
	return nil
}

type fakeEvents struct {
	published chan domain.Lead
	err       error
}

func newFakeEvents() *fakeEvents {
	return &fakeEvents{published: make(chan domain.Lead, 8)}
}

func (e *fakeEvents) PublishLeadSubmitted(ctx context.Context, lead domain.Lead) error {
	e.published <- lead
	return e.err
}

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if _, ok := r.users[user.Email]; ok {
		return domain.ErrEmailInUse
	}
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.users[email], nil
}

type fakeTokenService struct{}

func (fakeTokenService) GenerateToken(ctx context.Context, user *domain.User, ttl time.Duration) (string, error) {
	return "token-for-" + user.Email, nil
}

func (fakeTokenService) ValidateToken(ctx context.Context, tokenString string) (*domain.Claims, error) {
	email, ok := strings.CutPrefix(tokenString, "token-for-")
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	return &domain.Claims{Email: email, Role: domain.RoleAdmin}, nil
}
