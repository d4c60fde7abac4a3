package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/keertiraj-bot/realstate/internal/core/domain"

	"github.com/google/uuid"
)

// LeadRepository stores leads in memory. Like the SQL store it refuses a second lead
// with the same duplicate key on the same UTC calendar day.
type LeadRepository struct {
	mu    sync.RWMutex
	leads []domain.Lead
}

func NewLeadRepository() *LeadRepository {
	return &LeadRepository{}
}

func (r *LeadRepository) FindLatest(_ context.Context, key domain.DuplicateKey) (*domain.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

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

func (r *LeadRepository) Create(_ context.Context, lead *domain.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := lead.DuplicateKey()
	day := utcDay(lead.CreatedAt)
	for _, l := range r.leads {
		if l.DuplicateKey() == key && utcDay(l.CreatedAt).Equal(day) {
			return domain.ErrDuplicateRecent
		}
	}

	if lead.ID == uuid.Nil {
		lead.ID = uuid.New()
	}
	if lead.Status == "" {
		lead.Status = domain.LeadStatusNew
	}
	r.leads = append(r.leads, *lead)
	return nil
}

func (r *LeadRepository) List(_ context.Context, q domain.LeadQuery) ([]domain.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(q.Search))
	result := make([]domain.Lead, 0, len(r.leads))
	for _, l := range r.leads {
		if q.Status != nil && l.Status != *q.Status {
			continue
		}
		if search != "" && !containsAny(search, l.Name, l.Phone, l.City) {
			continue
		}
		result = append(result, l)
	}
	sortLeadsNewestFirst(result)
	if q.Limit > 0 && len(result) > q.Limit {
		result = result[:q.Limit]
	}
	return result, nil
}

func (r *LeadRepository) UpdateStatus(_ context.Context, id uuid.UUID, status domain.LeadStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.leads {
		if r.leads[i].ID == id {
			r.leads[i].Status = status
			return nil
		}
	}
	return domain.ErrLeadNotFound
}

func (r *LeadRepository) Stats(_ context.Context, since time.Time) (*domain.LeadStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &domain.LeadStats{Total: len(r.leads)}
	var budgetSum, budgetCount int64
	for _, l := range r.leads {
		if l.Status == domain.LeadStatusNew {
			stats.New++
		}
		if !l.CreatedAt.Before(since) {
			stats.Since++
		}
		if l.Budget > 0 {
			budgetSum += l.Budget
			budgetCount++
		}
	}
	if budgetCount > 0 {
		stats.AverageBudget = (budgetSum + budgetCount/2) / budgetCount
	}
	return stats, nil
}

func utcDay(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}
