package port

import (
	"context"

	"github.com/keertiraj-bot/realstate/internal/core/domain"
)

// LeadEventsPort publishes analytics events about accepted leads.
type LeadEventsPort interface {
	PublishLeadSubmitted(ctx context.Context, lead domain.Lead) error
}
