package rabbitmq

import (
	"time"

	"github.com/google/uuid"
)

// LeadSubmittedEventDTO matches schemas/events/lead-submitted/v1.json.
// Contact details stay out of the event.
type LeadSubmittedEventDTO struct {
	LeadID      uuid.UUID  `json:"lead_id"`
	Source      string     `json:"source"`
	PropertyID  *uuid.UUID `json:"property_id"`
	PropertyRef string     `json:"property_ref"`
	City        string     `json:"city"`
	Budget      int64      `json:"budget"`
	SubmittedAt time.Time  `json:"submitted_at"`
}
