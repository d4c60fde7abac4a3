package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type LeadSource string

const (
	LeadSourcePropertyEnquiry LeadSource = "property_enquiry"
	LeadSourceGeneral         LeadSource = "general"
	LeadSourceContactPage     LeadSource = "contact_page"
)

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusClosed    LeadStatus = "closed"
)

// ParseLeadStatus accepts any of the three workflow states. Transitions are unordered.
func ParseLeadStatus(s string) (LeadStatus, error) {
	switch st := LeadStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case LeadStatusNew, LeadStatusContacted, LeadStatusClosed:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

const (
	MinBudget = 100000
	MaxBudget = 1000000000

	ContactPlaceholderCity = "N/A"
)

// Lead is one stored enquiry.
type Lead struct {
	ID            uuid.UUID
	Name          string
	Phone         string
	City          string
	Budget        int64
	Message       string
	PropertyID    *uuid.UUID
	PropertySlug  string
	PropertyTitle string
	Source        LeadSource
	Status        LeadStatus
	CreatedAt     time.Time
}

// PropertyRef is the linkage used for duplicate detection: the slug when known,
// otherwise the id, otherwise empty for unlinked leads.
func (l Lead) PropertyRef() string {
	if l.PropertySlug != "" {
		return l.PropertySlug
	}
	if l.PropertyID != nil {
		return l.PropertyID.String()
	}
	return ""
}

// DuplicateKey identifies leads that the 24 hour window treats as the same enquiry.
type DuplicateKey struct {
	Phone       string
	Source      LeadSource
	PropertyRef string
}

func (l Lead) DuplicateKey() DuplicateKey {
	return DuplicateKey{Phone: l.Phone, Source: l.Source, PropertyRef: l.PropertyRef()}
}

// LeadQuery drives the admin lead listing.
type LeadQuery struct {
	Search string      // substring of name, phone or city
	Status *LeadStatus // nil means every status
	Limit  int         // 0 means unlimited
}
