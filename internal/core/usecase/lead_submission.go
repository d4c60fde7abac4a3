package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/keertiraj-bot/realstate/internal/constants"
	"github.com/keertiraj-bot/realstate/internal/contextkeys"
	"github.com/keertiraj-bot/realstate/internal/core/domain"
	"github.com/keertiraj-bot/realstate/internal/core/port"
)

// LeadSubmissionConfig holds the guard windows and deployment mode of the lead flow.
type LeadSubmissionConfig struct {
	DemoMode        bool
	StrictPhone     bool
	MarkerWindow    time.Duration
	DuplicateWindow time.Duration
}

// leadSubmitter runs the part of the flow shared by enquiries and contact messages:
// marker guard, demo short-circuit, server window, insert and event.
type leadSubmitter struct {
	leads  port.LeadRepositoryPort
	events port.LeadEventsPort
	cfg    LeadSubmissionConfig
	now    func() time.Time
	// publishDone is called after every background publish; tests hook it.
	publishDone func()
}

func newLeadSubmitter(leads port.LeadRepositoryPort, events port.LeadEventsPort, cfg LeadSubmissionConfig) *leadSubmitter {
	return &leadSubmitter{
		leads:       leads,
		events:      events,
		cfg:         cfg,
		now:         func() time.Time { return time.Now().UTC() },
		publishDone: func() {},
	}
}

// submit expects a validated lead. resolve, when set, may complete the lead before the
// duplicate check and is skipped in demo mode.
func (s *leadSubmitter) submit(ctx context.Context, ucLogger port.LoggerPort, lead domain.Lead, lastSubmittedAt *time.Time, successMsg string, resolve func(*domain.Lead)) (*domain.SubmissionResult, error) {
	now := s.now()

	if lastSubmittedAt != nil && now.Sub(*lastSubmittedAt) < s.cfg.MarkerWindow {
		ucLogger.Warn("Rejected by submission marker", port.Fields{"last_submitted_at": lastSubmittedAt.Format(time.RFC3339)})
		return nil, &domain.DuplicateError{Reason: constants.MsgMarkerDuplicate}
	}

	if s.cfg.DemoMode {
		ucLogger.Info("Demo mode: lead not persisted", port.Fields{
			"name":         lead.Name,
			"phone":        lead.Phone,
			"city":         lead.City,
			"budget":       lead.Budget,
			"source":       lead.Source,
			"property_ref": lead.PropertyRef(),
		})
		lead.Status = domain.LeadStatusNew
		lead.CreatedAt = now
		return &domain.SubmissionResult{Lead: lead, SubmittedAt: now, Demo: true, Message: successMsg}, nil
	}

	if resolve != nil {
		resolve(&lead)
	}

	key := lead.DuplicateKey()
	latest, err := s.leads.FindLatest(ctx, key)
	if err != nil {
		ucLogger.Error("Duplicate check failed", err, nil)
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistenceUnavailable, err)
	}
	if latest != nil && now.Sub(latest.CreatedAt) < s.cfg.DuplicateWindow {
		ucLogger.Warn("Rejected by duplicate window", port.Fields{"previous_lead_id": latest.ID.String()})
		reason := constants.MsgGeneralDuplicate
		if lead.Source == domain.LeadSourcePropertyEnquiry {
			reason = constants.MsgPropertyDuplicate
		}
		return nil, &domain.DuplicateError{Reason: reason}
	}

	lead.Status = domain.LeadStatusNew
	lead.CreatedAt = now
	if err := s.leads.Create(ctx, &lead); err != nil {
		if errors.Is(err, domain.ErrDuplicateRecent) {
			ucLogger.Warn("Store rejected lead as duplicate", nil)
			return nil, &domain.DuplicateError{Reason: constants.MsgStoreDuplicate}
		}
		ucLogger.Error("Failed to insert lead", err, nil)
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistenceUnavailable, err)
	}

	s.publish(ctx, lead)

	return &domain.SubmissionResult{Lead: lead, SubmittedAt: now, Message: successMsg}, nil
}

// publish sends the analytics event in the background. Failures are only logged.
func (s *leadSubmitter) publish(ctx context.Context, lead domain.Lead) {
	if s.events == nil {
		s.publishDone()
		return
	}

	logger := contextkeys.LoggerFromContext(ctx)
	traceID := contextkeys.TraceIDFromContext(ctx)

	go func() {
		defer s.publishDone()

		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constants.LeadEventPublishTimeout)
		defer cancel()

		if err := s.events.PublishLeadSubmitted(pubCtx, lead); err != nil {
			logger.Warn("Failed to publish lead event", port.Fields{
				"lead_id":  lead.ID.String(),
				"trace_id": traceID,
				"error":    err.Error(),
			})
		}
	}()
}

type SubmitEnquiryUseCase struct {
	*leadSubmitter
	catalog port.PropertyCatalogPort
}

// NewSubmitEnquiryUseCase builds the enquiry flow. catalog and events may be nil.
func NewSubmitEnquiryUseCase(leads port.LeadRepositoryPort, catalog port.PropertyCatalogPort, events port.LeadEventsPort, cfg LeadSubmissionConfig) *SubmitEnquiryUseCase {
	return &SubmitEnquiryUseCase{
		leadSubmitter: newLeadSubmitter(leads, events, cfg),
		catalog:       catalog,
	}
}

func (uc *SubmitEnquiryUseCase) Execute(ctx context.Context, cmd domain.EnquiryCommand) (*domain.SubmissionResult, error) {
	input := cmd.Input
	input.Normalize()

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SubmitEnquiry",
		"source":   input.Source(),
	})

	ucLogger.Info("Use case started", nil)

	if err := input.Validate(domain.ValidationOptions{StrictPhone: uc.cfg.StrictPhone}); err != nil {
		ucLogger.Warn("Enquiry failed validation", port.Fields{"error": err.Error()})
		return nil, err
	}

	resolve := func(lead *domain.Lead) { uc.resolveProperty(ctx, ucLogger, lead) }
	result, err := uc.submit(ctx, ucLogger, input.ToLead(), cmd.LastSubmittedAt, constants.MsgEnquirySubmitted, resolve)
	if err != nil {
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"lead_id": result.Lead.ID.String(), "demo": result.Demo})
	return result, nil
}

// resolveProperty fills whichever of id, slug and title the caller left out, so the
// duplicate key does not depend on how the form referenced the property.
func (uc *SubmitEnquiryUseCase) resolveProperty(ctx context.Context, ucLogger port.LoggerPort, lead *domain.Lead) {
	if uc.catalog == nil || lead.Source != domain.LeadSourcePropertyEnquiry {
		return
	}

	var (
		property *domain.Property
		err      error
	)
	if lead.PropertySlug != "" {
		property, err = uc.catalog.GetBySlug(ctx, lead.PropertySlug)
	} else {
		property, err = uc.catalog.GetByID(ctx, *lead.PropertyID)
	}
	if err != nil {
		ucLogger.Warn("Could not resolve enquired property, keeping submitted reference", port.Fields{"error": err.Error()})
		return
	}
	if property == nil {
		uc.resolveSampleProperty(lead)
		return
	}

	id := property.ID
	lead.PropertyID = &id
	lead.PropertySlug = property.Slug
	if lead.PropertyTitle == "" {
		lead.PropertyTitle = property.Title
	}
}

type SubmitContactUseCase struct {
	*leadSubmitter
}

func NewSubmitContactUseCase(leads port.LeadRepositoryPort, events port.LeadEventsPort, cfg LeadSubmissionConfig) *SubmitContactUseCase {
	return &SubmitContactUseCase{leadSubmitter: newLeadSubmitter(leads, events, cfg)}
}

func (uc *SubmitContactUseCase) Execute(ctx context.Context, cmd domain.ContactCommand) (*domain.SubmissionResult, error) {
	input := cmd.Input
	input.Normalize()

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SubmitContact",
		"source":   domain.LeadSourceContactPage,
	})

	ucLogger.Info("Use case started", nil)

	if err := input.Validate(domain.ValidationOptions{StrictPhone: uc.cfg.StrictPhone}); err != nil {
		ucLogger.Warn("Contact message failed validation", port.Fields{"error": err.Error()})
		return nil, err
	}

	result, err := uc.submit(ctx, ucLogger, input.ToLead(), cmd.LastSubmittedAt, constants.MsgContactSubmitted, nil)
	if err != nil {
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"lead_id": result.Lead.ID.String(), "demo": result.Demo})
	return result, nil
}

// resolveSampleProperty links a lead to a built-in sample listing by slug and title only.
// Sample ids have no row in the store, so the id is dropped.
func (uc *SubmitEnquiryUseCase) resolveSampleProperty(lead *domain.Lead) {
	for _, sample := range domain.SampleCatalog() {
		bySlug := lead.PropertySlug != "" && sample.Slug == lead.PropertySlug
		byID := lead.PropertyID != nil && sample.ID == *lead.PropertyID
		if !bySlug && !byID {
			continue
		}
		lead.PropertyID = nil
		lead.PropertySlug = sample.Slug
		if lead.PropertyTitle == "" {
			lead.PropertyTitle = sample.Title
		}
		return
	}
}
