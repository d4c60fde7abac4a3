package usecase

import (
	"context"

	"github.com/keertiraj-bot/realstate/internal/contextkeys"
	"github.com/keertiraj-bot/realstate/internal/core/domain"
	"github.com/keertiraj-bot/realstate/internal/core/port"

	"github.com/google/uuid"
)

type ListLeadsUseCase struct {
	leads port.LeadRepositoryPort
}

func NewListLeadsUseCase(leads port.LeadRepositoryPort) *ListLeadsUseCase {
	return &ListLeadsUseCase{leads: leads}
}

func (uc *ListLeadsUseCase) Execute(ctx context.Context, query domain.LeadQuery) ([]domain.Lead, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "ListLeads",
		"search":   query.Search,
	})

	ucLogger.Info("Use case started", nil)

	leads, err := uc.leads.List(ctx, query)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"total_found": len(leads)})
	return leads, nil
}

type UpdateLeadStatusUseCase struct {
	leads port.LeadRepositoryPort
}

func NewUpdateLeadStatusUseCase(leads port.LeadRepositoryPort) *UpdateLeadStatusUseCase {
	return &UpdateLeadStatusUseCase{leads: leads}
}

// Execute moves a lead to any of the three statuses; no ordering is enforced.
func (uc *UpdateLeadStatusUseCase) Execute(ctx context.Context, id uuid.UUID, status string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "UpdateLeadStatus",
		"lead_id":  id.String(),
		"status":   status,
	})

	ucLogger.Info("Use case started", nil)

	parsed, err := domain.ParseLeadStatus(status)
	if err != nil {
		ucLogger.Warn("Rejected unknown lead status", nil)
		return err
	}

	if err := uc.leads.UpdateStatus(ctx, id, parsed); err != nil {
		ucLogger.Error("Failed to update lead status", err, nil)
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
