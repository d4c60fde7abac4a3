package usecase

import (
	"context"
	"time"

	"github.com/keertiraj-bot/realstate/internal/constants"
	"github.com/keertiraj-bot/realstate/internal/contextkeys"
	"github.com/keertiraj-bot/realstate/internal/core/domain"
	"github.com/keertiraj-bot/realstate/internal/core/port"
)

type GetDashboardUseCase struct {
	properties port.PropertyStoragePort
	leads      port.LeadRepositoryPort
	now        func() time.Time
}

func NewGetDashboardUseCase(properties port.PropertyStoragePort, leads port.LeadRepositoryPort) *GetDashboardUseCase {
	return &GetDashboardUseCase{
		properties: properties,
		leads:      leads,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (uc *GetDashboardUseCase) Execute(ctx context.Context) (*domain.DashboardStats, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "GetDashboard"})

	ucLogger.Info("Use case started", nil)

	total, available, err := uc.properties.Count(ctx)
	if err != nil {
		ucLogger.Error("Failed to count properties", err, nil)
		return nil, err
	}

	leadStats, err := uc.leads.Stats(ctx, uc.now().Add(-constants.DashboardLeadsWindow))
	if err != nil {
		ucLogger.Error("Failed to compute lead stats", err, nil)
		return nil, err
	}

	recent, err := uc.leads.List(ctx, domain.LeadQuery{Limit: constants.DashboardRecentLeads})
	if err != nil {
		ucLogger.Error("Failed to load recent leads", err, nil)
		return nil, err
	}

	stats := &domain.DashboardStats{
		TotalProperties:     total,
		AvailableProperties: available,
		TotalLeads:          leadStats.Total,
		NewLeads:            leadStats.New,
		LeadsLast30Days:     leadStats.Since,
		AverageBudget:       leadStats.AverageBudget,
		RecentLeads:         recent,
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total_properties": stats.TotalProperties,
		"total_leads":      stats.TotalLeads,
	})
	return stats, nil
}
