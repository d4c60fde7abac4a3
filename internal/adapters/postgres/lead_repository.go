package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/keertiraj-bot/realstate/internal/contextkeys"
	"github.com/keertiraj-bot/realstate/internal/core/domain"
	"github.com/keertiraj-bot/realstate/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const leadColumns = `id, name, phone, city, budget, message, property_id, property_slug, property_title,
	source, status, created_at`

type PostgresLeadRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresLeadRepository(pool *pgxpool.Pool) (*PostgresLeadRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresLeadRepository{pool: pool}, nil
}

func scanLead(row pgx.Row) (domain.Lead, error) {
	var (
		l      domain.Lead
		source string
		status string
	)
	err := row.Scan(
		&l.ID, &l.Name, &l.Phone, &l.City, &l.Budget, &l.Message, &l.PropertyID, &l.PropertySlug,
		&l.PropertyTitle, &source, &status, &l.CreatedAt,
	)
	l.Source = domain.LeadSource(source)
	l.Status = domain.LeadStatus(status)
	return l, err
}

// FindLatest returns the newest lead sharing key, or nil, nil.
func (r *PostgresLeadRepository) FindLatest(ctx context.Context, key domain.DuplicateKey) (*domain.Lead, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresLeadRepository",
		"method":    "FindLatest",
		"source":    key.Source,
	})

	query := fmt.Sprintf(`SELECT %s FROM leads
		WHERE phone = $1 AND source = $2 AND property_ref = $3
		ORDER BY created_at DESC LIMIT 1`, leadColumns)

	lead, err := scanLead(r.pool.QueryRow(ctx, query, key.Phone, string(key.Source), key.PropertyRef))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Debug("No previous lead for key.", nil)
			return nil, nil
		}
		repoLogger.Error("Failed to look up previous lead", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to look up previous lead: %w", err)
	}

	return &lead, nil
}

// Create inserts the lead and fills its id. A unique violation on the daily
// duplicate index is reported as domain.ErrDuplicateRecent.
func (r *PostgresLeadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresLeadRepository",
		"method":    "Create",
		"source":    lead.Source,
	})

	query := `INSERT INTO leads (name, phone, city, budget, message, property_id, property_slug,
			property_title, property_ref, source, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		lead.Name, lead.Phone, lead.City, lead.Budget, lead.Message, lead.PropertyID, lead.PropertySlug,
		lead.PropertyTitle, lead.PropertyRef(), string(lead.Source), string(lead.Status), lead.CreatedAt,
	).Scan(&lead.ID)
	if err != nil {
		if isUniqueViolation(err) {
			repoLogger.Warn("Lead rejected by unique index.", nil)
			return fmt.Errorf("%w: unique violation", domain.ErrDuplicateRecent)
		}
		repoLogger.Error("Failed to insert lead", err, port.Fields{"query": query})
		return fmt.Errorf("failed to insert lead: %w", err)
	}

	repoLogger.Debug("Lead inserted.", port.Fields{"lead_id": lead.ID.String()})
	return nil
}

// List returns leads newest first.
func (r *PostgresLeadRepository) List(ctx context.Context, q domain.LeadQuery) ([]domain.Lead, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresLeadRepository",
		"method":    "List",
	})

	qb := newQueryBuilder()
	qb.AddSubstringMatch([]string{"name", "phone", "city"}, q.Search)
	if q.Status != nil {
		qb.addCondition("%s = $%d", "status", string(*q.Status))
	}
	whereClause, _ := qb.build()

	query := fmt.Sprintf("SELECT %s FROM leads %s ORDER BY created_at DESC, id ASC", leadColumns, whereClause)
	if q.Limit > 0 {
		query += " LIMIT " + qb.nextArg(q.Limit)
	}

	rows, err := r.pool.Query(ctx, query, qb.args...)
	if err != nil {
		repoLogger.Error("Failed to list leads", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	leads := make([]domain.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leads: %w", err)
	}

	return leads, nil
}

func (r *PostgresLeadRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.LeadStatus) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresLeadRepository",
		"method":    "UpdateStatus",
		"lead_id":   id.String(),
		"status":    status,
	})

	cmdTag, err := r.pool.Exec(ctx, `UPDATE leads SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		repoLogger.Error("Failed to update lead status", err, nil)
		return fmt.Errorf("failed to update lead status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrLeadNotFound
	}

	return nil
}

func (r *PostgresLeadRepository) Stats(ctx context.Context, since time.Time) (*domain.LeadStats, error) {
	query := `SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'new'),
			COUNT(*) FILTER (WHERE created_at >= $1),
			COALESCE(ROUND(AVG(budget) FILTER (WHERE budget > 0)), 0)::bigint
		FROM leads`

	var stats domain.LeadStats
	if err := r.pool.QueryRow(ctx, query, since).Scan(&stats.Total, &stats.New, &stats.Since, &stats.AverageBudget); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to compute lead stats", err, port.Fields{
			"component": "PostgresLeadRepository",
			"method":    "Stats",
		})
		return nil, fmt.Errorf("failed to compute lead stats: %w", err)
	}
	return &stats, nil
}
