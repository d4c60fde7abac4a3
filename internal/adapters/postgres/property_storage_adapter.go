package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/keertiraj-bot/realstate/internal/contextkeys"
	"github.com/keertiraj-bot/realstate/internal/core/domain"
	"github.com/keertiraj-bot/realstate/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

const propertyColumns = `id, slug, title, property_type, COALESCE(tag, ''), status, location, city,
	price, area_sqft, bedrooms, bathrooms, images, amenities, description, created_at`

type PostgresPropertyStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresPropertyStorage(pool *pgxpool.Pool) (*PostgresPropertyStorage, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresPropertyStorage{pool: pool}, nil
}

func scanProperty(row pgx.Row) (domain.Property, error) {
	var (
		p            domain.Property
		propertyType string
		tag          string
		status       string
	)
	err := row.Scan(
		&p.ID, &p.Slug, &p.Title, &propertyType, &tag, &status, &p.Location, &p.City,
		&p.Price, &p.AreaSqft, &p.Bedrooms, &p.Bathrooms, &p.Images, &p.Amenities, &p.Description, &p.CreatedAt,
	)
	if err != nil {
		return p, err
	}
	p.PropertyType = domain.PropertyType(propertyType)
	p.Tag = domain.PropertyTag(tag)
	p.Status = domain.PropertyStatus(status)
	return p, nil
}

func collectProperties(rows pgx.Rows) ([]domain.Property, error) {
	defer rows.Close()

	properties := make([]domain.Property, 0)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate properties: %w", err)
	}
	return properties, nil
}

// FindAvailable returns every available property matching filters, fully materialized.
func (a *PostgresPropertyStorage) FindAvailable(ctx context.Context, filters domain.PropertyFilters) ([]domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresPropertyStorage",
		"method":    "FindAvailable",
	})

	whereClause, orderBy, args := applyCatalogFilters(filters)
	query := fmt.Sprintf("SELECT %s FROM properties %s %s", propertyColumns, whereClause, orderBy)

	repoLogger.Debug("Executing catalog query.", port.Fields{"query": query, "args_count": len(args)})
	rows, err := a.pool.Query(ctx, query, args...)
	if err != nil {
		repoLogger.Error("Failed to query properties", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}

	properties, err := collectProperties(rows)
	if err != nil {
		repoLogger.Error("Failed to read properties", err, nil)
		return nil, err
	}

	repoLogger.Debug("Catalog query finished.", port.Fields{"count": len(properties)})
	return properties, nil
}

func (a *PostgresPropertyStorage) FindFeatured(ctx context.Context, limit int) ([]domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresPropertyStorage",
		"method":    "FindFeatured",
		"limit":     limit,
	})

	query := fmt.Sprintf(`SELECT %s FROM properties WHERE status = 'available'
		ORDER BY created_at DESC, id ASC LIMIT $1`, propertyColumns)

	rows, err := a.pool.Query(ctx, query, limit)
	if err != nil {
		repoLogger.Error("Failed to query featured properties", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query featured properties: %w", err)
	}

	return collectProperties(rows)
}

// GetBySlug returns nil, nil when no property has the slug.
func (a *PostgresPropertyStorage) GetBySlug(ctx context.Context, slug string) (*domain.Property, error) {
	return a.getOne(ctx, "GetBySlug", "slug = $1", slug)
}

// GetByID returns nil, nil when the id is unknown.
func (a *PostgresPropertyStorage) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	return a.getOne(ctx, "GetByID", "id = $1", id)
}

func (a *PostgresPropertyStorage) getOne(ctx context.Context, method, condition string, arg interface{}) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresPropertyStorage",
		"method":    method,
		"key":       fmt.Sprint(arg),
	})

	query := fmt.Sprintf("SELECT %s FROM properties WHERE %s", propertyColumns, condition)

	p, err := scanProperty(a.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Debug("Property not found.", nil)
			return nil, nil
		}
		repoLogger.Error("Failed to load property", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to load property: %w", err)
	}

	return &p, nil
}

// List serves the admin table: every status, newest first.
func (a *PostgresPropertyStorage) List(ctx context.Context, q domain.AdminPropertyQuery) ([]domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresPropertyStorage",
		"method":    "List",
		"search":    q.Search,
	})

	qb := newQueryBuilder()
	qb.AddSubstringMatch([]string{"title", "location", "city"}, q.Search)
	whereClause, args := qb.build()

	query := fmt.Sprintf("SELECT %s FROM properties %s ORDER BY created_at DESC, id ASC", propertyColumns, whereClause)

	rows, err := a.pool.Query(ctx, query, args...)
	if err != nil {
		repoLogger.Error("Failed to list properties", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	return collectProperties(rows)
}

func (a *PostgresPropertyStorage) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM properties WHERE slug = $1 AND ($2::uuid IS NULL OR id <> $2::uuid))`

	var exists bool
	if err := a.pool.QueryRow(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to check slug", err, port.Fields{
			"component": "PostgresPropertyStorage",
			"method":    "SlugExists",
			"slug":      slug,
		})
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

// Create inserts the property and fills its store-assigned id.
func (a *PostgresPropertyStorage) Create(ctx context.Context, p *domain.Property) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresPropertyStorage",
		"method":    "Create",
		"slug":      p.Slug,
	})

	query := `INSERT INTO properties (slug, title, property_type, tag, status, location, city, price,
			area_sqft, bedrooms, bathrooms, images, amenities, description, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id`

	err := a.pool.QueryRow(ctx, query,
		p.Slug, p.Title, string(p.PropertyType), string(p.Tag), string(p.Status), p.Location, p.City, p.Price,
		p.AreaSqft, p.Bedrooms, p.Bathrooms, nonNil(p.Images), nonNil(p.Amenities), p.Description, p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			repoLogger.Warn("Slug already taken.", nil)
			return fmt.Errorf("%w: %s", domain.ErrSlugConflict, p.Slug)
		}
		repoLogger.Error("Failed to create property", err, port.Fields{"query": query})
		return fmt.Errorf("failed to create property: %w", err)
	}

	repoLogger.Debug("Property created.", port.Fields{"property_id": p.ID.String()})
	return nil
}

func (a *PostgresPropertyStorage) Update(ctx context.Context, p *domain.Property) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PostgresPropertyStorage",
		"method":      "Update",
		"property_id": p.ID.String(),
	})

	query := `UPDATE properties SET slug = $2, title = $3, property_type = $4, tag = NULLIF($5, ''), status = $6,
			location = $7, city = $8, price = $9, area_sqft = $10, bedrooms = $11, bathrooms = $12,
			images = $13, amenities = $14, description = $15
		WHERE id = $1`

	cmdTag, err := a.pool.Exec(ctx, query,
		p.ID, p.Slug, p.Title, string(p.PropertyType), string(p.Tag), string(p.Status), p.Location, p.City,
		p.Price, p.AreaSqft, p.Bedrooms, p.Bathrooms, nonNil(p.Images), nonNil(p.Amenities), p.Description,
	)
	if err != nil {
		if isUniqueViolation(err) {
			repoLogger.Warn("Slug already taken.", port.Fields{"slug": p.Slug})
			return fmt.Errorf("%w: %s", domain.ErrSlugConflict, p.Slug)
		}
		repoLogger.Error("Failed to update property", err, port.Fields{"query": query})
		return fmt.Errorf("failed to update property: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrPropertyNotFound
	}

	return nil
}

func (a *PostgresPropertyStorage) Delete(ctx context.Context, id uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PostgresPropertyStorage",
		"method":      "Delete",
		"property_id": id.String(),
	})

	cmdTag, err := a.pool.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		repoLogger.Error("Failed to delete property", err, nil)
		return fmt.Errorf("failed to delete property: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrPropertyNotFound
	}

	repoLogger.Debug("Property deleted.", nil)
	return nil
}

func (a *PostgresPropertyStorage) Count(ctx context.Context) (int, int, error) {
	query := `SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'available') FROM properties`

	var total, available int
	if err := a.pool.QueryRow(ctx, query).Scan(&total, &available); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to count properties", err, port.Fields{
			"component": "PostgresPropertyStorage",
			"method":    "Count",
		})
		return 0, 0, fmt.Errorf("failed to count properties: %w", err)
	}
	return total, available, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
