package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/keertiraj-bot/realstate/internal/contextkeys"
	"github.com/keertiraj-bot/realstate/internal/core/domain"
	"github.com/keertiraj-bot/realstate/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) (*UserRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &UserRepository{pool: pool}, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "UserRepository",
		"method":    "Create",
		"user_id":   user.ID.String(),
		"email":     user.Email,
	})

	query := `INSERT INTO users (id, email, password_hash, role, created_at) VALUES ($1, $2, $3, $4, $5)`

	repoLogger.Debug("Executing query to create user.", nil)
	_, err := r.pool.Exec(ctx, query, user.ID, user.Email, user.PasswordHash, user.Role, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			repoLogger.Warn("Email already registered.", nil)
			return domain.ErrEmailInUse
		}
		repoLogger.Error("Failed to create user", err, port.Fields{"query": query})
		return fmt.Errorf("failed to create user: %w", err)
	}

	repoLogger.Debug("User created successfully.", nil)
	return nil
}

// FindByEmail returns (nil, nil) when the user does not exist.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "UserRepository",
		"method":    "FindByEmail",
		"email":     email,
	})

	query := `SELECT id, email, password_hash, role, created_at FROM users WHERE email = $1`

	var user domain.User
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Debug("User not found by email.", nil)
			return nil, nil
		}
		repoLogger.Error("Failed to find user by email", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	return &user, nil
}
