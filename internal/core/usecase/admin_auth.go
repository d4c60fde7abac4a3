package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/keertiraj-bot/realstate/internal/contextkeys"
	"github.com/keertiraj-bot/realstate/internal/core/domain"
	"github.com/keertiraj-bot/realstate/internal/core/port"
)

type LoginUserUseCase struct {
	userRepo       port.UserRepositoryPort
	tokenSvc       port.TokenServicePort
	accessTokenTTL time.Duration
}

func NewLoginUserUseCase(userRepo port.UserRepositoryPort, tokenSvc port.TokenServicePort, accessTokenTTL time.Duration) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo:       userRepo,
		tokenSvc:       tokenSvc,
		accessTokenTTL: accessTokenTTL,
	}
}

// Execute returns a session token. Unknown users and wrong passwords both map to
// domain.ErrInvalidCredentials.
func (uc *LoginUserUseCase) Execute(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "LoginUser",
		"email":    email,
	})
	ucLogger.Info("Use case started", nil)

	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		ucLogger.Error("Repository failed to find user by email", err, nil)
		return "", fmt.Errorf("internal server error: %w", err)
	}
	if user == nil {
		ucLogger.Warn("Login failed: user not found", nil)
		return "", domain.ErrInvalidCredentials
	}

	ucLogger = ucLogger.WithFields(port.Fields{"user_id": user.ID.String()})

	if !user.CheckPassword(password) {
		ucLogger.Warn("Login failed: invalid credentials", nil)
		return "", domain.ErrInvalidCredentials
	}

	token, err := uc.tokenSvc.GenerateToken(ctx, user, uc.accessTokenTTL)
	if err != nil {
		ucLogger.Error("Failed to generate token after successful login", err, nil)
		return "", err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return token, nil
}

type ValidateTokenUseCase struct {
	tokenSvc port.TokenServicePort
}

func NewValidateTokenUseCase(tokenSvc port.TokenServicePort) *ValidateTokenUseCase {
	return &ValidateTokenUseCase{tokenSvc: tokenSvc}
}

func (uc *ValidateTokenUseCase) Execute(ctx context.Context, tokenString string) (*domain.Claims, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "ValidateToken"})

	ucLogger.Debug("Use case started", nil)

	claims, err := uc.tokenSvc.ValidateToken(ctx, tokenString)
	if err != nil {
		ucLogger.Debug("Token rejected", port.Fields{"error": err.Error()})
		return nil, err
	}

	ucLogger.Debug("Use case finished successfully", port.Fields{"user_id": claims.UserID.String(), "role": claims.Role})
	return claims, nil
}

type EnsureAdminUseCase struct {
	userRepo port.UserRepositoryPort
}

func NewEnsureAdminUseCase(userRepo port.UserRepositoryPort) *EnsureAdminUseCase {
	return &EnsureAdminUseCase{userRepo: userRepo}
}

// Execute creates the bootstrap admin account unless the email is already registered.
func (uc *EnsureAdminUseCase) Execute(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "EnsureAdmin",
		"email":    email,
	})
	ucLogger.Info("Use case started", nil)

	if email == "" || password == "" {
		return fmt.Errorf("admin email and password are required")
	}

	existing, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		ucLogger.Error("Repository failed while checking for existing admin", err, nil)
		return fmt.Errorf("failed to look up admin: %w", err)
	}
	if existing != nil {
		if existing.Role != domain.RoleAdmin {
			ucLogger.Warn("Bootstrap email belongs to a non-admin account", nil)
		}
		ucLogger.Info("Admin account already exists", nil)
		return nil
	}

	user, err := domain.NewUser(email, password, domain.RoleAdmin)
	if err != nil {
		ucLogger.Error("Failed to create admin domain object", err, nil)
		return err
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailInUse) {
			ucLogger.Info("Admin account was created concurrently", nil)
			return nil
		}
		ucLogger.Error("Repository failed to create admin", err, nil)
		return err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"user_id": user.ID.String()})
	return nil
}
