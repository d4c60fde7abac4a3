package port

import (
	"context"
	"time"

	"github.com/keertiraj-bot/realstate/internal/core/domain"
)

type TokenServicePort interface {
	GenerateToken(ctx context.Context, user *domain.User, ttl time.Duration) (string, error)
	// ValidateToken returns domain.ErrTokenInvalid for any token it does not accept.
	ValidateToken(ctx context.Context, tokenString string) (*domain.Claims, error)
}

// SubmissionMarkerPort signs and reads the browser marker left after a successful enquiry.
type SubmissionMarkerPort interface {
	Issue(ctx context.Context, submittedAt time.Time, ttl time.Duration) (string, error)
	// SubmittedAt fails for tampered, foreign or expired markers.
	SubmittedAt(ctx context.Context, marker string) (time.Time, error)
}
