package token_adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/keertiraj-bot/realstate/internal/core/domain"

	"github.com/golang-jwt/jwt/v5"
)

const (
	markerIssuer   = "brokerage-service"
	markerAudience = "enquiry-marker"
)

// MarkerService signs the short browser marker that records when a visitor last
// submitted an enquiry. The marker carries no personal data.
type MarkerService struct {
	signingKey []byte
	now        func() time.Time
}

func NewMarkerService(signingKey string) (*MarkerService, error) {
	if signingKey == "" {
		return nil, fmt.Errorf("marker signing key cannot be empty")
	}
	return &MarkerService{signingKey: []byte(signingKey), now: time.Now}, nil
}

func (s *MarkerService) Issue(_ context.Context, submittedAt time.Time, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    markerIssuer,
		Audience:  jwt.ClaimStrings{markerAudience},
		IssuedAt:  jwt.NewNumericDate(submittedAt),
		ExpiresAt: jwt.NewNumericDate(submittedAt.Add(ttl)),
	}
	marker, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign marker: %w", err)
	}
	return marker, nil
}

func (s *MarkerService) SubmittedAt(_ context.Context, marker string) (time.Time, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(marker, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	},
		jwt.WithIssuer(markerIssuer),
		jwt.WithAudience(markerAudience),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}
	if claims.IssuedAt == nil {
		return time.Time{}, fmt.Errorf("%w: marker has no issue time", domain.ErrTokenInvalid)
	}
	return claims.IssuedAt.Time, nil
}
