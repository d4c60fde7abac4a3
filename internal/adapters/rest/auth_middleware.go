package rest

import (
	"net/http"
	"strings"

	"github.com/keertiraj-bot/realstate/internal/constants"
	"github.com/keertiraj-bot/realstate/internal/contextkeys"
	"github.com/keertiraj-bot/realstate/internal/core/domain"
	"github.com/keertiraj-bot/realstate/internal/core/port"
	"github.com/keertiraj-bot/realstate/internal/core/port/usecases_port"
)

// sessionToken reads the admin session from its cookie or an Authorization bearer header.
func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(constants.AdminSessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// resolveClaims returns the session claims, or false when there is no valid session.
func resolveClaims(r *http.Request, validateUC usecases_port.ValidateTokenUseCase) (*domain.Claims, bool) {
	token := sessionToken(r)
	if token == "" {
		return nil, false
	}
	claims, err := validateUC.Execute(r.Context(), token)
	if err != nil || claims == nil {
		return nil, false
	}
	return claims, true
}

// AdminOnly redirects visitors without a session to the login page and signed-in
// non-admins to the home page.
func AdminOnly(validateUC usecases_port.ValidateTokenUseCase) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"middleware": "AdminOnly"})

			claims, ok := resolveClaims(r, validateUC)
			if !ok {
				logger.Debug("No valid admin session, redirecting to login", nil)
				http.Redirect(w, r, constants.AdminLoginPath, http.StatusSeeOther)
				return
			}
			if !claims.IsAdmin() {
				logger.Warn("Non-admin user tried to open the admin area", port.Fields{"user_id": claims.UserID.String()})
				http.Redirect(w, r, constants.HomePath, http.StatusSeeOther)
				return
			}

			ctx := contextkeys.ContextWithClaims(r.Context(), *claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
