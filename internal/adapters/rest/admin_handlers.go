package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/keertiraj-bot/realstate/internal/constants"
	"github.com/keertiraj-bot/realstate/internal/contextkeys"
	"github.com/keertiraj-bot/realstate/internal/core/domain"
	"github.com/keertiraj-bot/realstate/internal/core/port"
	"github.com/keertiraj-bot/realstate/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type AdminHandler struct {
	loginUC      usecases_port.LoginUseCase
	validateUC   usecases_port.ValidateTokenUseCase
	dashboardUC  usecases_port.GetDashboardUseCase
	propertiesUC usecases_port.ManagePropertiesUseCase
	listLeadsUC  usecases_port.ListLeadsUseCase
	leadStatusUC usecases_port.UpdateLeadStatusUseCase
	cookies      CookieConfig
}

func NewAdminHandler(
	loginUC usecases_port.LoginUseCase,
	validateUC usecases_port.ValidateTokenUseCase,
	dashboardUC usecases_port.GetDashboardUseCase,
	propertiesUC usecases_port.ManagePropertiesUseCase,
	listLeadsUC usecases_port.ListLeadsUseCase,
	leadStatusUC usecases_port.UpdateLeadStatusUseCase,
	cookies CookieConfig,
) *AdminHandler {
	return &AdminHandler{
		loginUC:      loginUC,
		validateUC:   validateUC,
		dashboardUC:  dashboardUC,
		propertiesUC: propertiesUC,
		listLeadsUC:  listLeadsUC,
		leadStatusUC: leadStatusUC,
		cookies:      cookies,
	}
}

// LoginPage handles GET /admin/login. A signed-in admin goes straight to the dashboard.
func (h *AdminHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if claims, ok := resolveClaims(r, h.validateUC); ok && claims.IsAdmin() {
		http.Redirect(w, r, constants.AdminDashboardPath, http.StatusSeeOther)
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Sign in to continue"})
}

// Login handles POST /admin/login with a JSON or form body. Form posts are answered
// with redirects, JSON posts with a JSON body.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "AdminLogin"})
	form := isFormRequest(r)

	var req LoginRequest
	if form {
		if err := r.ParseForm(); err != nil {
			WriteJSONError(w, http.StatusBadRequest, "Invalid form body")
			return
		}
		req.Email = r.PostFormValue("email")
		req.Password = r.PostFormValue("password")
	} else if err := decodeJSON(w, r, &req); err != nil {
		logger.Warn("Failed to decode login request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		WriteJSONError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	token, err := h.loginUC.Execute(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrUserNotFound) {
			if form {
				http.Redirect(w, r, constants.AdminLoginPath+"?error=invalid", http.StatusSeeOther)
				return
			}
			WriteJSONError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		logger.Error("Login use case failed with an unexpected error", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     constants.AdminSessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookies.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	if form {
		http.Redirect(w, r, constants.AdminDashboardPath, http.StatusSeeOther)
		return
	}
	RespondWithJSON(w, http.StatusOK, LoginResponse{Token: token, Redirect: constants.AdminDashboardPath})
}

// Logout handles POST /admin/logout
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     constants.AdminSessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, constants.AdminLoginPath, http.StatusSeeOther)
}

// Dashboard handles GET /admin/dashboard
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	claims, _ := contextkeys.ClaimsFromContext(r.Context())
	handlerLogger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler": "Dashboard",
		"user_id": claims.UserID.String(),
	})

	stats, err := h.dashboardUC.Execute(r.Context())
	if err != nil {
		handlerLogger.Error("Dashboard use case failed", err, nil)
		WriteJSONError(w, http.StatusServiceUnavailable, constants.MsgPersistenceFailure)
		return
	}

	RespondWithJSON(w, http.StatusOK, DashboardResponse{
		TotalProperties:     stats.TotalProperties,
		AvailableProperties: stats.AvailableProperties,
		TotalLeads:          stats.TotalLeads,
		NewLeads:            stats.NewLeads,
		LeadsLast30Days:     stats.LeadsLast30Days,
		AverageBudget:       stats.AverageBudget,
		RecentLeads:         toLeadResponses(stats.RecentLeads),
	})
}

// ListProperties handles GET /admin/properties?q=
func (h *AdminHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.propertiesUC.List(r.Context(), domain.AdminPropertyQuery{
		Search: parseString(r.URL.Query(), "q"),
	})
	if err != nil {
		h.writePropertyError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toPropertyResponses(properties))
}

// GetProperty handles GET /admin/properties/{id}
func (h *AdminHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	property, err := h.propertiesUC.Get(r.Context(), id)
	if err != nil {
		h.writePropertyError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toPropertyResponse(*property))
}

// CreateProperty handles POST /admin/properties
func (h *AdminHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var draft domain.PropertyDraft
	if err := decodeJSON(w, r, &draft); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	property, err := h.propertiesUC.Create(r.Context(), draft)
	if err != nil {
		h.writePropertyError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, toPropertyResponse(*property))
}

// UpdateProperty handles PUT /admin/properties/{id}
func (h *AdminHandler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var draft domain.PropertyDraft
	if err := decodeJSON(w, r, &draft); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	property, err := h.propertiesUC.Update(r.Context(), id, draft)
	if err != nil {
		h.writePropertyError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toPropertyResponse(*property))
}

// DeleteProperty handles DELETE /admin/properties/{id}
func (h *AdminHandler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := h.propertiesUC.Delete(r.Context(), id); err != nil {
		h.writePropertyError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListLeads handles GET /admin/leads?q=&status=
func (h *AdminHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	leadQuery := domain.LeadQuery{Search: parseString(query, "q")}

	if statusStr := parseString(query, "status"); statusStr != "" && statusStr != "all" {
		status, err := domain.ParseLeadStatus(statusStr)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, "Unknown lead status")
			return
		}
		leadQuery.Status = &status
	}

	leads, err := h.listLeadsUC.Execute(r.Context(), leadQuery)
	if err != nil {
		contextkeys.LoggerFromContext(r.Context()).Error("List leads use case failed", err, port.Fields{"handler": "ListLeads"})
		WriteJSONError(w, http.StatusServiceUnavailable, constants.MsgPersistenceFailure)
		return
	}
	RespondWithJSON(w, http.StatusOK, toLeadResponses(leads))
}

// UpdateLeadStatus handles PATCH /admin/leads/{id}/status
func (h *AdminHandler) UpdateLeadStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req UpdateLeadStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.leadStatusUC.Execute(r.Context(), id, req.Status)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, domain.ErrInvalidStatus):
		WriteJSONError(w, http.StatusBadRequest, "Unknown lead status")
	case errors.Is(err, domain.ErrLeadNotFound):
		WriteJSONError(w, http.StatusNotFound, "Lead not found")
	default:
		contextkeys.LoggerFromContext(r.Context()).Error("Update lead status failed", err, port.Fields{"handler": "UpdateLeadStatus"})
		WriteJSONError(w, http.StatusServiceUnavailable, constants.MsgPersistenceFailure)
	}
}

func (h *AdminHandler) writePropertyError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		WriteValidationError(w, validationErr.Fields)
	case errors.Is(err, domain.ErrPropertyNotFound):
		WriteJSONError(w, http.StatusNotFound, "Property not found")
	case errors.Is(err, domain.ErrSlugConflict), errors.Is(err, domain.ErrSlugExhausted):
		WriteJSONError(w, http.StatusConflict, constants.MsgSlugConflict)
	default:
		contextkeys.LoggerFromContext(r.Context()).Error("Property operation failed", err, port.Fields{"path": r.URL.Path})
		WriteJSONError(w, http.StatusInternalServerError, constants.MsgUnknownFailure)
	}
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}
