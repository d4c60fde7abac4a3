package rest

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/keertiraj-bot/realstate/internal/constants"
	"github.com/keertiraj-bot/realstate/internal/contextkeys"
	"github.com/keertiraj-bot/realstate/internal/core/domain"
	"github.com/keertiraj-bot/realstate/internal/core/port"
	"github.com/keertiraj-bot/realstate/internal/core/port/usecases_port"

	"github.com/google/uuid"
)

type CookieConfig struct {
	Secure     bool
	SessionTTL time.Duration
	MarkerTTL  time.Duration
}

type EnquiryHandler struct {
	submitEnquiryUC usecases_port.SubmitEnquiryUseCase
	submitContactUC usecases_port.SubmitContactUseCase
	markers         port.SubmissionMarkerPort
	cookies         CookieConfig
}

func NewEnquiryHandler(
	submitEnquiryUC usecases_port.SubmitEnquiryUseCase,
	submitContactUC usecases_port.SubmitContactUseCase,
	markers port.SubmissionMarkerPort,
	cookies CookieConfig,
) *EnquiryHandler {
	return &EnquiryHandler{
		submitEnquiryUC: submitEnquiryUC,
		submitContactUC: submitContactUC,
		markers:         markers,
		cookies:         cookies,
	}
}

// lastSubmittedAt decodes the marker cookie. Missing, tampered and expired markers
// all read as "no previous submission".
func (h *EnquiryHandler) lastSubmittedAt(r *http.Request, logger port.LoggerPort) *time.Time {
	c, err := r.Cookie(constants.EnquiryMarkerCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	at, err := h.markers.SubmittedAt(r.Context(), c.Value)
	if err != nil {
		logger.Debug("Ignoring unreadable submission marker", port.Fields{"error": err.Error()})
		return nil
	}
	return &at
}

func (h *EnquiryHandler) setMarker(w http.ResponseWriter, r *http.Request, submittedAt time.Time, logger port.LoggerPort) {
	marker, err := h.markers.Issue(r.Context(), submittedAt, h.cookies.MarkerTTL)
	if err != nil {
		logger.Error("Failed to issue submission marker", err, nil)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     constants.EnquiryMarkerCookie,
		Value:    marker,
		Path:     "/",
		MaxAge:   int(h.cookies.MarkerTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SubmitEnquiry handles POST /api/v1/enquiries
func (h *EnquiryHandler) SubmitEnquiry(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SubmitEnquiry"})

	var req EnquiryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		logger.Warn("Failed to decode enquiry request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	input := domain.LeadInput{
		Name:          req.Name,
		Phone:         req.Phone,
		City:          req.City,
		Budget:        req.Budget,
		Message:       req.Message,
		PropertySlug:  req.PropertySlug,
		PropertyTitle: req.PropertyTitle,
	}
	if idStr := strings.TrimSpace(req.PropertyID); idStr != "" {
		id, err := uuid.Parse(idStr)
		if err != nil {
			WriteValidationError(w, map[string]string{"property_id": "Invalid property reference"})
			return
		}
		input.PropertyID = &id
	}

	result, err := h.submitEnquiryUC.Execute(r.Context(), domain.EnquiryCommand{
		Input:           input,
		LastSubmittedAt: h.lastSubmittedAt(r, logger),
	})
	if err != nil {
		writeSubmissionError(w, logger, err)
		return
	}

	h.respondSubmitted(w, r, result, logger)
}

// SubmitContact handles POST /api/v1/contact
func (h *EnquiryHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SubmitContact"})

	var req ContactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		logger.Warn("Failed to decode contact request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.submitContactUC.Execute(r.Context(), domain.ContactCommand{
		Input: domain.ContactInput{
			Name:    req.Name,
			Phone:   req.Phone,
			Email:   req.Email,
			Subject: req.Subject,
			Message: req.Message,
		},
		LastSubmittedAt: h.lastSubmittedAt(r, logger),
	})
	if err != nil {
		writeSubmissionError(w, logger, err)
		return
	}

	h.respondSubmitted(w, r, result, logger)
}

func (h *EnquiryHandler) respondSubmitted(w http.ResponseWriter, r *http.Request, result *domain.SubmissionResult, logger port.LoggerPort) {
	h.setMarker(w, r, result.SubmittedAt, logger)

	resp := SubmissionResponse{
		Success: true,
		Message: result.Message,
		Demo:    result.Demo,
	}
	if !result.Demo {
		resp.LeadID = result.Lead.ID.String()
	}
	RespondWithJSON(w, http.StatusOK, resp)
}

// writeSubmissionError maps the lead submission error taxonomy onto HTTP statuses.
func writeSubmissionError(w http.ResponseWriter, logger port.LoggerPort, err error) {
	var validationErr *domain.ValidationError
	var duplicateErr *domain.DuplicateError

	switch {
	case errors.As(err, &validationErr):
		WriteValidationError(w, validationErr.Fields)
	case errors.As(err, &duplicateErr):
		WriteJSONError(w, http.StatusConflict, duplicateErr.Reason)
	case errors.Is(err, domain.ErrDuplicateRecent):
		WriteJSONError(w, http.StatusConflict, constants.MsgStoreDuplicate)
	case errors.Is(err, domain.ErrPersistenceUnavailable):
		logger.Error("Lead store unavailable", err, nil)
		WriteJSONError(w, http.StatusServiceUnavailable, constants.MsgPersistenceFailure)
	default:
		logger.Error("Lead submission failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, constants.MsgUnknownFailure)
	}
}
