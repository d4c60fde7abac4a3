package rest

import (
	"errors"
	"net/http"

	"github.com/keertiraj-bot/realstate/internal/contextkeys"
	"github.com/keertiraj-bot/realstate/internal/core/domain"
	"github.com/keertiraj-bot/realstate/internal/core/port"
	"github.com/keertiraj-bot/realstate/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

type PropertyHandler struct {
	findPropertiesUC usecases_port.FindPropertiesUseCase
	featuredUC       usecases_port.GetFeaturedPropertiesUseCase
	detailsUC        usecases_port.GetPropertyDetailsUseCase
}

func NewPropertyHandler(
	findPropertiesUC usecases_port.FindPropertiesUseCase,
	featuredUC usecases_port.GetFeaturedPropertiesUseCase,
	detailsUC usecases_port.GetPropertyDetailsUseCase,
) *PropertyHandler {
	return &PropertyHandler{
		findPropertiesUC: findPropertiesUC,
		featuredUC:       featuredUC,
		detailsUC:        detailsUC,
	}
}

// parsePropertyFilters reads the catalog query. Unparsable numbers leave the filter
// unset. The type is matched verbatim, so an unknown type matches nothing.
func parsePropertyFilters(r *http.Request) domain.PropertyFilters {
	query := r.URL.Query()

	return domain.PropertyFilters{
		Location:    parseString(query, "location"),
		Type:        domain.PropertyType(parseString(query, "type")),
		MinPrice:    parseInt64(query, "minPrice"),
		MaxPrice:    parseInt64(query, "maxPrice"),
		MinBedrooms: parseInt(query, "bedrooms"),
		SortBy:      domain.ParseSortOrder(parseString(query, "sortBy")),
	}
}

// FindProperties handles GET /api/v1/properties
func (h *PropertyHandler) FindProperties(w http.ResponseWriter, r *http.Request) {
	filters := parsePropertyFilters(r)

	handlerLogger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler": "FindProperties",
		"filters": filters,
	})

	if filters.Type != "" {
		if _, ok := domain.ParsePropertyType(string(filters.Type)); !ok {
			handlerLogger.Debug("Unknown property type requested", nil)
		}
	}

	result, err := h.findPropertiesUC.Execute(r.Context(), filters)
	if err != nil {
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve properties")
		return
	}

	handlerLogger.Debug("Properties found", port.Fields{"total": result.Total, "source": result.Source})

	RespondWithJSON(w, http.StatusOK, PropertyListResponse{
		Data:       toPropertyResponses(result.Properties),
		Total:      result.Total,
		HasFilters: result.HasFilters,
		Source:     string(result.Source),
	})
}

// GetFeatured handles GET /api/v1/properties/featured
func (h *PropertyHandler) GetFeatured(w http.ResponseWriter, r *http.Request) {
	properties, err := h.featuredUC.Execute(r.Context())
	if err != nil {
		contextkeys.LoggerFromContext(r.Context()).Error("Featured properties use case failed", err, port.Fields{"handler": "GetFeatured"})
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve properties")
		return
	}
	RespondWithJSON(w, http.StatusOK, toPropertyResponses(properties))
}

// GetPropertyDetails handles GET /api/v1/properties/{slug}
func (h *PropertyHandler) GetPropertyDetails(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "slug")
	handlerLogger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler": "GetPropertyDetails",
		"ref":     ref,
	})

	property, err := h.detailsUC.Execute(r.Context(), ref)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPropertyNotFound):
			WriteJSONError(w, http.StatusNotFound, "Property not found")
		case errors.Is(err, domain.ErrPersistenceUnavailable):
			handlerLogger.Error("Property lookup failed", err, nil)
			WriteJSONError(w, http.StatusServiceUnavailable, "Property is temporarily unavailable")
		default:
			handlerLogger.Error("Property lookup failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve property")
		}
		return
	}

	RespondWithJSON(w, http.StatusOK, toPropertyResponse(*property))
}
