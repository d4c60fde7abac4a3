package rest

import (
	"time"

	"github.com/keertiraj-bot/realstate/internal/core/domain"
)

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type PropertyResponse struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	PropertyType string    `json:"property_type"`
	Tag          string    `json:"tag,omitempty"`
	Status       string    `json:"status"`
	Location     string    `json:"location"`
	City         string    `json:"city"`
	Price        int64     `json:"price"`
	AreaSqft     float64   `json:"area_sqft"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    int       `json:"bathrooms"`
	PrimaryImage string    `json:"primary_image"`
	Images       []string  `json:"images"`
	Amenities    []string  `json:"amenities"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

type PropertyListResponse struct {
	Data       []PropertyResponse `json:"data"`
	Total      int                `json:"total"`
	HasFilters bool               `json:"has_filters"`
	Source     string             `json:"source"`
}

// EnquiryRequest is the body of POST /api/v1/enquiries. PropertyID stays a string so
// a malformed id can be reported as a field error.
type EnquiryRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	City          string `json:"city"`
	Budget        int64  `json:"budget"`
	Message       string `json:"message"`
	PropertyID    string `json:"property_id"`
	PropertySlug  string `json:"property_slug"`
	PropertyTitle string `json:"property_title"`
}

type ContactRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type SubmissionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	LeadID  string `json:"lead_id,omitempty"`
	Demo    bool   `json:"demo,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Redirect string `json:"redirect"`
}

type LeadResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	City          string    `json:"city"`
	Budget        int64     `json:"budget"`
	Message       string    `json:"message"`
	PropertyID    *string   `json:"property_id"`
	PropertySlug  string    `json:"property_slug,omitempty"`
	PropertyTitle string    `json:"property_title,omitempty"`
	Source        string    `json:"source"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type DashboardResponse struct {
	TotalProperties     int            `json:"total_properties"`
	AvailableProperties int            `json:"available_properties"`
	TotalLeads          int            `json:"total_leads"`
	NewLeads            int            `json:"new_leads"`
	LeadsLast30Days     int            `json:"leads_last_30_days"`
	AverageBudget       int64          `json:"average_budget"`
	RecentLeads         []LeadResponse `json:"recent_leads"`
}

type UpdateLeadStatusRequest struct {
	Status string `json:"status"`
}

func toPropertyResponse(p domain.Property) PropertyResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	amenities := p.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return PropertyResponse{
		ID:           p.ID.String(),
		Slug:         p.Slug,
		Title:        p.Title,
		PropertyType: string(p.PropertyType),
		Tag:          string(p.Tag),
		Status:       string(p.Status),
		Location:     p.Location,
		City:         p.City,
		Price:        p.Price,
		AreaSqft:     p.AreaSqft,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		PrimaryImage: p.PrimaryImage(),
		Images:       images,
		Amenities:    amenities,
		Description:  p.Description,
		CreatedAt:    p.CreatedAt,
	}
}

func toPropertyResponses(ps []domain.Property) []PropertyResponse {
	out := make([]PropertyResponse, len(ps))
	for i, p := range ps {
		out[i] = toPropertyResponse(p)
	}
	return out
}

func toLeadResponse(l domain.Lead) LeadResponse {
	resp := LeadResponse{
		ID:            l.ID.String(),
		Name:          l.Name,
		Phone:         l.Phone,
		City:          l.City,
		Budget:        l.Budget,
		Message:       l.Message,
		PropertySlug:  l.PropertySlug,
		PropertyTitle: l.PropertyTitle,
		Source:        string(l.Source),
		Status:        string(l.Status),
		CreatedAt:     l.CreatedAt,
	}
	if l.PropertyID != nil {
		id := l.PropertyID.String()
		resp.PropertyID = &id
	}
	return resp
}

func toLeadResponses(ls []domain.Lead) []LeadResponse {
	out := make([]LeadResponse, len(ls))
	for i, l := range ls {
		out[i] = toLeadResponse(l)
	}
	return out
}
