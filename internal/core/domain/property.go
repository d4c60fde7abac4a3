package domain

import (
	"time"

	"github.com/google/uuid"
)

type PropertyType string

const (
	PropertyTypeApartment  PropertyType = "apartment"
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypeVilla      PropertyType = "villa"
	PropertyTypeCondo      PropertyType = "condo"
	PropertyTypeLand       PropertyType = "land"
	PropertyTypeCommercial PropertyType = "commercial"
)

// ParsePropertyType returns false for anything outside the known catalog types.
func ParsePropertyType(s string) (PropertyType, bool) {
	switch t := PropertyType(s); t {
	case PropertyTypeApartment, PropertyTypeHouse, PropertyTypeVilla,
		PropertyTypeCondo, PropertyTypeLand, PropertyTypeCommercial:
		return t, true
	}
	return "", false
}

type PropertyStatus string

const (
	PropertyStatusAvailable PropertyStatus = "available"
	PropertyStatusSold      PropertyStatus = "sold"
	PropertyStatusRented    PropertyStatus = "rented"
)

type PropertyTag string

const (
	PropertyTagNew      PropertyTag = "New"
	PropertyTagFeatured PropertyTag = "Featured"
	PropertyTagReady    PropertyTag = "Ready"
)

// Property is one catalog listing.
type Property struct {
	ID           uuid.UUID
	Slug         string
	Title        string
	PropertyType PropertyType
	Tag          PropertyTag // empty when untagged
	Status       PropertyStatus
	Location     string
	City         string
	Price        int64
	AreaSqft     float64
	Bedrooms     int
	Bathrooms    int
	Images       []string // first one is the primary image
	Amenities    []string
	Description  string
	CreatedAt    time.Time
}

// PrimaryImage returns the first image or an empty string.
func (p Property) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// PropertyDraft holds the admin-editable fields of a property.
type PropertyDraft struct {
	Title        string   `json:"title" validate:"min=5,max=200"`
	PropertyType string   `json:"property_type" validate:"required,oneof=apartment house villa condo land commercial"`
	Tag          string   `json:"tag" validate:"omitempty,oneof=New Featured Ready"`
	Status       string   `json:"status" validate:"required,oneof=available sold rented"`
	Location     string   `json:"location" validate:"min=2"`
	City         string   `json:"city" validate:"min=2"`
	Price        int64    `json:"price" validate:"gte=1"`
	AreaSqft     float64  `json:"area_sqft" validate:"gte=1"`
	Bedrooms     int      `json:"bedrooms" validate:"gte=0"`
	Bathrooms    int      `json:"bathrooms" validate:"gte=0"`
	Images       []string `json:"images" validate:"min=1,dive,url"`
	Amenities    []string `json:"amenities" validate:"dive,required"`
	Description  string   `json:"description" validate:"min=10"`
}

// ApplyTo copies the draft onto p. Slug, ID and CreatedAt are left untouched.
func (d PropertyDraft) ApplyTo(p *Property) {
	p.Title = d.Title
	p.PropertyType = PropertyType(d.PropertyType)
	p.Tag = PropertyTag(d.Tag)
	p.Status = PropertyStatus(d.Status)
	p.Location = d.Location
	p.City = d.City
	p.Price = d.Price
	p.AreaSqft = d.AreaSqft
	p.Bedrooms = d.Bedrooms
	p.Bathrooms = d.Bathrooms
	p.Images = append([]string(nil), d.Images...)
	p.Amenities = append([]string(nil), d.Amenities...)
	p.Description = d.Description
}

// AdminPropertyQuery drives the admin listing, which spans every status.
type AdminPropertyQuery struct {
	Search string // substring of title, location or city
}
