package domain

import (
	"time"

	"github.com/google/uuid"
)

var sampleEpoch = time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)

// SampleCatalog returns the built-in listings served before real data exists.
// Each call returns a fresh copy.
func SampleCatalog() []Property {
	return []Property{
		{
			ID:           uuid.MustParse("6f1c0a52-2b7e-4d0e-9d0a-3c1f5e8a1001"),
			Slug:         "modern-3bhk-apartment",
			Title:        "Modern 3BHK Apartment",
			PropertyType: PropertyTypeApartment,
			Tag:          PropertyTagFeatured,
			Status:       PropertyStatusAvailable,
			Location:     "Sector 62, Noida",
			City:         "Noida",
			Price:        8500000,
			AreaSqft:     1800,
			Bedrooms:     3,
			Bathrooms:    2,
			Images:       []string{"https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=800"},
			Amenities:    []string{"Gym", "Swimming Pool", "Parking", "Security"},
			Description:  "Beautiful modern apartment with all amenities",
			CreatedAt:    sampleEpoch.Add(2 * time.Hour),
		},
		{
			ID:           uuid.MustParse("6f1c0a52-2b7e-4d0e-9d0a-3c1f5e8a1002"),
			Slug:         "luxury-villa-garden",
			Title:        "Luxury Villa with Garden",
			PropertyType: PropertyTypeVilla,
			Tag:          PropertyTagNew,
			Status:       PropertyStatusAvailable,
			Location:     "DLF Phase 4, Gurgaon",
			City:         "Gurgaon",
			Price:        25000000,
			AreaSqft:     4500,
			Bedrooms:     5,
			Bathrooms:    4,
			Images:       []string{"https://images.unsplash.com/photo-1613490493576-7fde63acd811?w=800"},
			Amenities:    []string{"Garden", "Swimming Pool", "Home Theater", "Smart Home"},
			Description:  "Stunning luxury villa with premium finishes",
			CreatedAt:    sampleEpoch.Add(1 * time.Hour),
		},
		{
			ID:           uuid.MustParse("6f1c0a52-2b7e-4d0e-9d0a-3c1f5e8a1003"),
			Slug:         "commercial-office-space",
			Title:        "Commercial Office Space",
			PropertyType: PropertyTypeCommercial,
			Status:       PropertyStatusAvailable,
			Location:     "Cyber City, Gurgaon",
			City:         "Gurgaon",
			Price:        15000000,
			AreaSqft:     2500,
			Bedrooms:     0,
			Bathrooms:    2,
			Images:       []string{"https://images.unsplash.com/photo-1497366216548-37526070297c?w=800"},
			Amenities:    []string{"Conference Room", "Cafeteria", "Parking", "24/7 Power Backup"},
			Description:  "Premium commercial space in prime location",
			CreatedAt:    sampleEpoch,
		},
	}
}
