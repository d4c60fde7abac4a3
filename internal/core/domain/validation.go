package domain

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	strictPhonePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	plainPhonePattern  = regexp.MustCompile(`^[0-9]{10}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("mobile_strict", func(fl validator.FieldLevel) bool {
		return strictPhonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return plainPhonePattern.MatchString(fl.Field().String())
	})
	return v
}

// ValidationOptions tunes rules that vary by deployment.
type ValidationOptions struct {
	// StrictPhone requires the first digit to be 6-9 on top of the 10 digit rule.
	StrictPhone bool
}

// LeadInput is an enquiry as submitted from the site.
type LeadInput struct {
	Name          string     `json:"name" validate:"min=2,max=100"`
	Phone         string     `json:"phone"`
	City          string     `json:"city" validate:"min=2,max=100"`
	Budget        int64      `json:"budget" validate:"min=100000,max=1000000000"`
	Message       string     `json:"message" validate:"max=1000"`
	PropertyID    *uuid.UUID `json:"property_id"`
	PropertySlug  string     `json:"property_slug" validate:"max=200"`
	PropertyTitle string     `json:"property_title" validate:"max=200"`
}

// Normalize trims free-text fields in place.
func (in *LeadInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.City = strings.TrimSpace(in.City)
	in.Message = strings.TrimSpace(in.Message)
	in.PropertySlug = strings.TrimSpace(in.PropertySlug)
	in.PropertyTitle = strings.TrimSpace(in.PropertyTitle)
}

// Validate returns a *ValidationError listing every rejected field, or nil.
func (in LeadInput) Validate(opts ValidationOptions) error {
	return collect(validate.Struct(in), phoneError(in.Phone, opts), leadMessages)
}

// Source derives the lead classification from the property linkage.
func (in LeadInput) Source() LeadSource {
	if in.PropertyID != nil || in.PropertySlug != "" {
		return LeadSourcePropertyEnquiry
	}
	return LeadSourceGeneral
}

// ToLead builds an unsaved lead with status new.
func (in LeadInput) ToLead() Lead {
	return Lead{
		Name:          in.Name,
		Phone:         in.Phone,
		City:          in.City,
		Budget:        in.Budget,
		Message:       in.Message,
		PropertyID:    in.PropertyID,
		PropertySlug:  in.PropertySlug,
		PropertyTitle: in.PropertyTitle,
		Source:        in.Source(),
		Status:        LeadStatusNew,
	}
}

// ContactInput is a message from the contact page.
type ContactInput struct {
	Name    string `json:"name" validate:"min=2,max=100"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"min=5,max=200"`
	Message string `json:"message" validate:"min=10,max=1000"`
}

func (in *ContactInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
}

func (in ContactInput) Validate(opts ValidationOptions) error {
	return collect(validate.Struct(in), phoneError(in.Phone, opts), contactMessages)
}

// ToLead stores a contact message as a lead with placeholder city and budget.
func (in ContactInput) ToLead() Lead {
	return Lead{
		Name:    in.Name,
		Phone:   in.Phone,
		City:    ContactPlaceholderCity,
		Budget:  0,
		Message: fmt.Sprintf("Subject: %s\n\n%s", in.Subject, in.Message),
		Source:  LeadSourceContactPage,
		Status:  LeadStatusNew,
	}
}

// Normalize trims the text fields of an admin property form.
func (d *PropertyDraft) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.Location = strings.TrimSpace(d.Location)
	d.City = strings.TrimSpace(d.City)
	d.Description = strings.TrimSpace(d.Description)
	for i := range d.Images {
		d.Images[i] = strings.TrimSpace(d.Images[i])
	}
	for i := range d.Amenities {
		d.Amenities[i] = strings.TrimSpace(d.Amenities[i])
	}
}

func (d PropertyDraft) Validate() error {
	return collect(validate.Struct(d), nil, propertyMessages)
}

var leadMessages = map[string]string{
	"name":           "Name must be at least 2 characters",
	"city":           "City must be at least 2 characters",
	"budget":         "Budget must be between 100000 and 1000000000",
	"message":        "Message must be at most 1000 characters",
	"property_slug":  "Property reference is too long",
	"property_title": "Property title is too long",
}

var contactMessages = map[string]string{
	"name":    "Name must be at least 2 characters",
	"email":   "Enter a valid email address",
	"subject": "Subject must be at least 5 characters",
	"message": "Message must be between 10 and 1000 characters",
}

var propertyMessages = map[string]string{
	"title":         "Title must be at least 5 characters",
	"property_type": "Select a valid property type",
	"tag":           "Tag must be New, Featured or Ready",
	"status":        "Select a valid status",
	"location":      "Location must be at least 2 characters",
	"city":          "City must be at least 2 characters",
	"price":         "Price must be a positive number",
	"area_sqft":     "Area must be at least 1 sqft",
	"bedrooms":      "Bedrooms cannot be negative",
	"bathrooms":     "Bathrooms cannot be negative",
	"images":        "Add at least one valid image URL",
	"amenities":     "Amenities cannot be blank",
	"description":   "Description must be at least 10 characters",
}

func phoneError(phone string, opts ValidationOptions) *string {
	tag := "mobile"
	msg := "Phone number must be exactly 10 digits"
	if opts.StrictPhone {
		tag = "mobile_strict"
		msg = "Enter a valid 10-digit mobile number"
	}
	if err := validate.Var(phone, "required,"+tag); err != nil {
		return &msg
	}
	return nil
}

func collect(structErr error, phoneMsg *string, messages map[string]string) error {
	fields := make(map[string]string)

	if structErr != nil {
		var verrs validator.ValidationErrors
		if !errors.As(structErr, &verrs) {
			return structErr
		}
		for _, fe := range verrs {
			name := topLevelField(fe.Namespace())
			if _, seen := fields[name]; seen {
				continue
			}
			msg, ok := messages[name]
			if !ok {
				msg = fmt.Sprintf("failed on %q", fe.Tag())
			}
			fields[name] = msg
		}
	}
	if phoneMsg != nil {
		fields["phone"] = *phoneMsg
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// topLevelField turns "LeadInput.images[2]" into "images".
func topLevelField(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		namespace = namespace[i+1:]
	}
	if i := strings.IndexAny(namespace, ".["); i >= 0 {
		namespace = namespace[:i]
	}
	return namespace
}
