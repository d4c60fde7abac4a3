package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	token_adapter "github.com/keertiraj-bot/realstate/internal/adapters/jwt"
	logger_adapter "github.com/keertiraj-bot/realstate/internal/adapters/logger"
	"github.com/keertiraj-bot/realstate/internal/adapters/memory"
	"github.com/keertiraj-bot/realstate/internal/constants"
	"github.com/keertiraj-bot/realstate/internal/core/domain"
	"github.com/keertiraj-bot/realstate/internal/core/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "correct-horse"
)

type testEnv struct {
	router http.Handler
	users  *memory.UserRepository
	tokens *token_adapter.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	properties := memory.NewPropertyStorage(domain.SampleCatalog())
	leads := memory.NewLeadRepository()
	users := memory.NewUserRepository()

	tokens, err := token_adapter.NewTokenService("session-secret")
	require.NoError(t, err)
	markers, err := token_adapter.NewMarkerService("marker-secret")
	require.NoError(t, err)

	require.NoError(t, usecase.NewEnsureAdminUseCase(users).Execute(ctx, testAdminEmail, testAdminPassword))

	leadCfg := usecase.LeadSubmissionConfig{
		StrictPhone:     true,
		MarkerWindow:    7 * 24 * time.Hour,
		DuplicateWindow: 24 * time.Hour,
	}
	cookies := CookieConfig{SessionTTL: time.Hour, MarkerTTL: 7 * 24 * time.Hour}
	validateUC := usecase.NewValidateTokenUseCase(tokens)

	propertyHandler := NewPropertyHandler(
		usecase.NewFindPropertiesUseCase(properties, nil, true),
		usecase.NewGetFeaturedPropertiesUseCase(properties, true),
		usecase.NewGetPropertyDetailsUseCase(properties, true),
	)
	enquiryHandler := NewEnquiryHandler(
		usecase.NewSubmitEnquiryUseCase(leads, properties, nil, leadCfg),
		usecase.NewSubmitContactUseCase(leads, nil, leadCfg),
		markers,
		cookies,
	)
	adminHandler := NewAdminHandler(
		usecase.NewLoginUserUseCase(users, tokens, time.Hour),
		validateUC,
		usecase.NewGetDashboardUseCase(properties, leads),
		usecase.NewManagePropertiesUseCase(properties, nil, usecase.DefaultSlugAttempts),
		usecase.NewListLeadsUseCase(leads),
		usecase.NewUpdateLeadStatusUseCase(leads),
		cookies,
	)

	logger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{Writer: io.Discard})
	router := NewRouter(
		ServerConfig{CORSAllowedOrigins: []string{"*"}, Mode: "test"},
		propertyHandler, enquiryHandler, adminHandler, validateUC, nil, logger,
	)

	return &testEnv{router: router, users: users, tokens: tokens}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (e *testEnv) adminSession(t *testing.T) *http.Cookie {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/admin/login", LoginRequest{Email: testAdminEmail, Password: testAdminPassword})
	require.Equal(t, http.StatusOK, rec.Code)
	session := findCookie(rec, constants.AdminSessionCookie)
	require.NotNil(t, session)
	return session
}

func validEnquiry() EnquiryRequest {
	return EnquiryRequest{
		Name:         "Asha Verma",
		Phone:        "9876543210",
		City:         "Gurgaon",
		Budget:       20000000,
		PropertySlug: "luxury-villa-garden",
	}
}

func TestFindProperties_Filters(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/properties?location=gurgaon&type=villa&minPrice=20000000", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PropertyListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "luxury-villa-garden", resp.Data[0].Slug)
	assert.True(t, resp.HasFilters)
	assert.NotEmpty(t, rec.Header().Get(constants.TraceIDHeader))
}

func TestFindProperties_UnparsableNumbersIgnored(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/properties?minPrice=abc&bedrooms=two&sortBy=price_low", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PropertyListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 3)
	assert.False(t, resp.HasFilters)
	assert.LessOrEqual(t, resp.Data[0].Price, resp.Data[1].Price)
	assert.LessOrEqual(t, resp.Data[1].Price, resp.Data[2].Price)
}

func TestFindProperties_UnknownTypeMatchesNothing(t *testing.T) {
	env := newTestEnv(t)

	for _, propertyType := range []string{"bungalow", "Villa"} {
		rec := env.do(t, http.MethodGet, "/api/v1/properties?type="+propertyType, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp PropertyListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Empty(t, resp.Data, propertyType)
		assert.Zero(t, resp.Total, propertyType)
		assert.True(t, resp.HasFilters, propertyType)
	}
}

func TestPropertyDetailsAndFeatured(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/properties/featured", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var featured []PropertyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &featured))
	assert.Len(t, featured, 3)

	rec = env.do(t, http.MethodGet, "/api/v1/properties/modern-3bhk-apartment", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail PropertyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, "Modern 3BHK Apartment", detail.Title)
	assert.Equal(t, detail.Images[0], detail.PrimaryImage)

	rec = env.do(t, http.MethodGet, "/api/v1/properties/"+detail.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/properties/no-such-property", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitEnquiry_SuccessThenDuplicates(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/enquiries", validEnquiry())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp SubmissionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, constants.MsgEnquirySubmitted, resp.Message)
	assert.NotEmpty(t, resp.LeadID)

	marker := findCookie(rec, constants.EnquiryMarkerCookie)
	require.NotNil(t, marker)
	assert.True(t, marker.HttpOnly)

	rec = env.do(t, http.MethodPost, "/api/v1/enquiries", validEnquiry(), marker)
	require.Equal(t, http.StatusConflict, rec.Code)
	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, constants.MsgMarkerDuplicate, errResp.Error)

	rec = env.do(t, http.MethodPost, "/api/v1/enquiries", validEnquiry())
	require.Equal(t, http.StatusConflict, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, constants.MsgPropertyDuplicate, errResp.Error)
}

func TestSubmitEnquiry_TamperedMarkerIgnored(t *testing.T) {
	env := newTestEnv(t)

	tampered := &http.Cookie{Name: constants.EnquiryMarkerCookie, Value: "not-a-marker"}
	rec := env.do(t, http.MethodPost, "/api/v1/enquiries", validEnquiry(), tampered)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSubmitEnquiry_ValidationReportsAllFields(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/enquiries", EnquiryRequest{Name: "A", Phone: "12345", City: "X", Budget: 50000})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	for _, field := range []string{"name", "phone", "city", "budget"} {
		assert.Contains(t, resp.Fields, field)
	}
	assert.Nil(t, findCookie(rec, constants.EnquiryMarkerCookie))
}

func TestSubmitEnquiry_MalformedPropertyID(t *testing.T) {
	env := newTestEnv(t)

	req := validEnquiry()
	req.PropertyID = "not-a-uuid"
	rec := env.do(t, http.MethodPost, "/api/v1/enquiries", req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "property_id")
}

func TestSubmitEnquiry_BadBody(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/enquiries", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitContact(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/contact", ContactRequest{
		Name:    "Ravi Kumar",
		Phone:   "9123456780",
		Email:   "ravi@example.com",
		Subject: "Site visit",
		Message: "I would like to visit the villa this weekend.",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), constants.MsgContactSubmitted)
}

func TestWriteSubmissionError_Taxonomy(t *testing.T) {
	logger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{Writer: io.Discard})
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{&domain.ValidationError{Fields: map[string]string{"name": "too short"}}, http.StatusBadRequest, ""},
		{&domain.DuplicateError{Reason: "recently"}, http.StatusConflict, "recently"},
		{domain.ErrDuplicateRecent, http.StatusConflict, constants.MsgStoreDuplicate},
		{errors.Join(domain.ErrPersistenceUnavailable, errors.New("conn refused")), http.StatusServiceUnavailable, constants.MsgPersistenceFailure},
		{errors.New("surprise"), http.StatusInternalServerError, constants.MsgUnknownFailure},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeSubmissionError(rec, logger, tc.err)
		assert.Equal(t, tc.status, rec.Code, tc.err.Error())
		if tc.msg != "" {
			assert.Contains(t, rec.Body.String(), tc.msg)
		}
	}
}

func TestAdmin_RedirectsWithoutSession(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/admin/dashboard", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, constants.AdminLoginPath, rec.Header().Get("Location"))
}

func TestAdmin_NonAdminRedirectedHome(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := domain.NewUser("agent@example.com", "password1", domain.RoleUser)
	require.NoError(t, err)
	require.NoError(t, env.users.Create(ctx, user))
	token, err := env.tokens.GenerateToken(ctx, user, time.Hour)
	require.NoError(t, err)

	rec := env.do(t, http.MethodGet, "/admin/dashboard", nil, &http.Cookie{Name: constants.AdminSessionCookie, Value: token})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, constants.HomePath, rec.Header().Get("Location"))
}

func TestAdmin_LoginFlow(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/admin/login", LoginRequest{Email: testAdminEmail, Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/admin/login", LoginRequest{Email: testAdminEmail})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	session := env.adminSession(t)
	assert.True(t, session.HttpOnly)

	rec = env.do(t, http.MethodGet, "/admin/login", nil, session)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, constants.AdminDashboardPath, rec.Header().Get("Location"))

	rec = env.do(t, http.MethodGet, "/admin/dashboard", nil, session)
	require.Equal(t, http.StatusOK, rec.Code)
	var dash DashboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dash))
	assert.Equal(t, 3, dash.TotalProperties)
	assert.Equal(t, 0, dash.TotalLeads)

	rec = env.do(t, http.MethodPost, "/admin/logout", nil, session)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	cleared := findCookie(rec, constants.AdminSessionCookie)
	require.NotNil(t, cleared)
	assert.Equal(t, "", cleared.Value)
}

func TestAdmin_FormLoginRedirects(t *testing.T) {
	env := newTestEnv(t)

	form := "email=" + testAdminEmail + "&password=" + testAdminPassword
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, constants.AdminDashboardPath, rec.Header().Get("Location"))
	assert.NotNil(t, findCookie(rec, constants.AdminSessionCookie))
}

func villaDraft(title string) domain.PropertyDraft {
	return domain.PropertyDraft{
		Title:        title,
		PropertyType: "villa",
		Status:       "available",
		Location:     "Baner, Pune",
		City:         "Pune",
		Price:        32000000,
		AreaSqft:     3800,
		Bedrooms:     4,
		Bathrooms:    4,
		Images:       []string{"https://example.com/villa.jpg"},
		Amenities:    []string{"Garden"},
		Description:  "Corner villa with a private garden.",
	}
}

func TestAdmin_PropertyCRUD(t *testing.T) {
	env := newTestEnv(t)
	session := env.adminSession(t)

	rec := env.do(t, http.MethodPost, "/admin/properties", villaDraft("Garden Villa Baner"), session)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var first PropertyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
	assert.Equal(t, "garden-villa-baner", first.Slug)

	rec = env.do(t, http.MethodPost, "/admin/properties", villaDraft("Garden Villa, Baner"), session)
	require.Equal(t, http.StatusCreated, rec.Code)
	var second PropertyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.True(t, strings.HasPrefix(second.Slug, "garden-villa-baner-"))

	rec = env.do(t, http.MethodPost, "/admin/properties", villaDraft("Tiny"), session)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "title")

	rec = env.do(t, http.MethodGet, "/admin/properties?q=baner", nil, session)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []PropertyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed, 2)

	updated := villaDraft("Garden Villa Baner")
	updated.Status = "sold"
	rec = env.do(t, http.MethodPut, "/admin/properties/"+first.ID, updated, session)
	require.Equal(t, http.StatusOK, rec.Code)
	var afterUpdate PropertyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &afterUpdate))
	assert.Equal(t, first.Slug, afterUpdate.Slug)
	assert.Equal(t, "sold", afterUpdate.Status)

	rec = env.do(t, http.MethodDelete, "/admin/properties/"+second.ID, nil, session)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = env.do(t, http.MethodGet, "/admin/properties/"+second.ID, nil, session)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = env.do(t, http.MethodGet, "/admin/properties/not-a-uuid", nil, session)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdmin_LeadsListAndStatus(t *testing.T) {
	env := newTestEnv(t)
	session := env.adminSession(t)

	rec := env.do(t, http.MethodPost, "/api/v1/enquiries", validEnquiry())
	require.Equal(t, http.StatusOK, rec.Code)
	var submitted SubmissionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &submitted))

	rec = env.do(t, http.MethodGet, "/admin/leads?q=asha&status=new", nil, session)
	require.Equal(t, http.StatusOK, rec.Code)
	var leads []LeadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &leads))
	require.Len(t, leads, 1)
	assert.Equal(t, "luxury-villa-garden", leads[0].PropertySlug)
	require.NotNil(t, leads[0].PropertyID)

	rec = env.do(t, http.MethodPatch, "/admin/leads/"+submitted.LeadID+"/status", UpdateLeadStatusRequest{Status: "archived"}, session)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPatch, "/admin/leads/"+submitted.LeadID+"/status", UpdateLeadStatusRequest{Status: "closed"}, session)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/admin/leads?status=new", nil, session)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &leads))
	assert.Empty(t, leads)

	rec = env.do(t, http.MethodGet, "/admin/leads?status=bogus", nil, session)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
