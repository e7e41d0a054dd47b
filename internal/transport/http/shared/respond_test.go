package shared

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"storefront/internal/audit"
	"storefront/internal/session"
	"storefront/internal/upstream"
	dErrors "storefront/pkg/domain-errors"
	"storefront/pkg/platform/httputil"
)

type recordingClearer struct {
	reasons []string
}

func (c *recordingClearer) Clear(_ http.ResponseWriter, _ *http.Request, reason string) {
	c.reasons = append(c.reasons, reason)
}

type ResponderSuite struct {
	suite.Suite
	clearer *recordingClearer
	events  *audit.InMemoryStore
	resp    *Responder
}

func TestResponderSuite(t *testing.T) {
	suite.Run(t, new(ResponderSuite))
}

func (s *ResponderSuite) SetupTest() {
	s.clearer = &recordingClearer{}
	s.events = audit.NewInMemoryStore()
	s.resp = NewResponder(s.clearer, audit.NewPublisher(s.events), slog.New(slog.DiscardHandler))
}

func (s *ResponderSuite) TestPageAuthFailureClearsAndRedirects() {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)

	s.resp.Page(rr, req, &upstream.Error{Kind: upstream.AuthFailure, Status: 401})

	s.Equal(http.StatusSeeOther, rr.Code)
	s.Equal("/login", rr.Header().Get("Location"))
	s.Equal([]string{session.ReasonUnauthorized}, s.clearer.reasons)

	recent, err := s.events.ListRecent(context.Background(), 1)
	s.Require().NoError(err)
	s.Require().Len(recent, 1)
	s.Equal(audit.ActionSessionCleared, recent[0].Action)
}

func (s *ResponderSuite) TestActionAuthFailureReturns401WithRedirect() {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart/items", nil)

	s.resp.Action(rr, req, upstream.Translate(&upstream.Error{Kind: upstream.AuthFailure, Status: 401}, "add to cart"))

	s.Equal(http.StatusUnauthorized, rr.Code)
	var body httputil.ErrorResponse
	s.Require().NoError(json.NewDecoder(rr.Body).Decode(&body))
	s.Equal("/login", body.Redirect)
	s.Len(s.clearer.reasons, 1)
}

func (s *ResponderSuite) TestPageNotFound() {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/home/products/x", nil)

	s.resp.Page(rr, req, &upstream.Error{Kind: upstream.NotFound, Status: 404})

	s.Equal(http.StatusNotFound, rr.Code)
	s.JSONEq(`{"page":"not_found","back":"/home"}`, rr.Body.String())
	s.Empty(s.clearer.reasons)
}

func (s *ResponderSuite) TestPageTransientFailureRendersFallback() {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cart/checkout", nil)

	s.resp.Page(rr, req, &upstream.Error{Kind: upstream.NetworkFailure, Err: errors.New("dial tcp")})

	s.Equal(http.StatusServiceUnavailable, rr.Code)
	var page ErrorPage
	s.Require().NoError(json.NewDecoder(rr.Body).Decode(&page))
	s.Equal("error", page.Page)
	s.True(page.Retry)
}

func (s *ResponderSuite) TestCriticalRendersFallbackEvenForNotFound() {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cart/checkout", nil)

	s.resp.Critical(rr, req, &upstream.Error{Kind: upstream.NotFound, Status: 404})

	s.Equal(http.StatusBadGateway, rr.Code)
	var page ErrorPage
	s.Require().NoError(json.NewDecoder(rr.Body).Decode(&page))
	s.Equal("error", page.Page)
	s.Empty(s.clearer.reasons)

	rr = httptest.NewRecorder()
	s.resp.Critical(rr, req, &upstream.Error{Kind: upstream.AuthFailure, Status: 401})
	s.Equal(http.StatusSeeOther, rr.Code)
	s.Len(s.clearer.reasons, 1)
}

func (s *ResponderSuite) TestFallbackHidesInternalDetail() {
	rr := httptest.NewRecorder()
	s.resp.Fallback(rr, errors.New("boom"))

	s.Equal(http.StatusInternalServerError, rr.Code)
	var page ErrorPage
	s.Require().NoError(json.NewDecoder(rr.Body).Decode(&page))
	s.Empty(page.Description)

	rr = httptest.NewRecorder()
	s.resp.Fallback(rr, dErrors.New(dErrors.CodeConflict, "cart changed"))
	s.Equal(http.StatusBadGateway, rr.Code)
}

func (s *ResponderSuite) TestActionValidationSurfacesUpstreamMessage() {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/user/addresses", nil)

	s.resp.Action(rr, req, &upstream.Error{Kind: upstream.ValidationFailure, Status: 400, Message: "Invalid phone"})

	s.Equal(http.StatusBadRequest, rr.Code)
	var body httputil.ErrorResponse
	s.Require().NoError(json.NewDecoder(rr.Body).Decode(&body))
	s.Equal("Invalid phone", body.Description)
}

func TestFields(t *testing.T) {
	f := Fields{}
	f.Email("email", "not-an-email")
	f.Length("name", "a", "Name", 2, 50)
	f.Phone("phone", "0101234567")
	f.StrongPassword("password", "alllower1")
	f.Length("password", "x", "Password", 6, 0)

	err := f.Err()
	require.Error(t, err)
	de, ok := dErrors.As(err)
	require.True(t, ok)
	assert.Equal(t, dErrors.CodeValidation, de.Code)
	assert.Equal(t, "Name must be at least 2 characters", de.Fields["name"])
	assert.Contains(t, de.Fields["password"], "uppercase")
	assert.Len(t, de.Fields, 4)

	ok2 := Fields{}
	ok2.Email("email", "shopper@example.com")
	ok2.Phone("phone", "01012345678")
	ok2.StrongPassword("password", "Secret1")
	ok2.Length("city", "Cairo", "City", 2, 50)
	assert.NoError(t, ok2.Err())
}

func TestFieldsShipping(t *testing.T) {
	f := Fields{}
	f.Shipping("address.", "12", "01012345678", "C")
	assert.Equal(t, "Details must be at least 5 characters", f["address.details"])
	assert.Equal(t, "City must be at least 2 characters", f["address.city"])
	assert.NotContains(t, f, "address.phone")
}

func TestIsObjectID(t *testing.T) {
	assert.True(t, IsObjectID("6428ebc6dc1175abc65ca0b9"))
	assert.False(t, IsObjectID("not-an-id"))
	assert.False(t, IsObjectID(""))
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/home?page=3&limit=abc&neg=-2", nil)
	assert.Equal(t, 3, QueryInt(r, "page", 1))
	assert.Equal(t, 20, QueryInt(r, "limit", 20))
	assert.Equal(t, 1, QueryInt(r, "neg", 1))
	assert.Equal(t, 7, QueryInt(r, "missing", 7))
}
