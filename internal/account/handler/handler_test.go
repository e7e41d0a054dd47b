package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"storefront/internal/account"
	"storefront/internal/account/handler/mocks"
	"storefront/internal/gate"
	"storefront/internal/session"
	"storefront/internal/transport/http/shared"
	"storefront/internal/upstream"
	"storefront/pkg/platform/sentinel"
	"storefront/pkg/testutil"
)

const addressID = "64a1f0c2e4b0a1b2c3d4e5f6"

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service,Sessions
type HandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	store   *session.InMemoryStore
	manager *session.Manager
	router  chi.Router
	sess    *session.Session
	cookie  *http.Cookie
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.service = mocks.NewMockService(gomock.NewController(s.T()))
	s.store = session.NewInMemoryStore(time.Now)
	s.manager = session.NewManager(s.store, session.NewCookieCodec("test-key", time.Hour), time.Hour)
	logger := slog.New(slog.DiscardHandler)
	h := New(s.service, s.manager, shared.NewResponder(s.manager, nil, logger), logger)
	s.router = chi.NewRouter()
	h.RegisterPages(s.router)
	h.RegisterActions(s.router)

	s.sess = s.manager.New("tok-1", session.UserSummary{ID: "u1", Name: "Mona", Email: "mona@example.com"}, time.Now())
	rr := httptest.NewRecorder()
	s.Require().NoError(s.manager.Set(rr, httptest.NewRequest(http.MethodPost, "/login", nil), s.sess))
	s.cookie = rr.Result().Cookies()[0]
}

func (s *HandlerSuite) signedIn(req *http.Request) *http.Request {
	req.AddCookie(s.cookie)
	return req.WithContext(gate.WithResolution(req.Context(), gate.Resolution{State: gate.Authenticated, Session: s.sess}))
}

func (s *HandlerSuite) TestProfilePage() {
	s.service.EXPECT().Profile(gomock.Any(), s.sess).Return(&account.Profile{
		User:      s.sess.User,
		Addresses: []upstream.Address{},
		Orders:    []upstream.Order{{ID: "o1"}},
	}, nil)
	rr := testutil.DoRequest(s.router, s.signedIn(testutil.NewJSONRequest(s.T(), http.MethodGet, "/user", nil)))
	s.Require().Equal(http.StatusOK, rr.Code)
	page := testutil.UnmarshalResponse[ProfilePage](s.T(), rr)
	s.Equal("profile", page.Page)
	s.Equal("Mona", page.User.Name)
	s.Len(page.Orders, 1)
}

func (s *HandlerSuite) TestAddresses() {
	s.Run("add", func() {
		addr := upstream.Address{Name: "Home", Details: "12 Nile Street", Phone: "01012345678", City: "Cairo"}
		s.service.EXPECT().AddAddress(gomock.Any(), s.sess, addr).Return([]upstream.Address{addr}, nil)
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/user/addresses", map[string]string{
			"name": " Home ", "details": "12 Nile Street", "phone": "01012345678", "city": "Cairo",
		})
		rr := testutil.DoRequest(s.router, s.signedIn(req))
		s.Require().Equal(http.StatusCreated, rr.Code)
		testutil.AssertJSONContains(s.T(), rr, "count", float64(1))
	})

	s.Run("add rejects short fields before calling upstream", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/user/addresses", map[string]string{
			"name": "H", "details": "12", "phone": "0101", "city": "C",
		})
		rr := testutil.DoRequest(s.router, s.signedIn(req))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_failed")
		s.Len(testutil.JSONBody(s.T(), rr)["fields"], 4)
	})

	s.Run("remove", func() {
		s.service.EXPECT().RemoveAddress(gomock.Any(), s.sess, addressID).Return(nil, nil)
		rr := testutil.DoRequest(s.router, s.signedIn(testutil.NewJSONRequest(s.T(), http.MethodDelete, "/user/addresses/"+addressID, nil)))
		s.Require().Equal(http.StatusOK, rr.Code)
		s.JSONEq(`{"addresses":[],"count":0}`, rr.Body.String())
	})
}

func (s *HandlerSuite) TestChangePassword() {
	s.Run("weak password never reaches upstream", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/user/password", map[string]string{
			"currentPassword": "Secret1", "password": "alllower", "rePassword": "alllower",
		})
		rr := testutil.DoRequest(s.router, s.signedIn(req))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_failed")
	})

	s.Run("rotated credential replaces the session", func() {
		s.service.EXPECT().ChangePassword(gomock.Any(), s.sess, upstream.ChangePasswordRequest{
			CurrentPassword: "Secret1", Password: "Secret22", RePassword: "Secret22",
		}).Return("tok-2", nil)
		req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/user/password", map[string]string{
			"currentPassword": "Secret1", "password": "Secret22", "rePassword": "Secret22",
		})
		rr := testutil.DoRequest(s.router, s.signedIn(req))
		s.Require().Equal(http.StatusOK, rr.Code)

		_, err := s.store.Get(context.Background(), s.sess.ID)
		s.True(errors.Is(err, sentinel.ErrNotFound), "old session must be revoked")

		next, ok := s.manager.Get(testutil.CarryCookies(rr, httptest.NewRequest(http.MethodGet, "/user", nil)))
		s.Require().True(ok)
		s.Equal("tok-2", next.Token)
		s.Equal("u1", next.User.ID)
	})
}

func (s *HandlerSuite) TestUpdateProfile() {
	updated := session.UserSummary{ID: "u1", Name: "Mona Adel", Email: "mona.adel@example.com"}
	s.service.EXPECT().UpdateProfile(gomock.Any(), s.sess, upstream.ProfileUpdate{
		Name: "Mona Adel", Email: "mona.adel@example.com", Phone: "01012345678",
	}).Return(updated, nil)

	req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/user/profile", map[string]string{
		"name": "Mona Adel", "email": "Mona.Adel@example.com", "phone": "01012345678",
	})
	rr := testutil.DoRequest(s.router, s.signedIn(req))
	s.Require().Equal(http.StatusOK, rr.Code)

	stored, err := s.store.Get(context.Background(), s.sess.ID)
	s.Require().NoError(err)
	s.Equal("Mona Adel", stored.User.Name)
	s.Equal("tok-1", stored.Token)
}
