package handler

import (
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"storefront/internal/catalog"
	"storefront/internal/catalog/handler/mocks"
	"storefront/internal/gate"
	"storefront/internal/session"
	"storefront/internal/transport/http/shared"
	"storefront/internal/upstream"
	dErrors "storefront/pkg/domain-errors"
	"storefront/pkg/testutil"
)

const (
	productID  = "6428ebc6dc1175abc65ca0b9"
	categoryID = "6439d58a0049ad0b52b9003f"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service,Wishlist
type HandlerSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	service  *mocks.MockService
	wishlist *mocks.MockWishlist
	manager  *session.Manager
	router   chi.Router
	sess     *session.Session
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	s.wishlist = mocks.NewMockWishlist(s.ctrl)
	s.manager = session.NewManager(session.NewInMemoryStore(time.Now), session.NewCookieCodec("k", time.Hour), time.Hour)
	logger := slog.New(slog.DiscardHandler)

	h := New(s.service, s.wishlist, shared.NewResponder(s.manager, nil, logger), logger)
	s.router = chi.NewRouter()
	h.Register(s.router)
	s.sess = s.manager.New("tok", session.UserSummary{ID: "u1"}, time.Now())
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerSuite) get(path string, signedIn bool) *http.Request {
	req := testutil.NewJSONRequest(s.T(), http.MethodGet, path, nil)
	if signedIn {
		ctx := gate.WithResolution(req.Context(), gate.Resolution{State: gate.Authenticated, Session: s.sess})
		req = req.WithContext(ctx)
	}
	return req
}

func (s *HandlerSuite) TestHomeMarksSavedProducts() {
	s.service.EXPECT().Home(gomock.Any(), "phone", 2, 20).Return(&catalog.Home{
		Products: upstream.Page[upstream.Product]{
			Metadata: upstream.PageMetadata{CurrentPage: 2, NumberOfPages: 4},
			Data:     []upstream.Product{{ID: "p1", Title: "Phone"}, {ID: "p2", Title: "Case"}},
		},
		Categories: []upstream.Category{{ID: "c1", Name: "Electronics"}},
	}, nil)
	s.wishlist.EXPECT().ProductIDs(gomock.Any(), s.sess).Return(map[string]bool{"p2": true}, nil)

	rr := testutil.DoRequest(s.router, s.get("/home?q=phone&page=2", true))

	s.Require().Equal(http.StatusOK, rr.Code)
	page := testutil.UnmarshalResponse[HomePage](s.T(), rr)
	s.Equal("home", page.Page)
	s.False(page.Products[0].InWishlist)
	s.True(page.Products[1].InWishlist)
	s.Equal(2, page.Metadata.CurrentPage)
}

func (s *HandlerSuite) TestHomeAnonymousSkipsWishlist() {
	s.service.EXPECT().Home(gomock.Any(), "", 1, 20).Return(&catalog.Home{}, nil)

	rr := testutil.DoRequest(s.router, s.get("/home", false))
	s.Equal(http.StatusOK, rr.Code)
}

func (s *HandlerSuite) TestWishlistOutageOnlyLosesMarks() {
	s.service.EXPECT().Product(gomock.Any(), productID).Return(&upstream.Product{ID: productID, Title: "Phone"}, nil)
	s.wishlist.EXPECT().ProductIDs(gomock.Any(), s.sess).Return(nil, dErrors.New(dErrors.CodeUnavailable, "down"))

	rr := testutil.DoRequest(s.router, s.get("/home/products/"+productID, true))
	s.Require().Equal(http.StatusOK, rr.Code)
	page := testutil.UnmarshalResponse[ProductPage](s.T(), rr)
	s.Equal("Phone", page.Product.Title)
	s.False(page.Product.InWishlist)
}

func (s *HandlerSuite) TestRejectedCredentialRedirectsToSignIn() {
	s.service.EXPECT().Product(gomock.Any(), productID).Return(&upstream.Product{ID: productID}, nil)
	s.wishlist.EXPECT().ProductIDs(gomock.Any(), s.sess).Return(nil,
		upstream.Translate(&upstream.Error{Kind: upstream.AuthFailure, Status: 401}, "load wishlist"))

	rr := testutil.DoRequest(s.router, s.get("/home/products/"+productID, true))
	testutil.AssertRedirect(s.T(), rr, "/login")
}

func (s *HandlerSuite) TestProductNotFound() {
	s.Run("malformed id never reaches upstream", func() {
		rr := testutil.DoRequest(s.router, s.get("/home/products/not-an-id", false))
		s.Equal(http.StatusNotFound, rr.Code)
		testutil.AssertJSONContains(s.T(), rr, "page", "not_found")
		testutil.AssertJSONContains(s.T(), rr, "back", "/home")
	})

	s.Run("upstream 404", func() {
		s.service.EXPECT().Product(gomock.Any(), productID).Return(nil, dErrors.New(dErrors.CodeNotFound, "not found"))
		rr := testutil.DoRequest(s.router, s.get("/home/products/"+productID, false))
		s.Equal(http.StatusNotFound, rr.Code)
	})
}

func (s *HandlerSuite) TestAllProductsCapsMax() {
	s.service.EXPECT().AllProducts(gomock.Any(), 500).Return([]upstream.Product{{ID: "p1"}}, nil)

	rr := testutil.DoRequest(s.router, s.get("/home/products?max=9000", false))
	s.Require().Equal(http.StatusOK, rr.Code)
	testutil.AssertJSONContains(s.T(), rr, "results", float64(1))
}

func (s *HandlerSuite) TestBrands() {
	s.Run("whole list filtered by q", func() {
		s.service.EXPECT().FindBrands(gomock.Any(), "can", 200).Return([]upstream.Brand{{ID: "b1", Name: "Canon", Slug: "canon"}}, nil)
		rr := testutil.DoRequest(s.router, s.get("/brands?q=can", false))
		s.Require().Equal(http.StatusOK, rr.Code)
		page := testutil.UnmarshalResponse[BrandsPage](s.T(), rr)
		s.Len(page.Brands, 1)
		s.Nil(page.Metadata)
	})

	s.Run("paged search", func() {
		s.service.EXPECT().SearchBrands(gomock.Any(), "", 3, 20).Return(upstream.Page[upstream.Brand]{
			Results: 0, Metadata: upstream.PageMetadata{CurrentPage: 3},
		}, nil)
		rr := testutil.DoRequest(s.router, s.get("/brands?page=3", false))
		s.Require().Equal(http.StatusOK, rr.Code)
		page := testutil.UnmarshalResponse[BrandsPage](s.T(), rr)
		s.Require().NotNil(page.Metadata)
		s.Equal(3, page.Metadata.CurrentPage)
	})

	s.Run("brand page by slug", func() {
		s.service.EXPECT().BrandBySlug(gomock.Any(), "canon").Return(&upstream.Brand{ID: "b1", Slug: "canon"}, nil)
		s.service.EXPECT().BrandProducts(gomock.Any(), "b1", 1, 20).Return(upstream.Page[upstream.Product]{
			Data: []upstream.Product{{ID: "p1"}},
		}, nil)
		rr := testutil.DoRequest(s.router, s.get("/brands/canon", false))
		s.Require().Equal(http.StatusOK, rr.Code)
		page := testutil.UnmarshalResponse[BrandPage](s.T(), rr)
		s.Equal("b1", page.Brand.ID)
		s.Len(page.Products, 1)
	})
}

func (s *HandlerSuite) TestCategories() {
	s.service.EXPECT().Categories(gomock.Any()).Return([]upstream.Category{{ID: categoryID}}, nil)
	rr := testutil.DoRequest(s.router, s.get("/categories", false))
	s.Require().Equal(http.StatusOK, rr.Code)

	s.service.EXPECT().Category(gomock.Any(), categoryID, 1, 20).Return(&catalog.CategoryPage{
		Category: &upstream.Category{ID: categoryID, Name: "Music"},
	}, nil)
	rr = testutil.DoRequest(s.router, s.get("/categories/"+categoryID+"/music", false))
	s.Require().Equal(http.StatusOK, rr.Code)
	page := testutil.UnmarshalResponse[CategoryPage](s.T(), rr)
	s.Equal("Music", page.Category.Name)
}

func (s *HandlerSuite) TestUpstreamOutageRendersFallback() {
	s.service.EXPECT().Categories(gomock.Any()).Return(nil, dErrors.New(dErrors.CodeUnavailable, "down"))

	rr := testutil.DoRequest(s.router, s.get("/categories", false))
	s.Equal(http.StatusServiceUnavailable, rr.Code)
	testutil.AssertJSONContains(s.T(), rr, "page", "error")
	testutil.AssertJSONContains(s.T(), rr, "retry", true)
}
