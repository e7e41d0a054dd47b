package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"storefront/pkg/requestcontext"
)

type ManagerSuite struct {
	suite.Suite
	now     time.Time
	store   *InMemoryStore
	manager *Manager
	changes []Change
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) SetupTest() {
	s.now = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	s.store = NewInMemoryStore(func() time.Time { return s.now })
	s.manager = NewManager(s.store, NewCookieCodec("test-key", 24*time.Hour), 24*time.Hour)
	s.changes = nil
	s.manager.Subscribe(func(c Change) { s.changes = append(s.changes, c) })
}

func (s *ManagerSuite) request(cookies ...*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/home", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r.WithContext(requestcontext.WithTime(r.Context(), s.now))
}

func (s *ManagerSuite) signIn() (*Session, *http.Cookie) {
	sess := s.manager.New("upstream-token", UserSummary{ID: "u1", Name: "Ada"}, s.now)
	rec := httptest.NewRecorder()
	s.Require().NoError(s.manager.Set(rec, s.request(), sess))
	cookies := rec.Result().Cookies()
	s.Require().Len(cookies, 1)
	return sess, cookies[0]
}

func (s *ManagerSuite) TestSetWritesHTTPOnlyCookie() {
	_, cookie := s.signIn()

	s.Equal(DefaultCookieName, cookie.Name)
	s.True(cookie.HttpOnly)
	s.Equal("/", cookie.Path)
	s.Equal(http.SameSiteLaxMode, cookie.SameSite)
	s.NotContains(cookie.Value, "upstream-token")
	s.Require().Len(s.changes, 1)
	s.False(s.changes[0].Cleared)
}

func (s *ManagerSuite) TestGet() {
	s.Run("absent without cookie", func() {
		_, ok := s.manager.Get(s.request())
		s.False(ok)
	})

	s.Run("resolves cookie to record", func() {
		sess, cookie := s.signIn()
		got, ok := s.manager.Get(s.request(cookie))
		s.Require().True(ok)
		s.Equal(sess.ID, got.ID)
		s.Equal("upstream-token", got.Token)
	})

	s.Run("absent for forged cookie", func() {
		_, ok := s.manager.Get(s.request(&http.Cookie{Name: DefaultCookieName, Value: "forged"}))
		s.False(ok)
	})

	s.Run("absent when record is gone", func() {
		sess, cookie := s.signIn()
		s.Require().NoError(s.store.Delete(context.Background(), sess.ID))
		_, ok := s.manager.Get(s.request(cookie))
		s.False(ok)
	})

	s.Run("absent on store failure", func() {
		_, cookie := s.signIn()
		m := NewManager(failingStore{}, NewCookieCodec("test-key", 24*time.Hour), 24*time.Hour)
		_, ok := m.Get(s.request(cookie))
		s.False(ok)
	})
}

func (s *ManagerSuite) TestClear() {
	sess, cookie := s.signIn()
	s.changes = nil

	rec := httptest.NewRecorder()
	s.manager.Clear(rec, s.request(cookie), ReasonSignOut)

	expired := rec.Result().Cookies()
	s.Require().Len(expired, 1)
	s.Less(expired[0].MaxAge, 0)
	_, ok := s.manager.Get(s.request(cookie))
	s.False(ok)
	s.Require().Len(s.changes, 1)
	s.Equal(Change{SessionID: sess.ID, Cleared: true, Reason: ReasonSignOut}, s.changes[0])
}

func (s *ManagerSuite) TestSetReplacesPreviousSession() {
	first, cookie := s.signIn()
	s.changes = nil

	second := s.manager.New("other-token", UserSummary{ID: "u2"}, s.now)
	s.Require().NoError(s.manager.Set(httptest.NewRecorder(), s.request(cookie), second))

	_, err := s.store.Get(context.Background(), first.ID)
	s.Error(err)
	s.Require().Len(s.changes, 2)
	s.Equal(Change{SessionID: first.ID, Cleared: true, Reason: ReasonReplaced}, s.changes[0])
	s.Equal(second.ID, s.changes[1].SessionID)
}

func (s *ManagerSuite) TestMarkVerified() {
	sess, cookie := s.signIn()
	later := s.now.Add(10 * time.Minute)

	s.Require().NoError(s.manager.MarkVerified(context.Background(), sess, later))

	got, ok := s.manager.Get(s.request(cookie))
	s.Require().True(ok)
	s.Equal(later, got.VerifiedAt)
	s.False(got.NeedsVerification(later.Add(time.Minute), 5*time.Minute))
	s.True(got.NeedsVerification(later.Add(5*time.Minute), 5*time.Minute))
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (*Session, error) {
	return nil, errors.New("connection refused")
}
func (failingStore) Save(context.Context, *Session, time.Duration) error { return nil }
func (failingStore) Delete(context.Context, string) error              { return nil }
func (failingStore) Touch(context.Context, string, time.Time) error    { return nil }
