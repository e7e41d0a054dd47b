package gate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"storefront/internal/gate/mocks"
	"storefront/internal/session"
	"storefront/internal/upstream"
	"storefront/pkg/requestcontext"
)

//go:generate mockgen -source=resolver.go -destination=mocks/mocks.go -package=mocks Sessions,Verifier
type ResolverSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	sessions *mocks.MockSessions
	verifier *mocks.MockVerifier
	resolver *Resolver
	now      time.Time
	cleared  []string
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.sessions = mocks.NewMockSessions(s.ctrl)
	s.verifier = mocks.NewMockVerifier(s.ctrl)
	s.now = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	s.cleared = nil
	s.resolver = NewResolver(s.sessions, s.verifier, 5*time.Minute,
		WithClearedHook(func(_ context.Context, sess *session.Session) {
			s.cleared = append(s.cleared, sess.ID)
		}))
}

func (s *ResolverSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ResolverSuite) ctx() context.Context {
	return requestcontext.WithTime(context.Background(), s.now)
}

func (s *ResolverSuite) request() *http.Request {
	return httptest.NewRequest(http.MethodGet, "/cart", nil)
}

func (s *ResolverSuite) TestNoSessionIsUnauthenticated() {
	s.sessions.EXPECT().Get(gomock.Any()).Return(nil, false)

	res := s.resolver.Resolve(s.ctx(), s.request())
	s.Equal(Unauthenticated, res.State)
	s.Nil(res.Session)
}

func (s *ResolverSuite) TestRecentlyVerifiedSkipsUpstream() {
	sess := &session.Session{ID: "s1", Token: "t", VerifiedAt: s.now.Add(-time.Minute)}
	s.sessions.EXPECT().Get(gomock.Any()).Return(sess, true)

	res := s.resolver.Resolve(s.ctx(), s.request())
	s.Equal(Authenticated, res.State)
	s.Same(sess, res.Session)
}

func (s *ResolverSuite) TestStaleVerificationIsRechecked() {
	sess := &session.Session{ID: "s1", Token: "t", VerifiedAt: s.now.Add(-10 * time.Minute)}
	s.sessions.EXPECT().Get(gomock.Any()).Return(sess, true)
	s.verifier.EXPECT().VerifyToken(gomock.Any(), "t").Return(&upstream.VerifiedToken{ID: "u1"}, nil)
	s.sessions.EXPECT().MarkVerified(gomock.Any(), sess, s.now).Return(nil)

	res := s.resolver.Resolve(s.ctx(), s.request())
	s.Equal(Authenticated, res.State)
}

func (s *ResolverSuite) TestRejectedCredentialClearsSession() {
	sess := &session.Session{ID: "s1", Token: "t"}
	s.sessions.EXPECT().Get(gomock.Any()).Return(sess, true)
	s.verifier.EXPECT().VerifyToken(gomock.Any(), "t").
		Return(nil, &upstream.Error{Kind: upstream.AuthFailure, Status: http.StatusUnauthorized})
	s.sessions.EXPECT().Revoke(gomock.Any(), "s1", session.ReasonUnauthorized)

	res := s.resolver.Resolve(s.ctx(), s.request())
	s.Equal(Unauthenticated, res.State)
	s.True(res.Cleared)
	s.Equal([]string{"s1"}, s.cleared)
}

func (s *ResolverSuite) TestUpstreamOutageIsUnknown() {
	sess := &session.Session{ID: "s1", Token: "t"}
	s.sessions.EXPECT().Get(gomock.Any()).Return(sess, true)
	s.verifier.EXPECT().VerifyToken(gomock.Any(), "t").
		Return(nil, &upstream.Error{Kind: upstream.NetworkFailure, Err: errors.New("dial tcp: refused")})

	res := s.resolver.Resolve(s.ctx(), s.request())
	s.Equal(Unknown, res.State)
	s.False(res.Cleared)
	s.Empty(s.cleared)
}

func (s *ResolverSuite) TestAbandonedNavigationDoesNotFailSharedVerification() {
	sess := &session.Session{ID: "s1", Token: "t"}
	entered := make(chan struct{})
	release := make(chan struct{})
	s.sessions.EXPECT().Get(gomock.Any()).Return(sess, true).Times(2)
	s.verifier.EXPECT().VerifyToken(gomock.Any(), "t").
		DoAndReturn(func(ctx context.Context, _ string) (*upstream.VerifiedToken, error) {
			close(entered)
			<-release
			if err := ctx.Err(); err != nil {
				return nil, &upstream.Error{Kind: upstream.NetworkFailure, Err: err}
			}
			return &upstream.VerifiedToken{ID: "u1"}, nil
		})
	s.sessions.EXPECT().MarkVerified(gomock.Any(), sess, s.now).Return(nil)

	ctxA, cancelA := context.WithCancel(s.ctx())
	resA := make(chan Resolution, 1)
	go func() { resA <- s.resolver.Resolve(ctxA, s.request()) }()
	<-entered

	resB := make(chan Resolution, 1)
	go func() { resB <- s.resolver.Resolve(s.ctx(), s.request()) }()
	// Let B join the in-flight verification before A goes away.
	time.Sleep(20 * time.Millisecond)
	cancelA()

	s.Equal(Unknown, (<-resA).State)
	close(release)

	b := <-resB
	s.Equal(Authenticated, b.State)
	s.Same(sess, b.Session)
}

func (s *ResolverSuite) TestVerificationIsBoundedByTimeout() {
	s.resolver = NewResolver(s.sessions, s.verifier, 5*time.Minute, WithVerifyTimeout(10*time.Millisecond))
	sess := &session.Session{ID: "s1", Token: "t"}
	s.sessions.EXPECT().Get(gomock.Any()).Return(sess, true)
	s.verifier.EXPECT().VerifyToken(gomock.Any(), "t").
		DoAndReturn(func(ctx context.Context, _ string) (*upstream.VerifiedToken, error) {
			<-ctx.Done()
			return nil, &upstream.Error{Kind: upstream.NetworkFailure, Err: ctx.Err()}
		})

	res := s.resolver.Resolve(s.ctx(), s.request())
	s.Equal(Unknown, res.State)
}
