package httpx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/milestone2github/callyn-backend/internal/adapters/jwtsession"
	"github.com/milestone2github/callyn-backend/internal/domain/model"
	"github.com/milestone2github/callyn-backend/internal/mocks"
	authmocks "github.com/milestone2github/callyn-backend/internal/mocks/auth"
	"github.com/milestone2github/callyn-backend/internal/observability/metrics"
	"github.com/milestone2github/callyn-backend/internal/service"
	"github.com/milestone2github/callyn-backend/internal/testutil"
)

const (
	testSecret   = "0123456789abcdef0123456789abcdef"
	testFrontend = "callyn://auth"
)

// routerFixture wires the real router over stub directories and gomock repositories.
type routerFixture struct {
	handler   http.Handler
	client    *authmocks.StubDirectoryClient
	directory *authmocks.StaticEmployeeDirectory
	codec     *jwtsession.Codec
	metrics   *metrics.Metrics

	callLogs    *mocks.MockCallLogRepository
	contacts    *mocks.MockContactRequestRepository
	versions    *mocks.MockVersionRepository
	userDetails *mocks.MockUserDetailsRepository
	limiter     *mocks.MockRateLimiter
}

type fixtureOption func(*routerFixture, *RouterServices)

func newRouterFixture(t *testing.T, email string, opts ...fixtureOption) *routerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	f := &routerFixture{
		client: authmocks.NewStubDirectoryClient(email),
		directory: authmocks.NewStaticEmployeeDirectory(
			testutil.NewEmployee("emp-1", "Esha Kapoor", "e@x.com").
				WithDepartment("dep-1", "Sales").
				WithAllocation(testutil.SIMAllocation("SN123", model.AllocationAllocated, testutil.TestTime())).
				Build(),
			testutil.NewEmployee("emp-2", "", "blank@x.com").Build(),
		),
		callLogs:    mocks.NewMockCallLogRepository(ctrl),
		contacts:    mocks.NewMockContactRequestRepository(ctrl),
		versions:    mocks.NewMockVersionRepository(ctrl),
		userDetails: mocks.NewMockUserDetailsRepository(ctrl),
		limiter:     mocks.NewMockRateLimiter(ctrl),
	}

	var err error
	f.codec, err = jwtsession.New(jwtsession.Options{Secret: []byte(testSecret)})
	require.NoError(t, err)
	f.metrics, err = metrics.New(nil)
	require.NoError(t, err)

	identity, err := service.NewIdentityService(service.IdentityServiceOptions{Directory: f.directory})
	require.NoError(t, err)
	auth, err := service.NewAuthService(service.AuthServiceOptions{
		Directory:          f.client,
		Identity:           identity,
		Issuer:             f.codec,
		DefaultRedirectURL: testFrontend,
		Logger:             logger,
		Metrics:            f.metrics,
	})
	require.NoError(t, err)

	rs := RouterServices{
		Auth:        auth,
		Verifier:    f.codec,
		CallLogs:    service.NewCallLogService(service.CallLogServiceOptions{Repo: f.callLogs}),
		Contacts:    service.NewContactRequestService(service.ContactRequestServiceOptions{Repo: f.contacts}),
		Versions:    service.NewVersionService(f.versions),
		UserDetails: service.NewUserDetailsService(service.UserDetailsServiceOptions{Repo: f.userDetails}),
		Metrics:     f.metrics,
		Logger:      logger,
	}
	for _, opt := range opts {
		opt(f, &rs)
	}
	f.handler = NewRouter(rs)
	return f
}

// withRateLimit routes /auth/* through the fixture's limiter mock.
func withRateLimit() fixtureOption {
	return func(f *routerFixture, rs *RouterServices) { rs.AuthLimiter = f.limiter }
}

// token signs a session for the given registry email.
func (f *routerFixture) token(t *testing.T, email string) string {
	t.Helper()
	emp, err := f.directory.FindByEmail(t.Context(), email)
	require.NoError(t, err)
	require.NotNil(t, emp)
	_, tok, err := f.codec.Issue(model.EnrichedIdentity{Employee: *emp})
	require.NoError(t, err)
	return tok
}

// expiredToken signs with the same secret and issuer but a clock far in the past.
func expiredToken(t *testing.T) string {
	t.Helper()
	old, err := jwtsession.New(jwtsession.Options{
		Secret: []byte(testSecret),
		TTL:    time.Hour,
		Now:    testutil.FixedTimeFunc(time.Now().Add(-2 * time.Hour)),
	})
	require.NoError(t, err)
	_, tok, err := old.Issue(model.EnrichedIdentity{Employee: model.Employee{ID: "emp-1", Name: "Esha Kapoor", Email: "e@x.com"}})
	require.NoError(t, err)
	return tok
}

func (f *routerFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func authed(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
