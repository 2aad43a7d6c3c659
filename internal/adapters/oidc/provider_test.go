package oidc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	domainauth "github.com/milestone2github/callyn-backend/internal/domain/auth"
)

func idToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("zoho-side-key"))
	require.NoError(t, err)
	return s
}

// tokenServer serves a fixed token endpoint response and counts calls.
func tokenServer(t *testing.T, status int, body map[string]any) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "test-client", r.PostForm.Get("client_id"))
		assert.Equal(t, "test-secret", r.PostForm.Get("client_secret"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func createTestProvider(t *testing.T, tokenURL string) *Provider {
	t.Helper()
	p, err := NewProvider(context.Background(), ProviderConfig{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		RedirectURL:  "http://localhost:8080/auth/zoho/callback",
		Scopes:       []string{"openid", "email", "profile"},
		AuthURL:      "https://accounts.example.com/oauth/v2/auth",
		TokenURL:     tokenURL,
	})
	require.NoError(t, err)
	return p
}

func TestNewProvider_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		config ProviderConfig
		errMsg string
	}{
		{
			name:   "missing client ID",
			config: ProviderConfig{ClientSecret: "secret", RedirectURL: "http://localhost/callback"},
			errMsg: "client ID is required",
		},
		{
			name:   "missing client secret",
			config: ProviderConfig{ClientID: "client", RedirectURL: "http://localhost/callback"},
			errMsg: "client secret is required",
		},
		{
			name:   "missing redirect URL",
			config: ProviderConfig{ClientID: "client", ClientSecret: "secret"},
			errMsg: "redirect URL is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(context.Background(), tt.config)
			require.Error(t, err)
			assert.Nil(t, p)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNewProvider_Defaults(t *testing.T) {
	p, err := NewProvider(context.Background(), ProviderConfig{
		ClientID:     "c",
		ClientSecret: "s",
		RedirectURL:  "http://localhost/cb",
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultAuthURL, p.config.Endpoint.AuthURL)
	assert.Equal(t, DefaultTokenURL, p.config.Endpoint.TokenURL)
	assert.Equal(t, oauth2.AuthStyleInParams, p.config.Endpoint.AuthStyle)
	assert.Equal(t, defaultExchangeTimeout, p.timeout)
	assert.Equal(t, defaultEmailClaim, p.emailClaim)
	assert.Nil(t, p.verifier)
}

func TestNewProvider_Discovery(t *testing.T) {
	issuer := ""
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{
			"issuer":                 issuer,
			"authorization_endpoint": "https://example.com/auth",
			"token_endpoint":         "https://example.com/token",
			"jwks_uri":               "https://example.com/jwks",
		})
	}))
	defer srv.Close()
	issuer = srv.URL

	p, err := NewProvider(context.Background(), ProviderConfig{
		ClientID:     "c",
		ClientSecret: "s",
		RedirectURL:  "http://localhost/cb",
		DiscoveryURL: srv.URL + "/.well-known/openid-configuration",
	})
	require.NoError(t, err)
	assert.NotNil(t, p.verifier)
	assert.Equal(t, "https://example.com/auth", p.config.Endpoint.AuthURL)
	assert.Equal(t, "https://example.com/token", p.config.Endpoint.TokenURL)
}

func TestNewProvider_BadEmailClaim(t *testing.T) {
	_, err := NewProvider(context.Background(), ProviderConfig{
		ClientID:     "c",
		ClientSecret: "s",
		RedirectURL:  "http://localhost/cb",
		EmailClaim:   "email[",
	})
	require.Error(t, err)
}

func TestProvider_AuthCodeURL(t *testing.T) {
	p := createTestProvider(t, "http://unused")
	state := url.QueryEscape(`{"redirectUrl":"callyn://auth"}`)

	raw := p.AuthCodeURL(state)
	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()

	assert.Equal(t, "accounts.example.com", u.Host)
	assert.Equal(t, "test-client", q.Get("client_id"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "openid,email,profile", q.Get("scope"))
	assert.Equal(t, "offline", q.Get("access_type"))
	assert.Equal(t, "http://localhost:8080/auth/zoho/callback", q.Get("redirect_uri"))
	assert.Equal(t, state, q.Get("state"))
}

func TestProvider_Exchange_Success(t *testing.T) {
	tok := idToken(t, jwt.MapClaims{"email": " E@X.com ", "sub": "123", "exp": time.Now().Add(time.Hour).Unix()})
	srv, calls := tokenServer(t, http.StatusOK, map[string]any{
		"access_token": "at",
		"token_type":   "Bearer",
		"expires_in":   3600,
		"id_token":     tok,
	})
	p := createTestProvider(t, srv.URL)

	ident, err := p.Exchange(context.Background(), "auth-code")
	require.NoError(t, err)
	assert.Equal(t, "E@X.com", ident.Email)
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
}

func TestProvider_Exchange_NestedEmailClaim(t *testing.T) {
	tok := idToken(t, jwt.MapClaims{"profile": map[string]any{"mail": "nested@x.com"}})
	srv, _ := tokenServer(t, http.StatusOK, map[string]any{
		"access_token": "at",
		"token_type":   "Bearer",
		"id_token":     tok,
	})
	p, err := NewProvider(context.Background(), ProviderConfig{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		RedirectURL:  "http://localhost/cb",
		TokenURL:     srv.URL,
		EmailClaim:   "profile.mail",
	})
	require.NoError(t, err)

	ident, err := p.Exchange(context.Background(), "code")
	require.NoError(t, err)
	assert.Equal(t, "nested@x.com", ident.Email)
}

func TestProvider_Exchange_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   map[string]any
		op     string
	}{
		{
			name:   "endpoint rejects code",
			status: http.StatusBadRequest,
			body:   map[string]any{"error": "invalid_code"},
			op:     OpToken,
		},
		{
			name:   "missing id_token",
			status: http.StatusOK,
			body:   map[string]any{"access_token": "at", "token_type": "Bearer"},
			op:     OpIDToken,
		},
		{
			name:   "undecodable id_token",
			status: http.StatusOK,
			body:   map[string]any{"access_token": "at", "token_type": "Bearer", "id_token": "garbage"},
			op:     OpDecode,
		},
		{
			name:   "missing email claim",
			status: http.StatusOK,
			body:   map[string]any{"access_token": "at", "token_type": "Bearer", "id_token": "<no-email>"},
			op:     OpEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.body["id_token"] == "<no-email>" {
				tt.body["id_token"] = idToken(t, jwt.MapClaims{"sub": "1", "email": ""})
			}
			srv, _ := tokenServer(t, tt.status, tt.body)
			p := createTestProvider(t, srv.URL)

			_, err := p.Exchange(context.Background(), "code")
			require.Error(t, err)
			require.True(t, domainauth.IsExchangeError(err))

			var ee *domainauth.ExchangeError
			require.ErrorAs(t, err, &ee)
			assert.Equal(t, tt.op, ee.Op)
		})
	}
}

func TestProvider_Exchange_MissingEmailIsSentinel(t *testing.T) {
	srv, _ := tokenServer(t, http.StatusOK, map[string]any{
		"access_token": "at",
		"token_type":   "Bearer",
		"id_token":     idToken(t, jwt.MapClaims{"sub": "1"}),
	})
	p := createTestProvider(t, srv.URL)

	_, err := p.Exchange(context.Background(), "code")
	assert.ErrorIs(t, err, domainauth.ErrMissingEmail)
}

func TestProvider_Exchange_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	tokenURL := srv.URL
	srv.Close()

	p := createTestProvider(t, tokenURL)
	_, err := p.Exchange(context.Background(), "code")
	require.True(t, domainauth.IsExchangeError(err))
}

func TestProvider_Exchange_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	p, err := NewProvider(context.Background(), ProviderConfig{
		ClientID:        "test-client",
		ClientSecret:    "test-secret",
		RedirectURL:     "http://localhost/cb",
		TokenURL:        srv.URL,
		ExchangeTimeout: 50 * time.Millisecond,
	})
	require.NoError(t, err)

	start := time.Now()
	_, err = p.Exchange(context.Background(), "code")
	require.True(t, domainauth.IsExchangeError(err))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestProvider_Exchange_EmptyCode(t *testing.T) {
	p := createTestProvider(t, "http://unused")
	_, err := p.Exchange(context.Background(), " ")
	assert.True(t, domainauth.IsExchangeError(err))
}

func TestGetIDTokenFromToken(t *testing.T) {
	_, err := getIDTokenFromToken(nil)
	require.Error(t, err)

	tok := (&oauth2.Token{AccessToken: "at"}).WithExtra(map[string]any{"id_token": "abc"})
	s, err := getIDTokenFromToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "abc", s)

	_, err = getIDTokenFromToken(&oauth2.Token{AccessToken: "at"})
	require.Error(t, err)
}
