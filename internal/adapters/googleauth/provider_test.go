package googleauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/academica/progress-ui-api/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// discoveryServer serves a minimal OIDC discovery document whose issuer
// is its own URL.
func discoveryServer(t *testing.T) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		doc := map[string]string{
			"issuer":                 srv.URL,
			"authorization_endpoint": srv.URL + "/auth",
			"token_endpoint":         srv.URL + "/token",
			"userinfo_endpoint":      srv.URL + "/userinfo",
			"jwks_uri":               srv.URL + "/jwks",
		}
		_ = json.NewEncoder(w).Encode(doc)
	})
	srv = httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func newTestProvider(t *testing.T) *Provider {
	t.Helper()

	srv := discoveryServer(t)
	p, err := NewProvider(context.Background(), ProviderConfig{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		RedirectURL:  "http://localhost:8080/auth/google/callback",
		Issuer:       srv.URL,
	})
	require.NoError(t, err)
	return p
}

func TestNewProvider_ValidationErrors(t *testing.T) {
	ctx := context.Background()

	_, err := NewProvider(ctx, ProviderConfig{ClientSecret: "s", RedirectURL: "r"})
	assert.EqualError(t, err, "client ID is required")

	_, err = NewProvider(ctx, ProviderConfig{ClientID: "c", RedirectURL: "r"})
	assert.EqualError(t, err, "client secret is required")

	_, err = NewProvider(ctx, ProviderConfig{ClientID: "c", ClientSecret: "s"})
	assert.EqualError(t, err, "redirect URL is required")
}

func TestProvider_Begin(t *testing.T) {
	p := newTestProvider(t)

	authURL, state, nonce, err := p.Begin(context.Background(), ports.BeginInput{
		RedirectURL: "http://localhost:8080/auth/google/callback",
	})
	require.NoError(t, err)

	assert.Len(t, state, 32)
	assert.Len(t, nonce, 32)
	assert.Contains(t, authURL, "/auth?")
	assert.Contains(t, authURL, "state="+state)
	assert.Contains(t, authURL, "nonce="+nonce)
	assert.Contains(t, authURL, "prompt=select_account")
	assert.Contains(t, authURL, "scope=openid+email+profile")
}

func TestProvider_BeginStatesAreUnique(t *testing.T) {
	p := newTestProvider(t)

	_, state1, nonce1, err := p.Begin(context.Background(), ports.BeginInput{RedirectURL: "http://x"})
	require.NoError(t, err)
	_, state2, nonce2, err := p.Begin(context.Background(), ports.BeginInput{RedirectURL: "http://x"})
	require.NoError(t, err)

	assert.NotEqual(t, state1, state2)
	assert.NotEqual(t, nonce1, nonce2)
}

func TestProvider_BeginRequiresRedirectURL(t *testing.T) {
	p := newTestProvider(t)

	_, _, _, err := p.Begin(context.Background(), ports.BeginInput{})
	assert.EqualError(t, err, "redirect URL is required")
}

func TestProvider_ExchangeInputValidation(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	_, err := p.Exchange(ctx, ports.ExchangeInput{Nonce: "n"})
	assert.EqualError(t, err, "authorization code is required")

	_, err = p.Exchange(ctx, ports.ExchangeInput{Code: "c"})
	assert.EqualError(t, err, "nonce is required")
}

func TestGenerateRandomString(t *testing.T) {
	for _, n := range []int{0, 1, 16, 32, 43} {
		s, err := generateRandomString(n)
		require.NoError(t, err)
		assert.Len(t, s, n)
		assert.False(t, strings.ContainsAny(s, "+/="), "must be URL-safe")
	}
}
