package services_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/SscSPs/general_ledger_app/internal/apperrors"
	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	"github.com/SscSPs/general_ledger_app/internal/core/services"
	"github.com/SscSPs/general_ledger_app/internal/platform/config"
	"github.com/SscSPs/general_ledger_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpiryDuration:  time.Hour,
		JWTIssuer:          "test",
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
		GoogleRedirectURL:  "http://localhost:3000/auth/google/callback",
	}
}

func TestTokenService_GenerateAccessToken(t *testing.T) {
	svc := services.NewTokenService(testConfig())
	token, expiresAt, err := svc.GenerateAccessToken(context.Background(), &domain.User{UserID: "u1"})
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := utils.ParseAndValidateJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "test", claims.Issuer)
}

// googleTokenServer answers the token endpoint with the given id_token, or with
// invalid_grant when idToken is empty.
func googleTokenServer(t *testing.T, idToken string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		w.Header().Set("Content-Type", "application/json")
		if idToken == "" || r.PostForm.Get("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"at","token_type":"Bearer","expires_in":3600,"id_token":"` + idToken + `"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGoogleOAuth_ExchangeCode(t *testing.T) {
	srv := googleTokenServer(t, "signed-id-token")
	var gotAudience string
	svc := services.NewGoogleOAuthHandlerService(testConfig(),
		services.WithOAuthEndpoint(oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token"}),
		services.WithIDTokenValidator(func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
			gotAudience = audience
			if token != "signed-id-token" {
				return nil, errors.New("bad token")
			}
			return &idtoken.Payload{Subject: "sub-1", Claims: map[string]any{
				"email": "m@x.io", "name": "Maria", "email_verified": true,
			}}, nil
		}))

	identity, err := svc.ExchangeCode(context.Background(), "good-code")
	require.NoError(t, err)
	assert.Equal(t, "client-id", gotAudience)
	assert.Equal(t, domain.GoogleIdentity{Subject: "sub-1", Email: "m@x.io", Name: "Maria", EmailVerified: true}, *identity)

	_, err = svc.ExchangeCode(context.Background(), "bad-code")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestGoogleOAuth_RejectsIncompleteClaims(t *testing.T) {
	srv := googleTokenServer(t, "signed-id-token")
	svc := services.NewGoogleOAuthHandlerService(testConfig(),
		services.WithOAuthEndpoint(oauth2.Endpoint{TokenURL: srv.URL + "/token"}),
		services.WithIDTokenValidator(func(context.Context, string, string) (*idtoken.Payload, error) {
			return &idtoken.Payload{Subject: "sub-1", Claims: map[string]any{}}, nil
		}))

	_, err := svc.ExchangeCode(context.Background(), "good-code")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestGoogleOAuth_LoginURL(t *testing.T) {
	svc := services.NewGoogleOAuthHandlerService(testConfig())
	state, err := svc.GenerateStateString(context.Background())
	require.NoError(t, err)

	loginURL, err := url.Parse(svc.GetGoogleLoginURL(context.Background(), state))
	require.NoError(t, err)
	assert.Equal(t, state, loginURL.Query().Get("state"))
	assert.Equal(t, "client-id", loginURL.Query().Get("client_id"))
}
