package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/general_ledger_app/internal/apperrors"
	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/general_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/general_ledger_app/internal/platform/config"
	"github.com/SscSPs/general_ledger_app/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// tokenService issues the application's JWT access tokens.
type tokenService struct {
	BaseService
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	token, expiresAt, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("user_id", user.UserID))
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// IDTokenValidator checks a Google ID token for the given audience.
type IDTokenValidator func(ctx context.Context, idToken string, audience string) (*idtoken.Payload, error)

// googleOAuthHandlerService implements the GoogleOAuthHandlerSvcFacade.
type googleOAuthHandlerService struct {
	BaseService
	cfg          *config.Config
	oauth2Config *oauth2.Config
	validate     IDTokenValidator
}

// GoogleOAuthOption is a functional option for configuring the Google OAuth service
type GoogleOAuthOption func(*googleOAuthHandlerService)

// WithIDTokenValidator replaces idtoken.Validate.
func WithIDTokenValidator(v IDTokenValidator) GoogleOAuthOption {
	return func(s *googleOAuthHandlerService) {
		s.validate = v
	}
}

// WithOAuthEndpoint replaces Google's OAuth endpoint.
func WithOAuthEndpoint(endpoint oauth2.Endpoint) GoogleOAuthOption {
	return func(s *googleOAuthHandlerService) {
		s.oauth2Config.Endpoint = endpoint
	}
}

// NewGoogleOAuthHandlerService creates a new instance of googleOAuthHandlerService.
func NewGoogleOAuthHandlerService(cfg *config.Config, options ...GoogleOAuthOption) portssvc.GoogleOAuthHandlerSvcFacade {
	svc := &googleOAuthHandlerService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		validate: idtoken.Validate,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
func (s *googleOAuthHandlerService) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate state string for OAuth: %w", err)
	}
	return state, nil
}

// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
func (s *googleOAuthHandlerService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

// ExchangeCode exchanges an authorization code with Google and validates the returned ID token.
func (s *googleOAuthHandlerService) ExchangeCode(ctx context.Context, code string) (*domain.GoogleIdentity, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, errors.New("google client ID is not configured in the application")
	}

	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		s.LogError(ctx, err, "Failed to exchange authorization code with Google")
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.ErrorCode == "invalid_grant" {
			return nil, fmt.Errorf("%w: invalid or expired authorization code", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}

	idTokenString, ok := token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		return nil, errors.New("id token not found in Google's token response")
	}

	payload, err := s.validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		s.LogError(ctx, err, "Google ID token validation failed")
		return nil, fmt.Errorf("%w: google ID token validation failed: %w", apperrors.ErrUnauthorized, err)
	}
	return identityFromPayload(payload)
}

func identityFromPayload(payload *idtoken.Payload) (*domain.GoogleIdentity, error) {
	identity := &domain.GoogleIdentity{Subject: payload.Subject}
	identity.Email, _ = payload.Claims["email"].(string)
	identity.Name, _ = payload.Claims["name"].(string)
	identity.EmailVerified, _ = payload.Claims["email_verified"].(bool)
	if identity.Subject == "" || identity.Email == "" {
		return nil, fmt.Errorf("%w: essential claims (email or sub) missing from Google ID token", apperrors.ErrUnauthorized)
	}
	return identity, nil
}
