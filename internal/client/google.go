// Google Sign-In ID token verification and OAuth2 code exchange.
//
// Environment (config.GoogleConfig):
//   - GOOGLE_CLIENT_ID: expected audience of ID tokens
//   - GOOGLE_CLIENT_SECRET, GOOGLE_REDIRECT_URL: enable the code exchange
//   - GOOGLE_ISSUER (default: https://accounts.google.com)

package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/hahn-software/backend/internal/config"
	"github.com/hahn-software/backend/internal/model"
	"golang.org/x/oauth2"
)

var (
	ErrAudienceMismatch = errors.New("assertion audience mismatch")
	ErrAssertionExpired = errors.New("assertion expired")
	ErrInvalidAssertion = errors.New("invalid assertion")
	ErrExchangeDisabled = errors.New("code exchange not configured")
)

// ProviderError means the identity provider could not be reached. The
// caller may retry.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return "identity provider unavailable: " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func (e *ProviderError) Unavailable() bool {
	return true
}

type GoogleVerifier struct {
	verifier *oidc.IDTokenVerifier
	clientID string
	oauth    *oauth2.Config
}

type googleClaims struct {
	Email         string `json:"email"`
	EmailVerified *bool  `json:"email_verified"`
	Name          string `json:"name"`
}

// NewGoogleVerifier discovers the provider configuration of cfg.Issuer. Keys
// are fetched lazily on first use and cached by go-oidc.
func NewGoogleVerifier(ctx context.Context, cfg config.GoogleConfig) (*GoogleVerifier, error) {
	if strings.TrimSpace(cfg.ClientID) == "" {
		return nil, fmt.Errorf("GOOGLE_CLIENT_ID is required")
	}

	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover oidc provider: %w", err)
	}

	g := newGoogleVerifier(provider.Verifier(&oidc.Config{
		ClientID:          cfg.ClientID,
		SkipClientIDCheck: true,
	}), cfg.ClientID)

	if cfg.CodeExchangeEnabled() {
		g.oauth = &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		}
	}
	return g, nil
}

// The audience is checked here rather than by go-oidc so that a mismatch
// gets its own error.
func newGoogleVerifier(v *oidc.IDTokenVerifier, clientID string) *GoogleVerifier {
	return &GoogleVerifier{
		verifier: v,
		clientID: clientID,
	}
}

func (g *GoogleVerifier) CodeExchangeEnabled() bool {
	return g.oauth != nil
}

// Verify checks signature, issuer, expiry and audience of a Google ID token
// and returns the email and display name it carries.
func (g *GoogleVerifier) Verify(ctx context.Context, assertion string) (*model.VerifiedClaims, error) {
	assertion = strings.TrimSpace(assertion)
	if assertion == "" {
		return nil, fmt.Errorf("%w: empty token", ErrInvalidAssertion)
	}

	idToken, err := g.verifier.Verify(ctx, assertion)
	if err != nil {
		var expired *oidc.TokenExpiredError
		if errors.As(err, &expired) {
			return nil, fmt.Errorf("%w: at %s", ErrAssertionExpired, expired.Expiry)
		}
		if isTransient(ctx, err) {
			return nil, &ProviderError{Err: err}
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssertion, err)
	}

	if !slices.Contains(idToken.Audience, g.clientID) {
		return nil, ErrAudienceMismatch
	}

	var claims googleClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssertion, err)
	}
	if strings.TrimSpace(claims.Email) == "" {
		return nil, fmt.Errorf("%w: email claim missing", ErrInvalidAssertion)
	}
	if claims.EmailVerified != nil && !*claims.EmailVerified {
		return nil, fmt.Errorf("%w: email not verified", ErrInvalidAssertion)
	}

	return &model.VerifiedClaims{
		Email:       claims.Email,
		DisplayName: claims.Name,
	}, nil
}

// Exchange redeems an authorization code and returns the ID token from the
// token response.
func (g *GoogleVerifier) Exchange(ctx context.Context, code string) (string, error) {
	if g.oauth == nil {
		return "", ErrExchangeDisabled
	}

	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return "", fmt.Errorf("%w: code rejected: %s", ErrInvalidAssertion, retrieveErr.ErrorCode)
		}
		return "", &ProviderError{Err: err}
	}

	idToken, ok := token.Extra("id_token").(string)
	if !ok || idToken == "" {
		return "", fmt.Errorf("%w: token response has no id_token", ErrInvalidAssertion)
	}
	return idToken, nil
}

func isTransient(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
