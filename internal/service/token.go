package service

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hahn-software/backend/internal/config"
	"github.com/hahn-software/backend/internal/model"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

type tokenClaims struct {
	Type string `json:"typ"`
	jwt.RegisteredClaims
}

// VerifiedToken is what a successful verification yields.
type VerifiedToken struct {
	Subject    string
	ValidUntil time.Time
}

// TokenCodec signs and verifies bearer tokens. Access and refresh tokens use
// separate secrets and carry a typ claim, so one cannot stand in for the other.
// It holds no mutable state after construction.
type TokenCodec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
	now           func() time.Time
}

func NewTokenCodec(cfg config.AuthConfig) (*TokenCodec, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMisconfigured, err)
	}
	return &TokenCodec{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		issuer:        cfg.Issuer,
		now:           time.Now,
	}, nil
}

func (c *TokenCodec) IssueAccess(user *model.User) (string, error) {
	return c.sign(user, tokenTypeAccess, c.accessSecret, c.accessTTL)
}

func (c *TokenCodec) IssueRefresh(user *model.User) (string, error) {
	return c.sign(user, tokenTypeRefresh, c.refreshSecret, c.refreshTTL)
}

func (c *TokenCodec) VerifyAccess(token string) (*VerifiedToken, error) {
	return c.verify(token, tokenTypeAccess, c.accessSecret)
}

func (c *TokenCodec) VerifyRefresh(token string) (*VerifiedToken, error) {
	return c.verify(token, tokenTypeRefresh, c.refreshSecret)
}

// ExtractSubject reads the subject without checking the signature or the
// validity window. The result must not be trusted until the token has been
// verified.
func (c *TokenCodec) ExtractSubject(token string) (string, error) {
	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", ErrInvalidToken
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func (c *TokenCodec) sign(user *model.User, typ string, secret []byte, ttl time.Duration) (string, error) {
	now := c.now()
	claims := tokenClaims{
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    c.issuer,
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (c *TokenCodec) verify(tokenStr, typ string, secret []byte) (*VerifiedToken, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.Type != typ || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &VerifiedToken{
		Subject:    claims.Subject,
		ValidUntil: claims.ExpiresAt.Time,
	}, nil
}

// HashToken is the form in which access tokens are stored.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
