package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hahn-software/backend/internal/config"
	"github.com/hahn-software/backend/internal/db"
	"github.com/hahn-software/backend/internal/model"
	"golang.org/x/crypto/bcrypt"
)

const (
	bearerPrefix      = "Bearer "
	minPasswordLength = 8
	// bcrypt rejects longer inputs.
	maxPasswordBytes = 72
)

var (
	ErrDuplicateIdentity  = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUnavailable        = errors.New("service unavailable")
	ErrInvalidInput       = errors.New("invalid input")
	ErrForbidden          = errors.New("forbidden")
	ErrWrongPassword      = errors.New("wrong password")
	ErrPasswordMismatch   = errors.New("passwords are not the same")
	ErrFederationDisabled = errors.New("federated login not configured")
	ErrMisconfigured      = errors.New("auth config invalid")
)

// CredentialStore is the durable record of users and issued access tokens.
// Implementations return db.ErrNotFound, db.ErrDuplicate and
// db.ErrUnavailable for the respective conditions.
type CredentialStore interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	CreateUserWithToken(ctx context.Context, user *model.User, tokenHash string) (*model.User, error)
	FindOrCreateUser(ctx context.Context, user *model.User) (*model.User, bool, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	SaveToken(ctx context.Context, userID int64, tokenHash string) error
	RotateAccessToken(ctx context.Context, userID int64, tokenHash string) (int64, error)
	GetTokenByHash(ctx context.Context, tokenHash string) (*model.TokenRecord, error)
	RevokeTokenByHash(ctx context.Context, tokenHash string) error
}

// IdentityVerifier validates a third-party identity assertion.
type IdentityVerifier interface {
	Verify(ctx context.Context, assertion string) (*model.VerifiedClaims, error)
}

// CodeExchanger trades an OAuth2 authorization code for an identity assertion.
type CodeExchanger interface {
	Exchange(ctx context.Context, code string) (string, error)
}

// unavailableError is implemented by verifier errors that mean the identity
// provider could not be reached.
type unavailableError interface {
	Unavailable() bool
}

type AuthService struct {
	store         CredentialStore
	codec         *TokenCodec
	verifier      IdentityVerifier
	exchanger     CodeExchanger
	logger        *slog.Logger
	opTimeout     time.Duration
	allowSignup   bool
	singleSession bool
	bcryptCost    int
	dummyHash     []byte
}

type AuthOption func(*AuthService)

// WithIdentityVerifier enables federated login.
func WithIdentityVerifier(v IdentityVerifier) AuthOption {
	return func(s *AuthService) {
		s.verifier = v
	}
}

// WithCodeExchanger enables the authorization-code flow.
func WithCodeExchanger(x CodeExchanger) AuthOption {
	return func(s *AuthService) {
		s.exchanger = x
	}
}

func WithLogger(logger *slog.Logger) AuthOption {
	return func(s *AuthService) {
		s.logger = logger
	}
}

func NewAuthService(store CredentialStore, codec *TokenCodec, cfg config.AuthConfig, opts ...AuthOption) (*AuthService, error) {
	if store == nil || codec == nil {
		return nil, fmt.Errorf("%w: store and codec are required", ErrMisconfigured)
	}

	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	if err != nil {
		return nil, err
	}

	opTimeout := cfg.OpTimeout
	if opTimeout <= 0 {
		opTimeout = 5 * time.Second
	}

	s := &AuthService{
		store:         store,
		codec:         codec,
		logger:        slog.Default(),
		opTimeout:     opTimeout,
		allowSignup:   cfg.AllowSignup,
		singleSession: cfg.SingleSession,
		bcryptCost:    cost,
		dummyHash:     dummy,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *AuthService) AllowSignup() bool {
	return s.allowSignup
}

func (s *AuthService) FederationEnabled() bool {
	return s.verifier != nil
}

func (s *AuthService) CodeExchangeEnabled() bool {
	return s.verifier != nil && s.exchanger != nil
}

// Register creates a USER account. Elevated roles are rejected with
// ErrForbidden; use RegisterPrivileged for those.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.TokenPair, error) {
	if !s.allowSignup {
		return nil, ErrForbidden
	}
	if req.Role != "" && req.Role != model.RoleUser {
		return nil, ErrForbidden
	}
	req.Role = model.RoleUser
	return s.register(ctx, req)
}

// RegisterPrivileged creates an account with any valid role. It must only be
// reachable from bootstrap code or an authorized administrative route.
func (s *AuthService) RegisterPrivileged(ctx context.Context, req model.RegisterRequest) (*model.TokenPair, error) {
	if req.Role == "" {
		req.Role = model.RoleUser
	}
	if !req.Role.Valid() {
		return nil, ErrInvalidInput
	}
	return s.register(ctx, req)
}

func (s *AuthService) register(ctx context.Context, req model.RegisterRequest) (*model.TokenPair, error) {
	email := normalizeEmail(req.Email)
	if !validEmail(email) || req.Password == "" || len(req.Password) > maxPasswordBytes {
		return nil, ErrInvalidInput
	}

	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	if _, err := s.store.GetUserByEmail(opCtx, email); err == nil {
		return nil, ErrDuplicateIdentity
	} else if !errors.Is(err, db.ErrNotFound) {
		return nil, storeError(err)
	}

	hash, err := hashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	pair, err := s.mintPair(user)
	if err != nil {
		return nil, err
	}

	created, err := s.store.CreateUserWithToken(opCtx, user, HashToken(pair.AccessToken))
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, ErrDuplicateIdentity
		}
		return nil, storeError(err)
	}

	s.logger.Info("user registered", "user_id", created.ID, "role", created.Role)
	return pair, nil
}

// Authenticate checks a password login. Unknown emails, federated-only
// accounts and wrong passwords all yield ErrInvalidCredentials after a bcrypt
// comparison of similar cost.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.TokenPair, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	user, err := s.store.GetUserByEmail(opCtx, email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, storeError(err)
	}
	if !user.HasPassword() {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.startSession(opCtx, user)
}

// FederatedAuthenticate logs in with a verified third-party assertion,
// provisioning a USER account without a local password on first use.
// Verifier failures are returned unchanged.
func (s *AuthService) FederatedAuthenticate(ctx context.Context, assertion string) (*model.TokenPair, error) {
	if s.verifier == nil {
		return nil, ErrFederationDisabled
	}

	verifyCtx, cancel := s.opContext(ctx)
	claims, err := s.verifier.Verify(verifyCtx, assertion)
	cancel()
	if err != nil {
		return nil, verifierError(err)
	}

	email := normalizeEmail(claims.Email)
	if !validEmail(email) {
		return nil, ErrInvalidCredentials
	}

	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	user, created, err := s.store.FindOrCreateUser(opCtx, &model.User{
		Email:     email,
		FirstName: strings.TrimSpace(claims.DisplayName),
		Role:      model.RoleUser,
	})
	if err != nil {
		return nil, storeError(err)
	}
	if created {
		s.logger.Info("federated user provisioned", "user_id", user.ID)
	}

	return s.startSession(opCtx, user)
}

// ExchangeGoogleCode runs the authorization-code flow and then logs in with
// the returned ID token.
func (s *AuthService) ExchangeGoogleCode(ctx context.Context, code string) (*model.TokenPair, error) {
	if !s.CodeExchangeEnabled() {
		return nil, ErrFederationDisabled
	}
	if strings.TrimSpace(code) == "" {
		return nil, ErrInvalidInput
	}

	exCtx, cancel := s.opContext(ctx)
	idToken, err := s.exchanger.Exchange(exCtx, code)
	cancel()
	if err != nil {
		return nil, verifierError(err)
	}
	return s.FederatedAuthenticate(ctx, idToken)
}

// Refresh mints a new access token for the holder of a valid refresh token
// and revokes every access token the user held before, atomically. The
// refresh token itself is returned unchanged.
//
// A missing or malformed header, and a refresh token that fails
// verification, return (nil, nil). A well-formed token naming an unknown user
// returns ErrNotFound.
func (s *AuthService) Refresh(ctx context.Context, authorization string) (*model.TokenPair, error) {
	refreshToken, ok := BearerToken(authorization)
	if !ok {
		return nil, nil
	}

	subject, err := s.codec.ExtractSubject(refreshToken)
	if err != nil {
		return nil, nil
	}

	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	user, err := s.store.GetUserByEmail(opCtx, subject)
	if err != nil {
		return nil, storeError(err)
	}

	verified, err := s.codec.VerifyRefresh(refreshToken)
	if err != nil {
		s.logger.Debug("refresh token rejected", "user_id", user.ID, "error", err)
		return nil, nil
	}
	if !strings.EqualFold(verified.Subject, user.Email) {
		return nil, nil
	}

	accessToken, err := s.codec.IssueAccess(user)
	if err != nil {
		return nil, err
	}

	revoked, err := s.store.RotateAccessToken(opCtx, user.ID, HashToken(accessToken))
	if err != nil {
		return nil, storeError(err)
	}

	s.logger.Info("access token refreshed", "user_id", user.ID, "revoked", revoked)
	return &model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout revokes the record of the given access token. Unknown tokens are
// ignored.
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	if strings.TrimSpace(accessToken) == "" {
		return nil
	}

	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	if err := s.store.RevokeTokenByHash(opCtx, HashToken(accessToken)); err != nil {
		return storeError(err)
	}
	return nil
}

// ResolvePrincipal verifies an access token, checks that its record is still
// valid and loads the owning user.
func (s *AuthService) ResolvePrincipal(ctx context.Context, accessToken string) (*model.Principal, error) {
	verified, err := s.codec.VerifyAccess(accessToken)
	if err != nil {
		return nil, err
	}

	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	record, err := s.store.GetTokenByHash(opCtx, HashToken(accessToken))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, storeError(err)
	}
	if !record.Valid() {
		return nil, ErrInvalidToken
	}

	user, err := s.store.GetUserByID(opCtx, record.UserID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, storeError(err)
	}
	if !strings.EqualFold(user.Email, verified.Subject) {
		return nil, ErrInvalidToken
	}

	return &model.Principal{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}

func (s *AuthService) WhoAmI(ctx context.Context, principal *model.Principal) (*model.UserResponse, error) {
	if principal == nil {
		return nil, ErrInvalidToken
	}

	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	user, err := s.store.GetUserByID(opCtx, principal.UserID)
	if err != nil {
		return nil, storeError(err)
	}
	resp := user.Response()
	return &resp, nil
}

// ChangePassword replaces the caller's password. Issued tokens stay valid.
func (s *AuthService) ChangePassword(ctx context.Context, principal *model.Principal, req model.ChangePasswordRequest) error {
	if principal == nil {
		return ErrInvalidToken
	}

	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	user, err := s.store.GetUserByID(opCtx, principal.UserID)
	if err != nil {
		return storeError(err)
	}
	if !user.HasPassword() {
		return ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrWrongPassword
	}
	if req.NewPassword != req.ConfirmationPassword {
		return ErrPasswordMismatch
	}
	if len(req.NewPassword) < minPasswordLength || len(req.NewPassword) > maxPasswordBytes {
		return ErrInvalidInput
	}

	hash, err := hashPassword(req.NewPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	if err := s.store.UpdatePassword(opCtx, user.ID, string(hash)); err != nil {
		return storeError(err)
	}

	s.logger.Info("password changed", "user_id", user.ID)
	return nil
}

func hashPassword(password string, cost int) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, ErrInvalidInput
	}
	return hash, err
}

// EnsureAdmin provisions the bootstrap administrator when configured. An
// existing account with the same email is left untouched.
func (s *AuthService) EnsureAdmin(ctx context.Context, cfg config.AdminConfig) error {
	if !cfg.Enabled() {
		return nil
	}

	_, err := s.RegisterPrivileged(ctx, model.RegisterRequest{
		FirstName: cfg.FirstName,
		LastName:  cfg.LastName,
		Email:     cfg.Email,
		Password:  cfg.Password,
		Role:      model.RoleAdmin,
	})
	if errors.Is(err, ErrDuplicateIdentity) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to provision admin: %w", err)
	}
	s.logger.Info("admin provisioned", "email", normalizeEmail(cfg.Email))
	return nil
}

// startSession issues a token pair for an authenticated user. With single
// session enabled every earlier access token is revoked in the same step.
func (s *AuthService) startSession(ctx context.Context, user *model.User) (*model.TokenPair, error) {
	pair, err := s.mintPair(user)
	if err != nil {
		return nil, err
	}

	hash := HashToken(pair.AccessToken)
	if s.singleSession {
		_, err = s.store.RotateAccessToken(ctx, user.ID, hash)
	} else {
		err = s.store.SaveToken(ctx, user.ID, hash)
	}
	if err != nil {
		return nil, storeError(err)
	}
	return pair, nil
}

func (s *AuthService) mintPair(user *model.User) (*model.TokenPair, error) {
	accessToken, err := s.codec.IssueAccess(user)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.codec.IssueRefresh(user)
	if err != nil {
		return nil, err
	}
	return &model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthService) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opTimeout)
}

func storeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, db.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, db.ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

func verifierError(err error) error {
	var u unavailableError
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &u) && u.Unavailable()) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

// BearerToken extracts the credential from an Authorization header value.
func BearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", false
	}
	return token, true
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	at := strings.IndexByte(email, '@')
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t\r\n")
}
