package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hahn-software/backend/internal/config"
	"github.com/hahn-software/backend/internal/db"
	"github.com/hahn-software/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory CredentialStore. RotateAccessToken holds the
// lock for the whole revoke-then-insert step.
type fakeStore struct {
	mu          sync.Mutex
	users       map[int64]*model.User
	tokens      []*model.TokenRecord
	nextUserID  int64
	nextTokenID int64
	failWith    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[int64]*model.User{}}
}

func (f *fakeStore) findByEmail(email string) *model.User {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u
		}
	}
	return nil
}

func (f *fakeStore) insertUser(user *model.User) *model.User {
	f.nextUserID++
	created := *user
	created.ID = f.nextUserID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.users[created.ID] = &created
	copied := created
	return &copied
}

func (f *fakeStore) insertToken(userID int64, hash string) error {
	for _, t := range f.tokens {
		if t.TokenHash == hash {
			return db.ErrDuplicate
		}
	}
	f.nextTokenID++
	f.tokens = append(f.tokens, &model.TokenRecord{
		ID:        f.nextTokenID,
		UserID:    userID,
		TokenHash: hash,
		Kind:      model.TokenKindAccess,
		CreatedAt: time.Now(),
	})
	return nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	u := f.findByEmail(email)
	if u == nil {
		return nil, db.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeStore) GetUserByID(_ context.Context, userID int64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeStore) CreateUserWithToken(_ context.Context, user *model.User, tokenHash string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	if f.findByEmail(user.Email) != nil {
		return nil, db.ErrDuplicate
	}
	created := f.insertUser(user)
	if err := f.insertToken(created.ID, tokenHash); err != nil {
		delete(f.users, created.ID)
		return nil, err
	}
	return created, nil
}

func (f *fakeStore) FindOrCreateUser(_ context.Context, user *model.User) (*model.User, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, false, f.failWith
	}
	if u := f.findByEmail(user.Email); u != nil {
		copied := *u
		return &copied, false, nil
	}
	return f.insertUser(user), true, nil
}

func (f *fakeStore) UpdatePassword(_ context.Context, userID int64, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return db.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeStore) SaveToken(_ context.Context, userID int64, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	return f.insertToken(userID, tokenHash)
}

func (f *fakeStore) RotateAccessToken(_ context.Context, userID int64, tokenHash string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return 0, f.failWith
	}
	if _, ok := f.users[userID]; !ok {
		return 0, db.ErrNotFound
	}
	var revoked int64
	for _, t := range f.tokens {
		if t.UserID == userID && t.Valid() {
			t.Expired = true
			t.Revoked = true
			revoked++
		}
	}
	return revoked, f.insertToken(userID, tokenHash)
}

func (f *fakeStore) GetTokenByHash(_ context.Context, tokenHash string) (*model.TokenRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tokens {
		if t.TokenHash == tokenHash {
			copied := *t
			return &copied, nil
		}
	}
	return nil, db.ErrNotFound
}

func (f *fakeStore) RevokeTokenByHash(_ context.Context, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tokens {
		if t.TokenHash == tokenHash {
			t.Expired = true
			t.Revoked = true
		}
	}
	return nil
}

func (f *fakeStore) userCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

func (f *fakeStore) tokensFor(userID int64) []model.TokenRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.TokenRecord
	for _, t := range f.tokens {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out
}

func validCount(records []model.TokenRecord) int {
	n := 0
	for _, r := range records {
		if r.Valid() {
			n++
		}
	}
	return n
}

type fakeVerifier struct {
	claims map[string]*model.VerifiedClaims
	err    error
}

func (v *fakeVerifier) Verify(_ context.Context, assertion string) (*model.VerifiedClaims, error) {
	if v.err != nil {
		return nil, v.err
	}
	claims, ok := v.claims[assertion]
	if !ok {
		return nil, errors.New("unknown assertion")
	}
	return claims, nil
}

type fakeExchanger struct {
	idTokens map[string]string
}

func (x *fakeExchanger) Exchange(_ context.Context, code string) (string, error) {
	idToken, ok := x.idTokens[code]
	if !ok {
		return "", errors.New("bad code")
	}
	return idToken, nil
}

type providerDownError struct{}

func (providerDownError) Error() string     { return "jwks fetch failed" }
func (providerDownError) Unavailable() bool { return true }

func newTestService(t *testing.T, mutate func(*config.AuthConfig), opts ...AuthOption) (*AuthService, *fakeStore) {
	t.Helper()
	cfg := testAuthConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	codec, err := NewTokenCodec(cfg)
	require.NoError(t, err)
	store := newFakeStore()
	svc, err := NewAuthService(store, codec, cfg, opts...)
	require.NoError(t, err)
	return svc, store
}

func registerUser(t *testing.T, svc *AuthService, email, password string) *model.TokenPair {
	t.Helper()
	pair, err := svc.Register(context.Background(), model.RegisterRequest{
		FirstName: "Ann",
		LastName:  "Lee",
		Email:     email,
		Password:  password,
	})
	require.NoError(t, err)
	return pair
}

func TestRegisterPersistsUserAndOneValidToken(t *testing.T) {
	svc, store := newTestService(t, nil)

	pair := registerUser(t, svc, "A@X.com", "pw")
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	require.Equal(t, 1, store.userCount())
	user, err := store.GetUserByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEqual(t, "pw", user.PasswordHash)

	records := store.tokensFor(user.ID)
	require.Len(t, records, 1)
	assert.True(t, records[0].Valid())
	assert.Equal(t, HashToken(pair.AccessToken), records[0].TokenHash)
}

func TestRegisterDuplicateIdentity(t *testing.T) {
	svc, store := newTestService(t, nil)
	registerUser(t, svc, "a@x.com", "pw")

	for _, email := range []string{"a@x.com", "A@X.COM", "  a@X.com "} {
		_, err := svc.Register(context.Background(), model.RegisterRequest{Email: email, Password: "other"})
		assert.ErrorIs(t, err, ErrDuplicateIdentity, email)
	}

	assert.Equal(t, 1, store.userCount())
	assert.Len(t, store.tokensFor(1), 1)
}

func TestRegisterRejectsElevatedRoleAndDisabledSignup(t *testing.T) {
	svc, store := newTestService(t, nil)
	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Email:    "boss@x.com",
		Password: "pw",
		Role:     model.RoleAdmin,
	})
	require.ErrorIs(t, err, ErrForbidden)

	closed, _ := newTestService(t, func(c *config.AuthConfig) { c.AllowSignup = false })
	_, err = closed.Register(context.Background(), model.RegisterRequest{Email: "a@x.com", Password: "pw"})
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Register(context.Background(), model.RegisterRequest{Email: "not-an-email", Password: "pw"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(context.Background(), model.RegisterRequest{Email: "a@x.com", Password: strings.Repeat("p", 73)})
	require.ErrorIs(t, err, ErrInvalidInput)

	assert.Equal(t, 0, store.userCount())
}

func TestRegisterPrivilegedAcceptsElevatedRole(t *testing.T) {
	svc, store := newTestService(t, func(c *config.AuthConfig) { c.AllowSignup = false })

	_, err := svc.RegisterPrivileged(context.Background(), model.RegisterRequest{
		Email:    "boss@x.com",
		Password: "pw",
		Role:     model.RoleManager,
	})
	require.NoError(t, err)

	user, err := store.GetUserByEmail(context.Background(), "boss@x.com")
	require.NoError(t, err)
	assert.Equal(t, model.RoleManager, user.Role)

	_, err = svc.RegisterPrivileged(context.Background(), model.RegisterRequest{
		Email:    "x@x.com",
		Password: "pw",
		Role:     model.Role("ROOT"),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAuthenticateIsCaseInsensitiveAndKeepsOtherSessions(t *testing.T) {
	svc, store := newTestService(t, nil)
	registered := registerUser(t, svc, "a@x.com", "pw")

	pair, err := svc.Authenticate(context.Background(), "A@X.com", "pw")
	require.NoError(t, err)
	assert.NotEqual(t, registered.AccessToken, pair.AccessToken)

	records := store.tokensFor(1)
	require.Len(t, records, 2)
	assert.Equal(t, 2, validCount(records))

	for _, token := range []string{registered.AccessToken, pair.AccessToken} {
		principal, err := svc.ResolvePrincipal(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, int64(1), principal.UserID)
	}
}

func TestAuthenticateSingleSessionRevokesEarlierTokens(t *testing.T) {
	svc, store := newTestService(t, func(c *config.AuthConfig) { c.SingleSession = true })
	registered := registerUser(t, svc, "a@x.com", "pw")

	_, err := svc.Authenticate(context.Background(), "a@x.com", "pw")
	require.NoError(t, err)

	assert.Equal(t, 1, validCount(store.tokensFor(1)))
	_, err = svc.ResolvePrincipal(context.Background(), registered.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticateFailures(t *testing.T) {
	verifier := &fakeVerifier{claims: map[string]*model.VerifiedClaims{
		"g-token": {Email: "g@x.com", DisplayName: "Gina"},
	}}
	svc, store := newTestService(t, nil, WithIdentityVerifier(verifier))
	registerUser(t, svc, "a@x.com", "pw")
	_, err := svc.FederatedAuthenticate(context.Background(), "g-token")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "wrong-password", email: "a@x.com", password: "nope"},
		{name: "unknown-email", email: "nobody@x.com", password: "pw"},
		{name: "federated-only", email: "g@x.com", password: ""},
		{name: "federated-only-any-password", email: "g@x.com", password: "pw"},
		{name: "empty-email", email: "", password: "pw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authenticate(context.Background(), tt.email, tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}

	assert.Len(t, store.tokensFor(1), 1)
}

func TestAuthenticateStoreUnavailable(t *testing.T) {
	svc, store := newTestService(t, nil)
	store.failWith = db.ErrUnavailable

	_, err := svc.Authenticate(context.Background(), "a@x.com", "pw")
	require.ErrorIs(t, err, ErrUnavailable)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRevokesAllPriorTokens(t *testing.T) {
	svc, store := newTestService(t, nil)
	registered := registerUser(t, svc, "a@x.com", "pw")
	for i := 0; i < 2; i++ {
		_, err := svc.Authenticate(context.Background(), "a@x.com", "pw")
		require.NoError(t, err)
	}
	require.Equal(t, 3, validCount(store.tokensFor(1)))

	pair, err := svc.Refresh(context.Background(), "Bearer "+registered.RefreshToken)
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.Equal(t, registered.RefreshToken, pair.RefreshToken)

	records := store.tokensFor(1)
	require.Len(t, records, 4)
	for _, r := range records[:3] {
		assert.True(t, r.Expired)
		assert.True(t, r.Revoked)
	}
	assert.True(t, records[3].Valid())
	assert.Equal(t, HashToken(pair.AccessToken), records[3].TokenHash)

	_, err = svc.ResolvePrincipal(context.Background(), registered.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	principal, err := svc.ResolvePrincipal(context.Background(), pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", principal.Email)
}

func TestRefreshSilentlyIgnoresBadRequests(t *testing.T) {
	svc, store := newTestService(t, nil)
	registered := registerUser(t, svc, "a@x.com", "pw")

	expiredCodec := newTestCodec(t, time.Now().Add(-30*24*time.Hour))
	expired, err := expiredCodec.IssueRefresh(&model.User{Email: "a@x.com"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing", header: ""},
		{name: "basic-scheme", header: "Basic YTpi"},
		{name: "lowercase-scheme", header: "bearer " + registered.RefreshToken},
		{name: "empty-bearer", header: "Bearer "},
		{name: "garbage", header: "Bearer not-a-jwt"},
		{name: "access-token", header: "Bearer " + registered.AccessToken},
		{name: "expired", header: "Bearer " + expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair, err := svc.Refresh(context.Background(), tt.header)
			assert.NoError(t, err)
			assert.Nil(t, pair)
		})
	}

	records := store.tokensFor(1)
	require.Len(t, records, 1)
	assert.True(t, records[0].Valid())
}

func TestRefreshUnknownUser(t *testing.T) {
	svc, _ := newTestService(t, nil)

	token, err := svc.codec.IssueRefresh(&model.User{Email: "ghost@x.com"})
	require.NoError(t, err)

	pair, err := svc.Refresh(context.Background(), "Bearer "+token)
	assert.Nil(t, pair)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestConcurrentRefreshLeavesOneValidToken(t *testing.T) {
	svc, store := newTestService(t, nil)
	registered := registerUser(t, svc, "a@x.com", "pw")

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pair, err := svc.Refresh(context.Background(), "Bearer "+registered.RefreshToken)
			if err == nil && pair == nil {
				err = errors.New("refresh returned no pair")
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	records := store.tokensFor(1)
	assert.Len(t, records, workers+1)
	assert.Equal(t, 1, validCount(records))
}

func TestFederatedAuthenticateProvisionsOnce(t *testing.T) {
	verifier := &fakeVerifier{claims: map[string]*model.VerifiedClaims{
		"g-token": {Email: "G@X.com", DisplayName: "Gina Gee"},
	}}
	svc, store := newTestService(t, nil, WithIdentityVerifier(verifier))

	first, err := svc.FederatedAuthenticate(context.Background(), "g-token")
	require.NoError(t, err)
	second, err := svc.FederatedAuthenticate(context.Background(), "g-token")
	require.NoError(t, err)
	assert.NotEqual(t, first.AccessToken, second.AccessToken)

	require.Equal(t, 1, store.userCount())
	user, err := store.GetUserByEmail(context.Background(), "g@x.com")
	require.NoError(t, err)
	assert.Equal(t, "g@x.com", user.Email)
	assert.Equal(t, "Gina Gee", user.FirstName)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.False(t, user.HasPassword())
	assert.Equal(t, 2, validCount(store.tokensFor(user.ID)))
}

func TestFederatedAuthenticateLinksExistingAccount(t *testing.T) {
	verifier := &fakeVerifier{claims: map[string]*model.VerifiedClaims{
		"g-token": {Email: "a@x.com", DisplayName: "Someone Else"},
	}}
	svc, store := newTestService(t, nil, WithIdentityVerifier(verifier))
	registerUser(t, svc, "a@x.com", "pw")

	_, err := svc.FederatedAuthenticate(context.Background(), "g-token")
	require.NoError(t, err)

	require.Equal(t, 1, store.userCount())
	user, err := store.GetUserByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Ann", user.FirstName)
	assert.True(t, user.HasPassword())
}

func TestFederatedAuthenticateVerifierFailures(t *testing.T) {
	errAudience := errors.New("audience mismatch")

	svc, store := newTestService(t, nil, WithIdentityVerifier(&fakeVerifier{err: errAudience}))
	_, err := svc.FederatedAuthenticate(context.Background(), "g-token")
	require.ErrorIs(t, err, errAudience)
	assert.Equal(t, 0, store.userCount())

	down, store := newTestService(t, nil, WithIdentityVerifier(&fakeVerifier{err: providerDownError{}}))
	_, err = down.FederatedAuthenticate(context.Background(), "g-token")
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 0, store.userCount())

	disabled, _ := newTestService(t, nil)
	_, err = disabled.FederatedAuthenticate(context.Background(), "g-token")
	require.ErrorIs(t, err, ErrFederationDisabled)
}

func TestExchangeGoogleCode(t *testing.T) {
	verifier := &fakeVerifier{claims: map[string]*model.VerifiedClaims{
		"g-token": {Email: "g@x.com", DisplayName: "Gina"},
	}}
	exchanger := &fakeExchanger{idTokens: map[string]string{"code-1": "g-token"}}
	svc, store := newTestService(t, nil, WithIdentityVerifier(verifier), WithCodeExchanger(exchanger))

	pair, err := svc.ExchangeGoogleCode(context.Background(), "code-1")
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.Equal(t, 1, store.userCount())

	_, err = svc.ExchangeGoogleCode(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidInput)

	noExchange, _ := newTestService(t, nil, WithIdentityVerifier(verifier))
	_, err = noExchange.ExchangeGoogleCode(context.Background(), "code-1")
	require.ErrorIs(t, err, ErrFederationDisabled)
}

func TestLogoutRevokesPresentedToken(t *testing.T) {
	svc, store := newTestService(t, nil)
	registered := registerUser(t, svc, "a@x.com", "pw")
	other, err := svc.Authenticate(context.Background(), "a@x.com", "pw")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), registered.AccessToken))
	require.NoError(t, svc.Logout(context.Background(), "unknown-token"))

	_, err = svc.ResolvePrincipal(context.Background(), registered.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.ResolvePrincipal(context.Background(), other.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, 1, validCount(store.tokensFor(1)))
}

func TestResolvePrincipalRejectsUnknownTokens(t *testing.T) {
	svc, _ := newTestService(t, nil)
	registerUser(t, svc, "a@x.com", "pw")

	unrecorded, err := svc.codec.IssueAccess(&model.User{Email: "a@x.com"})
	require.NoError(t, err)

	_, err = svc.ResolvePrincipal(context.Background(), unrecorded)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.ResolvePrincipal(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestWhoAmI(t *testing.T) {
	svc, _ := newTestService(t, nil)
	pair := registerUser(t, svc, "a@x.com", "pw")

	principal, err := svc.ResolvePrincipal(context.Background(), pair.AccessToken)
	require.NoError(t, err)

	resp, err := svc.WhoAmI(context.Background(), principal)
	require.NoError(t, err)
	assert.Equal(t, model.UserResponse{
		FirstName: "Ann",
		LastName:  "Lee",
		Email:     "a@x.com",
		Role:      model.RoleUser,
	}, *resp)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestService(t, nil)
	pair := registerUser(t, svc, "a@x.com", "old-password")
	principal, err := svc.ResolvePrincipal(context.Background(), pair.AccessToken)
	require.NoError(t, err)

	tests := []struct {
		name string
		req  model.ChangePasswordRequest
		want error
	}{
		{
			name: "wrong-current",
			req:  model.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "new-password", ConfirmationPassword: "new-password"},
			want: ErrWrongPassword,
		},
		{
			name: "mismatch",
			req:  model.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password", ConfirmationPassword: "new-passw0rd"},
			want: ErrPasswordMismatch,
		},
		{
			name: "too-short",
			req:  model.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "short", ConfirmationPassword: "short"},
			want: ErrInvalidInput,
		},
		{
			name: "too-long",
			req:  model.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: strings.Repeat("p", 73), ConfirmationPassword: strings.Repeat("p", 73)},
			want: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ChangePassword(context.Background(), principal, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	require.NoError(t, svc.ChangePassword(context.Background(), principal, model.ChangePasswordRequest{
		CurrentPassword:      "old-password",
		NewPassword:          "new-password",
		ConfirmationPassword: "new-password",
	}))

	_, err = svc.Authenticate(context.Background(), "a@x.com", "old-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(context.Background(), "a@x.com", "new-password")
	assert.NoError(t, err)

	_, err = svc.ResolvePrincipal(context.Background(), pair.AccessToken)
	assert.NoError(t, err)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	svc, store := newTestService(t, func(c *config.AuthConfig) { c.AllowSignup = false })
	admin := config.AdminConfig{
		Email:     "Admin@X.com",
		Password:  "admin-password",
		FirstName: "Admin",
		LastName:  "Admin",
	}

	require.NoError(t, svc.EnsureAdmin(context.Background(), admin))
	require.NoError(t, svc.EnsureAdmin(context.Background(), admin))
	require.NoError(t, svc.EnsureAdmin(context.Background(), config.AdminConfig{}))

	require.Equal(t, 1, store.userCount())
	user, err := store.GetUserByEmail(context.Background(), "admin@x.com")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
}

func TestBearerToken(t *testing.T) {
	token, ok := BearerToken("Bearer abc.def.ghi")
	assert.True(t, ok)
	assert.Equal(t, "abc.def.ghi", token)

	for _, header := range []string{"", "Bearer", "Bearer   ", "Token abc"} {
		_, ok := BearerToken(header)
		assert.False(t, ok, header)
	}
}
