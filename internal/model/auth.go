package model

import "time"

type RegisterRequest struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      Role   `json:"role"`
}

type AuthenticationRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleRequest struct {
	IDToken string `json:"idToken"`
}

type GoogleCodeRequest struct {
	Code string `json:"code"`
}

type ChangePasswordRequest struct {
	CurrentPassword      string `json:"currentPassword"`
	NewPassword          string `json:"newPassword"`
	ConfirmationPassword string `json:"confirmationPassword"`
}

type AuthConfigResponse struct {
	AllowSignup         bool `json:"allowSignup"`
	GoogleEnabled       bool `json:"googleEnabled"`
	CodeExchangeEnabled bool `json:"codeExchangeEnabled"`
}

// TokenPair is returned once to the caller and never persisted.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type UserResponse struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
}

// Principal is the authenticated caller resolved from an access token.
type Principal struct {
	UserID int64
	Email  string
	Role   Role
}

type User struct {
	ID           int64
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword reports whether the account can log in with a local password.
// Federated-only accounts have none.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

func (u *User) Response() UserResponse {
	return UserResponse{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
	}
}

type TokenKind string

const TokenKindAccess TokenKind = "ACCESS"

// TokenRecord tracks one issued access token. Only Expired and Revoked
// change after creation, and only from false to true.
type TokenRecord struct {
	ID        int64
	UserID    int64
	TokenHash string
	Kind      TokenKind
	Expired   bool
	Revoked   bool
	CreatedAt time.Time
}

func (t *TokenRecord) Valid() bool {
	return !t.Expired && !t.Revoked
}

// VerifiedClaims are the identity facts extracted from a verified
// third-party assertion.
type VerifiedClaims struct {
	Email       string
	DisplayName string
}
