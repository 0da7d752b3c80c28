package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hahn-software/backend/internal/client"
	"github.com/hahn-software/backend/internal/model"
	"github.com/hahn-software/backend/internal/service"
)

const duplicateEmailMessage = "Email already exists!, Try Login"

// SessionService is the part of service.AuthService the HTTP layer calls.
type SessionService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.TokenPair, error)
	RegisterPrivileged(ctx context.Context, req model.RegisterRequest) (*model.TokenPair, error)
	Authenticate(ctx context.Context, email, password string) (*model.TokenPair, error)
	FederatedAuthenticate(ctx context.Context, idToken string) (*model.TokenPair, error)
	ExchangeGoogleCode(ctx context.Context, code string) (*model.TokenPair, error)
	Refresh(ctx context.Context, authorization string) (*model.TokenPair, error)
	Logout(ctx context.Context, accessToken string) error
	ResolvePrincipal(ctx context.Context, accessToken string) (*model.Principal, error)
	WhoAmI(ctx context.Context, principal *model.Principal) (*model.UserResponse, error)
	ChangePassword(ctx context.Context, principal *model.Principal, req model.ChangePasswordRequest) error
	AllowSignup() bool
	FederationEnabled() bool
	CodeExchangeEnabled() bool
}

type AuthHandler struct {
	svc          SessionService
	strictStatus bool
}

// NewAuthHandler builds the auth endpoints. With strictStatus, failed logins
// answer 401 instead of a generic 500.
func NewAuthHandler(svc SessionService, strictStatus bool) *AuthHandler {
	return &AuthHandler{svc: svc, strictStatus: strictStatus}
}

// Register godoc
// @Summary Register a new user
// @Description Public sign-up. Only the USER role may be requested; sign-up can be disabled with AUTH_ALLOW_SIGNUP.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "New account"
// @Success 200 {object} model.TokenPair
// @Failure 400 {object} model.CustomResponse
// @Failure 403 {object} model.CustomResponse
// @Failure 500 {object} model.CustomResponse
// @Failure 503 {object} model.CustomResponse
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeMessage(c, http.StatusBadRequest, "invalid request")
		return
	}

	pair, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		writeAuthError(c, err, h.strictStatus)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// Authenticate godoc
// @Summary Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.AuthenticationRequest true "Email and password"
// @Success 200 {object} model.TokenPair
// @Failure 400 {object} model.CustomResponse
// @Failure 401 {object} model.CustomResponse
// @Failure 500 {object} model.CustomResponse
// @Failure 503 {object} model.CustomResponse
// @Router /api/v1/auth/authenticate [post]
func (h *AuthHandler) Authenticate(c *gin.Context) {
	var req model.AuthenticationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeMessage(c, http.StatusBadRequest, "invalid request")
		return
	}

	pair, err := h.svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeAuthError(c, err, h.strictStatus)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// RefreshToken godoc
// @Summary Refresh access token
// @Description Reads the refresh token from "Authorization: Bearer". Every earlier access token of the user is revoked. The refresh token is returned unchanged. An absent or unusable refresh token yields 200 with an empty body.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.TokenPair
// @Failure 500 {object} model.CustomResponse
// @Failure 503 {object} model.CustomResponse
// @Router /api/v1/auth/refresh-token [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	pair, err := h.svc.Refresh(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		writeAuthError(c, err, h.strictStatus)
		return
	}
	if pair == nil {
		c.Status(http.StatusOK)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// Google godoc
// @Summary Login with a Google ID token
// @Description Creates a USER account on first login.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.GoogleRequest true "Google ID token"
// @Success 200 {object} model.TokenPair
// @Failure 400 {object} model.CustomResponse
// @Failure 401 {object} model.CustomResponse
// @Failure 404 {object} model.CustomResponse
// @Failure 500 {object} model.CustomResponse
// @Failure 503 {object} model.CustomResponse
// @Router /api/v1/auth/google [post]
func (h *AuthHandler) Google(c *gin.Context) {
	var req model.GoogleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IDToken == "" {
		writeMessage(c, http.StatusBadRequest, "invalid request")
		return
	}

	pair, err := h.svc.FederatedAuthenticate(c.Request.Context(), req.IDToken)
	if err != nil {
		writeAuthError(c, err, h.strictStatus)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// GoogleCode godoc
// @Summary Login with a Google authorization code
// @Description Available when GOOGLE_CLIENT_SECRET and GOOGLE_REDIRECT_URL are set.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.GoogleCodeRequest true "Authorization code"
// @Success 200 {object} model.TokenPair
// @Failure 400 {object} model.CustomResponse
// @Failure 401 {object} model.CustomResponse
// @Failure 404 {object} model.CustomResponse
// @Failure 500 {object} model.CustomResponse
// @Failure 503 {object} model.CustomResponse
// @Router /api/v1/auth/google/code [post]
func (h *AuthHandler) GoogleCode(c *gin.Context) {
	var req model.GoogleCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeMessage(c, http.StatusBadRequest, "invalid request")
		return
	}

	pair, err := h.svc.ExchangeGoogleCode(c.Request.Context(), req.Code)
	if err != nil {
		writeAuthError(c, err, h.strictStatus)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// Config godoc
// @Summary Get auth config
// @Description Tells clients which login flows are available.
// @Tags auth
// @Produce json
// @Success 200 {object} model.AuthConfigResponse
// @Router /api/v1/auth/config [get]
func (h *AuthHandler) Config(c *gin.Context) {
	c.JSON(http.StatusOK, model.AuthConfigResponse{
		AllowSignup:         h.svc.AllowSignup(),
		GoogleEnabled:       h.svc.FederationEnabled(),
		CodeExchangeEnabled: h.svc.CodeExchangeEnabled(),
	})
}

// Logout godoc
// @Summary Logout
// @Description Revokes the access token used for this request.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.AuthLogoutResponse
// @Failure 401 {object} model.CustomResponse
// @Failure 503 {object} model.CustomResponse
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context(), GetAccessToken(c)); err != nil {
		writeAuthError(c, err, h.strictStatus)
		return
	}
	c.JSON(http.StatusOK, model.AuthLogoutResponse{Status: "logged_out"})
}

func writeMessage(c *gin.Context, status int, message string) {
	c.JSON(status, model.CustomResponse{Message: message, Status: status})
}

func writeAuthError(c *gin.Context, err error, strict bool) {
	switch {
	case errors.Is(err, service.ErrDuplicateIdentity):
		writeMessage(c, http.StatusBadRequest, duplicateEmailMessage)
	case errors.Is(err, service.ErrInvalidInput):
		writeMessage(c, http.StatusBadRequest, "invalid input")
	case errors.Is(err, service.ErrWrongPassword):
		writeMessage(c, http.StatusBadRequest, "Wrong password")
	case errors.Is(err, service.ErrPasswordMismatch):
		writeMessage(c, http.StatusBadRequest, "Passwords are not the same")
	case errors.Is(err, service.ErrForbidden):
		writeMessage(c, http.StatusForbidden, "forbidden")
	case errors.Is(err, service.ErrFederationDisabled):
		writeMessage(c, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrUnavailable):
		writeMessage(c, http.StatusServiceUnavailable, "service unavailable")
	case strict && isAuthFailure(err):
		writeMessage(c, http.StatusUnauthorized, "unauthorized")
	default:
		if !isAuthFailure(err) {
			slog.Error("request failed", "path", c.FullPath(), "error", err)
		}
		writeMessage(c, http.StatusInternalServerError, "server error")
	}
}

func isAuthFailure(err error) bool {
	return errors.Is(err, service.ErrInvalidCredentials) ||
		errors.Is(err, service.ErrInvalidToken) ||
		errors.Is(err, service.ErrTokenExpired) ||
		errors.Is(err, client.ErrAudienceMismatch) ||
		errors.Is(err, client.ErrAssertionExpired) ||
		errors.Is(err, client.ErrInvalidAssertion)
}
