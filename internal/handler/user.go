package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hahn-software/backend/internal/model"
)

type UserHandler struct {
	svc          SessionService
	strictStatus bool
}

func NewUserHandler(svc SessionService, strictStatus bool) *UserHandler {
	return &UserHandler{svc: svc, strictStatus: strictStatus}
}

// WhoAmI godoc
// @Summary Get current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserResponse
// @Failure 401 {object} model.CustomResponse
// @Failure 503 {object} model.CustomResponse
// @Router /api/v1/users/whoami [get]
func (h *UserHandler) WhoAmI(c *gin.Context) {
	user, err := h.svc.WhoAmI(c.Request.Context(), GetPrincipal(c))
	if err != nil {
		writeAuthError(c, err, h.strictStatus)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ChangePassword godoc
// @Summary Change own password
// @Description Existing tokens stay valid.
// @Tags users
// @Accept json
// @Security BearerAuth
// @Param request body model.ChangePasswordRequest true "Current and new password"
// @Success 200
// @Failure 400 {object} model.CustomResponse
// @Failure 401 {object} model.CustomResponse
// @Failure 503 {object} model.CustomResponse
// @Router /api/v1/users/change-password [patch]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req model.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeMessage(c, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.svc.ChangePassword(c.Request.Context(), GetPrincipal(c), req); err != nil {
		writeAuthError(c, err, h.strictStatus)
		return
	}
	c.Status(http.StatusOK)
}

// ProvisionUser godoc
// @Summary Create an account with any role
// @Description Requires the user:provision permission (ADMIN).
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.RegisterRequest true "New account"
// @Success 200 {object} model.TokenPair
// @Failure 400 {object} model.CustomResponse
// @Failure 401 {object} model.CustomResponse
// @Failure 403 {object} model.CustomResponse
// @Failure 503 {object} model.CustomResponse
// @Router /api/v1/admin/users [post]
func (h *UserHandler) ProvisionUser(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeMessage(c, http.StatusBadRequest, "invalid request")
		return
	}

	pair, err := h.svc.RegisterPrivileged(c.Request.Context(), req)
	if err != nil {
		writeAuthError(c, err, h.strictStatus)
		return
	}
	c.JSON(http.StatusOK, pair)
}
