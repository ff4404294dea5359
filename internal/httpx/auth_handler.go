package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luu-sac/ceramics-api/internal/apperr"
	"github.com/luu-sac/ceramics-api/internal/user"
)

type AuthHandler struct {
	Svc *user.Service
}

func (h *AuthHandler) Register(api *gin.RouterGroup) {
	g := api.Group("/auth")
	g.POST("/register", h.register)
	g.POST("/login", h.login)
	g.POST("/forgot-password", h.forgotPassword)
	g.POST("/reset-password", h.resetPassword)
}

// register godoc
// @Summary  Register a new account
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body user.RegisterRequest true "registration payload"
// @Success  201 {object} Response{data=user.AuthResponse}
// @Router   /auth/register [post]
func (h *AuthHandler) register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.BadRequest("invalid json"))
		return
	}
	res, err := h.Svc.Register(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, "registration successful", res)
}

// login godoc
// @Summary  Log in with email and password
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body user.LoginRequest true "credentials"
// @Success  200 {object} Response{data=user.AuthResponse}
// @Router   /auth/login [post]
func (h *AuthHandler) login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.BadRequest("invalid json"))
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "login successful", res)
}

func (h *AuthHandler) forgotPassword(c *gin.Context) {
	var req user.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		fail(c, apperr.BadRequest("email is required"))
		return
	}
	if err := h.Svc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "reset email sent", nil)
}

func (h *AuthHandler) resetPassword(c *gin.Context) {
	var req user.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.BadRequest("invalid json"))
		return
	}
	if err := h.Svc.ResetPassword(c.Request.Context(), req); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "password reset successful", nil)
}
