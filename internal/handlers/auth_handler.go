package handlers

import (
	"net/http"

	"github.com/DapP256/trabajo-final-uai/internal/auth"
	"github.com/DapP256/trabajo-final-uai/internal/middleware"
	"github.com/DapP256/trabajo-final-uai/internal/services"
	"github.com/DapP256/trabajo-final-uai/internal/services/dto"
	"github.com/DapP256/trabajo-final-uai/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	cookies     *auth.CookieWriter
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, cookies *auth.CookieWriter) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		cookies:     cookies,
	}
}

// RegisterRoutes mounts the authentication endpoints.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", middleware.RequireSession(), h.Me)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	user, payload, err := h.authService.Register(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.cookies.Attach(c.Writer, payload); err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		User:    user,
		Session: dto.SessionInfo{Token: payload.Token, IssuedAt: payload.IssuedAt},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	user, payload, err := h.authService.Login(db, &req)
	if err != nil {
		// No Set-Cookie on a failed login; the response is an error body
		// only.
		h.HandleServiceError(c, err)
		return
	}

	if err := h.cookies.Attach(c.Writer, payload); err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		User:    user,
		Session: dto.SessionInfo{Token: payload.Token, IssuedAt: payload.IssuedAt},
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	session, ok := h.RequireSession(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	user, err := h.authService.Me(db, session)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout clears the cookie unconditionally; there is no server-side session
// state to revoke.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.cookies.Clear(c.Writer)
	c.JSON(http.StatusOK, gin.H{"message": "Sesión cerrada"})
}
