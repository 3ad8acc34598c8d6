package handlers

import (
	"net/http"

	"github.com/DapP256/trabajo-final-uai/internal/middleware"
	"github.com/DapP256/trabajo-final-uai/internal/models"
	"github.com/DapP256/trabajo-final-uai/internal/services"
	"github.com/DapP256/trabajo-final-uai/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UsuarioHandler struct {
	*BaseHandler
	usuarioService services.UsuarioService
}

func NewUsuarioHandler(base *BaseHandler, usuarioService services.UsuarioService) *UsuarioHandler {
	return &UsuarioHandler{
		BaseHandler:    base,
		usuarioService: usuarioService,
	}
}

// RegisterRoutes mounts the admin user management group and the self-scoped
// profile endpoints.
func (h *UsuarioHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin/usuarios")
	admin.Use(middleware.RequireSession())
	admin.Use(middleware.RequireRoles(models.UserRoleAdministrador))
	{
		admin.GET("", h.List)
		admin.POST("", h.AdminCreate)
		admin.GET("/:id", h.GetByID)
		admin.PATCH("/:id", h.AdminUpdate)
		admin.DELETE("/:id", h.AdminDelete)
	}

	perfil := rg.Group("/perfil")
	perfil.Use(middleware.RequireSession())
	{
		perfil.GET("", h.GetPerfil)
		perfil.PATCH("", h.UpdatePerfil)
	}
}

// Admin-only endpoints. Role enforcement lives in the route group
// middleware, not here.

func (h *UsuarioHandler) AdminCreate(c *gin.Context) {
	var req dto.AdminCreateUsuarioRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.usuarioService.AdminCreate(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UsuarioHandler) AdminUpdate(c *gin.Context) {
	var req dto.AdminUpdateUsuarioRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.usuarioService.AdminUpdate(h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UsuarioHandler) AdminDelete(c *gin.Context) {
	if err := h.usuarioService.AdminDelete(h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Usuario eliminado"})
}

func (h *UsuarioHandler) GetByID(c *gin.Context) {
	user, err := h.usuarioService.GetByID(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UsuarioHandler) List(c *gin.Context) {
	var req dto.ListUsuariosRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	users, total, err := h.usuarioService.List(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"usuarios": users,
		"total":    total,
	})
}

// Self-scoped profile endpoints.

func (h *UsuarioHandler) GetPerfil(c *gin.Context) {
	session, ok := h.RequireSession(c)
	if !ok {
		return
	}

	user, err := h.usuarioService.GetByID(h.GetDB(c), session.User.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UsuarioHandler) UpdatePerfil(c *gin.Context) {
	session, ok := h.RequireSession(c)
	if !ok {
		return
	}

	var req dto.UpdatePerfilRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.usuarioService.UpdatePerfil(h.GetDB(c), session, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
