package handlers

import (
	"net/http"

	"github.com/DapP256/trabajo-final-uai/internal/middleware"
	"github.com/DapP256/trabajo-final-uai/internal/models"
	"github.com/DapP256/trabajo-final-uai/internal/services"
	"github.com/DapP256/trabajo-final-uai/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AvisoHandler struct {
	*BaseHandler
	avisoService services.AvisoService
}

func NewAvisoHandler(base *BaseHandler, avisoService services.AvisoService) *AvisoHandler {
	return &AvisoHandler{
		BaseHandler:  base,
		avisoService: avisoService,
	}
}

// RegisterRoutes mounts the aviso endpoints. Creation is limited to
// empresas (admins pass every role gate); reads go through the per-row
// visibility checks in the service.
func (h *AvisoHandler) RegisterRoutes(rg *gin.RouterGroup) {
	avisos := rg.Group("/avisos")
	avisos.Use(middleware.RequireSession())
	{
		avisos.GET("", h.List)
		avisos.POST("", middleware.RequireRoles(models.UserRoleEmpresa), h.Create)
		avisos.GET("/:id", h.GetByID)
		avisos.PATCH("/:id", h.Update)
		avisos.PATCH("/:id/publicar", middleware.RequireRoles(models.UserRoleEmpresa), h.Publicar)
		avisos.DELETE("/:id", h.Delete)
	}
}

func (h *AvisoHandler) Create(c *gin.Context) {
	session, ok := h.RequireSession(c)
	if !ok {
		return
	}

	var req dto.CreateAvisoRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	aviso, err := h.avisoService.Create(h.GetDB(c), session, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, aviso)
}

func (h *AvisoHandler) GetByID(c *gin.Context) {
	session, ok := h.RequireSession(c)
	if !ok {
		return
	}

	aviso, err := h.avisoService.GetByID(h.GetDB(c), session, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, aviso)
}

func (h *AvisoHandler) Update(c *gin.Context) {
	session, ok := h.RequireSession(c)
	if !ok {
		return
	}

	var req dto.UpdateAvisoRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	aviso, err := h.avisoService.Update(h.GetDB(c), session, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, aviso)
}

func (h *AvisoHandler) Publicar(c *gin.Context) {
	session, ok := h.RequireSession(c)
	if !ok {
		return
	}

	var req dto.PublicarAvisoRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	aviso, err := h.avisoService.Publicar(h.GetDB(c), session, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, aviso)
}

func (h *AvisoHandler) Delete(c *gin.Context) {
	session, ok := h.RequireSession(c)
	if !ok {
		return
	}

	if err := h.avisoService.Delete(h.GetDB(c), session, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Aviso eliminado"})
}

func (h *AvisoHandler) List(c *gin.Context) {
	session, ok := h.RequireSession(c)
	if !ok {
		return
	}

	var req dto.ListAvisosRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	avisos, err := h.avisoService.List(h.GetDB(c), session, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, avisos)
}
