package handlers

import (
	"net/http"

	"github.com/DapP256/trabajo-final-uai/internal/middleware"
	"github.com/DapP256/trabajo-final-uai/internal/services"
	"github.com/DapP256/trabajo-final-uai/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReclamoHandler struct {
	*BaseHandler
	reclamoService services.ReclamoService
}

func NewReclamoHandler(base *BaseHandler, reclamoService services.ReclamoService) *ReclamoHandler {
	return &ReclamoHandler{
		BaseHandler:    base,
		reclamoService: reclamoService,
	}
}

// RegisterRoutes mounts the reclamo endpoints; any authenticated user may
// file one.
func (h *ReclamoHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reclamos := rg.Group("/reclamos")
	reclamos.Use(middleware.RequireSession())
	{
		reclamos.GET("", h.List)
		reclamos.POST("", h.Create)
		reclamos.GET("/:id", h.GetByID)
		reclamos.PATCH("/:id", h.Update)
		reclamos.DELETE("/:id", h.Delete)
	}
}

func (h *ReclamoHandler) Create(c *gin.Context) {
	session, ok := h.RequireSession(c)
	if !ok {
		return
	}

	var req dto.CreateReclamoRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	reclamo, err := h.reclamoService.Create(h.GetDB(c), session, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reclamo)
}

func (h *ReclamoHandler) GetByID(c *gin.Context) {
	session, ok := h.RequireSession(c)
	if !ok {
		return
	}

	reclamo, err := h.reclamoService.GetByID(h.GetDB(c), session, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reclamo)
}

func (h *ReclamoHandler) Update(c *gin.Context) {
	session, ok := h.RequireSession(c)
	if !ok {
		return
	}

	var req dto.UpdateReclamoRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	reclamo, err := h.reclamoService.Update(h.GetDB(c), session, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reclamo)
}

func (h *ReclamoHandler) Delete(c *gin.Context) {
	session, ok := h.RequireSession(c)
	if !ok {
		return
	}

	if err := h.reclamoService.Delete(h.GetDB(c), session, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reclamo eliminado"})
}

func (h *ReclamoHandler) List(c *gin.Context) {
	session, ok := h.RequireSession(c)
	if !ok {
		return
	}

	var req dto.ListReclamosRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	reclamos, err := h.reclamoService.List(h.GetDB(c), session, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reclamos)
}
