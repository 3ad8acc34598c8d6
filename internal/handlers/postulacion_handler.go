package handlers

import (
	"net/http"

	"github.com/DapP256/trabajo-final-uai/internal/middleware"
	"github.com/DapP256/trabajo-final-uai/internal/models"
	"github.com/DapP256/trabajo-final-uai/internal/services"
	"github.com/DapP256/trabajo-final-uai/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type PostulacionHandler struct {
	*BaseHandler
	postulacionService services.PostulacionService
}

func NewPostulacionHandler(base *BaseHandler, postulacionService services.PostulacionService) *PostulacionHandler {
	return &PostulacionHandler{
		BaseHandler:        base,
		postulacionService: postulacionService,
	}
}

// RegisterRoutes mounts the postulacion endpoints. The static /seleccion
// segment is registered alongside /:id; gin resolves static segments first.
func (h *PostulacionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	postulaciones := rg.Group("/postulaciones")
	postulaciones.Use(middleware.RequireSession())
	{
		postulaciones.GET("", h.List)
		postulaciones.POST("", middleware.RequireRoles(models.UserRoleTrabajador), h.Create)
		postulaciones.PATCH("/seleccion", h.UpdateEstadoBulk)
		postulaciones.GET("/:id", h.GetByID)
		postulaciones.PATCH("/:id", h.UpdateEstado)
		postulaciones.DELETE("/:id", h.Delete)
	}
}

func (h *PostulacionHandler) Create(c *gin.Context) {
	session, ok := h.RequireSession(c)
	if !ok {
		return
	}

	var req dto.CreatePostulacionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	postulacion, err := h.postulacionService.Create(h.GetDB(c), session, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, postulacion)
}

func (h *PostulacionHandler) GetByID(c *gin.Context) {
	session, ok := h.RequireSession(c)
	if !ok {
		return
	}

	postulacion, err := h.postulacionService.GetByID(h.GetDB(c), session, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, postulacion)
}

func (h *PostulacionHandler) UpdateEstado(c *gin.Context) {
	session, ok := h.RequireSession(c)
	if !ok {
		return
	}

	var req dto.UpdatePostulacionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	postulacion, err := h.postulacionService.UpdateEstado(h.GetDB(c), session, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, postulacion)
}

// UpdateEstadoBulk handles the batched selection flow: every id the caller
// may touch moves to the requested estado in one request.
func (h *PostulacionHandler) UpdateEstadoBulk(c *gin.Context) {
	session, ok := h.RequireSession(c)
	if !ok {
		return
	}

	var req dto.BulkUpdatePostulacionesRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	updated, err := h.postulacionService.UpdateEstadoBulk(h.GetDB(c), session, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *PostulacionHandler) Delete(c *gin.Context) {
	session, ok := h.RequireSession(c)
	if !ok {
		return
	}

	if err := h.postulacionService.Delete(h.GetDB(c), session, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Postulación eliminada"})
}

func (h *PostulacionHandler) List(c *gin.Context) {
	session, ok := h.RequireSession(c)
	if !ok {
		return
	}

	var req dto.ListPostulacionesRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	postulaciones, err := h.postulacionService.List(h.GetDB(c), session, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, postulaciones)
}
