package services

import (
	"github.com/DapP256/trabajo-final-uai/internal/auth"
	"github.com/DapP256/trabajo-final-uai/internal/logger"
	"github.com/DapP256/trabajo-final-uai/internal/models"
	"github.com/DapP256/trabajo-final-uai/internal/repositories"
	"github.com/DapP256/trabajo-final-uai/internal/services/dto"
	"github.com/DapP256/trabajo-final-uai/pkg/apperrors"

	"gorm.io/gorm"
)

type ReclamoService interface {
	Create(db *gorm.DB, session *auth.SessionPayload, req *dto.CreateReclamoRequest) (*models.Reclamo, error)
	GetByID(db *gorm.DB, session *auth.SessionPayload, id string) (*models.Reclamo, error)
	Update(db *gorm.DB, session *auth.SessionPayload, id string, req *dto.UpdateReclamoRequest) (*models.Reclamo, error)
	Delete(db *gorm.DB, session *auth.SessionPayload, id string) error
	List(db *gorm.DB, session *auth.SessionPayload, req *dto.ListReclamosRequest) ([]models.Reclamo, error)
}

type ReclamoServiceImpl struct {
	reclamoRepo repositories.ReclamoRepository
}

func NewReclamoService(reclamoRepo repositories.ReclamoRepository) ReclamoService {
	return &ReclamoServiceImpl{reclamoRepo: reclamoRepo}
}

// Create files a reclamo with the session user as reporter; an admin may
// file on another user's behalf. Access is re-checked against the persisted
// row and the insert undone best-effort when the check fails.
func (s *ReclamoServiceImpl) Create(db *gorm.DB, session *auth.SessionPayload, req *dto.CreateReclamoRequest) (*models.Reclamo, error) {
	usuarioID := session.User.ID
	if auth.IsAdmin(session) && req.UsuarioID != nil && *req.UsuarioID != "" {
		usuarioID = *req.UsuarioID
	}

	estado := "abierto"
	if req.Estado != nil && *req.Estado != "" && (auth.IsAdmin(session) || auth.IsEmpresa(session)) {
		estado = *req.Estado
	}

	reclamo := &models.Reclamo{
		UsuarioID:       usuarioID,
		NegocioID:       req.NegocioID,
		TrabajadorID:    req.TrabajadorID,
		AvisoID:         req.AvisoID,
		TituloServicio:  req.TituloServicio,
		CategoriaMotivo: req.CategoriaMotivo,
		Prioridad:       req.Prioridad,
		Descripcion:     req.Descripcion,
		Estado:          estado,
	}

	if err := s.reclamoRepo.Create(db, reclamo); err != nil {
		return nil, apperrors.StoreError(err, "Error creando reclamo")
	}

	if !auth.CanAccessReclamo(session, reclamo) {
		if err := s.reclamoRepo.Delete(db, reclamo.ID); err != nil {
			logger.Warn("rollback of unauthorized reclamo failed", "reclamo_id", reclamo.ID, "error", err.Error())
		}
		return nil, apperrors.ErrAccesoDenegado
	}

	return reclamo, nil
}

func (s *ReclamoServiceImpl) GetByID(db *gorm.DB, session *auth.SessionPayload, id string) (*models.Reclamo, error) {
	reclamo, err := s.findReclamo(db, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanAccessReclamo(session, reclamo) {
		return nil, apperrors.ErrAccesoDenegado
	}
	return reclamo, nil
}

// Update patches a reclamo. Estado transitions are reserved to businesses
// and admins; for other callers the field is dropped from the patch.
func (s *ReclamoServiceImpl) Update(db *gorm.DB, session *auth.SessionPayload, id string, req *dto.UpdateReclamoRequest) (*models.Reclamo, error) {
	reclamo, err := s.findReclamo(db, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanAccessReclamo(session, reclamo) {
		return nil, apperrors.ErrAccesoDenegado
	}

	fields := map[string]interface{}{}
	if req.TituloServicio != nil {
		fields["titulo_servicio"] = *req.TituloServicio
	}
	if req.CategoriaMotivo != nil {
		fields["categoria_motivo"] = *req.CategoriaMotivo
	}
	if req.Prioridad != nil {
		fields["prioridad"] = *req.Prioridad
	}
	if req.Descripcion != nil {
		fields["descripcion"] = *req.Descripcion
	}
	if req.NegocioID != nil {
		fields["negocio_id"] = *req.NegocioID
	}
	if req.TrabajadorID != nil {
		fields["trabajador_id"] = *req.TrabajadorID
	}
	if req.AvisoID != nil {
		fields["aviso_id"] = *req.AvisoID
	}
	if req.Estado != nil && (auth.IsAdmin(session) || auth.IsEmpresa(session)) {
		fields["estado"] = *req.Estado
	}

	if len(fields) == 0 {
		return reclamo, nil
	}

	updated, err := s.reclamoRepo.Update(db, id, fields)
	if err != nil {
		if apperrors.Is(err, repositories.ErrReclamoNotFound) {
			return nil, apperrors.ErrNotFound(err, "Reclamo no encontrado")
		}
		return nil, apperrors.StoreError(err, "Error actualizando reclamo")
	}
	return updated, nil
}

func (s *ReclamoServiceImpl) Delete(db *gorm.DB, session *auth.SessionPayload, id string) error {
	reclamo, err := s.findReclamo(db, id)
	if err != nil {
		return err
	}
	if !auth.CanAccessReclamo(session, reclamo) {
		return apperrors.ErrAccesoDenegado
	}
	if err := s.reclamoRepo.Delete(db, id); err != nil {
		return apperrors.StoreError(err, "Error eliminando reclamo")
	}
	return nil
}

// List scopes to rows the viewer participates in unless they are an admin.
func (s *ReclamoServiceImpl) List(db *gorm.DB, session *auth.SessionPayload, req *dto.ListReclamosRequest) ([]models.Reclamo, error) {
	criteria := repositories.ReclamoFilter{
		UsuarioID: req.UsuarioID,
		Estado:    req.Estado,
	}
	if !auth.IsAdmin(session) {
		criteria.ViewerID = session.User.ID
	}

	reclamos, err := s.reclamoRepo.List(db, criteria)
	if err != nil {
		return nil, apperrors.StoreError(err, "Error listando reclamos")
	}
	return reclamos, nil
}

func (s *ReclamoServiceImpl) findReclamo(db *gorm.DB, id string) (*models.Reclamo, error) {
	reclamo, err := s.reclamoRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrReclamoNotFound) {
			return nil, apperrors.ErrNotFound(err, "Reclamo no encontrado")
		}
		return nil, apperrors.StoreError(err, "Error obteniendo reclamo")
	}
	return reclamo, nil
}
