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

type AvisoService interface {
	Create(db *gorm.DB, session *auth.SessionPayload, req *dto.CreateAvisoRequest) (*models.Aviso, error)
	GetByID(db *gorm.DB, session *auth.SessionPayload, id string) (*models.Aviso, error)
	Update(db *gorm.DB, session *auth.SessionPayload, id string, req *dto.UpdateAvisoRequest) (*models.Aviso, error)
	Publicar(db *gorm.DB, session *auth.SessionPayload, id string, req *dto.PublicarAvisoRequest) (*models.Aviso, error)
	Delete(db *gorm.DB, session *auth.SessionPayload, id string) error
	List(db *gorm.DB, session *auth.SessionPayload, req *dto.ListAvisosRequest) ([]models.Aviso, error)
}

type AvisoServiceImpl struct {
	avisoRepo repositories.AvisoRepository
}

func NewAvisoService(avisoRepo repositories.AvisoRepository) AvisoService {
	return &AvisoServiceImpl{avisoRepo: avisoRepo}
}

// Create inserts a new aviso owned by the caller. An admin may set empresa_id
// to post on a business's behalf; for an empresa caller the body's empresa_id
// is ignored and the session id wins.
func (s *AvisoServiceImpl) Create(db *gorm.DB, session *auth.SessionPayload, req *dto.CreateAvisoRequest) (*models.Aviso, error) {
	empresaID := session.User.ID
	if auth.IsAdmin(session) && req.EmpresaID != nil && *req.EmpresaID != "" {
		empresaID = *req.EmpresaID
	}

	estado := models.AvisoEstadoBorrador
	if req.Estado != nil && *req.Estado != "" {
		estado = models.AvisoEstado(*req.Estado)
	}

	aviso := &models.Aviso{
		EmpresaID:      empresaID,
		Titulo:         req.Titulo,
		Descripcion:    req.Descripcion,
		Ciudad:         req.Ciudad,
		CP:             req.CP,
		Salario:        req.Salario,
		TipoJornada:    req.TipoJornada,
		Requisitos:     req.Requisitos,
		FechaLimite:    req.FechaLimite,
		Horario:        req.Horario,
		Distancia:      req.Distancia,
		Telefono:       req.Telefono,
		CorreoContacto: req.CorreoContacto,
		Estado:         estado,
	}

	if err := s.avisoRepo.Create(db, aviso); err != nil {
		return nil, apperrors.StoreError(err, "Error creando aviso")
	}

	// Ownership is checked against the persisted row; if the insert produced
	// something the caller may not manage, undo it best-effort.
	if !auth.CanManageAviso(session, aviso) {
		if err := s.avisoRepo.Delete(db, aviso.ID); err != nil {
			logger.Warn("rollback of unauthorized aviso failed", "aviso_id", aviso.ID, "error", err.Error())
		}
		return nil, apperrors.ErrAccesoDenegado
	}

	return aviso, nil
}

func (s *AvisoServiceImpl) GetByID(db *gorm.DB, session *auth.SessionPayload, id string) (*models.Aviso, error) {
	aviso, err := s.avisoRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAvisoNotFound) {
			return nil, apperrors.ErrNotFound(err, "Aviso no encontrado")
		}
		return nil, apperrors.StoreError(err, "Error obteniendo aviso")
	}
	if !auth.CanViewAviso(session, aviso) {
		return nil, apperrors.ErrAccesoDenegado
	}
	return aviso, nil
}

// Update applies a partial patch. Estado through this path is admin-only;
// for everyone else the field is silently dropped rather than rejected.
func (s *AvisoServiceImpl) Update(db *gorm.DB, session *auth.SessionPayload, id string, req *dto.UpdateAvisoRequest) (*models.Aviso, error) {
	aviso, err := s.avisoRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAvisoNotFound) {
			return nil, apperrors.ErrNotFound(err, "Aviso no encontrado")
		}
		return nil, apperrors.StoreError(err, "Error obteniendo aviso")
	}
	if !auth.CanManageAviso(session, aviso) {
		return nil, apperrors.ErrAccesoDenegado
	}

	fields := map[string]interface{}{}
	if req.Titulo != nil {
		fields["titulo"] = *req.Titulo
	}
	if req.Descripcion != nil {
		fields["descripcion"] = *req.Descripcion
	}
	if req.Ciudad != nil {
		fields["ciudad"] = *req.Ciudad
	}
	if req.CP != nil {
		fields["cp"] = *req.CP
	}
	if req.Salario != nil {
		fields["salario"] = *req.Salario
	}
	if req.TipoJornada != nil {
		fields["tipo_jornada"] = *req.TipoJornada
	}
	if req.Requisitos != nil {
		fields["requisitos"] = *req.Requisitos
	}
	if req.FechaLimite != nil {
		fields["fecha_limite"] = *req.FechaLimite
	}
	if req.Horario != nil {
		fields["horario"] = *req.Horario
	}
	if req.Distancia != nil {
		fields["distancia"] = *req.Distancia
	}
	if req.Telefono != nil {
		fields["telefono"] = *req.Telefono
	}
	if req.CorreoContacto != nil {
		fields["correo_contacto"] = *req.CorreoContacto
	}
	if req.Estado != nil && auth.IsAdmin(session) {
		fields["estado"] = *req.Estado
	}

	if len(fields) == 0 {
		return aviso, nil
	}

	updated, err := s.avisoRepo.Update(db, id, fields)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAvisoNotFound) {
			return nil, apperrors.ErrNotFound(err, "Aviso no encontrado")
		}
		return nil, apperrors.StoreError(err, "Error actualizando aviso")
	}
	return updated, nil
}

// Publicar is the dedicated estado transition, open to the owning empresa
// (unlike estado through the general update path).
func (s *AvisoServiceImpl) Publicar(db *gorm.DB, session *auth.SessionPayload, id string, req *dto.PublicarAvisoRequest) (*models.Aviso, error) {
	aviso, err := s.avisoRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAvisoNotFound) {
			return nil, apperrors.ErrNotFound(err, "Aviso no encontrado")
		}
		return nil, apperrors.StoreError(err, "Error obteniendo aviso")
	}
	if !auth.CanManageAviso(session, aviso) {
		return nil, apperrors.ErrAccesoDenegado
	}

	updated, err := s.avisoRepo.Update(db, id, map[string]interface{}{"estado": req.Estado})
	if err != nil {
		return nil, apperrors.StoreError(err, "Error actualizando aviso")
	}
	return updated, nil
}

func (s *AvisoServiceImpl) Delete(db *gorm.DB, session *auth.SessionPayload, id string) error {
	aviso, err := s.avisoRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAvisoNotFound) {
			return apperrors.ErrNotFound(err, "Aviso no encontrado")
		}
		return apperrors.StoreError(err, "Error obteniendo aviso")
	}
	if !auth.CanManageAviso(session, aviso) {
		return apperrors.ErrAccesoDenegado
	}
	if err := s.avisoRepo.Delete(db, id); err != nil {
		return apperrors.StoreError(err, "Error eliminando aviso")
	}
	return nil
}

// List narrows the query to what the caller is allowed to see before it
// reaches the database: trabajadores get published avisos only, empresas get
// their own, admins pass the filter through untouched.
func (s *AvisoServiceImpl) List(db *gorm.DB, session *auth.SessionPayload, req *dto.ListAvisosRequest) ([]models.Aviso, error) {
	criteria := repositories.AvisoFilter{
		EmpresaID: req.EmpresaID,
		Estado:    models.AvisoEstado(req.Estado),
	}

	switch {
	case auth.IsAdmin(session):
		// no forced scoping
	case auth.IsEmpresa(session):
		criteria.EmpresaID = session.User.ID
	default:
		criteria.Estado = models.AvisoEstadoPublicado
	}

	avisos, err := s.avisoRepo.List(db, criteria)
	if err != nil {
		return nil, apperrors.StoreError(err, "Error listando avisos")
	}
	return avisos, nil
}
